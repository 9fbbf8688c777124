package retrieval

// Log prefixes
const (
	LogPrefixFilesystem = "internal.retrieval.Filesystem"
	LogPrefixQdrant     = "internal.retrieval.Qdrant"
)

const (
	BackendFilesystem = "filesystem"
	BackendQdrant     = "qdrant"

	DefaultCacheSize = 1024

	// Metadata and payload keys.
	MetaInstruction  = "instruction"
	MetaResponse     = "response"
	MetaIntent       = "intent"
	MetaCategory     = "category"
	MetaTags         = "tags"
	MetaResponseType = "response_type"
	PayloadDocID     = "doc_id"
	PayloadText      = "text"
)
