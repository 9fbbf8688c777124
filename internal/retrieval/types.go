package retrieval

// Document is a knowledge base entry returned for a query.
type Document struct {
	ID       string
	Text     string
	Score    float64
	Metadata map[string]string
}

// Record is a knowledge base entry with its embedding, as written by the indexer.
type Record struct {
	ID        string
	Text      string
	Embedding []float32
	Metadata  map[string]string
}

func cloneMetadata(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
