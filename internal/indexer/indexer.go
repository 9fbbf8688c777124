// Package indexer fills a knowledge base from dataset rows.
package indexer

import (
	"context"
	"fmt"

	"support-router/internal/dataset"
	"support-router/internal/retrieval"
	"support-router/pkg/log"
)

const (
	LogPrefix = "internal.indexer.Run"

	DefaultBatchSize = 64
)

// Config controls one indexing run.
type Config struct {
	BatchSize int
	// Reset clears the knowledge base before writing.
	Reset bool
}

// Result summarizes an indexing run.
type Result struct {
	Documents int
	Indexed   int
	Failed    int
	Batches   int
}

// Indexer embeds documents in batches and writes them to a knowledge base.
type Indexer struct {
	embedder retrieval.Embedder
	store    retrieval.Indexer
	cfg      Config
	l        log.Logger
}

func New(embedder retrieval.Embedder, store retrieval.Indexer, cfg Config, l log.Logger) *Indexer {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	return &Indexer{embedder: embedder, store: store, cfg: cfg, l: l}
}

// Document turns a row into the text and metadata stored in the knowledge base.
// IDs follow the row position ("doc_<n>") so re-indexing overwrites in place.
func Document(row dataset.Row) retrieval.Record {
	meta := map[string]string{
		retrieval.MetaInstruction: row.Instruction,
		retrieval.MetaResponse:    row.Response,
		retrieval.MetaIntent:      row.Intent,
		retrieval.MetaCategory:    row.Category,
	}
	if row.Tags != "" {
		meta[retrieval.MetaTags] = row.Tags
	}
	if row.ResponseType != "" {
		meta[retrieval.MetaResponseType] = row.ResponseType
	}
	return retrieval.Record{
		ID:       fmt.Sprintf("doc_%d", row.Index),
		Text:     fmt.Sprintf("Question: %s\nAnswer: %s", row.Instruction, row.Response),
		Metadata: meta,
	}
}

// Run indexes rows. A failed batch is logged and skipped; only context
// cancellation and a failed reset abort the run.
func (ix *Indexer) Run(ctx context.Context, rows []dataset.Row) (Result, error) {
	res := Result{Documents: len(rows)}

	if ix.cfg.Reset {
		if err := ix.store.Reset(ctx); err != nil {
			return res, fmt.Errorf("%s: reset: %w", LogPrefix, err)
		}
		ix.l.Infof(ctx, "%s: knowledge base cleared", LogPrefix)
	}

	for start := 0; start < len(rows); start += ix.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		end := min(start+ix.cfg.BatchSize, len(rows))
		res.Batches++

		n, err := ix.indexBatch(ctx, rows[start:end])
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return res, ctxErr
			}
			ix.l.Errorf(ctx, "%s: batch %d-%d: %v", LogPrefix, start, end-1, err)
			res.Failed += end - start
			continue
		}
		res.Indexed += n
		ix.l.Infof(ctx, "%s: indexed %d/%d documents", LogPrefix, res.Indexed, len(rows))
	}

	ix.l.Infof(ctx, "%s: complete, %d/%d documents indexed", LogPrefix, res.Indexed, res.Documents)
	return res, nil
}

func (ix *Indexer) indexBatch(ctx context.Context, rows []dataset.Row) (int, error) {
	records := make([]retrieval.Record, len(rows))
	texts := make([]string, len(rows))
	for i, row := range rows {
		records[i] = Document(row)
		texts[i] = records[i].Text
	}

	vectors, err := ix.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed: %w", err)
	}
	if len(vectors) != len(records) {
		return 0, fmt.Errorf("embed: got %d vectors for %d documents", len(vectors), len(records))
	}
	for i := range records {
		records[i].Embedding = vectors[i]
	}

	if err := ix.store.Upsert(ctx, records); err != nil {
		return 0, fmt.Errorf("upsert: %w", err)
	}
	return len(records), nil
}
