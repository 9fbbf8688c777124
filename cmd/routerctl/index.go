package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"support-router/internal/dataset"
	"support-router/internal/indexer"
	"support-router/internal/retrieval"
	"support-router/pkg/voyage"
)

func indexCmd() *cobra.Command {
	var (
		dataPath  string
		limit     int
		batchSize int
		reset     bool
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Embed the support dataset into the knowledge base",
		Example: "  routerctl index --data data/bitext.csv --limit 1000\n" +
			"  routerctl index --data data/bitext.csv --reset",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			rows, err := dataset.ReadFile(dataPath, limit)
			if err != nil {
				return err
			}
			logger.Infof(ctx, "Loaded %d rows from %s", len(rows), dataPath)

			client, err := voyage.New(voyage.Config{
				APIKey:  cfg.Voyage.APIKey,
				Model:   cfg.Voyage.Model,
				BaseURL: cfg.Voyage.BaseURL,
			})
			if err != nil {
				return fmt.Errorf("indexing needs an embedding provider: %w", err)
			}
			store, err := retrieval.New(cfg, client, logger)
			if err != nil {
				return err
			}

			res, err := indexer.New(client, store, indexer.Config{
				BatchSize: batchSize,
				Reset:     reset,
			}, logger).Run(ctx, rows)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d/%d documents in %d batches (%d failed) into %s\n",
				res.Indexed, res.Documents, res.Batches, res.Failed, cfg.Retrieval.Backend)
			if res.Failed > 0 {
				return fmt.Errorf("%d documents failed to index", res.Failed)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "data/bitext.csv", "Path to the support dataset CSV")
	cmd.Flags().IntVar(&limit, "limit", 0, "Index at most this many rows (0 = all)")
	cmd.Flags().IntVar(&batchSize, "batch-size", indexer.DefaultBatchSize, "Documents per embedding request")
	cmd.Flags().BoolVar(&reset, "reset", false, "Clear the knowledge base first")
	return cmd
}
