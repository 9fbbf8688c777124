package main

import (
	"github.com/spf13/cobra"

	"support-router/internal/app"
	"support-router/internal/dataset"
	"support-router/internal/evaluation"
	"support-router/internal/model"
)

func evaluateCmd() *cobra.Command {
	var (
		dataPath    string
		samples     int
		seed        uint64
		concurrency int
		show        int
	)

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Dry-run classification and routing over a message sample and estimate cost",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			stack, err := app.Build(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer stack.Close()

			var msgs []evaluation.Sample
			rows, err := dataset.ReadFile(dataPath, 0)
			if err != nil {
				logger.Warnf(ctx, "Dataset unavailable, using fallback messages: %v", err)
				msgs = evaluation.FallbackMessages()
			} else {
				for _, row := range dataset.Sample(rows, samples, seed) {
					msgs = append(msgs, evaluation.Sample{
						Text:  row.Instruction,
						Label: model.NormalizeIntent(row.Intent),
					})
				}
			}
			logger.Infof(ctx, "Evaluating %d messages with the %s classifier", len(msgs), stack.Classifier.Name())

			report, err := evaluation.Run(ctx, stack.Classifier, stack.Policy, msgs, evaluation.Config{
				Concurrency: concurrency,
				ShowSamples: show,
				Costs:       stack.Costs,
			})
			if err != nil {
				return err
			}
			return report.Write(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "data/bitext.csv", "Path to the support dataset CSV")
	cmd.Flags().IntVar(&samples, "samples", 500, "Number of messages to sample")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "Sampling seed")
	cmd.Flags().IntVar(&concurrency, "concurrency", evaluation.DefaultConcurrency, "Parallel classifications")
	cmd.Flags().IntVar(&show, "show", evaluation.DefaultSamples, "Sample decisions to print")
	return cmd
}
