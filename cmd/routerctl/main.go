package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"support-router/config"
	"support-router/pkg/log"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "routerctl",
		Short:         "Support router operator tool",
		Long:          "Builds the knowledge base, evaluates routing offline and answers single messages from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("config", "", "Path to the config file (default: ./config/config.yaml)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		indexCmd(),
		evaluateCmd(),
		askCmd(),
	)
	return root
}

// loadConfig reads configuration honouring --config, then builds a console logger.
func loadConfig(cmd *cobra.Command) (*config.Config, log.Logger, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		if err := os.Setenv("CONFIG_PATH", path); err != nil {
			return nil, nil, err
		}
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	level := "info"
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	logger := log.Init(log.ZapConfig{
		Level:        level,
		Mode:         "development",
		Encoding:     "console",
		ColorEnabled: true,
	})
	return cfg, logger, nil
}
