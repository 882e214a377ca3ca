package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"namolux/internal/config"
	"namolux/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func checkCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <domain>...",
		Short: "Checks registration availability for one or more domains",
		Args:  cobra.MinimumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			resolver := buildResolver(ctx, cfg, nil)
			results := resolver.CheckBatch(ctx, args)

			logger.Info(ctx, "batch finished",
				zap.Int("domains", len(results)),
				zap.Uint64("providerErrors", resolver.ProviderErrors()))

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(results); err != nil {
				logger.Fatal(ctx, "could not encode results", zap.Error(err))
			}
		},
	}

	return cmd
}
