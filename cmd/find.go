package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"namolux/internal/autofind"
	"namolux/internal/config"
	"namolux/internal/vocab"
	"namolux/pkg/domain"
	"namolux/pkg/logger"
	"namolux/pkg/metrics"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func findCommand(cfg *config.Config) *cobra.Command {
	var (
		industry     string
		vibe         string
		maxLength    int
		count        int
		style        string
		inclusion    string
		position     string
		seed         int64
		blocklist    []string
		allowlist    []string
		metricsAddr  string
		allowHyphen  bool
		allowNumbers bool
		twoWord      bool
		vibeSuffix   bool
	)

	cmd := &cobra.Command{
		Use:   "find <keyword>",
		Short: "Finds available, high-quality domain names for a keyword",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			var eng *metrics.Engine
			if metricsAddr != "" {
				eng = serveMetrics(ctx, metricsAddr)
			}

			tables, err := vocab.Load()
			if err != nil {
				logger.Fatal(ctx, "could not load vocabulary", zap.Error(err))
			}

			resolver := buildResolver(ctx, cfg, eng)
			finder := autofind.New(tables, resolver, autofind.Options{
				PoolSize:         cfg.Search.PoolSize,
				ShortlistSize:    cfg.Search.ShortlistSize,
				QualityThreshold: cfg.Search.QualityThreshold,
				MeaningFloor:     cfg.Search.MeaningFloor,
				MaxAttempts:      cfg.Search.MaxAttempts,
				TimeCap:          cfg.Search.TimeCap,
				TLD:              cfg.Search.TLD,
				AltTLDs:          cfg.Search.AltTLDs,
			})

			req := domain.Request{
				Keyword:     args[0],
				Industry:    industry,
				Vibe:        vibe,
				MaxLength:   maxLength,
				TargetCount: count,
				Controls: domain.Controls{
					MustIncludeKeyword:  domain.KeywordInclusion(inclusion),
					KeywordPosition:     domain.KeywordPosition(position),
					Style:               domain.Style(style),
					Blocklist:           blocklist,
					Allowlist:           allowlist,
					AllowHyphen:         allowHyphen,
					AllowNumbers:        allowNumbers,
					PreferTwoWordBrands: twoWord,
					AllowVibeSuffix:     vibeSuffix,
					Seed:                seed,
				},
			}

			result := finder.Run(ctx, req)
			logger.Info(ctx, "run finished",
				zap.String("runId", result.Summary.RunID.String()),
				zap.Int("picks", len(result.Picks)),
				zap.Duration("elapsed", result.Summary.Elapsed))

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(result); err != nil {
				logger.Fatal(ctx, "could not encode result", zap.Error(err))
			}
		},
	}

	cmd.Flags().StringVar(&industry, "industry", "", "Industry context, e.g. technology")
	cmd.Flags().StringVar(&vibe, "vibe", "", "Brand vibe, e.g. futuristic")
	cmd.Flags().IntVar(&maxLength, "max-length", 0, "Maximum name length before the TLD")
	cmd.Flags().IntVar(&count, "count", 5, "How many available names to find")
	cmd.Flags().StringVar(&style, "style", "", "Naming style: real_words or brandable_blends")
	cmd.Flags().StringVar(&inclusion, "keyword-inclusion", "", "Keyword requirement: exact, partial or none")
	cmd.Flags().StringVar(&position, "keyword-position", "", "Keyword position: prefix, suffix or anywhere")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Generation seed for reproducible runs")
	cmd.Flags().StringSliceVar(&blocklist, "block", nil, "Terms that must not appear in names")
	cmd.Flags().StringSliceVar(&allowlist, "allow", nil, "Roots at least one of which must appear in names")
	cmd.Flags().StringVar(&metricsAddr, "serve-metrics", "", "Address to expose Prometheus metrics on, e.g. :9090")
	cmd.Flags().BoolVar(&allowHyphen, "allow-hyphen", false, "Allow hyphens in names")
	cmd.Flags().BoolVar(&allowNumbers, "allow-numbers", false, "Allow digits in names")
	cmd.Flags().BoolVar(&twoWord, "prefer-two-word", false, "Rank two-word compounds first")
	cmd.Flags().BoolVar(&vibeSuffix, "allow-vibe-suffix", false, "Allow vibe-derived suffixes")

	return cmd
}
