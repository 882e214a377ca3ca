// Package main provides the CLI entrypoint for the name discovery engine.
// It wires subcommands (find, check), loads configuration, and initializes
// logging.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"namolux/internal/availability"
	"namolux/internal/availability/dnsjson"
	"namolux/internal/availability/rdap"
	"namolux/internal/config"
	"namolux/pkg/logger"
	"namolux/pkg/metrics"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// buildResolver wires the provider chain, cache, rate limiter and metrics
// into one availability resolver.
func buildResolver(ctx context.Context, cfg *config.Config, eng *metrics.Engine) *availability.Resolver {
	httpClient := &http.Client{Timeout: cfg.Availability.Timeout}

	var limiter *rate.Limiter
	if cfg.Availability.RatePerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Availability.RatePerSecond), 1)
	}

	logger.Info(ctx, "availability resolver ready",
		zap.String("dnsEndpoint", cfg.Availability.DNSEndpoint),
		zap.String("rdapEndpoint", cfg.Availability.RDAPEndpoint),
		zap.Duration("ttl", cfg.Availability.TTL))

	return availability.NewResolver(nil, availability.Options{
		Providers: []availability.Provider{
			dnsjson.New(httpClient, cfg.Availability.DNSEndpoint),
			rdap.New(httpClient, cfg.Availability.RDAPEndpoint),
		},
		TTL:         cfg.Availability.TTL,
		DegradedTTL: cfg.Availability.DegradedTTL,
		MaxRetries:  cfg.Availability.MaxRetries,
		Backoff:     cfg.Availability.Backoff,
		Concurrency: cfg.Availability.Concurrency,
		Limiter:     limiter,
		Metrics:     eng,
	})
}

// serveMetrics exposes the Prometheus handler on the given address in the
// background. Returns the engine recording into it.
func serveMetrics(ctx context.Context, addr string) *metrics.Engine {
	mp, handler, err := metrics.SetupPrometheus()
	if err != nil {
		logger.Fatal(ctx, "could not set up metrics", zap.Error(err))
	}
	eng, err := metrics.NewEngine(mp)
	if err != nil {
		logger.Fatal(ctx, "could not create metrics engine", zap.Error(err))
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Info(ctx, "serving metrics", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error(ctx, "could not serve metrics", zap.Error(err))
		}
	}()

	return eng
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use: "namolux",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config File Path")

	configPath := flag.String("c", "", "The config file path, empty reads environment only")
	flag.Parse()

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		findCommand(cfg),
		checkCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}
