package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mohe22/ads-blocker/internal/dns/common/clock"
	"github.com/mohe22/ads-blocker/internal/dns/common/log"
	"github.com/mohe22/ads-blocker/internal/dns/config"
	"github.com/mohe22/ads-blocker/internal/dns/handler"
	"github.com/mohe22/ads-blocker/internal/dns/repos/blocklist"
	"github.com/mohe22/ads-blocker/internal/dns/repos/blocklist/bloom"
	"github.com/mohe22/ads-blocker/internal/dns/repos/blocklist/bolt"
	"github.com/mohe22/ads-blocker/internal/dns/repos/blocklist/lru"
	"github.com/mohe22/ads-blocker/internal/dns/transport"
)

const (
	version = "0.1.0-dev"
	appName = "ads-blockerd"

	defaultShutdownTimeout = 10 * time.Second
)

// Application holds all the components of the DNS proxy.
type Application struct {
	config   *config.AppConfig
	listener transport.Listener
	upstream transport.UpstreamClient
	handler  *handler.Handler
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	if err := log.Configure(cfg.Env, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Logging configuration error: %v\n", err)
		os.Exit(1)
	}

	log.Info(map[string]any{
		"version":       version,
		"env":           cfg.Env,
		"log_level":     cfg.LogLevel,
		"listen_addr":   cfg.ListenAddr,
		"upstream_addr": cfg.UpstreamAddr,
	}, appName+" starting")

	app, err := buildApplication(cfg)
	if err != nil {
		log.Fatal(map[string]any{"error": err.Error()}, "failed to build application")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info(map[string]any{"signal": sig.String()}, "shutdown signal received")
		cancel()
	}()

	if err := app.Run(ctx); err != nil && err != context.Canceled {
		log.Fatal(map[string]any{"error": err.Error()}, "server failed")
	}

	log.Info(nil, appName+" stopped gracefully")
}

// buildApplication constructs and wires every component per SPEC_FULL's
// component table: transport endpoints, the blocklist repository (cache ->
// bloom -> store), and the query handler.
func buildApplication(cfg *config.AppConfig) (*Application, error) {
	logger := log.GetLogger()

	listener, err := transport.NewUDPListener(cfg.ListenAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind listener: %w", err)
	}

	upstream, err := transport.NewUDPUpstream(cfg.UpstreamAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial upstream: %w", err)
	}

	repo, err := buildBlocklist(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build blocklist: %w", err)
	}

	upstreamTimeout := time.Duration(cfg.UpstreamTimeoutMS) * time.Millisecond
	h := handler.New(listener, upstream, repo, logger, upstreamTimeout)

	return &Application{
		config:   cfg,
		listener: listener,
		upstream: upstream,
		handler:  h,
	}, nil
}

func buildBlocklist(cfg *config.AppConfig, logger log.Logger) (blocklist.Repository, error) {
	clk := clock.RealClock{}
	var store blocklist.Store
	if cfg.BlocklistStorePath != "" {
		s, err := bolt.New(cfg.BlocklistStorePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open bolt store: %w", err)
		}
		store = s
		log.Info(map[string]any{"path": cfg.BlocklistStorePath}, "blocklist store: bolt")
	} else {
		store = blocklist.NewMemStore()
		log.Info(nil, "blocklist store: in-memory")
	}

	cache, err := lru.New(cfg.BlocklistCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create decision cache: %w", err)
	}

	repo := blocklist.NewRepository(store, cache, bloom.NewFactory(), cfg.BlocklistBloomFPRate)

	rules, err := blocklist.LoadFiles(cfg.BlocklistPaths, logger, clk.Now())
	if err != nil {
		if len(rules) == 0 {
			return nil, fmt.Errorf("failed to load blocklist sources: %w", err)
		}
		logger.Warn(map[string]any{
			"error":         err.Error(),
			"loaded_before": len(rules),
		}, "blocklist_source_load_partial")
	}

	if err := repo.Load(rules, 1, clk.Now().Unix()); err != nil {
		return nil, fmt.Errorf("failed to load blocklist rules: %w", err)
	}

	return repo, nil
}

// Run starts the serving loop and blocks until ctx is canceled.
func (app *Application) Run(ctx context.Context) error {
	log.Info(map[string]any{
		"address": app.listener.Addr().String(),
	}, "listening for DNS queries")

	err := app.handler.Serve(ctx)

	log.Info(nil, "shutdown initiated")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		_ = app.listener.Close()
		_ = app.upstream.Close()
		close(done)
	}()

	select {
	case <-done:
		log.Info(nil, "graceful shutdown completed")
	case <-shutdownCtx.Done():
		log.Warn(map[string]any{"timeout": defaultShutdownTimeout.String()}, "shutdown timeout exceeded")
	}

	return err
}
