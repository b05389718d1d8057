package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/wallabag/internal/client/cli"
	"github.com/dmitrijs2005/wallabag/internal/client/client"
	"github.com/dmitrijs2005/wallabag/internal/client/config"
	"github.com/dmitrijs2005/wallabag/internal/client/repositories/repomanager"
	"github.com/dmitrijs2005/wallabag/internal/client/services"
	"github.com/dmitrijs2005/wallabag/internal/logging"
	"github.com/dmitrijs2005/wallabag/internal/netx"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	transport, err := netx.NewTransport(cfg.ProxyURL)
	if err != nil {
		log.Fatalf("%v", err)
	}

	apiClient, err := client.NewWallabagClient(cfg.ServerURL, cfg.AccessToken,
		client.WithHTTPClient(&http.Client{Transport: transport, Timeout: cfg.RequestTimeout}),
		client.WithRateLimit(cfg.RequestsPerSecond),
		client.WithPageSize(cfg.PageSize),
		client.WithWorkers(cfg.PageWorkers),
		client.WithLogger(logger.With("component", "api")),
	)
	if err != nil {
		log.Fatalf("%v", err)
	}

	store, err := repomanager.Open(ctx, cfg.CacheDSN)
	if err != nil {
		log.Fatalf("error initializing cache: %v", err)
	}
	defer store.Close()

	ss := services.NewSessionService(apiClient, store.Metadata())
	es := services.NewEntryService(apiClient, store, logger)

	cli.NewApp(cfg, ss, es, logger).Run(ctx)
}
