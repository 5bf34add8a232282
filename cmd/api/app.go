package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"medi-plans/internal/config"
	"medi-plans/internal/httpx"
	"medi-plans/internal/plans"
	"medi-plans/internal/providers/medicare"
	"medi-plans/internal/relay"
	"medi-plans/internal/scanner"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// App encapsulates application dependencies
type App struct {
	router       *gin.Engine
	logger       *slog.Logger
	cfg          *config.Config
	registry     *prometheus.Registry
	client       *medicare.Client
	plansService plans.Service
	relay        *relay.Relay
	relayInbox   chan relay.Envelope
	pageScanner  *scanner.Scanner
}

// NewApp creates a new application with injected dependencies
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.API.BaseURL == "" {
		return nil, errors.New("api base URL is not configured")
	}

	// Set Gin mode from configuration
	gin.SetMode(cfg.Server.GinMode)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Outbound requests are logged and measured; no deadline unless configured
	httpClient := &http.Client{
		Timeout: cfg.API.Timeout,
		Transport: httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			logger,
			httpx.WithBodies(cfg.API.LogBodies),
			httpx.WithLogFieldMaxLen(cfg.API.LogFieldMaxLen),
			httpx.WithMetrics(httpx.NewMetrics(registry)),
		),
	}
	client := medicare.NewClient(cfg.API.BaseURL, logger, medicare.WithHTTPClient(httpClient))

	app := &App{
		router:       router,
		logger:       logger,
		cfg:          cfg,
		registry:     registry,
		client:       client,
		plansService: plans.NewPlansService(client, logger),
		relay:        relay.New(client, logger, relay.WithRegisterer(registry)),
		relayInbox:   make(chan relay.Envelope),
		pageScanner:  scanner.NewScanner(client, cfg.Scanner.DefaultState, logger),
	}

	logger.Info("application initialized")

	// Register routes
	app.registerRoutes()

	return app, nil
}

// Handler exposes the router, mainly for tests
func (app *App) Handler() http.Handler {
	return app.router
}

// Run starts the relay and the HTTP server and blocks until ctx is done or either fails
func (app *App) Run(ctx context.Context, addr string) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.relay.Serve(ctx, app.relayInbox)
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           app.router,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g.Go(func() error {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		app.logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down http server: %w", err)
		}
		return nil
	})

	return g.Wait()
}
