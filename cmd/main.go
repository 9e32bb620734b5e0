package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dakshpokar/UnifiedWebInsights/internal/adapters/fetch"
	"github.com/dakshpokar/UnifiedWebInsights/internal/adapters/http/api"
	"github.com/dakshpokar/UnifiedWebInsights/internal/adapters/llm"
	"github.com/dakshpokar/UnifiedWebInsights/internal/adapters/repository"
	app "github.com/dakshpokar/UnifiedWebInsights/internal/app"
	"github.com/dakshpokar/UnifiedWebInsights/internal/config"
	"github.com/dakshpokar/UnifiedWebInsights/internal/domain/synthesis"
	"github.com/dakshpokar/UnifiedWebInsights/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 60 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
	mongoDialTimeout  = 15 * time.Second
)

func main() {
	// Local development convenience; absence of a .env file is fine.
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, cleanup, err := buildStore(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to connect to store", logger.Error(err))
		return
	}
	defer cleanup()

	reasoner, err := buildReasoner(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to build reasoning client", logger.Error(err))
		return
	}

	acquirer := fetch.New(
		fetch.WithTimeout(time.Duration(cfg.FetchTimeoutMS)*time.Millisecond),
		fetch.WithRendererURL(cfg.RendererURL),
	)

	svc := app.New(acquirer, reasoner,
		app.WithLogger(log),
		app.WithStore(store),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithAnalyzerTimeout(time.Duration(cfg.AnalyzerTimeoutMS)*time.Millisecond),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop(context.Background())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(svc).Router(),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
}

// buildStore selects the persistence backend: MongoDB when a URI is
// configured, otherwise the in-memory store.
func buildStore(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.Store, func(), error) {
	if cfg.MongoURI == "" {
		log.Info(ctx, "no mongo_uri configured; using in-memory store")
		return repository.NewMemStore(), func() {}, nil
	}

	dialCtx, cancel := context.WithTimeout(ctx, mongoDialTimeout)
	defer cancel()

	store, err := repository.NewMongoStore(dialCtx, cfg.MongoURI,
		repository.WithDatabase(cfg.MongoDatabase),
	)
	if err != nil {
		return nil, nil, err
	}
	log.Info(ctx, "connected to mongodb", logger.String("database", cfg.MongoDatabase))

	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = store.Close(closeCtx)
	}
	return store, cleanup, nil
}

// buildReasoner returns the real reasoning client when an API key is
// configured, otherwise a deterministic stub so the pipeline still
// produces complete reports locally.
func buildReasoner(ctx context.Context, cfg *config.Config, log logger.Logger) (synthesis.Reasoner, error) {
	if cfg.LLMAPIKey == "" {
		log.Warn(ctx, "no llm_api_key configured; using stub reasoner")
		return llm.NewStub(), nil
	}

	opts := []llm.Option{
		llm.WithModel(cfg.LLMModel),
		llm.WithMaxTokens(cfg.LLMMaxTokens),
	}
	if cfg.LLMBaseURL != "" {
		opts = append(opts, llm.WithBaseURL(cfg.LLMBaseURL))
	}
	return llm.New(cfg.LLMAPIKey, opts...)
}
