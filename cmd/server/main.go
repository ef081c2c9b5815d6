package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/chamaa/internal/config"
	"github.com/mmynk/chamaa/internal/events"
	"github.com/mmynk/chamaa/internal/feed"
	"github.com/mmynk/chamaa/internal/httpapi"
	"github.com/mmynk/chamaa/internal/ledger"
	"github.com/mmynk/chamaa/internal/metrics"
	"github.com/mmynk/chamaa/internal/middleware"
	"github.com/mmynk/chamaa/internal/service"
	"github.com/mmynk/chamaa/internal/storage"
	"github.com/mmynk/chamaa/internal/storage/memory"
	"github.com/mmynk/chamaa/internal/storage/mongo"
	"github.com/mmynk/chamaa/internal/storage/postgres"
	"github.com/mmynk/chamaa/internal/storage/sqlite"
	"github.com/mmynk/chamaa/pkg/logging"
)

func main() {
	cfg, logger := setup()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

// setup loads the configuration first so that LOG_LEVEL and LOG_FORMAT from
// a .env file reach the logger.
func setup() (*config.Config, *slog.Logger) {
	cfg := config.Load()
	return cfg, logging.Setup()
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "backend", cfg.DataBackend)

	hub := feed.NewHub(logger.With("component", "feed"))
	publisher, closePublisher, err := openPublisher(cfg, hub, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize event publisher: %w", err)
	}
	defer closePublisher()

	reg := metrics.New()
	l := ledger.New(store,
		ledger.WithPublisher(publisher),
		ledger.WithObserver(reg),
		ledger.WithLogger(logger.With("component", "ledger")),
		ledger.WithMembershipRequired(cfg.RequireGroupMembership),
	)

	admin, created, err := l.SeedAdmin(ctx, cfg.AdminID, cfg.AdminName, cfg.AdminEmail)
	if err != nil {
		return err
	}
	logger.Info("Admin ready", "admin_id", admin.ID, "created", created)

	mux := http.NewServeMux()

	// Connect RPC
	path, handler := service.NewHandler(
		service.NewLedgerService(l),
		connect.WithInterceptors(
			middleware.LoggingInterceptor(logger),
			middleware.MetricsInterceptor(reg),
		),
	)
	mux.Handle(path, handler)

	// REST
	httpapi.New(l, logger).Register(mux)

	mux.Handle("GET /events", feed.Handler(hub))
	mux.Handle("GET /metrics", reg.Handler())

	root := middleware.RequestLogger(logger, reg)(middleware.CORS(mux))

	srv := &http.Server{
		Addr: cfg.Addr(),
		// h2c for HTTP/2 without TLS (required for Connect gRPC clients)
		Handler:           h2c.NewHandler(root, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
		hub.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.DataBackend {
	case config.BackendMemory:
		return memory.New(), nil
	case config.BackendPostgres:
		return postgres.New(ctx, cfg.DatabaseURL)
	case config.BackendMongo:
		return mongo.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return sqlite.New(cfg.DBPath)
	}
}

// openPublisher always feeds the WebSocket hub and adds the AMQP exchange
// when one is configured.
func openPublisher(cfg *config.Config, hub *feed.Hub, logger *slog.Logger) (events.Publisher, func(), error) {
	if cfg.AMQPURL == "" {
		logger.Info("AMQP publishing disabled")
		return hub, func() {}, nil
	}
	p, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingPrefix)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Publishing events", "exchange", cfg.AMQPExchange)
	return events.Multi{hub, p}, func() {
		if err := p.Close(); err != nil {
			logger.Warn("Failed to close event publisher", "error", err)
		}
	}, nil
}
