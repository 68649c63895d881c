package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/todolist/internal/api"
	"github.com/mmynk/todolist/internal/auth"
	"github.com/mmynk/todolist/internal/config"
	"github.com/mmynk/todolist/internal/middleware"
	"github.com/mmynk/todolist/internal/service"
	"github.com/mmynk/todolist/internal/storage"
	"github.com/mmynk/todolist/internal/storage/mongodb"
	"github.com/mmynk/todolist/internal/storage/sqlite"
	"github.com/mmynk/todolist/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	logger.Info("Storage initialized", "driver", cfg.Store.Driver)

	if cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		logger.Warn("Using the default JWT secret; set TODOLIST_AUTH_JWT_SECRET in production")
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store, cfg.Auth.BcryptCost)

	deps := api.Deps{
		Users:        service.NewUserService(authenticator, jwtManager, store, logger),
		Groups:       service.NewTodoGroupService(store),
		Todos:        service.NewTodoService(store),
		Store:        store,
		JWTManager:   jwtManager,
		RequireToken: cfg.Auth.RequireToken,
		StoreTimeout: cfg.Store.Timeout,
		Logger:       logger,
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = middleware.NewMetrics(prometheus.DefaultRegisterer)
		deps.MetricsHandler = promhttp.Handler()
	}

	gin.SetMode(gin.ReleaseMode)
	handler := api.NewServer(deps).Handler()

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: h2c.NewHandler(handler, &http2.Server{}),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", cfg.Server.Addr, "require_token", cfg.Auth.RequireToken)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		return mongodb.New(ctx, mongodb.Config{
			URI:            cfg.Store.Mongo.URI,
			Database:       cfg.Store.Mongo.Database,
			Transactions:   cfg.Store.Mongo.Transactions,
			ConnectTimeout: cfg.Store.Timeout,
		})
	default:
		return sqlite.New(cfg.Store.SQLite.Path)
	}
}
