package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/jacentio/vendoradmin/console"
	"github.com/jacentio/vendoradmin/internal/config"
	"github.com/jacentio/vendoradmin/internal/dynamo"
	"github.com/jacentio/vendoradmin/internal/httpapi"
	"github.com/jacentio/vendoradmin/internal/logging"
	"github.com/jacentio/vendoradmin/store"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	logger.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"backend", cfg.Store.Backend,
		"table_prefix", cfg.Store.TablePrefix,
		"cascade_limit", cfg.Cascade.Limit,
	)

	ctx := context.Background()
	s, err := newStore(ctx, cfg.Store)
	if err != nil {
		logger.Error("failed to create store", "error", err)
		os.Exit(1)
	}

	deps := console.NewDeps(s, logger)
	deps.Cascader.SetLimit(cfg.Cascade.Limit)
	logger.Info("cascade registered",
		"relationships", len(deps.Cascader.Registry().AllRelationships()),
	)

	server := httpapi.NewServer(deps, cfg.Server, logger)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		logger.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func newStore(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
	if cfg.Backend == config.BackendMemory {
		slog.Warn("using in-memory store; data is lost on exit")
		return store.NewMemory(), nil
	}

	client, err := dynamo.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return store.NewDynamoDB(client, cfg.Tables()), nil
}
