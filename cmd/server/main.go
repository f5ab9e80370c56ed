package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/beanhouse-cafe/api/internal/config"
	"github.com/beanhouse-cafe/api/internal/enum"
	"github.com/beanhouse-cafe/api/internal/router"
	"github.com/beanhouse-cafe/api/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx := context.Background()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer st.Close(ctx)

	logger.Info("Starting server",
		zap.String("port", cfg.Port),
		zap.String("backend", st.Backend()),
		zap.String("cart_group_mode", cfg.CartGroupMode))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.New(cfg, st, logger),
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Fatal("Server error", zap.Error(err))
	case sig := <-sigCh:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}

// openStore picks the persistence backend once, at startup. The "auto" mode
// probes the document database and downgrades to the ephemeral store with a
// loud warning; the choice never changes for the life of the process.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	switch cfg.StoreBackend {
	case enum.BackendMongo:
		return store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case enum.BackendMemory:
		logger.Warn("Using in-memory store; orders and menu are lost on restart")
		return store.NewMemoryStore(), nil
	case enum.BackendAuto:
		st, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err == nil {
			return st, nil
		}
		logger.Warn("Document store unreachable, degrading to in-memory store",
			zap.Error(err))
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
