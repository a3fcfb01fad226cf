package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/bank-portal/src/internal/app"
	"github.com/api-sage/bank-portal/src/internal/auth"
	"github.com/api-sage/bank-portal/src/internal/config"
	"github.com/api-sage/bank-portal/src/internal/logger"
	"github.com/api-sage/bank-portal/src/internal/seed"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startupCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	storage, err := app.OpenStorage(startupCtx, cfg)
	if err != nil {
		cancel()
		log.Fatalf("open storage: %v", err)
	}
	if cfg.SeedDemoData {
		if err := seed.Run(startupCtx, storage.Users, storage.Accounts); err != nil {
			cancel()
			log.Fatalf("seed demo data: %v", err)
		}
	}
	cancel()

	tokens := auth.NewTokenRegistry()
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           app.NewHandler(storage, tokens, auth.DefaultPolicy(), cfg.AllowedOrigin),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", logger.Fields{
			"addr":    server.Addr,
			"storage": cfg.StorageDriver,
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("http server shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	tokens.Close()
	if closeErr := storage.Close(); closeErr != nil {
		logger.Error("storage close failed", closeErr, nil)
	}
	if err != nil {
		log.Fatalf("http server: %v", err)
	}
	logger.Info("http server stopped", nil)
}
