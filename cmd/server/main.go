package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/stringfold/ally/internal/app"
	"github.com/stringfold/ally/internal/cfg"
)

func main() {
	config, err := cfg.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := app.NewProvider(ctx, config)
	if err != nil {
		log.Fatal(err)
	}
	appLogger := provider.Infra.Logger

	server, err := app.NewServer(provider)
	if err != nil {
		log.Fatal(err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			appLogger.Error(context.Background(), "server stopped", logFieldErr(err))
		}
	case <-ctx.Done():
		appLogger.Info(context.Background(), "Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, "server shutdown failed", logFieldErr(err))
	}
	if err := provider.Infra.Close(shutdownCtx); err != nil {
		appLogger.Error(shutdownCtx, "infrastructure shutdown failed", logFieldErr(err))
	}
}
