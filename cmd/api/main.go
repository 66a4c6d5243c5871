package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turugol/quiniela/internal/app"
	"github.com/turugol/quiniela/internal/config"
	"github.com/turugol/quiniela/internal/observability"
	"github.com/turugol/quiniela/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	uptraceShutdown, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	pyroscopeStop, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		logger.Error("init pyroscope", "error", err)
		os.Exit(1)
	}

	pprofSrv := observability.StartPprofServer(cfg, logger)

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := a.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}

	if pprofSrv != nil {
		if err := observability.StopPprofServer(pprofSrv, logger, 5*time.Second); err != nil {
			logger.Error("stop pprof server", "error", err)
		}
	}
	if err := pyroscopeStop(); err != nil {
		logger.Error("stop pyroscope", "error", err)
	}
	if err := uptraceShutdown(shutdownCtx); err != nil {
		logger.Error("shutdown uptrace", "error", err)
	}

	logger.Info("http server stopped")
}
