package app

import (
	"context"
	"testing"
	"time"

	"github.com/turugol/quiniela/internal/config"
	"github.com/turugol/quiniela/internal/platform/logging"
)

func memoryModeConfig() config.Config {
	return config.Config{
		AppEnv:           config.EnvDev,
		HTTPAddr:         ":0",
		ReadTimeout:      5 * time.Second,
		WriteTimeout:     5 * time.Second,
		AutosaveDebounce: time.Minute,
		SeasonYear:       2026,
		CatalogCacheTTL:  time.Minute,
		CatalogWorkers:   2,
		AccountBaseURL:   "http://localhost:8081",
		AccountTimeout:   time.Second,
	}
}

func TestNew_MemoryMode(t *testing.T) {
	a, err := New(memoryModeConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("build app: %v", err)
	}

	if a.Server == nil || a.Server.Handler == nil {
		t.Fatal("expected a wired http server")
	}
	if a.db != nil {
		t.Fatal("expected no database handle in memory mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	cfg := memoryModeConfig()
	cfg.HTTPAddr = "  "

	if _, err := New(cfg, logging.NewNop()); err == nil {
		t.Fatal("expected error for empty http addr")
	}
}
