package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/panjf2000/ants/v2"

	"github.com/turugol/quiniela/external/footballapi"
	"github.com/turugol/quiniela/internal/config"
	"github.com/turugol/quiniela/internal/domain/draft"
	"github.com/turugol/quiniela/internal/domain/entry"
	"github.com/turugol/quiniela/internal/domain/pool"
	"github.com/turugol/quiniela/internal/infrastructure/account/introspect"
	"github.com/turugol/quiniela/internal/infrastructure/repository/memory"
	"github.com/turugol/quiniela/internal/infrastructure/repository/postgres"
	"github.com/turugol/quiniela/internal/interfaces/httpapi"
	"github.com/turugol/quiniela/internal/platform/cache"
	idgen "github.com/turugol/quiniela/internal/platform/id"
	"github.com/turugol/quiniela/internal/platform/logging"
	"github.com/turugol/quiniela/internal/platform/resilience"
	"github.com/turugol/quiniela/internal/usecase"
)

// App bundles the HTTP server with the resources that must be drained
// alongside it on shutdown.
type App struct {
	Server *http.Server

	queue   *usecase.AutosaveQueue
	workers *ants.Pool
	db      *sqlx.DB
	logger  *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var (
		db        *sqlx.DB
		draftRepo draft.Repository
		poolRepo  pool.Repository
		entryRepo entry.Repository
	)
	if cfg.DBURL != "" {
		var err error
		db, err = openDB(context.Background(), cfg.DBURL)
		if err != nil {
			return nil, err
		}
		draftRepo = postgres.NewDraftRepository(db)
		poolRepo = postgres.NewPoolRepository(db)
		entryRepo = postgres.NewEntryRepository(db)
	} else {
		logger.Warn("DB_URL not set, serving from in-memory repositories")
		draftRepo = memory.NewDraftRepository()
		poolRepo = memory.NewPoolRepository(memory.SeedPools()...)
		entryRepo = memory.NewEntryRepository()
	}

	workers, err := ants.NewPool(cfg.CatalogWorkers)
	if err != nil {
		closeDB(db)
		return nil, fmt.Errorf("create catalog worker pool: %w", err)
	}

	provider := footballapi.NewClient(footballapi.ClientConfig{
		BaseURL:    cfg.FootballAPIBaseURL,
		APIKey:     cfg.FootballAPIKey,
		Timeout:    cfg.FootballAPITimeout,
		MaxRetries: cfg.FootballAPIMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballAPICircuitEnabled,
			FailureThreshold: cfg.FootballAPICircuitFailureCount,
			OpenTimeout:      cfg.FootballAPICircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballAPICircuitHalfOpenMaxReq,
		},
	})

	catalogSvc := usecase.NewCatalogService(provider, cache.NewStore(cfg.CatalogCacheTTL), workers, logger, cfg.SeasonYear)
	queue := usecase.NewAutosaveQueue(draftRepo, cfg.AutosaveDebounce, logger)
	draftSvc := usecase.NewDraftService(draftRepo, poolRepo, queue, idgen.NewRandomGenerator("pool_"))
	poolSvc := usecase.NewPoolService(poolRepo)
	entrySvc := usecase.NewEntryService(poolRepo, entryRepo, idgen.NewRandomGenerator("entry_"))
	rankingSvc := usecase.NewRankingService(poolRepo, entryRepo)

	verifier := introspect.NewClient(introspect.ClientConfig{
		HTTPClient:     &http.Client{Timeout: cfg.AccountTimeout},
		BaseURL:        cfg.AccountBaseURL,
		IntrospectPath: cfg.AccountIntrospectPath,
		CacheTTL:       cfg.AccountCacheTTL,
		Logger:         logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AccountCircuitEnabled,
			FailureThreshold: cfg.AccountCircuitFailureCount,
			OpenTimeout:      cfg.AccountCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AccountCircuitHalfOpenMaxReq,
		},
	})

	handler := httpapi.NewHandler(catalogSvc, draftSvc, poolSvc, entrySvc, rankingSvc, logger)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if cfg.FootballAPIEnabled && len(cfg.WarmLeagueIDs) > 0 {
		catalogSvc.WarmFixtures(context.Background(), cfg.WarmLeagueIDs)
	}

	return &App{
		Server:  server,
		queue:   queue,
		workers: workers,
		db:      db,
		logger:  logger,
	}, nil
}

// Shutdown drains the HTTP server, flushes pending draft autosaves and
// releases pooled resources. Errors are collected, not short-circuited.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error

	if err := a.Server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if err := a.queue.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("flush autosave queue: %w", err))
	}
	a.workers.Release()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close postgres: %w", err))
		}
	}

	return errors.Join(errs...)
}

func closeDB(db *sqlx.DB) {
	if db != nil {
		_ = db.Close()
	}
}
