package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/turugol/quiniela/internal/platform/logging"
	"github.com/turugol/quiniela/internal/usecase"
)

type Handler struct {
	catalogService *usecase.CatalogService
	draftService   *usecase.DraftService
	poolService    *usecase.PoolService
	entryService   *usecase.EntryService
	rankingService *usecase.RankingService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	catalogService *usecase.CatalogService,
	draftService *usecase.DraftService,
	poolService *usecase.PoolService,
	entryService *usecase.EntryService,
	rankingService *usecase.RankingService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		catalogService: catalogService,
		draftService:   draftService,
		poolService:    poolService,
		entryService:   entryService,
		rankingService: rankingService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
