package httpapi

import (
	"net/http"
	"strings"

	"github.com/turugol/quiniela/internal/usecase"
)

func (h *Handler) ListPools(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPools")
	defer span.End()

	pools, err := h.poolService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list pools failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]poolDTO, 0, len(pools))
	for _, p := range pools {
		items = append(items, poolToDTO(p, false))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPool(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPool")
	defer span.End()

	poolID := strings.TrimSpace(r.PathValue("poolID"))
	item, err := h.poolService.Get(ctx, poolID)
	if err != nil {
		h.logger.WarnContext(ctx, "get pool failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, poolToDTO(item, true))
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	poolID := strings.TrimSpace(r.PathValue("poolID"))
	board, err := h.rankingService.Leaderboard(ctx, poolID)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	rows := make([]leaderboardRowDTO, 0, len(board))
	for _, ranked := range board {
		rows = append(rows, leaderboardRowDTO{
			Rank:     ranked.Rank,
			UserID:   ranked.Entry.UserID,
			UserName: ranked.Entry.UserName,
			Score:    ranked.Entry.Score,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, rows)
}

func (h *Handler) QuoteSelections(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.QuoteSelections")
	defer span.End()

	poolID := strings.TrimSpace(r.PathValue("poolID"))

	var req quoteRequest
	if err := decodeJSONBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	selections, err := selectionsFromRequest(req.Selections)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	quote, err := h.entryService.Quote(ctx, poolID, selections)
	if err != nil {
		h.logger.WarnContext(ctx, "quote selections failed", "pool_id", poolID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, quoteToDTO(quote))
}

func (h *Handler) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitEntry")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, errMissingPrincipal())
		return
	}

	poolID := strings.TrimSpace(r.PathValue("poolID"))

	var req submitEntryRequest
	if err := decodeJSONBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	selections, err := selectionsFromRequest(req.Selections)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.entryService.Submit(ctx, usecase.SubmitEntryInput{
		PoolID:     poolID,
		UserID:     principal.ID,
		UserName:   principal.DisplayName,
		Selections: selections,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit entry failed", "pool_id", poolID, "user_id", principal.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, entryToDTO(item))
}

func (h *Handler) GetMyEntry(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyEntry")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, errMissingPrincipal())
		return
	}

	poolID := strings.TrimSpace(r.PathValue("poolID"))
	item, exists, err := h.entryService.GetByUserAndPool(ctx, principal.ID, poolID)
	if err != nil {
		h.logger.WarnContext(ctx, "get entry failed", "pool_id", poolID, "user_id", principal.ID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if !exists {
		writeSuccess(ctx, w, http.StatusOK, nil)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entryToDTO(item))
}

type quoteRequest struct {
	Selections map[string][]string `json:"selections"`
}

type submitEntryRequest struct {
	Selections map[string][]string `json:"selections" validate:"required,min=1"`
}
