package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/turugol/quiniela/internal/domain/league"
	"github.com/turugol/quiniela/internal/domain/pool"
	"github.com/turugol/quiniela/internal/usecase"
)

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraft")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, errMissingPrincipal())
		return
	}

	item, err := h.draftService.Load(ctx, principal.ID)
	if err != nil {
		h.logger.WarnContext(ctx, "load draft failed", "organizer_id", principal.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftToDTO(item))
}

func (h *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateDraft")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, errMissingPrincipal())
		return
	}

	var req updateDraftRequest
	if err := decodeJSONBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.UpdateDraftInput{
		OrganizerID: principal.ID,
		Title:       req.Title,
		Description: req.Description,
		LeagueID:    req.LeagueID,
		Round:       req.Round,
	}
	if req.DeadlineUTC != nil {
		deadline, err := time.Parse(time.RFC3339, *req.DeadlineUTC)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid deadline %q", usecase.ErrInvalidInput, *req.DeadlineUTC))
			return
		}
		input.Deadline = &deadline
	}

	item, err := h.draftService.Update(ctx, input)
	if err != nil {
		h.logger.WarnContext(ctx, "update draft failed", "organizer_id", principal.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftToDTO(item))
}

func (h *Handler) ToggleDraftMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleDraftMatch")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, errMissingPrincipal())
		return
	}

	var req toggleMatchRequest
	if err := decodeJSONBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	kickoffAt, err := time.Parse(time.RFC3339, req.KickoffAtUTC)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid kickoff %q", usecase.ErrInvalidInput, req.KickoffAtUTC))
		return
	}

	item, err := h.draftService.ToggleMatch(ctx, principal.ID, pool.Match{
		ID:          req.ID,
		LeagueID:    req.LeagueID,
		LeagueName:  req.LeagueName,
		Round:       req.Round,
		HomeTeam:    req.HomeTeam,
		AwayTeam:    req.AwayTeam,
		HomeLogoURL: req.HomeLogoURL,
		AwayLogoURL: req.AwayLogoURL,
		KickoffAt:   kickoffAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "toggle draft match failed", "organizer_id", principal.ID, "match_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftToDTO(item))
}

func (h *Handler) AddDraftLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddDraftLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, errMissingPrincipal())
		return
	}

	var req addLeagueRequest
	if err := decodeJSONBody(r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.draftService.AddLeague(ctx, principal.ID, league.League{
		ID:        req.ID,
		Name:      req.Name,
		ShortName: req.ShortName,
		LogoURL:   req.LogoURL,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add draft league failed", "organizer_id", principal.ID, "league_id", req.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftToDTO(item))
}

func (h *Handler) RemoveDraftLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveDraftLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, errMissingPrincipal())
		return
	}

	leagueID, err := parseLeagueID(r.PathValue("leagueID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.draftService.RemoveLeague(ctx, principal.ID, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "remove draft league failed", "organizer_id", principal.ID, "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftToDTO(item))
}

func (h *Handler) PublishDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PublishDraft")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, errMissingPrincipal())
		return
	}

	item, err := h.draftService.Publish(ctx, principal.ID)
	if err != nil {
		h.logger.WarnContext(ctx, "publish draft failed", "organizer_id", principal.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, poolToDTO(item, true))
}

func (h *Handler) AbandonDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AbandonDraft")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, errMissingPrincipal())
		return
	}

	if err := h.draftService.Abandon(ctx, principal.ID); err != nil {
		h.logger.WarnContext(ctx, "abandon draft failed", "organizer_id", principal.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "abandoned"})
}

func errMissingPrincipal() error {
	return fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
}

type updateDraftRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=120"`
	Description *string `json:"description" validate:"omitempty,max=200"`
	DeadlineUTC *string `json:"deadlineUtc"`
	LeagueID    *int64  `json:"leagueId" validate:"omitempty,gt=0"`
	Round       *string `json:"round"`
}

type toggleMatchRequest struct {
	ID           string `json:"id" validate:"required"`
	LeagueID     int64  `json:"leagueId" validate:"required,gt=0"`
	LeagueName   string `json:"leagueName"`
	Round        string `json:"round"`
	HomeTeam     string `json:"homeTeam" validate:"required"`
	AwayTeam     string `json:"awayTeam" validate:"required"`
	HomeLogoURL  string `json:"homeLogoUrl"`
	AwayLogoURL  string `json:"awayLogoUrl"`
	KickoffAtUTC string `json:"kickoffAtUtc" validate:"required"`
}

type addLeagueRequest struct {
	ID        int64  `json:"id" validate:"required,gt=0"`
	Name      string `json:"name" validate:"required,max=80"`
	ShortName string `json:"shortName" validate:"omitempty,max=12"`
	LogoURL   string `json:"logoUrl"`
}
