package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/turugol/quiniela/internal/usecase"
)

func (h *Handler) ListCatalogLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCatalogLeagues")
	defer span.End()

	items, err := h.catalogService.Leagues(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list catalog leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]catalogLeagueDTO, 0, len(items))
	for _, item := range items {
		out = append(out, catalogLeagueDTO{
			ID:      item.ExternalID,
			Name:    item.Name,
			Country: item.Country,
			LogoURL: item.LogoURL,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetCatalogLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCatalogLeague")
	defer span.End()

	leagueID, err := parseLeagueID(r.PathValue("leagueID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.catalogService.League(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get catalog league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, catalogLeagueDTO{
		ID:      item.ExternalID,
		Name:    item.Name,
		Country: item.Country,
		LogoURL: item.LogoURL,
	})
}

func (h *Handler) ListCatalogRounds(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCatalogRounds")
	defer span.End()

	leagueID, err := parseLeagueID(r.PathValue("leagueID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rounds, selected, err := h.catalogService.Rounds(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list catalog rounds failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, catalogRoundsDTO{
		Rounds:   rounds,
		Selected: selected,
	})
}

func (h *Handler) ListCatalogFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCatalogFixtures")
	defer span.End()

	leagueID, err := parseLeagueID(r.PathValue("leagueID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	round := strings.TrimSpace(r.URL.Query().Get("round"))
	if round == "" {
		writeError(ctx, w, fmt.Errorf("%w: round query parameter is required", usecase.ErrInvalidInput))
		return
	}

	matches, err := h.catalogService.UpcomingFixtures(ctx, leagueID, round)
	if err != nil {
		h.logger.WarnContext(ctx, "list catalog fixtures failed", "league_id", leagueID, "round", round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchesToDTOs(matches))
}

func parseLeagueID(raw string) (int64, error) {
	leagueID, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || leagueID <= 0 {
		return 0, fmt.Errorf("%w: invalid league id %q", usecase.ErrInvalidInput, raw)
	}
	return leagueID, nil
}

type catalogLeagueDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
	LogoURL string `json:"logoUrl,omitempty"`
}

type catalogRoundsDTO struct {
	Rounds   []string `json:"rounds"`
	Selected string   `json:"selected,omitempty"`
}
