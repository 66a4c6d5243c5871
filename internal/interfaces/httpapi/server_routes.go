package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/catalog/leagues", handler.ListCatalogLeagues)
	mux.HandleFunc("GET /v1/catalog/leagues/{leagueID}", handler.GetCatalogLeague)
	mux.HandleFunc("GET /v1/catalog/leagues/{leagueID}/rounds", handler.ListCatalogRounds)
	mux.HandleFunc("GET /v1/catalog/leagues/{leagueID}/fixtures", handler.ListCatalogFixtures)
}

func registerPoolRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.HandleFunc("GET /v1/pools", handler.ListPools)
	mux.HandleFunc("GET /v1/pools/{poolID}", handler.GetPool)
	mux.HandleFunc("GET /v1/pools/{poolID}/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("POST /v1/pools/{poolID}/quote", handler.QuoteSelections)
	mux.Handle("POST /v1/pools/{poolID}/entries", RequireAuth(verifier, http.HandlerFunc(handler.SubmitEntry)))
	mux.Handle("GET /v1/pools/{poolID}/entries/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyEntry)))
}

func registerDraftRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/draft", RequireAuth(verifier, http.HandlerFunc(handler.GetDraft)))
	mux.Handle("PATCH /v1/draft", RequireAuth(verifier, http.HandlerFunc(handler.UpdateDraft)))
	mux.Handle("DELETE /v1/draft", RequireAuth(verifier, http.HandlerFunc(handler.AbandonDraft)))
	mux.Handle("POST /v1/draft/matches", RequireAuth(verifier, http.HandlerFunc(handler.ToggleDraftMatch)))
	mux.Handle("POST /v1/draft/leagues", RequireAuth(verifier, http.HandlerFunc(handler.AddDraftLeague)))
	mux.Handle("DELETE /v1/draft/leagues/{leagueID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveDraftLeague)))
	mux.Handle("POST /v1/draft/publish", RequireAuth(verifier, http.HandlerFunc(handler.PublishDraft)))
}
