package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}", handler.GetTournament)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/tournaments/{tournamentID}/bracket/players/{playerName}", handler.GetPlayerBracketStatus)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/resolve", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunResolveJob)))
}
