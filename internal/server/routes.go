package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Dinner Bracket API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, deps.Checks))

	r.Get("/api/restaurants", handleListRestaurants(logger, deps.Catalog))
	r.Get("/api/cuisines", handleListCuisines(logger, deps.Catalog))
	r.Post("/api/tournaments", handleStartTournament(logger, deps.Catalog, deps.Sessions, deps.Broker))

	// Session routes, token resolved by sessionMiddleware.
	r.Route("/api/tournament", func(r chi.Router) {
		r.Use(sessionMiddleware(deps.Sessions))
		r.Get("/", handleTournamentState())
		r.Post("/votes", handleVote(logger, deps.Sessions, deps.Broker))
		r.Get("/events", handleEvents(deps.Broker))
		r.Get("/ws", handleTournamentWS(logger, deps.Broker))
	})

	r.Route("/api/admin/restaurants", func(r chi.Router) {
		r.Use(adminKeyMiddleware(deps.AdminKeyHash))
		r.Post("/", handleAdminCreateRestaurant(logger, deps.Catalog))
		r.Delete("/{id}", handleAdminDeleteRestaurant(logger, deps.Catalog))
	})

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
