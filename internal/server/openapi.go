package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/dinnerbracket/internal/restaurant"
)

func newOpenAPISpec() (*openapi3.Spec, error) {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Dinner Bracket API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Single-elimination restaurant tournaments decided one vote at a time.")

	var errs []error
	add := func(method, path string, describe func(oc openapi.OperationContext)) {
		oc, err := r.NewOperationContext(method, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s %s: %w", method, path, err))
			return
		}
		describe(oc)
		if err := r.AddOperation(oc); err != nil {
			errs = append(errs, fmt.Errorf("%s %s: %w", method, path, err))
		}
	}

	// GET /healthz
	add(http.MethodGet, "/healthz", func(oc openapi.OperationContext) {
		oc.SetSummary("Health check")
		oc.SetDescription("Returns the health status of backend dependencies.")
		oc.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
		oc.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	})

	// GET /api/restaurants
	add(http.MethodGet, "/api/restaurants", func(oc openapi.OperationContext) {
		oc.SetSummary("List restaurants")
		oc.SetDescription("Returns the catalog in dataset order. Optional cuisine query parameter.")
		oc.AddRespStructure([]restaurant.Candidate{}, openapi.WithHTTPStatus(http.StatusOK))
	})

	// GET /api/cuisines
	add(http.MethodGet, "/api/cuisines", func(oc openapi.OperationContext) {
		oc.SetSummary("List cuisines")
		oc.SetDescription("Returns the distinct cuisines in the catalog.")
		oc.AddRespStructure([]string{}, openapi.WithHTTPStatus(http.StatusOK))
	})

	// POST /api/tournaments
	add(http.MethodPost, "/api/tournaments", func(oc openapi.OperationContext) {
		oc.SetSummary("Start tournament")
		oc.SetDescription("Filters and seeds the catalog and opens round 1. " +
			"Without a Bearer token a new session is created and its token returned.")
		oc.AddReqStructure(StartTournamentRequest{})
		oc.AddRespStructure(TournamentResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
		oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
		oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	})

	// GET /api/tournament
	add(http.MethodGet, "/api/tournament", func(oc openapi.OperationContext) {
		oc.SetSummary("Get tournament")
		oc.SetDescription("Returns the bracket of the session's tournament. Requires Bearer token.")
		oc.AddRespStructure(TournamentResponse{}, openapi.WithHTTPStatus(http.StatusOK))
		oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	})

	// POST /api/tournament/votes
	add(http.MethodPost, "/api/tournament/votes", func(oc openapi.OperationContext) {
		oc.SetSummary("Vote")
		oc.SetDescription("Decides one matchup. Requires Bearer token.")
		oc.AddReqStructure(VoteRequest{})
		oc.AddRespStructure(VoteResponse{}, openapi.WithHTTPStatus(http.StatusOK))
		oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
		oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
		oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
		oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	})

	// GET /api/tournament/events
	add(http.MethodGet, "/api/tournament/events", func(oc openapi.OperationContext) {
		oc.SetSummary("SSE event stream")
		oc.SetDescription("Server-Sent Events for votes in the session. Pass token as query parameter.")
		oc.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
			openapi.WithContentType("text/event-stream"))
	})

	// GET /api/tournament/ws
	add(http.MethodGet, "/api/tournament/ws", func(oc openapi.OperationContext) {
		oc.SetSummary("WebSocket event stream")
		oc.SetDescription("Upgrades to a WebSocket that carries the same events as the SSE stream.")
		oc.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
			openapi.WithContentType("text/plain"))
	})

	// POST /api/admin/restaurants
	add(http.MethodPost, "/api/admin/restaurants", func(oc openapi.OperationContext) {
		oc.SetSummary("Create restaurant")
		oc.SetDescription("Adds a catalog entry. Requires X-Admin-Key header.")
		oc.AddReqStructure(AdminRestaurantRequest{})
		oc.AddRespStructure(restaurant.Candidate{}, openapi.WithHTTPStatus(http.StatusCreated))
		oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
		oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
		oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	})

	// DELETE /api/admin/restaurants/{id}
	add(http.MethodDelete, "/api/admin/restaurants/{id}", func(oc openapi.OperationContext) {
		oc.SetSummary("Delete restaurant")
		oc.SetDescription("Removes a catalog entry. Requires X-Admin-Key header.")
		oc.AddReqStructure(struct {
			ID int64 `path:"id"`
		}{})
		oc.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
		oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
		oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	})

	return r.Spec, errors.Join(errs...)
}

func handleOpenAPI() http.HandlerFunc {
	spec, err := newOpenAPISpec()
	if err != nil {
		panic(fmt.Sprintf("building openapi spec: %v", err))
	}
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
