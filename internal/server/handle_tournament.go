package server

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/playperu/dinnerbracket/internal/bracket"
	"github.com/playperu/dinnerbracket/internal/restaurant"
	"github.com/playperu/dinnerbracket/internal/session"
)

const msgNotEnough = "Not enough restaurants match your criteria. Please try again."

type StartTournamentRequest struct {
	Cuisine     string      `json:"cuisine"`
	MaxBudget   OptionalInt `json:"maxBudget"`
	MaxDistance *float64    `json:"maxDistance"`
}

func (req *StartTournamentRequest) filter() (restaurant.Filter, string) {
	cuisine := strings.ToLower(strings.TrimSpace(req.Cuisine))
	if cuisine == "" {
		cuisine = restaurant.AnyCuisine
	}
	if req.MaxDistance == nil {
		return restaurant.Filter{}, "maxDistance is required"
	}
	d := *req.MaxDistance
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return restaurant.Filter{}, "maxDistance must be a non-negative number"
	}
	return restaurant.Filter{
		Cuisine:     cuisine,
		MaxBudget:   req.MaxBudget.Ptr(),
		MaxDistance: d,
	}, ""
}

type TournamentResponse struct {
	ID         string                 `json:"id"`
	Token      string                 `json:"token,omitempty"`
	Filter     restaurant.Filter      `json:"filter"`
	Contenders []restaurant.Candidate `json:"contenders,omitempty"`
	CreatedAt  time.Time              `json:"createdAt"`
	Bracket    bracket.View           `json:"bracket"`
}

// handleStartTournament seeds and builds a new bracket. A Bearer token naming
// a live session replaces that session's tournament; otherwise a new session
// is created and its token returned.
func handleStartTournament(logger *slog.Logger, catalog Catalog, sessions session.Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req StartTournamentRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		f, msg := req.filter()
		if msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		token, err := sessionToken(r)
		fresh := err != nil
		if !fresh {
			_, err := sessions.Get(r.Context(), token)
			if errors.Is(err, session.ErrNotFound) {
				fresh = true
			} else if err != nil {
				logger.Error("reading session", "error", err)
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
		}
		if fresh {
			token = uuid.NewString()
		}

		candidates, err := catalog.ListRestaurants(r.Context(), "")
		if err != nil {
			logger.Error("listing restaurants", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		contenders, err := bracket.Seed(candidates, f)
		if errors.Is(err, bracket.ErrInsufficientContenders) {
			if !fresh {
				if err := sessions.Delete(r.Context(), token); err != nil && !errors.Is(err, session.ErrNotFound) {
					logger.Error("discarding tournament", "error", err)
				}
			}
			writeError(w, http.StatusUnprocessableEntity, msgNotEnough)
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		b, err := bracket.Build(contenders)
		if err == nil {
			err = b.Activate(1)
		}
		if err != nil {
			logger.Error("building bracket", "contenders", len(contenders), "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		t := session.Tournament{
			ID:        uuid.NewString(),
			Filter:    f,
			Bracket:   b,
			CreatedAt: time.Now().UTC(),
		}
		if err := sessions.Put(r.Context(), token, t); err != nil {
			logger.Error("storing tournament", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		logger.Info("tournament started",
			"tournament_id", t.ID,
			"cuisine", f.Cuisine,
			"contenders", len(contenders),
			"rounds", b.TotalRounds(),
		)
		broker.Publish(token, BracketEvent{Type: eventTournamentStarted, TournamentID: t.ID})

		resp := TournamentResponse{
			ID:         t.ID,
			Filter:     f,
			Contenders: contenders,
			CreatedAt:  t.CreatedAt,
			Bracket:    bracket.Project(b),
		}
		if fresh {
			resp.Token = token
		}
		writeJSON(w, http.StatusCreated, resp)
	}
}

func handleTournamentState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t := tournamentFrom(r)
		writeJSON(w, http.StatusOK, TournamentResponse{
			ID:        t.ID,
			Filter:    t.Filter,
			CreatedAt: t.CreatedAt,
			Bracket:   bracket.Project(t.Bracket),
		})
	}
}
