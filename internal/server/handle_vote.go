package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/playperu/dinnerbracket/internal/bracket"
	"github.com/playperu/dinnerbracket/internal/restaurant"
	"github.com/playperu/dinnerbracket/internal/session"
)

type VoteRequest struct {
	Round   int `json:"round"`
	Matchup int `json:"matchup"`
	Pick    int `json:"pick"`
}

type VoteResponse struct {
	Outcome   bracket.Outcome       `json:"outcome"`
	Round     int                   `json:"round"`
	Matchup   int                   `json:"matchup"`
	Winner    restaurant.Candidate  `json:"winner"`
	NextRound int                   `json:"nextRound,omitempty"`
	Champion  *bracket.ChampionView `json:"champion,omitempty"`
	Bracket   bracket.View          `json:"bracket"`
}

func handleVote(logger *slog.Logger, sessions session.Store, broker *Broker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VoteRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		token := tokenFrom(r)

		var (
			res          bracket.VoteResult
			view         bracket.View
			tournamentID string
		)
		err := sessions.Update(r.Context(), token, func(t *session.Tournament) error {
			var err error
			res, err = t.Bracket.RecordVote(req.Round, req.Matchup, req.Pick)
			if err != nil {
				return err
			}
			view = bracket.Project(t.Bracket)
			tournamentID = t.ID
			return nil
		})
		switch {
		case errors.Is(err, session.ErrNotFound):
			writeError(w, http.StatusUnauthorized, "invalid or missing session token")
			return
		case errors.Is(err, bracket.ErrNoSuchMatchup):
			writeError(w, http.StatusNotFound, "matchup not found")
			return
		case errors.Is(err, bracket.ErrAlreadyDecided):
			writeError(w, http.StatusConflict, "matchup already decided")
			return
		case errors.Is(err, bracket.ErrRoundInactive):
			writeError(w, http.StatusConflict, "round is not open for voting")
			return
		case errors.Is(err, bracket.ErrInvalidSlot):
			writeError(w, http.StatusBadRequest, "pick must name a decided contender in the matchup")
			return
		case err != nil:
			logger.Error("recording vote", "round", req.Round, "matchup", req.Matchup, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		event := BracketEvent{
			Type:         string(res.Outcome),
			TournamentID: tournamentID,
			Round:        res.Round,
			Matchup:      &res.Matchup,
			Winner:       res.Winner.Name,
			NextRound:    res.NextRound,
		}
		if res.Champion != nil {
			event.Champion = res.Champion.Name
			logger.Info("tournament complete", "tournament_id", tournamentID, "champion", res.Champion.Name)
		}
		broker.Publish(token, event)

		writeJSON(w, http.StatusOK, VoteResponse{
			Outcome:   res.Outcome,
			Round:     res.Round,
			Matchup:   res.Matchup,
			Winner:    res.Winner,
			NextRound: res.NextRound,
			Champion:  view.Champion,
			Bracket:   view,
		})
	}
}
