package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/playperu/dinnerbracket/internal/session"
)

type ctxKey int

const (
	ctxKeyToken ctxKey = iota
	ctxKeyTournament
)

// sessionMiddleware rejects requests without a live session and stores the
// token and a snapshot of its tournament in the context.
func sessionMiddleware(sessions session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := sessionToken(r)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or missing session token")
				return
			}

			t, err := sessions.Get(r.Context(), token)
			if errors.Is(err, session.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "invalid or missing session token")
				return
			}
			if err != nil {
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyToken, token)
			ctx = context.WithValue(ctx, ctxKeyTournament, t)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFrom(r *http.Request) string {
	return r.Context().Value(ctxKeyToken).(string)
}

func tournamentFrom(r *http.Request) session.Tournament {
	return r.Context().Value(ctxKeyTournament).(session.Tournament)
}
