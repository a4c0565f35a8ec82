package server

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/playperu/dinnerbracket/internal/restaurant"
)

func handleListRestaurants(logger *slog.Logger, catalog Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cuisine := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("cuisine")))
		if cuisine == restaurant.AnyCuisine {
			cuisine = ""
		}

		list, err := catalog.ListRestaurants(r.Context(), cuisine)
		if err != nil {
			logger.Error("listing restaurants", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if list == nil {
			list = []restaurant.Candidate{}
		}
		writeJSON(w, http.StatusOK, list)
	}
}

func handleListCuisines(logger *slog.Logger, catalog Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cuisines, err := catalog.ListCuisines(r.Context())
		if err != nil {
			logger.Error("listing cuisines", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if cuisines == nil {
			cuisines = []string{}
		}
		writeJSON(w, http.StatusOK, cuisines)
	}
}
