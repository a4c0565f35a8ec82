package server

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/dinnerbracket/internal/restaurant"
)

type AdminRestaurantRequest struct {
	Name     string  `json:"name"`
	Cuisine  string  `json:"cuisine"`
	Budget   int     `json:"budget"`
	Rating   float64 `json:"rating"`
	Distance float64 `json:"distance"`
}

func (req *AdminRestaurantRequest) validate() string {
	req.Name = strings.TrimSpace(req.Name)
	req.Cuisine = strings.ToLower(strings.TrimSpace(req.Cuisine))
	if req.Name == "" {
		return "name is required"
	}
	if req.Cuisine == "" || req.Cuisine == restaurant.AnyCuisine {
		return "cuisine is required"
	}
	if req.Budget < 1 || req.Budget > 4 {
		return "budget must be between 1 and 4"
	}
	if math.IsNaN(req.Rating) || req.Rating < 0 || req.Rating > 5 {
		return "rating must be between 0 and 5"
	}
	if math.IsNaN(req.Distance) || req.Distance < 0 {
		return "distance must be non-negative"
	}
	return ""
}

func handleAdminCreateRestaurant(logger *slog.Logger, catalog Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdminRestaurantRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := req.validate(); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		c, err := catalog.CreateRestaurant(r.Context(), restaurant.Candidate{
			Name:     req.Name,
			Cuisine:  req.Cuisine,
			Budget:   req.Budget,
			Rating:   req.Rating,
			Distance: req.Distance,
		})
		if errors.Is(err, ErrConflict) {
			writeError(w, http.StatusConflict, "restaurant already exists")
			return
		}
		if err != nil {
			logger.Error("creating restaurant", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusCreated, c)
	}
}

func handleAdminDeleteRestaurant(logger *slog.Logger, catalog Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid restaurant id")
			return
		}

		err = catalog.DeleteRestaurant(r.Context(), id)
		if errors.Is(err, ErrNotFound) {
			writeError(w, http.StatusNotFound, "restaurant not found")
			return
		}
		if err != nil {
			logger.Error("deleting restaurant", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
