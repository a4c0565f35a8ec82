package server

import (
	"context"
	"errors"

	"github.com/playperu/dinnerbracket/internal/restaurant"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// Catalog is the restaurant dataset tournaments are seeded from. Listings are
// in dataset order (insertion order), which breaks rating ties when seeding.
type Catalog interface {
	ListRestaurants(ctx context.Context, cuisine string) ([]restaurant.Candidate, error)
	ListCuisines(ctx context.Context) ([]string, error)
	CountRestaurants(ctx context.Context) (int, error)
	CreateRestaurant(ctx context.Context, c restaurant.Candidate) (restaurant.Candidate, error)
	DeleteRestaurant(ctx context.Context, id int64) error
}
