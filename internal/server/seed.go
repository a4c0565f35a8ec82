package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/playperu/dinnerbracket/internal/restaurant"
)

// SeedCatalog loads the built-in dataset, in order, into an empty catalog.
// Idempotent: does nothing if the catalog already has restaurants.
func SeedCatalog(ctx context.Context, logger *slog.Logger, catalog Catalog) error {
	n, err := catalog.CountRestaurants(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	dataset, err := restaurant.DefaultDataset()
	if err != nil {
		return err
	}
	for _, c := range dataset {
		if _, err := catalog.CreateRestaurant(ctx, c); err != nil {
			return fmt.Errorf("seeding %q: %w", c.Name, err)
		}
	}

	logger.Info("catalog seeded", "restaurants", len(dataset))
	return nil
}
