package server

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/playperu/dinnerbracket/internal/restaurant"
)

// SQLiteCatalog implements Catalog on the restaurants table.
type SQLiteCatalog struct {
	db *sql.DB
}

func NewSQLiteCatalog(db *sql.DB) *SQLiteCatalog {
	return &SQLiteCatalog{db: db}
}

// ListRestaurants returns every restaurant, or only those of one cuisine when
// cuisine is non-empty.
func (s *SQLiteCatalog) ListRestaurants(ctx context.Context, cuisine string) ([]restaurant.Candidate, error) {
	query := `SELECT id, name, cuisine, budget, rating, distance FROM restaurants`
	var args []any
	if cuisine != "" {
		query += ` WHERE cuisine = ?`
		args = append(args, cuisine)
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing restaurants: %w", err)
	}
	defer rows.Close()

	var out []restaurant.Candidate
	for rows.Next() {
		var c restaurant.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Cuisine, &c.Budget, &c.Rating, &c.Distance); err != nil {
			return nil, fmt.Errorf("scanning restaurant: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteCatalog) ListCuisines(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT cuisine FROM restaurants ORDER BY cuisine`)
	if err != nil {
		return nil, fmt.Errorf("listing cuisines: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scanning cuisine: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLiteCatalog) CountRestaurants(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM restaurants`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting restaurants: %w", err)
	}
	return n, nil
}

func (s *SQLiteCatalog) CreateRestaurant(ctx context.Context, c restaurant.Candidate) (restaurant.Candidate, error) {
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO restaurants (name, cuisine, budget, rating, distance)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`, c.Name, c.Cuisine, c.Budget, c.Rating, c.Distance).Scan(&c.ID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return restaurant.Candidate{}, ErrConflict
		}
		return restaurant.Candidate{}, fmt.Errorf("inserting restaurant: %w", err)
	}
	return c, nil
}

func (s *SQLiteCatalog) DeleteRestaurant(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM restaurants WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting restaurant: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
