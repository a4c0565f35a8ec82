// Package session keeps the one live tournament owned by each player session.
// Starting a new tournament replaces whatever the session held before.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/playperu/dinnerbracket/internal/bracket"
	"github.com/playperu/dinnerbracket/internal/restaurant"
)

var ErrNotFound = errors.New("session not found")

// Tournament is the session-owned wrapper around a bracket.
type Tournament struct {
	ID        string            `json:"id"`
	Filter    restaurant.Filter `json:"filter"`
	Bracket   *bracket.Bracket  `json:"bracket"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Store persists tournaments by session token. Update runs fn on a private
// copy and writes it back only if fn returns nil; concurrent updates of the
// same token are serialized.
type Store interface {
	Get(ctx context.Context, token string) (Tournament, error)
	Put(ctx context.Context, token string, t Tournament) error
	Update(ctx context.Context, token string, fn func(*Tournament) error) error
	Delete(ctx context.Context, token string) error
}

func encode(t Tournament) ([]byte, error) {
	data, err := json.Marshal(t)
	if err != nil {
		return nil, fmt.Errorf("encoding tournament: %w", err)
	}
	return data, nil
}

func decode(data []byte) (Tournament, error) {
	var t Tournament
	if err := json.Unmarshal(data, &t); err != nil {
		return Tournament{}, fmt.Errorf("decoding tournament: %w", err)
	}
	if t.Bracket == nil {
		return Tournament{}, fmt.Errorf("decoding tournament %s: missing bracket", t.ID)
	}
	return t, nil
}
