package server

import (
	"encoding/json"
	"sync"
)

// BracketEvent is the payload published to a session's subscribers.
// Round, Matchup and Winner are set only on vote events.
type BracketEvent struct {
	Type         string `json:"type"`
	TournamentID string `json:"tournamentId"`
	Round        int    `json:"round,omitempty"`
	Matchup      *int   `json:"matchup,omitempty"`
	Winner       string `json:"winner,omitempty"`
	NextRound    int    `json:"nextRound,omitempty"`
	Champion     string `json:"champion,omitempty"`
}

const eventTournamentStarted = "tournament_started"

// Broker is an in-process pub/sub for bracket events, keyed by session token.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for the given session.
func (b *Broker) Subscribe(token string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[token] == nil {
		b.subs[token] = make(map[chan []byte]struct{})
	}
	b.subs[token][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a channel from the session's subscribers.
func (b *Broker) Unsubscribe(token string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[token], ch)
	if len(b.subs[token]) == 0 {
		delete(b.subs, token)
	}
	b.mu.Unlock()
}

// Publish sends an event to all subscribers of the given session.
func (b *Broker) Publish(token string, event BracketEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[token] {
		select {
		case ch <- data:
		default:
			// Drop if subscriber is slow.
		}
	}
	b.mu.RUnlock()
}

// Subscribers returns the number of open subscriptions for a session.
func (b *Broker) Subscribers(token string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[token])
}
