package server

import (
	"net/http"
	"testing"
)

func TestStartTournament(t *testing.T) {
	env := newTestEnv(t)

	_, resp := env.start(t, `{"cuisine": "any", "maxDistance": 25}`)

	if resp.ID == "" {
		t.Error("empty tournament id")
	}
	if len(resp.Contenders) != 8 {
		t.Fatalf("contenders = %d, want 8", len(resp.Contenders))
	}
	if resp.Contenders[0].Name != "El Fuego" || resp.Contenders[1].Name != "Sitar" {
		t.Errorf("top seeds = %q, %q", resp.Contenders[0].Name, resp.Contenders[1].Name)
	}

	b := resp.Bracket
	if b.TotalRounds != 3 || b.CurrentRound != 1 || b.Complete {
		t.Fatalf("bracket = %+v", b)
	}
	first := b.Rounds[0].Matchups[0]
	if first.Options[0].Name != "El Fuego" || first.Options[1].Name != "Sitar" || !first.CanVote {
		t.Errorf("first matchup = %+v", first)
	}
	if !b.Rounds[2].Matchups[0].Options[0].Placeholder {
		t.Error("final should start unresolved")
	}
}

func TestStartTournamentFilters(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantNames []string
	}{
		{
			name:      "italian within five",
			body:      `{"cuisine": "Italian", "maxDistance": 5}`,
			wantNames: []string{"Mama Mia's", "Pizza Palace"},
		},
		{
			name:      "unparseable budget means no budget",
			body:      `{"cuisine": "italian", "maxDistance": 5, "maxBudget": "abc"}`,
			wantNames: []string{"Mama Mia's", "Pizza Palace"},
		},
		{
			name:      "budget as string",
			body:      `{"cuisine": "any", "maxDistance": 3, "maxBudget": "1"}`,
			wantNames: []string{"Burrito Bonanza", "Taco Town", "The Burger Barn", "Pizza Palace"},
		},
		{
			name: "huge budget filters nothing",
			body: `{"cuisine": "any", "maxDistance": 100, "maxBudget": 1e300}`,
			wantNames: []string{"El Fuego", "Sitar", "The Great Wall", "Steakhouse Supreme",
				"Peking Duck House", "Curry House", "Mama Mia's", "Naan Stop"},
		},
		{
			name:      "missing cuisine means any",
			body:      `{"maxDistance": 3}`,
			wantNames: []string{"Mama Mia's", "Burrito Bonanza", "Taco Town", "The Burger Barn"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, resp := env.start(t, tt.body)

			if len(resp.Contenders) != len(tt.wantNames) {
				t.Fatalf("contenders = %d, want %d", len(resp.Contenders), len(tt.wantNames))
			}
			for i, want := range tt.wantNames {
				if got := resp.Contenders[i].Name; got != want {
					t.Errorf("contender %d = %q, want %q", i, got, want)
				}
			}
		})
	}
}

func TestStartTournamentBadRequest(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"invalid json", `{`, http.StatusBadRequest, "invalid request body"},
		{"missing distance", `{"cuisine": "any"}`, http.StatusBadRequest, "maxDistance is required"},
		{"negative distance", `{"cuisine": "any", "maxDistance": -1}`, http.StatusBadRequest, "maxDistance must be a non-negative number"},
		{"not enough", `{"cuisine": "thai", "maxDistance": 100}`, http.StatusUnprocessableEntity, msgNotEnough},
		{"only one", `{"cuisine": "american", "maxDistance": 2}`, http.StatusUnprocessableEntity, msgNotEnough},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			w := env.do(t, http.MethodPost, "/api/tournaments", "", tt.body)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if got := decode[ErrorResponse](t, w).Error; got != tt.wantError {
				t.Errorf("error = %q, want %q", got, tt.wantError)
			}
		})
	}
}

func TestStartTournamentReplacesSession(t *testing.T) {
	env := newTestEnv(t)
	token, first := env.start(t, `{"cuisine": "any", "maxDistance": 3}`)

	w := env.do(t, http.MethodPost, "/api/tournament/votes", token, VoteRequest{Round: 1, Matchup: 0, Pick: 0})
	if w.Code != http.StatusOK {
		t.Fatalf("vote: %d %s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodPost, "/api/tournaments", token, `{"cuisine": "any", "maxDistance": 3}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("restart: %d %s", w.Code, w.Body.String())
	}
	second := decode[TournamentResponse](t, w)
	if second.Token != "" {
		t.Error("restart in a live session should not issue a new token")
	}
	if second.ID == first.ID {
		t.Error("restart should create a new tournament")
	}

	w = env.do(t, http.MethodGet, "/api/tournament", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("state: %d %s", w.Code, w.Body.String())
	}
	state := decode[TournamentResponse](t, w)
	if state.ID != second.ID {
		t.Errorf("state id = %q, want %q", state.ID, second.ID)
	}
	if state.Bracket.Rounds[0].Matchups[0].Decided {
		t.Error("replacement bracket carried over a decided matchup")
	}
	if env.sessions.Len() != 1 {
		t.Errorf("sessions = %d, want 1", env.sessions.Len())
	}
}

func TestStartTournamentInsufficientDiscardsSession(t *testing.T) {
	env := newTestEnv(t)
	token, _ := env.start(t, `{"cuisine": "any", "maxDistance": 3}`)

	w := env.do(t, http.MethodPost, "/api/tournaments", token, `{"cuisine": "thai", "maxDistance": 3}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}

	w = env.do(t, http.MethodGet, "/api/tournament", token, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("state after failed restart: status = %d, want 401", w.Code)
	}
}

func TestStartTournamentUnknownToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/tournaments", "made-up", `{"cuisine": "any", "maxDistance": 3}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	resp := decode[TournamentResponse](t, w)
	if resp.Token == "" || resp.Token == "made-up" {
		t.Errorf("token = %q, want a fresh server-issued token", resp.Token)
	}
}

func TestTournamentStateUnauthorized(t *testing.T) {
	env := newTestEnv(t)

	for _, token := range []string{"", "nope"} {
		w := env.do(t, http.MethodGet, "/api/tournament", token, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("token %q: status = %d, want 401", token, w.Code)
		}
	}
}
