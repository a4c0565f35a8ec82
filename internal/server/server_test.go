package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/playperu/dinnerbracket/internal/database"
	"github.com/playperu/dinnerbracket/internal/migrations"
	"github.com/playperu/dinnerbracket/internal/session"
)

const testAdminKey = "let-me-in"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupCatalog returns an in-memory catalog holding the default dataset.
func setupCatalog(t *testing.T) *SQLiteCatalog {
	t.Helper()
	ctx := context.Background()

	db, err := database.Open(ctx, ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Run(ctx, db); err != nil {
		t.Fatalf("migrations: %v", err)
	}

	catalog := NewSQLiteCatalog(db)
	if err := SeedCatalog(ctx, discardLogger(), catalog); err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return catalog
}

type testEnv struct {
	router   http.Handler
	catalog  *SQLiteCatalog
	sessions *session.MemoryStore
	broker   *Broker
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminKey), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing admin key: %v", err)
	}

	env := &testEnv{
		catalog:  setupCatalog(t),
		sessions: session.NewMemoryStore(time.Hour),
		broker:   NewBroker(),
	}
	env.router = NewRouter(discardLogger(), Deps{
		Catalog:      env.catalog,
		Sessions:     env.sessions,
		Broker:       env.broker,
		AdminKeyHash: string(hash),
	})
	return env
}

// do sends a JSON request through the router. token may be empty.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		if s, ok := body.(string); ok {
			rd = bytes.NewBufferString(s)
		} else {
			data, err := json.Marshal(body)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			rd = bytes.NewReader(data)
		}
	}

	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// start begins a tournament in a new session and returns its token.
func (e *testEnv) start(t *testing.T, body string) (string, TournamentResponse) {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/tournaments", "", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("start: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp TournamentResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding start response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("start: empty session token")
	}
	return resp.Token, resp
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("decoding %T: %v", v, err)
	}
	return v
}
