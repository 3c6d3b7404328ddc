//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/studyplan-backend/internal/adapter/postgres"
	"github.com/heartmarshall/studyplan-backend/internal/adapter/postgres/availability"
	"github.com/heartmarshall/studyplan-backend/internal/adapter/postgres/session"
	"github.com/heartmarshall/studyplan-backend/internal/adapter/postgres/subject"
	"github.com/heartmarshall/studyplan-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/studyplan-backend/internal/config"
	"github.com/heartmarshall/studyplan-backend/internal/service/planner"
	"github.com/heartmarshall/studyplan-backend/internal/service/planner/schedule"
	"github.com/heartmarshall/studyplan-backend/internal/transport/middleware"
	"github.com/heartmarshall/studyplan-backend/internal/transport/rest"
	"github.com/jackc/pgx/v5/pgxpool"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))

	svc := planner.NewService(
		logger,
		subject.New(pool),
		availability.New(pool),
		session.New(pool),
		postgres.NewTxManager(pool),
		schedule.DefaultParameters(),
	)

	mux := http.NewServeMux()
	rest.NewPlannerHandler(svc).Register(mux)

	health := rest.NewHealthHandler(pool, "e2e-test")
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(config.CORSConfig{AllowedOrigins: "*"}),
	)(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
	}
}

// doJSON performs an HTTP request with an optional JSON body and decodes the
// JSON response into out (when out is non-nil). Returns the status code.
func (ts *testServer) doJSON(t *testing.T, method, path string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}
