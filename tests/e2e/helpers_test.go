//go:build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres"
	abundancerepo "github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres/abundance"
	conversationrepo "github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres/conversation"
	dreamrepo "github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres/dream"
	journalrepo "github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres/journal"
	profilerepo "github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres/profile"
	settingsrepo "github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres/settings"
	"github.com/heartmarshall/dreamboard-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/dreamboard-backend/internal/config"
	"github.com/heartmarshall/dreamboard-backend/internal/domain"
	abundancesvc "github.com/heartmarshall/dreamboard-backend/internal/service/abundance"
	"github.com/heartmarshall/dreamboard-backend/internal/service/assistant"
	"github.com/heartmarshall/dreamboard-backend/internal/service/backup"
	dreamsvc "github.com/heartmarshall/dreamboard-backend/internal/service/dream"
	journalsvc "github.com/heartmarshall/dreamboard-backend/internal/service/journal"
	profilesvc "github.com/heartmarshall/dreamboard-backend/internal/service/profile"
	settingssvc "github.com/heartmarshall/dreamboard-backend/internal/service/settings"
	specsvc "github.com/heartmarshall/dreamboard-backend/internal/service/spec"
	"github.com/heartmarshall/dreamboard-backend/internal/transport/middleware"
	"github.com/heartmarshall/dreamboard-backend/internal/transport/rest"
)

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// ---------------------------------------------------------------------------
// Stub generation client. Text replies echo a canned string; image replies
// return a tiny PNG-tagged payload. Failures are switchable per test.
// ---------------------------------------------------------------------------

type stubGenerator struct {
	mu        sync.Mutex
	failImage bool
	failText  bool
	imageCall int
}

func (s *stubGenerator) GenerateText(_ context.Context, prompt string, _ bool) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failText {
		return "", domain.NewGenerationError("text", fmt.Errorf("stub: text generation disabled"))
	}
	return "stub reply to: " + prompt, nil
}

func (s *stubGenerator) GenerateImage(_ context.Context, _ string, _ []domain.ImageRef) (*domain.ImageRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failImage {
		return nil, domain.NewGenerationError("image", fmt.Errorf("stub: image generation disabled"))
	}
	s.imageCall++
	return &domain.ImageRef{
		MIMEType: "image/png",
		Data:     []byte(fmt.Sprintf("stub-image-%d", s.imageCall)),
	}, nil
}

func (s *stubGenerator) setFailImage(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failImage = fail
}

// ---------------------------------------------------------------------------
// testServer wraps the full-stack HTTP server for E2E tests.
// ---------------------------------------------------------------------------

type testServer struct {
	URL       string
	Client    *http.Client
	Pool      *pgxpool.Pool
	Generator *stubGenerator
}

// setupTestServer bootstraps the full application stack backed by a real
// PostgreSQL container (shared via testhelper). Generation goes through a
// stub so no upstream credentials are needed.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	dreams := dreamrepo.New(pool)
	profiles := profilerepo.New(pool)
	journal := journalrepo.New(pool)
	conversations := conversationrepo.New(pool)
	abundance := abundancerepo.New(pool)
	settings := settingsrepo.New(pool)

	gen := &stubGenerator{}

	dreamService := dreamsvc.NewService(logger, dreams)
	specService := specsvc.NewService(logger, dreams, profiles, gen)
	profileService := profilesvc.NewService(logger, profiles)
	journalService := journalsvc.NewService(logger, journal, settings)
	abundanceService := abundancesvc.NewService(logger, abundance)
	settingsService := settingssvc.NewService(logger, settings)
	assistantService := assistant.NewService(logger, conversations, gen)
	backupService := backup.NewService(logger, dreams, profiles, journal, conversations, abundance, settings, txm)

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	t.Cleanup(rateLimiter.Stop)

	const maxBody = 10 << 20

	mux := rest.NewRouter(rest.Handlers{
		Health:    rest.NewHealthHandler(pool, "test-version"),
		Dream:     rest.NewDreamHandler(dreamService, logger),
		Spec:      rest.NewSpecHandler(specService, logger),
		Profile:   rest.NewProfileHandler(profileService, logger),
		Journal:   rest.NewJournalHandler(journalService, logger),
		Abundance: rest.NewAbundanceHandler(abundanceService, logger),
		Settings:  rest.NewSettingsHandler(settingsService, logger),
		Assistant: rest.NewAssistantHandler(assistantService, logger),
		Backup:    rest.NewBackupHandler(backupService, maxBody, logger),
		Generate:  rest.NewGenerateHandler(gen, gen, maxBody, logger),
	}, rateLimiter.Limit(1000))

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
			AllowedHeaders: "Content-Type,X-Active-Profile",
			MaxAge:         86400,
		}),
		middleware.ActiveProfile(),
	)(mux)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:       srv.URL,
		Client:    srv.Client(),
		Pool:      pool,
		Generator: gen,
	}
}

// do sends a JSON request and decodes the JSON response into out (when out
// is non-nil and the body is non-empty).
func (ts *testServer) do(t *testing.T, method, path string, body any, headers map[string]string, out any) int {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, ts.URL+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	if out != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, out), "body: %s", raw)
	}

	return resp.StatusCode
}

func (ts *testServer) get(t *testing.T, path string, out any) int {
	return ts.do(t, http.MethodGet, path, nil, nil, out)
}

func (ts *testServer) post(t *testing.T, path string, body, out any) int {
	return ts.do(t, http.MethodPost, path, body, nil, out)
}
