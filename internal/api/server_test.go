package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckhaven/deckhaven-server/internal/auth"
	"github.com/deckhaven/deckhaven-server/internal/domain"
	"github.com/deckhaven/deckhaven-server/internal/search"
	"github.com/deckhaven/deckhaven-server/internal/service"
	"github.com/deckhaven/deckhaven-server/internal/store/sqlite"
	"github.com/deckhaven/deckhaven-server/internal/validation"
)

const (
	testModeratorUser = "moderator"
	testModeratorPass = "keep-the-catalog-clean"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api humatest.TestAPI
}

// setupTestServer creates a server backed by a temporary database and
// index, without the production middleware stack.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tmpDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(tmpDir, "test.db"), logger)
	require.NoError(t, err)

	index, err := search.NewDeckIndex(search.Options{DataPath: tmpDir, Logger: logger})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = index.Close()
		_ = st.Close()
	})

	v := validation.New()
	services := &Services{
		Auth:     service.NewAuthService(st, v, logger),
		Cards:    service.NewCardService(st, v, logger),
		Decks:    service.NewDeckService(st, index, v, logger),
		Comments: service.NewCommentService(st, v, logger),
	}

	router := chi.NewRouter()

	humaConfig := huma.DefaultConfig("DeckHaven API Test", "1.0.0")
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	humaAPI := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:           st,
		services:        services,
		authorizer:      auth.NewModeratorAuth(testModeratorUser, testModeratorPass),
		index:           index,
		router:          router,
		api:             humaAPI,
		logger:          logger,
		authRateLimiter: NewRateLimiter(100, time.Minute, 50),
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerCardRoutes()
	s.registerDeckRoutes()
	s.registerCommentRoutes()

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, humaAPI),
	}
}

// moderatorHeader builds a valid basic Authorization header line.
func moderatorHeader() string {
	creds := base64.StdEncoding.EncodeToString([]byte(testModeratorUser + ":" + testModeratorPass))
	return "Authorization: Basic " + creds
}

// createTestUser signs a user up through the API.
func (ts *testServer) createTestUser(t *testing.T, username string) {
	t.Helper()

	resp := ts.api.Post("/api/v1/auth/signup", map[string]any{
		"username": username,
		"password": "hunter2-but-longer",
	})
	require.Equal(t, http.StatusOK, resp.Code, "signup failed: %s", resp.Body.String())
}

// seedTestCatalog writes n cards of one color directly to the store and
// returns their IDs.
func (ts *testServer) seedTestCatalog(t *testing.T, n int, color domain.CardColor) []string {
	t.Helper()
	ctx := context.Background()

	ids := make([]string, n)
	for i := 0; i < n; i++ {
		card := &domain.Card{
			ID:        string(color) + "-card-" + string(rune('a'+i)),
			Name:      string(color) + " Card " + string(rune('A'+i)),
			Color:     color,
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, ts.store.CreateCard(ctx, card))
		ids[i] = card.ID
	}
	return ids
}

// fullDeckRows builds a 52-card composition from 13 card IDs.
func fullDeckRows(ids []string) []map[string]any {
	rows := make([]map[string]any, len(ids))
	for i, id := range ids {
		rows[i] = map[string]any{"cardId": id, "quantity": 4}
	}
	return rows
}

// createTestDeck seeds a catalog, a user, and a deck; returns the deck ID.
func (ts *testServer) createTestDeck(t *testing.T, username string) string {
	t.Helper()

	ts.createTestUser(t, username)
	ids := ts.seedTestCatalog(t, 13, domain.CardColorRed)

	resp := ts.api.Post("/api/v1/decks", map[string]any{
		"username": username,
		"title":    "Burn Plan",
		"color":    "RED",
		"cards":    fullDeckRows(ids),
	})
	require.Equal(t, http.StatusOK, resp.Code, "create deck failed: %s", resp.Body.String())

	var envelope testEnvelope[DeckResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope.Data.ID
}

// === Tests ===

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HealthResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.Equal(t, "healthy", envelope.Data.Status)
	assert.Equal(t, "healthy", envelope.Data.Components["database"].Status)
	assert.Equal(t, "healthy", envelope.Data.Components["search"].Status)
}

func TestEnvelope_SuccessShape(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "200", map[string]string{"id": "deck-1"})
	require.NoError(t, err)

	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))

	assert.Equal(t, float64(1), out["v"])
	assert.Equal(t, true, out["success"])
	assert.Contains(t, out, "data")
	assert.NotContains(t, out, "version")
}

func TestEnvelope_SimpleErrorShape(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "404", &APIError{Message: "deck not found"})
	require.NoError(t, err)

	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))

	assert.Equal(t, float64(1), out["v"])
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "deck not found", out["error"])
	assert.NotContains(t, out, "data")
}

func TestEnvelope_DetailedErrorShape(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "409", &APIError{
		Code:    "CONFLICT",
		Message: "card name already exists",
		Details: map[string]string{"name": "Dragon"},
	})
	require.NoError(t, err)

	raw, err := json.Marshal(result)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))

	assert.Equal(t, false, out["success"])
	assert.Equal(t, "CONFLICT", out["code"])
	assert.Equal(t, "card name already exists", out["message"])
	assert.Contains(t, out, "details")
}

func TestParseBasicAuth(t *testing.T) {
	user, pass, ok := parseBasicAuth("Basic " + base64.StdEncoding.EncodeToString([]byte("mod:sw0rdfish")))
	require.True(t, ok)
	assert.Equal(t, "mod", user)
	assert.Equal(t, "sw0rdfish", pass)

	_, _, ok = parseBasicAuth("Bearer some-token")
	assert.False(t, ok)

	_, _, ok = parseBasicAuth("Basic not-base64!!!")
	assert.False(t, ok)

	_, _, ok = parseBasicAuth("")
	assert.False(t, ok)
}
