package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCards_EmptyInitially(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/cards")
	assert.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListCardsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))

	assert.True(t, envelope.Success)
	assert.Empty(t, envelope.Data.Cards)
}

func TestCreateCard_RequiresModerator(t *testing.T) {
	ts := setupTestServer(t)

	body := map[string]any{"name": "Ice King", "color": "BLUE"}

	resp := ts.api.Post("/api/v1/cards", body)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Post("/api/v1/cards", body, "Authorization: Basic bm90OnJlYWw=")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Post("/api/v1/cards", body, moderatorHeader())
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[CardResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "Ice King", envelope.Data.Name)
	assert.Equal(t, "BLUE", envelope.Data.Color)
}

func TestCreateCard_DuplicateName(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/cards",
		map[string]any{"name": "Ice King", "color": "BLUE"}, moderatorHeader())
	require.Equal(t, http.StatusOK, resp.Code)

	// Case-insensitive duplicate.
	resp = ts.api.Post("/api/v1/cards",
		map[string]any{"name": "ICE KING", "color": "RED"}, moderatorHeader())
	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestCreateCard_InvalidColor(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/cards",
		map[string]any{"name": "Ice King", "color": "ORANGE"}, moderatorHeader())
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestDeleteCard_Lifecycle(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/cards",
		map[string]any{"name": "Ice King", "color": "BLUE"}, moderatorHeader())
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[CardResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	cardID := envelope.Data.ID

	// Unauthenticated delete is rejected.
	resp = ts.api.Delete("/api/v1/cards/" + cardID)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Delete("/api/v1/cards/"+cardID, moderatorHeader())
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/v1/cards/"+cardID, moderatorHeader())
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteCard_InUse(t *testing.T) {
	ts := setupTestServer(t)
	ts.createTestDeck(t, "brewmaster")

	resp := ts.api.Get("/api/v1/cards")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ListCardsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.Cards)

	resp = ts.api.Delete("/api/v1/cards/"+envelope.Data.Cards[0].ID, moderatorHeader())
	assert.Equal(t, http.StatusConflict, resp.Code)
}
