package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckhaven/deckhaven-server/internal/domain"
	domainerrors "github.com/deckhaven/deckhaven-server/internal/errors"
)

func TestCardService_CreateCard(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	card, err := env.cards.CreateCard(ctx, CreateCardRequest{
		Name:  "Blazing Sword",
		Color: "RED",
	})
	require.NoError(t, err)
	assert.Equal(t, "Blazing Sword", card.Name)
	assert.Equal(t, domain.CardColorRed, card.Color)
	assert.NotEmpty(t, card.ID)
}

func TestCardService_CreateCard_InvalidColor(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.cards.CreateCard(context.Background(), CreateCardRequest{
		Name:  "Rainbow Blob",
		Color: "ORANGE",
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestCardService_CreateCard_DuplicateName(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.cards.CreateCard(ctx, CreateCardRequest{Name: "Ice King", Color: "BLUE"})
	require.NoError(t, err)

	_, err = env.cards.CreateCard(ctx, CreateCardRequest{Name: "ICE KING", Color: "BLUE"})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestCardService_DeleteCard(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	card, err := env.cards.CreateCard(ctx, CreateCardRequest{Name: "Fading Echo", Color: "PURPLE"})
	require.NoError(t, err)

	require.NoError(t, env.cards.DeleteCard(ctx, card.ID))

	_, err = env.cards.GetCard(ctx, card.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCardService_DeleteCard_InUse(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	seedUser(t, env, "user-1", "alice")
	deck := seedDeck(t, env, "user-1", "Red Rush")

	err := env.cards.DeleteCard(ctx, deck.Cards[0].CardID)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}
