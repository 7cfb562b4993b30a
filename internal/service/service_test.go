package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/deckhaven/deckhaven-server/internal/domain"
	"github.com/deckhaven/deckhaven-server/internal/search"
	"github.com/deckhaven/deckhaven-server/internal/store/sqlite"
	"github.com/deckhaven/deckhaven-server/internal/validation"
)

// testEnv bundles the shared dependencies for service tests.
type testEnv struct {
	store *sqlite.Store
	index *search.DeckIndex

	auth     *AuthService
	cards    *CardService
	decks    *DeckService
	comments *CommentService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "service-test-*")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	testStore, err := sqlite.Open(filepath.Join(tmpDir, "test.db"), logger)
	require.NoError(t, err)

	index, err := search.NewDeckIndex(search.Options{DataPath: tmpDir, Logger: logger})
	require.NoError(t, err)

	t.Cleanup(func() {
		index.Close()
		testStore.Close()
		os.RemoveAll(tmpDir)
	})

	v := validation.New()
	return &testEnv{
		store:    testStore,
		index:    index,
		auth:     NewAuthService(testStore, v, logger),
		cards:    NewCardService(testStore, v, logger),
		decks:    NewDeckService(testStore, index, v, logger),
		comments: NewCommentService(testStore, v, logger),
	}
}

// seedUser creates a user account directly in the store.
func seedUser(t *testing.T, env *testEnv, id, username string) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           id,
		Username:     username,
		PasswordHash: "unused",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, env.store.CreateUser(context.Background(), u))
	return u
}

// seedCatalog creates n catalog cards named "Card 1".."Card n" with the
// given color, returning their IDs in order.
func seedCatalog(t *testing.T, env *testEnv, n int, color domain.CardColor) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		c := &domain.Card{
			ID:        fmt.Sprintf("card-%s-%d", color, i),
			Name:      fmt.Sprintf("%s Card %d", color, i),
			Color:     color,
			CreatedAt: time.Now(),
		}
		require.NoError(t, env.store.CreateCard(context.Background(), c))
		ids = append(ids, c.ID)
	}
	return ids
}

// fullComposition spreads exactly 52 copies over the given card IDs,
// four copies each across thirteen cards.
func fullComposition(t *testing.T, cardIDs []string) []DeckCardInput {
	t.Helper()
	require.GreaterOrEqual(t, len(cardIDs), 13)
	rows := make([]DeckCardInput, 0, 13)
	for _, id := range cardIDs[:13] {
		rows = append(rows, DeckCardInput{CardID: id, Quantity: 4})
	}
	return rows
}

// seedDeck creates a valid 52-card deck through the service.
func seedDeck(t *testing.T, env *testEnv, authorID, title string) *domain.Deck {
	t.Helper()
	ids := seedCatalog(t, env, 13, domain.CardColorRed)
	deck, err := env.decks.CreateDeck(context.Background(), authorID, CreateDeckRequest{
		Title: title,
		Color: string(domain.DeckColorRed),
		Cards: fullComposition(t, ids),
	})
	require.NoError(t, err)
	return deck
}
