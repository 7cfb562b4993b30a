package store

import (
	"context"

	"github.com/deckhaven/deckhaven-server/internal/domain"
)

// Store is the persistence interface for the DeckHaven server.
// The sqlite package provides the production implementation.
type Store interface {
	// Cards
	CreateCard(ctx context.Context, c *domain.Card) error
	GetCardByID(ctx context.Context, cardID string) (*domain.Card, error)
	ListCards(ctx context.Context) ([]*domain.Card, error)
	DeleteCard(ctx context.Context, cardID string) error

	// Users
	CreateUser(ctx context.Context, u *domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// Decks
	CreateDeck(ctx context.Context, d *domain.Deck) error
	GetDeckByID(ctx context.Context, deckID string) (*domain.Deck, error)
	ListDecks(ctx context.Context, limit int) ([]*domain.Deck, error)
	ListTopLikedByColor(ctx context.Context, color domain.DeckColor, limit int) ([]*domain.Deck, error)
	UpdateDeck(ctx context.Context, d *domain.Deck, replaceCards bool) error
	DeleteDeck(ctx context.Context, deckID string) error

	// Likes
	ToggleLike(ctx context.Context, userID, deckID string) (liked bool, err error)
	HasLiked(ctx context.Context, userID, deckID string) (bool, error)
	CountLikes(ctx context.Context, deckID string) (int, error)

	// Views
	RecordView(ctx context.Context, deckID, sessionID string) (counted bool, err error)

	// Comments
	CreateComment(ctx context.Context, c *domain.Comment) error
	GetCommentByID(ctx context.Context, commentID string) (*domain.Comment, error)
	ListCommentsForDeck(ctx context.Context, deckID string) ([]*domain.Comment, error)
	ListAllComments(ctx context.Context) ([]*domain.Comment, error)
	DeleteCommentWithReplies(ctx context.Context, commentID string) error

	Ping(ctx context.Context) error
	Close() error
}
