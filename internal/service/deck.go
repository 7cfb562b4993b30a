package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/deckhaven/deckhaven-server/internal/codec"
	"github.com/deckhaven/deckhaven-server/internal/domain"
	domainerrors "github.com/deckhaven/deckhaven-server/internal/errors"
	"github.com/deckhaven/deckhaven-server/internal/id"
	"github.com/deckhaven/deckhaven-server/internal/search"
	"github.com/deckhaven/deckhaven-server/internal/store"
	"github.com/deckhaven/deckhaven-server/internal/validation"
)

// featuredPerColor caps how many decks each featured shelf holds.
const featuredPerColor = 5

// featuredColors are the shelves shown on the landing page.
var featuredColors = []domain.DeckColor{domain.DeckColorRed, domain.DeckColorBlue}

// DeckService manages deck aggregates: building rules, engagement,
// featured shelves, title search, and the portable clipboard format.
type DeckService struct {
	store     store.Store
	index     *search.DeckIndex
	validator *validation.Validator
	logger    *slog.Logger
}

// NewDeckService creates a new deck service.
func NewDeckService(store store.Store, index *search.DeckIndex, validator *validation.Validator, logger *slog.Logger) *DeckService {
	return &DeckService{
		store:     store,
		index:     index,
		validator: validator,
		logger:    logger,
	}
}

// DeckCardInput is one composition row in a create or update request.
type DeckCardInput struct {
	CardID   string `json:"cardId" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gte=1,lte=4"`
}

// CreateDeckRequest contains new deck data.
type CreateDeckRequest struct {
	Title       string          `json:"title" validate:"required,max=50"`
	Description *string         `json:"description,omitempty"`
	Color       string          `json:"color" validate:"required"`
	Cards       []DeckCardInput `json:"cards" validate:"required,min=1,dive"`
}

// UpdateDeckRequest contains replacement deck data. A nil Cards slice
// keeps the existing composition.
type UpdateDeckRequest struct {
	Title       string          `json:"title" validate:"required,max=50"`
	Description *string         `json:"description,omitempty"`
	Color       string          `json:"color" validate:"required"`
	Cards       []DeckCardInput `json:"cards,omitempty" validate:"omitempty,min=1,dive"`
}

// CreateDeck validates the composition against the building rules and
// persists the deck for authorID.
func (s *DeckService) CreateDeck(ctx context.Context, authorID string, req CreateDeckRequest) (*domain.Deck, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	color := domain.DeckColor(req.Color)
	if !color.Valid() {
		return nil, domainerrors.Validation("invalid deck color: " + req.Color)
	}

	cards, err := s.resolveComposition(ctx, req.Cards)
	if err != nil {
		return nil, err
	}

	deckID, err := id.Generate("deck")
	if err != nil {
		return nil, fmt.Errorf("generate deck ID: %w", err)
	}

	now := time.Now().UTC()
	deck := &domain.Deck{
		ID:          deckID,
		Title:       req.Title,
		Description: formatDescription(req.Description),
		Color:       color,
		AuthorID:    authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Cards:       cards,
	}

	if err := s.store.CreateDeck(ctx, deck); err != nil {
		return nil, fmt.Errorf("create deck: %w", err)
	}

	created, err := s.store.GetDeckByID(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("reload deck: %w", err)
	}

	if err := s.index.IndexDeck(search.NewDeckDocument(created)); err != nil {
		s.logger.Warn("failed to index deck", "deck_id", deckID, "error", err)
	}

	s.logger.Info("deck created", "deck_id", deckID, "author_id", authorID)

	return created, nil
}

// GetDeck returns a deck. A non-empty sessionID registers a view, which
// counts once per session. A non-empty viewerID echoes whether that user
// has liked the deck.
func (s *DeckService) GetDeck(ctx context.Context, deckID, sessionID, viewerID string) (*domain.Deck, bool, error) {
	deck, err := s.getDeck(ctx, deckID)
	if err != nil {
		return nil, false, err
	}

	if sessionID != "" {
		counted, err := s.store.RecordView(ctx, deckID, sessionID)
		if err != nil {
			return nil, false, fmt.Errorf("record view: %w", err)
		}
		if counted {
			deck.Views++
		}
	}

	liked := false
	if viewerID != "" {
		liked, err = s.store.HasLiked(ctx, viewerID, deckID)
		if err != nil {
			return nil, false, fmt.Errorf("check like: %w", err)
		}
	}

	return deck, liked, nil
}

// ListDecks returns all decks newest-first, without card detail.
func (s *DeckService) ListDecks(ctx context.Context) ([]*domain.Deck, error) {
	return s.store.ListDecks(ctx, 0)
}

// UpdateDeck replaces a deck's content. Only the author may update.
func (s *DeckService) UpdateDeck(ctx context.Context, userID, deckID string, req UpdateDeckRequest) (*domain.Deck, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	color := domain.DeckColor(req.Color)
	if !color.Valid() {
		return nil, domainerrors.Validation("invalid deck color: " + req.Color)
	}

	deck, err := s.getDeck(ctx, deckID)
	if err != nil {
		return nil, err
	}
	if deck.AuthorID != userID {
		return nil, domainerrors.Forbidden("only the author can edit this deck")
	}

	replaceCards := req.Cards != nil
	if replaceCards {
		deck.Cards, err = s.resolveComposition(ctx, req.Cards)
		if err != nil {
			return nil, err
		}
	}

	deck.Title = req.Title
	deck.Description = formatDescription(req.Description)
	deck.Color = color
	deck.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateDeck(ctx, deck, replaceCards); err != nil {
		return nil, fmt.Errorf("update deck: %w", err)
	}

	updated, err := s.store.GetDeckByID(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("reload deck: %w", err)
	}

	if err := s.index.IndexDeck(search.NewDeckDocument(updated)); err != nil {
		s.logger.Warn("failed to reindex deck", "deck_id", deckID, "error", err)
	}

	return updated, nil
}

// DeleteDeck removes a deck. The author or a moderator may delete.
func (s *DeckService) DeleteDeck(ctx context.Context, userID string, isModerator bool, deckID string) error {
	deck, err := s.getDeck(ctx, deckID)
	if err != nil {
		return err
	}
	if deck.AuthorID != userID && !isModerator {
		return domainerrors.Forbidden("only the author or a moderator can delete this deck")
	}

	if err := s.store.DeleteDeck(ctx, deckID); err != nil {
		return fmt.Errorf("delete deck: %w", err)
	}

	if err := s.index.DeleteDeck(deckID); err != nil {
		s.logger.Warn("failed to remove deck from index", "deck_id", deckID, "error", err)
	}

	s.logger.Info("deck deleted", "deck_id", deckID, "user_id", userID, "moderator", isModerator)

	return nil
}

// ToggleLike flips userID's like on a deck and returns the new state
// with a fresh count.
func (s *DeckService) ToggleLike(ctx context.Context, userID, deckID string) (liked bool, count int, err error) {
	if _, err := s.getDeck(ctx, deckID); err != nil {
		return false, 0, err
	}

	liked, err = s.store.ToggleLike(ctx, userID, deckID)
	if err != nil {
		return false, 0, fmt.Errorf("toggle like: %w", err)
	}

	count, err = s.store.CountLikes(ctx, deckID)
	if err != nil {
		return false, 0, fmt.Errorf("count likes: %w", err)
	}

	return liked, count, nil
}

// FeaturedShelf is one color's most-liked decks.
type FeaturedShelf struct {
	Color domain.DeckColor
	Decks []*domain.Deck
}

// FeaturedDecks returns the landing-page shelves: the five most-liked
// decks for each featured color.
func (s *DeckService) FeaturedDecks(ctx context.Context) ([]FeaturedShelf, error) {
	shelves := make([]FeaturedShelf, 0, len(featuredColors))
	for _, color := range featuredColors {
		decks, err := s.store.ListTopLikedByColor(ctx, color, featuredPerColor)
		if err != nil {
			return nil, fmt.Errorf("list featured %s decks: %w", color, err)
		}
		shelves = append(shelves, FeaturedShelf{Color: color, Decks: decks})
	}
	return shelves, nil
}

// SearchDecks finds decks by title, newest-first, capped at the search
// index's default limit.
func (s *DeckService) SearchDecks(ctx context.Context, query string) ([]*domain.Deck, error) {
	if query == "" {
		return []*domain.Deck{}, nil
	}

	ids, err := s.index.Search(ctx, query, 0)
	if err != nil {
		return nil, fmt.Errorf("search decks: %w", err)
	}

	decks := make([]*domain.Deck, 0, len(ids))
	for _, deckID := range ids {
		deck, err := s.store.GetDeckByID(ctx, deckID)
		if errors.Is(err, store.ErrNotFound) {
			// Index can lag a hard delete; skip the stale hit.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("load deck %s: %w", deckID, err)
		}
		decks = append(decks, deck)
	}

	return decks, nil
}

// ExportDeck renders a deck in the portable clipboard format.
func (s *DeckService) ExportDeck(ctx context.Context, deckID string) (domain.PortableDeck, error) {
	deck, err := s.getDeck(ctx, deckID)
	if err != nil {
		return domain.PortableDeck{}, err
	}
	return codec.Export(deck), nil
}

// ImportDeck resolves a portable payload against the catalog and returns
// a draft composition. Nothing is persisted; the client reviews the
// draft and saves through CreateDeck.
func (s *DeckService) ImportDeck(ctx context.Context, payload domain.PortableDeck) (*codec.ImportResult, error) {
	catalog, err := s.store.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return codec.Import(payload, catalog)
}

// ReindexAll rebuilds the search index from the store. Called at
// startup so the index always reflects the database.
func (s *DeckService) ReindexAll(ctx context.Context) error {
	decks, err := s.store.ListDecks(ctx, 0)
	if err != nil {
		return fmt.Errorf("list decks: %w", err)
	}

	docs := make([]*search.DeckDocument, 0, len(decks))
	for _, deck := range decks {
		docs = append(docs, search.NewDeckDocument(deck))
	}

	if err := s.index.IndexDecks(docs); err != nil {
		return fmt.Errorf("index decks: %w", err)
	}

	s.logger.Info("search index loaded", "decks", len(docs))

	return nil
}

// getDeck loads a deck, translating the store sentinel.
func (s *DeckService) getDeck(ctx context.Context, deckID string) (*domain.Deck, error) {
	deck, err := s.store.GetDeckByID(ctx, deckID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("deck not found")
		}
		return nil, fmt.Errorf("get deck: %w", err)
	}
	return deck, nil
}

// resolveComposition checks request rows against the catalog and the
// building rules, returning store-ready card rows.
func (s *DeckService) resolveComposition(ctx context.Context, rows []DeckCardInput) ([]domain.DeckCard, error) {
	catalog, err := s.store.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	known := make(map[string]struct{}, len(catalog))
	for _, c := range catalog {
		known[c.ID] = struct{}{}
	}

	cards := make([]domain.DeckCard, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, domain.DeckCard{CardID: row.CardID, Quantity: row.Quantity})
	}

	if err := domain.ValidateComposition(cards, known); err != nil {
		return nil, domainerrors.Validation(err.Error())
	}

	return cards, nil
}

// formatDescription applies the write-time description transform to an
// optional description.
func formatDescription(description *string) *string {
	if description == nil {
		return nil
	}
	formatted := domain.FormatDescription(*description)
	return &formatted
}
