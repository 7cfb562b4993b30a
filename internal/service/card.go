package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/deckhaven/deckhaven-server/internal/domain"
	domainerrors "github.com/deckhaven/deckhaven-server/internal/errors"
	"github.com/deckhaven/deckhaven-server/internal/id"
	"github.com/deckhaven/deckhaven-server/internal/store"
	"github.com/deckhaven/deckhaven-server/internal/validation"
)

// CardService manages the card catalog.
type CardService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCardService creates a new card catalog service.
func NewCardService(store store.Store, validator *validation.Validator, logger *slog.Logger) *CardService {
	return &CardService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateCardRequest contains new card data.
type CreateCardRequest struct {
	Name  string `json:"name" validate:"required,max=80"`
	Color string `json:"color" validate:"required"`
}

// CreateCard adds a card to the catalog.
func (s *CardService) CreateCard(ctx context.Context, req CreateCardRequest) (*domain.Card, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	color := domain.CardColor(req.Color)
	if !color.Valid() {
		return nil, domainerrors.Validation("invalid card color: " + req.Color)
	}

	cardID, err := id.Generate("card")
	if err != nil {
		return nil, fmt.Errorf("generate card ID: %w", err)
	}

	card := &domain.Card{
		ID:        cardID,
		Name:      req.Name,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateCard(ctx, card); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("card name already exists")
		}
		return nil, fmt.Errorf("create card: %w", err)
	}

	s.logger.Info("card created", "card_id", cardID, "name", card.Name)

	return card, nil
}

// GetCard returns a single catalog card.
func (s *CardService) GetCard(ctx context.Context, cardID string) (*domain.Card, error) {
	card, err := s.store.GetCardByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("card not found")
		}
		return nil, fmt.Errorf("get card: %w", err)
	}
	return card, nil
}

// ListCards returns the full catalog ordered by name.
func (s *CardService) ListCards(ctx context.Context) ([]*domain.Card, error) {
	return s.store.ListCards(ctx)
}

// DeleteCard removes a card from the catalog. Cards referenced by any
// deck cannot be removed.
func (s *CardService) DeleteCard(ctx context.Context, cardID string) error {
	if err := s.store.DeleteCard(ctx, cardID); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domainerrors.NotFound("card not found")
		case errors.Is(err, store.ErrInUse):
			return domainerrors.Conflict("card is used by existing decks")
		default:
			return fmt.Errorf("delete card: %w", err)
		}
	}

	s.logger.Info("card deleted", "card_id", cardID)

	return nil
}
