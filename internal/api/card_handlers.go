package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/deckhaven/deckhaven-server/internal/domain"
	"github.com/deckhaven/deckhaven-server/internal/service"
)

func (s *Server) registerCardRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCards",
		Method:      http.MethodGet,
		Path:        "/api/v1/cards",
		Summary:     "List cards",
		Description: "Returns the full card catalog, sorted by name",
		Tags:        []string{"Cards"},
	}, s.handleListCards)

	huma.Register(s.api, huma.Operation{
		OperationID: "createCard",
		Method:      http.MethodPost,
		Path:        "/api/v1/cards",
		Summary:     "Create card",
		Description: "Adds a card to the catalog (moderator only)",
		Tags:        []string{"Cards"},
		Security:    []map[string][]string{{"basic": {}}},
	}, s.handleCreateCard)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCard",
		Method:      http.MethodDelete,
		Path:        "/api/v1/cards/{id}",
		Summary:     "Delete card",
		Description: "Removes an unused card from the catalog (moderator only)",
		Tags:        []string{"Cards"},
		Security:    []map[string][]string{{"basic": {}}},
	}, s.handleDeleteCard)
}

// === DTOs ===

// CardResponse contains card data in API responses.
type CardResponse struct {
	ID        string    `json:"id" doc:"Card ID"`
	Name      string    `json:"name" doc:"Display name, unique case-insensitively"`
	Color     string    `json:"color" doc:"Card color"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
}

// ListCardsResponse contains the card catalog.
type ListCardsResponse struct {
	Cards []CardResponse `json:"cards" doc:"Catalog sorted by name"`
}

// ListCardsOutput wraps the card list for Huma.
type ListCardsOutput struct {
	Body ListCardsResponse
}

// CreateCardRequest is the request body for creating a card.
type CreateCardRequest struct {
	Name  string `json:"name" doc:"Display name"`
	Color string `json:"color" doc:"Card color (RED, BLUE, GREEN, YELLOW, PURPLE, GREY, ROD, RELIC)"`
}

// CreateCardInput wraps the create card request for Huma.
type CreateCardInput struct {
	Authorization string `header:"Authorization"`
	Body          CreateCardRequest
}

// CardOutput wraps the card response for Huma.
type CardOutput struct {
	Body CardResponse
}

// DeleteCardInput contains parameters for deleting a card.
type DeleteCardInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Card ID"`
}

// mapCardResponse converts a domain card to its API shape.
func mapCardResponse(c *domain.Card) CardResponse {
	return CardResponse{
		ID:        c.ID,
		Name:      c.Name,
		Color:     string(c.Color),
		CreatedAt: c.CreatedAt,
	}
}

// === Handlers ===

func (s *Server) handleListCards(ctx context.Context, _ *struct{}) (*ListCardsOutput, error) {
	cards, err := s.services.Cards.ListCards(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]CardResponse, len(cards))
	for i, c := range cards {
		resp[i] = mapCardResponse(c)
	}

	return &ListCardsOutput{Body: ListCardsResponse{Cards: resp}}, nil
}

func (s *Server) handleCreateCard(ctx context.Context, input *CreateCardInput) (*CardOutput, error) {
	if err := s.requireModerator(input.Authorization); err != nil {
		return nil, err
	}

	card, err := s.services.Cards.CreateCard(ctx, service.CreateCardRequest{
		Name:  input.Body.Name,
		Color: input.Body.Color,
	})
	if err != nil {
		return nil, err
	}

	return &CardOutput{Body: mapCardResponse(card)}, nil
}

func (s *Server) handleDeleteCard(ctx context.Context, input *DeleteCardInput) (*MessageOutput, error) {
	if err := s.requireModerator(input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Cards.DeleteCard(ctx, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Card deleted"}}, nil
}
