package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/deckhaven/deckhaven-server/internal/domain"
	domainerrors "github.com/deckhaven/deckhaven-server/internal/errors"
	"github.com/deckhaven/deckhaven-server/internal/service"
)

func (s *Server) registerDeckRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listDecks",
		Method:      http.MethodGet,
		Path:        "/api/v1/decks",
		Summary:     "List decks",
		Description: "Returns all decks, newest first",
		Tags:        []string{"Decks"},
	}, s.handleListDecks)

	huma.Register(s.api, huma.Operation{
		OperationID: "createDeck",
		Method:      http.MethodPost,
		Path:        "/api/v1/decks",
		Summary:     "Create deck",
		Description: "Creates a deck after validating the composition rules",
		Tags:        []string{"Decks"},
	}, s.handleCreateDeck)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchDecks",
		Method:      http.MethodGet,
		Path:        "/api/v1/decks/search",
		Summary:     "Search decks",
		Description: "Finds decks by title, newest first",
		Tags:        []string{"Decks"},
	}, s.handleSearchDecks)

	huma.Register(s.api, huma.Operation{
		OperationID: "featuredDecks",
		Method:      http.MethodGet,
		Path:        "/api/v1/decks/featured",
		Summary:     "Featured decks",
		Description: "Returns the landing-page shelves of most-liked decks per color",
		Tags:        []string{"Decks"},
	}, s.handleFeaturedDecks)

	huma.Register(s.api, huma.Operation{
		OperationID: "importDeck",
		Method:      http.MethodPost,
		Path:        "/api/v1/decks/import",
		Summary:     "Import deck",
		Description: "Resolves a portable clipboard payload against the catalog without saving",
		Tags:        []string{"Decks"},
	}, s.handleImportDeck)

	huma.Register(s.api, huma.Operation{
		OperationID: "getDeck",
		Method:      http.MethodGet,
		Path:        "/api/v1/decks/{id}",
		Summary:     "Get deck",
		Description: "Returns a deck with its composition; counts a view once per session",
		Tags:        []string{"Decks"},
	}, s.handleGetDeck)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateDeck",
		Method:      http.MethodPut,
		Path:        "/api/v1/decks/{id}",
		Summary:     "Update deck",
		Description: "Replaces deck content; only the author may update",
		Tags:        []string{"Decks"},
	}, s.handleUpdateDeck)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteDeck",
		Method:      http.MethodDelete,
		Path:        "/api/v1/decks/{id}",
		Summary:     "Delete deck",
		Description: "Deletes a deck and its engagement; author or moderator only",
		Tags:        []string{"Decks"},
		Security:    []map[string][]string{{"basic": {}}},
	}, s.handleDeleteDeck)

	huma.Register(s.api, huma.Operation{
		OperationID: "exportDeck",
		Method:      http.MethodPost,
		Path:        "/api/v1/decks/{id}/export",
		Summary:     "Export deck",
		Description: "Renders a deck in the portable clipboard format",
		Tags:        []string{"Decks"},
	}, s.handleExportDeck)

	huma.Register(s.api, huma.Operation{
		OperationID: "toggleLike",
		Method:      http.MethodPost,
		Path:        "/api/v1/decks/{id}/like",
		Summary:     "Toggle like",
		Description: "Flips the acting user's like on a deck",
		Tags:        []string{"Decks"},
	}, s.handleToggleLike)
}

// === DTOs ===

// DeckCardResponse is one composition row in API responses.
type DeckCardResponse struct {
	CardID   string        `json:"cardId" doc:"Catalog card ID"`
	Quantity int           `json:"quantity" doc:"Copies in the deck (1-4)"`
	Card     *CardResponse `json:"card,omitempty" doc:"Joined catalog entry"`
}

// DeckResponse contains deck data in API responses.
type DeckResponse struct {
	ID          string             `json:"id" doc:"Deck ID"`
	Title       string             `json:"title" doc:"Deck title"`
	Description *string            `json:"description,omitempty" doc:"Formatted description"`
	Color       string             `json:"color" doc:"Deck color"`
	Author      string             `json:"author" doc:"Author username"`
	Views       int                `json:"views" doc:"Deduplicated view count"`
	LikesCount  int                `json:"likesCount" doc:"Number of likes"`
	CreatedAt   time.Time          `json:"created_at" doc:"Creation time"`
	UpdatedAt   time.Time          `json:"updated_at" doc:"Last update time"`
	Cards       []DeckCardResponse `json:"cards,omitempty" doc:"Composition, present on detail reads"`
}

// ListDecksResponse contains a list of decks.
type ListDecksResponse struct {
	Decks []DeckResponse `json:"decks" doc:"Decks, newest first"`
}

// ListDecksOutput wraps the deck list for Huma.
type ListDecksOutput struct {
	Body ListDecksResponse
}

// DeckCardRequest is one composition row in a create or update request.
type DeckCardRequest struct {
	CardID   string `json:"cardId" doc:"Catalog card ID"`
	Quantity int    `json:"quantity" doc:"Copies in the deck (1-4)"`
}

// CreateDeckRequest is the request body for creating a deck.
type CreateDeckRequest struct {
	Username    string            `json:"username" doc:"Acting username"`
	Title       string            `json:"title" doc:"Deck title"`
	Description *string           `json:"description,omitempty" doc:"Free-text description"`
	Color       string            `json:"color" doc:"Deck color"`
	Cards       []DeckCardRequest `json:"cards" doc:"Composition summing to 52 cards"`
}

// CreateDeckInput wraps the create deck request for Huma.
type CreateDeckInput struct {
	Body CreateDeckRequest
}

// DeckOutput wraps a single deck response for Huma.
type DeckOutput struct {
	Body DeckResponse
}

// SearchDecksInput contains the title query.
type SearchDecksInput struct {
	Q string `query:"q" doc:"Title query"`
}

// FeaturedShelfResponse is one color's shelf of most-liked decks.
type FeaturedShelfResponse struct {
	Color string         `json:"color" doc:"Shelf color"`
	Decks []DeckResponse `json:"decks" doc:"Most-liked decks of that color"`
}

// FeaturedDecksResponse contains the landing-page shelves.
type FeaturedDecksResponse struct {
	Shelves []FeaturedShelfResponse `json:"shelves" doc:"One shelf per featured color"`
}

// FeaturedDecksOutput wraps the featured decks response for Huma.
type FeaturedDecksOutput struct {
	Body FeaturedDecksResponse
}

// GetDeckInput contains parameters for reading a deck.
type GetDeckInput struct {
	ID        string `path:"id" doc:"Deck ID"`
	SessionID string `header:"X-Session-Id" doc:"Viewer session; counts a view once per session"`
	Username  string `header:"X-Username" doc:"Optional viewer username for the liked echo"`
}

// GetDeckResponse contains a deck detail read.
type GetDeckResponse struct {
	Deck  DeckResponse `json:"deck" doc:"Deck with composition"`
	Liked bool         `json:"liked" doc:"Whether the viewer has liked this deck"`
}

// GetDeckOutput wraps the deck detail response for Huma.
type GetDeckOutput struct {
	Body GetDeckResponse
}

// UpdateDeckRequest is the request body for updating a deck.
// Omitting cards keeps the existing composition.
type UpdateDeckRequest struct {
	Username    string            `json:"username" doc:"Acting username"`
	Title       string            `json:"title" doc:"Deck title"`
	Description *string           `json:"description,omitempty" doc:"Free-text description"`
	Color       string            `json:"color" doc:"Deck color"`
	Cards       []DeckCardRequest `json:"cards,omitempty" doc:"Replacement composition"`
}

// UpdateDeckInput wraps the update deck request for Huma.
type UpdateDeckInput struct {
	ID   string `path:"id" doc:"Deck ID"`
	Body UpdateDeckRequest
}

// ActingUserRequest carries the acting username in a request body.
type ActingUserRequest struct {
	Username string `json:"username,omitempty" doc:"Acting username"`
}

// DeleteDeckInput contains parameters for deleting a deck. The acting
// user arrives in the body, moderator credentials in the header; either
// suffices.
type DeleteDeckInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Deck ID"`
	// Pointer keeps the body optional; moderators send none at all.
	Body *ActingUserRequest `required:"false"`
}

// ExportDeckInput contains parameters for exporting a deck.
type ExportDeckInput struct {
	ID   string `path:"id" doc:"Deck ID"`
	Body ActingUserRequest
}

// ExportDeckOutput wraps the portable payload for Huma.
type ExportDeckOutput struct {
	Body domain.PortableDeck
}

// ImportDeckRequest is the portable clipboard payload. Fields are
// optional at the schema level so shape errors surface as format errors.
type ImportDeckRequest struct {
	DeckName string         `json:"deckName,omitempty" doc:"Deck title from the game client"`
	Counts   map[string]int `json:"counts,omitempty" doc:"Copies keyed by normalized card name"`
}

// ImportDeckInput wraps the import request for Huma.
type ImportDeckInput struct {
	Body ImportDeckRequest
}

// ImportDeckResponse is the dry-run draft resolved from a portable payload.
type ImportDeckResponse struct {
	Title         string             `json:"title" doc:"Deck title from the payload"`
	Color         string             `json:"color" doc:"Inferred deck color"`
	Cards         []DeckCardResponse `json:"cards" doc:"Matched composition rows"`
	NotFoundCards []string           `json:"notFoundCards" doc:"Imported names that matched nothing"`
}

// ImportDeckOutput wraps the import response for Huma.
type ImportDeckOutput struct {
	Body ImportDeckResponse
}

// ToggleLikeInput contains parameters for toggling a like.
type ToggleLikeInput struct {
	ID   string `path:"id" doc:"Deck ID"`
	Body ActingUserRequest
}

// ToggleLikeResponse contains the new like state.
type ToggleLikeResponse struct {
	Liked      bool `json:"liked" doc:"Whether the user now likes the deck"`
	LikesCount int  `json:"likesCount" doc:"Fresh like count"`
}

// ToggleLikeOutput wraps the like response for Huma.
type ToggleLikeOutput struct {
	Body ToggleLikeResponse
}

// mapDeckResponse converts a domain deck to its API shape.
func mapDeckResponse(d *domain.Deck) DeckResponse {
	resp := DeckResponse{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Color:       string(d.Color),
		Author:      d.AuthorUsername,
		Views:       d.Views,
		LikesCount:  d.LikesCount,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	for _, dc := range d.Cards {
		resp.Cards = append(resp.Cards, mapDeckCardResponse(dc))
	}
	return resp
}

func mapDeckCardResponse(dc domain.DeckCard) DeckCardResponse {
	row := DeckCardResponse{
		CardID:   dc.CardID,
		Quantity: dc.Quantity,
	}
	if dc.Card != nil {
		card := mapCardResponse(dc.Card)
		row.Card = &card
	}
	return row
}

func mapDeckList(decks []*domain.Deck) []DeckResponse {
	resp := make([]DeckResponse, len(decks))
	for i, d := range decks {
		resp[i] = mapDeckResponse(d)
	}
	return resp
}

func mapDeckCardRequests(rows []DeckCardRequest) []service.DeckCardInput {
	if rows == nil {
		return nil
	}
	inputs := make([]service.DeckCardInput, len(rows))
	for i, row := range rows {
		inputs[i] = service.DeckCardInput{CardID: row.CardID, Quantity: row.Quantity}
	}
	return inputs
}

// === Handlers ===

func (s *Server) handleListDecks(ctx context.Context, _ *struct{}) (*ListDecksOutput, error) {
	decks, err := s.services.Decks.ListDecks(ctx)
	if err != nil {
		return nil, err
	}

	return &ListDecksOutput{Body: ListDecksResponse{Decks: mapDeckList(decks)}}, nil
}

func (s *Server) handleCreateDeck(ctx context.Context, input *CreateDeckInput) (*DeckOutput, error) {
	user, err := s.resolveUser(ctx, input.Body.Username)
	if err != nil {
		return nil, err
	}

	deck, err := s.services.Decks.CreateDeck(ctx, user.ID, service.CreateDeckRequest{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		Color:       input.Body.Color,
		Cards:       mapDeckCardRequests(input.Body.Cards),
	})
	if err != nil {
		return nil, err
	}

	return &DeckOutput{Body: mapDeckResponse(deck)}, nil
}

func (s *Server) handleSearchDecks(ctx context.Context, input *SearchDecksInput) (*ListDecksOutput, error) {
	decks, err := s.services.Decks.SearchDecks(ctx, input.Q)
	if err != nil {
		return nil, err
	}

	return &ListDecksOutput{Body: ListDecksResponse{Decks: mapDeckList(decks)}}, nil
}

func (s *Server) handleFeaturedDecks(ctx context.Context, _ *struct{}) (*FeaturedDecksOutput, error) {
	shelves, err := s.services.Decks.FeaturedDecks(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]FeaturedShelfResponse, len(shelves))
	for i, shelf := range shelves {
		resp[i] = FeaturedShelfResponse{
			Color: string(shelf.Color),
			Decks: mapDeckList(shelf.Decks),
		}
	}

	return &FeaturedDecksOutput{Body: FeaturedDecksResponse{Shelves: resp}}, nil
}

func (s *Server) handleGetDeck(ctx context.Context, input *GetDeckInput) (*GetDeckOutput, error) {
	viewerID := s.lookupViewer(ctx, input.Username)

	deck, liked, err := s.services.Decks.GetDeck(ctx, input.ID, input.SessionID, viewerID)
	if err != nil {
		return nil, err
	}

	return &GetDeckOutput{
		Body: GetDeckResponse{
			Deck:  mapDeckResponse(deck),
			Liked: liked,
		},
	}, nil
}

func (s *Server) handleUpdateDeck(ctx context.Context, input *UpdateDeckInput) (*DeckOutput, error) {
	user, err := s.resolveUser(ctx, input.Body.Username)
	if err != nil {
		return nil, err
	}

	deck, err := s.services.Decks.UpdateDeck(ctx, user.ID, input.ID, service.UpdateDeckRequest{
		Title:       input.Body.Title,
		Description: input.Body.Description,
		Color:       input.Body.Color,
		Cards:       mapDeckCardRequests(input.Body.Cards),
	})
	if err != nil {
		return nil, err
	}

	return &DeckOutput{Body: mapDeckResponse(deck)}, nil
}

func (s *Server) handleDeleteDeck(ctx context.Context, input *DeleteDeckInput) (*MessageOutput, error) {
	moderator := s.isModerator(input.Authorization)

	userID := ""
	if input.Body != nil && input.Body.Username != "" {
		user, err := s.resolveUser(ctx, input.Body.Username)
		if err != nil {
			return nil, err
		}
		userID = user.ID
	} else if !moderator {
		return nil, domainerrors.Unauthorized("username or moderator credentials required")
	}

	if err := s.services.Decks.DeleteDeck(ctx, userID, moderator, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Deck deleted"}}, nil
}

func (s *Server) handleExportDeck(ctx context.Context, input *ExportDeckInput) (*ExportDeckOutput, error) {
	if _, err := s.resolveUser(ctx, input.Body.Username); err != nil {
		return nil, err
	}

	payload, err := s.services.Decks.ExportDeck(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ExportDeckOutput{Body: payload}, nil
}

func (s *Server) handleImportDeck(ctx context.Context, input *ImportDeckInput) (*ImportDeckOutput, error) {
	result, err := s.services.Decks.ImportDeck(ctx, domain.PortableDeck{
		DeckName: input.Body.DeckName,
		Counts:   input.Body.Counts,
	})
	if err != nil {
		return nil, err
	}

	resp := ImportDeckResponse{
		Title:         result.Title,
		Color:         string(result.Color),
		Cards:         make([]DeckCardResponse, len(result.Cards)),
		NotFoundCards: result.NotFoundCards,
	}
	if resp.NotFoundCards == nil {
		resp.NotFoundCards = []string{}
	}
	for i, dc := range result.Cards {
		resp.Cards[i] = mapDeckCardResponse(dc)
	}

	return &ImportDeckOutput{Body: resp}, nil
}

func (s *Server) handleToggleLike(ctx context.Context, input *ToggleLikeInput) (*ToggleLikeOutput, error) {
	user, err := s.resolveUser(ctx, input.Body.Username)
	if err != nil {
		return nil, err
	}

	liked, count, err := s.services.Decks.ToggleLike(ctx, user.ID, input.ID)
	if err != nil {
		return nil, err
	}

	return &ToggleLikeOutput{
		Body: ToggleLikeResponse{
			Liked:      liked,
			LikesCount: count,
		},
	}, nil
}
