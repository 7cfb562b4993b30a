package api

import (
	"github.com/deckhaven/deckhaven-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth     *service.AuthService
	Cards    *service.CardService
	Decks    *service.DeckService
	Comments *service.CommentService
}
