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

func (s *Server) registerCommentRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listDeckComments",
		Method:      http.MethodGet,
		Path:        "/api/v1/decks/{id}/comments",
		Summary:     "List deck comments",
		Description: "Returns the deck's comment thread, newest top-level first",
		Tags:        []string{"Comments"},
	}, s.handleListDeckComments)

	huma.Register(s.api, huma.Operation{
		OperationID: "createComment",
		Method:      http.MethodPost,
		Path:        "/api/v1/decks/{id}/comments",
		Summary:     "Create comment",
		Description: "Posts a comment or a one-level reply on a deck",
		Tags:        []string{"Comments"},
	}, s.handleCreateComment)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteComment",
		Method:      http.MethodDelete,
		Path:        "/api/v1/decks/{id}/comments/{commentId}",
		Summary:     "Delete comment",
		Description: "Deletes a comment and its replies; author or moderator only",
		Tags:        []string{"Comments"},
		Security:    []map[string][]string{{"basic": {}}},
	}, s.handleDeleteComment)

	huma.Register(s.api, huma.Operation{
		OperationID: "listAllComments",
		Method:      http.MethodGet,
		Path:        "/api/v1/comments",
		Summary:     "List all comments",
		Description: "Returns the global comment feed for moderation (moderator only)",
		Tags:        []string{"Comments"},
		Security:    []map[string][]string{{"basic": {}}},
	}, s.handleListAllComments)

	huma.Register(s.api, huma.Operation{
		OperationID: "moderatorDeleteComment",
		Method:      http.MethodDelete,
		Path:        "/api/v1/comments/{id}",
		Summary:     "Force delete comment",
		Description: "Deletes any comment and its replies (moderator only)",
		Tags:        []string{"Comments"},
		Security:    []map[string][]string{{"basic": {}}},
	}, s.handleModeratorDeleteComment)
}

// === DTOs ===

// CommentResponse contains comment data in API responses.
type CommentResponse struct {
	ID        string            `json:"id" doc:"Comment ID"`
	Content   string            `json:"content" doc:"Comment text"`
	Author    string            `json:"author" doc:"Author username"`
	ParentID  *string           `json:"parentId,omitempty" doc:"Parent comment for replies"`
	DeckTitle string            `json:"deckTitle,omitempty" doc:"Deck title, present on the global feed"`
	CreatedAt time.Time         `json:"created_at" doc:"Creation time"`
	Replies   []CommentResponse `json:"replies,omitempty" doc:"Replies, oldest first"`
}

// ListCommentsResponse contains a deck's comment thread.
type ListCommentsResponse struct {
	Comments []CommentResponse `json:"comments" doc:"Top-level comments with nested replies"`
}

// ListCommentsOutput wraps the comment list for Huma.
type ListCommentsOutput struct {
	Body ListCommentsResponse
}

// ListDeckCommentsInput contains parameters for listing deck comments.
type ListDeckCommentsInput struct {
	ID string `path:"id" doc:"Deck ID"`
}

// CreateCommentRequest is the request body for posting a comment.
type CreateCommentRequest struct {
	Username string  `json:"username" doc:"Acting username"`
	Content  string  `json:"content" doc:"Comment text, at most 600 characters"`
	ParentID *string `json:"parentId,omitempty" doc:"Top-level comment to reply to"`
}

// CreateCommentInput wraps the create comment request for Huma.
type CreateCommentInput struct {
	ID   string `path:"id" doc:"Deck ID"`
	Body CreateCommentRequest
}

// CommentOutput wraps a single comment response for Huma.
type CommentOutput struct {
	Body CommentResponse
}

// DeleteCommentInput contains parameters for deleting a comment.
type DeleteCommentInput struct {
	Authorization string `header:"Authorization"`
	DeckID        string `path:"id" doc:"Deck ID"`
	CommentID     string `path:"commentId" doc:"Comment ID"`
	// Pointer keeps the body optional; moderators send none at all.
	Body *ActingUserRequest `required:"false"`
}

// ListAllCommentsInput contains parameters for the global feed.
type ListAllCommentsInput struct {
	Authorization string `header:"Authorization"`
}

// ModeratorDeleteCommentInput contains parameters for a force delete.
type ModeratorDeleteCommentInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Comment ID"`
}

// mapCommentResponse converts a domain comment, replies included.
func mapCommentResponse(c *domain.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		Author:    c.AuthorUsername,
		ParentID:  c.ParentID,
		DeckTitle: c.DeckTitle,
		CreatedAt: c.CreatedAt,
	}
	for i := range c.Replies {
		resp.Replies = append(resp.Replies, mapCommentResponse(&c.Replies[i]))
	}
	return resp
}

func mapCommentList(comments []*domain.Comment) []CommentResponse {
	resp := make([]CommentResponse, len(comments))
	for i, c := range comments {
		resp[i] = mapCommentResponse(c)
	}
	return resp
}

// === Handlers ===

func (s *Server) handleListDeckComments(ctx context.Context, input *ListDeckCommentsInput) (*ListCommentsOutput, error) {
	comments, err := s.services.Comments.ListComments(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &ListCommentsOutput{Body: ListCommentsResponse{Comments: mapCommentList(comments)}}, nil
}

func (s *Server) handleCreateComment(ctx context.Context, input *CreateCommentInput) (*CommentOutput, error) {
	user, err := s.resolveUser(ctx, input.Body.Username)
	if err != nil {
		return nil, err
	}

	comment, err := s.services.Comments.CreateComment(ctx, user.ID, input.ID, service.CreateCommentRequest{
		Content:  input.Body.Content,
		ParentID: input.Body.ParentID,
	})
	if err != nil {
		return nil, err
	}

	return &CommentOutput{Body: mapCommentResponse(comment)}, nil
}

func (s *Server) handleDeleteComment(ctx context.Context, input *DeleteCommentInput) (*MessageOutput, error) {
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

	if err := s.services.Comments.DeleteComment(ctx, userID, moderator, input.CommentID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Comment deleted"}}, nil
}

func (s *Server) handleListAllComments(ctx context.Context, input *ListAllCommentsInput) (*ListCommentsOutput, error) {
	if err := s.requireModerator(input.Authorization); err != nil {
		return nil, err
	}

	comments, err := s.services.Comments.ListAllComments(ctx)
	if err != nil {
		return nil, err
	}

	return &ListCommentsOutput{Body: ListCommentsResponse{Comments: mapCommentList(comments)}}, nil
}

func (s *Server) handleModeratorDeleteComment(ctx context.Context, input *ModeratorDeleteCommentInput) (*MessageOutput, error) {
	if err := s.requireModerator(input.Authorization); err != nil {
		return nil, err
	}

	if err := s.services.Comments.DeleteComment(ctx, "", true, input.ID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "Comment deleted"}}, nil
}
