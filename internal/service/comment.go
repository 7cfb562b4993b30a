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

// CommentService manages deck discussion threads.
type CommentService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCommentService creates a new comment service.
func NewCommentService(store store.Store, validator *validation.Validator, logger *slog.Logger) *CommentService {
	return &CommentService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateCommentRequest contains new comment data. ParentID, when set,
// makes the comment a reply to a top-level comment on the same deck.
type CreateCommentRequest struct {
	Content  string  `json:"content" validate:"required,max=600"`
	ParentID *string `json:"parentId,omitempty"`
}

// CreateComment posts a comment on a deck. Threads are one level deep:
// replying to a reply is rejected.
func (s *CommentService) CreateComment(ctx context.Context, userID, deckID string, req CreateCommentRequest) (*domain.Comment, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetDeckByID(ctx, deckID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("deck not found")
		}
		return nil, fmt.Errorf("get deck: %w", err)
	}

	if req.ParentID != nil {
		parent, err := s.store.GetCommentByID(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, domainerrors.Validation("parent comment not found")
			}
			return nil, fmt.Errorf("get parent comment: %w", err)
		}
		if parent.DeckID != deckID {
			return nil, domainerrors.Validation("parent comment belongs to another deck")
		}
		if parent.IsReply() {
			return nil, domainerrors.Validation("cannot reply to a reply")
		}
	}

	commentID, err := id.Generate("cmt")
	if err != nil {
		return nil, fmt.Errorf("generate comment ID: %w", err)
	}

	comment := &domain.Comment{
		ID:        commentID,
		Content:   req.Content,
		UserID:    userID,
		DeckID:    deckID,
		ParentID:  req.ParentID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.logger.Info("comment created", "comment_id", commentID, "deck_id", deckID, "user_id", userID)

	return s.store.GetCommentByID(ctx, commentID)
}

// ListComments returns a deck's threads: top-level comments newest-first
// with replies nested oldest-first.
func (s *CommentService) ListComments(ctx context.Context, deckID string) ([]*domain.Comment, error) {
	if _, err := s.store.GetDeckByID(ctx, deckID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("deck not found")
		}
		return nil, fmt.Errorf("get deck: %w", err)
	}
	return s.store.ListCommentsForDeck(ctx, deckID)
}

// ListAllComments returns the site-wide moderation feed, newest-first.
func (s *CommentService) ListAllComments(ctx context.Context) ([]*domain.Comment, error) {
	return s.store.ListAllComments(ctx)
}

// DeleteComment removes a comment and its replies. The comment's author
// or a moderator may delete.
func (s *CommentService) DeleteComment(ctx context.Context, userID string, isModerator bool, commentID string) error {
	comment, err := s.store.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("comment not found")
		}
		return fmt.Errorf("get comment: %w", err)
	}

	if comment.UserID != userID && !isModerator {
		return domainerrors.Forbidden("only the author or a moderator can delete this comment")
	}

	if err := s.store.DeleteCommentWithReplies(ctx, commentID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}

	s.logger.Info("comment deleted", "comment_id", commentID, "user_id", userID, "moderator", isModerator)

	return nil
}
