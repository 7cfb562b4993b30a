package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/deckhaven/deckhaven-server/internal/domain"
	"github.com/deckhaven/deckhaven-server/internal/store"
)

// commentColumns is the ordered list of columns selected in comment
// queries, with author username and deck title joined in.
// Must match the scan order in scanComment.
const commentColumns = `c.id, c.content, c.user_id, c.deck_id, c.parent_id,
	c.created_at, u.username, d.title`

const commentFrom = ` FROM comments c
	JOIN users u ON u.id = c.user_id
	JOIN decks d ON d.id = c.deck_id`

// scanComment scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Comment.
func scanComment(scanner interface{ Scan(dest ...any) error }) (*domain.Comment, error) {
	var c domain.Comment

	var (
		parentID  sql.NullString
		createdAt string
	)

	err := scanner.Scan(
		&c.ID,
		&c.Content,
		&c.UserID,
		&c.DeckID,
		&parentID,
		&createdAt,
		&c.AuthorUsername,
		&c.DeckTitle,
	)
	if err != nil {
		return nil, err
	}

	c.ParentID = stringPtr(parentID)

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// CreateComment inserts a new comment.
func (s *Store) CreateComment(ctx context.Context, c *domain.Comment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO comments (id, content, user_id, deck_id, parent_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.Content,
		c.UserID,
		c.DeckID,
		nullableString(c.ParentID),
		formatTime(c.CreatedAt),
	)
	return err
}

// GetCommentByID retrieves a comment by its ID.
// Returns store.ErrNotFound if the comment does not exist.
func (s *Store) GetCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+commentFrom+` WHERE c.id = ?`, commentID)

	c, err := scanComment(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCommentsForDeck returns a deck's top-level comments newest-first,
// each with its replies attached oldest-first.
func (s *Store) ListCommentsForDeck(ctx context.Context, deckID string) ([]*domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+commentColumns+commentFrom+`
		WHERE c.deck_id = ?
		ORDER BY c.created_at ASC`,
		deckID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	all, err := collectComments(rows)
	if err != nil {
		return nil, err
	}

	return threadComments(all), nil
}

// ListAllComments returns every comment across all decks newest-first.
// Used by the moderation feed; the list is flat, replies included.
func (s *Store) ListAllComments(ctx context.Context) ([]*domain.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+commentColumns+commentFrom+` ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectComments(rows)
}

// DeleteCommentWithReplies removes a comment and any replies to it.
// Returns store.ErrNotFound if the comment does not exist.
func (s *Store) DeleteCommentWithReplies(ctx context.Context, commentID string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM comments WHERE id = ? OR parent_id = ?`,
		commentID, commentID)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// threadComments arranges a flat oldest-first comment list into
// top-level comments newest-first with replies nested oldest-first.
func threadComments(all []*domain.Comment) []*domain.Comment {
	byID := make(map[string]*domain.Comment, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}

	var top []*domain.Comment
	for _, c := range all {
		if c.ParentID == nil {
			c.Replies = []domain.Comment{}
			top = append(top, c)
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, *c)
		}
	}

	// Input was oldest-first, so reversing yields newest-first while
	// keeping each reply slice oldest-first.
	for i, j := 0, len(top)-1; i < j; i, j = i+1, j-1 {
		top[i], top[j] = top[j], top[i]
	}

	if top == nil {
		top = []*domain.Comment{}
	}

	return top
}

// collectComments drains rows into a slice, never returning nil.
func collectComments(rows *sql.Rows) ([]*domain.Comment, error) {
	var comments []*domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if comments == nil {
		comments = []*domain.Comment{}
	}

	return comments, nil
}
