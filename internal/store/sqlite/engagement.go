package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/deckhaven/deckhaven-server/internal/id"
)

// ToggleLike flips a user's like on a deck. It returns the resulting
// state: true when the like now exists, false when it was removed.
func (s *Store) ToggleLike(ctx context.Context, userID, deckID string) (bool, error) {
	var likeID string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM likes WHERE user_id = ? AND deck_id = ?`,
		userID, deckID).Scan(&likeID)

	switch {
	case err == nil:
		if _, err := s.db.ExecContext(ctx, `DELETE FROM likes WHERE id = ?`, likeID); err != nil {
			return false, fmt.Errorf("delete like: %w", err)
		}
		return false, nil

	case err == sql.ErrNoRows:
		newID, err := id.Generate("like")
		if err != nil {
			return false, fmt.Errorf("generate like id: %w", err)
		}
		_, err = s.db.ExecContext(ctx, `
			INSERT INTO likes (id, user_id, deck_id, created_at)
			VALUES (?, ?, ?, ?)`,
			newID, userID, deckID, formatTime(time.Now().UTC()))
		if err != nil {
			// A concurrent toggle won the insert; the like exists either way.
			if isUniqueViolation(err) {
				return true, nil
			}
			return false, fmt.Errorf("insert like: %w", err)
		}
		return true, nil

	default:
		return false, err
	}
}

// HasLiked reports whether the user currently likes the deck.
func (s *Store) HasLiked(ctx context.Context, userID, deckID string) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE user_id = ? AND deck_id = ?`,
		userID, deckID).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountLikes returns the number of likes on a deck.
func (s *Store) CountLikes(ctx context.Context, deckID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes WHERE deck_id = ?`, deckID).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// RecordView registers a view of a deck by a session. The view counter
// increments only the first time a given session sees the deck; counted
// reports whether this call was that first time.
func (s *Store) RecordView(ctx context.Context, deckID, sessionID string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		INSERT OR IGNORE INTO deck_views (deck_id, session_id, created_at)
		VALUES (?, ?, ?)`,
		deckID, sessionID, formatTime(time.Now().UTC()))
	if err != nil {
		return false, fmt.Errorf("insert deck_view: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, tx.Commit()
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE decks SET views = views + 1 WHERE id = ?`, deckID); err != nil {
		return false, fmt.Errorf("increment views: %w", err)
	}

	return true, tx.Commit()
}
