package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/deckhaven/deckhaven-server/internal/domain"
	"github.com/deckhaven/deckhaven-server/internal/store"
)

// deckColumns is the ordered list of columns selected in deck queries.
// Every deck query joins users for the author username and counts likes
// inline, so the aggregate never needs a second round trip.
// Must match the scan order in scanDeck.
const deckColumns = `d.id, d.title, d.description, d.color, d.author_id,
	d.views, d.created_at, d.updated_at, u.username,
	(SELECT COUNT(*) FROM likes l WHERE l.deck_id = d.id)`

const deckFrom = ` FROM decks d JOIN users u ON u.id = d.author_id`

// scanDeck scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Deck. Cards are loaded separately by loadDeckCards.
func scanDeck(scanner interface{ Scan(dest ...any) error }) (*domain.Deck, error) {
	var d domain.Deck

	var (
		description sql.NullString
		createdAt   string
		updatedAt   string
	)

	err := scanner.Scan(
		&d.ID,
		&d.Title,
		&description,
		&d.Color,
		&d.AuthorID,
		&d.Views,
		&createdAt,
		&updatedAt,
		&d.AuthorUsername,
		&d.LikesCount,
	)
	if err != nil {
		return nil, err
	}

	d.Description = stringPtr(description)

	d.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	d.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// CreateDeck inserts a deck and its card rows in a single transaction.
func (s *Store) CreateDeck(ctx context.Context, d *domain.Deck) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO decks (id, title, description, color, author_id, views, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID,
		d.Title,
		nullableString(d.Description),
		d.Color,
		d.AuthorID,
		d.Views,
		formatTime(d.CreatedAt),
		formatTime(d.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert deck: %w", err)
	}

	if err := insertDeckCards(ctx, tx, d.ID, d.Cards); err != nil {
		return err
	}

	return tx.Commit()
}

// GetDeckByID retrieves a deck with its cards.
// Returns store.ErrNotFound if the deck does not exist.
func (s *Store) GetDeckByID(ctx context.Context, deckID string) (*domain.Deck, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+deckColumns+deckFrom+` WHERE d.id = ?`, deckID)

	d, err := scanDeck(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	d.Cards, err = s.loadDeckCards(ctx, d.ID)
	if err != nil {
		return nil, err
	}

	return d, nil
}

// ListDecks returns decks newest-first, without card detail.
// A limit of 0 means no limit.
func (s *Store) ListDecks(ctx context.Context, limit int) ([]*domain.Deck, error) {
	query := `SELECT ` + deckColumns + deckFrom + ` ORDER BY d.created_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDecks(rows)
}

// ListTopLikedByColor returns the most-liked decks of a color, without
// card detail. Ties break newest-first.
func (s *Store) ListTopLikedByColor(ctx context.Context, color domain.DeckColor, limit int) ([]*domain.Deck, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+deckColumns+deckFrom+`
		WHERE d.color = ?
		ORDER BY (SELECT COUNT(*) FROM likes l WHERE l.deck_id = d.id) DESC, d.created_at DESC
		LIMIT ?`,
		color, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectDecks(rows)
}

// UpdateDeck persists deck metadata. When replaceCards is true the card
// rows are replaced with d.Cards in the same transaction.
// Returns store.ErrNotFound if the deck does not exist.
func (s *Store) UpdateDeck(ctx context.Context, d *domain.Deck, replaceCards bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE decks
		SET title = ?, description = ?, color = ?, views = ?, updated_at = ?
		WHERE id = ?`,
		d.Title,
		nullableString(d.Description),
		d.Color,
		d.Views,
		formatTime(d.UpdatedAt),
		d.ID,
	)
	if err != nil {
		return fmt.Errorf("update deck: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}

	if replaceCards {
		if _, err := tx.ExecContext(ctx, `DELETE FROM deck_cards WHERE deck_id = ?`, d.ID); err != nil {
			return fmt.Errorf("delete deck_cards: %w", err)
		}
		if err := insertDeckCards(ctx, tx, d.ID, d.Cards); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteDeck removes a deck along with its cards, likes, views and
// comments in a single transaction.
// Returns store.ErrNotFound if the deck does not exist.
func (s *Store) DeleteDeck(ctx context.Context, deckID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM comments WHERE deck_id = ?`,
		`DELETE FROM likes WHERE deck_id = ?`,
		`DELETE FROM deck_views WHERE deck_id = ?`,
		`DELETE FROM deck_cards WHERE deck_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, deckID); err != nil {
			return fmt.Errorf("delete deck dependents: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, deckID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}

	return tx.Commit()
}

// insertDeckCards bulk-inserts the card rows for a deck inside tx.
func insertDeckCards(ctx context.Context, tx *sql.Tx, deckID string, cards []domain.DeckCard) error {
	for _, dc := range cards {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO deck_cards (deck_id, card_id, quantity)
			VALUES (?, ?, ?)`,
			deckID,
			dc.CardID,
			dc.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert deck_card: %w", err)
		}
	}
	return nil
}

// loadDeckCards loads a deck's card rows with the catalog card joined in.
func (s *Store) loadDeckCards(ctx context.Context, deckID string) ([]domain.DeckCard, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT dc.card_id, dc.quantity, c.id, c.name, c.color, c.created_at
		FROM deck_cards dc
		JOIN cards c ON c.id = dc.card_id
		WHERE dc.deck_id = ?
		ORDER BY c.name COLLATE NOCASE ASC`,
		deckID)
	if err != nil {
		return nil, fmt.Errorf("query deck_cards: %w", err)
	}
	defer rows.Close()

	var cards []domain.DeckCard
	for rows.Next() {
		var (
			dc        domain.DeckCard
			c         domain.Card
			createdAt string
		)
		err := rows.Scan(&dc.CardID, &dc.Quantity, &c.ID, &c.Name, &c.Color, &createdAt)
		if err != nil {
			return nil, err
		}
		c.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		dc.Card = &c
		cards = append(cards, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if cards == nil {
		cards = []domain.DeckCard{}
	}

	return cards, nil
}

// collectDecks drains rows into a slice, never returning nil.
func collectDecks(rows *sql.Rows) ([]*domain.Deck, error) {
	var decks []*domain.Deck
	for rows.Next() {
		d, err := scanDeck(rows)
		if err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if decks == nil {
		decks = []*domain.Deck{}
	}

	return decks, nil
}
