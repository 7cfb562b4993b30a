package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/deckhaven/deckhaven-server/internal/domain"
	"github.com/deckhaven/deckhaven-server/internal/store"
)

// cardColumns is the ordered list of columns selected in card queries.
// Must match the scan order in scanCard.
const cardColumns = `id, name, color, created_at`

// scanCard scans a sql.Row (or sql.Rows via its Scan method) into a domain.Card.
func scanCard(scanner interface{ Scan(dest ...any) error }) (*domain.Card, error) {
	var c domain.Card

	var createdAt string

	err := scanner.Scan(
		&c.ID,
		&c.Name,
		&c.Color,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// CreateCard inserts a new card into the catalog.
// Returns store.ErrAlreadyExists on a duplicate name (case-insensitive).
func (s *Store) CreateCard(ctx context.Context, c *domain.Card) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cards (id, name, color, created_at)
		VALUES (?, ?, ?, ?)`,
		c.ID,
		c.Name,
		c.Color,
		formatTime(c.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetCardByID retrieves a card by its ID.
// Returns store.ErrNotFound if the card does not exist.
func (s *Store) GetCardByID(ctx context.Context, cardID string) (*domain.Card, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+cardColumns+` FROM cards WHERE id = ?`, cardID)

	c, err := scanCard(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCards returns the full card catalog ordered by name.
func (s *Store) ListCards(ctx context.Context) ([]*domain.Card, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+cardColumns+` FROM cards ORDER BY name COLLATE NOCASE ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []*domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if cards == nil {
		cards = []*domain.Card{}
	}

	return cards, nil
}

// DeleteCard removes a card from the catalog.
// Returns store.ErrInUse if any deck still references the card, and
// store.ErrNotFound if it does not exist.
func (s *Store) DeleteCard(ctx context.Context, cardID string) error {
	var refs int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM deck_cards WHERE card_id = ?`, cardID).Scan(&refs)
	if err != nil {
		return fmt.Errorf("count card references: %w", err)
	}
	if refs > 0 {
		return store.ErrInUse
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, cardID)
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
	return nil
}
