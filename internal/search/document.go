package search

import (
	"github.com/deckhaven/deckhaven-server/internal/domain"
)

// DeckDocument is the indexed representation of a deck.
type DeckDocument struct {
	ID        string
	Title     string
	Author    string
	Color     string
	CreatedAt int64 // Unix seconds, for newest-first sorting
}

// NewDeckDocument builds a search document from a deck.
func NewDeckDocument(d *domain.Deck) *DeckDocument {
	return &DeckDocument{
		ID:        d.ID,
		Title:     d.Title,
		Author:    d.AuthorUsername,
		Color:     string(d.Color),
		CreatedAt: d.CreatedAt.Unix(),
	}
}

// ToMap converts the document to a map so field names match the index
// mapping (lowercase).
func (d *DeckDocument) ToMap() map[string]any {
	return map[string]any{
		"id":         d.ID,
		"title":      d.Title,
		"author":     d.Author,
		"color":      d.Color,
		"created_at": d.CreatedAt,
	}
}
