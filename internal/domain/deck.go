package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Deck building limits.
const (
	// DeckSize is the exact number of cards (by quantity) a deck must contain.
	DeckSize = 52
	// MaxCopies is the maximum quantity of a single card in a deck.
	MaxCopies = 4
	// MaxTitleLength caps deck titles.
	MaxTitleLength = 50
)

// DeckColor identifies the dominant color of a deck.
// Distinct from CardColor: decks have no neutral colors, but may be MIXED.
type DeckColor string

// Deck colors.
const (
	DeckColorRed    DeckColor = "RED"
	DeckColorBlue   DeckColor = "BLUE"
	DeckColorGreen  DeckColor = "GREEN"
	DeckColorYellow DeckColor = "YELLOW"
	DeckColorPurple DeckColor = "PURPLE"
	DeckColorMixed  DeckColor = "MIXED"
)

// Valid checks if the color is valid.
func (c DeckColor) Valid() bool {
	switch c {
	case DeckColorRed, DeckColorBlue, DeckColorGreen, DeckColorYellow,
		DeckColorPurple, DeckColorMixed:
		return true
	default:
		return false
	}
}

// DeckCard is one row of a deck's composition.
type DeckCard struct {
	CardID   string `json:"card_id"`
	Quantity int    `json:"quantity"`

	// Card is the joined catalog entry; populated on read paths.
	Card *Card `json:"card,omitempty"`
}

// Deck is a named, colored collection of exactly DeckSize cards
// authored by one user.
type Deck struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Color       DeckColor `json:"color"`
	AuthorID    string    `json:"author_id"`
	Views       int       `json:"views"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined fields, populated on read paths.
	AuthorUsername string     `json:"author_username,omitempty"`
	Cards          []DeckCard `json:"cards,omitempty"`
	LikesCount     int        `json:"likes_count"`
}

// ValidateComposition checks a deck composition against the building rules:
// every quantity in [1, MaxCopies], no repeated card, every card known to
// the catalog, and quantities summing to exactly DeckSize.
// knownCards maps catalog card IDs to any value; only key membership is used.
func ValidateComposition(cards []DeckCard, knownCards map[string]struct{}) error {
	seen := make(map[string]struct{}, len(cards))
	total := 0

	for _, dc := range cards {
		if dc.CardID == "" {
			return fmt.Errorf("composition row is missing a card id")
		}
		if _, ok := knownCards[dc.CardID]; !ok {
			return fmt.Errorf("unknown card %q", dc.CardID)
		}
		if _, dup := seen[dc.CardID]; dup {
			return fmt.Errorf("card %q appears more than once", dc.CardID)
		}
		seen[dc.CardID] = struct{}{}

		if dc.Quantity < 1 || dc.Quantity > MaxCopies {
			return fmt.Errorf("card %q has quantity %d, must be between 1 and %d", dc.CardID, dc.Quantity, MaxCopies)
		}
		total += dc.Quantity
	}

	if total != DeckSize {
		return fmt.Errorf("deck has %d cards, must have exactly %d", total, DeckSize)
	}

	return nil
}

// FormatDescription converts a plain-text description into block HTML:
// paragraphs split on blank lines, lines trimmed, empties dropped, lines
// rejoined with <br />, each paragraph wrapped in <p>.
// Content that already carries block markup is returned unchanged, so the
// transform is safe to apply once at write time.
func FormatDescription(description string) string {
	if strings.Contains(description, "<p>") || strings.Contains(description, "<div>") {
		return description
	}

	var paragraphs []string
	for _, section := range paragraphBreak.Split(description, -1) {
		var lines []string
		for _, line := range strings.Split(section, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			lines = append(lines, line)
		}
		if len(lines) == 0 {
			continue
		}
		paragraphs = append(paragraphs, "<p>"+strings.Join(lines, "<br />")+"</p>")
	}

	return strings.Join(paragraphs, "\n\n")
}

// paragraphBreak matches the blank-line runs separating paragraphs.
var paragraphBreak = regexp.MustCompile(`\n\n+`)
