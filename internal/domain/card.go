package domain

import "time"

// CardColor identifies the printed color of a catalog card.
type CardColor string

// Card colors available in the catalog.
const (
	CardColorRed    CardColor = "RED"
	CardColorBlue   CardColor = "BLUE"
	CardColorGreen  CardColor = "GREEN"
	CardColorYellow CardColor = "YELLOW"
	CardColorPurple CardColor = "PURPLE"
	CardColorGrey   CardColor = "GREY"
	CardColorRod    CardColor = "ROD"
	CardColorRelic  CardColor = "RELIC"
)

// Valid checks if the color is valid.
func (c CardColor) Valid() bool {
	switch c {
	case CardColorRed, CardColorBlue, CardColorGreen, CardColorYellow,
		CardColorPurple, CardColorGrey, CardColorRod, CardColorRelic:
		return true
	default:
		return false
	}
}

// DeckColor returns the deck-color counterpart of a card color.
// Neutral card colors (GREY, ROD, RELIC) have no counterpart and
// report ok=false.
func (c CardColor) DeckColor() (color DeckColor, ok bool) {
	switch c {
	case CardColorRed:
		return DeckColorRed, true
	case CardColorBlue:
		return DeckColorBlue, true
	case CardColorGreen:
		return DeckColorGreen, true
	case CardColorYellow:
		return DeckColorYellow, true
	case CardColorPurple:
		return DeckColorPurple, true
	default:
		return DeckColorMixed, false
	}
}

// Card is a catalog entry available to every deck.
// Cards are created by moderation action and never mutated afterwards.
type Card struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"` // Unique, case-insensitive
	Color     CardColor `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}
