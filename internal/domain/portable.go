package domain

// PortableDeck is the clipboard JSON payload exchanged with the companion
// game client. Counts is keyed by the export-normalized card name; the
// shape must stay bit-compatible with the client regardless of how decks
// are stored internally.
type PortableDeck struct {
	DeckName string         `json:"deckName"`
	Counts   map[string]int `json:"counts"`
}
