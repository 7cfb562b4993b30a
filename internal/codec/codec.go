// Package codec translates deck compositions to and from the portable
// clipboard JSON format used by the companion game client.
//
// Export normalization is lossy and non-invertible, so import recovers
// catalog cards by registering several despaced variants of every catalog
// name and probing the same variants of each imported name.
package codec

import (
	"slices"
	"strings"
	"unicode"

	"github.com/deckhaven/deckhaven-server/internal/domain"
	"github.com/deckhaven/deckhaven-server/internal/errors"
)

// Words kept lowercase mid-name by the export normalization.
var lowercaseWords = map[string]bool{
	"a":   true,
	"the": true,
	"of":  true,
}

// NormalizeName converts a card display name into its portable-format key.
// The transform must stay bit-exact with the game client: strip everything
// that is not a letter, digit, or space, then concatenate the words with
// "OK" kept uppercase, "a"/"the"/"of" kept lowercase, and every other word
// capitalized on the first letter only.
func NormalizeName(name string) string {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' {
			return r
		}
		return -1
	}, name)

	var b strings.Builder
	for _, word := range strings.Fields(stripped) {
		switch {
		case strings.ToUpper(word) == "OK":
			b.WriteString("OK")
		case lowercaseWords[strings.ToLower(word)]:
			b.WriteString(strings.ToLower(word))
		default:
			runes := []rune(strings.ToLower(word))
			runes[0] = unicode.ToUpper(runes[0])
			b.WriteString(string(runes))
		}
	}
	return b.String()
}

// Export encodes a deck's composition as a portable payload. Catalog names
// that collide under normalization merge additively.
func Export(deck *domain.Deck) domain.PortableDeck {
	counts := make(map[string]int, len(deck.Cards))
	for _, dc := range deck.Cards {
		if dc.Card == nil {
			continue
		}
		counts[NormalizeName(dc.Card.Name)] += dc.Quantity
	}
	return domain.PortableDeck{
		DeckName: deck.Title,
		Counts:   counts,
	}
}

// ImportResult is the outcome of resolving a portable payload against the
// catalog. NotFoundCards lists imported names that matched nothing; a
// partial match is a success with a warning, not an error.
type ImportResult struct {
	Title         string
	Color         domain.DeckColor
	Cards         []domain.DeckCard
	NotFoundCards []string
}

// Import resolves a portable payload against the catalog.
// Returns a FormatError when the payload shape is wrong, and a
// ValidationError only when not a single imported name matched.
func Import(payload domain.PortableDeck, catalog []*domain.Card) (*ImportResult, error) {
	if payload.DeckName == "" {
		return nil, errors.Format("portable deck is missing deckName")
	}
	if payload.Counts == nil {
		return nil, errors.Format("portable deck is missing counts")
	}

	lookup := buildLookup(catalog)

	result := &ImportResult{Title: payload.DeckName}
	colorWeights := make(map[domain.CardColor]int)
	total := 0

	for _, name := range sortedKeys(payload.Counts) {
		quantity := payload.Counts[name]
		card := lookup.find(name)
		if card == nil {
			result.NotFoundCards = append(result.NotFoundCards, name)
			continue
		}
		result.Cards = append(result.Cards, domain.DeckCard{
			CardID:   card.ID,
			Quantity: quantity,
			Card:     card,
		})
		colorWeights[card.Color] += quantity
		total += quantity
	}

	if len(result.Cards) == 0 {
		return nil, errors.Validation("no valid cards found")
	}

	result.Color = InferColor(colorWeights, total)
	return result, nil
}

// InferColor picks the deck color from quantity-weighted card colors.
// The strongest color wins only when it holds a strict majority of the
// matched quantity; ties, neutral-dominated decks, and sub-majority
// leaders all fall back to MIXED.
func InferColor(weights map[domain.CardColor]int, total int) domain.DeckColor {
	if total == 0 {
		return domain.DeckColorMixed
	}

	var best domain.CardColor
	bestWeight := 0
	tied := false
	for color, weight := range weights {
		switch {
		case weight > bestWeight:
			best, bestWeight, tied = color, weight, false
		case weight == bestWeight:
			tied = true
		}
	}

	if tied {
		return domain.DeckColorMixed
	}

	deckColor, ok := best.DeckColor()
	if !ok {
		return domain.DeckColorMixed
	}

	// Majority rule: the winner must exceed half the matched quantity.
	if bestWeight*2 <= total {
		return domain.DeckColorMixed
	}
	return deckColor
}

// reverseLookup maps despaced name variants back to catalog cards.
// Keys are case-folded; the export casing rules rewrite word casing, so a
// case-sensitive probe would lose cards whose display names are not
// already title-cased.
type reverseLookup map[string]*domain.Card

var (
	despacer  = strings.NewReplacer(" ", "", "'", "")
	depuncter = strings.NewReplacer(" ", "", "'", "", "`", "", ",", "")
)

// variants returns the despaced forms of a name, in probe order:
// raw, spaces/apostrophes stripped, backticks/commas also stripped,
// and finally everything non-alphanumeric stripped.
func variants(name string) [4]string {
	return [4]string{
		name,
		despacer.Replace(name),
		depuncter.Replace(name),
		stripNonAlnum(name),
	}
}

func stripNonAlnum(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, name)
}

func buildLookup(catalog []*domain.Card) reverseLookup {
	lookup := make(reverseLookup, len(catalog)*4)
	for _, card := range catalog {
		for _, v := range variants(card.Name) {
			key := strings.ToLower(v)
			if _, taken := lookup[key]; !taken {
				lookup[key] = card
			}
		}
	}
	return lookup
}

// find probes the lookup with each variant of the imported name in order;
// the first hit wins.
func (l reverseLookup) find(importedName string) *domain.Card {
	for _, v := range variants(importedName) {
		if card, ok := l[strings.ToLower(v)]; ok {
			return card
		}
	}
	return nil
}

// sortedKeys returns map keys in a stable order so imports are
// deterministic for tests and color tie-breaking.
func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
