package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckhaven/deckhaven-server/internal/domain"
	"github.com/deckhaven/deckhaven-server/internal/errors"
)

func card(id, name string, color domain.CardColor) *domain.Card {
	return &domain.Card{ID: id, Name: name, Color: color}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Ice King", "IceKing"},
		{"a Fish Called OK", "aFishCalledOK"},
		{"The Lost City", "theLostCity"},
		{"BLAZING SWORD", "BlazingSword"},
		{"ok", "OK"},
		{"Staff of Ages", "StaffofAges"},
		{"D'arcy's Blade", "DarcysBlade"},
		{"Card-42!", "Card42"},
		{"  padded   name  ", "PaddedName"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.name))
			// Deterministic and pure: same result on every call.
			assert.Equal(t, NormalizeName(tt.name), NormalizeName(tt.name))
		})
	}
}

func TestExport_MergesCollidingNames(t *testing.T) {
	// Both names normalize to "IceKing"; quantities merge additively.
	deck := &domain.Deck{
		Title: "Frost",
		Cards: []domain.DeckCard{
			{CardID: "card-1", Quantity: 3, Card: card("card-1", "Ice King", domain.CardColorBlue)},
			{CardID: "card-2", Quantity: 2, Card: card("card-2", "ice king!", domain.CardColorBlue)},
		},
	}

	payload := Export(deck)
	assert.Equal(t, "Frost", payload.DeckName)
	assert.Equal(t, map[string]int{"IceKing": 5}, payload.Counts)
}

func TestImport_MissingFields(t *testing.T) {
	_, err := Import(domain.PortableDeck{Counts: map[string]int{"X": 1}}, nil)
	assert.True(t, errors.Is(err, errors.ErrFormat))

	_, err = Import(domain.PortableDeck{DeckName: "No Counts"}, nil)
	assert.True(t, errors.Is(err, errors.ErrFormat))
}

func TestImport_NothingMatched(t *testing.T) {
	catalog := []*domain.Card{card("card-1", "Ice King", domain.CardColorBlue)}

	_, err := Import(domain.PortableDeck{
		DeckName: "Mystery",
		Counts:   map[string]int{"TotallyUnknown": 4},
	}, catalog)

	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
}

func TestImport_PartialMatchSucceedsWithWarning(t *testing.T) {
	catalog := []*domain.Card{card("card-1", "Ice King", domain.CardColorBlue)}

	res, err := Import(domain.PortableDeck{
		DeckName: "Partial",
		Counts:   map[string]int{"IceKing": 4, "GhostCard": 2},
	}, catalog)

	require.NoError(t, err)
	require.Len(t, res.Cards, 1)
	assert.Equal(t, "card-1", res.Cards[0].CardID)
	assert.Equal(t, []string{"GhostCard"}, res.NotFoundCards)
}

func TestImport_VariantMatching(t *testing.T) {
	catalog := []*domain.Card{
		card("card-1", "D'arcy, the Swift", domain.CardColorRed),
		card("card-2", "Old `Iron` Hide", domain.CardColorGreen),
	}

	res, err := Import(domain.PortableDeck{
		DeckName: "Variants",
		Counts: map[string]int{
			"DarcytheSwift": 2, // apostrophe and comma stripped
			"OldIronHide":   2, // backticks stripped
		},
	}, catalog)

	require.NoError(t, err)
	assert.Empty(t, res.NotFoundCards)
	require.Len(t, res.Cards, 2)
}

// The worked example: catalog {Ice King, a Fish Called OK}, composition
// {Ice King: 10, a Fish Called OK: 42}. Export then import must round-trip
// with zero unmatched names.
func TestRoundTrip_WorkedExample(t *testing.T) {
	iceKing := card("card-ice", "Ice King", domain.CardColorBlue)
	fish := card("card-fish", "a Fish Called OK", domain.CardColorBlue)
	catalog := []*domain.Card{iceKing, fish}

	deck := &domain.Deck{
		Title: "Cold Waters",
		Cards: []domain.DeckCard{
			{CardID: iceKing.ID, Quantity: 10, Card: iceKing},
			{CardID: fish.ID, Quantity: 42, Card: fish},
		},
	}

	payload := Export(deck)
	assert.Equal(t, map[string]int{"IceKing": 10, "aFishCalledOK": 42}, payload.Counts)

	res, err := Import(payload, catalog)
	require.NoError(t, err)
	assert.Empty(t, res.NotFoundCards)
	assert.Equal(t, "Cold Waters", res.Title)

	got := make(map[string]int)
	for _, dc := range res.Cards {
		got[dc.CardID] = dc.Quantity
	}
	assert.Equal(t, map[string]int{"card-ice": 10, "card-fish": 42}, got)
}

func TestRoundTrip_AwkwardCasing(t *testing.T) {
	awkward := card("card-1", "BLAZING sword", domain.CardColorRed)
	catalog := []*domain.Card{awkward}

	deck := &domain.Deck{
		Title: "Heat",
		Cards: []domain.DeckCard{{CardID: awkward.ID, Quantity: 52, Card: awkward}},
	}

	res, err := Import(Export(deck), catalog)
	require.NoError(t, err)
	assert.Empty(t, res.NotFoundCards)
	require.Len(t, res.Cards, 1)
	assert.Equal(t, 52, res.Cards[0].Quantity)
}

func TestInferColor_StrictMajority(t *testing.T) {
	// 30 of 52 red: strict majority, red wins.
	color := InferColor(map[domain.CardColor]int{
		domain.CardColorRed:  30,
		domain.CardColorBlue: 22,
	}, 52)
	assert.Equal(t, domain.DeckColorRed, color)

	// Exactly half is not a majority.
	color = InferColor(map[domain.CardColor]int{
		domain.CardColorRed:   26,
		domain.CardColorBlue:  20,
		domain.CardColorGreen: 6,
	}, 52)
	assert.Equal(t, domain.DeckColorMixed, color)
}

func TestInferColor_TieAndNeutral(t *testing.T) {
	color := InferColor(map[domain.CardColor]int{
		domain.CardColorRed:  26,
		domain.CardColorBlue: 26,
	}, 52)
	assert.Equal(t, domain.DeckColorMixed, color)

	// Neutral-dominated decks can never claim a color.
	color = InferColor(map[domain.CardColor]int{
		domain.CardColorRelic: 40,
		domain.CardColorRed:   12,
	}, 52)
	assert.Equal(t, domain.DeckColorMixed, color)

	assert.Equal(t, domain.DeckColorMixed, InferColor(nil, 0))
}

func TestImport_InfersColorFromComposition(t *testing.T) {
	catalog := []*domain.Card{
		card("card-1", "Ember", domain.CardColorRed),
		card("card-2", "Tide", domain.CardColorBlue),
	}

	res, err := Import(domain.PortableDeck{
		DeckName: "Mostly Red",
		Counts:   map[string]int{"Ember": 40, "Tide": 12},
	}, catalog)

	require.NoError(t, err)
	assert.Equal(t, domain.DeckColorRed, res.Color)
}
