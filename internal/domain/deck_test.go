package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func knownSet(ids ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		m[id] = struct{}{}
	}
	return m
}

func TestValidateComposition_Valid(t *testing.T) {
	known := knownSet("card-a", "card-b", "card-c", "card-d", "card-e",
		"card-f", "card-g", "card-h", "card-i", "card-j", "card-k", "card-l", "card-m")

	// 13 distinct cards x 4 copies = 52.
	var cards []DeckCard
	for id := range known {
		cards = append(cards, DeckCard{CardID: id, Quantity: 4})
	}

	require.NoError(t, ValidateComposition(cards, known))
}

func TestValidateComposition_WrongTotal(t *testing.T) {
	known := knownSet("card-a", "card-b")
	cards := []DeckCard{
		{CardID: "card-a", Quantity: 4},
		{CardID: "card-b", Quantity: 4},
	}

	err := ValidateComposition(cards, known)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly 52")
}

func TestValidateComposition_QuantityBounds(t *testing.T) {
	known := knownSet("card-a", "card-b")

	err := ValidateComposition([]DeckCard{{CardID: "card-a", Quantity: 5}}, known)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 1 and 4")

	err = ValidateComposition([]DeckCard{{CardID: "card-a", Quantity: 0}}, known)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 1 and 4")
}

func TestValidateComposition_UnknownCard(t *testing.T) {
	err := ValidateComposition([]DeckCard{{CardID: "card-x", Quantity: 1}}, knownSet("card-a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown card")
}

func TestValidateComposition_DuplicateCard(t *testing.T) {
	known := knownSet("card-a")
	cards := []DeckCard{
		{CardID: "card-a", Quantity: 2},
		{CardID: "card-a", Quantity: 2},
	}

	err := ValidateComposition(cards, known)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "more than once")
}

func TestFormatDescription_PlainText(t *testing.T) {
	in := "First line\nsecond line\n\nSecond paragraph\n\n\n\nThird paragraph"
	out := FormatDescription(in)

	assert.Equal(t, "<p>First line<br />second line</p>\n\n<p>Second paragraph</p>\n\n<p>Third paragraph</p>", out)
}

func TestFormatDescription_TrimsAndDropsEmptyLines(t *testing.T) {
	in := "  padded  \n\t\n also padded "
	out := FormatDescription(in)

	assert.Equal(t, "<p>padded<br />also padded</p>", out)
}

func TestFormatDescription_SkipsExistingMarkup(t *testing.T) {
	// Already-marked-up content must never be wrapped a second time.
	in := "<p>Already formatted</p>"
	assert.Equal(t, in, FormatDescription(in))

	in = "<div>Block content</div>"
	assert.Equal(t, in, FormatDescription(in))
}

func TestFormatDescription_Idempotent(t *testing.T) {
	once := FormatDescription("hello\n\nworld")
	twice := FormatDescription(once)
	assert.Equal(t, once, twice)
}

func TestDeckColor_Valid(t *testing.T) {
	for _, c := range []DeckColor{DeckColorRed, DeckColorBlue, DeckColorGreen, DeckColorYellow, DeckColorPurple, DeckColorMixed} {
		assert.True(t, c.Valid(), string(c))
	}
	assert.False(t, DeckColor("GREY").Valid())
	assert.False(t, DeckColor("").Valid())
}

func TestCardColor_DeckColor(t *testing.T) {
	color, ok := CardColorRed.DeckColor()
	assert.True(t, ok)
	assert.Equal(t, DeckColorRed, color)

	for _, neutral := range []CardColor{CardColorGrey, CardColorRod, CardColorRelic} {
		_, ok := neutral.DeckColor()
		assert.False(t, ok, string(neutral))
	}
}
