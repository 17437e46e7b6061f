package domain

// DeckKind distinguishes the two card decks on the board.
type DeckKind string

const (
	DeckAlpha      DeckKind = "alpha"
	DeckGovernance DeckKind = "governance"
)

// Deck is a shuffled ordering of the sixteen card indices plus a draw
// cursor. Draws wrap around, so the deck never exhausts.
type Deck struct {
	Cards  [DeckSize]uint8 `json:"cards"`
	Cursor int             `json:"cursor"`
}

// seedOffset gives each deck a distinct slice of the shared seed so the
// two shuffles differ even with identical bytes.
func seedOffset(kind DeckKind) int {
	if kind == DeckGovernance {
		return 16
	}
	return 0
}

// NewDeck builds a deck shuffled deterministically from a 32-byte seed.
// The shuffle is a Fisher-Yates walk driven by successive seed bytes.
func NewDeck(seed [32]byte, kind DeckKind) Deck {
	var d Deck
	for i := range d.Cards {
		d.Cards[i] = uint8(i)
	}
	offset := seedOffset(kind)
	for i := DeckSize - 1; i > 0; i-- {
		j := int(seed[(offset+i)%len(seed)]) % (i + 1)
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
	return d
}

// Draw returns the next card index and advances the cursor.
func (d *Deck) Draw() int {
	card := int(d.Cards[d.Cursor])
	d.Cursor = (d.Cursor + 1) % DeckSize
	return card
}
