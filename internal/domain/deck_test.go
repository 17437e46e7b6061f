package domain

import "testing"

func TestNewDeckIsPermutation(t *testing.T) {
	var seed [32]byte
	for i := range seed {
		seed[i] = byte(i*7 + 3)
	}
	for _, kind := range []DeckKind{DeckAlpha, DeckGovernance} {
		d := NewDeck(seed, kind)
		seen := make(map[uint8]bool)
		for _, c := range d.Cards {
			if c >= DeckSize {
				t.Fatalf("%s deck contains out-of-range card %d", kind, c)
			}
			if seen[c] {
				t.Fatalf("%s deck contains duplicate card %d", kind, c)
			}
			seen[c] = true
		}
	}
}

func TestNewDeckDeterministic(t *testing.T) {
	var seed [32]byte
	for i := range seed {
		seed[i] = byte(200 - i)
	}
	a := NewDeck(seed, DeckAlpha)
	b := NewDeck(seed, DeckAlpha)
	if a.Cards != b.Cards {
		t.Fatal("same seed produced different shuffles")
	}
}

func TestNewDeckOffsetsDiffer(t *testing.T) {
	// A seed whose halves differ must shuffle the two decks differently.
	var seed [32]byte
	for i := 16; i < 32; i++ {
		seed[i] = byte(i * 11)
	}
	a := NewDeck(seed, DeckAlpha)
	g := NewDeck(seed, DeckGovernance)
	if a.Cards == g.Cards {
		t.Fatal("alpha and governance decks shuffled identically")
	}
}

func TestDeckDrawWrapsAround(t *testing.T) {
	var seed [32]byte
	d := NewDeck(seed, DeckAlpha)

	first := make([]int, DeckSize)
	for i := range first {
		first[i] = d.Draw()
	}
	if d.Cursor != 0 {
		t.Fatalf("cursor = %d after full pass, want 0", d.Cursor)
	}
	for i := range first {
		if got := d.Draw(); got != first[i] {
			t.Fatalf("second pass draw %d = %d, want %d", i, got, first[i])
		}
	}
}
