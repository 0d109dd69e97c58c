package quiz

// Flashcard is a position in a flashcard deck.
//
// Index stays in [0, Length). Moving to another card always shows its front side.
type Flashcard struct {
	Index   int
	Length  int
	Flipped bool
}

// NewFlashcard returns the first card of a deck of the given length
func NewFlashcard(length int) Flashcard {
	return Flashcard{Length: length}
}

// Next moves to the following card.
// On the last card it reports finished and leaves the position unchanged.
func (f Flashcard) Next() (next Flashcard, finished bool) {
	if f.IsLast() {
		return f, true
	}
	return Flashcard{Index: f.Index + 1, Length: f.Length}, false
}

// Prev moves to the previous card. On the first card it does nothing.
func (f Flashcard) Prev() Flashcard {
	if f.Index == 0 {
		return f
	}
	return Flashcard{Index: f.Index - 1, Length: f.Length}
}

// Flip turns the card over
func (f Flashcard) Flip() Flashcard {
	f.Flipped = !f.Flipped
	return f
}

// IsLast reports whether this is the last card of the deck
func (f Flashcard) IsLast() bool {
	return f.Index >= f.Length-1
}

// Progress returns the percentage of the deck seen, the current card included
func (f Flashcard) Progress() float64 {
	if f.Length <= 0 {
		return 0
	}
	return float64(f.Index+1) / float64(f.Length) * 100
}
