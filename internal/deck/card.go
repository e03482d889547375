package deck

// Card is a single face-down/face-up card on the board.
type Card struct {
	// ID is unique within a deck.
	ID string `json:"id"`
	// PairID is shared by exactly two cards; match comparison uses it.
	PairID string `json:"pairId"`
	// Value is the face shown while the card is flipped or matched.
	Value string `json:"value"`
	// Flipped is true while the card is face-up and not yet resolved.
	Flipped bool `json:"isFlipped"`
	// Matched is terminal: once true it is never reset within a game.
	Matched bool `json:"isMatched"`
}

// Deck is the ordered, shuffled card layout of one game. Composition is
// fixed at generation time; only the per-card flags mutate afterwards.
type Deck struct {
	Cards []Card `json:"cards"`
}

// ByID returns a pointer into the deck for in-place flag mutation.
func (d *Deck) ByID(id string) (*Card, bool) {
	for i := range d.Cards {
		if d.Cards[i].ID == id {
			return &d.Cards[i], true
		}
	}
	return nil, false
}

// Len returns the number of cards.
func (d *Deck) Len() int {
	return len(d.Cards)
}

// AllMatched reports whether every card has been resolved.
func (d *Deck) AllMatched() bool {
	for i := range d.Cards {
		if !d.Cards[i].Matched {
			return false
		}
	}
	return len(d.Cards) > 0
}

// Unmatched returns pointers to the cards not yet resolved, in board order.
func (d *Deck) Unmatched() []*Card {
	var out []*Card
	for i := range d.Cards {
		if !d.Cards[i].Matched {
			out = append(out, &d.Cards[i])
		}
	}
	return out
}
