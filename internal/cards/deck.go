package cards

import (
	"github.com/qninhdt/last-compound/server/internal/random"
)

// Deck is a shuffled, non-repeating draw pile. Drawn cards leave the deck
// for the rest of the session; nothing is ever shuffled back in.
type Deck[T any] struct {
	cards []T
}

// NewDeck copies cards into a new deck shuffled with r
func NewDeck[T any](cards []T, r random.Source) *Deck[T] {
	d := &Deck[T]{cards: make([]T, len(cards))}
	copy(d.cards, cards)
	random.Shuffle(r, len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
	return d
}

// Draw removes and returns the top card
func (d *Deck[T]) Draw() (T, bool) {
	var zero T
	if len(d.cards) == 0 {
		return zero, false
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// DrawMatching removes and returns a card chosen uniformly among those
// accepted by match
func (d *Deck[T]) DrawMatching(r random.Source, match func(T) bool) (T, bool) {
	var zero T
	candidates := make([]int, 0, len(d.cards))
	for i, card := range d.cards {
		if match(card) {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return zero, false
	}

	i := candidates[r.IntN(len(candidates))]
	card := d.cards[i]
	d.cards = append(d.cards[:i], d.cards[i+1:]...)
	return card, true
}

// Size returns the number of cards left
func (d *Deck[T]) Size() int {
	return len(d.cards)
}
