package deck

import (
	rand "math/rand/v2"
	"slices"
)

// Pile is a LIFO pile of cards. Index 0 is the bottom, the last element is
// the top.
type Pile[T any] struct {
	cards []T
}

// NewPile returns a pile holding cards, first argument at the bottom.
func NewPile[T any](cards ...T) *Pile[T] {
	return &Pile[T]{cards: slices.Clone(cards)}
}

// Push places card on top of the pile.
func (p *Pile[T]) Push(card T) {
	p.cards = append(p.cards, card)
}

// Pop removes and returns the top card.
func (p *Pile[T]) Pop() (v T, ok bool) {
	var zero T
	n := len(p.cards)
	if n == 0 {
		return zero, false
	}

	v = p.cards[n-1]
	p.cards[n-1] = zero
	p.cards = p.cards[:n-1]
	return v, true
}

// Peek returns the top card without removing it.
func (p *Pile[T]) Peek() (v T, ok bool) {
	if len(p.cards) == 0 {
		return v, false
	}
	return p.cards[len(p.cards)-1], true
}

// Len returns the number of cards in the pile.
func (p *Pile[T]) Len() int {
	return len(p.cards)
}

// Cards returns a copy of the pile, bottom first.
func (p *Pile[T]) Cards() []T {
	return slices.Clone(p.cards)
}

func (p *Pile[T]) insert(i int, card T) {
	p.cards = slices.Insert(p.cards, i, card)
}

// removeTopmost removes the highest card in the pile for which match
// returns true.
func (p *Pile[T]) removeTopmost(match func(T) bool) bool {
	for i := len(p.cards) - 1; i >= 0; i-- {
		if match(p.cards[i]) {
			p.cards = slices.Delete(p.cards, i, i+1)
			return true
		}
	}
	return false
}

// take empties the pile and returns its former contents.
func (p *Pile[T]) take() []T {
	cards := p.cards
	p.cards = nil
	return cards
}

// Shuffle permutes the pile in place with a Fisher-Yates shuffle. A nil rng
// uses the process-wide source.
func Shuffle[T any](p *Pile[T], rng *rand.Rand) error {
	if p == nil {
		return ErrNilPile
	}
	for i := len(p.cards) - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		p.cards[i], p.cards[j] = p.cards[j], p.cards[i]
	}
	return nil
}
