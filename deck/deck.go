// Package deck implements a generic card container split into three zones:
// a library to draw from, a hand, and a graveyard of discarded cards.
//
// Library and graveyard are LIFO piles whose top is the last element. The
// hand is an ordered sequence read left to right. A card lives in exactly
// one zone; every transfer is a move.
//
// A Deck is not safe for concurrent use.
package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"reflect"
	"slices"

	"github.com/charmbracelet/log"
)

var (
	// ErrInvalidZone is returned when an operation is given an undefined Zone.
	ErrInvalidZone = errors.New("invalid zone")
	// ErrNilPile is returned by Shuffle when called with a nil pile.
	ErrNilPile = errors.New("nil pile")
	// ErrInsufficientCards is returned by Draw when the library and graveyard
	// together hold fewer cards than requested.
	ErrInsufficientCards = errors.New("insufficient cards")
)

// Deck holds a canonical deck list and the three zones built from it.
type Deck[T any] struct {
	deckList  []T
	library   *Pile[T]
	hand      []T
	graveyard *Pile[T]
	handSize  int

	equal          func(a, b T) bool
	rng            *rand.Rand
	logger         *log.Logger
	shuffleOnReset bool
}

// New creates a deck for a comparable card type, using == to match cards.
func New[T comparable](cards []T, handSize int, opts ...Option) *Deck[T] {
	return NewFunc(cards, handSize, func(a, b T) bool { return a == b }, opts...)
}

// NewFunc creates a deck whose cards are matched with equal. A nil equal
// falls back to reflect.DeepEqual. cards becomes the deck list and, unless
// WithEmptyLibrary is given, the shuffled library.
func NewFunc[T any](cards []T, handSize int, equal func(a, b T) bool, opts ...Option) *Deck[T] {
	if equal == nil {
		equal = func(a, b T) bool { return reflect.DeepEqual(a, b) }
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.resolve()

	d := &Deck[T]{
		deckList:       slices.Clone(cards),
		library:        NewPile[T](),
		graveyard:      NewPile[T](),
		handSize:       handSize,
		equal:          equal,
		rng:            o.rng,
		logger:         o.logger,
		shuffleOnReset: o.shuffleOnReset,
	}
	if !o.emptyLibrary {
		d.Rebuild()
	}
	return d
}

// Add inserts card into zone. A non-negative index counts from the bottom
// of a pile (left of the hand); a negative index counts from the top (right),
// so -1 is the top. Out of range indexes clamp to the nearest end. When
// addToDeckList is set the card also joins the deck list.
func (d *Deck[T]) Add(card T, addToDeckList bool, zone Zone, index int) error {
	if !zone.Valid() {
		return fmt.Errorf("add to %v: %w", zone, ErrInvalidZone)
	}

	pos := insertPosition(d.Count(zone), index)
	switch zone {
	case Library:
		d.library.insert(pos, card)
	case Graveyard:
		d.graveyard.insert(pos, card)
	case Hand:
		d.hand = slices.Insert(d.hand, pos, card)
	}

	if addToDeckList {
		d.deckList = append(d.deckList, card)
	}
	return nil
}

// insertPosition maps an Add index onto a slice position in [0, size].
func insertPosition(size, index int) int {
	if index < 0 {
		index = size + index + 1
	}
	return max(0, min(index, size))
}

// Discard moves the first card in hand equal to card onto the graveyard.
// It reports false and changes nothing if the card is not in hand.
func (d *Deck[T]) Discard(card T) bool {
	i := slices.IndexFunc(d.hand, d.matcher(card))
	if i < 0 {
		return false
	}
	d.discardAt(i)
	return true
}

// DiscardRandom discards a uniformly chosen card from the hand.
func (d *Deck[T]) DiscardRandom() (T, bool) {
	if len(d.hand) == 0 {
		var zero T
		return zero, false
	}
	return d.discardAt(d.rng.IntN(len(d.hand))), true
}

func (d *Deck[T]) discardAt(i int) T {
	card := d.hand[i]
	d.hand = slices.Delete(d.hand, i, i+1)
	d.graveyard.Push(card)
	return card
}

// DiscardHand discards every card in hand, leftmost first, and returns them.
func (d *Deck[T]) DiscardHand() []T {
	discarded := d.hand
	for _, card := range discarded {
		d.graveyard.Push(card)
	}
	d.hand = nil
	return discarded
}

// Draw moves n cards from the top of the library into the hand, returning
// them in draw order. An exhausted library is refilled from the graveyard
// and drawing continues. If the library and graveyard together hold fewer
// than n cards, Draw returns ErrInsufficientCards and changes nothing.
func (d *Deck[T]) Draw(n int) ([]T, error) {
	if n <= 0 {
		return nil, nil
	}
	if available := d.library.Len() + d.graveyard.Len(); n > available {
		return nil, fmt.Errorf("draw %d with %d available: %w", n, available, ErrInsufficientCards)
	}

	drawn := make([]T, 0, n)
	for range n {
		if d.library.Len() == 0 {
			d.reset(false)
		}
		card, _ := d.library.Pop()
		d.hand = append(d.hand, card)
		drawn = append(drawn, card)
	}
	return drawn, nil
}

// DrawHand draws until the hand holds HandSize cards. A hand that is
// already full or larger is left alone.
func (d *Deck[T]) DrawHand() ([]T, error) {
	need := d.handSize - len(d.hand)
	if need <= 0 {
		return nil, nil
	}
	return d.Draw(need)
}

// Remove removes one card equal to card, looking in the hand (leftmost
// first), then the graveyard, then the library (topmost first in both),
// and stopping at the first zone where it is found. When removeFromDeckList
// is set the first matching deck list entry is removed too, whether or not
// a zone held the card.
func (d *Deck[T]) Remove(card T, removeFromDeckList bool) bool {
	removed := false
	for _, zone := range []Zone{Hand, Graveyard, Library} {
		if d.removeFromZone(card, zone) {
			removed = true
			break
		}
	}
	if removeFromDeckList {
		d.removeFromDeckList(card)
	}
	return removed
}

// RemoveFrom is Remove restricted to a single zone.
func (d *Deck[T]) RemoveFrom(card T, removeFromDeckList bool, zone Zone) (bool, error) {
	if !zone.Valid() {
		return false, fmt.Errorf("remove from %v: %w", zone, ErrInvalidZone)
	}
	removed := d.removeFromZone(card, zone)
	if removeFromDeckList {
		d.removeFromDeckList(card)
	}
	return removed, nil
}

func (d *Deck[T]) removeFromZone(card T, zone Zone) bool {
	match := d.matcher(card)
	switch zone {
	case Hand:
		i := slices.IndexFunc(d.hand, match)
		if i < 0 {
			return false
		}
		d.hand = slices.Delete(d.hand, i, i+1)
		return true
	case Graveyard:
		return d.graveyard.removeTopmost(match)
	case Library:
		return d.library.removeTopmost(match)
	}
	return false
}

func (d *Deck[T]) removeFromDeckList(card T) {
	if i := slices.IndexFunc(d.deckList, d.matcher(card)); i >= 0 {
		d.deckList = slices.Delete(d.deckList, i, i+1)
	}
}

func (d *Deck[T]) matcher(card T) func(T) bool {
	return func(c T) bool { return d.equal(c, card) }
}

// ShuffleLibrary randomly reorders the library.
func (d *Deck[T]) ShuffleLibrary() {
	_ = Shuffle(d.library, d.rng)
}

// ShuffleGraveyard randomly reorders the graveyard.
func (d *Deck[T]) ShuffleGraveyard() {
	_ = Shuffle(d.graveyard, d.rng)
}

// reset recycles the graveyard into the library, keeping its order so the
// graveyard top becomes the library top, then shuffles the library if the
// deck was configured to.
func (d *Deck[T]) reset(includeHand bool) {
	if includeHand {
		d.DiscardHand()
	}
	for _, card := range d.graveyard.take() {
		d.library.Push(card)
	}
	if d.shuffleOnReset {
		d.ShuffleLibrary()
	}
	d.logger.Debug("deck reset", "include_hand", includeHand, "library", d.library.Len(), "shuffled", d.shuffleOnReset)
}

// Rebuild empties every zone and refills the library from the deck list,
// shuffled.
func (d *Deck[T]) Rebuild() {
	d.hand = nil
	d.graveyard.take()
	d.library = NewPile(d.deckList...)
	d.ShuffleLibrary()
	d.logger.Debug("deck rebuilt", "library", d.library.Len())
}

// Peek returns the top card of the library without drawing it.
func (d *Deck[T]) Peek() (T, bool) {
	return d.library.Peek()
}

// DeckList returns a copy of the canonical deck list in insertion order.
func (d *Deck[T]) DeckList() []T {
	return slices.Clone(d.deckList)
}

// Library returns a copy of the library, bottom first.
func (d *Deck[T]) Library() []T {
	return d.library.Cards()
}

// Hand returns a copy of the hand, left to right.
func (d *Deck[T]) Hand() []T {
	return slices.Clone(d.hand)
}

// Graveyard returns a copy of the graveyard, bottom first.
func (d *Deck[T]) Graveyard() []T {
	return d.graveyard.Cards()
}

// Count returns the number of cards in zone, or 0 for an invalid zone.
func (d *Deck[T]) Count(zone Zone) int {
	switch zone {
	case Library:
		return d.library.Len()
	case Hand:
		return len(d.hand)
	case Graveyard:
		return d.graveyard.Len()
	}
	return 0
}

// HandSize returns the hand size DrawHand fills up to.
func (d *Deck[T]) HandSize() int {
	return d.handSize
}

// SetHandSize changes the hand size. Cards already in hand are kept.
func (d *Deck[T]) SetHandSize(n int) {
	d.handSize = n
}
