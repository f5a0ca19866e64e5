package deck

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/tabletop/internal/randutil"
)

// stacked builds a deck with an empty starting library and then pushes
// library cards bottom first.
func stacked(t *testing.T, library []string, opts ...Option) *Deck[string] {
	t.Helper()
	opts = append([]Option{WithRand(randutil.New(42)), WithEmptyLibrary()}, opts...)
	d := New([]string(nil), 5, opts...)
	for _, c := range library {
		require.NoError(t, d.Add(c, true, Library, -1))
	}
	return d
}

func allCards(d *Deck[string]) []string {
	var out []string
	out = append(out, d.Library()...)
	out = append(out, d.Hand()...)
	out = append(out, d.Graveyard()...)
	return out
}

func TestNewFillsLibraryFromDeckList(t *testing.T) {
	cards := []string{"a", "b", "c", "c", "d"}
	d := New(cards, 3, WithRand(randutil.New(1)))

	assert.Equal(t, cards, d.DeckList())
	assert.ElementsMatch(t, cards, d.Library())
	assert.Empty(t, d.Hand())
	assert.Empty(t, d.Graveyard())
	assert.Equal(t, 3, d.HandSize())
}

func TestNewWithEmptyLibrary(t *testing.T) {
	d := New([]string{"a", "b"}, 2, WithEmptyLibrary())

	assert.Equal(t, []string{"a", "b"}, d.DeckList())
	assert.Zero(t, d.Count(Library))

	_, err := d.Draw(1)
	assert.ErrorIs(t, err, ErrInsufficientCards)
}

func TestNewCopiesInput(t *testing.T) {
	cards := []string{"a", "b"}
	d := New(cards, 1, WithEmptyLibrary())
	cards[0] = "z"
	assert.Equal(t, []string{"a", "b"}, d.DeckList())
}

func TestAddIndexMapping(t *testing.T) {
	base := []string{"1", "2", "3", "4", "5"}

	tests := []struct {
		name     string
		index    int
		expected []string
	}{
		{"bottom", 0, []string{"x", "1", "2", "3", "4", "5"}},
		{"top", -1, []string{"1", "2", "3", "4", "5", "x"}},
		{"second from bottom", 1, []string{"1", "x", "2", "3", "4", "5"}},
		{"second from top", -2, []string{"1", "2", "3", "4", "x", "5"}},
		{"exact size", 5, []string{"1", "2", "3", "4", "5", "x"}},
		{"most negative meaningful", -6, []string{"x", "1", "2", "3", "4", "5"}},
		{"large positive clamps to top", 99, []string{"1", "2", "3", "4", "5", "x"}},
		{"large negative clamps to bottom", -99, []string{"x", "1", "2", "3", "4", "5"}},
	}

	for _, tt := range tests {
		t.Run("library/"+tt.name, func(t *testing.T) {
			d := stacked(t, base)
			require.NoError(t, d.Add("x", false, Library, tt.index))
			assert.Equal(t, tt.expected, d.Library())
		})

		t.Run("graveyard/"+tt.name, func(t *testing.T) {
			d := stacked(t, nil)
			for _, c := range base {
				require.NoError(t, d.Add(c, false, Graveyard, -1))
			}
			require.NoError(t, d.Add("x", false, Graveyard, tt.index))
			assert.Equal(t, tt.expected, d.Graveyard())
		})

		t.Run("hand/"+tt.name, func(t *testing.T) {
			d := stacked(t, nil)
			for _, c := range base {
				require.NoError(t, d.Add(c, false, Hand, -1))
			}
			require.NoError(t, d.Add("x", false, Hand, tt.index))
			assert.Equal(t, tt.expected, d.Hand())
		})
	}
}

func TestAddIntoEmptyZone(t *testing.T) {
	for _, index := range []int{0, -1, 7, -7} {
		d := stacked(t, nil)
		require.NoError(t, d.Add("x", false, Hand, index))
		assert.Equal(t, []string{"x"}, d.Hand(), "index %d", index)
	}
}

func TestAddDeckListFlag(t *testing.T) {
	d := stacked(t, nil)

	require.NoError(t, d.Add("kept", true, Hand, 0))
	require.NoError(t, d.Add("temp", false, Hand, 0))

	assert.Equal(t, []string{"kept"}, d.DeckList())
	assert.Equal(t, []string{"temp", "kept"}, d.Hand())
}

func TestAddInvalidZone(t *testing.T) {
	d := stacked(t, []string{"a"})

	err := d.Add("x", true, Zone(7), 0)
	require.ErrorIs(t, err, ErrInvalidZone)
	assert.Equal(t, []string{"a"}, d.DeckList())
	assert.Equal(t, []string{"a"}, allCards(d))
}

func TestDrawOrder(t *testing.T) {
	t.Run("single draw takes the top", func(t *testing.T) {
		d := stacked(t, []string{"A", "B", "C"})
		drawn, err := d.Draw(1)
		require.NoError(t, err)
		assert.Equal(t, []string{"C"}, drawn)
		assert.Equal(t, []string{"C"}, d.Hand())
		assert.Equal(t, []string{"A", "B"}, d.Library())
	})

	t.Run("draw whole library", func(t *testing.T) {
		d := stacked(t, []string{"A", "B", "C"})
		drawn, err := d.Draw(3)
		require.NoError(t, err)
		assert.Equal(t, []string{"C", "B", "A"}, drawn)
		assert.Equal(t, []string{"C", "B", "A"}, d.Hand())
		assert.Zero(t, d.Count(Library))
	})

	t.Run("non-positive count is a no-op", func(t *testing.T) {
		d := stacked(t, []string{"A"})
		for _, n := range []int{0, -3} {
			drawn, err := d.Draw(n)
			require.NoError(t, err)
			assert.Empty(t, drawn)
		}
		assert.Equal(t, []string{"A"}, d.Library())
	})
}

func TestDrawTriggersReset(t *testing.T) {
	d := stacked(t, nil)
	require.NoError(t, d.Add("X", true, Graveyard, -1))
	require.NoError(t, d.Add("Y", true, Graveyard, -1))

	drawn, err := d.Draw(1)
	require.NoError(t, err)
	require.Len(t, drawn, 1)
	assert.Contains(t, []string{"X", "Y"}, drawn[0])

	assert.Empty(t, d.Graveyard())
	require.Len(t, d.Library(), 1)
	assert.NotEqual(t, drawn[0], d.Library()[0])
	assert.ElementsMatch(t, []string{"X", "Y"}, allCards(d))
}

func TestDrawResetKeepsGraveyardOrderWithoutShuffle(t *testing.T) {
	d := stacked(t, nil, WithShuffleOnReset(false))
	for _, c := range []string{"X", "Y", "Z"} {
		require.NoError(t, d.Add(c, true, Graveyard, -1))
	}

	drawn, err := d.Draw(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Z"}, drawn)
	assert.Equal(t, []string{"X", "Y"}, d.Library())
}

func TestDrawAcrossReset(t *testing.T) {
	d := stacked(t, []string{"A"}, WithShuffleOnReset(false))
	require.NoError(t, d.Add("B", true, Graveyard, -1))
	require.NoError(t, d.Add("C", true, Graveyard, -1))

	drawn, err := d.Draw(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "B"}, drawn)
	assert.Zero(t, d.Count(Library))
	assert.Zero(t, d.Count(Graveyard))
}

func TestDrawInsufficientCards(t *testing.T) {
	d := stacked(t, []string{"A"})
	require.NoError(t, d.Add("B", true, Graveyard, -1))
	require.NoError(t, d.Add("H", true, Hand, -1))

	drawn, err := d.Draw(3)
	require.ErrorIs(t, err, ErrInsufficientCards)
	assert.Nil(t, drawn)
	assert.Equal(t, []string{"A"}, d.Library())
	assert.Equal(t, []string{"B"}, d.Graveyard())
	assert.Equal(t, []string{"H"}, d.Hand())
}

func TestDrawHand(t *testing.T) {
	d := stacked(t, []string{"a", "b", "c", "d", "e", "f"})
	d.SetHandSize(4)

	drawn, err := d.DrawHand()
	require.NoError(t, err)
	assert.Len(t, drawn, 4)
	assert.Len(t, d.Hand(), 4)

	drawn, err = d.DrawHand()
	require.NoError(t, err)
	assert.Empty(t, drawn)

	d.SetHandSize(2)
	drawn, err = d.DrawHand()
	require.NoError(t, err)
	assert.Empty(t, drawn)
	assert.Len(t, d.Hand(), 4)
}

func TestDrawHandRefillsAfterDiscard(t *testing.T) {
	d := stacked(t, []string{"a", "b", "c"})
	d.SetHandSize(3)

	_, err := d.DrawHand()
	require.NoError(t, err)
	d.DiscardHand()

	drawn, err := d.DrawHand()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, drawn)
}

func TestDiscard(t *testing.T) {
	d := stacked(t, nil)
	for _, c := range []string{"a", "b", "a"} {
		require.NoError(t, d.Add(c, true, Hand, -1))
	}

	assert.True(t, d.Discard("a"))
	assert.Equal(t, []string{"b", "a"}, d.Hand())
	assert.Equal(t, []string{"a"}, d.Graveyard())

	assert.False(t, d.Discard("missing"))
	assert.Equal(t, []string{"b", "a"}, d.Hand())
	assert.Equal(t, []string{"a"}, d.Graveyard())

	assert.True(t, d.Discard("b"))
	assert.Equal(t, []string{"a", "b"}, d.Graveyard())
}

func TestDiscardRandom(t *testing.T) {
	t.Run("empty hand", func(t *testing.T) {
		d := stacked(t, []string{"a"})
		card, ok := d.DiscardRandom()
		assert.False(t, ok)
		assert.Empty(t, card)
		assert.Equal(t, []string{"a"}, d.Library())
		assert.Empty(t, d.Graveyard())
	})

	t.Run("moves a hand card to the graveyard top", func(t *testing.T) {
		d := stacked(t, nil)
		for _, c := range []string{"a", "b", "c"} {
			require.NoError(t, d.Add(c, true, Hand, -1))
		}
		card, ok := d.DiscardRandom()
		require.True(t, ok)
		assert.Contains(t, []string{"a", "b", "c"}, card)
		assert.NotContains(t, d.Hand(), card)
		top, _ := d.graveyard.Peek()
		assert.Equal(t, card, top)
	})

	t.Run("every hand position is reachable", func(t *testing.T) {
		seen := map[string]bool{}
		rng := randutil.New(7)
		for range 200 {
			d := New([]string(nil), 0, WithRand(rng), WithEmptyLibrary())
			for _, c := range []string{"a", "b", "c", "d"} {
				require.NoError(t, d.Add(c, false, Hand, -1))
			}
			card, _ := d.DiscardRandom()
			seen[card] = true
		}
		assert.Len(t, seen, 4)
	})
}

func TestDiscardHand(t *testing.T) {
	d := stacked(t, []string{"a"})
	require.NoError(t, d.Add("g", true, Graveyard, -1))
	for _, c := range []string{"x", "y", "z"} {
		require.NoError(t, d.Add(c, true, Hand, -1))
	}
	before := d.Count(Graveyard)

	discarded := d.DiscardHand()

	assert.Equal(t, []string{"x", "y", "z"}, discarded)
	assert.Empty(t, d.Hand())
	assert.Equal(t, before+3, d.Count(Graveyard))
	assert.Equal(t, []string{"g", "x", "y", "z"}, d.Graveyard())

	assert.Empty(t, d.DiscardHand())
}

func TestRemovePriority(t *testing.T) {
	t.Run("hand before library", func(t *testing.T) {
		d := stacked(t, []string{"dup", "other"})
		require.NoError(t, d.Add("dup", true, Hand, -1))

		assert.True(t, d.Remove("dup", false))
		assert.Empty(t, d.Hand())
		assert.Equal(t, []string{"dup", "other"}, d.Library())
	})

	t.Run("graveyard before library", func(t *testing.T) {
		d := stacked(t, []string{"dup"})
		require.NoError(t, d.Add("dup", true, Graveyard, -1))

		assert.True(t, d.Remove("dup", false))
		assert.Empty(t, d.Graveyard())
		assert.Equal(t, []string{"dup"}, d.Library())
	})

	t.Run("falls through to library", func(t *testing.T) {
		d := stacked(t, []string{"a", "dup", "b", "dup"})

		assert.True(t, d.Remove("dup", false))
		assert.Equal(t, []string{"a", "dup", "b"}, d.Library())
	})

	t.Run("not found", func(t *testing.T) {
		d := stacked(t, []string{"a"})
		assert.False(t, d.Remove("missing", false))
		assert.Equal(t, []string{"a"}, d.Library())
	})
}

func TestRemoveDeckList(t *testing.T) {
	d := stacked(t, []string{"a", "b", "a"})

	assert.True(t, d.Remove("a", true))
	assert.Equal(t, []string{"b", "a"}, d.DeckList())

	// the deck list entry goes even when no zone holds the card
	require.NoError(t, d.Add("ghost", true, Hand, 0))
	require.True(t, d.Remove("ghost", false))
	assert.False(t, d.Remove("ghost", true))
	assert.Equal(t, []string{"b", "a"}, d.DeckList())
}

func TestRemoveFrom(t *testing.T) {
	d := stacked(t, []string{"dup"})
	require.NoError(t, d.Add("dup", true, Hand, -1))

	removed, err := d.RemoveFrom("dup", false, Library)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, d.Library())
	assert.Equal(t, []string{"dup"}, d.Hand())

	removed, err = d.RemoveFrom("dup", false, Graveyard)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = d.RemoveFrom("dup", true, Zone(-1))
	require.ErrorIs(t, err, ErrInvalidZone)
	assert.False(t, removed)
	assert.Len(t, d.DeckList(), 2)
}

func TestShuffleLibraryIsPermutation(t *testing.T) {
	cards := []string{"a", "b", "c", "c", "d", "e", "f", "g"}
	d := stacked(t, cards)

	for range 20 {
		d.ShuffleLibrary()
		assert.ElementsMatch(t, cards, d.Library())
	}
}

func TestShuffleGraveyardIsPermutation(t *testing.T) {
	d := stacked(t, nil)
	cards := []string{"a", "b", "c", "d"}
	for _, c := range cards {
		require.NoError(t, d.Add(c, true, Graveyard, -1))
	}

	d.ShuffleGraveyard()
	assert.ElementsMatch(t, cards, d.Graveyard())
	assert.Empty(t, d.Library())
}

func TestSnapshotsAreCopies(t *testing.T) {
	d := stacked(t, []string{"a", "b"})
	require.NoError(t, d.Add("h", true, Hand, 0))
	require.NoError(t, d.Add("g", true, Graveyard, 0))

	d.Library()[0] = "mutated"
	d.Hand()[0] = "mutated"
	d.Graveyard()[0] = "mutated"
	d.DeckList()[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, d.Library())
	assert.Equal(t, []string{"h"}, d.Hand())
	assert.Equal(t, []string{"g"}, d.Graveyard())
	assert.Equal(t, []string{"a", "b", "h", "g"}, d.DeckList())
}

func TestZonesStayDisjoint(t *testing.T) {
	rng := randutil.New(99)
	pool := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	d := New(pool, 3, WithRand(randutil.New(5)))
	expected := append([]string(nil), pool...)
	zones := []Zone{Library, Hand, Graveyard}

	// pick returns a card currently in play, or one that never was
	pick := func() string {
		if len(expected) == 0 || rng.IntN(5) == 0 {
			return "missing"
		}
		return expected[rng.IntN(len(expected))]
	}
	forget := func(card string) {
		i := slices.Index(expected, card)
		require.GreaterOrEqual(t, i, 0, "removed %q that was not in play", card)
		expected = slices.Delete(expected, i, i+1)
	}

	for step := range 800 {
		switch rng.IntN(9) {
		case 0:
			_, _ = d.Draw(1 + rng.IntN(4))
		case 1:
			_, _ = d.DrawHand()
		case 2:
			d.DiscardRandom()
		case 3:
			d.DiscardHand()
		case 4:
			d.ShuffleLibrary()
		case 5:
			hand := d.Hand()
			if len(hand) > 0 {
				d.Discard(hand[rng.IntN(len(hand))])
			}
		case 6:
			card := fmt.Sprintf("n%d", step)
			zone := zones[rng.IntN(len(zones))]
			require.NoError(t, d.Add(card, rng.IntN(2) == 0, zone, rng.IntN(11)-5))
			expected = append(expected, card)
		case 7:
			card := pick()
			if d.Remove(card, rng.IntN(2) == 0) {
				forget(card)
			}
		case 8:
			card := pick()
			removed, err := d.RemoveFrom(card, false, zones[rng.IntN(len(zones))])
			require.NoError(t, err)
			if removed {
				forget(card)
			}
		}
		require.ElementsMatch(t, expected, allCards(d), "step %d", step)
	}
}

func TestPeek(t *testing.T) {
	d := stacked(t, nil)
	_, ok := d.Peek()
	assert.False(t, ok)

	require.NoError(t, d.Add("a", true, Library, -1))
	require.NoError(t, d.Add("b", true, Library, -1))
	top, ok := d.Peek()
	assert.True(t, ok)
	assert.Equal(t, "b", top)
	assert.Equal(t, 2, d.Count(Library))
}

func TestRebuild(t *testing.T) {
	d := New([]string{"a", "b", "c"}, 2, WithRand(randutil.New(3)))
	_, err := d.DrawHand()
	require.NoError(t, err)
	d.DiscardRandom()
	require.NoError(t, d.Add("temp", false, Library, 0))

	d.Rebuild()

	assert.ElementsMatch(t, []string{"a", "b", "c"}, d.Library())
	assert.Empty(t, d.Hand())
	assert.Empty(t, d.Graveyard())
}

func TestCountInvalidZone(t *testing.T) {
	d := stacked(t, []string{"a"})
	assert.Zero(t, d.Count(Zone(42)))
}

func TestSeededDecksAreReproducible(t *testing.T) {
	cards := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	d1 := New(cards, 4, WithRand(randutil.New(11)))
	d2 := New(cards, 4, WithRand(randutil.New(11)))

	h1, err := d1.DrawHand()
	require.NoError(t, err)
	h2, err := d2.DrawHand()
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
	assert.Equal(t, d1.Library(), d2.Library())
}

type namedCard struct {
	ID   string
	Tags []string
}

func TestNewFuncCustomEquality(t *testing.T) {
	byID := func(a, b namedCard) bool { return a.ID == b.ID }
	cards := []namedCard{{ID: "a", Tags: []string{"x"}}, {ID: "b"}}
	d := NewFunc(cards, 1, byID, WithRand(randutil.New(1)))

	assert.True(t, d.Remove(namedCard{ID: "a"}, true))
	require.Len(t, d.DeckList(), 1)
	assert.Equal(t, "b", d.DeckList()[0].ID)
	assert.Len(t, d.Library(), 1)
}

func TestResetLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	d := stacked(t, nil, WithLogger(logger))
	require.NoError(t, d.Add("X", true, Graveyard, -1))
	_, err := d.Draw(1)
	require.NoError(t, err)

	assert.True(t, strings.Contains(buf.String(), "deck reset"), buf.String())
}

func TestResetIncludingHand(t *testing.T) {
	d := stacked(t, []string{"L"}, WithShuffleOnReset(false))
	require.NoError(t, d.Add("G", true, Graveyard, -1))
	require.NoError(t, d.Add("H1", true, Hand, -1))
	require.NoError(t, d.Add("H2", true, Hand, -1))

	d.reset(true)

	assert.Empty(t, d.Hand())
	assert.Empty(t, d.Graveyard())
	assert.Equal(t, []string{"L", "G", "H1", "H2"}, d.Library())
}

func TestResetIncludingHandShuffles(t *testing.T) {
	d := stacked(t, []string{"L1", "L2"})
	require.NoError(t, d.Add("G", true, Graveyard, -1))
	require.NoError(t, d.Add("H", true, Hand, -1))

	d.reset(true)

	assert.Empty(t, d.Hand())
	assert.Empty(t, d.Graveyard())
	assert.ElementsMatch(t, []string{"L1", "L2", "G", "H"}, d.Library())
}

func TestNewFuncNilEqualityUsesDeepEqual(t *testing.T) {
	cards := []namedCard{{ID: "a", Tags: []string{"x"}}, {ID: "b"}}
	d := NewFunc(cards, 1, nil, WithRand(randutil.New(1)))

	assert.False(t, d.Remove(namedCard{ID: "a"}, false))
	assert.True(t, d.Remove(namedCard{ID: "a", Tags: []string{"x"}}, true))
	assert.Equal(t, []namedCard{{ID: "b"}}, d.DeckList())

	ints := NewFunc([]int{1, 2}, 1, nil, WithEmptyLibrary())
	require.NoError(t, ints.Add(1, false, Hand, 0))
	assert.True(t, ints.Discard(1))
	assert.False(t, ints.Remove(3, false))
}
