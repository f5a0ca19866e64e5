package deck

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
)

type options struct {
	rng            *rand.Rand
	logger         *log.Logger
	shuffleOnReset bool
	emptyLibrary   bool
}

// Option configures a Deck at construction time.
type Option func(*options)

func defaultOptions() options {
	return options{
		shuffleOnReset: true,
	}
}

// WithRand sets the random source used for shuffling and random discards.
// Passing a seeded source makes a deck fully reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithLogger sets the logger used for debug output. The default discards
// everything.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithShuffleOnReset controls whether the library is shuffled after the
// graveyard is recycled into it. Enabled by default.
func WithShuffleOnReset(shuffle bool) Option {
	return func(o *options) {
		o.shuffleOnReset = shuffle
	}
}

// WithEmptyLibrary leaves the library empty after construction instead of
// filling it from the deck list.
func WithEmptyLibrary() Option {
	return func(o *options) {
		o.emptyLibrary = true
	}
}

func (o *options) resolve() {
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
}
