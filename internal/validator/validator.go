package validator

import (
	"fmt"

	"github.com/arcanaland/tabletop/internal/decklist"
)

// SupportedSchemaVersion is the only deck.toml schema this tool reads.
const SupportedSchemaVersion = "1.0"

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	DeckPath string
	Results  ValidationResults

	config *decklist.Config
}

func NewValidator(deckPath string) *Validator {
	return &Validator{
		DeckPath: deckPath,
		Results:  ValidationResults{},
	}
}

// Validate checks the deck directory. A missing or unreadable deck.toml is
// returned as an error; everything else is collected into the results.
func (v *Validator) Validate() (ValidationResults, error) {
	config, err := decklist.DecodeFile(v.DeckPath)
	if err != nil {
		return v.Results, err
	}
	v.config = config

	v.validateDeckSection()
	total := v.validateCards()
	v.validateHandSize(total)

	return v.Results, nil
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

// validateDeckSection checks the [deck] metadata
func (v *Validator) validateDeckSection() {
	deck := v.config.Deck

	if deck.ID == "" {
		v.errorf("deck.id is required in deck.toml")
	}
	if deck.Name == "" {
		v.errorf("deck.name is required in deck.toml")
	}
	if deck.Version == "" {
		v.errorf("deck.version is required in deck.toml")
	}

	if deck.SchemaVersion == "" {
		v.errorf("deck.schema_version is required in deck.toml")
	} else if deck.SchemaVersion != SupportedSchemaVersion {
		v.errorf("unsupported schema_version: %s (supported: %s)", deck.SchemaVersion, SupportedSchemaVersion)
	}

	if deck.Author == "" {
		v.warnf("deck.author is not set")
	}
	if deck.Description == "" {
		v.warnf("deck.description is not set")
	}
}

// validateCards checks each [[cards]] entry and returns the pool size
func (v *Validator) validateCards() int {
	if len(v.config.Cards) == 0 {
		v.errorf("no cards defined in deck.toml")
		return 0
	}

	seen := make(map[string]bool)
	total := 0
	for i, c := range v.config.Cards {
		label := c.ID
		if c.ID == "" {
			label = fmt.Sprintf("#%d", i+1)
			v.errorf("card %s is missing an id", label)
		} else if seen[c.ID] {
			v.errorf("duplicate card id: %s", c.ID)
		}
		seen[c.ID] = true

		count := 1
		if c.Count != nil {
			count = *c.Count
		}
		switch {
		case count < 0:
			v.errorf("card %s has negative count %d", label, count)
		case count == 0:
			v.warnf("card %s has count 0 and will not be in the pool", label)
		default:
			total += count
		}

		if c.Name == "" {
			v.warnf("card %s has no name; one will be derived from the id", label)
		}
		if c.Type == "" {
			v.warnf("card %s has no type", label)
		}
	}

	if total == 0 && len(v.config.Cards) > 0 {
		v.errorf("deck pool is empty: every card has count 0")
	}
	return total
}

// validateHandSize checks hand_size against the pool size
func (v *Validator) validateHandSize(total int) {
	handSize := v.config.Deck.HandSize
	switch {
	case handSize < 0:
		v.errorf("deck.hand_size must not be negative, got %d", handSize)
	case handSize == 0:
		v.warnf("deck.hand_size is not set; defaulting to %d", decklist.DefaultHandSize)
		handSize = decklist.DefaultHandSize
	}

	if total > 0 && handSize > total {
		v.errorf("deck.hand_size %d is larger than the %d cards in the pool", handSize, total)
	}
}
