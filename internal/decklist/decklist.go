package decklist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/arcanaland/tabletop/internal/card"
)

// DefaultHandSize is used when deck.toml does not set hand_size.
const DefaultHandSize = 5

// FileName is the deck list file expected inside a deck directory.
const FileName = "deck.toml"

// DeckList is a card pool loaded from a deck directory
type DeckList struct {
	ID          string
	Name        string
	Version     string
	Author      string
	Description string
	HandSize    int
	Path        string

	// Entries in file order
	Entries []Entry

	// Card lookup by ID
	byID map[string]card.Card
}

// Entry is one distinct card and the number of copies in the pool
type Entry struct {
	Card  card.Card
	Count int
}

// LoadDeck loads a deck list from a directory
func LoadDeck(deckPath string) (*DeckList, error) {
	config, err := DecodeFile(deckPath)
	if err != nil {
		return nil, err
	}

	d := &DeckList{
		ID:          config.Deck.ID,
		Name:        config.Deck.Name,
		Version:     config.Deck.Version,
		Author:      config.Deck.Author,
		Description: config.Deck.Description,
		HandSize:    config.Deck.HandSize,
		Path:        deckPath,
		byID:        make(map[string]card.Card),
	}
	if d.HandSize <= 0 {
		d.HandSize = DefaultHandSize
	}

	for i, cc := range config.Cards {
		if cc.ID == "" {
			return nil, fmt.Errorf("card %d in %s has no id", i+1, FileName)
		}
		if _, dup := d.byID[cc.ID]; dup {
			return nil, fmt.Errorf("duplicate card id: %s", cc.ID)
		}

		c := card.Card{
			ID:   cc.ID,
			Name: cc.Name,
			Type: cc.Type,
			Text: cc.Text,
		}
		if c.Name == "" {
			c.Name = defaultCardName(c.ID)
		}

		count := 1
		if cc.Count != nil {
			count = *cc.Count
		}
		if count < 0 {
			return nil, fmt.Errorf("card %s has negative count %d", cc.ID, count)
		}

		d.byID[c.ID] = c
		d.Entries = append(d.Entries, Entry{Card: c, Count: count})
	}

	return d, nil
}

// DecodeFile reads and decodes deck.toml from a deck directory
func DecodeFile(deckPath string) (*Config, error) {
	deckTomlPath := filepath.Join(deckPath, FileName)
	if _, err := os.Stat(deckTomlPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s not found in %s", FileName, deckPath)
	}

	var config Config
	if _, err := toml.DecodeFile(deckTomlPath, &config); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", FileName, err)
	}
	return &config, nil
}

// Cards expands the entries into the full pool, copies adjacent, in file order
func (d *DeckList) Cards() []card.Card {
	cards := make([]card.Card, 0, d.TotalCards())
	for _, e := range d.Entries {
		for range e.Count {
			cards = append(cards, e.Card)
		}
	}
	return cards
}

// TotalCards returns the number of cards in the pool
func (d *DeckList) TotalCards() int {
	total := 0
	for _, e := range d.Entries {
		total += e.Count
	}
	return total
}

// GetCard gets a card by its ID
func (d *DeckList) GetCard(cardID string) (card.Card, error) {
	c, ok := d.byID[cardID]
	if !ok {
		return card.Card{}, fmt.Errorf("card not found: %s", cardID)
	}
	return c, nil
}

// defaultCardName turns an ID like "goblin_raider" into "Goblin Raider"
func defaultCardName(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Config mirrors the layout of deck.toml
type Config struct {
	Deck  DeckSection  `toml:"deck"`
	Cards []CardConfig `toml:"cards"`
}

type DeckSection struct {
	ID            string   `toml:"id"`
	Name          string   `toml:"name"`
	Version       string   `toml:"version"`
	SchemaVersion string   `toml:"schema_version"`
	Author        string   `toml:"author"`
	Description   string   `toml:"description"`
	HandSize      int      `toml:"hand_size"`
	Tags          []string `toml:"tags"`
}

type CardConfig struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Type  string `toml:"type"`
	Text  string `toml:"text"`
	Count *int   `toml:"count"`
}
