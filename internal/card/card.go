package card

// Card is a card in a deck list. It holds only strings so that it can be
// compared with ==, which the deck container relies on for removal.
type Card struct {
	ID   string // Canonical ID (e.g., fireball, forest)
	Name string // Display name
	Type string // Free-form category (spell, creature, land, ...)
	Text string // Rules or flavour text
}

// String returns the display name, falling back to the ID.
func (c Card) String() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}
