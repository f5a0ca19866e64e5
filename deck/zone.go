package deck

import (
	"fmt"
	"strings"
)

// Zone identifies one of the three places a card can be.
type Zone int

const (
	Library Zone = iota
	Hand
	Graveyard
)

var zoneNames = map[Zone]string{
	Library:   "library",
	Hand:      "hand",
	Graveyard: "graveyard",
}

func (z Zone) String() string {
	if name, ok := zoneNames[z]; ok {
		return name
	}
	return fmt.Sprintf("Zone(%d)", int(z))
}

// Valid reports whether z is one of the defined zones.
func (z Zone) Valid() bool {
	_, ok := zoneNames[z]
	return ok
}

// ParseZone converts a zone name (case-insensitive) to a Zone.
func ParseZone(s string) (Zone, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for z, n := range zoneNames {
		if n == name {
			return z, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidZone, s)
}
