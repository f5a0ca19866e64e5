package decklist

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// StarterName is the directory name the bundled starter deck installs under.
const StarterName = "starter"

//go:embed starter/deck.toml
var starterDeck []byte

// InstallStarter writes the bundled starter deck into libraryPath and
// returns its directory. An existing starter deck is left untouched.
func InstallStarter(libraryPath string) (string, error) {
	deckPath := filepath.Join(libraryPath, StarterName)
	deckTomlPath := filepath.Join(deckPath, FileName)

	if _, err := os.Stat(deckTomlPath); err == nil {
		return deckPath, nil
	}

	if err := os.MkdirAll(deckPath, 0755); err != nil {
		return "", fmt.Errorf("error creating starter deck directory: %w", err)
	}
	if err := os.WriteFile(deckTomlPath, starterDeck, 0644); err != nil {
		return "", fmt.Errorf("error writing starter deck: %w", err)
	}
	return deckPath, nil
}
