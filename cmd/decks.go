package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arcanaland/tabletop/internal/config"
	"github.com/arcanaland/tabletop/internal/decklist"
	"github.com/spf13/cobra"
)

// decksCmd represents the decks command group
var decksCmd = &cobra.Command{
	Use:   "decks",
	Short: "Manage deck lists in your deck library",
	Long:  `Commands for managing deck lists in your deck library.`,
}

// decksListCmd represents the decks ls command
var decksListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List available decks in your deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetDeckLibraryPath()

		// Check if deck library exists
		if _, err := os.Stat(libraryPath); os.IsNotExist(err) {
			fmt.Fprintf(out, "Deck library at %s does not exist.\n", libraryPath)
			fmt.Fprintln(out, "Run 'tabletop decks init' to create it.")
			return nil
		}

		libraryPath, err := filepath.EvalSymlinks(libraryPath)
		if err != nil {
			return fmt.Errorf("error resolving symbolic link: %w", err)
		}

		defaultDeck, err := config.GetDefaultDeck()
		if err != nil {
			return fmt.Errorf("error getting default deck: %w", err)
		}

		entries, err := os.ReadDir(libraryPath)
		if err != nil {
			return fmt.Errorf("error reading deck library: %w", err)
		}

		found := 0
		for _, entry := range entries {
			// Resolve the symbolic link or regular entry
			entryPath := filepath.Join(libraryPath, entry.Name())
			fileInfo, err := os.Stat(entryPath)
			if err != nil || !fileInfo.IsDir() {
				continue
			}

			d, err := decklist.LoadDeck(entryPath)
			if err != nil {
				// Not a valid deck, skip
				continue
			}
			found++

			marker := "  "
			suffix := ""
			if entry.Name() == defaultDeck {
				marker = "* "
				suffix = " [DEFAULT]"
			}
			fmt.Fprintf(out, "%s%s (%s, %d cards)%s\n", marker, entry.Name(), d.Name, d.TotalCards(), suffix)
		}

		if found == 0 {
			fmt.Fprintln(out, "No decks found in your deck library.")
			fmt.Fprintln(out, "You can add decks by copying them to:", libraryPath)
		}
		return nil
	},
}

// decksSetDefaultCmd represents the decks set-default command
var decksSetDefaultCmd = &cobra.Command{
	Use:   "set-default [deck_name]",
	Short: "Set the default deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckName := args[0]

		deckPath, err := config.GetDeckPath(deckName)
		if err != nil {
			return err
		}

		// Try to load the deck to make sure it's valid
		if _, err := decklist.LoadDeck(deckPath); err != nil {
			return fmt.Errorf("not a valid deck: %w", err)
		}

		if err := config.SetDefaultDeck(deckName); err != nil {
			return fmt.Errorf("error setting default deck: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Default deck set to: %s\n", deckName)
		return nil
	},
}

// decksInitCmd represents the decks init command
var decksInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the deck library with the starter deck",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetDeckLibraryPath()

		if err := os.MkdirAll(libraryPath, 0755); err != nil {
			return fmt.Errorf("error creating deck library: %w", err)
		}
		fmt.Fprintln(out, "Deck library initialized at:", libraryPath)

		starterPath, err := decklist.InstallStarter(libraryPath)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Starter deck available at:", starterPath)

		if _, err := config.LoadConfig(); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}
		fmt.Fprintln(out, "Config file initialized at:", config.GetConfigFilePath())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(decksCmd)
	decksCmd.AddCommand(decksListCmd)
	decksCmd.AddCommand(decksSetDefaultCmd)
	decksCmd.AddCommand(decksInitCmd)
}
