package cmd

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/tabletop/internal/config"
	"github.com/arcanaland/tabletop/internal/decklist"
	"github.com/arcanaland/tabletop/internal/display"
)

var showCmd = &cobra.Command{
	Use:   "show [card_id]",
	Short: "Display a deck's card pool or a single card",
	Long: `Show lists every card in a deck with its copy count, or displays details
for one card when a card ID is given.

You can specify a deck using the --deck flag, which will look for the deck
in your deck library (XDG_DATA_HOME/tabletop/decks) or as a relative path.
If no deck is specified, the default deck from your config will be used.

Examples:
  tabletop show
  tabletop show --deck starter giant_growth
  tabletop show --deck ./my-deck forest`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckFlag, _ := cmd.Flags().GetString("deck")

		deckPath, err := resolveDeckPath(deckFlag)
		if err != nil {
			return err
		}

		d, err := decklist.LoadDeck(deckPath)
		if err != nil {
			return fmt.Errorf("error loading deck: %w", err)
		}

		out := cmd.OutOrStdout()
		width := display.TerminalWidth(int(os.Stdout.Fd()))

		if len(args) == 1 {
			c, err := d.GetCard(args[0])
			if err != nil {
				return fmt.Errorf("error getting card: %w", err)
			}
			display.CardDetail(out, c, d.Name, width)
			return nil
		}

		fmt.Fprintln(out, colorize.CyanString("Deck: ")+colorize.HiWhiteString("%s", d.Name))
		if d.Description != "" {
			for _, line := range display.WrapText(d.Description, width-2) {
				fmt.Fprintln(out, line)
			}
		}
		fmt.Fprintln(out, colorize.CyanString("Cards: ")+colorize.HiWhiteString("%d", d.TotalCards())+
			colorize.CyanString("  Hand size: ")+colorize.HiWhiteString("%d", d.HandSize))
		fmt.Fprintln(out)
		for _, e := range d.Entries {
			fmt.Fprintf(out, "  %2dx %s  %s\n", e.Count, display.FormatCard(e.Card), colorize.HiBlackString(e.Card.ID))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("deck", "d", "", "Specify a deck from your deck library or a path to a deck")
}

// resolveDeckPath returns the path for the --deck flag, or the default deck
// from the config when the flag is empty.
func resolveDeckPath(deckFlag string) (string, error) {
	if deckFlag != "" {
		return config.GetDeckPath(deckFlag)
	}

	defaultDeck, err := config.GetDefaultDeck()
	if err != nil {
		return "", fmt.Errorf("error getting default deck: %w", err)
	}

	deckPath, err := config.GetDeckPath(defaultDeck)
	if err != nil {
		return "", fmt.Errorf("error loading default deck: %w", err)
	}
	return deckPath, nil
}
