package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/tabletop/deck"
	"github.com/arcanaland/tabletop/internal/card"
	"github.com/arcanaland/tabletop/internal/config"
	"github.com/arcanaland/tabletop/internal/decklist"
	"github.com/arcanaland/tabletop/internal/display"
	"github.com/arcanaland/tabletop/internal/randutil"
)

// playOptions controls a scripted playtest
type playOptions struct {
	Turns       int
	Discards    int
	DiscardHand bool
	HandSize    int
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Playtest a deck by drawing and discarding over several turns",
	Long: `Play shuffles a deck into a library and plays scripted turns. Each turn
draws up to the hand size, discards random cards, and optionally discards
the whole hand. When the library runs out the graveyard is shuffled back in.

Examples:
  tabletop play --turns 5
  tabletop play --deck starter --seed 42 --discard 2 --discard-hand`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		logger, err := newLogger(cmd, cfg)
		if err != nil {
			return err
		}

		deckFlag, _ := cmd.Flags().GetString("deck")
		deckPath, err := resolveDeckPath(deckFlag)
		if err != nil {
			return err
		}
		list, err := decklist.LoadDeck(deckPath)
		if err != nil {
			return fmt.Errorf("error loading deck: %w", err)
		}

		opts := playOptions{HandSize: list.HandSize}
		opts.Turns, _ = cmd.Flags().GetInt("turns")
		opts.Discards, _ = cmd.Flags().GetInt("discard")
		opts.DiscardHand, _ = cmd.Flags().GetBool("discard-hand")
		if cmd.Flags().Changed("hand-size") {
			opts.HandSize, _ = cmd.Flags().GetInt("hand-size")
		}

		seed := cfg.Seed
		if cmd.Flags().Changed("seed") {
			seed, _ = cmd.Flags().GetInt64("seed")
		}

		logger.Info("starting playtest", "deck", list.Name, "cards", list.TotalCards(), "turns", opts.Turns, "seed", seed)

		d := deck.New(list.Cards(), opts.HandSize,
			deck.WithRand(randutil.NewFromConfig(seed)),
			deck.WithLogger(logger),
			deck.WithShuffleOnReset(cfg.ShuffleOnReset),
		)

		width := display.TerminalWidth(int(os.Stdout.Fd()))
		return runTurns(cmd.OutOrStdout(), logger, d, opts, width)
	},
}

func init() {
	RootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("deck", "d", "", "Specify a deck from your deck library or a path to a deck")
	playCmd.Flags().IntP("turns", "t", 3, "Number of turns to play")
	playCmd.Flags().Int("discard", 1, "Random cards to discard each turn")
	playCmd.Flags().Bool("discard-hand", false, "Discard the whole hand at the end of each turn")
	playCmd.Flags().Int64("seed", 0, "Random seed (0 picks a new one); overrides the config file")
	playCmd.Flags().Int("hand-size", 0, "Hand size; overrides the deck list")
}

// runTurns plays opts.Turns turns against d, printing the zones after each.
func runTurns(w io.Writer, logger *log.Logger, d *deck.Deck[card.Card], opts playOptions, width int) error {
	for turn := 1; turn <= opts.Turns; turn++ {
		fmt.Fprintln(w, colorize.New(colorize.Bold).Sprintf("== Turn %d ==", turn))

		drawn, err := d.DrawHand()
		if errors.Is(err, deck.ErrInsufficientCards) {
			return fmt.Errorf("turn %d: cannot fill a hand of %d: %w", turn, d.HandSize(), err)
		} else if err != nil {
			return err
		}
		for _, c := range drawn {
			fmt.Fprintln(w, "  draw    "+display.FormatCard(c))
		}
		logger.Debug("drew cards", "turn", turn, "count", len(drawn))

		for range opts.Discards {
			c, ok := d.DiscardRandom()
			if !ok {
				break
			}
			fmt.Fprintln(w, "  discard "+display.FormatCard(c))
		}

		if opts.DiscardHand {
			discarded := d.DiscardHand()
			logger.Debug("discarded hand", "turn", turn, "count", len(discarded))
		}

		display.Zones(w, zoneView(d), width)
		fmt.Fprintln(w)
	}
	return nil
}

func zoneView(d *deck.Deck[card.Card]) display.ZoneView {
	return display.ZoneView{
		Library:   d.Library(),
		Hand:      d.Hand(),
		Graveyard: d.Graveyard(),
	}
}
