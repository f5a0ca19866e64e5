package display

import (
	"fmt"
	"io"
	"strings"

	colorize "github.com/fatih/color"
	"golang.org/x/term"

	"github.com/arcanaland/tabletop/internal/card"
)

// DefaultWidth is used when the terminal size cannot be read.
const DefaultWidth = 80

// ZoneView is a read-only snapshot of a deck's zones, piles bottom first.
type ZoneView struct {
	Library   []card.Card
	Hand      []card.Card
	Graveyard []card.Card
}

// TerminalWidth returns the width of the terminal on fd
func TerminalWidth(fd int) int {
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// typeSymbol returns a marker for the card type
func typeSymbol(cardType string) string {
	switch strings.ToLower(cardType) {
	case "land":
		return "◆"
	case "creature":
		return "♞"
	case "spell":
		return "✦"
	default:
		return "•"
	}
}

// FormatCard renders a card as a short colored label
func FormatCard(c card.Card) string {
	return colorize.HiWhiteString("%s %s", typeSymbol(c.Type), c.String())
}

// Zones prints the hand in full and the piles as counts plus their top card
func Zones(w io.Writer, view ZoneView, width int) {
	fmt.Fprintln(w, colorize.CyanString("Library:   ")+pileSummary(view.Library))
	fmt.Fprintln(w, colorize.CyanString("Graveyard: ")+pileSummary(view.Graveyard))

	fmt.Fprintln(w, colorize.CyanString("Hand (%d):", len(view.Hand)))
	if len(view.Hand) == 0 {
		fmt.Fprintln(w, "  (empty)")
		return
	}

	labels := make([]string, len(view.Hand))
	for i, c := range view.Hand {
		labels[i] = fmt.Sprintf("%s %s", typeSymbol(c.Type), c.String())
	}
	for _, line := range WrapText(strings.Join(labels, " | "), width-2) {
		fmt.Fprintln(w, "  "+colorize.HiWhiteString(line))
	}
}

func pileSummary(pile []card.Card) string {
	if len(pile) == 0 {
		return colorize.HiBlackString("0 cards")
	}
	top := pile[len(pile)-1]
	return fmt.Sprintf("%s (top: %s)", colorize.HiWhiteString("%d cards", len(pile)), FormatCard(top))
}

// CardDetail prints the information block for a card
func CardDetail(w io.Writer, c card.Card, deckName string, width int) {
	infoWidth := width - 4
	if infoWidth < 20 {
		infoWidth = 20
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  "+colorize.CyanString("Card: ")+colorize.HiWhiteString("%s", c.String()))
	fmt.Fprintln(w, "  "+colorize.CyanString("Deck: ")+colorize.HiWhiteString("%s", deckName))
	fmt.Fprintln(w, "  "+colorize.CyanString("ID:   ")+colorize.HiWhiteString("%s", c.ID))
	if c.Type != "" {
		fmt.Fprintln(w, "  "+colorize.CyanString("Type: ")+colorize.HiWhiteString("%s · %s", c.Type, typeSymbol(c.Type)))
	}

	if c.Text != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  "+colorize.CyanString("Text:"))
		for _, line := range WrapText(c.Text, infoWidth) {
			fmt.Fprintln(w, "  "+line)
		}
	}
	fmt.Fprintln(w)
}

// WrapText wraps text to a specified width
func WrapText(text string, width int) []string {
	// Ensure width is reasonable
	if width < 10 {
		width = 40
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		if len(currentLine) == 0 {
			// First word on the line, always add it
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result = append(result, currentLine)
			currentLine = word
		}
	}

	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}
