// Command set plays Set (or Ultraset) on the terminal.
//
// Cards on the table are named by letters: type the letters of the cards forming a match
// (e.g. "adk"), "?" for a hint, or "q" to quit.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/janpfeifer/GoSet/internal/cardgen"
	"github.com/janpfeifer/GoSet/internal/game"
	"github.com/wsxiaoys/terminal/color"
	"k8s.io/klog/v2"
)

var (
	flagMode = flag.String("mode", "set", "Game mode: \"set\" or \"ultraset\"")
	flagEvil = flag.Bool("evil", false, "Use randomly chosen symbols for each attribute")
)

// cardsPerRow when printing the table.
const cardsPerRow = 3

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	mode, err := game.ParseMode(*flagMode)
	if err != nil {
		klog.Exitf("invalid -mode: %v", err)
	}
	variant := game.Variant{Mode: mode, Evil: *flagEvil}
	deck := variant.Start()
	start := time.Now()
	fmt.Printf("%s: find %d cards forming a %s.\n\n", variant.Name(), mode.Arity(), mode)

	scanner := bufio.NewScanner(os.Stdin)
	for !deck.IsOver() {
		printTable(deck)
		fmt.Print("\n> ")
		if !scanner.Scan() {
			return
		}
		input := strings.TrimSpace(scanner.Text())
		switch input {
		case "q":
			return
		case "?":
			fmt.Printf("Hint: %s\n\n", namesOf(deck.Hint()))
			continue
		}
		selection, err := parseSelection(input)
		if err != nil {
			fmt.Printf("%v\n\n", err)
			continue
		}
		response, err := deck.PlaySelection(selection)
		if err != nil {
			fmt.Printf("%v\n\n", err)
			continue
		}
		switch response {
		case game.InvalidPlay:
			fmt.Printf("%s is not a %s.\n\n", namesOf(selection), mode)
		case game.ValidPlay:
			fmt.Printf("%s is a %s!\n\n", namesOf(selection), mode)
		}
	}
	fmt.Printf("\nNo more %ss. %d cards cleared in %s.\n", mode, len(deck.Removed()), game.FormatElapsed(time.Since(start)))
}

// parseSelection converts card letters to table positions.
func parseSelection(input string) ([]int, error) {
	selection := make([]int, 0, len(input))
	for _, r := range input {
		if r < 'a' || r > 'z' {
			return nil, fmt.Errorf("cards are named by letters a-z, got %q", r)
		}
		selection = append(selection, int(r-'a'))
	}
	return selection, nil
}

func namesOf(indices []int) string {
	var sb strings.Builder
	for _, idx := range indices {
		sb.WriteByte(byte('a' + idx))
	}
	return sb.String()
}

func printCard(card game.Card) string {
	glyph := card.Visual.Glyph()
	// Pad to the widest card: 6 symbols of up to 2 runes each.
	pad := max(0, 2*cardgen.NumSymbols-len([]rune(glyph)))
	return color.Sprint("[ " + card.Visual.TerminalColor() + glyph + "@|" + strings.Repeat(" ", pad) + " ]")
}

func printTable(deck *game.ActiveDeck) {
	inPlay := deck.InPlay()
	for i, card := range inPlay {
		fmt.Printf("%c.%s", 'a'+i, printCard(card))
		if (i+1)%cardsPerRow == 0 || i == len(inPlay)-1 {
			fmt.Println()
		} else {
			fmt.Print("  ")
		}
	}
	fmt.Printf("(%d cards left in the deck)\n", deck.NumInDeck())
}
