package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/janpfeifer/GoSet/internal/cardgen"
)

// CardView is a card on the table as sent to clients.
type CardView struct {
	Coord  Coord          `json:"coord"`
	Visual cardgen.Visual `json:"visual"`
	Glyph  string         `json:"glyph"` // Text rendering of the card
	Color  string         `json:"color"` // CSS color of the card
}

// NewCardView converts a card for display.
func NewCardView(card Card) CardView {
	return CardView{
		Coord:  card.Coord,
		Visual: card.Visual,
		Glyph:  card.Visual.Glyph(),
		Color:  card.Visual.CSSColor(),
	}
}

// GameView is the full state of a game session as sent to clients.
type GameView struct {
	ID         string        `json:"id"`
	Variant    Variant       `json:"variant"`
	InPlay     []CardView    `json:"in_play"`
	DeckSize   int           `json:"deck_size"`   // Cards left to draw
	Removed    int           `json:"removed"`     // Cards removed by valid plays
	Selected   []int         `json:"selected"`    // Positions of selected cards in InPlay
	NumMatches int           `json:"num_matches"` // Matches currently on the table
	Over       bool          `json:"over"`
	StartedAt  time.Time     `json:"started_at"`
	Elapsed    time.Duration `json:"elapsed"` // Time played so far, or total time if the game is over
}

// NewGameView takes a snapshot of a game.
func NewGameView(id string, variant Variant, deck *ActiveDeck, startedAt time.Time, elapsed time.Duration) GameView {
	inPlay := deck.InPlay()
	cards := make([]CardView, len(inPlay))
	for i, card := range inPlay {
		cards[i] = NewCardView(card)
	}
	return GameView{
		ID:         id,
		Variant:    variant,
		InPlay:     cards,
		DeckSize:   deck.NumInDeck(),
		Removed:    len(deck.Removed()),
		Selected:   deck.Selected(),
		NumMatches: deck.NumMatches(),
		Over:       deck.IsOver(),
		StartedAt:  startedAt,
		Elapsed:    elapsed,
	}
}

func (g *GameView) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Game %s: %s, in_play=%d, deck=%d, removed=%d, selected=%v, matches=%d, over=%t, elapsed=%s",
		g.ID, g.Variant.Name(), len(g.InPlay), g.DeckSize, g.Removed, g.Selected, g.NumMatches, g.Over, FormatElapsed(g.Elapsed))
	return sb.String()
}
