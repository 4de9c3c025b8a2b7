package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/janpfeifer/GoSet/internal/cardgen"
)

// DeckSize is the number of cards in a full deck: every coordinate of GF(3)^4 exactly once.
const DeckSize = 81

// Card pairs the coordinates of a card, used by the game logic, with its visual attributes,
// used only for display.
type Card struct {
	Coord  Coord          `json:"coord"`
	Visual cardgen.Visual `json:"visual"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s[%s]", c.Coord, c.Visual)
}

// Deck is a full, shuffled, collection of cards.
type Deck struct {
	Cards []Card
}

// NewStandardDeck creates a shuffled deck with the classic symbols.
func NewStandardDeck() *Deck {
	return NewDeck(cardgen.StandardAttributes(), nil)
}

// NewRandomDeck creates a shuffled deck where the symbols of each attribute are randomly chosen:
// the "Evil Set" variant.
func NewRandomDeck() *Deck {
	return NewDeck(cardgen.RandomAttributes(nil), nil)
}

// NewDeck enumerates all 81 coordinates, maps each to its visual attributes using attrs and shuffles them.
// If rng is nil the global random source is used.
//
// It panics if attrs maps two values of the same axis to the same symbol, since the cards would
// no longer be distinguishable.
func NewDeck(attrs cardgen.Attributes, rng *rand.Rand) *Deck {
	if !attrs.IsBijective() {
		panic(fmt.Sprintf("card attributes must map each axis value to a different symbol, got %+v", attrs))
	}
	cards := make([]Card, 0, DeckSize)
	for num := range uint8(3) {
		for color := range uint8(3) {
			for shape := range uint8(3) {
				for filling := range uint8(3) {
					cards = append(cards, Card{
						Coord:  Coord{num, color, shape, filling},
						Visual: attrs.Visual(num, color, shape, filling),
					})
				}
			}
		}
	}

	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(cards), func(i, j int) { cards[i], cards[j] = cards[j], cards[i] })
	return &Deck{Cards: cards}
}
