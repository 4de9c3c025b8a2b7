package game

import (
	"errors"
	"fmt"
	"slices"

	"k8s.io/klog/v2"
)

// MinInPlay is the number of cards initially dealt, and the table size kept while the deck lasts.
const MinInPlay = 12

// dealStep is how many extra cards are dealt at once at the start of the game when the table has no match.
const dealStep = 3

// PlayResponse is the outcome of playing a selection of cards.
type PlayResponse int

const (
	// InvalidPlay means the selected cards are not a match: nothing changes.
	InvalidPlay PlayResponse = iota
	// ValidPlay means the cards were removed and the table replenished.
	ValidPlay
	// GameOver means the cards were removed, but the deck ran out before a new match was on the table.
	GameOver
)

func (r PlayResponse) String() string {
	switch r {
	case InvalidPlay:
		return "invalid"
	case ValidPlay:
		return "valid"
	case GameOver:
		return "game_over"
	}
	return fmt.Sprintf("PlayResponse(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r PlayResponse) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *PlayResponse) UnmarshalText(text []byte) error {
	for _, candidate := range []PlayResponse{InvalidPlay, ValidPlay, GameOver} {
		if candidate.String() == string(text) {
			*r = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown play response %q", text)
}

var (
	// ErrSelectionSize is returned when the number of selected cards differs from the mode's arity.
	ErrSelectionSize = errors.New("wrong number of selected cards")
	// ErrInvalidIndex is returned for selections with indices out of range or repeated.
	ErrInvalidIndex = errors.New("invalid card index")
	// ErrGameOver is returned when playing a game that is already over.
	ErrGameOver = errors.New("game is over")
)

// ActiveDeck is the state of a game in progress: the cards on the table ("in play"), the
// cards yet to be drawn ("in deck"), and which cards the player currently has selected.
//
// While the game is not over, the cards in play always contain at least one match.
// It is not safe for concurrent use.
type ActiveDeck struct {
	mode     Mode
	inPlay   []Card
	inDeck   []Card
	removed  []Card
	selected map[int]struct{}
	over     bool
}

// StartPlay deals a game from deck.
//
// It deals MinInPlay cards, and 3 more at a time until there is a match on the table.
// It panics if the whole deck contains no match, which can't happen with a full deck.
func StartPlay(deck *Deck, mode Mode) *ActiveDeck {
	arity := mode.Arity()
	cards := deck.Cards
	if len(cards) < arity {
		panic(fmt.Sprintf("cannot play %s with a deck of %d cards", mode, len(cards)))
	}
	n := min(MinInPlay, len(cards))
	for !mode.ContainsMatch(cards[:n]) {
		if n == len(cards) {
			panic(fmt.Sprintf("deck of %d cards contains no %s", len(cards), mode))
		}
		klog.V(2).Infof("StartPlay: no %s in %d cards, dealing %d more", mode, n, dealStep)
		n = min(n+dealStep, len(cards))
	}
	return &ActiveDeck{
		mode:     mode,
		inPlay:   slices.Clone(cards[:n]),
		inDeck:   slices.Clone(cards[n:]),
		selected: make(map[int]struct{}, arity),
	}
}

// Mode returns the mode of the game.
func (a *ActiveDeck) Mode() Mode { return a.mode }

// IsOver returns whether the game has ended.
func (a *ActiveDeck) IsOver() bool { return a.over }

// InPlay returns a copy of the cards on the table, indexed by position.
func (a *ActiveDeck) InPlay() []Card { return slices.Clone(a.inPlay) }

// InDeck returns a copy of the cards still to be drawn, in drawing order.
func (a *ActiveDeck) InDeck() []Card { return slices.Clone(a.inDeck) }

// NumInDeck returns the number of cards still to be drawn.
func (a *ActiveDeck) NumInDeck() int { return len(a.inDeck) }

// Removed returns the cards taken off the table by valid plays, in the order they were played.
func (a *ActiveDeck) Removed() []Card { return slices.Clone(a.removed) }

// NumMatches returns how many matches there are on the table.
func (a *ActiveDeck) NumMatches() int { return a.mode.CountMatches(a.inPlay) }

// Toggle adds or removes the card at position index from the selection.
// Out-of-range indices and additions beyond the mode's arity are ignored.
// It returns whether the selection changed.
func (a *ActiveDeck) Toggle(index int) bool {
	if a.over || index < 0 || index >= len(a.inPlay) {
		return false
	}
	if _, found := a.selected[index]; found {
		delete(a.selected, index)
		return true
	}
	if len(a.selected) >= a.mode.Arity() {
		return false
	}
	a.selected[index] = struct{}{}
	return true
}

// Selected returns the positions of the selected cards, in ascending order.
func (a *ActiveDeck) Selected() []int {
	indices := make([]int, 0, len(a.selected))
	for idx := range a.selected {
		indices = append(indices, idx)
	}
	slices.Sort(indices)
	return indices
}

// SelectionComplete returns whether as many cards as needed for a match are selected.
func (a *ActiveDeck) SelectionComplete() bool {
	return len(a.selected) == a.mode.Arity()
}

// ClearSelection unselects all cards.
func (a *ActiveDeck) ClearSelection() {
	clear(a.selected)
}

// PlaySelected plays the currently selected cards (see PlaySelection) and clears the selection,
// whatever the outcome.
func (a *ActiveDeck) PlaySelected() (PlayResponse, error) {
	defer a.ClearSelection()
	return a.PlaySelection(a.Selected())
}

// PlaySelection plays the cards at the given positions of the table.
//
// A selection with the wrong number of cards, or with repeated or out-of-range positions, is
// rejected with an error and nothing changes. If the cards don't form a match it returns
// InvalidPlay, and nothing changes either.
//
// Otherwise the cards are removed. While the deck lasts and the table has no more than MinInPlay
// cards, the vacated positions are refilled from the deck; otherwise the table shrinks. Then more
// cards are dealt until the table has a match again. If the deck runs out first, the game is over.
func (a *ActiveDeck) PlaySelection(selection []int) (PlayResponse, error) {
	if a.over {
		return GameOver, ErrGameOver
	}
	arity := a.mode.Arity()
	if len(selection) != arity {
		return InvalidPlay, fmt.Errorf("%w: %s requires %d cards, got %d", ErrSelectionSize, a.mode, arity, len(selection))
	}
	picked := make([]Card, 0, arity)
	for i, idx := range selection {
		if idx < 0 || idx >= len(a.inPlay) {
			return InvalidPlay, fmt.Errorf("%w: position %d with %d cards in play", ErrInvalidIndex, idx, len(a.inPlay))
		}
		if slices.Contains(selection[:i], idx) {
			return InvalidPlay, fmt.Errorf("%w: position %d selected more than once", ErrInvalidIndex, idx)
		}
		picked = append(picked, a.inPlay[idx])
	}
	if !a.mode.IsMatch(picked) {
		return InvalidPlay, nil
	}

	a.removed = append(a.removed, picked...)
	clear(a.selected)
	if len(a.inPlay) <= MinInPlay && len(a.inDeck) >= arity {
		// Replace the cards in place, so the rest of the table doesn't move.
		positions := slices.Clone(selection)
		slices.Sort(positions)
		for i, idx := range positions {
			a.inPlay[idx] = a.inDeck[i]
		}
		a.inDeck = a.inDeck[arity:]
	} else {
		keep := make([]bool, len(a.inPlay))
		for i := range keep {
			keep[i] = true
		}
		for _, idx := range selection {
			keep[idx] = false
		}
		remaining := make([]Card, 0, len(a.inPlay)-arity)
		for i, card := range a.inPlay {
			if keep[i] {
				remaining = append(remaining, card)
			}
		}
		a.inPlay = remaining
	}

	for !a.mode.ContainsMatch(a.inPlay) {
		if len(a.inDeck) == 0 {
			a.over = true
			klog.V(1).Infof("PlaySelection: game over with %d cards in play, %d removed", len(a.inPlay), len(a.removed))
			return GameOver, nil
		}
		n := min(arity, len(a.inDeck))
		klog.V(2).Infof("PlaySelection: no %s in %d cards, dealing %d more", a.mode, len(a.inPlay), n)
		a.inPlay = append(a.inPlay, a.inDeck[:n]...)
		a.inDeck = a.inDeck[n:]
	}
	return ValidPlay, nil
}

// Hint returns the positions of arity-1 cards on the table that, together with one more card on
// the table, form a match. It returns nil if the game is over.
//
// It panics if there is no match on the table, which can't happen while the game is not over.
func (a *ActiveDeck) Hint() []int {
	if a.over {
		return nil
	}
	indices, found := a.mode.FindMatch(a.inPlay)
	if !found {
		panic(fmt.Sprintf("no %s among the %d cards in play of a game not over", a.mode, len(a.inPlay)))
	}
	return indices[:len(indices)-1]
}
