package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/janpfeifer/GoSet/internal/cardgen"
)

// orderedDeck returns a deck with the first n coordinates in lexicographic order, not shuffled.
func orderedDeck(n int) *Deck {
	return &Deck{Cards: cardsOf(allCoords()[:n]...)}
}

func coordsOf(cards []Card) []Coord {
	coords := make([]Coord, len(cards))
	for i, c := range cards {
		coords[i] = c.Coord
	}
	return coords
}

// checkConservation verifies that the cards in play, in deck and removed are exactly the original deck.
func checkConservation(t *testing.T, a *ActiveDeck, original []Card) {
	t.Helper()
	counts := make(map[Card]int)
	for _, c := range original {
		counts[c]++
	}
	for _, group := range [][]Card{a.InPlay(), a.InDeck(), a.Removed()} {
		for _, c := range group {
			counts[c]--
		}
	}
	for c, n := range counts {
		if n != 0 {
			t.Fatalf("card %v count off by %d", c, n)
		}
	}
}

func TestStartPlayDealingInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 12))
	for _, tc := range []struct {
		mode  Mode
		decks int
	}{{ModeSet, 1000}, {ModeUltraset, 200}} {
		t.Run(tc.mode.String(), func(t *testing.T) {
			for range tc.decks {
				deck := NewDeck(cardgen.StandardAttributes(), rng)
				a := StartPlay(deck, tc.mode)
				inPlay := a.InPlay()
				if len(inPlay) < MinInPlay || len(inPlay)%3 != 0 {
					t.Fatalf("dealt %d cards", len(inPlay))
				}
				if !tc.mode.ContainsMatch(inPlay) {
					t.Fatalf("dealt table has no %s: %v", tc.mode, inPlay)
				}
				if len(inPlay)+a.NumInDeck() != DeckSize {
					t.Fatalf("dealt %d + %d cards, want %d", len(inPlay), a.NumInDeck(), DeckSize)
				}
				if !slices.Equal(inPlay, deck.Cards[:len(inPlay)]) {
					t.Fatalf("cards in play are not the top of the deck")
				}
				checkConservation(t, a, deck.Cards)
			}
		})
	}
}

func TestStartPlayPanics(t *testing.T) {
	noSet := &Deck{Cards: cardsOf(NewCoord(0, 0, 0, 0), NewCoord(0, 0, 0, 1), NewCoord(0, 0, 1, 0), NewCoord(0, 0, 1, 1))}
	for name, deck := range map[string]*Deck{
		"too few cards": orderedDeck(2),
		"no set":        noSet,
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected StartPlay to panic")
				}
			}()
			StartPlay(deck, ModeSet)
		})
	}
}

func TestToggle(t *testing.T) {
	a := StartPlay(orderedDeck(DeckSize), ModeSet)
	for _, idx := range []int{0, 1, 2} {
		if !a.Toggle(idx) {
			t.Fatalf("Toggle(%d) = false", idx)
		}
	}
	if !a.SelectionComplete() {
		t.Errorf("selection of 3 cards should be complete")
	}
	if a.Toggle(3) {
		t.Errorf("Toggle(3) beyond the arity should be ignored")
	}
	if !a.Toggle(1) {
		t.Errorf("Toggle(1) should unselect")
	}
	if !a.Toggle(3) {
		t.Errorf("Toggle(3) should select after unselecting 1")
	}
	if got := a.Selected(); !slices.Equal(got, []int{0, 2, 3}) {
		t.Errorf("Selected() = %v, want [0 2 3]", got)
	}
	for _, idx := range []int{-1, MinInPlay, 100} {
		if a.Toggle(idx) {
			t.Errorf("Toggle(%d) out of range should be ignored", idx)
		}
	}
	a.ClearSelection()
	if got := a.Selected(); len(got) != 0 {
		t.Errorf("Selected() after ClearSelection() = %v", got)
	}
}

func TestToggleUltrasetCap(t *testing.T) {
	a := StartPlay(orderedDeck(DeckSize), ModeUltraset)
	for idx := range 4 {
		if !a.Toggle(idx) {
			t.Fatalf("Toggle(%d) = false", idx)
		}
	}
	if a.Toggle(4) {
		t.Errorf("5th selection should be ignored in ultraset mode")
	}
	if got := len(a.Selected()); got != 4 {
		t.Errorf("got %d selected cards, want 4", got)
	}
}

func TestPlaySelectionErrors(t *testing.T) {
	a := StartPlay(orderedDeck(DeckSize), ModeSet)
	before := a.InPlay()
	tests := []struct {
		selection []int
		want      error
	}{
		{[]int{0, 1}, ErrSelectionSize},
		{[]int{0, 1, 2, 3}, ErrSelectionSize},
		{[]int{0, 1, 99}, ErrInvalidIndex},
		{[]int{-1, 1, 2}, ErrInvalidIndex},
		{[]int{0, 0, 1}, ErrInvalidIndex},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprint(tc.selection), func(t *testing.T) {
			response, err := a.PlaySelection(tc.selection)
			if !errors.Is(err, tc.want) {
				t.Errorf("PlaySelection(%v) error = %v, want %v", tc.selection, err, tc.want)
			}
			if response != InvalidPlay {
				t.Errorf("PlaySelection(%v) = %s, want invalid", tc.selection, response)
			}
		})
	}
	if !slices.Equal(before, a.InPlay()) || a.NumInDeck() != DeckSize-MinInPlay {
		t.Errorf("rejected plays changed the game")
	}
}

func TestPlaySelectionInvalidPlay(t *testing.T) {
	a := StartPlay(orderedDeck(DeckSize), ModeSet)
	before := a.InPlay()
	// (0,0,0,0), (0,0,0,1), (0,0,1,0) is not a set.
	response, err := a.PlaySelection([]int{0, 1, 3})
	if err != nil || response != InvalidPlay {
		t.Fatalf("PlaySelection() = %s, %v; want invalid, nil", response, err)
	}
	if !slices.Equal(before, a.InPlay()) || len(a.Removed()) != 0 {
		t.Errorf("invalid play changed the game")
	}
}

func TestPlaySelectionReplacesInPlace(t *testing.T) {
	deck := orderedDeck(DeckSize)
	a := StartPlay(deck, ModeSet)
	if got := len(a.InPlay()); got != MinInPlay {
		t.Fatalf("dealt %d cards, want %d", got, MinInPlay)
	}
	// Cards 0, 1, 2 are (0,0,0,x): a set. Select them out of order.
	response, err := a.PlaySelection([]int{2, 0, 1})
	if err != nil || response != ValidPlay {
		t.Fatalf("PlaySelection() = %s, %v; want valid, nil", response, err)
	}
	inPlay := coordsOf(a.InPlay())
	want := append(slices.Clone(allCoords()[12:15]), allCoords()[3:12]...)
	if !slices.Equal(inPlay, want) {
		t.Errorf("in play after replacement:\n got %v\nwant %v", inPlay, want)
	}
	if a.NumInDeck() != DeckSize-MinInPlay-3 {
		t.Errorf("deck has %d cards", a.NumInDeck())
	}
	if removed := coordsOf(a.Removed()); !slices.Equal(removed, []Coord{allCoords()[2], allCoords()[0], allCoords()[1]}) {
		t.Errorf("Removed() = %v", removed)
	}
	checkConservation(t, a, deck.Cards)
}

func TestPlaySelectionShrinks(t *testing.T) {
	// 12 cards on the table and only 2 left in the deck: no like-for-like replacement possible.
	deck := orderedDeck(14)
	a := StartPlay(deck, ModeSet)
	response, err := a.PlaySelection([]int{0, 1, 2})
	if err != nil || response != ValidPlay {
		t.Fatalf("PlaySelection() = %s, %v; want valid, nil", response, err)
	}
	if got := coordsOf(a.InPlay()); !slices.Equal(got, allCoords()[3:12]) {
		t.Errorf("in play after shrinking = %v, want %v", got, allCoords()[3:12])
	}
	if a.NumInDeck() != 2 {
		t.Errorf("deck has %d cards, want 2", a.NumInDeck())
	}
	checkConservation(t, a, deck.Cards)
}

func TestPlaySelectionGameOver(t *testing.T) {
	deck := &Deck{Cards: cardsOf(NewCoord(0, 0, 0, 0), NewCoord(0, 0, 0, 1), NewCoord(0, 0, 0, 2), NewCoord(1, 1, 1, 1))}
	a := StartPlay(deck, ModeSet)
	if hint := a.Hint(); !slices.Equal(hint, []int{0, 1}) {
		t.Errorf("Hint() = %v, want [0 1]", hint)
	}
	a.Toggle(0)
	a.Toggle(1)
	a.Toggle(2)
	response, err := a.PlaySelected()
	if err != nil || response != GameOver {
		t.Fatalf("PlaySelected() = %s, %v; want game_over, nil", response, err)
	}
	if !a.IsOver() {
		t.Errorf("IsOver() = false after GameOver")
	}
	if got := coordsOf(a.InPlay()); !slices.Equal(got, []Coord{NewCoord(1, 1, 1, 1)}) {
		t.Errorf("InPlay() = %v", got)
	}
	if len(a.Selected()) != 0 {
		t.Errorf("selection not cleared")
	}
	if hint := a.Hint(); hint != nil {
		t.Errorf("Hint() after game over = %v, want nil", hint)
	}
	if _, err := a.PlaySelection([]int{0, 0, 0}); !errors.Is(err, ErrGameOver) {
		t.Errorf("PlaySelection() after game over: err = %v, want %v", err, ErrGameOver)
	}
	if a.Toggle(0) {
		t.Errorf("Toggle() after game over should be ignored")
	}
	checkConservation(t, a, deck.Cards)
}

func TestPlaySelectedClearsOnInvalid(t *testing.T) {
	a := StartPlay(orderedDeck(DeckSize), ModeSet)
	a.Toggle(0)
	a.Toggle(1)
	a.Toggle(3)
	response, err := a.PlaySelected()
	if err != nil || response != InvalidPlay {
		t.Fatalf("PlaySelected() = %s, %v; want invalid, nil", response, err)
	}
	if len(a.Selected()) != 0 {
		t.Errorf("selection not cleared after invalid play")
	}
}

func checkHint(t *testing.T, a *ActiveDeck) {
	t.Helper()
	hint := a.Hint()
	arity := a.Mode().Arity()
	if len(hint) != arity-1 {
		t.Fatalf("Hint() = %v, want %d indices", hint, arity-1)
	}
	inPlay := a.InPlay()
	for last := range inPlay {
		if slices.Contains(hint, last) {
			continue
		}
		var picked []Card
		for _, idx := range hint {
			picked = append(picked, inPlay[idx])
		}
		picked = append(picked, inPlay[last])
		if a.Mode().IsMatch(picked) {
			return
		}
	}
	t.Fatalf("no card completes the hint %v", hint)
}

// TestFullGames plays complete games picking the first match found, checking the invariants after every play.
func TestFullGames(t *testing.T) {
	rng := rand.New(rand.NewPCG(13, 14))
	for _, mode := range Modes {
		for game := range 20 {
			t.Run(fmt.Sprintf("%s-%d", mode, game), func(t *testing.T) {
				deck := NewDeck(cardgen.RandomAttributes(rng), rng)
				a := StartPlay(deck, mode)
				validPlays := 0
				for {
					if !mode.ContainsMatch(a.InPlay()) {
						t.Fatalf("table has no %s while the game is not over", mode)
					}
					checkHint(t, a)
					selection, _ := mode.FindMatch(a.InPlay())
					// Shuffle the order of the selection: it must not matter.
					rng.Shuffle(len(selection), func(i, j int) { selection[i], selection[j] = selection[j], selection[i] })
					response, err := a.PlaySelection(selection)
					if err != nil {
						t.Fatalf("PlaySelection(%v) failed: %v", selection, err)
					}
					checkConservation(t, a, deck.Cards)
					if response == GameOver {
						break
					}
					if response != ValidPlay {
						t.Fatalf("PlaySelection(%v) = %s, want valid", selection, response)
					}
					validPlays++
				}
				validPlays++ // The play that ended the game was also valid.
				if a.NumInDeck() != 0 || mode.ContainsMatch(a.InPlay()) {
					t.Fatalf("game over with %d cards in deck, or with a match in play", a.NumInDeck())
				}
				removed := len(a.Removed())
				if removed != validPlays*mode.Arity() {
					t.Errorf("removed %d cards in %d plays", removed, validPlays)
				}
				if removed+len(a.InPlay())+a.NumInDeck() != DeckSize {
					t.Errorf("removed %d + %d in play + %d in deck != %d", removed, len(a.InPlay()), a.NumInDeck(), DeckSize)
				}
			})
		}
	}
}

func TestPlayResponseText(t *testing.T) {
	for _, r := range []PlayResponse{InvalidPlay, ValidPlay, GameOver} {
		text, err := r.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d) failed: %v", r, err)
		}
		var parsed PlayResponse
		if err := parsed.UnmarshalText(text); err != nil || parsed != r {
			t.Errorf("UnmarshalText(%q) = %v, %v", text, parsed, err)
		}
	}
}
