package server

import (
	"sync"
	"time"

	"github.com/janpfeifer/GoSet/internal/game"
	"k8s.io/klog/v2"
)

// Session is one game in progress. Several connections may share it (e.g. after a reconnect),
// so all access to the game goes through its mutex.
type Session struct {
	ID      string
	Variant game.Variant

	mu         sync.Mutex
	deck       *game.ActiveDeck
	startedAt  time.Time
	finishedAt time.Time // Zero while the game is not over
	lastActive time.Time
}

// LastActive returns the time of the last request for this session.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// View returns a snapshot of the game.
func (s *Session) View(now time.Time) game.GameView {
	s.mu.Lock()
	defer s.mu.Unlock()
	elapsed := now.Sub(s.startedAt)
	if !s.finishedAt.IsZero() {
		elapsed = s.finishedAt.Sub(s.startedAt)
	}
	return game.NewGameView(s.ID, s.Variant, s.deck, s.startedAt, elapsed)
}

// Select toggles the selection of the card at index. Once the selection is complete it is
// played right away: complete is then true and result holds the outcome.
func (s *Session) Select(index int, now time.Time) (result game.ResultMessage, complete bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = now
	if !s.deck.Toggle(index) {
		klog.V(2).Infof("Session %s: selection of %d ignored", s.ID, index)
	}
	if !s.deck.SelectionComplete() {
		return result, false
	}
	// PlaySelected can't fail on a complete selection of a game not over.
	result, _ = s.playLocked(now)
	return result, true
}

// Play plays the current selection.
func (s *Session) Play(now time.Time) (game.ResultMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = now
	return s.playLocked(now)
}

func (s *Session) playLocked(now time.Time) (game.ResultMessage, error) {
	inPlay := s.deck.InPlay()
	selected := s.deck.Selected()
	cards := make([]game.CardView, 0, len(selected))
	for _, idx := range selected {
		cards = append(cards, game.NewCardView(inPlay[idx]))
	}

	response, err := s.deck.PlaySelected()
	if err != nil {
		return game.ResultMessage{}, err
	}
	if response == game.GameOver {
		s.finishedAt = now
		klog.Infof("Session %s: %s game over in %s", s.ID, s.Variant.Name(), game.FormatElapsed(now.Sub(s.startedAt)))
	}
	return game.ResultMessage{Response: response, Cards: cards}, nil
}

// Hint returns the positions of cards that are part of a match, or nil if the game is over.
func (s *Session) Hint(now time.Time) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = now
	return s.deck.Hint()
}
