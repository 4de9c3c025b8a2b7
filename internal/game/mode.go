package game

import (
	"fmt"
	"strings"
)

// Mode selects which kind of generalized set governs a game: sets of 3 cards or ultrasets of 4.
type Mode int

const (
	ModeSet Mode = iota
	ModeUltraset
)

// Modes lists all valid modes.
var Modes = []Mode{ModeSet, ModeUltraset}

// Arity is the number of cards that make a match in this mode.
func (m Mode) Arity() int {
	switch m {
	case ModeSet:
		return 3
	case ModeUltraset:
		return 4
	}
	panic(fmt.Sprintf("invalid game mode %d", int(m)))
}

// IsMatch returns whether cards (exactly Arity() of them) are a match in this mode.
func (m Mode) IsMatch(cards []Card) bool {
	if m == ModeUltraset {
		return SelectionIsUltraset(cards)
	}
	return SelectionIsSet(cards)
}

// ContainsMatch returns whether any Arity() of the cards form a match.
func (m Mode) ContainsMatch(cards []Card) bool {
	_, found := m.FindMatch(cards)
	return found
}

// FindMatch returns the indices of the first match in cards.
func (m Mode) FindMatch(cards []Card) ([]int, bool) {
	if m == ModeUltraset {
		return FindUltraset(cards)
	}
	return FindSet(cards)
}

// CountMatches returns the number of matches in cards.
func (m Mode) CountMatches(cards []Card) int {
	if m == ModeUltraset {
		return CountUltrasets(cards)
	}
	return CountSets(cards)
}

func (m Mode) String() string {
	switch m {
	case ModeSet:
		return "set"
	case ModeUltraset:
		return "ultraset"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts the name of a mode ("set" or "ultraset", case-insensitive) to a Mode.
func ParseMode(name string) (Mode, error) {
	for _, m := range Modes {
		if strings.EqualFold(name, m.String()) {
			return m, nil
		}
	}
	return ModeSet, fmt.Errorf("unknown game mode %q, valid values are \"set\" or \"ultraset\"", name)
}

// MarshalText implements encoding.TextMarshaler, used for JSON and YAML.
func (m Mode) MarshalText() ([]byte, error) {
	if m != ModeSet && m != ModeUltraset {
		return nil, fmt.Errorf("invalid game mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
