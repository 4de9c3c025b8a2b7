// Package cardgen describes what a card looks like: the visual symbol used for each of the
// four attributes (number, color, shape and filling).
//
// The game engine never looks inside these values, it only carries them around so that a
// renderer (the WASM front end, or the terminal client) can draw the cards.
package cardgen

import (
	"fmt"
	"math/rand/v2"
)

// NumSymbols is the number of distinct symbols available for each attribute.
// The first three of each are the standard ones.
const NumSymbols = 6

// Number of elements drawn on a card.
type Number uint8

const (
	One Number = iota
	Two
	Three
	Four
	Five
	Six
)

var numberNames = [NumSymbols]string{"one", "two", "three", "four", "five", "six"}

func (n Number) String() string { return symbolName(numberNames, uint8(n)) }

// Color of the elements drawn on a card.
type Color uint8

const (
	Purple Color = iota
	Red
	Green
	Black
	Brown
	Blue
)

var colorNames = [NumSymbols]string{"purple", "red", "green", "black", "brown", "blue"}

func (c Color) String() string { return symbolName(colorNames, uint8(c)) }

// Shape of the elements drawn on a card.
type Shape uint8

const (
	Diamond Shape = iota
	Pill
	Squiggle
	Heart
	Spade
	Club
)

var shapeNames = [NumSymbols]string{"diamond", "pill", "squiggle", "heart", "spade", "club"}

func (s Shape) String() string { return symbolName(shapeNames, uint8(s)) }

// Filling pattern of the elements drawn on a card.
type Filling uint8

const (
	Hollow Filling = iota
	Solid
	HorizontalStriped
	DiagonalStriped
	Checkerboard
	VerticalStriped
)

var fillingNames = [NumSymbols]string{"hollow", "solid", "horizontal", "diagonal", "checkerboard", "vertical"}

func (f Filling) String() string { return symbolName(fillingNames, uint8(f)) }

func symbolName(names [NumSymbols]string, idx uint8) string {
	if int(idx) >= len(names) {
		return fmt.Sprintf("symbol(%d)", idx)
	}
	return names[idx]
}

// Visual holds the four visual attributes of one card.
// It is comparable, so it can be used as a map key (e.g. for texture caches).
type Visual struct {
	Num     Number  `json:"num"`
	Color   Color   `json:"color"`
	Shape   Shape   `json:"shape"`
	Filling Filling `json:"filling"`
}

func (v Visual) String() string {
	return fmt.Sprintf("%s %s %s %s", v.Num, v.Filling, v.Color, v.Shape)
}

// Attributes maps the coordinate values 0, 1 and 2 of each axis to a symbol.
type Attributes struct {
	Numbers  [3]Number
	Colors   [3]Color
	Shapes   [3]Shape
	Fillings [3]Filling
}

// Visual returns the visual attributes of the card with the given per-axis coordinate values,
// each one in {0, 1, 2}.
func (a Attributes) Visual(num, color, shape, filling uint8) Visual {
	return Visual{
		Num:     a.Numbers[num],
		Color:   a.Colors[color],
		Shape:   a.Shapes[shape],
		Filling: a.Fillings[filling],
	}
}

// IsBijective reports whether no two coordinate values of the same axis map to the same symbol.
// Otherwise, different cards would be drawn identically.
func (a Attributes) IsBijective() bool {
	return distinct(a.Numbers) && distinct(a.Colors) && distinct(a.Shapes) && distinct(a.Fillings)
}

func distinct[T comparable](values [3]T) bool {
	return values[0] != values[1] && values[0] != values[2] && values[1] != values[2]
}

// StandardAttributes returns the mapping of the classic game: the first three symbols of each axis.
func StandardAttributes() Attributes {
	return Attributes{
		Numbers:  [3]Number{One, Two, Three},
		Colors:   [3]Color{Purple, Red, Green},
		Shapes:   [3]Shape{Diamond, Pill, Squiggle},
		Fillings: [3]Filling{Hollow, Solid, HorizontalStriped},
	}
}

// RandomAttributes picks, independently for each axis, 3 distinct symbols out of NumSymbols in
// random order. This is the "Evil" variant: the game is the same but the symbols aren't the expected ones.
//
// If rng is nil, the global source is used.
func RandomAttributes(rng *rand.Rand) Attributes {
	var attrs Attributes
	pick := pickerFor(rng)
	for i, v := range pick() {
		attrs.Numbers[i] = Number(v)
	}
	for i, v := range pick() {
		attrs.Colors[i] = Color(v)
	}
	for i, v := range pick() {
		attrs.Shapes[i] = Shape(v)
	}
	for i, v := range pick() {
		attrs.Fillings[i] = Filling(v)
	}
	return attrs
}

func pickerFor(rng *rand.Rand) func() [3]uint8 {
	perm := rand.Perm
	if rng != nil {
		perm = rng.Perm
	}
	return func() [3]uint8 {
		p := perm(NumSymbols)
		return [3]uint8{uint8(p[0]), uint8(p[1]), uint8(p[2])}
	}
}
