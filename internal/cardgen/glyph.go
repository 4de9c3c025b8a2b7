package cardgen

import "strings"

// Runes used to draw each shape: outline, solid and patterned.
var shapeRunes = [NumSymbols][3]string{
	{"◇", "◆", "◈"},
	{"○", "●", "◉"},
	{"□", "■", "▣"},
	{"♡", "♥", "❦"},
	{"♤", "♠", "⚘"},
	{"♧", "♣", "☘"},
}

// Extra marks for the patterned fillings beyond the standard striped one.
var fillingMarks = [NumSymbols]string{"", "", "", "/", "#", "|"}

// CSS colors for the front end, and wsxiaoys/terminal color codes for the terminal client.
var (
	cssColors      = [NumSymbols]string{"#7b2f9e", "#d7263d", "#1b998b", "#222222", "#8b5a2b", "#1f5fbf"}
	terminalColors = [NumSymbols]string{"@m", "@r", "@g", "@k", "@y", "@b"}
)

// Symbol returns the text drawn once for the shape and filling of v.
func (v Visual) Symbol() string {
	runes := shapeRunes[int(v.Shape)%NumSymbols]
	var r string
	switch v.Filling {
	case Hollow:
		r = runes[0]
	case Solid:
		r = runes[1]
	default:
		r = runes[2]
	}
	return r + fillingMarks[int(v.Filling)%NumSymbols]
}

// Glyph returns the full text of a card: the symbol repeated Num+1 times.
func (v Visual) Glyph() string {
	return strings.Repeat(v.Symbol(), int(v.Num)+1)
}

// CSSColor returns the color used to draw the card in HTML.
func (v Visual) CSSColor() string {
	return cssColors[int(v.Color)%NumSymbols]
}

// TerminalColor returns the color code prefix understood by github.com/wsxiaoys/terminal/color.
func (v Visual) TerminalColor() string {
	return terminalColors[int(v.Color)%NumSymbols]
}
