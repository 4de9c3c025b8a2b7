package game

// Variant is one of the four games offered: Set, Evil Set, Ultraset and Evil Ultraset.
type Variant struct {
	Mode Mode `json:"mode" yaml:"mode"`
	// Evil variants use randomly chosen symbols for each attribute.
	Evil bool `json:"evil" yaml:"evil"`
}

// Variants lists all the variants, in menu order.
var Variants = []Variant{
	{Mode: ModeSet},
	{Mode: ModeSet, Evil: true},
	{Mode: ModeUltraset},
	{Mode: ModeUltraset, Evil: true},
}

// Name returns the human readable name of the variant, e.g. "Evil Ultraset".
func (v Variant) Name() string {
	name := "Set"
	if v.Mode == ModeUltraset {
		name = "Ultraset"
	}
	if v.Evil {
		name = "Evil " + name
	}
	return name
}

// NewDeck creates a freshly shuffled deck for the variant.
func (v Variant) NewDeck() *Deck {
	if v.Evil {
		return NewRandomDeck()
	}
	return NewStandardDeck()
}

// Start deals a new game of the variant.
func (v Variant) Start() *ActiveDeck {
	return StartPlay(v.NewDeck(), v.Mode)
}
