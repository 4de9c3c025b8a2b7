package cardgen

import (
	"fmt"
	"math/rand/v2"
	"testing"
)

func TestStandardAttributes(t *testing.T) {
	attrs := StandardAttributes()
	if !attrs.IsBijective() {
		t.Fatalf("standard attributes are not bijective: %+v", attrs)
	}
	want := Visual{Num: Three, Color: Purple, Shape: Pill, Filling: HorizontalStriped}
	if got := attrs.Visual(2, 0, 1, 2); got != want {
		t.Errorf("Visual(2, 0, 1, 2) = %v, want %v", got, want)
	}
}

func TestRandomAttributesAreBijective(t *testing.T) {
	for seed := range uint64(200) {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(seed, seed+1))
			attrs := RandomAttributes(rng)
			if !attrs.IsBijective() {
				t.Fatalf("random attributes are not bijective: %+v", attrs)
			}
			for i := range 3 {
				if attrs.Numbers[i] >= NumSymbols || attrs.Colors[i] >= NumSymbols ||
					attrs.Shapes[i] >= NumSymbols || attrs.Fillings[i] >= NumSymbols {
					t.Fatalf("symbol out of range: %+v", attrs)
				}
			}
		})
	}
}

func TestIsBijectiveDetectsDuplicates(t *testing.T) {
	attrs := StandardAttributes()
	attrs.Shapes[2] = attrs.Shapes[0]
	if attrs.IsBijective() {
		t.Errorf("expected duplicated shape to be detected")
	}
}

func TestGlyphsAreDistinct(t *testing.T) {
	seen := make(map[string]Visual)
	for num := range Number(NumSymbols) {
		for shape := range Shape(NumSymbols) {
			for filling := range Filling(NumSymbols) {
				v := Visual{Num: num, Shape: shape, Filling: filling}
				g := v.Glyph()
				if other, found := seen[g]; found {
					t.Fatalf("glyph %q used by both %v and %v", g, other, v)
				}
				seen[g] = v
			}
		}
	}
}
