package game

import "fmt"

// IsSet returns whether the three coordinates form a set: on every axis the values are either
// all equal or all different, which is the same as them summing to zero.
func IsSet(c1, c2, c3 Coord) bool {
	return c1.Add(c2).Add(c3) == Zero
}

// Complete returns the only coordinate x such that {c1, c2, x} is a set: x = 2*c1 - c2.
func Complete(c1, c2 Coord) Coord {
	return c1.Add(c1).Sub(c2)
}

// IsUltraset returns whether the four coordinates can be split into two pairs whose
// completions are the same (fifth) card.
func IsUltraset(c1, c2, c3, c4 Coord) bool {
	return Complete(c1, c2) == Complete(c3, c4) ||
		Complete(c1, c3) == Complete(c2, c4) ||
		Complete(c1, c4) == Complete(c2, c3)
}

// SelectionIsSet returns whether the 3 given cards form a set.
// It panics if len(cards) != 3.
func SelectionIsSet(cards []Card) bool {
	if len(cards) != 3 {
		panic(fmt.Sprintf("SelectionIsSet requires 3 cards, got %d", len(cards)))
	}
	return IsSet(cards[0].Coord, cards[1].Coord, cards[2].Coord)
}

// SelectionIsUltraset returns whether the 4 given cards form an ultraset.
// It panics if len(cards) != 4.
func SelectionIsUltraset(cards []Card) bool {
	if len(cards) != 4 {
		panic(fmt.Sprintf("SelectionIsUltraset requires 4 cards, got %d", len(cards)))
	}
	return IsUltraset(cards[0].Coord, cards[1].Coord, cards[2].Coord, cards[3].Coord)
}

// SelectionContainsSet returns whether any 3 of the given cards form a set.
func SelectionContainsSet(cards []Card) bool {
	_, found := FindSet(cards)
	return found
}

// SelectionContainsUltraset returns whether any 4 of the given cards form an ultraset.
func SelectionContainsUltraset(cards []Card) bool {
	_, found := FindUltraset(cards)
	return found
}

// FindSet returns the indices of the first set in cards, enumerating index triples
// i < j < k in lexicographic order.
func FindSet(cards []Card) (indices []int, found bool) {
	n := len(cards)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				if IsSet(cards[i].Coord, cards[j].Coord, cards[k].Coord) {
					return []int{i, j, k}, true
				}
			}
		}
	}
	return nil, false
}

// FindUltraset returns the indices of the first ultraset in cards, enumerating index
// quadruples i < j < k < l in lexicographic order.
func FindUltraset(cards []Card) (indices []int, found bool) {
	n := len(cards)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				for l := k + 1; l < n; l++ {
					if IsUltraset(cards[i].Coord, cards[j].Coord, cards[k].Coord, cards[l].Coord) {
						return []int{i, j, k, l}, true
					}
				}
			}
		}
	}
	return nil, false
}

// CountSets returns the number of distinct sets among cards.
func CountSets(cards []Card) int {
	count := 0
	combinations(len(cards), 3, func(combo []int) {
		if IsSet(cards[combo[0]].Coord, cards[combo[1]].Coord, cards[combo[2]].Coord) {
			count++
		}
	})
	return count
}

// CountUltrasets returns the number of distinct ultrasets among cards.
func CountUltrasets(cards []Card) int {
	count := 0
	combinations(len(cards), 4, func(combo []int) {
		if IsUltraset(cards[combo[0]].Coord, cards[combo[1]].Coord, cards[combo[2]].Coord, cards[combo[3]].Coord) {
			count++
		}
	})
	return count
}

// combinations calls emit with every m-subset of {0..n-1}, in lexicographic order.
// The slice passed to emit is reused between calls.
func combinations(n, m int, emit func([]int)) {
	if m <= 0 || m > n {
		return
	}
	s := make([]int, m)
	last := m - 1
	var rc func(int, int)
	rc = func(i, next int) {
		for j := next; j < n; j++ {
			s[i] = j
			if i == last {
				emit(s)
			} else {
				rc(i+1, j+1)
			}
		}
	}
	rc(0, 0)
}
