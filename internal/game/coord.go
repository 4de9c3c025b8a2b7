package game

import "fmt"

// NumAxes is the number of attributes of a card: number, color, shape and filling.
const NumAxes = 4

// Coord is the position of a card in GF(3)^4: one value in {0, 1, 2} per attribute axis.
//
// Coordinates form an abelian group under component-wise addition modulo 3, and 3x = 0 for
// every x. Three cards form a set if and only if their coordinates sum to zero.
type Coord [NumAxes]uint8

// Zero is the identity coordinate.
var Zero Coord

// NewCoord builds a coordinate from the values of each axis, reducing each one modulo 3.
// Negative values are reduced to their positive residue.
func NewCoord(num, color, shape, filling int) Coord {
	return Coord{mod3(num), mod3(color), mod3(shape), mod3(filling)}
}

func mod3(v int) uint8 {
	v %= 3
	if v < 0 {
		v += 3
	}
	return uint8(v)
}

// Add returns c + other.
func (c Coord) Add(other Coord) Coord {
	var sum Coord
	for i := range c {
		sum[i] = (c[i] + other[i]) % 3
	}
	return sum
}

// Neg returns -c, which in GF(3) is the same as 2c.
func (c Coord) Neg() Coord {
	return c.Add(c)
}

// Sub returns c - other, computed as c + 2*other.
func (c Coord) Sub(other Coord) Coord {
	return c.Add(other.Neg())
}

// Num, Color, Shape and Filling return the value of each individual axis.
func (c Coord) Num() uint8     { return c[0] }
func (c Coord) Color() uint8   { return c[1] }
func (c Coord) Shape() uint8   { return c[2] }
func (c Coord) Filling() uint8 { return c[3] }

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", c[0], c[1], c[2], c[3])
}
