package geometry

import "fmt"

// Coord is a cell on the level grid. North decreases Y, east increases X.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Origin is where the first room of a level is placed.
var Origin = Coord{}

// String returns the coordinate as "(x, y)".
func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Step returns the coordinate n cells away in the given direction.
func (c Coord) Step(d Direction, n int) Coord {
	dx, dy := d.Delta()
	return Coord{X: c.X + dx*n, Y: c.Y + dy*n}
}

// Add returns the component-wise sum of two coordinates.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Sub returns the offset from o to c.
func (c Coord) Sub(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y}
}

// Rotate turns the offset clockwise about the origin by the given number of
// quarter turns, matching Direction.Rotate: a north offset rotated once points east.
func (c Coord) Rotate(by int) Coord {
	switch mod(by, numDirections) {
	case 1:
		return Coord{X: -c.Y, Y: c.X}
	case 2:
		return Coord{X: -c.X, Y: -c.Y}
	case 3:
		return Coord{X: c.Y, Y: -c.X}
	default:
		return c
	}
}

// Line returns the n cells after start in direction d, nearest first.
func Line(start Coord, d Direction, n int) []Coord {
	cells := make([]Coord, 0, n)
	for i := 1; i <= n; i++ {
		cells = append(cells, start.Step(d, i))
	}
	return cells
}
