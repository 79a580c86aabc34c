// Package geometry provides the integer grid arithmetic the level is laid out on.
package geometry

import (
	"fmt"
	"strings"
)

// Direction represents a cardinal direction.
type Direction int

// Directions in rotation order: each step clockwise adds one.
const (
	North Direction = iota
	East
	South
	West
)

// numDirections is the size of the rotation cycle.
const numDirections = 4

// AllDirections returns all valid directions in rotation order.
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// ParseDirection converts a direction name ("north", "East", ...) into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north":
		return North, nil
	case "east":
		return East, nil
	case "south":
		return South, nil
	case "west":
		return West, nil
	default:
		return North, fmt.Errorf("%q is not a valid direction", s)
	}
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// IsValid returns true if the direction is a cardinal direction.
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Opposite returns the opposite direction.
func (d Direction) Opposite() Direction {
	return d.Rotate(2)
}

// Rotate turns the direction clockwise by the given number of quarter turns.
// Negative values turn counter-clockwise.
func (d Direction) Rotate(by int) Direction {
	return Direction(mod(int(d)+by, numDirections))
}

// RotationBetween returns the signed number of quarter turns from one direction to another.
func RotationBetween(from, to Direction) int {
	return int(to) - int(from)
}

// Delta returns the x and y offsets of a single step in this direction.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.IsValid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
