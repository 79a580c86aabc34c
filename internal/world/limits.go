package world

import "fmt"

// Limits holds the numeric bounds a level is edited under.
type Limits struct {
	CorridorMinLength int `json:"corridor_min_length"`
	CorridorMaxLength int `json:"corridor_max_length"`
	MaxDegree         int `json:"max_degree"` // Corridors per room, at most one per direction
}

// DefaultLimits returns the bounds used when no configuration is supplied.
func DefaultLimits() Limits {
	return Limits{
		CorridorMinLength: 2,
		CorridorMaxLength: 4,
		MaxDegree:         4,
	}
}

// Validate reports whether the bounds are usable.
func (l Limits) Validate() error {
	if l.CorridorMinLength < 1 {
		return fmt.Errorf("corridor_min_length must be at least 1, got %d", l.CorridorMinLength)
	}
	if l.CorridorMaxLength < l.CorridorMinLength {
		return fmt.Errorf("corridor_max_length (%d) must not be below corridor_min_length (%d)",
			l.CorridorMaxLength, l.CorridorMinLength)
	}
	if l.MaxDegree < 1 || l.MaxDegree > 4 {
		return fmt.Errorf("max_degree must be between 1 and 4, got %d", l.MaxDegree)
	}
	return nil
}

func (l Limits) checkLength(length int) error {
	if length < l.CorridorMinLength || length > l.CorridorMaxLength {
		return inputErr("corridor_length should be between %d and %d, not %d",
			l.CorridorMinLength, l.CorridorMaxLength, length)
	}
	return nil
}
