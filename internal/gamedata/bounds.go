package gamedata

import "fmt"

// Range is an inclusive numeric interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains returns true if v lies within the range.
func (r Range) Contains(v float64) bool {
	return r.Min <= v && v <= r.Max
}

// Check returns an error naming the field if v is out of range.
func (r Range) Check(field string, v float64) error {
	if !r.Contains(v) {
		return fmt.Errorf("invalid %s value: %g; should be between %g and %g", field, v, r.Min, r.Max)
	}
	return nil
}

// Bounds holds the accepted ranges for entity stats.
type Bounds struct {
	HP     Range `json:"hp"`
	Dodge  Range `json:"dodge"`
	Prot   Range `json:"prot"`
	Spd    Range `json:"spd"`
	Dmg    Range `json:"dmg"`
	Chance Range `json:"chance"` // Trap trigger and treasure trapped chances
}

// LoadBounds loads entity stat ranges from the embedded bounds.json file.
func LoadBounds() (Bounds, error) {
	return Load[Bounds]("bounds.json")
}

// MustLoadBounds loads entity stat ranges, panicking on error.
func MustLoadBounds() Bounds {
	return MustLoad[Bounds]("bounds.json")
}
