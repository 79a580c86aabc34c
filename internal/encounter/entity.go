// Package encounter provides the content containers placed in rooms and corridor cells.
package encounter

import (
	"fmt"
	"strings"
)

// Kind identifies which collection of an Encounter an entity belongs to.
type Kind int

const (
	KindEnemy Kind = iota
	KindTrap
	KindTreasure
)

// Capacity limits per encounter. An entity may be added while the count of its
// kind is strictly less than the limit.
const (
	MaxEnemies   = 4
	MaxTraps     = 1
	MaxTreasures = 1
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindEnemy:
		return "enemy"
	case KindTrap:
		return "trap"
	case KindTreasure:
		return "treasure"
	default:
		return "unknown"
	}
}

// ParseKind parses a kind name as written by String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "enemy":
		return KindEnemy, nil
	case "trap":
		return KindTrap, nil
	case "treasure":
		return KindTreasure, nil
	default:
		return 0, fmt.Errorf("invalid entity type %q, should be enemy, trap or treasure", s)
	}
}

// Capacity returns the maximum number of entities of this kind in one encounter.
func (k Kind) Capacity() int {
	switch k {
	case KindEnemy:
		return MaxEnemies
	case KindTrap:
		return MaxTraps
	case KindTreasure:
		return MaxTreasures
	default:
		return 0
	}
}

// Entity is implemented by Enemy, Trap and Treasure only.
type Entity interface {
	GetName() string
	GetDescription() string
	Kind() Kind
	// ResetSprite drops the cached render handle.
	ResetSprite()

	clone() Entity
}

// Enemy is a hostile creature placed in a room or corridor cell.
type Enemy struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Species     string  `json:"species"`
	HP          float64 `json:"hp"`
	MaxHP       float64 `json:"max_hp"`
	Dodge       float64 `json:"dodge"`
	Prot        float64 `json:"prot"`
	Spd         float64 `json:"spd"`
	Sprite      string  `json:"sprite,omitempty"` // Render handle, empty when not generated
}

// Trap is a hazard placed in a corridor cell.
type Trap struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Effect      string  `json:"effect"`
	Chance      float64 `json:"chance"`
	Dmg         float64 `json:"dmg"`
	Sprite      string  `json:"sprite,omitempty"`
}

// Treasure is loot, possibly trapped, placed in a room or corridor cell.
type Treasure struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Loot          string  `json:"loot"`
	TrappedChance float64 `json:"trapped_chance"`
	Dmg           float64 `json:"dmg"`
	Sprite        string  `json:"sprite,omitempty"`
}

func (e *Enemy) GetName() string        { return e.Name }
func (e *Enemy) GetDescription() string { return e.Description }
func (e *Enemy) Kind() Kind             { return KindEnemy }
func (e *Enemy) ResetSprite()           { e.Sprite = "" }
func (e *Enemy) clone() Entity          { c := *e; return &c }

func (t *Trap) GetName() string        { return t.Name }
func (t *Trap) GetDescription() string { return t.Description }
func (t *Trap) Kind() Kind             { return KindTrap }
func (t *Trap) ResetSprite()           { t.Sprite = "" }
func (t *Trap) clone() Entity          { c := *t; return &c }

func (t *Treasure) GetName() string        { return t.Name }
func (t *Treasure) GetDescription() string { return t.Description }
func (t *Treasure) Kind() Kind             { return KindTreasure }
func (t *Treasure) ResetSprite()           { t.Sprite = "" }
func (t *Treasure) clone() Entity          { c := *t; return &c }
