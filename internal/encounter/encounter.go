package encounter

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateName is returned when an entity with the same name and kind is already present.
	ErrDuplicateName = errors.New("encounter: entity already exists")
	// ErrFull is returned when the kind's capacity has been reached.
	ErrFull = errors.New("encounter: capacity reached")
	// ErrNotFound is returned when no entity of the kind has the given name.
	ErrNotFound = errors.New("encounter: entity not found")
)

// Encounter holds the entities of one room or corridor cell, one ordered
// collection per kind. The zero value is an empty encounter.
type Encounter struct {
	Enemies   []*Enemy    `json:"enemies,omitempty"`
	Traps     []*Trap     `json:"traps,omitempty"`
	Treasures []*Treasure `json:"treasures,omitempty"`
}

// New returns an empty encounter.
func New() *Encounter {
	return &Encounter{}
}

// NewCells returns n empty encounters, one per corridor cell.
func NewCells(n int) []*Encounter {
	cells := make([]*Encounter, n)
	for i := range cells {
		cells[i] = New()
	}
	return cells
}

// Add appends an entity to the collection of its kind.
func (e *Encounter) Add(entity Entity) error {
	kind := entity.Kind()
	if e.Get(kind, entity.GetName()) != nil {
		return fmt.Errorf("%w: %s %q", ErrDuplicateName, kind, entity.GetName())
	}
	if e.Count(kind) >= kind.Capacity() {
		return fmt.Errorf("%w: already %d %s(s), which is the maximum allowed", ErrFull, kind.Capacity(), kind)
	}
	switch v := entity.(type) {
	case *Enemy:
		e.Enemies = append(e.Enemies, v)
	case *Trap:
		e.Traps = append(e.Traps, v)
	case *Treasure:
		e.Treasures = append(e.Treasures, v)
	}
	return nil
}

// Replace swaps the entity named ref for a new one of the same kind, keeping
// its position. The render handle carries over when the description is unchanged.
func (e *Encounter) Replace(ref string, entity Entity) error {
	kind := entity.Kind()
	if ref != entity.GetName() && e.Get(kind, entity.GetName()) != nil {
		return fmt.Errorf("%w: %s %q", ErrDuplicateName, kind, entity.GetName())
	}
	switch v := entity.(type) {
	case *Enemy:
		i := indexOf(e.Enemies, ref)
		if i < 0 {
			break
		}
		if e.Enemies[i].Description == v.Description {
			v.Sprite = e.Enemies[i].Sprite
		}
		e.Enemies[i] = v
		return nil
	case *Trap:
		i := indexOf(e.Traps, ref)
		if i < 0 {
			break
		}
		if e.Traps[i].Description == v.Description {
			v.Sprite = e.Traps[i].Sprite
		}
		e.Traps[i] = v
		return nil
	case *Treasure:
		i := indexOf(e.Treasures, ref)
		if i < 0 {
			break
		}
		if e.Treasures[i].Description == v.Description {
			v.Sprite = e.Treasures[i].Sprite
		}
		e.Treasures[i] = v
		return nil
	}
	return fmt.Errorf("%w: %s %q", ErrNotFound, kind, ref)
}

// Remove deletes the named entity of the given kind.
func (e *Encounter) Remove(kind Kind, name string) error {
	switch kind {
	case KindEnemy:
		if i := indexOf(e.Enemies, name); i >= 0 {
			e.Enemies = append(e.Enemies[:i], e.Enemies[i+1:]...)
			return nil
		}
	case KindTrap:
		if i := indexOf(e.Traps, name); i >= 0 {
			e.Traps = append(e.Traps[:i], e.Traps[i+1:]...)
			return nil
		}
	case KindTreasure:
		if i := indexOf(e.Treasures, name); i >= 0 {
			e.Treasures = append(e.Treasures[:i], e.Treasures[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s %q", ErrNotFound, kind, name)
}

// Get returns the named entity of the given kind, or nil if not found.
func (e *Encounter) Get(kind Kind, name string) Entity {
	switch kind {
	case KindEnemy:
		if i := indexOf(e.Enemies, name); i >= 0 {
			return e.Enemies[i]
		}
	case KindTrap:
		if i := indexOf(e.Traps, name); i >= 0 {
			return e.Traps[i]
		}
	case KindTreasure:
		if i := indexOf(e.Treasures, name); i >= 0 {
			return e.Treasures[i]
		}
	}
	return nil
}

// Count returns the number of entities of the given kind.
func (e *Encounter) Count(kind Kind) int {
	switch kind {
	case KindEnemy:
		return len(e.Enemies)
	case KindTrap:
		return len(e.Traps)
	case KindTreasure:
		return len(e.Treasures)
	default:
		return 0
	}
}

// Len returns the total number of entities.
func (e *Encounter) Len() int {
	return len(e.Enemies) + len(e.Traps) + len(e.Treasures)
}

// Entities returns all entities: enemies, then traps, then treasures.
func (e *Encounter) Entities() []Entity {
	all := make([]Entity, 0, e.Len())
	for _, v := range e.Enemies {
		all = append(all, v)
	}
	for _, v := range e.Traps {
		all = append(all, v)
	}
	for _, v := range e.Treasures {
		all = append(all, v)
	}
	return all
}

// ResetSprites drops the render handles of every entity.
func (e *Encounter) ResetSprites() {
	for _, entity := range e.Entities() {
		entity.ResetSprite()
	}
}

// Clone returns a deep copy of the encounter.
func (e *Encounter) Clone() *Encounter {
	c := &Encounter{}
	for _, v := range e.Enemies {
		c.Enemies = append(c.Enemies, v.clone().(*Enemy))
	}
	for _, v := range e.Traps {
		c.Traps = append(c.Traps, v.clone().(*Trap))
	}
	for _, v := range e.Treasures {
		c.Treasures = append(c.Treasures, v.clone().(*Treasure))
	}
	return c
}

// String summarizes the encounter one kind per line.
func (e *Encounter) String() string {
	var sb strings.Builder
	for _, kind := range []Kind{KindEnemy, KindTrap, KindTreasure} {
		names := make([]string, 0, e.Count(kind))
		for _, entity := range e.Entities() {
			if entity.Kind() == kind {
				names = append(names, entity.GetName())
			}
		}
		fmt.Fprintf(&sb, "\n\t%s: %s", kind, strings.Join(names, "; "))
	}
	return sb.String()
}

type named interface {
	GetName() string
}

func indexOf[T named](items []T, name string) int {
	for i, item := range items {
		if item.GetName() == name {
			return i
		}
	}
	return -1
}
