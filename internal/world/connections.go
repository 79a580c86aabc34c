package world

import (
	"github.com/google/uuid"

	"github.com/samdwyer/dungeonwright/internal/geometry"
)

// Links is one row of the connection table: the neighboring room per
// direction, uuid.Nil for a free slot.
type Links [4]uuid.UUID

// Degree returns the number of occupied slots.
func (ls Links) Degree() int {
	n := 0
	for _, id := range ls {
		if id != uuid.Nil {
			n++
		}
	}
	return n
}

// DirectionOf returns the slot holding the given neighbor.
func (ls Links) DirectionOf(id uuid.UUID) (geometry.Direction, bool) {
	for _, d := range geometry.AllDirections() {
		if ls[d] == id {
			return d, true
		}
	}
	return geometry.North, false
}

// Rotated remaps every neighbor to the slot turned by the given quarter turns,
// so each neighbor keeps its position relative to the others.
func (ls Links) Rotated(by int) Links {
	var out Links
	for _, d := range geometry.AllDirections() {
		out[d.Rotate(by)] = ls[d]
	}
	return out
}

// without returns a copy with every slot holding id cleared.
func (ls Links) without(id uuid.UUID) Links {
	for _, d := range geometry.AllDirections() {
		if ls[d] == id {
			ls[d] = uuid.Nil
		}
	}
	return ls
}

// addEdge joins a to b along d, failing if either side's slot is taken.
func (l *Level) addEdge(a uuid.UUID, d geometry.Direction, b uuid.UUID) error {
	if other := l.connections[a][d]; other != uuid.Nil {
		return conflictErr("%s of %s is already occupied by %s", d, l.nameOf(a), l.nameOf(other))
	}
	if other := l.connections[b][d.Opposite()]; other != uuid.Nil {
		return conflictErr("%s of %s is already occupied by %s", d.Opposite(), l.nameOf(b), l.nameOf(other))
	}
	l.linkRooms(a, d, b)
	return nil
}

// linkRooms sets both directed entries without checking them.
func (l *Level) linkRooms(a uuid.UUID, d geometry.Direction, b uuid.UUID) {
	la, lb := l.connections[a], l.connections[b]
	la[d] = b
	lb[d.Opposite()] = a
	l.connections[a], l.connections[b] = la, lb
}

// unlinkRooms clears both rooms' entries for each other.
func (l *Level) unlinkRooms(a, b uuid.UUID) {
	if la, ok := l.connections[a]; ok {
		l.connections[a] = la.without(b)
	}
	if lb, ok := l.connections[b]; ok {
		l.connections[b] = lb.without(a)
	}
}
