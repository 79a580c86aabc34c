package world

import (
	"github.com/samdwyer/dungeonwright/internal/encounter"
)

// RoomCell is the cell index addressing a room's own encounter.
const RoomCell = -1

// GetCorridor returns the corridor between two rooms, named in either order.
func (l *Level) GetCorridor(a, b string) (*Corridor, bool) {
	if c := l.corridorByName(CorridorName(a, b)); c != nil {
		return c, true
	}
	if c := l.corridorByName(CorridorName(b, a)); c != nil {
		return c, true
	}
	return nil, false
}

// CorridorsTouching returns the corridors with an endpoint at the named room.
func (l *Level) CorridorsTouching(room string) []*Corridor {
	r := l.roomByName(room)
	if r == nil {
		return nil
	}
	var out []*Corridor
	for _, c := range l.Corridors() {
		if c.Touches(r.ID) {
			out = append(out, c)
		}
	}
	return out
}

// EncounterAt returns the encounter of a room, or of a corridor cell given
// its 1-based index. The cell index is ignored for rooms.
func (l *Level) EncounterAt(name string, cellIndex int) (*encounter.Encounter, error) {
	if r := l.roomByName(name); r != nil {
		return r.Encounter, nil
	}
	c := l.corridorByName(name)
	if c == nil {
		return nil, inputErr("%s is not in the level", name)
	}
	if cellIndex < 1 || cellIndex > c.Length {
		return nil, inputErr("%s is a corridor, but cell_index=%d is invalid, it should be a value between 1 and %d (inclusive)",
			name, cellIndex, c.Length)
	}
	return c.Encounters[cellIndex-1], nil
}

// IsCorridor reports whether the name refers to a corridor of the level.
func (l *Level) IsCorridor(name string) bool {
	return l.corridorByName(name) != nil
}
