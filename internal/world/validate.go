package world

import (
	"errors"

	"github.com/google/uuid"

	"github.com/samdwyer/dungeonwright/internal/geometry"
)

// Validate checks the structural and geometric invariants of the level and
// returns every violation found, joined.
func (l *Level) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, geometricErr(format, args...))
	}

	// Names table.
	for name, id := range l.roomNames {
		r, ok := l.rooms[id]
		if !ok || r.Name != name {
			fail("name %s does not resolve to its room", name)
		}
	}
	if len(l.roomNames) != len(l.rooms) {
		fail("%d room names for %d rooms", len(l.roomNames), len(l.rooms))
	}

	corridorNames := make(map[string]bool, len(l.corridors))
	for _, c := range l.Corridors() {
		name := l.CorridorName(c)
		if corridorNames[name] {
			fail("two corridors are named %s", name)
		}
		if l.roomByName(name) != nil {
			fail("corridor %s shares its name with a room", name)
		}
		corridorNames[name] = true
	}

	// Disjoint cells.
	occupied := make(occupancy)
	for _, r := range l.Rooms() {
		if err := occupied.claim(r.Coord, r.Name); err != nil {
			errs = append(errs, err)
		}
	}
	for _, c := range l.Corridors() {
		if err := occupied.claimAll(c.Cells, l.CorridorName(c)); err != nil {
			errs = append(errs, err)
		}
	}

	// Corridor shape and connections.
	expected := make(map[uuid.UUID]Links, len(l.rooms))
	for id := range l.rooms {
		expected[id] = Links{}
	}
	for _, c := range l.Corridors() {
		name := l.CorridorName(c)
		from, to := l.Endpoints(c)
		if from == nil || to == nil {
			fail("%s has a missing endpoint", name)
			continue
		}
		if c.Length != len(c.Cells) || c.Length != len(c.Encounters) {
			fail("%s has length %d but %d cells and %d encounters", name, c.Length, len(c.Cells), len(c.Encounters))
		}
		if c.Length < l.limits.CorridorMinLength || c.Length > l.limits.CorridorMaxLength {
			fail("%s has length %d outside [%d, %d]", name, c.Length, l.limits.CorridorMinLength, l.limits.CorridorMaxLength)
		}
		for i, cell := range geometry.Line(from.Coord, c.Direction, len(c.Cells)) {
			if c.Cells[i] != cell {
				fail("%s cell %d is at %s, expected %s", name, i+1, c.Cells[i], cell)
				break
			}
		}
		if to.Coord != from.Coord.Step(c.Direction, c.Length+1) {
			fail("%s does not end next to %s", name, to.Name)
		}
		fromRow, toRow := expected[c.From], expected[c.To]
		if fromRow[c.Direction] != uuid.Nil || toRow[c.Direction.Opposite()] != uuid.Nil {
			fail("%s shares a direction slot with another corridor", name)
		}
		fromRow[c.Direction] = c.To
		toRow[c.Direction.Opposite()] = c.From
		expected[c.From], expected[c.To] = fromRow, toRow
	}
	for id, row := range expected {
		if l.connections[id] != row {
			fail("connections of %s do not match its corridors", l.nameOf(id))
		}
	}
	if len(l.connections) != len(l.rooms) {
		fail("%d connection rows for %d rooms", len(l.connections), len(l.rooms))
	}
	for id, row := range l.connections {
		if row.Degree() > l.limits.MaxDegree {
			fail("%s has %d connections", l.nameOf(id), row.Degree())
		}
	}

	// Cursor and reachability.
	if l.IsEmpty() {
		if l.current != uuid.Nil {
			fail("empty level has a current room")
		}
		return errors.Join(errs...)
	}
	anchor := l.current
	if c, ok := l.corridors[anchor]; ok {
		anchor = c.From
	}
	if _, ok := l.rooms[anchor]; !ok {
		fail("current room %s is not in the level", anchor)
		return errors.Join(errs...)
	}
	if reached := l.reachable(anchor, nil); reached.Size() != len(l.rooms) {
		fail("%d of %d rooms are reachable from %s", reached.Size(), len(l.rooms), l.Current())
	}
	return errors.Join(errs...)
}
