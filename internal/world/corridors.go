package world

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeonwright/internal/geometry"
)

// AddCorridor joins two existing rooms that are not yet connected. The
// destination must already sit exactly length+1 cells from the origin along
// direction, and every cell in between must be free.
func (l *Level) AddCorridor(ctx context.Context, roomFrom, roomTo string, length int, direction string) (msg string, err error) {
	span := startSpan(ctx, "level.add_corridor",
		attribute.String("corridor.from", roomFrom),
		attribute.String("corridor.to", roomTo),
		attribute.Int("corridor.length", length),
		attribute.String("direction", direction),
	)
	defer func() { l.endSpan(span, err) }()

	if roomFrom == "" {
		return "", inputErr("room_from_name cannot be empty")
	}
	if roomTo == "" {
		return "", inputErr("room_to_name cannot be empty")
	}
	if roomFrom == roomTo {
		return "", inputErr("%s cannot be the same as %s", roomFrom, roomTo)
	}
	from := l.roomByName(roomFrom)
	if from == nil {
		return "", inputErr("room %s is not in the level", roomFrom)
	}
	to := l.roomByName(roomTo)
	if to == nil {
		return "", inputErr("room %s is not in the level", roomTo)
	}
	if l.findCorridor(from.ID, to.ID) != nil {
		return "", conflictErr("could not add corridor: a corridor between %s and %s already exists", roomFrom, roomTo)
	}
	if name := CorridorName(roomFrom, roomTo); l.nameTaken(name) {
		return "", conflictErr("could not add corridor: %s already exists", name)
	}
	if err := l.limits.checkLength(length); err != nil {
		return "", inputErr("could not add corridor: %v", err)
	}
	dir, err := geometry.ParseDirection(direction)
	if err != nil {
		return "", inputErr("could not add a corridor: %v", err)
	}

	fromLinks, toLinks := l.connections[from.ID], l.connections[to.ID]
	if other := fromLinks[dir]; other != uuid.Nil {
		return "", conflictErr("could not add corridor: %s of %s already has a corridor to %s", dir, roomFrom, l.nameOf(other))
	}
	if other := toLinks[dir.Opposite()]; other != uuid.Nil {
		return "", conflictErr("could not add corridor: %s of %s already has a corridor to %s", dir.Opposite(), roomTo, l.nameOf(other))
	}
	if fromLinks.Degree() >= l.limits.MaxDegree {
		return "", conflictErr("could not add corridor: %s has already %d connections", roomFrom, fromLinks.Degree())
	}
	if toLinks.Degree() >= l.limits.MaxDegree {
		return "", conflictErr("could not add corridor: %s has already %d connections", roomTo, toLinks.Degree())
	}

	if to.Coord != from.Coord.Step(dir, length+1) {
		return "", geometricErr("could not add corridor: cannot reach %s from %s with a corridor of length %d along %s", roomTo, roomFrom, length, dir)
	}
	cells := geometry.Line(from.Coord, dir, length)
	for _, cell := range cells {
		if occupant, ok := l.FindOccupant(cell); ok {
			return "", geometricErr("could not add corridor between %s and %s to the level: it would clash in %s", roomFrom, roomTo, occupant)
		}
	}

	corridor := newCorridor(from.ID, to.ID, dir, cells)
	l.corridors[corridor.ID] = corridor
	l.linkRooms(from.ID, dir, to.ID)
	l.current = corridor.ID
	return fmt.Sprintf("Added corridor between %s and %s.", roomFrom, roomTo), nil
}

// RemoveCorridor deletes the corridor between two rooms, given in either
// order, and prunes whatever is no longer connected to the current room.
func (l *Level) RemoveCorridor(ctx context.Context, roomFrom, roomTo string) (msg string, err error) {
	span := startSpan(ctx, "level.remove_corridor",
		attribute.String("corridor.from", roomFrom),
		attribute.String("corridor.to", roomTo),
	)
	defer func() { l.endSpan(span, err) }()

	if roomFrom == "" {
		return "", inputErr("room_from_name cannot be empty")
	}
	if roomTo == "" {
		return "", inputErr("room_to_name cannot be empty")
	}
	corridor, ok := l.GetCorridor(roomFrom, roomTo)
	if !ok {
		return "", inputErr("corridor between %s and %s does not exist", roomFrom, roomTo)
	}

	delete(l.corridors, corridor.ID)
	l.unlinkRooms(corridor.From, corridor.To)
	if l.current == corridor.ID {
		l.current = corridor.From
	}
	pruned := l.pruneFrom(l.current)
	span.SetAttributes(attribute.Int("level.pruned_rooms", len(pruned)))
	return fmt.Sprintf("Removed corridor between %s and %s.", roomFrom, roomTo), nil
}
