package world

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeonwright/internal/geometry"
)

// AddRoom adds a room. On an empty level the room is placed at the origin and
// roomFrom and direction must be empty. Otherwise the room is placed
// CorridorMinLength+1 cells from roomFrom along direction, joined to it by a
// new corridor of minimal length, and becomes the current room.
func (l *Level) AddRoom(ctx context.Context, name, description, roomFrom, direction string) (msg string, err error) {
	span := startSpan(ctx, "level.add_room",
		attribute.String("room.name", name),
		attribute.String("room.from", roomFrom),
		attribute.String("direction", direction),
	)
	defer func() { l.endSpan(span, err) }()

	if name == "" {
		return "", inputErr("room name should be provided")
	}
	if description == "" {
		return "", inputErr("room description should be provided")
	}
	if l.nameTaken(name) {
		return "", conflictErr("could not add %s to the level: %s already exists", name, name)
	}

	if l.IsEmpty() {
		if roomFrom != "" {
			return "", inputErr("could not add %s to the level: room_from must not be set if there is no current room", name)
		}
		room := newRoom(name, description, geometry.Origin, l.takeSeq())
		l.insertRoom(room)
		l.current = room.ID
		return fmt.Sprintf("Added %s to the level.", name), nil
	}

	if roomFrom == "" {
		return "", inputErr("could not add %s to the level: room_from must be set if there exists a current room (current room is %s)", name, l.Current())
	}
	if direction == "" {
		return "", inputErr("could not add %s to the level: direction must be set if there exists a current room (current room is %s)", name, l.Current())
	}
	if l.corridorByName(roomFrom) != nil {
		return "", inputErr("could not add %s to the level: cannot add a room from a corridor, add it from one of the rooms connected by %s", name, roomFrom)
	}
	from := l.roomByName(roomFrom)
	if from == nil {
		return "", inputErr("%s is not a valid room name", roomFrom)
	}
	dir, err := geometry.ParseDirection(direction)
	if err != nil {
		return "", inputErr("could not add %s to the level: %v", name, err)
	}
	if corridor := CorridorName(roomFrom, name); l.nameTaken(corridor) {
		return "", conflictErr("could not add %s to the level: %s already exists", name, corridor)
	}
	links := l.connections[from.ID]
	if other := links[dir]; other != uuid.Nil {
		return "", conflictErr("could not add %s to the level: %s of %s there already exists a room (%s)", name, dir, roomFrom, l.nameOf(other))
	}
	if links.Degree() >= l.limits.MaxDegree {
		return "", conflictErr("could not add %s to the level: %s has too many connections", name, roomFrom)
	}

	length := l.limits.CorridorMinLength
	pos := from.Coord.Step(dir, length+1)
	if occupant, ok := l.FindOccupant(pos); ok {
		return "", geometricErr("could not add %s to the level: %s would clash in %s", name, name, occupant)
	}
	cells := geometry.Line(from.Coord, dir, length)
	for _, cell := range cells {
		if occupant, ok := l.FindOccupant(cell); ok {
			return "", geometricErr("could not add %s to the level: corridor between %s and %s would clash in %s", name, roomFrom, name, occupant)
		}
	}

	room := newRoom(name, description, pos, l.takeSeq())
	l.insertRoom(room)
	corridor := newCorridor(from.ID, room.ID, dir, cells)
	l.corridors[corridor.ID] = corridor
	l.linkRooms(from.ID, dir, room.ID)
	l.current = room.ID
	return fmt.Sprintf("Added %s to the level.", name), nil
}

// RemoveRoom deletes a room and its corridors, moves the focus to the oldest
// surviving room and prunes whatever is no longer connected to it.
func (l *Level) RemoveRoom(ctx context.Context, name string) (msg string, err error) {
	span := startSpan(ctx, "level.remove_room", attribute.String("room.name", name))
	defer func() { l.endSpan(span, err) }()

	if name == "" {
		return "", inputErr("room name should be provided")
	}
	room := l.roomByName(name)
	if room == nil {
		return "", inputErr("could not remove %s: %s is not in the level", name, name)
	}

	l.deleteRoom(room.ID)
	l.current = l.oldestRoom()
	pruned := l.pruneFrom(l.current)
	span.SetAttributes(attribute.Int("level.pruned_rooms", len(pruned)))
	return fmt.Sprintf("%s has been removed from the dungeon.", name), nil
}

// UpdateRoom renames and redescribes a room in place. A changed description
// drops the render handles of the room, its entities and its corridors.
func (l *Level) UpdateRoom(ctx context.Context, refName, name, description string) (msg string, err error) {
	span := startSpan(ctx, "level.update_room",
		attribute.String("room.ref", refName),
		attribute.String("room.name", name),
	)
	defer func() { l.endSpan(span, err) }()

	if refName == "" {
		return "", inputErr("parameter room_reference_name should be provided")
	}
	if name == "" {
		return "", inputErr("room name should be provided")
	}
	if description == "" {
		return "", inputErr("room description should be provided")
	}
	room := l.roomByName(refName)
	if room == nil {
		return "", inputErr("could not update %s: %s is not in the level", refName, refName)
	}
	if name != refName {
		if l.nameTaken(name) {
			return "", conflictErr("could not update %s: %s already exists in the level", refName, name)
		}
		names := make(map[string]bool, len(l.corridors))
		for _, c := range l.corridors {
			from, to := l.nameOf(c.From), l.nameOf(c.To)
			if c.From == room.ID {
				from = name
			}
			if c.To == room.ID {
				to = name
			}
			renamed := CorridorName(from, to)
			if c.Touches(room.ID) && l.roomByName(renamed) != nil {
				return "", conflictErr("could not update %s: corridor %s would clash with room %s", refName, renamed, renamed)
			}
			if names[renamed] {
				return "", conflictErr("could not update %s: two corridors would be named %s", refName, renamed)
			}
			names[renamed] = true
		}
	}

	if room.Description != description {
		room.Sprite = ""
		room.Encounter.ResetSprites()
		for _, c := range l.corridors {
			if c.Touches(room.ID) {
				c.Sprites = nil
			}
		}
		room.Description = description
	}
	if name != refName {
		delete(l.roomNames, refName)
		l.roomNames[name] = room.ID
		room.Name = name
	}
	return fmt.Sprintf("Updated %s.", refName), nil
}
