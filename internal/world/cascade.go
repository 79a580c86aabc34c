package world

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/dungeonwright/internal/geometry"
)

// UpdateCorridor changes the length, direction and endpoints of the corridor
// between refFrom and refTo (given in either order). The rooms on the side of
// the re-attached endpoint move with it: they are turned by the change of
// the corridor's direction and shifted so the endpoint ends up length+1 cells
// away. Corridors on a closed loop cannot be updated. The edit is computed on
// scratch state and committed only once every check has passed.
func (l *Level) UpdateCorridor(ctx context.Context, refFrom, refTo, newFrom, newTo string, length int, direction string) (msg string, err error) {
	span := startSpan(ctx, "level.update_corridor",
		attribute.String("corridor.ref_from", refFrom),
		attribute.String("corridor.ref_to", refTo),
		attribute.String("corridor.from", newFrom),
		attribute.String("corridor.to", newTo),
		attribute.Int("corridor.length", length),
		attribute.String("direction", direction),
	)
	defer func() { l.endSpan(span, err) }()

	switch {
	case refFrom == "":
		return "", inputErr("room_from_reference_name cannot be empty")
	case refTo == "":
		return "", inputErr("room_to_reference_name cannot be empty")
	case newFrom == "":
		return "", inputErr("room_from_name cannot be empty")
	case newTo == "":
		return "", inputErr("room_to_name cannot be empty")
	case newFrom == newTo:
		return "", inputErr("%s cannot be the same as %s", newFrom, newTo)
	}
	if err := l.limits.checkLength(length); err != nil {
		return "", inputErr("could not update corridor: %v", err)
	}
	pivot, ok := l.GetCorridor(refFrom, refTo)
	if !ok {
		return "", inputErr("corridor between %s and %s does not exist", refFrom, refTo)
	}
	dir, err := geometry.ParseDirection(direction)
	if err != nil {
		return "", inputErr("could not update corridor between %s and %s: %v", refFrom, refTo, err)
	}
	from := l.roomByName(newFrom)
	if from == nil {
		return "", inputErr("room %s is not in the level", newFrom)
	}
	to := l.roomByName(newTo)
	if to == nil {
		return "", inputErr("room %s is not in the level", newTo)
	}
	if InLoop(pivot, l.connections) {
		return "", &Error{
			Kind: KindGeometric,
			Msg:  "could not update corridor: corridors in a closed loop cannot be altered",
			Err:  ErrInLoop,
		}
	}
	if other := l.findCorridor(from.ID, to.ID); other != nil && other != pivot {
		return "", conflictErr("could not update corridor: a corridor between %s and %s already exists", newFrom, newTo)
	}
	if name := CorridorName(newFrom, newTo); l.roomByName(name) != nil || l.corridorNameTaken(name, pivot) {
		return "", conflictErr("could not update corridor: %s already exists", name)
	}

	plan, err := l.planCascade(pivot, from, to, dir, length)
	if err != nil {
		return "", fmt.Errorf("could not update corridor between %s and %s: %w", refFrom, refTo, err)
	}
	l.commitCascade(pivot, plan)

	pruned := l.pruneFrom(pivot.From)
	span.SetAttributes(
		attribute.Int("cascade.moved_rooms", len(plan.coords)),
		attribute.Int("cascade.rotation", plan.rotation),
		attribute.Int("level.pruned_rooms", len(pruned)),
	)
	slog.Debug("corridor cascade committed",
		"corridor", l.CorridorName(pivot),
		"moved", len(plan.coords),
		"rotation", plan.rotation,
		"pruned", len(pruned),
	)
	return fmt.Sprintf("Updated corridor between %s and %s.", newFrom, newTo), nil
}

// cascade is the scratch result of an update: every value that changes on
// commit, computed without touching the level.
type cascade struct {
	from, to  uuid.UUID
	direction geometry.Direction
	length    int
	cells     []geometry.Coord
	rotation  int

	coords      map[uuid.UUID]geometry.Coord // Moved rooms
	corridors   map[uuid.UUID]movedCorridor
	connections map[uuid.UUID]Links // Rows that change
}

type movedCorridor struct {
	direction geometry.Direction
	cells     []geometry.Coord
}

// planCascade computes and validates the new geometry of an update.
func (l *Level) planCascade(pivot *Corridor, from, to *Room, dir geometry.Direction, length int) (*cascade, error) {
	fixed, changing := l.Partition(pivot)
	plan := &cascade{
		from:        from.ID,
		to:          to.ID,
		direction:   dir,
		length:      length,
		coords:      make(map[uuid.UUID]geometry.Coord),
		corridors:   make(map[uuid.UUID]movedCorridor),
		connections: make(map[uuid.UUID]Links),
	}

	// Pick the side that follows the re-attached endpoint, if any.
	var (
		moving  *Subgraph
		anchor  *Room
		target  geometry.Coord
		dropped = newSubgraph()
	)
	oldExit := pivot.Direction.Opposite()
	fromMoves, toMoves := changing.Rooms.Has(from.ID), changing.Rooms.Has(to.ID)
	switch {
	case toMoves && !fromMoves:
		moving, anchor = &changing, to
		target = from.Coord.Step(dir, length+1)
		plan.rotation = geometry.RotationBetween(oldExit, dir.Opposite())
	case fromMoves && !toMoves:
		moving, anchor = &changing, from
		target = to.Coord.Step(dir.Opposite(), length+1)
		plan.rotation = geometry.RotationBetween(oldExit, dir)
	case fromMoves && toMoves:
		dropped = fixed
	default:
		dropped = changing
	}

	if moving != nil {
		moving.Rooms.Each(func(id uuid.UUID) {
			r := l.rooms[id]
			plan.coords[id] = target.Add(r.Coord.Sub(anchor.Coord).Rotate(plan.rotation))
			if plan.rotation != 0 {
				plan.connections[id] = l.connections[id].Rotated(plan.rotation)
			}
		})
		moving.Corridors.Each(func(id uuid.UUID) {
			if id == pivot.ID {
				return
			}
			c := l.corridors[id]
			cells := make([]geometry.Coord, len(c.Cells))
			for i, cell := range c.Cells {
				cells[i] = target.Add(cell.Sub(anchor.Coord).Rotate(plan.rotation))
			}
			plan.corridors[id] = movedCorridor{direction: c.Direction.Rotate(plan.rotation), cells: cells}
		})
	}

	// Detach the pivot, then check the slots it re-attaches to.
	for _, id := range []uuid.UUID{pivot.From, pivot.To, from.ID, to.ID} {
		plan.connections[id] = plan.row(l, id)
	}
	plan.connections[pivot.From] = plan.connections[pivot.From].without(pivot.To)
	plan.connections[pivot.To] = plan.connections[pivot.To].without(pivot.From)

	fromRow, toRow := plan.connections[from.ID], plan.connections[to.ID]
	if other := fromRow[dir]; other != uuid.Nil {
		return nil, conflictErr("%s already has a corridor on %s to %s", from.Name, dir, l.nameOf(other))
	}
	if other := toRow[dir.Opposite()]; other != uuid.Nil {
		return nil, conflictErr("%s already has a corridor on %s to %s", to.Name, dir.Opposite(), l.nameOf(other))
	}
	if fromRow.Degree() >= l.limits.MaxDegree {
		return nil, conflictErr("%s has already %d connections", from.Name, fromRow.Degree())
	}
	if toRow.Degree() >= l.limits.MaxDegree {
		return nil, conflictErr("%s has already %d connections", to.Name, toRow.Degree())
	}

	fromAt, toAt := plan.coordOf(from), plan.coordOf(to)
	if toAt != fromAt.Step(dir, length+1) {
		return nil, geometricErr("cannot reach %s from %s with a corridor of length %d along %s", to.Name, from.Name, length, dir)
	}
	plan.cells = geometry.Line(fromAt, dir, length)

	// Every kept room and corridor must still own its cells alone.
	occupied := make(occupancy)
	for _, r := range l.Rooms() {
		if dropped.Rooms.Has(r.ID) {
			continue
		}
		if err := occupied.claim(plan.coordOf(r), r.Name); err != nil {
			return nil, err
		}
	}
	for _, c := range l.Corridors() {
		if c.ID == pivot.ID || dropped.Corridors.Has(c.ID) {
			continue
		}
		cells := c.Cells
		if moved, ok := plan.corridors[c.ID]; ok {
			cells = moved.cells
		}
		if err := occupied.claimAll(cells, l.CorridorName(c)); err != nil {
			return nil, err
		}
	}
	if err := occupied.claimAll(plan.cells, CorridorName(from.Name, to.Name)); err != nil {
		return nil, err
	}
	return plan, nil
}

// row returns the scratch connection row of a room.
func (p *cascade) row(l *Level, id uuid.UUID) Links {
	if row, ok := p.connections[id]; ok {
		return row
	}
	return l.connections[id]
}

// coordOf returns the position a room will have after the update.
func (p *cascade) coordOf(r *Room) geometry.Coord {
	if c, ok := p.coords[r.ID]; ok {
		return c
	}
	return r.Coord
}

// commitCascade writes a validated plan into the live level. Rooms and
// corridors are updated in place so they keep their identity.
func (l *Level) commitCascade(pivot *Corridor, plan *cascade) {
	for id, c := range plan.coords {
		l.rooms[id].Coord = c
	}
	for id, moved := range plan.corridors {
		c := l.corridors[id]
		c.Direction = moved.direction
		c.Cells = moved.cells
	}
	for id, row := range plan.connections {
		l.connections[id] = row
	}
	l.linkRooms(plan.from, plan.direction, plan.to)

	endpointsChanged := pivot.From != plan.from || pivot.To != plan.to
	pivot.From, pivot.To = plan.from, plan.to
	pivot.Direction = plan.direction
	pivot.Length = plan.length
	pivot.Cells = plan.cells
	pivot.Encounters = resizeEncounters(pivot.Encounters, plan.length)
	if endpointsChanged {
		pivot.Sprites = nil
	} else {
		pivot.Sprites = resizeSprites(pivot.Sprites, plan.length)
	}
	l.current = pivot.ID
}
