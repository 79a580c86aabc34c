package world

import (
	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// Subgraph is a set of rooms and corridors of a level.
type Subgraph struct {
	Rooms     mapset.Set[uuid.UUID]
	Corridors mapset.Set[uuid.UUID]
}

func newSubgraph() Subgraph {
	return Subgraph{
		Rooms:     mapset.New[uuid.UUID](),
		Corridors: mapset.New[uuid.UUID](),
	}
}

// Partition splits the level around a pivot corridor. The fixed half holds
// everything reachable from the pivot's From room without crossing it; the
// changing half holds the pivot and everything reachable from its To room.
// The halves only make sense for a pivot that is not InLoop.
func (l *Level) Partition(pivot *Corridor) (fixed, changing Subgraph) {
	fixed, changing = newSubgraph(), newSubgraph()
	fixed.Rooms = l.reachable(pivot.From, pivot)
	changing.Rooms = l.reachable(pivot.To, pivot)

	changing.Corridors.Put(pivot.ID)
	for id, c := range l.corridors {
		switch {
		case id == pivot.ID:
		case changing.Rooms.Has(c.From) && changing.Rooms.Has(c.To):
			changing.Corridors.Put(id)
		case fixed.Rooms.Has(c.From) && fixed.Rooms.Has(c.To):
			fixed.Corridors.Put(id)
		}
	}
	return fixed, changing
}

// reachable collects the rooms reachable from start. A non-nil pivot is
// treated as absent.
func (l *Level) reachable(start uuid.UUID, pivot *Corridor) mapset.Set[uuid.UUID] {
	visited := mapset.New[uuid.UUID]()
	if _, ok := l.rooms[start]; !ok {
		return visited
	}
	pending := queue.New[uuid.UUID]()
	visited.Put(start)
	pending.Enqueue(start)

	for !pending.Empty() {
		room := pending.Dequeue()
		for _, next := range l.connections[room] {
			if next == uuid.Nil || visited.Has(next) {
				continue
			}
			if pivot != nil && pivot.Connects(room, next) {
				continue
			}
			visited.Put(next)
			pending.Enqueue(next)
		}
	}
	return visited
}
