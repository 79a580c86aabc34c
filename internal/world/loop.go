package world

import (
	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// InLoop reports whether a corridor lies on a cycle of the connection graph:
// whether its From room can be reached from its To room without using the
// corridor itself. Such corridors have no downstream side and cannot be moved.
func InLoop(c *Corridor, connections map[uuid.UUID]Links) bool {
	visited := mapset.New[uuid.UUID]()
	pending := queue.New[uuid.UUID]()
	visited.Put(c.To)
	pending.Enqueue(c.To)

	for !pending.Empty() {
		room := pending.Dequeue()
		for _, next := range connections[room] {
			if next == uuid.Nil {
				continue
			}
			if next == c.From {
				if room != c.To {
					return true
				}
				continue
			}
			if !visited.Has(next) {
				visited.Put(next)
				pending.Enqueue(next)
			}
		}
	}
	return false
}
