package world

import (
	"log/slog"

	"github.com/google/uuid"
)

// Prune removes every room that cannot be reached from the anchor room or
// corridor, together with its corridors. An empty anchor means the current
// room. It returns the names of the removed rooms; running it again removes nothing.
func (l *Level) Prune(anchor string) []string {
	id := l.current
	if anchor != "" {
		if r := l.roomByName(anchor); r != nil {
			id = r.ID
		} else if c := l.corridorByName(anchor); c != nil {
			id = c.ID
		}
	}
	return l.pruneFrom(id)
}

func (l *Level) pruneFrom(anchor uuid.UUID) []string {
	if l.IsEmpty() {
		return nil
	}
	if c, ok := l.corridors[anchor]; ok {
		anchor = c.From
	}
	if _, ok := l.rooms[anchor]; !ok {
		anchor = l.oldestRoom()
	}

	connected := l.reachable(anchor, nil)
	var removed []string
	for _, r := range l.Rooms() {
		if connected.Has(r.ID) {
			continue
		}
		removed = append(removed, r.Name)
		l.deleteRoom(r.ID)
		slog.Debug("pruned hanging room", "room", r.Name, "anchor", l.nameOf(anchor))
	}

	_, roomOK := l.rooms[l.current]
	_, corridorOK := l.corridors[l.current]
	if !roomOK && !corridorOK {
		l.current = anchor
	}
	if l.IsEmpty() {
		l.current = uuid.Nil
	}
	return removed
}
