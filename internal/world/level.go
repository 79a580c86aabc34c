// Package world maintains the topology and grid geometry of a dungeon level:
// rooms joined by straight corridors, with no two pieces sharing a cell.
//
// Every mutating operation validates fully before it changes anything, so a
// rejected edit leaves the level exactly as it was. A Level is meant for a
// single editing session and is not safe for concurrent use.
package world

import (
	"cmp"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/samdwyer/dungeonwright/internal/geometry"
)

// Level owns the rooms, corridors and connection table of one dungeon level.
type Level struct {
	limits      Limits
	rooms       map[uuid.UUID]*Room
	corridors   map[uuid.UUID]*Corridor
	roomNames   map[string]uuid.UUID // The only table a rename rewrites
	connections map[uuid.UUID]Links
	current     uuid.UUID // Room or corridor, uuid.Nil iff the level is empty
	nextSeq     uint64
}

// NewLevel creates an empty level edited under the given limits.
func NewLevel(limits Limits) *Level {
	return &Level{
		limits:      limits,
		rooms:       make(map[uuid.UUID]*Room),
		corridors:   make(map[uuid.UUID]*Corridor),
		roomNames:   make(map[string]uuid.UUID),
		connections: make(map[uuid.UUID]Links),
	}
}

// Limits returns the bounds the level is edited under.
func (l *Level) Limits() Limits {
	return l.limits
}

// IsEmpty returns true if the level has no rooms.
func (l *Level) IsEmpty() bool {
	return len(l.rooms) == 0
}

// Room returns the room with the given name.
func (l *Level) Room(name string) (*Room, bool) {
	r := l.roomByName(name)
	return r, r != nil
}

// Rooms returns all rooms in creation order.
func (l *Level) Rooms() []*Room {
	rooms := make([]*Room, 0, len(l.rooms))
	for _, r := range l.rooms {
		rooms = append(rooms, r)
	}
	slices.SortFunc(rooms, func(a, b *Room) int {
		return cmp.Compare(a.seq, b.seq)
	})
	return rooms
}

// Corridors returns all corridors ordered by name.
func (l *Level) Corridors() []*Corridor {
	corridors := make([]*Corridor, 0, len(l.corridors))
	for _, c := range l.corridors {
		corridors = append(corridors, c)
	}
	slices.SortFunc(corridors, func(a, b *Corridor) int {
		return strings.Compare(l.CorridorName(a), l.CorridorName(b))
	})
	return corridors
}

// CorridorName returns the "{from}-{to}" name of a corridor of this level.
func (l *Level) CorridorName(c *Corridor) string {
	return CorridorName(l.nameOf(c.From), l.nameOf(c.To))
}

// Endpoints returns the rooms a corridor starts and ends at.
func (l *Level) Endpoints(c *Corridor) (from, to *Room) {
	return l.rooms[c.From], l.rooms[c.To]
}

// Current returns the name of the focused room or corridor, or "" for an empty level.
func (l *Level) Current() string {
	if r, ok := l.rooms[l.current]; ok {
		return r.Name
	}
	if c, ok := l.corridors[l.current]; ok {
		return l.CorridorName(c)
	}
	return ""
}

// SetCurrent moves the focus to the named room or corridor.
func (l *Level) SetCurrent(name string) error {
	if r := l.roomByName(name); r != nil {
		l.current = r.ID
		return nil
	}
	if c := l.corridorByName(name); c != nil {
		l.current = c.ID
		return nil
	}
	return inputErr("%s is not in the level", name)
}

// Connections returns the named neighbors of a room per direction.
// Free slots are omitted.
func (l *Level) Connections(name string) (map[geometry.Direction]string, bool) {
	r := l.roomByName(name)
	if r == nil {
		return nil, false
	}
	out := make(map[geometry.Direction]string)
	for _, d := range geometry.AllDirections() {
		if id := l.connections[r.ID][d]; id != uuid.Nil {
			out[d] = l.nameOf(id)
		}
	}
	return out, true
}

// String describes the whole level: rooms, corridors and the current room.
func (l *Level) String() string {
	var sb strings.Builder
	sb.WriteString("Rooms:\n")
	for _, r := range l.Rooms() {
		sb.WriteString(r.String())
		sb.WriteByte('\n')
	}
	sb.WriteString("Corridors:\n")
	for _, c := range l.Corridors() {
		sb.WriteString(c.describe(l.CorridorName(c), l.nameOf(c.From), l.nameOf(c.To)))
		sb.WriteByte('\n')
	}
	sb.WriteString("Current room: " + l.Current())
	return sb.String()
}

func (l *Level) nameOf(id uuid.UUID) string {
	if r, ok := l.rooms[id]; ok {
		return r.Name
	}
	return ""
}

func (l *Level) roomByName(name string) *Room {
	id, ok := l.roomNames[name]
	if !ok {
		return nil
	}
	return l.rooms[id]
}

func (l *Level) corridorByName(name string) *Corridor {
	for _, c := range l.corridors {
		if l.CorridorName(c) == name {
			return c
		}
	}
	return nil
}

// findCorridor returns the corridor joining two rooms in either order.
func (l *Level) findCorridor(a, b uuid.UUID) *Corridor {
	for _, c := range l.corridors {
		if c.Connects(a, b) {
			return c
		}
	}
	return nil
}

// nameTaken reports whether a room or corridor already uses the name.
func (l *Level) nameTaken(name string) bool {
	return l.roomByName(name) != nil || l.corridorByName(name) != nil
}

// corridorNameTaken reports whether a corridor other than except already
// derives the name.
func (l *Level) corridorNameTaken(name string, except *Corridor) bool {
	for _, c := range l.corridors {
		if c != except && l.CorridorName(c) == name {
			return true
		}
	}
	return false
}

// oldestRoom returns the earliest created room, or uuid.Nil when empty.
func (l *Level) oldestRoom() uuid.UUID {
	rooms := l.Rooms()
	if len(rooms) == 0 {
		return uuid.Nil
	}
	return rooms[0].ID
}

func (l *Level) insertRoom(r *Room) {
	l.rooms[r.ID] = r
	l.roomNames[r.Name] = r.ID
	l.connections[r.ID] = Links{}
}

// deleteRoom removes a room, its corridors and every connection to it.
func (l *Level) deleteRoom(id uuid.UUID) {
	r, ok := l.rooms[id]
	if !ok {
		return
	}
	for cid, c := range l.corridors {
		if c.Touches(id) {
			delete(l.corridors, cid)
		}
	}
	for _, neighbor := range l.connections[id] {
		if neighbor != uuid.Nil {
			l.unlinkRooms(id, neighbor)
		}
	}
	delete(l.connections, id)
	delete(l.roomNames, r.Name)
	delete(l.rooms, id)
}

func (l *Level) takeSeq() uint64 {
	l.nextSeq++
	return l.nextSeq
}
