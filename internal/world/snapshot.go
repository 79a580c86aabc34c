package world

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/samdwyer/dungeonwright/internal/encounter"
	"github.com/samdwyer/dungeonwright/internal/geometry"
)

// Snapshot is a name-based copy of a level, independent of the level it was
// taken from. Rooms are listed in creation order.
type Snapshot struct {
	Rooms     []RoomRecord     `json:"rooms"`
	Corridors []CorridorRecord `json:"corridors"`
	Current   string           `json:"current_room"`
}

// RoomRecord is the saved form of a room.
type RoomRecord struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Coord       geometry.Coord       `json:"coords"`
	Encounter   *encounter.Encounter `json:"encounter"`
	Sprite      string               `json:"sprite,omitempty"`
}

// CorridorRecord is the saved form of a corridor.
type CorridorRecord struct {
	From       string                 `json:"room_from"`
	To         string                 `json:"room_to"`
	Direction  geometry.Direction     `json:"direction"`
	Length     int                    `json:"length"`
	Cells      []geometry.Coord       `json:"coords"`
	Encounters []*encounter.Encounter `json:"encounters"`
	Sprites    []string               `json:"sprites,omitempty"`
}

// Snapshot returns a deep copy of the level.
func (l *Level) Snapshot() Snapshot {
	snap := Snapshot{
		Rooms:     make([]RoomRecord, 0, len(l.rooms)),
		Corridors: make([]CorridorRecord, 0, len(l.corridors)),
		Current:   l.Current(),
	}
	for _, r := range l.Rooms() {
		snap.Rooms = append(snap.Rooms, RoomRecord{
			Name:        r.Name,
			Description: r.Description,
			Coord:       r.Coord,
			Encounter:   r.Encounter.Clone(),
			Sprite:      r.Sprite,
		})
	}
	for _, c := range l.Corridors() {
		encounters := make([]*encounter.Encounter, len(c.Encounters))
		for i, e := range c.Encounters {
			encounters[i] = e.Clone()
		}
		snap.Corridors = append(snap.Corridors, CorridorRecord{
			From:       l.nameOf(c.From),
			To:         l.nameOf(c.To),
			Direction:  c.Direction,
			Length:     c.Length,
			Cells:      slices.Clone(c.Cells),
			Encounters: encounters,
			Sprites:    slices.Clone(c.Sprites),
		})
	}
	return snap
}

// Restore rebuilds a level from a snapshot and refuses snapshots that break
// any invariant of the level.
func Restore(limits Limits, snap Snapshot) (*Level, error) {
	if err := limits.Validate(); err != nil {
		return nil, &Error{Kind: KindInput, Msg: err.Error(), Err: err}
	}
	l := NewLevel(limits)
	for _, rec := range snap.Rooms {
		if rec.Name == "" {
			return nil, inputErr("room name should be provided")
		}
		if l.nameTaken(rec.Name) {
			return nil, conflictErr("%s appears twice in the snapshot", rec.Name)
		}
		r := newRoom(rec.Name, rec.Description, rec.Coord, l.takeSeq())
		if rec.Encounter != nil {
			r.Encounter = rec.Encounter.Clone()
		}
		r.Sprite = rec.Sprite
		l.insertRoom(r)
	}
	for _, rec := range snap.Corridors {
		from, to := l.roomByName(rec.From), l.roomByName(rec.To)
		if from == nil || to == nil {
			return nil, inputErr("corridor %s refers to a missing room", CorridorName(rec.From, rec.To))
		}
		if l.findCorridor(from.ID, to.ID) != nil {
			return nil, conflictErr("a corridor between %s and %s appears twice in the snapshot", rec.From, rec.To)
		}
		if !rec.Direction.IsValid() {
			return nil, inputErr("corridor %s has an invalid direction", CorridorName(rec.From, rec.To))
		}
		if err := l.addEdge(from.ID, rec.Direction, to.ID); err != nil {
			return nil, err
		}
		c := &Corridor{
			ID:         uuid.New(),
			From:       from.ID,
			To:         to.ID,
			Direction:  rec.Direction,
			Length:     rec.Length,
			Cells:      slices.Clone(rec.Cells),
			Encounters: make([]*encounter.Encounter, len(rec.Encounters)),
			Sprites:    slices.Clone(rec.Sprites),
		}
		for i, e := range rec.Encounters {
			if e == nil {
				e = encounter.New()
			}
			c.Encounters[i] = e.Clone()
		}
		l.corridors[c.ID] = c
	}
	switch {
	case snap.Current != "":
		if err := l.SetCurrent(snap.Current); err != nil {
			return nil, err
		}
	case !l.IsEmpty():
		l.current = l.oldestRoom()
	}
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("inconsistent snapshot: %w", err)
	}
	return l, nil
}
