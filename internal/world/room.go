package world

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/samdwyer/dungeonwright/internal/encounter"
	"github.com/samdwyer/dungeonwright/internal/geometry"
)

// Room is a named node of the level occupying a single grid cell.
type Room struct {
	ID          uuid.UUID
	Name        string
	Description string
	Coord       geometry.Coord
	Encounter   *encounter.Encounter
	Sprite      string // Render handle, empty until generated

	seq uint64 // Creation order
}

// String returns the room summary used in level descriptions.
func (r *Room) String() string {
	return fmt.Sprintf("%s: %s;%s", r.Name, r.Description, r.Encounter)
}

// Corridor is a directed edge between two rooms, made of Length cells.
// The room names are resolved through the level, so renaming a room never
// touches its corridors.
type Corridor struct {
	ID         uuid.UUID
	From       uuid.UUID
	To         uuid.UUID
	Direction  geometry.Direction // From -> To
	Length     int
	Cells      []geometry.Coord       // One per cell, nearest to From first
	Encounters []*encounter.Encounter // One per cell
	Sprites    []string               // Per-cell render handles, empty until generated
}

// CorridorName derives a corridor name from its endpoint room names.
func CorridorName(from, to string) string {
	return from + "-" + to
}

// Touches returns true if the room is one of the corridor's endpoints.
func (c *Corridor) Touches(id uuid.UUID) bool {
	return c.From == id || c.To == id
}

// Connects returns true if the corridor joins the two rooms, in either order.
func (c *Corridor) Connects(a, b uuid.UUID) bool {
	return (c.From == a && c.To == b) || (c.From == b && c.To == a)
}

func newRoom(name, description string, coord geometry.Coord, seq uint64) *Room {
	return &Room{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		Coord:       coord,
		Encounter:   encounter.New(),
		seq:         seq,
	}
}

func newCorridor(from, to uuid.UUID, dir geometry.Direction, cells []geometry.Coord) *Corridor {
	return &Corridor{
		ID:         uuid.New(),
		From:       from,
		To:         to,
		Direction:  dir,
		Length:     len(cells),
		Cells:      cells,
		Encounters: encounter.NewCells(len(cells)),
	}
}

// describe renders the corridor summary, one line per cell.
func (c *Corridor) describe(name, from, to string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: from %s to %s, %d cells long;", name, from, to, c.Length)
	for i, e := range c.Encounters {
		fmt.Fprintf(&sb, "\nCell %d %s", i+1, e)
	}
	return sb.String()
}

// resizeEncounters truncates or extends the per-cell encounters to n cells.
func resizeEncounters(cells []*encounter.Encounter, n int) []*encounter.Encounter {
	if len(cells) >= n {
		return append([]*encounter.Encounter(nil), cells[:n]...)
	}
	out := append([]*encounter.Encounter(nil), cells...)
	for len(out) < n {
		out = append(out, encounter.New())
	}
	return out
}

// resizeSprites truncates or extends per-cell render handles to n cells. The
// last handle is the corridor's end cap and always stays last.
func resizeSprites(sprites []string, n int) []string {
	if len(sprites) == 0 || n == 0 {
		return nil
	}
	if len(sprites) == n {
		return append([]string(nil), sprites...)
	}
	last := sprites[len(sprites)-1]
	if len(sprites) > n {
		out := append([]string(nil), sprites[:n-1]...)
		return append(out, last)
	}
	out := append([]string(nil), sprites[:len(sprites)-1]...)
	for len(out) < n-1 {
		out = append(out, "")
	}
	return append(out, last)
}
