package ui

import (
	"github.com/samdwyer/dungeonwright/internal/geometry"
	"github.com/samdwyer/dungeonwright/internal/world"
)

// TileKind identifies what occupies a grid cell of the map.
type TileKind int

const (
	TileEmpty TileKind = iota
	TileRoom
	TileCorridorNS
	TileCorridorEW
)

// Tile is one occupied grid cell.
type Tile struct {
	Kind      TileKind
	Owner     string // Room or corridor name
	Populated bool   // Holds at least one entity
	Current   bool   // Part of the focused room or corridor
}

// Plan is a level flattened onto its grid, independent of any output device.
type Plan struct {
	Tiles    map[geometry.Coord]Tile
	Min, Max geometry.Coord // Bounding box, inclusive
	Focus    geometry.Coord // Cell the view centers on
}

// Plot flattens a level onto the grid.
func Plot(level *world.Level) Plan {
	plan := Plan{Tiles: make(map[geometry.Coord]Tile)}
	current := level.Current()
	first := true
	put := func(c geometry.Coord, t Tile) {
		plan.Tiles[c] = t
		if first {
			plan.Min, plan.Max = c, c
			first = false
			return
		}
		plan.Min.X, plan.Min.Y = min(plan.Min.X, c.X), min(plan.Min.Y, c.Y)
		plan.Max.X, plan.Max.Y = max(plan.Max.X, c.X), max(plan.Max.Y, c.Y)
	}

	for _, r := range level.Rooms() {
		put(r.Coord, Tile{
			Kind:      TileRoom,
			Owner:     r.Name,
			Populated: r.Encounter.Len() > 0,
			Current:   r.Name == current,
		})
		if r.Name == current {
			plan.Focus = r.Coord
		}
	}
	for _, c := range level.Corridors() {
		name := level.CorridorName(c)
		kind := TileCorridorEW
		if c.Direction == geometry.North || c.Direction == geometry.South {
			kind = TileCorridorNS
		}
		for i, cell := range c.Cells {
			put(cell, Tile{
				Kind:      kind,
				Owner:     name,
				Populated: c.Encounters[i].Len() > 0,
				Current:   name == current,
			})
		}
		if name == current && len(c.Cells) > 0 {
			plan.Focus = c.Cells[len(c.Cells)/2]
		}
	}
	return plan
}

// At returns the tile at a grid cell, TileEmpty if nothing is there.
func (p Plan) At(c geometry.Coord) Tile {
	return p.Tiles[c]
}

// Size returns the width and height of the bounding box.
func (p Plan) Size() (width, height int) {
	if len(p.Tiles) == 0 {
		return 0, 0
	}
	return p.Max.X - p.Min.X + 1, p.Max.Y - p.Min.Y + 1
}
