package world

import "github.com/samdwyer/dungeonwright/internal/geometry"

// FindOccupant returns the name of the room or corridor covering a cell.
func (l *Level) FindOccupant(c geometry.Coord) (string, bool) {
	for _, r := range l.Rooms() {
		if r.Coord == c {
			return r.Name, true
		}
	}
	for _, cor := range l.Corridors() {
		for _, cell := range cor.Cells {
			if cell == c {
				return l.CorridorName(cor), true
			}
		}
	}
	return "", false
}

// occupancy maps each claimed cell to the name of its owner.
type occupancy map[geometry.Coord]string

// claim records owner at c, failing if a different owner is already there.
func (o occupancy) claim(c geometry.Coord, owner string) error {
	if prev, ok := o[c]; ok && prev != owner {
		return geometricErr("%s would intersect with %s at %s", owner, prev, c)
	}
	o[c] = owner
	return nil
}

// claimAll claims every cell for owner, including repeats within the cells.
func (o occupancy) claimAll(cells []geometry.Coord, owner string) error {
	seen := make(map[geometry.Coord]bool, len(cells))
	for _, c := range cells {
		if seen[c] {
			return geometricErr("%s crosses itself at %s", owner, c)
		}
		seen[c] = true
		if err := o.claim(c, owner); err != nil {
			return err
		}
	}
	return nil
}
