package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/gookit/color"

	"github.com/samdwyer/dungeonwright/internal/gamedata"
	"github.com/samdwyer/dungeonwright/internal/geometry"
	"github.com/samdwyer/dungeonwright/internal/ui"
)

// printMap writes the plan as rows of glyphs. Plans wider than maxWidth are
// clipped around the focus; maxWidth 0 disables clipping.
func printMap(w io.Writer, plan ui.Plan, palette gamedata.Palette, maxWidth int) {
	width, _ := plan.Size()
	if width == 0 {
		fmt.Fprintln(w, "(empty level)")
		return
	}

	left, right := plan.Min.X, plan.Max.X
	if maxWidth > 0 && width > maxWidth {
		left = min(max(plan.Focus.X-maxWidth/2, plan.Min.X), plan.Max.X-maxWidth+1)
		right = left + maxWidth - 1
	}

	room := color.HEX(palette.Room)
	corridor := color.HEX(palette.Corridor)
	populated := color.HEX(palette.Populated)
	current := color.HEX(palette.Current)

	for y := plan.Min.Y; y <= plan.Max.Y; y++ {
		var sb strings.Builder
		pending := 0 // Spaces held back until a tile follows
		for x := left; x <= right; x++ {
			tile := plan.At(geometry.Coord{X: x, Y: y})
			if tile.Kind == ui.TileEmpty {
				pending++
				continue
			}
			sb.WriteString(strings.Repeat(" ", pending))
			pending = 0

			glyph := string(ui.TileGlyph(palette.Glyphs, tile))
			switch {
			case tile.Current:
				sb.WriteString(current.Sprint(glyph))
			case tile.Populated:
				sb.WriteString(populated.Sprint(glyph))
			case tile.Kind == ui.TileRoom:
				sb.WriteString(room.Sprint(glyph))
			default:
				sb.WriteString(corridor.Sprint(glyph))
			}
		}
		fmt.Fprintln(w, sb.String())
	}
}
