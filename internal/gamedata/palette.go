package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/samber/oops"
)

// Glyphs holds the characters used to draw a level.
type Glyphs struct {
	Room       string `json:"room"`
	Populated  string `json:"populated"`   // Room or cell holding entities
	CorridorNS string `json:"corridor_ns"` // Corridor running north-south
	CorridorEW string `json:"corridor_ew"` // Corridor running east-west
}

// Palette defines the map colors as hex codes, loaded from JSON.
type Palette struct {
	Background string `json:"background"`
	Room       string `json:"room"`
	Corridor   string `json:"corridor"`
	Current    string `json:"current"`   // Focused room or corridor
	Populated  string `json:"populated"` // Cells holding entities
	Text       string `json:"text"`
	Error      string `json:"error"`
	Glyphs     Glyphs `json:"glyphs"`
}

// Colors is a Palette resolved to tcell colors.
type Colors struct {
	Background tcell.Color
	Room       tcell.Color
	Corridor   tcell.Color
	Current    tcell.Color
	Populated  tcell.Color
	Text       tcell.Color
	Error      tcell.Color
}

// Colors parses every hex code of the palette.
func (p Palette) Colors() (Colors, error) {
	var c Colors
	fields := []struct {
		name string
		hex  string
		dst  *tcell.Color
	}{
		{"background", p.Background, &c.Background},
		{"room", p.Room, &c.Room},
		{"corridor", p.Corridor, &c.Corridor},
		{"current", p.Current, &c.Current},
		{"populated", p.Populated, &c.Populated},
		{"text", p.Text, &c.Text},
		{"error", p.Error, &c.Error},
	}
	for _, f := range fields {
		color, err := parseColor(f.hex)
		if err != nil {
			return Colors{}, oops.In("gamedata").With("color", f.name).Wrapf(err, "palette color %s", f.name)
		}
		*f.dst = color
	}
	return c, nil
}

// parseColor reads a "#RRGGBB" palette entry.
func parseColor(s string) (tcell.Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("color %q is not of the form #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 24)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("color %q: %w", s, err)
	}
	return tcell.NewHexColor(int32(v)), nil
}

// GlyphRune returns the first rune of a glyph, or '?' if it is empty.
func GlyphRune(glyph string) rune {
	for _, r := range glyph {
		return r
	}
	return '?'
}

// LoadPalette loads the map palette from the embedded palette.json file.
func LoadPalette() (Palette, error) {
	palette, err := Load[Palette]("palette.json")
	if err != nil {
		return Palette{}, err
	}
	if _, err := palette.Colors(); err != nil {
		return Palette{}, err
	}
	return palette, nil
}

// MustLoadPalette loads the map palette, panicking on error.
func MustLoadPalette() Palette {
	palette, err := LoadPalette()
	if err != nil {
		panic(err)
	}
	return palette
}
