package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/leonelquinteros/gotext"

	"github.com/samdwyer/dungeonwright/internal/gamedata"
	"github.com/samdwyer/dungeonwright/internal/geometry"
	"github.com/samdwyer/dungeonwright/internal/world"
)

// Rows reserved below the map for the status, message and prompt lines.
const footerRows = 3

// View is the editor state drawn around the map.
type View struct {
	Mode    string
	Message string // Result of the last command
	Failed  bool   // Message reports a rejected command
	Prompt  string // Command line being typed
	Editing bool   // Command line is open
}

// Renderer handles drawing the level to the screen.
type Renderer struct {
	screen *Screen
	colors gamedata.Colors
	glyphs gamedata.Glyphs
	locale *gotext.Locale
}

// NewRenderer creates a renderer drawing with the palette's colors and glyphs.
func NewRenderer(screen *Screen, palette gamedata.Palette, locale *gotext.Locale) (*Renderer, error) {
	colors, err := palette.Colors()
	if err != nil {
		return nil, err
	}
	return &Renderer{
		screen: screen,
		colors: colors,
		glyphs: palette.Glyphs,
		locale: locale,
	}, nil
}

// Render draws the level centered on the current room, then the footer.
func (r *Renderer) Render(level *world.Level, view View) {
	r.screen.Clear()
	width, height := r.screen.Size()
	mapHeight := max(height-footerRows, 0)

	plan := Plot(level)
	for c, tile := range plan.Tiles {
		if x, y, ok := ScreenPos(plan, c, width, height); ok {
			r.screen.SetContent(x, y, TileGlyph(r.glyphs, tile), r.tileStyle(tile))
		}
	}

	r.renderFooter(level, view, width, mapHeight)
	r.screen.Show()
}

func (r *Renderer) renderFooter(level *world.Level, view View, width, y int) {
	text := tcell.StyleDefault.Background(r.colors.Background).Foreground(r.colors.Text)

	status := r.locale.Get("The level is empty.")
	if !level.IsEmpty() {
		status = r.locale.Get("[%s] %s | rooms: %d | corridors: %d",
			view.Mode, level.Current(), len(level.Rooms()), len(level.Corridors()))
	}
	r.screen.DrawText(0, y, width, status, text.Bold(true))

	msgStyle := text
	if view.Failed {
		msgStyle = msgStyle.Foreground(r.colors.Error)
	}
	r.screen.DrawText(0, y+1, width, view.Message, msgStyle)

	prompt := r.locale.Get("Press : for a command, arrows to move the focus, q to quit.")
	if view.Editing {
		prompt = ":" + view.Prompt
	}
	r.screen.DrawText(0, y+2, width, prompt, text)
}

// RenderMessage displays a message at the bottom of the screen.
func (r *Renderer) RenderMessage(msg string, y int) {
	width, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(r.colors.Text)
	r.screen.DrawText(0, y, width, msg, style)
}

// TileGlyph returns the character drawn for a tile.
func TileGlyph(g gamedata.Glyphs, tile Tile) rune {
	switch {
	case tile.Populated:
		return gamedata.GlyphRune(g.Populated)
	case tile.Kind == TileRoom:
		return gamedata.GlyphRune(g.Room)
	case tile.Kind == TileCorridorNS:
		return gamedata.GlyphRune(g.CorridorNS)
	case tile.Kind == TileCorridorEW:
		return gamedata.GlyphRune(g.CorridorEW)
	default:
		return ' '
	}
}

// tileStyle returns the appropriate style for a tile.
func (r *Renderer) tileStyle(tile Tile) tcell.Style {
	style := tcell.StyleDefault.Background(r.colors.Background)
	switch {
	case tile.Current:
		return style.Foreground(r.colors.Current).Bold(true)
	case tile.Populated:
		return style.Foreground(r.colors.Populated)
	case tile.Kind == TileRoom:
		return style.Foreground(r.colors.Room)
	default:
		return style.Foreground(r.colors.Corridor)
	}
}

// ScreenPos returns where a grid cell is drawn for the given plan and screen
// size, and whether it is inside the map area.
func ScreenPos(plan Plan, c geometry.Coord, width, height int) (x, y int, ok bool) {
	mapHeight := max(height-footerRows, 0)
	x = width/2 + c.X - plan.Focus.X
	y = mapHeight/2 + c.Y - plan.Focus.Y
	return x, y, x >= 0 && x < width && y >= 0 && y < mapHeight
}
