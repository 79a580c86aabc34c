package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeonwright/internal/config"
	"github.com/samdwyer/dungeonwright/internal/gamedata"
	"github.com/samdwyer/dungeonwright/internal/store"
	"github.com/samdwyer/dungeonwright/internal/ui"
	"github.com/samdwyer/dungeonwright/internal/world"
)

const script = `# a bent level
add_room name=A description=hall room_from="" direction=""
add_room name=B description=crypt room_from=A direction=east

add_room name=C description=vault room_from=B direction=south
add_room name=B description=again room_from=A direction=north
`

func plain(t *testing.T) {
	t.Helper()
	enabled := color.Enable
	color.Enable = false
	t.Cleanup(func() { color.Enable = enabled })
}

func testConfig(t *testing.T) config.Config {
	return config.Config{
		Limits:   world.DefaultLimits(),
		SavePath: filepath.Join(t.TempDir(), "level.json"),
	}
}

func TestRunScript(t *testing.T) {
	plain(t)
	save := filepath.Join(t.TempDir(), "out.json")

	var out bytes.Buffer
	err := run(context.Background(), testConfig(t), options{save: save, describe: true}, strings.NewReader(script), &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "> add_room name=A description=hall room_from=\"\" direction=\"\"\nAdded A to the level.\n")
	assert.Contains(t, text, "Domain validation error: could not add B to the level: B already exists")
	assert.Contains(t, text, "#--#\n   |\n   |\n   #\n")
	assert.Contains(t, text, "Current room: C")
	assert.Contains(t, text, "Saved level to "+save+".")
	assert.NotContains(t, text, "# a bent level")

	level, transcript, err := store.Load(save, world.DefaultLimits())
	require.NoError(t, err)
	assert.Len(t, level.Rooms(), 3)
	assert.Len(t, transcript, 3)
}

func TestRunStrict(t *testing.T) {
	plain(t)
	var out bytes.Buffer
	err := run(context.Background(), testConfig(t), options{strict: true}, strings.NewReader(script), &out)
	assert.ErrorIs(t, err, errRejected)
	assert.Contains(t, err.Error(), "line 6")
}

func TestRunLoad(t *testing.T) {
	plain(t)
	cfg := testConfig(t)
	saved := filepath.Join(t.TempDir(), "start.json")
	require.NoError(t, run(context.Background(), cfg, options{save: saved}, strings.NewReader(script), &bytes.Buffer{}))

	var out bytes.Buffer
	err := run(context.Background(), cfg, options{load: saved},
		strings.NewReader("set_current_room name=A\nremove_corridor room_from_name=C room_to_name=B\nquit\nremove_room name=A\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Removed corridor between C and B.")
	assert.NotContains(t, out.String(), "remove_room")
	assert.Contains(t, out.String(), "\n#--#\n")
}

func TestPrintMap(t *testing.T) {
	plain(t)
	palette := gamedata.MustLoadPalette()

	var out bytes.Buffer
	printMap(&out, ui.Plot(world.NewLevel(world.DefaultLimits())), palette, 0)
	assert.Equal(t, "(empty level)\n", out.String())

	level := world.NewLevel(world.DefaultLimits())
	ctx := context.Background()
	_, err := level.AddRoom(ctx, "A", "hall", "", "")
	require.NoError(t, err)
	_, err = level.AddRoom(ctx, "B", "crypt", "A", "east")
	require.NoError(t, err)
	_, err = level.AddRoom(ctx, "C", "vault", "B", "south")
	require.NoError(t, err)

	out.Reset()
	printMap(&out, ui.Plot(level), palette, 2)
	assert.Equal(t, "-#\n |\n |\n #\n", out.String())
}
