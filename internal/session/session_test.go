package session

import (
	"context"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeonwright/internal/geometry"
	"github.com/samdwyer/dungeonwright/internal/tools"
	"github.com/samdwyer/dungeonwright/internal/world"
)

const (
	addA = `add_room name=A description=hall room_from="" direction=""`
	addB = `add_room name=B description="a dark crypt" room_from=A direction=east`
)

func newSession(t *testing.T) *Session {
	t.Helper()
	tb, err := tools.NewDefault(tools.WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	return New(world.DefaultLimits(), tb, filepath.Join(t.TempDir(), "level.json"))
}

func exec(t *testing.T, s *Session, line string) Result {
	t.Helper()
	return s.Exec(context.Background(), line)
}

func mustExec(t *testing.T, s *Session, line string) string {
	t.Helper()
	res := exec(t, s, line)
	require.False(t, res.Failed, "%s: %s", line, res.Message)
	return res.Message
}

func TestExecEdits(t *testing.T) {
	s := newSession(t)

	assert.Equal(t, "Added A to the level.", mustExec(t, s, addA))
	assert.Equal(t, "Added B to the level.", mustExec(t, s, addB))
	assert.Equal(t, []string{addA, addB}, s.Transcript())

	desc := mustExec(t, s, "describe_level")
	assert.Contains(t, desc, "B: a dark crypt;")
	assert.Len(t, s.Transcript(), 2, "queries are not recorded")

	res := exec(t, s, `add_room name=B description=again room_from=A direction=north`)
	assert.True(t, res.Failed)
	assert.True(t, strings.HasPrefix(res.Message, "Domain validation error: "), res.Message)

	res = exec(t, s, "summon name=A")
	assert.True(t, res.Failed)
	assert.Equal(t, "Function summon not found.", res.Message)

	res = exec(t, s, "remove_room")
	assert.True(t, res.Failed)
	assert.True(t, strings.HasPrefix(res.Message, "Missing arguments: "), res.Message)

	res = exec(t, s, `add_room name="x`)
	assert.True(t, res.Failed)

	assert.Equal(t, []string{addA, addB}, s.Transcript())
	require.NoError(t, s.Level().Validate())
}

func TestExecBuiltins(t *testing.T) {
	s := newSession(t)

	assert.Equal(t, Result{}, exec(t, s, ""))
	assert.True(t, exec(t, s, "quit").Quit)
	assert.True(t, exec(t, s, "exit").Quit)

	help := mustExec(t, s, "help")
	assert.Contains(t, help, "add_room")
	assert.Contains(t, help, "undo")

	help = mustExec(t, s, "help add_room")
	assert.Contains(t, help, "Arguments: name, description, room_from, direction")

	assert.True(t, exec(t, s, "help summon").Failed)
}

func TestUndo(t *testing.T) {
	s := newSession(t)
	mustExec(t, s, addA)
	mustExec(t, s, addB)
	mustExec(t, s, "add_enemy room_name=B cell_index=-1 name=Snag description=small species=goblin hp=5 dodge=0.3 prot=0.1 spd=0.5")

	assert.Equal(t, "Undid add_enemy.", mustExec(t, s, "undo"))
	e, err := s.Level().EncounterAt("B", world.RoomCell)
	require.NoError(t, err)
	assert.Zero(t, e.Len())

	assert.Equal(t, "Undid add_room.", mustExec(t, s, "undo"))
	_, ok := s.Level().Room("B")
	assert.False(t, ok)
	assert.Equal(t, "A", s.Level().Current())
	assert.Equal(t, []string{addA}, s.Transcript())

	mustExec(t, s, "undo")
	assert.True(t, s.Level().IsEmpty())

	res := exec(t, s, "undo")
	assert.True(t, res.Failed)
	assert.Equal(t, "Nothing to undo.", res.Message)
}

func TestSaveAndLoad(t *testing.T) {
	s := newSession(t)
	mustExec(t, s, addA)
	mustExec(t, s, addB)

	path := filepath.Join(t.TempDir(), "saved.json")
	assert.Equal(t, "Saved level to "+path+".", mustExec(t, s, "save "+path))
	mustExec(t, s, "save")

	other := newSession(t)
	assert.Equal(t, "Loaded level from "+path+".", mustExec(t, other, "load "+path))
	assert.Equal(t, s.Level().Snapshot(), other.Level().Snapshot())
	assert.Equal(t, s.Transcript(), other.Transcript())
	assert.True(t, exec(t, other, "undo").Failed, "history does not survive a load")

	res := exec(t, other, "load "+filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, res.Failed)
	assert.Equal(t, s.Level().Snapshot(), other.Level().Snapshot())
}

func TestMoveFocus(t *testing.T) {
	s := newSession(t)
	assert.False(t, s.MoveFocus(geometry.East))

	mustExec(t, s, addA)
	mustExec(t, s, addB)
	require.Equal(t, "B", s.Level().Current())

	assert.True(t, s.MoveFocus(geometry.West))
	assert.Equal(t, "A", s.Level().Current())
	assert.False(t, s.MoveFocus(geometry.North))
	assert.Equal(t, "A", s.Level().Current())

	require.NoError(t, s.Level().SetCurrent("A-B"))
	assert.True(t, s.MoveFocus(geometry.East))
	assert.Equal(t, "B", s.Level().Current())

	require.NoError(t, s.Level().SetCurrent("A-B"))
	assert.False(t, s.MoveFocus(geometry.South))
	assert.True(t, s.MoveFocus(geometry.West))
	assert.Equal(t, "A", s.Level().Current())
}
