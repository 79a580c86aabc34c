package tools

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeonwright/internal/encounter"
	"github.com/samdwyer/dungeonwright/internal/gamedata"
	"github.com/samdwyer/dungeonwright/internal/world"
)

func newToolbox(t *testing.T) *Toolbox {
	t.Helper()
	tb, err := NewDefault(WithRand(rand.New(rand.NewSource(7))))
	require.NoError(t, err)
	return tb
}

func call(t *testing.T, tb *Toolbox, level *world.Level, name, args string) (string, error) {
	t.Helper()
	return tb.Call(context.Background(), level, name, json.RawMessage(args))
}

func mustCall(t *testing.T, tb *Toolbox, level *world.Level, name, args string) string {
	t.Helper()
	msg, err := call(t, tb, level, name, args)
	require.NoError(t, err, "%s %s", name, args)
	return msg
}

// corridorLevel builds A with B to the east, joined by the 2-cell corridor A-B.
func corridorLevel(t *testing.T, tb *Toolbox) *world.Level {
	t.Helper()
	level := world.NewLevel(world.DefaultLimits())
	mustCall(t, tb, level, "add_room", `{"name":"A","description":"hall","room_from":"","direction":""}`)
	mustCall(t, tb, level, "add_room", `{"name":"B","description":"crypt","room_from":"A","direction":"east"}`)
	return level
}

const goblin = `"name":"Snag","description":"small","species":"goblin","hp":5,"dodge":0.3,"prot":0.1,"spd":0.5`

func TestFunctionsAreSortedAndComplete(t *testing.T) {
	tb := newToolbox(t)
	var names []string
	for _, f := range tb.Functions() {
		names = append(names, f.Name)
	}
	assert.IsNonDecreasing(t, names)
	for _, name := range []string{
		"add_room", "remove_room", "update_room",
		"add_corridor", "remove_corridor", "update_corridor",
		"add_enemy", "add_trap", "add_treasure", "remove_entity", "spawn_enemy",
		"describe_level", "get_corridor", "get_encounter",
	} {
		_, ok := tb.Lookup(name)
		assert.True(t, ok, name)
	}

	f, _ := tb.Lookup("describe_level")
	assert.True(t, f.ReadOnly)
	f, _ = tb.Lookup("set_current_room")
	assert.False(t, f.ReadOnly)
	f, _ = tb.Lookup("add_room")
	assert.False(t, f.ReadOnly)
}

func TestLevelFunctions(t *testing.T) {
	tb := newToolbox(t)
	level := corridorLevel(t, tb)

	msg := mustCall(t, tb, level, "add_room", `{"name":"C","description":"vault","room_from":"B","direction":"south"}`)
	assert.Equal(t, "Added C to the level.", msg)

	msg = mustCall(t, tb, level, "update_room", `{"room_reference_name":"C","name":"Vault","description":"vault"}`)
	assert.Equal(t, "Updated C.", msg)

	msg = mustCall(t, tb, level, "update_corridor",
		`{"room_from_reference_name":"B","room_to_reference_name":"Vault","room_from_name":"B","room_to_name":"Vault","corridor_length":4,"direction":"south"}`)
	assert.Equal(t, "Updated corridor between B and Vault.", msg)
	c, ok := level.GetCorridor("Vault", "B")
	require.True(t, ok)
	assert.Equal(t, 4, c.Length)

	msg = mustCall(t, tb, level, "remove_corridor", `{"room_from_name":"Vault","room_to_name":"B"}`)
	assert.Equal(t, "Removed corridor between Vault and B.", msg)
	_, ok = level.Room("Vault")
	assert.False(t, ok)

	msg = mustCall(t, tb, level, "remove_room", `{"name":"B"}`)
	assert.Equal(t, "B has been removed from the dungeon.", msg)
	assert.Equal(t, "A", level.Current())
	require.NoError(t, level.Validate())
}

func TestCallErrors(t *testing.T) {
	tb := newToolbox(t)
	level := corridorLevel(t, tb)

	tests := []struct {
		name    string
		fn      string
		args    string
		target  error
		message string
	}{
		{
			name:    "unknown function",
			fn:      "add_dragon",
			args:    `{}`,
			target:  ErrUnknownFunction,
			message: "Function add_dragon not found.",
		},
		{
			name:   "missing argument",
			fn:     "remove_room",
			args:   `{}`,
			target: ErrArguments,
		},
		{
			name:   "unknown argument",
			fn:     "remove_room",
			args:   `{"name":"A","force":true}`,
			target: ErrArguments,
		},
		{
			name:   "not an object",
			fn:     "remove_room",
			args:   `["A"]`,
			target: ErrArguments,
		},
		{
			name:    "domain rejection",
			fn:      "add_room",
			args:    `{"name":"B","description":"again","room_from":"A","direction":"north"}`,
			target:  world.ErrConflict,
			message: "Domain validation error: could not add B to the level: B already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := call(t, tb, level, tt.fn, tt.args)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
			if tt.message != "" {
				assert.Equal(t, tt.message, Message(tt.fn, err))
			}
		})
	}

	msg := tb.TryCall(context.Background(), level, "remove_room", nil)
	assert.Contains(t, msg, "Missing arguments:")
	assert.Contains(t, msg, "name")
}

func TestAddEntities(t *testing.T) {
	tb := newToolbox(t)
	level := corridorLevel(t, tb)

	msg := mustCall(t, tb, level, "add_enemy", `{"room_name":"A","cell_index":-1,`+goblin+`}`)
	assert.Equal(t, "Added Snag to A.", msg)
	assert.Equal(t, "A", level.Current())

	msg = mustCall(t, tb, level, "add_trap",
		`{"corridor_name":"A-B","cell_index":2,"name":"Pit","description":"deep","effect":"falls","chance":0.5,"dmg":2}`)
	assert.Equal(t, "Added Pit to A-B in cell 2.", msg)
	assert.Equal(t, "A-B", level.Current())

	msg = mustCall(t, tb, level, "add_treasure",
		`{"room_name":"B","cell_index":-1,"name":"Chest","description":"oak","loot":"gold","trapped_chance":0.2,"dmg":1}`)
	assert.Equal(t, "Added Chest to B.", msg)

	a, err := level.EncounterAt("A", world.RoomCell)
	require.NoError(t, err)
	require.Len(t, a.Enemies, 1)
	assert.Equal(t, 5.0, a.Enemies[0].MaxHP)

	cell, err := level.EncounterAt("A-B", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, cell.Count(encounter.KindTrap))
}

func TestAddEntitiesRejected(t *testing.T) {
	tb := newToolbox(t)
	level := corridorLevel(t, tb)
	mustCall(t, tb, level, "add_treasure",
		`{"room_name":"A","cell_index":-1,"name":"Chest","description":"oak","loot":"gold","trapped_chance":0,"dmg":0}`)

	tests := []struct {
		name string
		fn   string
		args string
	}{
		{"hp out of range", "add_enemy", `{"room_name":"A","cell_index":-1,"name":"X","description":"x","species":"x","hp":50,"dodge":0.3,"prot":0.1,"spd":0.5}`},
		{"dodge out of range", "add_enemy", `{"room_name":"A","cell_index":-1,"name":"X","description":"x","species":"x","hp":5,"dodge":1,"prot":0.1,"spd":0.5}`},
		{"empty species", "add_enemy", `{"room_name":"A","cell_index":-1,"name":"X","description":"x","species":"","hp":5,"dodge":0.3,"prot":0.1,"spd":0.5}`},
		{"unknown room", "add_enemy", `{"room_name":"Z","cell_index":-1,` + goblin + `}`},
		{"corridor cell out of range", "add_enemy", `{"room_name":"A-B","cell_index":3,` + goblin + `}`},
		{"corridor cell zero", "add_enemy", `{"room_name":"A-B","cell_index":0,` + goblin + `}`},
		{"trap in a room", "add_trap", `{"corridor_name":"A","cell_index":-1,"name":"Pit","description":"d","effect":"e","chance":0.5,"dmg":1}`},
		{"trap chance out of range", "add_trap", `{"corridor_name":"A-B","cell_index":1,"name":"Pit","description":"d","effect":"e","chance":1.5,"dmg":1}`},
		{"second treasure", "add_treasure", `{"room_name":"A","cell_index":-1,"name":"Urn","description":"clay","loot":"coins","trapped_chance":0,"dmg":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := level.Snapshot()
			_, err := call(t, tb, level, tt.fn, tt.args)
			require.Error(t, err)
			assert.False(t, errors.Is(err, ErrArguments))
			assert.Equal(t, before, level.Snapshot())
		})
	}
}

func TestEnemyCapacity(t *testing.T) {
	tb := newToolbox(t)
	level := corridorLevel(t, tb)
	for _, name := range []string{"E1", "E2", "E3", "E4"} {
		mustCall(t, tb, level, "spawn_enemy", `{"room_name":"B","cell_index":-1,"name":"`+name+`"}`)
	}
	_, err := call(t, tb, level, "spawn_enemy", `{"room_name":"B","cell_index":-1,"name":"E5"}`)
	require.Error(t, err)
	assert.ErrorIs(t, err, encounter.ErrFull)

	_, err = call(t, tb, level, "add_enemy", `{"room_name":"A-B","cell_index":1,"name":"E1","description":"d","species":"s","hp":1,"dodge":0.5,"prot":0.5,"spd":0.5}`)
	require.NoError(t, err, "names only need to be unique within one encounter")
}

func TestSpawnEnemy(t *testing.T) {
	tb := newToolbox(t)
	level := corridorLevel(t, tb)

	msg := mustCall(t, tb, level, "spawn_enemy", `{"room_name":"A","cell_index":-1,"name":"Grim","template":"orc"}`)
	assert.Equal(t, "Added Grim to A.", msg)
	e, err := level.EncounterAt("A", world.RoomCell)
	require.NoError(t, err)
	require.Len(t, e.Enemies, 1)
	assert.Equal(t, "orc", e.Enemies[0].Species)
	assert.Equal(t, 12.0, e.Enemies[0].HP)

	_, err = call(t, tb, level, "spawn_enemy", `{"room_name":"A","cell_index":-1,"name":"Nope","template":"dragon"}`)
	assert.Error(t, err)
}

func TestUpdateAndRemoveEntities(t *testing.T) {
	tb := newToolbox(t)
	level := corridorLevel(t, tb)
	mustCall(t, tb, level, "add_enemy", `{"room_name":"A","cell_index":-1,`+goblin+`}`)
	mustCall(t, tb, level, "add_trap",
		`{"corridor_name":"A-B","cell_index":1,"name":"Pit","description":"deep","effect":"falls","chance":0.5,"dmg":2}`)

	e, err := level.EncounterAt("A", world.RoomCell)
	require.NoError(t, err)
	e.Enemies[0].Sprite = "snag.png"

	msg := mustCall(t, tb, level, "update_enemy_properties",
		`{"room_name":"A","cell_index":-1,"reference_name":"Snag","name":"Snag","description":"small","species":"goblin","hp":7,"dodge":0.3,"prot":0.1,"spd":0.5}`)
	assert.Equal(t, "Updated Snag properties.", msg)
	assert.Equal(t, 7.0, e.Enemies[0].HP)
	assert.Equal(t, "snag.png", e.Enemies[0].Sprite, "unchanged description keeps the handle")

	mustCall(t, tb, level, "update_enemy_properties",
		`{"room_name":"A","cell_index":-1,"reference_name":"Snag","name":"Snog","description":"tall","species":"goblin","hp":7,"dodge":0.3,"prot":0.1,"spd":0.5}`)
	assert.Equal(t, "Snog", e.Enemies[0].Name)
	assert.Empty(t, e.Enemies[0].Sprite)

	mustCall(t, tb, level, "update_trap_properties",
		`{"corridor_name":"A-B","cell_index":1,"reference_name":"Pit","name":"Spikes","description":"sharp","effect":"bleeds","chance":0.3,"dmg":3}`)

	_, err = call(t, tb, level, "update_treasure_properties",
		`{"room_name":"A","cell_index":-1,"reference_name":"Chest","name":"Chest","description":"oak","loot":"gold","trapped_chance":0,"dmg":0}`)
	assert.ErrorIs(t, err, encounter.ErrNotFound)

	msg = mustCall(t, tb, level, "remove_entity", `{"room_name":"A-B","cell_index":1,"entity_name":"Spikes","entity_type":"trap"}`)
	assert.Equal(t, "Removed Spikes from A-B.", msg)

	_, err = call(t, tb, level, "remove_entity", `{"room_name":"A","cell_index":-1,"entity_name":"Snog","entity_type":"dragon"}`)
	assert.Error(t, err)
	_, err = call(t, tb, level, "remove_entity", `{"room_name":"A","cell_index":-1,"entity_name":"Snag","entity_type":"enemy"}`)
	assert.ErrorIs(t, err, encounter.ErrNotFound)
	mustCall(t, tb, level, "remove_entity", `{"room_name":"A","cell_index":-1,"entity_name":"Snog","entity_type":"enemy"}`)
	assert.Zero(t, e.Len())
}

func TestQueries(t *testing.T) {
	tb := newToolbox(t)
	empty := world.NewLevel(world.DefaultLimits())
	assert.Equal(t, "The level is empty.", mustCall(t, tb, empty, "describe_level", ``))

	level := corridorLevel(t, tb)
	mustCall(t, tb, level, "add_trap",
		`{"corridor_name":"A-B","cell_index":1,"name":"Pit","description":"deep","effect":"falls","chance":0.5,"dmg":2}`)

	desc := mustCall(t, tb, level, "describe_level", `{}`)
	assert.Contains(t, desc, "A: hall;")
	assert.Contains(t, desc, "A-B: from A to B, 2 cells long;")

	msg := mustCall(t, tb, level, "get_corridor", `{"room_from_name":"B","room_to_name":"A"}`)
	assert.Contains(t, msg, "A-B: from A to B going east, 2 cells long;")
	assert.Contains(t, msg, "Pit")
	_, err := call(t, tb, level, "get_corridor", `{"room_from_name":"A","room_to_name":"Z"}`)
	assert.Error(t, err)

	msg = mustCall(t, tb, level, "get_room_connections", `{"room_name":"B"}`)
	assert.Equal(t, "B connections:\nwest: A via A-B", msg)

	msg = mustCall(t, tb, level, "get_encounter", `{"name":"A-B","cell_index":1}`)
	assert.Contains(t, msg, "A-B in cell 1:")
	assert.Contains(t, msg, "trap: Pit")

	msg = mustCall(t, tb, level, "set_current_room", `{"name":"B"}`)
	assert.Equal(t, "Current room is now B.", msg)
	assert.Equal(t, "B", level.Current())
	_, err = call(t, tb, level, "set_current_room", `{"name":"Z"}`)
	assert.ErrorIs(t, err, world.ErrInput)
}

func TestNewWithCustomBounds(t *testing.T) {
	bounds := gamedata.MustLoadBounds()
	bounds.HP = gamedata.Range{Min: 1, Max: 100}
	bestiary := gamedata.NewBestiary([]gamedata.EnemyTemplate{{ID: "ogre", Species: "ogre", Description: "big", HP: 60, SpawnWeight: 1}})
	tb := New(bounds, bestiary)
	level := corridorLevel(t, tb)

	mustCall(t, tb, level, "add_enemy", `{"room_name":"A","cell_index":-1,"name":"Big","description":"d","species":"ogre","hp":80,"dodge":0.3,"prot":0.1,"spd":0.5}`)
	msg := mustCall(t, tb, level, "spawn_enemy", `{"room_name":"A","cell_index":-1,"name":"Bigger"}`)
	assert.Equal(t, "Added Bigger to A.", msg)
}
