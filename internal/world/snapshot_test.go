package world

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samdwyer/dungeonwright/internal/encounter"
	"github.com/samdwyer/dungeonwright/internal/geometry"
)

func TestSnapshotRestore(t *testing.T) {
	l := square(t)
	_, err := l.AddCorridor(context.Background(), "D", "A", 2, "north")
	require.NoError(t, err)
	a, _ := l.Room("A")
	require.NoError(t, a.Encounter.Add(&encounter.Treasure{Name: "Chest", Description: "oak", Loot: "gold"}))
	a.Sprite = "a.png"

	snap := l.Snapshot()
	data, err := json.Marshal(snap)
	require.NoError(t, err)
	var decoded Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))

	restored, err := Restore(DefaultLimits(), decoded)
	require.NoError(t, err)
	assert.Equal(t, snap, restored.Snapshot())
	assert.Equal(t, "D-A", restored.Current())
	assert.Equal(t, l.String(), restored.String())
}

func TestSnapshotIsIndependent(t *testing.T) {
	l := square(t)
	snap := l.Snapshot()
	a, _ := l.Room("A")
	require.NoError(t, a.Encounter.Add(&encounter.Enemy{Name: "Rat"}))
	assert.Empty(t, snap.Rooms[0].Encounter.Enemies)
}

func TestRestoreEmpty(t *testing.T) {
	l, err := Restore(DefaultLimits(), Snapshot{})
	require.NoError(t, err)
	assert.True(t, l.IsEmpty())
	assert.Equal(t, "", l.Current())
}

func TestRestoreRejectsInconsistentSnapshots(t *testing.T) {
	base := func(t *testing.T) Snapshot {
		return buildLevel(t, DefaultLimits(),
			step{"A", "", ""},
			step{"B", "A", "east"},
		).Snapshot()
	}
	tests := []struct {
		name   string
		mutate func(*Snapshot)
		kind   Kind
	}{
		{"duplicate room", func(s *Snapshot) { s.Rooms = append(s.Rooms, s.Rooms[0]) }, KindConflict},
		{"missing endpoint", func(s *Snapshot) { s.Corridors[0].To = "Z" }, KindInput},
		{"unknown current", func(s *Snapshot) { s.Current = "Z" }, KindInput},
		{"overlapping rooms", func(s *Snapshot) { s.Rooms[1].Coord = geometry.Origin }, KindGeometric},
		{"misplaced cell", func(s *Snapshot) { s.Corridors[0].Cells[1] = geometry.Coord{X: 2, Y: 1} }, KindGeometric},
		{"invalid direction", func(s *Snapshot) { s.Corridors[0].Direction = geometry.Direction(7) }, KindInput},
		{"hanging room", func(s *Snapshot) {
			s.Rooms = append(s.Rooms, RoomRecord{Name: "C", Description: "far", Coord: geometry.Coord{X: 9, Y: 9}})
		}, KindGeometric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := base(t)
			tt.mutate(&snap)
			_, err := Restore(DefaultLimits(), snap)
			assertKind(t, err, tt.kind)
		})
	}
}

func TestRestoreRejectsRoomNamedLikeCorridor(t *testing.T) {
	snap := buildLevel(t, DefaultLimits(),
		step{"A", "", ""},
		step{"B", "A", "east"},
	).Snapshot()
	snap.Rooms = append(snap.Rooms, RoomRecord{Name: "A-B", Description: "far", Coord: geometry.Coord{X: 9, Y: 9}})

	_, err := Restore(DefaultLimits(), snap)
	assertKind(t, err, KindGeometric)
	assert.Contains(t, err.Error(), "corridor A-B shares its name with a room")
}

func TestRestoreRejectsBadLimits(t *testing.T) {
	_, err := Restore(Limits{CorridorMinLength: 3, CorridorMaxLength: 2, MaxDegree: 4}, Snapshot{})
	assert.True(t, errors.Is(err, ErrInput))
}

func TestLimitsValidate(t *testing.T) {
	tests := []struct {
		limits Limits
		ok     bool
	}{
		{DefaultLimits(), true},
		{Limits{CorridorMinLength: 1, CorridorMaxLength: 1, MaxDegree: 1}, true},
		{Limits{CorridorMinLength: 0, CorridorMaxLength: 4, MaxDegree: 4}, false},
		{Limits{CorridorMinLength: 3, CorridorMaxLength: 2, MaxDegree: 4}, false},
		{Limits{CorridorMinLength: 2, CorridorMaxLength: 4, MaxDegree: 5}, false},
	}
	for _, tt := range tests {
		err := tt.limits.Validate()
		assert.Equal(t, tt.ok, err == nil, "%+v: %v", tt.limits, err)
	}
}

func TestErrorMatching(t *testing.T) {
	err := conflictErr("B already exists")
	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrInput))
	assert.Equal(t, "B already exists", err.Error())

	_, ok := KindOf(errors.New("plain"))
	assert.False(t, ok)
	assert.Equal(t, "geometric", KindGeometric.String())
}
