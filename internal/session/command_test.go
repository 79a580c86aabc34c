package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		cmd   string
		args  map[string]any
		words []string
	}{
		{
			name: "strings and quoted spaces",
			line: `add_room name=Hall description="A long hall" room_from=Gate direction=east`,
			cmd:  "add_room",
			args: map[string]any{"name": "Hall", "description": "A long hall", "room_from": "Gate", "direction": "east"},
		},
		{
			name: "numbers",
			line: "add_corridor room_from_name=A room_to_name=B corridor_length=3 direction=south",
			cmd:  "add_corridor",
			args: map[string]any{"room_from_name": "A", "room_to_name": "B", "corridor_length": 3.0, "direction": "south"},
		},
		{
			name: "negative number",
			line: "get_encounter name=A cell_index=-1",
			cmd:  "get_encounter",
			args: map[string]any{"name": "A", "cell_index": -1.0},
		},
		{
			name: "quoted number stays a string",
			line: `add_room name="12" description=x room_from="" direction=""`,
			cmd:  "add_room",
			args: map[string]any{"name": "12", "description": "x", "room_from": "", "direction": ""},
		},
		{
			name: "escaped quote",
			line: `update_room room_reference_name=A name=A description="say \"hi\""`,
			cmd:  "update_room",
			args: map[string]any{"room_reference_name": "A", "name": "A", "description": `say "hi"`},
		},
		{
			name: "infinity is a name",
			line: "remove_room name=inf",
			cmd:  "remove_room",
			args: map[string]any{"name": "inf"},
		},
		{
			name:  "bare words",
			line:  "  save   out.json ",
			cmd:   "save",
			words: []string{"out.json"},
		},
		{
			name: "blank line",
			line: "   ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCommand(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.cmd, cmd.Name)
			assert.Equal(t, tt.args, cmd.Args)
			assert.Equal(t, tt.words, cmd.Words)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	for _, line := range []string{
		`add_room name="unterminated`,
		"add_room name=A name=B",
		"add_room =A",
	} {
		_, err := ParseCommand(line)
		assert.ErrorIs(t, err, ErrSyntax, line)
	}
}

func TestCommandJSON(t *testing.T) {
	cmd, err := ParseCommand(`add_corridor room_to_name=B corridor_length=2 room_from_name=A`)
	require.NoError(t, err)
	raw, err := cmd.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"room_from_name":"A","room_to_name":"B","corridor_length":2}`, string(raw))

	cmd, err = ParseCommand("describe_level")
	require.NoError(t, err)
	raw, err = cmd.JSON()
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))

	cmd, err = ParseCommand("remove_room A")
	require.NoError(t, err)
	_, err = cmd.JSON()
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "view", ModeView.String())
	assert.Equal(t, "command", ModeCommand.String())
	assert.Equal(t, "unknown", Mode(9).String())
}
