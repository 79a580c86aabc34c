package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samdwyer/dungeonwright/internal/geometry"
	"github.com/samdwyer/dungeonwright/internal/world"
)

type noArgs struct{}

type roomArgs struct {
	RoomName string `json:"room_name"`
}

type encounterArgs struct {
	Name      string `json:"name"`
	CellIndex int    `json:"cell_index"`
}

type focusArgs struct {
	Name string `json:"name"`
}

func queryFunctions() []Function {
	fs := []Function{
		define("describe_level", "Describe every room and corridor of the level and the current room.",
			nil,
			func(_ context.Context, _ *Toolbox, level *world.Level, _ noArgs) (string, error) {
				if level.IsEmpty() {
					return "The level is empty.", nil
				}
				return level.String(), nil
			}),
		define("get_corridor", "Describe the corridor between two rooms, named in either order.",
			[]string{"room_from_name", "room_to_name"},
			func(_ context.Context, _ *Toolbox, level *world.Level, a removeCorridorArgs) (string, error) {
				c, ok := level.GetCorridor(a.RoomFromName, a.RoomToName)
				if !ok {
					return "", fmt.Errorf("there is no corridor between %s and %s", a.RoomFromName, a.RoomToName)
				}
				return describeCorridor(level, c), nil
			}),
		define("get_room_connections", "List the rooms connected to a room and the corridors joining them.",
			[]string{"room_name"},
			func(_ context.Context, _ *Toolbox, level *world.Level, a roomArgs) (string, error) {
				return describeConnections(level, a.RoomName)
			}),
		define("get_encounter", "Describe the entities of a room or corridor cell. "+cellHelp,
			[]string{"name", "cell_index"},
			func(_ context.Context, _ *Toolbox, level *world.Level, a encounterArgs) (string, error) {
				e, err := encounterAt(level, a.Name, a.CellIndex)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%s:%s", location(level, a.Name, a.CellIndex), e), nil
			}),
		define("set_current_room", "Move the focus to a room or corridor.",
			[]string{"name"},
			func(_ context.Context, _ *Toolbox, level *world.Level, a focusArgs) (string, error) {
				if a.Name == "" {
					return "", errors.New("parameter name should be provided")
				}
				if err := level.SetCurrent(a.Name); err != nil {
					return "", err
				}
				return fmt.Sprintf("Current room is now %s.", a.Name), nil
			}),
	}
	for i := range fs {
		fs[i].ReadOnly = fs[i].Name != "set_current_room"
	}
	return fs
}

func describeCorridor(level *world.Level, c *world.Corridor) string {
	from, to := level.Endpoints(c)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: from %s to %s going %s, %d cells long;",
		level.CorridorName(c), from.Name, to.Name, c.Direction, c.Length)
	for i, e := range c.Encounters {
		fmt.Fprintf(&sb, "\nCell %d %s", i+1, e)
	}
	return sb.String()
}

func describeConnections(level *world.Level, room string) (string, error) {
	if room == "" {
		return "", errors.New("parameter room_name should be provided")
	}
	neighbors, ok := level.Connections(room)
	if !ok {
		return "", fmt.Errorf("%s is not a valid room name", room)
	}
	if len(neighbors) == 0 {
		return fmt.Sprintf("%s has no connections.", room), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s connections:", room)
	for _, d := range geometry.AllDirections() {
		other, ok := neighbors[d]
		if !ok {
			continue
		}
		c, _ := level.GetCorridor(room, other)
		fmt.Fprintf(&sb, "\n%s: %s via %s", d, other, level.CorridorName(c))
	}
	return sb.String(), nil
}
