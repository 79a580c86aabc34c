package tools

import (
	"context"

	"github.com/samdwyer/dungeonwright/internal/world"
)

type addRoomArgs struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	RoomFrom    string `json:"room_from"`
	Direction   string `json:"direction"`
}

type removeRoomArgs struct {
	Name string `json:"name"`
}

type updateRoomArgs struct {
	RoomReferenceName string `json:"room_reference_name"`
	Name              string `json:"name"`
	Description       string `json:"description"`
}

type corridorArgs struct {
	RoomFromName   string `json:"room_from_name"`
	RoomToName     string `json:"room_to_name"`
	CorridorLength int    `json:"corridor_length"`
	Direction      string `json:"direction"`
}

type removeCorridorArgs struct {
	RoomFromName string `json:"room_from_name"`
	RoomToName   string `json:"room_to_name"`
}

type updateCorridorArgs struct {
	RoomFromReferenceName string `json:"room_from_reference_name"`
	RoomToReferenceName   string `json:"room_to_reference_name"`
	RoomFromName          string `json:"room_from_name"`
	RoomToName            string `json:"room_to_name"`
	CorridorLength        int    `json:"corridor_length"`
	Direction             string `json:"direction"`
}

func levelFunctions() []Function {
	return []Function{
		define("add_room",
			"Add a room to the level. If the level is not empty, a corridor is also created between the new room and an existing room.",
			[]string{"name", "description", "room_from", "direction"},
			func(ctx context.Context, _ *Toolbox, level *world.Level, a addRoomArgs) (string, error) {
				return level.AddRoom(ctx, a.Name, a.Description, a.RoomFrom, a.Direction)
			}),
		define("remove_room",
			"Remove a room from the level, with its corridors and every room left unreachable.",
			[]string{"name"},
			func(ctx context.Context, _ *Toolbox, level *world.Level, a removeRoomArgs) (string, error) {
				return level.RemoveRoom(ctx, a.Name)
			}),
		define("update_room",
			"Rename and redescribe an existing room.",
			[]string{"room_reference_name", "name", "description"},
			func(ctx context.Context, _ *Toolbox, level *world.Level, a updateRoomArgs) (string, error) {
				return level.UpdateRoom(ctx, a.RoomReferenceName, a.Name, a.Description)
			}),
		define("add_corridor",
			"Add a corridor between two existing rooms that line up with each other.",
			[]string{"room_from_name", "room_to_name", "corridor_length", "direction"},
			func(ctx context.Context, _ *Toolbox, level *world.Level, a corridorArgs) (string, error) {
				return level.AddCorridor(ctx, a.RoomFromName, a.RoomToName, a.CorridorLength, a.Direction)
			}),
		define("remove_corridor",
			"Remove the corridor between two rooms, with every room left unreachable.",
			[]string{"room_from_name", "room_to_name"},
			func(ctx context.Context, _ *Toolbox, level *world.Level, a removeCorridorArgs) (string, error) {
				return level.RemoveCorridor(ctx, a.RoomFromName, a.RoomToName)
			}),
		define("update_corridor",
			"Change the endpoints, length or direction of a corridor. Rooms beyond it move along. Corridors in a closed loop cannot be changed.",
			[]string{"room_from_reference_name", "room_to_reference_name", "room_from_name", "room_to_name", "corridor_length", "direction"},
			func(ctx context.Context, _ *Toolbox, level *world.Level, a updateCorridorArgs) (string, error) {
				return level.UpdateCorridor(ctx, a.RoomFromReferenceName, a.RoomToReferenceName,
					a.RoomFromName, a.RoomToName, a.CorridorLength, a.Direction)
			}),
	}
}
