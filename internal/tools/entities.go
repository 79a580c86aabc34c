package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/samdwyer/dungeonwright/internal/encounter"
	"github.com/samdwyer/dungeonwright/internal/world"
)

type enemyArgs struct {
	RoomName      string  `json:"room_name"`
	CellIndex     int     `json:"cell_index"`
	ReferenceName string  `json:"reference_name"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Species       string  `json:"species"`
	HP            float64 `json:"hp"`
	Dodge         float64 `json:"dodge"`
	Prot          float64 `json:"prot"`
	Spd           float64 `json:"spd"`
}

type trapArgs struct {
	CorridorName  string  `json:"corridor_name"`
	CellIndex     int     `json:"cell_index"`
	ReferenceName string  `json:"reference_name"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Effect        string  `json:"effect"`
	Chance        float64 `json:"chance"`
	Dmg           float64 `json:"dmg"`
}

type treasureArgs struct {
	RoomName      string  `json:"room_name"`
	CellIndex     int     `json:"cell_index"`
	ReferenceName string  `json:"reference_name"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Loot          string  `json:"loot"`
	TrappedChance float64 `json:"trapped_chance"`
	Dmg           float64 `json:"dmg"`
}

type removeEntityArgs struct {
	RoomName   string `json:"room_name"`
	CellIndex  int    `json:"cell_index"`
	EntityName string `json:"entity_name"`
	EntityType string `json:"entity_type"`
}

type spawnArgs struct {
	RoomName  string `json:"room_name"`
	CellIndex int    `json:"cell_index"`
	Name      string `json:"name"`
	Template  string `json:"template"` // Bestiary id, random when empty
}

const cellHelp = "Set cell_index to -1 when targeting a room, otherwise to a value between 1 and the length of the corridor."

func entityFunctions() []Function {
	return []Function{
		define("add_enemy", "Add an enemy to a room or corridor. "+cellHelp,
			[]string{"room_name", "cell_index", "name", "description", "species", "hp", "dodge", "prot", "spd"},
			func(_ context.Context, tb *Toolbox, level *world.Level, a enemyArgs) (string, error) {
				enemy, err := tb.enemy(a)
				if err != nil {
					return "", err
				}
				return place(level, a.RoomName, a.CellIndex, enemy)
			}),
		define("add_trap", "Add a trap to a corridor cell.",
			[]string{"corridor_name", "cell_index", "name", "description", "effect", "chance", "dmg"},
			func(_ context.Context, tb *Toolbox, level *world.Level, a trapArgs) (string, error) {
				trap, err := tb.trap(level, a)
				if err != nil {
					return "", err
				}
				return place(level, a.CorridorName, a.CellIndex, trap)
			}),
		define("add_treasure", "Add a treasure to a room or corridor. "+cellHelp,
			[]string{"room_name", "cell_index", "name", "description", "loot", "trapped_chance", "dmg"},
			func(_ context.Context, tb *Toolbox, level *world.Level, a treasureArgs) (string, error) {
				treasure, err := tb.treasure(a)
				if err != nil {
					return "", err
				}
				return place(level, a.RoomName, a.CellIndex, treasure)
			}),
		define("update_enemy_properties", "Update the properties of an enemy. "+cellHelp,
			[]string{"room_name", "cell_index", "reference_name", "name", "description", "species", "hp", "dodge", "prot", "spd"},
			func(_ context.Context, tb *Toolbox, level *world.Level, a enemyArgs) (string, error) {
				enemy, err := tb.enemy(a)
				if err != nil {
					return "", err
				}
				return replace(level, a.RoomName, a.CellIndex, a.ReferenceName, enemy)
			}),
		define("update_trap_properties", "Update the properties of a trap in a corridor cell.",
			[]string{"corridor_name", "cell_index", "reference_name", "name", "description", "effect", "chance", "dmg"},
			func(_ context.Context, tb *Toolbox, level *world.Level, a trapArgs) (string, error) {
				trap, err := tb.trap(level, a)
				if err != nil {
					return "", err
				}
				return replace(level, a.CorridorName, a.CellIndex, a.ReferenceName, trap)
			}),
		define("update_treasure_properties", "Update the properties of a treasure. "+cellHelp,
			[]string{"room_name", "cell_index", "reference_name", "name", "description", "loot", "trapped_chance", "dmg"},
			func(_ context.Context, tb *Toolbox, level *world.Level, a treasureArgs) (string, error) {
				treasure, err := tb.treasure(a)
				if err != nil {
					return "", err
				}
				return replace(level, a.RoomName, a.CellIndex, a.ReferenceName, treasure)
			}),
		define("remove_entity", "Remove an enemy, trap or treasure. "+cellHelp,
			[]string{"room_name", "cell_index", "entity_name", "entity_type"},
			func(_ context.Context, _ *Toolbox, level *world.Level, a removeEntityArgs) (string, error) {
				return remove(level, a)
			}),
		define("spawn_enemy", "Add an enemy built from a bestiary template, picked at random when template is empty. "+cellHelp,
			[]string{"room_name", "cell_index", "name"},
			func(_ context.Context, tb *Toolbox, level *world.Level, a spawnArgs) (string, error) {
				if a.Name == "" {
					return "", errors.New("enemy name should be provided")
				}
				template := tb.bestiary.SpawnRandom(tb.rng)
				if a.Template != "" {
					template = tb.bestiary.GetByID(a.Template)
				}
				if template == nil {
					return "", fmt.Errorf("unknown enemy template %q", a.Template)
				}
				return place(level, a.RoomName, a.CellIndex, template.Enemy(a.Name))
			}),
	}
}

func (tb *Toolbox) enemy(a enemyArgs) (*encounter.Enemy, error) {
	switch {
	case a.Name == "":
		return nil, errors.New("enemy name should be provided")
	case a.Description == "":
		return nil, errors.New("enemy description should be provided")
	case a.Species == "":
		return nil, errors.New("enemy species should be provided")
	}
	if err := errors.Join(
		tb.bounds.HP.Check("hp", a.HP),
		tb.bounds.Dodge.Check("dodge", a.Dodge),
		tb.bounds.Prot.Check("prot", a.Prot),
		tb.bounds.Spd.Check("spd", a.Spd),
	); err != nil {
		return nil, err
	}
	return &encounter.Enemy{
		Name:        a.Name,
		Description: a.Description,
		Species:     a.Species,
		HP:          a.HP,
		MaxHP:       a.HP,
		Dodge:       a.Dodge,
		Prot:        a.Prot,
		Spd:         a.Spd,
	}, nil
}

func (tb *Toolbox) trap(level *world.Level, a trapArgs) (*encounter.Trap, error) {
	switch {
	case a.CorridorName == "":
		return nil, errors.New("parameter corridor_name should be provided")
	case !level.IsCorridor(a.CorridorName):
		return nil, fmt.Errorf("%s is not a corridor; traps can only be placed in corridors", a.CorridorName)
	case a.Name == "":
		return nil, errors.New("trap name should be provided")
	case a.Description == "":
		return nil, errors.New("trap description should be provided")
	case a.Effect == "":
		return nil, errors.New("trap effect should be provided")
	}
	if err := errors.Join(
		tb.bounds.Chance.Check("chance", a.Chance),
		tb.bounds.Dmg.Check("dmg", a.Dmg),
	); err != nil {
		return nil, err
	}
	return &encounter.Trap{
		Name:        a.Name,
		Description: a.Description,
		Effect:      a.Effect,
		Chance:      a.Chance,
		Dmg:         a.Dmg,
	}, nil
}

func (tb *Toolbox) treasure(a treasureArgs) (*encounter.Treasure, error) {
	switch {
	case a.Name == "":
		return nil, errors.New("treasure name should be provided")
	case a.Description == "":
		return nil, errors.New("treasure description should be provided")
	case a.Loot == "":
		return nil, errors.New("treasure loot should be provided")
	}
	if err := errors.Join(
		tb.bounds.Chance.Check("trapped_chance", a.TrappedChance),
		tb.bounds.Dmg.Check("dmg", a.Dmg),
	); err != nil {
		return nil, err
	}
	return &encounter.Treasure{
		Name:          a.Name,
		Description:   a.Description,
		Loot:          a.Loot,
		TrappedChance: a.TrappedChance,
		Dmg:           a.Dmg,
	}, nil
}

// location describes where an entity sits, for messages.
func location(level *world.Level, target string, cell int) string {
	if level.IsCorridor(target) {
		return fmt.Sprintf("%s in cell %d", target, cell)
	}
	return target
}

func encounterAt(level *world.Level, target string, cell int) (*encounter.Encounter, error) {
	if target == "" {
		return nil, errors.New("parameter room_name should be provided")
	}
	return level.EncounterAt(target, cell)
}

// place adds an entity and moves the focus to where it was placed.
func place(level *world.Level, target string, cell int, entity encounter.Entity) (string, error) {
	e, err := encounterAt(level, target, cell)
	if err != nil {
		return "", err
	}
	if err := e.Add(entity); err != nil {
		return "", fmt.Errorf("could not add %s to %s: %w", entity.GetName(), location(level, target, cell), err)
	}
	if err := level.SetCurrent(target); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added %s to %s.", entity.GetName(), location(level, target, cell)), nil
}

func replace(level *world.Level, target string, cell int, ref string, entity encounter.Entity) (string, error) {
	if ref == "" {
		return "", errors.New("parameter reference_name should be provided")
	}
	e, err := encounterAt(level, target, cell)
	if err != nil {
		return "", err
	}
	if err := e.Replace(ref, entity); err != nil {
		return "", fmt.Errorf("could not update %s in %s: %w", ref, location(level, target, cell), err)
	}
	if err := level.SetCurrent(target); err != nil {
		return "", err
	}
	return fmt.Sprintf("Updated %s properties.", ref), nil
}

func remove(level *world.Level, a removeEntityArgs) (string, error) {
	if a.EntityName == "" {
		return "", errors.New("entity name should be provided")
	}
	kind, err := encounter.ParseKind(a.EntityType)
	if err != nil {
		return "", err
	}
	e, err := encounterAt(level, a.RoomName, a.CellIndex)
	if err != nil {
		return "", err
	}
	if err := e.Remove(kind, a.EntityName); err != nil {
		return "", fmt.Errorf("%s does not exist in %s: %w", a.EntityName, location(level, a.RoomName, a.CellIndex), err)
	}
	if err := level.SetCurrent(a.RoomName); err != nil {
		return "", err
	}
	return fmt.Sprintf("Removed %s from %s.", a.EntityName, a.RoomName), nil
}
