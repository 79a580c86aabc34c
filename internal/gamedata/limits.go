package gamedata

import (
	"github.com/samber/oops"

	"github.com/samdwyer/dungeonwright/internal/world"
)

// LoadLimits loads the default level bounds from the embedded limits.json file.
func LoadLimits() (world.Limits, error) {
	limits, err := Load[world.Limits]("limits.json")
	if err != nil {
		return world.Limits{}, err
	}
	if err := limits.Validate(); err != nil {
		return world.Limits{}, oops.In("gamedata").Wrapf(err, "limits.json")
	}
	return limits, nil
}
