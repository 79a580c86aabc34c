package gamedata

import (
	"errors"
	"math/rand"

	"github.com/samdwyer/dungeonwright/internal/encounter"
)

// EnemyTemplate defines an enemy type loaded from JSON.
type EnemyTemplate struct {
	ID          string  `json:"id"`          // Unique identifier (e.g., "goblin")
	Name        string  `json:"name"`        // Display name (e.g., "Goblin")
	Species     string  `json:"species"`     // Species recorded on spawned enemies
	Description string  `json:"description"` // Physical description
	HP          float64 `json:"hp"`
	Dodge       float64 `json:"dodge"`
	Prot        float64 `json:"prot"`
	Spd         float64 `json:"spd"`
	SpawnWeight int     `json:"spawnWeight"` // Relative spawn frequency (higher = more common)
}

// Enemy builds a fresh enemy from the template under the given name.
func (t *EnemyTemplate) Enemy(name string) *encounter.Enemy {
	return &encounter.Enemy{
		Name:        name,
		Description: t.Description,
		Species:     t.Species,
		HP:          t.HP,
		MaxHP:       t.HP,
		Dodge:       t.Dodge,
		Prot:        t.Prot,
		Spd:         t.Spd,
	}
}

// BestiaryFile represents the structure of bestiary.json.
type BestiaryFile struct {
	Enemies []EnemyTemplate `json:"enemies"`
}

// Bestiary holds loaded enemy templates and provides spawning utilities.
type Bestiary struct {
	enemies     []EnemyTemplate
	totalWeight int
}

// NewBestiary creates a bestiary from loaded enemy templates.
func NewBestiary(enemies []EnemyTemplate) *Bestiary {
	totalWeight := 0
	for _, e := range enemies {
		totalWeight += e.SpawnWeight
	}
	return &Bestiary{
		enemies:     enemies,
		totalWeight: totalWeight,
	}
}

// LoadBestiary loads and creates a bestiary from the embedded bestiary.json.
func LoadBestiary() (*Bestiary, error) {
	file, err := Load[BestiaryFile]("bestiary.json")
	if err != nil {
		return nil, err
	}
	if len(file.Enemies) == 0 {
		return nil, errors.New("no enemies loaded from bestiary.json")
	}
	return NewBestiary(file.Enemies), nil
}

// SpawnRandom selects a random enemy template using weighted probability.
func (b *Bestiary) SpawnRandom(rng *rand.Rand) *EnemyTemplate {
	if b.totalWeight <= 0 || len(b.enemies) == 0 {
		return nil
	}

	roll := rng.Intn(b.totalWeight)
	cumulative := 0
	for i := range b.enemies {
		cumulative += b.enemies[i].SpawnWeight
		if roll < cumulative {
			return &b.enemies[i]
		}
	}
	return &b.enemies[0]
}

// GetByID returns the template with the given ID, or nil if not found.
func (b *Bestiary) GetByID(id string) *EnemyTemplate {
	for i := range b.enemies {
		if b.enemies[i].ID == id {
			return &b.enemies[i]
		}
	}
	return nil
}

// All returns all enemy templates.
func (b *Bestiary) All() []EnemyTemplate {
	return b.enemies
}

// Count returns the number of enemy types in the bestiary.
func (b *Bestiary) Count() int {
	return len(b.enemies)
}
