package system

import (
	"errors"
	"fmt"

	"github.com/milk9111/pengu-adventures/enemy"
	"github.com/milk9111/pengu-adventures/prefabs"
)

var ErrInvalidConfig = errors.New("system: invalid enemy config")

// TypeRatio splits procedurally placed enemies between variants.
type TypeRatio struct {
	// Basic is the chance a placed enemy is Basic; the rest are Freezable.
	Basic float64 `yaml:"basic"`
}

// EnemyConfig controls procedural enemy placement. Distances are world
// units unless noted.
type EnemyConfig struct {
	MaxEnemies int `yaml:"max_enemies"`
	// MinSurfaceWidth is in tiles.
	MinSurfaceWidth int       `yaml:"min_surface_width"`
	PatrolMargin    float64   `yaml:"patrol_margin"`
	SafeDistance    float64   `yaml:"safe_distance"`
	MinPatrolWidth  float64   `yaml:"min_patrol_width"`
	EnemyTypeRatio  TypeRatio `yaml:"enemy_type_ratio"`
	// SurfaceHeadroom is in tiles.
	SurfaceHeadroom int `yaml:"surface_headroom"`
}

func DefaultEnemyConfig() EnemyConfig {
	return EnemyConfig{
		MaxEnemies:      8,
		MinSurfaceWidth: 4,
		PatrolMargin:    16,
		SafeDistance:    160,
		MinPatrolWidth:  48,
		EnemyTypeRatio:  TypeRatio{Basic: 0.5},
	}
}

// Validate reports every problem at once.
func (c EnemyConfig) Validate() error {
	var errs []error
	if c.MaxEnemies < 0 {
		errs = append(errs, fmt.Errorf("%w: max_enemies %d < 0", ErrInvalidConfig, c.MaxEnemies))
	}
	if c.MinSurfaceWidth < 1 {
		errs = append(errs, fmt.Errorf("%w: min_surface_width %d < 1", ErrInvalidConfig, c.MinSurfaceWidth))
	}
	if c.EnemyTypeRatio.Basic < 0 || c.EnemyTypeRatio.Basic > 1 {
		errs = append(errs, fmt.Errorf("%w: enemy_type_ratio.basic %v outside [0,1]", ErrInvalidConfig, c.EnemyTypeRatio.Basic))
	}
	if c.PatrolMargin < 0 {
		errs = append(errs, fmt.Errorf("%w: patrol_margin %v < 0", ErrInvalidConfig, c.PatrolMargin))
	}
	if c.SafeDistance < 0 {
		errs = append(errs, fmt.Errorf("%w: safe_distance %v < 0", ErrInvalidConfig, c.SafeDistance))
	}
	if c.MinPatrolWidth < 0 {
		errs = append(errs, fmt.Errorf("%w: min_patrol_width %v < 0", ErrInvalidConfig, c.MinPatrolWidth))
	}
	if c.SurfaceHeadroom < 0 {
		errs = append(errs, fmt.Errorf("%w: surface_headroom %d < 0", ErrInvalidConfig, c.SurfaceHeadroom))
	}
	return errors.Join(errs...)
}

// LoadEnemyConfig reads enemy_system.yaml over the defaults, so absent
// keys keep their default values.
func LoadEnemyConfig() (EnemyConfig, error) {
	cfg := DefaultEnemyConfig()
	if err := prefabs.LoadSpecInto(prefabs.EnemySystemFile, &cfg); err != nil {
		return DefaultEnemyConfig(), err
	}
	if err := cfg.Validate(); err != nil {
		return DefaultEnemyConfig(), err
	}
	return cfg, nil
}

// LoadTuning reads enemies.yaml and projectiles.yaml. The snowman throws
// the enemy snowball.
func LoadTuning() (enemy.Tuning, prefabs.ProjectileSpecs, error) {
	projectiles, perr := prefabs.LoadProjectileSpecs()
	t, err := prefabs.LoadSpec[enemy.Tuning](prefabs.EnemiesFile)
	if err != nil {
		t = enemy.Tuning{}
	}
	t.Snowman.Projectile = projectiles.Enemy
	return t.WithDefaults(), projectiles, errors.Join(err, perr)
}
