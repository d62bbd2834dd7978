package prefabs

import (
	"fmt"
	"time"

	"github.com/milk9111/pengu-adventures/projectile"
	"gopkg.in/yaml.v3"
)

const (
	EnemySystemFile = "enemy_system.yaml"
	EnemiesFile     = "enemies.yaml"
	ProjectilesFile = "projectiles.yaml"
	PlayerFile      = "player.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := LoadSpecInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// LoadSpecInto decodes filename over whatever out already holds, so keys
// missing from the file leave their fields untouched.
func LoadSpecInto(filename string, out any) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

type ProjectileSpec struct {
	Damage      int           `yaml:"damage"`
	Knockback   float64       `yaml:"knockback"`
	Speed       float64       `yaml:"speed"`
	Radius      float64       `yaml:"radius"`
	MaxLifetime time.Duration `yaml:"max_lifetime"`
	MaxDistance float64       `yaml:"max_distance"`
	Gravity     bool          `yaml:"gravity"`
}

func (s ProjectileSpec) Spec() projectile.Spec {
	return projectile.Spec{
		Damage:      s.Damage,
		Knockback:   s.Knockback,
		Speed:       s.Speed,
		Radius:      s.Radius,
		MaxLifetime: s.MaxLifetime,
		MaxDistance: s.MaxDistance,
		Gravity:     s.Gravity,
	}
}

type projectilesFile struct {
	Player ProjectileSpec `yaml:"player_snowball"`
	Enemy  ProjectileSpec `yaml:"enemy_snowball"`
}

// ProjectileSpecs are the two snowballs.
type ProjectileSpecs struct {
	Player projectile.Spec
	Enemy  projectile.Spec
}

// LoadProjectileSpecs reads projectiles.yaml. A missing or incomplete
// entry keeps the built-in snowball, and the error is still returned.
func LoadProjectileSpecs() (ProjectileSpecs, error) {
	out := ProjectileSpecs{Player: projectile.PlayerSnowball, Enemy: projectile.EnemySnowball}
	f, err := LoadSpec[projectilesFile](ProjectilesFile)
	if err != nil {
		return out, err
	}
	if f.Player.Speed > 0 && f.Player.Radius > 0 {
		out.Player = f.Player.Spec()
	}
	if f.Enemy.Speed > 0 && f.Enemy.Radius > 0 {
		out.Enemy = f.Enemy.Spec()
	}
	return out, nil
}

// PlayerSpec tunes the host-controlled player.
type PlayerSpec struct {
	MoveSpeed     float64       `yaml:"move_speed"`
	JumpSpeed     float64       `yaml:"jump_speed"`
	Health        int           `yaml:"health"`
	IFrames       int           `yaml:"iframes"`
	ThrowCooldown time.Duration `yaml:"throw_cooldown"`
}

func DefaultPlayerSpec() PlayerSpec {
	return PlayerSpec{MoveSpeed: 180, JumpSpeed: 420, Health: 5, IFrames: 60, ThrowCooldown: 300 * time.Millisecond}
}

func LoadPlayerSpec() (PlayerSpec, error) {
	spec := DefaultPlayerSpec()
	if err := LoadSpecInto(PlayerFile, &spec); err != nil {
		return DefaultPlayerSpec(), err
	}
	return spec, nil
}
