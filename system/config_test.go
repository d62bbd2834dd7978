package system

import (
	"errors"
	"testing"
	"time"

	"github.com/milk9111/pengu-adventures/projectile"
)

func TestEnemyConfigValidate(t *testing.T) {
	cases := []struct {
		name  string
		edit  func(*EnemyConfig)
		valid bool
	}{
		{name: "defaults", edit: func(*EnemyConfig) {}, valid: true},
		{name: "no enemies", edit: func(c *EnemyConfig) { c.MaxEnemies = 0 }, valid: true},
		{name: "negative cap", edit: func(c *EnemyConfig) { c.MaxEnemies = -1 }},
		{name: "zero width", edit: func(c *EnemyConfig) { c.MinSurfaceWidth = 0 }},
		{name: "ratio above one", edit: func(c *EnemyConfig) { c.EnemyTypeRatio.Basic = 1.5 }},
		{name: "ratio below zero", edit: func(c *EnemyConfig) { c.EnemyTypeRatio.Basic = -0.1 }},
		{name: "negative margin", edit: func(c *EnemyConfig) { c.PatrolMargin = -1 }},
		{name: "negative safe distance", edit: func(c *EnemyConfig) { c.SafeDistance = -1 }},
		{name: "negative patrol width", edit: func(c *EnemyConfig) { c.MinPatrolWidth = -1 }},
		{name: "negative headroom", edit: func(c *EnemyConfig) { c.SurfaceHeadroom = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultEnemyConfig()
			tc.edit(&cfg)
			err := cfg.Validate()
			if tc.valid && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.valid && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadEnemyConfigFromPrefabs(t *testing.T) {
	cfg, err := LoadEnemyConfig()
	if err != nil {
		t.Fatalf("LoadEnemyConfig: %v", err)
	}
	if cfg.MaxEnemies != 8 || cfg.MinSurfaceWidth != 4 || cfg.SurfaceHeadroom != 1 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.EnemyTypeRatio.Basic != 0.5 {
		t.Fatalf("ratio = %v", cfg.EnemyTypeRatio.Basic)
	}
}

func TestLoadTuningFromPrefabs(t *testing.T) {
	tuning, specs, err := LoadTuning()
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if tuning.Basic.IdleTime != 2*time.Second || tuning.Freezable.FrozenTime != 5*time.Second {
		t.Fatalf("unexpected tuning %+v", tuning)
	}
	if tuning.Snowman.Projectile != specs.Enemy {
		t.Fatalf("snowman throws %+v, want the enemy snowball", tuning.Snowman.Projectile)
	}
	if specs.Player.Speed != projectile.PlayerSnowball.Speed {
		t.Fatalf("player snowball speed %v", specs.Player.Speed)
	}
}
