package enemy

import (
	"time"

	"github.com/milk9111/pengu-adventures/common"
	"github.com/milk9111/pengu-adventures/projectile"
)

// Tuning groups the per-variant numbers loaded from enemies.yaml.
type Tuning struct {
	Basic     BasicTuning     `yaml:"basic"`
	Freezable FreezableTuning `yaml:"freezable"`
	Snowman   SnowmanTuning   `yaml:"snowman"`
}

type BasicTuning struct {
	Speed          float64       `yaml:"speed"`
	IdleTime       time.Duration `yaml:"idle_time"`
	ArriveDistance float64       `yaml:"arrive_distance"`
	FadeStep       time.Duration `yaml:"fade_step"`
	FadeSteps      int           `yaml:"fade_steps"`
	ContactDamage  int           `yaml:"contact_damage"`
	Knockback      float64       `yaml:"knockback"`
}

type FreezableTuning struct {
	Speed            float64       `yaml:"speed"`
	FrozenTime       time.Duration `yaml:"frozen_time"`
	IceDisappearLead time.Duration `yaml:"ice_disappear_lead"`
	IceAppearTime    time.Duration `yaml:"ice_appear_time"`
	IcePadding       float64       `yaml:"ice_padding"`
	ContactDamage    int           `yaml:"contact_damage"`
	Knockback        float64       `yaml:"knockback"`
}

type SnowmanTuning struct {
	AttackInterval time.Duration   `yaml:"attack_interval"`
	AttackJitter   time.Duration   `yaml:"attack_jitter"`
	AttackDuration time.Duration   `yaml:"attack_duration"`
	LaunchOffset   common.Vec      `yaml:"launch_offset"`
	ContactDamage  int             `yaml:"contact_damage"`
	Knockback      float64         `yaml:"knockback"`
	Projectile     projectile.Spec `yaml:"-"`
}

func DefaultTuning() Tuning {
	return Tuning{
		Basic:     DefaultBasicTuning(),
		Freezable: DefaultFreezableTuning(),
		Snowman:   DefaultSnowmanTuning(),
	}
}

func DefaultBasicTuning() BasicTuning {
	return BasicTuning{
		Speed:          60,
		IdleTime:       2000 * time.Millisecond,
		ArriveDistance: 10,
		FadeStep:       50 * time.Millisecond,
		FadeSteps:      10,
		ContactDamage:  1,
		Knockback:      240,
	}
}

func DefaultFreezableTuning() FreezableTuning {
	return FreezableTuning{
		Speed:            50,
		FrozenTime:       5000 * time.Millisecond,
		IceDisappearLead: 500 * time.Millisecond,
		IceAppearTime:    200 * time.Millisecond,
		IcePadding:       8,
		ContactDamage:    1,
		Knockback:        240,
	}
}

func DefaultSnowmanTuning() SnowmanTuning {
	return SnowmanTuning{
		AttackInterval: 3000 * time.Millisecond,
		AttackJitter:   500 * time.Millisecond,
		AttackDuration: 800 * time.Millisecond,
		LaunchOffset:   common.Vec{X: 20, Y: -6},
		ContactDamage:  1,
		Knockback:      240,
		Projectile:     projectile.EnemySnowball,
	}
}

// WithDefaults fills zero fields from the defaults.
func (t Tuning) WithDefaults() Tuning {
	d := DefaultTuning()

	b := &t.Basic
	if b.Speed <= 0 {
		b.Speed = d.Basic.Speed
	}
	if b.IdleTime <= 0 {
		b.IdleTime = d.Basic.IdleTime
	}
	if b.ArriveDistance <= 0 {
		b.ArriveDistance = d.Basic.ArriveDistance
	}
	if b.FadeStep <= 0 {
		b.FadeStep = d.Basic.FadeStep
	}
	if b.FadeSteps <= 0 {
		b.FadeSteps = d.Basic.FadeSteps
	}
	if b.ContactDamage <= 0 {
		b.ContactDamage = d.Basic.ContactDamage
	}
	if b.Knockback <= 0 {
		b.Knockback = d.Basic.Knockback
	}

	f := &t.Freezable
	if f.Speed <= 0 {
		f.Speed = d.Freezable.Speed
	}
	if f.FrozenTime <= 0 {
		f.FrozenTime = d.Freezable.FrozenTime
	}
	if f.IceDisappearLead <= 0 || f.IceDisappearLead > f.FrozenTime {
		f.IceDisappearLead = min(d.Freezable.IceDisappearLead, f.FrozenTime)
	}
	if f.IceAppearTime <= 0 {
		f.IceAppearTime = d.Freezable.IceAppearTime
	}
	if f.IcePadding < 0 {
		f.IcePadding = 0
	}
	if f.ContactDamage <= 0 {
		f.ContactDamage = d.Freezable.ContactDamage
	}
	if f.Knockback <= 0 {
		f.Knockback = d.Freezable.Knockback
	}

	s := &t.Snowman
	if s.AttackInterval <= 0 {
		s.AttackInterval = d.Snowman.AttackInterval
	}
	if s.AttackJitter < 0 || s.AttackJitter >= s.AttackInterval {
		s.AttackJitter = 0
	}
	if s.AttackDuration <= 0 {
		s.AttackDuration = d.Snowman.AttackDuration
	}
	if s.LaunchOffset == (common.Vec{}) {
		s.LaunchOffset = d.Snowman.LaunchOffset
	}
	if s.ContactDamage <= 0 {
		s.ContactDamage = d.Snowman.ContactDamage
	}
	if s.Knockback <= 0 {
		s.Knockback = d.Snowman.Knockback
	}
	if s.Projectile.Speed <= 0 {
		s.Projectile = d.Snowman.Projectile
	}
	return t
}
