// Package config handles loading and validating the simulator's settings.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/physanim/internal/character"
	"github.com/Faultbox/physanim/internal/footik"
	"github.com/Faultbox/physanim/internal/world"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	IK        IKConfig        `yaml:"ik"`
	Character CharacterConfig `yaml:"character"`
	Sim       SimConfig       `yaml:"sim"`
	Logging   LoggingConfig   `yaml:"logging"`
	Debug     DebugConfig     `yaml:"debug"`
}

// IKConfig holds the foot IK tunables.
type IKConfig struct {
	TraceDistance   float32 `yaml:"trace_distance"`
	AdjustOffset    float32 `yaml:"adjust_offset"`
	FootInterpSpeed float32 `yaml:"foot_interp_speed"`
	HipInterpSpeed  float32 `yaml:"hip_interp_speed"`
	LeftFootSocket  string  `yaml:"left_foot_socket"`
	RightFootSocket string  `yaml:"right_foot_socket"`
	UpAxis          string  `yaml:"up_axis"` // "z"; "y" only parses for non-scene hosts
}

// CharacterConfig holds the capsule and physical animation setup.
type CharacterConfig struct {
	ID             uint32  `yaml:"id"`
	Radius         float32 `yaml:"radius"`
	HalfHeight     float32 `yaml:"half_height"`
	PhysicsBone    string  `yaml:"physics_bone"`
	PhysicsProfile string  `yaml:"physics_profile"`
}

// SimConfig holds the simulation loop settings.
type SimConfig struct {
	Scene       string `yaml:"scene"`     // Scene file; empty uses the built-in step
	TickRate    int    `yaml:"tick_rate"` // Ticks per second
	Ticks       uint64 `yaml:"ticks"`     // 0 runs until interrupted
	Realtime    bool   `yaml:"realtime"`
	ReportEvery uint64 `yaml:"report_every"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DebugConfig holds optional diagnostics.
type DebugConfig struct {
	SentryDSN     string `yaml:"sentry_dsn"`
	StatsViewAddr string `yaml:"statsview_addr"` // e.g. "localhost:18066"
}

// Default returns a Config with sensible default values.
func Default() *Config {
	ik := footik.DefaultParams()
	ch := character.DefaultConfig()
	return &Config{
		IK: IKConfig{
			TraceDistance:   ik.TraceDistance,
			AdjustOffset:    ik.AdjustOffset,
			FootInterpSpeed: ik.FootInterpSpeed,
			HipInterpSpeed:  ik.HipInterpSpeed,
			LeftFootSocket:  ik.LeftFootSocket,
			RightFootSocket: ik.RightFootSocket,
			UpAxis:          "z",
		},
		Character: CharacterConfig{
			ID:             uint32(ch.ID),
			Radius:         ch.Radius,
			HalfHeight:     ch.HalfHeight,
			PhysicsBone:    ch.PhysicsBone,
			PhysicsProfile: ch.PhysicsProfile,
		},
		Sim: SimConfig{
			TickRate:    60,
			Ticks:       600,
			ReportEvery: 60,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Params converts the IK section to solver parameters.
func (c IKConfig) Params() (footik.Params, error) {
	var frame footik.Frame
	switch strings.ToLower(c.UpAxis) {
	case "", "z":
		frame = footik.FrameZUp
	case "y":
		frame = footik.FrameYUp
	default:
		return footik.Params{}, fmt.Errorf("%w: up_axis %q", ErrInvalidConfig, c.UpAxis)
	}

	p := footik.Params{
		TraceDistance:   c.TraceDistance,
		AdjustOffset:    c.AdjustOffset,
		FootInterpSpeed: c.FootInterpSpeed,
		HipInterpSpeed:  c.HipInterpSpeed,
		LeftFootSocket:  c.LeftFootSocket,
		RightFootSocket: c.RightFootSocket,
		Frame:           frame,
	}
	if err := p.Validate(); err != nil {
		return footik.Params{}, err
	}
	return p, nil
}

// CharacterSettings combines the character and IK sections.
func (c *Config) CharacterSettings() (character.Config, error) {
	ik, err := c.IK.Params()
	if err != nil {
		return character.Config{}, err
	}
	return character.Config{
		ID:             world.ActorID(c.Character.ID),
		Radius:         c.Character.Radius,
		HalfHeight:     c.Character.HalfHeight,
		PhysicsBone:    c.Character.PhysicsBone,
		PhysicsProfile: c.Character.PhysicsProfile,
		IK:             ik,
	}, nil
}

// Step returns the simulation time step in seconds.
func (c SimConfig) Step() float32 {
	return 1 / float32(c.TickRate)
}

// Validate rejects settings the simulator cannot start with.
func (c *Config) Validate() error {
	ik, err := c.IK.Params()
	if err != nil {
		return err
	}
	// Scenes are Z-up; FrameYUp is only for hosts with their own world.
	if ik.Frame != footik.FrameZUp {
		return fmt.Errorf("%w: up_axis %q does not match the Z-up scene", ErrInvalidConfig, c.IK.UpAxis)
	}
	if c.Character.ID == uint32(world.TerrainActor) {
		return fmt.Errorf("%w: character id %d is reserved", ErrInvalidConfig, c.Character.ID)
	}
	if c.Character.Radius <= 0 || c.Character.HalfHeight < c.Character.Radius {
		return fmt.Errorf("%w: capsule radius %v half-height %v", ErrInvalidConfig, c.Character.Radius, c.Character.HalfHeight)
	}
	if c.Character.PhysicsBone == "" {
		return fmt.Errorf("%w: physics_bone is empty", ErrInvalidConfig)
	}
	if c.Sim.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate %d", ErrInvalidConfig, c.Sim.TickRate)
	}
	return nil
}
