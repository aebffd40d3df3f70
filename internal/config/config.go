// Package config provides YAML-based game configuration loading and
// difficulty presets for the service drop game.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ZoneCount is the number of role zones on screen.
const ZoneCount = 4

// Scoring modes.
const (
	ScoringMatched = "matched" // +reward when the role matches, -penalty otherwise
	ScoringFlat    = "flat"    // +flat_bonus on any catch
)

// ErrUnknownScoring is returned for a scoring mode other than matched or flat.
var ErrUnknownScoring = errors.New("config: unknown scoring mode")

// GameConfig contains all configuration for the game.
type GameConfig struct {
	Display  DisplayConfig   `yaml:"display"`
	Timing   TimingConfig    `yaml:"timing"`
	Scoring  ScoringConfig   `yaml:"scoring"`
	Roles    []RoleConfig    `yaml:"roles"`
	Services []ServiceConfig `yaml:"services"`
	UI       UIConfig        `yaml:"ui"`
}

// DisplayConfig defines icon size and terminal-to-pixel mapping.
type DisplayConfig struct {
	IconSize int     `yaml:"icon_size"`
	Density  float64 `yaml:"density"`
}

// TimingConfig defines the tick loop parameters.
type TimingConfig struct {
	TickMS        int `yaml:"tick_ms"`
	DropStep      int `yaml:"drop_step"`
	ResultDelayMS int `yaml:"result_delay_ms"`
	DragStep      int `yaml:"drag_step"`
}

// TickInterval returns the tick period.
func (t TimingConfig) TickInterval() time.Duration {
	return time.Duration(t.TickMS) * time.Millisecond
}

// ResultDelay returns how long an outcome stays on screen before reset.
func (t TimingConfig) ResultDelay() time.Duration {
	return time.Duration(t.ResultDelayMS) * time.Millisecond
}

// ScoringConfig defines score deltas.
type ScoringConfig struct {
	Mode      string `yaml:"mode"`
	Reward    int    `yaml:"reward"`
	Penalty   int    `yaml:"penalty"`
	FlatBonus int    `yaml:"flat_bonus"`
}

// RoleConfig describes one drop zone. Order in the list is zone order.
type RoleConfig struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// ServiceConfig describes one falling icon variant and the role it belongs to.
type ServiceConfig struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	Role  string `yaml:"role"`
}

// UIConfig holds the static status panel text.
type UIConfig struct {
	Title  string `yaml:"title"`
	Author string `yaml:"author"`
}

// Validate checks the configuration for values the game cannot run with.
func (c GameConfig) Validate() error {
	if c.Display.IconSize <= 0 {
		return fmt.Errorf("config: display.icon_size must be positive, got %d", c.Display.IconSize)
	}
	if c.Display.Density <= 0 {
		return fmt.Errorf("config: display.density must be positive, got %v", c.Display.Density)
	}
	if c.Timing.TickMS <= 0 {
		return fmt.Errorf("config: timing.tick_ms must be positive, got %d", c.Timing.TickMS)
	}
	if c.Timing.DropStep <= 0 {
		return fmt.Errorf("config: timing.drop_step must be positive, got %d", c.Timing.DropStep)
	}
	if c.Timing.ResultDelayMS < 0 {
		return fmt.Errorf("config: timing.result_delay_ms must not be negative, got %d", c.Timing.ResultDelayMS)
	}
	if c.Timing.DragStep < 0 {
		return fmt.Errorf("config: timing.drag_step must not be negative, got %d", c.Timing.DragStep)
	}
	if c.Scoring.Reward < 0 || c.Scoring.Penalty < 0 || c.Scoring.FlatBonus < 0 {
		return fmt.Errorf("config: scoring values must not be negative, got reward=%d penalty=%d flat_bonus=%d",
			c.Scoring.Reward, c.Scoring.Penalty, c.Scoring.FlatBonus)
	}

	switch c.Scoring.Mode {
	case ScoringMatched, ScoringFlat:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownScoring, c.Scoring.Mode)
	}

	if len(c.Roles) != ZoneCount {
		return fmt.Errorf("config: expected %d roles, got %d", ZoneCount, len(c.Roles))
	}
	roles := make(map[string]bool, len(c.Roles))
	for _, r := range c.Roles {
		if r.ID == "" {
			return errors.New("config: role id must not be empty")
		}
		if roles[r.ID] {
			return fmt.Errorf("config: duplicate role %q", r.ID)
		}
		roles[r.ID] = true
	}

	if len(c.Services) == 0 {
		return errors.New("config: at least one service is required")
	}
	services := make(map[string]bool, len(c.Services))
	for _, s := range c.Services {
		if s.ID == "" {
			return errors.New("config: service id must not be empty")
		}
		if services[s.ID] {
			return fmt.Errorf("config: duplicate service %q", s.ID)
		}
		services[s.ID] = true
		if !roles[s.Role] {
			return fmt.Errorf("config: service %q refers to unknown role %q", s.ID, s.Role)
		}
	}
	return nil
}
