package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a flag value to a preset.
// An empty string means "keep the config as loaded" and returns DifficultyNormal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the fall speed based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Timing.DropStep = max(cfg.Timing.DropStep*3/4, 1)
		cfg.Timing.ResultDelayMS += 1000
	case DifficultyHard:
		cfg.Timing.DropStep = cfg.Timing.DropStep * 3 / 2
		cfg.Timing.TickMS = max(cfg.Timing.TickMS*4/5, 10)
		cfg.Timing.ResultDelayMS = cfg.Timing.ResultDelayMS / 2
	}
}
