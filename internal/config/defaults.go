package config

import (
	_ "embed"
)

//go:embed defaults/servicedrop.yaml
var defaultGameYAML []byte

// DefaultGameConfig returns the built-in configuration.
// It mirrors defaults/servicedrop.yaml and is used if the embedded file fails to parse.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Display: DisplayConfig{
			IconSize: 300,
			Density:  25,
		},
		Timing: TimingConfig{
			TickMS:        100,
			DropStep:      20,
			ResultDelayMS: 3000,
			DragStep:      50,
		},
		Scoring: ScoringConfig{
			Mode:      ScoringMatched,
			Reward:    1,
			Penalty:   1,
			FlatBonus: 10,
		},
		Roles: []RoleConfig{
			{ID: "infant", Label: "Infant"},
			{ID: "child", Label: "Child"},
			{ID: "adult", Label: "Adult"},
			{ID: "public", Label: "General Public"},
		},
		Services: []ServiceConfig{
			{ID: "early_intervention", Label: "Early Intervention", Role: "infant"},
			{ID: "after_school", Label: "After-school Care", Role: "child"},
			{ID: "vocational", Label: "Vocational Training", Role: "adult"},
			{ID: "outreach", Label: "Community Outreach", Role: "public"},
		},
		UI: UIConfig{
			Title:  "Maria Foundation Service Challenge",
			Author: "Author: Service Drop team",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultGameYAML
}
