package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tracker describes one tracked subject: a team, or a category of events
type Tracker struct {
	Key    string `yaml:"key" json:"key"`
	Label  string `yaml:"label" json:"label"`
	Sport  string `yaml:"sport" json:"sport"`
	League string `yaml:"league" json:"league"`

	// TeamName is empty for category-only trackers
	TeamName string `yaml:"team_name" json:"team_name,omitempty"`

	// OddsSportKey is empty when the odds feed does not cover the subject
	OddsSportKey string `yaml:"odds_sport_key" json:"odds_sport_key,omitempty"`

	// Category selects a keyword filter, e.g. "grand_slams"
	Category string `yaml:"category" json:"category,omitempty"`

	// ConstructorContext adds the racing constructor standings panel
	ConstructorContext bool `yaml:"constructor_context" json:"constructor_context,omitempty"`
}

// HasTeam reports whether the tracker follows a single team
func (t Tracker) HasTeam() bool {
	return strings.TrimSpace(t.TeamName) != ""
}

// HasOdds reports whether the odds feed applies to the tracker
func (t Tracker) HasOdds() bool {
	return strings.TrimSpace(t.OddsSportKey) != ""
}

type trackersFile struct {
	Trackers []Tracker `yaml:"trackers"`
}

// DefaultTrackers are used when no trackers file is configured
func DefaultTrackers() []Tracker {
	return []Tracker{
		{
			Key:          "pittsburgh_penguins",
			Label:        "Pittsburgh Penguins",
			Sport:        "hockey",
			League:       "nhl",
			TeamName:     "Pittsburgh Penguins",
			OddsSportKey: "icehockey_nhl",
		},
		{
			Key:          "pittsburgh_steelers",
			Label:        "Pittsburgh Steelers",
			Sport:        "football",
			League:       "nfl",
			TeamName:     "Pittsburgh Steelers",
			OddsSportKey: "americanfootball_nfl",
		},
		{
			Key:      "mens_tennis_slams",
			Label:    "Men's Tennis Singles (Grand Slams)",
			Sport:    "tennis",
			League:   "atp",
			Category: "grand_slams",
		},
		{
			Key:                "f1_mercedes",
			Label:              "Formula 1 (Mercedes)",
			Sport:              "racing",
			League:             "f1",
			TeamName:           "Mercedes",
			OddsSportKey:       "formula1",
			ConstructorContext: true,
		},
		{
			Key:          "la_lakers",
			Label:        "LA Lakers",
			Sport:        "basketball",
			League:       "nba",
			TeamName:     "Los Angeles Lakers",
			OddsSportKey: "basketball_nba",
		},
		{
			Key:          "ny_knicks",
			Label:        "NY Knicks",
			Sport:        "basketball",
			League:       "nba",
			TeamName:     "New York Knicks",
			OddsSportKey: "basketball_nba",
		},
	}
}

// LoadTrackers reads tracker definitions from path, or returns the defaults
// when path is empty
func LoadTrackers(path string) ([]Tracker, error) {
	if path == "" {
		return DefaultTrackers(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trackers file: %w", err)
	}

	return ParseTrackers(data)
}

// ParseTrackers decodes and validates a YAML trackers document
func ParseTrackers(data []byte) ([]Tracker, error) {
	var file trackersFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse trackers file: %w", err)
	}

	if len(file.Trackers) == 0 {
		return nil, fmt.Errorf("trackers file defines no trackers")
	}

	seen := make(map[string]bool, len(file.Trackers))
	for i, t := range file.Trackers {
		if t.Key == "" {
			return nil, fmt.Errorf("tracker %d: key is required", i)
		}
		if seen[t.Key] {
			return nil, fmt.Errorf("tracker %q: duplicate key", t.Key)
		}
		seen[t.Key] = true

		if t.Sport == "" || t.League == "" {
			return nil, fmt.Errorf("tracker %q: sport and league are required", t.Key)
		}
		if t.Label == "" {
			file.Trackers[i].Label = t.Key
		}
	}

	return file.Trackers, nil
}
