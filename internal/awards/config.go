package awards

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config carries every configurable point value. Values are loaded once at
// startup and handed to NewPolicy; nothing in the engine reads the
// environment after that.
type Config struct {
	Participation     int64                       `yaml:"participation"`
	CustomMax         int64                       `yaml:"custom_max"`
	CombatAchievement map[string]int64            `yaml:"combat_achievement"`
	CollectionLog     map[string]int64            `yaml:"collection_log"`
	Competitions      map[string]map[string]int64 `yaml:"competitions"`
}

// DefaultConfig returns the built-in point table.
func DefaultConfig() Config {
	return Config{
		Participation: 10,
		CustomMax:     10000,
		CombatAchievement: map[string]int64{
			"easy":        10,
			"medium":      25,
			"hard":        50,
			"elite":       75,
			"master":      100,
			"grandmaster": 200,
		},
		CollectionLog: map[string]int64{
			"bronze":  3,
			"iron":    5,
			"steel":   10,
			"black":   30,
			"mithril": 50,
			"adamant": 80,
			"rune":    90,
			"dragon":  100,
			"guilded": 200,
		},
		Competitions: map[string]map[string]int64{
			"skill_week": {"1st": 20, "2nd": 10, "3rd": 5},
			"clue_month": {"1st": 20, "2nd": 10, "3rd": 5},
			"boss_week":  {"1st": 20, "2nd": 10, "3rd": 5},
			"bingo":      {"1st": 20, "2nd": 5},
			"battleship": {"1st": 30, "2nd": 10},
			"mania":      {"1st": 20, "2nd": 10, "3rd": 5},
			"bounty":     {"1st": 10, "2nd": 5},
		},
	}
}

// LoadConfig reads a YAML override file and merges it over the defaults.
// An empty path returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read awards config: %w", err)
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return Config{}, fmt.Errorf("failed to parse awards config: %w", err)
	}

	cfg.merge(override)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) merge(override Config) {
	if override.Participation > 0 {
		c.Participation = override.Participation
	}
	if override.CustomMax > 0 {
		c.CustomMax = override.CustomMax
	}
	for tier, points := range override.CombatAchievement {
		c.CombatAchievement[normalizeKey(tier)] = points
	}
	for tier, points := range override.CollectionLog {
		c.CollectionLog[normalizeKey(tier)] = points
	}
	for event, placements := range override.Competitions {
		key := normalizeEvent(event)
		if c.Competitions[key] == nil {
			c.Competitions[key] = map[string]int64{}
		}
		for placement, points := range placements {
			c.Competitions[key][normalizeKey(placement)] = points
		}
	}
}

func (c *Config) Validate() error {
	if c.Participation < 1 {
		return fmt.Errorf("participation points must be at least 1")
	}
	if c.CustomMax < 1 {
		return fmt.Errorf("custom award maximum must be at least 1")
	}
	for tier, points := range c.CombatAchievement {
		if points < 1 {
			return fmt.Errorf("combat achievement tier %q must award at least 1 point", tier)
		}
	}
	for tier, points := range c.CollectionLog {
		if points < 1 {
			return fmt.Errorf("collection log tier %q must award at least 1 point", tier)
		}
	}
	for event, placements := range c.Competitions {
		if len(placements) == 0 {
			return fmt.Errorf("competition %q has no placements", event)
		}
		for placement, points := range placements {
			if points < 1 {
				return fmt.Errorf("competition %q placement %q must award at least 1 point", event, placement)
			}
		}
	}
	return nil
}
