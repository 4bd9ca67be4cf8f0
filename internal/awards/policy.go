// Package awards maps achievement tiers and competition placements to point
// values. The policy is a pure lookup table: a miss is a validation error for
// the caller, never a silent zero-point award.
package awards

import (
	"sort"
	"strings"

	"github.com/cjlund9/eventpoints/pkg/errors"
)

type Policy struct {
	cfg Config
}

func NewPolicy(cfg Config) *Policy {
	return &Policy{cfg: cfg}
}

// DefaultPolicy returns a policy over the built-in point table.
func DefaultPolicy() *Policy {
	return NewPolicy(DefaultConfig())
}

// ParticipationPoints returns the flat award for event participation.
func (p *Policy) ParticipationPoints() int64 {
	return p.cfg.Participation
}

// CombatAchievement resolves a combat achievement tier to its point value.
// Tier names are case-insensitive.
func (p *Policy) CombatAchievement(tier string) (int64, error) {
	points, ok := p.cfg.CombatAchievement[normalizeKey(tier)]
	if !ok {
		return 0, errors.New(errors.ErrCodeValidation, "invalid combat achievement tier: "+tier)
	}
	return points, nil
}

// CollectionLog resolves a collection log tier to its point value.
func (p *Policy) CollectionLog(tier string) (int64, error) {
	points, ok := p.cfg.CollectionLog[normalizeKey(tier)]
	if !ok {
		return 0, errors.New(errors.ErrCodeValidation, "invalid collection log tier: "+tier)
	}
	return points, nil
}

// Competition resolves an event type and placement to a point value. A
// placement that exists for one event but not another is rejected.
func (p *Policy) Competition(eventType, placement string) (int64, error) {
	placements, ok := p.cfg.Competitions[normalizeEvent(eventType)]
	if !ok {
		return 0, errors.New(errors.ErrCodeValidation, "invalid event type: "+eventType)
	}
	points, ok := placements[normalizeKey(placement)]
	if !ok {
		return 0, errors.New(errors.ErrCodeValidation, "invalid placement for "+eventType+": "+placement)
	}
	return points, nil
}

// ValidateCustom bounds free-form awards to 1..CustomMax.
func (p *Policy) ValidateCustom(amount int64) error {
	if amount < 1 || amount > p.cfg.CustomMax {
		return errors.New(errors.ErrCodeValidation, "custom award amount out of range")
	}
	return nil
}

// CombatAchievementTiers lists the known tiers, sorted for stable display.
func (p *Policy) CombatAchievementTiers() []string {
	return sortedKeys(p.cfg.CombatAchievement)
}

// CollectionLogTiers lists the known collection log tiers.
func (p *Policy) CollectionLogTiers() []string {
	return sortedKeys(p.cfg.CollectionLog)
}

// EventTypes lists the known competition events.
func (p *Policy) EventTypes() []string {
	events := make([]string, 0, len(p.cfg.Competitions))
	for event := range p.cfg.Competitions {
		events = append(events, event)
	}
	sort.Strings(events)
	return events
}

// Placements lists the valid placements for an event, best first. An unknown
// event returns an empty slice.
func (p *Policy) Placements(eventType string) []string {
	placements, ok := p.cfg.Competitions[normalizeEvent(eventType)]
	if !ok {
		return nil
	}
	keys := sortedKeys(placements)
	return keys
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Long display names used by coordinators map onto the canonical short event
// keys the point table is keyed by.
var eventAliases = map[string]string{
	"skill_of_the_week": "skill_week",
	"clue_of_the_month": "clue_month",
	"boss_of_the_week":  "boss_week",
	"general_bingo":     "bingo",
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func normalizeEvent(eventType string) string {
	key := strings.ReplaceAll(normalizeKey(eventType), " ", "_")
	if canonical, ok := eventAliases[key]; ok {
		return canonical
	}
	return key
}
