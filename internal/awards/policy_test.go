package awards

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cjlund9/eventpoints/pkg/errors"
)

func TestCombatAchievement(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name    string
		tier    string
		want    int64
		wantErr bool
	}{
		{name: "Grandmaster", tier: "grandmaster", want: 200},
		{name: "Mixed case", tier: "GrandMaster", want: 200},
		{name: "Easy", tier: "easy", want: 10},
		{name: "Master", tier: "master", want: 100},
		{name: "Unknown tier", tier: "legendary", wantErr: true},
		{name: "Empty tier", tier: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := policy.CombatAchievement(tt.tier)
			if tt.wantErr {
				if !errors.IsCode(err, errors.ErrCodeValidation) {
					t.Errorf("CombatAchievement(%q) error = %v, want validation error", tt.tier, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CombatAchievement(%q) error = %v", tt.tier, err)
			}
			if points != tt.want {
				t.Errorf("CombatAchievement(%q) = %d, want %d", tt.tier, points, tt.want)
			}
		})
	}
}

func TestCollectionLog(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		tier    string
		want    int64
		wantErr bool
	}{
		{tier: "bronze", want: 3},
		{tier: "Guilded", want: 200},
		{tier: "dragon", want: 100},
		{tier: "platinum", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.tier, func(t *testing.T) {
			points, err := policy.CollectionLog(tt.tier)
			if tt.wantErr {
				if !errors.IsCode(err, errors.ErrCodeValidation) {
					t.Errorf("CollectionLog(%q) error = %v, want validation error", tt.tier, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CollectionLog(%q) error = %v", tt.tier, err)
			}
			if points != tt.want {
				t.Errorf("CollectionLog(%q) = %d, want %d", tt.tier, points, tt.want)
			}
		})
	}
}

func TestCompetition(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		name      string
		eventType string
		placement string
		want      int64
		wantErr   bool
	}{
		{name: "Skill week 1st", eventType: "skill_week", placement: "1st", want: 20},
		{name: "Long event name", eventType: "Skill of the Week", placement: "1st", want: 20},
		{name: "General bingo alias", eventType: "General Bingo", placement: "2nd", want: 5},
		{name: "Battleship 1st", eventType: "battleship", placement: "1st", want: 30},
		{name: "Bounty 2nd", eventType: "bounty", placement: "2nd", want: 5},
		{name: "Placement not valid for event", eventType: "bingo", placement: "3rd", wantErr: true},
		{name: "Unknown event", eventType: "dungeon_race", placement: "1st", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, err := policy.Competition(tt.eventType, tt.placement)
			if tt.wantErr {
				if !errors.IsCode(err, errors.ErrCodeValidation) {
					t.Errorf("Competition(%q, %q) error = %v, want validation error", tt.eventType, tt.placement, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Competition(%q, %q) error = %v", tt.eventType, tt.placement, err)
			}
			if points != tt.want {
				t.Errorf("Competition(%q, %q) = %d, want %d", tt.eventType, tt.placement, points, tt.want)
			}
		})
	}
}

func TestValidateCustom(t *testing.T) {
	policy := DefaultPolicy()

	tests := []struct {
		amount  int64
		wantErr bool
	}{
		{amount: 1},
		{amount: 10000},
		{amount: 0, wantErr: true},
		{amount: -5, wantErr: true},
		{amount: 10001, wantErr: true},
	}

	for _, tt := range tests {
		err := policy.ValidateCustom(tt.amount)
		if tt.wantErr && err == nil {
			t.Errorf("ValidateCustom(%d) expected error, got nil", tt.amount)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("ValidateCustom(%d) unexpected error = %v", tt.amount, err)
		}
	}
}

func TestPlacements(t *testing.T) {
	policy := DefaultPolicy()

	if got := policy.Placements("bingo"); len(got) != 2 {
		t.Errorf("Placements(bingo) = %v, want 2 entries", got)
	}
	if got := policy.Placements("Skill of the Week"); len(got) != 3 {
		t.Errorf("Placements(Skill of the Week) = %v, want 3 entries", got)
	}
	if got := policy.Placements("unknown"); got != nil {
		t.Errorf("Placements(unknown) = %v, want nil", got)
	}
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") error = %v", err)
	}
	if cfg.Participation != 10 {
		t.Errorf("Participation = %d, want default 10", cfg.Participation)
	}
}

func TestLoadConfig_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "awards.yaml")
	content := `participation: 15
combat_achievement:
  grandmaster: 250
competitions:
  bingo:
    1st: 40
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	policy := NewPolicy(cfg)

	if got := policy.ParticipationPoints(); got != 15 {
		t.Errorf("ParticipationPoints() = %d, want 15", got)
	}
	if got, _ := policy.CombatAchievement("grandmaster"); got != 250 {
		t.Errorf("CombatAchievement(grandmaster) = %d, want 250", got)
	}
	// Untouched values keep their defaults.
	if got, _ := policy.CombatAchievement("easy"); got != 10 {
		t.Errorf("CombatAchievement(easy) = %d, want default 10", got)
	}
	if got, _ := policy.Competition("bingo", "1st"); got != 40 {
		t.Errorf("Competition(bingo, 1st) = %d, want 40", got)
	}
	if got, _ := policy.Competition("bingo", "2nd"); got != 5 {
		t.Errorf("Competition(bingo, 2nd) = %d, want default 5", got)
	}
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "awards.yaml")
	content := `combat_achievement:
  grandmaster: -1
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() expected error for negative point value, got nil")
	}
}
