package services

import (
	"fmt"

	"github.com/cjlund9/eventpoints/internal/awards"
	"github.com/cjlund9/eventpoints/internal/models"
	"github.com/cjlund9/eventpoints/internal/repositories"
	"github.com/cjlund9/eventpoints/internal/security"
	"github.com/cjlund9/eventpoints/pkg/errors"
)

// LedgerService is the collaborator contract for balances and their audit
// trail. Authorization happens in the calling adapter; the service validates
// inputs and delegates atomicity to the repository.
type LedgerService struct {
	repo   *repositories.LedgerRepository
	policy *awards.Policy
}

func NewLedgerService(repo *repositories.LedgerRepository, policy *awards.Policy) *LedgerService {
	return &LedgerService{
		repo:   repo,
		policy: policy,
	}
}

// EnsureAccount creates the account if absent. The display name recorded on
// first creation wins; repeat calls never overwrite it.
func (s *LedgerService) EnsureAccount(userID, displayName string) (*models.Account, error) {
	if !security.ValidateUserID(userID) {
		return nil, errors.New(errors.ErrCodeValidation, "invalid user id")
	}

	displayName = security.SanitizeText(displayName)
	if displayName == "" {
		displayName = userID
	}

	return s.repo.EnsureAccount(userID, displayName)
}

func (s *LedgerService) GetBalance(userID string) (int64, error) {
	if !security.ValidateUserID(userID) {
		return 0, errors.New(errors.ErrCodeValidation, "invalid user id")
	}
	return s.repo.GetBalance(userID)
}

// Credit adds points to an existing account. Award helpers below are the
// usual entry; they ensure the account first.
func (s *LedgerService) Credit(userID string, amount int64, category, description, awardedBy string) (int64, error) {
	if !security.ValidateUserID(userID) {
		return 0, errors.New(errors.ErrCodeValidation, "invalid user id")
	}
	if amount <= 0 {
		return 0, errors.New(errors.ErrCodeValidation, "credit amount must be positive")
	}
	if !models.ValidCategory(category) {
		return 0, errors.New(errors.ErrCodeValidation, "unknown activity category: "+category)
	}

	return s.repo.Credit(userID, amount, category, security.SanitizeText(description), awardedBy)
}

// Debit removes points. Fails with INSUFFICIENT_FUNDS when the balance cannot
// cover the amount, leaving no state change and no audit entry.
func (s *LedgerService) Debit(userID string, amount int64, description, actorID string) error {
	if !security.ValidateUserID(userID) {
		return errors.New(errors.ErrCodeValidation, "invalid user id")
	}
	if amount <= 0 {
		return errors.New(errors.ErrCodeValidation, "debit amount must be positive")
	}

	return s.repo.Debit(userID, amount, security.SanitizeText(description), actorID)
}

// AwardParticipation credits the flat participation award.
func (s *LedgerService) AwardParticipation(userID, displayName, description, awardedBy string) (int64, error) {
	if description == "" {
		description = "Event participation"
	}
	return s.award(userID, displayName, s.policy.ParticipationPoints(),
		models.CategoryParticipation, description, awardedBy)
}

// AwardCombatAchievement resolves the tier through the policy table and
// credits the account. An unknown tier fails before any mutation.
func (s *LedgerService) AwardCombatAchievement(userID, displayName, tier, awardedBy string) (int64, error) {
	points, err := s.policy.CombatAchievement(tier)
	if err != nil {
		return 0, err
	}
	return s.award(userID, displayName, points, models.CategoryCombatAchievement,
		fmt.Sprintf("Combat Achievement %s", tier), awardedBy)
}

// AwardCollectionLog credits points for a collection log tier.
func (s *LedgerService) AwardCollectionLog(userID, displayName, tier, awardedBy string) (int64, error) {
	points, err := s.policy.CollectionLog(tier)
	if err != nil {
		return 0, err
	}
	return s.award(userID, displayName, points, models.CategoryCollectionLog,
		fmt.Sprintf("Collection Log %s", tier), awardedBy)
}

// AwardCompetition credits points for a competition placement. Placements are
// validated per event type.
func (s *LedgerService) AwardCompetition(userID, displayName, eventType, placement, awardedBy string) (int64, error) {
	points, err := s.policy.Competition(eventType, placement)
	if err != nil {
		return 0, err
	}
	return s.award(userID, displayName, points, models.CategoryEventCompetition,
		fmt.Sprintf("%s - %s Place", eventType, placement), awardedBy)
}

// AwardCustom credits an arbitrary amount within the configured bounds.
func (s *LedgerService) AwardCustom(userID, displayName string, amount int64, description, awardedBy string) (int64, error) {
	if err := s.policy.ValidateCustom(amount); err != nil {
		return 0, err
	}
	if description == "" {
		return 0, errors.New(errors.ErrCodeValidation, "custom awards require a description")
	}
	return s.award(userID, displayName, amount, models.CategoryCustom, description, awardedBy)
}

// RemovePoints is the coordinator-facing deduction.
func (s *LedgerService) RemovePoints(userID string, amount int64, description, removedBy string) error {
	if description == "" {
		description = "Points deduction"
	}
	return s.Debit(userID, amount, description, removedBy)
}

func (s *LedgerService) award(userID, displayName string, points int64, category, description, awardedBy string) (int64, error) {
	if _, err := s.EnsureAccount(userID, displayName); err != nil {
		return 0, err
	}
	return s.Credit(userID, points, category, description, awardedBy)
}

// GetLeaderboard returns up to limit accounts ordered by balance.
func (s *LedgerService) GetLeaderboard(limit int) ([]models.LeaderboardEntry, error) {
	if limit < 1 {
		return nil, errors.New(errors.ErrCodeValidation, "leaderboard limit must be at least 1")
	}
	return s.repo.GetLeaderboard(limit)
}

// GetStats reports balance and totals derived from the activity trail.
func (s *LedgerService) GetStats(userID string) (*models.AccountStats, error) {
	if !security.ValidateUserID(userID) {
		return nil, errors.New(errors.ErrCodeValidation, "invalid user id")
	}
	return s.repo.GetStats(userID)
}

// GetActivityHistory returns recent audit entries for an account.
func (s *LedgerService) GetActivityHistory(userID string, limit int) ([]models.ActivityRecord, error) {
	if !security.ValidateUserID(userID) {
		return nil, errors.New(errors.ErrCodeValidation, "invalid user id")
	}
	if limit < 1 {
		return nil, errors.New(errors.ErrCodeValidation, "history limit must be at least 1")
	}
	return s.repo.GetActivityHistory(userID, limit)
}
