package repositories

import (
	"fmt"
	"time"

	"github.com/cjlund9/eventpoints/internal/models"
	"github.com/cjlund9/eventpoints/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepository is the sole writer of accounts and activity records. Every
// balance mutation and its audit entry commit in one store transaction.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// EnsureAccount creates the account with a zero balance if it does not exist.
// Repeat calls return the existing record unchanged: the first display name
// written wins, by contract.
func (r *LedgerRepository) EnsureAccount(userID, displayName string) (*models.Account, error) {
	account := models.Account{
		UserID:      userID,
		DisplayName: displayName,
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&account).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStoreFailure, "failed to ensure account")
	}

	// Re-read: the insert may have been a no-op on conflict.
	var existing models.Account
	if err := r.db.Where("user_id = ?", userID).First(&existing).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStoreFailure, "failed to load account")
	}
	return &existing, nil
}

// GetBalance returns the current balance, or 0 for an unknown account without
// creating one.
func (r *LedgerRepository) GetBalance(userID string) (int64, error) {
	var account models.Account
	result := r.db.Select("balance").Where("user_id = ?", userID).First(&account)

	if result.Error == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeStoreFailure, "failed to get balance")
	}

	return account.Balance, nil
}

// GetAccount looks up an account by user id.
func (r *LedgerRepository) GetAccount(userID string) (*models.Account, error) {
	var account models.Account
	result := r.db.Where("user_id = ?", userID).First(&account)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "account not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeStoreFailure, "failed to get account")
	}

	return &account, nil
}

// Credit increases the balance and appends one positive activity record. Both
// writes commit as one unit; the account must already exist.
func (r *LedgerRepository) Credit(userID string, amount int64, category, description, awardedBy string) (int64, error) {
	var newBalance int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&account).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "account not found")
			}
			return errors.Wrap(err, errors.ErrCodeStoreFailure, "failed to get account")
		}

		result := tx.Model(&models.Account{}).
			Where("id = ?", account.ID).
			Updates(map[string]interface{}{
				"balance":       gorm.Expr("balance + ?", amount),
				"last_activity": time.Now().UTC(),
			})
		if result.Error != nil {
			return errors.Wrap(result.Error, errors.ErrCodeStoreFailure, "failed to update balance")
		}

		record := &models.ActivityRecord{
			AccountID:   account.ID,
			Category:    category,
			Delta:       amount,
			Description: description,
			AwardedBy:   awardedBy,
		}
		if err := tx.Create(record).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeStoreFailure, "failed to create activity record")
		}

		newBalance = account.Balance + amount
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newBalance, nil
}

// Debit decreases the balance and appends one negative activity record, both
// in one transaction. Fails with INSUFFICIENT_FUNDS when the balance cannot
// cover the amount; the failed attempt leaves no state and no audit entry.
func (r *LedgerRepository) Debit(userID string, amount int64, description, actorID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		_, err := debitInTx(tx, userID, amount, models.CategoryDeduction, description, actorID)
		return err
	})
}

// debitInTx performs the conditional debit inside an existing transaction so
// the shop purchase path can compose with it. The overdraft guard lives in
// the WHERE clause: the update only lands when balance >= amount, and the
// affected-row count is the verdict.
func debitInTx(tx *gorm.DB, userID string, amount int64, category, description, actorID string) (*models.Account, error) {
	var account models.Account
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.New(errors.ErrCodeInsufficientFunds,
				fmt.Sprintf("insufficient points: have 0, need %d", amount))
		}
		return nil, errors.Wrap(err, errors.ErrCodeStoreFailure, "failed to get account")
	}

	result := tx.Model(&models.Account{}).
		Where("id = ? AND balance >= ?", account.ID, amount).
		Updates(map[string]interface{}{
			"balance":       gorm.Expr("balance - ?", amount),
			"last_activity": time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeStoreFailure, "failed to update balance")
	}
	if result.RowsAffected == 0 {
		return nil, errors.New(errors.ErrCodeInsufficientFunds,
			fmt.Sprintf("insufficient points: have %d, need %d", account.Balance, amount))
	}

	record := &models.ActivityRecord{
		AccountID:   account.ID,
		Category:    category,
		Delta:       -amount,
		Description: description,
		AwardedBy:   actorID,
	}
	if err := tx.Create(record).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStoreFailure, "failed to create activity record")
	}

	account.Balance -= amount
	return &account, nil
}

// GetLeaderboard ranks accounts by balance, ties broken by creation order.
func (r *LedgerRepository) GetLeaderboard(limit int) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	result := r.db.Model(&models.Account{}).
		Select("user_id, display_name, balance").
		Order("balance DESC, id ASC").
		Limit(limit).
		Scan(&entries)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeStoreFailure, "failed to get leaderboard")
	}

	return entries, nil
}

// GetStats aggregates earned/spent totals from the activity trail. Unknown
// accounts report zeroes.
func (r *LedgerRepository) GetStats(userID string) (*models.AccountStats, error) {
	var account models.Account
	result := r.db.Where("user_id = ?", userID).First(&account)
	if result.Error == gorm.ErrRecordNotFound {
		return &models.AccountStats{}, nil
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeStoreFailure, "failed to get account")
	}

	stats := models.AccountStats{Balance: account.Balance}
	row := r.db.Model(&models.ActivityRecord{}).
		Select("COALESCE(SUM(CASE WHEN delta > 0 THEN delta ELSE 0 END), 0) AS total_earned, "+
			"COALESCE(SUM(CASE WHEN delta < 0 THEN -delta ELSE 0 END), 0) AS total_spent, "+
			"COUNT(*) AS activity_count").
		Where("account_id = ?", account.ID).
		Row()
	if err := row.Scan(&stats.TotalEarned, &stats.TotalSpent, &stats.ActivityCount); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStoreFailure, "failed to aggregate activity")
	}

	return &stats, nil
}

// GetActivityHistory returns the most recent activity records for an account.
func (r *LedgerRepository) GetActivityHistory(userID string, limit int) ([]models.ActivityRecord, error) {
	account, err := r.GetAccount(userID)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var records []models.ActivityRecord
	result := r.db.Where("account_id = ?", account.ID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeStoreFailure, "failed to get activity history")
	}

	return records, nil
}
