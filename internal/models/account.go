package models

import (
	"time"

	"gorm.io/gorm"
)

// Account holds one user's point balance. Accounts are created lazily on
// first award and are never deleted.
type Account struct {
	ID           uint      `gorm:"primaryKey"`
	UserID       string    `gorm:"uniqueIndex;type:varchar(64);not null"`
	DisplayName  string    `gorm:"type:varchar(255);not null"`
	Balance      int64     `gorm:"default:0;not null;check:balance >= 0"`
	LastActivity time.Time `gorm:"default:NULL"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// BeforeCreate hook for insert-time validation. Balance updates validate in
// the guarded WHERE clause, not here.
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.UserID == "" {
		return gorm.ErrInvalidData
	}
	if a.Balance < 0 {
		return gorm.ErrInvalidData
	}
	return nil
}

func (Account) TableName() string {
	return "accounts"
}

// LeaderboardEntry is a read-only projection for ranking queries.
type LeaderboardEntry struct {
	UserID      string `gorm:"column:user_id"`
	DisplayName string `gorm:"column:display_name"`
	Balance     int64  `gorm:"column:balance"`
}

// AccountStats aggregates an account's audit trail. Totals are computed from
// activity records on every call so they can never drift from the log.
type AccountStats struct {
	Balance       int64
	TotalEarned   int64
	TotalSpent    int64
	ActivityCount int64
}
