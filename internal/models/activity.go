package models

import (
	"time"
)

// ActivityRecord is an append-only audit entry for a balance change. Rows are
// never updated or deleted; the sum of deltas for an account must equal its
// current balance.
type ActivityRecord struct {
	ID          uint      `gorm:"primaryKey"`
	AccountID   uint      `gorm:"not null;index"`
	Account     Account   `gorm:"foreignKey:AccountID"`
	Category    string    `gorm:"type:varchar(50);not null;index"`
	Delta       int64     `gorm:"not null"`
	Description string    `gorm:"type:text"`
	AwardedBy   string    `gorm:"type:varchar(64)"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
}

// Activity category constants
const (
	CategoryParticipation     = "participation"
	CategoryCombatAchievement = "combat_achievement"
	CategoryCollectionLog     = "collection_log"
	CategoryEventCompetition  = "event_competition"
	CategoryCustom            = "custom"
	CategoryDeduction         = "deduction"
)

// ValidCategory reports whether category is one of the known activity kinds.
func ValidCategory(category string) bool {
	switch category {
	case CategoryParticipation, CategoryCombatAchievement, CategoryCollectionLog,
		CategoryEventCompetition, CategoryCustom, CategoryDeduction:
		return true
	}
	return false
}

func (ActivityRecord) TableName() string {
	return "activity_records"
}
