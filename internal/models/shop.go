package models

import (
	"time"

	"gorm.io/gorm"
)

// ShopItem is a catalog entry priced in points. Removal is a lifecycle flip to
// retired, never a physical delete, so purchase history keeps valid item ids.
type ShopItem struct {
	ID                uint      `gorm:"primaryKey"`
	Name              string    `gorm:"type:varchar(255);not null"`
	Description       string    `gorm:"type:text"`
	Cost              int64     `gorm:"not null"`
	RewardRef         string    `gorm:"type:varchar(64)"` // opaque role/reward id for the adapter
	CustomReward      string    `gorm:"type:text"`
	State             string    `gorm:"type:varchar(20);default:'active';index"`
	NotifyCoordinator bool      `gorm:"default:false;not null"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

// Item lifecycle states
const (
	ItemStateActive  = "active"
	ItemStateRetired = "retired"
)

// BeforeCreate hook for insert-time validation. Catalog updates go through
// column-level Updates and are validated in the service layer.
func (i *ShopItem) BeforeCreate(tx *gorm.DB) error {
	if i.Name == "" {
		return gorm.ErrInvalidData
	}
	if i.Cost <= 0 {
		return gorm.ErrInvalidData
	}
	if i.State != ItemStateActive && i.State != ItemStateRetired {
		return gorm.ErrInvalidData
	}
	return nil
}

func (ShopItem) TableName() string {
	return "shop_items"
}

// PurchaseRecord is an append-only audit entry for a completed purchase. The
// item name and cost are denormalized so later catalog edits cannot corrupt
// history. Every record pairs with exactly one committed debit.
type PurchaseRecord struct {
	ID        uint      `gorm:"primaryKey"`
	ReceiptID string    `gorm:"uniqueIndex;type:varchar(36);not null"`
	AccountID uint      `gorm:"not null;index"`
	Account   Account   `gorm:"foreignKey:AccountID"`
	ItemID    uint      `gorm:"not null;index"`
	ItemName  string    `gorm:"type:varchar(255);not null"`
	Cost      int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
}

func (PurchaseRecord) TableName() string {
	return "purchase_records"
}

// ShopStats summarizes the catalog and its purchase history.
type ShopStats struct {
	TotalItems     int64
	TotalValue     int64
	TotalPurchases int64
	TotalSpent     int64
}
