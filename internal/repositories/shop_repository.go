package repositories

import (
	"github.com/cjlund9/eventpoints/internal/models"
	"github.com/cjlund9/eventpoints/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ShopRepository owns the item catalog and purchase records. Purchases debit
// the buyer through the ledger's conditional update inside one transaction.
type ShopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) *ShopRepository {
	return &ShopRepository{db: db}
}

// AddItem inserts a new active catalog entry and returns its id.
func (r *ShopRepository) AddItem(item *models.ShopItem) (uint, error) {
	item.State = models.ItemStateActive
	if err := r.db.Create(item).Error; err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeStoreFailure, "failed to create shop item")
	}
	return item.ID, nil
}

// UpdateItem rewrites an item's editable fields. Returns false when no row
// matched.
func (r *ShopRepository) UpdateItem(itemID uint, item *models.ShopItem) (bool, error) {
	result := r.db.Model(&models.ShopItem{}).
		Where("id = ?", itemID).
		Updates(map[string]interface{}{
			"name":               item.Name,
			"description":        item.Description,
			"cost":               item.Cost,
			"reward_ref":         item.RewardRef,
			"custom_reward":      item.CustomReward,
			"notify_coordinator": item.NotifyCoordinator,
		})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeStoreFailure, "failed to update shop item")
	}
	return result.RowsAffected > 0, nil
}

// ListItems returns active items, cheapest first. Retired items never appear.
func (r *ShopRepository) ListItems() ([]models.ShopItem, error) {
	var items []models.ShopItem
	result := r.db.Where("state = ?", models.ItemStateActive).
		Order("cost ASC, id ASC").
		Find(&items)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeStoreFailure, "failed to list shop items")
	}

	return items, nil
}

// GetItem returns an item only while it is active.
func (r *ShopRepository) GetItem(itemID uint) (*models.ShopItem, error) {
	var item models.ShopItem
	result := r.db.Where("id = ? AND state = ?", itemID, models.ItemStateActive).First(&item)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "shop item not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeStoreFailure, "failed to get shop item")
	}

	return &item, nil
}

// RemoveItem retires an active item. Past purchase records keep referencing
// it; repeat calls return false.
func (r *ShopRepository) RemoveItem(itemID uint) (bool, error) {
	result := r.db.Model(&models.ShopItem{}).
		Where("id = ? AND state = ?", itemID, models.ItemStateActive).
		Update("state", models.ItemStateRetired)

	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeStoreFailure, "failed to remove shop item")
	}

	return result.RowsAffected > 0, nil
}

// Purchase executes the buy in one transaction: re-check the item is still
// active, debit the buyer through the ledger guard, then write the purchase
// record. The item is re-read inside the transaction even when the caller
// already fetched it, closing the window against a concurrent removal.
func (r *ShopRepository) Purchase(userID string, itemID uint) (*models.PurchaseRecord, *models.ShopItem, error) {
	var record *models.PurchaseRecord
	var item models.ShopItem

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND state = ?", itemID, models.ItemStateActive).
			First(&item).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.New(errors.ErrCodeNotFound, "shop item not found")
			}
			return errors.Wrap(err, errors.ErrCodeStoreFailure, "failed to get shop item")
		}

		account, err := debitInTx(tx, userID, item.Cost, models.CategoryDeduction,
			"Purchased "+item.Name, "")
		if err != nil {
			return err
		}

		record = &models.PurchaseRecord{
			ReceiptID: uuid.NewString(),
			AccountID: account.ID,
			ItemID:    item.ID,
			ItemName:  item.Name,
			Cost:      item.Cost,
		}
		if err := tx.Create(record).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeStoreFailure, "failed to create purchase record")
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return record, &item, nil
}

// GetUserPurchases returns an account's purchase history, newest first.
func (r *ShopRepository) GetUserPurchases(accountID uint, limit int) ([]models.PurchaseRecord, error) {
	var records []models.PurchaseRecord
	result := r.db.Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeStoreFailure, "failed to get purchase history")
	}

	return records, nil
}

// GetAllPurchases returns recent purchases across all accounts.
func (r *ShopRepository) GetAllPurchases(limit int) ([]models.PurchaseRecord, error) {
	var records []models.PurchaseRecord
	result := r.db.Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeStoreFailure, "failed to get purchases")
	}

	return records, nil
}

// GetShopStats summarizes the active catalog and all-time purchase volume.
func (r *ShopRepository) GetShopStats() (*models.ShopStats, error) {
	var stats models.ShopStats

	row := r.db.Model(&models.ShopItem{}).
		Select("COUNT(*) AS total_items, COALESCE(SUM(cost), 0) AS total_value").
		Where("state = ?", models.ItemStateActive).
		Row()
	if err := row.Scan(&stats.TotalItems, &stats.TotalValue); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStoreFailure, "failed to aggregate shop items")
	}

	row = r.db.Model(&models.PurchaseRecord{}).
		Select("COUNT(*) AS total_purchases, COALESCE(SUM(cost), 0) AS total_spent").
		Row()
	if err := row.Scan(&stats.TotalPurchases, &stats.TotalSpent); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStoreFailure, "failed to aggregate purchases")
	}

	return &stats, nil
}
