package services

import (
	"github.com/cjlund9/eventpoints/internal/models"
	"github.com/cjlund9/eventpoints/internal/repositories"
	"github.com/cjlund9/eventpoints/internal/security"
	"github.com/cjlund9/eventpoints/pkg/errors"
	"github.com/cjlund9/eventpoints/pkg/logger"
)

// PurchaseResult carries what the adapter needs after a committed purchase:
// the receipt plus the item's reward reference and coordinator-alert flag.
// Fulfilment failures after this point never roll back the purchase.
type PurchaseResult struct {
	Record *models.PurchaseRecord
	Item   *models.ShopItem
}

// ShopService manages the catalog and the purchase flow. Balance mutation is
// delegated to the ledger's debit inside the purchase transaction.
type ShopService struct {
	repo       *repositories.ShopRepository
	ledgerRepo *repositories.LedgerRepository
}

func NewShopService(repo *repositories.ShopRepository, ledgerRepo *repositories.LedgerRepository) *ShopService {
	return &ShopService{
		repo:       repo,
		ledgerRepo: ledgerRepo,
	}
}

// AddItem creates an active catalog entry and returns its id.
func (s *ShopService) AddItem(name, description string, cost int64, rewardRef, customReward string, notifyCoordinator bool) (uint, error) {
	name = security.SanitizeText(name)
	if name == "" {
		return 0, errors.New(errors.ErrCodeValidation, "item name is required")
	}
	if cost <= 0 {
		return 0, errors.New(errors.ErrCodeValidation, "item cost must be positive")
	}

	item := &models.ShopItem{
		Name:              name,
		Description:       security.SanitizeText(description),
		Cost:              cost,
		RewardRef:         rewardRef,
		CustomReward:      security.SanitizeText(customReward),
		NotifyCoordinator: notifyCoordinator,
	}

	return s.repo.AddItem(item)
}

// UpdateItem rewrites an item's fields. Returns false when the item does not
// exist.
func (s *ShopService) UpdateItem(itemID uint, name, description string, cost int64, rewardRef, customReward string, notifyCoordinator bool) (bool, error) {
	name = security.SanitizeText(name)
	if name == "" {
		return false, errors.New(errors.ErrCodeValidation, "item name is required")
	}
	if cost <= 0 {
		return false, errors.New(errors.ErrCodeValidation, "item cost must be positive")
	}

	item := &models.ShopItem{
		Name:              name,
		Description:       security.SanitizeText(description),
		Cost:              cost,
		RewardRef:         rewardRef,
		CustomReward:      security.SanitizeText(customReward),
		NotifyCoordinator: notifyCoordinator,
	}

	return s.repo.UpdateItem(itemID, item)
}

// ListItems returns the active catalog, cheapest first.
func (s *ShopService) ListItems() ([]models.ShopItem, error) {
	return s.repo.ListItems()
}

// GetItem returns an active item or NOT_FOUND.
func (s *ShopService) GetItem(itemID uint) (*models.ShopItem, error) {
	return s.repo.GetItem(itemID)
}

// RemoveItem retires an item from the catalog. Purchase history referencing
// it stays intact.
func (s *ShopService) RemoveItem(itemID uint) (bool, error) {
	removed, err := s.repo.RemoveItem(itemID)
	if err != nil {
		return false, err
	}
	if removed {
		logger.Info("Shop item retired", "item_id", itemID)
	}
	return removed, nil
}

// Purchase buys an item for the account. The debit and the purchase record
// commit together or not at all; the item's active state is re-checked inside
// the transaction regardless of any caller pre-check.
func (s *ShopService) Purchase(userID string, itemID uint) (*PurchaseResult, error) {
	if !security.ValidateUserID(userID) {
		return nil, errors.New(errors.ErrCodeValidation, "invalid user id")
	}

	record, item, err := s.repo.Purchase(userID, itemID)
	if err != nil {
		return nil, err
	}

	logger.Info("Purchase committed",
		"user_id", userID,
		"item_id", item.ID,
		"item_name", item.Name,
		"cost", item.Cost,
		"receipt_id", record.ReceiptID,
	)

	return &PurchaseResult{Record: record, Item: item}, nil
}

// CanAfford is an advisory read. A later Purchase re-validates the balance;
// callers must not treat a true result as a reservation.
func (s *ShopService) CanAfford(userID string, cost int64) (bool, error) {
	if cost <= 0 {
		return false, errors.New(errors.ErrCodeValidation, "cost must be positive")
	}
	balance, err := s.ledgerRepo.GetBalance(userID)
	if err != nil {
		return false, err
	}
	return balance >= cost, nil
}

// GetUserPurchases returns an account's purchase history, newest first.
// Unknown accounts have no history.
func (s *ShopService) GetUserPurchases(userID string, limit int) ([]models.PurchaseRecord, error) {
	if limit < 1 {
		return nil, errors.New(errors.ErrCodeValidation, "history limit must be at least 1")
	}

	account, err := s.ledgerRepo.GetAccount(userID)
	if err != nil {
		if errors.IsCode(err, errors.ErrCodeNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return s.repo.GetUserPurchases(account.ID, limit)
}

// GetAllPurchases returns recent purchases across all accounts.
func (s *ShopService) GetAllPurchases(limit int) ([]models.PurchaseRecord, error) {
	if limit < 1 {
		return nil, errors.New(errors.ErrCodeValidation, "limit must be at least 1")
	}
	return s.repo.GetAllPurchases(limit)
}

// GetShopStats summarizes the catalog and purchase volume.
func (s *ShopService) GetShopStats() (*models.ShopStats, error) {
	return s.repo.GetShopStats()
}
