package repositories

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/cjlund9/eventpoints/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens a throwaway SQLite store per test. A file-backed database
// (not :memory:) so every pooled connection sees the same data, with an
// immediate transaction mode so concurrent write transactions queue instead
// of deadlocking.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_journal_mode=WAL&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Account{},
		&models.ActivityRecord{},
		&models.ShopItem{},
		&models.PurchaseRecord{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// sumDeltas recomputes an account's balance from its audit trail.
func sumDeltas(t *testing.T, db *gorm.DB, userID string) int64 {
	t.Helper()

	var account models.Account
	if err := db.Where("user_id = ?", userID).First(&account).Error; err != nil {
		t.Fatalf("failed to load account %s: %v", userID, err)
	}

	var sum int64
	row := db.Model(&models.ActivityRecord{}).
		Select("COALESCE(SUM(delta), 0)").
		Where("account_id = ?", account.ID).
		Row()
	if err := row.Scan(&sum); err != nil {
		t.Fatalf("failed to sum deltas: %v", err)
	}
	return sum
}

// requireLedgerConsistency asserts balance == sum of all activity deltas.
func requireLedgerConsistency(t *testing.T, db *gorm.DB, repo *LedgerRepository, userID string) {
	t.Helper()

	balance, err := repo.GetBalance(userID)
	if err != nil {
		t.Fatalf("GetBalance() error = %v", err)
	}

	if sum := sumDeltas(t, db, userID); sum != balance {
		t.Errorf("ledger inconsistent: balance = %d, sum of deltas = %d", balance, sum)
	}
}
