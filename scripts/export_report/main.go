package main

import (
	"fmt"
	"log"
	"os"

	"github.com/cjlund9/eventpoints/internal/models"
	"github.com/joho/godotenv"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Dumps the leaderboard, the recent activity trail, and purchase history to
// an xlsx workbook for coordinators. Read-only; safe to run against the live
// database.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		envOr("DB_HOST", "localhost"), envOr("DB_PORT", "5432"),
		envOr("DB_USER", "eventpoints"), os.Getenv("DB_PASSWORD"),
		envOr("DB_NAME", "eventpoints_db"), envOr("DB_SSLMODE", "disable"))

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect database:", err)
	}

	outPath := envOr("REPORT_PATH", "eventpoints_report.xlsx")

	f := excelize.NewFile()
	defer f.Close()

	if err := writeLeaderboard(db, f); err != nil {
		log.Fatal(err)
	}
	if err := writeActivity(db, f); err != nil {
		log.Fatal(err)
	}
	if err := writePurchases(db, f); err != nil {
		log.Fatal(err)
	}

	// Drop the default sheet left over from NewFile.
	f.DeleteSheet("Sheet1")

	if err := f.SaveAs(outPath); err != nil {
		log.Fatal("failed to save report:", err)
	}

	fmt.Printf("Report written to %s\n", outPath)
}

func writeLeaderboard(db *gorm.DB, f *excelize.File) error {
	var accounts []models.Account
	if err := db.Order("balance DESC, id ASC").Find(&accounts).Error; err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}

	sheet := "Leaderboard"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Rank", "User ID", "Display Name", "Balance"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, a := range accounts {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), a.UserID)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), a.DisplayName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), a.Balance)
	}

	return nil
}

func writeActivity(db *gorm.DB, f *excelize.File) error {
	var records []models.ActivityRecord
	if err := db.Preload("Account").
		Order("created_at DESC, id DESC").
		Limit(5000).
		Find(&records).Error; err != nil {
		return fmt.Errorf("failed to load activity: %w", err)
	}

	sheet := "Activity"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Timestamp", "User ID", "Category", "Delta", "Description", "Awarded By"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, rec := range records {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), rec.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), rec.Account.UserID)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), rec.Category)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), rec.Delta)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), rec.Description)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), rec.AwardedBy)
	}

	return nil
}

func writePurchases(db *gorm.DB, f *excelize.File) error {
	var records []models.PurchaseRecord
	if err := db.Preload("Account").
		Order("created_at DESC, id DESC").
		Limit(5000).
		Find(&records).Error; err != nil {
		return fmt.Errorf("failed to load purchases: %w", err)
	}

	sheet := "Purchases"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Timestamp", "Receipt", "User ID", "Item", "Cost"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, rec := range records {
		row := i + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), rec.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), rec.ReceiptID)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), rec.Account.UserID)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), rec.ItemName)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), rec.Cost)
	}

	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
