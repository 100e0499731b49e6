package database

import (
	"fmt"

	"finance-ledger/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.MoneyAccount{},
		&models.Transfer{},
		&models.Transaction{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// SeedReservedCategories creates the global transfer categories if they are
// missing. The transfer orchestrator refuses to start without them, so this
// runs right after migration.
func SeedReservedCategories(db *gorm.DB) error {
	reserved := []models.Category{
		{Name: models.TransferSentCategory, Type: models.CategoryExpenditure},
		{Name: models.TransferReceivedCategory, Type: models.CategoryIncome},
	}

	for _, cat := range reserved {
		var count int64
		if err := db.Model(&models.Category{}).
			Where("name = ? AND user_id IS NULL", cat.Name).
			Count(&count).Error; err != nil {
			return fmt.Errorf("check reserved category %q: %w", cat.Name, err)
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&cat).Error; err != nil {
			return fmt.Errorf("seed reserved category %q: %w", cat.Name, err)
		}
	}
	return nil
}
