package ledger

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"finance-ledger/internal/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "ledger_test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.MoneyAccount{},
		&models.Transfer{},
		&models.Transaction{},
	))

	// reserved transfer categories, as seeded at startup
	require.NoError(t, db.Create(&models.Category{
		Name: models.TransferSentCategory,
		Type: models.CategoryExpenditure,
	}).Error)
	require.NoError(t, db.Create(&models.Category{
		Name: models.TransferReceivedCategory,
		Type: models.CategoryIncome,
	}).Error)

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, admin bool) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "x",
		IsAdmin:      admin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedCategory(t *testing.T, db *gorm.DB, name, categoryType string, ownerID *uint) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Type: categoryType, UserID: ownerID}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedAccount(t *testing.T, db *gorm.DB, ownerID uint, accountType, balance string, creditLimit *string) *models.MoneyAccount {
	t.Helper()
	account := &models.MoneyAccount{
		Name:        "Account " + accountType,
		AccountType: accountType,
		Balance:     dec(balance),
		UserID:      ownerID,
	}
	if creditLimit != nil {
		limit := dec(*creditLimit)
		account.CreditLimit = &limit
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}

func reloadAccount(t *testing.T, db *gorm.DB, id uint) *models.MoneyAccount {
	t.Helper()
	var account models.MoneyAccount
	require.NoError(t, db.First(&account, id).Error)
	return &account
}

func requireBalance(t *testing.T, db *gorm.DB, accountID uint, want string) {
	t.Helper()
	account := reloadAccount(t, db, accountID)
	require.Truef(t, account.Balance.Equal(dec(want)),
		"account %d balance = %s, want %s", accountID, account.Balance, want)
}

func actorOf(u *models.User) Actor {
	return ActorFor(u)
}
