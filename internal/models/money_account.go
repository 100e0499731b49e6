package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money account types. AccountType is always stored uppercase.
const (
	AccountCash   = "CASH"
	AccountDebit  = "DEBIT"
	AccountCredit = "CREDIT"
)

// ValidAccountTypes lists the recognized account types.
var ValidAccountTypes = []string{AccountCash, AccountDebit, AccountCredit}

// MoneyAccount represents a user's money account. For CASH/DEBIT accounts
// Balance is the held amount; for CREDIT accounts it is the debt owed
// (spending increases it, payments decrease it). CreditLimit is set iff the
// account is CREDIT.
type MoneyAccount struct {
	ID          uint             `gorm:"primaryKey"`
	Name        string           `gorm:"size:64;not null"`
	AccountType string           `gorm:"size:16;index;not null"`
	Balance     decimal.Decimal  `gorm:"type:decimal(20,2);not null"`
	CreditLimit *decimal.Decimal `gorm:"type:decimal(20,2)"`
	UserID      uint             `gorm:"index;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsCredit reports whether the account tracks debt rather than held funds.
func (a *MoneyAccount) IsCredit() bool {
	return a.AccountType == AccountCredit
}
