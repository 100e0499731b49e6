package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single ledger movement on a money account.
// A non-nil TransferID marks a row synthesized by a transfer; such rows can
// only be changed by operating on the transfer itself.
type Transaction struct {
	ID             uint            `gorm:"primaryKey"`
	Amount         decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Date           time.Time       `gorm:"index;not null"`
	Description    string          `gorm:"size:255"`
	UserID         uint            `gorm:"index;not null"`
	CategoryID     uint            `gorm:"index;not null"`
	MoneyAccountID uint            `gorm:"index;not null"`
	TransferID     *uint           `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	MoneyAccount MoneyAccount `gorm:"constraint:OnDelete:RESTRICT"`
	Category     Category     `gorm:"constraint:OnDelete:RESTRICT"`
	Transfer     *Transfer    `gorm:"constraint:OnDelete:CASCADE"`
}

// IsTransferLinked reports whether the transaction belongs to a transfer.
func (t *Transaction) IsTransferLinked() bool {
	return t.TransferID != nil
}
