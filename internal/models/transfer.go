package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer moves an amount between two accounts of the same owner. It owns
// exactly two synthesized transactions (the debit on the sending account and
// the credit on the receiving one), deleted in cascade with the transfer.
type Transfer struct {
	ID               uint            `gorm:"primaryKey"`
	Amount           decimal.Decimal `gorm:"type:decimal(20,2);not null"`
	Date             time.Time       `gorm:"index;not null"`
	Description      string          `gorm:"size:255"`
	UserID           uint            `gorm:"index;not null"`
	SendAccountID    uint            `gorm:"index;not null"`
	ReceiveAccountID uint            `gorm:"index;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	SendAccount    MoneyAccount `gorm:"foreignKey:SendAccountID;constraint:OnDelete:RESTRICT"`
	ReceiveAccount MoneyAccount `gorm:"foreignKey:ReceiveAccountID;constraint:OnDelete:RESTRICT"`
}
