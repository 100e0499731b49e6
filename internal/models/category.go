package models

import "time"

// Category types. Type is always stored uppercase.
const (
	CategoryIncome      = "INCOME"
	CategoryExpenditure = "EXPENDITURE"
)

// Reserved global categories used by the transfer orchestrator. They are
// seeded at migration time; a deployment without them cannot serve transfers.
const (
	TransferSentCategory     = "TRANSFER SENT"
	TransferReceivedCategory = "TRANSFER RECEIVED"
)

// ValidCategoryTypes lists the recognized category types.
var ValidCategoryTypes = []string{CategoryIncome, CategoryExpenditure}

// Category represents an income/expenditure category. A nil UserID marks a
// global category visible to every user.
type Category struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"size:64;not null"`
	Type      string    `gorm:"size:16;index;not null"`
	UserID    *uint     `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsGlobal reports whether the category is shared by all users.
func (c *Category) IsGlobal() bool {
	return c.UserID == nil
}
