package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance-ledger/internal/models"
)

// TransactionService orchestrates add/update/delete of single transactions,
// keeping the owning account's balance in step. Every mutation runs inside
// one database transaction so a failure on any step leaves the ledger
// untouched.
type TransactionService struct {
	DB *gorm.DB
}

func NewTransactionService(db *gorm.DB) *TransactionService {
	return &TransactionService{DB: db}
}

type CreateTransactionInput struct {
	Amount         decimal.Decimal
	Date           *time.Time // defaults to now
	Description    string
	CategoryID     uint
	MoneyAccountID uint
}

type UpdateTransactionInput struct {
	Amount         decimal.Decimal
	Date           *time.Time // nil keeps the current date
	Description    string
	CategoryID     uint
	MoneyAccountID uint
}

// TransactionFilter narrows ListByUser. All set filters apply together.
type TransactionFilter struct {
	MoneyAccountID *uint
	CategoryID     *uint
	StartDate      *time.Time
	EndDate        *time.Time
}

// resolveRefs loads and authorizes the account and category a transaction
// points at. The actor must own the account (or be admin); private
// categories must belong to the actor unless admin.
func (s *TransactionService) resolveRefs(tx *gorm.DB, accountID, categoryID uint, actor Actor) (*models.MoneyAccount, *models.Category, error) {
	var account models.MoneyAccount
	if err := tx.First(&account, accountID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, fmt.Errorf("%w: account %d", ErrNotFound, accountID)
		}
		return nil, nil, err
	}
	if !actor.CanAccess(account.UserID) {
		return nil, nil, fmt.Errorf("%w: account %d", ErrForbidden, accountID)
	}

	category, err := resolveCategory(tx, categoryID, actor)
	if err != nil {
		return nil, nil, err
	}
	return &account, category, nil
}

func resolveCategory(tx *gorm.DB, categoryID uint, actor Actor) (*models.Category, error) {
	var category models.Category
	if err := tx.First(&category, categoryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: category %d", ErrNotFound, categoryID)
		}
		return nil, err
	}
	if !actor.CanReadCategory(&category) {
		return nil, fmt.Errorf("%w: category %d", ErrForbidden, categoryID)
	}
	return &category, nil
}

// checkCreditCap rejects an expenditure that would push a credit account's
// debt past its limit. Income is never capped so an over-limit account can
// always be paid down.
func checkCreditCap(account *models.MoneyAccount, category *models.Category) error {
	if category.Type == models.CategoryExpenditure && overCreditLimit(account) {
		return fmt.Errorf("%w: amount would exceed the credit limit of account %d", ErrInvalidOperation, account.ID)
	}
	return nil
}

// Add records a transaction and applies its balance delta. The transaction
// is owned by the account's owner, which lets admins book on behalf of a
// user.
func (s *TransactionService) Add(in CreateTransactionInput, actor Actor) (*models.Transaction, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	var created models.Transaction
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		account, category, err := s.resolveRefs(tx, in.MoneyAccountID, in.CategoryID, actor)
		if err != nil {
			return err
		}

		ApplyDelta(account, category, in.Amount)
		if err := checkCreditCap(account, category); err != nil {
			return err
		}

		date := time.Now()
		if in.Date != nil {
			date = *in.Date
		}
		created = models.Transaction{
			Amount:         in.Amount,
			Date:           date,
			Description:    in.Description,
			UserID:         account.UserID,
			CategoryID:     category.ID,
			MoneyAccountID: account.ID,
		}

		if err := tx.Save(account).Error; err != nil {
			return err
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update reverts the old balance delta, validates the new references and
// applies the new delta, then overwrites the mutable fields. Transfer-linked
// transactions cannot be updated directly.
func (s *TransactionService) Update(id uint, in UpdateTransactionInput, actor Actor) (*models.Transaction, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	var updated models.Transaction
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := tx.First(&txn, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: transaction %d", ErrNotFound, id)
			}
			return err
		}
		if !actor.CanAccess(txn.UserID) {
			return fmt.Errorf("%w: transaction %d", ErrForbidden, id)
		}
		if txn.IsTransferLinked() {
			return fmt.Errorf("%w: transaction %d belongs to transfer %d, operate on the transfer instead",
				ErrInvalidOperation, id, *txn.TransferID)
		}

		var oldAccount models.MoneyAccount
		if err := tx.First(&oldAccount, txn.MoneyAccountID).Error; err != nil {
			return err
		}
		var oldCategory models.Category
		if err := tx.First(&oldCategory, txn.CategoryID).Error; err != nil {
			return err
		}
		RevertDelta(&oldAccount, &oldCategory, txn.Amount)

		// when the account is unchanged the new delta must land on the
		// already-reverted balance, not on a fresh copy from the store
		newAccount := &oldAccount
		if in.MoneyAccountID != oldAccount.ID {
			var acc models.MoneyAccount
			if err := tx.First(&acc, in.MoneyAccountID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fmt.Errorf("%w: account %d", ErrNotFound, in.MoneyAccountID)
				}
				return err
			}
			if !actor.CanAccess(acc.UserID) {
				return fmt.Errorf("%w: account %d", ErrForbidden, in.MoneyAccountID)
			}
			newAccount = &acc
		}
		newCategory, err := resolveCategory(tx, in.CategoryID, actor)
		if err != nil {
			return err
		}

		ApplyDelta(newAccount, newCategory, in.Amount)
		if err := checkCreditCap(newAccount, newCategory); err != nil {
			return err
		}

		txn.Amount = in.Amount
		if in.Date != nil {
			txn.Date = *in.Date
		}
		txn.Description = in.Description
		txn.CategoryID = newCategory.ID
		txn.MoneyAccountID = newAccount.ID
		txn.UserID = newAccount.UserID

		if newAccount != &oldAccount {
			if err := tx.Save(&oldAccount).Error; err != nil {
				return err
			}
		}
		if err := tx.Save(newAccount).Error; err != nil {
			return err
		}
		if err := tx.Save(&txn).Error; err != nil {
			return err
		}
		updated = txn
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete reverts the transaction's balance delta and removes the row.
// Transfer-linked transactions can only go away with their transfer.
func (s *TransactionService) Delete(id uint, actor Actor) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var txn models.Transaction
		if err := tx.First(&txn, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: transaction %d", ErrNotFound, id)
			}
			return err
		}
		if !actor.CanAccess(txn.UserID) {
			return fmt.Errorf("%w: transaction %d", ErrForbidden, id)
		}
		if txn.IsTransferLinked() {
			return fmt.Errorf("%w: transaction %d belongs to transfer %d, operate on the transfer instead",
				ErrInvalidOperation, id, *txn.TransferID)
		}

		var account models.MoneyAccount
		if err := tx.First(&account, txn.MoneyAccountID).Error; err != nil {
			return err
		}
		var category models.Category
		if err := tx.First(&category, txn.CategoryID).Error; err != nil {
			return err
		}
		RevertDelta(&account, &category, txn.Amount)

		if err := tx.Save(&account).Error; err != nil {
			return err
		}
		return tx.Delete(&txn).Error
	})
}

func (s *TransactionService) GetByID(id uint, actor Actor) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.DB.First(&txn, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: transaction %d", ErrNotFound, id)
		}
		return nil, err
	}
	if !actor.CanAccess(txn.UserID) {
		return nil, fmt.Errorf("%w: transaction %d", ErrForbidden, id)
	}
	return &txn, nil
}

// ListByUser returns the user's transactions, newest first. Filters are
// conjunctive.
func (s *TransactionService) ListByUser(userID uint, f TransactionFilter) ([]models.Transaction, error) {
	query := s.DB.Where("user_id = ?", userID)
	if f.MoneyAccountID != nil {
		query = query.Where("money_account_id = ?", *f.MoneyAccountID)
	}
	if f.CategoryID != nil {
		query = query.Where("category_id = ?", *f.CategoryID)
	}
	if f.StartDate != nil {
		query = query.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		query = query.Where("date <= ?", *f.EndDate)
	}

	var txns []models.Transaction
	if err := query.Order("date DESC, id DESC").Find(&txns).Error; err != nil {
		return nil, err
	}
	return txns, nil
}
