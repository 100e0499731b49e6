package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance-ledger/internal/models"
)

// ReservedCategories holds the two global categories that tag the
// transactions a transfer synthesizes.
type ReservedCategories struct {
	Sent     models.Category
	Received models.Category
}

// LoadReservedCategories resolves the reserved transfer categories by name.
// Their absence is a deployment misconfiguration, reported as such so the
// process can fail before serving traffic.
func LoadReservedCategories(db *gorm.DB) (ReservedCategories, error) {
	var rc ReservedCategories
	if err := db.Where("name = ? AND user_id IS NULL", models.TransferSentCategory).
		First(&rc.Sent).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return rc, fmt.Errorf("%w: reserved category %q is missing", ErrConfiguration, models.TransferSentCategory)
		}
		return rc, err
	}
	if err := db.Where("name = ? AND user_id IS NULL", models.TransferReceivedCategory).
		First(&rc.Received).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return rc, fmt.Errorf("%w: reserved category %q is missing", ErrConfiguration, models.TransferReceivedCategory)
		}
		return rc, err
	}
	return rc, nil
}

// TransferService orchestrates transfers between two accounts of one owner.
// A transfer is all-or-nothing: the row, its two synthesized transactions
// and both balance mutations commit together or not at all.
type TransferService struct {
	DB       *gorm.DB
	Reserved ReservedCategories
}

func NewTransferService(db *gorm.DB, reserved ReservedCategories) *TransferService {
	return &TransferService{DB: db, Reserved: reserved}
}

type CreateTransferInput struct {
	Amount           decimal.Decimal
	Date             *time.Time // defaults to now
	Description      string
	SendAccountID    uint
	ReceiveAccountID uint
}

// TransferFilter narrows ListByUser. The account filter matches transfers
// where the account is sender or receiver.
type TransferFilter struct {
	MoneyAccountID *uint
	StartDate      *time.Time
	EndDate        *time.Time
}

// Add moves Amount from the sending to the receiving account. The send side
// behaves like an expenditure and the receive side like an income, so CREDIT
// accounts gain debt when sending and shed debt when receiving. Non-credit
// senders need sufficient funds up front; credit senders must stay within
// their limit after the debit.
func (s *TransferService) Add(in CreateTransferInput, actor Actor) (*models.Transfer, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if in.SendAccountID == in.ReceiveAccountID {
		return nil, fmt.Errorf("%w: sending and receiving account must differ", ErrValidation)
	}

	var created models.Transfer
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var send models.MoneyAccount
		if err := tx.First(&send, in.SendAccountID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: account %d", ErrNotFound, in.SendAccountID)
			}
			return err
		}
		var receive models.MoneyAccount
		if err := tx.First(&receive, in.ReceiveAccountID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: account %d", ErrNotFound, in.ReceiveAccountID)
			}
			return err
		}

		if !actor.CanAccess(send.UserID) {
			return fmt.Errorf("%w: account %d", ErrForbidden, send.ID)
		}
		if !actor.CanAccess(receive.UserID) {
			return fmt.Errorf("%w: account %d", ErrForbidden, receive.ID)
		}
		if send.UserID != receive.UserID {
			return fmt.Errorf("%w: both accounts must belong to the same owner", ErrValidation)
		}

		if !send.IsCredit() && send.Balance.LessThan(in.Amount) {
			return fmt.Errorf("%w: insufficient funds in account %d", ErrInvalidOperation, send.ID)
		}

		ApplyDelta(&send, &s.Reserved.Sent, in.Amount)
		// the limit check sees the post-transfer debt level
		if overCreditLimit(&send) {
			return fmt.Errorf("%w: transfer would exceed the credit limit of account %d", ErrInvalidOperation, send.ID)
		}
		ApplyDelta(&receive, &s.Reserved.Received, in.Amount)

		date := time.Now()
		if in.Date != nil {
			date = *in.Date
		}
		created = models.Transfer{
			Amount:           in.Amount,
			Date:             date,
			Description:      in.Description,
			UserID:           send.UserID,
			SendAccountID:    send.ID,
			ReceiveAccountID: receive.ID,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		sentTxn := s.associatedTransaction(&created, &s.Reserved.Sent, send.ID)
		receivedTxn := s.associatedTransaction(&created, &s.Reserved.Received, receive.ID)
		if err := tx.Create(sentTxn).Error; err != nil {
			return err
		}
		if err := tx.Create(receivedTxn).Error; err != nil {
			return err
		}

		if err := tx.Save(&send).Error; err != nil {
			return err
		}
		return tx.Save(&receive).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Delete reverts both balance mutations and removes the transfer together
// with its two transactions.
func (s *TransferService) Delete(id uint, actor Actor) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var transfer models.Transfer
		if err := tx.First(&transfer, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: transfer %d", ErrNotFound, id)
			}
			return err
		}
		if !actor.CanAccess(transfer.UserID) {
			return fmt.Errorf("%w: transfer %d", ErrForbidden, id)
		}

		var send models.MoneyAccount
		if err := tx.First(&send, transfer.SendAccountID).Error; err != nil {
			return err
		}
		var receive models.MoneyAccount
		if err := tx.First(&receive, transfer.ReceiveAccountID).Error; err != nil {
			return err
		}

		RevertDelta(&send, &s.Reserved.Sent, transfer.Amount)
		RevertDelta(&receive, &s.Reserved.Received, transfer.Amount)

		if err := tx.Save(&send).Error; err != nil {
			return err
		}
		if err := tx.Save(&receive).Error; err != nil {
			return err
		}

		if err := tx.Where("transfer_id = ?", transfer.ID).
			Delete(&models.Transaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&transfer).Error
	})
}

func (s *TransferService) GetByID(id uint, actor Actor) (*models.Transfer, error) {
	var transfer models.Transfer
	if err := s.DB.First(&transfer, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: transfer %d", ErrNotFound, id)
		}
		return nil, err
	}
	if !actor.CanAccess(transfer.UserID) {
		return nil, fmt.Errorf("%w: transfer %d", ErrForbidden, id)
	}
	return &transfer, nil
}

// ListByUser returns the user's transfers, newest first.
func (s *TransferService) ListByUser(userID uint, f TransferFilter) ([]models.Transfer, error) {
	query := s.DB.Where("user_id = ?", userID)
	if f.MoneyAccountID != nil {
		query = query.Where("send_account_id = ? OR receive_account_id = ?", *f.MoneyAccountID, *f.MoneyAccountID)
	}
	if f.StartDate != nil {
		query = query.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		query = query.Where("date <= ?", *f.EndDate)
	}

	var transfers []models.Transfer
	if err := query.Order("date DESC, id DESC").Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

func (s *TransferService) associatedTransaction(transfer *models.Transfer, category *models.Category, accountID uint) *models.Transaction {
	transferID := transfer.ID
	return &models.Transaction{
		Amount:         transfer.Amount,
		Date:           transfer.Date,
		Description:    fmt.Sprintf("Transfer: %s", transfer.Description),
		UserID:         transfer.UserID,
		CategoryID:     category.ID,
		MoneyAccountID: accountID,
		TransferID:     &transferID,
	}
}
