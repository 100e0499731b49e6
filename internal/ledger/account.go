package ledger

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance-ledger/internal/models"
)

// AccountService manages money accounts. Balances are only ever mutated by
// the transaction and transfer services; account updates touch metadata.
type AccountService struct {
	DB *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{DB: db}
}

type CreateAccountInput struct {
	Name        string
	AccountType string
	Balance     decimal.Decimal
	CreditLimit *decimal.Decimal
	// OwnerID lets an admin create an account for another user. Zero means
	// the actor themselves.
	OwnerID uint
}

type UpdateAccountInput struct {
	Name        string
	AccountType string
	CreditLimit *decimal.Decimal
}

// normalizeAccount uppercases the type, validates it, and enforces the
// credit-limit invariant: required for CREDIT, cleared otherwise.
func normalizeAccount(account *models.MoneyAccount) error {
	account.AccountType = strings.ToUpper(strings.TrimSpace(account.AccountType))

	valid := false
	for _, t := range models.ValidAccountTypes {
		if account.AccountType == t {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: account type must be one of %s",
			ErrValidation, strings.Join(models.ValidAccountTypes, ", "))
	}

	if account.AccountType != models.AccountCredit {
		account.CreditLimit = nil
	} else if account.CreditLimit == nil {
		return fmt.Errorf("%w: credit limit is required for CREDIT accounts", ErrValidation)
	}
	return nil
}

func (s *AccountService) Create(in CreateAccountInput, actor Actor) (*models.MoneyAccount, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: account name is required", ErrValidation)
	}

	ownerID := actor.ID
	if in.OwnerID != 0 && in.OwnerID != actor.ID {
		if !actor.Admin {
			return nil, fmt.Errorf("%w: cannot create accounts for other users", ErrForbidden)
		}
		ownerID = in.OwnerID
	}
	var owner models.User
	if err := s.DB.First(&owner, ownerID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, ownerID)
		}
		return nil, err
	}

	account := models.MoneyAccount{
		Name:        strings.TrimSpace(in.Name),
		AccountType: in.AccountType,
		Balance:     in.Balance,
		CreditLimit: in.CreditLimit,
		UserID:      owner.ID,
	}
	if err := normalizeAccount(&account); err != nil {
		return nil, err
	}

	if err := s.DB.Create(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (s *AccountService) Update(id uint, in UpdateAccountInput, actor Actor) (*models.MoneyAccount, error) {
	var account models.MoneyAccount
	if err := s.DB.First(&account, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: account %d", ErrNotFound, id)
		}
		return nil, err
	}
	if !actor.CanAccess(account.UserID) {
		return nil, fmt.Errorf("%w: account %d", ErrForbidden, id)
	}

	if strings.TrimSpace(in.Name) != "" {
		account.Name = strings.TrimSpace(in.Name)
	}
	if in.AccountType != "" {
		account.AccountType = in.AccountType
	}
	account.CreditLimit = in.CreditLimit
	if err := normalizeAccount(&account); err != nil {
		return nil, err
	}

	if err := s.DB.Save(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// Delete removes an account that no transaction or transfer references.
func (s *AccountService) Delete(id uint, actor Actor) error {
	var account models.MoneyAccount
	if err := s.DB.First(&account, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fmt.Errorf("%w: account %d", ErrNotFound, id)
		}
		return err
	}
	if !actor.CanAccess(account.UserID) {
		return fmt.Errorf("%w: account %d", ErrForbidden, id)
	}

	var txnRefs int64
	if err := s.DB.Model(&models.Transaction{}).
		Where("money_account_id = ?", id).
		Count(&txnRefs).Error; err != nil {
		return err
	}
	var transferRefs int64
	if err := s.DB.Model(&models.Transfer{}).
		Where("send_account_id = ? OR receive_account_id = ?", id, id).
		Count(&transferRefs).Error; err != nil {
		return err
	}
	if txnRefs > 0 || transferRefs > 0 {
		return fmt.Errorf("%w: account %d is still referenced by transactions or transfers", ErrInvalidOperation, id)
	}

	return s.DB.Delete(&account).Error
}

func (s *AccountService) GetByID(id uint, actor Actor) (*models.MoneyAccount, error) {
	var account models.MoneyAccount
	if err := s.DB.First(&account, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("%w: account %d", ErrNotFound, id)
		}
		return nil, err
	}
	if !actor.CanAccess(account.UserID) {
		return nil, fmt.Errorf("%w: account %d", ErrForbidden, id)
	}
	return &account, nil
}

// ListByUser returns the user's accounts, optionally filtered by name
// substring and account type.
func (s *AccountService) ListByUser(userID uint, nameFilter, typeFilter string) ([]models.MoneyAccount, error) {
	query := s.DB.Where("user_id = ?", userID)
	if nameFilter != "" {
		query = query.Where("name LIKE ?", "%"+nameFilter+"%")
	}
	if typeFilter != "" {
		query = query.Where("account_type = ?", strings.ToUpper(strings.TrimSpace(typeFilter)))
	}

	var accounts []models.MoneyAccount
	if err := query.Order("name ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}
