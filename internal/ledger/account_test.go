package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finance-ledger/internal/models"
)

func TestAccountCreate_TypeAndCreditLimit(t *testing.T) {
	db := setupDB(t)
	svc := NewAccountService(db)
	user := seedUser(t, db, "user@example.com", false)

	// type is normalized to uppercase
	account, err := svc.Create(CreateAccountInput{
		Name:        "Wallet",
		AccountType: "cash",
		Balance:     dec("100"),
	}, actorOf(user))
	require.NoError(t, err)
	assert.Equal(t, models.AccountCash, account.AccountType)
	assert.Nil(t, account.CreditLimit)

	// credit accounts require a limit
	_, err = svc.Create(CreateAccountInput{
		Name:        "Card",
		AccountType: "CREDIT",
	}, actorOf(user))
	assert.ErrorIs(t, err, ErrValidation)

	limit := dec("500")
	card, err := svc.Create(CreateAccountInput{
		Name:        "Card",
		AccountType: "CREDIT",
		CreditLimit: &limit,
	}, actorOf(user))
	require.NoError(t, err)
	require.NotNil(t, card.CreditLimit)

	// non-credit accounts drop a supplied limit
	other, err := svc.Create(CreateAccountInput{
		Name:        "Checking",
		AccountType: "DEBIT",
		CreditLimit: &limit,
	}, actorOf(user))
	require.NoError(t, err)
	assert.Nil(t, other.CreditLimit)

	_, err = svc.Create(CreateAccountInput{
		Name:        "Vault",
		AccountType: "GOLD",
	}, actorOf(user))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAccountCreate_ForAnotherUser(t *testing.T) {
	db := setupDB(t)
	svc := NewAccountService(db)
	user := seedUser(t, db, "user@example.com", false)
	other := seedUser(t, db, "other@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)

	_, err := svc.Create(CreateAccountInput{
		Name:        "Sneaky",
		AccountType: "CASH",
		OwnerID:     other.ID,
	}, actorOf(user))
	assert.ErrorIs(t, err, ErrForbidden)

	account, err := svc.Create(CreateAccountInput{
		Name:        "Managed",
		AccountType: "CASH",
		OwnerID:     other.ID,
	}, actorOf(admin))
	require.NoError(t, err)
	assert.Equal(t, other.ID, account.UserID)

	_, err = svc.Create(CreateAccountInput{
		Name:        "Ghost",
		AccountType: "CASH",
		OwnerID:     9999,
	}, actorOf(admin))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountUpdate_SwitchingTypeEnforcesInvariant(t *testing.T) {
	db := setupDB(t)
	svc := NewAccountService(db)
	user := seedUser(t, db, "user@example.com", false)
	account := seedAccount(t, db, user.ID, models.AccountCash, "100", nil)

	// switching to CREDIT without a limit fails
	_, err := svc.Update(account.ID, UpdateAccountInput{AccountType: "CREDIT"}, actorOf(user))
	assert.ErrorIs(t, err, ErrValidation)

	limit := dec("300")
	updated, err := svc.Update(account.ID, UpdateAccountInput{
		AccountType: "credit",
		CreditLimit: &limit,
	}, actorOf(user))
	require.NoError(t, err)
	assert.Equal(t, models.AccountCredit, updated.AccountType)
	require.NotNil(t, updated.CreditLimit)

	// switching back clears the limit
	updated, err = svc.Update(account.ID, UpdateAccountInput{AccountType: "CASH"}, actorOf(user))
	require.NoError(t, err)
	assert.Nil(t, updated.CreditLimit)

	// balance is untouched by metadata updates
	requireBalance(t, db, account.ID, "100")
}

func TestAccountDelete_RestrictedWhileReferenced(t *testing.T) {
	db := setupDB(t)
	svc := NewAccountService(db)
	txnSvc := NewTransactionService(db)
	user := seedUser(t, db, "user@example.com", false)
	spend := seedCategory(t, db, "Spend", models.CategoryExpenditure, &user.ID)
	account := seedAccount(t, db, user.ID, models.AccountCash, "100", nil)

	txn, err := txnSvc.Add(CreateTransactionInput{
		Amount:         dec("10"),
		CategoryID:     spend.ID,
		MoneyAccountID: account.ID,
	}, actorOf(user))
	require.NoError(t, err)

	err = svc.Delete(account.ID, actorOf(user))
	assert.ErrorIs(t, err, ErrInvalidOperation)

	require.NoError(t, txnSvc.Delete(txn.ID, actorOf(user)))
	require.NoError(t, svc.Delete(account.ID, actorOf(user)))
}

func TestAccountAccess(t *testing.T) {
	db := setupDB(t)
	svc := NewAccountService(db)
	user := seedUser(t, db, "user@example.com", false)
	stranger := seedUser(t, db, "stranger@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	account := seedAccount(t, db, user.ID, models.AccountCash, "100", nil)

	_, err := svc.GetByID(account.ID, actorOf(stranger))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetByID(account.ID, actorOf(admin))
	assert.NoError(t, err)

	_, err = svc.Update(account.ID, UpdateAccountInput{Name: "Hacked"}, actorOf(stranger))
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(account.ID, actorOf(stranger))
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetByID(9999, actorOf(user))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountListByUser(t *testing.T) {
	db := setupDB(t)
	svc := NewAccountService(db)
	user := seedUser(t, db, "user@example.com", false)
	other := seedUser(t, db, "other@example.com", false)

	seedAccount(t, db, user.ID, models.AccountCash, "1", nil)
	seedAccount(t, db, user.ID, models.AccountDebit, "2", nil)
	seedAccount(t, db, other.ID, models.AccountCash, "3", nil)

	list, err := svc.ListByUser(user.ID, "", "")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	byType, err := svc.ListByUser(user.ID, "", "cash")
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, models.AccountCash, byType[0].AccountType)
}
