package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"finance-ledger/internal/models"
)

func newTransferService(t *testing.T, db *gorm.DB) *TransferService {
	t.Helper()
	reserved, err := LoadReservedCategories(db)
	require.NoError(t, err)
	return NewTransferService(db, reserved)
}

func TestTransferAdd_CashToCash(t *testing.T) {
	db := setupDB(t)
	svc := newTransferService(t, db)
	owner := seedUser(t, db, "owner@example.com", false)
	from := seedAccount(t, db, owner.ID, models.AccountCash, "100", nil)
	to := seedAccount(t, db, owner.ID, models.AccountDebit, "20", nil)

	transfer, err := svc.Add(CreateTransferInput{
		Amount:           dec("50"),
		Description:      "move savings",
		SendAccountID:    from.ID,
		ReceiveAccountID: to.ID,
	}, actorOf(owner))
	require.NoError(t, err)

	requireBalance(t, db, from.ID, "50")
	requireBalance(t, db, to.ID, "70")

	// exactly two linked transactions, tagged with the reserved categories
	var linked []models.Transaction
	require.NoError(t, db.Where("transfer_id = ?", transfer.ID).Order("id ASC").Find(&linked).Error)
	require.Len(t, linked, 2)
	assert.Equal(t, svc.Reserved.Sent.ID, linked[0].CategoryID)
	assert.Equal(t, from.ID, linked[0].MoneyAccountID)
	assert.Equal(t, svc.Reserved.Received.ID, linked[1].CategoryID)
	assert.Equal(t, to.ID, linked[1].MoneyAccountID)
	assert.Equal(t, owner.ID, linked[0].UserID)
}

func TestTransferAdd_CashToCredit(t *testing.T) {
	db := setupDB(t)
	svc := newTransferService(t, db)
	owner := seedUser(t, db, "owner@example.com", false)
	cash := seedAccount(t, db, owner.ID, models.AccountCash, "100", nil)
	card := seedAccount(t, db, owner.ID, models.AccountCredit, "0", strPtr("200"))

	_, err := svc.Add(CreateTransferInput{
		Amount:           dec("50"),
		SendAccountID:    cash.ID,
		ReceiveAccountID: card.ID,
	}, actorOf(owner))
	require.NoError(t, err)

	requireBalance(t, db, cash.ID, "50")
	// overpaying the card drives debt below zero, which is allowed
	requireBalance(t, db, card.ID, "-50")
}

func TestTransferAdd_CreditSenderGainsDebt(t *testing.T) {
	db := setupDB(t)
	svc := newTransferService(t, db)
	owner := seedUser(t, db, "owner@example.com", false)
	card := seedAccount(t, db, owner.ID, models.AccountCredit, "100", strPtr("500"))
	cash := seedAccount(t, db, owner.ID, models.AccountCash, "0", nil)

	_, err := svc.Add(CreateTransferInput{
		Amount:           dec("150"),
		SendAccountID:    card.ID,
		ReceiveAccountID: cash.ID,
	}, actorOf(owner))
	require.NoError(t, err)

	requireBalance(t, db, card.ID, "250")
	requireBalance(t, db, cash.ID, "150")
}

func TestTransferAdd_InsufficientFunds(t *testing.T) {
	db := setupDB(t)
	svc := newTransferService(t, db)
	owner := seedUser(t, db, "owner@example.com", false)
	cash := seedAccount(t, db, owner.ID, models.AccountCash, "100", nil)
	other := seedAccount(t, db, owner.ID, models.AccountDebit, "0", nil)

	_, err := svc.Add(CreateTransferInput{
		Amount:           dec("1000"),
		SendAccountID:    cash.ID,
		ReceiveAccountID: other.ID,
	}, actorOf(owner))
	require.ErrorIs(t, err, ErrInvalidOperation)

	// fully absent: no rows, no balance change
	requireBalance(t, db, cash.ID, "100")
	requireBalance(t, db, other.ID, "0")
	var transfers, txns int64
	require.NoError(t, db.Model(&models.Transfer{}).Count(&transfers).Error)
	require.NoError(t, db.Model(&models.Transaction{}).Count(&txns).Error)
	assert.EqualValues(t, 0, transfers)
	assert.EqualValues(t, 0, txns)
}

func TestTransferAdd_ExceedsCreditLimit(t *testing.T) {
	db := setupDB(t)
	svc := newTransferService(t, db)
	owner := seedUser(t, db, "owner@example.com", false)
	card := seedAccount(t, db, owner.ID, models.AccountCredit, "450", strPtr("500"))
	cash := seedAccount(t, db, owner.ID, models.AccountCash, "0", nil)

	// post-transfer debt would be 550 > 500
	_, err := svc.Add(CreateTransferInput{
		Amount:           dec("100"),
		SendAccountID:    card.ID,
		ReceiveAccountID: cash.ID,
	}, actorOf(owner))
	require.ErrorIs(t, err, ErrInvalidOperation)

	requireBalance(t, db, card.ID, "450")
	requireBalance(t, db, cash.ID, "0")
}

func TestTransferAdd_Validation(t *testing.T) {
	db := setupDB(t)
	svc := newTransferService(t, db)
	owner := seedUser(t, db, "owner@example.com", false)
	other := seedUser(t, db, "other@example.com", false)
	mine := seedAccount(t, db, owner.ID, models.AccountCash, "100", nil)
	theirs := seedAccount(t, db, other.ID, models.AccountCash, "100", nil)

	_, err := svc.Add(CreateTransferInput{
		Amount:           dec("10"),
		SendAccountID:    mine.ID,
		ReceiveAccountID: mine.ID,
	}, actorOf(owner))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Add(CreateTransferInput{
		Amount:           dec("-5"),
		SendAccountID:    mine.ID,
		ReceiveAccountID: theirs.ID,
	}, actorOf(owner))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Add(CreateTransferInput{
		Amount:           dec("10"),
		SendAccountID:    mine.ID,
		ReceiveAccountID: 9999,
	}, actorOf(owner))
	assert.ErrorIs(t, err, ErrNotFound)

	// actor owns one account but not the other
	_, err = svc.Add(CreateTransferInput{
		Amount:           dec("10"),
		SendAccountID:    mine.ID,
		ReceiveAccountID: theirs.ID,
	}, actorOf(owner))
	assert.ErrorIs(t, err, ErrForbidden)

	// admin can see both, but a transfer cannot cross owners
	admin := seedUser(t, db, "admin@example.com", true)
	_, err = svc.Add(CreateTransferInput{
		Amount:           dec("10"),
		SendAccountID:    mine.ID,
		ReceiveAccountID: theirs.ID,
	}, actorOf(admin))
	assert.ErrorIs(t, err, ErrValidation)

	requireBalance(t, db, mine.ID, "100")
	requireBalance(t, db, theirs.ID, "100")
}

func TestTransferDelete_RestoresBalances(t *testing.T) {
	db := setupDB(t)
	svc := newTransferService(t, db)
	owner := seedUser(t, db, "owner@example.com", false)
	cash := seedAccount(t, db, owner.ID, models.AccountCash, "100", nil)
	card := seedAccount(t, db, owner.ID, models.AccountCredit, "80", strPtr("200"))

	transfer, err := svc.Add(CreateTransferInput{
		Amount:           dec("60"),
		SendAccountID:    cash.ID,
		ReceiveAccountID: card.ID,
	}, actorOf(owner))
	require.NoError(t, err)
	requireBalance(t, db, cash.ID, "40")
	requireBalance(t, db, card.ID, "20")

	require.NoError(t, svc.Delete(transfer.ID, actorOf(owner)))

	// both balances restored exactly, both transactions cascaded away
	requireBalance(t, db, cash.ID, "100")
	requireBalance(t, db, card.ID, "80")
	var transfers, txns int64
	require.NoError(t, db.Model(&models.Transfer{}).Count(&transfers).Error)
	require.NoError(t, db.Model(&models.Transaction{}).Count(&txns).Error)
	assert.EqualValues(t, 0, transfers)
	assert.EqualValues(t, 0, txns)
}

func TestTransferDelete_Authorization(t *testing.T) {
	db := setupDB(t)
	svc := newTransferService(t, db)
	owner := seedUser(t, db, "owner@example.com", false)
	stranger := seedUser(t, db, "stranger@example.com", false)
	admin := seedUser(t, db, "admin@example.com", true)
	cash := seedAccount(t, db, owner.ID, models.AccountCash, "100", nil)
	debit := seedAccount(t, db, owner.ID, models.AccountDebit, "0", nil)

	transfer, err := svc.Add(CreateTransferInput{
		Amount:           dec("30"),
		SendAccountID:    cash.ID,
		ReceiveAccountID: debit.ID,
	}, actorOf(owner))
	require.NoError(t, err)

	err = svc.Delete(transfer.ID, actorOf(stranger))
	assert.ErrorIs(t, err, ErrForbidden)
	requireBalance(t, db, cash.ID, "70")

	_, err = svc.GetByID(transfer.ID, actorOf(stranger))
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(transfer.ID, actorOf(admin)))
	requireBalance(t, db, cash.ID, "100")
}

func TestTransferDelete_NotFound(t *testing.T) {
	db := setupDB(t)
	svc := newTransferService(t, db)
	owner := seedUser(t, db, "owner@example.com", false)

	err := svc.Delete(9999, actorOf(owner))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransferList_Filters(t *testing.T) {
	db := setupDB(t)
	svc := newTransferService(t, db)
	owner := seedUser(t, db, "owner@example.com", false)
	a := seedAccount(t, db, owner.ID, models.AccountCash, "1000", nil)
	b := seedAccount(t, db, owner.ID, models.AccountDebit, "1000", nil)
	c := seedAccount(t, db, owner.ID, models.AccountDebit, "1000", nil)

	mk := func(from, to uint) {
		_, err := svc.Add(CreateTransferInput{
			Amount:           dec("10"),
			SendAccountID:    from,
			ReceiveAccountID: to,
		}, actorOf(owner))
		require.NoError(t, err)
	}
	mk(a.ID, b.ID)
	mk(b.ID, c.ID)

	all, err := svc.ListByUser(owner.ID, TransferFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// account filter matches sender or receiver
	byB, err := svc.ListByUser(owner.ID, TransferFilter{MoneyAccountID: &b.ID})
	require.NoError(t, err)
	assert.Len(t, byB, 2)

	byA, err := svc.ListByUser(owner.ID, TransferFilter{MoneyAccountID: &a.ID})
	require.NoError(t, err)
	assert.Len(t, byA, 1)
}

func TestLoadReservedCategories_MissingIsConfigurationError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Where("name = ?", models.TransferSentCategory).
		Delete(&models.Category{}).Error)

	_, err := LoadReservedCategories(db)
	assert.ErrorIs(t, err, ErrConfiguration)
}
