package ledger

import (
	"github.com/shopspring/decimal"

	"finance-ledger/internal/models"
)

// ApplyDelta applies the balance impact of a transaction to the account,
// in memory only. CASH/DEBIT balances grow with income and shrink with
// expenditure; CREDIT balances track debt, so the signs invert.
//
//	account      category     effect
//	non-CREDIT   INCOME       balance += amount
//	non-CREDIT   EXPENDITURE  balance -= amount
//	CREDIT       INCOME       balance -= amount
//	CREDIT       EXPENDITURE  balance += amount
func ApplyDelta(account *models.MoneyAccount, category *models.Category, amount decimal.Decimal) {
	if (category.Type == models.CategoryIncome) != account.IsCredit() {
		account.Balance = account.Balance.Add(amount)
	} else {
		account.Balance = account.Balance.Sub(amount)
	}
}

// RevertDelta undoes ApplyDelta for the same (account, category, amount)
// triple. RevertDelta(ApplyDelta(b)) == b must hold for every valid input.
func RevertDelta(account *models.MoneyAccount, category *models.Category, amount decimal.Decimal) {
	if (category.Type == models.CategoryIncome) != account.IsCredit() {
		account.Balance = account.Balance.Sub(amount)
	} else {
		account.Balance = account.Balance.Add(amount)
	}
}

// overCreditLimit reports whether a credit account's debt exceeds its limit.
// Always false for non-credit accounts.
func overCreditLimit(account *models.MoneyAccount) bool {
	if !account.IsCredit() || account.CreditLimit == nil {
		return false
	}
	return account.Balance.GreaterThan(*account.CreditLimit)
}
