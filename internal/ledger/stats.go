package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"finance-ledger/internal/models"
)

// StatsService produces read-only aggregates over accounts and transactions.
type StatsService struct {
	DB *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{DB: db}
}

// FinancialSummary totals a user's accounts: held funds on non-credit
// accounts, and limit/used across credit accounts.
type FinancialSummary struct {
	TotalCashBalance decimal.Decimal `json:"total_cash_balance"`
	TotalCreditLimit decimal.Decimal `json:"total_credit_limit"`
	TotalCreditUsed  decimal.Decimal `json:"total_credit_used"`
}

// CategorySummary is the transaction total of one category over a period.
type CategorySummary struct {
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// MonthlyFlow is the income/expense total of one calendar month.
type MonthlyFlow struct {
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
}

// Summary aggregates the user's account balances by account kind.
func (s *StatsService) Summary(userID uint) (*FinancialSummary, error) {
	var accounts []models.MoneyAccount
	if err := s.DB.Where("user_id = ?", userID).Find(&accounts).Error; err != nil {
		return nil, err
	}

	summary := &FinancialSummary{
		TotalCashBalance: decimal.Zero,
		TotalCreditLimit: decimal.Zero,
		TotalCreditUsed:  decimal.Zero,
	}
	for i := range accounts {
		a := &accounts[i]
		if a.IsCredit() {
			summary.TotalCreditUsed = summary.TotalCreditUsed.Add(a.Balance)
			if a.CreditLimit != nil {
				summary.TotalCreditLimit = summary.TotalCreditLimit.Add(*a.CreditLimit)
			}
		} else {
			summary.TotalCashBalance = summary.TotalCashBalance.Add(a.Balance)
		}
	}
	return summary, nil
}

// SummaryByCategory totals the user's transactions of the given category
// type within [start, end], largest first, optionally limited to the top N.
func (s *StatsService) SummaryByCategory(userID uint, categoryType string, start, end time.Time, limit int) ([]CategorySummary, error) {
	normalized, err := NormalizeCategoryType(categoryType)
	if err != nil {
		return nil, err
	}

	type row struct {
		CategoryID   uint
		CategoryName string
		Amount       decimal.Decimal
	}
	var rows []row
	if err := s.DB.Model(&models.Transaction{}).
		Select("transactions.category_id AS category_id, categories.name AS category_name, transactions.amount AS amount").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND categories.type = ? AND transactions.date >= ? AND transactions.date <= ?",
			userID, normalized, start, end).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(map[uint]*CategorySummary)
	for _, r := range rows {
		cs, ok := totals[r.CategoryID]
		if !ok {
			cs = &CategorySummary{
				CategoryID:   r.CategoryID,
				CategoryName: r.CategoryName,
				TotalAmount:  decimal.Zero,
			}
			totals[r.CategoryID] = cs
		}
		cs.TotalAmount = cs.TotalAmount.Add(r.Amount)
	}

	result := make([]CategorySummary, 0, len(totals))
	for _, cs := range totals {
		result = append(result, *cs)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].TotalAmount.GreaterThan(result[j].TotalAmount)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// MonthlyCashFlow returns income/expense totals for the last numberOfMonths
// calendar months including the current one. Months without transactions
// appear with zero totals.
func (s *StatsService) MonthlyCashFlow(userID uint, numberOfMonths int) ([]MonthlyFlow, error) {
	if numberOfMonths <= 0 {
		return nil, fmt.Errorf("%w: number of months must be positive", ErrValidation)
	}

	// anchor on the first of the month so AddDate month arithmetic never
	// normalizes across a month boundary
	now := time.Now()
	base := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	firstDay := base.AddDate(0, -numberOfMonths+1, 0)

	type row struct {
		Amount       decimal.Decimal
		Date         time.Time
		CategoryType string
	}
	var rows []row
	if err := s.DB.Model(&models.Transaction{}).
		Select("transactions.amount AS amount, transactions.date AS date, categories.type AS category_type").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ? AND transactions.date >= ?", userID, firstDay).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	type yearMonth struct {
		year  int
		month int
	}
	flows := make(map[yearMonth]*MonthlyFlow)
	for _, r := range rows {
		key := yearMonth{r.Date.Year(), int(r.Date.Month())}
		mf, ok := flows[key]
		if !ok {
			mf = &MonthlyFlow{
				Year:          key.year,
				Month:         key.month,
				TotalIncome:   decimal.Zero,
				TotalExpenses: decimal.Zero,
			}
			flows[key] = mf
		}
		if r.CategoryType == models.CategoryIncome {
			mf.TotalIncome = mf.TotalIncome.Add(r.Amount)
		} else {
			mf.TotalExpenses = mf.TotalExpenses.Add(r.Amount)
		}
	}

	// months without data appear with zero totals, oldest first
	result := make([]MonthlyFlow, 0, numberOfMonths)
	for i := numberOfMonths - 1; i >= 0; i-- {
		target := base.AddDate(0, -i, 0)
		key := yearMonth{target.Year(), int(target.Month())}
		if mf, ok := flows[key]; ok {
			result = append(result, *mf)
		} else {
			result = append(result, MonthlyFlow{
				Year:          key.year,
				Month:         key.month,
				TotalIncome:   decimal.Zero,
				TotalExpenses: decimal.Zero,
			})
		}
	}
	return result, nil
}
