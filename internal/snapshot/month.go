package snapshot

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

const monthLayout = "2006-01"

// MonthKey returns the YYYY-MM bucket of t, read in t's own offset so that it
// matches the prefix of the ISO date the aggregator sent.
func MonthKey(t time.Time) string {
	return t.Format(monthLayout)
}

// MonthTotals aggregates one calendar month. Expense is kept as an absolute value.
type MonthTotals struct {
	Month   string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// Balance is income minus expense.
func (m MonthTotals) Balance() decimal.Decimal {
	return m.Income.Sub(m.Expense)
}

// GroupByMonth buckets transactions by MonthKey. Months without transactions
// are absent from the result.
func GroupByMonth(txs []Transaction) map[string]MonthTotals {
	months := make(map[string]MonthTotals)

	for _, t := range txs {
		key := MonthKey(t.Date)

		m, ok := months[key]
		if !ok {
			m = MonthTotals{Month: key, Income: decimal.Zero, Expense: decimal.Zero}
		}

		switch {
		case t.IsIncome():
			m.Income = m.Income.Add(t.Amount)
		case t.IsExpense():
			m.Expense = m.Expense.Add(t.Amount.Abs())
		}

		months[key] = m
	}

	return months
}

// SortedMonths returns the buckets ordered by month ascending.
func SortedMonths(months map[string]MonthTotals) []MonthTotals {
	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	out := make([]MonthTotals, len(keys))
	for i, k := range keys {
		out[i] = months[k]
	}

	return out
}

// Monthly is GroupByMonth followed by SortedMonths.
func Monthly(txs []Transaction) []MonthTotals {
	return SortedMonths(GroupByMonth(txs))
}
