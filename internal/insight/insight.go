// Package insight derives month-level spending observations from a snapshot.
package insight

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

type Kind string

const (
	KindSpendingIncrease Kind = "spending-increase"
	KindSpendingDecrease Kind = "spending-decrease"
	KindBudgetExceeded   Kind = "budget-exceeded"
	KindTopCategory      Kind = "top-category"
	KindPositiveSavings  Kind = "positive-savings"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeveritySuccess Severity = "success"
)

type Insight struct {
	ID       string
	Kind     Kind
	Title    string
	Message  string
	Severity Severity
}

// MonthSummary is one month of activity.
type MonthSummary struct {
	Month   string
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

type Analyzer struct {
	budget     decimal.Decimal
	trendRatio decimal.Decimal
	clock      func() time.Time
}

// NewAnalyzer creates an Analyzer. trendRatio is the relative month-over-month
// change in expenses (0.2 = 20%) that is worth reporting.
func NewAnalyzer(budget, trendRatio decimal.Decimal, clock func() time.Time) *Analyzer {
	if clock == nil {
		clock = time.Now
	}

	return &Analyzer{budget: budget, trendRatio: trendRatio, clock: clock}
}

func MonthlySummaries(snap *snapshot.Snapshot) []MonthSummary {
	months := snapshot.Monthly(snap.Transactions)

	out := make([]MonthSummary, len(months))
	for i, m := range months {
		out[i] = MonthSummary{Month: m.Month, Income: m.Income, Expense: m.Expense, Balance: m.Balance()}
	}

	return out
}

// Analyze compares the current month with the previous month that has
// transactions and with the budget.
func (a *Analyzer) Analyze(snap *snapshot.Snapshot) []Insight {
	month := snapshot.MonthKey(a.clock())
	months := snapshot.GroupByMonth(snap.Transactions)

	current, ok := months[month]
	if !ok {
		return nil
	}

	var out []Insight

	if prev, ok := previousMonth(months, month); ok && prev.Expense.IsPositive() {
		delta := current.Expense.Sub(prev.Expense)
		limit := prev.Expense.Mul(a.trendRatio)
		pct := delta.Abs().Mul(decimal.NewFromInt(100)).Div(prev.Expense).Round(0)

		switch {
		case delta.GreaterThanOrEqual(limit):
			out = append(out, Insight{
				ID:       "spending-increase-" + month,
				Kind:     KindSpendingIncrease,
				Title:    "Gastos em alta",
				Message:  fmt.Sprintf("Seus gastos subiram %s%% em relação a %s.", pct, prev.Month),
				Severity: SeverityWarning,
			})
		case delta.Neg().GreaterThanOrEqual(limit):
			out = append(out, Insight{
				ID:       "spending-decrease-" + month,
				Kind:     KindSpendingDecrease,
				Title:    "Gastos em queda",
				Message:  fmt.Sprintf("Seus gastos caíram %s%% em relação a %s.", pct, prev.Month),
				Severity: SeveritySuccess,
			})
		}
	}

	if current.Expense.GreaterThan(a.budget) {
		out = append(out, Insight{
			ID:    "budget-exceeded-" + month,
			Kind:  KindBudgetExceeded,
			Title: "Orçamento estourado",
			Message: fmt.Sprintf("Você gastou %s este mês, acima do orçamento de %s.",
				snapshot.FormatAmount(current.Expense), snapshot.FormatAmount(a.budget)),
			Severity: SeverityWarning,
		})
	}

	if category, total, ok := topCategory(snap.Transactions, month); ok {
		out = append(out, Insight{
			ID:       "top-category-" + month,
			Kind:     KindTopCategory,
			Title:    "Maior categoria de gastos",
			Message:  fmt.Sprintf("%s concentra %s dos seus gastos este mês.", category, snapshot.FormatAmount(total)),
			Severity: SeverityInfo,
		})
	}

	if current.Balance().IsPositive() {
		out = append(out, Insight{
			ID:       "positive-savings-" + month,
			Kind:     KindPositiveSavings,
			Title:    "Mês no azul",
			Message:  fmt.Sprintf("Você economizou %s até agora neste mês.", snapshot.FormatAmount(current.Balance())),
			Severity: SeveritySuccess,
		})
	}

	return out
}

// previousMonth is the latest bucket before month, skipping months without
// transactions.
func previousMonth(months map[string]snapshot.MonthTotals, month string) (snapshot.MonthTotals, bool) {
	var prev string

	for _, k := range slices.Sorted(maps.Keys(months)) {
		if k >= month {
			break
		}

		prev = k
	}

	if prev == "" {
		return snapshot.MonthTotals{}, false
	}

	return months[prev], true
}

func topCategory(txs []snapshot.Transaction, month string) (string, decimal.Decimal, bool) {
	totals := make(map[string]decimal.Decimal)

	for _, t := range txs {
		if !t.IsExpense() || t.Category == "" || snapshot.MonthKey(t.Date) != month {
			continue
		}

		totals[t.Category] = totals[t.Category].Add(t.Amount.Abs())
	}

	if len(totals) == 0 {
		return "", decimal.Zero, false
	}

	categories := slices.SortedFunc(maps.Keys(totals), func(a, b string) int {
		if c := totals[b].Cmp(totals[a]); c != 0 {
			return c
		}

		return cmp.Compare(a, b)
	})

	return categories[0], totals[categories[0]], true
}
