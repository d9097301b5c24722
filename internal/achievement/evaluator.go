package achievement

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

const maxSuggestions = 3

// Evaluator applies the criteria to a snapshot. It holds no state besides its
// rules and clock, so one instance can be shared by concurrent callers.
type Evaluator struct {
	rules Rules
	clock func() time.Time
}

func NewEvaluator(rules Rules, clock func() time.Time) *Evaluator {
	if clock == nil {
		clock = time.Now
	}

	return &Evaluator{rules: rules, clock: clock}
}

// Evaluate returns a copy of current with newly met criteria unlocked.
// Achievements that are already unlocked are never re-locked.
func (e *Evaluator) Evaluate(snap *snapshot.Snapshot, current []Achievement) []Achievement {
	now := e.clock()
	months := snapshot.Monthly(snap.Transactions)

	updated := make([]Achievement, len(current))

	for i, a := range current {
		updated[i] = a

		if a.IsUnlocked {
			continue
		}

		if e.met(a.CriteriaID, snap, months) {
			unlockedAt := now
			updated[i].IsUnlocked = true
			updated[i].UnlockedAt = &unlockedAt
		}
	}

	return updated
}

func (e *Evaluator) met(id CriteriaID, snap *snapshot.Snapshot, months []snapshot.MonthTotals) bool {
	switch id {
	case CriteriaFirstTransaction:
		return len(snap.Transactions) > 0
	case CriteriaMonthlySaver:
		for _, m := range months {
			if m.Balance().GreaterThanOrEqual(e.rules.MonthlySavingsTarget) {
				return true
			}
		}

		return false
	case CriteriaPlanner:
		return len(snap.Goals) > 0
	case CriteriaMillionaire:
		return snap.Patrimony().GreaterThanOrEqual(e.rules.PatrimonyTarget)
	case CriteriaDisciplined:
		return longestStreak(months, e.rules.MonthlyBudget) >= e.rules.StreakMonths
	}

	return false
}

// longestStreak counts adjacent entries of the sorted month list whose expense
// stays within budget. Months without any transaction are not in the list, so
// they neither break nor extend a streak.
func longestStreak(months []snapshot.MonthTotals, budget decimal.Decimal) int {
	longest, run := 0, 0

	for _, m := range months {
		if m.Expense.GreaterThan(budget) {
			run = 0
			continue
		}

		run++
		longest = max(longest, run)
	}

	return longest
}

// trailingStreak is the within-budget run that ends at the latest month.
func trailingStreak(months []snapshot.MonthTotals, budget decimal.Decimal) int {
	run := 0

	for i := len(months) - 1; i >= 0; i-- {
		if months[i].Expense.GreaterThan(budget) {
			break
		}

		run++
	}

	return run
}

// Suggest describes what is missing for up to three locked achievements,
// in the order they appear in achievements.
func (e *Evaluator) Suggest(snap *snapshot.Snapshot, achievements []Achievement) []string {
	var (
		suggestions []string
		months      = snapshot.GroupByMonth(snap.Transactions)
	)

	for _, a := range achievements {
		if len(suggestions) == maxSuggestions {
			break
		}

		if a.IsUnlocked {
			continue
		}

		var s string

		switch a.CriteriaID {
		case CriteriaFirstTransaction:
			s = fmt.Sprintf("Registre sua primeira transação para desbloquear %q.", a.Title)
		case CriteriaMonthlySaver:
			balance := months[snapshot.MonthKey(e.clock())].Balance()
			remaining := nonNegative(e.rules.MonthlySavingsTarget.Sub(balance))
			s = fmt.Sprintf("Economize mais %s este mês para desbloquear %q.", snapshot.FormatAmount(remaining), a.Title)
		case CriteriaPlanner:
			s = fmt.Sprintf("Crie uma meta financeira para desbloquear %q.", a.Title)
		case CriteriaMillionaire:
			remaining := nonNegative(e.rules.PatrimonyTarget.Sub(snap.Patrimony()))
			s = fmt.Sprintf("Faltam %s de patrimônio para desbloquear %q.", snapshot.FormatAmount(remaining), a.Title)
		case CriteriaDisciplined:
			missing := max(e.rules.StreakMonths-trailingStreak(snapshot.SortedMonths(months), e.rules.MonthlyBudget), 0)
			s = fmt.Sprintf("Mantenha seus gastos abaixo de %s por mais %d meses para desbloquear %q.",
				snapshot.FormatAmount(e.rules.MonthlyBudget), missing, a.Title)
		default:
			continue
		}

		suggestions = append(suggestions, s)
	}

	return suggestions
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}

	return d
}
