package notification

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

// Generator scans a snapshot with a fixed, ordered set of detectors.
type Generator struct {
	thresholds Thresholds
	clock      func() time.Time
}

func NewGenerator(thresholds Thresholds, clock func() time.Time) *Generator {
	if clock == nil {
		clock = time.Now
	}

	return &Generator{thresholds: thresholds, clock: clock}
}

type detector func(g *Generator, snap *snapshot.Snapshot, now time.Time) []Notification

var detectors = []detector{
	(*Generator).cardDueDates,
	(*Generator).largeTransaction,
	(*Generator).goalProgress,
	(*Generator).lowBalance,
	(*Generator).recurringExpenses,
}

// Detect runs every detector and returns the fresh notifications in detector order.
func (g *Generator) Detect(snap *snapshot.Snapshot) []Notification {
	now := g.clock()

	var fresh []Notification

	for _, d := range detectors {
		fresh = append(fresh, d(g, snap, now)...)
	}

	if len(fresh) == 0 && len(snap.Accounts) > 0 {
		fresh = append(fresh, welcome(now))
	}

	return fresh
}

// Generate detects and merges the result into existing.
func (g *Generator) Generate(snap *snapshot.Snapshot, existing []Notification) []Notification {
	return Merge(g.Detect(snap), existing)
}

// Merge prepends fresh to existing and drops later duplicates by id, so a
// regenerated notification replaces the stored one.
func Merge(fresh, existing []Notification) []Notification {
	seen := make(map[string]struct{}, len(fresh)+len(existing))
	merged := make([]Notification, 0, len(fresh)+len(existing))

	for _, list := range [][]Notification{fresh, existing} {
		for _, n := range list {
			if _, ok := seen[n.ID]; ok {
				continue
			}

			seen[n.ID] = struct{}{}
			merged = append(merged, n)
		}
	}

	return merged
}

func (g *Generator) cardDueDates(snap *snapshot.Snapshot, now time.Time) []Notification {
	var out []Notification

	for _, c := range snap.CreditCards {
		if c.DueDate == nil {
			continue
		}

		days := calendarDaysBetween(now, *c.DueDate)
		if days < 0 || days > g.thresholds.DueSoonDays {
			continue
		}

		out = append(out, Notification{
			ID:             "card-due-" + c.ID,
			Title:          "Vencimento próximo",
			Message:        fmt.Sprintf("A fatura do cartão %s vence em %d dia(s).", c.Name, days),
			Type:           TypeWarning,
			Category:       CategoryCard,
			CreatedAt:      now,
			Priority:       PriorityHigh,
			ActionRequired: true,
			Data: map[string]any{
				"cardId":  c.ID,
				"dueDate": c.DueDate.Format(time.DateOnly),
				"amount":  c.CurrentBalance.String(),
				"limit":   c.Limit.String(),
			},
		})
	}

	return out
}

// calendarDaysBetween counts whole days from the calendar date of from to the
// calendar date of to, each read in its own location.
func calendarDaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)

	return int(b.Sub(a).Hours() / 24)
}

func (g *Generator) largeTransaction(snap *snapshot.Snapshot, now time.Time) []Notification {
	since := now.Add(-g.thresholds.LargeTransactionWindow)

	var (
		largest *snapshot.Transaction
		maxAbs  = decimal.Zero
	)

	for i := range snap.Transactions {
		t := &snap.Transactions[i]
		if t.Date.Before(since) {
			continue
		}

		if largest == nil || t.Amount.Abs().GreaterThan(maxAbs) {
			largest = t
			maxAbs = t.Amount.Abs()
		}
	}

	if largest == nil || !maxAbs.GreaterThan(g.thresholds.LargeTransaction) {
		return nil
	}

	return []Notification{{
		ID:    "transaction-large-" + largest.ID,
		Title: "Transação de valor alto",
		Message: fmt.Sprintf("Uma transação de %s foi registrada: %s.",
			snapshot.FormatAmount(maxAbs), largest.Description),
		Type:      TypeInfo,
		Category:  CategoryTransaction,
		CreatedAt: now,
		Priority:  PriorityMedium,
		Data: map[string]any{
			"transactionId": largest.ID,
			"amount":        largest.Amount.String(),
		},
	}}
}

func (g *Generator) goalProgress(snap *snapshot.Snapshot, now time.Time) []Notification {
	var out []Notification

	for _, goal := range snap.Goals {
		if !goal.TargetAmount.IsPositive() {
			continue
		}

		// thresholds are compared on the amounts; the quotient is rounded
		progress := goal.CurrentAmount.Mul(decimal.NewFromInt(100)).Div(goal.TargetAmount)
		data := map[string]any{
			"goalId":   goal.ID,
			"progress": progress.Floor().IntPart(),
		}

		switch {
		case goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount):
			out = append(out, Notification{
				ID:        "goal-complete-" + goal.ID,
				Title:     "Meta concluída!",
				Message:   fmt.Sprintf("Parabéns! Você atingiu a meta %q.", goal.Title),
				Type:      TypeAchievement,
				Category:  CategoryGoal,
				CreatedAt: now,
				Priority:  PriorityHigh,
				Data:      data,
			})
		case goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount.Mul(g.thresholds.GoalAlmostRatio)):
			out = append(out, Notification{
				ID:    "goal-almost-" + goal.ID,
				Title: "Meta quase concluída",
				Message: fmt.Sprintf("Faltam %s para atingir a meta %q.",
					snapshot.FormatAmount(goal.TargetAmount.Sub(goal.CurrentAmount)), goal.Title),
				Type:      TypeSuccess,
				Category:  CategoryGoal,
				CreatedAt: now,
				Priority:  PriorityHigh,
				Data:      data,
			})
		}
	}

	return out
}

func (g *Generator) lowBalance(snap *snapshot.Snapshot, now time.Time) []Notification {
	total := snap.TotalBalance()
	if !total.IsPositive() || !total.LessThan(g.thresholds.LowBalance) {
		return nil
	}

	return []Notification{{
		ID:             "balance-low",
		Title:          "Saldo baixo",
		Message:        fmt.Sprintf("Seu saldo total é de %s.", snapshot.FormatAmount(total)),
		Type:           TypeWarning,
		Category:       CategorySystem,
		CreatedAt:      now,
		Priority:       PriorityHigh,
		ActionRequired: true,
		Data:           map[string]any{"totalBalance": total.String()},
	}}
}

func (g *Generator) recurringExpenses(snap *snapshot.Snapshot, now time.Time) []Notification {
	counts := make(map[string]int)
	for _, t := range snap.Expenses() {
		counts[t.Description]++
	}

	recurring := 0

	for _, c := range counts {
		if c > g.thresholds.RecurringMinCount {
			recurring++
		}
	}

	if recurring == 0 {
		return nil
	}

	return []Notification{{
		ID:    "recurring-expenses",
		Title: "Despesas recorrentes",
		Message: fmt.Sprintf("Identificamos %d despesa(s) recorrente(s). Vale revisar assinaturas e contas fixas.",
			recurring),
		Type:      TypeInfo,
		Category:  CategorySystem,
		CreatedAt: now,
		Priority:  PriorityLow,
		Data:      map[string]any{"count": recurring},
	}}
}

func welcome(now time.Time) Notification {
	return Notification{
		ID:        "welcome",
		Title:     "Bem-vindo!",
		Message:   "Suas contas estão conectadas. Seus alertas e conquistas aparecem aqui.",
		Type:      TypeInfo,
		Category:  CategorySystem,
		CreatedAt: now,
		Priority:  PriorityLow,
	}
}
