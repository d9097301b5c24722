package notification_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cofre/internal/notification"
	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

var now = time.Date(2024, 8, 20, 15, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return now }

func newGenerator() *notification.Generator {
	return notification.NewGenerator(notification.DefaultThresholds(), fixedClock)
}

func ids(list []notification.Notification) []string {
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.ID
	}

	return out
}

func daysFromNow(days int) *time.Time {
	d := time.Date(now.Year(), now.Month(), now.Day()+days, 0, 0, 0, 0, time.UTC)
	return &d
}

func expense(id, description string, amount int64, date time.Time) snapshot.Transaction {
	a := decimal.NewFromInt(amount)

	return snapshot.Transaction{ID: id, Description: description, Amount: a, Date: date, Type: snapshot.TypeFor(a)}
}

func TestGenerator_CardDueDate(t *testing.T) {
	type testCase struct {
		name    string
		dueDate *time.Time
		want    bool
	}

	tests := []testCase{
		{name: "Due Today", dueDate: daysFromNow(0), want: true},
		{name: "Due In Three Days", dueDate: daysFromNow(3), want: true},
		{name: "Due In Four Days", dueDate: daysFromNow(4), want: false},
		{name: "Overdue", dueDate: daysFromNow(-1), want: false},
		{name: "No Due Date", dueDate: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &snapshot.Snapshot{CreditCards: []snapshot.CreditCard{
				{ID: "c1", Name: "Gold", Limit: decimal.NewFromInt(5000), CurrentBalance: decimal.NewFromInt(800), DueDate: tt.dueDate},
			}}

			got := newGenerator().Detect(snap)

			if !tt.want {
				assert.NotContains(t, ids(got), "card-due-c1")
				return
			}

			require.Len(t, got, 1)
			n := got[0]
			assert.Equal(t, "card-due-c1", n.ID)
			assert.Equal(t, notification.TypeWarning, n.Type)
			assert.Equal(t, notification.CategoryCard, n.Category)
			assert.Equal(t, notification.PriorityHigh, n.Priority)
			assert.True(t, n.ActionRequired)
			assert.Equal(t, "5000", n.Data["limit"])
		})
	}
}

func TestGenerator_LargeTransaction(t *testing.T) {
	snap := &snapshot.Snapshot{Transactions: []snapshot.Transaction{
		expense("old", "Aluguel antigo", -5000, now.AddDate(0, 0, -8)),
		expense("t1", "Mercado", -1500, now.AddDate(0, 0, -2)),
		expense("t2", "Salário", 1200, now.AddDate(0, 0, -1)),
		expense("t3", "Notebook", -2500, now.AddDate(0, 0, -6)),
	}}

	got := newGenerator().Detect(snap)

	require.Contains(t, ids(got), "transaction-large-t3")
	assert.NotContains(t, ids(got), "transaction-large-old")
	assert.NotContains(t, ids(got), "transaction-large-t1")

	for _, n := range got {
		if n.ID == "transaction-large-t3" {
			assert.Equal(t, notification.TypeInfo, n.Type)
			assert.Equal(t, notification.CategoryTransaction, n.Category)
			assert.Equal(t, notification.PriorityMedium, n.Priority)
		}
	}
}

func TestGenerator_LargeTransactionAtThreshold(t *testing.T) {
	snap := &snapshot.Snapshot{Transactions: []snapshot.Transaction{
		expense("t1", "Mercado", -1000, now),
	}}

	assert.Empty(t, newGenerator().Detect(snap))
}

func TestGenerator_GoalProgress(t *testing.T) {
	type testCase struct {
		name    string
		target  string
		current string
		want    []string
	}

	tests := []testCase{
		{name: "Below Ninety Percent", target: "1000", current: "899", want: nil},
		{name: "Ninety Percent", target: "1000", current: "900", want: []string{"goal-almost-g1"}},
		{name: "Complete", target: "1000", current: "1000", want: []string{"goal-complete-g1"}},
		{name: "Over Target", target: "1000", current: "1500", want: []string{"goal-complete-g1"}},
		{name: "Fraction Short Of Target", target: "300000.00", current: "299999.99999999999", want: []string{"goal-almost-g1"}},
		{name: "Fraction Short Of Ninety Percent", target: "300000.00", current: "269999.99999999999", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &snapshot.Snapshot{Goals: []snapshot.Goal{{
				ID:            "g1",
				Title:         "Viagem",
				TargetAmount:  decimal.RequireFromString(tt.target),
				CurrentAmount: decimal.RequireFromString(tt.current),
				IsActive:      true,
			}}}

			got := newGenerator().Detect(snap)

			if tt.want == nil {
				assert.Empty(t, got)
				return
			}

			assert.Equal(t, tt.want, ids(got))
			assert.Equal(t, notification.PriorityHigh, got[0].Priority)
		})
	}
}

func TestGenerator_GoalWithoutTargetIsSkipped(t *testing.T) {
	snap := &snapshot.Snapshot{Goals: []snapshot.Goal{{ID: "g1", TargetAmount: decimal.Zero, CurrentAmount: decimal.NewFromInt(10)}}}

	assert.Empty(t, newGenerator().Detect(snap))
}

func TestGenerator_LowBalance(t *testing.T) {
	type testCase struct {
		name    string
		balance string
		want    bool
	}

	tests := []testCase{
		{name: "Low", balance: "499.99", want: true},
		{name: "At Threshold", balance: "500", want: false},
		{name: "Zero", balance: "0", want: false},
		{name: "Negative", balance: "-20", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &snapshot.Snapshot{Accounts: []snapshot.Account{{ID: "a1", Balance: decimal.RequireFromString(tt.balance)}}}
			got := newGenerator().Detect(snap)

			if tt.want {
				assert.Equal(t, []string{"balance-low"}, ids(got))
				assert.True(t, got[0].ActionRequired)

				return
			}

			assert.NotContains(t, ids(got), "balance-low")
		})
	}
}

func TestGenerator_RecurringExpenses(t *testing.T) {
	var txs []snapshot.Transaction

	for i := range 4 {
		txs = append(txs, expense("n"+string(rune('0'+i)), "Netflix", -40, now.AddDate(0, -i, 0)))
	}

	for i := range 3 {
		txs = append(txs, expense("s"+string(rune('0'+i)), "Spotify", -20, now.AddDate(0, -i, 0)))
	}

	for i := range 5 {
		txs = append(txs, expense("p"+string(rune('0'+i)), "Pix recebido", 100, now.AddDate(0, -i, 0)))
	}

	got := newGenerator().Detect(&snapshot.Snapshot{Transactions: txs})

	require.Equal(t, []string{"recurring-expenses"}, ids(got))
	assert.Equal(t, 1, got[0].Data["count"])
	assert.Contains(t, got[0].Message, "1 despesa")
}

func TestGenerator_Welcome(t *testing.T) {
	snap := &snapshot.Snapshot{Accounts: []snapshot.Account{{ID: "a1", Balance: decimal.RequireFromString("5430.50")}}}

	got := newGenerator().Generate(snap, nil)

	require.Len(t, got, 1)
	assert.Equal(t, "welcome", got[0].ID)
}

func TestGenerator_WelcomeOnlyWhenNothingElseFired(t *testing.T) {
	snap := &snapshot.Snapshot{Accounts: []snapshot.Account{{ID: "a1", Balance: decimal.NewFromInt(100)}}}

	got := newGenerator().Generate(snap, nil)

	assert.Equal(t, []string{"balance-low"}, ids(got))
}

func TestGenerator_EmptySnapshot(t *testing.T) {
	assert.Empty(t, newGenerator().Generate(&snapshot.Snapshot{}, nil))
}

func TestGenerator_DetectorOrder(t *testing.T) {
	snap := &snapshot.Snapshot{
		Accounts:    []snapshot.Account{{ID: "a1", Balance: decimal.NewFromInt(300)}},
		CreditCards: []snapshot.CreditCard{{ID: "c1", DueDate: daysFromNow(1)}},
		Transactions: []snapshot.Transaction{
			expense("t1", "TV", -3000, now),
		},
		Goals: []snapshot.Goal{{ID: "g1", TargetAmount: decimal.NewFromInt(10), CurrentAmount: decimal.NewFromInt(10)}},
	}

	got := newGenerator().Detect(snap)

	assert.Equal(t, []string{"card-due-c1", "transaction-large-t1", "goal-complete-g1", "balance-low"}, ids(got))
}

func TestGenerator_GenerateIsIdempotent(t *testing.T) {
	snap := &snapshot.Snapshot{
		Accounts:    []snapshot.Account{{ID: "a1", Balance: decimal.NewFromInt(300)}},
		CreditCards: []snapshot.CreditCard{{ID: "c1", DueDate: daysFromNow(2)}},
		Goals:       []snapshot.Goal{{ID: "g1", TargetAmount: decimal.NewFromInt(100), CurrentAmount: decimal.NewFromInt(95)}},
	}

	g := newGenerator()
	once := g.Generate(snap, nil)
	twice := g.Generate(snap, once)

	assert.Equal(t, once, twice)
}

func TestMerge(t *testing.T) {
	stale := []notification.Notification{
		{ID: "balance-low", Message: "old", IsRead: true},
		{ID: "goal-complete-g1", IsRead: true},
	}
	fresh := []notification.Notification{
		{ID: "balance-low", Message: "new"},
		{ID: "welcome"},
	}

	got := notification.Merge(fresh, stale)

	require.Equal(t, []string{"balance-low", "welcome", "goal-complete-g1"}, ids(got))
	assert.Equal(t, "new", got[0].Message)
	assert.False(t, got[0].IsRead)
	assert.True(t, got[2].IsRead)
	assert.Equal(t, "old", stale[0].Message)
}
