package snapshot

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Type is display metadata for a transaction. The amount sign is what decides
// income vs expense; Type is always derived from it.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

type Account struct {
	ID        string
	Balance   decimal.Decimal
	OwnerName string
}

type CreditCard struct {
	ID             string
	Name           string
	Limit          decimal.Decimal
	CurrentBalance decimal.Decimal
	DueDate        *time.Time
}

// Transaction is a normalized account movement. Negative amounts are expenses.
type Transaction struct {
	ID          string
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Category    string
	Type        Type
}

func (t Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

func (t Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

type Goal struct {
	ID            string
	Title         string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	IsActive      bool
}

// Snapshot is a point-in-time view of the user's finances. Consumers treat it
// as read-only.
type Snapshot struct {
	Accounts     []Account
	CreditCards  []CreditCard
	Transactions []Transaction
	Goals        []Goal
}

// Provider supplies the current snapshot from wherever the host keeps it.
type Provider interface {
	Load(ctx context.Context) (*Snapshot, error)
}

// TypeFor derives the display type from the amount sign.
func TypeFor(amount decimal.Decimal) Type {
	if amount.IsNegative() {
		return TypeExpense
	}

	return TypeIncome
}

// TotalBalance sums all account balances.
func (s *Snapshot) TotalBalance() decimal.Decimal {
	total := decimal.Zero
	for _, a := range s.Accounts {
		total = total.Add(a.Balance)
	}

	return total
}

// Patrimony is net worth: account balances minus what is owed on credit cards.
func (s *Snapshot) Patrimony() decimal.Decimal {
	owed := decimal.Zero
	for _, c := range s.CreditCards {
		owed = owed.Add(c.CurrentBalance)
	}

	return s.TotalBalance().Sub(owed)
}

// Expenses returns the expense transactions in snapshot order.
func (s *Snapshot) Expenses() []Transaction {
	var out []Transaction

	for _, t := range s.Transactions {
		if t.IsExpense() {
			out = append(out, t)
		}
	}

	return out
}
