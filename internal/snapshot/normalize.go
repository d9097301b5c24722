package snapshot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrMissingID     = errors.New("missing id")
)

// dateLayouts are tried in order. Layouts without an offset are read as UTC.
var dateLayouts = []string{
	time.DateOnly,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// RawNumber holds a numeric field as the aggregator sent it: a JSON number or
// a numeric string. Parsing is deferred to Normalize.
type RawNumber string

func (n *RawNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*n = RawNumber(s)

		return nil
	}

	*n = RawNumber(b)

	return nil
}

func (n RawNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(n))
}

type RawAccount struct {
	ID        string    `json:"id"`
	Balance   RawNumber `json:"balance"`
	OwnerName string    `json:"owner"`
}

type RawCreditCard struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Limit          RawNumber `json:"limit"`
	CurrentBalance RawNumber `json:"currentBalance"`
	DueDate        string    `json:"dueDate,omitempty"`
}

type RawTransaction struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Amount      RawNumber `json:"amount"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Type        string    `json:"type,omitempty"`
}

type RawGoal struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	TargetAmount  RawNumber `json:"targetAmount"`
	CurrentAmount RawNumber `json:"currentAmount"`
	IsActive      bool      `json:"isActive"`
}

// Raw is the unvalidated snapshot shape received from the aggregator or a client.
type Raw struct {
	Accounts     []RawAccount     `json:"accounts"`
	CreditCards  []RawCreditCard  `json:"creditCards"`
	Transactions []RawTransaction `json:"transactions"`
	Goals        []RawGoal        `json:"goals"`
}

// Rejection records a problem found while normalizing. Excluded reports
// whether the record was dropped or only corrected.
type Rejection struct {
	Kind     string `json:"kind"`
	ID       string `json:"id"`
	Reason   string `json:"reason"`
	Excluded bool   `json:"excluded"`
}

// ParseDate parses the ISO 8601 dates the aggregator uses.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ParseAmount parses a decimal amount. Both "." and "," are accepted as the
// decimal separator when only one of them appears.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	return d, nil
}

// Normalize turns a raw payload into a Snapshot. Records without an id or with
// unparsable dates or amounts are left out rather than failing the whole snapshot.
func Normalize(raw Raw) (*Snapshot, []Rejection) {
	var (
		snap       = &Snapshot{}
		rejections []Rejection
	)

	reject := func(kind, id string, err error, excluded bool) {
		rejections = append(rejections, Rejection{Kind: kind, ID: id, Reason: err.Error(), Excluded: excluded})
	}

	for _, a := range raw.Accounts {
		if missingID(a.ID) {
			reject("account", a.ID, ErrMissingID, true)
			continue
		}

		balance, err := ParseAmount(string(a.Balance))
		if err != nil {
			reject("account", a.ID, fmt.Errorf("balance: %w", err), true)
			continue
		}

		snap.Accounts = append(snap.Accounts, Account{ID: a.ID, Balance: balance, OwnerName: a.OwnerName})
	}

	for _, c := range raw.CreditCards {
		if missingID(c.ID) {
			reject("credit_card", c.ID, ErrMissingID, true)
			continue
		}

		current, err := ParseAmount(string(c.CurrentBalance))
		if err != nil {
			reject("credit_card", c.ID, fmt.Errorf("current balance: %w", err), true)
			continue
		}

		card := CreditCard{ID: c.ID, Name: c.Name, CurrentBalance: current, Limit: decimal.Zero}

		if c.Limit != "" {
			limit, err := ParseAmount(string(c.Limit))
			if err != nil {
				reject("credit_card", c.ID, fmt.Errorf("limit: %w", err), false)
			} else {
				card.Limit = limit
			}
		}

		if c.DueDate != "" {
			due, err := ParseDate(c.DueDate)
			if err != nil {
				reject("credit_card", c.ID, fmt.Errorf("due date: %w", err), false)
			} else {
				card.DueDate = &due
			}
		}

		snap.CreditCards = append(snap.CreditCards, card)
	}

	for _, t := range raw.Transactions {
		if missingID(t.ID) {
			reject("transaction", t.ID, ErrMissingID, true)
			continue
		}

		date, err := ParseDate(t.Date)
		if err != nil {
			reject("transaction", t.ID, err, true)
			continue
		}

		amount, err := ParseAmount(string(t.Amount))
		if err != nil {
			reject("transaction", t.ID, err, true)
			continue
		}

		derived := TypeFor(amount)
		if t.Type != "" && Type(t.Type) != derived {
			reject("transaction", t.ID, fmt.Errorf("type %q disagrees with amount sign, using %q", t.Type, derived), false)
		}

		snap.Transactions = append(snap.Transactions, Transaction{
			ID:          t.ID,
			Date:        date,
			Amount:      amount,
			Description: t.Description,
			Category:    t.Category,
			Type:        derived,
		})
	}

	for _, g := range raw.Goals {
		if missingID(g.ID) {
			reject("goal", g.ID, ErrMissingID, true)
			continue
		}

		target, err := ParseAmount(string(g.TargetAmount))
		if err != nil {
			reject("goal", g.ID, fmt.Errorf("target amount: %w", err), true)
			continue
		}

		current, err := ParseAmount(string(g.CurrentAmount))
		if err != nil {
			reject("goal", g.ID, fmt.Errorf("current amount: %w", err), true)
			continue
		}

		snap.Goals = append(snap.Goals, Goal{
			ID:            g.ID,
			Title:         g.Title,
			TargetAmount:  target,
			CurrentAmount: current,
			IsActive:      g.IsActive,
		})
	}

	return snap, rejections
}

// missingID reports ids that cannot tell two records apart.
func missingID(id string) bool {
	return strings.TrimSpace(id) == ""
}
