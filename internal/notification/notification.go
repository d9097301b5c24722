package notification

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("notification not found")

type Type string

const (
	TypeInfo        Type = "info"
	TypeWarning     Type = "warning"
	TypeSuccess     Type = "success"
	TypeError       Type = "error"
	TypeAchievement Type = "achievement"
	TypeReminder    Type = "reminder"
)

type Category string

const (
	CategoryTransaction Category = "transaction"
	CategoryGoal        Category = "goal"
	CategoryCard        Category = "card"
	CategorySystem      Category = "system"
	CategoryAchievement Category = "achievement"
	CategoryReminder    Category = "reminder"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}

	return 0
}

// Notification is an alert derived from the snapshot. Only IsRead changes
// after creation.
type Notification struct {
	ID             string
	Title          string
	Message        string
	Type           Type
	Category       Category
	IsRead         bool
	CreatedAt      time.Time
	Priority       Priority
	ActionRequired bool
	Data           map[string]any
}

// Thresholds configures the detectors.
type Thresholds struct {
	DueSoonDays            int
	LargeTransaction       decimal.Decimal
	LargeTransactionWindow time.Duration
	GoalAlmostRatio        decimal.Decimal
	LowBalance             decimal.Decimal
	RecurringMinCount      int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		DueSoonDays:            3,
		LargeTransaction:       decimal.NewFromInt(1000),
		LargeTransactionWindow: 7 * 24 * time.Hour,
		GoalAlmostRatio:        decimal.RequireFromString("0.9"),
		LowBalance:             decimal.NewFromInt(500),
		RecurringMinCount:      3,
	}
}
