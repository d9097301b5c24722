package achievement

import (
	"time"

	"github.com/shopspring/decimal"
)

// CriteriaID names the fixed rule that decides whether an achievement unlocks.
type CriteriaID string

const (
	CriteriaFirstTransaction CriteriaID = "first-transaction"
	CriteriaMonthlySaver     CriteriaID = "monthly-saver"
	CriteriaPlanner          CriteriaID = "planner"
	CriteriaMillionaire      CriteriaID = "millionaire"
	CriteriaDisciplined      CriteriaID = "disciplined"
)

// Achievement is a gamification badge. IsUnlocked only ever goes from false
// to true, and UnlockedAt is set once, at that transition.
type Achievement struct {
	ID          string
	Title       string
	Description string
	CriteriaID  CriteriaID
	IsUnlocked  bool
	UnlockedAt  *time.Time
}

// Rules holds the thresholds used by the criteria.
type Rules struct {
	MonthlySavingsTarget decimal.Decimal
	PatrimonyTarget      decimal.Decimal
	MonthlyBudget        decimal.Decimal
	StreakMonths         int
}

func DefaultRules() Rules {
	return Rules{
		MonthlySavingsTarget: decimal.NewFromInt(1000),
		PatrimonyTarget:      decimal.NewFromInt(100000),
		MonthlyBudget:        decimal.NewFromInt(3000),
		StreakMonths:         3,
	}
}

// Catalog returns the static list of achievements, all locked.
func Catalog() []Achievement {
	return []Achievement{
		{
			ID:          "1",
			Title:       "Primeira Transação",
			Description: "Registrou sua primeira transação",
			CriteriaID:  CriteriaFirstTransaction,
		},
		{
			ID:          "2",
			Title:       "Poupador Mensal",
			Description: "Economizou R$ 1.000 em um mês",
			CriteriaID:  CriteriaMonthlySaver,
		},
		{
			ID:          "3",
			Title:       "Planejador",
			Description: "Criou sua primeira meta financeira",
			CriteriaID:  CriteriaPlanner,
		},
		{
			ID:          "4",
			Title:       "Milionário",
			Description: "Atingiu R$ 100.000 de patrimônio",
			CriteriaID:  CriteriaMillionaire,
		},
		{
			ID:          "5",
			Title:       "Disciplinado",
			Description: "Ficou dentro do orçamento por 3 meses seguidos",
			CriteriaID:  CriteriaDisciplined,
		},
	}
}

// Summary counts unlocked achievements.
type Summary struct {
	Unlocked int
	Total    int
}

func Summarize(achievements []Achievement) Summary {
	s := Summary{Total: len(achievements)}

	for _, a := range achievements {
		if a.IsUnlocked {
			s.Unlocked++
		}
	}

	return s
}
