package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cofre/internal/achievement"
	"github.com/MrJamesThe3rd/cofre/internal/notification"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Cofre"`
		Port     int    `envconfig:"PORT" default:"8080"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"cofre"`
		Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"*"`
	}

	AMQP struct {
		URL      string `envconfig:"AMQP_URL"`
		Exchange string `envconfig:"AMQP_EXCHANGE" default:"cofre"`
		Queue    string `envconfig:"AMQP_QUEUE" default:"notifications"`
	}

	Auth struct {
		JWTSecret string `envconfig:"JWT_SECRET"`
	}

	Rules struct {
		MonthlySavingsTarget decimal.Decimal `envconfig:"RULE_MONTHLY_SAVINGS_TARGET" default:"1000"`
		PatrimonyTarget      decimal.Decimal `envconfig:"RULE_PATRIMONY_TARGET" default:"100000"`
		MonthlyBudget        decimal.Decimal `envconfig:"RULE_MONTHLY_BUDGET" default:"3000"`
		StreakMonths         int             `envconfig:"RULE_STREAK_MONTHS" default:"3"`
	}

	Thresholds struct {
		DueSoonDays            int             `envconfig:"NOTIFY_DUE_SOON_DAYS" default:"3"`
		LargeTransaction       decimal.Decimal `envconfig:"NOTIFY_LARGE_TRANSACTION" default:"1000"`
		LargeTransactionWindow time.Duration   `envconfig:"NOTIFY_LARGE_TRANSACTION_WINDOW" default:"168h"`
		GoalAlmostRatio        decimal.Decimal `envconfig:"NOTIFY_GOAL_ALMOST_RATIO" default:"0.9"`
		LowBalance             decimal.Decimal `envconfig:"NOTIFY_LOW_BALANCE" default:"500"`
		RecurringMinCount      int             `envconfig:"NOTIFY_RECURRING_MIN_COUNT" default:"3"`
	}

	Insights struct {
		TrendAlertRatio decimal.Decimal `envconfig:"INSIGHT_TREND_RATIO" default:"0.2"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func (c *Config) AchievementRules() achievement.Rules {
	return achievement.Rules{
		MonthlySavingsTarget: c.Rules.MonthlySavingsTarget,
		PatrimonyTarget:      c.Rules.PatrimonyTarget,
		MonthlyBudget:        c.Rules.MonthlyBudget,
		StreakMonths:         c.Rules.StreakMonths,
	}
}

func (c *Config) NotificationThresholds() notification.Thresholds {
	return notification.Thresholds{
		DueSoonDays:            c.Thresholds.DueSoonDays,
		LargeTransaction:       c.Thresholds.LargeTransaction,
		LargeTransactionWindow: c.Thresholds.LargeTransactionWindow,
		GoalAlmostRatio:        c.Thresholds.GoalAlmostRatio,
		LowBalance:             c.Thresholds.LowBalance,
		RecurringMinCount:      c.Thresholds.RecurringMinCount,
	}
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Rules.StreakMonths < 1 {
		return nil, fmt.Errorf("invalid RULE_STREAK_MONTHS %d: must be at least 1", cfg.Rules.StreakMonths)
	}

	return &cfg, nil
}
