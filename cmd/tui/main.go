package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/cofre/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/cofre/internal/achievement"
	achievementStore "github.com/MrJamesThe3rd/cofre/internal/achievement/store"
	"github.com/MrJamesThe3rd/cofre/internal/amqp"
	"github.com/MrJamesThe3rd/cofre/internal/config"
	"github.com/MrJamesThe3rd/cofre/internal/database"
	"github.com/MrJamesThe3rd/cofre/internal/importer"
	"github.com/MrJamesThe3rd/cofre/internal/insight"
	"github.com/MrJamesThe3rd/cofre/internal/notification"
	notificationStore "github.com/MrJamesThe3rd/cofre/internal/notification/store"
	"github.com/MrJamesThe3rd/cofre/internal/refresh"
	snapshotStore "github.com/MrJamesThe3rd/cofre/internal/snapshot/store"
)

type services struct {
	achievements  *achievement.Service
	notifications *notification.Service
	refresh       *refresh.Service
	importer      *importer.Service
	snapshots     *snapshotStore.Store
}

type model struct {
	svc     services
	current view.View
}

func setup(ctx context.Context, cfg *config.Config) (services, func(), error) {
	db, err := database.New(ctx, cfg.ConnectionString())
	if err != nil {
		return services{}, nil, err
	}

	cleanup := func() { _ = db.Close() }

	if cfg.DB.Migrate {
		if err := database.Migrate(db); err != nil {
			cleanup()
			return services{}, nil, err
		}
	}

	var publisher notification.Publisher

	if cfg.AMQP.URL != "" {
		client, err := amqp.NewClient(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue)
		if err != nil {
			cleanup()
			return services{}, nil, err
		}

		publisher = client
		cleanup = func() {
			_ = client.Close()
			_ = db.Close()
		}
	}

	snapshots := snapshotStore.New(db)
	achievements := achievement.NewService(achievementStore.New(db), achievement.NewEvaluator(cfg.AchievementRules(), time.Now))
	notifications := notification.NewService(notificationStore.New(db), notification.NewGenerator(cfg.NotificationThresholds(), time.Now), publisher)
	analyzer := insight.NewAnalyzer(cfg.Rules.MonthlyBudget, cfg.Insights.TrendAlertRatio, time.Now)

	return services{
		achievements:  achievements,
		notifications: notifications,
		refresh:       refresh.NewService(snapshots, achievements, notifications, analyzer),
		importer:      importer.NewService(),
		snapshots:     snapshots,
	}, cleanup, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) open(v view.View) (tea.Model, tea.Cmd) {
	m.current = v
	return m, v.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.current == nil {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				return m.open(view.NewAchievementsModel(m.svc.achievements, m.svc.snapshots))
			case "2":
				return m.open(view.NewNotificationsModel(m.svc.notifications))
			case "3":
				return m.open(view.NewImportModel(m.svc.importer, m.svc.snapshots))
			case "4":
				return m.open(view.NewRefreshModel(m.svc.refresh))
			}

			return m, nil
		}

		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case view.BackMsg:
		m.current = nil
		return m, nil
	}

	if m.current == nil {
		return m, nil
	}

	next, cmd := m.current.Update(msg)
	if v, ok := next.(view.View); ok {
		m.current = v
	}

	return m, cmd
}

func (m model) View() string {
	if m.current != nil {
		return m.current.View()
	}

	return lipgloss.NewStyle().Padding(2).Render(
		"Cofre\n\n" +
			"1. Achievements\n" +
			"2. Notifications\n" +
			"3. Import Statement\n" +
			"4. Refresh\n\n" +
			"q. Quit",
	)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	svc, cleanup, err := setup(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to initialise services", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	p := tea.NewProgram(model{svc: svc})
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		cleanup()
		os.Exit(1)
	}
}
