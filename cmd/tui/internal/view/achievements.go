package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/cofre/internal/achievement"
	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

type AchievementsModel struct {
	CommonModel
	svc      *achievement.Service
	provider snapshot.Provider

	table       table.Model
	summary     achievement.Summary
	suggestions []string
	err         error
}

func NewAchievementsModel(svc *achievement.Service, provider snapshot.Provider) AchievementsModel {
	return AchievementsModel{
		svc:      svc,
		provider: provider,
		table: newTable([]table.Column{
			{Title: "", Width: 3},
			{Title: "Title", Width: 22},
			{Title: "Description", Width: 48},
			{Title: "Unlocked", Width: 12},
		}),
	}
}

func (m AchievementsModel) Title() string     { return "Achievements" }
func (m AchievementsModel) ShortHelp() string { return "Esc: back | r: reload" }

func (m AchievementsModel) Init() tea.Cmd {
	return m.loadCmd()
}

type achievementsLoadedMsg struct {
	achievements []achievement.Achievement
	suggestions  []string
	err          error
}

func (m AchievementsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		list, err := m.svc.List(ctx)
		if err != nil {
			return achievementsLoadedMsg{err: err}
		}

		snap, err := m.provider.Load(ctx)
		if err != nil {
			return achievementsLoadedMsg{err: err}
		}

		suggestions, err := m.svc.Suggestions(ctx, snap)
		if err != nil {
			return achievementsLoadedMsg{err: err}
		}

		return achievementsLoadedMsg{achievements: list, suggestions: suggestions}
	}
}

func (m AchievementsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case achievementsLoadedMsg:
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}

		m.summary = achievement.Summarize(msg.achievements)
		m.suggestions = msg.suggestions
		m.table.SetRows(achievementRows(msg.achievements))

		return m, nil

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-14, 5))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func achievementRows(list []achievement.Achievement) []table.Row {
	rows := make([]table.Row, len(list))

	for i, a := range list {
		mark, when := "·", ""
		if a.IsUnlocked {
			mark = "★"
			if a.UnlockedAt != nil {
				when = FormatDate(*a.UnlockedAt)
			}
		}

		rows[i] = table.Row{mark, a.Title, a.Description, when}
	}

	return rows
}

func (m AchievementsModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Conquistas: %d de %d", m.summary.Unlocked, m.summary.Total)))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")

	for _, s := range m.suggestions {
		b.WriteString("• " + s + "\n")
	}

	b.WriteString("\n" + mutedStyle.Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}
