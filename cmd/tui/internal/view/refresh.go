package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/cofre/internal/refresh"
)

const refreshTimeout = 30 * time.Second

type RefreshModel struct {
	CommonModel
	svc *refresh.Service

	running bool
	result  *refresh.Result
	err     error
}

func NewRefreshModel(svc *refresh.Service) RefreshModel {
	return RefreshModel{svc: svc, running: true}
}

func (m RefreshModel) Title() string     { return "Refresh" }
func (m RefreshModel) ShortHelp() string { return "Esc: back | r: run again" }

type refreshDoneMsg struct {
	result *refresh.Result
	err    error
}

func (m RefreshModel) Init() tea.Cmd {
	return m.runCmd()
}

func (m RefreshModel) runCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		res, err := m.svc.Run(ctx)

		return refreshDoneMsg{result: res, err: err}
	}
}

func (m RefreshModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshDoneMsg:
		m.running = false
		m.result, m.err = msg.result, msg.err

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			if m.running {
				return m, nil
			}

			m.running = true

			return m, m.runCmd()
		}
	}

	return m, nil
}

func (m RefreshModel) View() string {
	style := lipgloss.NewStyle().Padding(2)

	switch {
	case m.err != nil:
		return style.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	case m.result == nil:
		return style.Render("Atualizando...")
	}

	var b strings.Builder

	b.WriteString(successStyle.Render(fmt.Sprintf("Atualizado em %s", m.result.Duration.Round(time.Millisecond))))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Conquistas: %d de %d\n", m.result.Summary.Unlocked, m.result.Summary.Total)
	fmt.Fprintf(&b, "Notificações: %d (%d não lidas)\n", len(m.result.Notifications), m.result.UnreadCount)

	if len(m.result.Insights) > 0 {
		b.WriteString("\n" + titleStyle.Render("Insights") + "\n")

		for _, in := range m.result.Insights {
			fmt.Fprintf(&b, "• %s: %s\n", in.Title, in.Message)
		}
	}

	b.WriteString("\n" + mutedStyle.Render(m.ShortHelp()))

	return style.Render(b.String())
}
