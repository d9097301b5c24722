package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/cofre/internal/notification"
)

var categoryCycle = []notification.Category{
	"",
	notification.CategoryCard,
	notification.CategoryTransaction,
	notification.CategoryGoal,
	notification.CategoryAchievement,
	notification.CategoryReminder,
	notification.CategorySystem,
}

type NotificationsModel struct {
	CommonModel
	svc *notification.Service

	table       table.Model
	list        []notification.Notification
	unread      int
	filter      notification.Filter
	categoryIdx int
	status      string
	err         error
}

func NewNotificationsModel(svc *notification.Service) NotificationsModel {
	return NotificationsModel{
		svc: svc,
		table: newTable([]table.Column{
			{Title: "", Width: 2},
			{Title: "Priority", Width: 8},
			{Title: "Category", Width: 12},
			{Title: "Title", Width: 28},
			{Title: "Message", Width: 50},
		}),
	}
}

func (m NotificationsModel) Title() string { return "Notifications" }
func (m NotificationsModel) ShortHelp() string {
	return "Esc: back | r: mark read | a: mark all read | u: unread only | c: category"
}

func (m NotificationsModel) Init() tea.Cmd {
	return m.loadCmd()
}

type notificationsLoadedMsg struct {
	list   []notification.Notification
	unread int
	err    error
}

type notificationsChangedMsg struct {
	err error
}

func (m NotificationsModel) loadCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		list, err := m.svc.List(ctx, filter)
		if err != nil {
			return notificationsLoadedMsg{err: err}
		}

		unread, err := m.svc.UnreadCount(ctx)
		if err != nil {
			return notificationsLoadedMsg{err: err}
		}

		return notificationsLoadedMsg{list: list, unread: unread}
	}
}

func (m NotificationsModel) markCmd(id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if id == "" {
			return notificationsChangedMsg{err: m.svc.MarkAllAsRead(ctx)}
		}

		return notificationsChangedMsg{err: m.svc.MarkAsRead(ctx, id)}
	}
}

func (m NotificationsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case notificationsLoadedMsg:
		m.err = msg.err
		if msg.err != nil {
			return m, nil
		}

		m.list = msg.list
		m.unread = msg.unread
		m.table.SetRows(notificationRows(msg.list))

		return m, nil

	case notificationsChangedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.status = ""

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(max(msg.Height-10, 5))
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			if i := m.table.Cursor(); i >= 0 && i < len(m.list) {
				return m, m.markCmd(m.list[i].ID)
			}

			return m, nil
		case "a":
			return m, m.markCmd("")
		case "u":
			m.filter.UnreadOnly = !m.filter.UnreadOnly
			return m, m.loadCmd()
		case "c":
			m.categoryIdx = (m.categoryIdx + 1) % len(categoryCycle)
			m.filter.Category = categoryCycle[m.categoryIdx]

			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func notificationRows(list []notification.Notification) []table.Row {
	rows := make([]table.Row, len(list))

	for i, n := range list {
		dot := "•"
		if n.IsRead {
			dot = " "
		}

		rows[i] = table.Row{dot, string(n.Priority), string(n.Category), truncate(n.Title, 28), truncate(n.Message, 50)}
	}

	return rows
}

func (m NotificationsModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n\n(Esc to go back)")
	}

	var b strings.Builder

	header := fmt.Sprintf("Notificações (%d não lidas)", m.unread)
	if m.filter.UnreadOnly {
		header += " · só não lidas"
	}

	if m.filter.Category != "" {
		header += " · " + string(m.filter.Category)
	}

	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n" + errorStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n" + mutedStyle.Render(m.ShortHelp()))

	return lipgloss.NewStyle().Padding(1).Render(b.String())
}
