package view

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cofre/internal/importer"
	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
	"github.com/MrJamesThe3rd/cofre/internal/snapshot/store"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateBankSelect importState = iota
	importStateFilePick
	importStateParsing
	importStateConfirm
	importStateSaving
	importStateResult
)

type TransactionStore interface {
	ImportTransactions(ctx context.Context, txs []snapshot.Transaction) (store.ImportResult, error)
}

type ImportModel struct {
	CommonModel
	importService *importer.Service
	store         TransactionStore

	state        importState
	filePicker   filepicker.Model
	selectedBank importer.Bank
	bankOptions  []importer.Bank
	bankCursor   int

	parsed  []snapshot.Transaction
	form    *huh.Form
	confirm *bool

	status string
	err    error
}

func NewImportModel(impSvc *importer.Service, store TransactionStore) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv"}
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		importService: impSvc,
		store:         store,
		filePicker:    fp,
		bankOptions:   []importer.Bank{importer.BankCGD},
	}
}

func (m ImportModel) Title() string     { return "Import Statement" }
func (m ImportModel) ShortHelp() string { return "Esc: back | Enter: select" }

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

type parsedMsg struct {
	txs []snapshot.Transaction
	err error
}

type savedMsg struct {
	result store.ImportResult
	err    error
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateBankSelect {
			return m.updateBankSelect(msg)
		}

	case parsedMsg:
		if msg.err != nil {
			return m.fail(msg.err), nil
		}

		if len(msg.txs) == 0 {
			m.state = importStateResult
			m.status = "No transactions found in file."

			return m, nil
		}

		m.parsed = msg.txs
		m.state = importStateConfirm
		m.form = m.confirmForm()

		return m, m.form.Init()

	case savedMsg:
		if msg.err != nil {
			return m.fail(msg.err), nil
		}

		m.state = importStateResult
		m.status = fmt.Sprintf("Imported %d transactions (%d duplicates skipped).", msg.result.Inserted, msg.result.Duplicates)

		return m, nil
	}

	switch m.state {
	case importStateFilePick:
		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.state = importStateParsing
			m.status = fmt.Sprintf("Reading %s...", path)

			return m, m.parseCmd(path)
		}

		return m, cmd

	case importStateConfirm:
		return m.updateConfirm(msg)
	}

	return m, nil
}

func (m ImportModel) fail(err error) ImportModel {
	m.state = importStateResult
	m.err = err
	m.status = fmt.Sprintf("Error: %v", err)

	return m
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick, importStateConfirm, importStateResult:
		m.state = importStateBankSelect
		m.parsed = nil
		m.form = nil
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateBankSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.bankCursor > 0 {
			m.bankCursor--
		}
	case tea.KeyDown:
		if m.bankCursor < len(m.bankOptions)-1 {
			m.bankCursor++
		}
	case tea.KeyEnter:
		m.selectedBank = m.bankOptions[m.bankCursor]
		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func (m *ImportModel) confirmForm() *huh.Form {
	income, expense := decimal.Zero, decimal.Zero
	from, to := m.parsed[0].Date, m.parsed[0].Date

	for _, t := range m.parsed {
		if t.Date.Before(from) {
			from = t.Date
		}

		if t.Date.After(to) {
			to = t.Date
		}

		if t.IsExpense() {
			expense = expense.Add(t.Amount.Abs())
		} else {
			income = income.Add(t.Amount)
		}
	}

	m.confirm = new(true)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Import %d transactions?", len(m.parsed))).
				Description(fmt.Sprintf("%s → %s\nEntradas %s · Saídas %s",
					FormatDate(from), FormatDate(to),
					snapshot.FormatAmount(income), snapshot.FormatAmount(expense))).
				Affirmative("Import").
				Negative("Cancel").
				Value(m.confirm),
		),
	)
}

func (m ImportModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateAborted:
		return m.handleEsc()
	case huh.StateCompleted:
		if !*m.confirm {
			return m.handleEsc()
		}

		m.state = importStateSaving
		m.status = "Saving..."

		return m, m.saveCmd(m.parsed)
	}

	return m, cmd
}

func (m ImportModel) parseCmd(path string) tea.Cmd {
	bank := m.selectedBank

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parsedMsg{err: err}
		}
		defer f.Close()

		txs, err := m.importService.Import(bank, f)

		return parsedMsg{txs: txs, err: err}
	}
}

func (m ImportModel) saveCmd(txs []snapshot.Transaction) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		res, err := m.store.ImportTransactions(ctx, txs)

		return savedMsg{result: res, err: err}
	}
}

func (m ImportModel) View() string {
	style := lipgloss.NewStyle().Padding(2)

	switch m.state {
	case importStateBankSelect:
		s := "Select Bank:\n\n"

		for i, bank := range m.bankOptions {
			cursor := " "
			if i == m.bankCursor {
				cursor = ">"
			}

			s += fmt.Sprintf("%s %s\n", cursor, string(bank))
		}

		return style.Render(s)
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select file to import (%s):\n\n%s", m.selectedBank, m.filePicker.View()),
		)
	case importStateConfirm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	case importStateParsing, importStateSaving:
		return style.Render(m.status)
	case importStateResult:
		render := successStyle.Render
		if m.err != nil {
			render = errorStyle.Render
		}

		return style.Render(render(m.status) + "\n\n(Esc to go back)")
	}

	return ""
}
