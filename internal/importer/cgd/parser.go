package cgd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/cofre/internal/encoding"
	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

const dateLayout = "02-01-2006"

var ErrUnknownFormat = errors.New("no matching CGD format found: expected columns for conta, extrato, or cartão")

// Parser reads CGD CSV exports. The layout (conta, extrato, cartão) is picked
// from the first row whose headers satisfy a known profile.
type Parser struct {
	location *time.Location
}

func NewParser() *Parser {
	return &Parser{location: time.UTC}
}

func (p *Parser) Parse(r io.Reader) ([]snapshot.Transaction, error) {
	decoded, charset, err := encoding.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(decoded)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	layout, ok := findLayout(rows)
	if !ok {
		return nil, ErrUnknownFormat
	}

	slog.Debug("parsing CGD statement", "profile", layout.profile.Name, "charset", charset)

	return p.transactions(layout, rows[layout.headerRow+1:])
}

type layout struct {
	profile   *Profile
	columns   map[string]int
	headerRow int
}

func findLayout(rows [][]string) (layout, bool) {
	for rowIdx, row := range rows {
		columns := make(map[string]int, len(row))

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				columns[name] = i
			}
		}

		for i := range profiles {
			if profiles[i].matches(columns) {
				return layout{profile: &profiles[i], columns: columns, headerRow: rowIdx}, true
			}
		}
	}

	return layout{}, false
}

func (p *Parser) transactions(l layout, rows [][]string) ([]snapshot.Transaction, error) {
	var txs []snapshot.Transaction

	for i, row := range rows {
		line := l.headerRow + i + 2

		date, err := time.ParseInLocation(dateLayout, cell(row, l.columns[l.profile.DateCol]), p.location)
		if err != nil {
			// footers and page markers
			continue
		}

		desc := cell(row, l.columns[l.profile.DescCol])
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", line)
		}

		amount, ok := l.amount(row)
		if !ok {
			continue
		}

		txs = append(txs, snapshot.Transaction{
			Date:        date,
			Amount:      amount,
			Description: desc,
			Type:        snapshot.TypeFor(amount),
		})
	}

	return txs, nil
}

// amount returns the signed value of a row: debits negative, credits positive.
func (l layout) amount(row []string) (decimal.Decimal, bool) {
	if l.profile.AmountMode == amountSingle {
		return nonZero(cell(row, l.columns[l.profile.AmountCol]))
	}

	if d, ok := nonZero(cell(row, l.columns[l.profile.DebitCol])); ok {
		return d.Abs().Neg(), true
	}

	if d, ok := nonZero(cell(row, l.columns[l.profile.CreditCol])); ok {
		return d.Abs(), true
	}

	return decimal.Zero, false
}

func nonZero(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}

	d, err := parseAmount(s)
	if err != nil || d.IsZero() {
		return decimal.Zero, false
	}

	return d, true
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
