package cgd

type amountMode int

const (
	// one signed column, e.g. "Montante" = "-10,00"
	amountSingle amountMode = iota
	// separate "Débito" and "Crédito" columns
	amountSplit
)

// Profile is the column layout of one CGD export.
type Profile struct {
	Name       string
	DateCol    string
	DescCol    string
	AmountMode amountMode
	AmountCol  string
	DebitCol   string
	CreditCol  string
}

func (p Profile) matches(columns map[string]int) bool {
	required := []string{p.DateCol, p.DescCol}

	if p.AmountMode == amountSplit {
		required = append(required, p.DebitCol, p.CreditCol)
	} else {
		required = append(required, p.AmountCol)
	}

	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return false
		}
	}

	return true
}

// Tried in order; the card layout has the most specific headers.
var profiles = []Profile{
	{Name: "cartão", DateCol: "Data", DescCol: "Descrição", AmountMode: amountSplit, DebitCol: "Débito", CreditCol: "Crédito"},
	{Name: "extrato", DateCol: "Data mov.", DescCol: "Descrição", AmountMode: amountSingle, AmountCol: "Movimento"},
	{Name: "conta", DateCol: "Data mov.", DescCol: "Descrição", AmountMode: amountSingle, AmountCol: "Montante"},
}
