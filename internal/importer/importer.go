package importer

import (
	"io"

	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

type Bank string

const (
	BankCGD Bank = "cgd"
)

// Importer turns a bank statement into signed snapshot transactions.
// Ids are left empty; the store assigns them on insert.
type Importer interface {
	Parse(r io.Reader) ([]snapshot.Transaction, error)
}
