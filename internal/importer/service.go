package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/cofre/internal/importer/cgd"
	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

type Service struct {
	importers map[Bank]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Bank]Importer{
			BankCGD: cgd.NewParser(),
		},
	}
}

func (s *Service) Import(bank Bank, r io.Reader) ([]snapshot.Transaction, error) {
	imp, ok := s.importers[bank]
	if !ok {
		return nil, fmt.Errorf("unknown bank: %s", bank)
	}

	txs, err := imp.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s statement: %w", bank, err)
	}

	return txs, nil
}
