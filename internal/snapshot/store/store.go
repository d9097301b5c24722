package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Load reads every table that makes up a snapshot.
func (s *Store) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	var (
		snap snapshot.Snapshot
		err  error
	)

	if snap.Accounts, err = s.accounts(ctx); err != nil {
		return nil, err
	}

	if snap.CreditCards, err = s.creditCards(ctx); err != nil {
		return nil, err
	}

	if snap.Transactions, err = s.transactions(ctx); err != nil {
		return nil, err
	}

	if snap.Goals, err = s.goals(ctx); err != nil {
		return nil, err
	}

	return &snap, nil
}

func (s *Store) accounts(ctx context.Context) ([]snapshot.Account, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, balance, owner_name FROM accounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	defer rows.Close()

	var out []snapshot.Account

	for rows.Next() {
		var a snapshot.Account
		if err := rows.Scan(&a.ID, &a.Balance, &a.OwnerName); err != nil {
			return nil, fmt.Errorf("scanning account: %w", err)
		}

		out = append(out, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating account rows: %w", err)
	}

	return out, nil
}

func (s *Store) creditCards(ctx context.Context) ([]snapshot.CreditCard, error) {
	query := `
		SELECT id, name, credit_limit, current_balance, due_date
		FROM credit_cards
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing credit cards: %w", err)
	}
	defer rows.Close()

	var out []snapshot.CreditCard

	for rows.Next() {
		var (
			c   snapshot.CreditCard
			due sql.NullTime
		)

		if err := rows.Scan(&c.ID, &c.Name, &c.Limit, &c.CurrentBalance, &due); err != nil {
			return nil, fmt.Errorf("scanning credit card: %w", err)
		}

		if due.Valid {
			d := civilDate(due.Time)
			c.DueDate = &d
		}

		out = append(out, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating credit card rows: %w", err)
	}

	return out, nil
}

func (s *Store) transactions(ctx context.Context) ([]snapshot.Transaction, error) {
	query := `
		SELECT id, date, amount, description, category
		FROM transactions
		ORDER BY date DESC, id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var out []snapshot.Transaction

	for rows.Next() {
		var t snapshot.Transaction
		if err := rows.Scan(&t.ID, &t.Date, &t.Amount, &t.Description, &t.Category); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		t.Date = civilDate(t.Date)
		// the stored type column is informational; the sign decides
		t.Type = snapshot.TypeFor(t.Amount)
		out = append(out, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return out, nil
}

func (s *Store) goals(ctx context.Context) ([]snapshot.Goal, error) {
	query := `
		SELECT id, title, target_amount, current_amount, is_active
		FROM goals
		ORDER BY id
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var out []snapshot.Goal

	for rows.Next() {
		var g snapshot.Goal
		if err := rows.Scan(&g.ID, &g.Title, &g.TargetAmount, &g.CurrentAmount, &g.IsActive); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		out = append(out, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goal rows: %w", err)
	}

	return out, nil
}

// ImportResult reports how many statement rows were stored and how many were
// already present.
type ImportResult struct {
	Inserted   int
	Duplicates int
}

type importKey struct {
	date        string
	amount      string
	description string
}

// civilDate keeps the calendar date of t as read in t's own location and
// pins it to midnight UTC. Transactions are stored as DATE, and the driver may
// hand back timestamps in the server's local zone.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func keyOf(t snapshot.Transaction) importKey {
	return importKey{
		date:        civilDate(t.Date).Format(time.DateOnly),
		amount:      t.Amount.StringFixed(2),
		description: t.Description,
	}
}

// importLockKey is the advisory lock every import takes, whatever its date
// range, so two imports never check for duplicates at the same time.
const importLockKey int64 = 0x636f66726500

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func lockImports(ctx context.Context, ex execer) error {
	if _, err := ex.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey); err != nil {
		return fmt.Errorf("acquiring import lock: %w", err)
	}

	return nil
}


// ImportTransactions stores parsed statement rows, skipping rows that match
// an existing transaction on date, amount and description. Concurrent imports
// are serialised with a single advisory lock.
func (s *Store) ImportTransactions(ctx context.Context, txs []snapshot.Transaction) (ImportResult, error) {
	if len(txs) == 0 {
		return ImportResult{}, nil
	}

	minDate, maxDate := civilDate(txs[0].Date), civilDate(txs[0].Date)
	for _, t := range txs[1:] {
		d := civilDate(t.Date)
		if d.Before(minDate) {
			minDate = d
		}

		if d.After(maxDate) {
			maxDate = d
		}
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ImportResult{}, fmt.Errorf("beginning import tx: %w", err)
	}
	defer dbTx.Rollback()

	if err := lockImports(ctx, dbTx); err != nil {
		return ImportResult{}, err
	}

	existing, err := existingKeys(ctx, dbTx, minDate, maxDate)
	if err != nil {
		return ImportResult{}, err
	}

	query := `
		INSERT INTO transactions (id, date, amount, description, category, type)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	var res ImportResult

	for _, t := range txs {
		k := keyOf(t)
		if _, dup := existing[k]; dup {
			res.Duplicates++
			continue
		}

		id := t.ID
		if id == "" {
			id = uuid.NewString()
		}

		if _, err := dbTx.ExecContext(ctx, query, id, civilDate(t.Date), t.Amount, t.Description, t.Category, snapshot.TypeFor(t.Amount)); err != nil {
			return ImportResult{}, fmt.Errorf("creating transaction: %w", err)
		}

		existing[k] = struct{}{}
		res.Inserted++
	}

	if err := dbTx.Commit(); err != nil {
		return ImportResult{}, fmt.Errorf("committing import: %w", err)
	}

	return res, nil
}

func existingKeys(ctx context.Context, dbTx *sql.Tx, minDate, maxDate time.Time) (map[importKey]struct{}, error) {
	query := `
		SELECT date, amount, description
		FROM transactions
		WHERE date >= $1 AND date <= $2
	`

	rows, err := dbTx.QueryContext(ctx, query, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	keys := make(map[importKey]struct{})

	for rows.Next() {
		var t snapshot.Transaction
		if err := rows.Scan(&t.Date, &t.Amount, &t.Description); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		keys[keyOf(t)] = struct{}{}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return keys, nil
}
