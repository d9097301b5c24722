package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

func withLocal(t *testing.T, loc *time.Location) {
	t.Helper()

	prev := time.Local
	time.Local = loc

	t.Cleanup(func() { time.Local = prev })
}

func TestCivilDate_DecodedDateKeepsMonth(t *testing.T) {
	withLocal(t, time.FixedZone("BRT", -3*60*60))

	m := pgtype.NewMap()

	buf, err := m.Encode(pgtype.DateOID, pgtype.BinaryFormatCode,
		pgtype.Date{Time: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), Valid: true}, nil)
	require.NoError(t, err)

	var decoded pgtype.Date
	require.NoError(t, m.Scan(pgtype.DateOID, pgtype.BinaryFormatCode, buf, &decoded))

	got := civilDate(decoded.Time)

	assert.Equal(t, "2024-08", snapshot.MonthKey(got))
	assert.Equal(t, time.UTC, got.Location())
}

func TestCivilDate(t *testing.T) {
	type testCase struct {
		name  string
		input time.Time
		want  string
	}

	tests := []testCase{
		{name: "UTC Midnight", input: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), want: "2024-08-01"},
		{name: "East Of UTC Midnight", input: time.Date(2024, 8, 1, 0, 0, 0, 0, time.FixedZone("WEST", 60*60)), want: "2024-08-01"},
		{name: "West Of UTC Late Evening", input: time.Date(2024, 7, 31, 22, 0, 0, 0, time.FixedZone("BRT", -3*60*60)), want: "2024-07-31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := civilDate(tt.input)

			assert.Equal(t, tt.want, got.Format(time.DateOnly))
			assert.Zero(t, got.Hour())
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestKeyOf_MatchesStoredRow(t *testing.T) {
	parsed := snapshot.Transaction{
		Date:        time.Date(2024, 8, 1, 0, 0, 0, 0, time.FixedZone("WEST", 60*60)),
		Amount:      decimal.RequireFromString("-10.5"),
		Description: "CAFE",
	}

	stored := snapshot.Transaction{
		Date:        time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("-10.50"),
		Description: "CAFE",
	}

	assert.Equal(t, keyOf(stored), keyOf(parsed))
	assert.Equal(t, "2024-08-01", keyOf(parsed).date)
}

type recordingExecer struct {
	args [][]any
	err  error
}

func (r *recordingExecer) ExecContext(_ context.Context, _ string, args ...any) (sql.Result, error) {
	r.args = append(r.args, args)
	return nil, r.err
}

func TestLockImports_SameKeyForEveryImport(t *testing.T) {
	ex := &recordingExecer{}

	require.NoError(t, lockImports(context.Background(), ex))
	require.NoError(t, lockImports(context.Background(), ex))

	require.Len(t, ex.args, 2)
	assert.Equal(t, []any{importLockKey}, ex.args[0])
	assert.Equal(t, ex.args[0], ex.args[1])
}

func TestLockImports_Error(t *testing.T) {
	ex := &recordingExecer{err: errors.New("connection reset")}

	err := lockImports(context.Background(), ex)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "acquiring import lock")
}
