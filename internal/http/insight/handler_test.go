package insight_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	handler "github.com/MrJamesThe3rd/cofre/internal/http/insight"
	"github.com/MrJamesThe3rd/cofre/internal/insight"
	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

type providerFunc func(ctx context.Context) (*snapshot.Snapshot, error)

func (f providerFunc) Load(ctx context.Context) (*snapshot.Snapshot, error) { return f(ctx) }

func serve(provider snapshot.Provider) *httptest.ResponseRecorder {
	now := time.Date(2024, 8, 20, 12, 0, 0, 0, time.UTC)
	analyzer := insight.NewAnalyzer(decimal.NewFromInt(3000), decimal.RequireFromString("0.2"), func() time.Time { return now })

	r := chi.NewRouter()
	r.Route("/insights", handler.NewHandler(analyzer, provider).Routes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/insights", nil))

	return rec
}

func TestHandler_Get(t *testing.T) {
	snap := &snapshot.Snapshot{Transactions: []snapshot.Transaction{
		{ID: "t1", Date: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), Amount: decimal.NewFromInt(2500)},
		{ID: "t2", Date: time.Date(2024, 8, 2, 0, 0, 0, 0, time.UTC), Amount: decimal.RequireFromString("-100.5"), Category: "food"},
	}}

	rec := serve(providerFunc(func(context.Context) (*snapshot.Snapshot, error) { return snap, nil }))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Months []struct {
			Month   string `json:"month"`
			Balance string `json:"balance"`
		} `json:"months"`
		Insights []struct {
			Kind string `json:"kind"`
		} `json:"insights"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

	require.Len(t, body.Months, 1)
	assert.Equal(t, "2024-08", body.Months[0].Month)
	assert.Equal(t, "2399.50", body.Months[0].Balance)

	require.Len(t, body.Insights, 2)
	assert.Equal(t, "top-category", body.Insights[0].Kind)
	assert.Equal(t, "positive-savings", body.Insights[1].Kind)
}

func TestHandler_GetLoadError(t *testing.T) {
	rec := serve(providerFunc(func(context.Context) (*snapshot.Snapshot, error) { return nil, errors.New("db down") }))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
