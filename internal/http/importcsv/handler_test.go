package importcsv_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cofre/internal/http/importcsv"
	"github.com/MrJamesThe3rd/cofre/internal/importer"
	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
	"github.com/MrJamesThe3rd/cofre/internal/snapshot/store"
)

type fakeStore struct {
	got []snapshot.Transaction
	err error
}

func (f *fakeStore) ImportTransactions(_ context.Context, txs []snapshot.Transaction) (store.ImportResult, error) {
	f.got = txs
	if f.err != nil {
		return store.ImportResult{}, f.err
	}

	return store.ImportResult{Inserted: len(txs) - 1, Duplicates: 1}, nil
}

const statement = "Data mov.;Descrição;Montante\n30-01-2026;MERCADO;-45,20\n31-01-2026;SALARIO;1.500,00\n"

func upload(t *testing.T, target, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)
	if content != "" {
		fw, err := mw.CreateFormFile("file", "extrato.csv")
		require.NoError(t, err)

		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func TestHandler_Import(t *testing.T) {
	type testCase struct {
		name       string
		target     string
		content    string
		storeErr   error
		wantStatus int
	}

	tests := []testCase{
		{name: "Success", target: "/import?bank=cgd", content: statement, wantStatus: http.StatusCreated},
		{name: "Missing Bank", target: "/import", content: statement, wantStatus: http.StatusBadRequest},
		{name: "Unknown Bank", target: "/import?bank=xyz", content: statement, wantStatus: http.StatusBadRequest},
		{name: "Missing File", target: "/import?bank=cgd", wantStatus: http.StatusBadRequest},
		{name: "Unrecognised Layout", target: "/import?bank=cgd", content: "a;b;c\n1;2;3\n", wantStatus: http.StatusBadRequest},
		{name: "Store Error", target: "/import?bank=cgd", content: statement, storeErr: errors.New("db down"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &fakeStore{err: tt.storeErr}

			r := chi.NewRouter()
			r.Route("/import", importcsv.NewHandler(importer.NewService(), fs).Routes)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, upload(t, tt.target, tt.content))

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantStatus != http.StatusCreated {
				return
			}

			var body struct {
				Parsed       int `json:"parsed"`
				Imported     int `json:"imported"`
				Duplicates   int `json:"duplicates"`
				Transactions []struct {
					Amount string `json:"amount"`
					Type   string `json:"type"`
				} `json:"transactions"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))

			assert.Equal(t, 2, body.Parsed)
			assert.Equal(t, 1, body.Imported)
			assert.Equal(t, 1, body.Duplicates)
			require.Len(t, body.Transactions, 2)
			assert.Equal(t, "-45.20", body.Transactions[0].Amount)
			assert.Equal(t, "expense", body.Transactions[0].Type)
			assert.Equal(t, "1500.00", body.Transactions[1].Amount)
			require.Len(t, fs.got, 2)
		})
	}
}
