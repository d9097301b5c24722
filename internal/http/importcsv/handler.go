package importcsv

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/cofre/internal/importer"
	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
	"github.com/MrJamesThe3rd/cofre/internal/snapshot/store"
)

const maxUploadBytes = 10 << 20

// TransactionStore persists parsed statement rows.
type TransactionStore interface {
	ImportTransactions(ctx context.Context, txs []snapshot.Transaction) (store.ImportResult, error)
}

type Handler struct {
	importSvc *importer.Service
	store     TransactionStore
}

func NewHandler(importSvc *importer.Service, store TransactionStore) *Handler {
	return &Handler{importSvc: importSvc, store: store}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type transactionResponse struct {
	Date        string `json:"date"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

type importResponse struct {
	Parsed       int                   `json:"parsed"`
	Imported     int                   `json:"imported"`
	Duplicates   int                   `json:"duplicates"`
	Transactions []transactionResponse `json:"transactions"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	bank := importer.Bank(r.URL.Query().Get("bank"))
	if bank == "" {
		bank = importer.Bank(r.FormValue("bank"))
	}

	if bank == "" {
		http.Error(w, "bank is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	txs, err := h.importSvc.Import(bank, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.store.ImportTransactions(r.Context(), txs)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to store imported transactions", "bank", bank, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	slog.InfoContext(r.Context(), "statement imported",
		"bank", bank, "parsed", len(txs), "imported", res.Inserted, "duplicates", res.Duplicates)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(txs, res)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toResponse(txs []snapshot.Transaction, res store.ImportResult) importResponse {
	resp := importResponse{
		Parsed:       len(txs),
		Imported:     res.Inserted,
		Duplicates:   res.Duplicates,
		Transactions: make([]transactionResponse, len(txs)),
	}

	for i, t := range txs {
		resp.Transactions[i] = transactionResponse{
			Date:        t.Date.Format("2006-01-02"),
			Amount:      t.Amount.StringFixed(2),
			Type:        string(t.Type),
			Description: t.Description,
		}
	}

	return resp
}
