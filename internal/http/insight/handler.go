package insight

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/cofre/internal/insight"
	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

type Handler struct {
	analyzer *insight.Analyzer
	provider snapshot.Provider
}

func NewHandler(analyzer *insight.Analyzer, provider snapshot.Provider) *Handler {
	return &Handler{analyzer: analyzer, provider: provider}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.get)
}

type monthResponse struct {
	Month   string `json:"month"`
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Balance string `json:"balance"`
}

type insightResponse struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

type insightsResponse struct {
	Months   []monthResponse   `json:"months"`
	Insights []insightResponse `json:"insights"`
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.provider.Load(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load snapshot", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(insight.MonthlySummaries(snap), h.analyzer.Analyze(snap))); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toResponse(months []insight.MonthSummary, insights []insight.Insight) insightsResponse {
	resp := insightsResponse{
		Months:   make([]monthResponse, len(months)),
		Insights: make([]insightResponse, len(insights)),
	}

	for i, m := range months {
		resp.Months[i] = monthResponse{
			Month:   m.Month,
			Income:  m.Income.StringFixed(2),
			Expense: m.Expense.StringFixed(2),
			Balance: m.Balance.StringFixed(2),
		}
	}

	for i, in := range insights {
		resp.Insights[i] = insightResponse{
			ID:       in.ID,
			Kind:     string(in.Kind),
			Title:    in.Title,
			Message:  in.Message,
			Severity: string(in.Severity),
		}
	}

	return resp
}
