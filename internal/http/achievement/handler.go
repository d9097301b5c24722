package achievement

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/cofre/internal/achievement"
	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

type Handler struct {
	svc      *achievement.Service
	provider snapshot.Provider
}

func NewHandler(svc *achievement.Service, provider snapshot.Provider) *Handler {
	return &Handler{svc: svc, provider: provider}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/suggestions", h.suggestions)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	achievements, err := h.svc.List(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list achievements", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toListResponse(achievements)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) suggestions(w http.ResponseWriter, r *http.Request) {
	snap, err := h.provider.Load(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load snapshot", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	suggestions, err := h.svc.Suggestions(r.Context(), snap)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to build suggestions", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if suggestions == nil {
		suggestions = []string{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(suggestionsResponse{Suggestions: suggestions}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
