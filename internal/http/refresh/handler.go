package refresh

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/cofre/internal/refresh"
)

type Handler struct {
	svc *refresh.Service
}

func NewHandler(svc *refresh.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.run)
}

type refreshResponse struct {
	Unlocked      int      `json:"unlocked"`
	Total         int      `json:"total"`
	Notifications int      `json:"notifications"`
	Unread        int      `json:"unread"`
	Insights      []string `json:"insights"`
	DurationMS    int64    `json:"duration_ms"`
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Run(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "refresh failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	insights := make([]string, len(res.Insights))
	for i, in := range res.Insights {
		insights[i] = in.Message
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(refreshResponse{
		Unlocked:      res.Summary.Unlocked,
		Total:         res.Summary.Total,
		Notifications: len(res.Notifications),
		Unread:        res.UnreadCount,
		Insights:      insights,
		DurationMS:    res.Duration.Milliseconds(),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
