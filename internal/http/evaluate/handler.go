// Package evaluate exposes the engine statelessly: the caller sends its own
// records and gets the evaluated lists back without anything being stored.
package evaluate

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/cofre/internal/achievement"
	"github.com/MrJamesThe3rd/cofre/internal/notification"
	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

const maxBodyBytes = 5 << 20

type Handler struct {
	evaluator *achievement.Evaluator
	generator *notification.Generator
}

func NewHandler(evaluator *achievement.Evaluator, generator *notification.Generator) *Handler {
	return &Handler{evaluator: evaluator, generator: generator}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.evaluate)
}

func (h *Handler) evaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	snap, rejections := snapshot.Normalize(req.Snapshot)
	for _, rej := range rejections {
		slog.WarnContext(r.Context(), "snapshot record rejected",
			"kind", rej.Kind, "id", rej.ID, "reason", rej.Reason, "excluded", rej.Excluded)
	}

	current := achievement.Catalog()
	if len(req.Achievements) > 0 {
		current = fromAchievementDTOs(req.Achievements)
	}

	achievements := h.evaluator.Evaluate(snap, current)
	notifications := h.generator.Generate(snap, fromNotificationDTOs(req.Notifications))

	summary := achievement.Summarize(achievements)

	resp := evaluateResponse{
		Achievements:  toAchievementDTOs(achievements),
		Unlocked:      summary.Unlocked,
		Total:         summary.Total,
		Suggestions:   h.evaluator.Suggest(snap, achievements),
		Notifications: toNotificationDTOs(notifications),
		UnreadCount:   notification.UnreadCount(notifications),
		Rejections:    rejections,
	}

	if resp.Suggestions == nil {
		resp.Suggestions = []string{}
	}

	if resp.Rejections == nil {
		resp.Rejections = []snapshot.Rejection{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
