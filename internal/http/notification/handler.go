package notification

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/cofre/internal/notification"
)

type Handler struct {
	svc *notification.Service
}

func NewHandler(svc *notification.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/unread-count", h.unreadCount)
	r.Patch("/{id}/read", h.markAsRead)
	r.Post("/read-all", h.markAllAsRead)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := notification.Filter{
		Category: notification.Category(q.Get("category")),
		Type:     notification.Type(q.Get("type")),
	}

	if s := q.Get("unread"); s != "" {
		unread, err := strconv.ParseBool(s)
		if err != nil {
			http.Error(w, "invalid unread flag", http.StatusBadRequest)
			return
		}

		filter.UnreadOnly = unread
	}

	list, err := h.svc.List(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list notifications", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(list)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) unreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.UnreadCount(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to count notifications", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(unreadCountResponse{Unread: count}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) markAsRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.MarkAsRead(r.Context(), id); err != nil {
		if errors.Is(err, notification.ErrNotFound) {
			http.Error(w, "notification not found", http.StatusNotFound)
			return
		}

		slog.ErrorContext(r.Context(), "failed to mark notification as read", "id", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) markAllAsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.MarkAllAsRead(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "failed to mark notifications as read", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
