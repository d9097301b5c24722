package notification

import (
	"time"

	"github.com/MrJamesThe3rd/cofre/internal/notification"
)

type notificationResponse struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	Type           string         `json:"type"`
	Category       string         `json:"category"`
	Priority       string         `json:"priority"`
	IsRead         bool           `json:"is_read"`
	ActionRequired bool           `json:"action_required"`
	CreatedAt      time.Time      `json:"created_at"`
	Data           map[string]any `json:"data,omitempty"`
}

type unreadCountResponse struct {
	Unread int `json:"unread"`
}

func toResponse(n notification.Notification) notificationResponse {
	return notificationResponse{
		ID:             n.ID,
		Title:          n.Title,
		Message:        n.Message,
		Type:           string(n.Type),
		Category:       string(n.Category),
		Priority:       string(n.Priority),
		IsRead:         n.IsRead,
		ActionRequired: n.ActionRequired,
		CreatedAt:      n.CreatedAt,
		Data:           n.Data,
	}
}

func toResponseList(list []notification.Notification) []notificationResponse {
	resp := make([]notificationResponse, len(list))
	for i, n := range list {
		resp[i] = toResponse(n)
	}

	return resp
}
