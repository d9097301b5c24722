package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cofre/internal/notification"
)

// NotificationMessage is what consumers (push gateways, mailers) receive when
// a notification appears for the first time.
type NotificationMessage struct {
	MessageID      string         `json:"messageId"`
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	Type           string         `json:"type"`
	Category       string         `json:"category"`
	Priority       string         `json:"priority"`
	ActionRequired bool           `json:"actionRequired"`
	CreatedAt      time.Time      `json:"createdAt"`
	Data           map[string]any `json:"data,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
}

func NewNotificationMessage(n notification.Notification) *NotificationMessage {
	return &NotificationMessage{
		MessageID:      uuid.NewString(),
		ID:             n.ID,
		Title:          n.Title,
		Message:        n.Message,
		Type:           string(n.Type),
		Category:       string(n.Category),
		Priority:       string(n.Priority),
		ActionRequired: n.ActionRequired,
		CreatedAt:      n.CreatedAt,
		Data:           n.Data,
		Timestamp:      time.Now(),
	}
}

func (m *NotificationMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func NotificationMessageFromJSON(data []byte) (*NotificationMessage, error) {
	var msg NotificationMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}

	return &msg, nil
}
