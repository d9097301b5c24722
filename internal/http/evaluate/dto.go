package evaluate

import (
	"time"

	"github.com/MrJamesThe3rd/cofre/internal/achievement"
	"github.com/MrJamesThe3rd/cofre/internal/notification"
	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

// Records use the app's camelCase storage format so clients can round-trip
// them unchanged.

type achievementDTO struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CriteriaID  string     `json:"criteriaId"`
	IsUnlocked  bool       `json:"isUnlocked"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
}

type notificationDTO struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	Type           string         `json:"type"`
	Category       string         `json:"category"`
	IsRead         bool           `json:"isRead"`
	CreatedAt      time.Time      `json:"createdAt"`
	Priority       string         `json:"priority"`
	ActionRequired bool           `json:"actionRequired"`
	Data           map[string]any `json:"data,omitempty"`
}

type evaluateRequest struct {
	Snapshot      snapshot.Raw      `json:"snapshot"`
	Achievements  []achievementDTO  `json:"achievements"`
	Notifications []notificationDTO `json:"notifications"`
}

type evaluateResponse struct {
	Achievements  []achievementDTO     `json:"achievements"`
	Unlocked      int                  `json:"unlocked"`
	Total         int                  `json:"total"`
	Suggestions   []string             `json:"suggestions"`
	Notifications []notificationDTO    `json:"notifications"`
	UnreadCount   int                  `json:"unreadCount"`
	Rejections    []snapshot.Rejection `json:"rejections"`
}

func fromAchievementDTOs(in []achievementDTO) []achievement.Achievement {
	out := make([]achievement.Achievement, len(in))
	for i, a := range in {
		out[i] = achievement.Achievement{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			CriteriaID:  achievement.CriteriaID(a.CriteriaID),
			IsUnlocked:  a.IsUnlocked,
			UnlockedAt:  a.UnlockedAt,
		}
	}

	return out
}

func toAchievementDTOs(in []achievement.Achievement) []achievementDTO {
	out := make([]achievementDTO, len(in))
	for i, a := range in {
		out[i] = achievementDTO{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			CriteriaID:  string(a.CriteriaID),
			IsUnlocked:  a.IsUnlocked,
			UnlockedAt:  a.UnlockedAt,
		}
	}

	return out
}

func fromNotificationDTOs(in []notificationDTO) []notification.Notification {
	out := make([]notification.Notification, len(in))
	for i, n := range in {
		out[i] = notification.Notification{
			ID:             n.ID,
			Title:          n.Title,
			Message:        n.Message,
			Type:           notification.Type(n.Type),
			Category:       notification.Category(n.Category),
			IsRead:         n.IsRead,
			CreatedAt:      n.CreatedAt,
			Priority:       notification.Priority(n.Priority),
			ActionRequired: n.ActionRequired,
			Data:           n.Data,
		}
	}

	return out
}

func toNotificationDTOs(in []notification.Notification) []notificationDTO {
	out := make([]notificationDTO, len(in))
	for i, n := range in {
		out[i] = notificationDTO{
			ID:             n.ID,
			Title:          n.Title,
			Message:        n.Message,
			Type:           string(n.Type),
			Category:       string(n.Category),
			IsRead:         n.IsRead,
			CreatedAt:      n.CreatedAt,
			Priority:       string(n.Priority),
			ActionRequired: n.ActionRequired,
			Data:           n.Data,
		}
	}

	return out
}
