package achievement

import (
	"time"

	"github.com/MrJamesThe3rd/cofre/internal/achievement"
)

type achievementResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CriteriaID  string     `json:"criteria_id"`
	IsUnlocked  bool       `json:"is_unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

type listResponse struct {
	Unlocked     int                   `json:"unlocked"`
	Total        int                   `json:"total"`
	Achievements []achievementResponse `json:"achievements"`
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

func toResponse(a achievement.Achievement) achievementResponse {
	return achievementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Description,
		CriteriaID:  string(a.CriteriaID),
		IsUnlocked:  a.IsUnlocked,
		UnlockedAt:  a.UnlockedAt,
	}
}

func toListResponse(achievements []achievement.Achievement) listResponse {
	summary := achievement.Summarize(achievements)

	resp := listResponse{
		Unlocked:     summary.Unlocked,
		Total:        summary.Total,
		Achievements: make([]achievementResponse, len(achievements)),
	}

	for i, a := range achievements {
		resp.Achievements[i] = toResponse(a)
	}

	return resp
}
