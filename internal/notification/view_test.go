package notification_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cofre/internal/notification"
)

func sample() []notification.Notification {
	return []notification.Notification{
		{ID: "low-old", Priority: notification.PriorityLow, CreatedAt: now.Add(-2 * time.Hour), Category: notification.CategorySystem},
		{ID: "high-old", Priority: notification.PriorityHigh, CreatedAt: now.Add(-time.Hour), Category: notification.CategoryCard},
		{ID: "medium", Priority: notification.PriorityMedium, CreatedAt: now, Category: notification.CategoryTransaction, IsRead: true},
		{ID: "high-new", Priority: notification.PriorityHigh, CreatedAt: now, Category: notification.CategoryGoal, Type: notification.TypeSuccess},
	}
}

func TestView(t *testing.T) {
	type testCase struct {
		name   string
		filter notification.Filter
		want   []string
	}

	tests := []testCase{
		{
			name:   "Sorted By Priority Then Newest",
			filter: notification.Filter{},
			want:   []string{"high-new", "high-old", "medium", "low-old"},
		},
		{
			name:   "Unread Only",
			filter: notification.Filter{UnreadOnly: true},
			want:   []string{"high-new", "high-old", "low-old"},
		},
		{
			name:   "By Category",
			filter: notification.Filter{Category: notification.CategoryCard},
			want:   []string{"high-old"},
		},
		{
			name:   "By Type",
			filter: notification.Filter{Type: notification.TypeSuccess},
			want:   []string{"high-new"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(notification.View(sample(), tt.filter)))
		})
	}
}

func TestMarkAsRead(t *testing.T) {
	list := sample()

	got, err := notification.MarkAsRead(list, "high-old")
	require.NoError(t, err)

	assert.True(t, got[1].IsRead)
	assert.False(t, list[1].IsRead)
	assert.Equal(t, 2, notification.UnreadCount(got))

	_, err = notification.MarkAsRead(list, "missing")
	assert.ErrorIs(t, err, notification.ErrNotFound)
}

func TestMarkAllAsRead(t *testing.T) {
	list := sample()
	got := notification.MarkAllAsRead(list)

	assert.Equal(t, 0, notification.UnreadCount(got))
	assert.Equal(t, 3, notification.UnreadCount(list))
}
