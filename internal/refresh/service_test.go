package refresh_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/cofre/internal/achievement"
	"github.com/MrJamesThe3rd/cofre/internal/insight"
	"github.com/MrJamesThe3rd/cofre/internal/notification"
	"github.com/MrJamesThe3rd/cofre/internal/refresh"
	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

type providerFunc func(ctx context.Context) (*snapshot.Snapshot, error)

func (f providerFunc) Load(ctx context.Context) (*snapshot.Snapshot, error) { return f(ctx) }

func TestService_Run(t *testing.T) {
	now := time.Date(2024, 8, 20, 12, 0, 0, 0, time.UTC)
	snap := &snapshot.Snapshot{Transactions: []snapshot.Transaction{
		{ID: "t1", Date: now, Amount: decimal.NewFromInt(2000), Type: snapshot.TypeIncome},
	}}

	loads := 0
	provider := providerFunc(func(context.Context) (*snapshot.Snapshot, error) {
		loads++
		return snap, nil
	})

	type testCase struct {
		name      string
		setupMock func(a *refresh.MockAchievementRefresher, n *refresh.MockNotificationRefresher)
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(a *refresh.MockAchievementRefresher, n *refresh.MockNotificationRefresher) {
				a.EXPECT().Refresh(gomock.Any(), snap).Return([]achievement.Achievement{
					{ID: "1", IsUnlocked: true},
					{ID: "2"},
				}, nil)
				n.EXPECT().Refresh(gomock.Any(), snap).Return([]notification.Notification{
					{ID: "welcome"},
					{ID: "balance-low", IsRead: true},
				}, nil)
			},
		},
		{
			name: "Achievement Error",
			setupMock: func(a *refresh.MockAchievementRefresher, n *refresh.MockNotificationRefresher) {
				a.EXPECT().Refresh(gomock.Any(), snap).Return(nil, errors.New("db error"))
				n.EXPECT().Refresh(gomock.Any(), snap).Return(nil, nil).AnyTimes()
			},
			wantErr: true,
		},
		{
			name: "Notification Error",
			setupMock: func(a *refresh.MockAchievementRefresher, n *refresh.MockNotificationRefresher) {
				a.EXPECT().Refresh(gomock.Any(), snap).Return(nil, nil).AnyTimes()
				n.EXPECT().Refresh(gomock.Any(), snap).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			a := refresh.NewMockAchievementRefresher(ctrl)
			n := refresh.NewMockNotificationRefresher(ctrl)
			tt.setupMock(a, n)

			analyzer := insight.NewAnalyzer(decimal.NewFromInt(3000), decimal.RequireFromString("0.2"), func() time.Time { return now })
			svc := refresh.NewService(provider, a, n, analyzer)

			loads = 0
			got, err := svc.Run(context.Background())

			assert.Equal(t, 1, loads)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, achievement.Summary{Unlocked: 1, Total: 2}, got.Summary)
			assert.Equal(t, 1, got.UnreadCount)
			require.Len(t, got.Insights, 1)
			assert.Equal(t, insight.KindPositiveSavings, got.Insights[0].Kind)
		})
	}
}

func TestService_RunLoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	provider := providerFunc(func(context.Context) (*snapshot.Snapshot, error) {
		return nil, errors.New("connection refused")
	})

	svc := refresh.NewService(provider, refresh.NewMockAchievementRefresher(ctrl), refresh.NewMockNotificationRefresher(ctrl), nil)

	_, err := svc.Run(context.Background())
	assert.ErrorContains(t, err, "loading snapshot")
}
