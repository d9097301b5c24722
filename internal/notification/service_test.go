package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/cofre/internal/notification"
	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

func TestService_Refresh(t *testing.T) {
	snap := &snapshot.Snapshot{
		Accounts:    []snapshot.Account{{ID: "a1", Balance: decimal.NewFromInt(200)}},
		CreditCards: []snapshot.CreditCard{{ID: "c1", Name: "Gold", DueDate: daysFromNow(1)}},
	}

	type testCase struct {
		name      string
		setupMock func(repo *notification.MockRepository, pub *notification.MockPublisher)
		wantIDs   []string
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Publishes Only New Ids",
			setupMock: func(repo *notification.MockRepository, pub *notification.MockPublisher) {
				repo.EXPECT().ListNotifications(gomock.Any()).Return([]notification.Notification{
					{ID: "balance-low", IsRead: true},
					{ID: "welcome", IsRead: true},
				}, nil)
				repo.EXPECT().ReplaceNotifications(gomock.Any(), gomock.Len(3)).Return(nil)
				pub.EXPECT().
					PublishNotification(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, n notification.Notification) error {
						assert.Equal(t, "card-due-c1", n.ID)
						return nil
					})
			},
			wantIDs: []string{"card-due-c1", "balance-low", "welcome"},
		},
		{
			name: "Publish Failure Does Not Fail Refresh",
			setupMock: func(repo *notification.MockRepository, pub *notification.MockPublisher) {
				repo.EXPECT().ListNotifications(gomock.Any()).Return(nil, nil)
				repo.EXPECT().ReplaceNotifications(gomock.Any(), gomock.Any()).Return(nil)
				pub.EXPECT().PublishNotification(gomock.Any(), gomock.Any()).Return(errors.New("broker down")).Times(2)
			},
			wantIDs: []string{"card-due-c1", "balance-low"},
		},
		{
			name: "Replace Error",
			setupMock: func(repo *notification.MockRepository, pub *notification.MockPublisher) {
				repo.EXPECT().ListNotifications(gomock.Any()).Return(nil, nil)
				repo.EXPECT().ReplaceNotifications(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := notification.NewMockRepository(ctrl)
			pub := notification.NewMockPublisher(ctrl)
			tt.setupMock(repo, pub)

			svc := notification.NewService(repo, newGenerator(), pub)
			got, err := svc.Refresh(context.Background(), snap)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantIDs, ids(got))
		})
	}
}

func TestService_RefreshWithoutPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := notification.NewMockRepository(ctrl)
	repo.EXPECT().ListNotifications(gomock.Any()).Return(nil, nil)
	repo.EXPECT().ReplaceNotifications(gomock.Any(), gomock.Any()).Return(nil)

	svc := notification.NewService(repo, newGenerator(), nil)
	got, err := svc.Refresh(context.Background(), &snapshot.Snapshot{
		Accounts: []snapshot.Account{{ID: "a1", Balance: decimal.NewFromInt(5000)}},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"welcome"}, ids(got))
}

func TestService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := notification.NewMockRepository(ctrl)
	repo.EXPECT().ListNotifications(gomock.Any()).Return(sample(), nil)

	svc := notification.NewService(repo, newGenerator(), nil)
	got, err := svc.List(context.Background(), notification.Filter{UnreadOnly: true})

	require.NoError(t, err)
	assert.Equal(t, []string{"high-new", "high-old", "low-old"}, ids(got))
}

func TestService_MarkAsRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := notification.NewMockRepository(ctrl)
	repo.EXPECT().MarkAsRead(gomock.Any(), "missing").Return(notification.ErrNotFound)
	repo.EXPECT().MarkAllAsRead(gomock.Any()).Return(nil)

	svc := notification.NewService(repo, newGenerator(), nil)

	assert.ErrorIs(t, svc.MarkAsRead(context.Background(), "missing"), notification.ErrNotFound)
	assert.NoError(t, svc.MarkAllAsRead(context.Background()))
}

func TestService_UnreadCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := notification.NewMockRepository(ctrl)
	repo.EXPECT().ListNotifications(gomock.Any()).Return(sample(), nil)

	svc := notification.NewService(repo, newGenerator(), nil)
	got, err := svc.UnreadCount(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, got)
}
