// Package refresh runs one evaluation pass over the current snapshot.
package refresh

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/cofre/internal/achievement"
	"github.com/MrJamesThe3rd/cofre/internal/insight"
	"github.com/MrJamesThe3rd/cofre/internal/notification"
	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

//go:generate mockgen -source=service.go -destination=service_mock.go -package=refresh

type AchievementRefresher interface {
	Refresh(ctx context.Context, snap *snapshot.Snapshot) ([]achievement.Achievement, error)
}

type NotificationRefresher interface {
	Refresh(ctx context.Context, snap *snapshot.Snapshot) ([]notification.Notification, error)
}

type Result struct {
	Achievements  []achievement.Achievement
	Summary       achievement.Summary
	Notifications []notification.Notification
	UnreadCount   int
	Insights      []insight.Insight
	Duration      time.Duration
}

type Service struct {
	provider      snapshot.Provider
	achievements  AchievementRefresher
	notifications NotificationRefresher
	analyzer      *insight.Analyzer

	// one pass at a time so the stores see whole replacements
	mu sync.Mutex
}

func NewService(
	provider snapshot.Provider,
	achievements AchievementRefresher,
	notifications NotificationRefresher,
	analyzer *insight.Analyzer,
) *Service {
	return &Service{
		provider:      provider,
		achievements:  achievements,
		notifications: notifications,
		analyzer:      analyzer,
	}
}

// Run loads the snapshot once and refreshes achievements and notifications
// from it concurrently.
func (s *Service) Run(ctx context.Context) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()

	snap, err := s.provider.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshot: %w", err)
	}

	var res Result

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := s.achievements.Refresh(gctx, snap)
		if err != nil {
			return fmt.Errorf("refreshing achievements: %w", err)
		}

		res.Achievements = list

		return nil
	})

	g.Go(func() error {
		list, err := s.notifications.Refresh(gctx, snap)
		if err != nil {
			return fmt.Errorf("refreshing notifications: %w", err)
		}

		res.Notifications = list

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Summary = achievement.Summarize(res.Achievements)
	res.UnreadCount = notification.UnreadCount(res.Notifications)

	if s.analyzer != nil {
		res.Insights = s.analyzer.Analyze(snap)
	}

	res.Duration = time.Since(start)

	slog.InfoContext(ctx, "refresh completed",
		"unlocked", res.Summary.Unlocked,
		"total", res.Summary.Total,
		"notifications", len(res.Notifications),
		"unread", res.UnreadCount,
		"duration", res.Duration,
	)

	return &res, nil
}
