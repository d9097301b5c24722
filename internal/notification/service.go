package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=notification
type Repository interface {
	ListNotifications(ctx context.Context) ([]Notification, error)
	ReplaceNotifications(ctx context.Context, list []Notification) error
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context) error
}

// Publisher pushes notifications that were not stored before to a delivery channel.
type Publisher interface {
	PublishNotification(ctx context.Context, n Notification) error
}

type Service struct {
	repo      Repository
	generator *Generator
	publisher Publisher
}

// NewService creates a notification Service. publisher may be nil.
func NewService(repo Repository, generator *Generator, publisher Publisher) *Service {
	return &Service{repo: repo, generator: generator, publisher: publisher}
}

// Refresh regenerates notifications from the snapshot and stores the merged list.
func (s *Service) Refresh(ctx context.Context, snap *snapshot.Snapshot) ([]Notification, error) {
	existing, err := s.repo.ListNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}

	merged := s.generator.Generate(snap, existing)

	if err := s.repo.ReplaceNotifications(ctx, merged); err != nil {
		return nil, fmt.Errorf("replacing notifications: %w", err)
	}

	stored := make(map[string]struct{}, len(existing))
	for _, n := range existing {
		stored[n.ID] = struct{}{}
	}

	var published int

	for _, n := range merged {
		if _, ok := stored[n.ID]; ok || s.publisher == nil {
			continue
		}

		if err := s.publisher.PublishNotification(ctx, n); err != nil {
			slog.WarnContext(ctx, "failed to publish notification", "id", n.ID, "error", err)
			continue
		}

		published++
	}

	slog.InfoContext(ctx, "notifications refreshed", "total", len(merged), "published", published)

	return merged, nil
}

func (s *Service) List(ctx context.Context, filter Filter) ([]Notification, error) {
	list, err := s.repo.ListNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}

	return View(list, filter), nil
}

func (s *Service) MarkAsRead(ctx context.Context, id string) error {
	return s.repo.MarkAsRead(ctx, id)
}

func (s *Service) MarkAllAsRead(ctx context.Context) error {
	return s.repo.MarkAllAsRead(ctx)
}

func (s *Service) UnreadCount(ctx context.Context) (int, error) {
	list, err := s.repo.ListNotifications(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing notifications: %w", err)
	}

	return UnreadCount(list), nil
}
