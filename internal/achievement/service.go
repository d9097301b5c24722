package achievement

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/cofre/internal/snapshot"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=achievement
type Repository interface {
	ListAchievements(ctx context.Context) ([]Achievement, error)
	SaveAchievements(ctx context.Context, achievements []Achievement) error
}

type Service struct {
	repo      Repository
	evaluator *Evaluator
}

func NewService(repo Repository, evaluator *Evaluator) *Service {
	return &Service{repo: repo, evaluator: evaluator}
}

// List returns the stored achievements, or the locked catalog when nothing
// has been stored yet.
func (s *Service) List(ctx context.Context) ([]Achievement, error) {
	achievements, err := s.repo.ListAchievements(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing achievements: %w", err)
	}

	if len(achievements) == 0 {
		return Catalog(), nil
	}

	return achievements, nil
}

// Refresh evaluates the snapshot against the stored achievements and
// persists the result.
func (s *Service) Refresh(ctx context.Context, snap *snapshot.Snapshot) ([]Achievement, error) {
	current, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	updated := s.evaluator.Evaluate(snap, current)

	for i := range updated {
		if updated[i].IsUnlocked && !current[i].IsUnlocked {
			slog.InfoContext(ctx, "achievement unlocked", "id", updated[i].ID, "criteria", updated[i].CriteriaID)
		}
	}

	if err := s.repo.SaveAchievements(ctx, updated); err != nil {
		return nil, fmt.Errorf("saving achievements: %w", err)
	}

	return updated, nil
}

func (s *Service) Suggestions(ctx context.Context, snap *snapshot.Snapshot) ([]string, error) {
	achievements, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	return s.evaluator.Suggest(snap, achievements), nil
}
