package services

import (
	"context"

	"github.com/akozlova/studycards/internal/db"
	"github.com/akozlova/studycards/internal/errors"
	"github.com/akozlova/studycards/internal/logger"
	"github.com/akozlova/studycards/internal/progress"
)

// StatsOverview is the public shape of the stats aggregate.
type StatsOverview struct {
	TotalDecksCreated int `json:"total_decks_created"`
	CardsStudied      int `json:"cards_studied"`
	CurrentStreak     int `json:"current_streak"`
	MaxCorrectStreak  int `json:"max_correct_streak"`
}

// StatsService exposes and resets the study-progress aggregate
type StatsService interface {
	GetStats(ctx context.Context, userID int64) (*StatsOverview, error)
	ResetStats(ctx context.Context, userID int64) error
}

type statsService struct {
	db *db.DB
}

// NewStatsService creates a new StatsService
func NewStatsService(db *db.DB) StatsService {
	return &statsService{db: db}
}

func (s *statsService) GetStats(ctx context.Context, userID int64) (*StatsOverview, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting stats: user_id=%d", userID)

	stats, err := s.db.GetUserStats(ctx, userID)
	if err != nil {
		log.Error("failed to load stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	return &StatsOverview{
		TotalDecksCreated: stats.TotalDecksCreated,
		CardsStudied:      stats.UniqueCardsStudied.Len(),
		CurrentStreak:     stats.CurrentStreak,
		MaxCorrectStreak:  stats.MaxCorrectStreak,
	}, nil
}

// ResetStats zeroes the aggregate. Decks, cards and sessions are untouched.
func (s *statsService) ResetStats(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)
	log.Info("resetting stats: user_id=%d", userID)

	stats, err := s.db.GetUserStats(ctx, userID)
	if err != nil {
		log.Error("failed to load stats: %v", err)
		return errors.NewInternalError(err)
	}
	progress.Reset(stats)
	if err := s.db.SaveUserStats(ctx, stats); err != nil {
		log.Error("failed to save stats: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
