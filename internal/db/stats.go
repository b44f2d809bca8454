package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/akozlova/studycards/internal/logger"
	"github.com/akozlova/studycards/internal/models"
)

// GetUserStats loads the stats aggregate, creating a zeroed row when the user
// has none yet. Stats rows normally appear at registration; the lazy create
// covers users from before the stats table existed.
func (db *DB) GetUserStats(ctx context.Context, userID int64) (*models.UserStats, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("getting user stats: user_id=%d", userID)

	var (
		stats      models.UserStats
		uniqueJSON string
		streakJSON string
	)
	err := db.QueryRowContext(ctx, `
SELECT user_id, total_decks_created, unique_cards_studied, current_streak, current_streak_cards, max_correct_streak, updated_at
FROM user_stats
WHERE user_id = ?
`, userID).Scan(&stats.UserID, &stats.TotalDecksCreated, &uniqueJSON, &stats.CurrentStreak, &streakJSON, &stats.MaxCorrectStreak, &stats.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("no stats row, creating: user_id=%d", userID)
		if err := db.CreateUserStats(ctx, userID); err != nil {
			return nil, err
		}
		return db.GetUserStats(ctx, userID)
	}
	if err != nil {
		log.Error("failed to get user stats: %v", err)
		return nil, err
	}

	if err := json.Unmarshal([]byte(uniqueJSON), &stats.UniqueCardsStudied); err != nil {
		log.Error("corrupt unique_cards_studied for user %d: %v", userID, err)
		return nil, err
	}
	if err := json.Unmarshal([]byte(streakJSON), &stats.CurrentStreakCards); err != nil {
		log.Error("corrupt current_streak_cards for user %d: %v", userID, err)
		return nil, err
	}
	return &stats, nil
}

func (db *DB) CreateUserStats(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("creating user stats row: user_id=%d", userID)

	_, err := db.ExecContext(ctx, `
INSERT INTO user_stats (user_id) VALUES (?)
ON CONFLICT (user_id) DO NOTHING
`, userID)
	if err != nil {
		log.Error("failed to create user stats: %v", err)
	}
	return err
}

func (db *DB) SaveUserStats(ctx context.Context, stats *models.UserStats) error {
	return db.WithTx(ctx, func(tx *sql.Tx) error {
		return SaveUserStatsTx(ctx, tx, stats)
	})
}

// SaveUserStatsTx writes the aggregate back inside an open transaction.
func SaveUserStatsTx(ctx context.Context, tx *sql.Tx, stats *models.UserStats) error {
	uniqueJSON, err := json.Marshal(stats.UniqueCardsStudied)
	if err != nil {
		return err
	}
	streakJSON, err := json.Marshal(stats.CurrentStreakCards)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `
UPDATE user_stats
SET total_decks_created = ?,
    unique_cards_studied = ?,
    current_streak = ?,
    current_streak_cards = ?,
    max_correct_streak = ?,
    updated_at = CURRENT_TIMESTAMP
WHERE user_id = ?
`, stats.TotalDecksCreated, string(uniqueJSON), stats.CurrentStreak, string(streakJSON), stats.MaxCorrectStreak, stats.UserID)
	return err
}

// IncrementDecksCreatedTx bumps the monotonic deck counter inside an open
// transaction. Deck deletion never decrements it.
func IncrementDecksCreatedTx(ctx context.Context, tx *sql.Tx, userID int64) error {
	_, err := tx.ExecContext(ctx, `
UPDATE user_stats
SET total_decks_created = total_decks_created + 1,
    updated_at = CURRENT_TIMESTAMP
WHERE user_id = ?
`, userID)
	return err
}
