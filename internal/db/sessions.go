package db

import (
	"context"
	"database/sql"

	"github.com/akozlova/studycards/internal/logger"
	"github.com/akozlova/studycards/internal/models"
)

// InsertSessionTx records one study session inside an open transaction and
// returns the assigned ID.
func InsertSessionTx(ctx context.Context, tx *sql.Tx, s models.StudySession) (int64, error) {
	res, err := tx.ExecContext(ctx, `
INSERT INTO study_sessions (user_id, deck_id, cards_studied, cards_correct, duration_seconds)
VALUES (?, ?, ?, ?, ?)
`, s.UserID, s.DeckID, s.CardsStudied, s.CardsCorrect, s.DurationSeconds)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (db *DB) GetSession(ctx context.Context, id int64) (*models.StudySession, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("getting session: id=%d", id)

	var s models.StudySession
	err := db.QueryRowContext(ctx, `
SELECT id, user_id, deck_id, date, cards_studied, cards_correct, duration_seconds
FROM study_sessions
WHERE id = ?
`, id).Scan(&s.ID, &s.UserID, &s.DeckID, &s.Date, &s.CardsStudied, &s.CardsCorrect, &s.DurationSeconds)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	return &s, nil
}

func (db *DB) ListSessions(ctx context.Context, userID int64, limit int) ([]models.StudySession, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("listing sessions: user_id=%d", userID)

	if limit <= 0 {
		limit = 50
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, user_id, deck_id, date, cards_studied, cards_correct, duration_seconds
FROM study_sessions
WHERE user_id = ?
ORDER BY date DESC
LIMIT ?
`, userID, limit)
	if err != nil {
		log.Error("failed to query sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []models.StudySession
	for rows.Next() {
		var s models.StudySession
		if err := rows.Scan(&s.ID, &s.UserID, &s.DeckID, &s.Date, &s.CardsStudied, &s.CardsCorrect, &s.DurationSeconds); err != nil {
			log.Error("failed to scan session row: %v", err)
			return nil, err
		}
		sessions = append(sessions, s)
	}
	log.Debug("found %d sessions", len(sessions))
	return sessions, rows.Err()
}
