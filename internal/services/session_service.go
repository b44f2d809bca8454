package services

import (
	"context"
	"database/sql"

	"github.com/akozlova/studycards/internal/db"
	"github.com/akozlova/studycards/internal/errors"
	"github.com/akozlova/studycards/internal/logger"
	"github.com/akozlova/studycards/internal/models"
	"github.com/akozlova/studycards/internal/progress"
)

// SessionResult is the response of a submitted study session. CardsSkipped
// lists result entries whose card ID did not resolve to one of the user's
// cards; they contribute to neither the session counts nor the stats.
type SessionResult struct {
	Session      models.StudySession `json:"session"`
	CardsSkipped []int64             `json:"cards_skipped"`
}

// SessionService records study sessions and maintains the stats aggregate
type SessionService interface {
	SubmitSession(ctx context.Context, userID, deckID int64, results []models.CardResult, durationSeconds int) (*SessionResult, error)
	ListSessions(ctx context.Context, userID int64, limit int) ([]models.StudySession, error)
}

type sessionService struct {
	db *db.DB
}

// NewSessionService creates a new SessionService
func NewSessionService(db *db.DB) SessionService {
	return &sessionService{db: db}
}

func (s *sessionService) SubmitSession(ctx context.Context, userID, deckID int64, results []models.CardResult, durationSeconds int) (*SessionResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("submitting session: user_id=%d, deck_id=%d, results=%d", userID, deckID, len(results))

	if len(results) == 0 {
		return nil, errors.NewValidationError("card_results", "must not be empty")
	}
	if durationSeconds < 0 {
		return nil, errors.NewValidationError("duration_seconds", "must not be negative")
	}

	deck, err := s.db.GetDeck(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil || deck.UserID != userID {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	stats, err := s.db.GetUserStats(ctx, userID)
	if err != nil {
		log.Error("failed to load stats: %v", err)
		return nil, errors.NewInternalError(err)
	}

	var (
		session models.StudySession
		skipped []int64
	)
	err = s.db.WithTx(ctx, func(tx *sql.Tx) error {
		studied, correct := 0, 0
		batch := progress.NewBatch(stats)
		for _, r := range results {
			ok, err := db.BumpCardCountersTx(ctx, tx, r.CardID, userID, r.Correct)
			if err != nil {
				return err
			}
			if !ok {
				skipped = append(skipped, r.CardID)
				continue
			}
			studied++
			if r.Correct {
				correct++
			}
			batch.Apply(r.CardID, r.Correct)
		}

		session = models.StudySession{
			UserID:          userID,
			DeckID:          deckID,
			CardsStudied:    studied,
			CardsCorrect:    correct,
			DurationSeconds: durationSeconds,
		}
		id, err := db.InsertSessionTx(ctx, tx, session)
		if err != nil {
			return err
		}
		session.ID = id

		if err := db.TouchDeckTx(ctx, tx, deckID); err != nil {
			return err
		}
		return db.SaveUserStatsTx(ctx, tx, stats)
	})
	if err != nil {
		log.Error("failed to record session: %v", err)
		return nil, errors.NewInternalError(err)
	}

	stored, err := s.db.GetSession(ctx, session.ID)
	if err != nil || stored == nil {
		log.Error("failed to reload session %d: %v", session.ID, err)
		return nil, errors.NewInternalError(err)
	}

	if skipped == nil {
		skipped = []int64{}
	}
	log.Info("session recorded: id=%d, studied=%d, correct=%d, skipped=%d",
		stored.ID, stored.CardsStudied, stored.CardsCorrect, len(skipped))
	return &SessionResult{Session: *stored, CardsSkipped: skipped}, nil
}

func (s *sessionService) ListSessions(ctx context.Context, userID int64, limit int) ([]models.StudySession, error) {
	sessions, err := s.db.ListSessions(ctx, userID, limit)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if sessions == nil {
		sessions = []models.StudySession{}
	}
	return sessions, nil
}
