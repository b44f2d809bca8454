package services

import (
	"context"
	"strings"

	"github.com/akozlova/studycards/internal/db"
	"github.com/akozlova/studycards/internal/errors"
	"github.com/akozlova/studycards/internal/logger"
	"github.com/akozlova/studycards/internal/models"
)

// CardUpdate carries a partial card edit. Nil fields are left unchanged.
type CardUpdate struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
	Source   *string `json:"source"`
}

// CardService handles manual card creation and editing
type CardService interface {
	AddCard(ctx context.Context, deckID, userID int64, question, answer, source string) (*models.Card, error)
	UpdateCard(ctx context.Context, cardID, userID int64, update CardUpdate) (*models.Card, error)
	DeleteCard(ctx context.Context, cardID, userID int64) error
}

type cardService struct {
	db *db.DB
}

// NewCardService creates a new CardService
func NewCardService(db *db.DB) CardService {
	return &cardService{db: db}
}

func (s *cardService) AddCard(ctx context.Context, deckID, userID int64, question, answer, source string) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("adding card: deck_id=%d", deckID)

	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" {
		return nil, errors.NewValidationError("question", "must not be empty")
	}
	if answer == "" {
		return nil, errors.NewValidationError("answer", "must not be empty")
	}
	if source == "" {
		source = "Manually added"
	}

	deck, err := s.db.GetDeck(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil || deck.UserID != userID {
		return nil, errors.NewNotFoundError("deck", deckID)
	}

	id, err := s.db.InsertCard(ctx, models.Card{
		DeckID:   deckID,
		Question: question,
		Answer:   answer,
		Source:   source,
	})
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return nil, errors.NewInternalError(err)
	}

	card, err := s.db.GetCard(ctx, id)
	if err != nil || card == nil {
		log.Error("failed to reload card %d: %v", id, err)
		return nil, errors.NewInternalError(err)
	}
	log.Info("card added: id=%d, deck_id=%d", card.ID, deckID)
	return card, nil
}

func (s *cardService) UpdateCard(ctx context.Context, cardID, userID int64, update CardUpdate) (*models.Card, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating card: id=%d", cardID)

	card, err := s.db.GetCardForUser(ctx, cardID, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}

	if update.Question != nil {
		q := strings.TrimSpace(*update.Question)
		if q == "" {
			return nil, errors.NewValidationError("question", "must not be empty")
		}
		card.Question = q
	}
	if update.Answer != nil {
		a := strings.TrimSpace(*update.Answer)
		if a == "" {
			return nil, errors.NewValidationError("answer", "must not be empty")
		}
		card.Answer = a
	}
	if update.Source != nil {
		card.Source = *update.Source
	}

	if err := s.db.UpdateCard(ctx, *card); err != nil {
		log.Error("failed to update card: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return card, nil
}

func (s *cardService) DeleteCard(ctx context.Context, cardID, userID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting card: id=%d", cardID)

	card, err := s.db.GetCardForUser(ctx, cardID, userID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if card == nil {
		return errors.NewNotFoundError("card", cardID)
	}
	if err := s.db.DeleteCard(ctx, cardID); err != nil {
		log.Error("failed to delete card: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("card deleted: id=%d", cardID)
	return nil
}
