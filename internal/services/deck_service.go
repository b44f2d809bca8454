package services

import (
	"context"

	"github.com/akozlova/studycards/internal/db"
	"github.com/akozlova/studycards/internal/errors"
	"github.com/akozlova/studycards/internal/logger"
	"github.com/akozlova/studycards/internal/models"
)

// DeckWithCards is a deck and its full card list, as returned by the detail
// endpoint.
type DeckWithCards struct {
	models.Deck
	Cards []models.Card `json:"cards"`
}

// DeckPage is one page of a user's deck list.
type DeckPage struct {
	Decks   []models.Deck `json:"decks"`
	Total   int           `json:"total"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
}

// DeckService handles deck listing, retrieval, deletion and CSV export
type DeckService interface {
	ListDecks(ctx context.Context, userID int64, page, perPage int) (*DeckPage, error)
	GetDeck(ctx context.Context, deckID, userID int64) (*DeckWithCards, error)
	DeleteDeck(ctx context.Context, deckID, userID int64) error
	ExportRows(ctx context.Context, deckID, userID int64) (title string, rows [][]string, err error)
}

type deckService struct {
	db *db.DB
}

// NewDeckService creates a new DeckService
func NewDeckService(db *db.DB) DeckService {
	return &deckService{db: db}
}

func (s *deckService) ListDecks(ctx context.Context, userID int64, page, perPage int) (*DeckPage, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing decks: user_id=%d, page=%d", userID, page)

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	decks, err := s.db.ListDecks(ctx, models.DeckFilter{
		UserID: userID,
		Limit:  perPage,
		Offset: (page - 1) * perPage,
	})
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return nil, errors.NewInternalError(err)
	}
	total, err := s.db.CountDecks(ctx, userID)
	if err != nil {
		log.Error("failed to count decks: %v", err)
		return nil, errors.NewInternalError(err)
	}

	if decks == nil {
		decks = []models.Deck{}
	}
	return &DeckPage{Decks: decks, Total: total, Page: page, PerPage: perPage}, nil
}

// ownedDeck loads a deck and checks ownership. A deck that exists but
// belongs to someone else reads as not-found.
func (s *deckService) ownedDeck(ctx context.Context, deckID, userID int64) (*models.Deck, error) {
	deck, err := s.db.GetDeck(ctx, deckID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if deck == nil || deck.UserID != userID {
		return nil, errors.NewNotFoundError("deck", deckID)
	}
	return deck, nil
}

func (s *deckService) GetDeck(ctx context.Context, deckID, userID int64) (*DeckWithCards, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting deck: id=%d, user_id=%d", deckID, userID)

	deck, err := s.ownedDeck(ctx, deckID, userID)
	if err != nil {
		return nil, err
	}

	cards, err := s.db.ListCards(ctx, deckID)
	if err != nil {
		log.Error("failed to list cards: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if cards == nil {
		cards = []models.Card{}
	}
	return &DeckWithCards{Deck: *deck, Cards: cards}, nil
}

func (s *deckService) DeleteDeck(ctx context.Context, deckID, userID int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting deck: id=%d, user_id=%d", deckID, userID)

	if _, err := s.ownedDeck(ctx, deckID, userID); err != nil {
		return err
	}
	if err := s.db.DeleteDeck(ctx, deckID); err != nil {
		log.Error("failed to delete deck: %v", err)
		return errors.NewInternalError(err)
	}
	log.Info("deck deleted: id=%d", deckID)
	return nil
}

// ExportRows returns the deck title and its cards as CSV rows, header
// included.
func (s *deckService) ExportRows(ctx context.Context, deckID, userID int64) (string, [][]string, error) {
	log := logger.FromContext(ctx)
	log.Debug("exporting deck: id=%d, user_id=%d", deckID, userID)

	deck, err := s.ownedDeck(ctx, deckID, userID)
	if err != nil {
		return "", nil, err
	}

	cards, err := s.db.ListCards(ctx, deckID)
	if err != nil {
		log.Error("failed to list cards for export: %v", err)
		return "", nil, errors.NewInternalError(err)
	}

	rows := make([][]string, 0, len(cards)+1)
	rows = append(rows, []string{"Front", "Answer"})
	for _, c := range cards {
		rows = append(rows, []string{c.Question, c.Answer})
	}
	return deck.Title, rows, nil
}
