package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/akozlova/studycards/internal/db"
	apperrors "github.com/akozlova/studycards/internal/errors"
	"github.com/akozlova/studycards/internal/models"
	"github.com/akozlova/studycards/internal/services"
	"github.com/akozlova/studycards/internal/testutil"
)

type SessionServiceSuite struct {
	suite.Suite
	db       *db.DB
	sessions services.SessionService
	stats    services.StatsService

	userID  int64
	deckID  int64
	cardIDs []int64
}

func (s *SessionServiceSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.sessions = services.NewSessionService(s.db)
	s.stats = services.NewStatsService(s.db)

	ctx := context.Background()
	var err error
	s.userID, err = s.db.InsertUser(ctx, models.User{Username: "alice", Email: "a@example.com", PasswordHash: "h"})
	s.Require().NoError(err)
	s.Require().NoError(s.db.CreateUserStats(ctx, s.userID))

	s.deckID, err = s.db.InsertDeck(ctx, models.Deck{UserID: s.userID, Title: "Biology"})
	s.Require().NoError(err)

	s.cardIDs = nil
	for _, q := range []string{"q1", "q2", "q3", "q4"} {
		id, err := s.db.InsertCard(ctx, models.Card{DeckID: s.deckID, Question: q, Answer: "a", Source: "p1"})
		s.Require().NoError(err)
		s.cardIDs = append(s.cardIDs, id)
	}
}

func (s *SessionServiceSuite) TestSubmitSession() {
	ctx := context.Background()

	result, err := s.sessions.SubmitSession(ctx, s.userID, s.deckID, []models.CardResult{
		{CardID: s.cardIDs[0], Correct: true},
		{CardID: s.cardIDs[1], Correct: true},
		{CardID: s.cardIDs[2], Correct: false},
	}, 90)
	s.Require().NoError(err)

	s.Equal(3, result.Session.CardsStudied)
	s.Equal(2, result.Session.CardsCorrect)
	s.Equal(90, result.Session.DurationSeconds)
	s.Empty(result.CardsSkipped)

	// card counters updated
	card, err := s.db.GetCard(ctx, s.cardIDs[0])
	s.Require().NoError(err)
	s.Equal(1, card.TimesStudied)
	s.Equal(1, card.TimesCorrect)
	s.NotNil(card.LastStudied)

	wrong, err := s.db.GetCard(ctx, s.cardIDs[2])
	s.Require().NoError(err)
	s.Equal(1, wrong.TimesStudied)
	s.Equal(0, wrong.TimesCorrect)

	// deck stamped
	deck, err := s.db.GetDeck(ctx, s.deckID)
	s.Require().NoError(err)
	s.NotNil(deck.LastStudied)

	// stats: incorrect answer ended the streak and stays out of the unique set
	overview, err := s.stats.GetStats(ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(2, overview.CardsStudied)
	s.Equal(0, overview.CurrentStreak)
	s.Equal(2, overview.MaxCorrectStreak)
}

func (s *SessionServiceSuite) TestSubmitSession_MissHoldsStreakDownUntilNextSession() {
	ctx := context.Background()

	_, err := s.sessions.SubmitSession(ctx, s.userID, s.deckID, []models.CardResult{
		{CardID: s.cardIDs[0], Correct: true},
		{CardID: s.cardIDs[1], Correct: false},
		{CardID: s.cardIDs[2], Correct: true},
		{CardID: s.cardIDs[3], Correct: true},
	}, 60)
	s.Require().NoError(err)

	overview, err := s.stats.GetStats(ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(0, overview.CurrentStreak)
	s.Equal(1, overview.MaxCorrectStreak)
	// cards answered correctly after the miss still count as studied
	s.Equal(3, overview.CardsStudied)

	// the next session starts a fresh streak
	_, err = s.sessions.SubmitSession(ctx, s.userID, s.deckID, []models.CardResult{
		{CardID: s.cardIDs[2], Correct: true},
		{CardID: s.cardIDs[3], Correct: true},
	}, 30)
	s.Require().NoError(err)

	overview, err = s.stats.GetStats(ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(2, overview.CurrentStreak)
	s.Equal(2, overview.MaxCorrectStreak)
}

func (s *SessionServiceSuite) TestSubmitSession_SkipsForeignCards() {
	ctx := context.Background()

	bob, err := s.db.InsertUser(ctx, models.User{Username: "bob", Email: "b@example.com", PasswordHash: "h"})
	s.Require().NoError(err)
	bobDeck, err := s.db.InsertDeck(ctx, models.Deck{UserID: bob, Title: "History"})
	s.Require().NoError(err)
	bobCard, err := s.db.InsertCard(ctx, models.Card{DeckID: bobDeck, Question: "bq", Answer: "ba"})
	s.Require().NoError(err)

	result, err := s.sessions.SubmitSession(ctx, s.userID, s.deckID, []models.CardResult{
		{CardID: s.cardIDs[0], Correct: true},
		{CardID: bobCard, Correct: true},
		{CardID: 99999, Correct: true},
	}, 30)
	s.Require().NoError(err)

	s.Equal(1, result.Session.CardsStudied)
	s.Equal(1, result.Session.CardsCorrect)
	s.ElementsMatch([]int64{bobCard, 99999}, result.CardsSkipped)

	// bob's card untouched
	card, err := s.db.GetCard(ctx, bobCard)
	s.Require().NoError(err)
	s.Equal(0, card.TimesStudied)

	// skipped cards contribute nothing to stats
	overview, err := s.stats.GetStats(ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(1, overview.CardsStudied)
	s.Equal(1, overview.CurrentStreak)
}

func (s *SessionServiceSuite) TestSubmitSession_StreakCountsDistinctCards() {
	ctx := context.Background()

	result, err := s.sessions.SubmitSession(ctx, s.userID, s.deckID, []models.CardResult{
		{CardID: s.cardIDs[0], Correct: true},
		{CardID: s.cardIDs[0], Correct: true},
		{CardID: s.cardIDs[1], Correct: true},
	}, 60)
	s.Require().NoError(err)
	s.Equal(3, result.Session.CardsStudied)

	overview, err := s.stats.GetStats(ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(2, overview.CardsStudied)
	s.Equal(2, overview.CurrentStreak)
	s.Equal(2, overview.MaxCorrectStreak)

	// repeated card answered correctly again bumps its counters twice
	card, err := s.db.GetCard(ctx, s.cardIDs[0])
	s.Require().NoError(err)
	s.Equal(2, card.TimesStudied)
	s.Equal(2, card.TimesCorrect)
}

func (s *SessionServiceSuite) TestSubmitSession_StreakCarriesAcrossSessions() {
	ctx := context.Background()

	_, err := s.sessions.SubmitSession(ctx, s.userID, s.deckID, []models.CardResult{
		{CardID: s.cardIDs[0], Correct: true},
	}, 10)
	s.Require().NoError(err)

	_, err = s.sessions.SubmitSession(ctx, s.userID, s.deckID, []models.CardResult{
		{CardID: s.cardIDs[1], Correct: true},
	}, 10)
	s.Require().NoError(err)

	overview, err := s.stats.GetStats(ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(2, overview.CurrentStreak)
}

func (s *SessionServiceSuite) TestSubmitSession_DeckOwnership() {
	ctx := context.Background()

	bob, err := s.db.InsertUser(ctx, models.User{Username: "bob", Email: "b@example.com", PasswordHash: "h"})
	s.Require().NoError(err)

	_, err = s.sessions.SubmitSession(ctx, bob, s.deckID, []models.CardResult{
		{CardID: s.cardIDs[0], Correct: true},
	}, 10)
	s.Require().Error(err)

	appErr, ok := err.(*apperrors.AppError)
	s.Require().True(ok)
	s.Equal(apperrors.ErrCodeNotFound, appErr.Code)
}

func (s *SessionServiceSuite) TestSubmitSession_EmptyResults() {
	_, err := s.sessions.SubmitSession(context.Background(), s.userID, s.deckID, nil, 10)
	s.Require().Error(err)

	appErr, ok := err.(*apperrors.AppError)
	s.Require().True(ok)
	s.Equal(apperrors.ErrCodeValidation, appErr.Code)
}

func (s *SessionServiceSuite) TestResetStatsKeepsDecksAndCards() {
	ctx := context.Background()

	_, err := s.sessions.SubmitSession(ctx, s.userID, s.deckID, []models.CardResult{
		{CardID: s.cardIDs[0], Correct: true},
		{CardID: s.cardIDs[1], Correct: true},
	}, 60)
	s.Require().NoError(err)

	s.Require().NoError(s.stats.ResetStats(ctx, s.userID))

	overview, err := s.stats.GetStats(ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(0, overview.TotalDecksCreated)
	s.Equal(0, overview.CardsStudied)
	s.Equal(0, overview.CurrentStreak)
	s.Equal(0, overview.MaxCorrectStreak)

	// decks, cards and their counters survive a stats reset
	deck, err := s.db.GetDeck(ctx, s.deckID)
	s.Require().NoError(err)
	s.Require().NotNil(deck)
	s.Equal(4, deck.CardCount)

	card, err := s.db.GetCard(ctx, s.cardIDs[0])
	s.Require().NoError(err)
	s.Equal(1, card.TimesStudied)
}

func TestSessionServiceSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceSuite))
}
