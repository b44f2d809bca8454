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

type DeckServiceSuite struct {
	suite.Suite
	db    *db.DB
	decks services.DeckService
	cards services.CardService

	alice int64
	bob   int64
}

func (s *DeckServiceSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.decks = services.NewDeckService(s.db)
	s.cards = services.NewCardService(s.db)

	ctx := context.Background()
	var err error
	s.alice, err = s.db.InsertUser(ctx, models.User{Username: "alice", Email: "a@example.com", PasswordHash: "h"})
	s.Require().NoError(err)
	s.bob, err = s.db.InsertUser(ctx, models.User{Username: "bob", Email: "b@example.com", PasswordHash: "h"})
	s.Require().NoError(err)
}

func (s *DeckServiceSuite) newDeck(userID int64, title string, questions ...string) int64 {
	ctx := context.Background()
	id, err := s.db.InsertDeck(ctx, models.Deck{UserID: userID, Title: title})
	s.Require().NoError(err)
	for _, q := range questions {
		_, err := s.db.InsertCard(ctx, models.Card{DeckID: id, Question: q, Answer: "answer to " + q})
		s.Require().NoError(err)
	}
	return id
}

func (s *DeckServiceSuite) assertNotFound(err error) {
	s.Require().Error(err)
	appErr, ok := err.(*apperrors.AppError)
	s.Require().True(ok)
	s.Equal(apperrors.ErrCodeNotFound, appErr.Code)
}

func (s *DeckServiceSuite) TestListDecksPaginated() {
	ctx := context.Background()
	s.newDeck(s.alice, "A")
	s.newDeck(s.alice, "B")
	s.newDeck(s.alice, "C")
	s.newDeck(s.bob, "D")

	page, err := s.decks.ListDecks(ctx, s.alice, 1, 2)
	s.Require().NoError(err)
	s.Len(page.Decks, 2)
	s.Equal(3, page.Total)
	s.Equal(1, page.Page)
	s.Equal(2, page.PerPage)

	page2, err := s.decks.ListDecks(ctx, s.alice, 2, 2)
	s.Require().NoError(err)
	s.Len(page2.Decks, 1)
}

func (s *DeckServiceSuite) TestGetDeckWithCards() {
	ctx := context.Background()
	deckID := s.newDeck(s.alice, "Biology", "q1", "q2")

	deck, err := s.decks.GetDeck(ctx, deckID, s.alice)
	s.Require().NoError(err)
	s.Equal("Biology", deck.Title)
	s.Equal(2, deck.CardCount)
	s.Len(deck.Cards, 2)
}

func (s *DeckServiceSuite) TestOwnershipReadsAsNotFound() {
	ctx := context.Background()
	deckID := s.newDeck(s.alice, "Biology", "q1")

	_, err := s.decks.GetDeck(ctx, deckID, s.bob)
	s.assertNotFound(err)

	err = s.decks.DeleteDeck(ctx, deckID, s.bob)
	s.assertNotFound(err)

	_, _, err = s.decks.ExportRows(ctx, deckID, s.bob)
	s.assertNotFound(err)

	// alice still sees her deck
	_, err = s.decks.GetDeck(ctx, deckID, s.alice)
	s.Require().NoError(err)
}

func (s *DeckServiceSuite) TestDeleteDeck() {
	ctx := context.Background()
	deckID := s.newDeck(s.alice, "Biology", "q1")

	s.Require().NoError(s.decks.DeleteDeck(ctx, deckID, s.alice))

	_, err := s.decks.GetDeck(ctx, deckID, s.alice)
	s.assertNotFound(err)
}

func (s *DeckServiceSuite) TestExportRows() {
	ctx := context.Background()
	deckID := s.newDeck(s.alice, "Biology", "q1", "q2")

	title, rows, err := s.decks.ExportRows(ctx, deckID, s.alice)
	s.Require().NoError(err)
	s.Equal("Biology", title)
	s.Require().Len(rows, 3)
	s.Equal([]string{"Front", "Answer"}, rows[0])
	s.Equal([]string{"q1", "answer to q1"}, rows[1])
}

func (s *DeckServiceSuite) TestAddCard() {
	ctx := context.Background()
	deckID := s.newDeck(s.alice, "Biology")

	card, err := s.cards.AddCard(ctx, deckID, s.alice, "What is DNA?", "Genetic material", "")
	s.Require().NoError(err)
	s.Equal("What is DNA?", card.Question)
	s.Equal("Manually added", card.Source)

	_, err = s.cards.AddCard(ctx, deckID, s.bob, "q", "a", "")
	s.assertNotFound(err)

	_, err = s.cards.AddCard(ctx, deckID, s.alice, "  ", "a", "")
	s.Require().Error(err)
}

func (s *DeckServiceSuite) TestUpdateCardPartial() {
	ctx := context.Background()
	deckID := s.newDeck(s.alice, "Biology", "q1")
	cards, err := s.db.ListCards(ctx, deckID)
	s.Require().NoError(err)
	cardID := cards[0].ID

	newAnswer := "a better answer"
	updated, err := s.cards.UpdateCard(ctx, cardID, s.alice, services.CardUpdate{Answer: &newAnswer})
	s.Require().NoError(err)
	s.Equal("q1", updated.Question)
	s.Equal("a better answer", updated.Answer)

	empty := " "
	_, err = s.cards.UpdateCard(ctx, cardID, s.alice, services.CardUpdate{Question: &empty})
	s.Require().Error(err)

	_, err = s.cards.UpdateCard(ctx, cardID, s.bob, services.CardUpdate{Answer: &newAnswer})
	s.assertNotFound(err)
}

func (s *DeckServiceSuite) TestDeleteCard() {
	ctx := context.Background()
	deckID := s.newDeck(s.alice, "Biology", "q1")
	cards, err := s.db.ListCards(ctx, deckID)
	s.Require().NoError(err)
	cardID := cards[0].ID

	s.assertNotFound(s.cards.DeleteCard(ctx, cardID, s.bob))
	s.Require().NoError(s.cards.DeleteCard(ctx, cardID, s.alice))

	gone, err := s.db.GetCard(ctx, cardID)
	s.Require().NoError(err)
	s.Nil(gone)
}

func TestDeckServiceSuite(t *testing.T) {
	suite.Run(t, new(DeckServiceSuite))
}
