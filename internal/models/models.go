package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Deck struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CardCount   int        `json:"card_count"`
	CreatedAt   time.Time  `json:"created_at"`
	LastStudied *time.Time `json:"last_studied"`
}

type Card struct {
	ID           int64      `json:"id"`
	DeckID       int64      `json:"deck_id"`
	Question     string     `json:"question"`
	Answer       string     `json:"answer"`
	Source       string     `json:"source"`
	TimesStudied int        `json:"times_studied"`
	TimesCorrect int        `json:"times_correct"`
	LastStudied  *time.Time `json:"last_studied"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Accuracy returns the percentage of correct answers, 0 when never studied.
func (c Card) Accuracy() float64 {
	if c.TimesStudied == 0 {
		return 0
	}
	return float64(c.TimesCorrect) / float64(c.TimesStudied) * 100
}

type StudySession struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	DeckID          int64     `json:"deck_id"`
	Date            time.Time `json:"date"`
	CardsStudied    int       `json:"cards_studied"`
	CardsCorrect    int       `json:"cards_correct"`
	DurationSeconds int       `json:"duration_seconds"`
}

// Accuracy returns the percentage of correct answers in the session.
func (s StudySession) Accuracy() float64 {
	if s.CardsStudied == 0 {
		return 0
	}
	return float64(s.CardsCorrect) / float64(s.CardsStudied) * 100
}

// CardResult is one answered card inside a submitted study session.
type CardResult struct {
	CardID  int64 `json:"card_id"`
	Correct bool  `json:"correct"`
}

type DeckFilter struct {
	UserID int64
	Limit  int
	Offset int
}
