package models

import (
	"encoding/json"
	"sort"
	"time"
)

// CardSet is a set of card IDs. It serializes as a sorted JSON array so the
// stored form is deterministic.
type CardSet map[int64]struct{}

func NewCardSet(ids ...int64) CardSet {
	s := make(CardSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s CardSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id and reports whether it was newly added.
func (s CardSet) Add(id int64) bool {
	if s.Has(id) {
		return false
	}
	s[id] = struct{}{}
	return true
}

func (s CardSet) Len() int {
	return len(s)
}

func (s CardSet) Sorted() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s CardSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *CardSet) UnmarshalJSON(data []byte) error {
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewCardSet(ids...)
	return nil
}

// UserStats is the per-user study progress aggregate.
//
// Invariants after any update: CurrentStreak == len(CurrentStreakCards) and
// MaxCorrectStreak >= CurrentStreak.
type UserStats struct {
	UserID             int64     `json:"user_id"`
	TotalDecksCreated  int       `json:"total_decks_created"`
	UniqueCardsStudied CardSet   `json:"unique_cards_studied"`
	CurrentStreak      int       `json:"current_streak"`
	CurrentStreakCards CardSet   `json:"current_streak_cards"`
	MaxCorrectStreak   int       `json:"max_correct_streak"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewUserStats returns a zeroed aggregate for the given user.
func NewUserStats(userID int64) *UserStats {
	return &UserStats{
		UserID:             userID,
		UniqueCardsStudied: NewCardSet(),
		CurrentStreakCards: NewCardSet(),
	}
}
