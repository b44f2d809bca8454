package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akozlova/studycards/internal/models"
)

func TestBatch_CorrectExtendsStreak(t *testing.T) {
	stats := models.NewUserStats(1)
	b := NewBatch(stats)

	b.Apply(10, true)
	b.Apply(11, true)
	b.Apply(12, true)

	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 3, stats.MaxCorrectStreak)
	assert.Equal(t, 3, stats.UniqueCardsStudied.Len())
}

func TestBatch_RepeatedCardCountsOnce(t *testing.T) {
	stats := models.NewUserStats(1)
	b := NewBatch(stats)

	b.Apply(10, true)
	b.Apply(10, true)
	b.Apply(10, true)

	assert.Equal(t, 1, stats.CurrentStreak)
	assert.Equal(t, 1, stats.MaxCorrectStreak)
	assert.Equal(t, 1, stats.UniqueCardsStudied.Len())
}

func TestBatch_IncorrectResetsStreak(t *testing.T) {
	stats := models.NewUserStats(1)
	b := NewBatch(stats)

	b.Apply(10, true)
	b.Apply(11, true)
	b.Apply(12, false)

	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 2, stats.MaxCorrectStreak)
	// only correct answers enter the unique set
	assert.False(t, stats.UniqueCardsStudied.Has(12))
	assert.Equal(t, 2, stats.UniqueCardsStudied.Len())
}

func TestBatch_IncorrectOnlyCardNotInUniqueSet(t *testing.T) {
	stats := models.NewUserStats(1)
	b := NewBatch(stats)

	b.Apply(7, false)

	assert.False(t, stats.UniqueCardsStudied.Has(7))
	assert.Equal(t, 0, stats.UniqueCardsStudied.Len())
}

func TestBatch_StreakStaysDownAfterMiss(t *testing.T) {
	stats := models.NewUserStats(1)
	b := NewBatch(stats)

	b.Apply(10, true)
	b.Apply(11, false)
	// a correct answer later in the same batch still counts as studied,
	// but the streak does not rebuild until the next batch
	b.Apply(10, true)

	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 1, stats.MaxCorrectStreak)
	assert.True(t, stats.UniqueCardsStudied.Has(10))
}

func TestApplyResults_MixedBatch(t *testing.T) {
	stats := models.NewUserStats(1)

	ApplyResults(stats, []models.CardResult{
		{CardID: 1, Correct: true},
		{CardID: 2, Correct: true},
		{CardID: 1, Correct: true},
		{CardID: 3, Correct: false},
		{CardID: 4, Correct: true},
	})

	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 2, stats.MaxCorrectStreak)
	assert.Equal(t, 3, stats.UniqueCardsStudied.Len())
	assert.True(t, stats.UniqueCardsStudied.Has(1))
	assert.True(t, stats.UniqueCardsStudied.Has(2))
	assert.True(t, stats.UniqueCardsStudied.Has(4))
	assert.False(t, stats.UniqueCardsStudied.Has(3))
}

func TestApplyResults_CarriesAcrossBatches(t *testing.T) {
	stats := models.NewUserStats(1)

	ApplyResults(stats, []models.CardResult{
		{CardID: 1, Correct: true},
		{CardID: 2, Correct: true},
	})
	ApplyResults(stats, []models.CardResult{
		{CardID: 3, Correct: true},
	})

	assert.Equal(t, 3, stats.CurrentStreak)
	assert.Equal(t, 3, stats.MaxCorrectStreak)
}

func TestApplyResults_RebuildsInNextBatch(t *testing.T) {
	stats := models.NewUserStats(1)

	ApplyResults(stats, []models.CardResult{
		{CardID: 1, Correct: true},
		{CardID: 2, Correct: false},
		{CardID: 3, Correct: true},
	})
	assert.Equal(t, 0, stats.CurrentStreak)

	// the miss clears the streak card set, so a fresh batch counts
	// previously-seen cards anew
	ApplyResults(stats, []models.CardResult{
		{CardID: 1, Correct: true},
		{CardID: 3, Correct: true},
	})

	assert.Equal(t, 2, stats.CurrentStreak)
	assert.Equal(t, 2, stats.MaxCorrectStreak)
}

func TestReset(t *testing.T) {
	stats := models.NewUserStats(1)
	stats.TotalDecksCreated = 5
	ApplyResults(stats, []models.CardResult{
		{CardID: 1, Correct: true},
		{CardID: 2, Correct: true},
	})

	Reset(stats)

	assert.Equal(t, 0, stats.TotalDecksCreated)
	assert.Equal(t, 0, stats.CurrentStreak)
	assert.Equal(t, 0, stats.MaxCorrectStreak)
	assert.Equal(t, 0, stats.UniqueCardsStudied.Len())
	assert.Equal(t, 0, stats.CurrentStreakCards.Len())
	assert.Equal(t, int64(1), stats.UserID)
}
