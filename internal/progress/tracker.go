// Package progress implements the study-progress aggregate: unique cards
// answered correctly, the current correct streak over distinct cards, and
// the best streak ever reached.
package progress

import "github.com/akozlova/studycards/internal/models"

// Batch folds one session's results into the stats aggregate, in order.
//
// The streak counts distinct cards: answering the same card correctly twice
// in a row extends the streak only once. The first incorrect answer clears
// the streak and keeps it at zero for the rest of the batch; a later batch
// starts rebuilding from scratch.
type Batch struct {
	stats  *models.UserStats
	failed bool
}

func NewBatch(stats *models.UserStats) *Batch {
	return &Batch{stats: stats}
}

// Apply folds one answered card into the aggregate. Only correct answers
// enter unique_cards_studied; it is never shrunk by a streak failure.
func (b *Batch) Apply(cardID int64, correct bool) {
	if !correct {
		b.stats.CurrentStreak = 0
		b.stats.CurrentStreakCards = models.NewCardSet()
		b.failed = true
		return
	}

	b.stats.UniqueCardsStudied.Add(cardID)

	if b.failed {
		return
	}
	if b.stats.CurrentStreakCards.Add(cardID) {
		b.stats.CurrentStreak++
		if b.stats.CurrentStreak > b.stats.MaxCorrectStreak {
			b.stats.MaxCorrectStreak = b.stats.CurrentStreak
		}
	}
}

// ApplyResults folds a whole batch at once.
func ApplyResults(stats *models.UserStats, results []models.CardResult) {
	b := NewBatch(stats)
	for _, r := range results {
		b.Apply(r.CardID, r.Correct)
	}
}

// Reset zeroes every counter and set. Decks and cards are untouched; only
// the aggregate is cleared.
func Reset(stats *models.UserStats) {
	stats.TotalDecksCreated = 0
	stats.UniqueCardsStudied = models.NewCardSet()
	stats.CurrentStreak = 0
	stats.CurrentStreakCards = models.NewCardSet()
	stats.MaxCorrectStreak = 0
}
