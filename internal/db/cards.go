package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akozlova/studycards/internal/logger"
	"github.com/akozlova/studycards/internal/models"
)

func (db *DB) InsertCard(ctx context.Context, c models.Card) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("inserting card: deck_id=%d", c.DeckID)

	res, err := db.ExecContext(ctx, `
INSERT INTO cards (deck_id, question, answer, source)
VALUES (?, ?, ?, ?)
`, c.DeckID, c.Question, c.Answer, c.Source)
	if err != nil {
		log.Error("failed to insert card: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get card id: %v", err)
		return 0, err
	}
	log.Debug("card inserted: id=%d", id)
	return id, nil
}

// InsertCardsTx inserts a batch of generated cards for one deck inside an
// open transaction and returns the assigned IDs in input order.
func InsertCardsTx(ctx context.Context, tx *sql.Tx, deckID int64, cards []models.GeneratedCard) ([]int64, error) {
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO cards (deck_id, question, answer, source)
VALUES (?, ?, ?, ?)
`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	ids := make([]int64, 0, len(cards))
	for _, c := range cards {
		res, err := stmt.ExecContext(ctx, deckID, c.Question, c.Answer, c.Source)
		if err != nil {
			return nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (db *DB) GetCard(ctx context.Context, id int64) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("getting card: id=%d", id)

	var c models.Card
	err := db.QueryRowContext(ctx, `
SELECT id, deck_id, question, answer, source, times_studied, times_correct, last_studied, created_at
FROM cards
WHERE id = ?
`, id).Scan(&c.ID, &c.DeckID, &c.Question, &c.Answer, &c.Source, &c.TimesStudied, &c.TimesCorrect, &c.LastStudied, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card: %v", err)
		return nil, err
	}
	return &c, nil
}

// GetCardForUser loads a card only when the owning deck belongs to the user.
func (db *DB) GetCardForUser(ctx context.Context, id, userID int64) (*models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("getting card: id=%d, user_id=%d", id, userID)

	var c models.Card
	err := db.QueryRowContext(ctx, `
SELECT c.id, c.deck_id, c.question, c.answer, c.source, c.times_studied, c.times_correct, c.last_studied, c.created_at
FROM cards c
JOIN decks d ON d.id = c.deck_id
WHERE c.id = ? AND d.user_id = ?
`, id, userID).Scan(&c.ID, &c.DeckID, &c.Question, &c.Answer, &c.Source, &c.TimesStudied, &c.TimesCorrect, &c.LastStudied, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("card not found for user: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get card for user: %v", err)
		return nil, err
	}
	return &c, nil
}

func (db *DB) ListCards(ctx context.Context, deckID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("listing cards: deck_id=%d", deckID)

	rows, err := db.QueryContext(ctx, `
SELECT id, deck_id, question, answer, source, times_studied, times_correct, last_studied, created_at
FROM cards
WHERE deck_id = ?
ORDER BY id
`, deckID)
	if err != nil {
		log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		var c models.Card
		if err := rows.Scan(&c.ID, &c.DeckID, &c.Question, &c.Answer, &c.Source, &c.TimesStudied, &c.TimesCorrect, &c.LastStudied, &c.CreatedAt); err != nil {
			log.Error("failed to scan card row: %v", err)
			return nil, err
		}
		cards = append(cards, c)
	}
	log.Debug("found %d cards", len(cards))
	return cards, rows.Err()
}

func (db *DB) UpdateCard(ctx context.Context, c models.Card) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("updating card: id=%d", c.ID)

	_, err := db.ExecContext(ctx, `
UPDATE cards
SET question = ?, answer = ?, source = ?
WHERE id = ?
`, c.Question, c.Answer, c.Source, c.ID)
	if err != nil {
		log.Error("failed to update card: %v", err)
	}
	return err
}

func (db *DB) DeleteCard(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("deleting card: id=%d", id)

	_, err := db.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete card: %v", err)
	}
	return err
}

// BumpCardCountersTx applies one study result to a card's counters inside an
// open transaction. The deck join pins ownership so a foreign card ID cannot
// be bumped. Returns false when no matching card exists.
func BumpCardCountersTx(ctx context.Context, tx *sql.Tx, cardID, userID int64, correct bool) (bool, error) {
	correctInc := 0
	if correct {
		correctInc = 1
	}
	res, err := tx.ExecContext(ctx, `
UPDATE cards
SET times_studied = times_studied + 1,
    times_correct = times_correct + ?,
    last_studied = CURRENT_TIMESTAMP
WHERE id = ?
  AND deck_id IN (SELECT id FROM decks WHERE user_id = ?)
`, correctInc, cardID, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
