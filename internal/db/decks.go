package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"

	"github.com/akozlova/studycards/internal/logger"
	"github.com/akozlova/studycards/internal/models"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

func (db *DB) InsertDeck(ctx context.Context, d models.Deck) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("inserting deck: user_id=%d, title=%s", d.UserID, d.Title)

	res, err := db.ExecContext(ctx, `
INSERT INTO decks (user_id, title, description)
VALUES (?, ?, ?)
`, d.UserID, d.Title, d.Description)
	if err != nil {
		log.Error("failed to insert deck: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get deck id: %v", err)
		return 0, err
	}
	log.Debug("deck inserted: id=%d", id)
	return id, nil
}

func (db *DB) GetDeck(ctx context.Context, id int64) (*models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("getting deck: id=%d", id)

	var d models.Deck
	err := db.QueryRowContext(ctx, `
SELECT d.id, d.user_id, d.title, d.description, d.created_at, d.last_studied,
       (SELECT COUNT(*) FROM cards c WHERE c.deck_id = d.id) AS card_count
FROM decks d
WHERE d.id = ?
`, id).Scan(&d.ID, &d.UserID, &d.Title, &d.Description, &d.CreatedAt, &d.LastStudied, &d.CardCount)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("deck not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get deck: %v", err)
		return nil, err
	}
	return &d, nil
}

func (db *DB) ListDecks(ctx context.Context, filter models.DeckFilter) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("listing decks: user_id=%d, limit=%d, offset=%d", filter.UserID, filter.Limit, filter.Offset)

	query := sqlBuilder.
		Select("d.id", "d.user_id", "d.title", "d.description", "d.created_at", "d.last_studied",
			"(SELECT COUNT(*) FROM cards c WHERE c.deck_id = d.id) AS card_count").
		From("decks d").
		Where(squirrel.Eq{"d.user_id": filter.UserID}).
		OrderBy("d.created_at DESC")

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query = query.Limit(uint64(limit)).Offset(uint64(offset))

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build deck query: %v", err)
		return nil, err
	}

	rows, err := db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var d models.Deck
		if err := rows.Scan(&d.ID, &d.UserID, &d.Title, &d.Description, &d.CreatedAt, &d.LastStudied, &d.CardCount); err != nil {
			log.Error("failed to scan deck row: %v", err)
			return nil, err
		}
		decks = append(decks, d)
	}
	log.Debug("found %d decks", len(decks))
	return decks, rows.Err()
}

func (db *DB) CountDecks(ctx context.Context, userID int64) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("db")

	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM decks WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		log.Error("failed to count decks: %v", err)
		return 0, err
	}
	return count, nil
}

// InsertDeckTx inserts a deck inside an open transaction and returns the
// assigned ID.
func InsertDeckTx(ctx context.Context, tx *sql.Tx, d models.Deck) (int64, error) {
	res, err := tx.ExecContext(ctx, `
INSERT INTO decks (user_id, title, description)
VALUES (?, ?, ?)
`, d.UserID, d.Title, d.Description)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// DeleteDeck removes the deck; its cards go with it via foreign key cascade.
func (db *DB) DeleteDeck(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("deleting deck: id=%d", id)

	_, err := db.ExecContext(ctx, `DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete deck: %v", err)
	}
	return err
}

// TouchDeckTx stamps the deck's last_studied inside an open transaction.
func TouchDeckTx(ctx context.Context, tx *sql.Tx, deckID int64) error {
	_, err := tx.ExecContext(ctx, `UPDATE decks SET last_studied = CURRENT_TIMESTAMP WHERE id = ?`, deckID)
	return err
}
