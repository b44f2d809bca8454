package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akozlova/studycards/internal/logger"
	"github.com/akozlova/studycards/internal/models"
)

func (db *DB) InsertUser(ctx context.Context, u models.User) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("inserting user: username=%s", u.Username)

	res, err := db.ExecContext(ctx, `
INSERT INTO users (username, email, password_hash)
VALUES (?, ?, ?)
`, u.Username, u.Email, u.PasswordHash)
	if err != nil {
		log.Error("failed to insert user: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get user id: %v", err)
		return 0, err
	}
	log.Debug("user inserted: id=%d", id)
	return id, nil
}

func (db *DB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("getting user: id=%d", id)

	var u models.User
	err := db.QueryRowContext(ctx, `
SELECT id, username, email, password_hash, created_at
FROM users
WHERE id = ?
`, id).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	return &u, nil
}

func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("getting user: username=%s", username)

	var u models.User
	err := db.QueryRowContext(ctx, `
SELECT id, username, email, password_hash, created_at
FROM users
WHERE username = ?
`, username).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: username=%s", username)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user by username: %v", err)
		return nil, err
	}
	return &u, nil
}

// DeleteUser removes the user; decks, cards, sessions and stats go with it
// via foreign key cascade.
func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("deleting user: id=%d", id)

	_, err := db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete user: %v", err)
	}
	return err
}
