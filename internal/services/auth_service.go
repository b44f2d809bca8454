package services

import (
	"context"
	"strings"

	"github.com/akozlova/studycards/internal/auth"
	"github.com/akozlova/studycards/internal/db"
	"github.com/akozlova/studycards/internal/errors"
	"github.com/akozlova/studycards/internal/logger"
	"github.com/akozlova/studycards/internal/models"
)

// AuthService handles registration, login and account deletion
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	DeleteAccount(ctx context.Context, userID int64) error
}

type authService struct {
	db     *db.DB
	tokens *auth.TokenIssuer
}

// NewAuthService creates a new AuthService
func NewAuthService(db *db.DB, tokens *auth.TokenIssuer) AuthService {
	return &authService{db: db, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*models.User, string, error) {
	log := logger.FromContext(ctx)
	log.Debug("registering user: username=%s", username)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return nil, "", errors.NewValidationError("username", "must not be empty")
	}
	if len(password) < 8 {
		return nil, "", errors.NewValidationError("password", "must be at least 8 characters")
	}

	existing, err := s.db.GetUserByUsername(ctx, username)
	if err != nil {
		log.Error("failed to check existing user: %v", err)
		return nil, "", errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, "", errors.NewConflictError("username is already taken")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password: %v", err)
		return nil, "", errors.NewInternalError(err)
	}

	id, err := s.db.InsertUser(ctx, models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		log.Error("failed to insert user: %v", err)
		return nil, "", errors.NewInternalError(err)
	}

	// Stats rows are created eagerly so the first session submit never races
	// the lazy fallback.
	if err := s.db.CreateUserStats(ctx, id); err != nil {
		log.Error("failed to create stats row: %v", err)
		return nil, "", errors.NewInternalError(err)
	}

	user, err := s.db.GetUser(ctx, id)
	if err != nil || user == nil {
		log.Error("failed to reload user %d: %v", id, err)
		return nil, "", errors.NewInternalError(err)
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}

	log.Info("user registered: id=%d, username=%s", user.ID, user.Username)
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	log := logger.FromContext(ctx)
	log.Debug("login attempt: username=%s", username)

	user, err := s.db.GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		log.Error("failed to load user: %v", err)
		return nil, "", errors.NewInternalError(err)
	}
	// Same error for unknown user and wrong password
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		log.Debug("login rejected: username=%s", username)
		return nil, "", errors.NewUnauthorizedError("invalid username or password")
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}

	log.Info("user logged in: id=%d", user.ID)
	return user, token, nil
}

func (s *authService) DeleteAccount(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)
	log.Info("deleting account: user_id=%d", userID)

	if err := s.db.DeleteUser(ctx, userID); err != nil {
		log.Error("failed to delete user: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}
