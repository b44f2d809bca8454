package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/akozlova/studycards/internal/ai"
	"github.com/akozlova/studycards/internal/db"
	"github.com/akozlova/studycards/internal/errors"
	"github.com/akozlova/studycards/internal/extract"
	"github.com/akozlova/studycards/internal/logger"
	"github.com/akozlova/studycards/internal/models"
	"github.com/akozlova/studycards/internal/storage"
)

// minExtractedChars is the smallest amount of extracted text worth sending
// to the model. Scanned PDFs without a text layer fall below this.
const minExtractedChars = 50

// UploadResult is the response of a successful PDF upload.
type UploadResult struct {
	DeckID     int64                 `json:"deck_id"`
	Mode       models.Mode           `json:"mode"`
	TotalCards int                   `json:"total_cards"`
	Cards      []models.Card         `json:"cards"`
	Summary    []models.SummaryBlock `json:"summary,omitempty"`
}

// GenerationService turns an uploaded PDF into a stored deck of cards
type GenerationService interface {
	CreateDeckFromPDF(ctx context.Context, userID int64, file io.Reader, filename string, mode models.Mode) (*UploadResult, error)
}

type generationService struct {
	db           *db.DB
	store        *storage.Store
	generator    *ai.Generator
	aiConfigured bool
	timeout      time.Duration
}

// NewGenerationService creates a new GenerationService. aiConfigured is
// false when no API key is set; uploads then fail with a configuration
// error instead of an opaque upstream one.
func NewGenerationService(db *db.DB, store *storage.Store, generator *ai.Generator, aiConfigured bool, timeout time.Duration) GenerationService {
	return &generationService{
		db:           db,
		store:        store,
		generator:    generator,
		aiConfigured: aiConfigured,
		timeout:      timeout,
	}
}

func (s *generationService) CreateDeckFromPDF(ctx context.Context, userID int64, file io.Reader, filename string, mode models.Mode) (*UploadResult, error) {
	log := logger.FromContext(ctx)
	log.Info("processing upload: user_id=%d, file=%s, mode=%s", userID, filename, mode)

	if !s.aiConfigured {
		return nil, errors.NewConfigurationError("AI API key")
	}
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, errors.NewValidationError("file", "only PDF files are supported")
	}

	path, cleanup, err := s.store.Stage(ctx, file, filename)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	extracted, err := extract.PDF(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(extracted.Text)) < minExtractedChars {
		return nil, errors.NewValidationError("file", "does not contain enough extractable text")
	}
	log.Debug("extracted %d chars from %d pages", len(extracted.Text), extracted.PageCount)

	genCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	generated, err := s.generator.Generate(genCtx, extracted.Text, mode)
	if err != nil {
		return nil, err
	}

	deck := models.Deck{
		UserID:      userID,
		Title:       deckTitle(filename),
		Description: fmt.Sprintf("Generated from %s", filepath.Base(filename)),
	}

	var deckID int64
	err = s.db.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		deckID, err = db.InsertDeckTx(ctx, tx, deck)
		if err != nil {
			return err
		}
		if _, err := db.InsertCardsTx(ctx, tx, deckID, generated.Cards); err != nil {
			return err
		}
		return db.IncrementDecksCreatedTx(ctx, tx, userID)
	})
	if err != nil {
		log.Error("failed to persist generated deck: %v", err)
		return nil, errors.NewInternalError(err)
	}

	cards, err := s.db.ListCards(ctx, deckID)
	if err != nil {
		log.Error("failed to reload cards for deck %d: %v", deckID, err)
		return nil, errors.NewInternalError(err)
	}

	log.Info("deck created from upload: id=%d, cards=%d", deckID, len(cards))
	return &UploadResult{
		DeckID:     deckID,
		Mode:       mode,
		TotalCards: len(cards),
		Cards:      cards,
		Summary:    generated.Summary,
	}, nil
}

// deckTitle derives a deck title from the uploaded filename stem.
func deckTitle(filename string) string {
	base := filepath.Base(filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.TrimSpace(stem)
	if stem == "" {
		return "Untitled deck"
	}
	return stem
}
