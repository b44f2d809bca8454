package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	apperrors "github.com/akozlova/studycards/internal/errors"
	"github.com/akozlova/studycards/internal/logger"
	"github.com/akozlova/studycards/internal/models"
)

const (
	// maxCardInput caps how much extracted text goes into the card prompt.
	maxCardInput = 30000
	// maxSummaryInput caps the summary prompt; summaries only need the
	// opening of the document.
	maxSummaryInput = 10000
)

// Generator turns extracted document text into flashcards or summary blocks
// via the chat completion client.
type Generator struct {
	client *Client
}

func NewGenerator(client *Client) *Generator {
	return &Generator{client: client}
}

// Generate runs the full pipeline for one document: cards always, plus
// summary blocks when summary mode is requested.
func (g *Generator) Generate(ctx context.Context, text string, mode models.Mode) (*models.GenerationResult, error) {
	cards, err := g.GenerateCards(ctx, text)
	if err != nil {
		return nil, err
	}
	result := &models.GenerationResult{Cards: cards}
	if mode == models.ModeSummary {
		result.Summary = g.GenerateSummary(ctx, text)
	}
	return result, nil
}

// GenerateCards produces 5-15 flashcards from the text. The whole batch is
// accepted or rejected: one malformed card fails the call.
func (g *Generator) GenerateCards(ctx context.Context, text string) ([]models.GeneratedCard, error) {
	log := logger.FromContext(ctx).WithPrefix("ai")

	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("text", "must not be empty")
	}

	input := truncate(text, maxCardInput)
	log.Info("generating cards: input_len=%d", len(input))

	raw, err := g.client.Complete(ctx, cardSystemPrompt, cardPrompt(input))
	if err != nil {
		return nil, err
	}

	var cards []models.GeneratedCard
	if err := parseArray(raw, &cards); err != nil {
		log.Error("failed to parse card response: %v", err)
		return nil, apperrors.NewParseError(err)
	}
	if len(cards) == 0 {
		return nil, apperrors.NewParseError(fmt.Errorf("response contains no cards"))
	}
	for i := range cards {
		if strings.TrimSpace(cards[i].Question) == "" || strings.TrimSpace(cards[i].Answer) == "" {
			return nil, apperrors.NewParseError(fmt.Errorf("card %d is missing a question or answer", i+1))
		}
		cards[i].ID = i + 1
	}

	log.Info("generated %d cards", len(cards))
	return cards, nil
}

// GenerateSummary produces 2-4 summary blocks from the opening of the text.
// Unlike card generation it never fails: any upstream or parse problem
// degrades to a single placeholder block.
func (g *Generator) GenerateSummary(ctx context.Context, text string) []models.SummaryBlock {
	log := logger.FromContext(ctx).WithPrefix("ai")

	input := truncate(text, maxSummaryInput)
	log.Info("generating summary: input_len=%d", len(input))

	raw, err := g.client.Complete(ctx, summarySystemPrompt, summaryPrompt(input))
	if err != nil {
		log.Warn("summary generation failed, using placeholder: %v", err)
		return placeholderSummary()
	}

	var blocks []models.SummaryBlock
	if err := parseArray(raw, &blocks); err != nil {
		log.Warn("failed to parse summary response, using placeholder: %v", err)
		return placeholderSummary()
	}
	if len(blocks) == 0 {
		return placeholderSummary()
	}

	log.Info("generated %d summary blocks", len(blocks))
	return blocks
}

func placeholderSummary() []models.SummaryBlock {
	return []models.SummaryBlock{{
		Title:   "Material overview",
		Content: "The material was processed and is ready for studying",
		Source:  "Entire document",
	}}
}

// parseArray unmarshals a model response into v, stripping markdown fences
// first and retrying once with escape repair when the raw text does not
// parse.
func parseArray(raw string, v any) error {
	cleaned := stripFences(raw)
	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		repaired := repairJSON(cleaned)
		if err2 := json.Unmarshal([]byte(repaired), v); err2 != nil {
			return err
		}
	}
	return nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
