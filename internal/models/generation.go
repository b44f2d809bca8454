package models

// Mode selects what the card generation pipeline produces.
type Mode string

const (
	// ModeDirect produces cards only.
	ModeDirect Mode = "direct"
	// ModeSummary produces cards plus a topic overview.
	ModeSummary Mode = "summary"
)

// ParseMode maps a request string onto a Mode. Anything other than an
// explicit "direct" means summary.
func ParseMode(s string) Mode {
	if s == string(ModeDirect) {
		return ModeDirect
	}
	return ModeSummary
}

// GeneratedCard is a flashcard as produced by the AI pipeline, before
// persistence. ID is a 1-based sequence position and is replaced by the
// database key once the card is stored.
type GeneratedCard struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Source   string `json:"source"`
}

// SummaryBlock is one topic of the optional material overview.
type SummaryBlock struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

// GenerationResult is the validated outcome of one generation request.
// Summary is nil unless summary mode was requested; when requested it always
// holds at least one block, real or placeholder.
type GenerationResult struct {
	Cards   []GeneratedCard `json:"cards"`
	Summary []SummaryBlock  `json:"summary,omitempty"`
}
