// Package extract pulls plain text out of uploaded PDFs for the generation
// pipeline.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/reader"

	apperrors "github.com/akozlova/studycards/internal/errors"
	"github.com/akozlova/studycards/internal/logger"
)

// Result is the extracted text of one document, with page markers inline so
// generated cards can cite where their answer came from.
type Result struct {
	Text      string
	PageCount int
}

// PDF extracts every page of the file at path, prefixing each page's text
// with a "--- Page N ---" marker. Pages that yield no text are kept as bare
// markers so page numbering stays aligned with the document.
func PDF(ctx context.Context, path string) (*Result, error) {
	log := logger.FromContext(ctx).WithPrefix("extract")

	r, err := reader.Open(path)
	if err != nil {
		log.Error("failed to open PDF %s: %v", path, err)
		return nil, apperrors.NewValidationError("file", "could not be read as a PDF")
	}
	defer r.Close()

	pageCount, err := tabula.FromReader(r).PageCount()
	if err != nil {
		log.Error("failed to read page count: %v", err)
		return nil, apperrors.NewValidationError("file", "could not be read as a PDF")
	}
	log.Debug("extracting %d pages from %s", pageCount, path)

	var b strings.Builder
	for n := 1; n <= pageCount; n++ {
		pageText, warnings, err := tabula.FromReader(r).Pages(n).Text()
		if err != nil {
			log.Error("failed to extract page %d: %v", n, err)
			return nil, apperrors.NewValidationError("file", fmt.Sprintf("page %d could not be extracted", n))
		}
		if len(warnings) > 0 {
			log.Warn("page %d extraction warnings: %s", n, tabula.FormatWarnings(warnings))
		}

		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "--- Page %d ---\n", n)
		b.WriteString(strings.TrimSpace(pageText))
	}

	return &Result{Text: b.String(), PageCount: pageCount}, nil
}
