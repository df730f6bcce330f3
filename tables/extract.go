package tables

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/gravy/grid"
	"github.com/tsawler/gravy/internal/logging"
	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/text"
)

// Prepare returns a copy of the page ready for table recovery. Words and
// lines with invalid boxes are dropped first and logged. With
// RemoveWhitespace set, words are split at wide runs of blanks and their
// text cleaned. Empty words and lone bullets are dropped and rule lines
// merged.
func Prepare(page *model.Page, s Settings) *model.Page {
	p := page.Clone()
	if errs := p.Sanitize(); len(errs) > 0 {
		log := logging.For("tables").WithField("page", page.Number)
		for _, err := range errs {
			log.WithError(err).Warn("element dropped")
		}
	}

	words := make([]*model.Word, 0, len(p.Words))
	for _, w := range p.Words {
		parts := []*model.Word{w}
		if s.RemoveWhitespace {
			parts = text.SplitSpaces(w)
		}
		for _, part := range parts {
			if s.RemoveWhitespace {
				part.SetText(text.Clean(part.Text))
			}
			if strings.TrimSpace(part.Text) == "" || text.IsBullet(part.Text) {
				continue
			}
			words = append(words, part)
		}
	}
	p.Words = words
	p.Lines = MergeLines(p.Lines, s)
	return p
}

// Extract locates the tables on a page and reconstructs their spokes. A
// page without a header row yields no tables and no error. The context is
// checked between tables.
func Extract(ctx context.Context, page *model.Page, s Settings) ([]*Table, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	p := Prepare(page, s)
	found, err := Locate(p, s)
	if errors.Is(err, model.ErrNoHeaderFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ix := grid.NewIndex(p, s.GridOptions())
	for _, t := range found {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("page %d: %w", page.Number, err)
		}
		t.Reconstruct(ix, s)
	}
	return found, nil
}
