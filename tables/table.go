package tables

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/gravy/internal/logging"
	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/nest"
)

// NoTitle is used when no title row precedes a header
const NoTitle = "n/a"

// Table is one header-delimited table on a page
type Table struct {
	Page   int
	Title  string
	Header *Header
	Footer *nest.Nest[*model.Word]
	Box    model.Box
	Spokes *Spokes
}

// String returns the summary "{title}, {y0}, {y1}"
func (t *Table) String() string {
	return fmt.Sprintf("%s, %s, %s", t.Title, formatCoord(t.Box.Y0), formatCoord(t.Box.Y1))
}

// Matrix lays the resolved spokes out as a grid of cells
func (t *Table) Matrix() *model.Matrix {
	if t.Spokes == nil {
		return model.NewMatrix(0, 0)
	}
	m := t.Spokes.Matrix()
	m.Title = t.Title
	return m
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Rows clusters words into rows on their top edge, top to bottom
func Rows(words []*model.Word, tol float64) *nest.Nest[*nest.Nest[*model.Word]] {
	sorted := append([]*model.Word(nil), words...)
	model.SortWords(sorted)
	return nest.Cluster(nest.New(sorted...), nest.Y1, tol, false)
}

// FindHeaders returns the rows whose consecutive pattern incidence exceeds
// the threshold, in row order.
func FindHeaders(rows *nest.Nest[*nest.Nest[*model.Word]], patterns []*regexp.Regexp, threshold int) []*Header {
	var headers []*Header
	for i, row := range rows.Items() {
		if score := ScoreIncidence(row, patterns); score > threshold {
			headers = append(headers, newHeader(row, i, score, patterns))
		}
	}
	return headers
}

// Locate finds the tables on a page: each header row is paired with a footer
// row and a title, which fix the table's vertical extent. It returns
// model.ErrNoHeaderFound when no row qualifies as a header.
func Locate(page *model.Page, s Settings) ([]*Table, error) {
	patterns, err := s.Patterns()
	if err != nil {
		return nil, err
	}

	rows := Rows(page.Words, s.WordToleranceVertical)
	headers := FindHeaders(rows, patterns, s.IncidenceThreshold)
	if len(headers) == 0 {
		return nil, fmt.Errorf("page %d: %w", page.Number, model.ErrNoHeaderFound)
	}

	log := logging.For("tables").WithField("page", page.Number)

	tables := make([]*Table, 0, len(headers))
	for k, h := range headers {
		end := rows.Len()
		if k < len(headers)-1 {
			end = headers[k+1].Index
		}

		footer := findFooter(rows, h, end, s.FooterMinWords)
		t := &Table{
			Page:   page.Number,
			Title:  findTitle(rows, h),
			Header: h,
			Footer: footer,
			Box: model.Box{
				X0: 0,
				X1: page.Width,
				Y0: footer.Bounds().Y0,
				Y1: h.Bounds().Y1,
			},
		}
		log.WithField("table", t.String()).Debug("table located")
		tables = append(tables, t)
	}
	return tables, nil
}

// findFooter returns the first row below the header, before end, with more
// than minWords words. Without one the table runs down to the last row
// before end, or ends at the header itself when it is the last row.
func findFooter(rows *nest.Nest[*nest.Nest[*model.Word]], h *Header, end, minWords int) *nest.Nest[*model.Word] {
	for i := h.Index + 1; i < end; i++ {
		if rows.At(i).Len() > minWords {
			return rows.At(i)
		}
	}
	if h.Index+1 < end {
		return rows.At(end - 1)
	}
	return h.Row
}

// findTitle returns the text of the nearest row above the header whose left
// edge is at or left of the header's
func findTitle(rows *nest.Nest[*nest.Nest[*model.Word]], h *Header) string {
	left := h.Bounds().X0
	for i := h.Index - 1; i >= 0; i-- {
		row := rows.At(i)
		if row.Bounds().X0 <= left {
			return rowText(row)
		}
	}
	return NoTitle
}

func rowText(row *nest.Nest[*model.Word]) string {
	var parts []string
	for _, w := range row.SortBy(nest.X0, false).Items() {
		parts = append(parts, w.Text)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
