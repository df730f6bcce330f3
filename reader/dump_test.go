package reader

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/gravy/format"
	"github.com/tsawler/gravy/model"
)

const sampleDump = `
- number: 2
  width: 612
  height: 792
  words:
    - {x0: 10, x1: 50, y0: 700, y1: 710, text: FY18, font: Arial_10}
    - {x0: 60, x1: 50, y0: 700, y1: 710, text: inverted}
    - {x0: 10, y0: 700, y1: 710, text: missing}
  lines:
    - {x0: 0, x1: 612, y0: 690, y1: 690}
`

func TestReadDumpYAML(t *testing.T) {
	doc, err := ReadDump(strings.NewReader(sampleDump), format.YAML, "sample.yaml")
	require.NoError(t, err)
	require.Equal(t, 1, doc.PageCount())

	page := doc.Pages[0]
	assert.Equal(t, 2, page.Number)
	assert.Equal(t, 612.0, page.Width)
	require.Len(t, page.Words, 3)
	assert.Equal(t, model.Box{X0: 10, X1: 50, Y0: 700, Y1: 710}, page.Words[0].Box)
	assert.Equal(t, "Arial_10", page.Words[0].Font)
	require.Len(t, page.Lines, 1)

	errs := page.Sanitize()
	require.Len(t, errs, 2)
	for _, e := range errs {
		assert.True(t, errors.Is(e, model.ErrMalformedElement))
	}
	require.Len(t, page.Words, 1)
	assert.Equal(t, "FY18", page.Words[0].Text)
}

func TestDumpRoundTrip(t *testing.T) {
	page := model.NewPage(1, 400, 300)
	page.AddWord(model.NewWord(model.Box{X0: 1.5, X1: 20, Y0: 0, Y1: 10}, "Revenue", "Arial_10"))
	page.AddLine(model.NewLine(model.Box{X0: 0, X1: 400, Y0: 5, Y1: 5}))

	for _, f := range []format.Format{format.YAML, format.JSON} {
		t.Run(f.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, WriteDump(&buf, f, []*model.Page{page}))

			doc, err := ReadDump(&buf, f, "dump")
			require.NoError(t, err)
			require.Equal(t, 1, doc.PageCount())

			got := doc.Pages[0]
			assert.Equal(t, page.Width, got.Width)
			require.Len(t, got.Words, 1)
			assert.Equal(t, *page.Words[0], *got.Words[0])
			require.Len(t, got.Lines, 1)
			assert.Equal(t, page.Lines[0].Box, got.Lines[0].Box)
			assert.Empty(t, got.Sanitize())
		})
	}
}

func TestReadDumpDefaults(t *testing.T) {
	doc, err := ReadDump(strings.NewReader(`[{"words": []}]`), format.JSON, "x.json")
	require.NoError(t, err)
	require.Equal(t, 1, doc.PageCount())
	assert.Equal(t, 1, doc.Pages[0].Number, "unnumbered pages are numbered in order")
	assert.Equal(t, 612.0, doc.Pages[0].Width)
	assert.Equal(t, 792.0, doc.Pages[0].Height)
}

func TestReadDumpEmptyYAML(t *testing.T) {
	doc, err := ReadDump(strings.NewReader(""), format.YAML, "empty.yaml")
	require.NoError(t, err)
	assert.Equal(t, 0, doc.PageCount())
}

func TestReadDumpErrors(t *testing.T) {
	_, err := ReadDump(strings.NewReader("{not json"), format.JSON, "bad.json")
	assert.Error(t, err)

	_, err = ReadDump(strings.NewReader("- [unclosed"), format.YAML, "bad.yaml")
	assert.Error(t, err)

	_, err = ReadDump(strings.NewReader("%PDF"), format.PDF, "x.pdf")
	assert.Error(t, err)

	assert.Error(t, WriteDump(&bytes.Buffer{}, format.Unknown, nil))
}
