package render

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/tables"
)

func word(x0, x1, y float64, text string) *model.Word {
	return model.NewWord(model.Box{X0: x0, X1: x1, Y0: y, Y1: y + 10}, text, "Arial_10")
}

// yearPage holds one table of three fiscal years over two labelled rows
func yearPage() *model.Page {
	p := model.NewPage(1, 400, 400)
	p.AddWord(word(20, 120, 300, "Income statement"))
	for i, year := range []string{"FY18", "FY19", "FY20"} {
		x := 140 + float64(i)*50
		p.AddWord(word(x, x+20, 260, year))
	}
	for r, label := range []string{"Revenue", "Cost"} {
		y := 240 - float64(r)*20
		p.AddWord(word(20, 80, y, label))
		for c := 0; c < 3; c++ {
			x := 142 + float64(c)*50
			p.AddWord(word(x, x+16, y, string(rune('1'+r*3+c))))
		}
	}
	p.AddLine(model.NewLine(model.Box{X0: 10, X1: 390, Y0: 350, Y1: 350}))
	return p
}

func extract(t *testing.T) (*model.Page, []*tables.Table) {
	t.Helper()
	p := yearPage()
	s := tables.DefaultSettings()
	s.FooterMinWords = 4 // both rows belong to the table
	found, err := tables.Extract(context.Background(), p, s)
	require.NoError(t, err)
	require.Len(t, found, 1)
	return p, found
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name string
		ext  string
	}{
		{"json", ".json"},
		{"YAML", ".yaml"},
		{"yml", ".yaml"},
		{"csv", ".csv"},
		{"md", ".md"},
		{" markdown ", ".md"},
		{"html", ".html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Select(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.ext, r.Extension())
		})
	}

	_, err := Select("xlsx")
	assert.Error(t, err)
	assert.Equal(t, []string{"csv", "html", "json", "markdown", "yaml"}, Formats())
}

func TestJSONRenderer(t *testing.T) {
	_, found := extract(t)
	out, err := NewJSONRenderer().Render(found)
	require.NoError(t, err)

	var docs []tableDoc
	require.NoError(t, json.Unmarshal(out, &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, 1, docs[0].Page)
	assert.Equal(t, "Income statement", docs[0].Title)
	require.Len(t, docs[0].Spokes, 5)
	assert.Equal(t, "vertical", docs[0].Spokes[0].Orientation)
	assert.Equal(t, []string{"FY18"}, docs[0].Spokes[0].Labels)
	assert.Equal(t, []string{"1", "4"}, docs[0].Spokes[0].Cells)
	assert.Equal(t, "horizontal", docs[0].Spokes[4].Orientation)
	assert.Equal(t, []string{"Cost"}, docs[0].Spokes[4].Labels)
	assert.Equal(t, []string{"Revenue", "1", "2", "3"}, docs[0].Rows[1])
}

func TestYAMLRenderer(t *testing.T) {
	_, found := extract(t)
	out, err := NewYAMLRenderer().Render(found)
	require.NoError(t, err)

	var docs []tableDoc
	require.NoError(t, yaml.Unmarshal(out, &docs))
	require.Len(t, docs, 1)
	assert.Equal(t, "Income statement", docs[0].Title)
	assert.Equal(t, []string{"Cost", "4", "5", "6"}, docs[0].Rows[2])
}

func TestCSVRenderer(t *testing.T) {
	_, found := extract(t)
	out, err := NewCSVRenderer().Render(append(found, found...))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	require.Len(t, lines, 9)
	assert.Equal(t, "Income statement (page 1)", lines[0])
	assert.Equal(t, ",FY18,FY19,FY20", lines[1])
	assert.Equal(t, "Revenue,1,2,3", lines[2])
	assert.Empty(t, strings.Trim(lines[4], `"`))
	assert.Equal(t, "Income statement (page 1)", lines[5])
}

func TestMarkdownRenderer(t *testing.T) {
	_, found := extract(t)
	out, err := NewMarkdownRenderer().Render(found)
	require.NoError(t, err)

	md := string(out)
	assert.True(t, strings.HasPrefix(md, "## Income statement (page 1)\n\n"))
	assert.Contains(t, md, "|  | FY18 | FY19 | FY20 |")
	assert.Contains(t, md, "| Revenue | 1 | 2 | 3 |")
}

func TestHTMLRenderer(t *testing.T) {
	_, found := extract(t)
	out, err := NewHTMLRenderer().Render(found)
	require.NoError(t, err)

	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.Contains(t, doc, `<table data-page="1"><caption>Income statement</caption>`)
	assert.Contains(t, doc, "<th>FY19</th>")
	assert.Contains(t, doc, "<th>Revenue</th><td>1</td>")
}

func TestEmptyRender(t *testing.T) {
	for _, name := range Formats() {
		r, err := Select(name)
		require.NoError(t, err)
		_, err = r.Render(nil)
		assert.NoError(t, err, name)
	}
}

func TestPlotPDF(t *testing.T) {
	p, found := extract(t)
	var buf bytes.Buffer
	require.NoError(t, PlotPDF(&buf, p, found))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
}

func TestPlotPNG(t *testing.T) {
	p, found := extract(t)
	var buf bytes.Buffer
	require.NoError(t, PlotPNG(&buf, p, found, 2))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 800, img.Bounds().Dy())
}

func TestShapes(t *testing.T) {
	p, found := extract(t)
	got := shapes(p, found)
	// words, the rule, the table box and its spokes
	assert.Len(t, got, len(p.Words)+1+1+5)
	assert.True(t, got[len(p.Words)].line)
}
