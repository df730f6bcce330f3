package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/gravy/format"
	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/reader"
)

func word(x0, x1, y float64, text string) *model.Word {
	return model.NewWord(model.Box{X0: x0, X1: x1, Y0: y, Y1: y + 10}, text, "Arial_10")
}

// writeDump writes a one page dump holding a titled three year table
func writeDump(t *testing.T) string {
	t.Helper()
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

	path := filepath.Join(t.TempDir(), "pages.yaml")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, reader.WriteDump(f, format.YAML, []*model.Page{p}))
	require.NoError(t, f.Close())
	return path
}

// run executes the CLI with fresh flag values and returns its output
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	flagPages, flagSettings, flagVerbose = nil, "", false
	flagFormat, flagOutput, flagConcat, flagKeepBanners = "markdown", "", false, false
	flagWorkers, flagPageTimeout = 4, 0
	flagPlotOut, flagPlotScale = "", 2
	flagDumpFormat, flagDumpOut = "yaml", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExtractCommand(t *testing.T) {
	path := writeDump(t)

	out, err := run(t, "extract", path, "--format", "csv")
	require.NoError(t, err)
	assert.Contains(t, out, "Income statement (page 1)")
	assert.Contains(t, out, "Revenue,1,2,3")

	assert.NotContains(t, out, "Cost", "the first full row closes the table")

	dir := t.TempDir()
	settings := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("footer_min_words: 4\n"), 0o644))
	target := filepath.Join(dir, "tables.md")
	_, err = run(t, "extract", path, "--settings", settings, "--output", target)
	require.NoError(t, err)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "| Cost | 4 | 5 | 6 |")
}

func TestExtractCommandErrors(t *testing.T) {
	path := writeDump(t)

	_, err := run(t, "extract", path, "--format", "xlsx")
	assert.Error(t, err)

	_, err = run(t, "extract", path, "--pages", "x")
	assert.Error(t, err)

	_, err = run(t, "extract", path, "--pages", "7")
	assert.Error(t, err)
}

func TestHeadersCommand(t *testing.T) {
	out, err := run(t, "headers", writeDump(t))
	require.NoError(t, err)
	assert.Equal(t, "page 1: Income statement, 240, 270 [FY18 FY19 FY20]\n", out)
}

func TestSegmentCommand(t *testing.T) {
	out, err := run(t, "segment", writeDump(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "page 1 block 1 "))
}

func TestPlotCommand(t *testing.T) {
	path := writeDump(t)
	dir := t.TempDir()

	for _, name := range []string{"plot.pdf", "plot.png"} {
		target := filepath.Join(dir, name)
		_, err := run(t, "plot", path, "--out", target)
		require.NoError(t, err, name)
		info, err := os.Stat(target)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}

	_, err := run(t, "plot", path, "--out", filepath.Join(dir, "plot.svg"))
	assert.Error(t, err)
}

func TestDumpCommand(t *testing.T) {
	path := writeDump(t)

	out, err := run(t, "dump", path, "--format", "json")
	require.NoError(t, err)

	doc, err := reader.ReadDump(strings.NewReader(out), format.JSON, "stdin")
	require.NoError(t, err)
	require.Equal(t, 1, doc.PageCount())
	assert.Len(t, doc.Pages[0].Words, 12)
}
