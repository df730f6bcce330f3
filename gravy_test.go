package gravy

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/gravy/format"
	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/reader"
	"github.com/tsawler/gravy/tables"
)

func word(x0, x1, y float64, text string) *model.Word {
	return model.NewWord(model.Box{X0: x0, X1: x1, Y0: y, Y1: y + 10}, text, "Arial_10")
}

// statementPage holds one titled table of three fiscal years
func statementPage(number int) *model.Page {
	p := model.NewPage(number, 400, 400)
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
	return p
}

func TestOpen(t *testing.T) {
	_, _, err := Open("nonexistent.pdf").Tables()
	assert.Error(t, err)

	_, _, err = Open("").Tables()
	assert.Error(t, err)
}

func TestFromPagesTables(t *testing.T) {
	found, warnings, err := FromPages(statementPage(1)).Tables()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, found, 1)
	assert.Equal(t, "Income statement", found[0].Title)
	assert.Equal(t, "Income statement, 240, 270", found[0].String())
	assert.Equal(t, []string{"Revenue", "1", "2", "3"}, found[0].Matrix().Strings()[1])
}

func TestPageSelection(t *testing.T) {
	ext := FromPages(statementPage(1), statementPage(2), statementPage(3))

	found, _, err := ext.Pages(3, 2, 3).Tables()
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, 2, found[0].Page)
	assert.Equal(t, 3, found[1].Page)

	found, _, err = ext.PageRange(1, 2).Tables()
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestInvalidPage(t *testing.T) {
	_, _, err := FromPages(statementPage(1)).Pages(1000).Tables()
	assert.Error(t, err)

	_, _, err = FromPages(statementPage(1)).Pages(0).Tables()
	assert.Error(t, err)
}

func TestChainImmutability(t *testing.T) {
	base := FromPages(statementPage(1))
	withPages := base.Pages(1)
	withTimeout := withPages.PageTimeout(time.Second)

	assert.Nil(t, base.options.pages)
	assert.Equal(t, []int{1}, withPages.options.pages)
	assert.Zero(t, withPages.options.pageTimeout)
	assert.Equal(t, time.Second, withTimeout.options.pageTimeout)

	s := tables.DefaultSettings()
	s.HeaderPattern = []string{`Q\d`}
	custom := base.Settings(s)
	assert.Equal(t, tables.DefaultSettings().HeaderPattern, base.options.settings.HeaderPattern)
	assert.Equal(t, []string{`Q\d`}, custom.options.settings.HeaderPattern)
}

func TestInvalidConfiguration(t *testing.T) {
	s := tables.DefaultSettings()
	s.HeaderPattern = []string{"("}
	_, _, err := FromPages(statementPage(1)).Settings(s).Tables()
	assert.Error(t, err)

	_, _, err = FromPages(statementPage(1)).Detector("lattice").Tables()
	assert.Error(t, err)

	_, _, err = FromPages(statementPage(1)).SettingsFile("missing.yaml").Tables()
	assert.Error(t, err)
}

func TestSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("header_pattern: ['Q[1-4]']\n"), 0o644))

	found, _, err := FromPages(statementPage(1)).SettingsFile(path).Tables()
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestMalformedElementsBecomeWarnings(t *testing.T) {
	p := statementPage(1)
	p.AddWord(model.NewWord(model.Box{X0: math.NaN(), X1: 10, Y0: 0, Y1: 10}, "bad", "Arial_10"))
	before := len(p.Words)

	found, warnings, err := FromPages(p).Tables()
	require.NoError(t, err)
	assert.Len(t, found, 1)
	require.Len(t, warnings, 1)
	assert.Equal(t, 1, warnings[0].Page)
	assert.Contains(t, warnings[0].Message, model.ErrMalformedElement.Error())
	assert.Len(t, p.Words, before)
}

func TestPageTimeout(t *testing.T) {
	found, warnings, err := FromPages(statementPage(1)).PageTimeout(time.Nanosecond).Tables()
	require.NoError(t, err)
	assert.Empty(t, found)
	require.Len(t, warnings, 1)
	assert.Equal(t, 1, warnings[0].Page)
	assert.Contains(t, warnings[0].Message, "timed out")
}

func TestWorkersKeepPageOrder(t *testing.T) {
	var pages []*model.Page
	for i := 1; i <= 6; i++ {
		pages = append(pages, statementPage(i))
	}

	found, _, err := FromPages(pages...).Workers(3).Tables()
	require.NoError(t, err)
	require.Len(t, found, 6)
	for i, tbl := range found {
		assert.Equal(t, i+1, tbl.Page)
	}
}

func TestConcat(t *testing.T) {
	found, _, err := FromPages(statementPage(1), model.NewPage(2, 400, 400)).Concat().Tables()
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 1, found[0].Page)
	assert.Equal(t, 670.0, found[0].Box.Y1)
}

func TestDumpFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pages.yaml")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, reader.WriteDump(f, format.YAML, []*model.Page{statementPage(1), statementPage(2)}))
	require.NoError(t, f.Close())

	assert.Equal(t, 2, Must(Open(path).PageCount()))

	found := MustTables(Open(path).Pages(2).Tables())
	require.Len(t, found, 1)
	assert.Equal(t, 2, found[0].Page)

	doc, warnings, err := Open(path).Document()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 2, doc.PageCount())
	assert.Equal(t, path, doc.Source)
}

func TestUnsupportedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text\n"), 0o644))

	_, _, err := Open(path).Tables()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unsupported"))
}

func TestExtractTables(t *testing.T) {
	found, err := ExtractTables(statementPage(1), tables.DefaultSettings())
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = ExtractTables(model.NewPage(1, 400, 400), tables.DefaultSettings())
	assert.NoError(t, err)
	assert.Empty(t, found)

	p := statementPage(1)
	p.AddWord(model.NewWord(model.Box{X0: 150, X1: math.Inf(1), Y0: 240, Y1: 250}, "bad", "Arial_10"))
	found, err = ExtractTables(p, tables.DefaultSettings())
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, []string{"Revenue", "1", "2", "3"}, found[0].Matrix().Strings()[1])
}

func TestFormatWarnings(t *testing.T) {
	warnings := []Warning{
		warningFor(1, errors.New("page 1 word 3: malformed element")),
		{Message: "no pages"},
	}
	assert.Equal(t, "page 1 word 3: malformed element\nno pages", FormatWarnings(warnings))
	assert.Empty(t, FormatWarnings(nil))
}

func TestMust(t *testing.T) {
	assert.Equal(t, 3, Must(3, nil))
	assert.Panics(t, func() { Must(0, errors.New("boom")) })
	assert.Panics(t, func() { MustTables(0, nil, errors.New("boom")) })
}

func TestCloseIdempotent(t *testing.T) {
	ext := FromPages(statementPage(1))
	assert.NoError(t, ext.Close())
	assert.NoError(t, ext.Close())
}
