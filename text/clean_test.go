package text

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/gravy/model"
)

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Total   revenue ", "Total revenue"},
		{"Ｆｕｌｌ width", "Full width"},
		{"proﬁt", "profit"},
		{"a\tb\nc", "a b c"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clean(tt.in), "Clean(%q)", tt.in)
	}
}

func TestIsBullet(t *testing.T) {
	assert.True(t, IsBullet("•"))
	assert.True(t, IsBullet(" ● "))
	assert.False(t, IsBullet("Revenue"))
	assert.False(t, IsBullet(""))
}

func TestMatchAny(t *testing.T) {
	patterns := []*regexp.Regexp{regexp.MustCompile(`^FY\d{2}$`), regexp.MustCompile(`^Q[1-4]$`)}
	assert.True(t, MatchAny("FY18", patterns))
	assert.True(t, MatchAny("Q3", patterns))
	assert.False(t, MatchAny("Revenue", patterns))
	assert.False(t, MatchAny("FY18", nil))
}

func TestSplitSpaces(t *testing.T) {
	w := model.NewWord(model.Box{X0: 0, X1: 100, Y0: 0, Y1: 10}, "abc    def", "Arial_10")
	parts := SplitSpaces(w)
	require.Len(t, parts, 2)

	assert.Equal(t, "abc", parts[0].Text)
	assert.InDelta(t, 0, parts[0].X0, 1e-9)
	assert.InDelta(t, 30, parts[0].X1, 1e-9)

	assert.Equal(t, "def", parts[1].Text)
	assert.InDelta(t, 70, parts[1].X0, 1e-9)
	assert.InDelta(t, 100, parts[1].X1, 1e-9)
	assert.Equal(t, w.Y1, parts[1].Y1)
	assert.Equal(t, "Arial_10", parts[1].Font)
}

func TestSplitSpacesKeepsNarrowGaps(t *testing.T) {
	w := model.NewWord(model.Box{X0: 0, X1: 50, Y0: 0, Y1: 10}, "Total revenue", "Arial_10")
	parts := SplitSpaces(w)
	require.Len(t, parts, 1)
	assert.Same(t, w, parts[0])
}
