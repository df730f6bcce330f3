package tables

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/gravy/grid"
)

// Settings controls table extraction. The zero value is not useful; start
// from DefaultSettings.
type Settings struct {
	// Regular expressions identifying header labels, e.g. fiscal years
	HeaderPattern []string `yaml:"header_pattern"`

	// Rule line merging: lines within SnapTolerance are snapped to one
	// position, collinear segments closer than JoinTolerance are joined and
	// lines shorter than EdgeMinLength are dropped.
	SnapTolerance float64 `yaml:"snap_tolerance"`
	JoinTolerance float64 `yaml:"join_tolerance"`
	EdgeMinLength float64 `yaml:"edge_min_length"`

	// Alignment tolerances for rows and columns of words
	WordToleranceVertical   float64 `yaml:"word_tolerance_vertical"`
	WordToleranceHorizontal float64 `yaml:"word_tolerance_horizontal"`

	// Overlap slack when matching labels to data; the x and y values fall
	// back to IntersectionTolerance when unset.
	IntersectionTolerance  float64  `yaml:"intersection_tolerance"`
	IntersectionXTolerance *float64 `yaml:"intersection_x_tolerance"`
	IntersectionYTolerance *float64 `yaml:"intersection_y_tolerance"`

	// Trim and normalise word text before matching
	RemoveWhitespace bool `yaml:"remove_whitespace"`

	// A row is a header when its consecutive pattern hits exceed this
	IncidenceThreshold int `yaml:"incidence_threshold"`

	// A row closes a table when it has more words than this
	FooterMinWords int `yaml:"footer_min_words"`

	// Columns shorter than MinWordsVerticalRatio of the longest column in a
	// strip are noise once the longest has MinWordsVertical words.
	MinWordsVertical      int     `yaml:"min_words_vertical"`
	MinWordsVerticalRatio float64 `yaml:"min_words_vertical_ratio"`

	// Horizontal spokes need at least this many data words
	MinWordsHorizontal int `yaml:"min_words_horizontal"`

	// Share of rows that must sit on rule lines to slot rows between them
	RuleLineCoverage float64 `yaml:"rule_line_coverage"`

	// Gaps used when segmenting a page into blocks
	SegmentYGap float64 `yaml:"segment_y_gap"`
	SegmentXGap float64 `yaml:"segment_x_gap"`
}

// DefaultSettings returns the default extraction settings
func DefaultSettings() Settings {
	return Settings{
		HeaderPattern:           []string{`(?:20|FY|fy)(\d\d)`},
		SnapTolerance:           3,
		JoinTolerance:           3,
		EdgeMinLength:           3,
		WordToleranceVertical:   5,
		WordToleranceHorizontal: 5,
		IntersectionTolerance:   3,
		RemoveWhitespace:        true,
		IncidenceThreshold:      2,
		FooterMinWords:          3,
		MinWordsVertical:        3,
		MinWordsVerticalRatio:   0.5,
		MinWordsHorizontal:      1,
		RuleLineCoverage:        0.8,
		SegmentYGap:             10,
		SegmentXGap:             10,
	}
}

// LoadSettings reads YAML settings from a file on top of the defaults
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	return ParseSettings(bytes.NewReader(data))
}

// ParseSettings decodes YAML settings on top of the defaults. Unknown keys
// are rejected.
func ParseSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks tolerances and compiles the header patterns
func (s Settings) Validate() error {
	if len(s.HeaderPattern) == 0 {
		return errors.New("header_pattern must not be empty")
	}
	if _, err := s.Patterns(); err != nil {
		return err
	}
	if s.WordToleranceHorizontal < 0 || s.WordToleranceVertical < 0 {
		return errors.New("word tolerances must not be negative")
	}
	if s.MinWordsVerticalRatio < 0 || s.MinWordsVerticalRatio > 1 {
		return fmt.Errorf("min_words_vertical_ratio %v out of range [0, 1]", s.MinWordsVerticalRatio)
	}
	if s.RuleLineCoverage < 0 || s.RuleLineCoverage > 1 {
		return fmt.Errorf("rule_line_coverage %v out of range [0, 1]", s.RuleLineCoverage)
	}
	return nil
}

// Patterns compiles the header patterns
func (s Settings) Patterns() ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(s.HeaderPattern))
	for _, p := range s.HeaderPattern {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid header pattern %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

// XTolerance returns the horizontal intersection tolerance
func (s Settings) XTolerance() float64 {
	if s.IntersectionXTolerance != nil {
		return *s.IntersectionXTolerance
	}
	return s.IntersectionTolerance
}

// YTolerance returns the vertical intersection tolerance
func (s Settings) YTolerance() float64 {
	if s.IntersectionYTolerance != nil {
		return *s.IntersectionYTolerance
	}
	return s.IntersectionTolerance
}

// GridOptions returns the grid tolerances implied by the settings
func (s Settings) GridOptions() grid.Options {
	return grid.Options{
		WordToleranceHorizontal: s.WordToleranceHorizontal,
		WordToleranceVertical:   s.WordToleranceVertical,
		RuleLineCoverage:        s.RuleLineCoverage,
	}
}
