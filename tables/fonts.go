package tables

import (
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/gravy/model"
)

const (
	// topShare is the fraction of the page height above which a font
	// counts as living at the top of the page
	topShare = 0.63

	// bannerSize is the smallest size of a banner font
	bannerSize = 16
)

// FontInfo summarises how one font tag is used across a document
type FontInfo struct {
	Tag     string
	Size    float64
	Count   int
	Bold    bool
	Italic  bool
	TopOnly bool // every use sits in the top part of its page
	Banner  bool // large, top only and used on the first page only

	pages map[int]bool
}

// Fonts maps font tags to their usage
type Fonts map[string]*FontInfo

// ClassifyFonts gathers font usage over all pages. It is computed once per
// document, before pages are processed in parallel, and read only after.
func ClassifyFonts(pages []*model.Page) Fonts {
	fonts := make(Fonts)
	for _, p := range pages {
		for _, w := range p.Words {
			f, ok := fonts[w.Font]
			if !ok {
				f = newFontInfo(w.Font)
				fonts[w.Font] = f
			}
			f.Count++
			f.pages[p.Number] = true
			if w.Y0 <= p.Height*topShare {
				f.TopOnly = false
			}
		}
	}

	first := 0
	if len(pages) > 0 {
		first = pages[0].Number
	}
	for _, f := range fonts {
		f.Banner = f.TopOnly && f.Size >= bannerSize && len(f.pages) == 1 && f.pages[first]
	}
	return fonts
}

func newFontInfo(tag string) *FontInfo {
	name := strings.TrimPrefix(tag, "CAPS")
	f := &FontInfo{Tag: tag, TopOnly: true, pages: make(map[int]bool)}
	if i := strings.LastIndex(name, "_"); i >= 0 {
		if size, err := strconv.ParseFloat(name[i+1:], 64); err == nil {
			f.Size = size
		}
		name = name[:i]
	}
	lower := strings.ToLower(name)
	f.Bold = strings.Contains(lower, "bold") || strings.Contains(lower, "black")
	f.Italic = strings.Contains(lower, "italic") || strings.Contains(lower, "oblique")
	return f
}

// IsBanner reports whether a word is set in a banner font
func (f Fonts) IsBanner(w *model.Word) bool {
	info, ok := f[w.Font]
	return ok && info.Banner
}

// Tags returns the font tags, most used first
func (f Fonts) Tags() []string {
	tags := make([]string, 0, len(f))
	for t := range f {
		tags = append(tags, t)
	}
	sort.Slice(tags, func(i, j int) bool {
		if f[tags[i]].Count != f[tags[j]].Count {
			return f[tags[i]].Count > f[tags[j]].Count
		}
		return tags[i] < tags[j]
	})
	return tags
}
