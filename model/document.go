package model

// Document is an ordered set of pages from one source
type Document struct {
	Source string
	Pages  []*Page
}

// NewDocument creates a new empty document
func NewDocument(source string) *Document {
	return &Document{
		Source: source,
		Pages:  make([]*Page, 0),
	}
}

// AddPage adds a page to the document, numbering it if unnumbered
func (d *Document) AddPage(page *Page) {
	if page.Number == 0 {
		page.Number = len(d.Pages) + 1
	}
	d.Pages = append(d.Pages, page)
}

// GetPage returns a page by number (1-indexed)
func (d *Document) GetPage(number int) *Page {
	for _, p := range d.Pages {
		if p.Number == number {
			return p
		}
	}
	return nil
}

// PageCount returns the total number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Select returns the pages with the given numbers, in document order. An
// empty selection returns every page.
func (d *Document) Select(numbers ...int) []*Page {
	if len(numbers) == 0 {
		return append([]*Page(nil), d.Pages...)
	}
	want := make(map[int]bool, len(numbers))
	for _, n := range numbers {
		want[n] = true
	}
	var out []*Page
	for _, p := range d.Pages {
		if want[p.Number] {
			out = append(out, p)
		}
	}
	return out
}

// Concat stacks pages into one tall page, first page on top. Each source
// page is cloned and shifted up by the height of the pages below it.
func Concat(pages []*Page) *Page {
	if len(pages) == 0 {
		return nil
	}

	var total, width float64
	for _, p := range pages {
		total += p.Height
		if p.Width > width {
			width = p.Width
		}
	}

	out := NewPage(pages[0].Number, width, total)
	below := total
	for _, p := range pages {
		below -= p.Height
		c := p.Clone()
		c.Translate(0, below)
		out.Words = append(out.Words, c.Words...)
		out.Lines = append(out.Lines, c.Lines...)
	}
	return out
}
