package reader

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/tsawler/gravy/internal/logging"
	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/text"
)

// US Letter, used when a page has no usable MediaBox
const (
	letterWidth  = 612
	letterHeight = 792
)

// maxInheritDepth bounds the walk up the page tree for inherited keys
const maxInheritDepth = 32

// Options controls how PDF content becomes words and lines
type Options struct {
	Words text.Options

	// Rectangles thinner than this are rule lines; thicker ones are
	// dropped as filled shapes.
	EdgeMinLength float64
}

// DefaultOptions returns the default reading options
func DefaultOptions() Options {
	return Options{
		Words:         text.DefaultOptions(),
		EdgeMinLength: 3,
	}
}

// Reader represents an open PDF file
type Reader struct {
	file *os.File
	pdf  *pdf.Reader
	opts Options
}

// Open opens a PDF file for reading
func Open(filename string, opts Options) (*Reader, error) {
	file, r, err := pdf.Open(filename)
	if err != nil {
		if file != nil {
			file.Close()
		}
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return &Reader{file: file, pdf: r, opts: opts}, nil
}

// Close closes the underlying file
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// PageCount returns the number of pages
func (r *Reader) PageCount() int {
	return r.pdf.NumPage()
}

// Page reads one page (1-indexed) into words and rule lines. A page whose
// content stream cannot be decoded returns an error instead of panicking.
func (r *Reader) Page(number int) (page *model.Page, err error) {
	if number < 1 || number > r.pdf.NumPage() {
		return nil, fmt.Errorf("page %d out of range [1, %d]", number, r.pdf.NumPage())
	}
	p := r.pdf.Page(number)
	if p.V.IsNull() {
		return nil, fmt.Errorf("page %d: missing page object", number)
	}

	defer func() {
		if rec := recover(); rec != nil {
			page = nil
			err = fmt.Errorf("page %d: malformed content: %v", number, rec)
		}
	}()

	width, height := mediaBox(p.V)
	content := p.Content()

	glyphs := make([]model.Glyph, 0, len(content.Text))
	for _, t := range content.Text {
		glyphs = append(glyphs, glyphOf(t))
	}
	rects := make([]model.Box, 0, len(content.Rect))
	for _, rc := range content.Rect {
		rects = append(rects, model.NewBox(rc.Min.X, rc.Max.X, rc.Min.Y, rc.Max.Y))
	}

	page = model.NewPage(number, width, height)
	page.Words = text.Words(glyphs, r.opts.Words)
	page.Lines = model.NormalizeLines(rects, r.opts.EdgeMinLength)

	logging.For("reader").WithField("page", number).
		WithField("glyphs", len(glyphs)).
		WithField("words", len(page.Words)).
		WithField("lines", len(page.Lines)).
		Debug("page read")
	return page, nil
}

// Document reads the given pages, or every page when none are given. Pages
// that fail to read are skipped and reported in the returned errors.
func (r *Reader) Document(source string, numbers ...int) (*model.Document, []error) {
	if len(numbers) == 0 {
		for i := 1; i <= r.pdf.NumPage(); i++ {
			numbers = append(numbers, i)
		}
	}

	doc := model.NewDocument(source)
	var errs []error
	for _, n := range numbers {
		page, err := r.Page(n)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		doc.AddPage(page)
	}
	return doc, errs
}

// glyphOf converts a positioned PDF glyph; its box runs from the baseline
// up by the font size.
func glyphOf(t pdf.Text) model.Glyph {
	return model.Glyph{
		Box:  model.NewBox(t.X, t.X+t.W, t.Y, t.Y+t.FontSize),
		Char: t.S,
		Font: t.Font,
		Size: t.FontSize,
	}
}

// mediaBox returns the page size, following inheritance up the page tree
func mediaBox(v pdf.Value) (width, height float64) {
	for i := 0; i < maxInheritDepth && !v.IsNull(); i++ {
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() >= 4 {
			w := box.Index(2).Float64() - box.Index(0).Float64()
			h := box.Index(3).Float64() - box.Index(1).Float64()
			if w > 0 && h > 0 {
				return w, h
			}
		}
		v = v.Key("Parent")
	}
	return letterWidth, letterHeight
}
