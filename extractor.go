package gravy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/gravy/format"
	"github.com/tsawler/gravy/internal/logging"
	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/reader"
	"github.com/tsawler/gravy/tables"
)

// Extractor provides a fluent interface for recovering tables from PDFs,
// page dumps and in-memory pages. Each configuration method returns a new
// Extractor instance, making it safe for concurrent use and allowing
// method chaining.
type Extractor struct {
	// Source: a file, an open PDF reader or pages already decoded
	filename string
	reader   *reader.Reader
	doc      *model.Document

	// Lifecycle
	ownsReader bool // true if we opened the reader and should close it

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:   e.filename,
		reader:     e.reader,
		doc:        e.doc,
		ownsReader: e.ownsReader,
		options:    e.options.clone(),
		err:        e.err,
	}
}

// ensureSource opens the file if nothing is open yet. PDFs are decoded
// page by page on demand; page dumps are decoded whole.
func (e *Extractor) ensureSource() error {
	if e.reader != nil || e.doc != nil {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	f, err := os.Open(e.filename)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", e.filename, err)
	}
	defer f.Close()

	kind, err := format.Resolve(e.filename, f)
	if err != nil {
		return fmt.Errorf("failed to detect format: %w", err)
	}

	switch {
	case kind == format.PDF:
		r, err := reader.Open(e.filename, e.options.reader)
		if err != nil {
			return fmt.Errorf("failed to open PDF: %w", err)
		}
		e.reader = r
		e.ownsReader = true
	case kind.IsDump():
		doc, err := reader.ReadDump(f, kind, e.filename)
		if err != nil {
			return fmt.Errorf("failed to read page dump: %w", err)
		}
		e.doc = doc
	default:
		return fmt.Errorf("unsupported file format: %s", kind)
	}
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsReader && e.reader != nil {
		err := e.reader.Close()
		e.reader = nil
		e.ownsReader = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to extract from (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	found, _, err := gravy.Open("report.pdf").Pages(1, 3, 5).Tables()
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to extract (1-indexed, inclusive).
//
// Example:
//
//	found, _, err := gravy.Open("report.pdf").PageRange(5, 10).Tables()
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// Settings replaces the table recovery settings. Invalid settings fail the
// terminal operation.
//
// Example:
//
//	s := tables.DefaultSettings()
//	s.HeaderPattern = []string{`Q[1-4]`}
//	found, _, err := gravy.Open("report.pdf").Settings(s).Tables()
func (e *Extractor) Settings(s tables.Settings) *Extractor {
	newExt := e.clone()
	if err := s.Validate(); err != nil && newExt.err == nil {
		newExt.err = fmt.Errorf("invalid settings: %w", err)
	}
	newExt.options.settings = s
	return newExt
}

// SettingsFile loads the table recovery settings from a YAML file.
//
// Example:
//
//	found, _, err := gravy.Open("report.pdf").SettingsFile("settings.yaml").Tables()
func (e *Extractor) SettingsFile(path string) *Extractor {
	s, err := tables.LoadSettings(path)
	if err != nil {
		newExt := e.clone()
		if newExt.err == nil {
			newExt.err = err
		}
		return newExt
	}
	return e.Settings(s)
}

// Detector selects a registered table detector by name. The default is
// "spokes".
func (e *Extractor) Detector(name string) *Extractor {
	newExt := e.clone()
	if tables.GetDetector(name) == nil && newExt.err == nil {
		newExt.err = fmt.Errorf("unknown detector %q", name)
	}
	newExt.options.detector = name
	return newExt
}

// Workers sets how many pages are processed at once. Values below one
// are treated as one.
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	newExt.options.workers = max(n, 1)
	return newExt
}

// PageTimeout bounds the time spent recovering tables on each page. A page
// that runs out of time is skipped with a warning. Zero disables the limit.
func (e *Extractor) PageTimeout(d time.Duration) *Extractor {
	newExt := e.clone()
	newExt.options.pageTimeout = d
	return newExt
}

// Concat stacks the selected pages into one tall page before recovery, so
// a table broken across a page boundary is seen whole.
func (e *Extractor) Concat() *Extractor {
	newExt := e.clone()
	newExt.options.concat = true
	return newExt
}

// KeepBanners keeps words set in banner fonts. By default, words in large
// fonts found only at the top of the first page are ignored.
func (e *Extractor) KeepBanners() *Extractor {
	newExt := e.clone()
	newExt.options.skipBanners = false
	return newExt
}

// ReaderOptions sets how PDF glyphs are assembled into words and lines.
func (e *Extractor) ReaderOptions(opts reader.Options) *Extractor {
	newExt := e.clone()
	newExt.options.reader = opts
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages in the source.
// Note: This does NOT close the reader, allowing further operations.
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureSource(); err != nil {
		return 0, err
	}
	if e.reader != nil {
		return e.reader.PageCount(), nil
	}
	return e.doc.PageCount(), nil
}

// Document reads the selected pages. Elements with invalid boxes are
// dropped and reported as warnings, as are PDF pages that cannot be
// decoded. This is a terminal operation that closes the underlying reader.
//
// Example:
//
//	doc, warnings, err := gravy.Open("report.pdf").Pages(2).Document()
func (e *Extractor) Document() (*model.Document, []Warning, error) {
	defer e.Close()

	pages, warnings, err := e.collectPages()
	if err != nil {
		return nil, warnings, err
	}
	doc := model.NewDocument(e.filename)
	for _, p := range pages {
		doc.AddPage(p)
	}
	return doc, warnings, nil
}

// Tables recovers the tables on the selected pages, in page order. Pages
// are processed concurrently, sharing the font classification of the whole
// selection. This is a terminal operation that closes the underlying reader.
//
// Example:
//
//	found, warnings, err := gravy.Open("report.pdf").Workers(4).Tables()
//	for _, t := range found {
//	    fmt.Println(t.Matrix().ToMarkdown())
//	}
func (e *Extractor) Tables() ([]*tables.Table, []Warning, error) {
	defer e.Close()

	pages, warnings, err := e.collectPages()
	if err != nil {
		return nil, warnings, err
	}

	var fonts tables.Fonts
	if e.options.skipBanners {
		fonts = tables.ClassifyFonts(pages)
	}

	results := make([][]*tables.Table, len(pages))
	dropped := make([]*Warning, len(pages))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(e.options.workers, 1))
	for i, p := range pages {
		i, p := i, p
		g.Go(func() error {
			found, warn, err := e.detect(ctx, p, fonts)
			if err != nil {
				return err
			}
			results[i], dropped[i] = found, warn
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, warnings, err
	}

	var out []*tables.Table
	for i := range pages {
		if dropped[i] != nil {
			warnings = append(warnings, *dropped[i])
		}
		out = append(out, results[i]...)
	}
	return out, warnings, nil
}

// detect recovers the tables on one page within the page budget. A page
// that times out or panics is dropped with a warning.
func (e *Extractor) detect(ctx context.Context, p *model.Page, fonts tables.Fonts) (found []*tables.Table, warn *Warning, err error) {
	if e.options.pageTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.options.pageTimeout)
		defer cancel()
	}

	log := logging.For("gravy").WithField("page", p.Number)
	defer func() {
		if rec := recover(); rec != nil {
			log.WithField("panic", rec).Warn("page skipped")
			found, err = nil, nil
			warn = &Warning{Page: p.Number, Message: fmt.Sprintf("page %d: table recovery failed: %v", p.Number, rec)}
		}
	}()

	det := tables.GetDetector(e.options.detector)
	if det == nil {
		return nil, nil, fmt.Errorf("unknown detector %q", e.options.detector)
	}
	if err := det.Configure(e.options.settings); err != nil {
		return nil, nil, fmt.Errorf("invalid settings: %w", err)
	}

	start := time.Now()
	if sd, ok := det.(*tables.SpokeDetector); ok {
		found, err = sd.WithFonts(fonts).DetectContext(ctx, p)
	} else {
		found, err = det.Detect(p)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		log.WithField("timeout", e.options.pageTimeout).Warn("page skipped")
		return nil, &Warning{
			Page:    p.Number,
			Message: fmt.Sprintf("page %d: timed out after %s, page skipped", p.Number, e.options.pageTimeout),
		}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	log.WithField("tables", len(found)).WithField("elapsed", time.Since(start)).Debug("page done")
	return found, nil, nil
}

// collectPages reads the selected pages and drops malformed elements.
func (e *Extractor) collectPages() ([]*model.Page, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureSource(); err != nil {
		return nil, nil, err
	}

	numbers, err := e.resolvePages()
	if err != nil {
		return nil, nil, err
	}

	var pages []*model.Page
	var warnings []Warning
	if e.reader != nil {
		for _, n := range numbers {
			p, err := e.reader.Page(n)
			if err != nil {
				warnings = append(warnings, warningFor(n, err))
				continue
			}
			pages = append(pages, p)
		}
	} else {
		for _, p := range e.doc.Select(numbers...) {
			pages = append(pages, shallowCopy(p))
		}
	}

	for _, p := range pages {
		for _, err := range p.Sanitize() {
			warnings = append(warnings, warningFor(p.Number, err))
		}
	}

	if e.options.concat && len(pages) > 1 {
		pages = []*model.Page{model.Concat(pages)}
	}
	return pages, warnings, nil
}

// resolvePages validates the page selection against the source and returns
// it sorted without duplicates. No selection means every page.
func (e *Extractor) resolvePages() ([]int, error) {
	var available []int
	if e.reader != nil {
		for i := 1; i <= e.reader.PageCount(); i++ {
			available = append(available, i)
		}
	} else {
		for _, p := range e.doc.Pages {
			available = append(available, p.Number)
		}
	}

	if len(e.options.pages) == 0 {
		return available, nil
	}

	exists := make(map[int]bool, len(available))
	for _, n := range available {
		exists[n] = true
	}

	seen := make(map[int]bool)
	var numbers []int
	for _, n := range e.options.pages {
		if !exists[n] {
			return nil, fmt.Errorf("page %d out of range (%d pages)", n, len(available))
		}
		if !seen[n] {
			seen[n] = true
			numbers = append(numbers, n)
		}
	}
	sort.Ints(numbers)
	return numbers, nil
}

// shallowCopy copies a page's element slices so dropping elements leaves
// the caller's page intact.
func shallowCopy(p *model.Page) *model.Page {
	c := *p
	c.Words = append([]*model.Word(nil), p.Words...)
	c.Lines = append([]*model.Line(nil), p.Lines...)
	return &c
}
