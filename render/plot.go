package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/gravy/model"
	"github.com/tsawler/gravy/tables"
)

// Plot colours: words grey, rule lines black, table boxes green, vertical
// spokes blue and horizontal spokes red.
var (
	wordColor       = color.RGBA{R: 160, G: 160, B: 160, A: 255}
	lineColor       = color.RGBA{A: 255}
	tableColor      = color.RGBA{G: 160, A: 255}
	verticalColor   = color.RGBA{B: 220, A: 255}
	horizontalColor = color.RGBA{R: 220, A: 255}
)

// shape is one box of a plot with its colour and optional label
type shape struct {
	box   model.Box
	color color.RGBA
	label string
	line  bool
}

// shapes lists what a plot draws, back to front
func shapes(page *model.Page, found []*tables.Table) []shape {
	var out []shape
	for _, w := range page.Words {
		out = append(out, shape{box: w.Box, color: wordColor, label: w.Text})
	}
	for _, l := range page.Lines {
		out = append(out, shape{box: l.Box, color: lineColor, line: true})
	}
	for _, t := range found {
		out = append(out, shape{box: t.Box, color: tableColor})
		if t.Spokes == nil {
			continue
		}
		for _, s := range t.Spokes.Items() {
			c := horizontalColor
			if s.Orientation == model.Vertical {
				c = verticalColor
			}
			out = append(out, shape{box: s.Bounds(), color: c})
		}
	}
	return out
}

// PlotPDF draws a page's words, rule lines, tables and spokes as a one page
// PDF of the same size.
func PlotPDF(w io.Writer, page *model.Page, found []*tables.Table) error {
	doc := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	doc.SetFont("Helvetica", "", 6)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, s := range shapes(page, found) {
		doc.SetDrawColor(int(s.color.R), int(s.color.G), int(s.color.B))
		x, y := s.box.X0, page.Height-s.box.Y1
		if s.line {
			doc.Line(x, y, s.box.X1, page.Height-s.box.Y0)
			continue
		}
		doc.Rect(x, y, s.box.Width(), s.box.Height(), "D")
		if s.label != "" {
			doc.SetTextColor(int(s.color.R), int(s.color.G), int(s.color.B))
			doc.Text(x, page.Height-s.box.Y0, tr(s.label))
		}
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("writing plot: %w", err)
	}
	return nil
}

// PlotPNG draws the same plot as PlotPDF as a PNG image, scale pixels per
// point.
func PlotPNG(w io.Writer, page *model.Page, found []*tables.Table, scale float64) error {
	if scale <= 0 {
		scale = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, int(page.Width*scale+0.5), int(page.Height*scale+0.5)))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	toPixel := func(x, y float64) (int, int) {
		return int(x * scale), int((page.Height - y) * scale)
	}

	for _, s := range shapes(page, found) {
		x0, y0 := toPixel(s.box.X0, s.box.Y1)
		x1, y1 := toPixel(s.box.X1, s.box.Y0)
		outline(img, image.Rect(x0, y0, x1, y1), s.color)
		if s.label != "" {
			d := font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(s.color),
				Face: basicfont.Face7x13,
				Dot:  fixed.P(x0, y1),
			}
			d.DrawString(s.label)
		}
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("writing plot: %w", err)
	}
	return nil
}

// outline draws the edges of r; a degenerate rectangle draws as a line
func outline(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for x := r.Min.X; x <= r.Max.X; x++ {
		img.SetRGBA(x, r.Min.Y, c)
		img.SetRGBA(x, r.Max.Y, c)
	}
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		img.SetRGBA(r.Min.X, y, c)
		img.SetRGBA(r.Max.X, y, c)
	}
}
