// Package reader loads pages of positioned words and rule lines.
//
// Two sources are supported. PDF files are decoded with
// github.com/ledongthuc/pdf: glyphs are assembled into words by the text
// package and thin rectangles become rule lines.
//
//	r, err := reader.Open("report.pdf", reader.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	doc, errs := r.Document("report.pdf")
//
// Page dumps in YAML or JSON carry words and lines that some other tool has
// already extracted:
//
//	- number: 1
//	  width: 612
//	  height: 792
//	  words:
//	    - {x0: 72, x1: 96, y0: 700, y1: 710, text: FY18, font: Arial_10}
//	  lines:
//	    - {x0: 72, x1: 540, y0: 695, y1: 695}
//
// [ReadDump] decodes such a dump and [WriteDump] writes one. Coordinates are
// in points with y growing up the page.
package reader
