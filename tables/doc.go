// Package tables recovers tables from the words and rule lines of a page.
//
// Tables are found from their header rows. A header is a row in which words
// matching the header pattern, such as fiscal years, sit next to each other.
// Each header is paired with a footer row and a title, which fix the
// table's vertical extent, and the table is then reconstructed as spokes:
//
//   - vertical spokes bind a header label, plus any sub-labels beneath it,
//     to the column of data below it
//   - horizontal spokes bind the row labels left of the data to the data
//     in their row
//
// # Extraction
//
// [Extract] runs the whole pipeline on one page:
//
//	found, err := tables.Extract(ctx, page, tables.DefaultSettings())
//	for _, t := range found {
//		fmt.Println(t)
//		for _, sp := range t.Spokes.Items() {
//			fmt.Println(sp.Title(), sp.Cells())
//		}
//	}
//
// [Locate] and [Table.Reconstruct] expose the two stages separately.
//
// # Settings
//
// Behavior is controlled by [Settings], loaded from YAML with
// [LoadSettings]. Unknown keys are rejected:
//
//	header_pattern: ['(?:20|FY|fy)(\d\d)']
//	word_tolerance_horizontal: 5
//	footer_min_words: 3
//
// # Detectors
//
// Detection is also available through the [Detector] interface. Factories
// are registered globally and each lookup builds a new detector:
//
//	detector := tables.GetDetector("spokes")
//	found, err := detector.Detect(page)
package tables
