// Package grid provides rectangular views of a page.
//
// A Grid holds the words and rule lines strictly intersecting its
// rectangle and derives word columns, word rows and row segments from
// them. Grids are cheap and short lived: table reconstruction builds one
// per label strip through an Index, an R-tree over the page built once.
package grid
