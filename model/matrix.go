package model

import (
	"fmt"
	"strings"
)

// Matrix is a table flattened into rows of cells. Row 0 holds the column
// titles; column 0 holds the row titles.
type Matrix struct {
	Rows  [][]Cell
	Title string
}

// Cell represents a matrix cell
type Cell struct {
	Text     string
	Box      Box
	IsHeader bool
}

// NewMatrix creates a new matrix with given dimensions
func NewMatrix(rows, cols int) *Matrix {
	m := &Matrix{
		Rows: make([][]Cell, rows),
	}
	for i := 0; i < rows; i++ {
		m.Rows[i] = make([]Cell, cols)
	}
	return m
}

// RowCount returns the number of rows
func (m *Matrix) RowCount() int {
	return len(m.Rows)
}

// ColCount returns the number of columns in the first row
func (m *Matrix) ColCount() int {
	if len(m.Rows) == 0 {
		return 0
	}
	return len(m.Rows[0])
}

// GetCell returns the cell at the given row and column (0-indexed)
func (m *Matrix) GetCell(row, col int) *Cell {
	if row < 0 || row >= len(m.Rows) {
		return nil
	}
	if col < 0 || col >= len(m.Rows[row]) {
		return nil
	}
	return &m.Rows[row][col]
}

// SetCell sets the cell at the given position
func (m *Matrix) SetCell(row, col int, cell Cell) error {
	if row < 0 || row >= len(m.Rows) {
		return fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= len(m.Rows[row]) {
		return fmt.Errorf("col index %d out of bounds", col)
	}
	m.Rows[row][col] = cell
	return nil
}

// Strings returns the cell texts row by row
func (m *Matrix) Strings() [][]string {
	out := make([][]string, len(m.Rows))
	for i, row := range m.Rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = cell.Text
		}
	}
	return out
}

// ToMarkdown converts the matrix to markdown format
func (m *Matrix) ToMarkdown() string {
	if len(m.Rows) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(row []Cell) {
		for j, cell := range row {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(cell.Text, "|", "\\|"))
			sb.WriteString(" ")
			if j == len(row)-1 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
	}

	writeRow(m.Rows[0])
	for j := range m.Rows[0] {
		sb.WriteString("|---")
		if j == len(m.Rows[0])-1 {
			sb.WriteString("|")
		}
	}
	sb.WriteString("\n")

	for i := 1; i < len(m.Rows); i++ {
		writeRow(m.Rows[i])
	}

	return sb.String()
}
