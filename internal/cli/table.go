package cli

import (
	"strings"
)

// Table is a simple text table formatter with dynamic column widths.
type Table struct {
	headers   []string
	rows      [][]string
	padding   int
	maxWidths map[int]int // maximum width per column index (0 = no limit)
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers:   headers,
		rows:      make([][]string, 0),
		padding:   2, // 2 spaces between columns
		maxWidths: make(map[int]int),
	}
}

// SetColumnMaxWidth sets a maximum width for a specific column.
// Text longer than this is wrapped over multiple lines.
func (t *Table) SetColumnMaxWidth(colIndex, maxWidth int) {
	t.maxWidths[colIndex] = maxWidth
}

// AddRow adds a row to the table. Missing cells are blank; extra cells
// are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Render formats and returns the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	// Wrap cells that exceed their column's maximum width.
	wrapped := make([][][]string, len(t.rows))
	for rowIdx, row := range t.rows {
		wrapped[rowIdx] = make([][]string, len(row))
		for colIdx, cell := range row {
			if limit, ok := t.maxWidths[colIdx]; ok && limit > 0 {
				wrapped[rowIdx][colIdx] = wrapText(cell, limit)
			} else {
				wrapped[rowIdx][colIdx] = []string{cell}
			}
		}
	}

	widths := t.columnWidths(wrapped)
	sep := strings.Repeat(" ", t.padding)

	var out strings.Builder

	// Header and separator rows.
	cells := make([]string, len(t.headers))
	for i, h := range t.headers {
		cells[i] = padRight(h, widths[i])
	}
	out.WriteString(strings.Join(cells, sep))
	out.WriteString("\n")

	for i, w := range widths {
		cells[i] = strings.Repeat("-", w)
	}
	out.WriteString(strings.Join(cells, sep))
	out.WriteString("\n")

	// Data rows; a row with a wrapped cell spans several lines.
	for _, row := range wrapped {
		lines := 1
		for _, cell := range row {
			if len(cell) > lines {
				lines = len(cell)
			}
		}

		for line := 0; line < lines; line++ {
			for colIdx := range t.headers {
				text := ""
				if colIdx < len(row) && line < len(row[colIdx]) {
					text = row[colIdx][line]
				}
				cells[colIdx] = padRight(text, widths[colIdx])
			}
			out.WriteString(strings.Join(cells, sep))
			out.WriteString("\n")
		}
	}

	return out.String()
}

// columnWidths computes the width of each column from the header and the
// wrapped cell lines, capped at the column's maximum where one is set.
func (t *Table) columnWidths(wrapped [][][]string) []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}

	for _, row := range wrapped {
		for i, cell := range row {
			if i >= len(widths) {
				continue
			}
			for _, line := range cell {
				if len(line) <= widths[i] {
					continue
				}
				if limit, ok := t.maxWidths[i]; ok && limit > 0 {
					if limit > widths[i] {
						widths[i] = limit
					}
				} else {
					widths[i] = len(line)
				}
			}
		}
	}
	return widths
}

// padRight pads a string with spaces on the right to reach the desired
// width. Longer strings are returned unchanged.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// wrapText wraps text to fit within the given width, breaking at word
// boundaries. Words longer than the width are split.
func wrapText(text string, width int) []string {
	if width <= 0 || len(text) <= width {
		return []string{text}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range words {
		if len(word) > width {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			for len(word) > width {
				lines = append(lines, word[:width])
				word = word[width:]
			}
			current = word
			continue
		}

		test := current
		if test != "" {
			test += " "
		}
		test += word

		if len(test) <= width {
			current = test
		} else {
			if current != "" {
				lines = append(lines, current)
			}
			current = word
		}
	}

	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
