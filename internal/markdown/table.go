package markdown

import (
	"strings"
)

// Table is a run of consecutive pipe-delimited lines
type Table struct {
	// Rows holds the trimmed cells of every line, separator rows included
	Rows [][]string
	// Lines holds the source lines with blockquote markers removed
	Lines []string
}

// Tables finds every pipe table in s. Lines may be blockquoted. A table is
// at least minRows lines long.
func Tables(s string, minRows int) []Table {
	var (
		tables  []Table
		current Table
	)
	flush := func() {
		if len(current.Lines) >= minRows {
			tables = append(tables, current)
		}
		current = Table{}
	}

	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(StripBlockquote(line))
		if strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|") && len(trimmed) > 1 {
			current.Lines = append(current.Lines, trimmed)
			current.Rows = append(current.Rows, SplitRow(trimmed))
			continue
		}
		flush()
	}
	flush()

	return tables
}

// SplitRow splits a pipe-table line into trimmed cells
func SplitRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	parts := strings.Split(line, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// IsSeparator reports whether a row is the dashes row under a table header
func IsSeparator(row []string) bool {
	if len(row) == 0 {
		return false
	}
	for _, cell := range row {
		if cell == "" || strings.Trim(cell, "-: ") != "" {
			return false
		}
	}
	return true
}

// DataRows returns the rows of t without separator rows
func (t Table) DataRows() [][]string {
	var rows [][]string
	for _, r := range t.Rows {
		if !IsSeparator(r) {
			rows = append(rows, r)
		}
	}
	return rows
}
