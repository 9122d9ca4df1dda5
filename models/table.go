package models

import (
	"fmt"
	"strings"

	"bitbucket.org/mmdatafocus/stock_planner/utils"
)

// Table is one sheet read back as text: the header row and the data rows
// below it. Rows may be shorter than the header when trailing cells are empty.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

func (t *Table) ColumnIndex(column string) (int, error) {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == column {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q in sheet %q", utils.ErrColumnNotFound, column, t.Name)
}

// Cell returns the trimmed value at column idx, or "" past the end of the row.
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func IsBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// SheetData is a sheet to be written. Rows listed in Highlight (0-based data
// row indexes) get the highlight fill.
type SheetData struct {
	Name      string
	Header    []string
	Rows      [][]any
	Highlight map[int]bool
}
