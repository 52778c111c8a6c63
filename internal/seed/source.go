// Package seed loads the static bill and category datasets into an empty
// store, once.
package seed

import (
	"context"
	"strings"

	"billbook/internal/ports"
)

// Table is a dataset as read from its source: a header row followed by data
// rows. Cells are raw strings.
type Table struct {
	Header []string
	Rows   [][]string
}

// Source reads a dataset.
type Source interface {
	Load(ctx context.Context, ds ports.Dataset) (Table, error)
}

// newTable splits raw rows into header and data, dropping rows whose cells
// are all blank.
func newTable(raw [][]string) Table {
	var t Table
	for _, row := range raw {
		if blank(row) {
			continue
		}
		if t.Header == nil {
			t.Header = row
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
