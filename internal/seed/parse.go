package seed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"billbook/internal/core"
)

// columns maps lower-cased header names to their index.
type columns map[string]int

func indexHeader(header []string, required ...string) (columns, error) {
	cols := columns{}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	var missing []string
	for _, r := range required {
		if _, ok := cols[r]; !ok {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing column(s): %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func (c columns) get(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseType decodes the dataset type cell: 0 is expenditure, 1 revenue.
// Enum names are accepted too.
func parseType(s string) (core.BillType, error) {
	switch s {
	case "0":
		return core.Expenditure, nil
	case "1":
		return core.Revenue, nil
	}
	if t, ok := core.ParseBillType(s); ok {
		return t, nil
	}
	return "", fmt.Errorf("invalid type %q", s)
}

// ParseBills converts a bills table (amount, category, time, type) into
// bills with ids from newID. time is epoch milliseconds.
func ParseBills(t Table, newID func() string) ([]core.Bill, error) {
	if t.Header == nil && len(t.Rows) == 0 {
		return nil, nil
	}
	cols, err := indexHeader(t.Header, "amount", "category", "time", "type")
	if err != nil {
		return nil, fmt.Errorf("bills: %w", err)
	}

	bills := make([]core.Bill, 0, len(t.Rows))
	for i, row := range t.Rows {
		line := i + 1
		amount, err := core.ParseAmount(cols.get(row, "amount"))
		if err != nil || !core.AmountInRange(amount) {
			return nil, fmt.Errorf("bills row %d: invalid amount %q", line, cols.get(row, "amount"))
		}
		ms, err := strconv.ParseInt(cols.get(row, "time"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bills row %d: invalid time %q", line, cols.get(row, "time"))
		}
		typ, err := parseType(cols.get(row, "type"))
		if err != nil {
			return nil, fmt.Errorf("bills row %d: %w", line, err)
		}
		b := core.Bill{
			ID:     newID(),
			Amount: amount,
			Type:   typ,
			Time:   time.UnixMilli(ms).UTC(),
		}
		if cat := cols.get(row, "category"); cat != "" {
			b.CategoryID = &cat
		}
		bills = append(bills, b)
	}
	return bills, nil
}

// ParseCategories converts a categories table (id, name, type).
func ParseCategories(t Table) ([]core.Category, error) {
	if t.Header == nil && len(t.Rows) == 0 {
		return nil, nil
	}
	cols, err := indexHeader(t.Header, "id", "name", "type")
	if err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}

	seen := map[string]struct{}{}
	cats := make([]core.Category, 0, len(t.Rows))
	for i, row := range t.Rows {
		line := i + 1
		id := cols.get(row, "id")
		if id == "" {
			return nil, fmt.Errorf("categories row %d: missing id", line)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("categories row %d: duplicate id %q", line, id)
		}
		seen[id] = struct{}{}
		typ, err := parseType(cols.get(row, "type"))
		if err != nil {
			return nil, fmt.Errorf("categories row %d: %w", line, err)
		}
		cats = append(cats, core.Category{ID: id, Name: cols.get(row, "name"), Type: typ})
	}
	return cats, nil
}
