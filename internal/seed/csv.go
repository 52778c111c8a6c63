package seed

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"billbook/internal/ports"
)

// File names looked up under the seed directory.
var csvFiles = map[ports.Dataset]string{
	ports.DatasetBills:      "bill.csv",
	ports.DatasetCategories: "categories.csv",
}

// CSVSource reads datasets from comma-separated files in Dir.
type CSVSource struct {
	Dir string
}

var _ Source = CSVSource{}

func (s CSVSource) Load(_ context.Context, ds ports.Dataset) (Table, error) {
	name, ok := csvFiles[ds]
	if !ok {
		return Table{}, fmt.Errorf("unknown dataset %q", ds)
	}
	path := filepath.Join(s.Dir, name)
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", path, err)
	}
	return newTable(records), nil
}
