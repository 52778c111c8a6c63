package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"billbook/internal/ports"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// SheetsConfig locates the seed datasets in a Google spreadsheet. Each
// dataset is a whole sheet whose first non-blank row is the header.
type SheetsConfig struct {
	SpreadsheetID   string
	BillsSheet      string
	CategoriesSheet string
	// Service account credentials, inline JSON or a file path.
	CredentialsJSON string
	CredentialsFile string
}

// SheetsSource reads datasets with the Sheets API.
type SheetsSource struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheets        map[ports.Dataset]string
}

var _ Source = (*SheetsSource)(nil)

// NewSheetsSource creates a Sheets-backed source. Without explicit client
// options it authenticates with the configured service account.
func NewSheetsSource(ctx context.Context, cfg SheetsConfig, opts ...goption.ClientOption) (*SheetsSource, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if len(opts) == 0 {
		creds, err := serviceAccountJSON(cfg)
		if err != nil {
			return nil, err
		}
		opts = []goption.ClientOption{
			goption.WithCredentialsJSON(creds),
			goption.WithScopes(gsheet.SpreadsheetsReadonlyScope),
		}
	}

	svc, err := gsheet.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	slog.InfoContext(ctx, "Google Sheets seed source ready", "spreadsheet_id", cfg.SpreadsheetID)

	return &SheetsSource{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		sheets: map[ports.Dataset]string{
			ports.DatasetBills:      cfg.BillsSheet,
			ports.DatasetCategories: cfg.CategoriesSheet,
		},
	}, nil
}

func serviceAccountJSON(cfg SheetsConfig) ([]byte, error) {
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		return []byte(cfg.CredentialsJSON), nil
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		b, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE)")
	}
}

func (s *SheetsSource) Load(ctx context.Context, ds ports.Dataset) (Table, error) {
	sheet, ok := s.sheets[ds]
	if !ok || sheet == "" {
		return Table{}, fmt.Errorf("no sheet configured for dataset %q", ds)
	}
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, sheet).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		return Table{}, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return newTable(toStrings(resp.Values)), nil
}

func toStrings(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = strings.TrimSpace(cellString(v))
		}
		out[i] = cells
	}
	return out
}

// cellString renders a cell. Unformatted numbers arrive as float64, which
// must not turn epoch millis into exponent notation.
func cellString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
