package seed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"billbook/internal/core"
	"billbook/internal/ports"

	goption "google.golang.org/api/option"
)

func newFakeSheets(t *testing.T, bodies map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for sheet, body := range bodies {
			if strings.HasSuffix(r.URL.Path, "/values/"+sheet) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
				return
			}
		}
		http.Error(w, `{"error":{"code":404,"message":"not found"}}`, http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSheetsSourceLoad(t *testing.T) {
	srv := newFakeSheets(t, map[string]string{
		"Bills": `{"range":"Bills!A1:D3","majorDimension":"ROWS","values":[
			["amount","category","time","type"],
			[12.5,"food",1700000000000,0],
			[],
			["3000","salary","1700000001000","1"]
		]}`,
		"Categories": `{"range":"Categories!A1:C2","majorDimension":"ROWS","values":[
			["id","name","type"],["food","Food",0]
		]}`,
	})

	src, err := NewSheetsSource(context.Background(), SheetsConfig{
		SpreadsheetID:   "sheet-id",
		BillsSheet:      "Bills",
		CategoriesSheet: "Categories",
	}, goption.WithEndpoint(srv.URL+"/"), goption.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new source: %v", err)
	}

	tbl, err := src.Load(context.Background(), ports.DatasetBills)
	if err != nil {
		t.Fatalf("load bills: %v", err)
	}
	if len(tbl.Rows) != 2 || tbl.Rows[0][2] != "1700000000000" || tbl.Rows[0][0] != "12.5" {
		t.Fatalf("unexpected table %+v", tbl)
	}
	bills, err := ParseBills(tbl, seqIDs())
	if err != nil || len(bills) != 2 || bills[1].Type != core.Revenue {
		t.Fatalf("unexpected bills %+v err=%v", bills, err)
	}

	tbl, err = src.Load(context.Background(), ports.DatasetCategories)
	if err != nil || len(tbl.Rows) != 1 {
		t.Fatalf("load categories: %+v %v", tbl, err)
	}
}

func TestSheetsSourceErrors(t *testing.T) {
	if _, err := NewSheetsSource(context.Background(), SheetsConfig{}); err == nil {
		t.Fatalf("expected error for missing spreadsheet id")
	}
	if _, err := NewSheetsSource(context.Background(), SheetsConfig{SpreadsheetID: "x"}); err == nil ||
		!strings.Contains(err.Error(), "missing service account credentials") {
		t.Fatalf("expected credentials error, got %v", err)
	}

	srv := newFakeSheets(t, nil)
	src, err := NewSheetsSource(context.Background(), SheetsConfig{SpreadsheetID: "x", BillsSheet: "Nope"},
		goption.WithEndpoint(srv.URL+"/"), goption.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	if _, err := src.Load(context.Background(), ports.DatasetBills); err == nil {
		t.Fatalf("expected error from 404")
	}
	if _, err := src.Load(context.Background(), ports.DatasetCategories); err == nil {
		t.Fatalf("expected error for unconfigured sheet")
	}
}

func TestCellString(t *testing.T) {
	cases := map[interface{}]string{
		float64(1700000000000): "1700000000000",
		12.5:                   "12.5",
		"x":                    "x",
		true:                   "true",
	}
	for in, want := range cases {
		if got := cellString(in); got != want {
			t.Fatalf("cellString(%v) = %q, want %q", in, got, want)
		}
	}
	if cellString(nil) != "" {
		t.Fatalf("nil should render empty")
	}
}
