package seed

import (
	"strings"
	"testing"
	"time"

	"billbook/internal/core"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return "id-" + string(rune('0'+n))
	}
}

func TestParseBills(t *testing.T) {
	tbl := Table{
		Header: []string{"\ufefftime", "Amount", "type", "category", "note"},
		Rows: [][]string{
			{"1700000000000", "12.5", "0", "food", "ignored"},
			{"1700000001000", "3000", "1", "", ""},
			{"1700000002000", "7,25", "EXPENDITURE", "rent"},
		},
	}
	bills, err := ParseBills(tbl, seqIDs())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(bills) != 3 {
		t.Fatalf("expected 3 bills, got %d", len(bills))
	}
	b := bills[0]
	if b.ID != "id-1" || b.Type != core.Expenditure || *b.CategoryID != "food" || b.Amount.String() != "12.5" {
		t.Fatalf("unexpected first bill %+v", b)
	}
	if !b.Time.Equal(time.UnixMilli(1700000000000)) || b.Time.Location() != time.UTC {
		t.Fatalf("unexpected time %v", b.Time)
	}
	if bills[1].Type != core.Revenue || bills[1].CategoryID != nil {
		t.Fatalf("unexpected second bill %+v", bills[1])
	}
	if bills[2].Amount.String() != "7.25" {
		t.Fatalf("unexpected third amount %s", bills[2].Amount)
	}
}

func TestParseBillsErrors(t *testing.T) {
	header := []string{"amount", "category", "time", "type"}
	cases := []struct {
		name string
		tbl  Table
		want string
	}{
		{"missing column", Table{Header: []string{"amount", "time"}, Rows: [][]string{{"1", "1"}}}, "missing column(s): category, type"},
		{"bad amount", Table{Header: header, Rows: [][]string{{"x", "", "1", "0"}}}, "row 1: invalid amount"},
		{"zero amount", Table{Header: header, Rows: [][]string{{"0", "", "1", "0"}}}, "row 1: invalid amount"},
		{"amount overflows cents", Table{Header: header, Rows: [][]string{{"1", "", "1", "0"}, {"100000000000000000000", "", "1", "0"}}}, "row 2: invalid amount"},
		{"bad time", Table{Header: header, Rows: [][]string{{"1", "", "1", "0"}, {"1", "", "soon", "0"}}}, "row 2: invalid time"},
		{"bad type", Table{Header: header, Rows: [][]string{{"1", "", "1", "7"}}}, "row 1: invalid type"},
	}
	for _, tc := range cases {
		_, err := ParseBills(tc.tbl, seqIDs())
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected %q, got %v", tc.name, tc.want, err)
		}
	}
}

func TestParseEmptyTables(t *testing.T) {
	if bills, err := ParseBills(Table{}, seqIDs()); err != nil || len(bills) != 0 {
		t.Fatalf("expected no bills, got %v %v", bills, err)
	}
	if cats, err := ParseCategories(Table{Header: []string{"id", "name", "type"}}); err != nil || len(cats) != 0 {
		t.Fatalf("expected no categories, got %v %v", cats, err)
	}
}

func TestParseCategories(t *testing.T) {
	cats, err := ParseCategories(Table{
		Header: []string{"id", "name", "type"},
		Rows: [][]string{
			{"c1", "Food", "0"},
			{"c2", "Salary", "1"},
		},
	})
	if err != nil || len(cats) != 2 {
		t.Fatalf("parse: %v %v", cats, err)
	}
	if cats[1] != (core.Category{ID: "c2", Name: "Salary", Type: core.Revenue}) {
		t.Fatalf("unexpected category %+v", cats[1])
	}

	_, err = ParseCategories(Table{
		Header: []string{"id", "name", "type"},
		Rows:   [][]string{{"c1", "A", "0"}, {"c1", "B", "0"}},
	})
	if err == nil || !strings.Contains(err.Error(), "duplicate id") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestNewTableSkipsBlankRows(t *testing.T) {
	tbl := newTable([][]string{{"", ""}, {"id", "name"}, {" ", ""}, {"a", "b"}})
	if len(tbl.Header) != 2 || tbl.Header[0] != "id" || len(tbl.Rows) != 1 {
		t.Fatalf("unexpected table %+v", tbl)
	}
}
