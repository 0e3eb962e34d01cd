package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"txnhistory/internal/core"
)

var layouts = []string{"2006-01-02", "02/01/2006", "2 Jan 2006"}

func TestParseCSV(t *testing.T) {
	input := `date,desc,cr,dr,balance
2021-01-15,ITUNES STORE,,0.99,"1,000.01"
2021-02-15,  SALARY ACME ,"2,000.00",,3000.01

2021-03-03,GOOGLE PLAY,n/a,4.99,2995.02
`
	records, err := ParseCSV(context.Background(), strings.NewReader(input), CSVOptions{HasHeader: true, DateLayouts: layouts})
	if err != nil {
		t.Fatalf("ParseCSV() error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}

	first := records[0]
	if !first.Date.Equal(core.NewDate(2021, 1, 15)) || first.Description != "ITUNES STORE" {
		t.Fatalf("unexpected first record %+v", first)
	}
	if !first.Credit.IsZero() || !first.Debit.Equal(decimal.RequireFromString("0.99")) {
		t.Fatalf("unexpected amounts %v/%v", first.Credit, first.Debit)
	}
	if !first.Balance.Equal(decimal.RequireFromString("1000.01")) {
		t.Fatalf("balance = %v, want 1000.01", first.Balance)
	}

	if !records[1].Date.Equal(core.NewDate(2021, 2, 15)) || records[1].Description != "SALARY ACME" {
		t.Fatalf("unexpected second record %+v", records[1])
	}
	if !records[1].Credit.Equal(decimal.NewFromInt(2000)) {
		t.Fatalf("credit = %v, want 2000", records[1].Credit)
	}

	// unreadable amounts load as zero
	if !records[2].Credit.IsZero() {
		t.Fatalf("invalid credit should load as zero, got %v", records[2].Credit)
	}
}

func TestParseCSV_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bad date", "2021-13-45,X,1,0,1\n", "line 1: unparseable date"},
		{"short row", "2021-01-01,X,1\n", "line 1: expected 5 fields, got 3"},
		{"bad quoting", "2021-01-01,\"X,1,0,1\n", "read csv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCSV(context.Background(), strings.NewReader(tt.input), CSVOptions{DateLayouts: layouts})
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("ParseCSV() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestParseCSV_OneDateLayoutPerFile(t *testing.T) {
	ambiguous := []string{"2006-01-02", "02/01/2006", "01/02/2006"}

	t.Run("first matching row fixes the layout", func(t *testing.T) {
		input := "01/15/2021,A,1,0,1\n02/03/2021,B,1,0,2\n"
		records, err := ParseCSV(context.Background(), strings.NewReader(input), CSVOptions{DateLayouts: ambiguous})
		if err != nil {
			t.Fatalf("ParseCSV() error: %v", err)
		}
		want := []time.Time{core.NewDate(2021, 1, 15), core.NewDate(2021, 2, 3)}
		for i, w := range want {
			if !records[i].Date.Equal(w) {
				t.Errorf("record %s date = %v, want %v", records[i].Description, records[i].Date, w)
			}
		}
	})

	t.Run("mixed conventions are rejected", func(t *testing.T) {
		input := "2021-01-15,A,1,0,1\n02/03/2021,B,1,0,2\n"
		_, err := ParseCSV(context.Background(), strings.NewReader(input), CSVOptions{DateLayouts: ambiguous})
		if err == nil || !strings.Contains(err.Error(), "line 2: unparseable date") {
			t.Fatalf("ParseCSV() error = %v, want line 2 date error", err)
		}
	})
}

func TestParseCSV_NoHeader(t *testing.T) {
	records, err := ParseCSV(context.Background(), strings.NewReader("2021-01-01,X,1,0,1\n"), CSVOptions{DateLayouts: layouts})
	if err != nil || len(records) != 1 {
		t.Fatalf("ParseCSV() = %v, %v", records, err)
	}
}

func TestCSVSource_ListRecords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "history.csv")
	if err := os.WriteFile(path, []byte("date,desc,cr,dr,balance\n2021-01-01,X,1,0,1\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	src := NewCSVSource(path, CSVOptions{HasHeader: true, DateLayouts: layouts})
	if src.Name() != "csv:"+path {
		t.Fatalf("Name() = %q", src.Name())
	}
	records, err := src.ListRecords(context.Background())
	if err != nil || len(records) != 1 {
		t.Fatalf("ListRecords() = %v, %v", records, err)
	}

	missing := NewCSVSource(filepath.Join(dir, "missing.csv"), CSVOptions{DateLayouts: layouts})
	if _, err := missing.ListRecords(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate(" 2 Jan 2021 ", layouts)
	if err != nil || !got.Equal(core.NewDate(2021, 1, 2)) {
		t.Fatalf("ParseDate() = %v, %v", got, err)
	}
	if _, err := ParseDate("yesterday", layouts); err == nil {
		t.Fatalf("expected error for unparseable date")
	}
}
