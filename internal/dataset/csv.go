// Package dataset loads transaction history from its containers.
package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"txnhistory/internal/core"
)

// Column positions in an exported statement
const (
	colDate = iota
	colDescription
	colCredit
	colDebit
	colBalance
	numColumns
)

// CSVOptions controls how a statement file is read
type CSVOptions struct {
	HasHeader   bool
	DateLayouts []string
}

// CSVSource reads one CSV statement file
type CSVSource struct {
	Path    string
	Options CSVOptions
}

// NewCSVSource creates a source for path
func NewCSVSource(path string, opts CSVOptions) *CSVSource {
	return &CSVSource{Path: path, Options: opts}
}

// Name implements Source
func (s *CSVSource) Name() string {
	return "csv:" + s.Path
}

// ListRecords implements Source
func (s *CSVSource) ListRecords(ctx context.Context) ([]core.Record, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return ParseCSV(ctx, f, s.Options)
}

// ParseCSV reads date, description, credit, debit and balance columns.
// Amounts are lenient and load as zero when unreadable; dates are not.
// The first row whose date parses fixes the layout for the rest of the
// file, so one statement is never read in two date conventions.
func ParseCSV(ctx context.Context, r io.Reader, opts CSVOptions) ([]core.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records := make([]core.Record, 0)
	layouts := opts.DateLayouts
	skipHeader := opts.HasHeader
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if skipHeader {
			skipHeader = false
			continue
		}
		if isBlank(row) {
			continue
		}
		if len(row) < numColumns {
			return nil, fmt.Errorf("line %d: expected %d fields, got %d", line, numColumns, len(row))
		}

		date, layout, err := matchDate(row[colDate], layouts)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		layouts = []string{layout}

		records = append(records, core.Record{
			Date:        date,
			Description: strings.TrimSpace(row[colDescription]),
			Credit:      core.AmountOrZero(row[colCredit]),
			Debit:       core.AmountOrZero(row[colDebit]),
			Balance:     core.AmountOrZero(row[colBalance]),
		})
	}
	return records, nil
}

// ParseDate tries each layout in turn and returns the calendar day at midnight UTC.
func ParseDate(s string, layouts []string) (time.Time, error) {
	t, _, err := matchDate(s, layouts)
	return t, err
}

func matchDate(s string, layouts []string) (time.Time, string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return core.DayOf(t), layout, nil
		}
	}
	if len(layouts) == 1 {
		return time.Time{}, "", fmt.Errorf("unparseable date %q (file dates use layout %q)", s, layouts[0])
	}
	return time.Time{}, "", fmt.Errorf("unparseable date %q", s)
}

func isBlank(row []string) bool {
	for _, f := range row {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
