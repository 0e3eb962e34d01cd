package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/dustin/go-humanize"

	"txnhistory/internal/chart"
	"txnhistory/internal/rollup"
	"txnhistory/internal/session"
)

var _ session.Renderer = (*Printer)(nil)

// Printer writes charts and summaries as plain text
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrinter creates a printer writing to w
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// DrawBaseline implements session.Renderer
func (p *Printer) DrawBaseline(_ context.Context, m chart.BaselineModel) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ew := &errWriter{w: p.w}
	if len(m.Balance) == 0 {
		ew.printf("No transactions loaded\n")
		return ew.err
	}

	totalCr, totalDr := rollup.Total(m.Credits), rollup.Total(m.Debits)

	ew.printf("History %s to %s: %s transactions over %d months\n",
		m.Extent[0].Format("2 Jan 2006"),
		m.Extent[1].Format("2 Jan 2006"),
		humanize.Comma(int64(len(m.Balance))),
		len(m.Credits))
	ew.printf("\ttotal credits = %s\n", FormatAmount(totalCr))
	ew.printf("\ttotal debits  = %s\n", FormatAmount(totalDr))
	ew.printf("\tclosing balance = %s\n", FormatAmount(m.Balance[len(m.Balance)-1].Balance))
	return ew.err
}

// DrawOverlay implements session.Renderer
func (p *Printer) DrawOverlay(_ context.Context, set *session.ResultSet) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ew := &errWriter{w: p.w}
	ew.printf("Search %q [%s]\n", set.Query, set.ID)
	writeLayers(ew, "credits", set.Queries, set.Overlay.Credits)
	writeLayers(ew, "debits", set.Queries, set.Overlay.Debits)
	writeSummary(ew, Summaries(set))
	return ew.err
}

// Remove implements session.Renderer
func (p *Printer) Remove(_ context.Context, id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, err := fmt.Fprintf(p.w, "Cleared search [%s]\n", id)
	return err
}

// WriteSummary writes the per-query blocks followed by the totals block
func (p *Printer) WriteSummary(s Summary) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ew := &errWriter{w: p.w}
	writeSummary(ew, s)
	return ew.err
}

func writeLayers(ew *errWriter, label string, queries []string, layers []chart.Layer) {
	for i, l := range layers {
		name := ""
		if i < len(queries) {
			name = queries[i]
		}
		parts := make([]string, 0, len(l.Points))
		for _, pt := range l.Points {
			if pt.Value == 0 {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s=%s", pt.Bucket.Format("2006-01"), FormatAmount(pt.Value)))
		}
		ew.printf("\t%s %q (%s): %s\n", label, name, l.Colour, strings.Join(parts, " "))
	}
}

func writeSummary(ew *errWriter, s Summary) {
	for _, q := range s.Queries {
		ew.printf("%s\n", q.Query)
		ew.printf("\t# transactions  = %d\n", q.Count)
		ew.printf("\ttotal credits   = %s\n", FormatAmount(q.Credit.Total))
		ew.printf("\tmean credit     = %s\n", FormatMeasure(q.Credit.Mean))
		ew.printf("\tmedian credit   = %s\n", FormatMeasure(q.Credit.Median))
		ew.printf("\tcredit variance = %s\n", FormatMeasure(q.Credit.Variance))
		ew.printf("\tcredit stddev   = %s\n", FormatMeasure(q.Credit.StdDev))
		ew.printf("\ttotal debits    = %s\n", FormatAmount(q.Debit.Total))
		ew.printf("\tmean debit      = %s\n", FormatMeasure(q.Debit.Mean))
		ew.printf("\tmedian debit    = %s\n", FormatMeasure(q.Debit.Median))
		ew.printf("\tdebit variance  = %s\n", FormatMeasure(q.Debit.Variance))
		ew.printf("\tdebit stddev    = %s\n", FormatMeasure(q.Debit.StdDev))
		ew.printf("\tSample descriptions: %s\n", strings.Join(q.Keys, ", "))
		ew.printf("\tFull descriptions: %s\n", strings.Join(q.Descriptions, ", "))
	}

	ew.printf("Totals\n")
	ew.printf("\t# transactions      = %d\n", s.Totals.Transactions)
	ew.printf("\ttotal credits       = %d\n", s.Totals.CreditTransactions)
	ew.printf("\ttotal credit amount = %s\n", FormatAmount(s.Totals.CreditAmount))
	ew.printf("\ttotal debits        = %d\n", s.Totals.DebitTransactions)
	ew.printf("\ttotal debit amount  = %s\n", FormatAmount(s.Totals.DebitAmount))
}

// errWriter keeps the first write error and skips later writes
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
