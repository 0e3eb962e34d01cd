package core

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Credit Field = "credit"
	Debit  Field = "debit"
)

type (
	// Field selects which amount of a record is aggregated.
	Field string

	// Record is one bank transaction as loaded from the dataset.
	Record struct {
		Date        time.Time
		Description string
		Credit      decimal.Decimal
		Debit       decimal.Decimal
		Balance     decimal.Decimal
	}

	// Point is a single time-bucketed aggregate.
	Point struct {
		Bucket time.Time
		Value  float64
	}
)

var (
	ErrInvalidQuery = errors.New("invalid query")
	ErrDatasetLoad  = errors.New("dataset load failed")
)

// String implements fmt.Stringer
func (f Field) String() string {
	return string(f)
}

// IsValid returns true for the credit and debit fields
func (f Field) IsValid() bool {
	switch f {
	case Credit, Debit:
		return true
	default:
		return false
	}
}

// Amount returns the value of the requested field. Unknown fields contribute zero.
func (r Record) Amount(f Field) decimal.Decimal {
	switch f {
	case Credit:
		return r.Credit
	case Debit:
		return r.Debit
	default:
		return decimal.Zero
	}
}

// IsCredit reports whether the record carries a positive credit.
func (r Record) IsCredit() bool {
	return r.Credit.IsPositive()
}

// IsDebit reports whether the record carries a positive debit.
func (r Record) IsDebit() bool {
	return r.Debit.IsPositive()
}

// NewDate creates a calendar date at midnight UTC
func NewDate(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// MonthStart truncates t to the first day of its month, midnight UTC.
// The calendar month is taken from t's own location before converting.
func MonthStart(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// DayOf drops the time-of-day part of t, keeping the calendar day.
func DayOf(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
