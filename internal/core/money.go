// Package core provides the transaction record model and amount parsing.
//
// This file contains the lenient amount parser used by every dataset
// source. Bank exports are inconsistent about separators and symbols, so
// parsing never fails hard: callers get a zero amount and a flag.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts an exported amount string to a decimal.
//
// It accepts dot (12.34) and comma (12,34) decimal separators, thousands
// separators (1,234.56 or 1.234,56), surrounding quotes, currency symbols
// and a leading sign. Anything else yields zero and ok=false.
//
// Examples:
//
//	ParseAmount("12.34")     -> 12.34, true
//	ParseAmount("1,234.56")  -> 1234.56, true
//	ParseAmount("12,34")     -> 12.34, true
//	ParseAmount("£-3.50")    -> -3.5, true
//	ParseAmount("")          -> 0, false
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'")
	s = strings.Map(func(r rune) rune {
		switch r {
		case '£', '$', '€', ' ', '\u00a0':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return decimal.Zero, false
	}

	s = normalizeSeparators(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// AmountOrZero is ParseAmount without the flag.
func AmountOrZero(s string) decimal.Decimal {
	d, _ := ParseAmount(s)
	return d
}

func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma == -1:
		return s
	case lastDot == -1:
		// Only commas: a single comma followed by one or two digits is a
		// decimal comma, otherwise commas group thousands.
		if strings.Count(s, ",") == 1 && len(s)-lastComma-1 <= 2 {
			return strings.Replace(s, ",", ".", 1)
		}
		return strings.ReplaceAll(s, ",", "")
	case lastComma > lastDot:
		// 1.234,56
		s = strings.ReplaceAll(s, ".", "")
		return strings.Replace(s, ",", ".", 1)
	default:
		// 1,234.56
		return strings.ReplaceAll(s, ",", "")
	}
}
