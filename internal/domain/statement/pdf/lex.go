// Package pdf parses UK bank statement PDFs into staging records.
//
// The text layer of these statements has no schema: one transaction spans a
// variable number of lines, the date is printed only for the first
// transaction of a day, and running-balance rows are interleaved with real
// transactions. The package reconstructs transaction records with a small
// line classifier (lex.go), a block segmenter (segment.go) and a
// block-to-record builder (build.go), driven by pipeline.go.
package pdf

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnknownMonth reports a date line whose month token is not one of the
// twelve canonical abbreviations. It aborts the whole import: proceeding
// would risk booking a transaction on the wrong day.
type ErrUnknownMonth struct {
	Token string
}

func (e *ErrUnknownMonth) Error() string {
	return fmt.Sprintf("unknown month token %q in date line", e.Token)
}

// Named line patterns. Each classification rule gets one pattern and one
// entry point so the segmenter's traversal logic stays free of regexp
// details.
var (
	// DD Mon YY prefix, e.g. "02 Dec 25 CR SALARY ...". Extracted text
	// sometimes collapses or pads the separators, so any run of spaces is
	// accepted between the tokens.
	dateLineRe = regexp.MustCompile(`^(\d{2})\s+([A-Za-z]{3})\s+(\d{2})\s+(.*)$`)

	// Money tokens: comma-grouped thousands or plain digits, always exactly
	// two decimal places. Comma-grouped alternative first so "1,234.56" is
	// not split at the comma.
	moneyRe = regexp.MustCompile(`\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2}`)

	// A money token at the very end of a string, with optional trailing
	// whitespace. Used when stripping amount/balance off descriptions.
	trailingMoneyRe = regexp.MustCompile(`(?:\d{1,3}(?:,\d{3})*\.\d{2}|\d+\.\d{2})\s*$`)

	// Transaction-type codes that open a new same-day transaction when no
	// date is printed. Leading whitespace is tolerated: extraction
	// introduces spurious indentation.
	txnStartRe = regexp.MustCompile(`^\s*(?:CR|DD|VIS|TFR|BP)\b`)

	nonLetterRe = regexp.MustCompile(`[^A-Za-z]`)
)

var monthNumbers = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4, "May": 5, "Jun": 6,
	"Jul": 7, "Aug": 8, "Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}

// dateLine is the decomposed form of a DD Mon YY line.
type dateLine struct {
	Day       string
	Month     string // canonicalized, e.g. "Dec"
	Year      string // two digits
	Remainder string // text after the date prefix
}

// matchDateLine recognizes a line whose prefix is "DD Mon YY ". The month is
// matched case-insensitively and canonicalized (first letter upper, rest
// lower); whether it names a real month is checked later, by formatDate.
// Returns ok=false on any non-conforming line, never an error.
func matchDateLine(line string) (dateLine, bool) {
	m := dateLineRe.FindStringSubmatch(line)
	if m == nil {
		return dateLine{}, false
	}
	return dateLine{
		Day:       m[1],
		Month:     canonicalMonth(m[2]),
		Year:      m[3],
		Remainder: m[4],
	}, true
}

func canonicalMonth(tok string) string {
	if tok == "" {
		return tok
	}
	return strings.ToUpper(tok[:1]) + strings.ToLower(tok[1:])
}

// formatDate converts a matched date line into display form DD/MM/YYYY.
// Two-digit years expand as 2000+YY; statements dated outside 2000-2099 are
// not representable and no windowing is attempted.
func formatDate(d dateLine) (string, error) {
	month, ok := monthNumbers[d.Month]
	if !ok {
		return "", &ErrUnknownMonth{Token: d.Month}
	}
	day, err := strconv.Atoi(d.Day)
	if err != nil {
		return "", fmt.Errorf("invalid day %q: %w", d.Day, err)
	}
	yy, err := strconv.Atoi(d.Year)
	if err != nil {
		return "", fmt.Errorf("invalid year %q: %w", d.Year, err)
	}
	return fmt.Sprintf("%02d/%02d/%04d", day, month, 2000+yy), nil
}

// findMoneyTokens returns every money-looking substring of s in
// left-to-right order.
func findMoneyTokens(s string) []string {
	return moneyRe.FindAllString(s, -1)
}

// cleanAmount strips grouping commas from a matched money token.
func cleanAmount(tok string) string {
	return strings.ReplaceAll(tok, ",", "")
}

// isTransactionStart reports whether a line opens a new same-day transaction:
// it begins (after optional indentation) with one of the short
// transaction-type codes printed in the statement's type column.
func isTransactionStart(line string) bool {
	return txnStartRe.MatchString(line)
}

// isBoilerplate reports whether text is a running-balance row. The text is
// normalized to letters only and uppercased before the prefix check, since
// extraction splits and pads these rows unpredictably.
func isBoilerplate(text string) bool {
	normalized := strings.ToUpper(nonLetterRe.ReplaceAllString(text, ""))
	return strings.HasPrefix(normalized, "BALANCECARRIEDFORWARD") ||
		strings.HasPrefix(normalized, "BALANCEBROUGHTFORWARD")
}
