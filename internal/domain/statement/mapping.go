package statement

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Ignore is the mapping value that skips a field entirely.
const Ignore = "(ignore)"

// ErrMissingMapping indicates a column mapping lacks a required key.
var ErrMissingMapping = errors.New("column mapping missing required key")

// Mapping binds staging fields to source column names for tabular imports.
// Required keys: "date", "amount". Optional: "merchant", "description",
// "primary", "balancing" — absent or Ignore-valued keys leave the field
// empty.
type Mapping map[string]string

// Validate checks that the required keys are mapped to real columns.
func (m Mapping) Validate() error {
	for _, key := range []string{"date", "amount"} {
		if col, ok := m[key]; !ok || col == "" || col == Ignore {
			return fmt.Errorf("%w: %s", ErrMissingMapping, key)
		}
	}
	return nil
}

// Day-first formats seen in UK bank exports, tried in order.
var dateFormats = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"02.01.2006",
	"2006-01-02",
	"02/01/06",
	"02 Jan 2006",
	"02 Jan 06",
}

// NormalizeDate parses day-first and reformats to DD/MM/YYYY. Unparseable
// input yields the empty string rather than an error; the review step fixes
// such rows by hand.
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, format := range dateFormats {
		if t, err := time.Parse(format, raw); err == nil {
			return t.Format("02/01/2006")
		}
	}
	return ""
}

// NormalizeAmount strips currency symbols and grouping commas, keeping the
// value as a plain decimal string. Input that is not a number at all passes
// through stripped; the booking step rejects it with a proper error.
func NormalizeAmount(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "£", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if d, err := decimal.NewFromString(s); err == nil {
		return d.String()
	}
	return s
}

// MapRow applies a mapping to one tabular row, given the header index.
// Balance brought/carried forward rows yield ok=false: they are statement
// boilerplate, not transactions.
func MapRow(record []string, index map[string]int, mapping Mapping) (StagingRecord, bool) {
	column := func(key string) string {
		col, ok := mapping[key]
		if !ok || col == Ignore {
			return ""
		}
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	out := StagingRecord{
		Date:                 NormalizeDate(column("date")),
		Amount:               NormalizeAmount(column("amount")),
		Merchant:             column("merchant"),
		Description:          column("description"),
		PrimaryAccountHint:   column("primary"),
		BalancingAccountHint: column("balancing"),
	}

	blob := strings.ToUpper(out.Merchant + " " + out.Description)
	if strings.Contains(blob, "BALANCE BROUGHT FORWARD") ||
		strings.Contains(blob, "BALANCE CARRIED FORWARD") {
		return StagingRecord{}, false
	}
	return out, true
}
