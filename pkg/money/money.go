// Package money converts between display amounts and integer pennies.
// The ledger stores every entry as signed pennies; floats never touch a
// monetary value.
package money

import (
	"fmt"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// GBP is the ledger's currency. The statement parsers only understand one
// UK layout family, so everything is booked in a single currency.
const GBP = "GBP"

// ParsePennies converts a signed decimal string ("-1234.56", "19.99",
// "1,000.00") into pennies. Grouping commas and a leading £ are tolerated;
// anything else is an error.
func ParsePennies(amount string) (int64, error) {
	s := strings.TrimSpace(amount)
	// The symbol can sit either side of the sign ("£-12.34", "-£12.34").
	s = strings.ReplaceAll(s, "£", "")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	if d.Exponent() < -2 {
		return 0, fmt.Errorf("amount %q has sub-penny precision", amount)
	}
	return d.Shift(2).IntPart(), nil
}

// FormatPennies renders pennies as a plain decimal string with two places,
// e.g. -123456 -> "-1234.56".
func FormatPennies(pennies int64) string {
	return decimal.New(pennies, -2).StringFixed(2)
}

// Display renders pennies with the currency symbol and grouping, for CLI
// output: -123456 -> "-£1,234.56".
func Display(pennies int64) string {
	return gomoney.New(pennies, GBP).Display()
}
