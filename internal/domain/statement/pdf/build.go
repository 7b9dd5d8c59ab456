package pdf

import (
	"strings"

	"github.com/FACorreiaa/penny-ledger/internal/domain/statement"
)

// buildRecord converts one block into a staging record. A block that yields
// no money token, or that turns out to be boilerplate after its lines are
// joined, produces the zero record; the pipeline filter drops it.
func buildRecord(block TransactionBlock) statement.StagingRecord {
	flat := strings.Join(block.Lines, " ")

	credit := isCredit(block.Lines)

	// Amount and running balance are the trailing pair of money tokens.
	// Descriptions can themselves contain money-looking numbers, so trailing
	// tokens are trusted over leading ones. With a single token the balance
	// column was absent from the text layer; the token is the amount.
	tokens := findMoneyTokens(flat)
	var amount string
	switch {
	case len(tokens) == 0:
		// No amount: record is dropped by the date+amount filter.
	case len(tokens) == 1:
		amount = cleanAmount(tokens[0])
	default:
		amount = cleanAmount(tokens[len(tokens)-2])
	}
	if amount != "" && !credit {
		amount = "-" + amount
	}

	description := buildDescription(block)

	// Boilerplate can slip past the line-level guard when it is joined with
	// adjacent text; re-check the assembled description.
	if isBoilerplate(description) {
		return statement.StagingRecord{}
	}

	return statement.StagingRecord{
		Date:        block.DisplayDate,
		Description: description,
		Amount:      amount,
	}
}

// isCredit inspects the block's first physical line: the CR marker only ever
// appears as its leading token, either directly or right after the date
// prefix. The flattened text is never used here, joining could move a CR
// from a later line into what looks like the leading position.
func isCredit(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	first := lines[0]
	if strings.HasPrefix(first, "CR ") {
		return true
	}
	if d, ok := matchDateLine(first); ok {
		return strings.HasPrefix(d.Remainder, "CR ")
	}
	return false
}

// buildDescription assembles the free-text description: the remainder after
// the date prefix (when the first line is a date line) joined with the
// continuation lines, otherwise the whole flattened block. The trailing
// amount/balance tokens are stripped from the end; everything else,
// including the type code, passes through as raw statement text.
func buildDescription(block TransactionBlock) string {
	var parts []string
	if d, ok := matchDateLine(block.Lines[0]); ok {
		parts = append(parts, d.Remainder)
	} else {
		parts = append(parts, block.Lines[0])
	}
	parts = append(parts, block.Lines[1:]...)
	return stripTrailingMoney(strings.Join(parts, " "))
}

// stripTrailingMoney removes up to two money tokens from the end of s,
// tolerating comma grouping and trailing whitespace.
func stripTrailingMoney(s string) string {
	for i := 0; i < 2; i++ {
		trimmed := strings.TrimRight(s, " \t")
		loc := trailingMoneyRe.FindStringIndex(trimmed)
		if loc == nil {
			break
		}
		s = trimmed[:loc[0]]
	}
	return strings.TrimRight(s, " \t")
}
