// Package statement defines the staging record shared by all statement
// importers. A staging record is an unconfirmed transaction candidate: it has
// been parsed out of a bank export but not yet mapped to ledger accounts or
// booked.
package statement

// StagingRecord is one parsed statement row, pending review and booking.
// Date is formatted DD/MM/YYYY. Amount is a signed decimal string with no
// grouping separators: debits carry a leading "-", credits none.
// PrimaryAccountHint and BalancingAccountHint are optional pass-through
// fields for a downstream mapping step; the PDF parser always leaves them
// empty.
type StagingRecord struct {
	Date                 string `csv:"date"`
	Merchant             string `csv:"merchant"`
	Description          string `csv:"description"`
	Amount               string `csv:"amount"`
	PrimaryAccountHint   string `csv:"primary"`
	BalancingAccountHint string `csv:"balancing"`
}

// Complete reports whether the record carries the two fields every booked
// transaction needs. Importers drop or surface incomplete records; they never
// book them.
func (r StagingRecord) Complete() bool {
	return r.Date != "" && r.Amount != ""
}
