// Package ledger implements the double-entry core: accounts, balanced
// transactions, and integer-penny entries.
package ledger

import (
	"errors"
	"time"
)

// Account types. Primary accounts are the asset/liability side of a
// transaction; balancing accounts are the offsetting income/expense/
// adjustment side.
const (
	TypeAsset      = "asset"
	TypeLiability  = "liability"
	TypeIncome     = "income"
	TypeExpense    = "expense"
	TypeAdjustment = "adjustment"
)

// PrimaryTypes and BalancingTypes partition the account types.
var (
	PrimaryTypes   = []string{TypeAsset, TypeLiability}
	BalancingTypes = []string{TypeIncome, TypeExpense, TypeAdjustment}
)

var (
	// ErrAccountNotFound indicates the referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")
	// ErrInvalidAccountType indicates a type outside the allowed set for
	// the operation.
	ErrInvalidAccountType = errors.New("invalid account type")
	// ErrUnbalanced indicates a transaction whose entries do not sum to
	// zero.
	ErrUnbalanced = errors.New("transaction entries do not sum to zero")
	// ErrDuplicateAccount indicates an account name already in use.
	ErrDuplicateAccount = errors.New("account name already exists")
)

// Account is one ledger account.
type Account struct {
	ID       int64
	Name     string
	Type     string
	IsActive bool
}

// Transaction is a committed, balanced transaction with its entries.
type Transaction struct {
	ID          int64
	Timestamp   time.Time
	Description string
	Entries     []Entry
}

// Entry is one leg of a transaction. Amounts are signed pennies; the entries
// of a transaction always sum to zero.
type Entry struct {
	ID            int64
	TransactionID int64
	AccountID     int64
	AmountPennies int64
}

// AccountBalance is one row of the balance report.
type AccountBalance struct {
	Account        Account
	BalancePennies int64
}

// IsPrimaryType reports whether t is an asset or liability type.
func IsPrimaryType(t string) bool {
	return t == TypeAsset || t == TypeLiability
}

// IsBalancingType reports whether t is an income, expense or adjustment type.
func IsBalancingType(t string) bool {
	return t == TypeIncome || t == TypeExpense || t == TypeAdjustment
}
