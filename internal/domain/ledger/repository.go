package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Repository is the persistence boundary for the ledger.
type Repository interface {
	CreateAccount(ctx context.Context, name, accountType string) (*Account, error)
	GetAccount(ctx context.Context, id int64) (*Account, error)
	GetAccountByName(ctx context.Context, name string) (*Account, error)
	ListAccountsByTypes(ctx context.Context, types []string, activeOnly bool) ([]Account, error)
	CloseAccount(ctx context.Context, id int64) error

	CreateTransaction(ctx context.Context, tx *Transaction) error
	ListTransactions(ctx context.Context) ([]Transaction, error)
	AccountBalances(ctx context.Context) ([]AccountBalance, error)

	Close() error
}

// migrations are the schema statements, executed one at a time on open.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS accounts (
		id        INTEGER PRIMARY KEY,
		name      TEXT NOT NULL UNIQUE,
		type      TEXT NOT NULL CHECK (type IN ('asset','liability','income','expense','adjustment')),
		is_active INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id          INTEGER PRIMARY KEY,
		timestamp   TEXT NOT NULL,
		description TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS entries (
		id             INTEGER PRIMARY KEY,
		transaction_id INTEGER NOT NULL REFERENCES transactions(id) ON DELETE CASCADE,
		account_id     INTEGER NOT NULL REFERENCES accounts(id),
		amount_pennies INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_transaction ON entries(transaction_id)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_account ON entries(account_id)`,
}

// SQLiteRepository is the Repository implementation over modernc sqlite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (creating if needed) the database at path and
// runs the schema migrations. ":memory:" is supported for tests. The file is
// opened in WAL mode with foreign keys enforced.
func NewSQLiteRepository(path string) (*SQLiteRepository, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateAccount(ctx context.Context, name, accountType string) (*Account, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (name, type, is_active) VALUES (?, ?, 1)`,
		name, accountType,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, name)
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("account id: %w", err)
	}
	return &Account{ID: id, Name: name, Type: accountType, IsActive: true}, nil
}

func (r *SQLiteRepository) GetAccount(ctx context.Context, id int64) (*Account, error) {
	return r.scanAccount(r.db.QueryRowContext(ctx,
		`SELECT id, name, type, is_active FROM accounts WHERE id = ?`, id))
}

func (r *SQLiteRepository) GetAccountByName(ctx context.Context, name string) (*Account, error) {
	return r.scanAccount(r.db.QueryRowContext(ctx,
		`SELECT id, name, type, is_active FROM accounts WHERE name = ?`, name))
}

func (r *SQLiteRepository) scanAccount(row *sql.Row) (*Account, error) {
	var a Account
	if err := row.Scan(&a.ID, &a.Name, &a.Type, &a.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	return &a, nil
}

func (r *SQLiteRepository) ListAccountsByTypes(ctx context.Context, types []string, activeOnly bool) ([]Account, error) {
	if len(types) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(types))
	placeholders = placeholders[:len(placeholders)-1]
	query := fmt.Sprintf(
		`SELECT id, name, type, is_active FROM accounts WHERE type IN (%s)`, placeholders)
	args := make([]any, 0, len(types))
	for _, t := range types {
		args = append(args, t)
	}
	if activeOnly {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.IsActive); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *SQLiteRepository) CloseAccount(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET is_active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("close account: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("close account: %w", err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// CreateTransaction inserts the transaction and its entries atomically and
// fills in the generated IDs.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, tx *Transaction) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer dbTx.Rollback()

	res, err := dbTx.ExecContext(ctx,
		`INSERT INTO transactions (timestamp, description) VALUES (?, ?)`,
		tx.Timestamp.UTC().Format(time.RFC3339), tx.Description,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	txID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("transaction id: %w", err)
	}
	tx.ID = txID

	for i := range tx.Entries {
		entry := &tx.Entries[i]
		entry.TransactionID = txID
		res, err := dbTx.ExecContext(ctx,
			`INSERT INTO entries (transaction_id, account_id, amount_pennies) VALUES (?, ?, ?)`,
			txID, entry.AccountID, entry.AmountPennies,
		)
		if err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
		if entry.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("entry id: %w", err)
		}
	}

	return dbTx.Commit()
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT t.id, t.timestamp, t.description,
		       e.id, e.account_id, e.amount_pennies
		FROM transactions t
		JOIN entries e ON e.transaction_id = t.id
		ORDER BY t.timestamp, t.id, e.id`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []Transaction
	byID := map[int64]int{}
	for rows.Next() {
		var (
			txID, entryID, accountID, pennies int64
			ts, description                   string
		)
		if err := rows.Scan(&txID, &ts, &description, &entryID, &accountID, &pennies); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		idx, ok := byID[txID]
		if !ok {
			timestamp, err := time.Parse(time.RFC3339, ts)
			if err != nil {
				return nil, fmt.Errorf("parse timestamp %q: %w", ts, err)
			}
			out = append(out, Transaction{ID: txID, Timestamp: timestamp, Description: description})
			idx = len(out) - 1
			byID[txID] = idx
		}
		out[idx].Entries = append(out[idx].Entries, Entry{
			ID:            entryID,
			TransactionID: txID,
			AccountID:     accountID,
			AmountPennies: pennies,
		})
	}
	return out, rows.Err()
}

// AccountBalances sums entries per account, including accounts with no
// entries.
func (r *SQLiteRepository) AccountBalances(ctx context.Context) ([]AccountBalance, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.name, a.type, a.is_active, COALESCE(SUM(e.amount_pennies), 0)
		FROM accounts a
		LEFT JOIN entries e ON e.account_id = a.id
		GROUP BY a.id
		ORDER BY a.id`)
	if err != nil {
		return nil, fmt.Errorf("account balances: %w", err)
	}
	defer rows.Close()

	var balances []AccountBalance
	for rows.Next() {
		var b AccountBalance
		if err := rows.Scan(&b.Account.ID, &b.Account.Name, &b.Account.Type, &b.Account.IsActive, &b.BalancePennies); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		balances = append(balances, b)
	}
	return balances, rows.Err()
}
