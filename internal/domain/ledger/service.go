package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Service enforces the ledger rules on top of the repository: account type
// partitioning and the zero-sum invariant on every committed transaction.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a ledger service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// AddPrimaryAccount creates an asset or liability account.
func (s *Service) AddPrimaryAccount(ctx context.Context, name, accountType string) (*Account, error) {
	if !IsPrimaryType(accountType) {
		return nil, fmt.Errorf("%w: primary accounts must be asset or liability, got %q", ErrInvalidAccountType, accountType)
	}
	return s.repo.CreateAccount(ctx, name, accountType)
}

// AddBalancingAccount creates an income, expense or adjustment account.
func (s *Service) AddBalancingAccount(ctx context.Context, name, accountType string) (*Account, error) {
	if !IsBalancingType(accountType) {
		return nil, fmt.Errorf("%w: balancing accounts must be income, expense or adjustment, got %q", ErrInvalidAccountType, accountType)
	}
	return s.repo.CreateAccount(ctx, name, accountType)
}

// PrimaryAccounts lists asset/liability accounts, name-ordered.
func (s *Service) PrimaryAccounts(ctx context.Context, activeOnly bool) ([]Account, error) {
	return s.repo.ListAccountsByTypes(ctx, PrimaryTypes, activeOnly)
}

// BalancingAccounts lists income/expense/adjustment accounts, name-ordered.
func (s *Service) BalancingAccounts(ctx context.Context, activeOnly bool) ([]Account, error) {
	return s.repo.ListAccountsByTypes(ctx, BalancingTypes, activeOnly)
}

// ActiveAccounts lists every active account.
func (s *Service) ActiveAccounts(ctx context.Context) ([]Account, error) {
	return s.repo.ListAccountsByTypes(ctx, allAccountTypes(), true)
}

// Accounts lists every account, closed ones included, so historical
// transactions always resolve to a name.
func (s *Service) Accounts(ctx context.Context) ([]Account, error) {
	return s.repo.ListAccountsByTypes(ctx, allAccountTypes(), false)
}

func allAccountTypes() []string {
	all := make([]string, 0, len(PrimaryTypes)+len(BalancingTypes))
	all = append(all, PrimaryTypes...)
	all = append(all, BalancingTypes...)
	return all
}

// GetOrCreateAccount returns the named account, creating it with the given
// type when absent.
func (s *Service) GetOrCreateAccount(ctx context.Context, name, accountType string) (*Account, error) {
	account, err := s.repo.GetAccountByName(ctx, name)
	if err == nil {
		return account, nil
	}
	if err != ErrAccountNotFound {
		return nil, err
	}
	if !IsPrimaryType(accountType) && !IsBalancingType(accountType) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAccountType, accountType)
	}
	s.logger.Info("creating account", "name", name, "type", accountType)
	return s.repo.CreateAccount(ctx, name, accountType)
}

// CloseAccount soft-deletes an account; its entries stay in history.
func (s *Service) CloseAccount(ctx context.Context, id int64) error {
	return s.repo.CloseAccount(ctx, id)
}

// CreateTransaction commits a balanced two-entry transaction: the primary
// account receives amountPennies, the balancing account the negation. The
// zero-sum invariant is checked before anything is written.
func (s *Service) CreateTransaction(
	ctx context.Context,
	timestamp time.Time,
	description string,
	primaryAccountID int64,
	amountPennies int64,
	balancingAccountID int64,
) (*Transaction, error) {
	if _, err := s.repo.GetAccount(ctx, primaryAccountID); err != nil {
		return nil, fmt.Errorf("primary account %d: %w", primaryAccountID, err)
	}
	if _, err := s.repo.GetAccount(ctx, balancingAccountID); err != nil {
		return nil, fmt.Errorf("balancing account %d: %w", balancingAccountID, err)
	}

	tx := &Transaction{
		Timestamp:   timestamp,
		Description: description,
		Entries: []Entry{
			{AccountID: primaryAccountID, AmountPennies: amountPennies},
			{AccountID: balancingAccountID, AmountPennies: -amountPennies},
		},
	}

	var total int64
	for _, e := range tx.Entries {
		total += e.AmountPennies
	}
	if total != 0 {
		return nil, fmt.Errorf("%w: sum=%d", ErrUnbalanced, total)
	}

	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Transactions returns all committed transactions with their entries.
func (s *Service) Transactions(ctx context.Context) ([]Transaction, error) {
	return s.repo.ListTransactions(ctx)
}

// Balances returns the per-account entry sums.
func (s *Service) Balances(ctx context.Context) ([]AccountBalance, error) {
	return s.repo.AccountBalances(ctx)
}
