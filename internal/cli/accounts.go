package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/penny-ledger/internal/domain/ledger"
	"github.com/FACorreiaa/penny-ledger/pkg/money"
)

func init() {
	rootCmd.AddCommand(accountsCmd)
	accountsCmd.AddCommand(accountsListCmd)
	accountsCmd.AddCommand(accountsAddCmd)
	accountsCmd.AddCommand(accountsCloseCmd)
	rootCmd.AddCommand(balancesCmd)

	accountsListCmd.Flags().Bool("all", false, "Include closed accounts")
	accountsAddCmd.Flags().StringP("type", "t", "",
		"Account type: asset, liability, income, expense or adjustment")
	accountsAddCmd.MarkFlagRequired("type")
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Manage ledger accounts",
}

var accountsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts, grouped into primary and balancing",
	RunE:  runAccountsList,
}

func runAccountsList(cmd *cobra.Command, args []string) error {
	svc, repo, err := openLedger()
	if err != nil {
		return err
	}
	defer repo.Close()

	all, _ := cmd.Flags().GetBool("all")
	activeOnly := !all

	primaries, err := svc.PrimaryAccounts(cmd.Context(), activeOnly)
	if err != nil {
		return err
	}
	balancing, err := svc.BalancingAccounts(cmd.Context(), activeOnly)
	if err != nil {
		return err
	}

	printAccounts := func(title string, accounts []ledger.Account) {
		fmt.Printf("%s:\n", title)
		for _, a := range accounts {
			status := ""
			if !a.IsActive {
				status = " (closed)"
			}
			fmt.Printf("  %d\t%s\t[%s]%s\n", a.ID, a.Name, a.Type, status)
		}
	}
	printAccounts("Primary accounts", primaries)
	printAccounts("Balancing accounts", balancing)
	return nil
}

var accountsAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountsAdd,
}

func runAccountsAdd(cmd *cobra.Command, args []string) error {
	svc, repo, err := openLedger()
	if err != nil {
		return err
	}
	defer repo.Close()

	accountType, _ := cmd.Flags().GetString("type")

	var account *ledger.Account
	switch {
	case ledger.IsPrimaryType(accountType):
		account, err = svc.AddPrimaryAccount(cmd.Context(), args[0], accountType)
	case ledger.IsBalancingType(accountType):
		account, err = svc.AddBalancingAccount(cmd.Context(), args[0], accountType)
	default:
		return fmt.Errorf("%w: %q", ledger.ErrInvalidAccountType, accountType)
	}
	if err != nil {
		return err
	}

	fmt.Printf("created account %d: %s [%s]\n", account.ID, account.Name, account.Type)
	return nil
}

var accountsCloseCmd = &cobra.Command{
	Use:   "close ID",
	Short: "Close an account (entries stay in history)",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountsClose,
}

func runAccountsClose(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid account id %q", args[0])
	}

	svc, repo, err := openLedger()
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := svc.CloseAccount(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Printf("closed account %d\n", id)
	return nil
}

var balancesCmd = &cobra.Command{
	Use:   "balances",
	Short: "Show per-account balances",
	RunE:  runBalances,
}

func runBalances(cmd *cobra.Command, args []string) error {
	svc, repo, err := openLedger()
	if err != nil {
		return err
	}
	defer repo.Close()

	balances, err := svc.Balances(cmd.Context())
	if err != nil {
		return err
	}

	for _, b := range balances {
		fmt.Printf("%-30s [%s]\t%s\n", b.Account.Name, b.Account.Type, money.Display(b.BalancePennies))
	}
	return nil
}
