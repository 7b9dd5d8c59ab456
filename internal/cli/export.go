package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/FACorreiaa/penny-ledger/pkg/money"
)

// exportRow is the CSV shape of one transaction leg, flattened for
// spreadsheet use.
type exportRow struct {
	Date        string `csv:"date"`
	Description string `csv:"description"`
	Account     string `csv:"account"`
	AccountType string `csv:"account_type"`
	Amount      string `csv:"amount"`
}

var exportCmd = &cobra.Command{
	Use:   "export FILE.csv",
	Short: "Export all transactions to a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if !strings.EqualFold(filepath.Ext(path), ".csv") {
			return fmt.Errorf("export target must be a .csv file: %s", path)
		}

		svc, repo, err := openLedger()
		if err != nil {
			return err
		}
		defer repo.Close()

		ctx := cmd.Context()
		txns, err := svc.Transactions(ctx)
		if err != nil {
			return err
		}
		accounts, err := svc.Accounts(ctx)
		if err != nil {
			return err
		}
		names := make(map[int64]accountInfo, len(accounts))
		for _, a := range accounts {
			names[a.ID] = accountInfo{name: a.Name, accType: a.Type}
		}

		rows := make([]exportRow, 0, len(txns)*2)
		for _, txn := range txns {
			for _, entry := range txn.Entries {
				info := names[entry.AccountID]
				rows = append(rows, exportRow{
					Date:        txn.Timestamp.Format("02/01/2006"),
					Description: txn.Description,
					Account:     info.name,
					AccountType: info.accType,
					Amount:      money.FormatPennies(entry.AmountPennies),
				})
			}
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()

		if err := gocsv.MarshalFile(&rows, f); err != nil {
			return fmt.Errorf("write export file: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported %d rows to %s\n", len(rows), path)
		return nil
	},
}

type accountInfo struct {
	name    string
	accType string
}

func init() {
	rootCmd.AddCommand(exportCmd)
}
