package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/penny-ledger/internal/domain/categorization"
	importsvc "github.com/FACorreiaa/penny-ledger/internal/domain/import/service"
	"github.com/FACorreiaa/penny-ledger/internal/domain/statement"
)

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("account", "a", "",
		"Primary account to book records against when the statement carries no hint")
	importCmd.Flags().String("balancing", "",
		"Balancing account for records with no hint and no keyword match")
	importCmd.Flags().StringArrayP("map", "m", nil,
		"Column mapping for CSV/XLSX statements, field=column (fields: date, amount, merchant, description, primary, balancing)")
	importCmd.Flags().StringArray("suggest", nil,
		"Keyword suggestion rule, KEYWORD=account (e.g. TESCO=Groceries)")
	importCmd.Flags().Bool("dry-run", false,
		"Parse and print staging records without booking anything")
}

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a bank statement export",
	Long: `Import a bank statement export into the ledger.

PDF statements are parsed with the built-in statement parser; CSV and XLSX
exports need a column mapping, e.g.:

  ledger import statement.csv -m date=Date -m amount=Amount -m description=Details`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]

	mapping, err := parsePairs(cmd, "map")
	if err != nil {
		return err
	}

	rulePairs, err := parsePairs(cmd, "suggest")
	if err != nil {
		return err
	}
	var rules []categorization.Rule
	for keyword, account := range rulePairs {
		rules = append(rules, categorization.Rule{Keyword: keyword, AccountName: account})
	}

	ledgerSvc, repo, err := openLedger()
	if err != nil {
		return err
	}
	defer repo.Close()

	svc := importsvc.NewService(ledgerSvc, categorization.NewSuggester(rules), slog.Default())

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		records, err := svc.ParseStatement(path, statement.Mapping(mapping))
		if err != nil {
			return err
		}
		for _, rec := range records {
			fmt.Printf("%s\t%s\t%s\n", rec.Date, rec.Amount, rec.Description)
		}
		fmt.Printf("%d staging records\n", len(records))
		return nil
	}

	primary, _ := cmd.Flags().GetString("account")
	balancing, _ := cmd.Flags().GetString("balancing")

	result, err := svc.Import(cmd.Context(), path, importsvc.Options{
		Mapping:                 statement.Mapping(mapping),
		DefaultPrimaryAccount:   primary,
		DefaultBalancingAccount: balancing,
	})
	if err != nil {
		return err
	}

	fmt.Printf("job %s: %d rows, %d imported, %d skipped\n",
		result.JobID, result.RowsTotal, result.RowsImported, result.RowsSkipped)
	for _, msg := range result.Errors {
		fmt.Println(" ", msg)
	}
	return nil
}

// parsePairs reads a repeatable key=value flag into a map.
func parsePairs(cmd *cobra.Command, flag string) (map[string]string, error) {
	values, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		return nil, err
	}
	pairs := make(map[string]string, len(values))
	for _, v := range values {
		key, value, found := strings.Cut(v, "=")
		if !found || key == "" || value == "" {
			return nil, fmt.Errorf("invalid --%s value %q, want key=value", flag, v)
		}
		pairs[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return pairs, nil
}
