// Package cli implements the ledger command-line shell.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/penny-ledger/internal/domain/ledger"
	"github.com/FACorreiaa/penny-ledger/pkg/config"
)

var rootCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Personal double-entry finance ledger",
	Long: `penny-ledger maintains a double-entry accounting ledger and imports
bank statement exports (PDF, CSV, XLSX) into it. Imported rows are staged,
resolved to ledger accounts, and booked as balanced transactions.`,
	SilenceUsage: true,
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}

// openLedger loads configuration and opens the ledger store. The caller
// closes the repository.
func openLedger() (*ledger.Service, *ledger.SQLiteRepository, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.Logging.Level)
	slog.SetDefault(logger)

	repo, err := ledger.NewSQLiteRepository(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open ledger store: %w", err)
	}
	return ledger.NewService(repo, logger), repo, nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
