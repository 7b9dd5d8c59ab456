// Package excel imports XLSX bank exports with the same column-mapping
// semantics as the CSV importer.
package excel

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/FACorreiaa/penny-ledger/internal/domain/statement"
)

// ErrFileNotFound indicates the statement path does not exist.
var ErrFileNotFound = errors.New("statement file not found")

// ExtractTransactions reads the first sheet of an XLSX export: the first row
// is the header, every following row is mapped like a CSV row.
func ExtractTransactions(path string, mapping statement.Mapping) ([]statement.StagingRecord, error) {
	if err := mapping.Validate(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		index[strings.TrimSpace(name)] = i
	}

	var records []statement.StagingRecord
	for _, row := range rows[1:] {
		if out, ok := statement.MapRow(row, index, mapping); ok {
			records = append(records, out)
		}
	}
	return records, nil
}
