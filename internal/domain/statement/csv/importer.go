// Package csv imports tabular bank exports using a caller-supplied column
// mapping. It is deliberately simple: column remapping plus date/amount
// normalization, with the same staging output as the PDF pipeline.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/FACorreiaa/penny-ledger/internal/domain/statement"
)

// ErrFileNotFound indicates the statement path does not exist.
var ErrFileNotFound = errors.New("statement file not found")

// ExtractTransactions reads a CSV export and returns staging records in file
// order. Rows whose text normalizes to a balance brought/carried forward
// marker are skipped; rows with unparseable dates keep an empty date so the
// review step can fix them by hand.
func ExtractTransactions(path string, mapping statement.Mapping) ([]statement.StagingRecord, error) {
	if err := mapping.Validate(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("open statement: %w", err)
	}
	defer f.Close()

	return extract(f, mapping)
}

func extract(r io.Reader, mapping statement.Mapping) ([]statement.StagingRecord, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var records []statement.StagingRecord
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		if out, ok := statement.MapRow(record, index, mapping); ok {
			records = append(records, out)
		}
	}
	return records, nil
}
