package pdf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	dslipak "github.com/dslipak/pdf"

	"github.com/FACorreiaa/penny-ledger/internal/domain/statement"
)

var (
	// ErrFileNotFound indicates the statement path does not exist.
	ErrFileNotFound = errors.New("statement file not found")
	// ErrUnsupportedFileType indicates the path is not a .pdf file.
	ErrUnsupportedFileType = errors.New("not a PDF file")
)

// ExtractTransactions parses a bank statement PDF into staging records, in
// source order. The path is validated before any extraction is attempted;
// after that the run is synchronous and deterministic. Malformed blocks are
// dropped, not surfaced; an unrecognized month token aborts the whole call.
func ExtractTransactions(path string) ([]statement.StagingRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open statement: %w", err)
	}
	defer f.Close()

	r, err := dslipak.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	return extractFromDocument(pdfDocument{r: r})
}

// extractFromDocument runs the pipeline over any Document:
// extract lines, segment into blocks, build one record per block, keep only
// records with both a date and an amount.
func extractFromDocument(doc Document) ([]statement.StagingRecord, error) {
	lines, err := extractLines(doc)
	if err != nil {
		return nil, err
	}

	blocks, err := segmentLines(lines)
	if err != nil {
		return nil, err
	}

	records := make([]statement.StagingRecord, 0, len(blocks))
	for _, block := range blocks {
		record := buildRecord(block)
		if record.Complete() {
			records = append(records, record)
		}
	}
	return records, nil
}
