package ports

import (
	"context"

	"prizedeck/domain/results"
)

// ResultsSource reads competition results out of an uploaded workbook
type ResultsSource interface {
	// SheetNames lists the workbook's tabs in workbook order
	SheetNames(ctx context.Context, workbook []byte) ([]string, error)

	// Entries maps every non-blank row of the sheet to an entry
	Entries(ctx context.Context, workbook []byte, sheet string) ([]results.Entry, error)

	// Preview returns the sheet's header and at most limit rows
	Preview(ctx context.Context, workbook []byte, sheet string, limit int) (*results.Preview, error)
}
