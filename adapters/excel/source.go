package excel

import (
	"context"

	"prizedeck/domain/results"
)

// Source serves results from uploaded workbooks using a fixed column mapping
type Source struct {
	reader  *DataReader
	columns Columns
}

// NewSource creates a results source over reader
func NewSource(reader *DataReader, columns Columns) *Source {
	return &Source{reader: reader, columns: columns}
}

// SheetNames lists the workbook's tabs
func (s *Source) SheetNames(ctx context.Context, workbook []byte) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.reader.SheetNames(workbook)
}

// Entries reads the sheet and maps its rows using the configured columns
func (s *Source) Entries(ctx context.Context, workbook []byte, sheet string) ([]results.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.reader.ReadSheet(workbook, sheet)
	if err != nil {
		return nil, err
	}
	return data.Entries(s.columns)
}

// Preview reads the sheet and returns at most limit rows
func (s *Source) Preview(ctx context.Context, workbook []byte, sheet string, limit int) (*results.Preview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := s.reader.ReadSheet(workbook, sheet)
	if err != nil {
		return nil, err
	}
	return data.Preview(limit), nil
}
