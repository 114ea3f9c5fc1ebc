package excel

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"prizedeck/domain/results"
	"prizedeck/internal/errors"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// DataReader reads result sheets from an uploaded workbook
type DataReader struct {
	log *zap.Logger
}

// NewDataReader creates a new workbook reader
func NewDataReader(log *zap.Logger) *DataReader {
	if log == nil {
		log = zap.NewNop()
	}
	return &DataReader{log: log.Named("excel")}
}

func (r *DataReader) open(data []byte) (*excelize.File, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.InvalidInput(err.Error()), "failed to open workbook")
	}
	return f, nil
}

// SheetNames lists the workbook's sheets in workbook order
func (r *DataReader) SheetNames(data []byte) ([]string, error) {
	f, err := r.open(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.InvalidInput("workbook has no sheets")
	}
	return sheets, nil
}

// ReadSheet reads one sheet into header-keyed rows. The first non-blank row
// is the header; entirely blank rows are dropped.
func (r *DataReader) ReadSheet(data []byte, sheet string) (*SheetData, error) {
	startTime := time.Now()

	f, err := r.open(data)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, errors.NotFound(fmt.Sprintf("sheet %q", sheet))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %q", sheet)
	}

	sheetData := processRows(sheet, rows)

	r.log.Debug("Sheet read",
		zap.String("sheet", sheet),
		zap.Int("columns", len(sheetData.Headers)),
		zap.Int("rows", len(sheetData.Rows)),
		zap.Duration("elapsed", time.Since(startTime)))

	return sheetData, nil
}

// processRows converts raw string rows into SheetData format. Header names are
// trimmed, cell values are kept as written.
func processRows(sheet string, rows [][]string) *SheetData {
	sheetData := &SheetData{Sheet: sheet}

	start := 0
	for start < len(rows) && isBlank(rows[start]) {
		start++
	}
	if start == len(rows) {
		return sheetData
	}

	headerRow := rows[start]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.TrimSpace(header)
	}
	sheetData.Headers = headers

	for i := start + 1; i < len(rows); i++ {
		if isBlank(rows[i]) {
			continue
		}

		rowData := make(RawRowData)
		for j, cell := range rows[i] {
			if j >= len(headers) || headers[j] == "" {
				continue
			}
			if _, seen := rowData[headers[j]]; !seen {
				rowData[headers[j]] = cell
			}
		}

		sheetData.Rows = append(sheetData.Rows, rowData)
		sheetData.RowNums = append(sheetData.RowNums, i+1)
	}

	return sheetData
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// HasColumn reports whether the sheet header contains name
func (d *SheetData) HasColumn(name string) bool {
	for _, header := range d.Headers {
		if header == name {
			return true
		}
	}
	return false
}

// Entries maps the rows onto result entries. Columns other than location and
// category may be absent; their fields stay empty.
func (d *SheetData) Entries(columns Columns) ([]results.Entry, error) {
	for _, required := range []string{columns.Location, columns.Category} {
		if !d.HasColumn(required) {
			return nil, errors.InvalidInput(fmt.Sprintf("sheet %q has no %q column", d.Sheet, required))
		}
	}

	entries := make([]results.Entry, 0, len(d.Rows))
	for i, row := range d.Rows {
		entries = append(entries, results.Entry{
			Row:         d.RowNums[i],
			Location:    row[columns.Location],
			Category:    row[columns.Category],
			Name:        row[columns.Name],
			City:        row[columns.City],
			CountryCode: row[columns.Country],
			PrizeCode:   row[columns.Prize],
		})
	}
	return entries, nil
}

// Preview returns the header and up to limit rows in header order. A
// non-positive limit returns every row.
func (d *SheetData) Preview(limit int) *results.Preview {
	preview := &results.Preview{
		Sheet:     d.Sheet,
		Headers:   d.Headers,
		TotalRows: len(d.Rows),
	}

	rows := d.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
		preview.Truncated = true
	}

	for _, row := range rows {
		cells := make([]string, len(d.Headers))
		for i, header := range d.Headers {
			cells[i] = row[header]
		}
		preview.Rows = append(preview.Rows, cells)
	}
	return preview
}
