package excel

// RawRowData represents a row of raw Excel data as header-keyed strings
type RawRowData map[string]string

// SheetData represents one worksheet of the uploaded workbook
type SheetData struct {
	Sheet   string
	Headers []string     // Column headers, trimmed
	Rows    []RawRowData // Data rows, blank rows removed
	RowNums []int        // 1-based sheet row of each entry in Rows
}
