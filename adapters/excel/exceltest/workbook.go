// Package exceltest builds .xlsx workbooks for tests.
package exceltest

import (
	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet: its tab name and rows, header first.
type Sheet struct {
	Name string
	Rows [][]interface{}
}

// Workbook writes the sheets, in order, into an .xlsx file. A nil row leaves
// a blank line.
func Workbook(sheets ...Sheet) []byte {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			must(f.SetSheetName("Sheet1", sheet.Name))
		} else {
			_, err := f.NewSheet(sheet.Name)
			must(err)
		}
		for r, row := range sheet.Rows {
			if row == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			must(err)
			values := row
			must(f.SetSheetRow(sheet.Name, cell, &values))
		}
	}

	buf, err := f.WriteToBuffer()
	must(err)
	return buf.Bytes()
}

// Results returns a workbook with the standard result columns: two groups on
// "Punten Zaterdag" (three entries, one row without a location) and one
// group on "Punten Zondag".
func Results() []byte {
	header := []interface{}{"Lokatie", "Reeks", "Naam", "Stad", "Land", "Prijscategorie"}
	return Workbook(
		Sheet{Name: "Punten Zaterdag", Rows: [][]interface{}{
			header,
			{"Zaal A", "Piano: Categorie B", "Anna", "Gent", "BE", "1 CL"},
			{"Zaal B", "Viool", "Bram", "Utrecht", "NL", 2},
			nil,
			{"Zaal A", "Piano: Categorie B", "Chloé", "Lille", "FR", "mentioned"},
			{"", "Viool", "Dirk", "Brugge", "BE", "3"},
		}},
		Sheet{Name: "Punten Zondag", Rows: [][]interface{}{
			header,
			{"Zaal C", "Cello", "Emma", "Keulen", "DE", "1 SCL"},
		}},
	)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
