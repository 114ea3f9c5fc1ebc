package excel

import "prizedeck/internal/config"

// Columns names the header cells holding each result field
type Columns struct {
	Location string
	Category string
	Name     string
	City     string
	Country  string
	Prize    string
}

// DefaultColumns returns the column names of the results workbook
func DefaultColumns() Columns {
	return Columns{
		Location: "Lokatie",
		Category: "Reeks",
		Name:     "Naam",
		City:     "Stad",
		Country:  "Land",
		Prize:    "Prijscategorie",
	}
}

// ColumnsFromConfig maps the environment column settings
func ColumnsFromConfig(cfg config.ColumnConfig) Columns {
	return Columns{
		Location: cfg.Location,
		Category: cfg.Category,
		Name:     cfg.Name,
		City:     cfg.City,
		Country:  cfg.Country,
		Prize:    cfg.Prize,
	}
}
