package results

// Preview is the tabular view of a sheet shown before generating a deck.
type Preview struct {
	Sheet     string
	Headers   []string
	Rows      [][]string
	TotalRows int
	Truncated bool
}
