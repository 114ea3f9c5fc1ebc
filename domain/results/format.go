package results

import "strings"

// FormatCategory puts the part after the first colon on its own line:
// "Piano: Category B" becomes "Piano\nCategory B".
func FormatCategory(category string) string {
	head, tail, found := strings.Cut(category, ":")
	if !found {
		return category
	}
	return strings.TrimSpace(head) + "\n" + strings.TrimSpace(tail)
}

// DayFromSheet derives the competition day from a sheet name such as
// "Punten Zaterdag".
func DayFromSheet(sheet, prefix string) string {
	if prefix == "" {
		return sheet
	}
	return strings.ReplaceAll(sheet, prefix, "")
}
