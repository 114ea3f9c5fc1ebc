// Package results models the rows of a competition results sheet and the
// code tables used to turn them into slide text.
package results

import "strings"

// Entry is one result row of the selected sheet.
type Entry struct {
	Row         int // 1-based sheet row, for logs
	Location    string
	Category    string
	Name        string
	City        string
	CountryCode string
	PrizeCode   string
}

// HasGroupKey reports whether the entry can be placed in a group.
func (e Entry) HasGroupKey() bool {
	return strings.TrimSpace(e.Location) != "" && strings.TrimSpace(e.Category) != ""
}

type groupKey struct {
	Location string
	Category string
}

// Group is every entry sharing a location and category, in sheet order.
type Group struct {
	Location string
	Category string
	Entries  []Entry
}

// GroupEntries groups entries by (location, category). Groups are returned in
// order of first appearance and entries keep their relative order. Entries
// without a location or category are dropped; use Skipped to report them.
func GroupEntries(entries []Entry) []Group {
	var groups []Group
	index := make(map[groupKey]int)

	for _, entry := range entries {
		if !entry.HasGroupKey() {
			continue
		}
		key := groupKey{Location: entry.Location, Category: entry.Category}
		pos, ok := index[key]
		if !ok {
			pos = len(groups)
			index[key] = pos
			groups = append(groups, Group{Location: entry.Location, Category: entry.Category})
		}
		groups[pos].Entries = append(groups[pos].Entries, entry)
	}

	return groups
}

// Skipped returns the entries GroupEntries drops.
func Skipped(entries []Entry) []Entry {
	var skipped []Entry
	for _, entry := range entries {
		if !entry.HasGroupKey() {
			skipped = append(skipped, entry)
		}
	}
	return skipped
}

// CountEntries sums the entries of all groups.
func CountEntries(groups []Group) int {
	total := 0
	for _, g := range groups {
		total += len(g.Entries)
	}
	return total
}
