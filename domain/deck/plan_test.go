package deck

import (
	"strings"
	"testing"

	"prizedeck/domain/results"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

type upperNamer map[string]string

func (n upperNamer) Name(code string) string {
	if name, ok := n[strings.ToUpper(code)]; ok {
		return name
	}
	return code
}

var namer = upperNamer{"BE": "Belgium", "NL": "Netherlands"}

func TestPlanner_Plan(t *testing.T) {
	groups := []results.Group{
		{
			Location: "Zaal A",
			Category: "Piano: Category B",
			Entries: []results.Entry{
				{Row: 2, Name: "Anna", City: "Gent", CountryCode: "be", PrizeCode: "1 CL"},
				{Row: 3, Name: "Bram", City: "Utrecht", CountryCode: "NL", PrizeCode: "mentioned"},
			},
		},
	}

	plan := NewPlanner(nil, namer).Plan(groups)

	want := Plan{
		{Kind: KindHeader, Placeholders: map[int]string{21: "Zaal A", 1: "Piano: Category B"}},
		{Kind: KindParticipant, Row: 2, Placeholders: map[int]string{
			1: "", 21: "Gent", 22: "Belgium", 23: "Piano\nCategory B", 24: "Anna",
		}},
		{Kind: KindParticipant, Row: 2, Placeholders: map[int]string{
			1: "FIRST PRIZE\nCUM LAUDE", 21: "Gent", 22: "Belgium", 23: "Piano\nCategory B", 24: "Anna",
		}},
		{Kind: KindParticipant, Row: 3, Placeholders: map[int]string{
			1: "", 21: "Utrecht", 22: "Netherlands", 23: "Piano\nCategory B", 24: "Bram",
		}},
		{Kind: KindParticipant, Row: 3, Placeholders: map[int]string{
			1: "MENTIONED", 21: "Utrecht", 22: "Netherlands", 23: "Piano\nCategory B", 24: "Bram",
		}},
	}

	if diff := cmp.Diff(want, plan); diff != "" {
		t.Errorf("plan mismatch (-want +got):\n%s", diff)
	}
}

func TestPlanner_SlideCounts(t *testing.T) {
	entries := []results.Entry{
		{Row: 2, Location: "A", Category: "X", Name: "1"},
		{Row: 3, Location: "B", Category: "X", Name: "2"},
		{Row: 4, Location: "A", Category: "X", Name: "3"},
		{Row: 5, Location: "A", Category: "Y", Name: "4"},
		{Row: 6, Location: "", Category: "Y", Name: "5"},
	}
	groups := results.GroupEntries(entries)

	plan := NewPlanner(nil, namer).Plan(groups)

	assert.Equal(t, 3, plan.Count(KindHeader))
	assert.Equal(t, 8, plan.Count(KindParticipant))
	assert.Len(t, plan, len(groups)+2*results.CountEntries(groups))

	// every header is directly followed by its group's participant slides
	pos := 0
	for _, g := range groups {
		assert.Equal(t, KindHeader, plan[pos].Kind)
		assert.Equal(t, g.Location, plan[pos].Placeholders[HeaderLocation])
		pos++
		for _, e := range g.Entries {
			assert.Equal(t, e.Name, plan[pos].Placeholders[ParticipantName])
			assert.Equal(t, "", plan[pos].Placeholders[ParticipantPrize])
			assert.Equal(t, e.Name, plan[pos+1].Placeholders[ParticipantName])
			pos += 2
		}
	}
}

func TestPlanner_CustomLabels(t *testing.T) {
	labels := results.DefaultLabels()
	labels.Prizes["GP"] = "GRAND PRIX"

	groups := []results.Group{{
		Location: "Zaal A",
		Category: "Viool",
		Entries:  []results.Entry{{Row: 2, Name: "Anna", CountryCode: "XX", PrizeCode: "GP"}},
	}}

	plan := NewPlanner(labels, namer).Plan(groups)

	assert.Equal(t, "GRAND PRIX", plan[2].Placeholders[ParticipantPrize])
	assert.Equal(t, "XX", plan[2].Placeholders[ParticipantCountry])
	assert.Equal(t, "Viool", plan[2].Placeholders[ParticipantCategory])
}

func TestPlanner_Empty(t *testing.T) {
	assert.Empty(t, NewPlanner(nil, namer).Plan(nil))
}
