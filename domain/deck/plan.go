// Package deck turns grouped results into an ordered slide plan. It knows
// which placeholder receives which text but nothing about the file format.
package deck

import (
	"prizedeck/domain/results"
)

// SlideKind selects the template layout a slide is built from.
type SlideKind string

const (
	KindHeader      SlideKind = "header"
	KindParticipant SlideKind = "participant"
)

// Placeholder indices of the header layout.
const (
	HeaderCategory = 1
	HeaderLocation = 21
)

// Placeholder indices of the participant layout.
const (
	ParticipantPrize    = 1
	ParticipantCity     = 21
	ParticipantCountry  = 22
	ParticipantCategory = 23
	ParticipantName     = 24
)

// Slide is one planned slide: the layout kind and the text per placeholder.
type Slide struct {
	Kind         SlideKind      `json:"kind"`
	Placeholders map[int]string `json:"placeholders"`
	Row          int            `json:"row,omitempty"` // source sheet row, 0 for header slides
}

// Plan is the ordered list of slides to append to the template.
type Plan []Slide

// Count returns the number of slides of the given kind.
func (p Plan) Count(kind SlideKind) int {
	n := 0
	for _, s := range p {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

// CountryNamer resolves a country code to a display name.
type CountryNamer interface {
	Name(code string) string
}

// Planner builds slide plans.
type Planner struct {
	labels    *results.Labels
	countries CountryNamer
}

// NewPlanner creates a planner. A nil labels table uses the defaults.
func NewPlanner(labels *results.Labels, countries CountryNamer) *Planner {
	if labels == nil {
		labels = results.DefaultLabels()
	}
	return &Planner{labels: labels, countries: countries}
}

// Plan emits, per group, one header slide followed by a plain and a prize
// slide for every entry.
func (p *Planner) Plan(groups []results.Group) Plan {
	plan := make(Plan, 0, len(groups)+2*results.CountEntries(groups))

	for _, group := range groups {
		plan = append(plan, Slide{
			Kind: KindHeader,
			Placeholders: map[int]string{
				HeaderLocation: group.Location,
				HeaderCategory: group.Category,
			},
		})

		category := results.FormatCategory(group.Category)
		for _, entry := range group.Entries {
			country := p.countries.Name(entry.CountryCode)

			plain := p.participant(entry, category, country, "")
			prize := p.participant(entry, category, country, p.labels.TranslatePrize(entry.PrizeCode))
			plan = append(plan, plain, prize)
		}
	}

	return plan
}

func (p *Planner) participant(entry results.Entry, category, country, prize string) Slide {
	return Slide{
		Kind: KindParticipant,
		Row:  entry.Row,
		Placeholders: map[int]string{
			ParticipantPrize:    prize,
			ParticipantCity:     entry.City,
			ParticipantCountry:  country,
			ParticipantCategory: category,
			ParticipantName:     entry.Name,
		},
	}
}
