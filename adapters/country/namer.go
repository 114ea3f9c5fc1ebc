package country

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Namer resolves ISO 3166 alpha-2 codes to English country names.
type Namer struct {
	overrides map[string]string
	regions   display.Namer
}

// NewNamer creates a namer. Overrides are keyed by upper-case code and win
// over the built-in names.
func NewNamer(overrides map[string]string) *Namer {
	normalized := make(map[string]string, len(overrides))
	for code, name := range overrides {
		normalized[strings.ToUpper(strings.TrimSpace(code))] = name
	}
	return &Namer{
		overrides: normalized,
		regions:   display.English.Regions(),
	}
}

// Name returns the country name for code, or the trimmed code itself when it
// is not a known two-letter country code.
func (n *Namer) Name(code string) string {
	raw := strings.TrimSpace(code)
	upper := strings.ToUpper(raw)

	if name, ok := n.overrides[upper]; ok {
		return name
	}
	if len(upper) != 2 {
		return raw
	}

	region, err := language.ParseRegion(upper)
	if err != nil || !region.IsCountry() || region.String() != upper {
		return raw
	}

	name := n.regions.Name(region)
	if name == "" {
		return raw
	}
	return name
}
