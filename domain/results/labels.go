package results

import (
	"os"
	"strings"

	"prizedeck/internal/errors"

	"gopkg.in/yaml.v3"
)

var defaultPrizeLabels = map[string]string{
	"1 CL":                         "FIRST PRIZE\nCUM LAUDE",
	"1 SCL":                        "FIRST PRIZE\nSUMMA CUM LAUDE",
	"1":                            "FIRST PRIZE",
	"2":                            "SECOND PRIZE",
	"3":                            "THIRD PRIZE",
	"Certificate of participation": "CERTIFICATE OF PARTICIPATION",
	"mentioned":                    "MENTIONED",
}

// Labels holds the code tables. The zero value is not usable; start from
// DefaultLabels.
type Labels struct {
	Prizes    map[string]string `yaml:"prizes"`
	Countries map[string]string `yaml:"countries"`
}

// DefaultLabels returns the built-in prize table and no country overrides.
func DefaultLabels() *Labels {
	prizes := make(map[string]string, len(defaultPrizeLabels))
	for code, label := range defaultPrizeLabels {
		prizes[code] = label
	}
	return &Labels{Prizes: prizes, Countries: map[string]string{}}
}

// LoadLabels reads a YAML labels file and merges it over the defaults.
// An empty path returns the defaults.
func LoadLabels(path string) (*Labels, error) {
	labels := DefaultLabels()
	if path == "" {
		return labels, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read labels file %s", path)
	}
	if err := labels.Merge(data); err != nil {
		return nil, errors.Wrapf(err, "failed to parse labels file %s", path)
	}
	return labels, nil
}

// Merge overlays the YAML document onto the current tables.
func (l *Labels) Merge(data []byte) error {
	var overlay Labels
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return errors.InvalidInput(err.Error())
	}
	for code, label := range overlay.Prizes {
		l.Prizes[strings.TrimSpace(code)] = label
	}
	for code, name := range overlay.Countries {
		l.Countries[strings.ToUpper(strings.TrimSpace(code))] = name
	}
	return nil
}

// TranslatePrize turns a prize code into the announcement text. Unknown codes
// are echoed trimmed; a blank code gives an empty string.
func (l *Labels) TranslatePrize(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	if label, ok := l.Prizes[code]; ok {
		return label
	}
	return code
}

// TranslatePrize uses the built-in table.
func TranslatePrize(code string) string {
	return defaultLabels.TranslatePrize(code)
}

var defaultLabels = DefaultLabels()
