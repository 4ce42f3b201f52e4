package game

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// EquivalenceRow is one fraction / decimal / percent triple.
type EquivalenceRow struct {
	Fraction string `yaml:"fraction" json:"fraction"`
	Decimal  string `yaml:"decimal" json:"decimal"`
	Percent  string `yaml:"percent" json:"percent"`
}

// Value returns the member of the row with the given type.
func (r EquivalenceRow) Value(t ItemType) string {
	switch t {
	case TypeFraction:
		return r.Fraction
	case TypeDecimal:
		return r.Decimal
	case TypePercent:
		return r.Percent
	default:
		return ""
	}
}

// FractionLevel configures one level of the fraction table. An empty Fixed
// column means the mixed mode, graded row by row.
type FractionLevel struct {
	Level        int        `yaml:"level" json:"level"`
	Fixed        ItemType   `yaml:"fixed,omitempty" json:"fixed,omitempty"`
	Answers      []ItemType `yaml:"answers" json:"answers"`
	Description  string     `yaml:"description" json:"description"`
	Instructions string     `yaml:"instructions" json:"instructions"`
	Hint         string     `yaml:"hint" json:"hint"`
}

func (l FractionLevel) Mixed() bool { return l.Fixed == "" }

type FractionCatalog struct {
	Rounds int              `yaml:"rounds" json:"rounds"`
	Rows   []EquivalenceRow `yaml:"rows" json:"rows"`
	Levels []FractionLevel  `yaml:"levels" json:"levels"`
}

type TimesCatalog struct {
	Min             int    `yaml:"min" json:"min"`
	Max             int    `yaml:"max" json:"max"`
	Completions     int    `yaml:"completions" json:"completions"`
	Instructions    string `yaml:"instructions" json:"instructions"`
	Hint            string `yaml:"hint" json:"hint"`
	Congratulations string `yaml:"congratulations" json:"congratulations"`
}

// Catalog is the level content of both games.
type Catalog struct {
	Fraction FractionCatalog `yaml:"fraction" json:"fraction"`
	Times    TimesCatalog    `yaml:"times" json:"times"`
}

// DefaultCatalog parses the embedded level content.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// ParseCatalog decodes and validates level content.
func ParseCatalog(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) Validate() error {
	f := c.Fraction
	if len(f.Rows) == 0 {
		return ConfigError{What: "fraction catalog", Reason: "no equivalence rows"}
	}
	if len(f.Levels) == 0 {
		return ConfigError{What: "fraction catalog", Reason: "no levels"}
	}
	if f.Rounds < 1 {
		return ConfigError{What: "fraction catalog", Reason: "rounds must be >= 1"}
	}
	seen := map[string]bool{}
	for i, r := range f.Rows {
		for _, t := range []ItemType{TypeFraction, TypeDecimal, TypePercent} {
			v := strings.TrimSpace(r.Value(t))
			if v == "" {
				return ConfigError{What: "fraction catalog", Reason: fmt.Sprintf("row %d has no %s", i+1, t)}
			}
			if seen[v] {
				return ConfigError{What: "fraction catalog", Reason: "duplicate value " + v}
			}
			seen[v] = true
		}
	}
	for i, l := range f.Levels {
		if l.Level != i+1 {
			return ConfigError{What: "fraction catalog", Reason: fmt.Sprintf("level %d out of order", l.Level)}
		}
		if len(l.Answers) == 0 {
			return ConfigError{What: "fraction catalog", Reason: fmt.Sprintf("level %d has no answer columns", l.Level)}
		}
		for _, a := range l.Answers {
			if a == l.Fixed {
				return ConfigError{What: "fraction catalog", Reason: fmt.Sprintf("level %d answers its fixed column", l.Level)}
			}
		}
	}

	t := c.Times
	if t.Min < 1 || t.Max < t.Min {
		return ConfigError{What: "times catalog", Reason: fmt.Sprintf("bad table range %d..%d", t.Min, t.Max)}
	}
	if t.Completions < 1 {
		return ConfigError{What: "times catalog", Reason: "completions must be >= 1"}
	}
	return nil
}

// FractionLevel returns the config of level n (1-based).
func (c *Catalog) FractionLevel(n int) (FractionLevel, error) {
	if n < 1 || n > len(c.Fraction.Levels) {
		return FractionLevel{}, NotFoundError{Kind: "fraction level", ID: fmt.Sprint(n)}
	}
	return c.Fraction.Levels[n-1], nil
}

// HasTable reports whether n is a playable times table.
func (c *Catalog) HasTable(n int) bool {
	return n >= c.Times.Min && n <= c.Times.Max
}
