package contact

import (
	_ "embed"
	"errors"
	"fmt"
	"html"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/agencysite/pkg/sanitizer"
	"github.com/dmitrymomot/agencysite/pkg/validator"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog lists the services and budget ranges offered in the form selects.
type Catalog struct {
	Services []string `yaml:"services" json:"services"`
	Budgets  []string `yaml:"budgets" json:"budgets"`
}

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// LoadCatalog reads a YAML catalog from path. An empty path yields the
// built-in catalog.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, errors.Join(ErrInvalidCatalog, err)
	}
	return ParseCatalog(raw)
}

// ParseCatalog decodes and validates a YAML catalog. Labels are served to
// the page verbatim, so any markup in them is stripped and blank entries are
// dropped.
func ParseCatalog(raw []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Catalog{}, errors.Join(ErrInvalidCatalog, err)
	}
	c.Services = cleanLabels(c.Services)
	c.Budgets = cleanLabels(c.Budgets)
	if len(c.Services) == 0 {
		return Catalog{}, fmt.Errorf("%w: no services", ErrInvalidCatalog)
	}
	if len(c.Budgets) == 0 {
		return Catalog{}, fmt.Errorf("%w: no budgets", ErrInvalidCatalog)
	}
	return c, nil
}

// HasService reports whether s is one of the offered services.
func (c Catalog) HasService(s string) bool {
	return slices.Contains(c.Services, s)
}

// HasBudget reports whether b is one of the offered budget ranges.
func (c Catalog) HasBudget(b string) bool {
	return slices.Contains(c.Budgets, b)
}

// Check rejects a stored form whose service or budget is not offered. Empty
// values are left to the required rules.
func (c Catalog) Check(f Form) validator.ValidationErrors {
	var verrs validator.ValidationErrors
	if f.Service != "" && !c.HasService(html.UnescapeString(f.Service)) {
		verrs.Add(validator.ValidationError{Field: string(FieldService), Message: "Unknown service"})
	}
	if f.Budget != "" && !c.HasBudget(html.UnescapeString(f.Budget)) {
		verrs.Add(validator.ValidationError{Field: string(FieldBudget), Message: "Unknown budget range"})
	}
	return verrs
}

func cleanLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, label := range labels {
		if label = sanitizer.StripTags(label); label != "" {
			out = append(out, label)
		}
	}
	return out
}
