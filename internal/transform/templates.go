package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

// Section80CLimit is the statutory ceiling on Section 80C claims
var Section80CLimit = decimal.NewFromInt(150000)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []InputTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a registry with common what-if edits
func CreateBuiltInTemplates() *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "max_80c",
		Description: "Invest up to the ₹1,50,000 Section 80C limit",
		Transforms:  []InputTransform{&RaiseSection80C{Limit: Section80CLimit}},
	})
	registry.Register(Template{
		Name:        "health_cover",
		Description: "Buy ₹25,000 of health insurance (Section 80D)",
		Transforms:  []InputTransform{&SetSection80D{Amount: decimal.NewFromInt(25000)}},
	})
	registry.Register(Template{
		Name:        "family_health_cover",
		Description: "Insure self and senior parents, ₹75,000 under Section 80D",
		Transforms:  []InputTransform{&SetSection80D{Amount: decimal.NewFromInt(75000)}},
	})

	registry.Register(Template{
		Name:        "raise_10",
		Description: "10% pay rise",
		Transforms:  []InputTransform{&AdjustIncome{Percent: decimal.NewFromInt(10)}},
	})
	registry.Register(Template{
		Name:        "raise_25",
		Description: "25% pay rise",
		Transforms:  []InputTransform{&AdjustIncome{Percent: decimal.NewFromInt(25)}},
	})

	registry.Register(Template{
		Name:        "no_rent",
		Description: "Move to an owned or family home (no rent)",
		Transforms:  []InputTransform{&SetRent{Annual: decimal.Zero}},
	})

	registry.Register(Template{
		Name:        "senior",
		Description: "Evaluate as a senior citizen (age 60)",
		Transforms:  []InputTransform{&SetAge{Age: 60}},
	})

	registry.Register(Template{
		Name:        "all_deductions",
		Description: "Max out 80C and buy family health cover",
		Transforms: []InputTransform{
			&RaiseSection80C{Limit: Section80CLimit},
			&SetSection80D{Amount: decimal.NewFromInt(75000)},
		},
	})

	return registry
}

// ApplyTemplate applies a template to a base input
func ApplyTemplate(base domain.TaxInput, template Template) (domain.TaxInput, error) {
	return ApplyTransforms(base, template.Transforms)
}

// ParseTemplateList parses a comma-separated list of template names
func ParseTemplateList(templateList string) []string {
	if templateList == "" {
		return nil
	}

	parts := strings.Split(templateList, ",")
	templates := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			templates = append(templates, trimmed)
		}
	}
	return templates
}

// GetTemplateHelp returns formatted help text for all templates
func GetTemplateHelp(registry *TemplateRegistry) string {
	if len(registry.templates) == 0 {
		return "No templates registered"
	}

	var sb strings.Builder
	sb.WriteString("Available Templates:\n\n")

	categories := map[string][]Template{}
	for _, name := range registry.List() {
		template := registry.templates[name]
		categories[templateCategory(name)] = append(categories[templateCategory(name)], template)
	}

	for _, category := range []string{"Deductions", "Income", "Housing & Age", "Combination"} {
		templates := categories[category]
		if len(templates) == 0 {
			continue
		}

		sb.WriteString(fmt.Sprintf("%s:\n", category))
		for _, t := range templates {
			sb.WriteString(fmt.Sprintf("  %-22s %s\n", t.Name, t.Description))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Usage:\n")
	sb.WriteString("  taxregime compare profiles.yaml --base salaried --with max_80c,health_cover\n")

	return sb.String()
}

func templateCategory(name string) string {
	switch {
	case strings.HasSuffix(name, "_80c"), strings.HasSuffix(name, "health_cover"):
		return "Deductions"
	case strings.HasPrefix(name, "raise_"):
		return "Income"
	case name == "no_rent", name == "senior":
		return "Housing & Age"
	}
	return "Combination"
}
