package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/taxregime/internal/calculation"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/rgehrsitz/taxregime/internal/transform"
)

// CompareEngine orchestrates profile comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseProfileName     string   // empty selects the first profile
	Templates           []string // what-if templates applied to the base profile
	AlternativeProfiles []string // other profiles from the file; empty with no templates means all of them
	Options             domain.EvaluationOptions
}

// Compare evaluates the base profile, every template applied to it and the
// requested alternative profiles against the same regime pair.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	profiles *domain.ProfileFile,
	regimes domain.YearRegimes,
	options CompareOptions,
) (*ComparisonSet, error) {
	if profiles == nil || len(profiles.Profiles) == 0 {
		return nil, fmt.Errorf("no profiles to compare")
	}

	baseProfile, err := findProfile(profiles, options.BaseProfileName)
	if err != nil {
		return nil, err
	}

	baseResult, err := ce.evaluate(baseProfile.Name, baseProfile.Input, regimes, options.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base profile: %w", err)
	}
	baseResult.Description = baseProfile.Description

	alternatives := []ComparisonResult{}

	for _, templateName := range options.Templates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found", templateName)
		}

		modified, err := transform.ApplyTemplate(baseProfile.Input, template)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}

		altResult, err := ce.evaluate(baseProfile.Name+"_"+template.Name, modified, regimes, options.Options)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate template %s: %w", templateName, err)
		}
		altResult.Description = template.Description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	names := options.AlternativeProfiles
	if len(names) == 0 && len(options.Templates) == 0 {
		for _, p := range profiles.Profiles {
			if p.Name != baseProfile.Name {
				names = append(names, p.Name)
			}
		}
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		profile, err := findProfile(profiles, name)
		if err != nil {
			return nil, err
		}

		altResult, err := ce.evaluate(profile.Name, profile.Input, regimes, options.Options)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate profile %s: %w", name, err)
		}
		altResult.Description = profile.Description
		alternatives = append(alternatives, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseProfileName:    baseProfile.Name,
		AssessmentYear:     baseResult.Comparison.New.AssessmentYear,
		BaseResult:         &baseResult,
		AlternativeResults: alternatives,
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) evaluate(name string, input domain.TaxInput, regimes domain.YearRegimes, opts domain.EvaluationOptions) (ComparisonResult, error) {
	comparison, err := ce.CalcEngine.CompareYear(input, regimes, opts)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateMetrics(name, comparison), nil
}

func findProfile(profiles *domain.ProfileFile, name string) (domain.Profile, error) {
	if name == "" {
		return profiles.Profiles[0], nil
	}
	for _, p := range profiles.Profiles {
		if p.Name == name {
			return p, nil
		}
	}
	return domain.Profile{}, fmt.Errorf("profile %s not found", name)
}
