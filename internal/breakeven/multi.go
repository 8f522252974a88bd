package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/rgehrsitz/taxregime/internal/output"
)

// CombinedResult holds the income and deduction searches for one input
type CombinedResult struct {
	Income          *Result  `json:"income,omitempty"`
	Deduction       *Result  `json:"deduction,omitempty"`
	Recommendations []string `json:"recommendations"`
}

// SolveAll runs every target against the same input, regimes and income
// range. A failing target is logged and skipped; an error is returned only
// when no target produced a result.
func (s *Solver) SolveAll(ctx context.Context, base Request) (*CombinedResult, error) {
	combined := &CombinedResult{}
	var firstErr error

	for _, target := range []Target{TargetIncome, TargetDeduction} {
		req := base
		req.Target = target
		result, err := s.Solve(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			s.CalcEngine.Log().Warnf("break-even %s search failed: %v", target, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		switch target {
		case TargetIncome:
			combined.Income = result
		case TargetDeduction:
			combined.Deduction = result
		}
	}

	if combined.Income == nil && combined.Deduction == nil {
		return nil, &BreakEvenError{
			Operation: "solve_all",
			Message:   "no break-even search succeeded",
			Cause:     firstErr,
		}
	}
	combined.Recommendations = generateRecommendations(combined)
	return combined, nil
}

func generateRecommendations(c *CombinedResult) []string {
	var recommendations []string

	if r := c.Income; r != nil {
		if r.BreakEvenIncome != nil {
			recommendations = append(recommendations,
				fmt.Sprintf("Below %s the %s is cheaper; from there the %s wins",
					output.FormatRupees(*r.BreakEvenIncome),
					regimeLabel(r.Comparison, r.CheaperBelow),
					regimeLabel(r.Comparison, r.CheaperAbove)))
		} else if r.CheaperBelow != "" {
			recommendations = append(recommendations,
				fmt.Sprintf("The %s regime is cheaper across the whole income range", r.CheaperBelow))
		}
	}

	if r := c.Deduction; r != nil {
		switch {
		case r.RequiredDeduction == nil:
			recommendations = append(recommendations,
				"No amount of extra deductions makes the Old regime cheaper")
		case r.RequiredDeduction.IsZero():
			recommendations = append(recommendations,
				"The Old regime already costs no more than the New regime")
		default:
			recommendations = append(recommendations,
				fmt.Sprintf("Claim %s more in Section 80C deductions for the Old regime to match the New regime",
					output.FormatRupees(*r.RequiredDeduction)))
		}
	}
	return recommendations
}

func regimeLabel(c *domain.RegimeComparison, cheaper domain.Cheaper) string {
	if c != nil {
		switch cheaper {
		case domain.CheaperOld:
			return c.Old.Label
		case domain.CheaperNew:
			return c.New.Label
		}
	}
	return string(cheaper) + " regime"
}
