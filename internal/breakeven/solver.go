package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/taxregime/internal/calculation"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver searches for the points where the Old and New regimes trade places
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve runs the search requested
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	if !req.Tolerance.IsPositive() {
		req.Tolerance = decimal.NewFromInt(1)
	}

	switch req.Target {
	case TargetIncome:
		return s.solveIncome(ctx, req)
	case TargetDeduction:
		return s.solveDeduction(ctx, req)
	}
	return nil, &BreakEvenError{
		Operation: "solve",
		Message:   fmt.Sprintf("unsupported target: %s", req.Target),
	}
}

func (s *Solver) compareAt(req Request, input domain.TaxInput) (*domain.RegimeComparison, error) {
	comparison, err := s.CalcEngine.CompareYear(input, req.Regimes, req.Options)
	if err != nil {
		return nil, &BreakEvenError{
			Operation: "compare",
			Message:   "failed to evaluate regimes",
			Cause:     err,
		}
	}
	return comparison, nil
}

// solveIncome scans a coarse income grid for the first pair of points where
// one regime is strictly cheaper and then the other, then bisects between them
func (s *Solver) solveIncome(ctx context.Context, req Request) (*Result, error) {
	withIncome := func(income decimal.Decimal) domain.TaxInput {
		in := req.Input
		in.GrossIncome = income
		return in
	}

	resolution := s.Options.GridResolution
	if resolution < 2 {
		resolution = 2
	}
	step := req.MaxIncome.Sub(req.MinIncome).Div(decimal.NewFromInt(int64(resolution - 1)))

	var (
		lo, hi       decimal.Decimal
		below, above domain.Cheaper
		bracketed    bool
	)
	for i := 0; i < resolution && !bracketed; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		income := req.MinIncome.Add(step.Mul(decimal.NewFromInt(int64(i))))
		if i == resolution-1 {
			income = req.MaxIncome
		}
		comparison, err := s.compareAt(req, withIncome(income))
		if err != nil {
			return nil, err
		}
		switch {
		case comparison.Cheaper == domain.CheaperEqual:
		case below == "":
			below, lo = comparison.Cheaper, income
		case comparison.Cheaper == below:
			lo = income
		default:
			above, hi = comparison.Cheaper, income
			bracketed = true
		}
	}

	if !bracketed {
		info := "no regime is ever strictly cheaper in the range"
		if below != "" {
			info = fmt.Sprintf("%s regime is never beaten in the range", below)
		}
		return &Result{
			Target:          TargetIncome,
			CheaperBelow:    below,
			ConvergenceInfo: info,
		}, nil
	}

	iterations := 0
	for hi.Sub(lo).GreaterThan(req.Tolerance) && iterations < req.MaxIterations {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two)
		comparison, err := s.compareAt(req, withIncome(mid))
		if err != nil {
			return nil, err
		}
		if comparison.Cheaper == below {
			lo = mid
		} else {
			hi = mid
		}
	}

	breakEven := hi.Ceil()
	comparison, err := s.compareAt(req, withIncome(breakEven))
	if err != nil {
		return nil, err
	}
	converged := !hi.Sub(lo).GreaterThan(req.Tolerance)
	s.CalcEngine.Log().Debugf("income break-even: %s after %d iterations (%s cheaper below, %s above)",
		breakEven.String(), iterations, below, above)

	return &Result{
		Target:          TargetIncome,
		Success:         converged,
		Iterations:      iterations,
		ConvergenceInfo: convergenceInfo(converged, iterations, req),
		BreakEvenIncome: &breakEven,
		CheaperBelow:    below,
		CheaperAbove:    above,
		Comparison:      comparison,
	}, nil
}

// solveDeduction bisects the extra 80C amount over [0, total income]. Old
// regime tax never rises as deductions grow, so the search is monotone.
func (s *Solver) solveDeduction(ctx context.Context, req Request) (*Result, error) {
	base := req.Input.Normalize()
	withExtra := func(extra decimal.Decimal) domain.TaxInput {
		in := base
		in.Section80C = base.Section80C.Add(extra)
		return in
	}
	oldMatches := func(c *domain.RegimeComparison) bool {
		return c.Cheaper != domain.CheaperNew
	}

	lo := decimal.Zero
	hi := base.TotalIncome()

	start, err := s.compareAt(req, withExtra(lo))
	if err != nil {
		return nil, err
	}
	if oldMatches(start) {
		zero := decimal.Zero
		return &Result{
			Target:            TargetDeduction,
			Success:           true,
			ConvergenceInfo:   "old regime already costs no more than the new regime",
			RequiredDeduction: &zero,
			Comparison:        start,
		}, nil
	}

	end, err := s.compareAt(req, withExtra(hi))
	if err != nil {
		return nil, err
	}
	if !oldMatches(end) {
		return &Result{
			Target:          TargetDeduction,
			ConvergenceInfo: "old regime stays dearer even when deductions cover all income",
			Comparison:      end,
		}, nil
	}

	iterations := 0
	for hi.Sub(lo).GreaterThan(req.Tolerance) && iterations < req.MaxIterations {
		iterations++

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		mid := lo.Add(hi).Div(two)
		comparison, err := s.compareAt(req, withExtra(mid))
		if err != nil {
			return nil, err
		}
		if oldMatches(comparison) {
			hi = mid
		} else {
			lo = mid
		}
	}

	required := hi.Ceil()
	comparison, err := s.compareAt(req, withExtra(required))
	if err != nil {
		return nil, err
	}
	converged := !hi.Sub(lo).GreaterThan(req.Tolerance)
	s.CalcEngine.Log().Debugf("deduction break-even: %s after %d iterations", required.String(), iterations)

	return &Result{
		Target:            TargetDeduction,
		Success:           converged,
		Iterations:        iterations,
		ConvergenceInfo:   convergenceInfo(converged, iterations, req),
		RequiredDeduction: &required,
		CheaperBelow:      domain.CheaperNew,
		CheaperAbove:      comparison.Cheaper,
		Comparison:        comparison,
	}, nil
}

func convergenceInfo(converged bool, iterations int, req Request) string {
	if converged {
		return fmt.Sprintf("Bisection converged within ₹%s after %d iterations", req.Tolerance.String(), iterations)
	}
	return fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
}
