package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

// Target defines what quantity the solver searches for
type Target string

const (
	// TargetIncome finds the gross income at which the cheaper regime changes
	TargetIncome Target = "income"
	// TargetDeduction finds the extra Old-regime deduction needed to match the New regime
	TargetDeduction Target = "deduction"
)

// ParseTarget accepts "income" or "deduction"
func ParseTarget(s string) (Target, error) {
	switch Target(s) {
	case TargetIncome, TargetDeduction:
		return Target(s), nil
	}
	return "", &BreakEvenError{
		Operation: "parse_target",
		Message:   fmt.Sprintf("unsupported target %q (valid: income, deduction)", s),
	}
}

// Request defines the parameters for a break-even search
type Request struct {
	Target  Target                   `json:"target"`
	Input   domain.TaxInput          `json:"input"`
	Regimes domain.YearRegimes       `json:"-"`
	Options domain.EvaluationOptions `json:"options"`

	// Income search range; only used by TargetIncome
	MinIncome decimal.Decimal `json:"minIncome"`
	MaxIncome decimal.Decimal `json:"maxIncome"`

	MaxIterations int             `json:"maxIterations,omitempty"` // zero uses the solver default
	Tolerance     decimal.Decimal `json:"tolerance,omitempty"`     // zero uses the solver default
}

// Validate checks the request is internally consistent
func (r *Request) Validate() error {
	switch r.Target {
	case TargetIncome:
		if r.MinIncome.IsNegative() {
			return &BreakEvenError{Operation: "validate_request", Message: "min income cannot be negative"}
		}
		if !r.MaxIncome.GreaterThan(r.MinIncome) {
			return &BreakEvenError{Operation: "validate_request", Message: "max income must exceed min income"}
		}
	case TargetDeduction:
		if !r.Input.Normalize().TotalIncome().IsPositive() {
			return &BreakEvenError{Operation: "validate_request", Message: "income must be positive to search for a deduction"}
		}
	default:
		return &BreakEvenError{Operation: "validate_request", Message: fmt.Sprintf("unsupported target: %s", r.Target)}
	}
	if r.MaxIterations < 0 {
		return &BreakEvenError{Operation: "validate_request", Message: "max iterations cannot be negative"}
	}
	if r.Tolerance.IsNegative() {
		return &BreakEvenError{Operation: "validate_request", Message: "tolerance cannot be negative"}
	}
	return nil
}

// Result contains the outcome of a break-even search
type Result struct {
	Target          Target `json:"target"`
	Success         bool   `json:"success"`
	Iterations      int    `json:"iterations"`
	ConvergenceInfo string `json:"convergenceInfo"`

	// BreakEvenIncome is the lowest gross income, in whole rupees, at which
	// CheaperBelow stops being strictly cheaper
	BreakEvenIncome *decimal.Decimal `json:"breakEvenIncome,omitempty"`
	CheaperBelow    domain.Cheaper   `json:"cheaperBelow,omitempty"`
	CheaperAbove    domain.Cheaper   `json:"cheaperAbove,omitempty"`

	// RequiredDeduction is the smallest extra Old-regime deduction, in whole
	// rupees, at which the Old regime costs no more than the New regime
	RequiredDeduction *decimal.Decimal `json:"requiredDeduction,omitempty"`

	// Comparison evaluated at the break-even point
	Comparison *domain.RegimeComparison `json:"comparison,omitempty"`
}

// DefaultMaxIncome is the income search ceiling when a caller gives none
var DefaultMaxIncome = decimal.NewFromInt(5000000)

// WithDefaultRange fills an unset income range with 0..DefaultMaxIncome
func (r Request) WithDefaultRange() Request {
	if r.MinIncome.IsZero() && r.MaxIncome.IsZero() {
		r.MaxIncome = DefaultMaxIncome
	}
	return r
}

// SolverOptions configures the solver
type SolverOptions struct {
	GridResolution int             // income grid points scanned to bracket a crossing
	Tolerance      decimal.Decimal // bisection stops once the bracket is this narrow
	MaxIterations  int             // bisection iterations
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		GridResolution: 50,
		Tolerance:      decimal.NewFromInt(1), // one rupee
		MaxIterations:  100,
	}
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
