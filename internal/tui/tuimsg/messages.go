// Package tuimsg holds the messages scenes send to the root model. It is
// separate from the tui package to avoid import cycles.
package tuimsg

import (
	"github.com/rgehrsitz/taxregime/internal/breakeven"
	"github.com/rgehrsitz/taxregime/internal/calculation"
	"github.com/rgehrsitz/taxregime/internal/domain"
)

// CalculateRequestedMsg asks the root model to compare both regimes
type CalculateRequestedMsg struct {
	Input   domain.TaxInput
	Options domain.EvaluationOptions
}

// CalculationCompleteMsg carries a finished comparison
type CalculationCompleteMsg struct {
	Comparison *domain.RegimeComparison
	Err        error
}

// SweepRequestedMsg asks for a sweep and break-even search around the current input
type SweepRequestedMsg struct{}

// SweepCompleteMsg carries the sweep points and the income break-even
type SweepCompleteMsg struct {
	Points    []calculation.SweepPoint
	BreakEven *breakeven.Result
	Err       error
}
