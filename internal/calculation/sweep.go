package calculation

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxSweepPoints bounds the number of incomes a single sweep may evaluate
const MaxSweepPoints = 10000

// ErrInvalidSweep wraps every income sweep validation failure
var ErrInvalidSweep = errors.New("invalid income sweep")

// IncomeSweep describes a range of gross incomes, inclusive at both ends
type IncomeSweep struct {
	From decimal.Decimal `yaml:"from" json:"from"`
	To   decimal.Decimal `yaml:"to" json:"to"`
	Step decimal.Decimal `yaml:"step" json:"step"`
}

// Validate checks the range is ordered, the step positive and the point count bounded
func (s IncomeSweep) Validate() error {
	if s.From.IsNegative() {
		return errors.New("sweep start cannot be negative")
	}
	if s.To.LessThan(s.From) {
		return fmt.Errorf("sweep end %s is below start %s", s.To.String(), s.From.String())
	}
	if !s.Step.IsPositive() {
		return errors.New("sweep step must be positive")
	}
	if n := s.count(); n.GreaterThan(decimal.NewFromInt(MaxSweepPoints)) {
		return fmt.Errorf("sweep would evaluate %s incomes (max %d)", n.String(), MaxSweepPoints)
	}
	return nil
}

// Points is the number of incomes the sweep evaluates, saturating at math.MaxInt64
func (s IncomeSweep) Points() int64 {
	if !s.Step.IsPositive() || s.To.LessThan(s.From) {
		return 0
	}
	n := s.count()
	if n.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return math.MaxInt64
	}
	return n.IntPart()
}

func (s IncomeSweep) count() decimal.Decimal {
	return s.To.Sub(s.From).Div(s.Step).Floor().Add(decimal.NewFromInt(1))
}

// SweepPoint is one row of an income sweep
type SweepPoint struct {
	GrossIncome decimal.Decimal `json:"grossIncome"`
	OldTax      decimal.Decimal `json:"oldTax"`
	NewTax      decimal.Decimal `json:"newTax"`
	Cheaper     domain.Cheaper  `json:"cheaper"`
	Savings     decimal.Decimal `json:"savings"`
}

// Sweep compares both regimes at each gross income in the range, holding
// every other field of the base input fixed
func (ce *CalculationEngine) Sweep(ctx context.Context, base domain.TaxInput, regimes domain.YearRegimes, opts domain.EvaluationOptions, sweep IncomeSweep) ([]SweepPoint, error) {
	if err := sweep.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSweep, err)
	}
	oldRegime := regimes.Old.WithOptions(opts)
	newRegime := regimes.New.WithOptions(opts)

	points := make([]SweepPoint, 0, sweep.Points())
	for income := sweep.From; income.LessThanOrEqual(sweep.To); income = income.Add(sweep.Step) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		input := base
		input.GrossIncome = income
		oldResult, err := ce.Calculate(input, oldRegime)
		if err != nil {
			return nil, err
		}
		newResult, err := ce.Calculate(input, newRegime)
		if err != nil {
			return nil, err
		}
		points = append(points, SweepPoint{
			GrossIncome: income,
			OldTax:      oldResult.TaxPayable,
			NewTax:      newResult.TaxPayable,
			Cheaper:     CheaperOf(oldResult.TaxPayable, newResult.TaxPayable),
			Savings:     oldResult.TaxPayable.Sub(newResult.TaxPayable).Abs(),
		})
	}
	ce.Log().Debugf("income sweep evaluated %d points", len(points))
	return points, nil
}
