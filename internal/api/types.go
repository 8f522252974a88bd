package api

import (
	"github.com/rgehrsitz/taxregime/internal/breakeven"
	"github.com/rgehrsitz/taxregime/internal/calculation"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// CalculateRequest evaluates one input under one regime
type CalculateRequest struct {
	AssessmentYear string                   `json:"assessmentYear"`
	Regime         string                   `json:"regime" binding:"required"`
	Input          domain.TaxInput          `json:"input"`
	Options        domain.EvaluationOptions `json:"options"`
}

// CompareRequest evaluates one input under both regimes. Transforms are
// applied to the input first, in "name:key=value" form.
type CompareRequest struct {
	AssessmentYear string                   `json:"assessmentYear"`
	Input          domain.TaxInput          `json:"input"`
	Options        domain.EvaluationOptions `json:"options"`
	Transforms     []string                 `json:"transforms,omitempty"`
	Templates      []string                 `json:"templates,omitempty"`
}

// ProfileCompareRequest compares a set of named profiles against a base
type ProfileCompareRequest struct {
	AssessmentYear      string                   `json:"assessmentYear"`
	Profiles            []domain.Profile         `json:"profiles" binding:"required"`
	BaseProfile         string                   `json:"baseProfile"`
	Templates           []string                 `json:"templates,omitempty"`
	AlternativeProfiles []string                 `json:"alternativeProfiles,omitempty"`
	Options             domain.EvaluationOptions `json:"options"`
}

// BreakEvenRequest searches for where the cheaper regime flips. An empty
// target runs every search.
type BreakEvenRequest struct {
	AssessmentYear string                   `json:"assessmentYear"`
	Target         string                   `json:"target"`
	Input          domain.TaxInput          `json:"input"`
	Options        domain.EvaluationOptions `json:"options"`
	MinIncome      decimal.Decimal          `json:"minIncome"`
	MaxIncome      decimal.Decimal          `json:"maxIncome"`
}

// SweepRequest compares both regimes across a gross income range
type SweepRequest struct {
	AssessmentYear string                   `json:"assessmentYear"`
	Input          domain.TaxInput          `json:"input"`
	Options        domain.EvaluationOptions `json:"options"`
	Sweep          calculation.IncomeSweep  `json:"sweep"`
}

// ReportRequest renders a comparison with one of the output formatters
type ReportRequest struct {
	AssessmentYear string                   `json:"assessmentYear"`
	ProfileName    string                   `json:"profileName"`
	Input          domain.TaxInput          `json:"input"`
	Options        domain.EvaluationOptions `json:"options"`
}

// RegimesResponse lists what the loaded dataset offers
type RegimesResponse struct {
	DefaultYear string                   `json:"defaultYear"`
	Years       []string                 `json:"years"`
	Metadata    domain.RegimeSetMetadata `json:"metadata"`
}

// SweepResponse wraps sweep points with their range
type SweepResponse struct {
	AssessmentYear string                   `json:"assessmentYear"`
	Sweep          calculation.IncomeSweep  `json:"sweep"`
	Points         []calculation.SweepPoint `json:"points"`
}

// BreakEvenResponse carries either a single search or all of them
type BreakEvenResponse struct {
	AssessmentYear string                    `json:"assessmentYear"`
	Result         *breakeven.Result         `json:"result,omitempty"`
	Combined       *breakeven.CombinedResult `json:"combined,omitempty"`
}
