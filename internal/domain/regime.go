package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// RegimeName identifies one of the two statutory regimes
type RegimeName string

const (
	RegimeOld RegimeName = "old"
	RegimeNew RegimeName = "new"
)

// ParseRegimeName accepts "old" or "new"
func ParseRegimeName(s string) (RegimeName, error) {
	switch RegimeName(s) {
	case RegimeOld, RegimeNew:
		return RegimeName(s), nil
	}
	return "", fmt.Errorf("%w: %q (valid: old, new)", ErrUnknownRegime, s)
}

// AgeBand raises the first slab's upper bound (basic exemption) from MinAge onwards
type AgeBand struct {
	MinAge              int             `yaml:"min_age" json:"minAge"`
	FirstSlabUpperBound decimal.Decimal `yaml:"first_slab_upper_bound" json:"firstSlabUpperBound"`
}

// RegimeConfig describes one regime's rules for one assessment year.
// It is treated as an immutable value: derived configs are always fresh copies.
type RegimeConfig struct {
	Name                     RegimeName      `yaml:"name" json:"name"`
	Label                    string          `yaml:"label" json:"label"`
	AssessmentYear           string          `yaml:"assessment_year" json:"assessmentYear"`
	Slabs                    SlabTable       `yaml:"slabs" json:"slabs"`
	StandardDeduction        decimal.Decimal `yaml:"standard_deduction" json:"standardDeduction"`
	AllowsItemizedDeductions bool            `yaml:"allows_itemized_deductions" json:"allowsItemizedDeductions"`
	RebateEnabled            bool            `yaml:"rebate_enabled" json:"rebateEnabled"`
	RebateThreshold          decimal.Decimal `yaml:"rebate_threshold" json:"rebateThreshold"`
	AgeBands                 []AgeBand       `yaml:"age_bands,omitempty" json:"ageBands,omitempty"`
}

// EvaluationOptions mirror the switches a user can flip before calculating
type EvaluationOptions struct {
	DisableStandardDeduction bool `yaml:"disable_standard_deduction" json:"disableStandardDeduction"`
	DisableRebate            bool `yaml:"disable_rebate" json:"disableRebate"`
}

// DisplayName returns the label, falling back to the regime name
func (rc RegimeConfig) DisplayName() string {
	if rc.Label != "" {
		return rc.Label
	}
	return string(rc.Name)
}

// Clone returns a deep copy of the config
func (rc RegimeConfig) Clone() RegimeConfig {
	out := rc
	out.Slabs = rc.Slabs.Clone()
	if rc.AgeBands != nil {
		out.AgeBands = append([]AgeBand(nil), rc.AgeBands...)
	}
	return out
}

// Validate fails fast on tables that would silently produce wrong numbers
func (rc RegimeConfig) Validate() error {
	if rc.Name == "" {
		return &ConfigError{Field: "name", Message: "regime name is required"}
	}
	if err := rc.Slabs.Validate(); err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			tagged := *cfgErr
			tagged.Regime = string(rc.Name)
			return &tagged
		}
		return err
	}
	if rc.StandardDeduction.IsNegative() {
		return &ConfigError{Regime: string(rc.Name), Field: "standard_deduction", Message: "cannot be negative"}
	}
	if rc.RebateEnabled && rc.RebateThreshold.IsNegative() {
		return &ConfigError{Regime: string(rc.Name), Field: "rebate_threshold", Message: "cannot be negative"}
	}
	for i, band := range rc.AgeBands {
		field := fmt.Sprintf("age_bands[%d]", i)
		if band.MinAge < 0 {
			return &ConfigError{Regime: string(rc.Name), Field: field + ".min_age", Message: "cannot be negative"}
		}
		if !band.FirstSlabUpperBound.IsPositive() {
			return &ConfigError{Regime: string(rc.Name), Field: field + ".first_slab_upper_bound", Message: "must be positive"}
		}
	}
	if len(rc.AgeBands) > 0 && rc.Slabs[0].IsUnbounded() {
		return &ConfigError{Regime: string(rc.Name), Field: "age_bands", Message: "age bands need a bounded first slab"}
	}
	return nil
}

// ForAge returns a fresh config whose first slab reflects the highest age band
// the taxpayer qualifies for. Bands only ever raise the exemption limit; slabs
// whose upper bound the raised limit reaches are absorbed into the first slab.
// The receiver is left untouched.
func (rc RegimeConfig) ForAge(age int) (RegimeConfig, error) {
	if err := rc.Validate(); err != nil {
		return RegimeConfig{}, err
	}
	out := rc.Clone()

	band, ok := rc.bandFor(age)
	if !ok {
		return out, nil
	}
	current := *out.Slabs[0].UpperBound
	if band.FirstSlabUpperBound.GreaterThan(current) {
		raised := band.FirstSlabUpperBound
		first := out.Slabs[0]
		first.UpperBound = &raised
		slabs := SlabTable{first}
		for _, slab := range out.Slabs[1:] {
			if slab.UpperBound != nil && slab.UpperBound.LessThanOrEqual(raised) {
				continue
			}
			slabs = append(slabs, slab)
		}
		out.Slabs = slabs
	}
	if err := out.Slabs.Validate(); err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			tagged := *cfgErr
			tagged.Regime = string(rc.Name)
			tagged.Message = fmt.Sprintf("age band %d+ produces an invalid table: %s", band.MinAge, cfgErr.Message)
			return RegimeConfig{}, &tagged
		}
		return RegimeConfig{}, err
	}
	return out, nil
}

func (rc RegimeConfig) bandFor(age int) (AgeBand, bool) {
	var best AgeBand
	found := false
	for _, band := range rc.AgeBands {
		if age >= band.MinAge && (!found || band.MinAge > best.MinAge) {
			best = band
			found = true
		}
	}
	return best, found
}

// WithOptions applies user switches and returns a derived copy
func (rc RegimeConfig) WithOptions(opts EvaluationOptions) RegimeConfig {
	out := rc.Clone()
	if opts.DisableStandardDeduction {
		out.StandardDeduction = decimal.Zero
	}
	if opts.DisableRebate {
		out.RebateEnabled = false
	}
	return out
}

// YearRegimes pairs the Old and New tables for one assessment year
type YearRegimes struct {
	Old RegimeConfig `yaml:"old" json:"old"`
	New RegimeConfig `yaml:"new" json:"new"`
}

// Get returns the config for the named regime
func (yr YearRegimes) Get(name RegimeName) (RegimeConfig, error) {
	switch name {
	case RegimeOld:
		return yr.Old, nil
	case RegimeNew:
		return yr.New, nil
	}
	return RegimeConfig{}, fmt.Errorf("%w: %q", ErrUnknownRegime, name)
}

// RegimeSetMetadata describes where a dataset came from
type RegimeSetMetadata struct {
	LastUpdated string `yaml:"last_updated" json:"lastUpdated"`
	Description string `yaml:"description" json:"description"`
	Source      string `yaml:"source,omitempty" json:"source,omitempty"`
}

// RegimeSet is a versioned lookup table of regimes keyed by assessment year
type RegimeSet struct {
	Metadata    RegimeSetMetadata      `yaml:"metadata" json:"metadata"`
	DefaultYear string                 `yaml:"default_year" json:"defaultYear"`
	Years       map[string]YearRegimes `yaml:"years" json:"years"`
}

// Lookup returns the regimes for a year; an empty year selects DefaultYear
func (rs *RegimeSet) Lookup(year string) (YearRegimes, error) {
	if year == "" {
		year = rs.DefaultYear
	}
	yr, ok := rs.Years[year]
	if !ok {
		return YearRegimes{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownYear, year, rs.AvailableYears())
	}
	yr.Old.AssessmentYear = year
	yr.New.AssessmentYear = year
	return yr, nil
}

// AvailableYears lists the configured assessment years in ascending order
func (rs *RegimeSet) AvailableYears() []string {
	years := make([]string, 0, len(rs.Years))
	for y := range rs.Years {
		years = append(years, y)
	}
	sort.Strings(years)
	return years
}
