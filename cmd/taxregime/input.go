package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/calculation"
	"github.com/rgehrsitz/taxregime/internal/config"
	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/rgehrsitz/taxregime/internal/logging"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// amountFlag is a rupee amount flag; commas and a leading ₹ are accepted
type amountFlag struct {
	value decimal.Decimal
}

func (a *amountFlag) String() string { return a.value.String() }
func (a *amountFlag) Type() string   { return "amount" }

func (a *amountFlag) Set(s string) error {
	cleaned := strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(s), "₹"), ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return fmt.Errorf("amount cannot be negative: %s", s)
	}
	a.value = d
	return nil
}

// inputFlags are the flags shared by every command that evaluates one taxpayer
type inputFlags struct {
	regimesFile string
	year        string
	profile     string

	gross, other, sec80C, sec80D amountFlag
	hra, rent, basic             amountFlag
	age                          int

	noStandardDeduction bool
	noRebate            bool
	debug               bool
}

func (f *inputFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.regimesFile, "regimes", "", "Regimes file (default: built-in tables)")
	fl.StringVarP(&f.year, "year", "y", "", "Assessment year, e.g. 2024-25 (default: profiles file, then regimes default)")
	fl.StringVarP(&f.profile, "profile", "p", "", "Profile to use from the profiles file (default: first)")

	fl.Var(&f.gross, "gross", "Gross salary income")
	fl.Var(&f.other, "other", "Other income")
	fl.Var(&f.sec80C, "80c", "Section 80C investments")
	fl.Var(&f.sec80D, "80d", "Section 80D health insurance premium")
	fl.Var(&f.hra, "hra", "HRA received")
	fl.Var(&f.rent, "rent", "Annual rent paid")
	fl.Var(&f.basic, "basic", "Basic salary")
	fl.IntVar(&f.age, "age", 0, "Taxpayer age")

	fl.BoolVar(&f.noStandardDeduction, "no-standard-deduction", false, "Ignore the standard deduction")
	fl.BoolVar(&f.noRebate, "no-rebate", false, "Ignore the Section 87A rebate")
	fl.BoolVar(&f.debug, "debug", false, "Enable debug output for detailed calculations")
}

// session is everything a command needs to evaluate one taxpayer
type session struct {
	engine      *calculation.CalculationEngine
	regimes     domain.YearRegimes
	profiles    *domain.ProfileFile // nil when the input came from flags
	profileName string
	input       domain.TaxInput
	options     domain.EvaluationOptions
}

// load resolves regimes, the taxpayer and the options. A profiles file in
// args takes precedence over the amount flags.
func (f *inputFlags) load(args []string) (*session, error) {
	parser := config.NewInputParser()
	set, err := parser.LoadRegimesOrDefault(f.regimesFile)
	if err != nil {
		return nil, err
	}

	sess := &session{engine: newEngine(f.debug)}
	year := f.year

	if len(args) > 0 {
		profiles, err := parser.LoadProfiles(args[0])
		if err != nil {
			return nil, err
		}
		profile, err := findProfile(profiles, f.profile)
		if err != nil {
			return nil, err
		}
		sess.profiles = profiles
		sess.profileName = profile.Name
		sess.input = profile.Input
		sess.options = profiles.Options
		if year == "" {
			year = profiles.AssessmentYear
		}
	} else {
		sess.input = f.input()
	}

	sess.options.DisableStandardDeduction = sess.options.DisableStandardDeduction || f.noStandardDeduction
	sess.options.DisableRebate = sess.options.DisableRebate || f.noRebate

	sess.regimes, err = set.Lookup(year)
	if err != nil {
		return nil, err
	}
	sess.engine.Log().Debugf("using assessment year %s, profile %q", sess.regimes.New.AssessmentYear, sess.profileName)
	return sess, nil
}

func (f *inputFlags) input() domain.TaxInput {
	return domain.TaxInput{
		GrossIncome: f.gross.value,
		OtherIncome: f.other.value,
		Section80C:  f.sec80C.value,
		Section80D:  f.sec80D.value,
		HRAReceived: f.hra.value,
		RentPaid:    f.rent.value,
		BasicSalary: f.basic.value,
		Age:         f.age,
	}
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
	names := make([]string, 0, len(profiles.Profiles))
	for _, p := range profiles.Profiles {
		names = append(names, p.Name)
	}
	return domain.Profile{}, fmt.Errorf("profile %q not found (available: %s)", name, strings.Join(names, ", "))
}

// newEngine returns a calculation engine, logging through zap when debug is set
func newEngine(debug bool) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngine()
	if debug {
		engine.SetLogger(logging.NewCLI(true).Sugar())
		engine.Debug = true
	}
	return engine
}
