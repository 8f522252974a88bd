package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed regimes.yaml
var defaultRegimesYAML []byte

// InputParser handles parsing of regime tables and taxpayer profile files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadDefaultRegimes returns the regime tables shipped with the binary
func (ip *InputParser) LoadDefaultRegimes() (*domain.RegimeSet, error) {
	return ip.ParseRegimes(defaultRegimesYAML)
}

// LoadRegimes loads regime tables from a YAML or JSON file
func (ip *InputParser) LoadRegimes(filename string) (*domain.RegimeSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	set, err := ip.ParseRegimes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return set, nil
}

// LoadRegimesOrDefault loads filename when set, otherwise the embedded tables
func (ip *InputParser) LoadRegimesOrDefault(filename string) (*domain.RegimeSet, error) {
	if strings.TrimSpace(filename) == "" {
		return ip.LoadDefaultRegimes()
	}
	return ip.LoadRegimes(filename)
}

// ParseRegimes decodes and validates a regime set
func (ip *InputParser) ParseRegimes(data []byte) (*domain.RegimeSet, error) {
	var set domain.RegimeSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateRegimeSet(&set); err != nil {
		return nil, fmt.Errorf("regime validation failed: %w", err)
	}
	return &set, nil
}

// ValidateRegimeSet checks every year's Old and New tables
func (ip *InputParser) ValidateRegimeSet(set *domain.RegimeSet) error {
	if len(set.Years) == 0 {
		return fmt.Errorf("at least one assessment year is required")
	}
	if set.DefaultYear == "" {
		return fmt.Errorf("default_year is required")
	}
	if _, ok := set.Years[set.DefaultYear]; !ok {
		return fmt.Errorf("default_year %q has no regime tables", set.DefaultYear)
	}

	for _, year := range set.AvailableYears() {
		yr := set.Years[year]
		var err error
		if yr.Old, err = ip.validateRegime(year, domain.RegimeOld, yr.Old); err != nil {
			return err
		}
		if yr.New, err = ip.validateRegime(year, domain.RegimeNew, yr.New); err != nil {
			return err
		}
		set.Years[year] = yr
	}
	return nil
}

// validateRegime fills in an omitted name and validates the table under every age band
func (ip *InputParser) validateRegime(year string, expected domain.RegimeName, rc domain.RegimeConfig) (domain.RegimeConfig, error) {
	if rc.Name == "" {
		rc.Name = expected
	}
	if rc.Name != expected {
		return rc, fmt.Errorf("year %s: %s regime is named %q", year, expected, rc.Name)
	}
	rc.AssessmentYear = year
	if err := rc.Validate(); err != nil {
		return rc, fmt.Errorf("year %s: %w", year, err)
	}
	for _, band := range rc.AgeBands {
		if _, err := rc.ForAge(band.MinAge); err != nil {
			return rc, fmt.Errorf("year %s: %w", year, err)
		}
	}
	return rc, nil
}

// LoadProfiles loads taxpayer profiles from a YAML or JSON file
func (ip *InputParser) LoadProfiles(filename string) (*domain.ProfileFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var file domain.ProfileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := ip.ValidateProfiles(&file); err != nil {
		return nil, fmt.Errorf("profile validation failed: %w", err)
	}
	return &file, nil
}

// ValidateProfiles checks that profiles are present and uniquely named.
// Amounts are not rejected here; the engine clamps negatives to zero.
func (ip *InputParser) ValidateProfiles(file *domain.ProfileFile) error {
	if len(file.Profiles) == 0 {
		return fmt.Errorf("at least one profile is required")
	}
	seen := make(map[string]bool, len(file.Profiles))
	for i, p := range file.Profiles {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return fmt.Errorf("profile %d: name is required", i)
		}
		if seen[name] {
			return fmt.Errorf("profile %d: duplicate name %q", i, name)
		}
		seen[name] = true
		if p.Input.Age > 130 {
			return fmt.Errorf("profile %q: age %d is not plausible", name, p.Input.Age)
		}
	}
	return nil
}
