package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry creates transforms from string parameters, for CLI flags
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms registered.
func NewTransformRegistry() *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_80c", amountFactory("set_80c", func(d decimal.Decimal) InputTransform { return &SetSection80C{Amount: d} }))
	registry.Register("raise_80c", amountFactory("raise_80c", func(d decimal.Decimal) InputTransform { return &RaiseSection80C{Limit: d} }))
	registry.Register("set_80d", amountFactory("set_80d", func(d decimal.Decimal) InputTransform { return &SetSection80D{Amount: d} }))
	registry.Register("set_rent", amountFactory("set_rent", func(d decimal.Decimal) InputTransform { return &SetRent{Annual: d} }))
	registry.Register("add_other_income", amountFactory("add_other_income", func(d decimal.Decimal) InputTransform { return &AddOtherIncome{Amount: d} }))
	registry.Register("adjust_income", createAdjustIncome)
	registry.Register("set_age", createSetAge)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "set_80c:amount=150000"
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	name := strings.TrimSpace(parts[0])
	paramsStr := strings.TrimSpace(parts[1])

	params := make(map[string]string)
	if paramsStr != "" {
		for _, paramPair := range strings.Split(paramsStr, ",") {
			kv := strings.SplitN(paramPair, "=", 2)
			if len(kv) != 2 {
				return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
			}
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return r.Create(name, params)
}

func amountFactory(name string, build func(decimal.Decimal) InputTransform) TransformFactory {
	return func(params map[string]string) (InputTransform, error) {
		raw, ok := params["amount"]
		if !ok {
			return nil, fmt.Errorf("%s requires 'amount' parameter", name)
		}
		amount, err := parseAmountParam(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid amount value: %w", err)
		}
		return build(amount), nil
	}
}

func createAdjustIncome(params map[string]string) (InputTransform, error) {
	raw, ok := params["percent"]
	if !ok {
		return nil, fmt.Errorf("adjust_income requires 'percent' parameter")
	}
	percent, err := decimal.NewFromString(strings.TrimSuffix(raw, "%"))
	if err != nil {
		return nil, fmt.Errorf("invalid percent value: %w", err)
	}
	return &AdjustIncome{Percent: percent}, nil
}

func createSetAge(params map[string]string) (InputTransform, error) {
	raw, ok := params["age"]
	if !ok {
		return nil, fmt.Errorf("set_age requires 'age' parameter")
	}
	age, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid age value: %w", err)
	}
	return &SetAge{Age: age}, nil
}

// parseAmountParam accepts the same formats as form input but rejects
// malformed text instead of treating it as zero.
func parseAmountParam(raw string) (decimal.Decimal, error) {
	cleaned := strings.ReplaceAll(strings.TrimPrefix(strings.TrimSpace(raw), "₹"), "_", "")
	if _, err := decimal.NewFromString(strings.ReplaceAll(cleaned, ",", "")); err != nil {
		return decimal.Zero, err
	}
	return domain.ParseAmount(cleaned), nil
}
