package transform

import (
	"errors"
	"strings"
	"testing"

	"github.com/rgehrsitz/taxregime/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func createTestInput() domain.TaxInput {
	return domain.TaxInput{
		GrossIncome: dec(1000000),
		Section80C:  dec(100000),
		HRAReceived: dec(60000),
		RentPaid:    dec(120000),
		BasicSalary: dec(400000),
		Age:         35,
	}
}

func TestApplyTransforms_Empty(t *testing.T) {
	base := createTestInput()
	base.OtherIncome = dec(-5)

	result, err := ApplyTransforms(base, nil)
	if err != nil {
		t.Fatalf("Expected no error for empty transforms, got: %v", err)
	}
	if !result.OtherIncome.IsZero() {
		t.Errorf("Expected input to be normalized, got other income %s", result.OtherIncome)
	}
	if !result.GrossIncome.Equal(base.GrossIncome) {
		t.Errorf("Expected gross income unchanged, got %s", result.GrossIncome)
	}
}

func TestApplyTransforms_Sequence(t *testing.T) {
	base := createTestInput()

	result, err := ApplyTransforms(base, []InputTransform{
		&RaiseSection80C{Limit: Section80CLimit},
		&SetSection80D{Amount: dec(25000)},
		&AdjustIncome{Percent: dec(10)},
		&SetAge{Age: 61},
	})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !result.Section80C.Equal(dec(150000)) {
		t.Errorf("Expected 80C 150000, got %s", result.Section80C)
	}
	if !result.Section80D.Equal(dec(25000)) {
		t.Errorf("Expected 80D 25000, got %s", result.Section80D)
	}
	if !result.GrossIncome.Equal(dec(1100000)) {
		t.Errorf("Expected gross 1100000, got %s", result.GrossIncome)
	}
	if !result.BasicSalary.Equal(dec(440000)) {
		t.Errorf("Expected basic 440000, got %s", result.BasicSalary)
	}
	if result.Age != 61 {
		t.Errorf("Expected age 61, got %d", result.Age)
	}

	// base is passed by value and must be untouched
	if !base.Section80C.Equal(dec(100000)) {
		t.Errorf("Expected base 80C unchanged, got %s", base.Section80C)
	}
}

func TestApplyTransforms_NilTransform(t *testing.T) {
	_, err := ApplyTransforms(createTestInput(), []InputTransform{nil})
	if err == nil || !strings.Contains(err.Error(), "index 0 is nil") {
		t.Errorf("Expected nil transform error, got %v", err)
	}
}

func TestApplyTransforms_ValidationError(t *testing.T) {
	_, err := ApplyTransforms(createTestInput(), []InputTransform{
		&SetSection80C{Amount: dec(50000)},
		&AdjustIncome{Percent: dec(-100)},
	})
	if err == nil {
		t.Fatal("Expected validation error")
	}

	var te *TransformError
	if !errors.As(err, &te) {
		t.Fatalf("Expected TransformError, got %T", err)
	}
	if te.TransformName != "adjust_income" || te.Operation != "validate" {
		t.Errorf("Unexpected error details: %+v", te)
	}
}

func TestRaiseSection80C_KeepsHigherClaim(t *testing.T) {
	base := createTestInput()
	base.Section80C = dec(200000)

	result, err := (&RaiseSection80C{Limit: Section80CLimit}).Apply(base)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Section80C.Equal(dec(200000)) {
		t.Errorf("Expected 200000 kept, got %s", result.Section80C)
	}
}

func TestTransformDescriptions(t *testing.T) {
	tests := []struct {
		transform InputTransform
		want      string
	}{
		{&SetSection80C{Amount: dec(150000)}, "Claim ₹1,50,000 under Section 80C"},
		{&SetSection80D{Amount: dec(25000)}, "Claim ₹25,000 under Section 80D"},
		{&AdjustIncome{Percent: dec(10)}, "Raise gross income by 10%"},
		{&AdjustIncome{Percent: dec(-5)}, "Cut gross income by 5%"},
		{&SetRent{Annual: decimal.Zero}, "Stop paying rent"},
		{&SetRent{Annual: dec(240000)}, "Pay ₹2,40,000 rent a year"},
		{&AddOtherIncome{Amount: dec(50000)}, "Add ₹50,000 of other income"},
		{&SetAge{Age: 60}, "Evaluate at age 60"},
	}
	for _, tt := range tests {
		if got := tt.transform.Description(); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.transform.Name(), tt.want, got)
		}
	}
}

func TestTransformValidation(t *testing.T) {
	base := createTestInput()
	invalid := []InputTransform{
		&SetSection80C{Amount: dec(-1)},
		&RaiseSection80C{Limit: decimal.Zero},
		&SetSection80D{Amount: dec(-1)},
		&AdjustIncome{Percent: dec(-150)},
		&SetRent{Annual: dec(-1)},
		&AddOtherIncome{Amount: dec(-1)},
		&SetAge{Age: 131},
	}
	for _, tr := range invalid {
		if err := tr.Validate(base); err == nil {
			t.Errorf("%s: expected validation error", tr.Name())
		}
	}
}

func TestTransformError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewTransformError("set_80c", "apply", "failed", cause)
	if !errors.Is(err, cause) {
		t.Error("Expected error to wrap cause")
	}
	if err.Error() != "transform set_80c (apply): failed: boom" {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}
