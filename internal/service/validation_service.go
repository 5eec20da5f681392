package service

import (
	"fmt"

	"corep-assist/internal/models"
)

// MinCET1Ratio is the minimum CET1 capital ratio under CRR Art. 92(1)(a).
const MinCET1Ratio = 0.045

// ValidationEngine performs the deterministic half of the pipeline. It is
// a pure computation: no I/O, no clock, no randomness, so validating the
// same figures twice yields byte-identical results.
type ValidationEngine struct{}

func NewValidationEngine() *ValidationEngine {
	return &ValidationEngine{}
}

// Validate computes the CET1 ratio and completeness warnings. Absence of
// any field is an expected outcome of the probabilistic extraction step and
// is always representable as warnings, never as an error.
func (e *ValidationEngine) Validate(data models.StructuredOwnFunds) models.ValidationResult {
	result := models.ValidationResult{
		MissingFields: []string{},
		Warnings:      []string{},
	}

	fields := []struct {
		name  string
		value models.Amount
	}{
		{"CET1", data.CET1},
		{"AT1", data.AT1},
		{"Tier2", data.Tier2},
		{"RWA", data.RWA},
	}
	for _, f := range fields {
		if !f.value.Present {
			result.MissingFields = append(result.MissingFields, f.name)
		}
	}

	if data.CET1.Present && data.RWA.Present && data.RWA.Value > 0 {
		result.Ratio = models.SomeAmount(data.CET1.Value / data.RWA.Value)
	}
	result.ThresholdBreached = result.Ratio.Present && result.Ratio.Value < MinCET1Ratio

	// Warning order is fixed: missing fields, threshold breach, zero RWA.
	for _, name := range result.MissingFields {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s is missing or could not be inferred from the scenario.", name))
	}
	if result.ThresholdBreached {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("CET1 ratio of %.4f is below the minimum requirement of %.4f (4.5%%).",
				result.Ratio.Value, MinCET1Ratio))
	}
	if data.RWA.Present && data.RWA.Value == 0 {
		result.Warnings = append(result.Warnings,
			"RWA is reported as 0, so the CET1 ratio cannot be computed.")
	}

	return result
}
