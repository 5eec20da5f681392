package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ValidationResult is derived deterministically from StructuredOwnFunds.
// Identical input yields an identical result: no timestamps, no randomness.
type ValidationResult struct {
	Ratio             Amount   `json:"cet1_ratio"`
	ThresholdBreached bool     `json:"threshold_breached"`
	MissingFields     []string `json:"missing_fields"`
	Warnings          []string `json:"warnings"`
}

// AuditRecord is the terminal artifact of one analysis request. Every figure
// in it can be traced back to the snippets that were in context and the
// warnings they triggered. Immutable once assembled.
type AuditRecord struct {
	ID                uuid.UUID          `json:"id"`
	Scenario          string             `json:"scenario"`
	RetrievedSnippets []RetrievedSnippet `json:"retrieved_context"`
	OwnFunds          StructuredOwnFunds `json:"own_funds"`
	Validation        ValidationResult   `json:"validation"`
	TemplateName      string             `json:"template_name"`
	Explanation       string             `json:"explanation"`
	RulesUsed         []string           `json:"rules_used"`
	RawModelOutput    json.RawMessage    `json:"raw_model_output,omitempty"`
	GeneratedAt       time.Time          `json:"generated_at"`
}
