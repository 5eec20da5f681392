package service

import (
	"time"

	"corep-assist/internal/models"

	"github.com/google/uuid"
)

// AuditAssembler composes the terminal artifact of a pipeline run. It does
// no validation or transformation of its inputs; its one job is that every
// downstream consumer sees one consistent, fully-linked snapshot.
type AuditAssembler struct {
	now func() time.Time
}

func NewAuditAssembler() *AuditAssembler {
	return &AuditAssembler{now: time.Now}
}

func (a *AuditAssembler) Assemble(
	scenario string,
	snippets []models.RetrievedSnippet,
	extraction *ExtractionResult,
	validation models.ValidationResult,
	rulesUsed []string,
) *models.AuditRecord {
	if snippets == nil {
		snippets = []models.RetrievedSnippet{}
	}
	if rulesUsed == nil {
		rulesUsed = []string{}
	}
	return &models.AuditRecord{
		ID:                uuid.New(),
		Scenario:          scenario,
		RetrievedSnippets: snippets,
		OwnFunds:          extraction.OwnFunds,
		Validation:        validation,
		TemplateName:      extraction.TemplateName,
		Explanation:       extraction.Explanation,
		RulesUsed:         rulesUsed,
		RawModelOutput:    extraction.Raw,
		GeneratedAt:       a.now().UTC(),
	}
}
