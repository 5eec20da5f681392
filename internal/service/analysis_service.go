package service

import (
	"context"
	"fmt"
	"sort"

	"corep-assist/internal/models"

	"go.uber.org/zap"
)

// AuditWriter persists finished audit records. Persistence is best-effort
// history keeping: a write failure never fails the analysis request.
type AuditWriter interface {
	Create(ctx context.Context, record *models.AuditRecord) error
}

// AnalysisService runs the per-request pipeline: retrieve, extract,
// validate, assemble. Each run is request-scoped; the only shared state is
// the read-only snippet index.
type AnalysisService struct {
	retriever *RetrieverService
	extractor *ExtractionService
	validator *ValidationEngine
	assembler *AuditAssembler
	auditRepo AuditWriter
	logger    *zap.Logger
}

func NewAnalysisService(
	retriever *RetrieverService,
	extractor *ExtractionService,
	validator *ValidationEngine,
	assembler *AuditAssembler,
	auditRepo AuditWriter,
	logger *zap.Logger,
) *AnalysisService {
	return &AnalysisService{
		retriever: retriever,
		extractor: extractor,
		validator: validator,
		assembler: assembler,
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// AnalyzeScenario produces one audit record for one scenario. Errors from
// the two external calls propagate to the transport layer unhandled; no
// retry and no fallback values happen here.
func (s *AnalysisService) AnalyzeScenario(ctx context.Context, scenario string, topK int) (*models.AuditRecord, error) {
	snippets, err := s.retriever.Retrieve(ctx, scenario, topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}

	extraction, err := s.extractor.Extract(ctx, scenario, snippets)
	if err != nil {
		return nil, fmt.Errorf("extract own funds: %w", err)
	}

	validation := s.validator.Validate(extraction.OwnFunds)

	rules := mergeRules(extraction.RulesUsed, snippets)
	record := s.assembler.Assemble(scenario, snippets, extraction, validation, rules)

	if s.auditRepo != nil {
		if err := s.auditRepo.Create(ctx, record); err != nil {
			s.logger.Warn("Failed to persist audit record",
				zap.String("record_id", record.ID.String()),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("Scenario analysis completed",
		zap.String("record_id", record.ID.String()),
		zap.Int("snippets", len(snippets)),
		zap.Int("warnings", len(record.Validation.Warnings)),
		zap.Bool("threshold_breached", record.Validation.ThresholdBreached),
	)
	return record, nil
}

// mergeRules unions the citations of every retrieved snippet into the
// model-proposed rule list, so the audit record always names the context
// that was in front of the model.
func mergeRules(modelRules []string, snippets []models.RetrievedSnippet) []string {
	merged := make([]string, 0, len(modelRules)+len(snippets))
	seen := make(map[string]bool, len(modelRules)+len(snippets))
	for _, r := range modelRules {
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		merged = append(merged, r)
	}

	citations := make([]string, 0, len(snippets))
	for _, sn := range snippets {
		if sn.Citation == "" || seen[sn.Citation] {
			continue
		}
		seen[sn.Citation] = true
		citations = append(citations, sn.Citation)
	}
	sort.Strings(citations)

	return append(merged, citations...)
}
