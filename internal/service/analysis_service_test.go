package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"corep-assist/internal/models"
	"corep-assist/internal/providers"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuditWriter struct {
	records []*models.AuditRecord
	err     error
}

func (f *fakeAuditWriter) Create(_ context.Context, record *models.AuditRecord) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

func newPipeline(t *testing.T, completer providers.CompletionProvider, auditRepo AuditWriter) *AnalysisService {
	t.Helper()
	searcher := &fakeSearcher{results: []models.RetrievedSnippet{
		{
			Snippet: models.Snippet{
				ID:        "own-funds-0000",
				SourceTag: "synthetic_corpus",
				Citation:  "CRR Art. 92(1)(a)",
				Text:      "Institutions shall maintain a CET1 ratio of at least 4.5%.",
				Position:  0,
			},
			Score: 0.88,
		},
	}}
	retriever := NewRetrieverService(providers.NewMockProvider(32), searcher, ragConfig(), zap.NewNop())
	extractor := NewExtractionService(completer, zap.NewNop())
	return NewAnalysisService(retriever, extractor, NewValidationEngine(), NewAuditAssembler(), auditRepo, zap.NewNop())
}

func TestAnalyzeScenarioBuildsLinkedRecord(t *testing.T) {
	completer := &stubCompleter{content: `{
		"template_name": "C 01.00 - Own Funds (illustrative)",
		"CET1": 100,
		"RWA": 5000,
		"rules_used": ["PRA Rulebook OF 2.1"],
		"explanation": "Only CET1 and RWA are stated."
	}`}
	writer := &fakeAuditWriter{}
	svc := newPipeline(t, completer, writer)

	record, err := svc.AnalyzeScenario(context.Background(), "A firm has 100m CET1 against 5bn RWA.", 3)
	require.NoError(t, err)

	require.Equal(t, "A firm has 100m CET1 against 5bn RWA.", record.Scenario)
	require.Len(t, record.RetrievedSnippets, 1)
	require.Equal(t, models.SomeAmount(100), record.OwnFunds.CET1)
	require.True(t, record.Validation.ThresholdBreached)
	require.InDelta(t, 0.02, record.Validation.Ratio.Value, 1e-12)
	require.WithinDuration(t, time.Now().UTC(), record.GeneratedAt, 5*time.Second)
	require.NotEmpty(t, record.RawModelOutput)

	// Model rules come first, then unseen snippet citations.
	require.Equal(t, []string{"PRA Rulebook OF 2.1", "CRR Art. 92(1)(a)"}, record.RulesUsed)

	require.Len(t, writer.records, 1)
	require.Equal(t, record.ID, writer.records[0].ID)
}

func TestAnalyzeScenarioSurvivesAuditWriteFailure(t *testing.T) {
	completer := &stubCompleter{content: `{"CET1": 300, "RWA": 5000}`}
	svc := newPipeline(t, completer, &fakeAuditWriter{err: errors.New("connection refused")})

	record, err := svc.AnalyzeScenario(context.Background(), "scenario text here", 3)
	require.NoError(t, err, "audit persistence is best-effort")
	require.NotNil(t, record)
}

func TestAnalyzeScenarioPropagatesSchemaViolation(t *testing.T) {
	svc := newPipeline(t, &stubCompleter{content: "no json here"}, &fakeAuditWriter{})

	_, err := svc.AnalyzeScenario(context.Background(), "scenario text here", 3)
	require.ErrorIs(t, err, ErrSchemaViolation)
}

func TestMergeRulesDedupsAndOrders(t *testing.T) {
	snippets := []models.RetrievedSnippet{
		{Snippet: models.Snippet{Citation: "Rule B"}},
		{Snippet: models.Snippet{Citation: "Rule A"}},
		{Snippet: models.Snippet{Citation: "Rule B"}},
		{Snippet: models.Snippet{Citation: ""}},
	}

	merged := mergeRules([]string{"Rule C", "Rule A", "Rule C", ""}, snippets)
	require.Equal(t, []string{"Rule C", "Rule A", "Rule B"}, merged)

	require.Empty(t, mergeRules(nil, nil))
}

func TestAssembleFillsDefensiveDefaults(t *testing.T) {
	assembler := &AuditAssembler{now: func() time.Time {
		return time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC)
	}}

	record := assembler.Assemble("scenario", nil, &ExtractionResult{
		TemplateName: "COREP Own Funds (prototype)",
		Explanation:  "none",
	}, models.ValidationResult{MissingFields: []string{}, Warnings: []string{}}, nil)

	require.NotEqual(t, "00000000-0000-0000-0000-000000000000", record.ID.String())
	require.NotNil(t, record.RetrievedSnippets)
	require.NotNil(t, record.RulesUsed)
	require.Equal(t, time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC), record.GeneratedAt)
}
