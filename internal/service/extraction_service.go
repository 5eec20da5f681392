package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"corep-assist/internal/models"
	"corep-assist/internal/providers"

	"go.uber.org/zap"
)

// ErrSchemaViolation means the model response could not be parsed as the
// Own Funds schema at all. The request fails rather than silently
// defaulting every figure to missing: per-field absence is tolerated
// downstream, a wholly unusable response is not.
var ErrSchemaViolation = errors.New("model output violates the extraction schema")

// systemPrompt constrains the model to strict JSON output. Regulatory
// judgment stays out of this step: anything the model proposes beyond the
// four figures is recorded for audit but recomputed deterministically.
const systemPrompt = `You are an expert UK PRA / COREP regulatory reporting analyst focusing on
capital requirements and Own Funds templates.

You will be given:
- A natural-language banking scenario.
- Extracts from PRA Rulebook / COREP Own Funds instructions (synthetic).

Your task is to propose a STRICT structured JSON object capturing the
firm's COREP Own Funds position. You must:

1. Use the regulatory context to interpret the scenario conservatively.
2. Only infer amounts when they are clearly implied; otherwise treat them
   as missing.
3. Never hallucinate regulatory references - only cite rules explicitly
   supported by the provided context.

OUTPUT FORMAT (JSON ONLY, NO PROSE OUTSIDE JSON):
{
  "template_name": "C 01.00 - Own Funds (illustrative)",
  "CET1": <number or null>,
  "AT1": <number or null>,
  "Tier2": <number or null>,
  "RWA": <number or null>,
  "CET1_ratio": <number or null>,
  "missing_fields": [<list of missing numeric fields>],
  "validation_warnings": [<list of checks the model thinks might fail>],
  "rules_used": [<list of strings with rule / paragraph references>],
  "explanation": "<short human-readable explanation>"
}

- Use numbers, not strings with units.
- If you cannot determine a numeric field, set it to null and include
  the field name in missing_fields.
- For CET1_ratio, you may propose a value, but it will be recomputed by
  deterministic validation.
- Do not add any fields beyond those listed.
- Respond with valid JSON only, with double quotes, and no comments.`

// ExtractionResult carries the schema-validated figures plus the model's
// narrative fields, preserved verbatim for the audit trail.
type ExtractionResult struct {
	OwnFunds     models.StructuredOwnFunds
	TemplateName string
	Explanation  string
	RulesUsed    []string
	Raw          json.RawMessage
}

type ExtractionService struct {
	completer providers.CompletionProvider
	logger    *zap.Logger
}

func NewExtractionService(completer providers.CompletionProvider, logger *zap.Logger) *ExtractionService {
	return &ExtractionService{
		completer: completer,
		logger:    logger,
	}
}

// Extract asks the model for the structured Own Funds position and parses
// the response defensively. Per-field coercion (non-numeric, negative or
// non-finite values become missing) happens inside models.Amount.
func (s *ExtractionService) Extract(ctx context.Context, scenario string, snippets []models.RetrievedSnippet) (*ExtractionResult, error) {
	content, err := s.completer.Complete(ctx, systemPrompt, buildUserPrompt(scenario, snippets))
	if err != nil {
		return nil, fmt.Errorf("completion request: %w", err)
	}

	raw, err := extractJSONObject(content)
	if err != nil {
		s.logger.Warn("Model returned non-JSON output", zap.String("content", truncate(content, 400)))
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	var payload struct {
		TemplateName string        `json:"template_name"`
		CET1         models.Amount `json:"CET1"`
		AT1          models.Amount `json:"AT1"`
		Tier2        models.Amount `json:"Tier2"`
		RWA          models.Amount `json:"RWA"`
		RulesUsed    stringList    `json:"rules_used"`
		Explanation  string        `json:"explanation"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaViolation, err)
	}

	result := &ExtractionResult{
		OwnFunds: models.StructuredOwnFunds{
			CET1:  payload.CET1,
			AT1:   payload.AT1,
			Tier2: payload.Tier2,
			RWA:   payload.RWA,
		},
		TemplateName: payload.TemplateName,
		Explanation:  payload.Explanation,
		RulesUsed:    payload.RulesUsed,
		Raw:          raw,
	}
	if result.TemplateName == "" {
		result.TemplateName = "COREP Own Funds (prototype)"
	}
	if result.Explanation == "" {
		result.Explanation = "Explanation not provided by the model."
	}

	s.logger.Info("Own Funds extraction completed",
		zap.Bool("cet1_present", result.OwnFunds.CET1.Present),
		zap.Bool("rwa_present", result.OwnFunds.RWA.Present),
	)
	return result, nil
}

func buildUserPrompt(scenario string, snippets []models.RetrievedSnippet) string {
	var b strings.Builder
	b.WriteString("Banking scenario:\n-----------------\n")
	b.WriteString(scenario)
	b.WriteString("\n\nRelevant regulatory context:\n----------------------------\n")
	b.WriteString(buildContext(snippets))
	b.WriteString("\n\nNow produce the JSON object as specified, with no additional commentary.")
	return b.String()
}

func buildContext(snippets []models.RetrievedSnippet) string {
	if len(snippets) == 0 {
		return "(no regulatory context retrieved)"
	}
	chunks := make([]string, 0, len(snippets))
	for _, sn := range snippets {
		chunks = append(chunks, fmt.Sprintf("[%s] (%s)\n%s", sn.Citation, sn.SourceTag, sn.Text))
	}
	return strings.Join(chunks, "\n\n---\n\n")
}

// extractJSONObject recovers a JSON object from raw model text. Models
// occasionally wrap the object in markdown fences or prose; the outermost
// brace pair is the fallback.
func extractJSONObject(content string) (json.RawMessage, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	if json.Valid([]byte(content)) && strings.HasPrefix(content, "{") {
		return json.RawMessage(content), nil
	}

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, errors.New("no JSON object found in model output")
	}
	candidate := content[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil, errors.New("model output is not valid JSON")
	}
	return json.RawMessage(candidate), nil
}

// stringList tolerates a single string, a list of strings, or a list of
// mixed scalars where a string list is expected.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	*l = nil

	var many []json.RawMessage
	if err := json.Unmarshal(data, &many); err == nil {
		for _, item := range many {
			var s string
			if err := json.Unmarshal(item, &s); err == nil {
				*l = append(*l, s)
				continue
			}
			*l = append(*l, strings.TrimSpace(string(item)))
		}
		return nil
	}

	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one != "" {
			*l = stringList{one}
		}
		return nil
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
