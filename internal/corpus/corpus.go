// Package corpus holds the reference passages retrieval runs over. The
// passages are synthetic excerpts for prototyping, not verified rule text.
package corpus

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"corep-assist/internal/models"
)

// Entry is one corpus passage before embedding.
type Entry struct {
	SourceTag string `json:"source"`
	Citation  string `json:"citation"`
	Text      string `json:"text"`
}

// Builtin returns the default seed corpus.
func Builtin() []Entry {
	return []Entry{
		{
			SourceTag: "PRA Rulebook (synthetic excerpt)",
			Citation:  "CRR Art. 92(1)(a) – minimum CET1 capital ratio (illustrative)",
			Text: "Under the PRA's implementation of the CRR, institutions must maintain " +
				"a minimum Common Equity Tier 1 (CET1) capital ratio of at least 4.5% " +
				"of their total risk-weighted exposure amount (RWA). CET1 capital is " +
				"composed primarily of common shares, share premium, retained earnings, " +
				"accumulated other comprehensive income and certain regulatory adjustments.",
		},
		{
			SourceTag: "PRA Rulebook (synthetic excerpt)",
			Citation:  "CRR Part Two – Own Funds (illustrative)",
			Text: "Additional Tier 1 (AT1) instruments are perpetual subordinated " +
				"instruments that meet the relevant eligibility criteria. Tier 2 " +
				"capital consists of subordinated instruments with limited maturity " +
				"and certain loan loss provisions. Total capital is the sum of " +
				"Tier 1 capital (CET1 + AT1) and Tier 2 capital.",
		},
		{
			SourceTag: "PRA Rulebook (synthetic excerpt)",
			Citation:  "CRR Part Three – Capital Requirements (illustrative)",
			Text: "Risk-weighted assets (RWA) represent the total of exposure values " +
				"multiplied by applicable risk weights under the standardised or " +
				"internal ratings based approaches. Capital ratios are expressed as " +
				"capital amounts divided by total RWA. Institutions must monitor " +
				"their CET1, Tier 1 and total capital ratios against minimum and " +
				"buffer requirements at all times.",
		},
		{
			SourceTag: "COREP Implementing Technical Standards (synthetic excerpt)",
			Citation:  "ITS on Supervisory Reporting – COREP Own Funds (illustrative)",
			Text: "The COREP Own Funds templates require firms to report CET1, AT1, " +
				"Tier 2 capital and total risk exposure amount in the relevant " +
				"reporting currency. Ratios should typically be reported to at " +
				"least four decimal places when expressed as decimals.",
		},
	}
}

// LoadFile reads additional corpus entries from a JSON array file.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse corpus file %s: %w", path, err)
	}

	out := entries[:0]
	for _, e := range entries {
		if strings.TrimSpace(e.Text) == "" {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// Snippets assigns stable identifiers and insertion positions. The position
// doubles as the retrieval tie-breaker, so ordering here is significant.
func Snippets(entries []Entry) []models.Snippet {
	snippets := make([]models.Snippet, 0, len(entries))
	for i, e := range entries {
		snippets = append(snippets, models.Snippet{
			ID:        fmt.Sprintf("own-funds-%04d", i),
			SourceTag: e.SourceTag,
			Citation:  e.Citation,
			Text:      e.Text,
			Position:  i,
		})
	}
	return snippets
}
