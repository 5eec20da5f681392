package corpus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuiltinCorpus(t *testing.T) {
	entries := Builtin()
	require.NotEmpty(t, entries)

	for _, e := range entries {
		require.NotEmpty(t, e.SourceTag)
		require.NotEmpty(t, e.Citation)
		require.NotEmpty(t, e.Text)
	}
}

func TestSnippetsAssignStableIDsAndPositions(t *testing.T) {
	snippets := Snippets(Builtin())

	seen := make(map[string]bool, len(snippets))
	for i, sn := range snippets {
		require.Equal(t, i, sn.Position)
		require.False(t, seen[sn.ID], "snippet IDs must be unique")
		seen[sn.ID] = true
	}
	require.Equal(t, "own-funds-0000", snippets[0].ID)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.json")
	payload := `[
		{"source": "manual", "citation": "Note 1", "text": "Tier 2 instruments have limited maturity."},
		{"source": "manual", "citation": "Note 2", "text": "   "}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	entries, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, entries, 1, "blank passages are dropped")
	require.Equal(t, "Note 1", entries[0].Citation)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
