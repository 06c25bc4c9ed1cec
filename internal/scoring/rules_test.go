package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRulesPartialOverride(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "rules.yaml")
	content := "" +
		"urgency:\n" +
		"  points: 25\n" +
		"  keywords: [\"on fire\", \"bleeding cash\"]\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	r, err := LoadRules(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"on fire", "bleeding cash"}, r.Urgency.Keywords)
	// Untouched sections keep the defaults.
	def := DefaultRules()
	assert.Equal(t, def.Identity, r.Identity)
	assert.Equal(t, def.Pain, r.Pain)
}

func TestLoadRulesRejectsEmptyKeywordSet(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("velocity:\n  points: 15\n  keywords: []\n"), 0o644))

	_, err := LoadRules(path)
	assert.ErrorContains(t, err, "velocity")
}

func TestLoadRulesMissingFile(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestDefaultRulesValidate(t *testing.T) {
	assert.NoError(t, DefaultRules().validate())
}
