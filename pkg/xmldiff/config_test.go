package xmldiff

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "compact", cfg.OutputFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "xmldiff.yaml")
	contents := "output_format: json\nexclude_empty_nodes: true\ninclude:\n  - movie\n  - episode*\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.True(t, cfg.ExcludeEmptyNode)
	assert.Equal(t, []string{"movie", "episode*"}, cfg.Include)
}

func TestConfigToOptions(t *testing.T) {
	cfg := &Config{ExcludeEmptyNode: true, Include: []string{"movie"}}
	opts, predOpts := cfg.ToOptions()
	assert.True(t, opts.ExcludeEmptyNodes)
	assert.Equal(t, []string{"movie"}, predOpts.Include)
	assert.NotNil(t, opts.Predicate)
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := defaultConfig()
	excludeEmpty := true
	cfg.ApplyFlagOverrides([]string{"movie"}, nil, &excludeEmpty, "html", "", "")
	assert.Equal(t, "html", cfg.OutputFormat)
	assert.True(t, cfg.ExcludeEmptyNode)
	assert.Equal(t, "info", cfg.LogLevel, "log_level should be untouched by an empty override")
}
