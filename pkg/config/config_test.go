package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "darklint.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, []string{"pages", "src/components", "app", "content/blog"}, cfg.Directories)
	assert.Equal(t, []string{".tsx", ".ts", ".json"}, cfg.Extensions)
	assert.Equal(t, []string{"cn", "clsx"}, cfg.Helpers)
	assert.False(t, cfg.HasExtractor(ExtractorJSXAST))
	assert.True(t, cfg.HasExtractor(ExtractorTemplateLiteral))
	assert.Equal(t, 4096, cfg.Rules.MemoSize)
	assert.Contains(t, cfg.Rules.AllowList, "bg-amber-900")
	assert.NotContains(t, cfg.Rules.AllowList, "bg-gray-900")
	assert.Equal(t, "dark:text-gray-50", cfg.Rules.Suggestions["text-gray-900"])
	assert.Equal(t, "dark:text-blue-300", cfg.Rules.Suggestions["text-blue-700"])
}

func TestDefault_ReturnsFreshCopies(t *testing.T) {
	a := Default()
	a.Directories[0] = "changed"
	a.Rules.Suggestions["bg-white"] = "changed"

	b := Default()
	assert.Equal(t, "pages", b.Directories[0])
	assert.Equal(t, "dark:bg-gray-900", b.Rules.Suggestions["bg-white"])
}

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(wd) }()

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_OverridesAndMerges(t *testing.T) {
	path := writeConfig(t, `
version: 1
directories: [src]
extensions: [.tsx]
extractors: [direct, jsx-ast]
helpers: [cn, twMerge]
workers: 3
rules:
  disabled: [prose-missing-invert]
  suggestions:
    bg-slate-100: dark:bg-slate-800
  memo_size: 16
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"src"}, cfg.Directories)
	assert.Equal(t, []string{".tsx"}, cfg.Extensions)
	assert.Equal(t, []string{"cn", "twMerge"}, cfg.Helpers)
	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.HasExtractor(ExtractorJSXAST))
	assert.Equal(t, []string{"prose-missing-invert"}, cfg.Rules.Disabled)
	assert.Equal(t, 16, cfg.Rules.MemoSize)

	// Untouched tables keep their defaults; the map merges.
	assert.Equal(t, Default().Rules.LightPalette, cfg.Rules.LightPalette)
	assert.Equal(t, "dark:bg-slate-800", cfg.Rules.Suggestions["bg-slate-100"])
	assert.Equal(t, "dark:bg-gray-900", cfg.Rules.Suggestions["bg-white"])
}

func TestLoad_VersionDefaultsWhenOmitted(t *testing.T) {
	cfg, err := Load(writeConfig(t, "directories: [app]\n"))
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, cfg.Version)
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
		msg     string
	}{
		{"unsupported version", "version: 2\n", ErrUnsupportedVersion, ""},
		{"empty directories", "directories: []\n", ErrNoDirectories, ""},
		{"empty extensions", "extensions: []\n", nil, "no file extensions"},
		{"negative workers", "workers: -1\n", nil, "workers must not be negative"},
		{"bad exclude", "exclude: ['[']\n", nil, "invalid exclude pattern"},
		{"unknown extractor", "extractors: [regex]\n", nil, `unknown extractor "regex"`},
		{"bad backdrop", "rules:\n  backdrop_patterns: ['(']\n", nil, "invalid backdrop pattern"},
		{"bad icon pattern", "rules:\n  icon_context_pattern: '('\n", nil, "invalid icon context pattern"},
		{"incomplete gradient", "rules:\n  gradients: [{direction: bg-gradient-to-r}]\n", nil, "gradient 0"},
		{"malformed yaml", "directories: [\n", nil, "failed to parse config"},
		{"unknown key", "extentions: [.tsx]\n", nil, "field extentions not found"},
		{"unknown rule key", "rules:\n  dissabled: [low-contrast]\n", nil, "field dissabled not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}
