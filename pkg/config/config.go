// Package config holds the versioned, load-once configuration of a lint run:
// which files to scan, how to extract class strings and the data tables the
// rules consult.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no explicit config
// path is given.
const DefaultFile = ".darklint.yaml"

// CurrentVersion is the only supported config schema version.
const CurrentVersion = 1

var (
	// ErrUnsupportedVersion is returned for a config whose version is set to
	// something other than CurrentVersion.
	ErrUnsupportedVersion = errors.New("unsupported config version")

	// ErrNoDirectories is returned when the directory list is empty.
	ErrNoDirectories = errors.New("no directories to scan")
)

// Extractor names accepted in Config.Extractors.
const (
	ExtractorDirect          = "direct"
	ExtractorJSONEscaped     = "json-escaped"
	ExtractorHelperCall      = "helper-call"
	ExtractorTemplateLiteral = "template-literal"
	ExtractorJSXAST          = "jsx-ast"
)

// KnownExtractors lists every extractor name in pipeline order.
var KnownExtractors = []string{
	ExtractorDirect,
	ExtractorJSONEscaped,
	ExtractorHelperCall,
	ExtractorTemplateLiteral,
	ExtractorJSXAST,
}

// Config is the full darklint configuration.
type Config struct {
	Version     int      `yaml:"version"`
	Directories []string `yaml:"directories"`
	Extensions  []string `yaml:"extensions"`

	// Exclude holds doublestar globs matched against root-relative slash
	// paths. A matching directory is not descended into.
	Exclude []string `yaml:"exclude"`

	Extractors []string `yaml:"extractors"`

	// Helpers are class-combining function names whose first string
	// argument is a class string.
	Helpers []string `yaml:"helpers"`

	// Workers bounds the lint worker pool; 0 picks a size from the CPU count.
	Workers int `yaml:"workers"`

	Rules RuleConfig `yaml:"rules"`
}

// Gradient describes a light gradient that must carry dark stops.
type Gradient struct {
	Direction string `yaml:"direction"`
	From      string `yaml:"from"`
	To        string `yaml:"to"`
}

// RuleConfig holds the data tables consulted by the rules. Extending them is
// a data edit, not a logic change.
type RuleConfig struct {
	Disabled            []string `yaml:"disabled"`
	InteractiveVariants []string `yaml:"interactive_variants"`

	// LightPalette and DarkPalette are color names ("white", "gray-400")
	// that form low-contrast pairs within the same mode.
	LightPalette []string `yaml:"light_palette"`
	DarkPalette  []string `yaml:"dark_palette"`

	// CheckedFamilies are the color families missing-dark-variant inspects,
	// besides white and black.
	CheckedFamilies []string `yaml:"checked_families"`

	// AllowList holds utilities that work unmodified in both modes.
	AllowList []string `yaml:"allow_list"`

	// AccentFamilies pair text-{f}-600 with bg-{f}-50 as an exempt accent.
	AccentFamilies []string `yaml:"accent_families"`

	// BackdropPatterns are regular expressions over a utility; any match
	// means the element sits on a dark or unknown backdrop.
	BackdropPatterns []string `yaml:"backdrop_patterns"`

	TextWhiteExemptClasses []string `yaml:"text_white_exempt_classes"`

	// IconContextPattern is matched against the whole source line; a match
	// exempts text-white on that line.
	IconContextPattern string `yaml:"icon_context_pattern"`

	Gradients []Gradient `yaml:"gradients"`

	// Suggestions maps a light utility to its recommended dark counterpart.
	// Entries from a config file merge into the defaults.
	Suggestions map[string]string `yaml:"suggestions"`

	// MemoSize bounds the per-class-string findings cache.
	MemoSize int `yaml:"memo_size"`
}

// Load reads the config at path over the compiled-in defaults. An empty
// path means DefaultFile, which may be absent; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into cfg and validates the result. Sequences replace
// the values already in cfg; the suggestions map merges. Unknown keys are
// rejected.
func Parse(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg.Validate()
}

// Validate checks the config for values the linter cannot run with.
func (c *Config) Validate() error {
	if c.Version == 0 {
		c.Version = CurrentVersion
	}
	if c.Version != CurrentVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, c.Version)
	}
	if len(c.Directories) == 0 {
		return ErrNoDirectories
	}
	if len(c.Extensions) == 0 {
		return errors.New("no file extensions configured")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}

	for _, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}

	for _, name := range c.Extractors {
		if !isKnownExtractor(name) {
			return fmt.Errorf("unknown extractor %q", name)
		}
	}

	return c.Rules.validate()
}

func (r *RuleConfig) validate() error {
	for _, p := range r.BackdropPatterns {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("invalid backdrop pattern %q: %w", p, err)
		}
	}
	if r.IconContextPattern != "" {
		if _, err := regexp.Compile(r.IconContextPattern); err != nil {
			return fmt.Errorf("invalid icon context pattern: %w", err)
		}
	}
	for i, g := range r.Gradients {
		if g.Direction == "" || g.From == "" || g.To == "" {
			return fmt.Errorf("gradient %d: direction, from and to are required", i)
		}
	}
	if r.MemoSize < 0 {
		return fmt.Errorf("memo_size must not be negative, got %d", r.MemoSize)
	}
	return nil
}

// HasExtractor reports whether the named extractor is enabled.
func (c *Config) HasExtractor(name string) bool {
	for _, e := range c.Extractors {
		if e == name {
			return true
		}
	}
	return false
}

func isKnownExtractor(name string) bool {
	for _, known := range KnownExtractors {
		if name == known {
			return true
		}
	}
	return false
}
