// Package report renders lint reports as text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gnana997/darklint/pkg/linter"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

// Formatter writes a finished report.
type Formatter interface {
	Format(r *linter.Report) error

	// FormatFile writes the result of re-linting a single file.
	FormatFile(fr linter.FileReport) error
}

// Options configures a formatter.
type Options struct {
	// Writer defaults to os.Stdout.
	Writer io.Writer

	// NoColor disables styling in the text format.
	NoColor bool

	// Compact disables indentation in JSON output.
	Compact bool
}

// NewFormatter returns the formatter for format. An empty format means
// text.
func NewFormatter(format string, opts *Options) (Formatter, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	switch format {
	case FormatText, "":
		return NewTextFormatter(opts), nil
	case FormatJSON:
		return &JSONFormatter{opts: opts}, nil
	case FormatYAML:
		return &YAMLFormatter{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: text, json, yaml)", format)
	}
}

// JSONFormatter writes reports as JSON.
type JSONFormatter struct {
	opts *Options
}

func (f *JSONFormatter) Format(r *linter.Report) error {
	return f.encode(r)
}

func (f *JSONFormatter) FormatFile(fr linter.FileReport) error {
	return f.encode(fr)
}

func (f *JSONFormatter) encode(v any) error {
	encoder := json.NewEncoder(f.opts.Writer)
	if !f.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(v)
}

// YAMLFormatter writes reports as YAML documents.
type YAMLFormatter struct {
	opts *Options
}

func (f *YAMLFormatter) Format(r *linter.Report) error {
	return f.encode(r)
}

func (f *YAMLFormatter) FormatFile(fr linter.FileReport) error {
	return f.encode(fr)
}

func (f *YAMLFormatter) encode(v any) error {
	encoder := yaml.NewEncoder(f.opts.Writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// Encode writes v as JSON or YAML. It backs listings that are not reports,
// such as the rule catalog.
func Encode(format string, w io.Writer, v any) error {
	opts := &Options{Writer: w}
	switch format {
	case FormatJSON:
		return (&JSONFormatter{opts: opts}).encode(v)
	case FormatYAML:
		return (&YAMLFormatter{opts: opts}).encode(v)
	default:
		return fmt.Errorf("unknown format: %s (supported: json, yaml)", format)
	}
}

var (
	_ Formatter = (*TextFormatter)(nil)
	_ Formatter = (*JSONFormatter)(nil)
	_ Formatter = (*YAMLFormatter)(nil)
)
