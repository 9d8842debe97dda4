// Package extract finds utility-class strings in source files.
//
// Line extractors run a lexical pattern over one line at a time and are the
// default strategy. File extractors see the whole file and may use a syntax
// tree; they catch multi-line and conditional forms the line patterns miss.
// Both feed a Pipeline that merges and de-duplicates their candidates.
package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gnana997/darklint/pkg/classname"
	"github.com/gnana997/darklint/pkg/config"
	"github.com/gnana997/darklint/pkg/parser"
)

// Match is one class string found in a line.
type Match struct {
	Value  string
	Offset int // byte offset of Value within the line
	Kind   classname.SourceKind
}

// LineExtractor finds class strings in a single line.
type LineExtractor interface {
	Kind() classname.SourceKind
	ExtractLine(line string) []Match
}

// FileExtractor finds class strings in a whole file.
type FileExtractor interface {
	Kind() classname.SourceKind
	ExtractFile(path string, src []byte) ([]Candidate, error)
}

// Candidate is a located class string.
type Candidate struct {
	Value  string
	Source classname.SourceKind

	// Line and Column are 1-based; Column counts bytes.
	Line   int
	Column int

	// LineText is the full source line the candidate starts on.
	LineText string
}

// Offset returns the 0-based byte offset of Value within LineText.
func (c Candidate) Offset() int { return c.Column - 1 }

// Pipeline runs every configured extractor over a file.
type Pipeline struct {
	lines []LineExtractor
	files []FileExtractor
}

// NewPipeline combines extractors. Candidates are reported in line/column
// order; at equal positions the earlier extractor wins.
func NewPipeline(lines []LineExtractor, files ...FileExtractor) *Pipeline {
	return &Pipeline{lines: lines, files: files}
}

// New builds the pipeline named by cfg.Extractors. parsers is only needed
// when the jsx-ast extractor is enabled.
func New(cfg *config.Config, parsers *parser.Manager) (*Pipeline, error) {
	var (
		lines []LineExtractor
		files []FileExtractor
	)
	for _, name := range cfg.Extractors {
		switch name {
		case config.ExtractorDirect:
			lines = append(lines, NewDirectExtractor())
		case config.ExtractorJSONEscaped:
			lines = append(lines, NewJSONEscapedExtractor())
		case config.ExtractorHelperCall:
			if e := NewHelperCallExtractor(cfg.Helpers); e != nil {
				lines = append(lines, e)
			}
		case config.ExtractorTemplateLiteral:
			lines = append(lines, NewTemplateLiteralExtractor())
		case config.ExtractorJSXAST:
			if parsers == nil {
				return nil, fmt.Errorf("extractor %q needs a parser manager", name)
			}
			files = append(files, NewJSXExtractor(parsers))
		default:
			return nil, fmt.Errorf("unknown extractor %q", name)
		}
	}
	return NewPipeline(lines, files...), nil
}

// Extract returns every class string candidate in src.
func (p *Pipeline) Extract(path string, src []byte) ([]Candidate, error) {
	var out []Candidate

	for i, line := range SplitLines(string(src)) {
		out = append(out, p.ExtractLine(line, i+1)...)
	}

	for _, fe := range p.files {
		found, err := fe.ExtractFile(path, src)
		if err != nil {
			return nil, fmt.Errorf("%s extractor: %w", fe.Kind(), err)
		}
		out = append(out, found...)
	}

	return dedupe(out), nil
}

// ExtractLine runs only the line extractors over one line.
func (p *Pipeline) ExtractLine(line string, lineNo int) []Candidate {
	var out []Candidate
	for _, le := range p.lines {
		for _, m := range le.ExtractLine(line) {
			out = append(out, Candidate{
				Value:    m.Value,
				Source:   m.Kind,
				Line:     lineNo,
				Column:   m.Offset + 1,
				LineText: line,
			})
		}
	}
	return out
}

// SplitLines splits on '\n' and drops a trailing '\r' from each line.
func SplitLines(src string) []string {
	lines := strings.Split(src, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func dedupe(in []Candidate) []Candidate {
	sort.SliceStable(in, func(i, j int) bool {
		if in[i].Line != in[j].Line {
			return in[i].Line < in[j].Line
		}
		return in[i].Column < in[j].Column
	})

	var out []Candidate
	for _, c := range in {
		if n := len(out); n > 0 && out[n-1].Line == c.Line && out[n-1].Column == c.Column {
			continue
		}
		out = append(out, c)
	}
	return out
}
