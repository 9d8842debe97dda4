package extract

import (
	"errors"
	"strings"

	ts "github.com/tree-sitter/go-tree-sitter"

	"github.com/gnana997/darklint/pkg/classname"
	"github.com/gnana997/darklint/pkg/parser"
)

// classAttributes are the JSX attribute names holding class strings.
var classAttributes = map[string]bool{
	"className": true,
	"class":     true,
}

// JSXExtractor walks a syntax tree and reports every string or template
// literal inside a className/class attribute value, including those spread
// across lines or nested in conditionals and helper calls.
type JSXExtractor struct {
	parsers *parser.Manager
}

// NewJSXExtractor creates a JSXExtractor backed by a shared parser manager.
func NewJSXExtractor(parsers *parser.Manager) *JSXExtractor {
	return &JSXExtractor{parsers: parsers}
}

func (e *JSXExtractor) Kind() classname.SourceKind { return classname.SourceJSXAST }

// ExtractFile returns nothing for files without a JS/TS grammar.
func (e *JSXExtractor) ExtractFile(path string, src []byte) ([]Candidate, error) {
	tree, err := e.parsers.ParseFile(path, src)
	if errors.Is(err, parser.ErrUnsupported) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	w := &jsxWalker{src: src, lines: SplitLines(string(src))}
	w.walk(tree.RootNode())
	return w.out, nil
}

type jsxWalker struct {
	src   []byte
	lines []string
	out   []Candidate
}

func (w *jsxWalker) walk(node *ts.Node) {
	if node.Kind() == "jsx_attribute" && w.isClassAttribute(node) {
		// The first child is the attribute name.
		for i := uint(1); i < uint(node.ChildCount()); i++ {
			w.collect(node.Child(i))
		}
		return
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		w.walk(node.Child(i))
	}
}

func (w *jsxWalker) isClassAttribute(attr *ts.Node) bool {
	if attr.ChildCount() == 0 {
		return false
	}
	name := attr.Child(0)
	return name.Kind() == "property_identifier" && classAttributes[name.Utf8Text(w.src)]
}

// collect records string-like nodes under an attribute value.
func (w *jsxWalker) collect(node *ts.Node) {
	switch node.Kind() {
	case "string":
		w.add(node, unquote(node.Utf8Text(w.src)))
		return
	case "template_string":
		w.add(node, StripInterpolations(unquote(node.Utf8Text(w.src))))
		// Substitutions may hold conditional class strings.
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		w.collect(node.Child(i))
	}
}

func (w *jsxWalker) add(node *ts.Node, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	pos := node.StartPosition()
	row := int(pos.Row)

	var line string
	if row < len(w.lines) {
		line = w.lines[row]
	}

	w.out = append(w.out, Candidate{
		Value:  value,
		Source: classname.SourceJSXAST,
		Line:   row + 1,
		// Skip the opening quote so positions line up with the line patterns.
		Column:   int(pos.Column) + 2,
		LineText: line,
	})
}

func unquote(s string) string {
	if len(s) >= 2 {
		return s[1 : len(s)-1]
	}
	return s
}
