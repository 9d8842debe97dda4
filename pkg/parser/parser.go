// Package parser wraps tree-sitter grammars for JavaScript, TypeScript and
// TSX behind pooled, concurrency-safe parsers.
package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"unsafe"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/gnana997/darklint/pkg/util"
)

// ErrUnsupported is returned for files no grammar handles.
var ErrUnsupported = errors.New("unsupported file type")

// Grammar selects a tree-sitter language.
type Grammar int

const (
	GrammarUnknown Grammar = iota
	GrammarJavaScript
	GrammarTypeScript
	GrammarTSX
)

func (g Grammar) String() string {
	switch g {
	case GrammarJavaScript:
		return "javascript"
	case GrammarTypeScript:
		return "typescript"
	case GrammarTSX:
		return "tsx"
	default:
		return "unknown"
	}
}

// GrammarFor picks the grammar for a file by extension. The JavaScript
// grammar accepts JSX, so .jsx shares it.
func GrammarFor(path string) Grammar {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsx":
		return GrammarTSX
	case ".ts", ".mts", ".cts":
		return GrammarTypeScript
	case ".js", ".jsx", ".mjs", ".cjs":
		return GrammarJavaScript
	default:
		return GrammarUnknown
	}
}

func (g Grammar) language() (unsafe.Pointer, error) {
	switch g {
	case GrammarJavaScript:
		return ts_javascript.Language(), nil
	case GrammarTypeScript:
		return ts_typescript.LanguageTypescript(), nil
	case GrammarTSX:
		return ts_typescript.LanguageTSX(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, g)
	}
}

// Manager hands out pooled parsers per grammar. Pools are created lazily.
// Callers own returned trees and must Close them.
type Manager struct {
	pools    map[Grammar]*parserPool
	poolSize int
	mutex    sync.RWMutex
	logger   *slog.Logger

	parses int
}

// Stats reports parser usage.
type Stats struct {
	ParsersCreated int
	ParsesCalled   int
}

// NewManager creates a manager whose pools hold up to poolSize parsers each.
// A poolSize of 0 matches the lint worker pool default.
func NewManager(poolSize int, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		pools:    make(map[Grammar]*parserPool),
		poolSize: util.PoolSize(poolSize),
		logger:   logger,
	}
}

// Parse parses source with the given grammar. Trees with syntax errors are
// still returned; partial trees still carry most attributes.
func (m *Manager) Parse(source []byte, g Grammar) (*ts.Tree, error) {
	pool, err := m.pool(g)
	if err != nil {
		return nil, err
	}

	m.mutex.Lock()
	m.parses++
	m.mutex.Unlock()

	p, err := pool.acquire()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire %s parser: %w", g, err)
	}
	tree := p.Parse(source, nil)
	pool.release(p)

	if tree == nil {
		return nil, fmt.Errorf("%s parser returned no tree", g)
	}
	if tree.RootNode().HasError() {
		m.logger.Debug("parse tree contains errors", "grammar", g.String())
	}
	return tree, nil
}

// ParseFile parses source with the grammar matching path.
func (m *Manager) ParseFile(path string, source []byte) (*ts.Tree, error) {
	g := GrammarFor(path)
	if g == GrammarUnknown {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
	return m.Parse(source, g)
}

// Stats returns a snapshot of usage counters.
func (m *Manager) Stats() Stats {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	created := 0
	for _, pool := range m.pools {
		created += pool.createdCount()
	}
	return Stats{ParsersCreated: created, ParsesCalled: m.parses}
}

// Close releases every pooled parser. The manager must not be used after.
func (m *Manager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, pool := range m.pools {
		pool.close()
	}
	m.logger.Debug("parser manager closed", "parses", m.parses)
	m.pools = make(map[Grammar]*parserPool)
	return nil
}

func (m *Manager) pool(g Grammar) (*parserPool, error) {
	m.mutex.RLock()
	pool, ok := m.pools[g]
	m.mutex.RUnlock()
	if ok {
		return pool, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if pool, ok = m.pools[g]; ok {
		return pool, nil
	}

	lang, err := g.language()
	if err != nil {
		return nil, err
	}
	pool = newParserPool(g, lang, m.poolSize, m.logger)
	m.pools[g] = pool
	m.logger.Debug("created parser pool", "grammar", g.String(), "max", m.poolSize)
	return pool, nil
}
