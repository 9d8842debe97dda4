package parser

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestGrammarFor(t *testing.T) {
	tests := map[string]Grammar{
		"pages/index.tsx":        GrammarTSX,
		"src/lib/cn.ts":          GrammarTypeScript,
		"src/lib/types.MTS":      GrammarTypeScript,
		"components/Button.jsx":  GrammarJavaScript,
		"app/page.js":            GrammarJavaScript,
		"content/blog/post.json": GrammarUnknown,
		"README":                 GrammarUnknown,
	}
	for path, want := range tests {
		assert.Equal(t, want, GrammarFor(path), path)
	}
}

func TestParse_TSX(t *testing.T) {
	m := NewManager(2, quietLogger())
	defer m.Close()

	tree, err := m.Parse([]byte(`export const A = () => <div className="bg-white">hi</div>;`), GrammarTSX)
	require.NoError(t, err)
	defer tree.Close()

	root := tree.RootNode()
	assert.Equal(t, "program", root.Kind())
	assert.Contains(t, root.ToSexp(), "jsx_attribute")
}

func TestParse_JavaScriptAcceptsJSX(t *testing.T) {
	m := NewManager(2, quietLogger())
	defer m.Close()

	tree, err := m.ParseFile("Button.jsx", []byte(`const B = () => <button className="text-white" />;`))
	require.NoError(t, err)
	defer tree.Close()

	assert.False(t, tree.RootNode().HasError())
}

func TestParse_PartialTreeOnSyntaxError(t *testing.T) {
	m := NewManager(1, quietLogger())
	defer m.Close()

	tree, err := m.Parse([]byte(`const x = <div className="a"`), GrammarTSX)
	require.NoError(t, err)
	defer tree.Close()
	assert.True(t, tree.RootNode().HasError())
}

func TestParseFile_Unsupported(t *testing.T) {
	m := NewManager(1, quietLogger())
	defer m.Close()

	_, err := m.ParseFile("post.json", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = m.Parse(nil, GrammarUnknown)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestParse_Concurrent(t *testing.T) {
	const poolSize = 4
	m := NewManager(poolSize, quietLogger())
	defer m.Close()

	grammars := []Grammar{GrammarJavaScript, GrammarTypeScript, GrammarTSX}
	source := []byte("const x = 1;")

	const perGrammar = 25
	var wg sync.WaitGroup
	errs := make(chan error, perGrammar*len(grammars))
	for _, g := range grammars {
		for i := 0; i < perGrammar; i++ {
			wg.Add(1)
			go func(g Grammar) {
				defer wg.Done()
				tree, err := m.Parse(source, g)
				if err != nil {
					errs <- err
					return
				}
				tree.Close()
			}(g)
		}
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}

	stats := m.Stats()
	assert.Equal(t, perGrammar*len(grammars), stats.ParsesCalled)
	assert.LessOrEqual(t, stats.ParsersCreated, poolSize*len(grammars))
	assert.GreaterOrEqual(t, stats.ParsersCreated, len(grammars))
}
