package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/darklint/pkg/classname"
	"github.com/gnana997/darklint/pkg/config"
	"github.com/gnana997/darklint/pkg/parser"
	"github.com/gnana997/darklint/pkg/util"
)

func TestDirectExtractor(t *testing.T) {
	tests := []struct {
		line   string
		values []string
	}{
		{`<div className="bg-white text-gray-900">`, []string{"bg-white text-gray-900"}},
		{`<div class='p-4 text-white'>`, []string{"p-4 text-white"}},
		{`<a className="a" /><b class="b" />`, []string{"a", "b"}},
		{`<div className="">`, nil},
		{`<div className={styles.card}>`, nil},
		{`const subclass="x"`, nil},
	}
	for _, tt := range tests {
		var got []string
		for _, m := range NewDirectExtractor().ExtractLine(tt.line) {
			assert.Equal(t, classname.SourceDirect, m.Kind)
			assert.Equal(t, m.Value, tt.line[m.Offset:m.Offset+len(m.Value)])
			got = append(got, m.Value)
		}
		assert.Equal(t, tt.values, got, tt.line)
	}
}

func TestJSONEscapedExtractor(t *testing.T) {
	line := `"content": "<p className=\"text-gray-700 bg-gray-50\">Hi</p>"`
	matches := NewJSONEscapedExtractor().ExtractLine(line)
	require.Len(t, matches, 1)
	assert.Equal(t, "text-gray-700 bg-gray-50", matches[0].Value)
	assert.Equal(t, classname.SourceJSONEscaped, matches[0].Kind)
	assert.Equal(t, "text-gray-700", line[matches[0].Offset:matches[0].Offset+13])

	assert.Empty(t, NewDirectExtractor().ExtractLine(line))
}

func TestHelperCallExtractor(t *testing.T) {
	e := NewHelperCallExtractor([]string{"cn", "clsx"})
	require.NotNil(t, e)

	matches := e.ExtractLine(`<div className={cn( "bg-white p-4", active && "ring")}>`)
	require.Len(t, matches, 1)
	assert.Equal(t, "bg-white p-4", matches[0].Value)
	assert.Equal(t, classname.SourceHelperCall, matches[0].Kind)

	matches = e.ExtractLine(`const a = clsx('text-white'); const b = cn("text-black")`)
	require.Len(t, matches, 2)
	assert.Equal(t, "text-white", matches[0].Value)
	assert.Equal(t, "text-black", matches[1].Value)

	assert.Empty(t, e.ExtractLine(`const x = scn("bg-white")`))
	assert.Empty(t, e.ExtractLine(`cn(base, "bg-white")`), "only the first argument counts")
}

func TestHelperCallExtractor_CustomNames(t *testing.T) {
	e := NewHelperCallExtractor([]string{"twMerge", "tw.join"})
	assert.Len(t, e.ExtractLine(`twMerge("bg-white")`), 1)
	assert.Len(t, e.ExtractLine(`tw.join("bg-white")`), 1)
	assert.Empty(t, e.ExtractLine(`twxjoin("bg-white")`))

	assert.Nil(t, NewHelperCallExtractor(nil))
}

func TestTemplateLiteralExtractor(t *testing.T) {
	e := NewTemplateLiteralExtractor()

	matches := e.ExtractLine("<div className={`bg-white ${active ? 'ring' : ''} text-gray-900`}>")
	require.Len(t, matches, 1)
	assert.Equal(t, "bg-white  text-gray-900", matches[0].Value)
	assert.Equal(t, classname.SourceTemplateLiteral, matches[0].Kind)

	matches = e.ExtractLine("<div className=`text-white`>")
	require.Len(t, matches, 1)
	assert.Equal(t, "text-white", matches[0].Value)

	assert.Empty(t, e.ExtractLine("<div className={`${dynamic}`}>"))
}

func TestStripInterpolations(t *testing.T) {
	assert.Equal(t, "a  b ", StripInterpolations("a ${x} b ${y.z}"))
	assert.Equal(t, "plain", StripInterpolations("plain"))
}

func TestPipeline_LineAndColumn(t *testing.T) {
	p, err := New(config.Default(), nil)
	require.NoError(t, err)

	src := "export function Card() {\r\n" +
		"  return <div className=\"bg-white\">\r\n" +
		"    <span className={cn(\"text-white\")} />\r\n" +
		"  </div>\r\n" +
		"}\r\n"

	cands, err := p.Extract("Card.tsx", []byte(src))
	require.NoError(t, err)
	require.Len(t, cands, 2)

	assert.Equal(t, "bg-white", cands[0].Value)
	assert.Equal(t, 2, cands[0].Line)
	assert.Equal(t, 26, cands[0].Column)
	assert.Equal(t, `  return <div className="bg-white">`, cands[0].LineText)
	assert.Equal(t, "bg-white", cands[0].LineText[cands[0].Offset():cands[0].Offset()+8])

	assert.Equal(t, "text-white", cands[1].Value)
	assert.Equal(t, classname.SourceHelperCall, cands[1].Source)
	assert.Equal(t, 3, cands[1].Line)
}

func TestPipeline_MultipleCandidatesPerLine(t *testing.T) {
	p, err := New(config.Default(), nil)
	require.NoError(t, err)

	line := `<div className="p-4"><i className={cn("text-white")} /></div>`
	cands := p.ExtractLine(line, 7)
	require.Len(t, cands, 2)
	for _, c := range cands {
		assert.Equal(t, 7, c.Line)
		assert.Equal(t, line, c.LineText)
	}
}

func TestNew_Errors(t *testing.T) {
	cfg := config.Default()
	cfg.Extractors = []string{config.ExtractorJSXAST}
	_, err := New(cfg, nil)
	assert.ErrorContains(t, err, "needs a parser manager")

	cfg.Extractors = []string{"bogus"}
	_, err = New(cfg, nil)
	assert.ErrorContains(t, err, `unknown extractor "bogus"`)
}

func TestPipeline_DedupesAcrossExtractors(t *testing.T) {
	parsers := parser.NewManager(1, util.NopLogger())
	defer parsers.Close()

	cfg := config.Default()
	cfg.Extractors = append(cfg.Extractors, config.ExtractorJSXAST)
	p, err := New(cfg, parsers)
	require.NoError(t, err)

	src := "const A = () => <div className=\"bg-white text-gray-900\" />;\n"
	cands, err := p.Extract("A.tsx", []byte(src))
	require.NoError(t, err)
	require.Len(t, cands, 1)
	assert.Equal(t, classname.SourceDirect, cands[0].Source)
}
