package extract

import (
	"regexp"
	"strings"

	"github.com/gnana997/darklint/pkg/classname"
)

var (
	directPattern      = regexp.MustCompile(`\b(?:className|class)=(?:"([^"]*)"|'([^']*)')`)
	jsonEscapedPattern = regexp.MustCompile(`\b(?:className|class)=\\"([^"\\]*)\\"`)
	templatePattern    = regexp.MustCompile("\\bclassName=\\{?`([^`]*)`")
	interpolation      = regexp.MustCompile(`\$\{[^}]*\}`)
)

// regexExtractor reports the first non-empty capture group of each match.
type regexExtractor struct {
	kind  classname.SourceKind
	re    *regexp.Regexp
	clean func(string) string
}

func (e *regexExtractor) Kind() classname.SourceKind { return e.kind }

func (e *regexExtractor) ExtractLine(line string) []Match {
	var out []Match
	for _, loc := range e.re.FindAllStringSubmatchIndex(line, -1) {
		for g := 2; g+1 < len(loc); g += 2 {
			if loc[g] < 0 {
				continue
			}
			value := line[loc[g]:loc[g+1]]
			if e.clean != nil {
				value = e.clean(value)
			}
			if strings.TrimSpace(value) != "" {
				out = append(out, Match{Value: value, Offset: loc[g], Kind: e.kind})
			}
			break
		}
	}
	return out
}

// NewDirectExtractor matches className="..." and class='...' attributes.
func NewDirectExtractor() LineExtractor {
	return &regexExtractor{kind: classname.SourceDirect, re: directPattern}
}

// NewJSONEscapedExtractor matches className=\"...\" as it appears inside
// JSON-serialized markup.
func NewJSONEscapedExtractor() LineExtractor {
	return &regexExtractor{kind: classname.SourceJSONEscaped, re: jsonEscapedPattern}
}

// NewHelperCallExtractor matches the first quoted argument of calls to the
// named class-combining helpers, e.g. cn("px-4 bg-white", ...). It returns
// nil when no helpers are given.
func NewHelperCallExtractor(helpers []string) LineExtractor {
	if len(helpers) == 0 {
		return nil
	}
	names := make([]string, len(helpers))
	for i, h := range helpers {
		names[i] = regexp.QuoteMeta(h)
	}
	re := regexp.MustCompile(`\b(?:` + strings.Join(names, "|") + `)\s*\(\s*(?:"([^"]*)"|'([^']*)')`)
	return &regexExtractor{kind: classname.SourceHelperCall, re: re}
}

// NewTemplateLiteralExtractor matches className={`...`} and className=`...`.
// Interpolations are removed since their values are unknown statically.
func NewTemplateLiteralExtractor() LineExtractor {
	return &regexExtractor{
		kind:  classname.SourceTemplateLiteral,
		re:    templatePattern,
		clean: StripInterpolations,
	}
}

// StripInterpolations removes every ${...} from a template literal body.
func StripInterpolations(s string) string {
	return interpolation.ReplaceAllString(s, "")
}
