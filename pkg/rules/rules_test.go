package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/darklint/pkg/config"
)

func findingsFor(t *testing.T, e *Engine, id PatternID, class string) []Finding {
	t.Helper()
	var out []Finding
	for _, f := range e.Check(class, "") {
		if f.PatternID == id {
			out = append(out, f)
		}
	}
	return out
}

func TestMissingDarkVariant(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		name  string
		class string
		want  []string
	}{
		{"border color", "border border-gray-200", []string{"border-gray-200"}},
		{"black text", "text-black", []string{"text-black"}},
		{"hover variant still checked", "hover:text-gray-900", []string{"hover:text-gray-900"}},
		{"allow-listed accent", "text-green-600 bg-blue-700", nil},
		{"shade 50 not checked", "bg-gray-50", nil},
		{"shade 950 not checked", "bg-gray-950", nil},
		{"unchecked family", "bg-slate-100", nil},
		{"arbitrary color not checked", "bg-[#FFFFF5]", nil},
		{"dark counterpart of same property", "bg-white dark:bg-gray-900", nil},
		{"dark opacity counterpart", "bg-green-100 dark:bg-green-900/30", nil},
		{"over-approximation keeps interactive dark", "text-gray-900 dark:hover:text-white", nil},
		{"other property does not count", "text-gray-900 dark:bg-gray-900", []string{"text-gray-900"}},
		{"white overlay exempts bg-white", "bg-white bg-white/10", nil},
		{"accent text on accent tint", "text-purple-600 bg-green-50", nil},
		{"accent needs tint", "text-purple-600", []string{"text-purple-600"}},
		{"text-white has its own rule", "text-white bg-blue-600", nil},
		{"opacity token ignored", "text-gray-900/80", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, f := range findingsFor(t, e, PatternMissingDarkVariant, tt.class) {
				got = append(got, f.Match)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMissingDarkVariant_SuggestionAndFix(t *testing.T) {
	e := newTestEngine(t)

	tests := []struct {
		class      string
		suggestion string
	}{
		{"text-gray-900", "dark:text-gray-50"},
		{"bg-gray-100", "dark:bg-gray-700"},
		{"border-gray-200", "dark:border-gray-700"},
		{"hover:bg-white", "dark:hover:bg-gray-900"},
		{"text-indigo-700", "dark:text-indigo-300"},
		{"text-teal-500", "dark:text-teal-400"},
		{"bg-pink-100", "dark:bg-pink-900/30"},
		{"bg-gray-300", "dark:bg-gray-700"},
		{"bg-black", "dark:bg-white"},
		{"border-white", "dark:border-gray-900"},
	}

	for _, tt := range tests {
		t.Run(tt.class, func(t *testing.T) {
			found := findingsFor(t, e, PatternMissingDarkVariant, "p-4 "+tt.class)
			require.Len(t, found, 1)
			assert.Equal(t, tt.suggestion, found[0].Suggestion)
			require.NotNil(t, found[0].Fix)
			assert.Equal(t, 4+len(tt.class), found[0].Fix.Offset)
			assert.Equal(t, " "+tt.suggestion, found[0].Fix.Insert)
		})
	}
}

func TestMissingDarkVariant_ConfiguredSuggestionOverride(t *testing.T) {
	e := newTestEngine(t, func(c *config.RuleConfig) {
		c.Suggestions["bg-white"] = "dark:bg-slate-950"
	})

	found := findingsFor(t, e, PatternMissingDarkVariant, "bg-white")
	require.Len(t, found, 1)
	assert.Equal(t, "dark:bg-slate-950", found[0].Suggestion)
}

func TestTextWhiteWithoutBg(t *testing.T) {
	e := newTestEngine(t)

	flagged := []string{
		"text-white",
		"text-white bg-gray-500",
		"text-white bg-white",
		"!text-white p-2",
	}
	for _, class := range flagged {
		assert.Len(t, findingsFor(t, e, PatternTextWhiteWithoutBg, class), 1, class)
	}

	clean := []string{
		"text-white bg-blue-600",
		"text-white bg-emerald-950",
		"text-white bg-black",
		"text-white bg-[#FF3131]",
		"text-white bg-gradient-to-r from-blue-500 to-purple-600",
		"text-white backdrop-blur-md",
		"text-white bg-white/10",
		"text-white bg-transparent",
		"text-white italic",
		"hover:text-white",
		"dark:text-white",
		"text-white/80",
	}
	for _, class := range clean {
		assert.Empty(t, findingsFor(t, e, PatternTextWhiteWithoutBg, class), class)
	}
}

func TestTextWhiteWithoutBg_IconLine(t *testing.T) {
	e := newTestEngine(t)

	assert.Empty(t, e.Check("text-white", `<CheckCircle className="text-white" />`))
	assert.Empty(t, e.Check("text-white", `<XIcon className="text-white" />`))
	assert.NotEmpty(t, e.Check("text-white", `<span className="text-white" />`))
}

func TestProseMissingInvert(t *testing.T) {
	e := newTestEngine(t)

	found := findingsFor(t, e, PatternProseMissingInvert, "prose prose-lg max-w-none")
	require.Len(t, found, 1)
	assert.Equal(t, "prose", found[0].Match)
	assert.Equal(t, "dark:prose-invert", found[0].Suggestion)
	assert.Equal(t, &Edit{Offset: 5, Insert: " dark:prose-invert"}, found[0].Fix)

	found = findingsFor(t, e, PatternProseMissingInvert, "md:prose-xl")
	require.Len(t, found, 1)
	assert.Equal(t, "md:prose-xl", found[0].Match)

	assert.Empty(t, findingsFor(t, e, PatternProseMissingInvert, "prose prose-invert"))
	assert.Empty(t, findingsFor(t, e, PatternProseMissingInvert, "prose dark:prose-invert"))
	assert.Empty(t, findingsFor(t, e, PatternProseMissingInvert, "dark:prose-invert"))
	assert.Empty(t, findingsFor(t, e, PatternProseMissingInvert, "text-prose"))
}

func TestGradientMissingDarkStops(t *testing.T) {
	e := newTestEngine(t)

	class := "bg-gradient-to-r from-green-50 to-emerald-50 p-6"
	found := findingsFor(t, e, PatternGradientMissingDarkStops, class)
	require.Len(t, found, 1)
	assert.Equal(t, "bg-gradient-to-r from-green-50 to-emerald-50", found[0].Match)
	assert.Equal(t, "dark:from-green-900/20 dark:to-emerald-900/20", found[0].Suggestion)
	assert.Equal(t, len("bg-gradient-to-r from-green-50 to-emerald-50"), found[0].Fix.Offset)

	for _, ok := range []string{
		"bg-gradient-to-r from-green-50 to-emerald-50 dark:from-green-900/20",
		"bg-gradient-to-r from-green-50 to-emerald-50 dark:to-gray-900",
		"bg-gradient-to-l from-green-50 to-emerald-50",
		"bg-gradient-to-r from-blue-50 to-emerald-50",
	} {
		assert.Empty(t, findingsFor(t, e, PatternGradientMissingDarkStops, ok), ok)
	}
}

func TestGradientMissingDarkStops_Configured(t *testing.T) {
	e := newTestEngine(t, func(c *config.RuleConfig) {
		c.Gradients = append(c.Gradients, config.Gradient{
			Direction: "bg-gradient-to-br", From: "from-blue-50", To: "to-indigo-100",
		})
	})

	found := findingsFor(t, e, PatternGradientMissingDarkStops, "bg-gradient-to-br from-blue-50 to-indigo-100")
	require.Len(t, found, 1)
	assert.Equal(t, "dark:from-blue-900/20 dark:to-indigo-900/20", found[0].Suggestion)
}

func TestRuleDescriptions(t *testing.T) {
	e := newTestEngine(t)
	seen := map[PatternID]bool{}
	for _, r := range e.Rules() {
		assert.NotEmpty(t, r.Description(), r.ID())
		seen[r.ID()] = true
	}
	for _, id := range AllPatterns {
		assert.True(t, seen[id], id)
	}
}
