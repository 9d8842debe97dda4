package rules

import (
	"fmt"
	"strings"

	"github.com/gnana997/darklint/pkg/classname"
	"github.com/gnana997/darklint/pkg/config"
)

const proseInvert = "prose-invert"

// proseRule flags typography-plugin classes without prose-invert. The
// plugin colors nested markup for a light surface.
type proseRule struct{}

func (proseRule) ID() PatternID { return PatternProseMissingInvert }

func (proseRule) Description() string {
	return "prose or prose-* without prose-invert"
}

func (proseRule) Check(s *Subject) []Finding {
	if s.Class.HasUtility(proseInvert) {
		return nil
	}

	var marker *classname.ClassToken
	for i := range s.Class.Tokens {
		tok := &s.Class.Tokens[i]
		if tok.Utility != "prose" && !strings.HasPrefix(tok.Utility, "prose-") {
			continue
		}
		if marker == nil || (tok.Utility == "prose" && marker.Utility != "prose") {
			marker = tok
		}
	}
	if marker == nil {
		return nil
	}

	suggestion := classname.VariantDark + ":" + proseInvert
	return []Finding{{
		PatternID:  PatternProseMissingInvert,
		Match:      marker.Raw,
		Message:    fmt.Sprintf("%s without %s - nested text and links stay dark-on-dark in dark mode", marker.Raw, suggestion),
		Suggestion: suggestion,
		Fix:        &Edit{Offset: marker.End(), Insert: " " + suggestion},
	}}
}

// gradientRule flags configured light gradients that carry no dark stops.
type gradientRule struct {
	gradients []config.Gradient
}

func (r *gradientRule) ID() PatternID { return PatternGradientMissingDarkStops }

func (r *gradientRule) Description() string {
	return "known light gradient without dark:from-* or dark:to-* stops"
}

func (r *gradientRule) Check(s *Subject) []Finding {
	tokens := s.Class.Tokens
	if hasToken(tokens, func(t *classname.ClassToken) bool {
		return t.IsDark() && (strings.HasPrefix(t.Utility, "from-") || strings.HasPrefix(t.Utility, "to-"))
	}) {
		return nil
	}

	var out []Finding
	for _, g := range r.gradients {
		if findLight(tokens, g.Direction) == nil || findLight(tokens, g.From) == nil {
			continue
		}
		to := findLight(tokens, g.To)
		if to == nil {
			continue
		}

		suggestion := darkStop(g.From) + " " + darkStop(g.To)
		out = append(out, Finding{
			PatternID:  PatternGradientMissingDarkStops,
			Match:      g.Direction + " " + g.From + " " + g.To,
			Message:    fmt.Sprintf("Light gradient %s %s has no dark stops", g.From, g.To),
			Suggestion: suggestion,
			Fix:        &Edit{Offset: to.End(), Insert: " " + suggestion},
		})
	}
	return out
}

func findLight(tokens []classname.ClassToken, utility string) *classname.ClassToken {
	for i := range tokens {
		if tokens[i].Utility == utility && !tokens[i].IsDark() {
			return &tokens[i]
		}
	}
	return nil
}

// darkStop turns a light stop like from-green-50 into dark:from-green-900/20.
func darkStop(stop string) string {
	idx := strings.LastIndexByte(stop, '-')
	if idx <= 0 {
		return classname.VariantDark + ":" + stop
	}
	return classname.VariantDark + ":" + stop[:idx] + "-900/20"
}
