package rules

import (
	"regexp"

	"github.com/gnana997/darklint/pkg/classname"
)

const textWhiteMessage = "text-white without dark background - invisible on white backgrounds! " +
	"Add bg-blue-600 or use 'text-gray-900 dark:text-white'"

// textWhiteRule flags a bare text-white when nothing in the class string
// implies a dark or unknown backdrop.
type textWhiteRule struct {
	backdrops []*regexp.Regexp
	exempt    []string
}

func newTextWhiteRule(backdrops []*regexp.Regexp, exempt []string) *textWhiteRule {
	return &textWhiteRule{backdrops: backdrops, exempt: exempt}
}

func (r *textWhiteRule) ID() PatternID { return PatternTextWhiteWithoutBg }

func (r *textWhiteRule) Description() string {
	return "text-white with no dark backdrop in the same class string"
}

func (r *textWhiteRule) Check(s *Subject) []Finding {
	cs := s.Class
	if !cs.HasBareUtility("text-white") || s.IconContext {
		return nil
	}
	for _, c := range r.exempt {
		if cs.HasUtility(c) {
			return nil
		}
	}
	if r.hasBackdrop(cs.Tokens) {
		return nil
	}

	return []Finding{{
		PatternID:  PatternTextWhiteWithoutBg,
		Match:      "text-white",
		Message:    textWhiteMessage,
		Suggestion: "text-gray-900 dark:text-white",
	}}
}

func (r *textWhiteRule) hasBackdrop(tokens []classname.ClassToken) bool {
	for _, tok := range tokens {
		for _, re := range r.backdrops {
			if re.MatchString(tok.Utility) {
				return true
			}
		}
	}
	return false
}
