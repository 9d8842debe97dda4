package rules

import (
	"fmt"

	"github.com/gnana997/darklint/pkg/classname"
)

// lowContrastRule flags same-mode text/background pairs that both come from
// the light palette (light mode) or both from the dark palette (dark mode).
type lowContrastRule struct {
	palettes map[classname.Mode]map[string]bool
	suggest  *suggester
}

func newLowContrastRule(light, dark []string, suggest *suggester) *lowContrastRule {
	return &lowContrastRule{
		palettes: map[classname.Mode]map[string]bool{
			classname.ModeLight: toSet(light),
			classname.ModeDark:  toSet(dark),
		},
		suggest: suggest,
	}
}

func (r *lowContrastRule) ID() PatternID { return PatternLowContrast }

func (r *lowContrastRule) Description() string {
	return "text and background resolved for the same mode are both light or both dark"
}

func (r *lowContrastRule) Check(s *Subject) []Finding {
	var out []Finding
	for _, mode := range classname.Modes {
		pair := s.Pair(mode)
		if !pair.Complete() {
			continue
		}
		palette := r.palettes[mode]
		if !palette[pair.Text.ColorName()] || !palette[pair.Background.ColorName()] {
			continue
		}

		f := Finding{
			PatternID: PatternLowContrast,
			Mode:      mode,
			Match:     pair.Text.Raw + " with " + pair.Background.Raw,
			Message:   fmt.Sprintf("Low contrast in %s mode: %s on %s", mode, pair.Text.Raw, pair.Background.Raw),
		}
		if mode == classname.ModeDark && !pair.Text.IsDark() {
			f.Suggestion = r.suggest.forToken(pair.Text)
		}
		out = append(out, f)
	}
	return out
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}
