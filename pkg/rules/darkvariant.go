package rules

import (
	"github.com/gnana997/darklint/pkg/classname"
)

// missingDarkVariantRule flags light color utilities that have no dark
// counterpart of the same property in the class string.
//
// Any dark token of the same property counts as a counterpart, so
// "text-gray-900 dark:hover:text-white" passes even though no resting dark
// text color is set. This is a known precision gap and is kept.
type missingDarkVariantRule struct {
	families map[string]bool
	allow    map[string]bool
	accents  map[string]bool
	suggest  *suggester
}

func newMissingDarkVariantRule(families, allow, accents []string, suggest *suggester) *missingDarkVariantRule {
	return &missingDarkVariantRule{
		families: toSet(families),
		allow:    toSet(allow),
		accents:  toSet(accents),
		suggest:  suggest,
	}
}

func (r *missingDarkVariantRule) ID() PatternID { return PatternMissingDarkVariant }

func (r *missingDarkVariantRule) Description() string {
	return "color utility without a dark: counterpart of the same property"
}

func (r *missingDarkVariantRule) Check(s *Subject) []Finding {
	tokens := s.Class.Tokens

	var out []Finding
	for i := range tokens {
		tok := &tokens[i]
		if !r.applies(tok) || r.exempt(tok, tokens) {
			continue
		}

		f := Finding{
			PatternID:  PatternMissingDarkVariant,
			Match:      tok.Raw,
			Message:    "Missing dark mode variant for " + tok.Raw,
			Suggestion: r.suggest.forToken(tok),
		}
		if f.Suggestion != "" {
			f.Fix = &Edit{Offset: tok.End(), Insert: " " + f.Suggestion}
		}
		out = append(out, f)
	}
	return out
}

// applies selects opaque, non-dark text/background/border tokens with a
// checked color: white, black, or a checked family at shade 100-900.
func (r *missingDarkVariantRule) applies(tok *classname.ClassToken) bool {
	if tok.IsDark() {
		return false
	}
	switch tok.Kind {
	case classname.KindText, classname.KindBackground, classname.KindBorder:
	default:
		return false
	}

	if !tok.HasShade() {
		return tok.Color == "white" || tok.Color == "black"
	}
	return tok.Shade >= 100 && tok.Shade <= 900 && tok.Shade%100 == 0 && r.families[tok.Color]
}

func (r *missingDarkVariantRule) exempt(tok *classname.ClassToken, tokens []classname.ClassToken) bool {
	// text-white is judged by its own rule.
	if tok.Utility == "text-white" {
		return true
	}
	if r.allow[tok.Utility] {
		return true
	}
	if hasDarkProperty(tokens, tok.Property) {
		return true
	}

	// bg-white under a bg-white/N overlay.
	if tok.Utility == "bg-white" && hasToken(tokens, func(t *classname.ClassToken) bool {
		return t.Kind == classname.KindOpacityModified && t.Property == classname.KindBackground && t.Color == "white"
	}) {
		return true
	}

	// Accent text on an accent tint, e.g. text-green-600 on bg-blue-50.
	if tok.Kind == classname.KindText && tok.Shade == 600 && r.accents[tok.Color] {
		return hasToken(tokens, func(t *classname.ClassToken) bool {
			return t.Kind == classname.KindBackground && t.Shade == 50 && r.accents[t.Color]
		})
	}
	return false
}

func hasDarkProperty(tokens []classname.ClassToken, property classname.UtilityKind) bool {
	return hasToken(tokens, func(t *classname.ClassToken) bool {
		return t.IsDark() && t.Property == property
	})
}

func hasToken(tokens []classname.ClassToken, match func(*classname.ClassToken) bool) bool {
	for i := range tokens {
		if match(&tokens[i]) {
			return true
		}
	}
	return false
}
