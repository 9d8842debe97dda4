package rules

import (
	"strconv"
	"strings"

	"github.com/gnana997/darklint/pkg/classname"
)

var propertyPrefix = map[classname.UtilityKind]string{
	classname.KindText:       "text-",
	classname.KindBackground: "bg-",
	classname.KindBorder:     "border-",
}

// suggester maps a light utility to a dark counterpart, first through the
// configured table and otherwise by mirroring the shade.
type suggester struct {
	table map[string]string
}

// forToken returns the dark class to add next to tok, carrying over tok's
// other variants: hover:text-gray-900 gives dark:hover:text-gray-50.
func (s *suggester) forToken(tok *classname.ClassToken) string {
	mapped, ok := s.table[tok.Utility]
	if !ok {
		mapped = derive(tok)
	}
	if mapped == "" {
		return ""
	}

	utility := strings.TrimPrefix(mapped, classname.VariantDark+":")
	variants := append([]string{classname.VariantDark}, tok.Variants...)
	return strings.Join(variants, ":") + ":" + utility
}

func derive(tok *classname.ClassToken) string {
	prefix, ok := propertyPrefix[tok.Property]
	if !ok || tok.Opacity != "" {
		return ""
	}

	switch {
	case tok.Color == "white":
		if tok.Property == classname.KindText {
			return ""
		}
		return prefix + "gray-900"
	case tok.Color == "black":
		return prefix + "white"
	case !tok.HasShade():
		return ""
	case tok.Property == classname.KindBackground && tok.Shade <= 200 && tok.Color != "gray":
		// Light tints become a translucent deep shade of the same family.
		return prefix + tok.Color + "-900/30"
	default:
		return prefix + tok.Color + "-" + strconv.Itoa(mirrorShade(tok.Shade))
	}
}

// mirrorShade maps 100..900 onto 900..100, except 500 which maps to 400.
func mirrorShade(shade int) int {
	switch {
	case shade == 500:
		return 400
	case shade <= 50:
		return 950
	case shade >= 950:
		return 50
	default:
		return 1000 - shade
	}
}
