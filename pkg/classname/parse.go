package classname

import (
	"strconv"
	"strings"
)

// colorPrefixes maps utility prefixes to the kind they produce when the
// remainder is a color.
var colorPrefixes = []struct {
	prefix string
	kind   UtilityKind
}{
	{"text-", KindText},
	{"bg-", KindBackground},
	{"border-", KindBorder},
}

var colorKeywords = map[string]bool{
	"white":       true,
	"black":       true,
	"transparent": true,
	"current":     true,
	"inherit":     true,
}

// validShades are the Tailwind palette steps.
var validShades = map[int]bool{
	50: true, 100: true, 200: true, 300: true, 400: true,
	500: true, 600: true, 700: true, 800: true, 900: true, 950: true,
}

// nonColorFamilies look like "family-shade" but are not colors
// (bg-opacity-50, border-x-2 and friends).
var nonColorFamilies = map[string]bool{
	"opacity": true,
	"spacing": true,
	"x":       true,
	"y":       true,
	"t":       true,
	"r":       true,
	"b":       true,
	"l":       true,
	"s":       true,
	"e":       true,
}

var arbitraryColorPrefixes = []string{"#", "rgb", "hsl", "oklch", "oklab", "lab(", "lch(", "color(", "color:"}

// Parse splits a whitespace-separated class string into tokens. Empty
// tokens are dropped; offsets point into value.
func Parse(value string) []ClassToken {
	var tokens []ClassToken

	start := -1
	for i := 0; i <= len(value); i++ {
		if i < len(value) && !isSpace(value[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			tokens = append(tokens, ParseToken(value[start:i], start))
			start = -1
		}
	}

	return tokens
}

// ParseToken parses a single class token found at offset within its class
// string.
func ParseToken(raw string, offset int) ClassToken {
	segments := splitOutsideBrackets(raw, ':')
	utility := segments[len(segments)-1]

	tok := ClassToken{
		Raw:    raw,
		Offset: offset,
	}
	if len(segments) > 1 {
		tok.Variants = segments[:len(segments)-1]
	}

	// Tailwind v3 uses a leading "!", v4 a trailing one.
	if strings.HasPrefix(utility, "!") {
		tok.Important = true
		utility = utility[1:]
	} else if strings.HasSuffix(utility, "!") {
		tok.Important = true
		utility = utility[:len(utility)-1]
	}
	tok.Utility = utility

	tok.Kind, tok.Property = KindOther, KindOther
	for _, cp := range colorPrefixes {
		if !strings.HasPrefix(utility, cp.prefix) {
			continue
		}
		fragment := utility[len(cp.prefix):]
		color, opacity := splitOpacity(fragment)
		if !IsColor(color) {
			break
		}

		tok.Property = cp.kind
		tok.Kind = cp.kind
		if opacity != "" {
			tok.Kind = KindOpacityModified
			tok.Opacity = opacity
		}
		tok.Color, tok.Shade = splitShade(color)
		break
	}

	return tok
}

// IsColor reports whether a utility remainder names a color: a keyword, a
// "family-shade" pair, or an arbitrary color value.
func IsColor(fragment string) bool {
	if fragment == "" {
		return false
	}
	if colorKeywords[fragment] {
		return true
	}

	if strings.HasPrefix(fragment, "[") && strings.HasSuffix(fragment, "]") {
		inner := strings.ToLower(fragment[1 : len(fragment)-1])
		for _, p := range arbitraryColorPrefixes {
			if strings.HasPrefix(inner, p) {
				return true
			}
		}
		return false
	}

	family, shade := splitShade(fragment)
	if shade == 0 || !validShades[shade] || nonColorFamilies[family] {
		return false
	}
	for _, r := range family {
		if (r < 'a' || r > 'z') && r != '-' {
			return false
		}
	}
	return true
}

// splitShade decomposes "gray-900" into ("gray", 900). Fragments without a
// trailing integer segment come back whole with shade 0.
func splitShade(color string) (string, int) {
	idx := strings.LastIndexByte(color, '-')
	if idx <= 0 || strings.HasPrefix(color, "[") {
		return color, 0
	}
	shade, err := strconv.Atoi(color[idx+1:])
	if err != nil || shade <= 0 {
		return color, 0
	}
	return color[:idx], shade
}

// splitOpacity separates a trailing "/alpha" that is not inside brackets.
func splitOpacity(fragment string) (string, string) {
	depth := 0
	for i := len(fragment) - 1; i >= 0; i-- {
		switch fragment[i] {
		case ']', ')':
			depth++
		case '[', '(':
			depth--
		case '/':
			if depth == 0 {
				return fragment[:i], fragment[i+1:]
			}
		}
	}
	return fragment, ""
}

// splitOutsideBrackets splits s on sep, ignoring separators inside [...]
// or (...), so arbitrary values like bg-[url(https://x)] stay intact.
func splitOutsideBrackets(s string, sep byte) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(':
			depth++
		case ']', ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	return append(parts, s[last:])
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
