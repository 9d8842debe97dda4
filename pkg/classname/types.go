// Package classname parses Tailwind-style utility class strings into tokens
// and resolves which text/background colors are in effect per color mode.
package classname

import (
	"strconv"
	"strings"
)

// UtilityKind classifies what a utility styles.
type UtilityKind string

const (
	KindText            UtilityKind = "text"
	KindBackground      UtilityKind = "background"
	KindBorder          UtilityKind = "border"
	KindOpacityModified UtilityKind = "opacity-modified"
	KindOther           UtilityKind = "other"
)

// SourceKind records which extraction pattern produced a class string.
type SourceKind string

const (
	SourceDirect          SourceKind = "direct"
	SourceJSONEscaped     SourceKind = "json-escaped"
	SourceHelperCall      SourceKind = "helper-call"
	SourceTemplateLiteral SourceKind = "template-literal"
	SourceJSXAST          SourceKind = "jsx-ast"
)

// Fixable reports whether class strings of this kind map byte-for-byte onto
// the source line, so offsets inside them can be used to edit the line.
func (k SourceKind) Fixable() bool {
	switch k {
	case SourceDirect, SourceJSONEscaped, SourceHelperCall:
		return true
	default:
		return false
	}
}

// Variant names with special meaning to the resolver and rules.
const (
	VariantDark = "dark"
)

// ClassToken is one parsed utility class occurrence.
type ClassToken struct {
	// Raw is the token as written, e.g. "dark:hover:text-white".
	Raw string `json:"raw"`

	// Variants are the prefix modifiers in source order, e.g. ["dark", "hover"].
	Variants []string `json:"variants,omitempty"`

	// Utility is the last colon-separated segment, e.g. "text-white".
	Utility string `json:"utility"`

	// Kind is the classification used for contrast resolution. Tokens with an
	// opacity suffix are KindOpacityModified regardless of prefix.
	Kind UtilityKind `json:"kind"`

	// Property is the prefix-derived kind before opacity reclassification,
	// so "dark:bg-green-900/30" still counts as a background counterpart.
	Property UtilityKind `json:"property"`

	// Color is the color family ("gray", "white", "[#FF3131]"), empty when the
	// utility carries no color.
	Color string `json:"color,omitempty"`

	// Shade is the numeric intensity suffix; 0 means no shade.
	Shade int `json:"shade,omitempty"`

	// Opacity is the alpha suffix after "/", e.g. "10" for "bg-white/10".
	Opacity string `json:"opacity,omitempty"`

	// Important is set for "!"-prefixed utilities.
	Important bool `json:"important,omitempty"`

	// Offset is the byte offset of Raw within the parsed class string.
	Offset int `json:"offset"`
}

// HasShade reports whether the token carries a numeric shade.
func (t ClassToken) HasShade() bool { return t.Shade > 0 }

// HasVariant reports whether v is among the token's variants.
func (t ClassToken) HasVariant(v string) bool {
	for _, got := range t.Variants {
		if got == v {
			return true
		}
	}
	return false
}

// IsDark reports whether the token only applies in dark mode.
func (t ClassToken) IsDark() bool { return t.HasVariant(VariantDark) }

// IsBare reports whether the token has no variants at all.
func (t ClassToken) IsBare() bool { return len(t.Variants) == 0 }

// ColorName returns the color without the utility prefix: "gray-900",
// "white", "[#FF3131]". Empty when the token has no color.
func (t ClassToken) ColorName() string {
	if t.Color == "" {
		return ""
	}
	if t.HasShade() {
		return t.Color + "-" + strconv.Itoa(t.Shade)
	}
	return t.Color
}

// End returns the byte offset just past Raw within the class string.
func (t ClassToken) End() int { return t.Offset + len(t.Raw) }

// ClassString is the ordered token list of one attribute occurrence.
type ClassString struct {
	Value  string       `json:"value"`
	Tokens []ClassToken `json:"tokens"`
	Source SourceKind   `json:"source"`
}

// NewClassString parses value and tags it with its extraction source, which
// may be empty when the origin is unknown.
func NewClassString(value string, source SourceKind) ClassString {
	return ClassString{
		Value:  value,
		Tokens: Parse(value),
		Source: source,
	}
}

// HasUtility reports whether any token's utility equals u, ignoring variants.
func (cs ClassString) HasUtility(u string) bool {
	for _, tok := range cs.Tokens {
		if tok.Utility == u {
			return true
		}
	}
	return false
}

// HasBareUtility reports whether a variant-free token with utility u exists.
func (cs ClassString) HasBareUtility(u string) bool {
	for _, tok := range cs.Tokens {
		if tok.Utility == u && tok.IsBare() {
			return true
		}
	}
	return false
}

// HasUtilityPrefix reports whether any token's utility starts with prefix.
func (cs ClassString) HasUtilityPrefix(prefix string) bool {
	for _, tok := range cs.Tokens {
		if strings.HasPrefix(tok.Utility, prefix) {
			return true
		}
	}
	return false
}
