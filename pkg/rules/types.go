// Package rules implements the dark-mode heuristics applied to each class
// string and the engine that runs them.
package rules

import "github.com/gnana997/darklint/pkg/classname"

// PatternID identifies which rule produced a finding.
type PatternID string

const (
	PatternLowContrast              PatternID = "low-contrast"
	PatternMissingDarkVariant       PatternID = "missing-dark-variant"
	PatternTextWhiteWithoutBg       PatternID = "text-white-without-bg"
	PatternProseMissingInvert       PatternID = "prose-missing-invert"
	PatternGradientMissingDarkStops PatternID = "gradient-missing-dark-stops"
)

// AllPatterns lists every rule in evaluation order.
var AllPatterns = []PatternID{
	PatternLowContrast,
	PatternMissingDarkVariant,
	PatternTextWhiteWithoutBg,
	PatternProseMissingInvert,
	PatternGradientMissingDarkStops,
}

// Edit inserts text at a byte offset. Within a Finding the offset is
// relative to the class string; within a Violation it is relative to the
// source line.
type Edit struct {
	Offset int    `json:"offset" yaml:"offset"`
	Insert string `json:"insert" yaml:"insert"`
}

// Finding is one rule hit within a class string. Findings returned by the
// engine may be shared between callers and must not be modified.
type Finding struct {
	PatternID  PatternID
	Mode       classname.Mode
	Match      string
	Message    string
	Suggestion string
	Fix        *Edit
}

// Violation is a finding placed in a file.
type Violation struct {
	FilePath    string               `json:"file" yaml:"file"`
	Line        int                  `json:"line" yaml:"line"`
	Column      int                  `json:"column" yaml:"column"`
	PatternID   PatternID            `json:"pattern" yaml:"pattern"`
	Mode        classname.Mode       `json:"mode,omitempty" yaml:"mode,omitempty"`
	MatchedText string               `json:"matched_text" yaml:"matched_text"`
	LineContent string               `json:"line_content" yaml:"line_content"`
	ClassString string               `json:"class_string" yaml:"class_string"`
	Message     string               `json:"message" yaml:"message"`
	Suggestion  string               `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	SourceKind  classname.SourceKind `json:"source" yaml:"source"`
	Fix         *Edit                `json:"fix,omitempty" yaml:"fix,omitempty"`
}

// Subject is what a rule inspects: one class string plus its resolved
// pairs and line context.
type Subject struct {
	Class classname.ClassString
	Light classname.ResolvedPair
	Dark  classname.ResolvedPair

	// IconContext is set when the source line renders a check or close icon.
	IconContext bool
}

// Pair returns the resolved pair for mode.
func (s *Subject) Pair(mode classname.Mode) classname.ResolvedPair {
	if mode == classname.ModeDark {
		return s.Dark
	}
	return s.Light
}

// Rule is a single heuristic. Check never fails; no match means no
// findings.
type Rule interface {
	ID() PatternID
	Description() string
	Check(s *Subject) []Finding
}
