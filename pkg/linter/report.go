package linter

import (
	"sort"

	"github.com/google/uuid"

	"github.com/gnana997/darklint/pkg/rules"
)

// Process exit codes.
const (
	ExitClean      = 0
	ExitViolations = 1
	ExitFatal      = 2
)

// FileReport holds the violations found in one file.
type FileReport struct {
	// Path is relative to the run root, with forward slashes.
	Path       string            `json:"path" yaml:"path"`
	AbsPath    string            `json:"-" yaml:"-"`
	Violations []rules.Violation `json:"violations" yaml:"violations"`
}

// Report accumulates per-file results for one run. Add is not safe for
// concurrent use; the run funnels results through a single collector.
type Report struct {
	RunID           string                  `json:"run_id" yaml:"run_id"`
	Root            string                  `json:"root" yaml:"root"`
	FilesChecked    int                     `json:"files_checked" yaml:"files_checked"`
	FilesWithErrors int                     `json:"files_with_errors" yaml:"files_with_errors"`
	TotalErrors     int                     `json:"total_errors" yaml:"total_errors"`
	ByPattern       map[rules.PatternID]int `json:"by_pattern" yaml:"by_pattern"`

	// Files lists only files with at least one violation.
	Files []FileReport `json:"files" yaml:"files"`
}

// NewReport starts an empty report for root.
func NewReport(root string) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Root:      root,
		ByPattern: make(map[rules.PatternID]int),
		Files:     []FileReport{},
	}
}

// Add records one checked file.
func (r *Report) Add(fr FileReport) {
	r.FilesChecked++
	if len(fr.Violations) == 0 {
		return
	}

	r.FilesWithErrors++
	r.TotalErrors += len(fr.Violations)
	for _, v := range fr.Violations {
		r.ByPattern[v.PatternID]++
	}
	r.Files = append(r.Files, fr)
}

// Finalize orders files by path so output does not depend on scheduling.
func (r *Report) Finalize() {
	sort.Slice(r.Files, func(i, j int) bool {
		return r.Files[i].Path < r.Files[j].Path
	})
}

// Failed reports whether any violation was found.
func (r *Report) Failed() bool {
	return r.TotalErrors > 0
}

// ExitCode maps the report to ExitClean or ExitViolations.
func (r *Report) ExitCode() int {
	if r.Failed() {
		return ExitViolations
	}
	return ExitClean
}

// PatternCount is one row of the per-rule summary.
type PatternCount struct {
	PatternID rules.PatternID
	Count     int
}

// PatternCounts returns the per-rule totals, most frequent first.
func (r *Report) PatternCounts() []PatternCount {
	out := make([]PatternCount, 0, len(r.ByPattern))
	for id, n := range r.ByPattern {
		out = append(out, PatternCount{PatternID: id, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].PatternID < out[j].PatternID
	})
	return out
}
