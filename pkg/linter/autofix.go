package linter

import (
	"bytes"
	"fmt"
	"os"
	"sort"

	"github.com/gnana997/darklint/pkg/rules"
)

// BackupSuffix is appended to a file's name for the pre-fix copy.
const BackupSuffix = ".bak"

// FixResult summarizes an ApplyFixes call.
type FixResult struct {
	FilesChanged int
	EditsApplied int
}

// ApplyFixes inserts every violation fix in report into its source file.
// Edits on one line are applied right to left so earlier offsets stay
// valid. Identical edits at the same position are applied once. When
// backup is set the original content is first written to path+".bak".
func (l *Linter) ApplyFixes(report *Report, backup bool) (FixResult, error) {
	var result FixResult

	for _, fr := range report.Files {
		edits := fileEdits(fr.Violations)
		if len(edits) == 0 {
			continue
		}

		path := fr.AbsPath
		if path == "" {
			return result, fmt.Errorf("%s: missing absolute path", fr.Path)
		}

		original, err := l.readCopy(path)
		if err != nil {
			return result, err
		}

		fixed, applied, err := applyEdits(original, edits)
		if err != nil {
			return result, fmt.Errorf("%s: %w", fr.Path, err)
		}
		if applied == 0 {
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return result, fmt.Errorf("failed to stat %s: %w", fr.Path, err)
		}

		if backup {
			if err := os.WriteFile(path+BackupSuffix, original, info.Mode().Perm()); err != nil {
				return result, fmt.Errorf("failed to write backup for %s: %w", fr.Path, err)
			}
		}
		if err := os.WriteFile(path, fixed, info.Mode().Perm()); err != nil {
			return result, fmt.Errorf("failed to write %s: %w", fr.Path, err)
		}

		l.logger.Info("applied fixes", "file", fr.Path, "edits", applied)
		result.FilesChanged++
		result.EditsApplied += applied
	}

	return result, nil
}

// readCopy reads path through the file cache and returns a private copy,
// since the mapping is released before the file is rewritten.
func (l *Linter) readCopy(path string) ([]byte, error) {
	mf, err := l.files.Get(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	content := bytes.Clone(mf.Bytes())
	if err := l.files.Release(path); err != nil {
		return nil, fmt.Errorf("failed to release %s: %w", path, err)
	}
	return content, nil
}

type lineEdit struct {
	line int
	rules.Edit
}

func fileEdits(violations []rules.Violation) []lineEdit {
	var out []lineEdit
	for _, v := range violations {
		if v.Fix != nil {
			out = append(out, lineEdit{line: v.Line, Edit: *v.Fix})
		}
	}
	return out
}

// applyEdits returns content with edits inserted and how many were
// applied. Line endings are preserved.
func applyEdits(content []byte, edits []lineEdit) ([]byte, int, error) {
	lines := bytes.SplitAfter(content, []byte("\n"))

	byLine := make(map[int][]rules.Edit)
	for _, e := range edits {
		byLine[e.line] = append(byLine[e.line], e.Edit)
	}

	applied := 0
	for lineNo, lineEdits := range byLine {
		if lineNo < 1 || lineNo > len(lines) {
			return nil, 0, fmt.Errorf("fix for line %d is out of range", lineNo)
		}

		sort.SliceStable(lineEdits, func(i, j int) bool {
			return lineEdits[i].Offset > lineEdits[j].Offset
		})

		line := lines[lineNo-1]
		body := bytes.TrimRight(line, "\r\n")
		ending := line[len(body):]

		updated := bytes.Clone(body)
		seen := make(map[rules.Edit]bool)
		for _, e := range lineEdits {
			if seen[e] {
				continue
			}
			seen[e] = true
			if e.Offset < 0 || e.Offset > len(body) {
				return nil, 0, fmt.Errorf("fix offset %d out of range on line %d", e.Offset, lineNo)
			}
			updated = append(updated[:e.Offset], append([]byte(e.Insert), updated[e.Offset:]...)...)
			applied++
		}
		lines[lineNo-1] = append(updated, ending...)
	}

	return bytes.Join(lines, nil), applied, nil
}
