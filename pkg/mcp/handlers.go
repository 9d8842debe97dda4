package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/darklint/pkg/classname"
	"github.com/gnana997/darklint/pkg/rules"
)

const defaultSnippetPath = "snippet.tsx"

type findingResult struct {
	Pattern    rules.PatternID `json:"pattern"`
	Mode       classname.Mode  `json:"mode,omitempty"`
	Match      string          `json:"match"`
	Message    string          `json:"message"`
	Suggestion string          `json:"suggestion,omitempty"`
}

type lintClassesResult struct {
	Classes  string          `json:"classes"`
	Findings []findingResult `json:"findings"`
}

type lintSourceResult struct {
	Path       string            `json:"path"`
	Total      int               `json:"total"`
	Violations []rules.Violation `json:"violations"`
}

func (s *Server) handleLintClasses(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	classes, err := req.RequireString("classes")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	line := req.GetString("line", "")

	out := lintClassesResult{Classes: classes, Findings: []findingResult{}}
	for _, f := range s.linter.Engine().Check(classes, line) {
		out.Findings = append(out.Findings, findingResult{
			Pattern:    f.PatternID,
			Mode:       f.Mode,
			Match:      f.Match,
			Message:    f.Message,
			Suggestion: f.Suggestion,
		})
	}
	recordViolations(ctx, len(out.Findings))

	return jsonResult(out)
}

func (s *Server) handleLintSource(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := req.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path := req.GetString("path", defaultSnippetPath)

	violations, err := s.linter.LintSource(path, []byte(code))
	if err != nil {
		return mcp.NewToolResultErrorFromErr("lint failed", err), nil
	}
	if violations == nil {
		violations = []rules.Violation{}
	}
	recordViolations(ctx, len(violations))

	return jsonResult(lintSourceResult{Path: path, Total: len(violations), Violations: violations})
}

func (s *Server) handleLintFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	abs, err := s.resolve(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fr, err := s.linter.LintFile(s.realRoot, abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return mcp.NewToolResultError(fmt.Sprintf("file not found: %s", path)), nil
		}
		return mcp.NewToolResultErrorFromErr("lint failed", err), nil
	}
	if fr.Violations == nil {
		fr.Violations = []rules.Violation{}
	}
	recordViolations(ctx, len(fr.Violations))

	return jsonResult(lintSourceResult{Path: fr.Path, Total: len(fr.Violations), Violations: fr.Violations})
}

func (s *Server) handleListRules(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.linter.Engine().Catalog())
}

// resolve maps a root-relative path to an absolute path inside root. Both
// the lexical path and its symlink target must stay under root.
func (s *Server) resolve(path string) (string, error) {
	var abs string
	if filepath.IsAbs(path) {
		abs = filepath.Clean(path)
	} else {
		abs = filepath.Join(s.root, filepath.FromSlash(path))
	}
	if !within(s.root, abs) {
		return "", fmt.Errorf("path %q is outside the project root", path)
	}

	target, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("file not found: %s", path)
		}
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	if !within(s.realRoot, target) {
		return "", fmt.Errorf("path %q is outside the project root", path)
	}
	return target, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
