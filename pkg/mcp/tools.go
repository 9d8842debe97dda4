package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool names.
const (
	ToolLintClasses = "lint_classes"
	ToolLintSource  = "lint_source"
	ToolLintFile    = "lint_file"
	ToolListRules   = "list_rules"
)

func lintClassesTool() mcp.Tool {
	return mcp.NewTool(ToolLintClasses,
		mcp.WithDescription("Check one Tailwind class string for dark-mode problems. Returns findings with suggested dark: counterparts."),
		mcp.WithString("classes",
			mcp.Required(),
			mcp.Description(`Space-separated utility classes, e.g. "bg-white text-gray-900"`),
		),
		mcp.WithString("line",
			mcp.Description("Optional full source line, used for icon-line exemptions"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func lintSourceTool() mcp.Tool {
	return mcp.NewTool(ToolLintSource,
		mcp.WithDescription("Lint a source snippet (TSX, TS or JSON) for dark-mode problems in className attributes, cn()/clsx() calls and template literals."),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Source code to lint"),
		),
		mcp.WithString("path",
			mcp.Description("File name used for reporting and grammar selection (default: snippet.tsx)"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func lintFileTool() mcp.Tool {
	return mcp.NewTool(ToolLintFile,
		mcp.WithDescription("Lint one file of the project on disk. Paths are resolved against the project root and must stay inside it."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path relative to the project root"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}

func listRulesTool() mcp.Tool {
	return mcp.NewTool(ToolListRules,
		mcp.WithDescription("List the dark-mode rules and whether each is enabled."),
		mcp.WithReadOnlyHintAnnotation(true),
	)
}
