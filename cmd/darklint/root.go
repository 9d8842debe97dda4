package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/gnana997/darklint/pkg/config"
	"github.com/gnana997/darklint/pkg/linter"
	"github.com/gnana997/darklint/pkg/report"
	"github.com/gnana997/darklint/pkg/util"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	root       string
	workers    int
	logLevel   string
	logFormat  string
}

type checkOptions struct {
	format   string
	fix      bool
	noBackup bool
	noColor  bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	g := &globalOptions{}
	o := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "darklint",
		Short: "Lint Tailwind class strings for dark-mode problems",
		Long: `darklint scans page, component and blog sources for Tailwind utility-class
strings and reports light-only colors, low-contrast pairs, text-white without a
dark backdrop, prose without prose-invert and gradients without dark stops.

Exit status is 0 when no violations are found, 1 when there are violations and
2 on fatal errors.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd, g, o, stdout, stderr)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	pf := cmd.PersistentFlags()
	pf.StringVar(&g.configPath, "config", "", "config file (default "+config.DefaultFile+" if present)")
	pf.StringVar(&g.root, "root", ".", "project root the configured directories are relative to")
	pf.IntVar(&g.workers, "workers", 0, "lint workers (0 = auto, 1 = sequential)")
	pf.StringVar(&g.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	pf.StringVar(&g.logFormat, "log-format", "text", "log format: text, json")

	f := cmd.Flags()
	f.StringVar(&o.format, "format", report.FormatText, "report format: text, json, yaml")
	f.BoolVar(&o.fix, "fix", false, "insert suggested dark: variants where the position is exact")
	f.BoolVar(&o.noBackup, "no-backup", false, "do not write .bak files when fixing")
	f.BoolVar(&o.noColor, "no-color", false, "disable colors in the text report")

	cmd.AddCommand(
		newWatchCmd(g, stdout, stderr),
		newServeCmd(g, stderr),
		newRulesCmd(g, stdout, stderr),
		newVersionCmd(stdout),
	)

	return cmd
}

// setup loads configuration and builds the logger and linter.
func (g *globalOptions) setup(stderr io.Writer) (*linter.Linter, *slog.Logger, error) {
	logConfig, err := util.ParseLoggerConfig(g.logLevel, g.logFormat)
	if err != nil {
		return nil, nil, err
	}
	logConfig.Output = stderr
	logger := util.NewLogger(logConfig)

	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, nil, err
	}
	if g.workers < 0 {
		return nil, nil, fmt.Errorf("--workers must not be negative")
	}
	if g.workers > 0 {
		cfg.Workers = g.workers
	}

	l, err := linter.New(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return l, logger, nil
}

func runCheck(cmd *cobra.Command, g *globalOptions, o *checkOptions, stdout, stderr io.Writer) error {
	formatter, err := report.NewFormatter(o.format, &report.Options{Writer: stdout, NoColor: o.noColor})
	if err != nil {
		return err
	}

	l, logger, err := g.setup(stderr)
	if err != nil {
		return err
	}
	defer l.Close()

	ctx := cmd.Context()
	rep, err := l.Run(ctx, g.root)
	if err != nil {
		return err
	}

	if o.fix && rep.Failed() {
		result, err := l.ApplyFixes(rep, !o.noBackup)
		if err != nil {
			return fmt.Errorf("failed to apply fixes: %w", err)
		}
		fmt.Fprintf(stderr, "Applied %d fixes in %d files\n", result.EditsApplied, result.FilesChanged)
		logger.Info("fixes applied", "files", result.FilesChanged, "edits", result.EditsApplied)

		if result.EditsApplied > 0 {
			if rep, err = l.Run(ctx, g.root); err != nil {
				return err
			}
		}
	}

	if err := formatter.Format(rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if rep.Failed() {
		return &ExitError{Code: linter.ExitViolations}
	}
	return nil
}
