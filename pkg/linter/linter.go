// Package linter wires discovery, extraction and the rule engine into a
// run over a project tree.
package linter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gnana997/darklint/pkg/config"
	"github.com/gnana997/darklint/pkg/extract"
	"github.com/gnana997/darklint/pkg/parser"
	"github.com/gnana997/darklint/pkg/rules"
	"github.com/gnana997/darklint/pkg/util"
)

// Linter lints files against one configuration. It is safe for concurrent
// use; Run, LintFile and LintSource may be called from many goroutines.
type Linter struct {
	cfg        *config.Config
	engine     *rules.Engine
	pipeline   *extract.Pipeline
	parsers    *parser.Manager
	files      util.FileCache
	discoverer *Discoverer
	logger     *slog.Logger
}

// New builds a linter from cfg. Close releases its parsers and mapped
// files.
func New(cfg *config.Config, logger *slog.Logger) (*Linter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	engine, err := rules.NewEngine(cfg.Rules, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build rule engine: %w", err)
	}

	var parsers *parser.Manager
	if cfg.HasExtractor(config.ExtractorJSXAST) {
		parsers = parser.NewManager(cfg.Workers, logger)
	}

	pipeline, err := extract.New(cfg, parsers)
	if err != nil {
		if parsers != nil {
			parsers.Close()
		}
		return nil, fmt.Errorf("failed to build extractors: %w", err)
	}

	cacheConfig := util.DefaultFileCacheConfig()
	cacheConfig.Logger = logger

	return &Linter{
		cfg:      cfg,
		engine:   engine,
		pipeline: pipeline,
		parsers:  parsers,
		files:    util.NewFileCache(cacheConfig),
		discoverer: &Discoverer{
			Directories: cfg.Directories,
			Extensions:  cfg.Extensions,
			Exclude:     cfg.Exclude,
			Logger:      logger,
		},
		logger: logger,
	}, nil
}

// Config returns the configuration the linter was built with.
func (l *Linter) Config() *config.Config { return l.cfg }

// Engine returns the rule engine.
func (l *Linter) Engine() *rules.Engine { return l.engine }

// Discover lists the files a run under root would lint.
func (l *Linter) Discover(root string) ([]string, error) {
	return l.discoverer.Discover(root)
}

// Watches reports whether path under root is a file a run would lint.
func (l *Linter) Watches(root, path string) bool {
	return l.discoverer.Matches(root, path)
}

// LintSource lints in-memory content. path is used for grammar selection
// and is copied into each violation as given.
func (l *Linter) LintSource(path string, src []byte) ([]rules.Violation, error) {
	candidates, err := l.pipeline.Extract(path, src)
	if err != nil {
		return nil, err
	}

	var out []rules.Violation
	for _, c := range candidates {
		// Source kinds only decide whether a fix is attached.
		for _, f := range l.engine.Check(c.Value, c.LineText) {
			out = append(out, newViolation(path, c, f))
		}
	}
	return out, nil
}

func newViolation(path string, c extract.Candidate, f rules.Finding) rules.Violation {
	v := rules.Violation{
		FilePath:    path,
		Line:        c.Line,
		Column:      c.Column,
		PatternID:   f.PatternID,
		Mode:        f.Mode,
		MatchedText: f.Match,
		LineContent: strings.TrimSpace(c.LineText),
		ClassString: c.Value,
		Message:     f.Message,
		Suggestion:  f.Suggestion,
		SourceKind:  c.Source,
	}
	if f.Fix != nil && c.Source.Fixable() {
		v.Fix = &rules.Edit{
			Offset: c.Offset() + f.Fix.Offset,
			Insert: f.Fix.Insert,
		}
	}
	return v
}

// LintFile reads and lints one file under root. Any read failure is
// returned as an error.
func (l *Linter) LintFile(root, path string) (FileReport, error) {
	rel, err := relPath(root, path)
	if err != nil {
		return FileReport{}, err
	}

	mf, err := l.files.Get(path)
	if err != nil {
		return FileReport{}, fmt.Errorf("failed to read file: %w", err)
	}
	defer func() {
		if err := l.files.Release(path); err != nil {
			l.logger.Debug("failed to release file", "file", path, "error", err)
		}
	}()

	violations, err := l.LintSource(rel, mf.Bytes())
	if err != nil {
		return FileReport{}, fmt.Errorf("failed to lint file: %w", err)
	}

	return FileReport{Path: rel, AbsPath: path, Violations: violations}, nil
}

// Run lints every discovered file under root. The first file error
// cancels the run and is returned; violations are never errors.
func (l *Linter) Run(ctx context.Context, root string) (*Report, error) {
	start := time.Now()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	files, err := l.Discover(absRoot)
	if err != nil {
		return nil, err
	}

	report := NewReport(absRoot)
	logger := l.logger.With("run_id", report.RunID)
	logger.Debug("discovered files", "root", absRoot, "files", len(files))

	g, gctx := errgroup.WithContext(ctx)

	pool := NewWorkerPool(gctx, l.cfg.Workers, func(_ context.Context, path string) (FileReport, error) {
		return l.LintFile(absRoot, path)
	}, logger)
	pool.Start()

	g.Go(func() error {
		defer pool.FinishSubmitting()
		for i, f := range files {
			if err := pool.Submit(Job{Path: f, ID: i}); err != nil {
				return err
			}
		}
		return nil
	})

	g.Go(func() error {
		for received := 0; received < len(files); received++ {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case res := <-pool.Results():
				report.Add(res.Report)
			case ferr := <-pool.Errors():
				return ferr
			}
		}
		return nil
	})

	err = g.Wait()
	pool.Stop()
	if err != nil {
		var ferr *FileError
		if errors.As(err, &ferr) {
			return nil, err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("run cancelled: %w", ctxErr)
		}
		return nil, err
	}

	report.Finalize()

	logger.Info("lint complete",
		"files", report.FilesChecked,
		"violations", report.TotalErrors,
		"ms", time.Since(start).Milliseconds())

	return report, nil
}

// FileCacheStats exposes the mapped file cache counters.
func (l *Linter) FileCacheStats() util.FileCacheStats {
	return l.files.Stats()
}

// Close releases parsers and mapped files.
func (l *Linter) Close() error {
	var errs []error
	if l.parsers != nil {
		if err := l.parsers.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := l.files.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func relPath(root, path string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("failed to resolve root path: %w", err)
	}
	rel, err := filepath.Rel(absRoot, path)
	if err != nil {
		return "", fmt.Errorf("failed to relativize %s: %w", path, err)
	}
	return filepath.ToSlash(rel), nil
}
