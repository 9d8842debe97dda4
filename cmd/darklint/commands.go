package main

import (
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/gnana997/darklint/pkg/linter"
	mcpserver "github.com/gnana997/darklint/pkg/mcp"
	"github.com/gnana997/darklint/pkg/report"
)

func newWatchCmd(g *globalOptions, stdout, stderr io.Writer) *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Lint once, then re-lint files as they change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, logger, err := g.setup(stderr)
			if err != nil {
				return err
			}
			defer l.Close()

			text := report.NewTextFormatter(&report.Options{Writer: stdout, NoColor: noColor})

			rep, err := l.Run(cmd.Context(), g.root)
			if err != nil {
				return err
			}
			if err := text.Format(rep); err != nil {
				return err
			}

			var mu sync.Mutex
			fw, err := linter.NewFileWatcher(l, g.root, linter.DefaultWatchOptions(), func(fr linter.FileReport) {
				mu.Lock()
				defer mu.Unlock()
				if err := text.FormatFile(fr); err != nil {
					logger.Warn("failed to print file report", "file", fr.Path, "error", err)
				}
			}, logger)
			if err != nil {
				return err
			}
			if err := fw.Start(); err != nil {
				return err
			}
			defer fw.Stop()

			fmt.Fprintln(stderr, "Watching for changes (Ctrl+C to stop)...")
			<-cmd.Context().Done()
			return nil
		},
	}
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")
	return cmd
}

func newServeCmd(g *globalOptions, stderr io.Writer) *cobra.Command {
	var logFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lint tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, logger, err := g.setup(stderr)
			if err != nil {
				return err
			}
			defer l.Close()

			callLog, err := mcpserver.OpenCallLog(logFile)
			if err != nil {
				return err
			}
			defer callLog.Close()

			srv, err := mcpserver.NewServer(l, g.root, version, callLog, logger)
			if err != nil {
				return err
			}
			if err := srv.ServeStdio(); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "append a JSONL line per tool call to this file")
	return cmd
}

func newRulesCmd(g *globalOptions, stdout, stderr io.Writer) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the rules and whether each is enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			l, _, err := g.setup(stderr)
			if err != nil {
				return err
			}
			defer l.Close()

			catalog := l.Engine().Catalog()
			switch format {
			case report.FormatText, "":
				for _, r := range catalog {
					state := "enabled"
					if !r.Enabled {
						state = "disabled"
					}
					fmt.Fprintf(stdout, "%-28s %-9s %s\n", r.ID, state, r.Description)
				}
				return nil
			default:
				return report.Encode(format, stdout, catalog)
			}
		},
	}
	cmd.Flags().StringVar(&format, "format", report.FormatText, "output format: text, json, yaml")
	return cmd
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(stdout, "darklint %s\n", version)
		},
	}
}
