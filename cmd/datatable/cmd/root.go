// Package cmd implements the datatable CLI commands.
//
// The root command carries the global logging and config flags; render,
// serve and version hang off it.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/go-drift/datatable/pkg/errors"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	LogFormat string // "auto" | "text" | "json"
	Config    string

	// LogOutput receives log records. Defaults to os.Stderr.
	LogOutput io.Writer
}

// ValidLogFormats lists the accepted --log-format values.
var ValidLogFormats = []string{"auto", "text", "json"}

// NewRootCommand creates the root command for the datatable CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "datatable",
		Short: "datatable - sortable HTML tables from records",
		Long: `datatable renders a list of records as a sortable HTML table.

Columns, classes and the record source are declared in a YAML or TOML
config. Records come from a JSON, YAML or TOML file or from a SQLite
query.

Use "datatable <command> --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidLogFormats, opts.LogFormat) {
				return NewExitError(ExitUsage, fmt.Sprintf("invalid log format %q: must be one of %v", opts.LogFormat, ValidLogFormats))
			}
			logger := opts.Logger()
			slog.SetDefault(logger)
			errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: opts.Verbose})
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging and stack traces")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "auto", "log format (auto|text|json)")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "datatable.yaml", "path to the table config")

	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// Logger builds the logger described by the flags. In auto mode records are
// text when the output is a terminal and JSON otherwise.
func (o *RootOptions) Logger() *slog.Logger {
	out := o.LogOutput
	if out == nil {
		out = os.Stderr
	}
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if o.useText(out) {
		return slog.New(slog.NewTextHandler(out, handlerOpts))
	}
	return slog.New(slog.NewJSONHandler(out, handlerOpts))
}

func (o *RootOptions) useText(out io.Writer) bool {
	switch o.LogFormat {
	case "text":
		return true
	case "json":
		return false
	}
	f, ok := out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
