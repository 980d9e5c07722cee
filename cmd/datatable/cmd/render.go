package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-drift/datatable/pkg/engine"
)

// RenderOptions holds flags for the render command.
type RenderOptions struct {
	*RootOptions
	Clicks []string
	Output string
	Page   bool
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RenderOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the table as HTML",
		Long: `Render the configured table once and write its HTML.

Each --click simulates a click on the heading of the named column, in
order, so the output can show any reachable sort state.

Example:
  datatable render -c people.yaml
  datatable render -c people.yaml --click age --click age -o people.html --page`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringArrayVar(&opts.Clicks, "click", nil, "click the heading of this column reference (repeatable)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.Page, "page", false, "wrap the table in a complete HTML page")

	return cmd
}

func runRender(cmd *cobra.Command, opts *RenderOptions) error {
	eng, cfg, err := mountTable(cmd.Context(), opts.RootOptions)
	if err != nil {
		return err
	}
	defer eng.Close()

	for _, column := range opts.Clicks {
		clicked, err := eng.ClickAttr("data-reference", column)
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("click %q", column), err)
		}
		if !clicked {
			return NewExitError(ExitUsage, fmt.Sprintf("unknown column %q", column))
		}
	}

	if opts.Output == "" {
		return writeTable(cmd.OutOrStdout(), opts, eng, cfg.Table.Title)
	}
	f, err := os.Create(opts.Output)
	if err != nil {
		return WrapExitError(ExitFailure, "create output", err)
	}
	if err := writeTable(f, opts, eng, cfg.Table.Title); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return WrapExitError(ExitFailure, "write output", err)
	}
	return nil
}

// writeTable writes the mounted table, or the whole page with --page, to out.
func writeTable(out io.Writer, opts *RenderOptions, eng *engine.Engine, title string) error {
	w := bufio.NewWriter(out)
	var err error
	if opts.Page {
		err = eng.Page(w, title)
	} else {
		err = writeFragment(w, eng.Render)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "render", err)
	}
	if err := w.Flush(); err != nil {
		return WrapExitError(ExitFailure, "write output", err)
	}
	return nil
}

func writeFragment(w io.Writer, render func(io.Writer) error) error {
	if err := render(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
