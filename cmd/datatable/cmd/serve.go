package cmd

import (
	"context"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/go-drift/datatable/pkg/engine"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Addr string

	// Ready is called with the bound address once the server listens.
	Ready func(net.Addr)
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the table over HTTP",
		Long: `Serve the configured table as a live page. Clicking a heading posts
the click back to the server, which re-sorts the table and redirects to
the page.

The server stops on SIGINT or SIGTERM.

Example:
  datatable serve -c people.yaml --addr :8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", ":8080", "listen address")

	return cmd
}

func runServe(ctx context.Context, opts *ServeOptions) error {
	eng, cfg, err := mountTable(ctx, opts.RootOptions)
	if err != nil {
		return err
	}
	defer eng.Close()

	ready := func(addr net.Addr) {
		slog.Info("serving", "addr", addr.String(), "title", cfg.Table.Title)
		if opts.Ready != nil {
			opts.Ready(addr)
		}
	}
	if err := engine.Serve(ctx, opts.Addr, eng.Handler(cfg.Table.Title), ready); err != nil {
		return WrapExitError(ExitFailure, "serve", err)
	}
	slog.Info("server stopped")
	return nil
}
