package cmd

import (
	"context"
	"log/slog"

	"github.com/go-drift/datatable/pkg/config"
	"github.com/go-drift/datatable/pkg/engine"
)

// mountTable loads the config named by the root flags, reads its records
// and mounts the resulting table in a fresh engine.
func mountTable(ctx context.Context, opts *RootOptions) (*engine.Engine, *config.Config, error) {
	logger := slog.Default()

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, nil, WrapExitError(ExitFailure, "load config", err)
	}
	records, err := cfg.LoadRecords(ctx)
	if err != nil {
		return nil, nil, WrapExitError(ExitFailure, "load records", err)
	}
	logger.Debug("records loaded", "config", cfg.Path(), "records", len(records))

	widget, err := cfg.Build(records)
	if err != nil {
		return nil, nil, WrapExitError(ExitFailure, "build table", err)
	}
	eng := engine.New(engine.WithLogger(logger))
	if err := eng.Run(widget); err != nil {
		eng.Close()
		return nil, nil, WrapExitError(ExitFailure, "mount table", err)
	}
	return eng, cfg, nil
}
