package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/orizehavi/listingforge/internal/config"
	"github.com/orizehavi/listingforge/internal/gen"
	"github.com/orizehavi/listingforge/internal/logging"
	"github.com/orizehavi/listingforge/internal/mockup"
	"github.com/orizehavi/listingforge/internal/pipeline"
	"github.com/orizehavi/listingforge/internal/printprep"
	"github.com/orizehavi/listingforge/internal/store"
	"github.com/orizehavi/listingforge/internal/tui"
)

// runnerOptions are the per-command knobs for wiring a pipeline runner.
type runnerOptions struct {
	autoApprove bool
	plain       bool
	keepSources bool
}

// buildRunner wires a pipeline.Runner from configuration. The returned
// cleanup function closes the logger.
func buildRunner(ctx context.Context, opts runnerOptions) (*pipeline.Runner, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	st := store.NewStore(cfg.Output.Dir, logger)

	genClient, err := gen.NewClient(ctx, cfg.Gen, logger)
	if err != nil {
		_ = logger.Close()
		return nil, nil, err
	}

	var presenter pipeline.Presenter
	switch {
	case opts.autoApprove || cfg.Approval.AutoApprove:
		presenter = tui.AutoApprovePresenter{}
	case opts.plain:
		presenter = tui.NewPlainPresenter(os.Stdin, os.Stdout)
	default:
		presenter = tui.NewPresenter()
	}

	cleanup := cfg.Output.CleanupSources && !opts.keepSources

	runner, err := pipeline.NewRunner(pipeline.Config{
		Text:      genClient,
		Images:    genClient,
		Prints:    printprep.NewPreparer(cfg.PrintPrep, logger),
		Mockups:   mockup.NewRenderer(cfg.Mockup, logger),
		Store:     st,
		Presenter: presenter,
	},
		pipeline.WithLogger(logger),
		pipeline.WithMaxAttempts(cfg.Approval.MaxAttempts),
		pipeline.WithCleanupSources(cleanup),
	)
	if err != nil {
		_ = logger.Close()
		return nil, nil, err
	}

	return runner, func() {
		_ = logger.Close()
	}, nil
}
