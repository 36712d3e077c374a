package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mark3labs/augur/internal/form"
	"github.com/mark3labs/augur/internal/hooks"
	"github.com/mark3labs/augur/internal/logger"
	"github.com/mark3labs/augur/internal/nats"
	"github.com/mark3labs/augur/internal/submission"
)

// openStore starts the embedded JetStream store when persistence is on.
// It returns a nil store otherwise. cleanup is always safe to call.
func openStore(ctx context.Context, source string) (*submission.Store, func(), error) {
	if !cfg.Persist {
		return nil, func() {}, nil
	}

	embedded, err := nats.Open(ctx, cfg.StoreDir())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open submission store: %w", err)
	}

	cleanup := func() {
		if err := embedded.Close(); err != nil {
			fmt.Printf("Warning: closing submission store: %v\n", err)
		}
	}
	return submission.NewStore(embedded.JS, embedded.Stream, source), cleanup, nil
}

// submitCallbacks returns the consumers of a completed payload: the
// JetStream store when persistence is on and the post_submit hook when
// .augur.hooks.yml defines one.
func submitCallbacks(ctx context.Context, source string) ([]func(form.Payload), func(), error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	hooksCfg, err := hooks.LoadConfig(workDir)
	if err != nil {
		return nil, nil, err
	}

	store, cleanup, err := openStore(ctx, source)
	if err != nil {
		return nil, nil, err
	}

	var fns []func(form.Payload)
	if store != nil {
		fns = append(fns, store.Sink(ctx, func(err error) {
			logger.Error("Failed to store submission: %v", err)
		}))
	}
	if hooksCfg != nil {
		fns = append(fns, hooks.Sink(ctx, hooksCfg, workDir, source))
	}
	return fns, cleanup, nil
}

// wizardOptions builds the form options shared by the run and fill commands.
func wizardOptions(ctx context.Context, source string) ([]form.Option, func(), error) {
	fns, cleanup, err := submitCallbacks(ctx, source)
	if err != nil {
		return nil, nil, err
	}
	opts := []form.Option{form.WithTranslator(localizer())}
	for _, fn := range fns {
		opts = append(opts, form.OnComplete(fn))
	}
	return opts, cleanup, nil
}
