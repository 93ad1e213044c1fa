package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/hexsim"
	"github.com/aretw0/hexsim/pkg/domain"
	"github.com/aretw0/hexsim/pkg/observability"
	"github.com/aretw0/hexsim/pkg/program"
	"github.com/aretw0/hexsim/pkg/registry"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	ProgramPath string
	Format      string
	Plain       bool
	Log         LogOptions
	Parallelism int
	Out         io.Writer
}

// Execute loads a program, runs it to completion and writes the result.
func Execute(ctx context.Context, opts RunOptions) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	logger, err := CreateLogger(opts.Log)
	if err != nil {
		return err
	}

	prog, err := program.Load(opts.ProgramPath)
	if err != nil {
		return err
	}
	state, err := prog.State()
	if err != nil {
		return err
	}
	actions, err := prog.Resolve(registry.Default())
	if err != nil {
		return err
	}

	rec := observability.NewRecorder()
	hooks := rec.Hooks()
	if opts.Log.Debug {
		hooks = observability.Chain(hooks, createDebugHooks(logger))
	}

	mgr := hexsim.Start(state,
		hexsim.WithLogger(logger),
		hexsim.WithLifecycleHooks(hooks),
		hexsim.WithParallelism(opts.Parallelism),
	)
	logger.Info("Program loaded", "path", opts.ProgramPath, "actions", len(actions))

	if err := mgr.Run(ctx, actions...); err != nil {
		if isInterrupted(err) {
			printSystemMessage(os.Stderr, "Interrupted after %d steps.", mgr.Steps())
		}
		return handleExecutionError(err)
	}

	title := prog.Name
	if title == "" {
		title = "Simulation"
	}
	if err := WriteResult(opts.Out, opts.Format, opts.Plain, Result{
		Title:   title,
		Initial: domain.SingleState(state),
		Final:   mgr.Holder(),
		Steps:   rec.Steps(),
	}); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
