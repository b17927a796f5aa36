// Package invoker runs external toolchain stages as blocking child
// processes and classifies how they ended.
package invoker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"

	"github.com/dusk-indust/scc/internal/config"
)

// exitNotFound is the status a shell reports for a command it cannot run.
const exitNotFound = 127

// Options configures where a stage runs and where its output goes.
type Options struct {
	// Stdout and Stderr receive the child's streams unmodified.
	Stdout io.Writer
	Stderr io.Writer

	// WorkingDir is the directory the child runs in. Empty means the
	// current directory.
	WorkingDir string
}

// Option is a function that modifies Options.
type Option func(*Options)

// DefaultOptions passes the child's output straight to the console.
func DefaultOptions() *Options {
	return &Options{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// WithStdout sets the writer for the child's stdout.
func WithStdout(w io.Writer) Option {
	return func(o *Options) {
		o.Stdout = w
	}
}

// WithStderr sets the writer for the child's stderr.
func WithStderr(w io.Writer) Option {
	return func(o *Options) {
		o.Stderr = w
	}
}

// WithWorkingDir sets the working directory.
func WithWorkingDir(dir string) Option {
	return func(o *Options) {
		o.WorkingDir = dir
	}
}

// Invoker executes stage commands with the toolchain resolved for one
// platform.
type Invoker struct {
	platform config.Platform
	profile  *config.Profile
	options  *Options
}

// New creates an Invoker. The platform is fixed for the Invoker's lifetime.
func New(platform config.Platform, profile *config.Profile, opts ...Option) *Invoker {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return &Invoker{
		platform: platform,
		profile:  profile,
		options:  options,
	}
}

// Platform returns the platform the Invoker was created for.
func (i *Invoker) Platform() config.Platform {
	return i.platform
}

// Command builds the command line for spec.
func (i *Invoker) Command(spec Spec) (Command, error) {
	if i.platform.Binary() == "" {
		return Command{}, &FormatError{Stage: spec.Stage, Msg: "no toolchain binary"}
	}
	if i.profile == nil {
		return Command{}, &FormatError{Stage: spec.Stage, Msg: "no toolchain profile"}
	}
	tmpl, ok := i.profile.Template(spec.Stage)
	if !ok {
		return Command{}, &FormatError{Stage: spec.Stage, Msg: "no command template"}
	}

	vars := spec.vars()
	args := make([]string, 0, len(tmpl))
	for _, t := range tmpl {
		arg, err := expand(spec.Stage, t, vars)
		if err != nil {
			return Command{}, err
		}
		args = append(args, arg)
	}
	return Command{Program: i.platform.Binary(), Args: args}, nil
}

// Invoke runs the stage described by spec and blocks until it exits. A
// non-nil error is always an *InvokeError or a *FormatError; the Result is
// returned whenever a command was attempted.
func (i *Invoker) Invoke(ctx context.Context, spec Spec) (*Result, error) {
	if !i.platform.Supported() {
		result := &Result{ExitCode: -1, Outcome: OutcomeUnsupported}
		return result, &InvokeError{
			Outcome:  OutcomeUnsupported,
			ExitCode: -1,
			Err:      ErrUnsupportedPlatform,
		}
	}

	cmd, err := i.Command(spec)
	if err != nil {
		return nil, err
	}
	return i.run(ctx, cmd)
}

func (i *Invoker) run(ctx context.Context, c Command) (*Result, error) {
	cmd := exec.CommandContext(ctx, c.Program, c.Args...)
	if i.options.WorkingDir != "" {
		cmd.Dir = i.options.WorkingDir
	}
	cmd.Stdout = i.options.Stdout
	cmd.Stderr = i.options.Stderr

	runErr := cmd.Run()

	result := classify(c, runErr)
	if result.Outcome == OutcomeSuccess {
		return result, nil
	}
	return result, &InvokeError{
		Command:  c,
		Outcome:  result.Outcome,
		ExitCode: result.ExitCode,
		Err:      causeFor(result.Outcome, runErr),
	}
}

// classify maps the error from exec.Cmd.Run to a Result.
func classify(c Command, err error) *Result {
	result := &Result{Command: c}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.Outcome = OutcomeSuccess
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		switch result.ExitCode {
		case -1:
			result.Outcome = OutcomeUnknown
		case exitNotFound:
			result.Outcome = OutcomeNotFound
		default:
			result.Outcome = OutcomeToolFailed
		}
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		result.ExitCode = -1
		result.Outcome = OutcomeNotFound
	default:
		result.ExitCode = -1
		result.Outcome = OutcomeSpawnFailed
	}

	return result
}

// causeFor picks the sentinel for an outcome, keeping the underlying
// error in the chain where there is one worth keeping.
func causeFor(outcome Outcome, err error) error {
	var sentinel error
	switch outcome {
	case OutcomeToolFailed:
		return ErrToolFailed
	case OutcomeNotFound:
		sentinel = ErrToolNotFound
	case OutcomeUnknown:
		sentinel = ErrStatusUnavailable
	default:
		sentinel = ErrSpawn
	}
	if err == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
