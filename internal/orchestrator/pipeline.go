// Package orchestrator sequences the external toolchain stages that turn a
// C source file into an executable, and owns the intermediate files they
// hand to each other.
package orchestrator

import (
	"context"
	"errors"
	"io/fs"

	"github.com/dusk-indust/scc/internal/artifact"
	"github.com/dusk-indust/scc/internal/invoker"
)

// Compile-time interface checks.
var (
	_ Orchestrator  = (*Pipeline)(nil)
	_ StageExecutor = (*invoker.Invoker)(nil)
)

// Pipeline runs the preprocess, compile and assemble+link stages in order,
// one at a time, stopping after the stage selected by StopAfter.
//
// Each intermediate is removed by the stage that consumes it, whether that
// stage succeeds or not, and a failing stage's own output is removed
// before the error is returned. A successful run therefore leaves exactly
// one artifact under the base name and a failed run leaves none.
type Pipeline struct {
	cfg      Config
	exec     StageExecutor
	progress *ProgressReporter
}

// NewPipeline creates a Pipeline that runs stages through exec.
func NewPipeline(cfg Config, exec StageExecutor) *Pipeline {
	return &Pipeline{
		cfg:      cfg.withDefaults(),
		exec:     exec,
		progress: NewProgressReporter(),
	}
}

// Subscribe registers a progress listener.
func (p *Pipeline) Subscribe(fn func(ProgressEvent)) {
	p.progress.Subscribe(fn)
}

// Run drives source through the pipeline. source must already be
// validated. The returned RunResult is non-nil even when err is not; its
// Stages list what was attempted.
func (p *Pipeline) Run(ctx context.Context, source string, stop StopAfter) (*RunResult, error) {
	names := artifact.NewNames(source)
	result := &RunResult{
		Source:    source,
		Base:      names.Base,
		StopAfter: stop,
	}

	for _, s := range plan(source, names, stop.LastStage()) {
		if err := p.runStep(ctx, s, result); err != nil {
			return result, err
		}
		result.Artifact = s.output
	}

	return result, nil
}

// runStep executes one stage and performs its cleanup.
func (p *Pipeline) runStep(ctx context.Context, s step, result *RunResult) error {
	if err := checkPrerequisite(p.cfg.FS, s); err != nil {
		p.fail(s, err)
		return &StageError{Stage: s.stage, Err: err}
	}

	spec := s.spec()
	p.progress.Emit(ProgressEvent{
		Stage:   s.stage,
		Status:  ProgressWorking,
		Message: p.describe(spec),
	})

	res, err := p.exec.Invoke(ctx, spec)
	record(result, s, res)

	// The input is consumed either way once the stage has run.
	if s.intermediate {
		p.remove(s.input)
	}

	if err != nil {
		p.remove(s.output)
		p.fail(s, err)
		return &StageError{Stage: s.stage, Err: err}
	}

	p.progress.Emit(ProgressEvent{Stage: s.stage, Status: ProgressComplete})
	return nil
}

// describe renders the command for progress output, falling back to the
// file names when the executor cannot format it up front.
func (p *Pipeline) describe(spec invoker.Spec) string {
	if f, ok := p.exec.(interface {
		Command(invoker.Spec) (invoker.Command, error)
	}); ok {
		if cmd, err := f.Command(spec); err == nil {
			return cmd.String()
		}
	}
	return spec.Input + " -> " + spec.Output
}

func (p *Pipeline) fail(s step, err error) {
	p.progress.Emit(ProgressEvent{
		Stage:   s.stage,
		Status:  ProgressFailed,
		Message: err.Error(),
	})
}

// remove deletes an artifact. A file that is already gone is fine; any
// other failure is reported as a warning and does not change the outcome
// of the run.
func (p *Pipeline) remove(path string) {
	if path == "" {
		return
	}
	if err := p.cfg.FS.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		p.cfg.Logger.Warn("failed to remove '" + path + "': " + err.Error())
	}
}

func record(result *RunResult, s step, res *invoker.Result) {
	rec := StageRecord{
		Stage:  s.stage,
		Input:  s.input,
		Output: s.output,
	}
	if res != nil {
		rec.Command = res.Command.String()
		rec.Outcome = res.Outcome
		rec.ExitCode = res.ExitCode
	} else {
		rec.Outcome = invoker.OutcomeSpawnFailed
		rec.ExitCode = -1
	}
	result.Stages = append(result.Stages, rec)
}
