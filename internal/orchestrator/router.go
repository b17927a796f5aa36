package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-git/go-billy/v5"

	"github.com/dusk-indust/scc/internal/artifact"
	"github.com/dusk-indust/scc/internal/invoker"
)

// StageExecutor runs a single stage command and reports how it ended.
type StageExecutor interface {
	Invoke(ctx context.Context, spec invoker.Spec) (*invoker.Result, error)
}

// step is one planned stage: the file it reads and the file it writes.
type step struct {
	stage  Stage
	input  string
	output string
	// intermediate is true when input was written by an earlier stage of
	// the same run. Such inputs are removed once the step has run.
	intermediate bool
}

func (s step) spec() invoker.Spec {
	return invoker.Spec{Stage: s.stage.Slug(), Input: s.input, Output: s.output}
}

// plan lays out the steps from preprocessing through last.
func plan(source string, names artifact.Names, last Stage) []step {
	all := []step{
		{stage: StagePreprocess, input: source, output: names.Preprocessed()},
		{stage: StageCompile, input: names.Preprocessed(), output: names.Assembly(), intermediate: true},
		{stage: StageAssembleAndLink, input: names.Assembly(), output: names.Executable(), intermediate: true},
	}
	if last < StagePreprocess || int(last) >= len(all) {
		last = StageAssembleAndLink
	}
	return all[:last+1]
}

// checkPrerequisite verifies that an intermediate input exists before its
// stage is launched. Source files are left to the toolchain to report.
func checkPrerequisite(fsys billy.Filesystem, s step) error {
	if !s.intermediate {
		return nil
	}
	if _, err := fsys.Stat(s.input); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w '%s'", ErrMissingIntermediate, s.input)
		}
		return fmt.Errorf("checking '%s': %w", s.input, err)
	}
	return nil
}
