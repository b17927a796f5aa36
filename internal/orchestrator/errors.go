package orchestrator

import (
	"errors"
	"fmt"
)

// ErrMissingIntermediate is returned when a stage's input was not produced
// by the previous stage.
var ErrMissingIntermediate = errors.New("missing intermediate file")

// StageError reports the stage that ended a run.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
