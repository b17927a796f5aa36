package main

import (
	"errors"

	"github.com/dusk-indust/scc/internal/args"
	"github.com/dusk-indust/scc/internal/invoker"
	"github.com/dusk-indust/scc/internal/orchestrator"
)

// Process exit statuses. These are the only place errors become numbers.
const (
	exitOK          = 0
	exitInternal    = 1
	exitUsage       = 2
	exitInvalidFlag = 3
	exitInvalidFile = 4
	exitAbort       = 134
)

// exitCode maps an error returned by the root command to an exit status.
// An invalid flag outranks an invalid file when both were reported.
func exitCode(err error) int {
	var stageErr *orchestrator.StageError
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, args.ErrUsage):
		return exitUsage
	case errors.Is(err, args.ErrInvalidFlag):
		return exitInvalidFlag
	case errors.Is(err, args.ErrInvalidFile):
		return exitInvalidFile
	case errors.Is(err, invoker.ErrCommandFormat):
		return exitInternal
	case errors.As(err, &stageErr):
		return exitAbort
	default:
		return exitInternal
	}
}
