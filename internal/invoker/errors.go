package invoker

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic checks via errors.Is.
var (
	// ErrSpawn means the child process could not be created.
	ErrSpawn = errors.New("invoker: could not start process")

	// ErrToolFailed means the tool ran and exited non-zero.
	ErrToolFailed = errors.New("invoker: tool reported failure")

	// ErrToolNotFound means the tool could not be found or run at all.
	ErrToolNotFound = errors.New("invoker: tool not found")

	// ErrStatusUnavailable means the process ended without an exit status,
	// e.g. it was killed by a signal.
	ErrStatusUnavailable = errors.New("invoker: exit status unavailable")

	// ErrUnsupportedPlatform means no toolchain is known for the host.
	ErrUnsupportedPlatform = errors.New("platform not supported")

	// ErrCommandFormat means a stage command line could not be built.
	ErrCommandFormat = errors.New("invoker: cannot format command")
)

// InvokeError describes a failed stage invocation.
type InvokeError struct {
	Command  Command
	Outcome  Outcome
	ExitCode int
	Err      error
}

func (e *InvokeError) Error() string {
	switch e.Outcome {
	case OutcomeUnsupported:
		return e.Err.Error()
	case OutcomeToolFailed:
		return fmt.Sprintf("'%s' exited with status %d", e.Command, e.ExitCode)
	case OutcomeNotFound:
		return fmt.Sprintf("'%s' could not be run: %v", e.Command.Program, e.Err)
	default:
		return fmt.Sprintf("'%s': %v", e.Command, e.Err)
	}
}

func (e *InvokeError) Unwrap() error { return e.Err }

// FormatError describes a command template that could not be expanded.
type FormatError struct {
	Stage string
	Msg   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: stage %q: %s", ErrCommandFormat, e.Stage, e.Msg)
}

func (e *FormatError) Unwrap() error { return ErrCommandFormat }
