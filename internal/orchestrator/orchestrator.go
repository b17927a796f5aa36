package orchestrator

import (
	"context"

	"github.com/dusk-indust/scc/internal/config"
	"github.com/dusk-indust/scc/internal/invoker"
)

// Stage identifies a pipeline stage. Stages run in increasing order.
type Stage int

const (
	StagePreprocess      Stage = 0
	StageCompile         Stage = 1
	StageAssembleAndLink Stage = 2
)

// String returns the name used in diagnostics.
func (s Stage) String() string {
	names := [...]string{
		"preprocessor",
		"compiler",
		"assembler/linker",
	}
	if s >= 0 && int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// Slug returns the toolchain profile key for the stage.
func (s Stage) Slug() string {
	switch s {
	case StagePreprocess:
		return config.StagePreprocess
	case StageCompile:
		return config.StageCompile
	case StageAssembleAndLink:
		return config.StageLink
	default:
		return ""
	}
}

// StopAfter selects the last stage of a run and therefore which artifact
// survives it.
type StopAfter int

const (
	// StopNone runs every stage through linking.
	StopNone StopAfter = iota
	StopAfterLex
	StopAfterParse
	StopAfterCodegen
	StopEmitAssembly
)

// LastStage returns the final stage to execute. The flags gate external
// toolchain stages only: lexing and parsing stop after preprocessing, code
// generation and -S stop after compiling.
func (s StopAfter) LastStage() Stage {
	switch s {
	case StopAfterLex, StopAfterParse:
		return StagePreprocess
	case StopAfterCodegen, StopEmitAssembly:
		return StageCompile
	default:
		return StageAssembleAndLink
	}
}

// Flag returns the command-line spelling, or "" for StopNone.
func (s StopAfter) Flag() string {
	switch s {
	case StopAfterLex:
		return "--lex"
	case StopAfterParse:
		return "--parse"
	case StopAfterCodegen:
		return "--codegen"
	case StopEmitAssembly:
		return "-S"
	default:
		return ""
	}
}

func (s StopAfter) String() string {
	if f := s.Flag(); f != "" {
		return f
	}
	return "none"
}

// StageRecord summarises one executed stage.
type StageRecord struct {
	Stage    Stage
	Input    string
	Output   string
	Command  string
	Outcome  invoker.Outcome
	ExitCode int
}

// RunResult describes a completed or aborted run. Artifact is the file
// left on disk by a successful run and is empty otherwise.
type RunResult struct {
	Source    string
	Base      string
	StopAfter StopAfter
	Artifact  string
	Stages    []StageRecord
}

// ProgressEvent is emitted to the user during pipeline execution.
type ProgressEvent struct {
	Stage   Stage
	Status  ProgressStatus
	Message string
}

// ProgressStatus is the state of a stage.
type ProgressStatus string

const (
	ProgressWorking  ProgressStatus = "working"
	ProgressComplete ProgressStatus = "complete"
	ProgressFailed   ProgressStatus = "failed"
)

// Orchestrator drives a source file through the pipeline.
type Orchestrator interface {
	// Run executes stages up to stop.LastStage() for source.
	Run(ctx context.Context, source string, stop StopAfter) (*RunResult, error)

	// Subscribe registers a progress listener.
	Subscribe(fn func(ProgressEvent))
}
