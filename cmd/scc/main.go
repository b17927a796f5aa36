package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/scc/internal/args"
	"github.com/dusk-indust/scc/internal/artifact"
	"github.com/dusk-indust/scc/internal/config"
	"github.com/dusk-indust/scc/internal/diag"
	"github.com/dusk-indust/scc/internal/hostfs"
	"github.com/dusk-indust/scc/internal/invoker"
	"github.com/dusk-indust/scc/internal/orchestrator"
	"github.com/dusk-indust/scc/internal/status"
)

func main() {
	os.Exit(newApp().run(os.Args[1:]))
}

// app holds everything a run depends on. Tests replace the streams, the
// platform and the working directory.
type app struct {
	stdout io.Writer
	stderr io.Writer
	color  bool

	// profile is nil until loaded; platform is resolved from it once.
	profile  *config.Profile
	platform config.Platform

	// workDir is where relative source paths resolve and stages run.
	// Empty means the process working directory.
	workDir string
}

func newApp() *app {
	return &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		color:  isTerminal(os.Stderr),
	}
}

// run executes one invocation and returns the process exit status.
func (a *app) run(argv []string) int {
	logger := diag.New(a.stdout, a.stderr, &diag.Options{Program: "scc", Color: a.color})

	if a.profile == nil {
		profile, err := config.Default()
		if err != nil {
			diag.Fatal(logger, err.Error())
			return exitInternal
		}
		a.profile = profile
		a.platform = profile.Host()
	}

	// cobra falls back to os.Args when given nil.
	if argv == nil {
		argv = []string{}
	}

	cmd := a.rootCommand(logger)
	cmd.SetArgs(argv)
	err := cmd.ExecuteContext(context.Background())
	if err != nil {
		report(logger, err)
	}
	return exitCode(err)
}

func (a *app) rootCommand(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scc [option] <source_file>",
		Short: "Compile a single C source file with the host toolchain",
		Args:  cobra.ArbitraryArgs,
		// The validator needs the raw tokens: flags may follow the source.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		RunE: func(cmd *cobra.Command, argv []string) error {
			return a.compile(cmd, logger, argv)
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		args.PrintUsage(c.OutOrStdout())
		return nil
	})
	return cmd
}

func (a *app) compile(cmd *cobra.Command, logger *slog.Logger, argv []string) error {
	fsys := hostfs.Dir(a.workDir)

	inv, err := args.Parse(argv, fsys)
	if err != nil {
		if errors.Is(err, args.ErrUsage) || len(argv) == 1 {
			_ = cmd.Usage()
		}
		return err
	}

	exec := invoker.New(a.platform, a.profile,
		invoker.WithStdout(a.stdout),
		invoker.WithStderr(a.stderr),
		invoker.WithWorkingDir(a.workDir),
	)
	pipeline := orchestrator.NewPipeline(orchestrator.Config{FS: fsys, Logger: logger}, exec)
	pipeline.Subscribe(func(ev orchestrator.ProgressEvent) {
		logger.Info(orchestrator.FormatProgress(ev))
	})

	logger.Info(orchestrator.FormatRunHeader(inv.Source, inv.StopAfter))
	result, err := pipeline.Run(cmd.Context(), inv.Source, inv.StopAfter)
	if err != nil {
		return err
	}

	snap := status.Scan(fsys, artifact.NewNames(inv.Source))
	if !snap.Has(result.Artifact) {
		logger.Warn(fmt.Sprintf("expected '%s' was not produced", result.Artifact))
	}
	for _, stray := range snap.Strays(result.Artifact) {
		logger.Warn(fmt.Sprintf("stray intermediate '%s'", stray))
	}

	logger.Info("Finished")
	return nil
}

// report prints the diagnostics for err. Validation problems get one line
// each; anything that stops a run is fatal.
func report(logger *slog.Logger, err error) {
	var verr *args.ValidationError
	switch {
	case errors.Is(err, args.ErrUsage):
		logger.Error(err.Error())
	case errors.As(err, &verr):
		for _, p := range verr.Problems {
			logger.Error(p.Reason)
		}
	default:
		diag.Fatal(logger, err.Error())
	}
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
