package invoker

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dusk-indust/scc/internal/config"
)

// shellProfile runs {input} as a shell script so tests can script any exit
// behaviour.
func shellProfile() *config.Profile {
	return &config.Profile{
		Stages: map[string][]string{
			"script": {"-c", "{input}"},
			"copy":   {"-c", "cp \"$0\" \"$1\"", "{input}", "{output}"},
		},
	}
}

func shellPlatform() config.Platform {
	return config.Platform{GOOS: runtime.GOOS, Toolchain: &config.Toolchain{Name: "sh", Binary: "sh"}}
}

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
}

func TestInvoke_Success(t *testing.T) {
	skipWithoutShell(t)

	var stdout bytes.Buffer
	inv := New(shellPlatform(), shellProfile(), WithStdout(&stdout))

	result, err := inv.Invoke(context.Background(), Spec{Stage: "script", Input: "echo hello"})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.OK())
	assert.Equal(t, OutcomeSuccess, result.Outcome)
	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "hello\n", stdout.String(), "child stdout is passed through")
}

func TestInvoke_StderrPassthrough(t *testing.T) {
	skipWithoutShell(t)

	var stderr bytes.Buffer
	inv := New(shellPlatform(), shellProfile(), WithStderr(&stderr))

	_, err := inv.Invoke(context.Background(), Spec{Stage: "script", Input: "echo oops >&2; exit 1"})
	require.Error(t, err)
	assert.Equal(t, "oops\n", stderr.String())
}

func TestInvoke_Classification(t *testing.T) {
	skipWithoutShell(t)

	tests := []struct {
		name     string
		script   string
		outcome  Outcome
		exitCode int
		sentinel error
	}{
		{name: "tool failure", script: "exit 3", outcome: OutcomeToolFailed, exitCode: 3, sentinel: ErrToolFailed},
		{name: "exit 1", script: "exit 1", outcome: OutcomeToolFailed, exitCode: 1, sentinel: ErrToolFailed},
		{name: "shell not found status", script: "exit 127", outcome: OutcomeNotFound, exitCode: 127, sentinel: ErrToolNotFound},
		{name: "killed by signal", script: "kill -9 $$", outcome: OutcomeUnknown, exitCode: -1, sentinel: ErrStatusUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := New(shellPlatform(), shellProfile(), WithStdout(&bytes.Buffer{}), WithStderr(&bytes.Buffer{}))

			result, err := inv.Invoke(context.Background(), Spec{Stage: "script", Input: tt.script})
			require.Error(t, err)
			require.NotNil(t, result)
			assert.Equal(t, tt.outcome, result.Outcome)
			assert.Equal(t, tt.exitCode, result.ExitCode)
			assert.ErrorIs(t, err, tt.sentinel)

			var invErr *InvokeError
			require.ErrorAs(t, err, &invErr)
			assert.Equal(t, tt.outcome, invErr.Outcome)
			assert.Equal(t, "sh", invErr.Command.Program)
		})
	}
}

func TestInvoke_ToolMissing(t *testing.T) {
	platform := config.Platform{
		GOOS:      runtime.GOOS,
		Toolchain: &config.Toolchain{Binary: "scc-definitely-not-a-real-toolchain"},
	}
	inv := New(platform, shellProfile())

	result, err := inv.Invoke(context.Background(), Spec{Stage: "script", Input: "true"})
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, OutcomeNotFound, result.Outcome)
	assert.ErrorIs(t, err, ErrToolNotFound)
	assert.Contains(t, err.Error(), "scc-definitely-not-a-real-toolchain")
}

func TestInvoke_ToolMissingByPath(t *testing.T) {
	platform := config.Platform{
		GOOS:      runtime.GOOS,
		Toolchain: &config.Toolchain{Binary: filepath.Join(t.TempDir(), "missing-cc")},
	}
	inv := New(platform, shellProfile())

	result, err := inv.Invoke(context.Background(), Spec{Stage: "script", Input: "true"})
	require.Error(t, err)
	assert.Equal(t, OutcomeNotFound, result.Outcome)
	assert.ErrorIs(t, err, ErrToolNotFound)
}

func TestInvoke_UnsupportedPlatformNeverSpawns(t *testing.T) {
	dir := t.TempDir()
	marker := filepath.Join(dir, "spawned")

	inv := New(config.Platform{GOOS: "plan9"}, shellProfile())

	result, err := inv.Invoke(context.Background(), Spec{Stage: "script", Input: "touch " + marker})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedPlatform)
	assert.NotErrorIs(t, err, ErrToolFailed)
	require.NotNil(t, result)
	assert.Equal(t, OutcomeUnsupported, result.Outcome)
	assert.Equal(t, "platform not supported", err.Error())

	_, statErr := os.Stat(marker)
	assert.True(t, os.IsNotExist(statErr), "no process may be spawned")
}

func TestInvoke_WorkingDir(t *testing.T) {
	skipWithoutShell(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "in.txt"), []byte("data"), 0o644))

	inv := New(shellPlatform(), shellProfile(), WithWorkingDir(dir))
	_, err := inv.Invoke(context.Background(), Spec{Stage: "copy", Input: "in.txt", Output: "out.txt"})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))
}

func TestInvoke_FormatErrorBeforeSpawn(t *testing.T) {
	inv := New(shellPlatform(), shellProfile())

	result, err := inv.Invoke(context.Background(), Spec{Stage: "copy", Input: "in.txt"})
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrCommandFormat)
}

func TestCommand_Default(t *testing.T) {
	profile, err := config.Default()
	require.NoError(t, err)
	inv := New(profile.Resolve("linux"), profile)

	tests := []struct {
		spec Spec
		want string
	}{
		{spec: Spec{Stage: config.StagePreprocess, Input: "main.c", Output: "main.i"}, want: "gcc -E -P main.c -o main.i"},
		{spec: Spec{Stage: config.StageCompile, Input: "main.i", Output: "main.s"}, want: "gcc -S main.i -o main.s"},
		{spec: Spec{Stage: config.StageLink, Input: "main.s", Output: "main"}, want: "gcc main.s -o main"},
	}

	for _, tt := range tests {
		t.Run(tt.spec.Stage, func(t *testing.T) {
			cmd, err := inv.Command(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd.String())
		})
	}
}

func TestCommand_Darwin(t *testing.T) {
	profile, err := config.Default()
	require.NoError(t, err)
	inv := New(profile.Resolve("darwin"), profile)

	cmd, err := inv.Command(Spec{Stage: config.StagePreprocess, Input: "main.c", Output: "main.i"})
	require.NoError(t, err)
	assert.Equal(t, "clang", cmd.Program, "every stage uses the resolved toolchain")
}

func TestCommand_LongPaths(t *testing.T) {
	profile, err := config.Default()
	require.NoError(t, err)
	inv := New(profile.Resolve("linux"), profile)

	long := filepath.Join(string(bytes.Repeat([]byte("d"), 300)), "main")
	cmd, err := inv.Command(Spec{Stage: config.StageCompile, Input: long + ".i", Output: long + ".s"})
	require.NoError(t, err)
	assert.Equal(t, []string{"-S", long + ".i", "-o", long + ".s"}, cmd.Args)
}

func TestCommand_FormatErrors(t *testing.T) {
	profile := &config.Profile{
		Stages: map[string][]string{
			"unknown":    {"{source}"},
			"unbalanced": {"x}"},
			"open":       {"{input"},
			"empty":      {"{output}"},
		},
	}
	inv := New(shellPlatform(), profile)

	for _, stage := range []string{"unknown", "unbalanced", "open", "empty", "missing"} {
		t.Run(stage, func(t *testing.T) {
			_, err := inv.Command(Spec{Stage: stage, Input: "main.c"})
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCommandFormat)

			var fmtErr *FormatError
			require.ErrorAs(t, err, &fmtErr)
			assert.Equal(t, stage, fmtErr.Stage)
		})
	}
}

func TestCommand_String(t *testing.T) {
	cmd := Command{Program: "gcc", Args: []string{"-o", "my prog", ""}}
	assert.Equal(t, `gcc -o "my prog" ""`, cmd.String())
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "success", OutcomeSuccess.String())
	assert.Equal(t, "tool-failed", OutcomeToolFailed.String())
	assert.Equal(t, "unsupported", OutcomeUnsupported.String())
	assert.Equal(t, "invalid", Outcome(99).String())
}
