// Package args validates the driver's command line: one C source file and
// at most one stage-limiting flag, in either order.
package args

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/go-git/go-billy/v5"

	"github.com/dusk-indust/scc/internal/artifact"
	"github.com/dusk-indust/scc/internal/orchestrator"
)

// flags maps every recognized spelling to the stage it stops after.
var flags = map[string]orchestrator.StopAfter{
	"--lex":     orchestrator.StopAfterLex,
	"--parse":   orchestrator.StopAfterParse,
	"--codegen": orchestrator.StopAfterCodegen,
	"-S":        orchestrator.StopEmitAssembly,
}

// Invocation is a validated command line.
type Invocation struct {
	Source    string
	StopAfter orchestrator.StopAfter
}

// Parse validates argv, the arguments after the program name. Source files
// are checked through fsys, which must resolve paths the way the toolchain
// will.
//
// The argument count is checked first and reported as ErrUsage. Every
// other problem is collected into a *ValidationError so each offending
// token can be reported.
func Parse(argv []string, fsys billy.Filesystem) (Invocation, error) {
	if len(argv) != 1 && len(argv) != 2 {
		return Invocation{}, ErrUsage
	}

	var (
		inv       Invocation
		verr      ValidationError
		firstFlag string
		sawSource bool
	)

	for _, tok := range argv {
		if IsFlag(tok) {
			stop, ok := flags[tok]
			switch {
			case !ok:
				verr.add(KindInvalidFlag, tok, "invalid flag detected '%s'", tok)
			case firstFlag != "":
				verr.add(KindInvalidFlag, tok, "only one flag may be given, found '%s' after '%s'", tok, firstFlag)
			default:
				inv.StopAfter = stop
			}
			if firstFlag == "" {
				firstFlag = tok
			}
			continue
		}

		if sawSource {
			verr.add(KindInvalidFile, tok, "only one source file may be given, found '%s' after '%s'", tok, inv.Source)
			continue
		}
		sawSource = true
		if checkSource(&verr, fsys, tok) {
			inv.Source = tok
		}
	}

	if !sawSource {
		verr.add(KindInvalidFile, "", "missing source file")
	}

	if len(verr.Problems) > 0 {
		return Invocation{}, &verr
	}
	return inv, nil
}

// IsFlag reports whether tok is flag-shaped.
func IsFlag(tok string) bool {
	return strings.HasPrefix(tok, "-")
}

// Flags returns the recognized flag spellings in usage order.
func Flags() []string {
	return []string{"--lex", "--parse", "--codegen", "-S"}
}

// checkSource validates a candidate source path, recording any problem.
func checkSource(verr *ValidationError, fsys billy.Filesystem, path string) bool {
	// The extension is checked before the file is opened.
	if !artifact.HasSourceExt(path) || artifact.Stem(path) == "" {
		verr.add(KindInvalidFile, path, "invalid c file detected '%s'", path)
		return false
	}

	info, err := fsys.Stat(path)
	if err != nil {
		verr.add(KindInvalidFile, path, "%s '%s'", describeOpenError(err), path)
		return false
	}
	if info.IsDir() {
		verr.add(KindInvalidFile, path, "is a directory '%s'", path)
		return false
	}

	f, err := fsys.Open(path)
	if err != nil {
		verr.add(KindInvalidFile, path, "%s '%s'", describeOpenError(err), path)
		return false
	}
	_ = f.Close()
	return true
}

func describeOpenError(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "file not found"
	case errors.Is(err, fs.ErrPermission):
		return "permission denied"
	default:
		return "cannot open file"
	}
}
