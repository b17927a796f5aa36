// Package fakecc provides a stand-in C toolchain for tests. The script
// understands the same argument shapes as the real driver stages:
//
//	fakecc -E -P <in> -o <out>   preprocess
//	fakecc -S <in> -o <out>      compile
//	fakecc <in> -o <out>         assemble and link
//
// Each stage copies its input to its output. A stage fails with status 1
// when its input contains the marker for that stage (see FailPreprocess,
// FailCompile, FailLink), after writing a partial output file. Every
// invocation is appended to a "fakecc.log" file next to the script.
package fakecc

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	"github.com/dusk-indust/scc/internal/config"
)

// Markers that make a stage fail when present in the source.
const (
	FailPreprocess = "FAKECC_FAIL_preprocess"
	FailCompile    = "FAKECC_FAIL_compile"
	FailLink       = "FAKECC_FAIL_link"
)

// LogName is the invocation log written next to the script.
const LogName = "fakecc.log"

const script = `#!/bin/sh
log="$(dirname "$0")/` + LogName + `"
echo "$*" >> "$log"
mode=link
in=""
out=""
while [ $# -gt 0 ]; do
  case "$1" in
    -E) mode=preprocess ;;
    -S) mode=compile ;;
    -P) ;;
    -o) shift; out="$1" ;;
    *) in="$1" ;;
  esac
  shift
done
if [ ! -f "$in" ]; then
  echo "fakecc: error: $in: No such file or directory" >&2
  exit 1
fi
if grep -q "FAKECC_FAIL_$mode" "$in"; then
  echo partial > "$out"
  echo "fakecc: error: $mode failed for $in" >&2
  exit 1
fi
cp "$in" "$out" || exit 1
if [ "$mode" = link ]; then
  chmod +x "$out"
fi
exit 0
`

// Install writes the fake toolchain into a fresh temporary directory and
// returns its path. Tests are skipped on hosts without a POSIX shell.
func Install(t testing.TB) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fakecc requires a POSIX shell")
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "fakecc")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("fakecc: write script: %v", err)
	}
	return path
}

// Platform returns a supported platform whose toolchain is the script at
// path.
func Platform(path string) config.Platform {
	return config.Platform{
		GOOS:      runtime.GOOS,
		Toolchain: &config.Toolchain{Name: "fakecc", Binary: path},
	}
}

// Invocations returns the argument lines the script at path has logged.
func Invocations(t testing.TB, path string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(filepath.Dir(path), LogName))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("fakecc: read log: %v", err)
	}
	var lines []string
	start := 0
	for i, b := range data {
		if b == '\n' {
			lines = append(lines, string(data[start:i]))
			start = i + 1
		}
	}
	return lines
}

// Files lists the regular files in dir, sorted by name.
func Files(t testing.TB, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("fakecc: read dir %s: %v", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}
