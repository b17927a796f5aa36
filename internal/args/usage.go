package args

import (
	"fmt"
	"io"
)

// Usage is the help text printed on argument errors.
const Usage = `usage: scc [option] <source_file>

Compiles a single C source file, optionally stopping after an
intermediate stage.

Options:
  --lex           Preprocess only; stop before compiling. Keeps <name>.i
  --parse         Preprocess only; stop before compiling. Keeps <name>.i
  --codegen       Preprocess and compile; stop before linking. Keeps <name>.s
  -S              Preprocess and compile; stop before linking. Keeps <name>.s

Arguments:
  <source_file>   The C source file to compile. Must end in .c

Examples:
  scc main.c
  scc -S main.c
  scc main.c --lex
`

// PrintUsage writes Usage to w.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, Usage)
}
