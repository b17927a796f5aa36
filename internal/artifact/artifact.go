// Package artifact derives the names of the files a compilation run
// produces from the source path. Every function here is pure.
package artifact

import "strings"

// Known extensions.
const (
	SourceExt       = ".c"
	PreprocessedExt = ".i"
	AssemblyExt     = ".s"
)

// BaseName returns path with its extension removed. The extension starts at
// the first '.' of the final path element, scanning from the start of that
// element, so "main.c" gives "main" and "a.b.c" gives "a". Directory
// components are kept as they are.
//
// Callers are expected to have checked that the file name carries a single
// extension; BaseName does not search from the end.
func BaseName(path string) string {
	dir, name := splitDir(path)
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	return dir + name
}

// WithExtension appends ext to base. base is not checked for an existing
// extension.
func WithExtension(base, ext string) string {
	return base + ext
}

// HasSourceExt reports whether path ends with the source extension.
func HasSourceExt(path string) bool {
	return strings.HasSuffix(path, SourceExt)
}

// Stem returns the final path element without its extension.
func Stem(path string) string {
	_, name := splitDir(BaseName(path))
	return name
}

// splitDir splits path after its last separator. Both '/' and '\' count as
// separators so Windows-style paths behave the same on every host.
func splitDir(path string) (dir, name string) {
	i := strings.LastIndexAny(path, `/\`)
	return path[:i+1], path[i+1:]
}

// Names holds the base name shared by every artifact of one run.
type Names struct {
	Base string
}

// NewNames derives the artifact names for source.
func NewNames(source string) Names {
	return Names{Base: BaseName(source)}
}

// Preprocessed is the preprocessor output, e.g. "main.i".
func (n Names) Preprocessed() string { return WithExtension(n.Base, PreprocessedExt) }

// Assembly is the compiler output, e.g. "main.s".
func (n Names) Assembly() string { return WithExtension(n.Base, AssemblyExt) }

// Executable is the linked program. It has no extension.
func (n Names) Executable() string { return n.Base }

// All lists every artifact name in pipeline order.
func (n Names) All() []string {
	return []string{n.Preprocessed(), n.Assembly(), n.Executable()}
}
