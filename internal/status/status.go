// Package status reports which artifacts of a run are present on disk.
package status

import (
	"github.com/go-git/go-billy/v5"

	"github.com/dusk-indust/scc/internal/artifact"
)

// ArtifactInfo describes one artifact of a run.
type ArtifactInfo struct {
	Label   string // "preprocessed", "assembly" or "executable"
	Path    string
	Present bool
}

// Snapshot is the on-disk state of every artifact sharing one base name.
type Snapshot struct {
	Base      string
	Artifacts []ArtifactInfo
}

var labels = [3]string{"preprocessed", "assembly", "executable"}

// Scan checks which of names' artifacts exist in fsys. A directory with an
// artifact's name does not count.
func Scan(fsys billy.Filesystem, names artifact.Names) Snapshot {
	snap := Snapshot{Base: names.Base}
	for i, path := range names.All() {
		info, err := fsys.Stat(path)
		snap.Artifacts = append(snap.Artifacts, ArtifactInfo{
			Label:   labels[i],
			Path:    path,
			Present: err == nil && !info.IsDir(),
		})
	}
	return snap
}

// Present returns the paths of the artifacts that exist, in pipeline order.
func (s Snapshot) Present() []string {
	var paths []string
	for _, a := range s.Artifacts {
		if a.Present {
			paths = append(paths, a.Path)
		}
	}
	return paths
}

// Has reports whether path is a present artifact.
func (s Snapshot) Has(path string) bool {
	for _, a := range s.Artifacts {
		if a.Path == path {
			return a.Present
		}
	}
	return false
}

// Strays returns the present artifacts other than keep.
func (s Snapshot) Strays(keep string) []string {
	var paths []string
	for _, p := range s.Present() {
		if p != keep {
			paths = append(paths, p)
		}
	}
	return paths
}
