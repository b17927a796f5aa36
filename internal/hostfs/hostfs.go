// Package hostfs exposes the native filesystem as a billy.Filesystem
// without a chroot, so relative paths (including "../") resolve against
// the process working directory exactly as the toolchain sees them.
package hostfs

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// FS is a billy.Filesystem that acts like the native filesystem.
type FS struct {
	osfs.ChrootOS
}

var _ billy.Filesystem = (*FS)(nil)

// New returns the native filesystem.
func New() *FS {
	return &FS{}
}

// Chroot returns a new filesystem rooted at the provided path.
//
//nolint:ireturn // signature is dictated by billy.Filesystem.
func (f *FS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

// Root returns the root path for this filesystem.
func (f *FS) Root() string {
	return ""
}

// Dir returns a filesystem for dir. An empty dir yields the unrooted
// native filesystem.
//
//nolint:ireturn // billy.Filesystem is an interface.
func Dir(dir string) billy.Filesystem {
	if dir == "" {
		return New()
	}
	return osfs.New(dir)
}
