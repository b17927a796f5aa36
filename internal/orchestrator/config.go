package orchestrator

import (
	"log/slog"

	"github.com/go-git/go-billy/v5"

	"github.com/dusk-indust/scc/internal/hostfs"
)

// Config holds runtime configuration for a pipeline.
type Config struct {
	// FS is where intermediates are checked and removed. It must see the
	// same files the toolchain writes. Defaults to the native filesystem.
	FS billy.Filesystem

	// Logger receives warnings about intermediates that could not be
	// removed. Defaults to slog.Default().
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.FS == nil {
		c.FS = hostfs.New()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
