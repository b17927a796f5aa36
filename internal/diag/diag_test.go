package diag

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(opts *Options) (*slog.Logger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return New(&out, &errOut, opts), &out, &errOut
}

func TestHandler_Severities(t *testing.T) {
	tests := []struct {
		name    string
		log     func(l *slog.Logger)
		wantOut string
		wantErr string
	}{
		{
			name:    "info is plain on stdout",
			log:     func(l *slog.Logger) { l.Info("Finished") },
			wantOut: "Finished\n",
		},
		{
			name:    "warning on stderr",
			log:     func(l *slog.Logger) { l.Warn("failed to remove 'main.i'") },
			wantErr: "scc: warning: failed to remove 'main.i'\n",
		},
		{
			name:    "error on stderr",
			log:     func(l *slog.Logger) { l.Error("invalid flag detected '--foo'") },
			wantErr: "scc: error: invalid flag detected '--foo'\n",
		},
		{
			name:    "fatal on stderr",
			log:     func(l *slog.Logger) { Fatal(l, "preprocessor failed") },
			wantErr: "scc: fatal error: preprocessor failed\n",
		},
		{
			name: "debug hidden by default",
			log:  func(l *slog.Logger) { l.Debug("noise") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, out, errOut := newTestLogger(&Options{Program: "scc"})
			tt.log(logger)
			assert.Equal(t, tt.wantOut, out.String())
			assert.Equal(t, tt.wantErr, errOut.String())
		})
	}
}

func TestHandler_DebugLevel(t *testing.T) {
	logger, out, errOut := newTestLogger(&Options{Program: "scc", Level: slog.LevelDebug})
	logger.Debug("running stage", "stage", "compile")
	assert.Equal(t, "scc: debug: running stage stage=compile\n", out.String())
	assert.Empty(t, errOut.String())
}

func TestHandler_Color(t *testing.T) {
	logger, _, errOut := newTestLogger(&Options{Program: "scc", Color: true})
	logger.Error("boom")
	logger.Warn("careful")
	assert.Equal(t,
		"scc: \033[31merror\033[0m: boom\n"+
			"scc: \033[33mwarning\033[0m: careful\n",
		errOut.String())
}

func TestHandler_AttrsAndGroups(t *testing.T) {
	logger, out, _ := newTestLogger(&Options{Program: "scc"})
	logger.With("source", "main.c").WithGroup("stage").Info("done", "exit", 0)
	assert.Equal(t, "done source=main.c stage.exit=0\n", out.String())
}

func TestHandler_NoProgram(t *testing.T) {
	logger, _, errOut := newTestLogger(nil)
	logger.Error("x")
	assert.Equal(t, "error: x\n", errOut.String())
}
