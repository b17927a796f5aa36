package orchestrator

import (
	"fmt"
	"sync"
)

// ProgressReporter delivers progress events to its subscribers in the
// order they are emitted, on the caller's goroutine.
type ProgressReporter struct {
	mu   sync.Mutex
	subs []func(ProgressEvent)
}

// NewProgressReporter creates a ProgressReporter with no subscribers.
func NewProgressReporter() *ProgressReporter {
	return &ProgressReporter{}
}

// Subscribe registers fn to receive every subsequent event.
func (pr *ProgressReporter) Subscribe(fn func(ProgressEvent)) {
	if fn == nil {
		return
	}
	pr.mu.Lock()
	defer pr.mu.Unlock()
	pr.subs = append(pr.subs, fn)
}

// Emit sends event to every subscriber.
func (pr *ProgressReporter) Emit(event ProgressEvent) {
	pr.mu.Lock()
	subs := pr.subs
	pr.mu.Unlock()

	for _, fn := range subs {
		fn(event)
	}
}

// FormatProgress formats a ProgressEvent as a human-readable status line.
func FormatProgress(event ProgressEvent) string {
	switch event.Status {
	case ProgressWorking:
		return fmt.Sprintf("  \u25cf %s: %s", event.Stage, event.Message)
	case ProgressComplete:
		return fmt.Sprintf("  \u2713 %s complete", event.Stage)
	case ProgressFailed:
		return fmt.Sprintf("  \u2717 %s failed: %s", event.Stage, event.Message)
	default:
		return fmt.Sprintf("  ? %s (unknown status)", event.Stage)
	}
}

// FormatRunHeader formats the line printed before the first stage.
// Returns: "[{source}] {flag}" or "[{source}]" when no flag is set.
func FormatRunHeader(source string, stop StopAfter) string {
	if stop == StopNone {
		return fmt.Sprintf("[%s]", source)
	}
	return fmt.Sprintf("[%s] %s", source, stop.Flag())
}
