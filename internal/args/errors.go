package args

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for programmatic error checking via errors.Is().
var (
	// ErrUsage indicates the wrong number of arguments.
	ErrUsage = errors.New("wrong number of arguments")

	// ErrInvalidFlag indicates an unrecognized or repeated flag.
	ErrInvalidFlag = errors.New("invalid flag")

	// ErrInvalidFile indicates a missing, unreadable or non-C source file.
	ErrInvalidFile = errors.New("invalid source file")
)

// Kind classifies a Problem.
type Kind int

const (
	KindInvalidFlag Kind = iota
	KindInvalidFile
)

func (k Kind) sentinel() error {
	if k == KindInvalidFlag {
		return ErrInvalidFlag
	}
	return ErrInvalidFile
}

// Problem is one offending token.
type Problem struct {
	Kind  Kind
	Token string
	// Reason is a complete diagnostic, e.g. "invalid flag detected '--foo'".
	Reason string
}

// ValidationError collects every problem found in one pass over the
// arguments. It unwraps to ErrInvalidFlag and/or ErrInvalidFile.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "invalid arguments"
	}
	reasons := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		reasons[i] = p.Reason
	}
	return strings.Join(reasons, "; ")
}

// Unwrap returns the distinct sentinels of the collected problems.
func (e *ValidationError) Unwrap() []error {
	var errs []error
	seen := make(map[Kind]bool)
	for _, p := range e.Problems {
		if !seen[p.Kind] {
			seen[p.Kind] = true
			errs = append(errs, p.Kind.sentinel())
		}
	}
	return errs
}

// Has reports whether any problem is of kind k.
func (e *ValidationError) Has(k Kind) bool {
	for _, p := range e.Problems {
		if p.Kind == k {
			return true
		}
	}
	return false
}

func (e *ValidationError) add(kind Kind, token, format string, a ...any) {
	e.Problems = append(e.Problems, Problem{
		Kind:   kind,
		Token:  token,
		Reason: fmt.Sprintf(format, a...),
	})
}
