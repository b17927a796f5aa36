package invoker

import (
	"strconv"
	"strings"
)

// Command is a fully formed command line.
type Command struct {
	Program string
	Args    []string
}

// String renders the command for diagnostics, quoting arguments that
// contain whitespace or are empty.
func (c Command) String() string {
	if c.Program == "" && len(c.Args) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(quoteArg(c.Program))
	for _, a := range c.Args {
		b.WriteByte(' ')
		b.WriteString(quoteArg(a))
	}
	return b.String()
}

func quoteArg(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"'") {
		return strconv.Quote(s)
	}
	return s
}

// Spec identifies a stage to run and its file arguments.
type Spec struct {
	// Stage is the profile template key, e.g. "compile".
	Stage  string
	Input  string
	Output string
}

func (s Spec) vars() map[string]string {
	return map[string]string{
		"input":  s.Input,
		"output": s.Output,
	}
}

// expand replaces {name} placeholders in arg with values from vars.
func expand(stage, arg string, vars map[string]string) (string, error) {
	if !strings.ContainsAny(arg, "{}") {
		return arg, nil
	}

	var b strings.Builder
	b.Grow(len(arg))
	rest := arg
	for rest != "" {
		open := strings.IndexAny(rest, "{}")
		if open < 0 {
			b.WriteString(rest)
			break
		}
		if rest[open] == '}' {
			return "", &FormatError{Stage: stage, Msg: "unbalanced '}' in " + strconv.Quote(arg)}
		}
		b.WriteString(rest[:open])

		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", &FormatError{Stage: stage, Msg: "unterminated placeholder in " + strconv.Quote(arg)}
		}
		name := rest[open+1 : open+end]
		value, ok := vars[name]
		if !ok {
			return "", &FormatError{Stage: stage, Msg: "unknown placeholder {" + name + "}"}
		}
		if value == "" {
			return "", &FormatError{Stage: stage, Msg: "empty value for {" + name + "}"}
		}
		b.WriteString(value)
		rest = rest[open+end+1:]
	}
	return b.String(), nil
}
