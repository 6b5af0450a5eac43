// Package diag defines the single diagnostic type every stage of the
// front end raises, and the coloring used to print it.
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Stage identifies which component raised a diagnostic.
type Stage int

const (
	Syntax Stage = iota
	Semantic
)

// Error is the one flat error taxonomy described by the front end: a
// stage, a message, and the offending lexeme or node label, plus a
// byte offset for tooling that wants one. Offset is informational only
// — no diagnostic's validity depends on it, and no line/column system
// is layered on top of it.
type Error struct {
	Stage   Stage
	Message string
	Offset  int
}

func (e *Error) Error() string {
	return e.Message
}

// NewSyntax builds a parser-stage diagnostic. Callers supply the fully
// formatted message (one of the exact forms the front end's external
// interface specifies); this just tags the stage.
func NewSyntax(offset int, format string, args ...any) *Error {
	return &Error{Stage: Syntax, Message: fmt.Sprintf(format, args...), Offset: offset}
}

// NewSemantic builds a type-checker diagnostic of the form
// `"Type error at '<label>': <cause>"`.
func NewSemantic(label, cause string) *Error {
	return &Error{Stage: Semantic, Message: fmt.Sprintf("Type error at '%s': %s", label, cause)}
}

var (
	errorPrefix = color.New(color.FgRed, color.Bold)
	okPrefix    = color.New(color.FgGreen, color.Bold)
)

// PrintFailure writes err to the given writer in red when color is
// enabled (fatih/color disables itself automatically on a non-TTY,
// matching the teacher's test harness). The message is printed
// verbatim: each producer site already formats its own exact
// diagnostic line, so no prefix is added here.
func PrintFailure(w io.Writer, err error) {
	errorPrefix.Fprintln(w, err.Error())
}

// PrintSuccess writes the passing verdict required by §6, colored
// green when color is enabled.
func PrintSuccess(w io.Writer) {
	okPrefix.Fprintln(w, "Type checking passed.")
}
