package source

import "fmt"

// Kind names a diagnostic category. The pipeline never recovers or
// aggregates: the first Error raised anywhere aborts the whole run.
type Kind string

const (
	UnexpectedCharacter Kind = "UnexpectedCharacter"
	ExpectedCharacter   Kind = "ExpectedCharacter"
	InvalidSyntax       Kind = "InvalidSyntax"
	UnknownTag          Kind = "UnknownTag"
	MissingAttribute    Kind = "MissingAttribute"
	WindowError         Kind = "WindowError"
	AttributeError      Kind = "AttributeError"
	FileError           Kind = "FileError"
	IdCollision         Kind = "IdCollision"
)

// Error is a diagnostic pinned to a source span.
type Error struct {
	Kind    Kind
	Span    Span
	Details string
}

func Errorf(kind Kind, span Span, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Span:    span,
		Details: fmt.Sprintf(format, args...),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s at %s", e.Kind, e.Details, &e.Span.Start)
}

// At reports where the error starts. It satisfies the SituatedErr contract
// the LSP uses to place diagnostics.
func (e *Error) At() Location {
	return e.Span.Start
}
