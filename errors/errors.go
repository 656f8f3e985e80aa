package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in a load call the error occurred
type Phase string

const (
	PhaseOpen      Phase = "open"      // archive opening
	PhaseEnumerate Phase = "enumerate" // entry enumeration
	PhaseResolve   Phase = "resolve"   // unit resolution
	PhaseDiscover  Phase = "discover"  // predicate-filtered discovery
	PhaseStamp     Phase = "stamp"     // descriptor stamping (authoring side)
)

// Kind categorizes the error
type Kind string

const (
	KindNotFound       Kind = "not_found"
	KindInvalidArchive Kind = "invalid_archive"
	KindInvalidUnit    Kind = "invalid_unit"
	KindBadName        Kind = "bad_name"
	KindCompile        Kind = "compile"
	KindDescriptor     Kind = "descriptor"
	KindIO             Kind = "io"
)

// Error is the structured error type used throughout the library.
// A load call fails with at most one Error; Phase and Kind keep the
// failure kinds distinguishable for callers that want them.
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Bundle string
	Entry  string
	Unit   string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Bundle != "" {
		b.WriteString(" bundle ")
		b.WriteString(e.Bundle)
	}
	if e.Entry != "" {
		b.WriteString(" entry ")
		b.WriteString(e.Entry)
	}
	if e.Unit != "" {
		b.WriteString(" unit ")
		b.WriteString(e.Unit)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by Phase and Kind
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Bundle sets the bundle path
func (b *Builder) Bundle(path string) *Builder {
	b.err.Bundle = path
	return b
}

// Entry sets the archive entry name
func (b *Builder) Entry(name string) *Builder {
	b.err.Entry = name
	return b
}

// Unit sets the resolved unit name
func (b *Builder) Unit(name string) *Builder {
	b.err.Unit = name
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Open creates an archive-open failure
func Open(bundle string, cause error) *Error {
	return New(PhaseOpen, KindInvalidArchive).Bundle(bundle).Cause(cause).Build()
}

// NotFound creates a not-found failure for the given phase
func NotFound(phase Phase, what, name string) *Error {
	return New(phase, KindNotFound).Detail("%s %q not found", what, name).Build()
}

// Resolution creates a per-entry resolution failure
func Resolution(entry string, cause error) *Error {
	return New(PhaseResolve, KindInvalidUnit).Entry(entry).Cause(cause).Build()
}

// BadName creates a failure for an entry name that cannot map to a unit name
func BadName(entry, detail string) *Error {
	return New(PhaseResolve, KindBadName).Entry(entry).Detail("%s", detail).Build()
}

// Compile creates a failure for a unit the runtime rejected
func Compile(entry string, cause error) *Error {
	return New(PhaseResolve, KindCompile).Entry(entry).Cause(cause).Build()
}

// Descriptor creates a failure for a malformed unit descriptor section
func Descriptor(entry string, cause error) *Error {
	return New(PhaseResolve, KindDescriptor).Entry(entry).Cause(cause).Build()
}

// IsFailure reports whether err represents a failed load call.
// It is the simplified boolean-success view; callers that need the
// failure kind can type-assert to *Error or use errors.As.
func IsFailure(err error) bool {
	return err != nil
}
