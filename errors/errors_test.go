package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:  PhaseResolve,
				Kind:   KindCompile,
				Bundle: "plugins.bndl",
				Entry:  "plugins/http/handler.wasm",
				Unit:   "plugins.http.handler",
				Detail: "module rejected",
			},
			contains: []string{"[resolve]", "compile", "plugins.bndl", "plugins/http/handler.wasm", "plugins.http.handler", "module rejected"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseOpen,
				Kind:  KindInvalidArchive,
			},
			contains: []string{"[open]", "invalid_archive"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseResolve,
				Kind:   KindDescriptor,
				Detail: "truncated payload",
				Cause:  errors.New("unexpected EOF"),
			},
			contains: []string{"[resolve]", "descriptor", "truncated payload", "caused by", "unexpected EOF"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseOpen,
		Kind:  KindIO,
		Cause: cause,
	}

	if !errors.Is(errors.Unwrap(err), cause) {
		t.Error("errors.Unwrap did not return cause")
	}
}

func TestError_Is(t *testing.T) {
	err := Resolution("a/b.wasm", errors.New("bad magic"))

	if !errors.Is(err, &Error{Phase: PhaseResolve, Kind: KindInvalidUnit}) {
		t.Error("expected match on phase and kind")
	}
	if errors.Is(err, &Error{Phase: PhaseOpen, Kind: KindInvalidUnit}) {
		t.Error("unexpected match with different phase")
	}
	if errors.Is(err, &Error{Phase: PhaseResolve, Kind: KindCompile}) {
		t.Error("unexpected match with different kind")
	}
}

func TestBuilder(t *testing.T) {
	err := New(PhaseDiscover, KindNotFound).
		Bundle("b.zip").
		Entry("x.wasm").
		Unit("x").
		Detail("unit %s missing", "x").
		Build()

	if err.Phase != PhaseDiscover || err.Kind != KindNotFound {
		t.Errorf("unexpected phase/kind: %s/%s", err.Phase, err.Kind)
	}
	if err.Bundle != "b.zip" || err.Entry != "x.wasm" || err.Unit != "x" {
		t.Errorf("builder did not set context fields: %+v", err)
	}
	if err.Detail != `unit x missing` {
		t.Errorf("unexpected detail: %q", err.Detail)
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name  string
		err   *Error
		phase Phase
		kind  Kind
	}{
		{"open", Open("b.zip", cause), PhaseOpen, KindInvalidArchive},
		{"resolution", Resolution("e.wasm", cause), PhaseResolve, KindInvalidUnit},
		{"bad name", BadName("e.wasm", "empty segment"), PhaseResolve, KindBadName},
		{"compile", Compile("e.wasm", cause), PhaseResolve, KindCompile},
		{"descriptor", Descriptor("e.wasm", cause), PhaseResolve, KindDescriptor},
		{"not found", NotFound(PhaseDiscover, "unit", "x"), PhaseDiscover, KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Phase != tt.phase {
				t.Errorf("phase = %s, want %s", tt.err.Phase, tt.phase)
			}
			if tt.err.Kind != tt.kind {
				t.Errorf("kind = %s, want %s", tt.err.Kind, tt.kind)
			}
		})
	}
}

func TestBadName_DetailVerbatim(t *testing.T) {
	// The detail is caller-supplied text, not a format string.
	err := BadName("e.wasm", "segment is 100% empty")
	if err.Detail != "segment is 100% empty" {
		t.Errorf("detail = %q, want it verbatim", err.Detail)
	}
}

func TestIsFailure(t *testing.T) {
	if IsFailure(nil) {
		t.Error("nil error reported as failure")
	}
	if !IsFailure(Open("b.zip", nil)) {
		t.Error("open failure not reported")
	}
}
