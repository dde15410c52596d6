package errors

import (
	"errors"
	"testing"
)

func TestError_Error_Basic(t *testing.T) {
	err := New(PhaseClassify, KindUnsupported).Build()
	want := "[classify] unsupported"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestError_Error_WithPath(t *testing.T) {
	err := New(PhaseClassify, KindUnsupported).Path("arg1", "field").Build()
	want := "[classify] unsupported at arg1.field"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestError_Error_WithTypes(t *testing.T) {
	err := New(PhaseMap, KindTypeMismatch).
		ManagedType("System.Boolean").
		NativeType("I1").
		Build()
	want := "[map] type_mismatch: managed type System.Boolean, native type I1"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestError_Error_WithDetailAndCause(t *testing.T) {
	cause := errors.New("underlying failure")
	err := New(PhaseEmit, KindInvariant).
		Detail("element kind Unknown inside array").
		Cause(cause).
		Build()
	want := "[emit] invariant: element kind Unknown inside array (caused by: underlying failure)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := New(PhaseOrchestrate, KindNotFound).Cause(cause).Build()
	if got := errors.Unwrap(err); got != cause {
		t.Errorf("Unwrap() = %v, want %v", got, cause)
	}
}

func TestError_Is(t *testing.T) {
	a := New(PhaseClassify, KindUnsupported).Build()
	b := New(PhaseClassify, KindUnsupported).Detail("different detail").Build()
	c := New(PhaseMap, KindUnsupported).Build()

	if !errors.Is(a, b) {
		t.Error("expected a.Is(b) to be true (same phase/kind)")
	}
	if errors.Is(a, c) {
		t.Error("expected a.Is(c) to be false (different phase)")
	}
}

func TestUnsupported(t *testing.T) {
	err := Unsupported([]string{"p1"}, "System.Object", "no native tag for Variant")
	if err.Phase != PhaseClassify || err.Kind != KindUnsupported {
		t.Errorf("got phase=%s kind=%s, want classify/unsupported", err.Phase, err.Kind)
	}
	if err.ManagedType != "System.Object" {
		t.Errorf("ManagedType = %q, want System.Object", err.ManagedType)
	}
}

func TestInvalidSizeParamIndex(t *testing.T) {
	err := InvalidSizeParamIndex([]string{"arr"}, 7, "index 7 exceeds parameter count")
	if err.Phase != PhaseValidate || err.Kind != KindInvalidSize {
		t.Errorf("got phase=%s kind=%s, want validate/invalid_size", err.Phase, err.Kind)
	}
	if err.Value != 7 {
		t.Errorf("Value = %v, want 7", err.Value)
	}
}

func TestOutOfBounds(t *testing.T) {
	err := OutOfBounds(PhaseOrchestrate, nil, 5, 3)
	want := "[orchestrate] out_of_bounds: index 5 out of bounds (length 3)"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestInvariant(t *testing.T) {
	err := Invariant(PhaseHome, "store into a pure argument home")
	if err.Kind != KindInvariant {
		t.Errorf("Kind = %s, want invariant", err.Kind)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("inner")
	err := Wrap(PhaseEmit, KindInvalidInput, cause, "bad helper reference")
	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Unwrap() != cause {
		t.Errorf("Unwrap() = %v, want %v", err.Unwrap(), cause)
	}
}
