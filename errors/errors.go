package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which stage of stub generation produced the error.
type Phase string

const (
	PhaseClassify    Phase = "classify"    // kind classifier decision tree
	PhaseMap         Phase = "map"         // native-type mapping
	PhaseHome        Phase = "home"        // home (storage location) setup
	PhaseEmit        Phase = "emit"        // marshaller code emission
	PhaseOrchestrate Phase = "orchestrate" // stub orchestration / method assembly
	PhaseValidate    Phase = "validate"    // descriptor / metadata validation
)

// Kind categorizes the error.
type Kind string

const (
	KindUnsupported    Kind = "unsupported"     // classifier reached Invalid
	KindInvalidSize    Kind = "invalid_size"    // bad SizeParamIndex/SizeConst
	KindTypeMismatch   Kind = "type_mismatch"   // descriptor disagrees with managed type
	KindInvariant      Kind = "invariant"       // internal invariant violated; should be unreachable
	KindOutOfBounds    Kind = "out_of_bounds"   // index outside parameter list
	KindNotFound       Kind = "not_found"       // referenced helper/home not registered
	KindNilPointer     Kind = "nil_pointer"
	KindInvalidInput   Kind = "invalid_input"
)

// Error is the structured error type used throughout the generator.
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	ManagedType string
	NativeType  string
	Detail     string
	Path       []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.ManagedType != "" || e.NativeType != "" {
		b.WriteString(": ")
		switch {
		case e.ManagedType != "" && e.NativeType != "":
			b.WriteString("managed type ")
			b.WriteString(e.ManagedType)
			b.WriteString(", native type ")
			b.WriteString(e.NativeType)
		case e.ManagedType != "":
			b.WriteString("managed type ")
			b.WriteString(e.ManagedType)
		default:
			b.WriteString("native type ")
			b.WriteString(e.NativeType)
		}
	}

	if e.Detail != "" {
		if e.ManagedType != "" || e.NativeType != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error's phase and kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction.
type Builder struct {
	err Error
}

// New creates a new error builder.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field/parameter path.
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// ManagedType sets the managed type name.
func (b *Builder) ManagedType(t string) *Builder {
	b.err.ManagedType = t
	return b
}

// NativeType sets the native type name.
func (b *Builder) NativeType(t string) *Builder {
	b.err.NativeType = t
	return b
}

// Value sets the offending value.
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error.
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error.
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns.

// Unsupported creates an UnsupportedSignature error (§7): the classifier
// returned Invalid for this (type, descriptor, policy, role) combination.
func Unsupported(path []string, managedType string, detail string) *Error {
	return &Error{
		Phase:       PhaseClassify,
		Kind:        KindUnsupported,
		Path:        path,
		ManagedType: managedType,
		Detail:      detail,
	}
}

// InvalidSizeParamIndex creates an InvalidSizeParamIndex error (§7).
func InvalidSizeParamIndex(path []string, index int, detail string) *Error {
	return &Error{
		Phase:  PhaseValidate,
		Kind:   KindInvalidSize,
		Path:   path,
		Value:  index,
		Detail: detail,
	}
}

// TypeMismatch creates a descriptor/managed-type mismatch error.
func TypeMismatch(phase Phase, path []string, managedType, nativeType string) *Error {
	return &Error{
		Phase:       phase,
		Kind:        KindTypeMismatch,
		Path:        path,
		ManagedType: managedType,
		NativeType:  nativeType,
	}
}

// Invariant creates an InternalInvariantViolation error (§7). Reaching this
// constructor in a correct implementation is itself a bug.
func Invariant(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvariant,
		Detail: detail,
	}
}

// OutOfBounds creates an out-of-range index error.
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Value:  index,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
	}
}

// NotFound creates a not-found error for an unresolved helper or home.
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// NilPointer creates a nil pointer error.
func NilPointer(phase Phase, path []string, managedType string) *Error {
	return &Error{
		Phase:       phase,
		Kind:        KindNilPointer,
		Path:        path,
		ManagedType: managedType,
		Detail:      "nil pointer",
	}
}

// InvalidInput creates a generic invalid-input error.
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
