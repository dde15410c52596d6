// Package typesystem declares the managed type-system surface this
// generator consumes but does not define (§1, §6: "Type-system (consumed)").
// The real implementation of Type lives in the enclosing compiler pipeline;
// this package only states the shape the classifier, mapper, and
// marshallers need from it, plus a minimal reference implementation used by
// tests and the CLI.
package typesystem

// Type is the subset of a managed type's shape the generator needs: its
// fully-qualified name, whether it is passed by reference, its element type
// (array element or by-ref pointee), and a handful of shape predicates.
//
// A real host implementation resolves these against its own type model; the
// generator never constructs a Type itself, only inspects one supplied by
// the caller.
type Type interface {
	// Name is the fully-qualified managed name, e.g. "System.String" or
	// "MyApp.Point".
	Name() string

	// IsByRef reports whether this is a by-reference wrapper (e.g. "ref T"
	// or "out T"). ElementType returns the pointee.
	IsByRef() bool

	// ElementType returns the by-ref pointee or the array element type.
	// It panics if neither IsByRef nor IsArray holds — mirroring the
	// invariant that callers unwrap by-reference before classifying (§4.1).
	ElementType() Type

	IsPrimitive() bool
	IsValueType() bool
	IsEnum() bool
	IsArray() bool
	IsPointer() bool
	IsDelegate() bool
	IsVoid() bool

	// Blittable reports whether the managed and native bit-representations
	// are identical for this type (the glossary's "Blittable").
	Blittable() bool
}

// PrimitiveKind is a coarse-grained primitive classification used by the classifier
// for the "integer widths"/"float/double"/"intptr" arms of §4.1. It is
// meaningful only when Type.IsPrimitive() is true.
type PrimitiveKind uint8

const (
	PrimitiveNone PrimitiveKind = iota
	PrimitiveVoid
	PrimitiveBool
	PrimitiveChar
	PrimitiveI1
	PrimitiveU1
	PrimitiveI2
	PrimitiveU2
	PrimitiveI4
	PrimitiveU4
	PrimitiveI8
	PrimitiveU8
	PrimitiveIntPtr
	PrimitiveUIntPtr
	PrimitiveR4
	PrimitiveR8
)

// Primitive narrows a Type to its PrimitiveKind. Implementations of Type
// that are not primitive return PrimitiveNone.
type Primitive interface {
	Type
	PrimitiveKind() PrimitiveKind
}
