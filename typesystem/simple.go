package typesystem

// Simple is a minimal reference implementation of Type, used by tests and
// the CLI in place of a real compiler type model. Mirrors the teacher's
// pattern of small value-typed markers for leaf types (e.g. wit.Bool{},
// wit.U8{}) plus a handful of explicit flags for shape.
type Simple struct {
	name      string
	prim      PrimitiveKind
	byRef     bool
	elem      Type
	valueType bool
	enum      bool
	array     bool
	pointer   bool
	delegate  bool
	blittable bool
}

func (s *Simple) Name() string              { return s.name }
func (s *Simple) IsByRef() bool             { return s.byRef }
func (s *Simple) IsPrimitive() bool         { return s.prim != PrimitiveNone }
func (s *Simple) IsValueType() bool         { return s.valueType || s.IsPrimitive() || s.enum }
func (s *Simple) IsEnum() bool              { return s.enum }
func (s *Simple) IsArray() bool             { return s.array }
func (s *Simple) IsPointer() bool           { return s.pointer }
func (s *Simple) IsDelegate() bool          { return s.delegate }
func (s *Simple) IsVoid() bool              { return s.prim == PrimitiveVoid }
func (s *Simple) Blittable() bool           { return s.blittable }
func (s *Simple) PrimitiveKind() PrimitiveKind { return s.prim }

func (s *Simple) ElementType() Type {
	if s.elem == nil {
		panic("typesystem: ElementType called on a type with no element (not by-ref or array)")
	}
	return s.elem
}

// ByRef wraps t in a by-reference Simple type.
func ByRef(t Type) *Simple {
	return &Simple{name: "ref " + t.Name(), byRef: true, elem: t, valueType: false}
}

// ArrayOf builds a single-dimensional array Simple type over elem.
func ArrayOf(elem Type) *Simple {
	return &Simple{name: elem.Name() + "[]", array: true, elem: elem}
}

// Named predefined primitive and well-known types, mirroring the teacher's
// exported zero-size wit.U8{}/wit.Bool{} markers.
var (
	Void     = &Simple{name: "System.Void", prim: PrimitiveVoid}
	Bool     = &Simple{name: "System.Boolean", prim: PrimitiveBool, valueType: true, blittable: false}
	Char     = &Simple{name: "System.Char", prim: PrimitiveChar, valueType: true}
	SByte    = &Simple{name: "System.SByte", prim: PrimitiveI1, valueType: true, blittable: true}
	Byte     = &Simple{name: "System.Byte", prim: PrimitiveU1, valueType: true, blittable: true}
	Int16    = &Simple{name: "System.Int16", prim: PrimitiveI2, valueType: true, blittable: true}
	UInt16   = &Simple{name: "System.UInt16", prim: PrimitiveU2, valueType: true, blittable: true}
	Int32    = &Simple{name: "System.Int32", prim: PrimitiveI4, valueType: true, blittable: true}
	UInt32   = &Simple{name: "System.UInt32", prim: PrimitiveU4, valueType: true, blittable: true}
	Int64    = &Simple{name: "System.Int64", prim: PrimitiveI8, valueType: true, blittable: true}
	UInt64   = &Simple{name: "System.UInt64", prim: PrimitiveU8, valueType: true, blittable: true}
	IntPtr   = &Simple{name: "System.IntPtr", prim: PrimitiveIntPtr, valueType: true, blittable: true}
	UIntPtr  = &Simple{name: "System.UIntPtr", prim: PrimitiveUIntPtr, valueType: true, blittable: true}
	Single   = &Simple{name: "System.Single", prim: PrimitiveR4, valueType: true, blittable: true}
	Double   = &Simple{name: "System.Double", prim: PrimitiveR8, valueType: true, blittable: true}

	String       = &Simple{name: "System.String"}
	Object       = &Simple{name: "System.Object"}
	Decimal      = &Simple{name: "System.Decimal", valueType: true}
	Guid         = &Simple{name: "System.Guid", valueType: true, blittable: true}
	DateTime     = &Simple{name: "System.DateTime", valueType: true}
	StringBuilder = &Simple{name: "System.Text.StringBuilder"}
	SafeHandle   = &Simple{name: "System.Runtime.InteropServices.SafeHandle"}
	HandleRef    = &Simple{name: "System.Runtime.InteropServices.HandleRef", valueType: true}
	CriticalHandle = &Simple{name: "System.Runtime.InteropServices.CriticalHandle"}
)

// NewDelegate builds a Simple representing a delegate type (for
// FunctionPointer classification).
func NewDelegate(name string) *Simple {
	return &Simple{name: name, delegate: true}
}

// NewStruct builds a Simple representing a user struct value type (enums
// come from NewEnum).
func NewStruct(name string, blittable bool) *Simple {
	return &Simple{name: name, valueType: true, blittable: blittable}
}

// NewEnum builds a Simple representing a blittable enum type. Its
// underlying primitive kind is not recorded.
func NewEnum(name string) *Simple {
	return &Simple{name: name, valueType: true, enum: true, blittable: true}
}

// NewPointer builds a Simple representing an unmanaged pointer type.
func NewPointer(name string) *Simple {
	return &Simple{name: name, pointer: true, valueType: true, blittable: true}
}
