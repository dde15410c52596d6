package typesystem

import "testing"

func TestSimple_Predefined(t *testing.T) {
	if !Int32.IsPrimitive() || !Int32.Blittable() {
		t.Errorf("Int32 = %+v, want primitive and blittable", Int32)
	}
	if Bool.Blittable() {
		t.Error("Bool.Blittable() = true, want false (bool needs normalization)")
	}
	if String.IsValueType() {
		t.Error("String.IsValueType() = true, want false (reference type)")
	}
	if !Void.IsVoid() {
		t.Error("Void.IsVoid() = false")
	}
}

func TestSimple_ByRef(t *testing.T) {
	r := ByRef(Int32)
	if !r.IsByRef() {
		t.Fatal("ByRef(Int32).IsByRef() = false")
	}
	if r.ElementType() != Int32 {
		t.Errorf("ByRef(Int32).ElementType() = %v, want Int32", r.ElementType())
	}
}

func TestSimple_ArrayOf(t *testing.T) {
	arr := ArrayOf(Int32)
	if !arr.IsArray() {
		t.Fatal("ArrayOf(Int32).IsArray() = false")
	}
	if arr.ElementType() != Int32 {
		t.Errorf("ArrayOf(Int32).ElementType() = %v, want Int32", arr.ElementType())
	}
	if arr.Name() != "System.Int32[]" {
		t.Errorf("ArrayOf(Int32).Name() = %q, want %q", arr.Name(), "System.Int32[]")
	}
}

func TestSimple_ElementType_PanicsWithoutShape(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("ElementType() on a plain type did not panic")
		}
	}()
	Int32.ElementType()
}

func TestSimple_Constructors(t *testing.T) {
	del := NewDelegate("MyApp.Callback")
	if !del.IsDelegate() {
		t.Error("NewDelegate did not set IsDelegate")
	}

	st := NewStruct("MyApp.Point", true)
	if !st.IsValueType() || !st.Blittable() {
		t.Error("NewStruct(blittable=true) should be a value type and blittable")
	}

	en := NewEnum("MyApp.Color")
	if !en.IsEnum() || !en.IsValueType() || !en.Blittable() {
		t.Error("NewEnum should be an enum, value type, and blittable")
	}

	ptr := NewPointer("MyApp.RawBuffer*")
	if !ptr.IsPointer() || !ptr.Blittable() {
		t.Error("NewPointer should be a pointer and blittable")
	}
}

func TestSimple_PrimitiveKind(t *testing.T) {
	if Int32.PrimitiveKind() != PrimitiveI4 {
		t.Errorf("Int32.PrimitiveKind() = %v, want PrimitiveI4", Int32.PrimitiveKind())
	}
	if String.PrimitiveKind() != PrimitiveNone {
		t.Errorf("String.PrimitiveKind() = %v, want PrimitiveNone", String.PrimitiveKind())
	}
}
