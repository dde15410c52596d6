package native

import (
	"testing"

	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/typesystem"
)

func TestMap_BlittableValueDefaultsToManagedWidth(t *testing.T) {
	got, err := Map(abi.KindBlittableValue, abi.KindUnknown, nil, typesystem.Int32)
	if err != nil {
		t.Fatalf("Map returned error: %v", err)
	}
	if got.Category != CategoryManaged {
		t.Errorf("Category = %v, want CategoryManaged (no explicit tag falls back to the managed type)", got.Category)
	}
}

func TestMap_BlittableValueWithTag(t *testing.T) {
	d := &abi.MarshalAsDescriptor{Type: abi.NativeTagU4}
	got, err := Map(abi.KindBlittableValue, abi.KindUnknown, d, typesystem.UInt32)
	if err != nil {
		t.Fatalf("Map returned error: %v", err)
	}
	if got.Category != CategoryInt || got.BitWidth != 32 || got.Signed {
		t.Errorf("Map(BlittableValue, U4) = %+v, want unsigned i32", got)
	}
}

func TestMap_PointerKinds(t *testing.T) {
	for _, k := range []abi.Kind{abi.KindSafeHandle, abi.KindCriticalHandle, abi.KindHandleRef, abi.KindFunctionPointer} {
		got, err := Map(k, abi.KindUnknown, nil, typesystem.Object)
		if err != nil {
			t.Fatalf("Map(%s) returned error: %v", k, err)
		}
		if got.Category != CategoryInt || got.BitWidth != PointerWidth {
			t.Errorf("Map(%s) = %+v, want pointer-width unsigned int", k, got)
		}
	}
}

func TestMap_ArrayNestsElementAsPointer(t *testing.T) {
	got, err := Map(abi.KindBlittableArray, abi.KindBlittableValue, nil, typesystem.Int32)
	if err != nil {
		t.Fatalf("Map returned error: %v", err)
	}
	if got.Category != CategoryPointer {
		t.Errorf("Map(BlittableArray) = %+v, want a pointer", got)
	}
	if got.Pointee.Category != CategoryManaged {
		t.Errorf("Map(BlittableArray).Pointee = %+v, want CategoryManaged (untagged element)", *got.Pointee)
	}
}

func TestMap_UnsupportedKind(t *testing.T) {
	_, err := Map(abi.KindByValArray, abi.KindUnknown, nil, typesystem.Object)
	if err == nil {
		t.Fatal("Map(ByValArray) returned no error, want KindUnsupported")
	}
}

func TestMap_StringsArePointers(t *testing.T) {
	got, err := Map(abi.KindUnicodeString, abi.KindUnknown, nil, typesystem.String)
	if err != nil {
		t.Fatalf("Map returned error: %v", err)
	}
	if got.Category != CategoryPointer || got.Pointee.BitWidth != 16 {
		t.Errorf("Map(UnicodeString) = %+v, want pointer to u16", got)
	}

	got, err = Map(abi.KindAnsiString, abi.KindUnknown, nil, typesystem.String)
	if err != nil {
		t.Fatalf("Map returned error: %v", err)
	}
	if got.Category != CategoryPointer || got.Pointee.BitWidth != 8 {
		t.Errorf("Map(AnsiString) = %+v, want pointer to u8", got)
	}
}

func TestPointerTo(t *testing.T) {
	base := intType(32, true)
	p := PointerTo(base)
	if p.Category != CategoryPointer || p.Pointee.BitWidth != 32 || !p.Pointee.Signed {
		t.Errorf("PointerTo(i32) = %+v, want *i32", p)
	}
}

func TestType_String(t *testing.T) {
	tests := []struct {
		t    Type
		want string
	}{
		{intType(32, true), "i32"},
		{intType(8, false), "u8"},
		{floatType(64), "f64"},
		{pointerTo(intType(16, false)), "*u16"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
