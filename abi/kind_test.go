package abi

import "testing"

func TestKind_String(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{KindBlittableValue, "BlittableValue"},
		{KindSafeHandle, "SafeHandle"},
		{KindVoidReturn, "VoidReturn"},
		{Kind(255), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestKind_IsArrayShape(t *testing.T) {
	arrayKinds := []Kind{KindArray, KindBlittableArray, KindAnsiCharArray, KindByValArray, KindByValAnsiCharArray}
	for _, k := range arrayKinds {
		if !k.IsArrayShape() {
			t.Errorf("%s.IsArrayShape() = false, want true", k)
		}
	}

	nonArray := []Kind{KindBlittableValue, KindSafeHandle, KindVoidReturn, KindUnknown}
	for _, k := range nonArray {
		if k.IsArrayShape() {
			t.Errorf("%s.IsArrayShape() = true, want false", k)
		}
	}
}

func TestKind_HasEmitter(t *testing.T) {
	noEmitter := []Kind{
		KindCriticalHandle, KindHandleRef, KindObject, KindByValArray,
		KindStruct, KindDecimal, KindGuid, KindOleDateTime,
		KindAnsiCharArray, KindByValAnsiCharArray, KindAnsiStringBuilder,
		KindVariant, KindUnknown, KindInvalid,
	}
	for _, k := range noEmitter {
		if k.HasEmitter() {
			t.Errorf("%s.HasEmitter() = true, want false", k)
		}
	}

	hasEmitter := []Kind{
		KindVoidReturn, KindBlittableValue, KindBool, KindCBool,
		KindUnicodeString, KindAnsiString, KindUnicodeStringBuilder,
		KindArray, KindBlittableArray, KindSafeHandle, KindFunctionPointer,
		KindEnum, KindUnicodeChar, KindAnsiChar,
	}
	for _, k := range hasEmitter {
		if !k.HasEmitter() {
			t.Errorf("%s.HasEmitter() = false, want true", k)
		}
	}
}
