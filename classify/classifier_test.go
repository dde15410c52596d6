package classify

import (
	"testing"

	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/typesystem"
)

func descriptor(tag abi.NativeTag) *abi.MarshalAsDescriptor {
	return &abi.MarshalAsDescriptor{Type: tag}
}

func TestClassify_Primitives(t *testing.T) {
	policy := abi.DefaultPolicy(abi.CharSetUnicode)

	tests := []struct {
		name string
		typ  typesystem.Type
		tag  *abi.MarshalAsDescriptor
		want abi.Kind
	}{
		{"int32 no tag", typesystem.Int32, nil, abi.KindBlittableValue},
		{"int32 matching tag", typesystem.Int32, descriptor(abi.NativeTagI4), abi.KindBlittableValue},
		{"int32 mismatched tag", typesystem.Int32, descriptor(abi.NativeTagI8), abi.KindInvalid},
		{"bool no tag", typesystem.Bool, nil, abi.KindBool},
		{"bool as I1", typesystem.Bool, descriptor(abi.NativeTagI1), abi.KindCBool},
		{"char unicode default", typesystem.Char, nil, abi.KindUnicodeChar},
		{"char as U1", typesystem.Char, descriptor(abi.NativeTagU1), abi.KindAnsiChar},
		{"void", typesystem.Void, nil, abi.KindVoidReturn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.typ, tt.tag, policy, abi.RoleArgument, false)
			if got.Kind != tt.want {
				t.Errorf("Classify(%s) = %s, want %s", tt.typ.Name(), got.Kind, tt.want)
			}
		})
	}
}

func TestClassify_CharSetAnsiDefault(t *testing.T) {
	policy := abi.DefaultPolicy(abi.CharSetAnsi)
	got := Classify(typesystem.Char, nil, policy, abi.RoleArgument, false)
	if got.Kind != abi.KindAnsiChar {
		t.Errorf("Classify(char, CharSetAnsi) = %s, want AnsiChar", got.Kind)
	}
	got = Classify(typesystem.String, nil, policy, abi.RoleArgument, false)
	if got.Kind != abi.KindAnsiString {
		t.Errorf("Classify(string, CharSetAnsi) = %s, want AnsiString", got.Kind)
	}
}

func TestClassify_StringLPTags(t *testing.T) {
	policy := abi.DefaultPolicy(abi.CharSetUnicode)

	got := Classify(typesystem.String, descriptor(abi.NativeTagLPStr), policy, abi.RoleArgument, false)
	if got.Kind != abi.KindAnsiString {
		t.Errorf("LPStr string classified as %s, want AnsiString", got.Kind)
	}

	got = Classify(typesystem.String, descriptor(abi.NativeTagLPWStr), policy, abi.RoleArgument, false)
	if got.Kind != abi.KindUnicodeString {
		t.Errorf("LPWStr string classified as %s, want UnicodeString", got.Kind)
	}
}

func TestClassify_StringBuilder(t *testing.T) {
	policy := abi.DefaultPolicy(abi.CharSetUnicode)
	got := Classify(typesystem.StringBuilder, nil, policy, abi.RoleArgument, false)
	if got.Kind != abi.KindUnicodeStringBuilder {
		t.Errorf("StringBuilder classified as %s, want UnicodeStringBuilder", got.Kind)
	}
}

func TestClassify_SafeHandle(t *testing.T) {
	policy := abi.DefaultPolicy(abi.CharSetUnicode)
	got := Classify(typesystem.SafeHandle, nil, policy, abi.RoleArgument, false)
	if got.Kind != abi.KindSafeHandle {
		t.Errorf("SafeHandle classified as %s, want SafeHandle", got.Kind)
	}
	got = Classify(typesystem.SafeHandle, descriptor(abi.NativeTagI4), policy, abi.RoleArgument, false)
	if got.Kind != abi.KindInvalid {
		t.Errorf("SafeHandle with explicit tag classified as %s, want Invalid", got.Kind)
	}
}

func TestClassify_DecimalLPStructRules(t *testing.T) {
	policy := abi.DefaultPolicy(abi.CharSetUnicode)

	got := Classify(typesystem.Decimal, descriptor(abi.NativeTagLPStruct), policy, abi.RoleArgument, false)
	if got.Kind != abi.KindBlittableStructPtr {
		t.Errorf("Decimal LPStruct argument = %s, want BlittableStructPtr", got.Kind)
	}

	got = Classify(typesystem.Decimal, descriptor(abi.NativeTagLPStruct), policy, abi.RoleArgument, true)
	if got.Kind != abi.KindInvalid {
		t.Errorf("Decimal LPStruct return = %s, want Invalid", got.Kind)
	}

	got = Classify(typesystem.Decimal, descriptor(abi.NativeTagLPStruct), policy, abi.RoleField, false)
	if got.Kind != abi.KindInvalid {
		t.Errorf("Decimal LPStruct field = %s, want Invalid", got.Kind)
	}
}

func TestClassify_GuidBlittability(t *testing.T) {
	policy := abi.DefaultPolicy(abi.CharSetUnicode)
	got := Classify(typesystem.Guid, nil, policy, abi.RoleArgument, false)
	if got.Kind != abi.KindBlittableStruct {
		t.Errorf("blittable Guid classified as %s, want BlittableStruct", got.Kind)
	}
}

func TestClassify_ArrayDisallowedAsReturnOrField(t *testing.T) {
	policy := abi.DefaultPolicy(abi.CharSetUnicode)
	arr := typesystem.ArrayOf(typesystem.Int32)

	got := Classify(arr, nil, policy, abi.RoleArgument, true)
	if got.Kind != abi.KindInvalid {
		t.Errorf("array as return = %s, want Invalid", got.Kind)
	}

	got = Classify(arr, nil, policy, abi.RoleField, false)
	if got.Kind != abi.KindInvalid {
		t.Errorf("array as field = %s, want Invalid", got.Kind)
	}
}

func TestClassify_BlittableArrayElement(t *testing.T) {
	policy := abi.DefaultPolicy(abi.CharSetUnicode)
	arr := typesystem.ArrayOf(typesystem.Int32)

	got := Classify(arr, nil, policy, abi.RoleArgument, false)
	if got.Kind != abi.KindBlittableArray {
		t.Errorf("int[] classified as %s, want BlittableArray", got.Kind)
	}
	if got.ElementKind != abi.KindBlittableValue {
		t.Errorf("int[] element kind = %s, want BlittableValue", got.ElementKind)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	policy := abi.DefaultPolicy(abi.CharSetUnicode)
	first := Classify(typesystem.Int32, nil, policy, abi.RoleArgument, false)
	second := Classify(typesystem.Int32, nil, policy, abi.RoleArgument, false)
	if first != second {
		t.Errorf("Classify not idempotent: %v != %v", first, second)
	}
}
