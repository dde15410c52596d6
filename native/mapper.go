// Package native implements the Native-Type Mapper (§4.2): a pure function
// from a MarshallerKind (plus element kind and descriptor) to the native
// representation type passed across the interop boundary.
package native

import (
	"fmt"

	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/errors"
	"github.com/nativestub/marshalgen/typesystem"
)

// Category is the coarse shape of a native representation.
type Category uint8

const (
	CategoryInt Category = iota
	CategoryFloat
	CategoryPointer
	CategoryManaged // pass the managed type through unchanged (Enum, Struct, Decimal, VoidReturn, ...)
)

// Type is the native representation the mapper produces for a Kind: an
// integer of a given width/sign, a float, a pointer to another Type, or a
// managed-type passthrough.
type Type struct {
	Category Category
	BitWidth uint8 // meaningful for CategoryInt/CategoryFloat
	Signed   bool  // meaningful for CategoryInt

	// Pointee is set when Category == CategoryPointer.
	Pointee *Type

	// Managed is set when Category == CategoryManaged.
	Managed typesystem.Type
}

func intType(width uint8, signed bool) Type {
	return Type{Category: CategoryInt, BitWidth: width, Signed: signed}
}

func floatType(width uint8) Type {
	return Type{Category: CategoryFloat, BitWidth: width}
}

func pointerTo(t Type) Type {
	cp := t
	return Type{Category: CategoryPointer, Pointee: &cp}
}

func managed(t typesystem.Type) Type {
	return Type{Category: CategoryManaged, Managed: t}
}

// PointerWidth is the native pointer width. A real host would take this
// from the target ABI; the generator only needs it to size FunctionPointer/
// SafeHandle/CriticalHandle/HandleRef, which are always pointer-width
// integers regardless of struct layout concerns.
const PointerWidth = 64

// Map implements §4.2's per-kind switch.
func Map(kind abi.Kind, elementKind abi.ElementKind, d *abi.MarshalAsDescriptor, managedType typesystem.Type) (Type, error) {
	tag := abi.NativeTagNone
	if d != nil {
		tag = d.Type
	}

	switch kind {
	case abi.KindBlittableValue:
		return mapBlittableValue(tag, managedType)

	case abi.KindBool:
		return intType(32, true), nil
	case abi.KindCBool:
		return intType(8, false), nil

	case abi.KindUnicodeChar:
		if tag == abi.NativeTagU2 {
			return intType(16, false), nil
		}
		return intType(16, true), nil
	case abi.KindAnsiChar:
		return intType(8, false), nil

	case abi.KindOleDateTime:
		return floatType(64), nil

	case abi.KindSafeHandle, abi.KindCriticalHandle, abi.KindHandleRef, abi.KindFunctionPointer:
		return intType(PointerWidth, false), nil

	case abi.KindUnicodeString, abi.KindUnicodeStringBuilder:
		return pointerTo(intType(16, false)), nil
	case abi.KindAnsiString, abi.KindAnsiStringBuilder:
		return pointerTo(intType(8, false)), nil

	case abi.KindArray, abi.KindBlittableArray, abi.KindAnsiCharArray:
		elemManaged := managedType
		if managedType != nil && managedType.IsArray() {
			elemManaged = managedType.ElementType()
		}
		elemNative, err := Map(elementKind, abi.KindUnknown, elementDescriptor(d), elemManaged)
		if err != nil {
			return Type{}, err
		}
		return pointerTo(elemNative), nil

	case abi.KindBlittableStructPtr:
		return pointerTo(managed(managedType)), nil

	case abi.KindEnum, abi.KindBlittableStruct, abi.KindStruct, abi.KindDecimal, abi.KindVoidReturn:
		return managed(managedType), nil

	case abi.KindByValArray, abi.KindByValAnsiCharArray, abi.KindUnknown:
		return Type{}, errors.New(errors.PhaseMap, errors.KindUnsupported).
			ManagedType(nameOf(managedType)).
			Detail("kind %s has no native representation at the mapper layer", kind).
			Build()

	default:
		return Type{}, errors.New(errors.PhaseMap, errors.KindUnsupported).
			ManagedType(nameOf(managedType)).
			Detail("unmapped kind %s", kind).
			Build()
	}
}

func mapBlittableValue(tag abi.NativeTag, managedType typesystem.Type) (Type, error) {
	switch tag {
	case abi.NativeTagI1:
		return intType(8, true), nil
	case abi.NativeTagU1:
		return intType(8, false), nil
	case abi.NativeTagI2:
		return intType(16, true), nil
	case abi.NativeTagU2:
		return intType(16, false), nil
	case abi.NativeTagI4:
		return intType(32, true), nil
	case abi.NativeTagU4:
		return intType(32, false), nil
	case abi.NativeTagI8:
		return intType(64, true), nil
	case abi.NativeTagU8:
		return intType(64, false), nil
	case abi.NativeTagR4:
		return floatType(32), nil
	case abi.NativeTagR8:
		return floatType(64), nil
	default:
		return managed(managedType), nil
	}
}

func elementDescriptor(d *abi.MarshalAsDescriptor) *abi.MarshalAsDescriptor {
	if d == nil || d.ArraySubType == abi.NativeTagNone {
		return nil
	}
	return &abi.MarshalAsDescriptor{Type: d.ArraySubType}
}

func nameOf(t typesystem.Type) string {
	if t == nil {
		return ""
	}
	return t.Name()
}

// PointerTo builds a pointer-to-t native type, used by the caller to
// compute a by-reference marshaller's nativeParamType (§3 invariant:
// isNativeByRef ⇒ nativeParamType is a pointer to nativeType).
func PointerTo(t Type) Type {
	return pointerTo(t)
}

// String renders a Type for diagnostics and CLI output.
func (t Type) String() string {
	switch t.Category {
	case CategoryInt:
		sign := "i"
		if !t.Signed {
			sign = "u"
		}
		return fmt.Sprintf("%s%d", sign, t.BitWidth)
	case CategoryFloat:
		return fmt.Sprintf("f%d", t.BitWidth)
	case CategoryPointer:
		return "*" + t.Pointee.String()
	case CategoryManaged:
		return nameOf(t.Managed)
	default:
		return "?"
	}
}
