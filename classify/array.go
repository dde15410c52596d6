package classify

import (
	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/typesystem"
)

// classifyArray implements the single-dimensional array arm of §4.1:
// classify the element recursively, then promote based on the element's
// resolved kind. Arrays are disallowed as field or return.
func classifyArray(t typesystem.Type, marshalAs *abi.MarshalAsDescriptor, policy abi.Policy, role abi.Role, tag abi.NativeTag, isReturn bool) Result {
	if role == abi.RoleField || isReturn {
		return single(abi.KindInvalid)
	}

	byVal := tag == abi.NativeTagByValArray

	if tag != abi.NativeTagNone && tag != abi.NativeTagArray && !byVal {
		return single(abi.KindInvalid)
	}

	var elemDescriptor *abi.MarshalAsDescriptor
	if marshalAs != nil && marshalAs.ArraySubType != abi.NativeTagNone {
		elemDescriptor = &abi.MarshalAsDescriptor{Type: marshalAs.ArraySubType}
	}

	elemResult := Classify(t.ElementType(), elemDescriptor, policy, abi.RoleElement, false)
	if elemResult.Kind == abi.KindInvalid {
		return single(abi.KindInvalid)
	}

	promoted := promoteArrayKind(elemResult.Kind, byVal)
	return Result{Kind: promoted, ElementKind: elemResult.Kind}
}

// promoteArrayKind implements: element AnsiChar -> AnsiCharArray; element
// UnicodeChar/Enum/BlittableValue -> BlittableArray; otherwise Array (or
// their ByVal equivalents).
func promoteArrayKind(elem abi.Kind, byVal bool) abi.Kind {
	switch elem {
	case abi.KindAnsiChar:
		if byVal {
			return abi.KindByValAnsiCharArray
		}
		return abi.KindAnsiCharArray
	case abi.KindUnicodeChar, abi.KindEnum, abi.KindBlittableValue:
		if byVal {
			return abi.KindByValArray
		}
		return abi.KindBlittableArray
	default:
		if byVal {
			return abi.KindByValArray
		}
		return abi.KindArray
	}
}
