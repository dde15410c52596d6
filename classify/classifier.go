// Package classify implements the Kind Classifier (§4.1): a pure function
// mapping (managed type, descriptor, method policy, role) to a
// (MarshallerKind, ElementKind) pair.
package classify

import (
	"sync"

	"go.uber.org/zap"

	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/typesystem"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the classify package's logger instance. It uses a no-op
// logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the classify package's logger. Call before any
// classification to see decision-tree tracing.
func SetLogger(l *zap.Logger) {
	logger = l
}

// Result is the classifier's output: a Kind plus, for array shapes, an
// ElementKind.
type Result struct {
	Kind        abi.Kind
	ElementKind abi.ElementKind
}

func single(k abi.Kind) Result { return Result{Kind: k, ElementKind: abi.KindUnknown} }

// Classify runs the §4.1 decision tree for a single (type, descriptor,
// policy, role). t must already be by-reference-unwrapped; callers pass
// param.UnwrappedType(). isReturn distinguishes the return-value slot
// (role is still RoleArgument per the Index==0 invariant, §3) from an
// ordinary argument, for the arms of §4.1 that read "argument (not
// field/return)".
func Classify(t typesystem.Type, marshalAs *abi.MarshalAsDescriptor, policy abi.Policy, role abi.Role, isReturn bool) Result {
	tag := abi.NativeTagNone
	if marshalAs != nil {
		tag = marshalAs.Type
	}

	Logger().Debug("classify",
		zap.String("type", t.Name()),
		zap.String("tag", tag.String()),
		zap.String("role", role.String()))

	switch {
	case t.IsVoid():
		return single(abi.KindVoidReturn)

	case t.IsPrimitive():
		return single(classifyPrimitive(t, tag, policy))

	case t.IsArray():
		return classifyArray(t, marshalAs, policy, role, tag, isReturn)

	case t.IsDelegate():
		if tag == abi.NativeTagNone || tag == abi.NativeTagFunc {
			return single(abi.KindFunctionPointer)
		}
		return single(abi.KindInvalid)

	case policy.IsSystemArray != nil && policy.IsSystemArray(t) && !t.IsArray():
		// System.Array-typed parameter without a concrete element shape:
		// treated the same as Object in the absence of a native tag.
		if tag == abi.NativeTagNone {
			return single(abi.KindVariant)
		}
		return single(abi.KindInvalid)

	case policy.IsSafeHandle != nil && policy.IsSafeHandle(t):
		if tag == abi.NativeTagNone {
			return single(abi.KindSafeHandle)
		}
		return single(abi.KindInvalid)

	case policy.IsStringBuilder != nil && policy.IsStringBuilder(t):
		return single(classifyStringLike(tag, policy, true))

	case t.Name() == "System.String":
		return single(classifyStringLike(tag, policy, false))

	case t.Name() == "System.Object":
		if tag == abi.NativeTagNone {
			return single(abi.KindVariant)
		}
		return single(abi.KindInvalid)

	case t.IsEnum():
		return single(abi.KindEnum)

	case policy.IsSystemDateTime != nil && policy.IsSystemDateTime(t):
		if tag == abi.NativeTagNone || tag == abi.NativeTagStruct {
			return single(abi.KindOleDateTime)
		}
		return single(abi.KindInvalid)

	case policy.IsSystemDecimal != nil && policy.IsSystemDecimal(t):
		return single(classifyDecimal(tag, role, isReturn))

	case policy.IsSystemGuid != nil && policy.IsSystemGuid(t):
		return single(classifyGuid(t, tag, role, isReturn))

	case t.Name() == "System.Runtime.InteropServices.HandleRef":
		if tag == abi.NativeTagNone {
			return single(abi.KindHandleRef)
		}
		return single(abi.KindInvalid)

	case t.Name() == "System.Runtime.InteropServices.CriticalHandle":
		if tag == abi.NativeTagNone {
			return single(abi.KindCriticalHandle)
		}
		return single(abi.KindInvalid)

	case t.IsValueType() && !t.IsPointer():
		return single(classifyValueType(t, tag))

	case t.IsPointer():
		if tag == abi.NativeTagNone {
			return single(abi.KindBlittableValue)
		}
		return single(abi.KindInvalid)

	default:
		return single(classifyValueType(t, tag))
	}
}

func classifyPrimitive(t typesystem.Type, tag abi.NativeTag, policy abi.Policy) abi.Kind {
	prim, ok := t.(typesystem.Primitive)
	if !ok {
		return abi.KindInvalid
	}

	switch prim.PrimitiveKind() {
	case typesystem.PrimitiveBool:
		switch tag {
		case abi.NativeTagNone, abi.NativeTagBoolean:
			return abi.KindBool
		case abi.NativeTagI1, abi.NativeTagU1:
			return abi.KindCBool
		default:
			return abi.KindInvalid
		}

	case typesystem.PrimitiveChar:
		switch tag {
		case abi.NativeTagI1, abi.NativeTagU1:
			return abi.KindAnsiChar
		case abi.NativeTagI2, abi.NativeTagU2:
			return abi.KindUnicodeChar
		case abi.NativeTagNone:
			if policy.CharSet == abi.CharSetAnsi {
				return abi.KindAnsiChar
			}
			return abi.KindUnicodeChar
		default:
			return abi.KindInvalid
		}

	case typesystem.PrimitiveI1:
		return blittableIfMatches(tag, abi.NativeTagI1)
	case typesystem.PrimitiveU1:
		return blittableIfMatches(tag, abi.NativeTagU1)
	case typesystem.PrimitiveI2:
		return blittableIfMatches(tag, abi.NativeTagI2)
	case typesystem.PrimitiveU2:
		return blittableIfMatches(tag, abi.NativeTagU2)
	case typesystem.PrimitiveI4:
		return blittableIfMatches(tag, abi.NativeTagI4)
	case typesystem.PrimitiveU4:
		return blittableIfMatches(tag, abi.NativeTagU4)
	case typesystem.PrimitiveI8:
		return blittableIfMatches(tag, abi.NativeTagI8)
	case typesystem.PrimitiveU8:
		return blittableIfMatches(tag, abi.NativeTagU8)
	case typesystem.PrimitiveIntPtr, typesystem.PrimitiveUIntPtr:
		if tag == abi.NativeTagNone {
			return abi.KindBlittableValue
		}
		return abi.KindInvalid
	case typesystem.PrimitiveR4:
		return blittableIfMatches(tag, abi.NativeTagR4)
	case typesystem.PrimitiveR8:
		return blittableIfMatches(tag, abi.NativeTagR8)
	default:
		return abi.KindInvalid
	}
}

// blittableIfMatches implements the recurring "BlittableValue iff native
// absent or matches width/sign; else Invalid" rule (§4.1).
func blittableIfMatches(tag, want abi.NativeTag) abi.Kind {
	if tag == abi.NativeTagNone || tag == want {
		return abi.KindBlittableValue
	}
	return abi.KindInvalid
}

func classifyStringLike(tag abi.NativeTag, policy abi.Policy, builder bool) abi.Kind {
	unicode := func() abi.Kind {
		if builder {
			return abi.KindUnicodeStringBuilder
		}
		return abi.KindUnicodeString
	}
	ansi := func() abi.Kind {
		if builder {
			return abi.KindAnsiStringBuilder
		}
		return abi.KindAnsiString
	}

	switch tag {
	case abi.NativeTagLPWStr:
		return unicode()
	case abi.NativeTagLPStr:
		return ansi()
	case abi.NativeTagNone:
		if policy.CharSet == abi.CharSetAnsi {
			return ansi()
		}
		return unicode()
	default:
		return abi.KindInvalid
	}
}

// isPlainArgument reports the "argument (not field/return)" condition used
// by the Decimal and Guid arms of §4.1.
func isPlainArgument(role abi.Role, isReturn bool) bool {
	return role == abi.RoleArgument && !isReturn
}

func classifyDecimal(tag abi.NativeTag, role abi.Role, isReturn bool) abi.Kind {
	switch tag {
	case abi.NativeTagNone, abi.NativeTagStruct:
		return abi.KindDecimal
	case abi.NativeTagLPStruct:
		if isPlainArgument(role, isReturn) {
			return abi.KindBlittableStructPtr
		}
		return abi.KindInvalid
	default:
		return abi.KindInvalid
	}
}

func classifyGuid(t typesystem.Type, tag abi.NativeTag, role abi.Role, isReturn bool) abi.Kind {
	switch tag {
	case abi.NativeTagLPStruct:
		if isPlainArgument(role, isReturn) {
			return abi.KindBlittableStructPtr
		}
		return abi.KindInvalid
	case abi.NativeTagNone, abi.NativeTagStruct:
		if t.Blittable() {
			return abi.KindBlittableStruct
		}
		return abi.KindStruct
	default:
		return abi.KindInvalid
	}
}

func classifyValueType(t typesystem.Type, tag abi.NativeTag) abi.Kind {
	if tag != abi.NativeTagNone && tag != abi.NativeTagStruct {
		return abi.KindInvalid
	}
	if t.Blittable() {
		return abi.KindBlittableStruct
	}
	return abi.KindStruct
}
