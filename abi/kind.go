// Package abi holds the data model shared by every stage of the generator:
// the closed MarshallerKind enum, MarshallerRole/Direction tags, and the
// caller-supplied metadata (ParameterMetadata, MarshalAsDescriptor,
// MethodPolicy) the Kind Classifier consumes.
package abi

// Kind is the closed sum of marshalling strategy tags (§3). Every
// constructed marshaller has a Kind other than Unknown; Invalid means the
// signature is unmarshallable and must be rejected by the orchestrator.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInvalid

	KindBlittableValue
	KindEnum
	KindUnicodeChar
	KindAnsiChar
	KindBool
	KindCBool
	KindDecimal
	KindGuid
	KindOleDateTime
	KindStruct
	KindBlittableStruct
	KindBlittableStructPtr
	KindHandleRef
	KindSafeHandle
	KindCriticalHandle
	KindAnsiString
	KindUnicodeString
	KindAnsiStringBuilder
	KindUnicodeStringBuilder
	KindArray
	KindBlittableArray
	KindAnsiCharArray
	KindByValArray
	KindByValAnsiCharArray
	KindFunctionPointer
	KindVariant
	KindObject
	KindVoidReturn
)

var kindNames = [...]string{
	KindUnknown:              "Unknown",
	KindInvalid:               "Invalid",
	KindBlittableValue:        "BlittableValue",
	KindEnum:                  "Enum",
	KindUnicodeChar:           "UnicodeChar",
	KindAnsiChar:              "AnsiChar",
	KindBool:                  "Bool",
	KindCBool:                 "CBool",
	KindDecimal:               "Decimal",
	KindGuid:                  "Guid",
	KindOleDateTime:           "OleDateTime",
	KindStruct:                "Struct",
	KindBlittableStruct:       "BlittableStruct",
	KindBlittableStructPtr:    "BlittableStructPtr",
	KindHandleRef:             "HandleRef",
	KindSafeHandle:            "SafeHandle",
	KindCriticalHandle:        "CriticalHandle",
	KindAnsiString:            "AnsiString",
	KindUnicodeString:         "UnicodeString",
	KindAnsiStringBuilder:     "AnsiStringBuilder",
	KindUnicodeStringBuilder:  "UnicodeStringBuilder",
	KindArray:                 "Array",
	KindBlittableArray:        "BlittableArray",
	KindAnsiCharArray:         "AnsiCharArray",
	KindByValArray:            "ByValArray",
	KindByValAnsiCharArray:    "ByValAnsiCharArray",
	KindFunctionPointer:       "FunctionPointer",
	KindVariant:               "Variant",
	KindObject:                "Object",
	KindVoidReturn:            "VoidReturn",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// ElementKind is a Kind value describing an array's element strategy. It is
// an alias, not a distinct type, so call sites read as the spec's
// "(kind, elementKind)" pair while staying freely interchangeable with Kind.
type ElementKind = Kind

// IsArrayShape reports whether k is one of the array-family kinds, i.e. it
// carries an ElementKind and was produced by the array arm of the
// classifier (§4.1).
func (k Kind) IsArrayShape() bool {
	switch k {
	case KindArray, KindBlittableArray, KindAnsiCharArray, KindByValArray, KindByValAnsiCharArray:
		return true
	default:
		return false
	}
}

// HasEmitter reports whether a concrete Marshaller variant exists for this
// kind in this implementation (§9 Open Questions: several kinds classify
// correctly but have no corresponding emitter and are rejected at
// orchestration time).
func (k Kind) HasEmitter() bool {
	switch k {
	case KindVoidReturn, KindBlittableValue, KindBool, KindCBool,
		KindUnicodeString, KindAnsiString,
		KindUnicodeStringBuilder,
		KindArray, KindBlittableArray,
		KindSafeHandle, KindFunctionPointer,
		KindEnum, KindUnicodeChar, KindAnsiChar:
		return true
	default:
		return false
	}
}
