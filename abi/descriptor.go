package abi

// NativeTag is the native-type tag a caller may specify on a MarshalAs
// descriptor (§3). NativeTagNone means the descriptor (or the descriptor's
// field) was not supplied.
type NativeTag uint8

const (
	NativeTagNone NativeTag = iota
	NativeTagI1
	NativeTagU1
	NativeTagI2
	NativeTagU2
	NativeTagI4
	NativeTagU4
	NativeTagI8
	NativeTagU8
	NativeTagR4
	NativeTagR8
	NativeTagLPStr
	NativeTagLPWStr
	NativeTagLPStruct
	NativeTagStruct
	NativeTagBoolean
	NativeTagArray
	NativeTagByValArray
	NativeTagFunc
)

func (t NativeTag) String() string {
	switch t {
	case NativeTagNone:
		return "None"
	case NativeTagI1:
		return "I1"
	case NativeTagU1:
		return "U1"
	case NativeTagI2:
		return "I2"
	case NativeTagU2:
		return "U2"
	case NativeTagI4:
		return "I4"
	case NativeTagU4:
		return "U4"
	case NativeTagI8:
		return "I8"
	case NativeTagU8:
		return "U8"
	case NativeTagR4:
		return "R4"
	case NativeTagR8:
		return "R8"
	case NativeTagLPStr:
		return "LPStr"
	case NativeTagLPWStr:
		return "LPWStr"
	case NativeTagLPStruct:
		return "LPStruct"
	case NativeTagStruct:
		return "Struct"
	case NativeTagBoolean:
		return "Boolean"
	case NativeTagArray:
		return "Array"
	case NativeTagByValArray:
		return "ByValArray"
	case NativeTagFunc:
		return "Func"
	default:
		return "unknown"
	}
}

// MarshalAsDescriptor is the user-supplied native-interop descriptor for a
// parameter, field, or return value (§3, §6).
type MarshalAsDescriptor struct {
	Type NativeTag

	// ArraySubType is the element-level native tag for Array/ByValArray.
	ArraySubType NativeTag

	// SizeConst and SizeParamIndex together resolve an array's element
	// count on the Reverse/out path (§4.5). Either may be absent; presence
	// is recorded by WithSizeConst/WithSizeParamIndex and reported by
	// HasSizeConst/HasSizeParamIndex, not by the field's value.
	SizeConst      int
	SizeParamIndex int

	hasSizeConst      bool
	hasSizeParamIndex bool
}

// HasSizeConst reports whether SizeConst was explicitly supplied.
func (d *MarshalAsDescriptor) HasSizeConst() bool {
	return d != nil && d.hasSizeConst
}

// HasSizeParamIndex reports whether SizeParamIndex was explicitly supplied.
func (d *MarshalAsDescriptor) HasSizeParamIndex() bool {
	return d != nil && d.hasSizeParamIndex
}

// WithSizeConst returns a copy of d with SizeConst set.
func (d MarshalAsDescriptor) WithSizeConst(n int) MarshalAsDescriptor {
	d.SizeConst = n
	d.hasSizeConst = true
	return d
}

// WithSizeParamIndex returns a copy of d with SizeParamIndex set.
func (d MarshalAsDescriptor) WithSizeParamIndex(n int) MarshalAsDescriptor {
	d.SizeParamIndex = n
	d.hasSizeParamIndex = true
	return d
}
