package classify

import "github.com/nativestub/marshalgen/abi"

// EffectiveInOut resolves the §4.1 "Effective in/out resolution" rules
// given the raw parameter metadata and the classified kind. It returns the
// (in, out) pair the rest of the pipeline must use instead of the raw
// ParameterMetadata.In/Out fields.
func EffectiveInOut(p *abi.ParameterMetadata, kind abi.Kind, isStringBuilder bool) (in bool, out bool) {
	in, out = p.In, p.Out

	explicit := p.In || p.Out

	switch {
	case p.IsByRef():
		// 1. By-reference: [in,out] default both true; honour explicit descriptor.
		if !explicit {
			in, out = true, true
		}

	case isStringBuilder:
		// 2. String-builder by value: default [in,out].
		if !explicit {
			in, out = true, true
		}

	default:
		// 3. Otherwise default [in].
		if !explicit {
			in, out = true, false
		}
	}

	// 4. For by-value non-by-reference value types and strings, [out] is
	// silently dropped.
	if !p.IsByRef() && (isValueTypeKind(kind) || isStringKind(kind)) {
		out = false
	}

	// 5. For by-value AnsiString/UnicodeString with in=true, force out=false.
	if !p.IsByRef() && (kind == abi.KindAnsiString || kind == abi.KindUnicodeString) && in {
		out = false
	}

	return in, out
}

func isValueTypeKind(k abi.Kind) bool {
	switch k {
	case abi.KindBlittableValue, abi.KindEnum, abi.KindBool, abi.KindCBool,
		abi.KindDecimal, abi.KindGuid, abi.KindOleDateTime,
		abi.KindStruct, abi.KindBlittableStruct, abi.KindUnicodeChar, abi.KindAnsiChar:
		return true
	default:
		return false
	}
}

func isStringKind(k abi.Kind) bool {
	return k == abi.KindAnsiString || k == abi.KindUnicodeString
}
