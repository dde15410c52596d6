package marshal

import (
	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/stream"
)

func init() {
	register(abi.KindBool, func() Hooks {
		return Hooks{
			ManagedToNative: normalizeBoolToNative,
			NativeToManaged: normalizeNativeToBool,
		}
	})
	register(abi.KindCBool, func() Hooks {
		return Hooks{
			ManagedToNative: normalizeBoolToNative,
			NativeToManaged: normalizeNativeToBool,
		}
	})
}

// normalizeBoolToNative canonicalizes a managed bool's storage (any nonzero
// byte is true) down to native 0/1 via double negation, since the native
// side's Boolean/CBool representation is defined as exactly 0 or 1.
func normalizeBoolToNative(m *Marshaller, s *stream.Stream) error {
	s.Append(stream.OpLdcI4, stream.IntOperand(0))
	s.Append(stream.OpCeq, stream.NoOperand())
	s.Append(stream.OpLdcI4, stream.IntOperand(0))
	s.Append(stream.OpCeq, stream.NoOperand())
	return nil
}

func normalizeNativeToBool(m *Marshaller, s *stream.Stream) error {
	s.Append(stream.OpLdcI4, stream.IntOperand(0))
	s.Append(stream.OpCeq, stream.NoOperand())
	s.Append(stream.OpLdcI4, stream.IntOperand(0))
	s.Append(stream.OpCeq, stream.NoOperand())
	return nil
}
