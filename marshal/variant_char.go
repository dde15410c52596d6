package marshal

import (
	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/stream"
)

func init() {
	register(abi.KindUnicodeChar, baseHooks) // both sides are 16-bit; no conversion needed.

	register(abi.KindAnsiChar, func() Hooks {
		return Hooks{
			ManagedToNative: narrowCharToAnsi,
			NativeToManaged: widenAnsiToChar,
		}
	})
}

// narrowCharToAnsi converts a 16-bit managed char to its 8-bit native byte
// (best-fit mapping is a host-supplied codepage concern, out of scope here;
// this only records the width conversion the stream must contain).
func narrowCharToAnsi(m *Marshaller, s *stream.Stream) error {
	s.Append(stream.OpConvU, stream.NoOperand())
	return nil
}

func widenAnsiToChar(m *Marshaller, s *stream.Stream) error {
	s.Append(stream.OpConvU, stream.NoOperand())
	return nil
}
