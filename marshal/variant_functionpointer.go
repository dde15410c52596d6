package marshal

import (
	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/stream"
)

func init() {
	register(abi.KindFunctionPointer, func() Hooks {
		return Hooks{
			ManagedToNative: delegateToFunctionPointer,
			NativeToManaged: functionPointerToDelegate,
		}
	})
}

// delegateToFunctionPointer resolves a managed delegate instance to a
// native code pointer through the runtime's P/Invoke stub cache (§6
// GetStubForPInvokeDelegate), so the same delegate always yields the same
// native pointer across calls.
func delegateToFunctionPointer(m *Marshaller, s *stream.Stream) error {
	callHelper(s, HelperGetStubForPInvokeDelegate)
	return nil
}

// functionPointerToDelegate wraps a raw native code pointer arriving from
// native code into a new delegate instance of the parameter's declared
// delegate type.
func functionPointerToDelegate(m *Marshaller, s *stream.Stream) error {
	s.Append(stream.OpNewObj, stream.TypeOperand(stream.ValueType{Name: m.ManagedType.Name()}))
	return nil
}
