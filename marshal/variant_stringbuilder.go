package marshal

import (
	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/stream"
)

func init() {
	register(abi.KindUnicodeStringBuilder, func() Hooks {
		return Hooks{
			ManagedToNative: allocStringBuilderBuffer,
			NativeToManaged: replaceStringBuilderBuffer,
		}
	})
}

// allocStringBuilderBuffer converts a managed StringBuilder into a fresh
// native buffer sized to its Capacity, seeded with its current contents
// (§6 GetEmptyStringBuilderBuffer).
func allocStringBuilderBuffer(m *Marshaller, s *stream.Stream) error {
	callHelper(s, HelperGetEmptyStringBuilderBuffer)
	return nil
}

// replaceStringBuilderBuffer copies the native buffer's post-call contents
// back into the StringBuilder's internal storage (§6
// StringBuilder::ReplaceBuffer).
func replaceStringBuilderBuffer(m *Marshaller, s *stream.Stream) error {
	callHelper(s, HelperStringBuilderReplaceBuffer)
	return nil
}
