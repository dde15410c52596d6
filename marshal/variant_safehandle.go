package marshal

import (
	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/stream"
)

func init() {
	register(abi.KindSafeHandle, func() Hooks {
		return Hooks{
			ManagedToNative: addRefAndGetHandle,
			NativeToManaged: wrapHandleInSafeHandle,
			Cleanup:         releaseSafeHandle,
		}
	})
}

// addRefAndGetHandle increments the SafeHandle's reference count before
// exposing the raw handle to native code, so a concurrent Dispose can't
// invalidate it mid-call (§6 SafeHandle::DangerousAddRef/DangerousGetHandle,
// the pattern the CLR itself uses for [In] SafeHandle parameters).
func addRefAndGetHandle(m *Marshaller, s *stream.Stream) error {
	s.Append(stream.OpDup, stream.NoOperand())
	callHelper(s, HelperDangerousAddRef)
	callHelper(s, HelperDangerousGetHandle)
	return nil
}

// wrapHandleInSafeHandle constructs a new SafeHandle instance around a
// handle value returned or produced by native code. Combined [In,Out]
// SafeHandle is rejected by New, so in a forward stub this path runs only
// for an out-only or return-value SafeHandle; in a reverse stub it also runs
// for an [In] argument arriving from the native caller.
func wrapHandleInSafeHandle(m *Marshaller, s *stream.Stream) error {
	s.Append(stream.OpNewObj, stream.TypeOperand(stream.ValueType{Name: m.ManagedType.Name()}))
	s.Append(stream.OpDup, stream.NoOperand())
	callHelper(s, HelperSetHandle)
	return nil
}

// releaseSafeHandle emits the DangerousRelease that pairs the DangerousAddRef
// addRefAndGetHandle emits for a forward [In] SafeHandle argument, appending
// it to the unmarshalling stream after the native call. No exception-handling
// region is emitted around the call, so the release is reached only when the
// call returns normally. Reverse stubs emit no release.
func releaseSafeHandle(m *Marshaller, b *stream.Bundle) error {
	if m.Direction != abi.Forward || !m.In {
		return nil
	}
	m.ManagedHome.LoadValue(b.Unmarshalling)
	callHelper(b.Unmarshalling, HelperDangerousRelease)
	return nil
}
