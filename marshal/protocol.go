package marshal

import (
	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/home"
	"github.com/nativestub/marshalgen/stream"
)

// Hooks is the small set of kind-specific operations the base protocol
// (§4.3) calls into. Every Marshaller shares the same home-setup,
// call-site-load, and cleanup-ordering skeleton; only the value transforms
// and (for a few kinds) allocation/reinit/cleanup/element-count logic vary
// by kind, so those are the only things a concrete variant supplies.
//
// ManagedToNative and NativeToManaged operate on a value already sitting on
// top of the evaluation stack, leaving the transformed value on top in its
// place; the base protocol is responsible for loading the source and
// storing the result.
type Hooks struct {
	ManagedToNative func(m *Marshaller, s *stream.Stream) error
	NativeToManaged func(m *Marshaller, s *stream.Stream) error

	// AllocNative prepares the native home before any managed->native
	// transform runs. Nil means no preparation is needed beyond the local
	// allocated by the base protocol itself; no registered variant sets it
	// (string and array buffers are allocated inside ManagedToNative).
	AllocNative func(m *Marshaller, b *stream.Bundle) error

	// ReInitNative zero/default-initializes the native home for the
	// out-only, by-reference case, where no managed value flows in before
	// the call (§4.3 step 2 alternative).
	ReInitNative func(m *Marshaller, b *stream.Bundle) error

	// Cleanup runs after the native-to-managed step, in the direction's
	// terminal stream, releasing resources the variant's transforms acquired
	// (the ANSI string buffer, the array buffer, the SafeHandle reference).
	Cleanup func(m *Marshaller, b *stream.Bundle) error

	// ElementCount emits instructions that push the resolved element count
	// for an array-family kind (§4.5); nil for every non-array kind.
	ElementCount func(m *Marshaller, b *stream.Bundle) error

	// Pinned reports whether this kind's native local should be marked
	// pinned when the base protocol allocates it (§5).
	Pinned bool
}

func identityTransform(m *Marshaller, s *stream.Stream) error { return nil }

// baseHooks is the default, used by kinds that need no more than a
// pass-through: the value already sitting where it's loaded from is
// bit-compatible with where it's stored to (VoidReturn, BlittableValue,
// Enum, UnicodeChar).
func baseHooks() Hooks {
	return Hooks{
		ManagedToNative: identityTransform,
		NativeToManaged: identityTransform,
	}
}

// setupArgumentHomes assigns ManagedHome/NativeHome for an ordinary
// (non-return) argument marshaller and mirrors the managed by-reference
// flag onto IsNativeByRef (§3 invariant: a by-ref managed parameter always
// gets a by-ref native counterpart in this generator, since the native
// side can then write results back in place).
func setupArgumentHomes(m *Marshaller, b *stream.Bundle) error {
	if m.homesReady {
		return nil
	}
	m.emitter = b.Emitter
	m.IsNativeByRef = m.IsManagedByRef

	managedVT := stream.ValueType{Name: m.ManagedType.Name()}
	if m.IsManagedByRef {
		m.ManagedHome = home.ByRefArg(m.Param.Index, managedVT)
	} else {
		m.ManagedHome = home.Arg(m.Param.Index, managedVT)
	}

	nativeType, err := m.NativeType()
	if err != nil {
		return err
	}
	nativeVT := streamValueType(nativeType)
	local := b.Emitter.AllocLocal(nativeVT, m.hooks.Pinned)
	// The local holds the native value itself; when IsNativeByRef the call
	// site passes its address (LoadAddress).
	m.NativeHome = home.Local(local.Slot, nativeVT)

	m.homesReady = true
	return nil
}

// propagateResult stores the value currently on top of s into dst,
// threading through a scratch local first when dst is by-reference (§3:
// by-reference homes are never a direct Store target).
func propagateResult(b *stream.Bundle, s *stream.Stream, dst home.Home) error {
	if !dst.IsByRef() {
		return dst.Store(s)
	}
	scratch := b.Emitter.AllocLocal(dst.Type(), false)
	scratchHome := home.Local(scratch.Slot, dst.Type())
	if err := scratchHome.Store(s); err != nil {
		return err
	}
	return dst.StoreIndirectFrom(s, scratchHome)
}

// emitArgumentForward implements the Forward, non-return entrypoint (§4.3
// steps 1-6): a managed caller invoking a native function.
func emitArgumentForward(m *Marshaller, b *stream.Bundle) error {
	if err := setupArgumentHomes(m, b); err != nil {
		return err
	}

	if m.hooks.AllocNative != nil {
		if err := m.hooks.AllocNative(m, b); err != nil {
			return err
		}
	}

	switch {
	case m.In:
		m.ManagedHome.LoadValue(b.Marshalling)
		if err := m.hooks.ManagedToNative(m, b.Marshalling); err != nil {
			return err
		}
		if err := propagateResult(b, b.Marshalling, m.NativeHome); err != nil {
			return err
		}
	case m.hooks.ReInitNative != nil:
		if err := m.hooks.ReInitNative(m, b); err != nil {
			return err
		}
	}

	if m.IsNativeByRef {
		m.NativeHome.LoadAddress(b.CallSiteSetup)
	} else {
		m.NativeHome.LoadValue(b.CallSiteSetup)
	}

	if m.Out {
		m.NativeHome.LoadValue(b.Unmarshalling)
		if err := m.hooks.NativeToManaged(m, b.Unmarshalling); err != nil {
			return err
		}
		if err := propagateResult(b, b.Unmarshalling, m.ManagedHome); err != nil {
			return err
		}
	}

	if m.hooks.Cleanup != nil {
		if err := m.hooks.Cleanup(m, b); err != nil {
			return err
		}
	}
	return nil
}

// emitArgumentReverse mirrors emitArgumentForward for a native caller
// invoking a managed callback: the native value arrives already in the
// argument slot, gets converted to managed for the call, and (if Out) the
// managed result is converted back and propagated through the by-reference
// native argument.
func emitArgumentReverse(m *Marshaller, b *stream.Bundle) error {
	if m.homesReady {
		return nil
	}
	m.emitter = b.Emitter
	m.IsNativeByRef = m.IsManagedByRef

	nativeType, err := m.NativeType()
	if err != nil {
		return err
	}
	nativeVT := streamValueType(nativeType)
	if m.IsNativeByRef {
		m.NativeHome = home.ByRefArg(m.Param.Index, nativeVT)
	} else {
		m.NativeHome = home.Arg(m.Param.Index, nativeVT)
	}

	managedVT := stream.ValueType{Name: m.ManagedType.Name()}
	local := b.Emitter.AllocLocal(managedVT, false)
	// The local holds the managed value itself; when IsManagedByRef the call
	// site passes its address (LoadAddress).
	m.ManagedHome = home.Local(local.Slot, managedVT)
	m.homesReady = true

	if m.In {
		m.NativeHome.LoadValue(b.Marshalling)
		if err := m.hooks.NativeToManaged(m, b.Marshalling); err != nil {
			return err
		}
		if err := propagateResult(b, b.Marshalling, m.ManagedHome); err != nil {
			return err
		}
	}

	if m.IsManagedByRef {
		m.ManagedHome.LoadAddress(b.CallSiteSetup)
	} else {
		m.ManagedHome.LoadValue(b.CallSiteSetup)
	}

	if m.Out {
		m.ManagedHome.LoadValue(b.Unmarshalling)
		if err := m.hooks.ManagedToNative(m, b.Unmarshalling); err != nil {
			return err
		}
		if err := propagateResult(b, b.Unmarshalling, m.NativeHome); err != nil {
			return err
		}
	}

	if m.hooks.Cleanup != nil {
		return m.hooks.Cleanup(m, b)
	}
	return nil
}

// PrepareReturnHome allocates a return marshaller's native and managed
// locals ahead of the native call site, so the orchestrator can store the
// call's raw result into NativeHome (ManagedHome in a Reverse stub)
// immediately after emitting the call
// instruction, before EmitMarshallingIL runs the return-value transform.
func PrepareReturnHome(m *Marshaller, b *stream.Bundle) error {
	if m.homesReady || m.Kind == abi.KindVoidReturn {
		return nil
	}
	m.emitter = b.Emitter
	nativeType, err := m.NativeType()
	if err != nil {
		return err
	}
	nativeVT := streamValueType(nativeType)
	local := b.Emitter.AllocLocal(nativeVT, m.hooks.Pinned)
	m.NativeHome = home.Local(local.Slot, nativeVT)
	m.ManagedHome = home.Local(b.Emitter.AllocLocal(stream.ValueType{Name: m.ManagedType.Name()}, false).Slot,
		stream.ValueType{Name: m.ManagedType.Name()})
	m.homesReady = true
	return nil
}

// emitReturnValueForward converts the native function's return value into
// the managed return value in a Forward stub (§4.3); a Reverse stub's
// return value goes through emitReturnValueReverse instead.
func emitReturnValueForward(m *Marshaller, b *stream.Bundle) error {
	if m.Kind == abi.KindVoidReturn {
		b.ReturnValue.Append(stream.OpRet, stream.NoOperand())
		return nil
	}

	if err := PrepareReturnHome(m, b); err != nil {
		return err
	}

	m.NativeHome.LoadValue(b.ReturnValue)
	if err := m.hooks.NativeToManaged(m, b.ReturnValue); err != nil {
		return err
	}
	if m.hooks.Cleanup != nil {
		if err := m.ManagedHome.Store(b.ReturnValue); err != nil {
			return err
		}
		if err := m.hooks.Cleanup(m, b); err != nil {
			return err
		}
		m.ManagedHome.LoadValue(b.ReturnValue)
	}
	b.ReturnValue.Append(stream.OpRet, stream.NoOperand())
	return nil
}

// emitReturnValueReverse converts the managed callback's return value into
// the native return value handed back to the native caller.
func emitReturnValueReverse(m *Marshaller, b *stream.Bundle) error {
	if m.Kind == abi.KindVoidReturn {
		b.ReturnValue.Append(stream.OpRet, stream.NoOperand())
		return nil
	}

	if err := PrepareReturnHome(m, b); err != nil {
		return err
	}

	m.ManagedHome.LoadValue(b.ReturnValue)
	if err := m.hooks.ManagedToNative(m, b.ReturnValue); err != nil {
		return err
	}
	b.ReturnValue.Append(stream.OpRet, stream.NoOperand())
	return nil
}

// emitElement runs an array element's own (kind, elementKind) marshaller in
// place, on the current top-of-stack value, without any Home of its own —
// arrays load/store elements by index (§4.4 Array variant) rather than by
// argument/local slot.
func emitElement(m *Marshaller, b *stream.Bundle) error {
	if m.Direction == abi.Forward {
		return m.hooks.ManagedToNative(m, b.Marshalling)
	}
	return m.hooks.NativeToManaged(m, b.Marshalling)
}
