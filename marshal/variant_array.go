package marshal

import (
	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/stream"
)

func init() {
	register(abi.KindBlittableArray, func() Hooks {
		return Hooks{
			ManagedToNative: pinBlittableArray,
			NativeToManaged: reconstructBlittableArray,
			ElementCount:    pushElementCount,
			Pinned:          true,
		}
	})

	register(abi.KindArray, func() Hooks {
		return Hooks{
			ManagedToNative: copyArrayElementsToNative,
			NativeToManaged: copyArrayElementsToManaged,
			Cleanup:         freeArrayBuffer,
			ElementCount:    pushElementCount,
		}
	})
}

func pushElementCount(m *Marshaller, b *stream.Bundle) error {
	emitElementCount(m, b.Marshalling)
	return nil
}

// pinBlittableArray converts a managed array directly into a pointer to its
// first element (§4.4: blittable-element arrays are pinned rather than
// copied element by element, since the layouts already match).
func pinBlittableArray(m *Marshaller, s *stream.Stream) error {
	nt, err := m.NativeType()
	if err != nil {
		return err
	}
	s.Append(stream.OpLdcI4, stream.IntOperand(0))
	s.Append(stream.OpLdElemA, stream.TypeOperand(streamValueType(*nt.Pointee)))
	s.Append(stream.OpConvI, stream.NoOperand())
	return nil
}

// reconstructBlittableArray is a no-op when the array flowed in (its
// elements were already updated in place through the pin); when the array
// is out-only, it allocates a fresh managed array of the resolved element
// count. The native buffer's contents are not copied into that array.
func reconstructBlittableArray(m *Marshaller, s *stream.Stream) error {
	if m.In {
		return nil
	}
	emitElementCount(m, s)
	s.Append(stream.OpNewArr, stream.TypeOperand(stream.ValueType{Name: m.ElementKind.String()}))
	return nil
}

// copyArrayElementsToNative allocates a zeroed native buffer of the resolved
// element count times the element's native size and loops an indexed
// ldelem/stelem pair over it — the general case for arrays whose element
// kind is not itself blittable (e.g. LPWStr arrays). The element kind's own
// conversion is not emitted into the loop body.
func copyArrayElementsToNative(m *Marshaller, s *stream.Stream) error {
	nt, err := m.NativeType()
	if err != nil {
		return err
	}
	emitElementCount(m, s)
	s.Append(stream.OpSizeof, stream.TypeOperand(streamValueType(*nt.Pointee)))
	s.Append(stream.OpMul, stream.NoOperand())
	callHelper(s, HelperCoTaskMemAllocAndZeroMemory)
	emitCopyLoop(m, s)
	return nil
}

func copyArrayElementsToManaged(m *Marshaller, s *stream.Stream) error {
	emitElementCount(m, s)
	s.Append(stream.OpNewArr, stream.TypeOperand(stream.ValueType{Name: m.ElementKind.String()}))
	emitCopyLoop(m, s)
	return nil
}

// emitCopyLoop appends the counted element-copy loop skeleton: a label-
// bound condition check, an indexed load/store pair (no per-element
// conversion is emitted), an increment,
// and a branch back, closing with the loop-exit label (§4.4 Array
// variant's "loop over elements" step). The caller has already arranged for
// the source and destination collections to be on the streams the element
// ldelem/stelem pair reads and writes.
func emitCopyLoop(m *Marshaller, s *stream.Stream) {
	top := m.NativeHome.Type()

	indexVT := stream.ValueType{Name: "int32", Signed: true, Width: 32}
	index := m.emitter.AllocLocal(indexVT, false)

	s.Append(stream.OpLdcI4, stream.IntOperand(0))
	s.Append(stream.OpStLoc, stream.IntOperand(index.Slot))

	start := allocLabel(m)
	end := allocLabel(m)

	s.Append(stream.OpLabel, stream.LabelOperand(start))
	s.Append(stream.OpLdLoc, stream.IntOperand(index.Slot))
	emitElementCount(m, s)
	s.Append(stream.OpClt, stream.NoOperand())
	s.Append(stream.OpBrFalse, stream.LabelOperand(end))

	s.Append(stream.OpLdElem, stream.TypeOperand(top))
	s.Append(stream.OpStElem, stream.TypeOperand(top))

	s.Append(stream.OpLdLoc, stream.IntOperand(index.Slot))
	s.Append(stream.OpLdcI4, stream.IntOperand(1))
	s.Append(stream.OpAdd, stream.NoOperand())
	s.Append(stream.OpStLoc, stream.IntOperand(index.Slot))
	s.Append(stream.OpBr, stream.LabelOperand(start))
	s.Append(stream.OpLabel, stream.LabelOperand(end))
}

func freeArrayBuffer(m *Marshaller, b *stream.Bundle) error {
	if m.Direction != abi.Forward {
		return nil
	}
	m.NativeHome.LoadValue(b.Unmarshalling)
	callHelper(b.Unmarshalling, HelperCoTaskMemFree)
	return nil
}
