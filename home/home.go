// Package home implements the Home abstraction (§3, §9): a value-location
// descriptor — argument slot or local slot, direct or by-reference — that
// encapsulates load-value / load-address / store-value emission so callers
// never need to know whether a load must first dereference a pointer.
package home

import (
	"github.com/nativestub/marshalgen/errors"
	"github.com/nativestub/marshalgen/stream"
)

// Variant is the Home tagged-union discriminant.
type Variant uint8

const (
	VariantArg Variant = iota
	VariantByRefArg
	VariantLocal
	VariantByRefLocal
)

// Home is a storage location plus the type of the value stored there. A
// by-reference Home is never a valid store target directly (§3 invariant);
// Store returns an error (classified as an internal invariant violation —
// §7 — since a correct caller never reaches it).
type Home struct {
	variant Variant
	slot    int // argument index or local slot number
	typ     stream.ValueType
}

// Arg constructs a direct argument-slot home.
func Arg(index int, t stream.ValueType) Home {
	return Home{variant: VariantArg, slot: index, typ: t}
}

// ByRefArg constructs a by-reference argument-slot home.
func ByRefArg(index int, t stream.ValueType) Home {
	return Home{variant: VariantByRefArg, slot: index, typ: t}
}

// Local constructs a direct local-slot home.
func Local(slot int, t stream.ValueType) Home {
	return Home{variant: VariantLocal, slot: slot, typ: t}
}

// ByRefLocal constructs a by-reference local-slot home.
func ByRefLocal(slot int, t stream.ValueType) Home {
	return Home{variant: VariantByRefLocal, slot: slot, typ: t}
}

// IsByRef reports whether this home holds an address rather than a value.
func (h Home) IsByRef() bool {
	return h.variant == VariantByRefArg || h.variant == VariantByRefLocal
}

// Type returns the value type the home (eventually, after any
// dereference) holds.
func (h Home) Type() stream.ValueType { return h.typ }

// LoadValue emits instructions into s that push this home's value onto the
// evaluation stack, dereferencing first if the home is by-reference.
func (h Home) LoadValue(s *stream.Stream) {
	switch h.variant {
	case VariantArg:
		s.Append(stream.OpLdArg, stream.IntOperand(h.slot))
	case VariantLocal:
		s.Append(stream.OpLdLoc, stream.IntOperand(h.slot))
	case VariantByRefArg:
		s.Append(stream.OpLdArg, stream.IntOperand(h.slot))
		s.Append(stream.OpLdIndirect, stream.TypeOperand(h.typ))
	case VariantByRefLocal:
		s.Append(stream.OpLdLoc, stream.IntOperand(h.slot))
		s.Append(stream.OpLdIndirect, stream.TypeOperand(h.typ))
	}
}

// LoadAddress emits instructions into s that push this home's address.
// For direct homes that means the argument/local's own address (ldarga/
// ldloca); for by-reference homes, the stored pointer is already an
// address, so it is loaded directly.
func (h Home) LoadAddress(s *stream.Stream) {
	switch h.variant {
	case VariantArg:
		s.Append(stream.OpLdArgA, stream.IntOperand(h.slot))
	case VariantLocal:
		s.Append(stream.OpLdLocA, stream.IntOperand(h.slot))
	case VariantByRefArg:
		s.Append(stream.OpLdArg, stream.IntOperand(h.slot))
	case VariantByRefLocal:
		s.Append(stream.OpLdLoc, stream.IntOperand(h.slot))
	}
}

// Store emits instructions that pop a value from the stack and store it
// into this home. By-reference homes are never valid store targets
// directly (§3): stores must go through a non-by-reference local and be
// propagated explicitly, so Store on a by-reference home returns an
// internal-invariant error instead of emitting anything.
func (h Home) Store(s *stream.Stream) error {
	switch h.variant {
	case VariantArg:
		s.Append(stream.OpStArg, stream.IntOperand(h.slot))
		return nil
	case VariantLocal:
		s.Append(stream.OpStLoc, stream.IntOperand(h.slot))
		return nil
	default:
		return errors.Invariant(errors.PhaseHome,
			"attempted to store directly into a by-reference home; store through a local and propagate explicitly")
	}
}

// StoreIndirectFrom emits instructions that store the top-of-stack value
// through this home's address — the explicit propagation path for
// by-reference homes (§3, §4.3 step 6 "propagate the local back through
// the by-reference argument, address-first store").
func (h Home) StoreIndirectFrom(s *stream.Stream, local Home) error {
	if !h.IsByRef() {
		return errors.Invariant(errors.PhaseHome, "StoreIndirectFrom requires a by-reference destination home")
	}
	h.LoadAddress(s)
	local.LoadValue(s)
	s.Append(stream.OpStIndirect, stream.TypeOperand(h.typ))
	return nil
}
