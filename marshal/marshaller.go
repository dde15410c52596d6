// Package marshal implements the Marshaller Family (§4.3, §4.4) and the
// Stub Orchestrator (§4.6): a polymorphic set of strategy objects, one per
// MarshallerKind, sharing a common base emission protocol (protocol.go),
// plus the driver that constructs and runs one marshaller per parameter.
package marshal

import (
	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/classify"
	"github.com/nativestub/marshalgen/errors"
	"github.com/nativestub/marshalgen/home"
	"github.com/nativestub/marshalgen/native"
	"github.com/nativestub/marshalgen/stream"
	"github.com/nativestub/marshalgen/typesystem"
)

// Marshaller is the entity described in §3: it owns its classified kind,
// role, direction, managed/native type information, effective in/out/
// return/optional flags, by-reference flags, a reference to the sibling
// marshaller slice (for SizeParamIndex lookups), and its two Home slots.
type Marshaller struct {
	Kind        abi.Kind
	ElementKind abi.ElementKind
	Role        abi.Role
	Direction   abi.Direction

	Param *abi.ParameterMetadata

	ManagedType      typesystem.Type // by-reference unwrapped
	ManagedParamType typesystem.Type // as declared; may be by-reference

	nativeType      *native.Type
	nativeParamType *native.Type

	In       bool
	Out      bool
	Return   bool
	Optional bool

	IsManagedByRef bool
	IsNativeByRef  bool

	// Siblings is a shared, non-owning view of every marshaller
	// constructed for the current stub (index 0 is the return value), used
	// to resolve SizeParamIndex across parameters (§4.5, §9).
	Siblings []*Marshaller

	ManagedHome home.Home
	NativeHome  home.Home

	hooks Hooks

	homesReady bool
	emitter    stream.Emitter
}

// New constructs a Marshaller for one parameter. The returned value has no
// Home assigned yet (§3 Lifecycle: homes are created lazily on first setup
// call) and is not yet linked into a Siblings slice — the orchestrator does
// that once every parameter of a method has been classified.
func New(param *abi.ParameterMetadata, policy abi.Policy, role abi.Role, direction abi.Direction) (*Marshaller, error) {
	isReturn := param.Index == 0
	managedType := param.UnwrappedType()

	isStringBuilder := policy.IsStringBuilder != nil && policy.IsStringBuilder(managedType)

	result := classify.Classify(managedType, param.MarshalAs, policy, role, isReturn)
	if result.Kind == abi.KindInvalid {
		return nil, errors.Unsupported(path(param), managedType.Name(), "classifier reached Invalid for this (type, descriptor, policy, role)")
	}
	if result.Kind == abi.KindUnknown {
		return nil, errors.Invariant(errors.PhaseClassify, "classifier returned Unknown; every constructed marshaller must have kind != Unknown")
	}
	if result.Kind.IsArrayShape() && result.ElementKind == abi.KindUnknown {
		return nil, errors.Invariant(errors.PhaseClassify, "array kind classified with Unknown element kind")
	}
	if !result.Kind.HasEmitter() {
		return nil, errors.New(errors.PhaseOrchestrate, errors.KindUnsupported).
			Path(path(param)...).
			ManagedType(managedType.Name()).
			Detail("kind %s classifies correctly but has no emitter variant in this implementation", result.Kind).
			Build()
	}

	in, out := classify.EffectiveInOut(param, result.Kind, isStringBuilder)

	// A SafeHandle's release-and-refcount protocol only has one clean flow:
	// add-ref for [In] into the call, or wrap-and-own for [Out]/return.
	// Combined [In,Out] would need to add-ref the caller's handle and then
	// swap in a different one afterward, which SafeHandle's API has no safe
	// way to express, so it's rejected here rather than mis-emitted.
	if result.Kind == abi.KindSafeHandle && in && out {
		return nil, errors.New(errors.PhaseClassify, errors.KindUnsupported).
			Path(path(param)...).
			ManagedType(managedType.Name()).
			Detail("combined [In,Out] SafeHandle has no well-defined marshalling protocol").
			Build()
	}

	hooks, err := lookupHooks(result.Kind)
	if err != nil {
		return nil, err
	}

	m := &Marshaller{
		Kind:             result.Kind,
		ElementKind:      result.ElementKind,
		Role:             role,
		Direction:        direction,
		Param:            param,
		ManagedType:      managedType,
		ManagedParamType: param.Type,
		In:               in,
		Out:              out,
		Return:           isReturn,
		Optional:         param.Optional,
		IsManagedByRef:   param.IsByRef(),
		hooks:            hooks,
	}

	// §3 invariant: return ⇒ index = 0, and the return marshaller is never
	// itself managed-by-ref (a method's return type cannot be "ref T").
	if isReturn && m.IsManagedByRef {
		return nil, errors.Invariant(errors.PhaseClassify, "return marshaller must not be managed-by-reference")
	}

	return m, nil
}

func path(p *abi.ParameterMetadata) []string {
	if p.Name != "" {
		return []string{p.Name}
	}
	return nil
}

// NativeType lazily maps this marshaller's Kind to its native
// representation (§4.2), caching the result.
func (m *Marshaller) NativeType() (native.Type, error) {
	if m.nativeType == nil {
		t, err := native.Map(m.Kind, m.ElementKind, m.Param.MarshalAs, m.ManagedType)
		if err != nil {
			return native.Type{}, err
		}
		m.nativeType = &t
	}
	return *m.nativeType, nil
}

// NativeParamType lazily computes the native parameter type: a pointer to
// NativeType when IsNativeByRef, else NativeType itself (§3 invariant).
func (m *Marshaller) NativeParamType() (native.Type, error) {
	if m.nativeParamType == nil {
		base, err := m.NativeType()
		if err != nil {
			return native.Type{}, err
		}
		if m.IsNativeByRef {
			p := native.PointerTo(base)
			m.nativeParamType = &p
		} else {
			m.nativeParamType = &base
		}
	}
	return *m.nativeParamType, nil
}

// streamValueType adapts a native.Type to the opaque stream.ValueType that
// Home and Stream operands carry.
func streamValueType(t native.Type) stream.ValueType {
	switch t.Category {
	case native.CategoryInt:
		return stream.ValueType{Name: t.String(), Signed: t.Signed, Width: t.BitWidth}
	case native.CategoryFloat:
		return stream.ValueType{Name: t.String(), Width: t.BitWidth}
	case native.CategoryPointer:
		return stream.ValueType{Name: t.String(), Width: native.PointerWidth}
	default:
		return stream.ValueType{Name: t.String()}
	}
}

// EmitMarshallingIL drives this marshaller through its direction-
// appropriate entrypoint (§4.3 "Entry (selected by role x direction)").
func (m *Marshaller) EmitMarshallingIL(b *stream.Bundle) error {
	switch m.Role {
	case abi.RoleElement:
		return emitElement(m, b)
	default:
		if m.Return {
			if m.Direction == abi.Forward {
				return emitReturnValueForward(m, b)
			}
			return emitReturnValueReverse(m, b)
		}
		if m.Direction == abi.Forward {
			return emitArgumentForward(m, b)
		}
		return emitArgumentReverse(m, b)
	}
}
