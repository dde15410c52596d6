package abi

import "github.com/nativestub/marshalgen/typesystem"

// ParameterMetadata is the caller-supplied description of one parameter (or
// the return value, at Index 0) that the classifier and orchestrator
// consume (§3).
type ParameterMetadata struct {
	// Index is 1-based for arguments; 0 denotes the return value.
	Index int

	Name string

	// Type is the managed type as declared, still wrapped by-reference if
	// the parameter is "ref"/"out"/"in"; ElementType() unwraps it.
	Type typesystem.Type

	In       bool
	Out      bool
	Return   bool
	Optional bool

	// MarshalAs is nil when the parameter carries no explicit descriptor.
	MarshalAs *MarshalAsDescriptor
}

// IsByRef reports whether the declared Type is a by-reference wrapper.
func (p *ParameterMetadata) IsByRef() bool {
	return p.Type != nil && p.Type.IsByRef()
}

// UnwrappedType returns the by-reference pointee, or Type itself if Type is
// not by-reference.
func (p *ParameterMetadata) UnwrappedType() typesystem.Type {
	if p.IsByRef() {
		return p.Type.ElementType()
	}
	return p.Type
}
