package abi

import "github.com/nativestub/marshalgen/typesystem"

// Policy is the method-level configuration the classifier consults when a
// descriptor doesn't pin down a choice explicitly: the declaring method's
// character-set attribute and the well-known-type recognisers the host type
// system exposes (§3 MethodPolicy).
type Policy struct {
	CharSet CharSet

	IsStringBuilder func(typesystem.Type) bool
	IsSafeHandle    func(typesystem.Type) bool
	IsSystemDecimal func(typesystem.Type) bool
	IsSystemGuid    func(typesystem.Type) bool
	IsSystemDateTime func(typesystem.Type) bool
	IsSystemArray   func(typesystem.Type) bool
}

// DefaultPolicy returns a Policy with the given CharSet and recognisers
// matching typesystem.Simple's well-known names. A host with a real type
// model supplies its own recognisers instead.
func DefaultPolicy(cs CharSet) Policy {
	return Policy{
		CharSet:          cs,
		IsStringBuilder:  func(t typesystem.Type) bool { return t.Name() == typesystem.StringBuilder.Name() },
		IsSafeHandle:     func(t typesystem.Type) bool { return t.Name() == typesystem.SafeHandle.Name() },
		IsSystemDecimal:  func(t typesystem.Type) bool { return t.Name() == typesystem.Decimal.Name() },
		IsSystemGuid:     func(t typesystem.Type) bool { return t.Name() == typesystem.Guid.Name() },
		IsSystemDateTime: func(t typesystem.Type) bool { return t.Name() == typesystem.DateTime.Name() },
		IsSystemArray:    func(t typesystem.Type) bool { return t.IsArray() },
	}
}
