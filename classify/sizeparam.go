package classify

import (
	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/errors"
	"github.com/nativestub/marshalgen/typesystem"
)

// ValidateSizeParam implements the §4.5 / §7 InvalidSizeParamIndex checks
// ahead of emission, so a bad SizeParamIndex is rejected with a descriptive
// message before any code streams are touched. siblings is the full
// parameter list (index 0 is the return value); SizeParamIndex is offset by
// one to skip it, so SizeParamIndex N refers to siblings[N+1].
func ValidateSizeParam(path []string, d *abi.MarshalAsDescriptor, siblings []*abi.ParameterMetadata) error {
	if d == nil || !d.HasSizeParamIndex() {
		return nil
	}

	actual := d.SizeParamIndex + 1
	if actual < 1 || actual >= len(siblings) {
		return errors.InvalidSizeParamIndex(path, d.SizeParamIndex,
			"resolved parameter index out of range")
	}

	sizeParam := siblings[actual]
	if sizeParam == nil || sizeParam.Type == nil {
		return errors.InvalidSizeParamIndex(path, d.SizeParamIndex, "referenced parameter is missing")
	}

	t := sizeParam.UnwrappedType()
	prim, ok := t.(typesystem.Primitive)
	if !ok || !isIntegralPrimitive(prim.PrimitiveKind()) {
		return errors.InvalidSizeParamIndex(path, d.SizeParamIndex,
			"referenced parameter must have an integral type")
	}

	return nil
}

func isIntegralPrimitive(k typesystem.PrimitiveKind) bool {
	switch k {
	case typesystem.PrimitiveI1, typesystem.PrimitiveU1,
		typesystem.PrimitiveI2, typesystem.PrimitiveU2,
		typesystem.PrimitiveI4, typesystem.PrimitiveU4,
		typesystem.PrimitiveI8, typesystem.PrimitiveU8,
		typesystem.PrimitiveIntPtr, typesystem.PrimitiveUIntPtr:
		return true
	default:
		return false
	}
}

// ElementCountForm describes how an array's element count is determined,
// resolved statically from the descriptor per §4.5, independent of any
// runtime values.
type ElementCountForm struct {
	// UseManagedLength is true for the Forward-argument and Forward-element
	// cases: read the managed array's Length property.
	UseManagedLength bool

	// SizeConst and SizeParamIndex (already offset-resolved to an absolute
	// ParameterMetadata.Index) apply on the Reverse/out path. Both zero
	// with UseManagedLength false means "default to 1".
	SizeConst           int
	HasSizeConst        bool
	SizeParamIndex      int
	HasSizeParamIndex   bool
}

// ResolveElementCountForm implements §4.5's three contexts.
func ResolveElementCountForm(d *abi.MarshalAsDescriptor, direction abi.Direction, role abi.Role) ElementCountForm {
	if direction == abi.Forward && role != abi.RoleField {
		return ElementCountForm{UseManagedLength: true}
	}

	form := ElementCountForm{}
	if d != nil {
		if d.HasSizeConst() {
			form.SizeConst = d.SizeConst
			form.HasSizeConst = true
		}
		if d.HasSizeParamIndex() {
			form.SizeParamIndex = d.SizeParamIndex + 1
			form.HasSizeParamIndex = true
		}
	}
	return form
}
