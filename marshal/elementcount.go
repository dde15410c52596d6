package marshal

import (
	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/classify"
	"github.com/nativestub/marshalgen/home"
	"github.com/nativestub/marshalgen/stream"
)

// paramHomeForSibling builds a read-only Home for a size-param sibling. Size
// parameters are conventionally passed by value; a by-reference size
// parameter is dereferenced like any other by-ref home.
func paramHomeForSibling(p *abi.ParameterMetadata, vt stream.ValueType) home.Home {
	if p.IsByRef() {
		return home.ByRefArg(p.Index, vt)
	}
	return home.Arg(p.Index, vt)
}

// allocLabel vends a fresh branch target from the marshaller's emitter,
// captured the first time a Home-setup step runs.
func allocLabel(m *Marshaller) stream.Label {
	return m.emitter.AllocLabel()
}

// emitElementCount implements §4.5: push the resolved element count for an
// array-family marshaller onto s. Forward arguments and elements read the
// managed array's own Length; everything else resolves from the descriptor:
// a literal SizeConst, a sibling parameter read through SizeParamIndex, the
// sum of both when the descriptor carries both, or the hard-coded default of
// 1 when neither is present.
func emitElementCount(m *Marshaller, s *stream.Stream) {
	form := classify.ResolveElementCountForm(m.Param.MarshalAs, m.Direction, m.Role)

	switch {
	case form.UseManagedLength:
		m.ManagedHome.LoadValue(s)
		s.Append(stream.OpLdFld, stream.StringOperand("Length"))

	case form.HasSizeConst && form.HasSizeParamIndex:
		sibling := m.Siblings[form.SizeParamIndex].Param
		vt := stream.ValueType{Name: sibling.UnwrappedType().Name()}
		home := paramHomeForSibling(sibling, vt)
		home.LoadValue(s)
		s.Append(stream.OpLdcI4, stream.IntOperand(form.SizeConst))
		s.Append(stream.OpAdd, stream.NoOperand())

	case form.HasSizeParamIndex:
		sibling := m.Siblings[form.SizeParamIndex].Param
		vt := stream.ValueType{Name: sibling.UnwrappedType().Name()}
		home := paramHomeForSibling(sibling, vt)
		home.LoadValue(s)

	case form.HasSizeConst:
		s.Append(stream.OpLdcI4, stream.IntOperand(form.SizeConst))

	default:
		s.Append(stream.OpLdcI4, stream.IntOperand(1))
	}
}
