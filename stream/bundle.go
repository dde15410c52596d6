package stream

// Bundle is the fixed set of ordered instruction streams shared across all
// marshallers for one stub (§3): marshalling, call-site-setup,
// unmarshalling, and return-value, plus the Emitter that vends locals,
// labels, and tokens. Streams are append-only during generation; their
// final concatenation order is fixed by the orchestrator (§5):
// marshalling -> call-site-setup -> [native call] -> unmarshalling ->
// return-value, with cleanup folded into unmarshalling or return-value.
type Bundle struct {
	Marshalling    *Stream
	CallSiteSetup  *Stream
	Unmarshalling  *Stream
	ReturnValue    *Stream
	Emitter        Emitter
}

// NewBundle creates a Bundle with the four named, empty streams and the
// given Emitter.
func NewBundle(e Emitter) *Bundle {
	return &Bundle{
		Marshalling:   NewStream("marshalling"),
		CallSiteSetup: NewStream("call-site-setup"),
		Unmarshalling: NewStream("unmarshalling"),
		ReturnValue:   NewStream("return-value"),
		Emitter:       e,
	}
}

// Streams returns the four streams in their fixed concatenation order.
func (b *Bundle) Streams() []*Stream {
	return []*Stream{b.Marshalling, b.CallSiteSetup, b.Unmarshalling, b.ReturnValue}
}
