package marshal

import (
	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/errors"
)

// hookRegistry maps each emitter-bearing MarshallerKind to its Hooks
// constructor. Each variant_*.go file registers its own kinds from an
// init() function, mirroring the teacher's dispatch-table registration
// style rather than one large switch.
var hookRegistry = map[abi.Kind]func() Hooks{}

func register(k abi.Kind, f func() Hooks) {
	hookRegistry[k] = f
}

func lookupHooks(k abi.Kind) (Hooks, error) {
	f, ok := hookRegistry[k]
	if !ok {
		return Hooks{}, errors.New(errors.PhaseOrchestrate, errors.KindNotFound).
			Detail("no marshaller variant registered for kind %s", k).
			Build()
	}
	return f(), nil
}
