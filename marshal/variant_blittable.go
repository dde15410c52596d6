package marshal

import "github.com/nativestub/marshalgen/abi"

func init() {
	// VoidReturn, BlittableValue, and Enum share the identity transform: the
	// bit pattern crossing the boundary is unchanged, only its interpreted
	// type name differs. BlittableStruct, Struct, Decimal and
	// BlittableStructPtr are classified but have no emitter (§9), so nothing
	// is registered for them.
	register(abi.KindVoidReturn, baseHooks)
	register(abi.KindBlittableValue, baseHooks)
	register(abi.KindEnum, baseHooks)
}
