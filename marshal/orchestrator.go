package marshal

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/classify"
	"github.com/nativestub/marshalgen/errors"
	"github.com/nativestub/marshalgen/stream"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the marshal package's logger instance, defaulting to a
// no-op logger.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the marshal package's logger.
func SetLogger(l *zap.Logger) {
	logger = l
}

// MethodSignature is everything the Stub Orchestrator needs about one
// method: its return (Parameters[0], by convention) and argument metadata,
// the policy governing ambiguous classification choices, and which way the
// call crosses the interop boundary.
type MethodSignature struct {
	Namespace  string
	TypeName   string
	MethodName string

	// Parameters holds the return value at index 0 (Index must also be 0)
	// followed by arguments in declaration order (Index 1..N).
	Parameters []*abi.ParameterMetadata

	Policy    abi.Policy
	Direction abi.Direction
}

// Orchestrator is the Stub Orchestrator (§4.6): it classifies every
// parameter into a Marshaller, wires up the sibling list SizeParamIndex
// resolution needs, and drives each marshaller through its streams in a
// fixed, method-independent order.
type Orchestrator struct{}

// NewOrchestrator returns a ready-to-use Orchestrator. It carries no state
// of its own; one instance can generate any number of stubs.
func NewOrchestrator() *Orchestrator { return &Orchestrator{} }

// Stub is the result of generating one method's marshalling code: the
// fully populated Bundle plus the marshallers that produced it, exposed for
// introspection and testing.
type Stub struct {
	Bundle      *stream.Bundle
	Return      *Marshaller
	Arguments   []*Marshaller
}

// Generate builds every parameter's Marshaller, validates SizeParamIndex
// references across the whole signature, and emits the four code streams in
// the fixed order: argument marshalling (in declaration order), the native/
// managed call itself, then the return value.
func (o *Orchestrator) Generate(sig MethodSignature, emitter stream.Emitter) (*Stub, error) {
	if len(sig.Parameters) == 0 || sig.Parameters[0].Index != 0 {
		return nil, errors.Invariant(errors.PhaseOrchestrate, "signature must include a return parameter at index 0")
	}

	ordered := append([]*abi.ParameterMetadata(nil), sig.Parameters...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	marshallers := make([]*Marshaller, len(ordered))
	for i, p := range ordered {
		role := abi.RoleArgument
		m, err := New(p, sig.Policy, role, sig.Direction)
		if err != nil {
			return nil, err
		}
		marshallers[i] = m
	}
	for _, m := range marshallers {
		m.Siblings = marshallers
	}

	for _, m := range marshallers {
		if !m.Kind.IsArrayShape() {
			continue
		}
		if err := classify.ValidateSizeParam(path(m.Param), m.Param.MarshalAs, ordered); err != nil {
			return nil, err
		}
	}

	returnMarshaller := marshallers[0]
	arguments := marshallers[1:]

	Logger().Debug("generate",
		zap.String("method", sig.MethodName),
		zap.Int("args", len(arguments)),
		zap.String("direction", sig.Direction.String()))

	bundle := stream.NewBundle(emitter)

	if err := PrepareReturnHome(returnMarshaller, bundle); err != nil {
		return nil, err
	}

	for _, m := range arguments {
		if err := m.EmitMarshallingIL(bundle); err != nil {
			return nil, err
		}
	}

	token := emitter.MethodToken(sig.Namespace, sig.TypeName, sig.MethodName)
	bundle.CallSiteSetup.Append(stream.OpCall, stream.TokenOperand(token))

	if returnMarshaller.Kind != abi.KindVoidReturn {
		resultHome := returnMarshaller.NativeHome
		if sig.Direction == abi.Reverse {
			resultHome = returnMarshaller.ManagedHome
		}
		if err := resultHome.Store(bundle.CallSiteSetup); err != nil {
			return nil, err
		}
	}

	if err := returnMarshaller.EmitMarshallingIL(bundle); err != nil {
		return nil, err
	}

	return &Stub{Bundle: bundle, Return: returnMarshaller, Arguments: arguments}, nil
}
