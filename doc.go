// Package marshalgen provides a platform-invoke (P/Invoke) marshalling stub
// generator: a compile-time component that, given a managed method
// signature annotated with native-interop metadata, synthesises a sequence
// of low-level instructions implementing the bidirectional conversion of
// each argument and return value between a managed calling convention and a
// foreign native ABI.
//
// The generator never lowers to machine code itself; it emits into an
// abstract instruction-stream (stream.Bundle, stream.Emitter) that an
// external back-end assembles into the final stub.
//
// # Architecture Overview
//
// The library is organized into packages with distinct responsibilities:
//
//	abi/             Data model: Kind, Role, Direction, ParameterMetadata,
//	                 MarshalAsDescriptor, Policy
//	typesystem/      Consumed interfaces: the managed type model this
//	                 generator does not itself define (§1 out of scope)
//	classify/        Kind Classifier: the (type, descriptor, policy, role)
//	                 decision table (§4.1)
//	native/          Native-Type Mapper: Kind -> native representation (§4.2)
//	home/            Home abstraction: argument/local, direct/by-reference
//	stream/          Code-Stream Bundle and the Emitter interface consumed
//	                 from the host IL builder
//	marshal/         Marshaller base protocol, concrete variants, and the
//	                 Stub Orchestrator (§4.3, §4.4, §4.6)
//	errors/          Structured, phase-tagged error types
//	cmd/genstub/     CLI front-end (batch and interactive modes)
//
// # Quick start
//
//	orch := marshal.NewOrchestrator()
//	stub, err := orch.Generate(sig, emitter)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// stub.Bundle now holds the populated marshalling/call-site-setup/
//	// unmarshalling/return-value instruction streams for a back-end to lower.
//
// # Concurrency
//
// Generation is single-threaded and local to one stub (§5): a Method's
// Marshallers are constructed once, driven through emission once, and
// discarded. Generating many stubs concurrently is safe as long as each
// stub gets its own stream.Bundle — the generator keeps no shared mutable
// state across stubs.
package marshalgen
