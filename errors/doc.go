// Package errors provides structured error types for the marshalling stub
// generator.
//
// Errors are categorized by Phase (which stage of generation produced the
// error) and Kind (error category). The Error type carries rich context:
// field path, managed/native type names, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseClassify, errors.KindUnsupported).
//		Path("arg1").
//		ManagedType("System.Object").
//		NativeType("Variant").
//		Detail("combined [In,Out] SafeHandle is not supported").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Unsupported(path, "System.Object", "no native tag")
//	err := errors.InvalidSizeParamIndex(path, 3, "index out of range")
//
// All errors implement the standard error interface and support errors.Is.
package errors
