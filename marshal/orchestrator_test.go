package marshal

import (
	"testing"

	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/stream"
	"github.com/nativestub/marshalgen/typesystem"
)

func blittableMethod(name string) MethodSignature {
	return MethodSignature{
		Namespace:  "Native",
		TypeName:   "Kernel32",
		MethodName: name,
		Policy:     abi.DefaultPolicy(abi.CharSetUnicode),
		Direction:  abi.Forward,
		Parameters: []*abi.ParameterMetadata{
			{Index: 0, Type: typesystem.Int32},
			{Index: 1, Name: "handle", Type: typesystem.IntPtr, In: true},
			{Index: 2, Name: "flags", Type: typesystem.UInt32, In: true},
		},
	}
}

func TestOrchestrator_Generate_BlittableArguments(t *testing.T) {
	o := NewOrchestrator()
	stub, err := o.Generate(blittableMethod("GetHandleFlags"), stream.NewDefaultEmitter())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	if len(stub.Arguments) != 2 {
		t.Fatalf("len(Arguments) = %d, want 2", len(stub.Arguments))
	}
	if stub.Bundle.CallSiteSetup.Count(stream.OpCall) != 1 {
		t.Errorf("call-site-setup has %d OpCall, want 1", stub.Bundle.CallSiteSetup.Count(stream.OpCall))
	}
	if stub.Bundle.ReturnValue.Count(stream.OpRet) != 1 {
		t.Errorf("return-value has %d OpRet, want 1", stub.Bundle.ReturnValue.Count(stream.OpRet))
	}
	if !stub.Bundle.Unmarshalling.IsEmpty() {
		t.Errorf("unmarshalling has %d instructions, want 0 ([In]-only arguments)", stub.Bundle.Unmarshalling.Len())
	}
}

func TestOrchestrator_Generate_VoidReturn(t *testing.T) {
	sig := blittableMethod("CloseHandle")
	sig.Parameters[0] = &abi.ParameterMetadata{Index: 0, Type: typesystem.Void, Return: true}

	o := NewOrchestrator()
	stub, err := o.Generate(sig, stream.NewDefaultEmitter())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if !stub.Bundle.ReturnValue.IsEmpty() {
		if stub.Bundle.ReturnValue.Len() != 1 || stub.Bundle.ReturnValue.Instructions()[0].Op != stream.OpRet {
			t.Errorf("void return-value stream = %v, want exactly [ret]", stub.Bundle.ReturnValue.Instructions())
		}
	}
}

func TestOrchestrator_Generate_OutByRefArgumentPropagates(t *testing.T) {
	sig := MethodSignature{
		Namespace:  "Native",
		TypeName:   "Kernel32",
		MethodName: "GetSystemInfo",
		Policy:     abi.DefaultPolicy(abi.CharSetUnicode),
		Direction:  abi.Forward,
		Parameters: []*abi.ParameterMetadata{
			{Index: 0, Type: typesystem.Void, Return: true},
			{Index: 1, Name: "info", Type: typesystem.ByRef(typesystem.Int32), Out: true},
		},
	}

	o := NewOrchestrator()
	stub, err := o.Generate(sig, stream.NewDefaultEmitter())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}

	arg := stub.Arguments[0]
	if !arg.IsNativeByRef {
		t.Error("by-ref managed argument did not get a by-ref native home")
	}
	if stub.Bundle.Unmarshalling.Count(stream.OpStIndirect) != 1 {
		t.Errorf("unmarshalling has %d stind, want 1 (propagate back through the by-ref home)",
			stub.Bundle.Unmarshalling.Count(stream.OpStIndirect))
	}
}

func TestOrchestrator_Generate_UnicodeStringArgument(t *testing.T) {
	sig := MethodSignature{
		Namespace:  "Native",
		TypeName:   "User32",
		MethodName: "MessageBoxW",
		Policy:     abi.DefaultPolicy(abi.CharSetUnicode),
		Direction:  abi.Forward,
		Parameters: []*abi.ParameterMetadata{
			{Index: 0, Type: typesystem.Int32, Return: true},
			{Index: 1, Name: "text", Type: typesystem.String, In: true},
		},
	}

	o := NewOrchestrator()
	stub, err := o.Generate(sig, stream.NewDefaultEmitter())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if stub.Arguments[0].Kind != abi.KindUnicodeString {
		t.Fatalf("argument kind = %s, want UnicodeString", stub.Arguments[0].Kind)
	}
	if stub.Bundle.Marshalling.CountHelper(string(HelperGetOffsetToStringData)) != 1 {
		t.Errorf("marshalling stream did not call GetOffsetToStringData")
	}
}

func TestOrchestrator_Generate_AnsiStringFreesBuffer(t *testing.T) {
	sig := MethodSignature{
		Namespace:  "Native",
		TypeName:   "User32",
		MethodName: "MessageBoxA",
		Policy:     abi.DefaultPolicy(abi.CharSetAnsi),
		Direction:  abi.Forward,
		Parameters: []*abi.ParameterMetadata{
			{Index: 0, Type: typesystem.Int32, Return: true},
			{Index: 1, Name: "text", Type: typesystem.String, In: true},
		},
	}

	o := NewOrchestrator()
	stub, err := o.Generate(sig, stream.NewDefaultEmitter())
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if stub.Bundle.Unmarshalling.CountHelper(string(HelperCoTaskMemFree)) != 1 {
		t.Error("AnsiString argument did not free its native buffer")
	}
}

func TestOrchestrator_Generate_CombinedInOutSafeHandleRejected(t *testing.T) {
	sig := MethodSignature{
		Namespace:  "Native",
		TypeName:   "Kernel32",
		MethodName: "Bogus",
		Policy:     abi.DefaultPolicy(abi.CharSetUnicode),
		Direction:  abi.Forward,
		Parameters: []*abi.ParameterMetadata{
			{Index: 0, Type: typesystem.Void, Return: true},
			{Index: 1, Name: "h", Type: typesystem.SafeHandle, In: true, Out: true},
		},
	}

	o := NewOrchestrator()
	if _, err := o.Generate(sig, stream.NewDefaultEmitter()); err == nil {
		t.Fatal("Generate accepted a combined [In,Out] SafeHandle parameter")
	}
}

func TestOrchestrator_Generate_RejectsMissingReturn(t *testing.T) {
	sig := MethodSignature{
		MethodName: "Bad",
		Policy:     abi.DefaultPolicy(abi.CharSetUnicode),
		Parameters: []*abi.ParameterMetadata{
			{Index: 1, Type: typesystem.Int32},
		},
	}
	o := NewOrchestrator()
	if _, err := o.Generate(sig, stream.NewDefaultEmitter()); err == nil {
		t.Fatal("Generate accepted a signature with no return parameter at index 0")
	}
}
