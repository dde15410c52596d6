package home

import (
	"testing"

	"github.com/nativestub/marshalgen/stream"
)

var i32 = stream.ValueType{Name: "i32", Signed: true, Width: 32}

func opcodes(s *stream.Stream) []stream.Opcode {
	var ops []stream.Opcode
	for _, ins := range s.Instructions() {
		ops = append(ops, ins.Op)
	}
	return ops
}

func TestHome_LoadValue_Direct(t *testing.T) {
	s := stream.NewStream("t")
	Arg(1, i32).LoadValue(s)
	if got := opcodes(s); len(got) != 1 || got[0] != stream.OpLdArg {
		t.Errorf("Arg.LoadValue = %v, want [ldarg]", got)
	}

	s = stream.NewStream("t")
	Local(0, i32).LoadValue(s)
	if got := opcodes(s); len(got) != 1 || got[0] != stream.OpLdLoc {
		t.Errorf("Local.LoadValue = %v, want [ldloc]", got)
	}
}

func TestHome_LoadValue_ByRefDereferences(t *testing.T) {
	s := stream.NewStream("t")
	ByRefArg(1, i32).LoadValue(s)
	want := []stream.Opcode{stream.OpLdArg, stream.OpLdIndirect}
	got := opcodes(s)
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ByRefArg.LoadValue = %v, want %v", got, want)
	}
}

func TestHome_LoadAddress(t *testing.T) {
	s := stream.NewStream("t")
	Arg(2, i32).LoadAddress(s)
	if got := opcodes(s); len(got) != 1 || got[0] != stream.OpLdArgA {
		t.Errorf("Arg.LoadAddress = %v, want [ldarga]", got)
	}

	// A by-ref home's address is the pointer it already holds, loaded
	// directly (not ldarga), since that pointer already came from the
	// caller.
	s = stream.NewStream("t")
	ByRefArg(2, i32).LoadAddress(s)
	if got := opcodes(s); len(got) != 1 || got[0] != stream.OpLdArg {
		t.Errorf("ByRefArg.LoadAddress = %v, want [ldarg]", got)
	}
}

func TestHome_Store_ByRefRejected(t *testing.T) {
	s := stream.NewStream("t")
	err := ByRefArg(1, i32).Store(s)
	if err == nil {
		t.Fatal("ByRefArg.Store returned nil error, want an invariant violation")
	}
	if !s.IsEmpty() {
		t.Errorf("ByRefArg.Store appended %d instructions despite erroring", s.Len())
	}
}

func TestHome_Store_DirectHomesSucceed(t *testing.T) {
	s := stream.NewStream("t")
	if err := Local(0, i32).Store(s); err != nil {
		t.Fatalf("Local.Store returned error: %v", err)
	}
	if got := opcodes(s); len(got) != 1 || got[0] != stream.OpStLoc {
		t.Errorf("Local.Store = %v, want [stloc]", got)
	}
}

func TestHome_StoreIndirectFrom(t *testing.T) {
	s := stream.NewStream("t")
	dst := ByRefArg(1, i32)
	scratch := Local(0, i32)
	if err := dst.StoreIndirectFrom(s, scratch); err != nil {
		t.Fatalf("StoreIndirectFrom returned error: %v", err)
	}
	want := []stream.Opcode{stream.OpLdArg, stream.OpLdLoc, stream.OpStIndirect}
	got := opcodes(s)
	if len(got) != len(want) {
		t.Fatalf("StoreIndirectFrom emitted %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("instruction %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestHome_StoreIndirectFrom_RejectsDirectDestination(t *testing.T) {
	s := stream.NewStream("t")
	err := Local(0, i32).StoreIndirectFrom(s, Local(1, i32))
	if err == nil {
		t.Fatal("StoreIndirectFrom on a direct home returned nil error")
	}
}
