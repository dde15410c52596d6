// Package stream implements the Code-Stream Bundle (§3, §6): the abstract
// instruction-stream builder marshallers emit into. An external back-end
// (out of scope, §1) lowers the finished streams to machine code; this
// package only has to make appending, concatenating, and inspecting
// instructions cheap and order-preserving.
package stream

import "fmt"

// ValueType is an opaque handle to a native or managed representation type,
// carried only so instructions can record which type an indirect load/
// store/sizeof/newobj operates on. The generator never interprets it;
// marshal/native populate it from native.Type/typesystem.Type.
type ValueType struct {
	Name   string
	Signed bool
	Width  uint8 // bits; 0 for managed/opaque types
}

func (t ValueType) String() string { return t.Name }

// Opcode is the closed vocabulary of instructions a marshaller can emit
// (§6 "Instruction-stream emitter (consumed)").
type Opcode uint8

const (
	OpLdArg Opcode = iota
	OpLdArgA
	OpStArg
	OpLdLoc
	OpLdLocA
	OpStLoc
	OpLdIndirect
	OpStIndirect
	OpLdElem
	OpLdElemA
	OpStElem
	OpSizeof
	OpNewObj
	OpNewArr
	OpInitObj
	OpConvI
	OpConvU
	OpAdd
	OpSub
	OpMul
	OpCeq
	OpCgt
	OpClt
	OpLdcI4
	OpLdcI8
	OpLdNull
	OpDup
	OpPop
	OpBr
	OpBrTrue
	OpBrFalse
	OpLabel // pseudo-instruction: binds a label at this position
	OpCall
	OpCallHelper
	OpLdFld
	OpStFld
	OpThrow
	OpLeave
	OpEndFinally
	OpRet
)

var opcodeNames = [...]string{
	OpLdArg: "ldarg", OpLdArgA: "ldarga", OpStArg: "starg",
	OpLdLoc: "ldloc", OpLdLocA: "ldloca", OpStLoc: "stloc",
	OpLdIndirect: "ldind", OpStIndirect: "stind",
	OpLdElem: "ldelem", OpLdElemA: "ldelema", OpStElem: "stelem",
	OpSizeof: "sizeof", OpNewObj: "newobj", OpNewArr: "newarr", OpInitObj: "initobj",
	OpConvI: "conv.i", OpConvU: "conv.u",
	OpAdd: "add", OpSub: "sub", OpMul: "mul",
	OpCeq: "ceq", OpCgt: "cgt", OpClt: "clt",
	OpLdcI4: "ldc.i4", OpLdcI8: "ldc.i8", OpLdNull: "ldnull",
	OpDup: "dup", OpPop: "pop",
	OpBr: "br", OpBrTrue: "brtrue", OpBrFalse: "brfalse",
	OpLabel: "label:", OpCall: "call", OpCallHelper: "callhelper",
	OpLdFld: "ldfld", OpStFld: "stfld",
	OpThrow: "throw", OpLeave: "leave", OpEndFinally: "endfinally", OpRet: "ret",
}

func (op Opcode) String() string {
	if int(op) < len(opcodeNames) && opcodeNames[op] != "" {
		return opcodeNames[op]
	}
	return "unknown"
}

// OperandKind discriminates Operand's payload.
type OperandKind uint8

const (
	OperandNone OperandKind = iota
	OperandInt
	OperandInt64
	OperandType
	OperandLabel
	OperandToken
	OperandString
)

// Operand is the tagged-union payload attached to an Instruction.
type Operand struct {
	Kind  OperandKind
	Int   int
	Int64 int64
	Type  ValueType
	Label Label
	Token Token
	Str   string
}

func NoOperand() Operand                 { return Operand{Kind: OperandNone} }
func IntOperand(v int) Operand           { return Operand{Kind: OperandInt, Int: v} }
func Int64Operand(v int64) Operand       { return Operand{Kind: OperandInt64, Int64: v} }
func TypeOperand(t ValueType) Operand    { return Operand{Kind: OperandType, Type: t} }
func LabelOperand(l Label) Operand       { return Operand{Kind: OperandLabel, Label: l} }
func TokenOperand(t Token) Operand       { return Operand{Kind: OperandToken, Token: t} }
func StringOperand(s string) Operand     { return Operand{Kind: OperandString, Str: s} }

func (o Operand) String() string {
	switch o.Kind {
	case OperandInt:
		return fmt.Sprintf("%d", o.Int)
	case OperandInt64:
		return fmt.Sprintf("%d", o.Int64)
	case OperandType:
		return o.Type.String()
	case OperandLabel:
		return o.Label.String()
	case OperandToken:
		return o.Token.String()
	case OperandString:
		return o.Str
	default:
		return ""
	}
}

// Instruction is one opcode plus its operand.
type Instruction struct {
	Op      Opcode
	Operand Operand
}

func (i Instruction) String() string {
	if i.Operand.Kind == OperandNone {
		return i.Op.String()
	}
	return fmt.Sprintf("%s %s", i.Op, i.Operand)
}

// Stream is one of the Code-Stream Bundle's ordered, append-only
// instruction buffers.
type Stream struct {
	name         string
	instructions []Instruction
}

// NewStream creates an empty, named Stream. The name is diagnostic only.
func NewStream(name string) *Stream {
	return &Stream{name: name}
}

// Name returns the stream's diagnostic name (e.g. "marshalling").
func (s *Stream) Name() string { return s.name }

// Append adds one instruction to the end of the stream.
func (s *Stream) Append(op Opcode, operand Operand) {
	s.instructions = append(s.instructions, Instruction{Op: op, Operand: operand})
}

// Instructions returns the stream's contents in emission order. The
// returned slice must not be mutated by callers.
func (s *Stream) Instructions() []Instruction {
	return s.instructions
}

// Len returns the number of instructions emitted so far.
func (s *Stream) Len() int { return len(s.instructions) }

// IsEmpty reports whether nothing has been emitted into this stream.
func (s *Stream) IsEmpty() bool { return len(s.instructions) == 0 }

// Count returns how many instructions in the stream carry the given
// opcode, used by tests to assert e.g. "exactly one push per argument"
// (§8) or "a matching DangerousRelease for every DangerousAddRef".
func (s *Stream) Count(op Opcode) int {
	n := 0
	for _, ins := range s.instructions {
		if ins.Op == op {
			n++
		}
	}
	return n
}

// CountHelper returns how many OpCallHelper instructions reference the
// given helper name.
func (s *Stream) CountHelper(helper string) int {
	n := 0
	for _, ins := range s.instructions {
		if ins.Op == OpCallHelper && ins.Operand.Kind == OperandString && ins.Operand.Str == helper {
			n++
		}
	}
	return n
}
