package stream

import "fmt"

// Local identifies a local variable slot allocated for the duration of one
// stub's generation.
type Local struct {
	Slot   int
	Type   ValueType
	Pinned bool
}

func (l Local) String() string { return fmt.Sprintf("loc%d", l.Slot) }

// Label identifies a branch target within a single Stream.
type Label struct {
	ID int
}

func (l Label) String() string { return fmt.Sprintf("L%d", l.ID) }

// Token identifies a resolved type or method reference (e.g. a helper
// method token, §6). Tokens are opaque strings from the generator's
// perspective; the host resolves them against its own symbol table.
type Token struct {
	Name string
}

func (t Token) String() string { return t.Name }

// Emitter is the consumed collaborator (§6) that vends locals, labels, and
// tokens shared across all of one stub's code streams. It is the "emitter
// for locals/labels/tokens" half of the Code-Stream Bundle (§3); appending
// instructions is a Stream's own responsibility (self-contained abstract
// builder), but slot/label/token *numbering* must be unique and consistent
// across the whole stub, hence a single shared Emitter.
type Emitter interface {
	// AllocLocal reserves a new local slot of type t. If pinned is true,
	// the host must keep the referent's address stable (§5 pinning) for as
	// long as the local is live.
	AllocLocal(t ValueType, pinned bool) Local

	// AllocLabel reserves a new, unbound branch target.
	AllocLabel() Label

	// BindLabel marks l as pointing at the current end of s.
	BindLabel(s *Stream, l Label)

	// TypeToken resolves a type reference by fully-qualified name.
	TypeToken(name string) Token

	// MethodToken resolves a (namespace, type, method) helper reference
	// (§6 "Helper entry points").
	MethodToken(namespace, typeName, methodName string) Token
}

// DefaultEmitter is a minimal, in-process Emitter used by tests, the CLI,
// and any host that has no richer symbol table of its own. Locals and
// labels are numbered sequentially per stub; tokens are interned by name.
type DefaultEmitter struct {
	nextLocal int
	nextLabel int
	locals    []Local
	tokens    map[string]Token
}

// NewDefaultEmitter returns a ready-to-use DefaultEmitter.
func NewDefaultEmitter() *DefaultEmitter {
	return &DefaultEmitter{tokens: make(map[string]Token)}
}

func (e *DefaultEmitter) AllocLocal(t ValueType, pinned bool) Local {
	l := Local{Slot: e.nextLocal, Type: t, Pinned: pinned}
	e.nextLocal++
	e.locals = append(e.locals, l)
	return l
}

func (e *DefaultEmitter) AllocLabel() Label {
	l := Label{ID: e.nextLabel}
	e.nextLabel++
	return l
}

func (e *DefaultEmitter) BindLabel(s *Stream, l Label) {
	s.Append(OpLabel, LabelOperand(l))
}

func (e *DefaultEmitter) TypeToken(name string) Token {
	return e.internToken("type:" + name)
}

func (e *DefaultEmitter) MethodToken(namespace, typeName, methodName string) Token {
	return e.internToken(fmt.Sprintf("method:%s::%s::%s", namespace, typeName, methodName))
}

func (e *DefaultEmitter) internToken(key string) Token {
	if tok, ok := e.tokens[key]; ok {
		return tok
	}
	tok := Token{Name: key}
	e.tokens[key] = tok
	return tok
}

// Locals returns every local allocated so far, in allocation order.
func (e *DefaultEmitter) Locals() []Local {
	return e.locals
}
