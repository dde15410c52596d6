package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/marshal"
	"github.com/nativestub/marshalgen/stream"
	"github.com/nativestub/marshalgen/typesystem"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	streamStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// catalogEntry is one built-in signature the interactive picker offers,
// since the tool has no compiler front-end of its own to discover
// signatures from (§1 Non-goal: no host-language front-end).
type catalogEntry struct {
	name string
	sig  marshal.MethodSignature
}

func catalog() []catalogEntry {
	unicode := abi.DefaultPolicy(abi.CharSetUnicode)
	ansi := abi.DefaultPolicy(abi.CharSetAnsi)

	return []catalogEntry{
		{
			name: "Kernel32.CloseHandle(IntPtr) -> bool",
			sig: marshal.MethodSignature{
				Namespace: "Native", TypeName: "Kernel32", MethodName: "CloseHandle",
				Policy: unicode, Direction: abi.Forward,
				Parameters: []*abi.ParameterMetadata{
					{Index: 0, Type: typesystem.Bool},
					{Index: 1, Name: "handle", Type: typesystem.IntPtr, In: true},
				},
			},
		},
		{
			name: "User32.MessageBoxW(IntPtr, string, string, uint) -> int",
			sig: marshal.MethodSignature{
				Namespace: "Native", TypeName: "User32", MethodName: "MessageBoxW",
				Policy: unicode, Direction: abi.Forward,
				Parameters: []*abi.ParameterMetadata{
					{Index: 0, Type: typesystem.Int32},
					{Index: 1, Name: "hWnd", Type: typesystem.IntPtr, In: true},
					{Index: 2, Name: "text", Type: typesystem.String, In: true},
					{Index: 3, Name: "caption", Type: typesystem.String, In: true},
					{Index: 4, Name: "type", Type: typesystem.UInt32, In: true},
				},
			},
		},
		{
			name: "User32.MessageBoxA(IntPtr, string, string, uint) -> int",
			sig: marshal.MethodSignature{
				Namespace: "Native", TypeName: "User32", MethodName: "MessageBoxA",
				Policy: ansi, Direction: abi.Forward,
				Parameters: []*abi.ParameterMetadata{
					{Index: 0, Type: typesystem.Int32},
					{Index: 1, Name: "hWnd", Type: typesystem.IntPtr, In: true},
					{Index: 2, Name: "text", Type: typesystem.String, In: true},
					{Index: 3, Name: "caption", Type: typesystem.String, In: true},
					{Index: 4, Name: "type", Type: typesystem.UInt32, In: true},
				},
			},
		},
		{
			name: "Kernel32.GetSystemInfo(out SystemInfo)",
			sig: marshal.MethodSignature{
				Namespace: "Native", TypeName: "Kernel32", MethodName: "GetSystemInfo",
				Policy: unicode, Direction: abi.Forward,
				Parameters: []*abi.ParameterMetadata{
					{Index: 0, Type: typesystem.Void},
					{Index: 1, Name: "info", Type: typesystem.ByRef(typesystem.NewStruct("Native.SystemInfo", true)), Out: true},
				},
			},
		},
		{
			name: "Kernel32.ReadFile(SafeHandle, byte[], uint, out uint) -> bool",
			sig: marshal.MethodSignature{
				Namespace: "Native", TypeName: "Kernel32", MethodName: "ReadFile",
				Policy: unicode, Direction: abi.Forward,
				Parameters: []*abi.ParameterMetadata{
					{Index: 0, Type: typesystem.Bool},
					{Index: 1, Name: "handle", Type: typesystem.SafeHandle, In: true},
					{Index: 2, Name: "buffer", Type: typesystem.ArrayOf(typesystem.Byte), In: true, Out: true,
						MarshalAs: func() *abi.MarshalAsDescriptor { d := abi.MarshalAsDescriptor{}.WithSizeParamIndex(2); return &d }()},
					{Index: 3, Name: "bytesToRead", Type: typesystem.UInt32, In: true},
					{Index: 4, Name: "bytesRead", Type: typesystem.ByRef(typesystem.UInt32), Out: true},
				},
			},
		},
	}
}

type modelState int

const (
	stateSelect modelState = iota
	stateShowStreams
)

type interactiveModel struct {
	entries []catalogEntry
	err     error
	stub    *marshal.Stub
	state   modelState
	cursor  int
}

func newInteractiveModel() *interactiveModel {
	return &interactiveModel{entries: catalog(), state: stateSelect}
}

func (m *interactiveModel) Init() tea.Cmd { return nil }

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.state == stateSelect && m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.state == stateSelect && m.cursor < len(m.entries)-1 {
			m.cursor++
		}

	case "enter":
		switch m.state {
		case stateSelect:
			m.generate()
			m.state = stateShowStreams
		case stateShowStreams:
			m.state = stateSelect
			m.stub = nil
			m.err = nil
		}

	case "esc":
		if m.state == stateShowStreams {
			m.state = stateSelect
			m.stub = nil
			m.err = nil
		}
	}

	return m, nil
}

func (m *interactiveModel) generate() {
	sig := m.entries[m.cursor].sig
	orch := marshal.NewOrchestrator()
	stub, err := orch.Generate(sig, stream.NewDefaultEmitter())
	m.stub = stub
	m.err = err
}

func (m *interactiveModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("marshalgen"))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelect:
		b.WriteString("Select a signature to marshal:\n\n")
		for i, e := range m.entries {
			cursor := "  "
			line := nameStyle.Render(e.name)
			if i == m.cursor {
				cursor = "> "
				line = selectedStyle.Render(cursor + e.name)
			} else {
				line = cursor + line
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter generate • q quit"))

	case stateShowStreams:
		e := m.entries[m.cursor]
		b.WriteString(fmt.Sprintf("Stub for %s\n\n", nameStyle.Render(e.name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			for _, arg := range m.stub.Arguments {
				b.WriteString(fmt.Sprintf("  %s\n", kindStyle.Render(arg.Kind.String())))
			}
			b.WriteString("\n")
			for _, s := range m.stub.Bundle.Streams() {
				b.WriteString(fmt.Sprintf("-- %s (%d) --\n", s.Name(), s.Len()))
				for _, ins := range s.Instructions() {
					b.WriteString(streamStyle.Render("  " + ins.String()))
					b.WriteString("\n")
				}
			}
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter/esc back • q quit"))
	}

	return b.String()
}

func runInteractive() error {
	p := tea.NewProgram(newInteractiveModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
