package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/nativestub/marshalgen/abi"
	"github.com/nativestub/marshalgen/classify"
	"github.com/nativestub/marshalgen/marshal"
	"github.com/nativestub/marshalgen/stream"
)

// stdoutIsTerminal caches whether stdout is a terminal, so the non-
// interactive printer only spends lipgloss's color codes when something
// will actually render them.
var stdoutIsTerminal = term.IsTerminal(int(os.Stdout.Fd()))

func main() {
	var (
		sigPath     = flag.String("sig", "", "Path to a method signature JSON file")
		list        = flag.Bool("list", false, "Print each parameter's resolved kind and exit")
		verbose     = flag.Bool("v", false, "Enable debug logging from classify/marshal")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		l, err := zap.NewDevelopment()
		if err == nil {
			classify.SetLogger(l)
			marshal.SetLogger(l)
		}
	}

	if *interactive {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *sigPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: genstub -sig <signature.json> [-list]")
		fmt.Fprintln(os.Stderr, "       genstub -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*sigPath, *list); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(sigPath string, listOnly bool) error {
	sf, err := loadSigFile(sigPath)
	if err != nil {
		return err
	}

	policy, input, err := sf.toMethodSignature()
	if err != nil {
		return err
	}

	sig := marshal.MethodSignature{
		Namespace:  input.Namespace,
		TypeName:   input.TypeName,
		MethodName: input.MethodName,
		Parameters: input.Parameters,
		Policy:     *policy,
		Direction:  input.Direction,
	}

	fmt.Printf("%s.%s.%s (%s)\n\n", sig.Namespace, sig.TypeName, sig.MethodName, sig.Direction)

	if listOnly {
		for _, p := range sig.Parameters {
			role := abi.RoleArgument
			isReturn := p.Index == 0
			m, err := marshal.New(p, sig.Policy, role, sig.Direction)
			label := p.Name
			if isReturn {
				label = "(return)"
			}
			if err != nil {
				fmt.Println(renderError(fmt.Sprintf("  %-16s ERROR: %v", label, err)))
				continue
			}
			fmt.Printf("  %-16s %-24s kind=%s in=%v out=%v byref=%v\n",
				label, p.Type.Name(), renderKind(m.Kind.String()), m.In, m.Out, m.IsManagedByRef)
		}
		return nil
	}

	orch := marshal.NewOrchestrator()
	stub, err := orch.Generate(sig, stream.NewDefaultEmitter())
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	printBundle(stub.Bundle)
	return nil
}

// renderKind and renderError apply the interactive mode's styling to
// batch-mode output too, but only when stdout is actually a terminal —
// a plain pipe or redirect gets plain text, no escape codes.
func renderKind(s string) string {
	if !stdoutIsTerminal {
		return s
	}
	return kindStyle.Render(s)
}

func renderError(s string) string {
	if !stdoutIsTerminal {
		return s
	}
	return errorStyle.Render(s)
}

func printBundle(b *stream.Bundle) {
	for _, s := range b.Streams() {
		fmt.Printf("-- %s (%d) --\n", s.Name(), s.Len())
		for _, ins := range s.Instructions() {
			line := "  " + ins.String()
			if stdoutIsTerminal {
				line = "  " + streamStyle.Render(ins.String())
			}
			fmt.Println(line)
		}
	}
}
