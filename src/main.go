package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mna/mainer"

	"mclc/src/frontend"
	"mclc/src/ir"
	"mclc/src/ir/llvm"
	"mclc/src/util"
)

// Exit codes of the compiler.
const (
	exitOK         mainer.ExitCode = 0
	exitFailure    mainer.ExitCode = 1 // Missing input or fatal diagnostic.
	exitOpenInput  mainer.ExitCode = 2
	exitWriteOut   mainer.ExitCode = 3
	exitParseError mainer.ExitCode = 4
)

// cmd implements mainer.Mainer and drives a single compiler run.
type cmd struct{}

// Main reads the source code, parses it, lowers the syntax tree to LLVM IR,
// writes the textual IR to the requested output and executes the result.
func (c *cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	opt, err := util.ParseArgs(args[1:])
	if err != nil {
		_, _ = fmt.Fprintf(stdio.Stderr, "Command line argument error: %s\n", err)
		return exitFailure
	}

	// Read source code.
	src, err := util.ReadSource(opt)
	if err != nil {
		if len(opt.Src) == 0 {
			_, _ = fmt.Fprintf(stdio.Stderr, "Error: input file not provided\n")
			return exitFailure
		}
		_, _ = fmt.Fprintf(stdio.Stderr, "Error: cannot open file %q: %s\n", opt.Src, err)
		return exitOpenInput
	}

	// Generate syntax tree by lexing and parsing source code.
	root, err := frontend.Parse(src)
	if err != nil {
		_, _ = fmt.Fprintf(stdio.Stderr, "Parse error: %s\n", err)
		return exitParseError
	}
	if opt.DumpAST {
		_, _ = fmt.Fprint(stdio.Stdout, ir.Dump(root))
		return exitOK
	}

	// Lower the syntax tree into an LLVM module.
	name := "main"
	if len(opt.Src) > 0 {
		name = filepath.Base(opt.Src)
	}
	if opt.Verbose {
		_, _ = fmt.Fprintln(stdio.Stdout, "Generating intermediate representation...")
	}
	prog, err := llvm.Generate(name, root)
	if err != nil {
		_, _ = fmt.Fprintln(stdio.Stderr, err)
		return exitFailure
	}
	defer prog.Dispose()

	// Emit the textual IR.
	if err := util.WriteOutput(opt, prog.String()); err != nil {
		_, _ = fmt.Fprintf(stdio.Stderr, "Error: cannot write to file %q: %s\n", opt.Out, err)
		return exitWriteOut
	}

	if opt.NoRun {
		return exitOK
	}

	// Execute the module's entry function.
	if opt.Verbose {
		_, _ = fmt.Fprintln(stdio.Stdout, "Running code...")
	}
	res, err := prog.Run()
	if err != nil {
		_, _ = fmt.Fprintf(stdio.Stderr, "Execution error: %s\n", err)
		return exitFailure
	}
	if opt.Verbose {
		_, _ = fmt.Fprintf(stdio.Stdout, "Execution completed, main returned %d\n", res)
	}
	return exitOK
}

func main() {
	c := cmd{}
	os.Exit(int(c.Main(os.Args, mainer.CurrentStdio())))
}
