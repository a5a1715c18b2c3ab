package llvm

import (
	"io"
	"os"
)

import (
	"tinygo.org/x/go-llvm"
)

import (
	ast "mclc/src/ir"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Program wraps a lowered module, ready for printing as textual IR or for
// direct execution.
type Program struct {
	g *generator
}

// ---------------------
// ----- Functions -----
// ---------------------

// Generate lowers the program block root into a fresh LLVM module. The
// top-level statements are emitted into a synthesized entry function named
// main with return type i64. Implicit conversion notices are written to
// stderr; fatal diagnostics are returned as an error and abort emission.
func Generate(name string, root *ast.Block) (*Program, error) {
	return generate(name, root, os.Stderr)
}

// generate is the warning-sink injectable variant of Generate.
func generate(name string, root *ast.Block, warn io.Writer) (*Program, error) {
	g := newGenerator(name, warn)
	if err := g.generate(root); err != nil {
		g.dispose()
		return nil, err
	}
	return &Program{g: g}, nil
}

// generate synthesizes the entry function and lowers the program block into
// it.
func (g *generator) generate(root *ast.Block) error {
	ftyp := llvm.FunctionType(g.i, nil, false)
	main := llvm.AddFunction(g.m, "main", ftyp)
	main.SetLinkage(llvm.InternalLinkage)
	g.main = main

	entry := llvm.AddBasicBlock(main, "entry")
	g.scopes.enterScope(entry)
	g.b.SetInsertPointAtEnd(entry)
	if _, err := g.genBlock(root); err != nil {
		g.scopes.exitScope()
		return err
	}
	if cur := g.scopes.currentBlock(); !terminated(cur) {
		g.b.SetInsertPointAtEnd(cur)
		g.emitEntryReturn()
	}
	g.scopes.exitScope()
	return nil
}

// emitEntryReturn terminates the entry function. A program that declares its
// own parameterless main function gets it called at the end of the top-level
// code and its result becomes the entry function's return value, truncated to
// i64 for double results and 0 for void. A user main taking parameters is not
// called. Without a callable user main the entry function returns 0.
func (g *generator) emitEntryReturn() {
	if um, ok := g.funcs["main"]; ok && um.ParamsCount() == 0 {
		switch um.Type().ElementType().ReturnType().TypeKind() {
		case llvm.VoidTypeKind:
			g.b.CreateCall(um, nil, "")
			g.b.CreateRet(llvm.ConstInt(g.i, 0, true))
		case llvm.DoubleTypeKind:
			g.b.CreateRet(g.b.CreateFPToSI(g.b.CreateCall(um, nil, ""), g.i, ""))
		default:
			g.b.CreateRet(g.b.CreateCall(um, nil, ""))
		}
		return
	}
	g.b.CreateRet(llvm.ConstInt(g.i, 0, true))
}

// String returns the textual LLVM IR of the lowered module.
func (p *Program) String() string {
	return p.g.m.String()
}

// Run executes the module's entry function in a JIT execution engine and
// returns its result. The engine resolves the host printf for the echo
// built-ins. The engine takes ownership of the module; Run must not be
// called twice.
func (p *Program) Run() (int64, error) {
	llvm.LinkInMCJIT()
	if err := llvm.InitializeNativeTarget(); err != nil {
		return 0, err
	}
	if err := llvm.InitializeNativeTargetAsmPrinter(); err != nil {
		return 0, err
	}

	opts := llvm.NewMCJITCompilerOptions()
	opts.SetMCJITOptimizationLevel(0)
	ee, err := llvm.NewMCJITCompiler(p.g.m, opts)
	if err != nil {
		return 0, err
	}
	p.g.moved = true
	defer ee.Dispose()

	res := ee.RunFunction(p.g.main, []llvm.GenericValue{})
	defer res.Dispose()
	return int64(res.Int(true)), nil
}

// Dispose releases the LLVM resources held by the program.
func (p *Program) Dispose() {
	p.g.dispose()
}
