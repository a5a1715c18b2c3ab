package llvm

import (
	"tinygo.org/x/go-llvm"
)

// createBuiltins pre-registers the foreign printf sink and defines the two
// concrete echo variants. Call dispatch picks echoint or echodouble by the
// argument's emitted type.
func (g *generator) createBuiltins() {
	// Declare external printf(i8*, ...) -> i32 with C calling convention.
	ptyp := llvm.FunctionType(g.ctx.Int32Type(), []llvm.Type{llvm.PointerType(g.ctx.Int8Type(), 0)}, true)
	pf := llvm.AddFunction(g.m, "printf", ptyp)
	pf.SetLinkage(llvm.ExternalLinkage)
	pf.SetFunctionCallConv(llvm.CCallConv)
	g.funcs["printf"] = pf

	g.funcs["echoint"] = g.createEcho("echoint", g.i, "%lld\n")
	g.funcs["echodouble"] = g.createEcho("echodouble", g.f, "%lf\n")
}

// createEcho defines an internal void function with the given name that
// prints its single argument through printf. The format string is
// materialized once as a module level constant, not re-emitted per call.
func (g *generator) createEcho(name string, typ llvm.Type, format string) llvm.Value {
	ftyp := llvm.FunctionType(g.ctx.VoidType(), []llvm.Type{typ}, false)
	fn := llvm.AddFunction(g.m, name, ftyp)
	fn.SetLinkage(llvm.InternalLinkage)
	fn.SetFunctionCallConv(llvm.CCallConv)

	arg := fn.Param(0)
	arg.SetName("value")

	bb := llvm.AddBasicBlock(fn, "entry")
	g.b.SetInsertPointAtEnd(bb)
	frmt := g.b.CreateGlobalStringPtr(format, name+".fmt")
	g.b.CreateCall(g.funcs["printf"], []llvm.Value{frmt, arg}, "")
	g.b.CreateRetVoid()
	return fn
}
