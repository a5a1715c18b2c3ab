// Package llvm transforms the MCL syntax tree into LLVM IR for the system
// installed LLVM runtime. The generator walks the tree node by node, emitting
// instructions into the basic block pinned to the innermost scope, and keeps
// a stack of scopes for variable lookup across lexical nesting levels.
package llvm

import (
	"fmt"
	"io"
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

// generator holds the emission state of a single module: the LLVM context,
// module and builder, the scope stack, and the table of declared functions.
type generator struct {
	ctx    llvm.Context
	m      llvm.Module
	b      llvm.Builder
	i      llvm.Type // The 64-bit signed integer type.
	f      llvm.Type // The double precision floating point type.
	scopes scopeStack
	funcs  map[string]llvm.Value // Declared functions by source name, built-ins included.
	main   llvm.Value            // The synthesized entry function.
	warn   io.Writer             // Sink for implicit conversion notices.

	// The execution engine takes ownership of the module; disposal must be
	// skipped for a module that was moved to an engine.
	moved bool
}

// ---------------------
// ----- Functions -----
// ---------------------

// newGenerator creates a fresh LLVM context, module and builder and installs
// the built-in functions. Warnings are written to w.
func newGenerator(name string, w io.Writer) *generator {
	ctx := llvm.NewContext()
	g := &generator{
		ctx:   ctx,
		m:     ctx.NewModule(name),
		b:     ctx.NewBuilder(),
		warn:  w,
		funcs: make(map[string]llvm.Value, mapSize),
	}
	g.i = ctx.Int64Type()
	g.f = ctx.DoubleType()
	g.createBuiltins()
	return g
}

// dispose releases the builder, module and context. Must be called exactly
// once, after emission and execution have finished.
func (g *generator) dispose() {
	g.b.Dispose()
	if !g.moved {
		g.m.Dispose()
	}
	g.ctx.Dispose()
}

// fatal builds a fatal diagnostic with the source location prefix. Fatal
// diagnostics propagate up the generator call chain and terminate emission.
func fatal(p ast.Pos, format string, args ...interface{}) error {
	return fmt.Errorf("E:L%d:C%d: %s", p.Line, p.Col, fmt.Sprintf(format, args...))
}

// warnf reports a non-fatal notice with the source location prefix. Emission
// continues.
func (g *generator) warnf(p ast.Pos, format string, args ...interface{}) {
	_, _ = fmt.Fprintf(g.warn, "W:L%d:C%d: %s\n", p.Line, p.Col, fmt.Sprintf(format, args...))
}

// position points the builder at the end of the innermost scope's block.
// Safe to call repeatedly; statement and expression emitters call it before
// appending instructions because control flow emitters move the cursor.
func (g *generator) position() {
	g.b.SetInsertPointAtEnd(g.scopes.currentBlock())
}

// terminated returns true if the basic block bb already ends in a terminator
// instruction. Control flow emitters must test this before appending an
// unconditional branch or return.
func terminated(bb llvm.BasicBlock) bool {
	last := bb.LastInstruction()
	if last.IsNil() {
		return false
	}
	switch last.InstructionOpcode() {
	case llvm.Ret, llvm.Br, llvm.Switch, llvm.IndirectBr, llvm.Invoke, llvm.Unreachable:
		return true
	}
	return false
}

// resolve locates the storage of the named identifier by walking the scope
// chain innermost outward, falling back to the module global namespace.
func (g *generator) resolve(name string) (symbol, bool) {
	for sc := g.scopes.current(); sc != nil; sc = sc.parent {
		if sym, ok := sc.symbols[name]; ok {
			return sym, true
		}
	}
	if gv := g.m.NamedGlobal(name); !gv.IsNil() {
		return symbol{typ: gv.Type().ElementType(), handle: gv}, true
	}
	return symbol{}, false
}

// genStatement generates LLVM IR for a single statement and returns the value
// of its expression, if it has one.
func (g *generator) genStatement(s ast.Stmt) (llvm.Value, error) {
	switch e1 := s.(type) {
	case *ast.VarDecl:
		return g.genDeclaration(e1)
	case *ast.ExprStmt:
		return g.genExpression(e1.X)
	case *ast.If:
		return g.genIf(e1)
	case *ast.For:
		return g.genFor(e1)
	case *ast.Return:
		return g.genReturn(e1)
	case *ast.FnDecl:
		return g.genFunction(e1)
	case *ast.Block:
		return g.genBlock(e1)
	default:
		return llvm.Value{}, fmt.Errorf("unexpected statement node %T", s)
	}
}

// genBlock generates LLVM IR for each statement of the block in source order
// and returns the value of the last one.
func (g *generator) genBlock(blk *ast.Block) (llvm.Value, error) {
	var last llvm.Value
	var err error
	for _, e1 := range blk.Stmts {
		if last, err = g.genStatement(e1); err != nil {
			return llvm.Value{}, err
		}
	}
	return last, nil
}

// genExpression generates LLVM IR for the expression node e and returns the
// resulting value. A nil llvm.Value means the expression yielded nothing.
func (g *generator) genExpression(e ast.Expr) (llvm.Value, error) {
	g.position()
	switch e1 := e.(type) {
	case *ast.Integer:
		return llvm.ConstInt(g.i, uint64(e1.Value), true), nil
	case *ast.Double:
		return llvm.ConstFloat(g.f, e1.Value), nil
	case *ast.Identifier:
		sym, ok := g.resolve(e1.Name)
		if !ok {
			return llvm.Value{}, fatal(e1.Loc, "Undefined variable %q.", e1.Name)
		}
		return g.b.CreateLoad(sym.handle, ""), nil
	case *ast.BinaryOp:
		return g.genBinary(e1)
	case *ast.UnaryOp:
		return g.genUnary(e1)
	case *ast.Assignment:
		return g.genAssign(e1)
	case *ast.Call:
		return g.genCall(e1)
	default:
		return llvm.Value{}, fmt.Errorf("unexpected expression node %T", e)
	}
}

// genDeclaration generates LLVM IR that declares a new variable. At the
// module/global emission level the variable becomes an internal linkage
// global initialized to the zero value of its type; inside a function body
// it becomes a stack slot registered in the innermost scope. An initializer
// is lowered as an assignment to the freshly declared variable.
func (g *generator) genDeclaration(d *ast.VarDecl) (llvm.Value, error) {
	if !isValidType(d.Type.Name, false) {
		return llvm.Value{}, fatal(d.Loc, "Invalid type %q.", d.Type.Name)
	}
	typ := g.typeOf(d.Type.Name)

	if g.scopes.depth() <= 1 {
		// Module/global emission level.
		if gv := g.m.NamedGlobal(d.Name.Name); !gv.IsNil() {
			return llvm.Value{}, fatal(d.Loc, "Global variable %q is already declared.", d.Name.Name)
		}
		gv := llvm.AddGlobal(g.m, typ, d.Name.Name)
		gv.SetLinkage(llvm.InternalLinkage)
		gv.SetInitializer(llvm.ConstNull(typ))
	} else {
		// Function body or nested control flow region.
		if _, ok := g.scopes.symbols()[d.Name.Name]; ok {
			return llvm.Value{}, fatal(d.Loc, "Variable %q is already defined.", d.Name.Name)
		}
		g.position()
		slot := g.b.CreateAlloca(typ, d.Name.Name)
		g.scopes.symbols()[d.Name.Name] = symbol{typ: typ, handle: slot}
	}

	if d.Init != nil {
		return g.genAssign(&ast.Assignment{Target: d.Name, Value: d.Init, Loc: d.Name.Loc})
	}
	return llvm.Value{}, nil
}

// genAssign generates LLVM IR that stores the value of the right hand side in
// the target variable, applying the implicit numeric conversions between int
// and double. The value of the assignment expression is the possibly
// converted right hand side.
func (g *generator) genAssign(a *ast.Assignment) (llvm.Value, error) {
	sym, ok := g.resolve(a.Target.Name)
	if !ok {
		return llvm.Value{}, fatal(a.Loc, "Undeclared variable %q.", a.Target.Name)
	}
	val, err := g.genExpression(a.Value)
	if err != nil {
		return llvm.Value{}, err
	}
	if val.IsNil() {
		return llvm.Value{}, fatal(a.Loc, "Invalid assignment operation.")
	}

	g.position()
	if sym.typ.TypeKind() == llvm.IntegerTypeKind && isFloat(val) {
		g.warnf(a.Loc, "Truncating double to fit integer variable.")
		val = g.b.CreateFPToSI(val, sym.typ, "casted")
	} else if sym.typ.TypeKind() == llvm.DoubleTypeKind && isInteger(val) {
		g.warnf(a.Loc, "Converting integer to double.")
		val = g.b.CreateSIToFP(val, sym.typ, "casted")
	}
	g.b.CreateStore(val, sym.handle)
	return val, nil
}

// genBinary generates LLVM IR for a binary operation. If either operand is of
// floating point type the other is promoted and the floating point
// instruction family is selected, otherwise the signed integral family is
// used. Comparisons yield 1-bit boolean values.
func (g *generator) genBinary(e *ast.BinaryOp) (llvm.Value, error) {
	lhs, err := g.genExpression(e.Left)
	if err != nil {
		return llvm.Value{}, err
	}
	rhs, err := g.genExpression(e.Right)
	if err != nil {
		return llvm.Value{}, err
	}
	if lhs.IsNil() || rhs.IsNil() {
		return llvm.Value{}, nil
	}

	g.position()
	fp := false
	if isFloat(lhs) {
		fp = true
		if isInteger(rhs) {
			g.warnf(e.Loc, "Converting integer to double.")
			rhs = g.b.CreateSIToFP(rhs, lhs.Type(), "casted")
		}
	} else if isFloat(rhs) {
		fp = true
		if isInteger(lhs) {
			g.warnf(e.Loc, "Converting integer to double.")
			lhs = g.b.CreateSIToFP(lhs, rhs.Type(), "casted")
		}
	}

	switch e.Op {
	case "+":
		if fp {
			return g.b.CreateFAdd(lhs, rhs, ""), nil
		}
		return g.b.CreateAdd(lhs, rhs, ""), nil
	case "-":
		if fp {
			return g.b.CreateFSub(lhs, rhs, ""), nil
		}
		return g.b.CreateSub(lhs, rhs, ""), nil
	case "*":
		if fp {
			return g.b.CreateFMul(lhs, rhs, ""), nil
		}
		return g.b.CreateMul(lhs, rhs, ""), nil
	case "/":
		if fp {
			return g.b.CreateFDiv(lhs, rhs, ""), nil
		}
		return g.b.CreateSDiv(lhs, rhs, ""), nil
	case "%":
		if fp {
			return g.b.CreateFRem(lhs, rhs, ""), nil
		}
		return g.b.CreateSRem(lhs, rhs, ""), nil
	case "==":
		if fp {
			return g.b.CreateFCmp(llvm.FloatOEQ, lhs, rhs, "eq"), nil
		}
		return g.b.CreateICmp(llvm.IntEQ, lhs, rhs, "eq"), nil
	case "!=":
		if fp {
			return g.b.CreateFCmp(llvm.FloatONE, lhs, rhs, "ne"), nil
		}
		return g.b.CreateICmp(llvm.IntNE, lhs, rhs, "ne"), nil
	case "<":
		if fp {
			return g.b.CreateFCmp(llvm.FloatOLT, lhs, rhs, "lt"), nil
		}
		return g.b.CreateICmp(llvm.IntSLT, lhs, rhs, "lt"), nil
	case ">":
		if fp {
			return g.b.CreateFCmp(llvm.FloatOGT, lhs, rhs, "gt"), nil
		}
		return g.b.CreateICmp(llvm.IntSGT, lhs, rhs, "gt"), nil
	case "<=":
		if fp {
			return g.b.CreateFCmp(llvm.FloatOLE, lhs, rhs, "le"), nil
		}
		return g.b.CreateICmp(llvm.IntSLE, lhs, rhs, "le"), nil
	case ">=":
		if fp {
			return g.b.CreateFCmp(llvm.FloatOGE, lhs, rhs, "ge"), nil
		}
		return g.b.CreateICmp(llvm.IntSGE, lhs, rhs, "ge"), nil
	default:
		return llvm.Value{}, fatal(e.Loc, "Operator %q is not defined.", e.Op)
	}
}

// genUnary generates LLVM IR for unary minus as a subtraction from the zero
// of the operand's numeric family.
func (g *generator) genUnary(e *ast.UnaryOp) (llvm.Value, error) {
	val, err := g.genExpression(e.Operand)
	if err != nil {
		return llvm.Value{}, err
	}
	if val.IsNil() {
		return llvm.Value{}, fatal(e.Loc, "Invalid operand.")
	}
	g.position()
	switch e.Op {
	case "-":
		if isFloat(val) {
			return g.b.CreateFSub(llvm.ConstFloat(g.f, 0), val, ""), nil
		}
		return g.b.CreateSub(llvm.ConstInt(g.i, 0, false), val, ""), nil
	default:
		return llvm.Value{}, fatal(e.Loc, "Unsupported unary operator %q.", e.Op)
	}
}

// genCall generates LLVM IR that calls the named function with positional
// arguments. Calls to the echo built-in dispatch on the argument type to
// either echoint or echodouble.
func (g *generator) genCall(c *ast.Call) (llvm.Value, error) {
	if c.Name.Name == "echo" {
		if len(c.Args) != 1 {
			return llvm.Value{}, fatal(c.Loc, "Function \"echo(number)\" requires exactly one argument.")
		}
		val, err := g.genExpression(c.Args[0])
		if err != nil {
			return llvm.Value{}, err
		}
		if val.IsNil() {
			return llvm.Value{}, fatal(c.Loc, "Invalid argument provided.")
		}
		target := g.funcs["echoint"]
		if isFloat(val) {
			target = g.funcs["echodouble"]
		}
		g.position()
		return g.b.CreateCall(target, []llvm.Value{val}, ""), nil
	}

	target, ok := g.funcs[c.Name.Name]
	if !ok {
		return llvm.Value{}, fatal(c.Loc, "Undefined function %q.", c.Name.Name)
	}
	params := target.ParamsCount()
	if len(c.Args) > params {
		noun, verb := "argument", "was"
		if params != 1 {
			noun = "arguments"
		}
		if len(c.Args) != 1 {
			verb = "were"
		}
		return llvm.Value{}, fatal(c.Loc, "Function %q accepts only %d %s but %d %s given.",
			c.Name.Name, params, noun, len(c.Args), verb)
	}

	args := make([]llvm.Value, 0, len(c.Args))
	for _, e1 := range c.Args {
		val, err := g.genExpression(e1)
		if err != nil {
			return llvm.Value{}, err
		}
		if val.IsNil() {
			return llvm.Value{}, fatal(c.Loc, "Invalid argument provided.")
		}
		args = append(args, val)
	}
	g.position()
	return g.b.CreateCall(target, args, ""), nil
}

// genFunction generates the LLVM IR declaration and definition of a function.
// External functions are declared only; defined functions get an entry block,
// a fresh scope, stack slots for their parameters and a synthesized default
// return when the body does not terminate on its own.
func (g *generator) genFunction(fn *ast.FnDecl) (llvm.Value, error) {
	if g.scopes.depth() > 1 {
		return llvm.Value{}, fatal(fn.Loc, "Local functions are not supported yet.")
	}
	if !isValidType(fn.Type.Name, true) {
		return llvm.Value{}, fatal(fn.Loc, "Invalid return type %q.", fn.Type.Name)
	}
	if _, ok := g.funcs[fn.Name.Name]; ok || fn.Name.Name == "echo" {
		return llvm.Value{}, fatal(fn.Loc, "Function with name %q is already defined.", fn.Name.Name)
	}

	atyp := make([]llvm.Type, 0, len(fn.Params))
	for _, e1 := range fn.Params {
		if !isValidType(e1.Type.Name, false) {
			return llvm.Value{}, fatal(e1.Loc, "Invalid parameter type %q.", e1.Type.Name)
		}
		atyp = append(atyp, g.typeOf(e1.Type.Name))
	}
	ftyp := llvm.FunctionType(g.typeOf(fn.Type.Name), atyp, false)

	// The module uniquifies symbol names on collision, so a function whose
	// source name matches the synthesized entry keeps a distinct symbol.
	fun := llvm.AddFunction(g.m, fn.Name.Name, ftyp)
	if fn.External {
		fun.SetLinkage(llvm.ExternalLinkage)
	} else {
		fun.SetLinkage(llvm.InternalLinkage)
	}
	fun.SetFunctionCallConv(llvm.CCallConv)
	g.funcs[fn.Name.Name] = fun
	if fn.External {
		return fun, nil
	}

	// Entry block first, then materialize each parameter as a local stack
	// slot initialized from the incoming argument value.
	entry := llvm.AddBasicBlock(fun, "entry")
	g.scopes.enterScope(entry)
	for i1, e1 := range fn.Params {
		prm := fun.Param(i1)
		prm.SetName(e1.Name.Name)
		if _, err := g.genDeclaration(e1); err != nil {
			g.scopes.exitScope()
			return llvm.Value{}, err
		}
		sym, _ := g.resolve(e1.Name.Name)
		g.position()
		g.b.CreateStore(prm, sym.handle)
	}

	if _, err := g.genBlock(fn.Body); err != nil {
		g.scopes.exitScope()
		return llvm.Value{}, err
	}

	// Synthesize the default return when the body falls through.
	if cur := g.scopes.currentBlock(); !terminated(cur) {
		g.b.SetInsertPointAtEnd(cur)
		switch fn.Type.Name {
		case "void":
			g.b.CreateRetVoid()
		case "int":
			g.b.CreateRet(llvm.ConstInt(g.i, 1, true))
		default:
			g.b.CreateRet(llvm.ConstFloat(g.f, 1.0))
		}
	}
	g.scopes.exitScope()
	return fun, nil
}

// genReturn generates LLVM IR that terminates the current basic block with a
// return, applying the implicit numeric conversions between the returned
// value and the enclosing function's return type.
func (g *generator) genReturn(r *ast.Return) (llvm.Value, error) {
	fun := g.scopes.currentBlock().Parent()
	if fun == g.main {
		return llvm.Value{}, fatal(r.Loc, "Return statement outside a function.")
	}
	rtyp := fun.Type().ElementType().ReturnType()

	if r.Value == nil {
		if rtyp.TypeKind() != llvm.VoidTypeKind {
			return llvm.Value{}, fatal(r.Loc, "Non-void function cannot return without a value.")
		}
		g.position()
		return g.b.CreateRetVoid(), nil
	}

	if rtyp.TypeKind() == llvm.VoidTypeKind {
		return llvm.Value{}, fatal(r.Loc, "Void function cannot return any value.")
	}
	val, err := g.genExpression(r.Value)
	if err != nil {
		return llvm.Value{}, err
	}
	if val.IsNil() {
		return llvm.Value{}, fatal(r.Loc, "Invalid return value.")
	}

	g.position()
	if rtyp.TypeKind() == llvm.IntegerTypeKind && isFloat(val) {
		g.warnf(r.Loc, "Truncating double to fit integer return type.")
		val = g.b.CreateFPToSI(val, rtyp, "casted")
	} else if rtyp.TypeKind() == llvm.DoubleTypeKind && isInteger(val) {
		g.warnf(r.Loc, "Converting integer to fit double return type.")
		val = g.b.CreateSIToFP(val, rtyp, "casted")
	}
	return g.b.CreateRet(val), nil
}

// genIf generates LLVM IR for IF-THEN and IF-THEN-ELSE statements. The
// condition is normalized to a 1-bit boolean, both branches get their own
// scope and basic block, and branches that do not terminate on their own are
// stitched to the merge block.
func (g *generator) genIf(s *ast.If) (llvm.Value, error) {
	cond, err := g.genExpression(s.Cond)
	if err != nil {
		return llvm.Value{}, err
	}
	if cond.IsNil() {
		return llvm.Value{}, fatal(s.Loc, "Invalid condition given to \"if\" statement.")
	}

	g.position()
	if isFloat(cond) {
		cond = g.b.CreateFCmp(llvm.FloatONE, cond, llvm.ConstFloat(g.f, 0), "")
	} else if isInteger(cond) && cond.Type().IntTypeWidth() > 1 {
		cond = g.b.CreateICmp(llvm.IntNE, cond, llvm.ConstInt(cond.Type(), 0, false), "")
	}

	fun := g.scopes.currentBlock().Parent()
	then := llvm.AddBasicBlock(fun, "then")
	otherwise := llvm.AddBasicBlock(fun, "otherwise")
	merge := llvm.AddBasicBlock(fun, "merge")
	g.b.CreateCondBr(cond, then, otherwise)

	// Generate THEN.
	g.scopes.enterScope(then)
	if _, err := g.genBlock(s.Then); err != nil {
		g.scopes.exitScope()
		return llvm.Value{}, err
	}
	if cur := g.scopes.currentBlock(); !terminated(cur) {
		g.b.SetInsertPointAtEnd(cur)
		g.b.CreateBr(merge)
	}
	g.scopes.exitScope()

	// Generate ELSE.
	g.scopes.enterScope(otherwise)
	if s.Else != nil {
		if _, err := g.genBlock(s.Else); err != nil {
			g.scopes.exitScope()
			return llvm.Value{}, err
		}
	}
	if cur := g.scopes.currentBlock(); !terminated(cur) {
		g.b.SetInsertPointAtEnd(cur)
		g.b.CreateBr(merge)
	}
	g.scopes.exitScope()

	g.scopes.setCurrentBlock(merge)
	return merge.AsValue(), nil
}

// genFor generates LLVM IR for the ranged loop. The range predicate admits
// both ascending and descending traversal without requiring the sign of the
// step:
//
//	(iter >= from && iter <= to) || (iter <= from && iter >= to)
//
// Only integer iterators and steps are supported.
func (g *generator) genFor(s *ast.For) (llvm.Value, error) {
	if s.Type.Name != "int" {
		return llvm.Value{}, fatal(s.Type.Loc, "Non-integer iterator is not supported yet.")
	}

	fun := g.scopes.currentBlock().Parent()
	init := llvm.AddBasicBlock(fun, "init")
	cond := llvm.AddBasicBlock(fun, "cond")
	loop := llvm.AddBasicBlock(fun, "loop")
	progress := llvm.AddBasicBlock(fun, "progress")
	after := llvm.AddBasicBlock(fun, "after")

	g.position()
	g.b.CreateBr(init)

	// The iterator slot lives in the loop's own scope and is initialized
	// from the range start.
	g.scopes.enterScope(init)
	if _, err := g.genDeclaration(&ast.VarDecl{Type: s.Type, Name: s.Iter, Init: s.From, Loc: s.Iter.Loc}); err != nil {
		g.scopes.exitScope()
		return llvm.Value{}, err
	}
	g.position()
	g.b.CreateBr(cond)

	// Range predicate.
	g.scopes.setCurrentBlock(cond)
	fromVal, err := g.genExpression(s.From)
	if err != nil {
		g.scopes.exitScope()
		return llvm.Value{}, err
	}
	toVal, err := g.genExpression(s.To)
	if err != nil {
		g.scopes.exitScope()
		return llvm.Value{}, err
	}
	if fromVal.IsNil() || toVal.IsNil() {
		g.scopes.exitScope()
		return llvm.Value{}, fatal(s.Iter.Loc, "Invalid range given to \"for\" loop.")
	}
	if !isInteger(fromVal) || !isInteger(toVal) {
		g.scopes.exitScope()
		return llvm.Value{}, fatal(s.Type.Loc, "Non-integer iterator is not supported yet.")
	}
	iterVal, err := g.genExpression(s.Iter)
	if err != nil {
		g.scopes.exitScope()
		return llvm.Value{}, err
	}
	g.position()
	geFrom := g.b.CreateICmp(llvm.IntSGE, iterVal, fromVal, "")
	leTo := g.b.CreateICmp(llvm.IntSLE, iterVal, toVal, "")
	leFrom := g.b.CreateICmp(llvm.IntSLE, iterVal, fromVal, "")
	geTo := g.b.CreateICmp(llvm.IntSGE, iterVal, toVal, "")
	pred := g.b.CreateOr(g.b.CreateAnd(geFrom, leTo, ""), g.b.CreateAnd(leFrom, geTo, ""), "")
	g.b.CreateCondBr(pred, loop, after)

	// Loop body.
	g.scopes.setCurrentBlock(loop)
	if _, err := g.genBlock(s.Body); err != nil {
		g.scopes.exitScope()
		return llvm.Value{}, err
	}
	if cur := g.scopes.currentBlock(); !terminated(cur) {
		g.b.SetInsertPointAtEnd(cur)
		g.b.CreateBr(progress)
	}

	// Progress: advance the iterator by the step, default 1.
	g.scopes.setCurrentBlock(progress)
	step := llvm.ConstInt(g.i, 1, true)
	if s.Step != nil {
		step, err = g.genExpression(s.Step)
		if err != nil {
			g.scopes.exitScope()
			return llvm.Value{}, err
		}
		if step.IsNil() {
			g.scopes.exitScope()
			return llvm.Value{}, fatal(s.Iter.Loc, "Invalid step given to \"for\" loop.")
		}
		if !isInteger(step) {
			g.scopes.exitScope()
			return llvm.Value{}, fatal(s.Type.Loc, "Non-integer step in loop is not supported yet.")
		}
	}
	iterVal, err = g.genExpression(s.Iter)
	if err != nil {
		g.scopes.exitScope()
		return llvm.Value{}, err
	}
	g.position()
	next := g.b.CreateAdd(iterVal, step, "")
	sym, _ := g.resolve(s.Iter.Name)
	g.b.CreateStore(next, sym.handle)
	g.b.CreateBr(cond)

	g.scopes.exitScope()
	g.scopes.setCurrentBlock(after)
	return llvm.Value{}, nil
}
