package llvm

import (
	"tinygo.org/x/go-llvm"
)

// isValidType returns true iff name is a legal type name for a variable or,
// when isFunctionReturn is set, for a function return slot. The set of source
// types is closed: int, double, and void for function returns only.
func isValidType(name string, isFunctionReturn bool) bool {
	if name == "int" || name == "double" {
		return true
	}
	return isFunctionReturn && name == "void"
}

// typeOf maps a source type name to its back-end type. Returns a nil type for
// unknown names.
func (g *generator) typeOf(name string) llvm.Type {
	switch name {
	case "int":
		return g.i
	case "double":
		return g.f
	case "void":
		return g.ctx.VoidType()
	}
	return llvm.Type{}
}

// isFloat returns true if the value v is of double precision floating point type.
func isFloat(v llvm.Value) bool {
	return v.Type().TypeKind() == llvm.DoubleTypeKind
}

// isInteger returns true if the value v is of integer type, of any bit width.
func isInteger(v llvm.Value) bool {
	return v.Type().TypeKind() == llvm.IntegerTypeKind
}
