package ir

import (
	"fmt"
	"strings"
)

// Dump returns an indented textual rendering of the sub-tree rooted at n,
// one node per line. It is used by the -ast flag and by tests.
func Dump(n Node) string {
	sb := strings.Builder{}
	dump(&sb, n, 0)
	return sb.String()
}

// Print writes the sub-tree rooted at n to stdout.
func Print(n Node) {
	fmt.Print(Dump(n))
}

func dump(sb *strings.Builder, n Node, depth int) {
	if n == nil {
		return
	}
	if e1, ok := n.(*ExprStmt); ok {
		// Statement position adds no nesting of its own.
		dump(sb, e1.X, depth)
		return
	}
	for i1 := 0; i1 < depth; i1++ {
		sb.WriteString("  ")
	}
	switch e1 := n.(type) {
	case *Integer:
		fmt.Fprintf(sb, "INTEGER(%d)\n", e1.Value)
	case *Double:
		fmt.Fprintf(sb, "DOUBLE(%g)\n", e1.Value)
	case *Identifier:
		fmt.Fprintf(sb, "IDENTIFIER(%s)\n", e1.Name)
	case *BinaryOp:
		fmt.Fprintf(sb, "BINARY(%s)\n", e1.Op)
		dump(sb, e1.Left, depth+1)
		dump(sb, e1.Right, depth+1)
	case *UnaryOp:
		fmt.Fprintf(sb, "UNARY(%s)\n", e1.Op)
		dump(sb, e1.Operand, depth+1)
	case *Assignment:
		fmt.Fprintf(sb, "ASSIGNMENT(%s)\n", e1.Target.Name)
		dump(sb, e1.Value, depth+1)
	case *Call:
		fmt.Fprintf(sb, "CALL(%s)\n", e1.Name.Name)
		for _, e2 := range e1.Args {
			dump(sb, e2, depth+1)
		}
	case *VarDecl:
		fmt.Fprintf(sb, "DECLARATION(%s %s)\n", e1.Type.Name, e1.Name.Name)
		dump(sb, e1.Init, depth+1)
	case *If:
		sb.WriteString("IF\n")
		dump(sb, e1.Cond, depth+1)
		dump(sb, e1.Then, depth+1)
		if e1.Else != nil {
			dump(sb, e1.Else, depth+1)
		}
	case *For:
		fmt.Fprintf(sb, "FOR(%s:%s)\n", e1.Iter.Name, e1.Type.Name)
		dump(sb, e1.From, depth+1)
		dump(sb, e1.To, depth+1)
		dump(sb, e1.Step, depth+1)
		dump(sb, e1.Body, depth+1)
	case *Return:
		sb.WriteString("RETURN\n")
		dump(sb, e1.Value, depth+1)
	case *FnDecl:
		ext := ""
		if e1.External {
			ext = " ext"
		}
		fmt.Fprintf(sb, "FUNCTION(%s %s%s)\n", e1.Type.Name, e1.Name.Name, ext)
		for _, e2 := range e1.Params {
			dump(sb, e2, depth+1)
		}
		if e1.Body != nil {
			dump(sb, e1.Body, depth+1)
		}
	case *Block:
		sb.WriteString("BLOCK\n")
		for _, e2 := range e1.Stmts {
			dump(sb, e2, depth+1)
		}
	}
}
