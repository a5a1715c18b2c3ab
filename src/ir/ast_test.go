package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestDump verifies the tree rendering of a hand built sub-tree, including
// optional children that are absent.
func TestDump(t *testing.T) {
	n := &If{
		Cond: &BinaryOp{
			Op:    "<=",
			Left:  &Identifier{Name: "a"},
			Right: &Double{Value: 2.5},
		},
		Then: &Block{Stmts: []Stmt{
			&Return{Value: &UnaryOp{Op: "-", Operand: &Integer{Value: 1}}},
		}},
	}

	want := `IF
  BINARY(<=)
    IDENTIFIER(a)
    DOUBLE(2.5)
  BLOCK
    RETURN
      UNARY(-)
        INTEGER(1)
`
	require.Equal(t, want, Dump(n))
}

// TestDumpExternal verifies that external functions are marked.
func TestDumpExternal(t *testing.T) {
	n := &FnDecl{
		Type:     &Identifier{Name: "double"},
		Name:     &Identifier{Name: "pow"},
		Params:   []*VarDecl{{Type: &Identifier{Name: "double"}, Name: &Identifier{Name: "b"}}},
		External: true,
	}
	want := `FUNCTION(double pow ext)
  DECLARATION(double b)
`
	require.Equal(t, want, Dump(n))
}

// TestSpan verifies that ExprStmt reports the span of its expression.
func TestSpan(t *testing.T) {
	p := Pos{Line: 3, Col: 7, EndLine: 3, EndCol: 9}
	s := &ExprStmt{X: &Identifier{Name: "x", Loc: p}}
	require.Equal(t, p, s.Span())
}
