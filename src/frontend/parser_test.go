package frontend

import (
	"testing"

	"github.com/kylelemons/godebug/diff"
	"github.com/stretchr/testify/require"

	"mclc/src/ir"
)

// TestParseProgram parses a representative program and compares the dumped
// syntax tree against the expected rendering.
func TestParseProgram(t *testing.T) {
	src := `int g = 2;
def int main() {
	if (g < 3) { echo(g); } else echo(0);
	for i:int in 1 to 3 do g = g + i;
	return 0;
}
`
	want := `BLOCK
  DECLARATION(int g)
    INTEGER(2)
  FUNCTION(int main)
    BLOCK
      IF
        BINARY(<)
          IDENTIFIER(g)
          INTEGER(3)
        BLOCK
          CALL(echo)
            IDENTIFIER(g)
        BLOCK
          CALL(echo)
            INTEGER(0)
      FOR(i:int)
        INTEGER(1)
        INTEGER(3)
        BLOCK
          ASSIGNMENT(g)
            BINARY(+)
              IDENTIFIER(g)
              IDENTIFIER(i)
      RETURN
        INTEGER(0)
`

	root, err := Parse(src)
	require.NoError(t, err)
	if patch := diff.Diff(want, ir.Dump(root)); patch != "" {
		t.Errorf("syntax tree mismatch (-want +got):\n%s", patch)
	}
}

// TestParsePrecedence verifies that multiplication binds tighter than
// addition, which binds tighter than relations, and that assignment
// associates to the right.
func TestParsePrecedence(t *testing.T) {
	root, err := Parse("x = y = 1 + 2 * 3 == 7;")
	require.NoError(t, err)

	want := `BLOCK
  ASSIGNMENT(x)
    ASSIGNMENT(y)
      BINARY(==)
        BINARY(+)
          INTEGER(1)
          BINARY(*)
            INTEGER(2)
            INTEGER(3)
        INTEGER(7)
`
	if patch := diff.Diff(want, ir.Dump(root)); patch != "" {
		t.Errorf("syntax tree mismatch (-want +got):\n%s", patch)
	}
}

// TestParseUnary verifies unary minus, including chained and parenthesized
// operands.
func TestParseUnary(t *testing.T) {
	root, err := Parse("x = -(1 + -2.5);")
	require.NoError(t, err)

	blk := root.Stmts[0].(*ir.ExprStmt)
	assign := blk.X.(*ir.Assignment)
	neg := assign.Value.(*ir.UnaryOp)
	require.Equal(t, "-", neg.Op)
	sum := neg.Operand.(*ir.BinaryOp)
	require.Equal(t, "+", sum.Op)
	inner := sum.Right.(*ir.UnaryOp)
	require.Equal(t, 2.5, inner.Operand.(*ir.Double).Value)
}

// TestParseExternal verifies external function declarations.
func TestParseExternal(t *testing.T) {
	root, err := Parse("def ext double pow(double b, double e);")
	require.NoError(t, err)

	fn := root.Stmts[0].(*ir.FnDecl)
	require.True(t, fn.External)
	require.Nil(t, fn.Body)
	require.Equal(t, "pow", fn.Name.Name)
	require.Len(t, fn.Params, 2)
	require.Equal(t, "double", fn.Params[0].Type.Name)
}

// TestParseFor verifies the optional step expression.
func TestParseFor(t *testing.T) {
	root, err := Parse("for i:int in 5 to 1 by -1 do echo(i);")
	require.NoError(t, err)

	loop := root.Stmts[0].(*ir.For)
	require.Equal(t, "i", loop.Iter.Name)
	require.Equal(t, "int", loop.Type.Name)
	require.NotNil(t, loop.Step)
	require.Len(t, loop.Body.Stmts, 1)

	root, err = Parse("for i:int in 1 to 5 do echo(i);")
	require.NoError(t, err)
	require.Nil(t, root.Stmts[0].(*ir.For).Step)
}

// TestParsePositions verifies that nodes carry their source locations for
// diagnostics.
func TestParsePositions(t *testing.T) {
	root, err := Parse("int x;\nx = 2;\n")
	require.NoError(t, err)

	decl := root.Stmts[0].(*ir.VarDecl)
	require.Equal(t, 1, decl.Span().Line)
	require.Equal(t, 1, decl.Span().Col)

	assign := root.Stmts[1].(*ir.ExprStmt).X.(*ir.Assignment)
	require.Equal(t, 2, assign.Span().Line)
	require.Equal(t, 1, assign.Span().Col)
}

// TestParseErrors verifies that malformed programs are rejected with a
// position-carrying error.
func TestParseErrors(t *testing.T) {
	for _, e1 := range []string{
		"int x",                        // Missing semicolon.
		"def main() { }",               // Missing return type.
		"def int f(int a = 1) { }",     // Parameter default value.
		"if 1 < 2 echo(1);",            // Missing parentheses.
		"for i:int in 1 5 do echo(i);", // Missing 'to'.
		"x = ;",                        // Missing expression.
		"def ext int f(int a) { }",     // External with body.
		"echo(1;",                      // Unbalanced parenthesis.
	} {
		_, err := Parse(e1)
		require.Error(t, err, "expected parse error for %q", e1)
		require.Regexp(t, `^line \d+:\d+:`, err.Error())
	}
}
