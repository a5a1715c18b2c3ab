package llvm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tinygo.org/x/go-llvm"
)

// TestScopeStack verifies push/pop order, depth accounting and parent links.
func TestScopeStack(t *testing.T) {
	st := scopeStack{}
	require.Equal(t, 0, st.depth())
	require.Nil(t, st.current())

	outer := st.enterScope(llvm.BasicBlock{})
	require.Equal(t, 1, st.depth())
	require.Nil(t, outer.parent)

	inner := st.enterScope(llvm.BasicBlock{})
	require.Equal(t, 2, st.depth())
	require.Same(t, outer, inner.parent)
	require.Same(t, inner, st.current())

	st.exitScope()
	require.Same(t, outer, st.current())
	st.exitScope()
	require.Equal(t, 0, st.depth())

	// Popping an empty stack is a no-op.
	st.exitScope()
	require.Equal(t, 0, st.depth())
}

// TestScopeSymbols verifies that symbol registration is scoped and that
// nested scopes may shadow without touching the outer binding.
func TestScopeSymbols(t *testing.T) {
	st := scopeStack{}
	st.enterScope(llvm.BasicBlock{})
	st.symbols()["x"] = symbol{}
	st.enterScope(llvm.BasicBlock{})

	_, ok := st.symbols()["x"]
	require.False(t, ok, "inner scope must start empty")

	st.symbols()["x"] = symbol{}
	st.exitScope()
	_, ok = st.symbols()["x"]
	require.True(t, ok, "outer binding must survive the inner scope")
}

// TestIsValidType verifies the closed set of source types.
func TestIsValidType(t *testing.T) {
	require.True(t, isValidType("int", false))
	require.True(t, isValidType("double", false))
	require.False(t, isValidType("void", false))
	require.True(t, isValidType("void", true))
	require.False(t, isValidType("float", false))
	require.False(t, isValidType("", true))
}
