package script

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weiliddat/mgq/adapter/data"
)

type M = data.M

func TestCompileExpression(t *testing.T) {
	fn, err := Compile("this.a > 1")
	require.NoError(t, err)

	matches, err := fn(M{"a": 2})
	require.NoError(t, err)
	require.True(t, matches)

	matches, err = fn(M{"a": 1})
	require.NoError(t, err)
	require.False(t, matches)
}

func TestCompileFunction(t *testing.T) {
	fn, err := Compile("function() { return this.tags.length === 2; }")
	require.NoError(t, err)

	matches, err := fn(M{"tags": []any{"a", "b"}})
	require.NoError(t, err)
	require.True(t, matches)

	matches, err = fn(M{"tags": []any{"a"}})
	require.NoError(t, err)
	require.False(t, matches)
}

func TestCompileOrderedDocument(t *testing.T) {
	fn, err := Compile("this.qty.num === 100")
	require.NoError(t, err)

	matches, err := fn(data.D{{"qty", data.D{{"num", 100}}}})
	require.NoError(t, err)
	require.True(t, matches)
}

func TestCompileInvalidSource(t *testing.T) {
	_, err := Compile("function( {")
	require.Error(t, err)
}

func TestRuntimeError(t *testing.T) {
	fn, err := Compile("this.a.b.c > 1")
	require.NoError(t, err)

	_, err = fn(M{"a": 1})
	require.Error(t, err)
}
