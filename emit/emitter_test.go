package emit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	frozenerrors "github.com/geeknoid/frozen-collections/errors"
)

func TestStringMapOutput(t *testing.T) {
	g := &Generator{Package: "colors", Var: "Colors", ValueType: "int"}

	var buf bytes.Buffer
	err := g.StringMap(&buf, []string{"red", "green", "blue", "cyan", "plum"},
		[]string{"0xff0000", "0x00ff00", "0x0000ff", "0x00ffff", "0xdda0dd"})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "// Code generated by frozen-gen. DO NOT EDIT.\n"))
	assert.Contains(t, out, "package colors\n")
	assert.Contains(t, out, `frozen "github.com/geeknoid/frozen-collections"`)
	assert.Contains(t, out, "var Colors = frozen.NewStringMapWithPlan[int](frozen.Plan{Variant: frozen.")
	assert.Contains(t, out, `{Key: "green", Value: 0x00ff00},`)
	assert.Contains(t, out, "[]frozen.Entry[string, int]{")
}

func TestStringMapDeterministic(t *testing.T) {
	g := &Generator{Package: "p", Var: "V", ValueType: "string"}
	keys := []string{"alpha", "beta", "gamma", "delta", "epsilon"}
	values := []string{`"a"`, `"b"`, `"c"`, `"d"`, `"e"`}

	var first, second bytes.Buffer
	require.NoError(t, g.StringMap(&first, keys, values))
	require.NoError(t, g.StringMap(&second, keys, values))
	assert.Equal(t, first.String(), second.String())
}

func TestScalarMapOutput(t *testing.T) {
	g := &Generator{Package: "status", Var: "Names", ValueType: "string"}

	var buf bytes.Buffer
	err := g.ScalarMap(&buf, "uint16", []int64{200, 201, 202, 204}, []string{`"OK"`, `"Created"`, `"Accepted"`, `"No Content"`})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "var Names = frozen.NewScalarMapWithPlan[uint16, string](frozen.Plan{Variant: frozen.SparseScalarLookup")
	assert.Contains(t, out, "MinKey: 200, Span: 5")
	assert.Contains(t, out, `{Key: 204, Value: "No Content"},`)
}

func TestGeneratorRejectsBadInput(t *testing.T) {
	g := &Generator{Package: "p", Var: "V", ValueType: "int"}
	var buf bytes.Buffer

	err := g.StringMap(&buf, []string{"a", "b"}, []string{"1"})
	assert.Error(t, err)

	err = g.StringMap(&buf, []string{"a", "a"}, []string{"1", "2"})
	assert.ErrorIs(t, err, frozenerrors.ErrDuplicateKey)

	missing := &Generator{Var: "V", ValueType: "int"}
	err = missing.StringMap(&buf, []string{"a"}, []string{"1"})
	assert.Error(t, err)

	err = g.ScalarMap(&buf, "", []int64{1}, []string{"1"})
	assert.Error(t, err)
}
