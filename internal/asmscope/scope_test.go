package asmscope

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeRegistration(t *testing.T) {

	t.Run("variable", func(t *testing.T) {
		s := newScope(nil, nil, 0)

		assert.True(t, s.RegisterVariable("x"))
		assert.False(t, s.RegisterVariable("x"))

		id, ok := s.Identifier("x")
		assert.True(t, ok)
		assert.IsType(t, (*Variable)(nil), id)
		assert.Equal(t, 1, s.IdentifierCount())
	})

	t.Run("a failed registration does not overwrite the existing identifier", func(t *testing.T) {
		s := newScope(nil, nil, 0)

		assert.True(t, s.RegisterFunction("f", 2, 1))
		assert.False(t, s.RegisterVariable("f"))
		assert.False(t, s.RegisterLabel("f", UnassignedLabelID))

		id, _ := s.Identifier("f")
		assert.Equal(t, &Function{Arguments: 2, Returns: 1}, id)
	})

	t.Run("label", func(t *testing.T) {
		s := newScope(nil, nil, 0)

		assert.True(t, s.RegisterLabel("l", UnassignedLabelID))
		assert.False(t, s.RegisterLabel("l", 3))

		id, _ := s.Identifier("l")
		assert.Equal(t, &Label{ID: UnassignedLabelID}, id)
	})

	t.Run("registration ignores super scopes", func(t *testing.T) {
		parent := newScope(nil, nil, 0)
		child := newScope(nil, parent, 1)

		assert.True(t, parent.RegisterVariable("x"))
		assert.True(t, child.RegisterVariable("x"))
	})

	t.Run("names are sorted", func(t *testing.T) {
		s := newScope(nil, nil, 0)
		s.RegisterVariable("c")
		s.RegisterLabel("a", UnassignedLabelID)
		s.RegisterFunction("b", 0, 0)

		assert.Equal(t, []string{"a", "b", "c"}, s.Names())
	})
}

func TestScopeLookup(t *testing.T) {
	root := newScope(nil, nil, 0)
	root.RegisterVariable("outerVar")
	root.RegisterLabel("outerLabel", UnassignedLabelID)
	root.RegisterFunction("outerFn", 0, 0)

	function := newScope(nil, root, 1)
	function.isFunctionScope = true
	function.RegisterVariable("param")

	inner := newScope(nil, function, 2)
	inner.RegisterVariable("local")

	t.Run("own scope", func(t *testing.T) {
		id, err := inner.Lookup("local")
		assert.NoError(t, err)
		assert.IsType(t, (*Variable)(nil), id)
	})

	t.Run("variable of the enclosing function scope", func(t *testing.T) {
		_, err := inner.Lookup("param")
		assert.NoError(t, err)
	})

	t.Run("variable outside of the function", func(t *testing.T) {
		id, err := inner.Lookup("outerVar")
		assert.ErrorIs(t, err, ErrVariableOutsideFunction)
		assert.IsType(t, (*Variable)(nil), id)

		_, err = root.Lookup("outerVar")
		assert.NoError(t, err)
	})

	t.Run("labels and functions are visible across function boundaries", func(t *testing.T) {
		_, err := inner.Lookup("outerLabel")
		assert.NoError(t, err)

		id, err := inner.Lookup("outerFn")
		assert.NoError(t, err)
		assert.IsType(t, (*Function)(nil), id)
	})

	t.Run("not found", func(t *testing.T) {
		id, err := inner.Lookup("missing")
		assert.ErrorIs(t, err, ErrIdentifierNotFound)
		assert.Nil(t, id)
	})

	t.Run("inside function", func(t *testing.T) {
		assert.True(t, inner.InsideFunction())
		assert.True(t, function.InsideFunction())
		assert.False(t, root.InsideFunction())
	})
}
