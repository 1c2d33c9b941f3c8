package asmscope

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/inlineasm/asmscope/internal/asmast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTreeDescribe(t *testing.T) {
	f := fn("f", []string{"a"}, []string{"r"})
	b := withSpan(block(label("l", "2"), label("m", "x"), f), 0, 10)

	tree, _, ok := fill(b)
	require.True(t, ok)

	desc := tree.Describe()
	require.Len(t, desc.Scopes, 3)

	root := desc.Scopes[0]
	assert.Equal(t, -1, root.SuperScope)
	assert.Equal(t, []int{1}, root.SubScopes)
	assert.Nil(t, root.BlockSpan)
	if assert.Len(t, root.Identifiers, 1) {
		assert.Equal(t, ErrorLabelName, root.Identifiers[0].Name)
		assert.Equal(t, ErrorLabelID, *root.Identifiers[0].LabelID)
	}

	top := desc.Scopes[1]
	assert.Equal(t, 0, top.SuperScope)
	assert.Equal(t, []int{2}, top.SubScopes)
	assert.Equal(t, &asmast.NodeSpan{Start: 0, End: 10}, top.BlockSpan)

	adjustment := 2
	args, rets := 1, 1
	unassigned := UnassignedLabelID
	assert.Equal(t, []IdentifierDescription{
		{Name: "f", Kind: "function", Arguments: &args, Returns: &rets},
		{Name: "l", Kind: "label", LabelID: &unassigned, StackAdjustment: &adjustment},
		{Name: "m", Kind: "label", LabelID: &unassigned, ResetStackHeight: true},
		{Name: "x", Kind: "variable"},
	}, top.Identifiers)

	function := desc.Scopes[2]
	assert.True(t, function.IsFunctionScope)
	assert.Equal(t, 1, function.SuperScope)
	assert.Equal(t, []int{}, function.SubScopes)

	t.Run("json", func(t *testing.T) {
		data, err := json.Marshal(desc)
		require.NoError(t, err)

		var decoded TreeDescription
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, desc, decoded)
		assert.Contains(t, string(data), `"labelID":18446744073709551615`)
	})
}

func TestTreeDescribeLookup(t *testing.T) {
	f := fn("f", []string{"a"}, []string{"r"})
	tree, _, ok := fill(block(let("x", num("1")), f))
	require.True(t, ok)

	t.Run("variable outside function", func(t *testing.T) {
		lookups := tree.DescribeLookup("x")
		require.Len(t, lookups, 3)

		assert.Equal(t, LookupDescription{Scope: 0, Error: ErrIdentifierNotFound.Error()}, lookups[0])
		assert.Equal(t, LookupDescription{Scope: 1, Kind: "variable", Accessible: true}, lookups[1])
		assert.Equal(t, LookupDescription{
			Scope:          2,
			InsideFunction: true,
			Kind:           "variable",
			Error:          ErrVariableOutsideFunction.Error(),
		}, lookups[2])
	})

	t.Run("function visible from its own body", func(t *testing.T) {
		lookups := tree.DescribeLookup("f")
		require.Len(t, lookups, 3)
		assert.True(t, lookups[2].Accessible)
		assert.Equal(t, "function", lookups[2].Kind)
	})

	t.Run("argument", func(t *testing.T) {
		lookups := tree.DescribeLookup("a")
		assert.False(t, lookups[1].Accessible)
		assert.True(t, lookups[2].Accessible)
	})
}
