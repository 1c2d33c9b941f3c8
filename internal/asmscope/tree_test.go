package asmscope

import (
	"testing"

	"github.com/inlineasm/asmscope/internal/asmast"
	"github.com/stretchr/testify/assert"
)

func TestNewTree(t *testing.T) {
	tree := NewTree()

	root := tree.Root()
	assert.Nil(t, root.SuperScope())
	assert.Nil(t, root.Block())
	assert.Equal(t, 1, tree.Len())
	assert.Equal(t, 0, root.Index())

	id, ok := root.Identifier(ErrorLabelName)
	if assert.True(t, ok) {
		assert.Equal(t, &Label{ID: ErrorLabelID}, id)
	}
	assert.Same(t, root, tree.Get(nil))
}

func TestTreeGetOrCreate(t *testing.T) {

	t.Run("creation links the scope to its super scope", func(t *testing.T) {
		tree := NewTree()
		b := &asmast.Block{}

		s := tree.GetOrCreate(b, tree.Root())
		assert.Same(t, tree.Root(), s.SuperScope())
		assert.Equal(t, []*Scope{s}, tree.Root().SubScopes())
		assert.Same(t, b, s.Block())
		assert.Equal(t, 2, tree.Len())
		assert.Equal(t, 1, s.Index())
	})

	t.Run("same parent twice is idempotent", func(t *testing.T) {
		tree := NewTree()
		b := &asmast.Block{}

		s1 := tree.GetOrCreate(b, tree.Root())
		s2 := tree.GetOrCreate(b, tree.Root())
		assert.Same(t, s1, s2)
		assert.Len(t, tree.Root().SubScopes(), 1)
		assert.Equal(t, 2, tree.Len())
	})

	t.Run("different parent is a consistency violation", func(t *testing.T) {
		tree := NewTree()
		b1 := &asmast.Block{}
		b2 := &asmast.Block{}

		s1 := tree.GetOrCreate(b1, tree.Root())
		tree.GetOrCreate(b2, s1)

		assert.PanicsWithError(t,
			"scope tree consistency violation: scope of block at {0 0} created twice in different super scopes",
			func() {
				tree.GetOrCreate(b2, tree.Root())
			},
		)
		assert.Same(t, s1, tree.Get(b2).SuperScope())
	})

	t.Run("sub scopes are in creation order", func(t *testing.T) {
		tree := NewTree()
		b1, b2, b3 := &asmast.Block{}, &asmast.Block{}, &asmast.Block{}

		s1 := tree.GetOrCreate(b1, tree.Root())
		s2 := tree.GetOrCreate(b2, tree.Root())
		s3 := tree.GetOrCreate(b3, tree.Root())

		assert.Equal(t, []*Scope{s1, s2, s3}, tree.Root().SubScopes())
		assert.Equal(t, []*Scope{tree.Root(), s1, s2, s3}, tree.Scopes())
	})
}

func TestTreeGet(t *testing.T) {
	tree := NewTree()
	b := &asmast.Block{}

	assert.Panics(t, func() {
		tree.Get(b)
	})

	func() {
		defer func() {
			v := recover()
			assert.IsType(t, (*ConsistencyError)(nil), v)
		}()
		tree.Get(b)
	}()

	_, ok := tree.Lookup(b)
	assert.False(t, ok)

	s := tree.GetOrCreate(b, tree.Root())
	assert.Same(t, s, tree.Get(b))
}
