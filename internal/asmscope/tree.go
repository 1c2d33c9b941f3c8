package asmscope

import (
	"fmt"

	"github.com/inlineasm/asmscope/internal/asmast"
)

// A Tree owns the scopes of a block hierarchy, a block gets at most one scope.
// The root scope has no block and contains the error label.
type Tree struct {
	scopes  map[*asmast.Block]*Scope
	ordered []*Scope //creation order
}

func NewTree() *Tree {
	tree := &Tree{
		scopes: make(map[*asmast.Block]*Scope),
	}

	root := tree.GetOrCreate(nil, nil)
	root.RegisterLabel(ErrorLabelName, ErrorLabelID)
	return tree
}

func (t *Tree) Root() *Scope {
	return t.ordered[0]
}

// Len returns the number of scopes, root included.
func (t *Tree) Len() int {
	return len(t.ordered)
}

// Scopes returns all scopes in creation order, the result should not be modified.
func (t *Tree) Scopes() []*Scope {
	return t.ordered
}

// GetOrCreate returns the scope of $block, creating it under $parent if it does not exist yet.
// It panics with a *ConsistencyError if the scope exists with another super scope.
func (t *Tree) GetOrCreate(block *asmast.Block, parent *Scope) *Scope {
	if s, ok := t.scopes[block]; ok {
		if s.superScope != parent {
			panic(newConsistencyError(fmt.Sprintf("scope of block at %v created twice in different super scopes", spanOf(block))))
		}
		return s
	}

	s := newScope(block, parent, len(t.ordered))
	t.scopes[block] = s
	t.ordered = append(t.ordered, s)

	if parent != nil {
		parent.subScopes = append(parent.subScopes, s)
	}
	return s
}

// Get returns the scope of $block, it panics with a *ConsistencyError if there is none.
func (t *Tree) Get(block *asmast.Block) *Scope {
	s, ok := t.Lookup(block)
	if !ok {
		panic(newConsistencyError(fmt.Sprintf("scope of block at %v not found", spanOf(block))))
	}
	return s
}

// Lookup is like Get but reports a missing scope instead of panicking.
func (t *Tree) Lookup(block *asmast.Block) (*Scope, bool) {
	s, ok := t.scopes[block]
	return s, ok
}

func spanOf(block *asmast.Block) asmast.NodeSpan {
	if block == nil {
		return asmast.NodeSpan{}
	}
	return block.Span
}
