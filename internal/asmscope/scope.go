package asmscope

import (
	"errors"
	"math"

	"github.com/inlineasm/asmscope/internal/asmast"
	"github.com/tidwall/btree"
)

const (
	// ErrorLabelName is the reserved label of the root scope, code generation makes it jump to the error trap.
	ErrorLabelName = "invalidJumpLabel"

	ErrorLabelID      LabelID = math.MaxUint64
	UnassignedLabelID LabelID = 0

	BTREE_DEGREE = 8
)

var (
	ErrIdentifierNotFound      = errors.New("identifier not found")
	ErrVariableOutsideFunction = errors.New("variable is not accessible from inside the function")
)

type LabelID uint64

// An Identifier is a *Variable, a *Label or a *Function.
type Identifier interface {
	identifier()
	KindName() string
}

type Variable struct{}

type Label struct {
	ID LabelID

	// StackAdjustment is only meaningful when HasStackAdjustment is true.
	StackAdjustment    int
	HasStackAdjustment bool
	ResetStackHeight   bool
}

type Function struct {
	Arguments int
	Returns   int
}

func (*Variable) identifier() {}
func (*Label) identifier()    {}
func (*Function) identifier() {}

func (*Variable) KindName() string { return "variable" }
func (*Label) KindName() string    { return "label" }
func (*Function) KindName() string { return "function" }

// A Scope holds the identifiers declared in a block (or in a function's parameter list and body).
// The super scope is set at creation and never changes.
type Scope struct {
	block           *asmast.Block //nil for the root scope
	superScope      *Scope
	subScopes       []*Scope
	isFunctionScope bool
	index           int

	identifiers *btree.Map[string, Identifier]
}

func newScope(block *asmast.Block, superScope *Scope, index int) *Scope {
	return &Scope{
		block:       block,
		superScope:  superScope,
		index:       index,
		identifiers: btree.NewMap[string, Identifier](BTREE_DEGREE),
	}
}

// Block returns the block the scope was created for, the root scope has no block.
func (s *Scope) Block() *asmast.Block {
	return s.block
}

func (s *Scope) SuperScope() *Scope {
	return s.superScope
}

// SubScopes returns the directly nested scopes in creation order, the result should not be modified.
func (s *Scope) SubScopes() []*Scope {
	return s.subScopes
}

func (s *Scope) IsFunctionScope() bool {
	return s.isFunctionScope
}

// Index returns the creation index of the scope in its tree, the root scope has index 0.
func (s *Scope) Index() int {
	return s.index
}

func (s *Scope) RegisterVariable(name string) bool {
	return s.register(name, &Variable{})
}

func (s *Scope) RegisterLabel(name string, id LabelID) bool {
	return s.register(name, &Label{ID: id})
}

func (s *Scope) RegisterFunction(name string, arguments, returns int) bool {
	return s.register(name, &Function{Arguments: arguments, Returns: returns})
}

// register only looks at the scope's own table, shadowing an outer declaration is allowed.
func (s *Scope) register(name string, id Identifier) bool {
	if _, ok := s.identifiers.Get(name); ok {
		return false
	}
	s.identifiers.Set(name, id)
	return true
}

// Identifier returns the identifier declared with $name in this scope only.
func (s *Scope) Identifier(name string) (Identifier, bool) {
	return s.identifiers.Get(name)
}

func (s *Scope) IdentifierCount() int {
	return s.identifiers.Len()
}

// Names returns the names declared in this scope in lexicographic order.
func (s *Scope) Names() []string {
	names := make([]string, 0, s.identifiers.Len())
	s.identifiers.Scan(func(name string, _ Identifier) bool {
		names = append(names, name)
		return true
	})
	return names
}

// ForEachIdentifier calls fn on the identifiers of this scope in lexicographic order of their names.
func (s *Scope) ForEachIdentifier(fn func(name string, id Identifier)) {
	s.identifiers.Scan(func(name string, id Identifier) bool {
		fn(name, id)
		return true
	})
}

// Lookup searches for $name in this scope and its super scopes. Variables declared outside the
// closest enclosing function are found but not accessible: ErrVariableOutsideFunction is returned
// alongside the variable.
func (s *Scope) Lookup(name string) (Identifier, error) {
	crossedFunctionBoundary := false

	for current := s; current != nil; current = current.superScope {
		id, ok := current.identifiers.Get(name)
		if ok {
			if _, isVar := id.(*Variable); isVar && crossedFunctionBoundary {
				return id, ErrVariableOutsideFunction
			}
			return id, nil
		}
		if current.isFunctionScope {
			crossedFunctionBoundary = true
		}
	}

	return nil, ErrIdentifierNotFound
}

// InsideFunction reports whether the scope is a function scope or is nested in one.
func (s *Scope) InsideFunction() bool {
	for current := s; current != nil; current = current.superScope {
		if current.isFunctionScope {
			return true
		}
	}
	return false
}
