package asmast

import (
	"fmt"
	"reflect"
	"runtime/debug"
)

type TraversalAction int

const (
	ContinueTraversal TraversalAction = iota
	Prune
	StopTraversal
)

// A NodeHandler is called on every visited node, scopeNode is the closest ancestor block.
type NodeHandler = func(node Node, parent Node, scopeNode Node, ancestorChain []Node, after bool) (TraversalAction, error)

// Walk performs a pre-order traversal on an AST (depth first), children are visited in syntactic order.
// postHandle is called on a node after all its descendants have been visited.
func Walk(node Node, handle, postHandle NodeHandler) (err error) {
	defer func() {
		v := recover()

		switch val := v.(type) {
		case error:
			err = fmt.Errorf("%s:%w", debug.Stack(), val)
		case nil:
		case TraversalAction:
		default:
			panic(v)
		}
	}()

	ancestorChain := make([]Node, 0)
	walk(node, nil, &ancestorChain, handle, postHandle)
	return
}

func IsScopeContainerNode(node Node) bool {
	_, ok := node.(*Block)
	return ok
}

func walk(node, parent Node, ancestorChain *[]Node, fn, afterFn NodeHandler) {

	if node == nil || reflect.ValueOf(node).IsNil() {
		return
	}

	*ancestorChain = append((*ancestorChain), parent)
	defer func() {
		*ancestorChain = (*ancestorChain)[:len(*ancestorChain)-1]
	}()

	var scopeNode Node
	for _, a := range *ancestorChain {
		if a != nil && IsScopeContainerNode(a) {
			scopeNode = a
		}
	}

	if fn != nil {
		action, err := fn(node, parent, scopeNode, *ancestorChain, false)

		if err != nil {
			panic(err)
		}

		switch action {
		case StopTraversal:
			panic(StopTraversal)
		case Prune:
			return
		}
	}

	switch n := node.(type) {
	case *Block:
		for _, stmt := range n.Statements {
			walk(stmt, node, ancestorChain, fn, afterFn)
		}
	case *Assignment:
		walk(n.VariableName, node, ancestorChain, fn, afterFn)
	case *FunctionalAssignment:
		walk(n.VariableName, node, ancestorChain, fn, afterFn)
		walk(n.Value, node, ancestorChain, fn, afterFn)
	case *VariableDeclaration:
		walk(n.Value, node, ancestorChain, fn, afterFn)
	case *FunctionDefinition:
		walk(n.Body, node, ancestorChain, fn, afterFn)
	case *FunctionCall:
		walk(n.FunctionName, node, ancestorChain, fn, afterFn)
		for _, arg := range n.Arguments {
			walk(arg, node, ancestorChain, fn, afterFn)
		}
	case *FunctionalInstruction:
		walk(n.Instruction, node, ancestorChain, fn, afterFn)
		for _, arg := range n.Arguments {
			walk(arg, node, ancestorChain, fn, afterFn)
		}
	case *Instruction, *Literal, *Identifier, *Label:
	default:
		panic(fmt.Errorf("cannot walk on %T", n))
	}

	if afterFn != nil {
		action, err := afterFn(node, parent, scopeNode, *ancestorChain, true)

		if err != nil {
			panic(err)
		}

		if action == StopTraversal {
			panic(StopTraversal)
		}
	}
}
