package asmast

import (
	"reflect"
)

func CountNodes(n Node) (count int) {
	Walk(n, func(node, parent, scopeNode Node, ancestorChain []Node, after bool) (TraversalAction, error) {
		count += 1
		return ContinueTraversal, nil
	}, nil)

	return
}

// FindNodes walks over an AST node and returns all the nodes of type $typ for which $handle returns true.
// If $handle is nil only the type is checked.
func FindNodes[T Node](root Node, typ T, handle func(n T) bool) []T {
	searchedType := reflect.TypeOf(typ)
	var found []T

	Walk(root, func(node, parent, scopeNode Node, ancestorChain []Node, after bool) (TraversalAction, error) {
		if reflect.TypeOf(node) == searchedType && (handle == nil || handle(node.(T))) {
			found = append(found, node.(T))
		}
		return ContinueTraversal, nil
	}, nil)

	return found
}

// FindNode walks over an AST node and returns the first node of type $typ for which $handle returns true.
// If $handle is nil the first node of type $typ is returned.
func FindNode[T Node](root Node, typ T, handle func(n T) bool) T {
	searchedType := reflect.TypeOf(typ)
	var found T

	Walk(root, func(node, parent, scopeNode Node, ancestorChain []Node, after bool) (TraversalAction, error) {
		if reflect.TypeOf(node) == searchedType && (handle == nil || handle(node.(T))) {
			found = node.(T)
			return StopTraversal, nil
		}
		return ContinueTraversal, nil
	}, nil)

	return found
}
