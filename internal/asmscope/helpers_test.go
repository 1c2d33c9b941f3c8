package asmscope

import (
	"github.com/inlineasm/asmscope/internal/asmast"
)

func block(stmts ...asmast.Statement) *asmast.Block {
	return &asmast.Block{Statements: stmts}
}

func let(name string, value asmast.Statement) *asmast.VariableDeclaration {
	return &asmast.VariableDeclaration{Name: name, Value: value}
}

func num(value string) *asmast.Literal {
	return &asmast.Literal{Kind: asmast.NumberLiteral, Value: value}
}

func ident(name string) *asmast.Identifier {
	return &asmast.Identifier{Name: name}
}

func label(name string, stackInfo ...string) *asmast.Label {
	return &asmast.Label{Name: name, StackInfo: stackInfo}
}

func fn(name string, args, rets []string, body ...asmast.Statement) *asmast.FunctionDefinition {
	return &asmast.FunctionDefinition{
		Name:      name,
		Arguments: args,
		Returns:   rets,
		Body:      block(body...),
	}
}

func call(name string, args ...asmast.Statement) *asmast.FunctionCall {
	return &asmast.FunctionCall{FunctionName: ident(name), Arguments: args}
}

func instr(opcode string, args ...asmast.Statement) *asmast.FunctionalInstruction {
	return &asmast.FunctionalInstruction{
		Instruction: &asmast.Instruction{Opcode: opcode},
		Arguments:   args,
	}
}

func assign(name string, value asmast.Statement) *asmast.FunctionalAssignment {
	return &asmast.FunctionalAssignment{VariableName: ident(name), Value: value}
}

func withSpan[N asmast.Node](node N, start, end int32) N {
	node.BasePtr().Span = asmast.NodeSpan{Start: start, End: end}
	return node
}

func errorNames(errors *ErrorList) []string {
	var names []string
	for _, err := range errors.Errors() {
		names = append(names, err.Name)
	}
	return names
}

func fill(b *asmast.Block) (*Tree, *ErrorList, bool) {
	tree := NewTree()
	errors := &ErrorList{}
	ok := NewFiller(tree, errors, FillerConfig{}).Fill(b)
	return tree, errors, ok
}
