package asmast

import (
	"github.com/inlineasm/asmscope/internal/sourcecode"
)

// A Node represents an immutable AST node, all node types embed NodeBase.
type Node interface {
	Base() NodeBase
	BasePtr() *NodeBase
}

// A Statement is any node that can appear in a block or as an argument of a call.
// The set of statements is closed: only types of this package implement it.
type Statement interface {
	Node
	statement()
}

type NodeSpan = sourcecode.NodeSpan

// NodeBase implements Node interface
type NodeBase struct {
	Span NodeSpan `json:"span"`
}

func (base NodeBase) Base() NodeBase {
	return base
}

func (base *NodeBase) BasePtr() *NodeBase {
	return base
}

type LiteralKind string

const (
	NumberLiteral LiteralKind = "number"
	StringLiteral LiteralKind = "string"
	BoolLiteral   LiteralKind = "bool"
)

// Block is a sequence of statements between braces, every block gets its own scope
// except the body of a function which shares the scope of the parameters.
type Block struct {
	NodeBase
	Statements []Statement
}

// Instruction is a bare opcode (e.g. `mload`).
type Instruction struct {
	NodeBase
	Opcode string
}

type Literal struct {
	NodeBase
	Kind  LiteralKind
	Value string
}

type Identifier struct {
	NodeBase
	Name string
}

// Label is a jump label, StackInfo holds the optional stack annotation: `name[3]:` or `name[a, b]:`.
type Label struct {
	NodeBase
	Name      string
	StackInfo []string
}

// Assignment is a stack assignment `=: x`.
type Assignment struct {
	NodeBase
	VariableName *Identifier
}

// FunctionalAssignment is `x := value`.
type FunctionalAssignment struct {
	NodeBase
	VariableName *Identifier
	Value        Statement
}

// VariableDeclaration is `let x := value`.
type VariableDeclaration struct {
	NodeBase
	Name  string
	Value Statement
}

type FunctionDefinition struct {
	NodeBase
	Name      string
	Arguments []string
	Returns   []string
	Body      *Block
}

type FunctionCall struct {
	NodeBase
	FunctionName *Identifier
	Arguments    []Statement
}

// FunctionalInstruction is an instruction written in functional style: `add(1, mload(0))`.
type FunctionalInstruction struct {
	NodeBase
	Instruction *Instruction
	Arguments   []Statement
}

func (*Block) statement()                 {}
func (*Instruction) statement()           {}
func (*Literal) statement()               {}
func (*Identifier) statement()            {}
func (*Label) statement()                 {}
func (*Assignment) statement()            {}
func (*FunctionalAssignment) statement()  {}
func (*VariableDeclaration) statement()   {}
func (*FunctionDefinition) statement()    {}
func (*FunctionCall) statement()          {}
func (*FunctionalInstruction) statement() {}

var _ = []Statement{
	(*Block)(nil), (*Instruction)(nil), (*Literal)(nil), (*Identifier)(nil), (*Label)(nil), (*Assignment)(nil),
	(*FunctionalAssignment)(nil), (*VariableDeclaration)(nil), (*FunctionDefinition)(nil), (*FunctionCall)(nil),
	(*FunctionalInstruction)(nil),
}
