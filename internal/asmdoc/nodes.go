package asmdoc

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/inlineasm/asmscope/internal/asmast"
)

const (
	BLOCK_KIND                  = "block"
	INSTRUCTION_KIND            = "instruction"
	LITERAL_KIND                = "literal"
	IDENTIFIER_KIND             = "identifier"
	LABEL_KIND                  = "label"
	ASSIGNMENT_KIND             = "assignment"
	FUNCTIONAL_ASSIGNMENT_KIND  = "functionalAssignment"
	VARIABLE_DECLARATION_KIND   = "variableDeclaration"
	FUNCTION_DEFINITION_KIND    = "functionDefinition"
	FUNCTION_CALL_KIND          = "functionCall"
	FUNCTIONAL_INSTRUCTION_KIND = "functionalInstruction"
)

// rawNode has the fields of all node kinds, Value is either a string (literal) or a node.
type rawNode struct {
	Kind string          `json:"kind"`
	Span asmast.NodeSpan `json:"span"`

	Statements  []json.RawMessage `json:"statements,omitempty"`
	Opcode      string            `json:"opcode,omitempty"`
	LiteralKind string            `json:"literalKind,omitempty"`
	Name        string            `json:"name,omitempty"`
	StackInfo   []string          `json:"stackInfo,omitempty"`
	Variable    string            `json:"variable,omitempty"`
	Value       json.RawMessage   `json:"value,omitempty"`
	Arguments   json.RawMessage   `json:"arguments,omitempty"`
	Returns     []string          `json:"returns,omitempty"`
	Body        json.RawMessage   `json:"body,omitempty"`
	Function    string            `json:"function,omitempty"`
}

func decodeNode(data json.RawMessage) (asmast.Statement, error) {
	var raw rawNode
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	base := asmast.NodeBase{Span: raw.Span}

	switch raw.Kind {
	case BLOCK_KIND:
		stmts, err := decodeNodes(raw.Statements)
		if err != nil {
			return nil, err
		}
		return &asmast.Block{NodeBase: base, Statements: stmts}, nil
	case INSTRUCTION_KIND:
		return &asmast.Instruction{NodeBase: base, Opcode: raw.Opcode}, nil
	case LITERAL_KIND:
		var value string
		if err := json.Unmarshal(raw.Value, &value); err != nil {
			return nil, fmt.Errorf("invalid literal value: %w", err)
		}
		return &asmast.Literal{NodeBase: base, Kind: asmast.LiteralKind(raw.LiteralKind), Value: value}, nil
	case IDENTIFIER_KIND:
		return &asmast.Identifier{NodeBase: base, Name: raw.Name}, nil
	case LABEL_KIND:
		return &asmast.Label{NodeBase: base, Name: raw.Name, StackInfo: raw.StackInfo}, nil
	case ASSIGNMENT_KIND:
		return &asmast.Assignment{
			NodeBase:     base,
			VariableName: &asmast.Identifier{NodeBase: base, Name: raw.Variable},
		}, nil
	case FUNCTIONAL_ASSIGNMENT_KIND:
		value, err := decodeNode(raw.Value)
		if err != nil {
			return nil, err
		}
		return &asmast.FunctionalAssignment{
			NodeBase:     base,
			VariableName: &asmast.Identifier{NodeBase: base, Name: raw.Variable},
			Value:        value,
		}, nil
	case VARIABLE_DECLARATION_KIND:
		value, err := decodeNode(raw.Value)
		if err != nil {
			return nil, err
		}
		return &asmast.VariableDeclaration{NodeBase: base, Name: raw.Name, Value: value}, nil
	case FUNCTION_DEFINITION_KIND:
		var args []string
		if len(raw.Arguments) != 0 {
			if err := json.Unmarshal(raw.Arguments, &args); err != nil {
				return nil, fmt.Errorf("invalid function arguments: %w", err)
			}
		}
		body, err := decodeNode(raw.Body)
		if err != nil {
			return nil, err
		}
		bodyBlock, ok := body.(*asmast.Block)
		if !ok {
			return nil, fmt.Errorf("the body of function %s is not a block", raw.Name)
		}
		return &asmast.FunctionDefinition{
			NodeBase:  base,
			Name:      raw.Name,
			Arguments: args,
			Returns:   raw.Returns,
			Body:      bodyBlock,
		}, nil
	case FUNCTION_CALL_KIND:
		args, err := decodeArguments(raw.Arguments)
		if err != nil {
			return nil, err
		}
		return &asmast.FunctionCall{
			NodeBase:     base,
			FunctionName: &asmast.Identifier{NodeBase: base, Name: raw.Function},
			Arguments:    args,
		}, nil
	case FUNCTIONAL_INSTRUCTION_KIND:
		args, err := decodeArguments(raw.Arguments)
		if err != nil {
			return nil, err
		}
		return &asmast.FunctionalInstruction{
			NodeBase:    base,
			Instruction: &asmast.Instruction{NodeBase: base, Opcode: raw.Opcode},
			Arguments:   args,
		}, nil
	default:
		return nil, fmt.Errorf("unknown node kind %q", raw.Kind)
	}
}

func decodeArguments(data json.RawMessage) ([]asmast.Statement, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return decodeNodes(items)
}

func decodeNodes(items []json.RawMessage) ([]asmast.Statement, error) {
	var stmts []asmast.Statement
	for _, item := range items {
		stmt, err := decodeNode(item)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func encodeNode(node asmast.Statement) (json.RawMessage, error) {
	raw := rawNode{Span: node.Base().Span}

	switch n := node.(type) {
	case *asmast.Block:
		raw.Kind = BLOCK_KIND
		for _, stmt := range n.Statements {
			item, err := encodeNode(stmt)
			if err != nil {
				return nil, err
			}
			raw.Statements = append(raw.Statements, item)
		}
	case *asmast.Instruction:
		raw.Kind = INSTRUCTION_KIND
		raw.Opcode = n.Opcode
	case *asmast.Literal:
		raw.Kind = LITERAL_KIND
		raw.LiteralKind = string(n.Kind)
		value, err := json.Marshal(n.Value)
		if err != nil {
			return nil, err
		}
		raw.Value = value
	case *asmast.Identifier:
		raw.Kind = IDENTIFIER_KIND
		raw.Name = n.Name
	case *asmast.Label:
		raw.Kind = LABEL_KIND
		raw.Name = n.Name
		raw.StackInfo = n.StackInfo
	case *asmast.Assignment:
		raw.Kind = ASSIGNMENT_KIND
		raw.Variable = n.VariableName.Name
	case *asmast.FunctionalAssignment:
		raw.Kind = FUNCTIONAL_ASSIGNMENT_KIND
		raw.Variable = n.VariableName.Name
		value, err := encodeNode(n.Value)
		if err != nil {
			return nil, err
		}
		raw.Value = value
	case *asmast.VariableDeclaration:
		raw.Kind = VARIABLE_DECLARATION_KIND
		raw.Name = n.Name
		value, err := encodeNode(n.Value)
		if err != nil {
			return nil, err
		}
		raw.Value = value
	case *asmast.FunctionDefinition:
		raw.Kind = FUNCTION_DEFINITION_KIND
		raw.Name = n.Name
		raw.Returns = n.Returns
		if len(n.Arguments) != 0 {
			args, err := json.Marshal(n.Arguments)
			if err != nil {
				return nil, err
			}
			raw.Arguments = args
		}
		body, err := encodeNode(n.Body)
		if err != nil {
			return nil, err
		}
		raw.Body = body
	case *asmast.FunctionCall:
		raw.Kind = FUNCTION_CALL_KIND
		raw.Function = n.FunctionName.Name
		args, err := encodeArguments(n.Arguments)
		if err != nil {
			return nil, err
		}
		raw.Arguments = args
	case *asmast.FunctionalInstruction:
		raw.Kind = FUNCTIONAL_INSTRUCTION_KIND
		raw.Opcode = n.Instruction.Opcode
		args, err := encodeArguments(n.Arguments)
		if err != nil {
			return nil, err
		}
		raw.Arguments = args
	default:
		return nil, fmt.Errorf("cannot encode node of type %T", n)
	}

	return json.Marshal(raw)
}

func encodeArguments(args []asmast.Statement) (json.RawMessage, error) {
	if len(args) == 0 {
		return nil, nil
	}
	var items []json.RawMessage
	for _, arg := range args {
		item, err := encodeNode(arg)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return json.Marshal(items)
}
