package asmdesugar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inlineasm/asmscope/internal/asmast"
	"github.com/rs/zerolog"
)

const (
	// GENERATED_LABEL_PREFIX starts the names of all the labels created by the desugaring,
	// source labels are not allowed to use it.
	GENERATED_LABEL_PREFIX = "$"

	POP_OPCODE  = "pop"
	JUMP_OPCODE = "jump"
	SWAP_OPCODE = "swap"

	MAX_SWAP_DEPTH = 16
)

// A DesugaringError is raised when a construct cannot be expressed with labels and jumps.
type DesugaringError struct {
	Message string
	Span    asmast.NodeSpan
}

func (err *DesugaringError) Error() string {
	return fmt.Sprintf("desugaring error at %v: %s", err.Span, err.Message)
}

type Config struct {
	Logger *zerolog.Logger //optional
}

// Desugar returns a new block where function definitions and function calls are replaced by labels,
// jumps and stack instructions. The input is not modified, leaves of the input AST are shared.
func Desugar(block *asmast.Block, config Config) (result *asmast.Block, finalErr error) {
	defer func() {
		if v := recover(); v != nil {
			desugaringErr, ok := v.(*DesugaringError)
			if !ok {
				panic(v)
			}
			result = nil
			finalErr = desugaringErr
		}
	}()

	reserved := asmast.FindNode(block, (*asmast.Label)(nil), func(l *asmast.Label) bool {
		return strings.HasPrefix(l.Name, GENERATED_LABEL_PREFIX)
	})
	if reserved != nil {
		return nil, &DesugaringError{
			Message: fmt.Sprintf("label name %s is reserved, names starting with %s are generated", reserved.Name, GENERATED_LABEL_PREFIX),
			Span:    reserved.Span,
		}
	}

	d := &desugarer{logger: zerolog.Nop()}
	if config.Logger != nil {
		d.logger = *config.Logger
	}

	return d.desugarBlock(block), nil
}

// A replacement is the result of desugaring a statement: one statement or a pair of
// statements that are spliced into the enclosing block.
type replacement struct {
	node   asmast.Statement
	second asmast.Statement //optional
}

func single(node asmast.Statement) replacement {
	return replacement{node: node}
}

func (r replacement) isPair() bool {
	return r.second != nil
}

func (r replacement) isBlock() bool {
	if r.isPair() {
		panic(&DesugaringError{Message: "expected a single statement but got a pair", Span: r.node.Base().Span})
	}
	_, ok := r.node.(*asmast.Block)
	return ok
}

func (r replacement) statement() asmast.Statement {
	if r.isPair() {
		panic(&DesugaringError{Message: "cannot convert a pair of statements to a single one", Span: r.node.Base().Span})
	}
	return r.node
}

type desugarer struct {
	logger zerolog.Logger
}

func (d *desugarer) desugar(node asmast.Statement) replacement {
	switch n := node.(type) {
	case *asmast.Block:
		return single(d.desugarBlock(n))
	case *asmast.Instruction, *asmast.Literal, *asmast.Identifier, *asmast.Label, *asmast.Assignment:
		return single(n)
	case *asmast.FunctionalInstruction:
		return d.desugarFunctionalInstruction(n)
	case *asmast.FunctionalAssignment:
		value := d.desugar(n.Value)
		if value.isBlock() {
			return replacement{
				node:   value.node,
				second: &asmast.Assignment{NodeBase: n.NodeBase, VariableName: n.VariableName},
			}
		}
		return single(&asmast.FunctionalAssignment{NodeBase: n.NodeBase, VariableName: n.VariableName, Value: value.node})
	case *asmast.VariableDeclaration:
		if n.Value == nil {
			return single(n)
		}
		value := d.desugar(n.Value)
		if value.isBlock() {
			//the value is left on the stack by the block, the label introduces the variable.
			return replacement{
				node: value.node,
				second: &asmast.Label{
					NodeBase:  n.NodeBase,
					Name:      GENERATED_LABEL_PREFIX + "introduce_" + n.Name,
					StackInfo: []string{n.Name},
				},
			}
		}
		return single(&asmast.VariableDeclaration{NodeBase: n.NodeBase, Name: n.Name, Value: value.node})
	case *asmast.FunctionDefinition:
		return d.desugarFunctionDefinition(n)
	case *asmast.FunctionCall:
		return single(d.desugarFunctionCall(n))
	default:
		panic(&DesugaringError{Message: fmt.Sprintf("unexpected node type %T", n)})
	}
}

func (d *desugarer) desugarBlock(block *asmast.Block) *asmast.Block {
	result := &asmast.Block{NodeBase: block.NodeBase}

	for _, stmt := range block.Statements {
		r := d.desugar(stmt)
		result.Statements = append(result.Statements, r.node)
		if r.isPair() {
			result.Statements = append(result.Statements, r.second)
		}
	}
	return result
}

// desugarFunctionalInstruction keeps the functional form unless an argument became a block,
// in which case the arguments are pushed from right to left before the bare instruction.
func (d *desugarer) desugarFunctionalInstruction(instr *asmast.FunctionalInstruction) replacement {
	explode := false
	args := make([]replacement, 0, len(instr.Arguments))

	for _, arg := range instr.Arguments {
		r := d.desugar(arg)
		if r.isBlock() {
			explode = true
		}
		args = append(args, r)
	}

	if explode {
		block := &asmast.Block{NodeBase: instr.NodeBase}
		for i := len(args) - 1; i >= 0; i-- {
			block.Statements = append(block.Statements, args[i].statement())
		}
		block.Statements = append(block.Statements, instr.Instruction)
		return single(block)
	}

	result := &asmast.FunctionalInstruction{NodeBase: instr.NodeBase, Instruction: instr.Instruction}
	for _, arg := range args {
		result.Arguments = append(result.Arguments, arg.statement())
	}
	return single(result)
}

// desugarFunctionDefinition replaces a definition by a label named after the function and a block
// that introduces the arguments, declares the return variables, runs the body, reorders the stack
// and jumps back to the return address.
func (d *desugarer) desugarFunctionDefinition(def *asmast.FunctionDefinition) replacement {
	base := def.NodeBase
	body := d.desugarBlock(def.Body)

	env := &asmast.Block{NodeBase: base}
	env.Statements = append(env.Statements, &asmast.Label{
		NodeBase:  base,
		Name:      GENERATED_LABEL_PREFIX + def.Name + "_start",
		StackInfo: def.Arguments,
	})

	for _, ret := range def.Returns {
		env.Statements = append(env.Statements, &asmast.VariableDeclaration{
			NodeBase: base,
			Name:     ret,
			Value:    &asmast.Literal{NodeBase: base, Kind: asmast.NumberLiteral, Value: "0"},
		})
	}
	env.Statements = append(env.Statements, body)

	for _, opcode := range stackReorganization(len(def.Arguments), len(def.Returns), base.Span) {
		env.Statements = append(env.Statements, &asmast.Instruction{NodeBase: base, Opcode: opcode})
	}
	env.Statements = append(env.Statements, &asmast.Instruction{NodeBase: base, Opcode: JUMP_OPCODE})

	d.logger.Debug().
		Str("function", def.Name).
		Int("arguments", len(def.Arguments)).
		Int("returns", len(def.Returns)).
		Msg("function definition desugared")

	return replacement{
		node:   &asmast.Label{NodeBase: base, Name: def.Name},
		second: env,
	}
}

// stackReorganization returns the opcodes turning the stack layout at the end of a function body
// (return address, arguments, return values) into (return values, return address).
func stackReorganization(args, rets int, span asmast.NodeSpan) []string {
	//target position of each stack slot, -1 means the slot is popped.
	targets := make([]int, 1+args+rets)
	for i := range targets {
		targets[i] = -1
	}
	targets[0] = rets
	for i := 0; i < rets; i++ {
		targets[1+args+i] = i
	}

	var opcodes []string

	for len(targets) > 0 && targets[len(targets)-1] != len(targets)-1 {
		last := len(targets) - 1
		target := targets[last]

		if target < 0 {
			opcodes = append(opcodes, POP_OPCODE)
			targets = targets[:last]
			continue
		}

		depth := len(targets) - target - 1
		if depth < 1 || depth > MAX_SWAP_DEPTH {
			panic(&DesugaringError{Message: "invalid swap, the function has too many arguments or return values", Span: span})
		}
		opcodes = append(opcodes, SWAP_OPCODE+strconv.Itoa(depth))
		targets[target], targets[last] = targets[last], targets[target]
	}

	for i, target := range targets {
		if target != i {
			panic(&DesugaringError{Message: "invalid stack reorganization", Span: span})
		}
	}
	return opcodes
}

// desugarFunctionCall pushes the return label and the arguments, jumps to the function
// and defines the return label right after the jump.
func (d *desugarer) desugarFunctionCall(call *asmast.FunctionCall) *asmast.Block {
	base := call.NodeBase
	returnLabel := GENERATED_LABEL_PREFIX + "funcall_" + call.FunctionName.Name + "_return"

	block := &asmast.Block{NodeBase: base}
	block.Statements = append(block.Statements, &asmast.Identifier{NodeBase: base, Name: returnLabel})

	for i := len(call.Arguments) - 1; i >= 0; i-- {
		block.Statements = append(block.Statements, d.desugar(call.Arguments[i]).statement())
	}

	block.Statements = append(block.Statements,
		&asmast.FunctionalInstruction{
			NodeBase:    base,
			Instruction: &asmast.Instruction{NodeBase: base, Opcode: JUMP_OPCODE},
			Arguments:   []asmast.Statement{call.FunctionName},
		},
		&asmast.Label{NodeBase: base, Name: returnLabel},
	)
	return block
}
