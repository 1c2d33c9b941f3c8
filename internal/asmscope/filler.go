package asmscope

import (
	"fmt"
	"strconv"

	"github.com/inlineasm/asmscope/internal/asmast"
	"github.com/inlineasm/asmscope/internal/sourcecode"
	"github.com/inlineasm/asmscope/internal/utils"
	"github.com/rs/zerolog"
)

type FillerConfig struct {
	Chunk  *sourcecode.Chunk //used to compute error locations, optional
	Logger *zerolog.Logger   //optional
}

// A Filler registers the identifiers declared in blocks into the scopes of a Tree.
// It never stops at the first error: every declaration error is appended to the error list.
// A Filler is not safe for concurrent use, and neither are its tree and error list.
type Filler struct {
	tree   *Tree
	errors *ErrorList
	chunk  *sourcecode.Chunk
	logger zerolog.Logger
}

func NewFiller(tree *Tree, errors *ErrorList, config FillerConfig) *Filler {
	chunk := config.Chunk
	if chunk == nil {
		chunk = sourcecode.NewChunk("", "")
	}

	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	return &Filler{
		tree:   tree,
		errors: errors,
		chunk:  chunk,
		logger: logger,
	}
}

// Fill visits a top-level block, its scope is created as a child of the root scope.
// The result is true if no error was reported.
func (f *Filler) Fill(block *asmast.Block) bool {
	return f.visitBlock(block, f.tree.Root())
}

func (f *Filler) visit(node asmast.Statement, current *Scope) bool {
	switch n := node.(type) {
	case *asmast.Block:
		return f.visitBlock(n, current)
	case *asmast.VariableDeclaration:
		return f.visitVariableDeclaration(n, current)
	case *asmast.Label:
		return f.visitLabel(n, current)
	case *asmast.FunctionDefinition:
		return f.visitFunctionDefinition(n, current)
	case *asmast.FunctionCall:
		return f.visitArgumentsInReverse(n.Arguments, current)
	case *asmast.FunctionalInstruction:
		success := f.visitArgumentsInReverse(n.Arguments, current)
		if !f.visit(n.Instruction, current) {
			success = false
		}
		return success
	case *asmast.FunctionalAssignment:
		//the variable is resolved by a later pass.
		return f.visit(n.Value, current)
	case *asmast.Instruction, *asmast.Literal, *asmast.Identifier, *asmast.Assignment:
		return true
	default:
		panic(newConsistencyError(fmt.Sprintf("unexpected node type %T", n)))
	}
}

func (f *Filler) visitBlock(block *asmast.Block, current *Scope) bool {
	scope := f.tree.GetOrCreate(block, current)

	f.logger.Debug().
		Int("scope", scope.Index()).
		Int("superScope", current.Index()).
		Bool("function", scope.IsFunctionScope()).
		Msg("enter scope")

	success := true
	for _, stmt := range block.Statements {
		if !f.visit(stmt, scope) {
			success = false
		}
	}

	if e := f.logger.Debug(); e.Enabled() {
		e.Int("scope", scope.Index()).Strs("names", scope.Names()).Msg("leave scope")
	}
	return success
}

// visitArgumentsInReverse visits the arguments from right to left, the evaluation order of the stack machine.
func (f *Filler) visitArgumentsInReverse(args []asmast.Statement, current *Scope) bool {
	success := true
	for _, arg := range utils.ReversedSlice(args) {
		if !f.visit(arg, current) {
			success = false
		}
	}
	return success
}

func (f *Filler) visitVariableDeclaration(decl *asmast.VariableDeclaration, current *Scope) bool {
	success := true
	if decl.Value != nil && !f.visit(decl.Value, current) {
		success = false
	}
	if !f.registerVariable(decl.Name, decl, current) {
		success = false
	}
	return success
}

func (f *Filler) visitLabel(label *asmast.Label, current *Scope) bool {
	if !current.RegisterLabel(label.Name, UnassignedLabelID) {
		f.reportError(label, label.Name, fmtLabelNameAlreadyTaken(label.Name))
		return false
	}

	if len(label.StackInfo) == 0 {
		return true
	}

	id, _ := current.Identifier(label.Name)
	scopeLabel := id.(*Label)

	if len(label.StackInfo) == 1 {
		adjustment, ok := parseStackAdjustment(label.StackInfo[0])
		if ok {
			scopeLabel.StackAdjustment = adjustment
			scopeLabel.HasStackAdjustment = true
			scopeLabel.ResetStackHeight = false
			return true
		}
		//not an integer: the token is a variable name.
	}

	scopeLabel.ResetStackHeight = true

	success := true
	for _, item := range label.StackInfo {
		if item == "" {
			continue
		}
		if !f.registerVariable(item, label, current) {
			success = false
		}
	}
	return success
}

// parseStackAdjustment parses a signed 32-bit decimal integer, a leading sign is allowed.
func parseStackAdjustment(s string) (int, bool) {
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}

func (f *Filler) visitFunctionDefinition(def *asmast.FunctionDefinition, current *Scope) bool {
	success := true

	if !current.RegisterFunction(def.Name, len(def.Arguments), len(def.Returns)) {
		f.reportError(def, def.Name, fmtFunctionNameAlreadyTaken(def.Name))
		success = false
	}

	body := f.tree.GetOrCreate(def.Body, current)
	body.isFunctionScope = true

	for _, name := range def.Arguments {
		if !f.registerVariable(name, def, body) {
			success = false
		}
	}
	for _, name := range def.Returns {
		if !f.registerVariable(name, def, body) {
			success = false
		}
	}

	//the body block gets the scope created above because its parent is the same.
	if !f.visitBlock(def.Body, current) {
		success = false
	}
	return success
}

func (f *Filler) registerVariable(name string, node asmast.Node, scope *Scope) bool {
	if !scope.RegisterVariable(name) {
		f.reportError(node, name, fmtVariableNameAlreadyTaken(name))
		return false
	}
	return true
}

func (f *Filler) reportError(node asmast.Node, name, msg string) {
	location := f.chunk.GetSourcePosition(node.Base().Span)
	err := NewDeclarationError(name, msg, location)

	f.logger.Debug().
		Str("name", name).
		Str("location", location.String()).
		Msg(msg)

	f.errors.Append(err)
}
