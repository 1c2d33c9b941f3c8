package asmscope

import (
	"fmt"

	"github.com/inlineasm/asmscope/internal/sourcecode"
	"github.com/inlineasm/asmscope/internal/utils"
)

const (
	DECLARATION_ERROR_KIND = "DeclarationError"
)

var (
	_ sourcecode.LocatedError = (*DeclarationError)(nil)
)

// A DeclarationError reports a name declared twice in the same scope.
type DeclarationError struct {
	Kind           string
	Name           string
	Message        string
	LocatedMessage string
	Location       sourcecode.PositionRange
}

func NewDeclarationError(name, msg string, location sourcecode.PositionRange) *DeclarationError {
	return &DeclarationError{
		Kind:           DECLARATION_ERROR_KIND,
		Name:           name,
		Message:        msg,
		LocatedMessage: location.String() + " " + DECLARATION_ERROR_KIND + ": " + msg,
		Location:       location,
	}
}

func (err DeclarationError) Error() string {
	return err.LocatedMessage
}

func (err DeclarationError) MessageWithoutLocation() string {
	return err.Message
}

func (err DeclarationError) LocationRange() sourcecode.PositionRange {
	return err.Location
}

func fmtVariableNameAlreadyTaken(name string) string {
	return fmt.Sprintf("Variable name %s already taken in this scope.", name)
}

func fmtLabelNameAlreadyTaken(name string) string {
	return fmt.Sprintf("Label name %s already taken in this scope.", name)
}

func fmtFunctionNameAlreadyTaken(name string) string {
	return fmt.Sprintf("Function name %s already taken in this scope.", name)
}

// An ErrorList collects the declaration errors of one or more passes, errors are only appended.
type ErrorList struct {
	errors []*DeclarationError
}

func (l *ErrorList) Append(err *DeclarationError) {
	l.errors = append(l.errors, err)
}

// Errors returns the errors in the order they were reported, the result should not be modified.
func (l *ErrorList) Errors() []*DeclarationError {
	return l.errors
}

func (l *ErrorList) Len() int {
	return len(l.errors)
}

func (l *ErrorList) Empty() bool {
	return len(l.errors) == 0
}

// Combined returns nil if the list is empty, otherwise an error with one line per declaration error.
func (l *ErrorList) Combined() error {
	if l.Empty() {
		return nil
	}
	return utils.CombineErrors(utils.MapSlice(l.errors, func(err *DeclarationError) error { return err })...)
}

// A ConsistencyError is raised (panic) when the traversal breaks the invariants of the scope tree.
// It is a bug in the caller or in the filler, never a problem of the analyzed code.
type ConsistencyError struct {
	Message string
}

func newConsistencyError(msg string) *ConsistencyError {
	return &ConsistencyError{Message: msg}
}

func (err *ConsistencyError) Error() string {
	return "scope tree consistency violation: " + err.Message
}
