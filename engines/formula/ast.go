package formula

import (
	"fmt"
	"strings"
)

// Node is an immutable expression tree node.
type Node interface {
	fmt.Stringer
}

// Literal is a constant value: a decimal, string or boolean.
type Literal struct {
	Value any
}

func (n *Literal) String() string {
	if s, ok := n.Value.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", n.Value)
}

// VariableRef references a dotted context variable path.
type VariableRef struct {
	Path string
}

func (n *VariableRef) String() string {
	return n.Path
}

// BinaryOp applies an infix operator to two sub-expressions.
type BinaryOp struct {
	Op  string
	LHS Node
	RHS Node
}

func (n *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", n.LHS, n.Op, n.RHS)
}

// UnaryMinus negates a sub-expression.
type UnaryMinus struct {
	Expr Node
}

func (n *UnaryMinus) String() string {
	return fmt.Sprintf("(-%s)", n.Expr)
}

// FunctionCall invokes a named function with zero or more arguments.
type FunctionCall struct {
	Name string
	Args []Node
}

func (n *FunctionCall) String() string {
	args := make([]string, len(n.Args))
	for i, arg := range n.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(args, ", "))
}
