package syntax

import (
	"fmt"
	"strings"
)

type Category uint8

const (
	CategoryInvalid Category = iota

	// declarations and statements
	Program
	Block
	ClassDecl
	MethodDecl
	VarDecl
	Assign
	If
	While
	Labeled
	Break
	Continue
	Return
	Log
	ExprStmt

	// expressions
	Identifier
	StringLit
	BoolLit
	NumberLit
	NullLit
	This
	Binary
	Unary
	Call
	Field
	New
)

var categoryNames = [...]string{
	CategoryInvalid: "invalid",
	Program:         "program",
	Block:           "block",
	ClassDecl:       "class",
	MethodDecl:      "method",
	VarDecl:         "var",
	Assign:          "assign",
	If:              "if",
	While:           "while",
	Labeled:         "labeled",
	Break:           "break",
	Continue:        "continue",
	Return:          "return",
	Log:             "log",
	ExprStmt:        "expr-stmt",
	Identifier:      "ident",
	StringLit:       "string",
	BoolLit:         "bool",
	NumberLit:       "number",
	NullLit:         "null",
	This:            "this",
	Binary:          "binary",
	Unary:           "unary",
	Call:            "call",
	Field:           "field",
	New:             "new",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", c)
}

type NodeID int

// Tree is the read-only view the compiler consumes.
//
// Child layout per category:
//
//	Program     declarations and statements
//	Block       statements
//	ClassDecl   lexeme = class name; method declarations
//	MethodDecl  lexeme = method name; parameter identifiers, then the body block
//	VarDecl     lexeme = variable name; optional initializer
//	Assign      target (Identifier or Field), value
//	If          condition, then block, optional else (Block or If)
//	While       condition, body block
//	Labeled     lexeme = label; the labeled While
//	Break       lexeme = optional label
//	Continue    lexeme = optional label
//	Return      optional value
//	Log         value
//	ExprStmt    expression
//	Binary      lexeme = operator; left, right
//	Unary       lexeme = operator; operand
//	Call        callee (Field), arguments
//	Field       lexeme = field name; receiver
//	New         lexeme = class name; arguments
type Tree interface {
	Root() NodeID
	Category(NodeID) Category
	Children(NodeID) []NodeID
	Lexeme(NodeID) string
	Pos(NodeID) Pos
}

type node struct {
	category Category
	lexeme   string
	pos      Pos
	children []NodeID
}

// AST is an arena of nodes addressed by NodeID.
type AST struct {
	nodes []node
	root  NodeID
}

var _ Tree = new(AST)

func NewAST() *AST {
	return &AST{
		root: -1,
	}
}

func (a *AST) Add(category Category, lexeme string, pos Pos, children ...NodeID) NodeID {
	a.nodes = append(a.nodes, node{
		category: category,
		lexeme:   lexeme,
		pos:      pos,
		children: children,
	})
	return NodeID(len(a.nodes) - 1)
}

func (a *AST) SetRoot(id NodeID) {
	a.root = id
}

func (a *AST) Root() NodeID {
	return a.root
}

func (a *AST) Len() int {
	return len(a.nodes)
}

func (a *AST) node(id NodeID) *node {
	if id < 0 || int(id) >= len(a.nodes) {
		panic(fmt.Errorf("node id out of range: %d", id))
	}
	return &a.nodes[id]
}

func (a *AST) Category(id NodeID) Category {
	return a.node(id).category
}

func (a *AST) Children(id NodeID) []NodeID {
	return a.node(id).children
}

func (a *AST) Lexeme(id NodeID) string {
	return a.node(id).lexeme
}

func (a *AST) Pos(id NodeID) Pos {
	return a.node(id).pos
}

// Dump renders a tree as nested s-expressions.
func Dump(tree Tree, id NodeID) string {
	var sb strings.Builder
	dump(&sb, tree, id)
	return sb.String()
}

func dump(sb *strings.Builder, tree Tree, id NodeID) {
	sb.WriteString("(")
	sb.WriteString(tree.Category(id).String())
	if lexeme := tree.Lexeme(id); lexeme != "" {
		fmt.Fprintf(sb, " %q", lexeme)
	}
	for _, child := range tree.Children(id) {
		sb.WriteString(" ")
		dump(sb, tree, child)
	}
	sb.WriteString(")")
}
