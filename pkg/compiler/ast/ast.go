package ast

import (
	"strconv"

	"github.com/agenthands/ntac/pkg/compiler/lexer"
	"github.com/agenthands/ntac/pkg/compiler/symbols"
	"github.com/agenthands/ntac/pkg/tac"
)

// Node represents any node in the Abstract Syntax Tree.
type Node interface {
	Line() int
	String() string
}

// Expr represents an expression that yields a value. The set of
// implementations is closed to this package.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a standalone unit of execution.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root node. Body is nil for an empty block.
type Program struct {
	Body Stmt
}

func (p *Program) String() string {
	if p.Body == nil {
		return ""
	}
	return p.Body.String()
}

// Num is an integer literal.
type Num struct {
	Token lexer.Token
}

func (n *Num) Line() int      { return n.Token.Line }
func (n *Num) String() string { return strconv.FormatInt(n.Token.Value, 10) }
func (n *Num) exprNode()      {}

// Bool is a true or false literal.
type Bool struct {
	Token lexer.Token
}

func (b *Bool) Line() int      { return b.Token.Line }
func (b *Bool) String() string { return b.Token.Word.Lexeme }
func (b *Bool) exprNode()      {}

// Identifier is a variable reference. Symbol is the binding found in scope
// when the reference was parsed, or nil if the name was undeclared.
type Identifier struct {
	Token  lexer.Token
	Symbol *symbols.Symbol
}

func (i *Identifier) Line() int      { return i.Token.Line }
func (i *Identifier) String() string { return i.Token.Word.Lexeme }
func (i *Identifier) Name() string   { return i.Token.Word.Lexeme }
func (i *Identifier) exprNode()      {}

// BinaryOp is arithmetic: + - * /.
type BinaryOp struct {
	Token       lexer.Token
	Left, Right Expr
}

func (b *BinaryOp) Line() int        { return b.Token.Line }
func (b *BinaryOp) Operator() string { return string(rune(b.Token.Kind)) }
func (b *BinaryOp) String() string {
	return "(" + b.Left.String() + " " + b.Operator() + " " + b.Right.String() + ")"
}
func (b *BinaryOp) exprNode() {}

// Relation is a single comparison: <.
type Relation struct {
	Token       lexer.Token
	Left, Right Expr
}

func (r *Relation) Line() int        { return r.Token.Line }
func (r *Relation) Operator() string { return string(rune(r.Token.Kind)) }
func (r *Relation) String() string {
	return "(" + r.Left.String() + " " + r.Operator() + " " + r.Right.String() + ")"
}
func (r *Relation) exprNode() {}

// Assign is Target = Value. It is an expression yielding Value. Target is
// only checked for assignability during code generation.
type Assign struct {
	Token  lexer.Token
	Target Expr
	Value  Expr
}

func (a *Assign) Line() int { return a.Token.Line }
func (a *Assign) String() string {
	return a.Target.String() + " = " + a.Value.String()
}
func (a *Assign) exprNode() {}

// Eval is an expression statement.
type Eval struct {
	X Expr
}

func (e *Eval) Line() int      { return e.X.Line() }
func (e *Eval) String() string { return e.X.String() + ";" }
func (e *Eval) stmtNode()      {}

// Seq chains statements to the right. Rest is nil on the last link.
type Seq struct {
	First Stmt
	Rest  *Seq
}

func (s *Seq) Line() int { return s.First.Line() }
func (s *Seq) String() string {
	out := s.First.String()
	for r := s.Rest; r != nil; r = r.Rest {
		out += " " + r.First.String()
	}
	return out
}
func (s *Seq) stmtNode() {}

// Block is a braced statement list. Body is nil when the block is empty.
type Block struct {
	Token lexer.Token
	Body  Stmt
}

func (b *Block) Line() int { return b.Token.Line }
func (b *Block) String() string {
	if b.Body == nil {
		return "{ }"
	}
	return "{ " + b.Body.String() + " }"
}
func (b *Block) stmtNode() {}

// While owns a start and an end label drawn when the node is created.
type While struct {
	Token lexer.Token
	Cond  Expr
	Body  Stmt

	start, end tac.Label
}

// NewWhile creates a loop node with two fresh labels.
func NewWhile(l *Labeler, tok lexer.Token) *While {
	return &While{Token: tok, start: l.New(), end: l.New()}
}

func (w *While) Start() tac.Label { return w.start }
func (w *While) End() tac.Label   { return w.end }
func (w *While) Line() int        { return w.Token.Line }
func (w *While) String() string {
	return "while (" + w.Cond.String() + ") " + w.Body.String()
}
func (w *While) stmtNode() {}

// If owns the label that skips its body.
type If struct {
	Token lexer.Token
	Cond  Expr
	Body  Stmt

	after tac.Label
}

// NewIf creates a conditional node with one fresh label.
func NewIf(l *Labeler, tok lexer.Token) *If {
	return &If{Token: tok, after: l.New()}
}

func (i *If) After() tac.Label { return i.after }
func (i *If) Line() int        { return i.Token.Line }
func (i *If) String() string {
	return "if (" + i.Cond.String() + ") " + i.Body.String()
}
func (i *If) stmtNode() {}
