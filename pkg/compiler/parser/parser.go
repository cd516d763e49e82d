package parser

import (
	"errors"
	"fmt"

	"github.com/agenthands/ntac/pkg/compiler/ast"
	"github.com/agenthands/ntac/pkg/compiler/lexer"
	"github.com/agenthands/ntac/pkg/compiler/symbols"
)

// ErrSyntax is wrapped by every error the parser returns.
var ErrSyntax = errors.New("syntax error")

// Parser is a recursive-descent parser with one token of lookahead. It
// resolves identifiers against the scope chain while it builds the tree.
type Parser struct {
	scanner *lexer.Scanner
	look    lexer.Token

	env    *symbols.Env
	labels *ast.Labeler
}

func NewParser(s *lexer.Scanner) *Parser {
	p := &Parser{
		scanner: s,
		env:     symbols.NewEnv(),
		labels:  &ast.Labeler{},
	}
	p.next()
	return p
}

// Labels returns the label counter shared by every node this parser builds.
func (p *Parser) Labels() *ast.Labeler { return p.labels }

func (p *Parser) next() {
	p.look = p.scanner.Next()
}

func (p *Parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at line %d: %s", ErrSyntax, p.look.Line, fmt.Sprintf(format, args...))
}

func (p *Parser) match(k lexer.Kind) error {
	if p.look.Kind != k {
		return p.errorf("expected %v, got %v", k, p.look)
	}
	p.next()
	return nil
}

// Parse reads one program: a single block followed by end of input.
func (p *Parser) Parse() (*ast.Program, error) {
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	if p.look.Kind != lexer.KindEOF {
		return nil, p.errorf("unexpected %v after program", p.look)
	}
	return &ast.Program{Body: body}, nil
}

// block: '{' decls stmts '}'
func (p *Parser) block() (ast.Stmt, error) {
	tok := p.look
	if err := p.match('{'); err != nil {
		return nil, err
	}

	saved := p.env.Enter()
	defer p.env.Leave(saved)

	if err := p.decls(); err != nil {
		return nil, err
	}
	body, err := p.stmts()
	if err != nil {
		return nil, err
	}
	if err := p.match('}'); err != nil {
		return nil, err
	}

	blk := &ast.Block{Token: tok}
	if body != nil {
		blk.Body = body
	}
	return blk, nil
}

// decls: { basic identifier ';' }
func (p *Parser) decls() error {
	for p.look.Kind == lexer.KindBasic {
		typ := p.look
		p.next()

		id := p.look
		if err := p.match(lexer.KindIdentifier); err != nil {
			return err
		}
		if err := p.match(';'); err != nil {
			return err
		}

		p.env.Put(id.Word.Lexeme, &symbols.Symbol{
			Name: id.Word.Lexeme,
			Type: typ.Word.Lexeme,
			Line: id.Line,
		})
	}
	return nil
}

// stmts: { stmt }, chained right-associatively.
func (p *Parser) stmts() (*ast.Seq, error) {
	if p.look.Kind == '}' {
		return nil, nil
	}
	first, err := p.stmt()
	if err != nil {
		return nil, err
	}
	rest, err := p.stmts()
	if err != nil {
		return nil, err
	}
	return &ast.Seq{First: first, Rest: rest}, nil
}

// stmt: block | while '(' expr ')' stmt | if '(' expr ')' stmt | expr ';'
func (p *Parser) stmt() (ast.Stmt, error) {
	switch p.look.Kind {
	case '{':
		return p.block()
	case lexer.KindWhile:
		w := ast.NewWhile(p.labels, p.look)
		p.next()
		cond, body, err := p.guarded()
		if err != nil {
			return nil, err
		}
		w.Cond, w.Body = cond, body
		return w, nil
	case lexer.KindIf:
		i := ast.NewIf(p.labels, p.look)
		p.next()
		cond, body, err := p.guarded()
		if err != nil {
			return nil, err
		}
		i.Cond, i.Body = cond, body
		return i, nil
	default:
		x, err := p.assign()
		if err != nil {
			return nil, err
		}
		if err := p.match(';'); err != nil {
			return nil, err
		}
		return &ast.Eval{X: x}, nil
	}
}

// guarded parses the '(' expr ')' stmt tail shared by while and if.
func (p *Parser) guarded() (ast.Expr, ast.Stmt, error) {
	if err := p.match('('); err != nil {
		return nil, nil, err
	}
	cond, err := p.assign()
	if err != nil {
		return nil, nil, err
	}
	if err := p.match(')'); err != nil {
		return nil, nil, err
	}
	body, err := p.stmt()
	if err != nil {
		return nil, nil, err
	}
	return cond, body, nil
}

// assign: rel [ '=' assign ]
func (p *Parser) assign() (ast.Expr, error) {
	lhs, err := p.rel()
	if err != nil {
		return nil, err
	}
	if p.look.Kind != '=' {
		return lhs, nil
	}
	tok := p.look
	p.next()
	rhs, err := p.assign()
	if err != nil {
		return nil, err
	}
	return &ast.Assign{Token: tok, Target: lhs, Value: rhs}, nil
}

// rel: expr { '<' expr }
func (p *Parser) rel() (ast.Expr, error) {
	x, err := p.expr()
	if err != nil {
		return nil, err
	}
	for p.look.Kind == '<' {
		tok := p.look
		p.next()
		y, err := p.expr()
		if err != nil {
			return nil, err
		}
		x = &ast.Relation{Token: tok, Left: x, Right: y}
	}
	return x, nil
}

// expr: term { ('+' | '-') term }
func (p *Parser) expr() (ast.Expr, error) {
	x, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.look.Kind == '+' || p.look.Kind == '-' {
		tok := p.look
		p.next()
		y, err := p.term()
		if err != nil {
			return nil, err
		}
		x = &ast.BinaryOp{Token: tok, Left: x, Right: y}
	}
	return x, nil
}

// term: factor { ('*' | '/') factor }
func (p *Parser) term() (ast.Expr, error) {
	x, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.look.Kind == '*' || p.look.Kind == '/' {
		tok := p.look
		p.next()
		y, err := p.factor()
		if err != nil {
			return nil, err
		}
		x = &ast.BinaryOp{Token: tok, Left: x, Right: y}
	}
	return x, nil
}

// factor: number | true | false | identifier | '(' assign ')'
func (p *Parser) factor() (ast.Expr, error) {
	tok := p.look
	switch tok.Kind {
	case lexer.KindNumber:
		p.next()
		return &ast.Num{Token: tok}, nil
	case lexer.KindTrue, lexer.KindFalse:
		p.next()
		return &ast.Bool{Token: tok}, nil
	case lexer.KindIdentifier:
		p.next()
		return &ast.Identifier{Token: tok, Symbol: p.env.Get(tok.Word.Lexeme)}, nil
	case '(':
		p.next()
		x, err := p.assign()
		if err != nil {
			return nil, err
		}
		if err := p.match(')'); err != nil {
			return nil, err
		}
		return x, nil
	default:
		return nil, p.errorf("unexpected %v in expression", tok)
	}
}
