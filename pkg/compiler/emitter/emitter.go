package emitter

import (
	"errors"
	"fmt"

	"github.com/agenthands/ntac/pkg/compiler/ast"
	"github.com/agenthands/ntac/pkg/tac"
)

// ErrSemantic is wrapped by every error the emitter returns.
var ErrSemantic = errors.New("semantic error")

// Emitter walks a finished tree and produces three-address code. It owns
// the temporary counter; labels were fixed when the tree was built.
type Emitter struct {
	code  tac.Code
	temps int
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

// Reset drops emitted code and restarts temporary numbering at tmp0.
func (e *Emitter) Reset() {
	e.code = nil
	e.temps = 0
}

// Emit generates code for prog. On error the returned code holds the
// instructions emitted before the failing node.
func (e *Emitter) Emit(prog *ast.Program) (tac.Code, error) {
	e.Reset()
	if prog.Body != nil {
		if err := e.stmt(prog.Body); err != nil {
			return e.code, err
		}
	}
	return e.code, nil
}

func (e *Emitter) emit(in tac.Instr) {
	e.code = append(e.code, in)
}

func (e *Emitter) temp() string {
	name := tac.Temp(e.temps)
	e.temps++
	return name
}

// location checks that a referenced identifier was declared and does not
// share a name with the generated temporaries.
func (e *Emitter) location(id *ast.Identifier) (string, error) {
	if id.Symbol == nil {
		return "", fmt.Errorf("%w at line %d: undeclared identifier %s", ErrSemantic, id.Line(), id.Name())
	}
	if tac.IsTemp(id.Name()) {
		return "", fmt.Errorf("%w at line %d: identifier %s is reserved for temporaries", ErrSemantic, id.Line(), id.Name())
	}
	return id.Name(), nil
}

func (e *Emitter) stmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.Eval:
		_, err := e.rvalue(n.X)
		return err

	case *ast.Seq:
		for ; n != nil; n = n.Rest {
			if err := e.stmt(n.First); err != nil {
				return err
			}
		}
		return nil

	case *ast.Block:
		if n.Body == nil {
			return nil
		}
		return e.stmt(n.Body)

	case *ast.While:
		e.emit(tac.Mark(n.Start()))
		cond, err := e.rvalue(n.Cond)
		if err != nil {
			return err
		}
		e.emit(tac.IfFalse(cond, n.End()))
		if err := e.stmt(n.Body); err != nil {
			return err
		}
		e.emit(tac.Goto(n.Start()))
		e.emit(tac.Mark(n.End()))
		return nil

	case *ast.If:
		cond, err := e.rvalue(n.Cond)
		if err != nil {
			return err
		}
		e.emit(tac.IfFalse(cond, n.After()))
		if err := e.stmt(n.Body); err != nil {
			return err
		}
		e.emit(tac.Mark(n.After()))
		return nil

	default:
		panic(fmt.Sprintf("emitter: unhandled statement %T", s))
	}
}

// rvalue returns the name of a location holding the value of x.
func (e *Emitter) rvalue(x ast.Expr) (string, error) {
	switch n := x.(type) {
	case *ast.Num:
		return n.String(), nil

	case *ast.Bool:
		return n.String(), nil

	case *ast.Identifier:
		return e.location(n)

	case *ast.BinaryOp:
		return e.operator(n.Left, n.Operator(), n.Right)

	case *ast.Relation:
		return e.operator(n.Left, n.Operator(), n.Right)

	case *ast.Assign:
		rhs, err := e.rvalue(n.Value)
		if err != nil {
			return "", err
		}
		lhs, err := e.lvalue(n.Target)
		if err != nil {
			return "", err
		}
		e.emit(tac.Copy(lhs, rhs))
		return rhs, nil

	default:
		panic(fmt.Sprintf("emitter: unhandled expression %T", x))
	}
}

func (e *Emitter) operator(left ast.Expr, op string, right ast.Expr) (string, error) {
	a, err := e.rvalue(left)
	if err != nil {
		return "", err
	}
	b, err := e.rvalue(right)
	if err != nil {
		return "", err
	}
	t := e.temp()
	e.emit(tac.Binary(t, a, op, b))
	return t, nil
}

// lvalue returns the name of an assignable location. Only identifiers
// qualify.
func (e *Emitter) lvalue(x ast.Expr) (string, error) {
	id, ok := x.(*ast.Identifier)
	if !ok {
		return "", fmt.Errorf("%w at line %d: cannot assign to %s", ErrSemantic, x.Line(), x)
	}
	return e.location(id)
}
