// Package compiler runs the front end over one program: scanner, parser
// and emitter, each created fresh so numbering starts at zero every run.
package compiler

import (
	"github.com/agenthands/ntac/pkg/compiler/ast"
	"github.com/agenthands/ntac/pkg/compiler/emitter"
	"github.com/agenthands/ntac/pkg/compiler/lexer"
	"github.com/agenthands/ntac/pkg/compiler/parser"
	"github.com/agenthands/ntac/pkg/tac"
)

// Parse builds the tree for src.
func Parse(src []byte) (*ast.Program, error) {
	return parser.NewParser(lexer.NewScanner(src)).Parse()
}

// Compile translates src into three-address code. A syntax error yields
// no code; a semantic error yields the code emitted before it.
func Compile(src []byte) (tac.Code, error) {
	prog, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return emitter.NewEmitter().Emit(prog)
}
