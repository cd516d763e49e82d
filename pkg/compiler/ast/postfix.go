package ast

import "strings"

// Postfix renders an expression in reverse Polish order, operands
// separated by single spaces. Assignments render as "target value =".
func Postfix(e Expr) string {
	var b strings.Builder
	writePostfix(&b, e)
	return strings.TrimSuffix(b.String(), " ")
}

func writePostfix(b *strings.Builder, e Expr) {
	switch n := e.(type) {
	case *Num, *Bool, *Identifier:
		b.WriteString(n.String())
	case *BinaryOp:
		writePostfix(b, n.Left)
		writePostfix(b, n.Right)
		b.WriteString(n.Operator())
	case *Relation:
		writePostfix(b, n.Left)
		writePostfix(b, n.Right)
		b.WriteString(n.Operator())
	case *Assign:
		writePostfix(b, n.Target)
		writePostfix(b, n.Value)
		b.WriteString("=")
	}
	b.WriteByte(' ')
}
