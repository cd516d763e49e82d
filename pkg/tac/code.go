// Package tac defines the three-address instruction stream produced by the
// emitter and consumed by the vm.
package tac

import (
	"io"
	"strconv"
	"strings"
)

// Label is a jump target. Labels are numbered from zero per compilation
// and print as __<n>.
type Label int

func (l Label) String() string {
	return "__" + strconv.Itoa(int(l))
}

// Instr is one three-address instruction. Which fields are meaningful
// depends on Op.
type Instr struct {
	Op       Op
	Dst      string
	Arg1     string
	Operator string
	Arg2     string
	Label    Label
}

// Binary builds dst = a op b.
func Binary(dst, a, op, b string) Instr {
	return Instr{Op: OpBinary, Dst: dst, Arg1: a, Operator: op, Arg2: b}
}

// Copy builds dst = src.
func Copy(dst, src string) Instr {
	return Instr{Op: OpCopy, Dst: dst, Arg1: src}
}

// Mark builds a label definition.
func Mark(l Label) Instr {
	return Instr{Op: OpLabel, Label: l}
}

// IfFalse builds a conditional jump taken when cond is false.
func IfFalse(cond string, l Label) Instr {
	return Instr{Op: OpIfFalse, Arg1: cond, Label: l}
}

// Goto builds an unconditional jump.
func Goto(l Label) Instr {
	return Instr{Op: OpGoto, Label: l}
}

func (in Instr) String() string {
	switch in.Op {
	case OpBinary:
		return in.Dst + " = " + in.Arg1 + " " + in.Operator + " " + in.Arg2
	case OpCopy:
		return in.Dst + " = " + in.Arg1
	case OpLabel:
		return in.Label.String() + ":"
	case OpIfFalse:
		return "ifFalse " + in.Arg1 + " goto " + in.Label.String()
	case OpGoto:
		return "goto " + in.Label.String()
	default:
		return "?"
	}
}

// Code is an ordered instruction stream.
type Code []Instr

// Lines renders each instruction in text form.
func (c Code) Lines() []string {
	lines := make([]string, len(c))
	for i, in := range c {
		lines[i] = in.String()
	}
	return lines
}

func (c Code) String() string {
	var b strings.Builder
	for _, in := range c {
		b.WriteString(in.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteTo writes one instruction per line to w.
func (c Code) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, c.String())
	return int64(n), err
}

// Count returns how many instructions have the given op.
func (c Code) Count(op Op) int {
	n := 0
	for _, in := range c {
		if in.Op == op {
			n++
		}
	}
	return n
}

// Temp names the n-th generated temporary.
func Temp(n int) string {
	return "tmp" + strconv.Itoa(n)
}

// IsTemp reports whether name has the tmp<n> shape of a generated
// temporary.
func IsTemp(name string) bool {
	digits, ok := strings.CutPrefix(name, "tmp")
	if !ok || digits == "" {
		return false
	}
	return strings.Trim(digits, "0123456789") == ""
}
