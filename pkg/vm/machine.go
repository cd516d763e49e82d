package vm

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"

	"github.com/agenthands/ntac/pkg/core/value"
	"github.com/agenthands/ntac/pkg/tac"
)

var (
	ErrGasExhausted   = errors.New("vm: gas exhausted")
	ErrUnknownLabel   = errors.New("vm: unknown label")
	ErrDuplicateLabel = errors.New("vm: duplicate label")
	ErrDivisionByZero = errors.New("vm: division by zero")
	ErrUnknownOp      = errors.New("vm: unknown operation")
)

// Machine interprets a three-address instruction stream. Named locations,
// variables and temporaries alike, live in Vars and read as integer zero
// until first assigned.
type Machine struct {
	IP   int
	Code tac.Code
	Vars map[string]value.Value

	// Trace, when set, receives each instruction before it executes.
	Trace io.Writer

	labels map[tac.Label]int
}

var pool = sync.Pool{
	New: func() any { return &Machine{} },
}

// GetMachine returns a reset machine from the pool.
func GetMachine() *Machine {
	return pool.Get().(*Machine)
}

// PutMachine resets m and returns it to the pool.
func PutMachine(m *Machine) {
	m.Reset()
	pool.Put(m)
}

// Reset clears the machine state for reuse.
func (m *Machine) Reset() {
	m.IP = 0
	m.Code = nil
	m.Trace = nil
	m.labels = nil
	clear(m.Vars)
}

// Load installs code and resolves its labels to instruction positions.
func (m *Machine) Load(code tac.Code) error {
	m.Code = code
	m.IP = 0
	if m.labels == nil {
		m.labels = make(map[tac.Label]int)
	}
	clear(m.labels)
	for i, in := range code {
		if in.Op != tac.OpLabel {
			continue
		}
		if _, dup := m.labels[in.Label]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateLabel, in.Label)
		}
		m.labels[in.Label] = i
	}
	return nil
}

// Get returns the current value of a named location.
func (m *Machine) Get(name string) (value.Value, bool) {
	v, ok := m.Vars[name]
	return v, ok
}

// Names lists every assigned location in sorted order.
func (m *Machine) Names() []string {
	names := make([]string, 0, len(m.Vars))
	for name := range m.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (m *Machine) set(name string, v value.Value) {
	if m.Vars == nil {
		m.Vars = make(map[string]value.Value)
	}
	m.Vars[name] = v
}

// operand resolves a literal or a location name to its value.
func (m *Machine) operand(name string) value.Value {
	switch {
	case name == "true":
		return value.BoolValue(true)
	case name == "false":
		return value.BoolValue(false)
	case name != "" && name[0] >= '0' && name[0] <= '9':
		i, _ := strconv.ParseInt(name, 10, 64)
		return value.IntValue(i)
	}
	if v, ok := m.Vars[name]; ok {
		return v
	}
	return value.IntValue(0)
}

func (m *Machine) jump(l tac.Label) (int, error) {
	ip, ok := m.labels[l]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownLabel, l)
	}
	return ip, nil
}

// Run executes instructions until the end of the code, an error, or gas
// exhaustion. Every executed instruction costs one unit of gas. Code set
// directly on the struct is loaded on the first Run.
func (m *Machine) Run(gasLimit int) error {
	if m.labels == nil && len(m.Code) > 0 {
		if err := m.Load(m.Code); err != nil {
			return err
		}
	}

	ip := m.IP
	code := m.Code

	for i := 0; i < gasLimit; i++ {
		if ip >= len(code) {
			m.IP = ip
			return nil
		}
		in := code[ip]
		if m.Trace != nil {
			fmt.Fprintf(m.Trace, "%4d  %s\n", ip, in)
		}

		switch in.Op {
		case tac.OpLabel:
			ip++

		case tac.OpCopy:
			m.set(in.Dst, m.operand(in.Arg1))
			ip++

		case tac.OpBinary:
			v, err := binary(m.operand(in.Arg1), in.Operator, m.operand(in.Arg2))
			if err != nil {
				m.IP = ip
				return err
			}
			m.set(in.Dst, v)
			ip++

		case tac.OpIfFalse:
			if m.operand(in.Arg1).Truthy() {
				ip++
				break
			}
			next, err := m.jump(in.Label)
			if err != nil {
				m.IP = ip
				return err
			}
			ip = next

		case tac.OpGoto:
			next, err := m.jump(in.Label)
			if err != nil {
				m.IP = ip
				return err
			}
			ip = next

		default:
			m.IP = ip
			return ErrUnknownOp
		}
	}

	m.IP = ip
	if ip >= len(code) {
		return nil
	}
	return ErrGasExhausted
}

func binary(a value.Value, op string, b value.Value) (value.Value, error) {
	x, y := a.Int(), b.Int()
	switch op {
	case "+":
		return value.IntValue(x + y), nil
	case "-":
		return value.IntValue(x - y), nil
	case "*":
		return value.IntValue(x * y), nil
	case "/":
		if y == 0 {
			return value.Value{}, ErrDivisionByZero
		}
		return value.IntValue(x / y), nil
	case "<":
		return value.BoolValue(x < y), nil
	default:
		return value.Value{}, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}
}
