package value

import "strconv"

// Type represents the tag in the Value tagged union.
type Type uint8

const (
	TypeVoid Type = iota
	TypeInt
	TypeBool
)

// Value is a tagged union. Booleans store 0 or 1 in Data.
type Value struct {
	Type Type
	Data uint64
}

// IntValue wraps an int64.
func IntValue(i int64) Value {
	return Value{Type: TypeInt, Data: uint64(i)}
}

// BoolValue wraps a bool.
func BoolValue(b bool) Value {
	if b {
		return Value{Type: TypeBool, Data: 1}
	}
	return Value{Type: TypeBool}
}

// Int returns the value as int64. Booleans read as 0 or 1.
func (v Value) Int() int64 {
	return int64(v.Data)
}

// Truthy reports whether the value counts as true for a conditional jump.
func (v Value) Truthy() bool {
	return v.Data != 0
}

// SetInt stores an int64.
func (v *Value) SetInt(i int64) {
	v.Type = TypeInt
	v.Data = uint64(i)
}

// String returns a string representation of the value.
func (v Value) String() string {
	switch v.Type {
	case TypeInt:
		return strconv.FormatInt(int64(v.Data), 10)
	case TypeBool:
		if v.Data != 0 {
			return "true"
		}
		return "false"
	default:
		return "void"
	}
}
