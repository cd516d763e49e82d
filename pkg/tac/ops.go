package tac

// Op selects the shape of a three-address instruction.
type Op uint8

const (
	OpBinary  Op = iota // Dst = Arg1 Operator Arg2
	OpCopy              // Dst = Arg1
	OpLabel             // Label:
	OpIfFalse           // ifFalse Arg1 goto Label
	OpGoto              // goto Label
)

var opNames = [...]string{
	OpBinary:  "binary",
	OpCopy:    "copy",
	OpLabel:   "label",
	OpIfFalse: "ifFalse",
	OpGoto:    "goto",
}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return "op?"
}
