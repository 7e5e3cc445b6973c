package opcode

import (
	"errors"
	"strconv"
)

var stringToOpcode = make(map[string]Opcode, len(names))

func init() {
	for op, s := range names {
		stringToOpcode[s] = op
	}
}

// String implements the fmt.Stringer interface.
func (i Opcode) String() string {
	if s, ok := names[i]; ok {
		return s
	}
	return "Opcode(" + strconv.FormatInt(int64(i), 10) + ")"
}

// FromString converts string representation to an opcode itself.
func FromString(s string) (Opcode, error) {
	if op, ok := stringToOpcode[s]; ok {
		return op, nil
	}
	return 0, errors.New("invalid opcode")
}

// IsValid returns true if the opcode passed is valid (defined in the VM).
func IsValid(op Opcode) bool {
	_, ok := names[op]
	return ok
}
