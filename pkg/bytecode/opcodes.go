package bytecode

import "fmt"

// Opcode represents a bytecode instruction tag. Tags are contiguous from
// zero; opcodeCount is a reserved sentinel and never a valid instruction.
type Opcode byte

const (
	OpReturn   Opcode = iota // Pop top of stack and emit it as program output
	OpConstant               // Push constant from pool: operand is the pool index
	OpAdd                    // Pop two, push sum
	OpSubtract               // Pop two, push difference (left - right where right is TOS)
	OpMultiply               // Pop two, push product
	OpDivide                 // Pop two, push quotient (IEEE-754, never faults)
	OpNegate                 // Negate top of stack

	opcodeCount // reserved sentinel, not a runtime opcode
)

// OpcodeInfo provides metadata about each opcode for debugging and validation.
type OpcodeInfo struct {
	Name       string // Canonical uppercase mnemonic
	StackPop   int    // How many values popped from stack
	StackPush  int    // How many values pushed to stack
	HasOperand bool   // Whether the upper 24 bits of the word carry an operand
}

// opcodeInfoTable maps opcodes to their metadata.
var opcodeInfoTable = [opcodeCount]OpcodeInfo{
	OpReturn:   {"RETURN", 1, 0, false},
	OpConstant: {"CONSTANT", 0, 1, true},
	OpAdd:      {"ADD", 2, 1, false},
	OpSubtract: {"SUBTRACT", 2, 1, false},
	OpMultiply: {"MULTIPLY", 2, 1, false},
	OpDivide:   {"DIVIDE", 2, 1, false},
	OpNegate:   {"NEGATE", 1, 1, false},
}

// Valid reports whether op is a defined runtime opcode. The sentinel value
// and anything above it are invalid.
func (op Opcode) Valid() bool {
	return op < opcodeCount
}

// GetOpcodeInfo returns metadata for an opcode.
// Returns a zero OpcodeInfo with an UNKNOWN name if the opcode is not defined.
func GetOpcodeInfo(op Opcode) OpcodeInfo {
	if op.Valid() {
		return opcodeInfoTable[op]
	}
	return OpcodeInfo{Name: fmt.Sprintf("UNKNOWN(0x%02X)", byte(op))}
}

// String returns the canonical mnemonic of an opcode.
func (op Opcode) String() string {
	return GetOpcodeInfo(op).Name
}

// HasOperand reports whether this opcode packs an operand into its word.
func (op Opcode) HasOperand() bool {
	return GetOpcodeInfo(op).HasOperand
}

// AllOpcodes returns a slice of all defined opcodes, in tag order.
// Useful for testing that all opcodes have metadata.
func AllOpcodes() []Opcode {
	opcodes := make([]Opcode, 0, opcodeCount)
	for op := Opcode(0); op < opcodeCount; op++ {
		opcodes = append(opcodes, op)
	}
	return opcodes
}

// OpcodeCount returns the number of defined opcodes.
func OpcodeCount() int {
	return int(opcodeCount)
}
