package bytecode

import (
	"errors"
	"fmt"
)

// MaxOperand is the largest constant-pool index that fits in the 24 operand
// bits of an encoded word.
const MaxOperand = 1<<24 - 1

// ErrInvalidOpcode indicates an encoded word whose low-byte tag does not
// correspond to any defined opcode.
var ErrInvalidOpcode = errors.New("invalid opcode")

// ErrOperandRange indicates a constant-pool index too large to encode.
var ErrOperandRange = errors.New("operand out of range")

// Instruction is one decoded operation. Instructions are value types; they
// have no identity beyond their position in a chunk.
//
// Line is the 1-based source line the instruction was compiled from. It is
// stored out-of-band in the chunk's line table, never inside the encoded
// word. Operand is meaningful only for OpConstant, where it indexes the
// owning chunk's constant pool.
type Instruction struct {
	Line    uint32
	Op      Opcode
	Operand uint32
}

// Decode unpacks an encoded word into an Instruction. The low 8 bits are the
// opcode tag; for OpConstant the remaining 24 bits are the pool index. For
// every other defined opcode the upper bits are ignored.
func Decode(line uint32, word uint32) (Instruction, error) {
	op := Opcode(word & 0xFF)
	if !op.Valid() {
		return Instruction{}, fmt.Errorf("decode word 0x%08X: %w: tag 0x%02X", word, ErrInvalidOpcode, byte(op))
	}
	instr := Instruction{Line: line, Op: op}
	if op.HasOperand() {
		instr.Operand = word >> 8
	}
	return instr, nil
}

// Encode packs the instruction into its line and 32-bit word. For OpConstant
// the operand must fit in 24 bits; any larger index is rejected rather than
// truncated. For operand-less opcodes a caller-supplied operand is cleared.
func (i Instruction) Encode() (line uint32, word uint32, err error) {
	if !i.Op.Valid() {
		return 0, 0, fmt.Errorf("encode: %w: tag 0x%02X", ErrInvalidOpcode, byte(i.Op))
	}
	word = uint32(i.Op)
	if i.Op.HasOperand() {
		if i.Operand > MaxOperand {
			return 0, 0, fmt.Errorf("encode %s: %w: %d exceeds %d", i.Op, ErrOperandRange, i.Operand, uint32(MaxOperand))
		}
		word |= i.Operand << 8
	}
	return i.Line, word, nil
}
