package bytecode

import (
	"errors"
	"testing"
)

func TestInstructionRoundTrip(t *testing.T) {
	instrs := []Instruction{
		{Line: 1, Op: OpReturn},
		{Line: 7, Op: OpAdd},
		{Line: 7, Op: OpSubtract},
		{Line: 9, Op: OpMultiply},
		{Line: 12, Op: OpDivide},
		{Line: 40000, Op: OpNegate},
		{Line: 1, Op: OpConstant, Operand: 0},
		{Line: 2, Op: OpConstant, Operand: 1},
		{Line: 3, Op: OpConstant, Operand: 1<<23 - 1},
		{Line: 4, Op: OpConstant, Operand: MaxOperand},
	}

	for _, instr := range instrs {
		line, word, err := instr.Encode()
		if err != nil {
			t.Fatalf("Encode(%+v) error: %v", instr, err)
		}
		got, err := Decode(line, word)
		if err != nil {
			t.Fatalf("Decode(%d, 0x%08X) error: %v", line, word, err)
		}
		if got != instr {
			t.Errorf("round trip: got %+v, want %+v", got, instr)
		}
	}
}

func TestEncodeWordLayout(t *testing.T) {
	instr := Instruction{Line: 3, Op: OpConstant, Operand: 0x00ABCDEF}
	line, word, err := instr.Encode()
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if line != 3 {
		t.Errorf("line = %d, want 3", line)
	}
	if word != 0xABCDEF00|uint32(OpConstant) {
		t.Errorf("word = 0x%08X, want 0x%08X", word, 0xABCDEF00|uint32(OpConstant))
	}
	if word&0xFF != uint32(OpConstant) {
		t.Errorf("low byte = 0x%02X, want opcode tag 0x%02X", word&0xFF, byte(OpConstant))
	}
	if word>>8 != 0x00ABCDEF {
		t.Errorf("operand bits = 0x%06X, want 0x00ABCDEF", word>>8)
	}
}

func TestEncodeOperandBoundary(t *testing.T) {
	// The largest 24-bit operand encodes and round-trips.
	max := Instruction{Line: 1, Op: OpConstant, Operand: MaxOperand}
	line, word, err := max.Encode()
	if err != nil {
		t.Fatalf("Encode(MaxOperand) error: %v", err)
	}
	got, err := Decode(line, word)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if got != max {
		t.Errorf("round trip: got %+v, want %+v", got, max)
	}

	// One past is rejected, never truncated.
	over := Instruction{Line: 1, Op: OpConstant, Operand: MaxOperand + 1}
	if _, _, err := over.Encode(); !errors.Is(err, ErrOperandRange) {
		t.Errorf("Encode(MaxOperand+1) error = %v, want ErrOperandRange", err)
	}
}

func TestEncodeClearsOperandForPlainOpcodes(t *testing.T) {
	instr := Instruction{Line: 5, Op: OpAdd, Operand: 42}
	_, word, err := instr.Encode()
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if word != uint32(OpAdd) {
		t.Errorf("word = 0x%08X, want bare tag 0x%02X", word, byte(OpAdd))
	}
}

func TestDecodeInvalidTag(t *testing.T) {
	for _, word := range []uint32{uint32(opcodeCount), 0xFF, 0x12345608} {
		if _, err := Decode(1, word); !errors.Is(err, ErrInvalidOpcode) {
			t.Errorf("Decode(1, 0x%08X) error = %v, want ErrInvalidOpcode", word, err)
		}
	}
}

func TestEncodeInvalidOpcode(t *testing.T) {
	instr := Instruction{Line: 1, Op: opcodeCount}
	if _, _, err := instr.Encode(); !errors.Is(err, ErrInvalidOpcode) {
		t.Errorf("Encode(sentinel) error = %v, want ErrInvalidOpcode", err)
	}
}
