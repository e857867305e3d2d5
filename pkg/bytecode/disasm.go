package bytecode

import (
	"fmt"
	"io"
)

// Disassemble writes a human-readable listing of the whole chunk: a name
// header followed by one line per instruction.
func (c *Chunk) Disassemble(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "== %s ==\n", c.Name); err != nil {
		return err
	}
	for offset := 0; offset < c.Len(); offset++ {
		if err := c.DisassembleInstruction(w, offset); err != nil {
			return err
		}
	}
	return nil
}

// DisassembleInstruction writes one listing line for the instruction at the
// given offset: zero-padded offset, zero-padded source line, the encoded
// word in fixed-width binary, and the right-justified mnemonic. OpConstant
// additionally shows the pool index and the resolved value. Read-only.
func (c *Chunk) DisassembleInstruction(w io.Writer, offset int) error {
	instr, err := c.Read(offset)
	if err != nil {
		return err
	}
	word := c.codes[offset]

	if _, err := fmt.Fprintf(w, "%06d  %05d  %032b  %10s", offset, instr.Line, word, instr.Op); err != nil {
		return err
	}

	if instr.Op.HasOperand() {
		value, err := c.Constants.At(int(instr.Operand))
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  %6d  %10v", instr.Operand, value); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(w)
	return err
}
