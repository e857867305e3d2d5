package bytecode

import "fmt"

// Chunk is the unit of compiled program: an ordered sequence of encoded
// instruction words, an index-aligned table of source lines, and one owned
// constant pool. Chunks grow only through Write and must not be mutated
// once handed to a VM.
type Chunk struct {
	Name string // diagnostic label

	codes []uint32
	lines []uint32

	// Constants is the pool referenced by OpConstant operands. It is owned
	// by this chunk and exposed for program construction and disassembly.
	Constants ConstantPool
}

// NewChunk creates a new empty chunk with the given diagnostic name.
func NewChunk(name string) *Chunk {
	return &Chunk{
		Name:  name,
		codes: make([]uint32, 0, 64),
		lines: make([]uint32, 0, 64),
	}
}

// Write encodes the instruction and appends it. This is the only mutation a
// chunk supports; there is no insert, overwrite, or delete.
func (c *Chunk) Write(instr Instruction) error {
	line, word, err := instr.Encode()
	if err != nil {
		return fmt.Errorf("chunk %q: %w", c.Name, err)
	}
	c.codes = append(c.codes, word)
	c.lines = append(c.lines, line)
	return nil
}

// Read decodes the instruction stored at the given offset, combined with the
// line recorded at the same offset.
func (c *Chunk) Read(offset int) (Instruction, error) {
	if offset < 0 || offset >= len(c.codes) {
		return Instruction{}, fmt.Errorf("chunk %q offset %d: %w (length %d)", c.Name, offset, ErrOutOfRange, len(c.codes))
	}
	return Decode(c.lines[offset], c.codes[offset])
}

// Len returns the number of instructions currently stored.
func (c *Chunk) Len() int {
	return len(c.codes)
}
