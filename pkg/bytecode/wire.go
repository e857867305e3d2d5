package bytecode

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// cborEncMode uses canonical options for deterministic encoding, so equal
// chunks always serialize to equal bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("bytecode: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// wireChunk is the CBOR document for a serialized chunk.
type wireChunk struct {
	Name      string    `cbor:"1,keyasint"`
	Codes     []uint32  `cbor:"2,keyasint"`
	Lines     []uint32  `cbor:"3,keyasint"`
	Constants []float64 `cbor:"4,keyasint,omitempty"`
}

// MarshalChunk serializes a chunk to CBOR bytes.
func MarshalChunk(c *Chunk) ([]byte, error) {
	w := wireChunk{
		Name:  c.Name,
		Codes: c.codes,
		Lines: c.lines,
	}
	for i := 0; i < c.Constants.Len(); i++ {
		value, err := c.Constants.At(i)
		if err != nil {
			return nil, fmt.Errorf("marshal chunk %q: %w", c.Name, err)
		}
		w.Constants = append(w.Constants, value)
	}
	return cborEncMode.Marshal(w)
}

// UnmarshalChunk deserializes a chunk from CBOR bytes and validates it:
// the code and line tables must be index-aligned, every word must decode,
// and every constant operand must index inside the pool. Serialized chunks
// may come from untrusted or corrupted storage, so malformed programs are
// rejected here rather than at run time.
func UnmarshalChunk(data []byte) (*Chunk, error) {
	var w wireChunk
	if err := cbor.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("unmarshal chunk: %w", err)
	}

	if len(w.Codes) != len(w.Lines) {
		return nil, fmt.Errorf("unmarshal chunk %q: %d codes but %d lines", w.Name, len(w.Codes), len(w.Lines))
	}

	c := NewChunk(w.Name)
	for _, value := range w.Constants {
		c.Constants.Add(value)
	}
	for offset, word := range w.Codes {
		instr, err := Decode(w.Lines[offset], word)
		if err != nil {
			return nil, fmt.Errorf("unmarshal chunk %q offset %d: %w", w.Name, offset, err)
		}
		if instr.Op.HasOperand() && int(instr.Operand) >= c.Constants.Len() {
			return nil, fmt.Errorf("unmarshal chunk %q offset %d: constant %d: %w (pool has %d)",
				w.Name, offset, instr.Operand, ErrOutOfRange, c.Constants.Len())
		}
		c.codes = append(c.codes, word)
		c.lines = append(c.lines, w.Lines[offset])
	}
	return c, nil
}
