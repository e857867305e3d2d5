package bytecode

import (
	"errors"
	"fmt"
)

// ErrOutOfRange indicates a constant-pool or chunk index past the end.
var ErrOutOfRange = errors.New("index out of range")

// ConstantPool is an append-only store of double-precision values. Once
// added, a constant's index never changes.
type ConstantPool struct {
	constants []float64
}

// Add appends a value and returns the 0-based index just assigned.
func (p *ConstantPool) Add(value float64) int {
	p.constants = append(p.constants, value)
	return len(p.constants) - 1
}

// At returns the value at the given index.
func (p *ConstantPool) At(index int) (float64, error) {
	if index < 0 || index >= len(p.constants) {
		return 0, fmt.Errorf("constant %d: %w (pool has %d)", index, ErrOutOfRange, len(p.constants))
	}
	return p.constants[index], nil
}

// Len returns the number of constants in the pool.
func (p *ConstantPool) Len() int {
	return len(p.constants)
}
