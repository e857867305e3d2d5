// Package bytecode implements a minimal stack-based virtual machine for
// arithmetic over double-precision values.
//
// The bytecode format is designed for:
//   - Compact representation (one 32-bit word per instruction)
//   - Fast decoding (opcode tag in the low byte, 24-bit operand above it)
//   - Easy serialization (chunks round-trip through CBOR for storage)
//
// # Architecture Overview
//
// The package consists of several components:
//
//   - Opcodes: seven stack-based instructions covering constant loading,
//     the four arithmetic operators, negation, and result emission
//
//   - Instruction: one decoded operation, paired out-of-band with the
//     1-based source line it was compiled from
//
//   - Chunk: a named, append-only buffer of encoded instruction words with
//     an index-aligned line table and an owned constant pool
//
//   - VM: stack-based interpreter that executes one chunk. Tracing is a
//     runtime flag on the VM; when enabled, each step prints the operand
//     stack and the disassembly of the pending instruction before executing.
//
// Program construction happens elsewhere: callers assemble chunks by writing
// instructions one at a time. There is no compiler front end in this package.
package bytecode
