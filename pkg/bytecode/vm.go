package bytecode

import (
	"errors"
	"fmt"
	"io"
)

// ErrStackUnderflow indicates an instruction popped an empty operand stack.
var ErrStackUnderflow = errors.New("stack underflow")

// Result is the outcome vocabulary of a run.
type Result int

const (
	ResultOK Result = iota
	ResultCompileError
	ResultRuntimeError
)

// String returns a human-readable name for a Result.
func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultCompileError:
		return "compile error"
	case ResultRuntimeError:
		return "runtime error"
	default:
		return fmt.Sprintf("Result(%d)", int(r))
	}
}

// VM executes one bytecode chunk. A VM is bound to exactly one chunk for its
// lifetime and owns its operand stack exclusively; the chunk is borrowed,
// never mutated. Not safe for concurrent use.
type VM struct {
	chunk *Chunk
	ip    int
	stack []float64
	out   io.Writer

	// Trace enables per-step diagnostics: before each instruction executes,
	// the VM prints the operand stack (bottom to top) and the disassembly of
	// the pending instruction to the output sink.
	Trace bool
}

// NewVM creates a VM over the given chunk. Program results, and trace output
// when enabled, are written to out. Tracing defaults to off.
func NewVM(chunk *Chunk, out io.Writer) *VM {
	return &VM{
		chunk: chunk,
		stack: make([]float64, 0, 256),
		out:   out,
	}
}

// StackDepth returns the current number of values on the operand stack.
func (vm *VM) StackDepth() int {
	return len(vm.stack)
}

// Run drives the fetch-decode-execute loop until the cursor falls off the
// end of the chunk, then returns ResultOK.
//
// OpReturn emits the popped value to the output sink but does not stop the
// loop; a chunk may emit several results before execution ends. Faults
// (invalid opcode, out-of-range index, stack underflow) stop the run
// immediately and are reported as ResultRuntimeError with a wrapped error
// identifying the offset and source line; the stack is left as it was when
// the fault was detected.
func (vm *VM) Run() (Result, error) {
	for vm.ip < vm.chunk.Len() {
		if vm.Trace {
			if err := vm.trace(); err != nil {
				return ResultRuntimeError, err
			}
		}

		instr, err := vm.chunk.Read(vm.ip)
		if err != nil {
			return ResultRuntimeError, err
		}

		if err := vm.step(instr); err != nil {
			return ResultRuntimeError, fmt.Errorf("offset %d (line %d) %s: %w", vm.ip, instr.Line, instr.Op, err)
		}

		vm.ip++
	}
	return ResultOK, nil
}

// step executes exactly one decoded instruction against the operand stack.
func (vm *VM) step(instr Instruction) error {
	switch instr.Op {
	case OpReturn:
		value, err := vm.pop()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(vm.out, value); err != nil {
			return err
		}

	case OpConstant:
		value, err := vm.chunk.Constants.At(int(instr.Operand))
		if err != nil {
			return err
		}
		vm.push(value)

	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		right, err := vm.pop()
		if err != nil {
			return err
		}
		left, err := vm.pop()
		if err != nil {
			return err
		}
		vm.push(arith(instr.Op, left, right))

	case OpNegate:
		value, err := vm.pop()
		if err != nil {
			return err
		}
		vm.push(-value)

	default:
		// Decode already rejected unknown tags; this only fires if the
		// opcode set grows without a matching case here.
		return fmt.Errorf("%w: %s", ErrInvalidOpcode, instr.Op)
	}
	return nil
}

// arith applies a binary arithmetic opcode. Division follows IEEE-754: a
// zero divisor yields an infinity or NaN, never a fault.
func arith(op Opcode, left, right float64) float64 {
	switch op {
	case OpAdd:
		return left + right
	case OpSubtract:
		return left - right
	case OpMultiply:
		return left * right
	case OpDivide:
		return left / right
	default:
		panic(fmt.Sprintf("arith: not a binary opcode: %s", op))
	}
}

// trace prints the stack snapshot and the disassembly of the pending
// instruction.
func (vm *VM) trace() error {
	if _, err := fmt.Fprint(vm.out, "[ "); err != nil {
		return err
	}
	for _, value := range vm.stack {
		if _, err := fmt.Fprintf(vm.out, "%v ", value); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(vm.out, "]"); err != nil {
		return err
	}
	return vm.chunk.DisassembleInstruction(vm.out, vm.ip)
}

func (vm *VM) push(value float64) {
	vm.stack = append(vm.stack, value)
}

func (vm *VM) pop() (float64, error) {
	if len(vm.stack) == 0 {
		return 0, ErrStackUnderflow
	}
	value := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return value, nil
}
