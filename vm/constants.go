package vm

// Core machine parameters
const (
	// MemorySize is the size of the emulated address space (2 MiB)
	MemorySize = 1 << 21

	// InstructionSize is the size of one instruction word in bytes
	InstructionSize = 4

	// NumRegisters is the number of general purpose registers (X0-X30)
	NumRegisters = 31

	// ZeroRegister is the register index that reads as zero and
	// discards writes (XZR/WZR)
	ZeroRegister = 31

	// HaltInstruction is the sentinel word that terminates execution.
	// It is the encoding of "and x0, x0, x0".
	HaltInstruction = 0x8A000000
)

// DefaultMaxCycles is a cycle guard value for callers to assign to
// VM.CycleLimit. NewVM does not apply it: a fresh VM has CycleLimit 0,
// which means unlimited.
const DefaultMaxCycles = 1000000
