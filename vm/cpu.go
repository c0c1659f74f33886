package vm

import "fmt"

// CPU represents the AArch64 processor state: 31 general purpose
// 64-bit registers, the program counter, and the condition flags.
// Register index 31 is the zero register: reads return 0 and writes
// are discarded. The stack pointer is declared but write-protected in
// this subset.
type CPU struct {
	// General purpose registers X0-X30
	X [NumRegisters]uint64

	// Program Counter (byte address)
	PC uint64

	// Condition flags
	PSTATE PSTATE
}

// NewCPU creates and initializes a new CPU instance
func NewCPU() *CPU {
	return &CPU{
		PSTATE: NewPSTATE(),
	}
}

// Reset resets the CPU to initial state
func (c *CPU) Reset() {
	for i := range c.X {
		c.X[i] = 0
	}
	c.PC = 0
	c.PSTATE = NewPSTATE()
}

// Read64 returns the full 64-bit value of a register.
// Index 31 is the zero register.
func (c *CPU) Read64(reg int) uint64 {
	if reg < 0 || reg >= NumRegisters {
		return 0
	}
	return c.X[reg]
}

// Read32 returns the 32-bit view of a register (W alias).
func (c *CPU) Read32(reg int) uint32 {
	return uint32(c.Read64(reg))
}

// Write64 writes a 64-bit value to a register.
// Writes to the zero register are discarded.
func (c *CPU) Write64(reg int, value uint64) {
	if reg < 0 || reg >= NumRegisters {
		return
	}
	c.X[reg] = value
}

// Write32 writes the 32-bit view of a register. Per AArch64
// semantics the upper 32 bits of the target are cleared.
func (c *CPU) Write32(reg int, value uint32) {
	c.Write64(reg, uint64(value))
}

// SetSP rejects writes to the stack pointer, which is declared but
// write-protected in this subset.
func (c *CPU) SetSP(uint64) error {
	return fmt.Errorf("cannot write to stack pointer register")
}

// IncrementPC advances the program counter by one instruction
func (c *CPU) IncrementPC() {
	c.PC += InstructionSize
}

// AdvancePC adds a signed byte offset to the program counter
func (c *CPU) AdvancePC(offset int64) {
	c.PC = uint64(int64(c.PC) + offset)
}

// Branch sets the program counter to a new address
func (c *CPU) Branch(address uint64) {
	c.PC = address
}
