package vm

import "fmt"

// ExecutionState represents the current state of execution
type ExecutionState int

const (
	StateHalted ExecutionState = iota
	StateRunning
	StateError
)

// VM represents the complete virtual machine: register file, memory
// image, and processor state, scoped to one emulation run.
type VM struct {
	CPU    *CPU
	Memory *Memory
	State  ExecutionState

	// Cycle guard for runaway programs; 0 means unlimited
	CycleLimit uint64
	Cycles     uint64

	LastError error
}

// NewVM creates a new virtual machine instance
func NewVM() *VM {
	return &VM{
		CPU:    NewCPU(),
		Memory: NewMemory(),
		State:  StateHalted,
	}
}

// Reset returns the machine to its zero-initialized state
func (m *VM) Reset() {
	m.CPU.Reset()
	m.Memory.Reset()
	m.State = StateHalted
	m.Cycles = 0
	m.LastError = nil
}

// LoadProgram loads a binary image into memory at address 0 and
// resets the program counter
func (m *VM) LoadProgram(image []byte) error {
	if err := m.Memory.LoadImage(image); err != nil {
		return fmt.Errorf("failed to load program: %w", err)
	}
	m.CPU.PC = 0
	m.State = StateHalted
	return nil
}

// Fetch reads the instruction word at the current PC
func (m *VM) Fetch() (Instruction, error) {
	word, err := m.Memory.ReadWord(m.CPU.PC)
	if err != nil {
		return 0, fmt.Errorf("fetch failed at PC=0x%X: %w", m.CPU.PC, err)
	}
	return Instruction(word), nil
}

// Step executes a single instruction. It returns nil with
// State == StateHalted when the halt sentinel is fetched; any
// execution failure moves the machine to StateError.
func (m *VM) Step() error {
	if m.State == StateError {
		return fmt.Errorf("VM is in error state: %w", m.LastError)
	}

	if m.CycleLimit > 0 && m.Cycles >= m.CycleLimit {
		m.State = StateError
		m.LastError = fmt.Errorf("cycle limit exceeded (%d cycles)", m.CycleLimit)
		return m.LastError
	}

	inst, err := m.Fetch()
	if err != nil {
		m.State = StateError
		m.LastError = err
		return err
	}

	if uint32(inst) == HaltInstruction {
		m.State = StateHalted
		return nil
	}

	if err := m.Execute(inst); err != nil {
		m.State = StateError
		m.LastError = fmt.Errorf("execute failed at PC=0x%X: %w", m.CPU.PC, err)
		return m.LastError
	}

	// Branches manage the PC themselves
	if !inst.IsBranch() {
		m.CPU.IncrementPC()
	}

	m.Cycles++
	return nil
}

// Execute dispatches a decoded instruction to its family handler
func (m *VM) Execute(inst Instruction) error {
	switch {
	case inst.IsBranch():
		return m.executeBranch(inst)
	case inst.IsDPImmediate():
		return m.executeDPImmediate(inst)
	case inst.IsDPRegister():
		return m.executeDPRegister(inst)
	case inst.IsDataTransfer():
		return m.executeDataTransfer(inst)
	}
	return fmt.Errorf("unknown instruction 0x%08X", uint32(inst))
}

// Run executes instructions until halt or error
func (m *VM) Run() error {
	m.State = StateRunning
	for m.State == StateRunning {
		if err := m.Step(); err != nil {
			return err
		}
	}
	return nil
}
