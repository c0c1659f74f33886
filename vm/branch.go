package vm

import "fmt"

// executeBranch handles the three branch forms. All of them manage
// the PC themselves; the step loop does not advance it afterwards.
func (m *VM) executeBranch(inst Instruction) error {
	switch inst.BranchKind() {
	case BranchUnconditional:
		m.CPU.AdvancePC(inst.Simm26() * InstructionSize)
		return nil

	case BranchConditional:
		if m.CPU.PSTATE.EvaluateCondition(inst.Cond()) {
			m.CPU.AdvancePC(inst.Simm19() * InstructionSize)
		} else {
			m.CPU.IncrementPC()
		}
		return nil

	case BranchRegister:
		m.CPU.Branch(m.CPU.Read64(inst.Xn()))
		return nil
	}
	return fmt.Errorf("unknown branch form 0x%08X", uint32(inst))
}
