package vm

import (
	"fmt"
	"io"
)

// DumpState writes the final machine state: all registers, the PC,
// the PSTATE flags, and every non-zero memory word.
//
//	Registers:
//	X00    = 0000000000000005
//	...
//	PC     = 0000000000000004
//	PSTATE : -Z--
//	Non-Zero Memory:
//	0x00000000: d28000a0
func (m *VM) DumpState(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Registers:"); err != nil {
		return err
	}
	for i := 0; i < NumRegisters; i++ {
		if _, err := fmt.Fprintf(w, "X%02d    = %016x\n", i, m.CPU.Read64(i)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "PC     = %016x\n", m.CPU.PC); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "PSTATE : %s\n", m.CPU.PSTATE); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "Non-Zero Memory:"); err != nil {
		return err
	}
	for addr := uint64(0); addr < MemorySize; addr += 4 {
		word, err := m.Memory.ReadWord(addr)
		if err != nil {
			return err
		}
		if word != 0 {
			if _, err := fmt.Fprintf(w, "0x%08x: %08x\n", addr, word); err != nil {
				return err
			}
		}
	}
	return nil
}
