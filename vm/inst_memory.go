package vm

// executeDataTransfer handles ldr and str in all five addressing
// modes. The effective address is computed per mode; loads of 32-bit
// width zero-extend into the 64-bit register.
func (m *VM) executeDataTransfer(inst Instruction) error {
	if inst.IsLoadLiteral() {
		address := uint64(int64(m.CPU.PC) + inst.Simm19()*InstructionSize)
		return m.transferLoad(inst, address)
	}

	base := m.CPU.Read64(inst.Xn())

	switch {
	case inst.IsImmOffset():
		scale := uint64(4)
		if inst.DTSf64() {
			scale = 8
		}
		return m.transfer(inst, base+uint64(inst.Imm12())*scale)

	case inst.IsRegOffset():
		return m.transfer(inst, base+m.CPU.Read64(inst.Xm()))

	case inst.IsPreIndex():
		address := uint64(int64(base) + inst.Simm9())
		m.CPU.Write64(inst.Xn(), address)
		return m.transfer(inst, address)

	default: // post-index
		if err := m.transfer(inst, base); err != nil {
			return err
		}
		m.CPU.Write64(inst.Xn(), uint64(int64(base)+inst.Simm9()))
		return nil
	}
}

// transfer performs the load or store selected by the L bit
func (m *VM) transfer(inst Instruction, address uint64) error {
	if inst.IsLoad() {
		return m.transferLoad(inst, address)
	}
	return m.transferStore(inst, address)
}

func (m *VM) transferLoad(inst Instruction, address uint64) error {
	if inst.DTSf64() {
		value, err := m.Memory.ReadDoubleWord(address)
		if err != nil {
			return err
		}
		m.CPU.Write64(inst.Rt(), value)
		return nil
	}

	value, err := m.Memory.ReadWord(address)
	if err != nil {
		return err
	}
	m.CPU.Write32(inst.Rt(), value)
	return nil
}

func (m *VM) transferStore(inst Instruction, address uint64) error {
	if inst.DTSf64() {
		return m.Memory.WriteDoubleWord(address, m.CPU.Read64(inst.Rt()))
	}
	return m.Memory.WriteWord(address, m.CPU.Read32(inst.Rt()))
}
