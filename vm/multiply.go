package vm

// executeMultiply handles madd and msub:
// rd := ra +/- (rn * rm) at the selected width. An ra field of 31 is
// the zero register, so mul/mneg fall out as madd/msub with ra = xzr.
func (m *VM) executeMultiply(inst Instruction) {
	if inst.Sf64() {
		ra := m.CPU.Read64(inst.Ra())
		product := m.CPU.Read64(inst.Rn()) * m.CPU.Read64(inst.Rm())

		var result uint64
		if inst.MultiplySub() {
			result = ra - product
		} else {
			result = ra + product
		}
		m.CPU.Write64(inst.Rd(), result)
		return
	}

	ra := m.CPU.Read32(inst.Ra())
	product := m.CPU.Read32(inst.Rn()) * m.CPU.Read32(inst.Rm())

	var result uint32
	if inst.MultiplySub() {
		result = ra - product
	} else {
		result = ra + product
	}
	m.CPU.Write32(inst.Rd(), result)
}
