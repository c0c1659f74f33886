package parser

// zeroRegisterOperand is the placeholder inserted by alias expansion.
// It has no width prefix; encoders take the sf bit from another
// operand when they see it.
const zeroRegisterOperand = "rzr"

// ExpandAlias rewrites alias mnemonics into their canonical forms
// before encoding:
//
//	neg  rd, op2      -> sub  rd, rzr, op2
//	negs rd, op2      -> subs rd, rzr, op2
//	cmn  rn, op2      -> adds rzr, rn, op2
//	cmp  rn, op2      -> subs rzr, rn, op2
//	tst  rn, op2      -> ands rzr, rn, op2
//	mvn  rd, op2      -> orn  rd, rzr, op2
//	mov  rd, rm       -> orr  rd, rzr, rm
//	mul  rd, rn, rm   -> madd rd, rn, rm, rzr
//	mneg rd, rn, rm   -> msub rd, rn, rm, rzr
//
// A trailing shift on the two-operand forms is preserved by the
// insertion of the zero register.
func ExpandAlias(mnemonic string, operands []string) (string, []string) {
	switch mnemonic {
	case "neg":
		return "sub", insertOperand(operands, 1)
	case "negs":
		return "subs", insertOperand(operands, 1)
	case "cmn":
		return "adds", insertOperand(operands, 0)
	case "cmp":
		return "subs", insertOperand(operands, 0)
	case "tst":
		return "ands", insertOperand(operands, 0)
	case "mvn":
		return "orn", insertOperand(operands, 1)
	case "mov":
		return "orr", insertOperand(operands, 1)
	case "mul":
		return "madd", append(operands[:len(operands):len(operands)], zeroRegisterOperand)
	case "mneg":
		return "msub", append(operands[:len(operands):len(operands)], zeroRegisterOperand)
	}
	return mnemonic, operands
}

// insertOperand places the zero register at index pos, shifting the
// rest of the operand vector right
func insertOperand(operands []string, pos int) []string {
	result := make([]string, 0, len(operands)+1)
	result = append(result, operands[:pos]...)
	result = append(result, zeroRegisterOperand)
	result = append(result, operands[pos:]...)
	return result
}
