package encoder

// Fixed bit patterns per instruction family. The vm package's
// Instruction accessors read these same positions back; the
// round-trip tests cross-check the two.
const (
	// Data processing, shared
	bitSf64     = 1 << 31
	bitSubtract = 1 << 30
	bitSetFlags = 1 << 29

	// Data processing (immediate)
	dpImmFamily   = 0b100 << 26
	opiArithmetic = 0b010 << 23
	opiWideMove   = 0b101 << 23
	bitImm12Shift = 1 << 22

	// Wide move opc values (bits 30:29)
	opcMovn = 0 << 29
	opcMovz = 2 << 29
	opcMovk = 3 << 29

	// Data processing (register)
	dpRegFamily    = 0b101 << 25
	bitMultiply    = 1 << 28
	bitRegArith    = 1 << 24
	bitNegateOp2   = 1 << 21
	bitMultiplySub = 1 << 15

	// Logic opc values (bits 30:29)
	opcAND      = 0 << 29
	opcOR       = 1 << 29
	opcXOR      = 2 << 29
	opcANDFlags = 3 << 29

	// Data transfer
	dtCommonBits     = 1<<31 | 1<<29 | 1<<28 | 1<<27
	dtLiteralBits    = 1<<28 | 1<<27
	bitDTSf64        = 1 << 30
	bitLoad          = 1 << 22
	bitUnsignedOff   = 1 << 24
	bitRegOffset     = 1 << 21
	regOffsetPattern = 0b011010 << 10
	bitIndexed       = 1 << 10
	bitPreIndex      = 1 << 11

	// Branches
	branchFamily     = 0b101 << 26
	branchCondKind   = 1 << 30
	branchRegKind    = 3 << 30
	branchRegPattern = 0b1000011111 << 16
)

// Minimum operand counts per family
const (
	minAddSubOperands   = 3
	minMultiplyOperands = 4
	minLogicOperands    = 3
	minWideMoveOperands = 2
	minTransferOperands = 2
	minBranchOperands   = 1
)
