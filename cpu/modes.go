package cpu

// Size is an operand size in bytes. The values double as the step for
// post-increment and pre-decrement address arithmetic.
type Size uint32

const (
	// SizeByte represents 8-bit data size.
	SizeByte Size = 1
	// SizeWord represents 16-bit data size.
	SizeWord Size = 2
	// SizeLong represents 32-bit data size.
	SizeLong Size = 4
	// SizeQuad represents a 64-bit Apollo operand.
	SizeQuad Size = 8
	// SizeVector represents a full 512-bit Apollo vector register.
	SizeVector Size = 64
)

// sizeFromBits maps the common two-bit size field (opcode bits 6-7).
func sizeFromBits(bits uint16) Size {
	switch bits & 3 {
	case 0:
		return SizeByte
	case 1:
		return SizeWord
	case 2:
		return SizeLong
	default:
		return SizeWord
	}
}

// sizeBits is the inverse of sizeFromBits, used by the encoder.
func sizeBits(size Size) uint16 {
	switch size {
	case SizeByte:
		return 0
	case SizeWord:
		return 1
	default:
		return 2
	}
}

// Addressing mode constants (3-bit mode field + 3-bit register field).
const (
	// ModeData — Data Register Direct: Dn
	ModeData uint16 = 0
	// ModeAddr — Address Register Direct: An
	ModeAddr uint16 = 1
	// ModeAddrInd — Address Register Indirect: (An)
	ModeAddrInd uint16 = 2
	// ModeAddrPostInc — Indirect with Postincrement: (An)+
	ModeAddrPostInc uint16 = 3
	// ModeAddrPreDec — Indirect with Predecrement: -(An)
	ModeAddrPreDec uint16 = 4
	// ModeAddrDisp — Indirect with Displacement: (d16,An)
	ModeAddrDisp uint16 = 5
	// ModeAddrIndex — Indirect with Index: (d8,An,Xn)
	ModeAddrIndex uint16 = 6
	// ModeOther — the miscellaneous modes selected by the register field
	ModeOther uint16 = 7
)

// Register-field submodes for ModeOther.
const (
	// RegAbsShort — absolute short address: (xxx).W
	RegAbsShort uint16 = 0
	// RegAbsLong — absolute long address: (xxx).L
	RegAbsLong uint16 = 1
	// RegPCDisp — program counter with displacement: (d16,PC)
	RegPCDisp uint16 = 2
	// RegPCIndex — program counter with index: (d8,PC,Xn)
	RegPCIndex uint16 = 3
	// RegImmediate — immediate: #<data>
	RegImmediate uint16 = 4
)

// Register numbers.
const (
	D0 = 0
	D1 = 1
	D2 = 2
	D3 = 3
	D4 = 4
	D5 = 5
	D6 = 6
	D7 = 7

	A0 = 0
	A1 = 1
	A2 = 2
	A3 = 3
	A4 = 4
	A5 = 5
	A6 = 6
	A7 = 7 // stack pointer
)
