package cpu

// shiftOnce moves value one bit in the direction op implies and
// reports the bit shifted out. ROXL/ROXR rotate through the extend
// flag and update it here.
func (c *CPU) shiftOnce(op Op, value uint32, size Size) (uint32, bool) {
	msb := msbMask(size)

	switch op {
	case OpASL, OpLSL:
		carry := value&msb != 0
		return maskValue(value<<1, size), carry
	case OpLSR:
		carry := value&1 != 0
		return value >> 1, carry
	case OpASR:
		carry := value&1 != 0
		return value>>1 | value&msb, carry
	case OpROL:
		carry := value&msb != 0
		value = maskValue(value<<1, size)
		if carry {
			value |= 1
		}
		return value, carry
	case OpROR:
		carry := value&1 != 0
		value >>= 1
		if carry {
			value |= msb
		}
		return value, carry
	case OpROXL:
		carry := value&msb != 0
		value = maskValue(value<<1, size)
		if c.Flag(SRX) {
			value |= 1
		}
		c.SetFlag(SRX, carry)
		return value, carry
	case OpROXR:
		carry := value&1 != 0
		value >>= 1
		if c.Flag(SRX) {
			value |= msb
		}
		c.SetFlag(SRX, carry)
		return value, carry
	}
	return value, false
}

// shiftBy runs count single-bit steps, tracking the carry out of the
// last step and accumulating ASL sign-change overflow.
func (c *CPU) shiftBy(op Op, value uint32, count uint32, size Size) uint32 {
	msb := msbMask(size)
	carry := false
	overflow := false

	for i := uint32(0); i < count; i++ {
		before := value & msb
		value, carry = c.shiftOnce(op, value, size)
		if op == OpASL && before != value&msb {
			overflow = true
		}
		c.Cycles++
	}

	c.setFlagsNZ(value, size)
	c.SetFlag(SRV, overflow)

	if count == 0 {
		// No movement: C clears, except rotate-through-X where it
		// mirrors X. X itself is untouched.
		if op == OpROXL || op == OpROXR {
			c.SetFlag(SRC, c.Flag(SRX))
		} else {
			c.SetFlag(SRC, false)
		}
		return value
	}

	c.SetFlag(SRC, carry)
	switch op {
	case OpROL, OpROR, OpROXL, OpROXR:
		// Plain rotates never touch X; ROX variants already did.
	default:
		c.SetFlag(SRX, carry)
	}
	return value
}

// executeShift dispatches both shift forms. The register form takes
// its count from opcode bits 9-11 (immediate, zero meaning eight) or
// from a data register modulo 64; the memory form shifts the operand
// at the EA by exactly one bit.
func (c *CPU) executeShift(mem []byte, op Op, opcode uint16, params Params) {
	if params[1] != 0 {
		c.rmw(mem, (opcode>>3)&7, opcode&7, SizeWord, func(dst uint32) uint32 {
			return c.shiftBy(op, dst, 1, SizeWord)
		})
		return
	}

	size := Size(params[0])
	reg := opcode & 7

	var count uint32
	if opcode&0x20 != 0 {
		count = c.D[(opcode>>9)&7] & 63
	} else {
		count = uint32((opcode >> 9) & 7)
		if count == 0 {
			count = 8
		}
	}

	value := maskValue(c.D[reg], size)
	mergeRegister(&c.D[reg], c.shiftBy(op, value, count, size), size)
}
