package cpu

// bcdAdd adds two packed BCD bytes plus the extend bit, digit by
// digit, returning the adjusted byte and the decimal carry.
func bcdAdd(src, dst, x uint32) (uint32, bool) {
	lo := (dst & 0xF) + (src & 0xF) + x
	hi := (dst >> 4 & 0xF) + (src >> 4 & 0xF)
	if lo > 9 {
		lo -= 10
		hi++
	}
	carry := false
	if hi > 9 {
		hi -= 10
		carry = true
	}
	return hi<<4 | lo, carry
}

// bcdSub computes dst-src-x in packed BCD, returning the adjusted byte
// and the decimal borrow.
func bcdSub(src, dst, x uint32) (uint32, bool) {
	lo := int32(dst&0xF) - int32(src&0xF) - int32(x)
	hi := int32(dst>>4&0xF) - int32(src>>4&0xF)
	if lo < 0 {
		lo += 10
		hi--
	}
	borrow := false
	if hi < 0 {
		hi += 10
		borrow = true
	}
	return uint32(hi)<<4 | uint32(lo), borrow
}

// bcdFlags applies the decimal flag rules: C and X from the carry, Z
// clear-only so chained digits keep a sticky zero, N from the result
// sign bit.
func (c *CPU) bcdFlags(result uint32, carry bool) {
	c.SetFlag(SRC, carry)
	c.SetFlag(SRX, carry)
	if result != 0 {
		c.SetFlag(SRZ, false)
	}
	c.SetFlag(SRN, result&0x80 != 0)
}

// executeBCD handles ABCD, SBCD and NBCD. ABCD and SBCD come in a
// register form and a pre-decrement memory form; NBCD negates a single
// byte destination decimally.
func (c *CPU) executeBCD(mem []byte, op Op, opcode uint16) {
	var x uint32
	if c.Flag(SRX) {
		x = 1
	}

	if op == OpNBCD {
		c.rmw(mem, (opcode>>3)&7, opcode&7, SizeByte, func(dst uint32) uint32 {
			result, borrow := bcdSub(dst, 0, x)
			c.bcdFlags(result, borrow)
			return result
		})
		return
	}

	apply := func(src, dst uint32) uint32 {
		var result uint32
		var carry bool
		if op == OpABCD {
			result, carry = bcdAdd(src, dst, x)
		} else {
			result, carry = bcdSub(src, dst, x)
		}
		c.bcdFlags(result, carry)
		return result
	}

	rx := (opcode >> 9) & 7
	ry := opcode & 7

	if opcode&0x08 != 0 {
		c.A[ry] -= addrStep(ry, SizeByte)
		src := c.ReadMemory(mem, c.A[ry], SizeByte)
		c.A[rx] -= addrStep(rx, SizeByte)
		dst := c.ReadMemory(mem, c.A[rx], SizeByte)
		c.WriteMemory(mem, c.A[rx], apply(src, dst), SizeByte)
		return
	}

	src := c.D[ry] & 0xFF
	dst := c.D[rx] & 0xFF
	mergeRegister(&c.D[rx], apply(src, dst), SizeByte)
}
