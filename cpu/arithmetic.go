package cpu

// Extra cycle charges for the iterative instructions, matching the
// longest-path timings of the real pipeline.
const (
	cyclesMul  = 70
	cyclesDivu = 140
	cyclesDivs = 158
)

// rmw reads a destination operand, applies f and writes the result
// back, resolving the effective address only once so its side effects
// happen a single time.
func (c *CPU) rmw(mem []byte, mode, reg uint16, size Size, f func(dst uint32) uint32) {
	switch mode {
	case ModeData:
		dst := maskValue(c.D[reg], size)
		mergeRegister(&c.D[reg], f(dst), size)
	case ModeAddr:
		dst := maskValue(c.A[reg], size)
		mergeRegister(&c.A[reg], f(dst), size)
	default:
		addr := c.operandAddress(mem, mode, reg, size)
		dst := c.ReadMemory(mem, addr, size)
		c.WriteMemory(mem, addr, f(dst), size)
	}
}

func (c *CPU) addSub(op Op, src, dst uint32, size Size) uint32 {
	var result uint32
	if op == OpADD || op == OpADDI || op == OpADDQ {
		result = maskValue(dst+src, size)
		c.setFlagsAdd(src, dst, result, size)
	} else {
		result = maskValue(dst-src, size)
		c.setFlagsSub(src, dst, result, size)
	}
	c.copyCarryToExtend()
	return result
}

// opAddSub handles the register forms of ADD and SUB. Direction bit 8
// selects whether the data register or the effective address is the
// destination.
func (c *CPU) opAddSub(mem []byte, op Op, opcode uint16, size Size, toEA bool) {
	reg := (opcode >> 9) & 7
	eaMode := (opcode >> 3) & 7
	eaReg := opcode & 7

	if !toEA {
		src := c.GetEffectiveValue(mem, eaMode, eaReg, size)
		dst := maskValue(c.D[reg], size)
		mergeRegister(&c.D[reg], c.addSub(op, src, dst, size), size)
		return
	}

	src := maskValue(c.D[reg], size)
	c.rmw(mem, eaMode, eaReg, size, func(dst uint32) uint32 {
		return c.addSub(op, src, dst, size)
	})
}

// opAddSubAddr handles ADDA and SUBA. Word sources sign-extend, the
// whole address register participates and no flags change.
func (c *CPU) opAddSubAddr(mem []byte, op Op, opcode uint16, size Size) {
	reg := (opcode >> 9) & 7
	src := c.GetEffectiveValue(mem, (opcode>>3)&7, opcode&7, size)
	if size == SizeWord {
		src = uint32(int32(int16(src)))
	}
	if op == OpADDA {
		c.A[reg] += src
	} else {
		c.A[reg] -= src
	}
}

// opAddSubImm handles ADDI and SUBI: immediate first in the stream,
// destination after.
func (c *CPU) opAddSubImm(mem []byte, op Op, opcode uint16, size Size) {
	imm := c.GetEffectiveValue(mem, ModeOther, RegImmediate, size)
	if op == OpADDI {
		op = OpADD
	} else {
		op = OpSUB
	}
	c.rmw(mem, (opcode>>3)&7, opcode&7, size, func(dst uint32) uint32 {
		return c.addSub(op, imm, dst, size)
	})
}

// opAddSubQuick handles ADDQ and SUBQ. An address register destination
// takes the full register and leaves the flags alone.
func (c *CPU) opAddSubQuick(mem []byte, op Op, opcode uint16, data uint32, size Size) {
	eaMode := (opcode >> 3) & 7
	eaReg := opcode & 7

	if eaMode == ModeAddr {
		if op == OpADDQ {
			c.A[eaReg] += data
		} else {
			c.A[eaReg] -= data
		}
		return
	}
	c.rmw(mem, eaMode, eaReg, size, func(dst uint32) uint32 {
		return c.addSub(op, data, dst, size)
	})
}

// opAddSubExtend handles ADDX and SUBX. The extend flag folds into the
// operation and Z is clear-only, so multi-precision chains propagate
// zeroness correctly.
func (c *CPU) opAddSubExtend(mem []byte, op Op, opcode uint16, size Size, memory bool) {
	rx := (opcode >> 9) & 7
	ry := opcode & 7

	var x uint32
	if c.Flag(SRX) {
		x = 1
	}

	apply := func(src, dst uint32) uint32 {
		prevZ := c.Flag(SRZ)
		var result uint32
		if op == OpADDX {
			result = maskValue(dst+src+x, size)
			c.setFlagsAdd(src, dst, result, size)
		} else {
			result = maskValue(dst-src-x, size)
			c.setFlagsSub(src, dst, result, size)
		}
		c.copyCarryToExtend()
		if result == 0 {
			c.SetFlag(SRZ, prevZ)
		} else {
			c.SetFlag(SRZ, false)
		}
		return result
	}

	if memory {
		c.A[ry] -= addrStep(ry, size)
		src := c.ReadMemory(mem, c.A[ry], size)
		c.A[rx] -= addrStep(rx, size)
		dst := c.ReadMemory(mem, c.A[rx], size)
		c.WriteMemory(mem, c.A[rx], apply(src, dst), size)
		return
	}

	src := maskValue(c.D[ry], size)
	dst := maskValue(c.D[rx], size)
	mergeRegister(&c.D[rx], apply(src, dst), size)
}

// opMul handles MULU and MULS: word operands, full 32-bit product.
func (c *CPU) opMul(mem []byte, op Op, opcode uint16) {
	reg := (opcode >> 9) & 7
	src := c.GetEffectiveValue(mem, (opcode>>3)&7, opcode&7, SizeWord)

	var result uint32
	if op == OpMULU {
		result = uint32(uint16(src)) * uint32(uint16(c.D[reg]))
	} else {
		result = uint32(int32(int16(src)) * int32(int16(c.D[reg])))
	}
	c.D[reg] = result
	c.setFlagsNZ(result, SizeLong)
	c.SetFlag(SRV, false)
	c.SetFlag(SRC, false)
	c.Cycles += cyclesMul
}

// opDiv handles DIVU and DIVS: 32-bit dividend, word divisor, quotient
// in the low word and remainder in the high word. Division by zero is
// fatal and leaves the destination untouched; a quotient that cannot
// fit a word sets V, clears C and leaves the destination untouched.
func (c *CPU) opDiv(mem []byte, op Op, opcode uint16) {
	reg := (opcode >> 9) & 7
	src := c.GetEffectiveValue(mem, (opcode>>3)&7, opcode&7, SizeWord)

	if uint16(src) == 0 {
		c.Halted = true
		return
	}

	if op == OpDIVU {
		dividend := c.D[reg]
		divisor := uint32(uint16(src))
		quotient := dividend / divisor
		remainder := dividend % divisor
		c.Cycles += cyclesDivu
		if quotient > 0xFFFF {
			c.SetFlag(SRV, true)
			c.SetFlag(SRC, false)
			return
		}
		c.D[reg] = remainder<<16 | quotient&0xFFFF
		c.setFlagsNZ(quotient, SizeWord)
		c.SetFlag(SRV, false)
		c.SetFlag(SRC, false)
		return
	}

	dividend := int32(c.D[reg])
	divisor := int32(int16(src))
	quotient := dividend / divisor
	remainder := dividend % divisor
	c.Cycles += cyclesDivs
	if quotient > 0x7FFF || quotient < -0x8000 {
		c.SetFlag(SRV, true)
		c.SetFlag(SRC, false)
		return
	}
	c.D[reg] = uint32(remainder)<<16 | uint32(quotient)&0xFFFF
	c.setFlagsNZ(uint32(quotient), SizeWord)
	c.SetFlag(SRV, false)
	c.SetFlag(SRC, false)
}

// opNeg handles NEG and NEGX. NEGX subtracts the extend flag too and
// keeps Z clear-only.
func (c *CPU) opNeg(mem []byte, op Op, opcode uint16, size Size) {
	c.rmw(mem, (opcode>>3)&7, opcode&7, size, func(dst uint32) uint32 {
		var x uint32
		if op == OpNEGX && c.Flag(SRX) {
			x = 1
		}
		prevZ := c.Flag(SRZ)
		result := maskValue(0-dst-x, size)
		c.setFlagsSub(dst, 0, result, size)
		c.copyCarryToExtend()
		if op == OpNEGX {
			if result == 0 {
				c.SetFlag(SRZ, prevZ)
			} else {
				c.SetFlag(SRZ, false)
			}
		}
		return result
	})
}

// opClr zeroes the destination and sets the flags accordingly.
func (c *CPU) opClr(mem []byte, opcode uint16, size Size) {
	c.SetEffectiveValue(mem, (opcode>>3)&7, opcode&7, 0, size)
	c.SetFlag(SRN, false)
	c.SetFlag(SRZ, true)
	c.SetFlag(SRV, false)
	c.SetFlag(SRC, false)
}

// opExt sign-extends within a data register: byte to word, or word to
// long.
func (c *CPU) opExt(opcode uint16, size Size) {
	reg := opcode & 7
	var result uint32
	if size == SizeWord {
		result = uint32(uint16(int16(int8(c.D[reg]))))
		mergeRegister(&c.D[reg], result, SizeWord)
	} else {
		result = uint32(int32(int16(c.D[reg])))
		c.D[reg] = result
	}
	c.setFlagsNZ(result, size)
	c.SetFlag(SRV, false)
	c.SetFlag(SRC, false)
}

// opExtb sign-extends a byte straight to a long.
func (c *CPU) opExtb(opcode uint16) {
	reg := opcode & 7
	c.D[reg] = uint32(int32(int8(c.D[reg])))
	c.setFlagsNZ(c.D[reg], SizeLong)
	c.SetFlag(SRV, false)
	c.SetFlag(SRC, false)
}

// opCmp compares a data register against a source. X survives; that is
// what separates CMP from SUB.
func (c *CPU) opCmp(mem []byte, opcode uint16, size Size) {
	reg := (opcode >> 9) & 7
	src := c.GetEffectiveValue(mem, (opcode>>3)&7, opcode&7, size)
	dst := maskValue(c.D[reg], size)
	c.setFlagsSub(src, dst, maskValue(dst-src, size), size)
}

// opCmpa compares against a full address register; word sources
// sign-extend first.
func (c *CPU) opCmpa(mem []byte, opcode uint16, size Size) {
	reg := (opcode >> 9) & 7
	src := c.GetEffectiveValue(mem, (opcode>>3)&7, opcode&7, size)
	if size == SizeWord {
		src = uint32(int32(int16(src)))
	}
	dst := c.A[reg]
	c.setFlagsSub(src, dst, dst-src, SizeLong)
}

// opCmpi compares an immediate against a destination.
func (c *CPU) opCmpi(mem []byte, opcode uint16, size Size) {
	imm := c.GetEffectiveValue(mem, ModeOther, RegImmediate, size)
	dst := c.GetEffectiveValue(mem, (opcode>>3)&7, opcode&7, size)
	c.setFlagsSub(imm, dst, maskValue(dst-imm, size), size)
}

// opCmpm compares post-increment to post-increment. Both address
// registers advance whatever the comparison says.
func (c *CPU) opCmpm(mem []byte, opcode uint16, size Size) {
	rx := (opcode >> 9) & 7
	ry := opcode & 7

	src := c.ReadMemory(mem, c.A[ry], size)
	c.A[ry] += addrStep(ry, size)
	dst := c.ReadMemory(mem, c.A[rx], size)
	c.A[rx] += addrStep(rx, size)

	c.setFlagsSub(src, dst, maskValue(dst-src, size), size)
}

// opTst reads the destination and sets N and Z from it.
func (c *CPU) opTst(mem []byte, opcode uint16, size Size) {
	value := c.GetEffectiveValue(mem, (opcode>>3)&7, opcode&7, size)
	c.setFlagsNZ(value, size)
	c.SetFlag(SRV, false)
	c.SetFlag(SRC, false)
}
