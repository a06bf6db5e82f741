package cpu

// opCallm approximates the module call as a subroutine call: the
// argument count word is consumed and the module descriptor at the EA
// becomes the call target. No module stack frame is built.
func (c *CPU) opCallm(mem []byte, opcode uint16) {
	c.FetchWord(mem)
	target := c.controlAddress(mem, (opcode>>3)&7, opcode&7)
	c.pushLong(mem, c.PC)
	c.PC = target
}

// opCas compares a memory operand against a compare register and, on
// match, stores the update register. On mismatch the compare register
// learns the operand instead.
func (c *CPU) opCas(mem []byte, opcode uint16, size Size) {
	ext := c.FetchWord(mem)
	update := (ext >> 6) & 7
	compare := ext & 7

	addr := c.operandAddress(mem, (opcode>>3)&7, opcode&7, size)
	dst := c.ReadMemory(mem, addr, size)
	cmp := maskValue(c.D[compare], size)
	c.setFlagsSub(cmp, dst, maskValue(dst-cmp, size), size)

	if c.Flag(SRZ) {
		c.WriteMemory(mem, addr, maskValue(c.D[update], size), size)
		return
	}
	mergeRegister(&c.D[compare], dst, size)
}

// opCas2 is the two-location variant. Both comparisons must succeed
// before either store happens.
func (c *CPU) opCas2(mem []byte, size Size) {
	ext1 := c.FetchWord(mem)
	ext2 := c.FetchWord(mem)

	operand := func(ext uint16) (addr uint32, update, compare uint16) {
		n := (ext >> 12) & 7
		if ext&0x8000 != 0 {
			addr = c.A[n]
		} else {
			addr = c.D[n]
		}
		return addr, (ext >> 6) & 7, ext & 7
	}

	addr1, up1, cp1 := operand(ext1)
	addr2, up2, cp2 := operand(ext2)

	dst1 := c.ReadMemory(mem, addr1, size)
	dst2 := c.ReadMemory(mem, addr2, size)

	cmp1 := maskValue(c.D[cp1], size)
	c.setFlagsSub(cmp1, dst1, maskValue(dst1-cmp1, size), size)
	if c.Flag(SRZ) {
		cmp2 := maskValue(c.D[cp2], size)
		c.setFlagsSub(cmp2, dst2, maskValue(dst2-cmp2, size), size)
	}

	if c.Flag(SRZ) {
		c.WriteMemory(mem, addr1, maskValue(c.D[up1], size), size)
		c.WriteMemory(mem, addr2, maskValue(c.D[up2], size), size)
		return
	}
	mergeRegister(&c.D[cp1], dst1, size)
	mergeRegister(&c.D[cp2], dst2, size)
}

// opCmp2 checks a register against the bounds pair at the EA. C flags
// out-of-range, Z an exact hit on either bound.
func (c *CPU) opCmp2(mem []byte, opcode uint16, size Size) {
	ext := c.FetchWord(mem)
	addr := c.controlAddress(mem, (opcode>>3)&7, opcode&7)

	lower := c.ReadMemory(mem, addr, size)
	upper := c.ReadMemory(mem, addr+uint32(size), size)

	n := (ext >> 12) & 7
	var value uint32
	if ext&0x8000 != 0 {
		value = c.A[n]
	} else {
		value = maskValue(c.D[n], size)
	}

	c.SetFlag(SRZ, value == lower || value == upper)
	c.SetFlag(SRC, value < lower || value > upper)
}

// opDivLong handles DIVUL and DIVSL: a full 32-bit quotient and
// remainder in separate registers. Division by zero is fatal and
// leaves both untouched.
func (c *CPU) opDivLong(mem []byte, op Op, opcode uint16) {
	ext := c.FetchWord(mem)
	quotReg := (ext >> 12) & 7
	remReg := ext & 7

	src := c.GetEffectiveValue(mem, (opcode>>3)&7, opcode&7, SizeLong)
	if src == 0 {
		c.Halted = true
		return
	}

	var quotient, remainder uint32
	if op == OpDIVUL {
		dividend := c.D[quotReg]
		quotient = dividend / src
		remainder = dividend % src
	} else {
		dividend := int32(c.D[quotReg])
		divisor := int32(src)
		quotient = uint32(dividend / divisor)
		remainder = uint32(dividend % divisor)
	}

	c.D[remReg] = remainder
	c.D[quotReg] = quotient
	c.setFlagsNZ(quotient, SizeLong)
	c.SetFlag(SRV, false)
	c.SetFlag(SRC, false)
	c.Cycles += cyclesDivu
}

// opPack squeezes the two BCD digits of a word into one byte after
// adding the adjustment. Register form works Dy to Dx; the memory form
// runs both address registers backwards.
func (c *CPU) opPack(mem []byte, opcode uint16) {
	rx := (opcode >> 9) & 7
	ry := opcode & 7
	adj := c.FetchWord(mem)

	pack := func(value uint32) uint32 {
		value += uint32(adj)
		return value >> 4 & 0xF0 | value & 0x0F
	}

	if opcode&0x08 != 0 {
		c.A[ry] -= 2
		src := c.ReadMemory(mem, c.A[ry], SizeWord)
		c.A[rx] -= addrStep(rx, SizeByte)
		c.WriteMemory(mem, c.A[rx], pack(src), SizeByte)
		return
	}
	mergeRegister(&c.D[rx], pack(maskValue(c.D[ry], SizeWord)), SizeByte)
}

// opUnpk spreads a packed byte into two digit nibbles and adds the
// adjustment.
func (c *CPU) opUnpk(mem []byte, opcode uint16) {
	rx := (opcode >> 9) & 7
	ry := opcode & 7
	adj := c.FetchWord(mem)

	unpack := func(value uint32) uint32 {
		return (value&0xF0<<4 | value&0x0F) + uint32(adj)
	}

	if opcode&0x08 != 0 {
		c.A[ry] -= addrStep(ry, SizeByte)
		src := c.ReadMemory(mem, c.A[ry], SizeByte)
		c.A[rx] -= 2
		c.WriteMemory(mem, c.A[rx], unpack(src), SizeWord)
		return
	}
	mergeRegister(&c.D[rx], unpack(maskValue(c.D[ry], SizeByte)), SizeWord)
}
