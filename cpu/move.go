package cpu

// opMove copies source to destination and sets N and Z. The source is
// resolved first, so its extension words precede the destination's in
// the stream.
func (c *CPU) opMove(mem []byte, opcode uint16, size Size) {
	value := c.GetEffectiveValue(mem, (opcode>>3)&7, opcode&7, size)
	c.SetEffectiveValue(mem, (opcode>>6)&7, (opcode>>9)&7, value, size)
	c.setFlagsNZ(value, size)
	c.SetFlag(SRV, false)
	c.SetFlag(SRC, false)
}

// opMovea loads an address register without touching the flags. Word
// sources sign-extend to the full register.
func (c *CPU) opMovea(mem []byte, opcode uint16, size Size) {
	value := c.GetEffectiveValue(mem, (opcode>>3)&7, opcode&7, size)
	if size == SizeWord {
		value = uint32(int32(int16(value)))
	}
	c.A[(opcode>>9)&7] = value
}

// opMoveq loads a sign-extended 8-bit immediate into a data register.
func (c *CPU) opMoveq(params Params) {
	value := uint32(int32(int8(params[0])))
	c.D[params[1]] = value
	c.setFlagsNZ(value, SizeLong)
	c.SetFlag(SRV, false)
	c.SetFlag(SRC, false)
}

// opMovem transfers a masked set of registers to or from memory. The
// mask word follows the opcode. For pre-decrement stores the mask is
// reversed (bit 0 names A7) and the address register tracks the
// transfer; for post-increment loads it likewise keeps its final
// value. Word-sized loads sign-extend into the full register.
func (c *CPU) opMovem(mem []byte, opcode uint16, params Params) {
	toRegs := params[0] != 0
	size := Size(params[1])
	eaMode := (opcode >> 3) & 7
	eaReg := opcode & 7
	mask := c.FetchWord(mem)

	regValue := func(n int) uint32 {
		if n < 8 {
			return c.D[n]
		}
		return c.A[n-8]
	}
	setReg := func(n int, v uint32) {
		if n < 8 {
			c.D[n] = v
		} else {
			c.A[n-8] = v
		}
	}

	if !toRegs {
		if eaMode == ModeAddrPreDec {
			for i := 0; i < 16; i++ {
				if mask&(1<<i) == 0 {
					continue
				}
				c.A[eaReg] -= uint32(size)
				c.WriteMemory(mem, c.A[eaReg], regValue(15-i), size)
			}
			return
		}
		addr := c.controlAddress(mem, eaMode, eaReg)
		for i := 0; i < 16; i++ {
			if mask&(1<<i) == 0 {
				continue
			}
			c.WriteMemory(mem, addr, regValue(i), size)
			addr += uint32(size)
		}
		return
	}

	var addr uint32
	if eaMode == ModeAddrPostInc {
		addr = c.A[eaReg]
	} else {
		addr = c.controlAddress(mem, eaMode, eaReg)
	}
	for i := 0; i < 16; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		value := c.ReadMemory(mem, addr, size)
		if size == SizeWord {
			value = uint32(int32(int16(value)))
		}
		setReg(i, value)
		addr += uint32(size)
	}
	if eaMode == ModeAddrPostInc {
		c.A[eaReg] = addr
	}
}

// opMovep moves bytes between a data register and alternating memory
// bytes, the classic peripheral transfer.
func (c *CPU) opMovep(mem []byte, opcode uint16) {
	dreg := (opcode >> 9) & 7
	areg := opcode & 7
	opmode := (opcode >> 6) & 7
	disp := int32(int16(c.FetchWord(mem)))
	addr := c.A[areg] + uint32(disp)

	count := 2
	if opmode&1 != 0 {
		count = 4
	}

	if opmode < 6 {
		var value uint32
		for i := 0; i < count; i++ {
			value = value<<8 | c.ReadMemory(mem, addr+uint32(i*2), SizeByte)
		}
		if count == 2 {
			mergeRegister(&c.D[dreg], value, SizeWord)
		} else {
			c.D[dreg] = value
		}
		return
	}

	value := c.D[dreg]
	for i := 0; i < count; i++ {
		shift := uint(8 * (count - 1 - i))
		c.WriteMemory(mem, addr+uint32(i*2), value>>shift&0xFF, SizeByte)
	}
}

// opExg swaps two whole registers. The opmode selects the register
// classes involved.
func (c *CPU) opExg(opcode uint16) {
	rx := (opcode >> 9) & 7
	ry := opcode & 7

	switch (opcode >> 3) & 0x1F {
	case 0x08:
		c.D[rx], c.D[ry] = c.D[ry], c.D[rx]
	case 0x09:
		c.A[rx], c.A[ry] = c.A[ry], c.A[rx]
	case 0x11:
		c.D[rx], c.A[ry] = c.A[ry], c.D[rx]
	}
}

// opSwap exchanges the halves of a data register.
func (c *CPU) opSwap(opcode uint16) {
	reg := opcode & 7
	c.D[reg] = c.D[reg]>>16 | c.D[reg]<<16
	c.setFlagsNZ(c.D[reg], SizeLong)
	c.SetFlag(SRV, false)
	c.SetFlag(SRC, false)
}

// opLea loads an effective address without dereferencing it.
func (c *CPU) opLea(mem []byte, opcode uint16) {
	c.A[(opcode>>9)&7] = c.controlAddress(mem, (opcode>>3)&7, opcode&7)
}

// opPea pushes an effective address onto the stack.
func (c *CPU) opPea(mem []byte, opcode uint16) {
	c.pushLong(mem, c.controlAddress(mem, (opcode>>3)&7, opcode&7))
}

// opLink builds a stack frame: push the frame register, point it at
// the new frame, then bias the stack pointer by the displacement.
func (c *CPU) opLink(mem []byte, opcode uint16) {
	reg := opcode & 7
	disp := int32(int16(c.FetchWord(mem)))
	c.pushLong(mem, c.A[reg])
	c.A[reg] = c.A[7]
	c.A[7] += uint32(disp)
}

// opUnlk tears the frame back down.
func (c *CPU) opUnlk(mem []byte, opcode uint16) {
	reg := opcode & 7
	c.A[7] = c.A[reg]
	c.A[reg] = c.popLong(mem)
}
