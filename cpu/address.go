package cpu

func maskValue(value uint32, size Size) uint32 {
	switch size {
	case SizeByte:
		return value & 0xFF
	case SizeWord:
		return value & 0xFFFF
	}
	return value
}

// mergeRegister writes the low size bytes of value into the register,
// leaving the upper bytes untouched.
func mergeRegister(reg *uint32, value uint32, size Size) {
	switch size {
	case SizeByte:
		*reg = *reg&0xFFFFFF00 | value&0xFF
	case SizeWord:
		*reg = *reg&0xFFFF0000 | value&0xFFFF
	default:
		*reg = value
	}
}

// addrStep is the post-increment/pre-decrement step. Byte accesses
// through A7 step by two to keep the stack pointer word aligned.
func addrStep(reg uint16, size Size) uint32 {
	if reg == A7 && size == SizeByte {
		return 2
	}
	return uint32(size)
}

// indexedAddress folds a brief extension word into a base address:
// 8-bit displacement, index register number in bits 12-14, address
// register if bit 15, sign-extended word index unless bit 11.
func (c *CPU) indexedAddress(base uint32, ext uint16) uint32 {
	var index uint32
	if ext&0x8000 != 0 {
		index = c.A[(ext>>12)&7]
	} else {
		index = c.D[(ext>>12)&7]
	}
	if ext&0x0800 == 0 {
		index = uint32(int32(int16(index)))
	}
	return base + uint32(int32(int8(ext))) + index
}

// GetEffectiveValue resolves one source operand. Extension words are
// consumed from the instruction stream, advancing PC by two per word
// before the address is formed, and post-increment/pre-decrement
// update their address register as a side effect. The result is
// truncated to size but not sign-extended.
func (c *CPU) GetEffectiveValue(mem []byte, mode, reg uint16, size Size) uint32 {
	switch mode {
	case ModeData:
		return maskValue(c.D[reg], size)
	case ModeAddr:
		return maskValue(c.A[reg], size)
	case ModeAddrInd:
		return c.ReadMemory(mem, c.A[reg], size)
	case ModeAddrPostInc:
		addr := c.A[reg]
		c.A[reg] += addrStep(reg, size)
		return c.ReadMemory(mem, addr, size)
	case ModeAddrPreDec:
		c.A[reg] -= addrStep(reg, size)
		return c.ReadMemory(mem, c.A[reg], size)
	case ModeAddrDisp:
		disp := int32(int16(c.FetchWord(mem)))
		return c.ReadMemory(mem, c.A[reg]+uint32(disp), size)
	case ModeAddrIndex:
		ext := c.FetchWord(mem)
		return c.ReadMemory(mem, c.indexedAddress(c.A[reg], ext), size)
	case ModeOther:
		switch reg {
		case RegAbsShort:
			addr := uint32(int32(int16(c.FetchWord(mem))))
			return c.ReadMemory(mem, addr, size)
		case RegAbsLong:
			return c.ReadMemory(mem, c.FetchLong(mem), size)
		case RegPCDisp:
			base := c.PC
			disp := int32(int16(c.FetchWord(mem)))
			return c.ReadMemory(mem, base+uint32(disp), size)
		case RegPCIndex:
			base := c.PC
			ext := c.FetchWord(mem)
			return c.ReadMemory(mem, c.indexedAddress(base, ext), size)
		case RegImmediate:
			switch size {
			case SizeByte:
				return uint32(c.FetchWord(mem) & 0xFF)
			case SizeWord:
				return uint32(c.FetchWord(mem))
			default:
				return c.FetchLong(mem)
			}
		}
	}
	return 0
}

// SetEffectiveValue resolves one destination operand and stores value
// into it. The same extension-word and side-effect rules as
// GetEffectiveValue apply. Word-sized writes to an address register
// sign-extend to the full register.
func (c *CPU) SetEffectiveValue(mem []byte, mode, reg uint16, value uint32, size Size) {
	switch mode {
	case ModeData:
		mergeRegister(&c.D[reg], value, size)
	case ModeAddr:
		if size == SizeWord {
			c.A[reg] = uint32(int32(int16(value)))
		} else {
			c.A[reg] = value
		}
	case ModeAddrInd:
		c.WriteMemory(mem, c.A[reg], value, size)
	case ModeAddrPostInc:
		addr := c.A[reg]
		c.A[reg] += addrStep(reg, size)
		c.WriteMemory(mem, addr, value, size)
	case ModeAddrPreDec:
		c.A[reg] -= addrStep(reg, size)
		c.WriteMemory(mem, c.A[reg], value, size)
	case ModeAddrDisp:
		disp := int32(int16(c.FetchWord(mem)))
		c.WriteMemory(mem, c.A[reg]+uint32(disp), value, size)
	case ModeAddrIndex:
		ext := c.FetchWord(mem)
		c.WriteMemory(mem, c.indexedAddress(c.A[reg], ext), value, size)
	case ModeOther:
		switch reg {
		case RegAbsShort:
			addr := uint32(int32(int16(c.FetchWord(mem))))
			c.WriteMemory(mem, addr, value, size)
		case RegAbsLong:
			c.WriteMemory(mem, c.FetchLong(mem), value, size)
		case RegPCDisp:
			base := c.PC
			disp := int32(int16(c.FetchWord(mem)))
			c.WriteMemory(mem, base+uint32(disp), value, size)
		case RegPCIndex:
			base := c.PC
			ext := c.FetchWord(mem)
			c.WriteMemory(mem, c.indexedAddress(base, ext), value, size)
		case RegImmediate:
			// Nonsense destination; consume the stream and drop it.
			if size == SizeLong {
				c.FetchLong(mem)
			} else {
				c.FetchWord(mem)
			}
		}
	}
}

// controlAddress computes the address an addressing mode refers to
// without touching memory. Only the control modes are meaningful here;
// LEA, PEA, JMP, JSR and the bit field group all route through it.
func (c *CPU) controlAddress(mem []byte, mode, reg uint16) uint32 {
	switch mode {
	case ModeAddrInd:
		return c.A[reg]
	case ModeAddrDisp:
		disp := int32(int16(c.FetchWord(mem)))
		return c.A[reg] + uint32(disp)
	case ModeAddrIndex:
		ext := c.FetchWord(mem)
		return c.indexedAddress(c.A[reg], ext)
	case ModeOther:
		switch reg {
		case RegAbsShort:
			return uint32(int32(int16(c.FetchWord(mem))))
		case RegAbsLong:
			return c.FetchLong(mem)
		case RegPCDisp:
			base := c.PC
			disp := int32(int16(c.FetchWord(mem)))
			return base + uint32(disp)
		case RegPCIndex:
			base := c.PC
			ext := c.FetchWord(mem)
			return c.indexedAddress(base, ext)
		}
	}
	return 0
}

// operandAddress is controlAddress extended with the post-increment
// and pre-decrement modes, for read-modify-write operands.
func (c *CPU) operandAddress(mem []byte, mode, reg uint16, size Size) uint32 {
	switch mode {
	case ModeAddrPostInc:
		addr := c.A[reg]
		c.A[reg] += addrStep(reg, size)
		return addr
	case ModeAddrPreDec:
		c.A[reg] -= addrStep(reg, size)
		return c.A[reg]
	}
	return c.controlAddress(mem, mode, reg)
}

// pushLong and popLong move long words through the active stack.
func (c *CPU) pushLong(mem []byte, value uint32) {
	c.A[7] -= 4
	c.WriteMemory(mem, c.A[7], value, SizeLong)
}

func (c *CPU) popLong(mem []byte) uint32 {
	value := c.ReadMemory(mem, c.A[7], SizeLong)
	c.A[7] += 4
	return value
}

func (c *CPU) pushWord(mem []byte, value uint16) {
	c.A[7] -= 2
	c.WriteMemory(mem, c.A[7], uint32(value), SizeWord)
}

func (c *CPU) popWord(mem []byte) uint16 {
	value := c.ReadMemory(mem, c.A[7], SizeWord)
	c.A[7] += 2
	return uint16(value)
}
