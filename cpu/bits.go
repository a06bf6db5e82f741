package cpu

import "math/bits"

// executeBitOp handles BTST, BCHG, BCLR and BSET. The bit number comes
// from a register (dynamic form) or an extension word (static form);
// register operands are longs with the bit number taken modulo 32,
// memory operands are bytes modulo 8. Z reflects the bit before any
// change.
func (c *CPU) executeBitOp(mem []byte, op Op, opcode uint16, params Params) {
	var bit uint32
	if params[0] != 0 {
		bit = c.D[(opcode>>9)&7]
	} else {
		bit = uint32(c.FetchWord(mem)) & 0xFF
	}

	eaMode := (opcode >> 3) & 7
	eaReg := opcode & 7

	if eaMode == ModeData {
		mask := uint32(1) << (bit & 31)
		c.SetFlag(SRZ, c.D[eaReg]&mask == 0)
		switch op {
		case OpBCHG:
			c.D[eaReg] ^= mask
		case OpBCLR:
			c.D[eaReg] &^= mask
		case OpBSET:
			c.D[eaReg] |= mask
		}
		return
	}

	mask := uint32(1) << (bit & 7)
	if op == OpBTST {
		value := c.GetEffectiveValue(mem, eaMode, eaReg, SizeByte)
		c.SetFlag(SRZ, value&mask == 0)
		return
	}
	c.rmw(mem, eaMode, eaReg, SizeByte, func(dst uint32) uint32 {
		c.SetFlag(SRZ, dst&mask == 0)
		switch op {
		case OpBCHG:
			return dst ^ mask
		case OpBCLR:
			return dst &^ mask
		default:
			return dst | mask
		}
	})
}

// bitFieldSpec unpacks the bit field extension word: offset in bits
// 6-10, width in bits 0-4 with zero meaning 32, data register number
// in bits 12-14 for the ops that use one.
func bitFieldSpec(ext uint16) (offset, width, reg uint32) {
	offset = uint32(ext>>6) & 0x1F
	width = uint32(ext) & 0x1F
	if width == 0 {
		width = 32
	}
	reg = uint32(ext>>12) & 7
	return
}

// executeBitField operates on a bit field within a 32-bit operand. The
// offset counts from the most significant bit and wraps, so rotating
// the operand left by the offset brings the field to the top.
func (c *CPU) executeBitField(mem []byte, op Op, opcode uint16) {
	ext := c.FetchWord(mem)
	offset, width, reg := bitFieldSpec(ext)

	eaMode := (opcode >> 3) & 7
	eaReg := opcode & 7

	var value uint32
	var addr uint32
	inMemory := eaMode != ModeData
	if inMemory {
		addr = c.controlAddress(mem, eaMode, eaReg)
		value = c.ReadMemory(mem, addr, SizeLong)
	} else {
		value = c.D[eaReg]
	}

	rot := bits.RotateLeft32(value, int(offset))
	field := rot >> (32 - width)
	fieldMask := uint32(0xFFFFFFFF) << (32 - width)

	c.SetFlag(SRN, field>>(width-1)&1 != 0)
	c.SetFlag(SRZ, field == 0)
	c.SetFlag(SRV, false)
	c.SetFlag(SRC, false)

	writeBack := false
	switch op {
	case OpBFTST:
	case OpBFEXTU:
		c.D[reg] = field
	case OpBFEXTS:
		shift := 32 - width
		c.D[reg] = uint32(int32(field<<shift) >> shift)
	case OpBFFFO:
		if field == 0 {
			c.D[reg] = offset + width
		} else {
			c.D[reg] = offset + uint32(bits.LeadingZeros32(field<<(32-width)))
		}
	case OpBFCHG:
		rot ^= fieldMask
		writeBack = true
	case OpBFCLR:
		rot &^= fieldMask
		writeBack = true
	case OpBFSET:
		rot |= fieldMask
		writeBack = true
	case OpBFINS:
		ins := c.D[reg] & (0xFFFFFFFF >> (32 - width))
		rot = rot&^fieldMask | ins<<(32-width)
		c.SetFlag(SRN, ins>>(width-1)&1 != 0)
		c.SetFlag(SRZ, ins == 0)
		writeBack = true
	}

	if !writeBack {
		return
	}
	value = bits.RotateLeft32(rot, -int(offset))
	if inMemory {
		c.WriteMemory(mem, addr, value, SizeLong)
	} else {
		c.D[eaReg] = value
	}
}
