package cpu

func (c *CPU) logicOp(op Op, src, dst uint32, size Size) uint32 {
	var result uint32
	switch op {
	case OpAND, OpANDI:
		result = dst & src
	case OpOR, OpORI:
		result = dst | src
	default:
		result = dst ^ src
	}
	result = maskValue(result, size)
	c.setFlagsNZ(result, size)
	c.SetFlag(SRV, false)
	c.SetFlag(SRC, false)
	return result
}

// opLogic handles the register forms of AND, OR and EOR. EOR only
// exists in the EA-destination direction; for the others bit 8 picks
// the direction.
func (c *CPU) opLogic(mem []byte, op Op, opcode uint16, size Size, toEA bool) {
	reg := (opcode >> 9) & 7
	eaMode := (opcode >> 3) & 7
	eaReg := opcode & 7

	if op == OpEOR || toEA {
		src := maskValue(c.D[reg], size)
		c.rmw(mem, eaMode, eaReg, size, func(dst uint32) uint32 {
			return c.logicOp(op, src, dst, size)
		})
		return
	}

	src := c.GetEffectiveValue(mem, eaMode, eaReg, size)
	dst := maskValue(c.D[reg], size)
	mergeRegister(&c.D[reg], c.logicOp(op, src, dst, size), size)
}

// opLogicImm handles ANDI, ORI and EORI with a memory or register
// destination.
func (c *CPU) opLogicImm(mem []byte, op Op, opcode uint16, size Size) {
	imm := c.GetEffectiveValue(mem, ModeOther, RegImmediate, size)
	c.rmw(mem, (opcode>>3)&7, opcode&7, size, func(dst uint32) uint32 {
		return c.logicOp(op, imm, dst, size)
	})
}

// opNot complements the destination bits.
func (c *CPU) opNot(mem []byte, opcode uint16, size Size) {
	c.rmw(mem, (opcode>>3)&7, opcode&7, size, func(dst uint32) uint32 {
		result := maskValue(^dst, size)
		c.setFlagsNZ(result, size)
		c.SetFlag(SRV, false)
		c.SetFlag(SRC, false)
		return result
	})
}
