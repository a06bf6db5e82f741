package cpu

// executeBranch handles BRA, BSR and the conditional branches. The
// displacement is relative to the word after the opcode. An 8-bit
// displacement of zero selects a 16-bit displacement word, which is
// consumed whether or not the branch is taken.
func (c *CPU) executeBranch(mem []byte, op Op, params Params) {
	base := c.PC
	disp := int32(int8(params[1]))
	if params[1] == 0 {
		disp = int32(int16(c.FetchWord(mem)))
	}

	c.BranchCount++

	taken := true
	switch op {
	case OpBRA, OpBSR:
	default:
		taken = c.TestCondition(params[0])
	}
	if !taken {
		return
	}

	if op == OpBSR {
		c.pushLong(mem, c.PC)
	}
	c.BranchTaken++
	c.PC = base + uint32(disp)
}

// executeDBcc: when the condition fails, decrement the low word of the
// counter register and loop unless it rolled under to -1. The
// displacement is relative to its own extension word.
func (c *CPU) executeDBcc(mem []byte, opcode uint16, params Params) {
	reg := opcode & 7
	base := c.PC
	disp := int32(int16(c.FetchWord(mem)))

	c.BranchCount++
	if c.TestCondition(params[0]) {
		return
	}

	counter := uint16(c.D[reg]) - 1
	mergeRegister(&c.D[reg], uint32(counter), SizeWord)
	if counter != 0xFFFF {
		c.BranchTaken++
		c.PC = base + uint32(disp)
	}
}

// executeScc writes all-ones or all-zeroes to a byte destination
// depending on the condition.
func (c *CPU) executeScc(mem []byte, opcode uint16, params Params) {
	var value uint32
	if c.TestCondition(params[0]) {
		value = 0xFF
	}
	c.SetEffectiveValue(mem, (opcode>>3)&7, opcode&7, value, SizeByte)
}

func (c *CPU) opJmp(mem []byte, opcode uint16) {
	c.PC = c.controlAddress(mem, (opcode>>3)&7, opcode&7)
}

func (c *CPU) opJsr(mem []byte, opcode uint16) {
	// Resolve the target first so the pushed return address points
	// past any extension words.
	target := c.controlAddress(mem, (opcode>>3)&7, opcode&7)
	c.pushLong(mem, c.PC)
	c.PC = target
}

func (c *CPU) opRts(mem []byte) {
	c.PC = c.popLong(mem)
}

// opRtr restores the condition codes from the stack, then returns.
func (c *CPU) opRtr(mem []byte) {
	ccr := c.popWord(mem)
	c.SR = c.SR&0xFF00 | ccr&0x00FF
	c.PC = c.popLong(mem)
}

// opRte restores the full status register and returns. Outside
// supervisor state this is a privilege violation and halts.
func (c *CPU) opRte(mem []byte) {
	if !c.Flag(SRS) {
		c.Halted = true
		return
	}
	c.SR = c.popWord(mem)
	c.PC = c.popLong(mem)
}

// opRtd returns and then displaces the stack pointer, releasing the
// caller's argument area.
func (c *CPU) opRtd(mem []byte) {
	disp := int32(int16(c.FetchWord(mem)))
	c.PC = c.popLong(mem)
	c.A[7] += uint32(disp)
}
