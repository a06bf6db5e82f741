package cpu

// Control register numbers for MOVEC.
const (
	ctrlUSP = 0x800
	ctrlVBR = 0x801
)

// privileged halts and reports false unless the processor is in
// supervisor state. Every privileged instruction funnels through it.
func (c *CPU) privileged() bool {
	if !c.Flag(SRS) {
		c.Halted = true
		return false
	}
	return true
}

// opTrap hands the vector number to the registered handler. Without a
// handler there is nobody to service the trap, so the processor halts.
func (c *CPU) opTrap(vector byte) {
	if c.OnTrap == nil {
		c.Halted = true
		return
	}
	c.OnTrap(vector)
}

// opTrapv halts on overflow and does nothing otherwise.
func (c *CPU) opTrapv() {
	if c.Flag(SRV) {
		c.Halted = true
	}
}

// opChk bounds-checks the low word of a data register against the
// source. Out of bounds is fatal; N records which side failed.
func (c *CPU) opChk(mem []byte, opcode uint16) {
	bound := int32(int16(c.GetEffectiveValue(mem, (opcode>>3)&7, opcode&7, SizeWord)))
	value := int32(int16(c.D[(opcode>>9)&7]))

	if value < 0 {
		c.SetFlag(SRN, true)
		c.Halted = true
		return
	}
	if value > bound {
		c.SetFlag(SRN, false)
		c.Halted = true
	}
}

// opResetInstr would pulse the external reset line; with no external
// devices modelled it only enforces the privilege check.
func (c *CPU) opResetInstr() {
	c.privileged()
}

// opStop loads the status register from the immediate word and halts.
func (c *CPU) opStop(mem []byte) {
	imm := c.FetchWord(mem)
	if !c.privileged() {
		return
	}
	c.SR = imm
	c.Halted = true
}

// opTas tests a byte and sets its high bit in one indivisible access.
func (c *CPU) opTas(mem []byte, opcode uint16) {
	c.rmw(mem, (opcode>>3)&7, opcode&7, SizeByte, func(dst uint32) uint32 {
		c.setFlagsNZ(dst, SizeByte)
		c.SetFlag(SRV, false)
		c.SetFlag(SRC, false)
		return dst | 0x80
	})
}

// opLogicCCR applies an immediate to the condition code byte.
func (c *CPU) opLogicCCR(mem []byte, op Op) {
	imm := c.FetchWord(mem) & 0xFF
	switch op {
	case OpANDItoCCR:
		c.SR &= 0xFF00 | imm
	case OpORItoCCR:
		c.SR |= imm
	default:
		c.SR ^= imm
	}
}

// opLogicSR applies an immediate to the whole status register.
// Supervisor only.
func (c *CPU) opLogicSR(mem []byte, op Op) {
	imm := c.FetchWord(mem)
	if !c.privileged() {
		return
	}
	switch op {
	case OpANDItoSR:
		c.SR &= imm
	case OpORItoSR:
		c.SR |= imm
	default:
		c.SR ^= imm
	}
}

func (c *CPU) opMoveFromSR(mem []byte, opcode uint16) {
	c.SetEffectiveValue(mem, (opcode>>3)&7, opcode&7, uint32(c.SR), SizeWord)
}

func (c *CPU) opMoveToCCR(mem []byte, opcode uint16) {
	value := c.GetEffectiveValue(mem, (opcode>>3)&7, opcode&7, SizeWord)
	c.SR = c.SR&0xFF00 | uint16(value)&0x00FF
}

func (c *CPU) opMoveToSR(mem []byte, opcode uint16) {
	value := c.GetEffectiveValue(mem, (opcode>>3)&7, opcode&7, SizeWord)
	if !c.privileged() {
		return
	}
	c.SR = uint16(value)
}

// opMoveUSP transfers the user stack pointer to or from an address
// register. Supervisor only.
func (c *CPU) opMoveUSP(opcode uint16, toReg bool) {
	if !c.privileged() {
		return
	}
	reg := opcode & 7
	if toReg {
		c.A[reg] = c.USP
	} else {
		c.USP = c.A[reg]
	}
}

// opMovec moves between a control register and a general register. The
// extension word names both; only USP and VBR exist here, anything
// else transfers zero.
func (c *CPU) opMovec(mem []byte, toControl bool) {
	ext := c.FetchWord(mem)
	if !c.privileged() {
		return
	}

	regNum := (ext >> 12) & 7
	general := &c.D[regNum]
	if ext&0x8000 != 0 {
		general = &c.A[regNum]
	}

	var control *uint32
	switch ext & 0xFFF {
	case ctrlUSP:
		control = &c.USP
	case ctrlVBR:
		control = &c.VBR
	}

	if toControl {
		if control != nil {
			*control = *general
		}
		return
	}
	if control != nil {
		*general = *control
	} else {
		*general = 0
	}
}

// opMoves moves to or from "address space" memory. With no MMU or
// function codes modelled, the access goes to ordinary memory; the
// privilege check is the part that matters.
func (c *CPU) opMoves(mem []byte, opcode uint16, size Size) {
	ext := c.FetchWord(mem)
	if !c.privileged() {
		return
	}

	regNum := (ext >> 12) & 7
	general := &c.D[regNum]
	if ext&0x8000 != 0 {
		general = &c.A[regNum]
	}

	eaMode := (opcode >> 3) & 7
	eaReg := opcode & 7
	if ext&0x0800 != 0 {
		c.SetEffectiveValue(mem, eaMode, eaReg, maskValue(*general, size), size)
		return
	}
	value := c.GetEffectiveValue(mem, eaMode, eaReg, size)
	mergeRegister(general, value, size)
}
