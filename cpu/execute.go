package cpu

// Step executes a single instruction against the caller's memory.
// Order per step: breakpoint check, fetch, decode, dispatch. A halted
// processor does nothing. Hitting an enabled breakpoint halts before
// fetching and records the hit; clearing Halted (or calling Resume)
// steps past it without re-triggering on the same arrival.
func (c *CPU) Step(mem []byte) {
	if c.Halted {
		return
	}
	c.Bus.Active = false

	if c.BreakpointHit && c.BreakpointAddr == c.PC {
		c.BreakpointHit = false
	} else if c.checkBreakpoint(c.PC) {
		c.Halted = true
		return
	}

	opcode := c.FetchWord(mem)
	if c.Halted {
		return
	}

	op, params := Decode(opcode)
	c.execute(mem, op, opcode, params)
	c.Instructions++
}

// Resume clears the halt condition so stepping can continue. It does
// not clear the cause; a processor halted by a fault will typically
// fault again.
func (c *CPU) Resume() {
	c.Halted = false
}

// Run steps until the processor halts or maxSteps instructions have
// executed. It returns the number of instructions actually executed,
// which excludes a step consumed by a breakpoint halt.
func (c *CPU) Run(mem []byte, maxSteps int) int {
	start := c.Instructions
	for int(c.Instructions-start) < maxSteps && !c.Halted {
		c.Step(mem)
	}
	return int(c.Instructions - start)
}

func (c *CPU) execute(mem []byte, op Op, opcode uint16, params Params) {
	switch {
	case op.IsApollo():
		if !c.ApolloEnabled {
			c.Halted = true
			return
		}
		c.executeApollo(mem, op, opcode)
		return
	case op.IsBranch():
		c.executeBranch(mem, op, params)
		return
	case op.IsDBcc():
		c.executeDBcc(mem, opcode, params)
		return
	case op.IsSet():
		c.executeScc(mem, opcode, params)
		return
	case op.IsShift():
		c.executeShift(mem, op, opcode, params)
		return
	case op.IsBitOp():
		c.executeBitOp(mem, op, opcode, params)
		return
	case op.IsBitField():
		c.executeBitField(mem, op, opcode)
		return
	case op.IsBCD():
		c.executeBCD(mem, op, opcode)
		return
	}

	switch op {
	case OpNOP, OpILLEGAL:
		// Unrecognised words execute as a no-op.
	case OpMOVE:
		c.opMove(mem, opcode, Size(params[0]))
	case OpMOVEA:
		c.opMovea(mem, opcode, Size(params[0]))
	case OpMOVEQ:
		c.opMoveq(params)
	case OpMOVEM:
		c.opMovem(mem, opcode, params)
	case OpMOVEP:
		c.opMovep(mem, opcode)
	case OpEXG:
		c.opExg(opcode)
	case OpSWAP:
		c.opSwap(opcode)
	case OpLEA:
		c.opLea(mem, opcode)
	case OpPEA:
		c.opPea(mem, opcode)
	case OpLINK:
		c.opLink(mem, opcode)
	case OpUNLK:
		c.opUnlk(mem, opcode)

	case OpADD, OpSUB:
		c.opAddSub(mem, op, opcode, Size(params[0]), params[1] != 0)
	case OpADDA, OpSUBA:
		c.opAddSubAddr(mem, op, opcode, Size(params[0]))
	case OpADDI, OpSUBI:
		c.opAddSubImm(mem, op, opcode, Size(params[0]))
	case OpADDQ, OpSUBQ:
		c.opAddSubQuick(mem, op, opcode, uint32(params[0]), Size(params[1]))
	case OpADDX, OpSUBX:
		c.opAddSubExtend(mem, op, opcode, Size(params[0]), params[1] != 0)
	case OpMULU, OpMULS:
		c.opMul(mem, op, opcode)
	case OpDIVU, OpDIVS:
		c.opDiv(mem, op, opcode)
	case OpNEG, OpNEGX:
		c.opNeg(mem, op, opcode, Size(params[0]))
	case OpCLR:
		c.opClr(mem, opcode, Size(params[0]))
	case OpEXT:
		c.opExt(opcode, Size(params[0]))
	case OpEXTB:
		c.opExtb(opcode)

	case OpAND, OpOR, OpEOR:
		c.opLogic(mem, op, opcode, Size(params[0]), params[1] != 0)
	case OpANDI, OpORI, OpEORI:
		c.opLogicImm(mem, op, opcode, Size(params[0]))
	case OpNOT:
		c.opNot(mem, opcode, Size(params[0]))

	case OpCMP:
		c.opCmp(mem, opcode, Size(params[0]))
	case OpCMPA:
		c.opCmpa(mem, opcode, Size(params[0]))
	case OpCMPI:
		c.opCmpi(mem, opcode, Size(params[0]))
	case OpCMPM:
		c.opCmpm(mem, opcode, Size(params[0]))
	case OpTST:
		c.opTst(mem, opcode, Size(params[0]))

	case OpJMP:
		c.opJmp(mem, opcode)
	case OpJSR:
		c.opJsr(mem, opcode)
	case OpRTS:
		c.opRts(mem)
	case OpRTR:
		c.opRtr(mem)
	case OpRTE:
		c.opRte(mem)
	case OpRTD:
		c.opRtd(mem)

	case OpTRAP:
		c.opTrap(params[0])
	case OpTRAPV:
		c.opTrapv()
	case OpCHK:
		c.opChk(mem, opcode)
	case OpBKPT:
		c.Halted = true
	case OpRESET:
		c.opResetInstr()
	case OpSTOP:
		c.opStop(mem)
	case OpTAS:
		c.opTas(mem, opcode)

	case OpANDItoCCR, OpORItoCCR, OpEORItoCCR:
		c.opLogicCCR(mem, op)
	case OpANDItoSR, OpORItoSR, OpEORItoSR:
		c.opLogicSR(mem, op)
	case OpMOVEfromSR:
		c.opMoveFromSR(mem, opcode)
	case OpMOVEtoCCR:
		c.opMoveToCCR(mem, opcode)
	case OpMOVEtoSR:
		c.opMoveToSR(mem, opcode)
	case OpMOVEUSP:
		c.opMoveUSP(opcode, params[0] != 0)
	case OpMOVEC:
		c.opMovec(mem, params[0] != 0)
	case OpMOVES:
		c.opMoves(mem, opcode, Size(params[0]))

	case OpCALLM:
		c.opCallm(mem, opcode)
	case OpCAS:
		c.opCas(mem, opcode, Size(params[0]))
	case OpCAS2:
		c.opCas2(mem, Size(params[0]))
	case OpCMP2:
		c.opCmp2(mem, opcode, Size(params[0]))
	case OpDIVUL, OpDIVSL:
		c.opDivLong(mem, op, opcode)
	case OpPACK:
		c.opPack(mem, opcode)
	case OpUNPK:
		c.opUnpk(mem, opcode)
	}
}
