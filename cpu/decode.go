package cpu

// Decode classifies a single 16-bit opcode word. It is pure: no state
// is read or written, and extension words are left in the instruction
// stream for the executor to fetch. Every word decodes to something;
// unrecognised patterns come back as OpILLEGAL.
func Decode(word uint16) (Op, Params) {
	switch word >> 12 {
	case 0x0:
		return decodeLine0(word)
	case 0x1:
		return decodeMove(word, SizeByte)
	case 0x2:
		return decodeMove(word, SizeLong)
	case 0x3:
		return decodeMove(word, SizeWord)
	case 0x4:
		return decodeLine4(word)
	case 0x5:
		return decodeLine5(word)
	case 0x6:
		return decodeBranch(word)
	case 0x7:
		return decodeMoveq(word)
	case 0x8:
		return decodeLine8(word)
	case 0x9:
		return decodeAddSub(word, OpSUB, OpSUBA, OpSUBX)
	case 0xB:
		return decodeLineB(word)
	case 0xC:
		return decodeLineC(word)
	case 0xD:
		return decodeAddSub(word, OpADD, OpADDA, OpADDX)
	case 0xE:
		return decodeLineE(word)
	case 0xF:
		return decodeApollo(word)
	}
	return OpILLEGAL, Params{}
}

// Line 0: immediates, bit operations, MOVEP and the 68020 additions
// that hide in the gaps. Order matters: exact words first, then the
// tighter masks, then the generic immediate group.
func decodeLine0(word uint16) (Op, Params) {
	switch word {
	case 0x003C:
		return OpORItoCCR, Params{}
	case 0x007C:
		return OpORItoSR, Params{}
	case 0x023C:
		return OpANDItoCCR, Params{}
	case 0x027C:
		return OpANDItoSR, Params{}
	case 0x0A3C:
		return OpEORItoCCR, Params{}
	case 0x0A7C:
		return OpEORItoSR, Params{}
	case 0x0CFC:
		return OpCAS2, Params{0: byte(SizeWord)}
	case 0x0EFC:
		return OpCAS2, Params{0: byte(SizeLong)}
	}

	switch {
	case word&0xFFC0 == 0x0AC0:
		return OpCAS, Params{0: byte(SizeByte)}
	case word&0xFFC0 == 0x0CC0:
		return OpCAS, Params{0: byte(SizeWord)}
	case word&0xFFC0 == 0x0EC0:
		return OpCAS, Params{0: byte(SizeLong)}
	case word&0xFF00 == 0x0E00:
		return OpMOVES, Params{0: byte(sizeFromBits(word >> 6))}
	case word&0xFFC0 == 0x06C0:
		return OpCALLM, Params{}
	case word&0xFFC0 == 0x00C0:
		return OpCMP2, Params{0: byte(SizeByte)}
	case word&0xFFC0 == 0x02C0:
		return OpCMP2, Params{0: byte(SizeWord)}
	case word&0xFFC0 == 0x04C0:
		return OpCMP2, Params{0: byte(SizeLong)}
	case word&0xF138 == 0x0108:
		return OpMOVEP, Params{}
	}

	// Dynamic bit operations: bit number in a data register.
	if word&0xF100 == 0x0100 {
		ops := [4]Op{OpBTST, OpBCHG, OpBCLR, OpBSET}
		return ops[(word>>6)&3], Params{0: 1}
	}

	// The immediate group, selected by bits 9-11.
	size := sizeFromBits(word >> 6)
	switch (word >> 9) & 7 {
	case 0:
		return OpORI, Params{0: byte(size)}
	case 1:
		return OpANDI, Params{0: byte(size)}
	case 2:
		return OpSUBI, Params{0: byte(size)}
	case 3:
		return OpADDI, Params{0: byte(size)}
	case 4:
		ops := [4]Op{OpBTST, OpBCHG, OpBCLR, OpBSET}
		return ops[(word>>6)&3], Params{0: 0}
	case 5:
		return OpEORI, Params{0: byte(size)}
	case 6:
		return OpCMPI, Params{0: byte(size)}
	}
	return OpILLEGAL, Params{}
}

// Lines 1-3: MOVE and MOVEA. The line number selects the size; a
// destination in an address register makes it MOVEA.
func decodeMove(word uint16, size Size) (Op, Params) {
	dstMode := (word >> 6) & 7
	if dstMode == ModeAddr {
		if size == SizeByte {
			return OpILLEGAL, Params{}
		}
		return OpMOVEA, Params{0: byte(size)}
	}
	return OpMOVE, Params{0: byte(size)}
}

// Line 4: the miscellaneous line. Almost everything here shares the
// 0x4xxx prefix, so exact words come first and the generic single-EA
// groups come last.
func decodeLine4(word uint16) (Op, Params) {
	switch word {
	case 0x4AFC:
		return OpILLEGAL, Params{}
	case 0x4E70:
		return OpRESET, Params{}
	case 0x4E71:
		return OpNOP, Params{}
	case 0x4E72:
		return OpSTOP, Params{}
	case 0x4E73:
		return OpRTE, Params{}
	case 0x4E74:
		return OpRTD, Params{}
	case 0x4E75:
		return OpRTS, Params{}
	case 0x4E76:
		return OpTRAPV, Params{}
	case 0x4E77:
		return OpRTR, Params{}
	}

	switch {
	case word&0xFFF0 == 0x4E40:
		return OpTRAP, Params{0: byte(word & 0xF)}
	case word&0xFFF0 == 0x4E60:
		return OpMOVEUSP, Params{0: byte((word >> 3) & 1)}
	case word&0xFFFE == 0x4E7A:
		return OpMOVEC, Params{0: byte(word & 1)}
	case word&0xFFF8 == 0x4E50:
		return OpLINK, Params{}
	case word&0xFFF8 == 0x4E58:
		return OpUNLK, Params{}
	case word&0xFFC0 == 0x4E80:
		return OpJSR, Params{}
	case word&0xFFC0 == 0x4EC0:
		return OpJMP, Params{}
	case word&0xFFC0 == 0x40C0:
		return OpMOVEfromSR, Params{}
	case word&0xFFC0 == 0x44C0:
		return OpMOVEtoCCR, Params{}
	case word&0xFFC0 == 0x46C0:
		return OpMOVEtoSR, Params{}
	case word&0xFFF8 == 0x4840:
		return OpSWAP, Params{}
	case word&0xFFF8 == 0x4848:
		return OpBKPT, Params{0: byte(word & 7)}
	case word&0xFFC0 == 0x4800:
		return OpNBCD, Params{}
	case word&0xFFC0 == 0x4840:
		return OpPEA, Params{}
	case word&0xFFB8 == 0x4880:
		// EXT claims the register-direct slots MOVEM can't use.
		if word&0x40 != 0 {
			return OpEXT, Params{0: byte(SizeLong)}
		}
		return OpEXT, Params{0: byte(SizeWord)}
	case word&0xFB80 == 0x4880:
		size := SizeWord
		if word&0x40 != 0 {
			size = SizeLong
		}
		return OpMOVEM, Params{0: byte((word >> 10) & 1), 1: byte(size)}
	case word&0xFFC0 == 0x4C40:
		return OpDIVUL, Params{}
	case word&0xFFC0 == 0x4C00:
		return OpDIVSL, Params{}
	case word&0xFFC0 == 0x4AC0:
		return OpTAS, Params{}
	case word&0xFF00 == 0x4A00:
		return OpTST, Params{0: byte(sizeFromBits(word >> 6))}
	case word&0xFF00 == 0x4000:
		return OpNEGX, Params{0: byte(sizeFromBits(word >> 6))}
	case word&0xFF00 == 0x4200:
		return OpCLR, Params{0: byte(sizeFromBits(word >> 6))}
	case word&0xFF00 == 0x4400:
		return OpNEG, Params{0: byte(sizeFromBits(word >> 6))}
	case word&0xFF00 == 0x4600:
		return OpNOT, Params{0: byte(sizeFromBits(word >> 6))}
	case word&0xFFF8 == 0x49C0:
		return OpEXTB, Params{}
	case word&0xF1C0 == 0x4180:
		return OpCHK, Params{}
	case word&0xF1C0 == 0x41C0:
		return OpLEA, Params{}
	}
	return OpILLEGAL, Params{}
}

// Line 5: ADDQ, SUBQ and the conditional Scc/DBcc pair.
func decodeLine5(word uint16) (Op, Params) {
	cond := byte((word >> 8) & 0xF)
	if (word>>6)&3 == 3 {
		if (word>>3)&7 == ModeAddr {
			return OpDBT + Op(cond), Params{0: cond}
		}
		return OpST + Op(cond), Params{0: cond}
	}

	data := byte((word >> 9) & 7)
	if data == 0 {
		data = 8
	}
	size := sizeFromBits(word >> 6)
	if word&0x100 != 0 {
		return OpSUBQ, Params{0: data, 1: byte(size)}
	}
	return OpADDQ, Params{0: data, 1: byte(size)}
}

// Line 6: BRA, BSR and the fourteen conditional branches.
func decodeBranch(word uint16) (Op, Params) {
	cond := byte((word >> 8) & 0xF)
	disp := byte(word & 0xFF)
	switch cond {
	case CondT:
		return OpBRA, Params{0: cond, 1: disp}
	case CondF:
		return OpBSR, Params{0: cond, 1: disp}
	}
	return OpBHI + Op(cond-CondHI), Params{0: cond, 1: disp}
}

// Line 7: MOVEQ. Bit 8 must be clear.
func decodeMoveq(word uint16) (Op, Params) {
	if word&0x100 != 0 {
		return OpILLEGAL, Params{}
	}
	return OpMOVEQ, Params{0: byte(word), 1: byte((word >> 9) & 7)}
}

// Line 8: OR, DIVU/DIVS, SBCD and the 68020 PACK/UNPK pair.
func decodeLine8(word uint16) (Op, Params) {
	switch {
	case word&0xF1F0 == 0x8100:
		return OpSBCD, Params{0: byte((word >> 3) & 1)}
	case word&0xF1F0 == 0x8140:
		return OpPACK, Params{0: byte((word >> 3) & 1)}
	case word&0xF1F0 == 0x8180:
		return OpUNPK, Params{0: byte((word >> 3) & 1)}
	case word&0xF1C0 == 0x80C0:
		return OpDIVU, Params{}
	case word&0xF1C0 == 0x81C0:
		return OpDIVS, Params{}
	}
	return OpOR, Params{0: byte(sizeFromBits(word >> 6)), 1: byte((word >> 8) & 1)}
}

// Lines 9 and D share a shape: the opmode picks between the plain,
// address-destination and extended forms.
func decodeAddSub(word uint16, plain, addr, extended Op) (Op, Params) {
	if (word>>6)&3 == 3 {
		size := SizeWord
		if word&0x100 != 0 {
			size = SizeLong
		}
		return addr, Params{0: byte(size)}
	}
	if word&0x0130 == 0x0100 {
		return extended, Params{
			0: byte(sizeFromBits(word >> 6)),
			1: byte((word >> 3) & 1),
		}
	}
	return plain, Params{0: byte(sizeFromBits(word >> 6)), 1: byte((word >> 8) & 1)}
}

// Line B: CMP, CMPA, CMPM and EOR.
func decodeLineB(word uint16) (Op, Params) {
	if (word>>6)&3 == 3 {
		size := SizeWord
		if word&0x100 != 0 {
			size = SizeLong
		}
		return OpCMPA, Params{0: byte(size)}
	}
	size := sizeFromBits(word >> 6)
	switch {
	case word&0xF138 == 0xB108:
		return OpCMPM, Params{0: byte(size)}
	case word&0x100 != 0:
		return OpEOR, Params{0: byte(size)}
	}
	return OpCMP, Params{0: byte(size)}
}

// Line C: AND, MULU/MULS, ABCD and EXG.
func decodeLineC(word uint16) (Op, Params) {
	switch {
	case word&0xF1C0 == 0xC0C0:
		return OpMULU, Params{}
	case word&0xF1C0 == 0xC1C0:
		return OpMULS, Params{}
	case word&0xF1F0 == 0xC100:
		return OpABCD, Params{0: byte((word >> 3) & 1)}
	case word&0xF1F8 == 0xC140, word&0xF1F8 == 0xC148, word&0xF1F8 == 0xC188:
		return OpEXG, Params{0: byte((word >> 3) & 0x1F)}
	}
	return OpAND, Params{0: byte(sizeFromBits(word >> 6)), 1: byte((word >> 8) & 1)}
}

var bitFieldOps = [8]Op{
	OpBFTST, OpBFEXTU, OpBFCHG, OpBFEXTS,
	OpBFCLR, OpBFFFO, OpBFSET, OpBFINS,
}

var shiftOps = [4][2]Op{
	{OpASR, OpASL},
	{OpLSR, OpLSL},
	{OpROXR, OpROXL},
	{OpROR, OpROL},
}

// Line E: shifts, rotates and the bit field group.
func decodeLineE(word uint16) (Op, Params) {
	if word&0x08C0 == 0x08C0 {
		return bitFieldOps[(word>>8)&7], Params{}
	}

	dir := (word >> 8) & 1
	if (word>>6)&3 == 3 {
		// Memory form: shifts the EA operand one bit.
		return shiftOps[(word>>9)&3][dir], Params{0: byte(SizeWord), 1: 1}
	}
	return shiftOps[(word>>3)&3][dir], Params{0: byte(sizeFromBits(word >> 6))}
}

var vectorOps = [...]Op{
	OpVADD, OpVSUB, OpVMUL, OpVDIV,
	OpVAND, OpVOR, OpVXOR, OpVNOT,
	OpVLOAD, OpVSTORE, OpVMOVE,
	OpVDOT, OpVCROSS, OpVABS, OpVSQRT,
	OpVMIN, OpVMAX, OpVSUM,
}

var quadOps = [...]Op{
	OpADD64, OpSUB64, OpMUL64, OpDIV64, OpMOVE64, OpCMP64,
}

var fpuOps = [...]Op{
	OpFMOVE, OpFADD, OpFSUB, OpFMUL, OpFDIV,
	OpFSQRT, OpFABS, OpFNEG, OpFCMP, OpFTST,
	OpFSIN, OpFCOS, OpFTAN,
}

// Line F: the Apollo extension line. Bits 9-11 select the family,
// bits 4-8 the operation; register numbers travel in one extension
// word that the executor fetches.
func decodeApollo(word uint16) (Op, Params) {
	sub := int((word >> 4) & 0x1F)
	params := Params{0: byte(word & 0xF)}

	switch (word >> 9) & 7 {
	case 0:
		if sub < len(vectorOps) {
			return vectorOps[sub], params
		}
	case 1:
		if sub < len(quadOps) {
			return quadOps[sub], params
		}
	case 2:
		if sub < len(fpuOps) {
			return fpuOps[sub], params
		}
	}
	return OpILLEGAL, Params{}
}
