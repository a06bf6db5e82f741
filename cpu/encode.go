package cpu

import "fmt"

// Encoding describes one instruction for the encoder. Not every field
// matters for every op: Data carries the odd small immediates (quick
// values, vectors, condition displacements, shift counts) and the
// source/destination pairs carry effective addresses where the op has
// them.
type Encoding struct {
	Op      Op
	Size    Size
	SrcMode uint16
	SrcReg  uint16
	DstMode uint16
	DstReg  uint16
	Data    uint16
}

func (e Encoding) srcEA() uint16 { return e.SrcMode<<3 | e.SrcReg&7 }
func (e Encoding) dstEA() uint16 { return e.DstMode<<3 | e.DstReg&7 }

// sizeField validates and encodes the common two-bit size field.
func (e Encoding) sizeField() (uint16, error) {
	switch e.Size {
	case SizeByte, SizeWord, SizeLong:
		return sizeBits(e.Size) << 6, nil
	}
	return 0, fmt.Errorf("encode %s: bad size %d", e.Op, e.Size)
}

// Word produces the opcode word for the encoding. Extension words
// (immediates, displacements, register lists) are the caller's to
// append; Word only covers the first word of the instruction.
func (e Encoding) Word() (uint16, error) {
	switch e.Op {
	case OpNOP:
		return 0x4E71, nil
	case OpRESET:
		return 0x4E70, nil
	case OpSTOP:
		return 0x4E72, nil
	case OpRTE:
		return 0x4E73, nil
	case OpRTD:
		return 0x4E74, nil
	case OpRTS:
		return 0x4E75, nil
	case OpTRAPV:
		return 0x4E76, nil
	case OpRTR:
		return 0x4E77, nil
	case OpILLEGAL:
		return 0x4AFC, nil
	case OpANDItoCCR:
		return 0x023C, nil
	case OpANDItoSR:
		return 0x027C, nil
	case OpORItoCCR:
		return 0x003C, nil
	case OpORItoSR:
		return 0x007C, nil
	case OpEORItoCCR:
		return 0x0A3C, nil
	case OpEORItoSR:
		return 0x0A7C, nil

	case OpMOVE, OpMOVEA:
		var line uint16
		switch e.Size {
		case SizeByte:
			line = 0x1000
		case SizeLong:
			line = 0x2000
		case SizeWord:
			line = 0x3000
		default:
			return 0, fmt.Errorf("encode %s: bad size %d", e.Op, e.Size)
		}
		dstMode := e.DstMode
		if e.Op == OpMOVEA {
			if e.Size == SizeByte {
				return 0, fmt.Errorf("encode MOVEA: no byte form")
			}
			dstMode = ModeAddr
		}
		return line | e.DstReg&7<<9 | dstMode<<6 | e.srcEA(), nil

	case OpMOVEQ:
		return 0x7000 | e.DstReg&7<<9 | e.Data&0xFF, nil

	case OpMOVEM:
		word := uint16(0x4880) | e.Data&1<<10 | e.srcEA()
		if e.Size == SizeLong {
			word |= 0x40
		}
		return word, nil

	case OpMOVEP:
		return 0x0008 | e.DstReg&7<<9 | e.Data&7<<6 | e.SrcReg&7, nil

	case OpEXG:
		return 0xC100 | e.DstReg&7<<9 | e.Data&0x1F<<3 | e.SrcReg&7, nil
	case OpSWAP:
		return 0x4840 | e.DstReg&7, nil
	case OpLEA:
		return 0x41C0 | e.DstReg&7<<9 | e.srcEA(), nil
	case OpPEA:
		return 0x4840 | e.srcEA(), nil
	case OpLINK:
		return 0x4E50 | e.DstReg&7, nil
	case OpUNLK:
		return 0x4E58 | e.DstReg&7, nil

	case OpADD, OpSUB, OpAND, OpOR:
		size, err := e.sizeField()
		if err != nil {
			return 0, err
		}
		base := map[Op]uint16{OpADD: 0xD000, OpSUB: 0x9000, OpAND: 0xC000, OpOR: 0x8000}[e.Op]
		return base | e.DstReg&7<<9 | e.Data&1<<8 | size | e.srcEA(), nil

	case OpEOR:
		size, err := e.sizeField()
		if err != nil {
			return 0, err
		}
		return 0xB100 | e.SrcReg&7<<9 | size | e.dstEA(), nil

	case OpADDA, OpSUBA, OpCMPA:
		base := map[Op]uint16{OpADDA: 0xD0C0, OpSUBA: 0x90C0, OpCMPA: 0xB0C0}[e.Op]
		word := base | e.DstReg&7<<9 | e.srcEA()
		switch e.Size {
		case SizeLong:
			word |= 0x100
		case SizeWord:
		default:
			return 0, fmt.Errorf("encode %s: bad size %d", e.Op, e.Size)
		}
		return word, nil

	case OpADDI, OpSUBI, OpANDI, OpORI, OpEORI, OpCMPI:
		size, err := e.sizeField()
		if err != nil {
			return 0, err
		}
		base := map[Op]uint16{
			OpORI: 0x0000, OpANDI: 0x0200, OpSUBI: 0x0400,
			OpADDI: 0x0600, OpEORI: 0x0A00, OpCMPI: 0x0C00,
		}[e.Op]
		return base | size | e.dstEA(), nil

	case OpADDQ, OpSUBQ:
		size, err := e.sizeField()
		if err != nil {
			return 0, err
		}
		word := uint16(0x5000) | e.Data&7<<9 | size | e.dstEA()
		if e.Op == OpSUBQ {
			word |= 0x100
		}
		return word, nil

	case OpADDX, OpSUBX:
		size, err := e.sizeField()
		if err != nil {
			return 0, err
		}
		base := uint16(0xD100)
		if e.Op == OpSUBX {
			base = 0x9100
		}
		return base | e.DstReg&7<<9 | size | e.Data&1<<3 | e.SrcReg&7, nil

	case OpMULU, OpMULS, OpDIVU, OpDIVS:
		base := map[Op]uint16{
			OpMULU: 0xC0C0, OpMULS: 0xC1C0, OpDIVU: 0x80C0, OpDIVS: 0x81C0,
		}[e.Op]
		return base | e.DstReg&7<<9 | e.srcEA(), nil

	case OpNEG, OpNEGX, OpCLR, OpNOT, OpTST:
		size, err := e.sizeField()
		if err != nil {
			return 0, err
		}
		base := map[Op]uint16{
			OpNEGX: 0x4000, OpCLR: 0x4200, OpNEG: 0x4400,
			OpNOT: 0x4600, OpTST: 0x4A00,
		}[e.Op]
		return base | size | e.dstEA(), nil

	case OpEXT:
		if e.Size == SizeLong {
			return 0x48C0 | e.DstReg&7, nil
		}
		return 0x4880 | e.DstReg&7, nil
	case OpEXTB:
		return 0x49C0 | e.DstReg&7, nil

	case OpCMP:
		size, err := e.sizeField()
		if err != nil {
			return 0, err
		}
		return 0xB000 | e.DstReg&7<<9 | size | e.srcEA(), nil

	case OpCMPM:
		size, err := e.sizeField()
		if err != nil {
			return 0, err
		}
		return 0xB108 | e.DstReg&7<<9 | size | e.SrcReg&7, nil

	case OpTAS:
		return 0x4AC0 | e.dstEA(), nil
	case OpNBCD:
		return 0x4800 | e.dstEA(), nil
	case OpABCD:
		return 0xC100 | e.DstReg&7<<9 | e.Data&1<<3 | e.SrcReg&7, nil
	case OpSBCD:
		return 0x8100 | e.DstReg&7<<9 | e.Data&1<<3 | e.SrcReg&7, nil
	case OpPACK:
		return 0x8140 | e.DstReg&7<<9 | e.Data&1<<3 | e.SrcReg&7, nil
	case OpUNPK:
		return 0x8180 | e.DstReg&7<<9 | e.Data&1<<3 | e.SrcReg&7, nil

	case OpJMP:
		return 0x4EC0 | e.srcEA(), nil
	case OpJSR:
		return 0x4E80 | e.srcEA(), nil
	case OpTRAP:
		return 0x4E40 | e.Data&0xF, nil
	case OpBKPT:
		return 0x4848 | e.Data&7, nil
	case OpCHK:
		return 0x4180 | e.DstReg&7<<9 | e.srcEA(), nil

	case OpMOVEfromSR:
		return 0x40C0 | e.dstEA(), nil
	case OpMOVEtoCCR:
		return 0x44C0 | e.srcEA(), nil
	case OpMOVEtoSR:
		return 0x46C0 | e.srcEA(), nil
	case OpMOVEUSP:
		return 0x4E60 | e.Data&1<<3 | e.DstReg&7, nil
	case OpMOVEC:
		return 0x4E7A | e.Data&1, nil
	case OpMOVES:
		size, err := e.sizeField()
		if err != nil {
			return 0, err
		}
		return 0x0E00 | size | e.dstEA(), nil

	case OpCALLM:
		return 0x06C0 | e.srcEA(), nil
	case OpCAS:
		base, err := casBase(e.Size)
		if err != nil {
			return 0, err
		}
		return base | e.dstEA(), nil
	case OpCAS2:
		if e.Size == SizeLong {
			return 0x0EFC, nil
		}
		return 0x0CFC, nil
	case OpCMP2:
		base := map[Size]uint16{SizeByte: 0x00C0, SizeWord: 0x02C0, SizeLong: 0x04C0}[e.Size]
		if base == 0 {
			return 0, fmt.Errorf("encode CMP2: bad size %d", e.Size)
		}
		return base | e.srcEA(), nil
	case OpDIVUL:
		return 0x4C40 | e.srcEA(), nil
	case OpDIVSL:
		return 0x4C00 | e.srcEA(), nil
	}

	if word, ok := e.encodeGroups(); ok {
		return word, nil
	}
	return 0, fmt.Errorf("encode: no encoding for %s", e.Op)
}

func casBase(size Size) (uint16, error) {
	switch size {
	case SizeByte:
		return 0x0AC0, nil
	case SizeWord:
		return 0x0CC0, nil
	case SizeLong:
		return 0x0EC0, nil
	}
	return 0, fmt.Errorf("encode CAS: bad size %d", size)
}

// encodeGroups covers the ops whose tag maps arithmetically into a
// family: branches, Scc, DBcc, shifts, bit ops, bit fields and the
// extension line.
func (e Encoding) encodeGroups() (uint16, bool) {
	op := e.Op

	switch {
	case op.IsBranch():
		var cond uint16
		switch op {
		case OpBRA:
			cond = CondT
		case OpBSR:
			cond = CondF
		default:
			cond = uint16(op-OpBHI) + CondHI
		}
		return 0x6000 | cond<<8 | e.Data&0xFF, true

	case op.IsSet():
		cond := uint16(op - OpST)
		return 0x50C0 | cond<<8 | e.dstEA(), true

	case op.IsDBcc():
		cond := uint16(op - OpDBT)
		return 0x50C8 | cond<<8 | e.DstReg&7, true

	case op.IsShift():
		kind := map[Op]uint16{
			OpASR: 0, OpASL: 0, OpLSR: 1, OpLSL: 1,
			OpROXR: 2, OpROXL: 2, OpROR: 3, OpROL: 3,
		}[op]
		var dir uint16
		switch op {
		case OpASL, OpLSL, OpROXL, OpROL:
			dir = 1
		}
		if e.DstMode != ModeData {
			// Memory form, always one bit of a word operand.
			return 0xE0C0 | kind<<9 | dir<<8 | e.dstEA(), true
		}
		size, err := e.sizeField()
		if err != nil {
			return 0, false
		}
		return 0xE000 | e.Data&7<<9 | dir<<8 | size | kind<<3 | e.DstReg&7, true

	case op.IsBitOp():
		kind := uint16(op-OpBTST) << 6
		if e.SrcMode == ModeData {
			// Dynamic form: bit number in a data register.
			return 0x0100 | e.SrcReg&7<<9 | kind | e.dstEA(), true
		}
		return 0x0800 | kind | e.dstEA(), true

	case op.IsBitField():
		base := map[Op]uint16{
			OpBFTST: 0xE8C0, OpBFEXTU: 0xE9C0, OpBFCHG: 0xEAC0,
			OpBFEXTS: 0xEBC0, OpBFCLR: 0xECC0, OpBFFFO: 0xEDC0,
			OpBFSET: 0xEEC0, OpBFINS: 0xEFC0,
		}[op]
		return base | e.dstEA(), true

	case op.IsApollo():
		var group, sub uint16
		switch {
		case op.IsVector():
			group, sub = 0, uint16(op-OpVADD)
		case op.Is64Bit():
			group, sub = 1, uint16(op-OpADD64)
		default:
			group, sub = 2, uint16(op-OpFMOVE)
		}
		return 0xF000 | group<<9 | sub<<4 | e.Data&0xF, true
	}
	return 0, false
}
