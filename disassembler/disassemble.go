// Package disassembler turns machine code back into mnemonics. It
// shares the decoder with the execution core, so the two can never
// disagree about what a word means.
package disassembler

import (
	"fmt"
	"strings"

	"github.com/Urethramancer/m68080/cpu"
)

// Instruction is one disassembled instruction: where it sat, what it
// was and how much of the stream it consumed.
type Instruction struct {
	Address  uint32
	Opcode   uint16
	Op       cpu.Op
	Mnemonic string
	Operands string
	Length   uint32
	NextPC   uint32
}

// String renders the instruction the way a listing would.
func (in Instruction) String() string {
	if in.Operands == "" {
		return fmt.Sprintf("%08X  %s", in.Address, in.Mnemonic)
	}
	return fmt.Sprintf("%08X  %s %s", in.Address, in.Mnemonic, in.Operands)
}

// stream reads big-endian words out of the buffer, tracking how far it
// has come. Reads past the end return zero.
type stream struct {
	mem  []byte
	pc   uint32
	dead bool
}

func (s *stream) word() uint16 {
	if int(s.pc)+1 >= len(s.mem) {
		s.dead = true
		s.pc += 2
		return 0
	}
	w := uint16(s.mem[s.pc])<<8 | uint16(s.mem[s.pc+1])
	s.pc += 2
	return w
}

func (s *stream) long() uint32 {
	hi := uint32(s.word())
	return hi<<16 | uint32(s.word())
}

// Disassemble decodes the instruction at addr. It never fails;
// unrecognised words come back as ILLEGAL with a two-byte length.
func Disassemble(mem []byte, addr uint32) Instruction {
	s := &stream{mem: mem, pc: addr}
	opcode := s.word()
	op, params := cpu.Decode(opcode)

	operands := formatOperands(s, op, opcode, params)

	return Instruction{
		Address:  addr,
		Opcode:   opcode,
		Op:       op,
		Mnemonic: mnemonic(op, params),
		Operands: operands,
		Length:   s.pc - addr,
		NextPC:   s.pc,
	}
}

// Range walks [start,end) linearly, one instruction after another.
// Data interleaved with code will mislead it, as linear sweeps do.
func Range(mem []byte, start, end uint32) []Instruction {
	var out []Instruction
	for pc := start; pc < end; {
		in := Disassemble(mem, pc)
		out = append(out, in)
		pc = in.NextPC
	}
	return out
}

func sizeSuffix(size cpu.Size) string {
	switch size {
	case cpu.SizeByte:
		return ".B"
	case cpu.SizeWord:
		return ".W"
	case cpu.SizeLong:
		return ".L"
	}
	return ""
}

func mnemonic(op cpu.Op, params cpu.Params) string {
	name := op.String()
	switch op {
	case cpu.OpMOVE, cpu.OpMOVEA, cpu.OpMOVEM,
		cpu.OpADD, cpu.OpADDA, cpu.OpADDI, cpu.OpADDQ, cpu.OpADDX,
		cpu.OpSUB, cpu.OpSUBA, cpu.OpSUBI, cpu.OpSUBQ, cpu.OpSUBX,
		cpu.OpAND, cpu.OpANDI, cpu.OpOR, cpu.OpORI,
		cpu.OpEOR, cpu.OpEORI, cpu.OpNOT,
		cpu.OpCMP, cpu.OpCMPI, cpu.OpCMPM, cpu.OpTST,
		cpu.OpNEG, cpu.OpNEGX, cpu.OpCLR, cpu.OpEXT:
		if op == cpu.OpADDQ || op == cpu.OpSUBQ || op == cpu.OpMOVEM {
			return name + sizeSuffix(cpu.Size(params[1]))
		}
		return name + sizeSuffix(cpu.Size(params[0]))
	case cpu.OpCMPA:
		return name + sizeSuffix(cpu.Size(params[0]))
	}
	return name
}

// ea consumes any extension words the mode needs and renders it.
func ea(s *stream, mode, reg uint16, size cpu.Size) string {
	switch mode {
	case cpu.ModeData:
		return fmt.Sprintf("D%d", reg)
	case cpu.ModeAddr:
		return fmt.Sprintf("A%d", reg)
	case cpu.ModeAddrInd:
		return fmt.Sprintf("(A%d)", reg)
	case cpu.ModeAddrPostInc:
		return fmt.Sprintf("(A%d)+", reg)
	case cpu.ModeAddrPreDec:
		return fmt.Sprintf("-(A%d)", reg)
	case cpu.ModeAddrDisp:
		return fmt.Sprintf("$%X(A%d)", int16(s.word()), reg)
	case cpu.ModeAddrIndex:
		return indexString(s.word(), fmt.Sprintf("A%d", reg))
	case cpu.ModeOther:
		switch reg {
		case cpu.RegAbsShort:
			return fmt.Sprintf("$%X.W", s.word())
		case cpu.RegAbsLong:
			return fmt.Sprintf("$%X.L", s.long())
		case cpu.RegPCDisp:
			return fmt.Sprintf("$%X(PC)", int16(s.word()))
		case cpu.RegPCIndex:
			return indexString(s.word(), "PC")
		case cpu.RegImmediate:
			if size == cpu.SizeLong {
				return fmt.Sprintf("#$%X", s.long())
			}
			return fmt.Sprintf("#$%X", s.word())
		}
	}
	return "?"
}

func indexString(ext uint16, base string) string {
	idx := fmt.Sprintf("D%d", (ext>>12)&7)
	if ext&0x8000 != 0 {
		idx = fmt.Sprintf("A%d", (ext>>12)&7)
	}
	width := ".W"
	if ext&0x0800 != 0 {
		width = ".L"
	}
	return fmt.Sprintf("$%X(%s,%s%s)", int8(ext), base, idx, width)
}

func srcEA(s *stream, opcode uint16, size cpu.Size) string {
	return ea(s, (opcode>>3)&7, opcode&7, size)
}

func regMask(mask uint16, reversed bool) string {
	var parts []string
	for i := 0; i < 16; i++ {
		if mask&(1<<i) == 0 {
			continue
		}
		n := i
		if reversed {
			n = 15 - i
		}
		if n < 8 {
			parts = append(parts, fmt.Sprintf("D%d", n))
		} else {
			parts = append(parts, fmt.Sprintf("A%d", n-8))
		}
	}
	return strings.Join(parts, "/")
}

func formatOperands(s *stream, op cpu.Op, opcode uint16, params cpu.Params) string {
	size := cpu.Size(params[0])

	switch {
	case op.IsBranch():
		base := s.pc
		disp := int32(int8(params[1]))
		if params[1] == 0 {
			disp = int32(int16(s.word()))
		}
		return fmt.Sprintf("$%X", base+uint32(disp))

	case op.IsDBcc():
		base := s.pc
		disp := int32(int16(s.word()))
		return fmt.Sprintf("D%d,$%X", opcode&7, base+uint32(disp))

	case op.IsSet():
		return srcEA(s, opcode, cpu.SizeByte)

	case op.IsShift():
		if params[1] != 0 {
			return srcEA(s, opcode, cpu.SizeWord)
		}
		if opcode&0x20 != 0 {
			return fmt.Sprintf("D%d,D%d", (opcode>>9)&7, opcode&7)
		}
		count := (opcode >> 9) & 7
		if count == 0 {
			count = 8
		}
		return fmt.Sprintf("#%d,D%d", count, opcode&7)

	case op.IsBitOp():
		var bit string
		if params[0] != 0 {
			bit = fmt.Sprintf("D%d", (opcode>>9)&7)
		} else {
			bit = fmt.Sprintf("#%d", s.word()&0xFF)
		}
		return bit + "," + srcEA(s, opcode, cpu.SizeByte)

	case op.IsBitField():
		ext := s.word()
		width := ext & 0x1F
		if width == 0 {
			width = 32
		}
		target := srcEA(s, opcode, cpu.SizeLong)
		return fmt.Sprintf("%s{%d:%d}", target, (ext>>6)&0x1F, width)

	case op.IsApollo():
		ext := s.word()
		return fmt.Sprintf("R%d,R%d,R%d", (ext>>8)&0xF, (ext>>4)&0xF, (ext>>12)&0xF)
	}

	switch op {
	case cpu.OpMOVE, cpu.OpMOVEA:
		src := srcEA(s, opcode, size)
		dst := ea(s, (opcode>>6)&7, (opcode>>9)&7, size)
		return src + "," + dst

	case cpu.OpMOVEQ:
		return fmt.Sprintf("#$%X,D%d", params[0], params[1])

	case cpu.OpMOVEM:
		mask := s.word()
		eaMode := (opcode >> 3) & 7
		target := ea(s, eaMode, opcode&7, cpu.Size(params[1]))
		if params[0] != 0 {
			return target + "," + regMask(mask, false)
		}
		return regMask(mask, eaMode == cpu.ModeAddrPreDec) + "," + target

	case cpu.OpMOVEP:
		disp := int16(s.word())
		dreg := (opcode >> 9) & 7
		areg := opcode & 7
		if (opcode>>6)&7 < 6 {
			return fmt.Sprintf("$%X(A%d),D%d", disp, areg, dreg)
		}
		return fmt.Sprintf("D%d,$%X(A%d)", dreg, disp, areg)

	case cpu.OpEXG:
		rx := (opcode >> 9) & 7
		ry := opcode & 7
		switch (opcode >> 3) & 0x1F {
		case 0x09:
			return fmt.Sprintf("A%d,A%d", rx, ry)
		case 0x11:
			return fmt.Sprintf("D%d,A%d", rx, ry)
		}
		return fmt.Sprintf("D%d,D%d", rx, ry)

	case cpu.OpSWAP, cpu.OpEXT, cpu.OpEXTB:
		return fmt.Sprintf("D%d", opcode&7)

	case cpu.OpLEA, cpu.OpCHK:
		return srcEA(s, opcode, cpu.SizeLong) + fmt.Sprintf(",A%d", (opcode>>9)&7)

	case cpu.OpPEA, cpu.OpJMP, cpu.OpJSR, cpu.OpNBCD, cpu.OpTAS, cpu.OpCALLM:
		return srcEA(s, opcode, cpu.SizeLong)

	case cpu.OpLINK:
		return fmt.Sprintf("A%d,#%d", opcode&7, int16(s.word()))
	case cpu.OpUNLK:
		return fmt.Sprintf("A%d", opcode&7)

	case cpu.OpADD, cpu.OpSUB, cpu.OpAND, cpu.OpOR:
		reg := fmt.Sprintf("D%d", (opcode>>9)&7)
		target := srcEA(s, opcode, size)
		if params[1] != 0 {
			return reg + "," + target
		}
		return target + "," + reg

	case cpu.OpEOR:
		return fmt.Sprintf("D%d,", (opcode>>9)&7) + srcEA(s, opcode, size)

	case cpu.OpADDA, cpu.OpSUBA, cpu.OpCMPA:
		return srcEA(s, opcode, size) + fmt.Sprintf(",A%d", (opcode>>9)&7)

	case cpu.OpADDI, cpu.OpSUBI, cpu.OpANDI, cpu.OpORI, cpu.OpEORI, cpu.OpCMPI:
		imm := ea(s, cpu.ModeOther, cpu.RegImmediate, size)
		return imm + "," + srcEA(s, opcode, size)

	case cpu.OpADDQ, cpu.OpSUBQ:
		return fmt.Sprintf("#%d,", params[0]) + srcEA(s, opcode, cpu.Size(params[1]))

	case cpu.OpADDX, cpu.OpSUBX, cpu.OpABCD, cpu.OpSBCD:
		rx := (opcode >> 9) & 7
		ry := opcode & 7
		if opcode&0x08 != 0 {
			return fmt.Sprintf("-(A%d),-(A%d)", ry, rx)
		}
		return fmt.Sprintf("D%d,D%d", ry, rx)

	case cpu.OpPACK, cpu.OpUNPK:
		rx := (opcode >> 9) & 7
		ry := opcode & 7
		adj := s.word()
		if opcode&0x08 != 0 {
			return fmt.Sprintf("-(A%d),-(A%d),#$%X", ry, rx, adj)
		}
		return fmt.Sprintf("D%d,D%d,#$%X", ry, rx, adj)

	case cpu.OpMULU, cpu.OpMULS, cpu.OpDIVU, cpu.OpDIVS:
		return srcEA(s, opcode, cpu.SizeWord) + fmt.Sprintf(",D%d", (opcode>>9)&7)

	case cpu.OpDIVUL, cpu.OpDIVSL:
		ext := s.word()
		target := srcEA(s, opcode, cpu.SizeLong)
		return fmt.Sprintf("%s,D%d:D%d", target, ext&7, (ext>>12)&7)

	case cpu.OpNEG, cpu.OpNEGX, cpu.OpCLR, cpu.OpNOT, cpu.OpTST:
		return srcEA(s, opcode, size)

	case cpu.OpCMP:
		return srcEA(s, opcode, size) + fmt.Sprintf(",D%d", (opcode>>9)&7)

	case cpu.OpCMPM:
		return fmt.Sprintf("(A%d)+,(A%d)+", opcode&7, (opcode>>9)&7)

	case cpu.OpTRAP:
		return fmt.Sprintf("#%d", params[0])
	case cpu.OpBKPT:
		return fmt.Sprintf("#%d", params[0])
	case cpu.OpSTOP:
		return fmt.Sprintf("#$%X", s.word())
	case cpu.OpRTD:
		return fmt.Sprintf("#%d", int16(s.word()))

	case cpu.OpANDItoCCR, cpu.OpORItoCCR, cpu.OpEORItoCCR:
		return fmt.Sprintf("#$%X,CCR", s.word()&0xFF)
	case cpu.OpANDItoSR, cpu.OpORItoSR, cpu.OpEORItoSR:
		return fmt.Sprintf("#$%X,SR", s.word())

	case cpu.OpMOVEfromSR:
		return "SR," + srcEA(s, opcode, cpu.SizeWord)
	case cpu.OpMOVEtoCCR:
		return srcEA(s, opcode, cpu.SizeWord) + ",CCR"
	case cpu.OpMOVEtoSR:
		return srcEA(s, opcode, cpu.SizeWord) + ",SR"
	case cpu.OpMOVEUSP:
		if params[0] != 0 {
			return fmt.Sprintf("USP,A%d", opcode&7)
		}
		return fmt.Sprintf("A%d,USP", opcode&7)

	case cpu.OpMOVEC:
		ext := s.word()
		reg := fmt.Sprintf("D%d", (ext>>12)&7)
		if ext&0x8000 != 0 {
			reg = fmt.Sprintf("A%d", (ext>>12)&7)
		}
		ctrl := fmt.Sprintf("$%03X", ext&0xFFF)
		switch ext & 0xFFF {
		case 0x800:
			ctrl = "USP"
		case 0x801:
			ctrl = "VBR"
		}
		if params[0] != 0 {
			return reg + "," + ctrl
		}
		return ctrl + "," + reg

	case cpu.OpMOVES:
		ext := s.word()
		reg := fmt.Sprintf("D%d", (ext>>12)&7)
		if ext&0x8000 != 0 {
			reg = fmt.Sprintf("A%d", (ext>>12)&7)
		}
		target := srcEA(s, opcode, size)
		if ext&0x0800 != 0 {
			return reg + "," + target
		}
		return target + "," + reg

	case cpu.OpCAS:
		ext := s.word()
		target := srcEA(s, opcode, size)
		return fmt.Sprintf("D%d,D%d,%s", ext&7, (ext>>6)&7, target)

	case cpu.OpCAS2:
		ext1 := s.word()
		ext2 := s.word()
		return fmt.Sprintf("D%d:D%d,D%d:D%d,(R%d):(R%d)",
			ext1&7, ext2&7, (ext1>>6)&7, (ext2>>6)&7,
			(ext1>>12)&7, (ext2>>12)&7)

	case cpu.OpCMP2:
		ext := s.word()
		target := srcEA(s, opcode, size)
		reg := fmt.Sprintf("D%d", (ext>>12)&7)
		if ext&0x8000 != 0 {
			reg = fmt.Sprintf("A%d", (ext>>12)&7)
		}
		return target + "," + reg
	}

	return ""
}
