package cpu

// Op is the decoded identity of an instruction. The decoder maps every
// 16-bit word to exactly one Op; words matching nothing map to
// OpILLEGAL rather than failing.
type Op int

// Params carries up to eight bytes of values the decoder pre-extracted
// from the opcode word (quick data, condition codes, vectors). Decoded
// instructions are transient: produced, consumed, never stored.
type Params [8]byte

const (
	// Data movement.
	OpNOP Op = iota
	OpMOVE
	OpMOVEA
	OpMOVEM
	OpMOVEP
	OpMOVEQ
	OpEXG
	OpSWAP
	OpLEA
	OpPEA
	OpLINK
	OpUNLK

	// Arithmetic.
	OpADD
	OpADDA
	OpADDI
	OpADDQ
	OpADDX
	OpSUB
	OpSUBA
	OpSUBI
	OpSUBQ
	OpSUBX
	OpMULS
	OpMULU
	OpDIVS
	OpDIVU
	OpNEG
	OpNEGX
	OpCLR
	OpEXT

	// Logic.
	OpAND
	OpANDI
	OpOR
	OpORI
	OpEOR
	OpEORI
	OpNOT

	// Shifts and rotates.
	OpASL
	OpASR
	OpLSL
	OpLSR
	OpROL
	OpROR
	OpROXL
	OpROXR

	// Bit manipulation.
	OpBTST
	OpBCHG
	OpBCLR
	OpBSET

	// Comparison.
	OpCMP
	OpCMPA
	OpCMPI
	OpCMPM
	OpTST

	// Branches, ordered by condition code so that decode can derive
	// the tag arithmetically: OpBHI + (cond - CondHI).
	OpBRA
	OpBSR
	OpBHI
	OpBLS
	OpBCC
	OpBCS
	OpBNE
	OpBEQ
	OpBVC
	OpBVS
	OpBPL
	OpBMI
	OpBGE
	OpBLT
	OpBGT
	OpBLE

	// Conditional set, ordered by condition code.
	OpST
	OpSF
	OpSHI
	OpSLS
	OpSCC
	OpSCS
	OpSNE
	OpSEQ
	OpSVC
	OpSVS
	OpSPL
	OpSMI
	OpSGE
	OpSLT
	OpSGT
	OpSLE

	// Decrement and branch, ordered by condition code.
	OpDBT
	OpDBF
	OpDBHI
	OpDBLS
	OpDBCC
	OpDBCS
	OpDBNE
	OpDBEQ
	OpDBVC
	OpDBVS
	OpDBPL
	OpDBMI
	OpDBGE
	OpDBLT
	OpDBGT
	OpDBLE

	// Jumps and returns.
	OpJMP
	OpJSR
	OpRTS
	OpRTR
	OpRTE

	// System control.
	OpTRAP
	OpTRAPV
	OpCHK
	OpRESET
	OpSTOP
	OpANDItoCCR
	OpORItoCCR
	OpEORItoCCR
	OpANDItoSR
	OpORItoSR
	OpEORItoSR
	OpMOVEfromSR
	OpMOVEtoSR
	OpMOVEtoCCR
	OpMOVEUSP

	// Special.
	OpTAS
	OpNBCD
	OpABCD
	OpSBCD

	// 68010+ additions.
	OpMOVEC
	OpMOVES
	OpRTD
	OpBKPT

	// 68020+ additions.
	OpBFTST
	OpBFCHG
	OpBFCLR
	OpBFSET
	OpBFEXTU
	OpBFEXTS
	OpBFFFO
	OpBFINS
	OpCALLM
	OpCAS
	OpCAS2
	OpCMP2
	OpDIVSL
	OpDIVUL
	OpEXTB
	OpPACK
	OpUNPK

	// Apollo SIMD vector ops.
	OpVADD
	OpVSUB
	OpVMUL
	OpVDIV
	OpVAND
	OpVOR
	OpVXOR
	OpVNOT
	OpVLOAD
	OpVSTORE
	OpVMOVE
	OpVDOT
	OpVCROSS
	OpVABS
	OpVSQRT
	OpVMIN
	OpVMAX
	OpVSUM

	// Apollo 64-bit register-pair ops.
	OpADD64
	OpSUB64
	OpMUL64
	OpDIV64
	OpMOVE64
	OpCMP64

	// FPU scalar ops.
	OpFMOVE
	OpFADD
	OpFSUB
	OpFMUL
	OpFDIV
	OpFSQRT
	OpFABS
	OpFNEG
	OpFCMP
	OpFTST
	OpFSIN
	OpFCOS
	OpFTAN

	// OpILLEGAL is the explicit tag for unrecognised words. Executing
	// it is a tolerated no-op, never a fault.
	OpILLEGAL

	opCount
)

var opNames = [opCount]string{
	OpNOP: "NOP",
	OpMOVE: "MOVE", OpMOVEA: "MOVEA", OpMOVEM: "MOVEM", OpMOVEP: "MOVEP",
	OpMOVEQ: "MOVEQ", OpEXG: "EXG", OpSWAP: "SWAP", OpLEA: "LEA",
	OpPEA: "PEA", OpLINK: "LINK", OpUNLK: "UNLK",
	OpADD: "ADD", OpADDA: "ADDA", OpADDI: "ADDI", OpADDQ: "ADDQ", OpADDX: "ADDX",
	OpSUB: "SUB", OpSUBA: "SUBA", OpSUBI: "SUBI", OpSUBQ: "SUBQ", OpSUBX: "SUBX",
	OpMULS: "MULS", OpMULU: "MULU", OpDIVS: "DIVS", OpDIVU: "DIVU",
	OpNEG: "NEG", OpNEGX: "NEGX", OpCLR: "CLR", OpEXT: "EXT",
	OpAND: "AND", OpANDI: "ANDI", OpOR: "OR", OpORI: "ORI",
	OpEOR: "EOR", OpEORI: "EORI", OpNOT: "NOT",
	OpASL: "ASL", OpASR: "ASR", OpLSL: "LSL", OpLSR: "LSR",
	OpROL: "ROL", OpROR: "ROR", OpROXL: "ROXL", OpROXR: "ROXR",
	OpBTST: "BTST", OpBCHG: "BCHG", OpBCLR: "BCLR", OpBSET: "BSET",
	OpCMP: "CMP", OpCMPA: "CMPA", OpCMPI: "CMPI", OpCMPM: "CMPM", OpTST: "TST",
	OpBRA: "BRA", OpBSR: "BSR", OpBHI: "BHI", OpBLS: "BLS",
	OpBCC: "BCC", OpBCS: "BCS", OpBNE: "BNE", OpBEQ: "BEQ",
	OpBVC: "BVC", OpBVS: "BVS", OpBPL: "BPL", OpBMI: "BMI",
	OpBGE: "BGE", OpBLT: "BLT", OpBGT: "BGT", OpBLE: "BLE",
	OpST: "ST", OpSF: "SF", OpSHI: "SHI", OpSLS: "SLS",
	OpSCC: "SCC", OpSCS: "SCS", OpSNE: "SNE", OpSEQ: "SEQ",
	OpSVC: "SVC", OpSVS: "SVS", OpSPL: "SPL", OpSMI: "SMI",
	OpSGE: "SGE", OpSLT: "SLT", OpSGT: "SGT", OpSLE: "SLE",
	OpDBT: "DBT", OpDBF: "DBF", OpDBHI: "DBHI", OpDBLS: "DBLS",
	OpDBCC: "DBCC", OpDBCS: "DBCS", OpDBNE: "DBNE", OpDBEQ: "DBEQ",
	OpDBVC: "DBVC", OpDBVS: "DBVS", OpDBPL: "DBPL", OpDBMI: "DBMI",
	OpDBGE: "DBGE", OpDBLT: "DBLT", OpDBGT: "DBGT", OpDBLE: "DBLE",
	OpJMP: "JMP", OpJSR: "JSR", OpRTS: "RTS", OpRTR: "RTR", OpRTE: "RTE",
	OpTRAP: "TRAP", OpTRAPV: "TRAPV", OpCHK: "CHK",
	OpRESET: "RESET", OpSTOP: "STOP",
	OpANDItoCCR: "ANDI.CCR", OpORItoCCR: "ORI.CCR", OpEORItoCCR: "EORI.CCR",
	OpANDItoSR: "ANDI.SR", OpORItoSR: "ORI.SR", OpEORItoSR: "EORI.SR",
	OpMOVEfromSR: "MOVE.SR", OpMOVEtoSR: "MOVE.TOSR", OpMOVEtoCCR: "MOVE.CCR",
	OpMOVEUSP: "MOVE.USP",
	OpTAS: "TAS", OpNBCD: "NBCD", OpABCD: "ABCD", OpSBCD: "SBCD",
	OpMOVEC: "MOVEC", OpMOVES: "MOVES", OpRTD: "RTD", OpBKPT: "BKPT",
	OpBFTST: "BFTST", OpBFCHG: "BFCHG", OpBFCLR: "BFCLR", OpBFSET: "BFSET",
	OpBFEXTU: "BFEXTU", OpBFEXTS: "BFEXTS", OpBFFFO: "BFFFO", OpBFINS: "BFINS",
	OpCALLM: "CALLM", OpCAS: "CAS", OpCAS2: "CAS2", OpCMP2: "CMP2",
	OpDIVSL: "DIVSL", OpDIVUL: "DIVUL", OpEXTB: "EXTB",
	OpPACK: "PACK", OpUNPK: "UNPK",
	OpVADD: "VADD", OpVSUB: "VSUB", OpVMUL: "VMUL", OpVDIV: "VDIV",
	OpVAND: "VAND", OpVOR: "VOR", OpVXOR: "VXOR", OpVNOT: "VNOT",
	OpVLOAD: "VLOAD", OpVSTORE: "VSTORE", OpVMOVE: "VMOVE",
	OpVDOT: "VDOT", OpVCROSS: "VCROSS", OpVABS: "VABS", OpVSQRT: "VSQRT",
	OpVMIN: "VMIN", OpVMAX: "VMAX", OpVSUM: "VSUM",
	OpADD64: "ADD64", OpSUB64: "SUB64", OpMUL64: "MUL64", OpDIV64: "DIV64",
	OpMOVE64: "MOVE64", OpCMP64: "CMP64",
	OpFMOVE: "FMOVE", OpFADD: "FADD", OpFSUB: "FSUB", OpFMUL: "FMUL",
	OpFDIV: "FDIV", OpFSQRT: "FSQRT", OpFABS: "FABS", OpFNEG: "FNEG",
	OpFCMP: "FCMP", OpFTST: "FTST", OpFSIN: "FSIN", OpFCOS: "FCOS",
	OpFTAN: "FTAN",
	OpILLEGAL: "ILLEGAL",
}

// String returns the mnemonic for op.
func (op Op) String() string {
	if op >= 0 && op < opCount && opNames[op] != "" {
		return opNames[op]
	}
	return "UNKNOWN"
}

// Handler family predicates. The step controller routes each decoded
// tag to exactly one family.

func (op Op) IsBranch() bool   { return op >= OpBRA && op <= OpBLE }
func (op Op) IsSet() bool      { return op >= OpST && op <= OpSLE }
func (op Op) IsDBcc() bool     { return op >= OpDBT && op <= OpDBLE }
func (op Op) IsShift() bool    { return op >= OpASL && op <= OpROXR }
func (op Op) IsBitOp() bool    { return op >= OpBTST && op <= OpBSET }
func (op Op) IsBitField() bool { return op >= OpBFTST && op <= OpBFINS }
func (op Op) IsBCD() bool      { return op == OpABCD || op == OpSBCD || op == OpNBCD }
func (op Op) IsVector() bool   { return op >= OpVADD && op <= OpVSUM }
func (op Op) Is64Bit() bool    { return op >= OpADD64 && op <= OpCMP64 }
func (op Op) IsFPU() bool      { return op >= OpFMOVE && op <= OpFTAN }

// IsApollo reports whether op belongs to the gated extension set.
func (op Op) IsApollo() bool {
	return op.IsVector() || op.Is64Bit() || op.IsFPU()
}
