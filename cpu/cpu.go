// Package cpu models a 68000-family processor with the 68010/68020
// additions and the Apollo-style SIMD/64-bit/FPU extension set. The
// processor owns no memory: every operation takes the caller's byte
// buffer as an explicit argument, so several cores may share one image
// or keep separate ones.
package cpu

// ApolloRegs holds the extension register file: sixteen 512-bit vector
// registers (eight 64-bit lanes each), eight double-precision registers
// and their control words. The scalar ops mirror their N and Z results
// into the FPSR condition byte; VR, FPCR and FPIAR are architectural
// state that no modelled operation interprets.
type ApolloRegs struct {
	V     [16][8]uint64
	VR    [8]uint32
	FP    [8]float64
	FPCR  uint32
	FPSR  uint32
	FPIAR uint32
}

// BusState records the most recent simulated burst transfer. It exists
// for external observability only; nothing in execution depends on it.
type BusState struct {
	Data      [128]byte
	Address   uint32
	Active    bool
	Transfers uint32
}

// TrapHandler is invoked when a TRAP instruction executes. The core
// only signals the vector number; dispatching the actual service is the
// caller's business.
type TrapHandler func(vector uint8)

// CPU is the complete processor-visible state.
type CPU struct {
	// D is for data registers.
	D [8]uint32
	// A is for address registers. A7 is the active stack pointer.
	A [8]uint32
	// PC is the program counter.
	PC uint32
	// SR is the status register.
	SR uint16
	// USP is the user stack pointer.
	USP uint32
	// SSP is the supervisor stack pointer.
	SSP uint32
	// VBR is the vector base register (68010+).
	VBR uint32

	// Apollo extension state, gated by ApolloEnabled.
	Apollo        ApolloRegs
	ApolloEnabled bool

	// Halted stops all stepping until Reset or an explicit clear.
	Halted bool

	// Bookkeeping.
	Cycles       uint64
	Instructions uint64

	// Bus burst record, observability only.
	Bus BusState

	// Performance counters.
	BranchCount uint64
	BranchTaken uint64
	LoadCount   uint64
	StoreCount  uint64

	// Breakpoints and the most recent hit.
	Breakpoints    []Breakpoint
	BreakpointHit  bool
	BreakpointAddr uint32

	// OnTrap, when set, receives the vector of every TRAP execution.
	OnTrap TrapHandler

	mmio []MMIORegion
}

// Status register flags.
const (
	// SRC is carry.
	SRC uint16 = 1 << 0
	// SRV is overflow.
	SRV uint16 = 1 << 1
	// SRZ is zero.
	SRZ uint16 = 1 << 2
	// SRN is negative.
	SRN uint16 = 1 << 3
	// SRX is extend.
	SRX uint16 = 1 << 4
	// SRI is the interrupt mask (bits 8-10).
	SRI uint16 = 0x0700
	// SRS is supervisor state.
	SRS uint16 = 1 << 13
	// SRT is trace mode.
	SRT uint16 = 1 << 15
)

// InitialSSP is the supervisor stack pointer installed at reset.
const InitialSSP = 0x10000

// New creates a processor in its reset state. The Apollo extension is
// enabled by default; disable it with EnableApollo(false) to model a
// plain 68000.
func New() *CPU {
	c := &CPU{}
	c.init()
	c.ApolloEnabled = true
	return c
}

func (c *CPU) init() {
	*c = CPU{
		SR:  SRS,
		SSP: InitialSSP,
	}
	c.A[7] = InitialSSP
}

// Reset reinitialises the processor. Accumulated cycle and instruction
// counts, the Apollo enable flag and the breakpoint set survive a
// reset; everything else returns to power-on defaults.
func (c *CPU) Reset() {
	cycles := c.Cycles
	instrs := c.Instructions
	apollo := c.ApolloEnabled
	bps := c.Breakpoints
	trap := c.OnTrap
	mmio := c.mmio

	c.init()

	c.Cycles = cycles
	c.Instructions = instrs
	c.ApolloEnabled = apollo
	c.Breakpoints = bps
	c.OnTrap = trap
	c.mmio = mmio
}

// EnableApollo switches the extension register set and instructions on
// or off. Executing any extension opcode while disabled is fatal.
func (c *CPU) EnableApollo(enable bool) {
	c.ApolloEnabled = enable
}

// Flag reports whether the given SR flag is set.
func (c *CPU) Flag(flag uint16) bool {
	return c.SR&flag != 0
}

// SetFlag sets or clears one SR flag.
func (c *CPU) SetFlag(flag uint16, value bool) {
	if value {
		c.SR |= flag
	} else {
		c.SR &^= flag
	}
}

// setFlagsNZ updates N and Z from a result truncated to size. V, C and
// X are left alone; handlers that need them cleared do so themselves.
func (c *CPU) setFlagsNZ(result uint32, size Size) {
	var zero, neg bool
	switch size {
	case SizeByte:
		zero = uint8(result) == 0
		neg = int8(result) < 0
	case SizeWord:
		zero = uint16(result) == 0
		neg = int16(result) < 0
	case SizeLong:
		zero = result == 0
		neg = int32(result) < 0
	}
	c.SetFlag(SRZ, zero)
	c.SetFlag(SRN, neg)
}

// setFlagsAdd computes N, Z, V and C for dst+src=result. The carry-out
// and signed-overflow formulas are specific to addition; subtraction
// has its own routine. X is not touched here because compares share the
// subtract routine and must leave it alone.
func (c *CPU) setFlagsAdd(src, dst, result uint32, size Size) {
	msb := msbMask(size)
	s := src & msb
	d := dst & msb
	r := result & msb

	c.setFlagsNZ(result, size)
	c.SetFlag(SRV, s == d && r != s)
	c.SetFlag(SRC, (s&d)|(^r&s)|(^r&d) != 0)
}

// setFlagsSub computes N, Z, V and C for dst-src=result.
func (c *CPU) setFlagsSub(src, dst, result uint32, size Size) {
	msb := msbMask(size)
	s := src & msb
	d := dst & msb
	r := result & msb

	c.setFlagsNZ(result, size)
	c.SetFlag(SRV, s != d && r != d)
	c.SetFlag(SRC, (s&^d)|(r&^d)|(s&r) != 0)
}

// copyCarryToExtend mirrors C into X. Arithmetic ops do this; compares
// deliberately don't.
func (c *CPU) copyCarryToExtend() {
	c.SetFlag(SRX, c.Flag(SRC))
}

func msbMask(size Size) uint32 {
	switch size {
	case SizeByte:
		return 0x80
	case SizeWord:
		return 0x8000
	default:
		return 0x80000000
	}
}

// Condition codes as encoded in opcode bits 8-11.
const (
	CondT  = 0x0
	CondF  = 0x1
	CondHI = 0x2
	CondLS = 0x3
	CondCC = 0x4
	CondCS = 0x5
	CondNE = 0x6
	CondEQ = 0x7
	CondVC = 0x8
	CondVS = 0x9
	CondPL = 0xA
	CondMI = 0xB
	CondGE = 0xC
	CondLT = 0xD
	CondGT = 0xE
	CondLE = 0xF
)

// TestCondition evaluates one of the sixteen condition codes against
// the current N, Z, V and C flags. The same table backs conditional
// branches, Scc and DBcc.
func (c *CPU) TestCondition(condition uint8) bool {
	cf := c.Flag(SRC)
	v := c.Flag(SRV)
	z := c.Flag(SRZ)
	n := c.Flag(SRN)

	switch condition & 0xF {
	case CondT:
		return true
	case CondF:
		return false
	case CondHI:
		return !cf && !z
	case CondLS:
		return cf || z
	case CondCC:
		return !cf
	case CondCS:
		return cf
	case CondNE:
		return !z
	case CondEQ:
		return z
	case CondVC:
		return !v
	case CondVS:
		return v
	case CondPL:
		return !n
	case CondMI:
		return n
	case CondGE:
		return n == v
	case CondLT:
		return n != v
	case CondGT:
		return !z && n == v
	default: // CondLE
		return z || n != v
	}
}

// Snapshot is a readable copy of the register, flag and counter state.
type Snapshot struct {
	D             [8]uint32
	A             [8]uint32
	PC            uint32
	SR            uint16
	USP, SSP      uint32
	VBR           uint32
	C, V, Z, N, X bool
	Supervisor    bool
	Halted        bool
	Cycles        uint64
	Instructions  uint64
}

// Snapshot returns the current architectural state. Safe to call at any
// point between steps.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		D:            c.D,
		A:            c.A,
		PC:           c.PC,
		SR:           c.SR,
		USP:          c.USP,
		SSP:          c.SSP,
		VBR:          c.VBR,
		C:            c.Flag(SRC),
		V:            c.Flag(SRV),
		Z:            c.Flag(SRZ),
		N:            c.Flag(SRN),
		X:            c.Flag(SRX),
		Supervisor:   c.Flag(SRS),
		Halted:       c.Halted,
		Cycles:       c.Cycles,
		Instructions: c.Instructions,
	}
}

// LoadCode copies a program into memory at addr and points the PC at
// it. Memory is the caller's; the copy is bounds-clamped.
func (c *CPU) LoadCode(mem []byte, addr uint32, code []byte) {
	if int(addr) < len(mem) {
		copy(mem[addr:], code)
	}
	c.PC = addr
}
