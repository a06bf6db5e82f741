package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const loadAddr = 0x1000

func newMachine() (*CPU, []byte) {
	return New(), make([]byte, 0x20000)
}

func loadWords(c *CPU, mem []byte, words ...uint16) {
	code := make([]byte, 0, len(words)*2)
	for _, w := range words {
		code = append(code, byte(w>>8), byte(w))
	}
	c.LoadCode(mem, loadAddr, code)
}

// The reference program: three MOVEQ loads, word add, subtract and
// compare, a conditional branch that falls through, and a final add.
func TestEndToEndProgram(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem,
		0x7001, // MOVEQ #1,D0
		0x7202, // MOVEQ #2,D1
		0x7403, // MOVEQ #3,D2
		0xD240, // ADD.W D0,D1
		0x9440, // SUB.W D0,D2
		0xB440, // CMP.W D0,D2
		0x6700, 0x0002, // BEQ.W +2 (not taken)
		0xD440, // ADD.W D0,D2
	)

	for i := 0; i < 9; i++ {
		c.Step(mem)
	}

	require.Equal(t, uint32(1), c.D[0])
	require.Equal(t, uint32(3), c.D[1])
	require.Equal(t, uint32(3), c.D[2])
	require.False(t, c.Halted)
	require.Equal(t, uint64(9), c.Instructions)
}

func TestNopTouchesOnlyCounters(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x4E71)

	before := c.Snapshot()
	c.Step(mem)
	after := c.Snapshot()

	require.Equal(t, before.D, after.D)
	require.Equal(t, before.A, after.A)
	require.Equal(t, before.SR, after.SR)
	require.Equal(t, before.PC+2, after.PC)
	require.Equal(t, before.Instructions+1, after.Instructions)
	require.Greater(t, after.Cycles, before.Cycles)
	require.False(t, after.Halted)
}

func TestMoveqSignExtends(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x70FF) // MOVEQ #-1,D0
	c.Step(mem)

	require.Equal(t, uint32(0xFFFFFFFF), c.D[0])
	require.True(t, c.Flag(SRN))
	require.False(t, c.Flag(SRZ))
}

func TestDivideByZeroHalts(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem,
		0x7000, // MOVEQ #0,D0
		0x82C0, // DIVU D0,D1
	)
	c.D[1] = 0x12345678
	c.Step(mem)
	c.Step(mem)

	require.True(t, c.Halted)
	require.Equal(t, uint32(0x12345678), c.D[1], "destination must survive the fault")
}

func TestDivuResultLayout(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x82C0) // DIVU D0,D1
	c.D[0] = 10
	c.D[1] = 107
	c.Step(mem)

	// Quotient in the low word, remainder in the high word.
	require.Equal(t, uint32(7<<16|10), c.D[1])
	require.False(t, c.Halted)
}

func TestBreakpointHitOncePerArrival(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem,
		0x4E71, // NOP
		0x4E71, // NOP
		0x60FA, // BRA back to the top
	)
	c.AddBreakpoint(loadAddr + 2)

	c.Run(mem, 1000)
	require.True(t, c.Halted)
	require.True(t, c.BreakpointHit)
	require.Equal(t, uint32(loadAddr+2), c.BreakpointAddr)
	bp, ok := c.Breakpoint(loadAddr + 2)
	require.True(t, ok)
	require.Equal(t, uint64(1), bp.HitCount)

	// Resuming steps past the breakpoint without re-triggering.
	c.Resume()
	c.Step(mem)
	require.False(t, c.Halted)
	bp, _ = c.Breakpoint(loadAddr + 2)
	require.Equal(t, uint64(1), bp.HitCount)

	// The next arrival counts again.
	c.Run(mem, 1000)
	require.True(t, c.Halted)
	bp, _ = c.Breakpoint(loadAddr + 2)
	require.Equal(t, uint64(2), bp.HitCount)
}

func TestIllegalWordIsNoOp(t *testing.T) {
	c, mem := newMachine()
	for _, word := range []uint16{0x4AFC, 0xFFFF, 0xA000} {
		c.Reset()
		loadWords(c, mem, word)
		c.Step(mem)
		require.False(t, c.Halted, "word %04X", word)
		require.Equal(t, uint32(loadAddr+2), c.PC, "word %04X", word)
	}
}

func TestFetchOutOfBoundsHalts(t *testing.T) {
	c, mem := newMachine()
	c.PC = uint32(len(mem))
	before := c.Instructions
	c.Step(mem)

	require.True(t, c.Halted)
	require.Equal(t, before, c.Instructions)
}

func TestOutOfBoundsDataAccessTolerated(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem,
		0x3039, 0x0003, 0x0000, // MOVE.W $30000.L,D0
		0x33C0, 0x0003, 0x0000, // MOVE.W D0,$30000.L
	)
	c.D[0] = 0xFFFF
	c.Step(mem)
	require.False(t, c.Halted)
	require.Equal(t, uint32(0), c.D[0])

	c.Step(mem)
	require.False(t, c.Halted)
}

func TestPrivilegeViolationHalts(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x46C0) // MOVE D0,SR
	c.SetFlag(SRS, false)
	c.Step(mem)

	require.True(t, c.Halted)
}

func TestTrapInvokesHandler(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x4E45, 0x4E71) // TRAP #5; NOP

	var got []uint8
	c.OnTrap = func(vector uint8) { got = append(got, vector) }

	c.Step(mem)
	require.False(t, c.Halted)
	require.Equal(t, []uint8{5}, got)

	c.Step(mem)
	require.Equal(t, uint64(2), c.Instructions)
}

func TestTrapWithoutHandlerHalts(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x4E40) // TRAP #0
	c.Step(mem)
	require.True(t, c.Halted)
}

func TestTrapvHaltsOnOverflow(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x4E76, 0x4E76) // TRAPV; TRAPV
	c.Step(mem)
	require.False(t, c.Halted)

	c.SetFlag(SRV, true)
	c.Step(mem)
	require.True(t, c.Halted)
}

func TestStopLoadsStatusAndHalts(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x4E72, 0x2700) // STOP #$2700
	c.Step(mem)

	require.True(t, c.Halted)
	require.Equal(t, uint16(0x2700), c.SR)
}

func TestShiftCountZeroMeansEight(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0xE108) // LSL.B #8,D0
	c.D[0] = 0x01
	c.Step(mem)

	require.Equal(t, uint32(0), c.D[0])
	require.True(t, c.Flag(SRZ))
	require.True(t, c.Flag(SRC), "last bit out must land in C")
	require.True(t, c.Flag(SRX))
}

func TestAslOverflowAccumulates(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0xE300) // ASL.B #1,D0
	c.D[0] = 0x40
	c.Step(mem)

	require.Equal(t, uint32(0x80), c.D[0])
	require.True(t, c.Flag(SRV), "sign change sets V")
	require.False(t, c.Flag(SRC))
}

func TestDbraLoop(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem,
		0x7000, // MOVEQ #0,D0
		0x7203, // MOVEQ #3,D1
		0x5240, // ADDQ.W #1,D0
		0x51C9, 0xFFFC, // DBF D1,-4
	)
	for !c.Halted && c.PC < loadAddr+10 {
		c.Step(mem)
	}

	// Counter 3 runs the body four times.
	require.Equal(t, uint32(4), c.D[0])
	require.Equal(t, uint32(0xFFFF), c.D[1]&0xFFFF)
}

func TestJsrRts(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem,
		0x4EB8, 0x1100, // JSR $1100.W
		0x4E71, // NOP
	)
	sub := []byte{0x76, 0x07, 0x4E, 0x75} // MOVEQ #7,D3; RTS
	copy(mem[0x1100:], sub)

	sp := c.A[7]
	c.Step(mem) // JSR
	require.Equal(t, uint32(0x1100), c.PC)
	require.Equal(t, sp-4, c.A[7])

	c.Step(mem) // MOVEQ
	c.Step(mem) // RTS
	require.Equal(t, uint32(7), c.D[3])
	require.Equal(t, uint32(loadAddr+4), c.PC)
	require.Equal(t, sp, c.A[7])
}

func TestCmpPreservesExtend(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0xB240) // CMP.W D0,D1
	c.SetFlag(SRX, true)
	c.D[0] = 5
	c.D[1] = 3
	c.Step(mem)

	require.True(t, c.Flag(SRX), "compare must not touch X")
	require.True(t, c.Flag(SRC))
	require.True(t, c.Flag(SRN))
}

func TestAddSetsOverflowAndCarry(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0xD001) // ADD.B D1,D0
	c.D[0] = 0x7F
	c.D[1] = 0x01
	c.Step(mem)

	require.Equal(t, uint32(0x80), c.D[0])
	require.True(t, c.Flag(SRV))
	require.True(t, c.Flag(SRN))
	require.False(t, c.Flag(SRC))
	require.False(t, c.Flag(SRX))
}

func TestSubBorrowSetsCarryAndExtend(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x5300) // SUBQ.B #1,D0
	c.D[0] = 0
	c.Step(mem)

	require.Equal(t, uint32(0xFF), c.D[0])
	require.True(t, c.Flag(SRC))
	require.True(t, c.Flag(SRX))
	require.True(t, c.Flag(SRN))
}

func TestMovemPushPop(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem,
		0x48E7, 0xC000, // MOVEM.L D0/D1,-(A7)
		0x4CDF, 0x0003, // MOVEM.L (A7)+,D0/D1
	)
	c.D[0] = 0x11111111
	c.D[1] = 0x22222222
	sp := c.A[7]

	c.Step(mem)
	require.Equal(t, sp-8, c.A[7])

	c.D[0] = 0
	c.D[1] = 0
	c.Step(mem)
	require.Equal(t, uint32(0x11111111), c.D[0])
	require.Equal(t, uint32(0x22222222), c.D[1])
	require.Equal(t, sp, c.A[7])
}

func TestMMIOForwarding(t *testing.T) {
	c, mem := newMachine()

	var wrote []uint32
	c.MapMMIO(MMIORegion{
		Start: 0xF000,
		End:   0xF100,
		Read:  func(addr uint32, size Size) uint32 { return 0xAB },
		Write: func(addr, value uint32, size Size) { wrote = append(wrote, addr, value) },
	})

	loadWords(c, mem,
		0x1039, 0x0000, 0xF000, // MOVE.B $F000.L,D0
		0x13C0, 0x0000, 0xF001, // MOVE.B D0,$F001.L
	)
	c.Step(mem)
	require.Equal(t, uint32(0xAB), c.D[0])

	c.Step(mem)
	require.Equal(t, []uint32{0xF001, 0xAB}, wrote)
	// The device write never lands in plain memory.
	require.Equal(t, byte(0), mem[0xF001])
}

func TestResetPreservesCountersAndBreakpoints(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x4E71, 0x4E71)
	c.AddBreakpoint(0x2000)
	c.Step(mem)
	c.Step(mem)

	cycles := c.Cycles
	instrs := c.Instructions
	c.D[3] = 0xDEAD
	c.Reset()

	require.Equal(t, cycles, c.Cycles)
	require.Equal(t, instrs, c.Instructions)
	require.Equal(t, uint32(0), c.D[3])
	require.Equal(t, uint16(SRS), c.SR)
	require.Equal(t, uint32(InitialSSP), c.A[7])
	require.Len(t, c.Breakpoints, 1)
}

func TestBccShortDisplacementTaken(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem,
		0x6004, // BRA.S +4
		0x4E71,
		0x4E71,
		0x7001, // MOVEQ #1,D0 (target)
	)
	c.Step(mem)
	require.Equal(t, uint32(loadAddr+6), c.PC)

	c.Step(mem)
	require.Equal(t, uint32(1), c.D[0])
}

func TestBranchNotTakenConsumesDisplacementWord(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem,
		0x6600, 0x0010, // BNE.W (not taken: Z set)
		0x7001, // MOVEQ #1,D0
	)
	c.SetFlag(SRZ, true)
	c.Step(mem)

	// PC must sit past the displacement word.
	require.Equal(t, uint32(loadAddr+4), c.PC)
	c.Step(mem)
	require.Equal(t, uint32(1), c.D[0])
}

func TestRoxlRotatesThroughExtend(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0xE310) // ROXL.B #1,D0
	c.D[0] = 0x40
	c.SetFlag(SRX, true)
	c.Step(mem)

	// The old X folds in at bit 0; bit 7 moves out into C and X.
	require.Equal(t, uint32(0x81), c.D[0])
	require.False(t, c.Flag(SRC))
	require.False(t, c.Flag(SRX))

	c.Reset()
	loadWords(c, mem, 0xE310)
	c.D[0] = 0x80
	c.Step(mem)

	require.Equal(t, uint32(0x00), c.D[0])
	require.True(t, c.Flag(SRC))
	require.True(t, c.Flag(SRX))
}

func TestRoxCountZeroCopiesExtendToCarry(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0xE330) // ROXL.B D1,D0 with D1=0
	c.D[0] = 0x12
	c.D[1] = 0
	c.SetFlag(SRX, true)
	c.SetFlag(SRC, false)
	c.Step(mem)

	require.Equal(t, uint32(0x12), c.D[0])
	require.True(t, c.Flag(SRC), "C mirrors X when the count is zero")
	require.True(t, c.Flag(SRX))
}

func TestDivuOverflowSetsVClearsC(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x80C1) // DIVU D1,D0
	c.D[0] = 0x00120000 // quotient would need more than 16 bits
	c.D[1] = 1
	c.SetFlag(SRC, true)
	c.Step(mem)

	require.False(t, c.Halted)
	require.True(t, c.Flag(SRV))
	require.False(t, c.Flag(SRC))
	require.Equal(t, uint32(0x00120000), c.D[0], "destination untouched on overflow")
}

func TestDivsOverflowSetsVClearsC(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x81C1) // DIVS D1,D0
	c.D[0] = 0x00100000
	c.D[1] = 1
	c.SetFlag(SRC, true)
	c.Step(mem)

	require.False(t, c.Halted)
	require.True(t, c.Flag(SRV))
	require.False(t, c.Flag(SRC))
	require.Equal(t, uint32(0x00100000), c.D[0])
}
