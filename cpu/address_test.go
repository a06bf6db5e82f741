package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplacementConsumesExtensionWord(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x3028, 0x0004) // MOVE.W 4(A0),D0
	c.A[0] = 0x2000
	mem[0x2004] = 0x12
	mem[0x2005] = 0x34
	c.Step(mem)

	require.Equal(t, uint32(0x1234), c.D[0])
	require.Equal(t, uint32(loadAddr+4), c.PC)
}

func TestNegativeDisplacement(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x3028, 0xFFFE) // MOVE.W -2(A0),D0
	c.A[0] = 0x2002
	mem[0x2000] = 0xBE
	mem[0x2001] = 0xEF
	c.Step(mem)

	require.Equal(t, uint32(0xBEEF), c.D[0])
}

func TestIndexedWordIndexSignExtends(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x3030, 0x1002) // MOVE.W 2(A0,D1.W),D0
	c.A[0] = 0x2010
	c.D[1] = 0xFFFF_FFF0 // low word -16, the upper half must not leak in
	mem[0x2002] = 0x0A
	mem[0x2003] = 0x0B
	c.Step(mem)

	require.Equal(t, uint32(0x0A0B), c.D[0])
}

func TestIndexedLongIndex(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x3030, 0x1800) // MOVE.W 0(A0,D1.L),D0
	c.A[0] = 0x2000
	c.D[1] = 0x10
	mem[0x2010] = 0x55
	mem[0x2011] = 0xAA
	c.Step(mem)

	require.Equal(t, uint32(0x55AA), c.D[0])
}

func TestIndexedAddressRegisterIndex(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x3030, 0x9004) // MOVE.W 4(A0,A1.W),D0
	c.A[0] = 0x2000
	c.A[1] = 0x0100
	mem[0x2104] = 0x42
	c.Step(mem)

	require.Equal(t, uint32(0x4200), c.D[0])
}

func TestPostIncrementSteps(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x3018, 0x3018) // MOVE.W (A0)+,D0 twice
	c.A[0] = 0x2000
	mem[0x2001] = 1
	mem[0x2003] = 2

	c.Step(mem)
	require.Equal(t, uint32(1), c.D[0])
	require.Equal(t, uint32(0x2002), c.A[0])

	c.Step(mem)
	require.Equal(t, uint32(2), c.D[0])
	require.Equal(t, uint32(0x2004), c.A[0])
}

func TestPreDecrementStepsBeforeAccess(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x3020) // MOVE.W -(A0),D0
	c.A[0] = 0x2004
	mem[0x2002] = 0x0C
	mem[0x2003] = 0x0D
	c.Step(mem)

	require.Equal(t, uint32(0x0C0D), c.D[0])
	require.Equal(t, uint32(0x2002), c.A[0])
}

func TestStackPointerByteStepIsTwo(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x1F00, 0x121F) // MOVE.B D0,-(A7); MOVE.B (A7)+,D1
	c.D[0] = 0x7E
	top := c.A[7]

	c.Step(mem)
	require.Equal(t, top-2, c.A[7], "byte push through A7 keeps alignment")
	require.Equal(t, byte(0x7E), mem[top-2])

	c.Step(mem)
	require.Equal(t, top, c.A[7])
	require.Equal(t, uint32(0x7E), c.D[1]&0xFF)
}

func TestByteStepThroughOtherRegistersIsOne(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x1018) // MOVE.B (A0)+,D0
	c.A[0] = 0x2000
	c.Step(mem)

	require.Equal(t, uint32(0x2001), c.A[0])
}

func TestPCRelativeBase(t *testing.T) {
	c, mem := newMachine()
	// The base is the address of the extension word itself.
	loadWords(c, mem, 0x303A, 0x0004, 0x4E71, 0xCAFE) // MOVE.W 4(PC),D0
	c.Step(mem)

	require.Equal(t, uint32(0xCAFE), c.D[0])
}

func TestPCIndexed(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x303B, 0x1002, 0x4E71, 0xF00D) // MOVE.W 2(PC,D1.W),D0
	c.D[1] = 0x0002
	c.Step(mem)

	require.Equal(t, uint32(0xF00D), c.D[0])
}

func TestAbsoluteShortSignExtends(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x3038, 0x4000) // MOVE.W $4000.W,D0
	mem[0x4000] = 0x11
	mem[0x4001] = 0x22
	c.Step(mem)

	require.Equal(t, uint32(0x1122), c.D[0])
}

func TestImmediateSizes(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem,
		0x303C, 0x1234, // MOVE.W #$1234,D0
		0x223C, 0xDEAD, 0xBEEF, // MOVE.L #$DEADBEEF,D1
		0x143C, 0x0042, // MOVE.B #$42,D2
	)
	c.Step(mem)
	c.Step(mem)
	c.Step(mem)

	require.Equal(t, uint32(0x1234), c.D[0])
	require.Equal(t, uint32(0xDEADBEEF), c.D[1])
	require.Equal(t, uint32(0x42), c.D[2])
	require.Equal(t, uint32(loadAddr+14), c.PC)
}

func TestAddressRegisterWordWriteSignExtends(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x3040) // MOVEA.W D0,A0
	c.D[0] = 0x8000
	c.Step(mem)

	require.Equal(t, uint32(0xFFFF8000), c.A[0])
}

func TestPartialRegisterWritePreservesUpperBytes(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x1001) // MOVE.B D1,D0
	c.D[0] = 0xAABBCCDD
	c.D[1] = 0x11
	c.Step(mem)

	require.Equal(t, uint32(0xAABBCC11), c.D[0])
}
