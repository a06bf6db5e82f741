package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCasMatchStoresUpdate(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x0CD0, 0x0042) // CAS.W D2,D1,(A0)
	c.A[0] = 0x2000
	mem[0x2000] = 0x12
	mem[0x2001] = 0x34
	c.D[1] = 0x5678
	c.D[2] = 0x1234
	c.Step(mem)

	require.True(t, c.Flag(SRZ))
	require.Equal(t, byte(0x56), mem[0x2000])
	require.Equal(t, byte(0x78), mem[0x2001])
	require.Equal(t, uint32(0x1234), c.D[2])
}

func TestCasMismatchLoadsCompareRegister(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x0CD0, 0x0042) // CAS.W D2,D1,(A0)
	c.A[0] = 0x2000
	mem[0x2000] = 0x12
	mem[0x2001] = 0x34
	c.D[1] = 0x5678
	c.D[2] = 0x1111
	c.Step(mem)

	require.False(t, c.Flag(SRZ))
	require.Equal(t, byte(0x12), mem[0x2000], "memory untouched on mismatch")
	require.Equal(t, byte(0x34), mem[0x2001])
	require.Equal(t, uint32(0x1234), c.D[2], "compare register learns the operand")
}

func TestCas2BothMatchStoresBoth(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x0CFC, 0x8042, 0x90C4) // CAS2.W D2:D4,D1:D3,(A0):(A1)
	c.A[0] = 0x2000
	c.A[1] = 0x3000
	mem[0x2001] = 0xAA
	mem[0x3001] = 0xBB
	c.D[1] = 0x0001
	c.D[2] = 0x00AA
	c.D[3] = 0x0002
	c.D[4] = 0x00BB
	c.Step(mem)

	require.True(t, c.Flag(SRZ))
	require.Equal(t, byte(0x01), mem[0x2001])
	require.Equal(t, byte(0x02), mem[0x3001])
}

func TestCas2SecondMismatchStoresNothing(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x0CFC, 0x8042, 0x90C4) // CAS2.W D2:D4,D1:D3,(A0):(A1)
	c.A[0] = 0x2000
	c.A[1] = 0x3000
	mem[0x2001] = 0xAA
	mem[0x3001] = 0xBB
	c.D[1] = 0x0001
	c.D[2] = 0x00AA
	c.D[3] = 0x0002
	c.D[4] = 0x0099
	c.Step(mem)

	require.False(t, c.Flag(SRZ))
	require.Equal(t, byte(0xAA), mem[0x2001], "no store when either compare fails")
	require.Equal(t, byte(0xBB), mem[0x3001])
	require.Equal(t, uint32(0x00AA), c.D[2], "both compare registers learn the operands")
	require.Equal(t, uint32(0x00BB), c.D[4])
}

func TestChkWithinBoundsContinues(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x4181, 0x7203) // CHK D1,D0; MOVEQ #3,D1
	c.D[0] = 50
	c.D[1] = 100
	c.Step(mem)
	require.False(t, c.Halted)

	c.Step(mem)
	require.Equal(t, uint32(3), c.D[1])
}

func TestChkNegativeValueHaltsWithN(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x4181) // CHK D1,D0
	c.D[0] = 0xFFFF
	c.D[1] = 100
	c.Step(mem)

	require.True(t, c.Halted)
	require.True(t, c.Flag(SRN))
}

func TestChkAboveBoundHaltsClearingN(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x4181) // CHK D1,D0
	c.D[0] = 101
	c.D[1] = 100
	c.SetFlag(SRN, true)
	c.Step(mem)

	require.True(t, c.Halted)
	require.False(t, c.Flag(SRN))
}
