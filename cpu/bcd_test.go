package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAbcdDigitCarry(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0xC101) // ABCD D1,D0
	c.D[0] = 0x09
	c.D[1] = 0x01
	c.Step(mem)

	require.Equal(t, uint32(0x10), c.D[0])
	require.False(t, c.Flag(SRC))
	require.False(t, c.Flag(SRX))
	require.False(t, c.Flag(SRZ))
}

func TestAbcdDecimalCarryOut(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0xC101) // ABCD D1,D0
	c.D[0] = 0x45
	c.D[1] = 0x55
	c.SetFlag(SRZ, true)
	c.Step(mem)

	require.Equal(t, uint32(0x00), c.D[0])
	require.True(t, c.Flag(SRC))
	require.True(t, c.Flag(SRX))
	// Zero result leaves a previously-set Z alone.
	require.True(t, c.Flag(SRZ))
}

func TestAbcdZeroIsClearOnly(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0xC101) // ABCD D1,D0
	c.D[0] = 0x12
	c.D[1] = 0x34
	c.SetFlag(SRZ, true)
	c.Step(mem)

	require.Equal(t, uint32(0x46), c.D[0])
	require.False(t, c.Flag(SRZ), "non-zero result clears Z")
}

func TestAbcdUsesExtend(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0xC101) // ABCD D1,D0
	c.D[0] = 0x09
	c.D[1] = 0x01
	c.SetFlag(SRX, true)
	c.Step(mem)

	require.Equal(t, uint32(0x11), c.D[0])
}

func TestSbcdBorrow(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x8101) // SBCD D1,D0
	c.D[0] = 0x42
	c.D[1] = 0x07
	c.Step(mem)

	require.Equal(t, uint32(0x35), c.D[0])
	require.False(t, c.Flag(SRC))

	c.Reset()
	loadWords(c, mem, 0x8101)
	c.D[0] = 0x10
	c.D[1] = 0x20
	c.Step(mem)

	require.Equal(t, uint32(0x90), c.D[0])
	require.True(t, c.Flag(SRC), "decimal borrow sets C")
	require.True(t, c.Flag(SRX))
}

func TestNbcd(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x4800) // NBCD D0
	c.D[0] = 0x01
	c.Step(mem)

	// 0 - 1 in decimal wraps to 99 with a borrow.
	require.Equal(t, uint32(0x99), c.D[0])
	require.True(t, c.Flag(SRC))
}

func TestAbcdMemoryForm(t *testing.T) {
	c, mem := newMachine()
	// ABCD -(A1),-(A0).
	word, err := Encoding{Op: OpABCD, DstReg: 0, SrcReg: 1, Data: 1}.Word()
	require.NoError(t, err)
	loadWords(c, mem, word)

	c.A[0] = 0x2001
	c.A[1] = 0x3001
	mem[0x2000] = 0x15
	mem[0x3000] = 0x27
	c.Step(mem)

	require.Equal(t, uint32(0x2000), c.A[0])
	require.Equal(t, uint32(0x3000), c.A[1])
	require.Equal(t, byte(0x42), mem[0x2000])
}

func TestCmpmAlwaysIncrements(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0xB308, 0xB308) // CMPM.B (A0)+,(A1)+ twice
	c.A[0] = 0x2000
	c.A[1] = 0x3000
	mem[0x2000] = 5
	mem[0x3000] = 5
	mem[0x2001] = 1
	mem[0x3001] = 9

	c.Step(mem)
	require.True(t, c.Flag(SRZ))
	require.Equal(t, uint32(0x2001), c.A[0])
	require.Equal(t, uint32(0x3001), c.A[1])

	c.Step(mem)
	require.False(t, c.Flag(SRZ))
	require.Equal(t, uint32(0x2002), c.A[0])
	require.Equal(t, uint32(0x3002), c.A[1])
}

func TestPackUnpk(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x8141, 0x0000) // PACK D1,D0,#0
	c.D[1] = 0x0305
	c.Step(mem)
	require.Equal(t, uint32(0x35), c.D[0]&0xFF)

	c.Reset()
	loadWords(c, mem, 0x8181, 0x0000) // UNPK D1,D0,#0
	c.D[1] = 0x35
	c.Step(mem)
	require.Equal(t, uint32(0x0305), c.D[0]&0xFFFF)
}
