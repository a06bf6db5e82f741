package cpu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitTestRegisterModulo32(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x0300, 0x0300) // BTST D1,D0 twice
	c.D[0] = 0x10

	c.D[1] = 36 // 36 mod 32 = 4
	c.Step(mem)
	require.False(t, c.Flag(SRZ))

	c.D[1] = 5
	c.Step(mem)
	require.True(t, c.Flag(SRZ))
}

func TestBitSetMemoryModulo8(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x08D0, 0x000A) // BSET #10,(A0)
	c.A[0] = 0x2000
	c.Step(mem)

	// 10 mod 8 = 2; the byte was clear, so Z reports the prior state.
	require.True(t, c.Flag(SRZ))
	require.Equal(t, byte(0x04), mem[0x2000])
}

func TestBitChangeReportsBitBeforeChange(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x0340) // BCHG D1,D0
	c.D[0] = 0x01
	c.D[1] = 0
	c.Step(mem)

	require.False(t, c.Flag(SRZ), "bit was set before the toggle")
	require.Equal(t, uint32(0), c.D[0])
}

func TestBitClearStaticModulo32(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0x0880, 0x0023) // BCLR #35,D0
	c.D[0] = 0x08
	c.Step(mem)

	// 35 mod 32 = 3.
	require.False(t, c.Flag(SRZ))
	require.Equal(t, uint32(0), c.D[0])
}

func TestBitFieldExtractUnsigned(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0xE9C0, 0x1208) // BFEXTU D0{8:8},D1
	c.D[0] = 0x12345678
	c.Step(mem)

	require.Equal(t, uint32(0x34), c.D[1])
	require.False(t, c.Flag(SRZ))
	require.False(t, c.Flag(SRN))
}

func TestBitFieldWidthZeroMeansFullLong(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0xE9C0, 0x1000) // BFEXTU D0{0:32},D1
	c.D[0] = 0xDEADBEEF
	c.Step(mem)

	require.Equal(t, uint32(0xDEADBEEF), c.D[1])
	require.True(t, c.Flag(SRN))
}

func TestBitFieldInsertWidthZeroMeansFullLong(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0xEFC0, 0x1000) // BFINS D1,D0{0:32}
	c.D[0] = 0x12345678
	c.D[1] = 0xCAFEBABE
	c.Step(mem)

	require.Equal(t, uint32(0xCAFEBABE), c.D[0])
	require.True(t, c.Flag(SRN))
	require.False(t, c.Flag(SRZ))
}

func TestBitFieldInsertFlagsFromInsertedValue(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0xEFC0, 0x1208) // BFINS D1,D0{8:8}
	c.D[0] = 0xFFFFFFFF
	c.D[1] = 0
	c.Step(mem)

	require.Equal(t, uint32(0xFF00FFFF), c.D[0])
	require.True(t, c.Flag(SRZ), "flags follow the inserted value")
	require.False(t, c.Flag(SRN))
}

func TestBitFieldOffsetWrapsAroundOperand(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0xEEC0, 0x0708) // BFSET D0{28:8}
	c.D[0] = 0
	c.Step(mem)

	// Offsets 28-35 count from the MSB and wrap: the low and high
	// nibbles both light up.
	require.Equal(t, uint32(0xF000000F), c.D[0])
	require.True(t, c.Flag(SRZ), "field was zero before the set")
}

func TestBitFieldFindFirstOne(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0xEDC0, 0x1010, 0xEDC0, 0x1010) // BFFFO D0{0:16},D1 twice
	c.D[0] = 0x00010000
	c.Step(mem)
	require.Equal(t, uint32(15), c.D[1])

	c.D[0] = 0
	c.Step(mem)
	// An empty field reports offset+width.
	require.Equal(t, uint32(16), c.D[1])
	require.True(t, c.Flag(SRZ))
}

func TestBitFieldMemoryOperand(t *testing.T) {
	c, mem := newMachine()
	loadWords(c, mem, 0xECD0, 0x0208) // BFCLR (A0){8:8}
	c.A[0] = 0x2000
	mem[0x2000] = 0xAA
	mem[0x2001] = 0xFF
	mem[0x2002] = 0x55
	c.Step(mem)

	require.Equal(t, byte(0xAA), mem[0x2000])
	require.Equal(t, byte(0x00), mem[0x2001])
	require.Equal(t, byte(0x55), mem[0x2002])
	require.False(t, c.Flag(SRZ), "field held ones before the clear")
}
