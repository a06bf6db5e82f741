package cpu

import "math"

// Extension instructions carry their register numbers in a single
// extension word: destination in bits 12-15, first source in bits
// 8-11, second source in bits 4-7.
func apolloRegs(ext uint16) (dst, src1, src2 uint16) {
	return (ext >> 12) & 0xF, (ext >> 8) & 0xF, (ext >> 4) & 0xF
}

func (c *CPU) executeApollo(mem []byte, op Op, opcode uint16) {
	ext := c.FetchWord(mem)
	dst, src1, src2 := apolloRegs(ext)

	switch {
	case op.IsVector():
		c.executeVector(mem, op, dst, src1, src2)
	case op.Is64Bit():
		c.execute64(op, dst, src1)
	default:
		c.executeFPU(op, dst, src1)
	}
}

// executeVector runs a lane-wise operation over the 512-bit vector
// registers. The arithmetic lanes are 64-bit integers; the geometric
// ops reinterpret them as doubles.
func (c *CPU) executeVector(mem []byte, op Op, dst, src1, src2 uint16) {
	a := &c.Apollo.V[src1]
	b := &c.Apollo.V[src2]
	d := &c.Apollo.V[dst]

	switch op {
	case OpVADD:
		for i := range d {
			d[i] = a[i] + b[i]
		}
	case OpVSUB:
		for i := range d {
			d[i] = a[i] - b[i]
		}
	case OpVMUL:
		for i := range d {
			d[i] = a[i] * b[i]
		}
	case OpVDIV:
		// A zero lane divides to zero rather than faulting; SIMD
		// code expects to keep streaming.
		for i := range d {
			if b[i] == 0 {
				d[i] = 0
			} else {
				d[i] = a[i] / b[i]
			}
		}
	case OpVAND:
		for i := range d {
			d[i] = a[i] & b[i]
		}
	case OpVOR:
		for i := range d {
			d[i] = a[i] | b[i]
		}
	case OpVXOR:
		for i := range d {
			d[i] = a[i] ^ b[i]
		}
	case OpVNOT:
		for i := range d {
			d[i] = ^a[i]
		}
	case OpVMIN:
		for i := range d {
			d[i] = min(a[i], b[i])
		}
	case OpVMAX:
		for i := range d {
			d[i] = max(a[i], b[i])
		}
	case OpVMOVE:
		*d = *a
	case OpVLOAD:
		addr := c.A[src1&7]
		for i := range d {
			hi := c.ReadMemory(mem, addr, SizeLong)
			lo := c.ReadMemory(mem, addr+4, SizeLong)
			d[i] = uint64(hi)<<32 | uint64(lo)
			addr += 8
		}
	case OpVSTORE:
		addr := c.A[src1&7]
		v := c.Apollo.V[dst]
		for i := range v {
			c.WriteMemory(mem, addr, uint32(v[i]>>32), SizeLong)
			c.WriteMemory(mem, addr+4, uint32(v[i]), SizeLong)
			addr += 8
		}
	case OpVSUM:
		var sum uint64
		for i := range a {
			sum += a[i]
		}
		c.D[dst&7] = uint32(sum)
	case OpVDOT:
		var sum float64
		for i := range a {
			sum += math.Float64frombits(a[i]) * math.Float64frombits(b[i])
		}
		d[0] = math.Float64bits(sum)
	case OpVCROSS:
		ax, ay, az := math.Float64frombits(a[0]), math.Float64frombits(a[1]), math.Float64frombits(a[2])
		bx, by, bz := math.Float64frombits(b[0]), math.Float64frombits(b[1]), math.Float64frombits(b[2])
		d[0] = math.Float64bits(ay*bz - az*by)
		d[1] = math.Float64bits(az*bx - ax*bz)
		d[2] = math.Float64bits(ax*by - ay*bx)
		for i := 3; i < len(d); i++ {
			d[i] = 0
		}
	case OpVABS:
		for i := range d {
			d[i] = math.Float64bits(math.Abs(math.Float64frombits(a[i])))
		}
	case OpVSQRT:
		for i := range d {
			d[i] = math.Float64bits(math.Sqrt(math.Float64frombits(a[i])))
		}
	}
}

// quad reads the 64-bit value held in the data register pair the
// extension nibble names: high half in D[2n], low half in D[2n+1].
func (c *CPU) quad(n uint16) uint64 {
	hi := c.D[(n*2)&7]
	lo := c.D[(n*2+1)&7]
	return uint64(hi)<<32 | uint64(lo)
}

func (c *CPU) setQuad(n uint16, value uint64) {
	c.D[(n*2)&7] = uint32(value >> 32)
	c.D[(n*2+1)&7] = uint32(value)
}

func (c *CPU) setFlagsQuad(result uint64) {
	c.SetFlag(SRZ, result == 0)
	c.SetFlag(SRN, result>>63 != 0)
}

// execute64 runs the register-pair arithmetic. Division by zero is
// fatal and leaves the destination pair unchanged.
func (c *CPU) execute64(op Op, dstN, srcN uint16) {
	src := c.quad(srcN)
	dst := c.quad(dstN)

	switch op {
	case OpADD64:
		result := dst + src
		c.setQuad(dstN, result)
		c.setFlagsQuad(result)
		c.SetFlag(SRC, result < dst)
		c.SetFlag(SRV, (src>>63 == dst>>63) && (result>>63 != dst>>63))
		c.copyCarryToExtend()
	case OpSUB64:
		result := dst - src
		c.setQuad(dstN, result)
		c.setFlagsQuad(result)
		c.SetFlag(SRC, src > dst)
		c.SetFlag(SRV, (src>>63 != dst>>63) && (result>>63 != dst>>63))
		c.copyCarryToExtend()
	case OpMUL64:
		result := dst * src
		c.setQuad(dstN, result)
		c.setFlagsQuad(result)
		c.SetFlag(SRV, false)
		c.SetFlag(SRC, false)
	case OpDIV64:
		if src == 0 {
			c.Halted = true
			return
		}
		result := dst / src
		c.setQuad(dstN, result)
		c.setFlagsQuad(result)
		c.SetFlag(SRV, false)
		c.SetFlag(SRC, false)
	case OpMOVE64:
		c.setQuad(dstN, src)
		c.setFlagsQuad(src)
	case OpCMP64:
		result := dst - src
		c.setFlagsQuad(result)
		c.SetFlag(SRC, src > dst)
		c.SetFlag(SRV, (src>>63 != dst>>63) && (result>>63 != dst>>63))
	}
}

// FPSR condition byte, N and Z in the top nibble.
const (
	fpsrN = uint32(1) << 27
	fpsrZ = uint32(1) << 26
)

// setFPFlags reports a scalar result through the ordinary condition
// codes and mirrors N and Z into the FPSR condition byte.
func (c *CPU) setFPFlags(zero, negative bool) {
	c.SetFlag(SRZ, zero)
	c.SetFlag(SRN, negative)

	fpsr := c.Apollo.FPSR &^ (fpsrN | fpsrZ)
	if negative {
		fpsr |= fpsrN
	}
	if zero {
		fpsr |= fpsrZ
	}
	c.Apollo.FPSR = fpsr
}

// executeFPU runs the scalar double-precision ops. FDIV by zero is
// fatal; FCMP and FTST report without touching their operands.
func (c *CPU) executeFPU(op Op, dstN, srcN uint16) {
	src := c.Apollo.FP[srcN&7]
	dst := &c.Apollo.FP[dstN&7]

	switch op {
	case OpFMOVE:
		*dst = src
	case OpFADD:
		*dst += src
	case OpFSUB:
		*dst -= src
	case OpFMUL:
		*dst *= src
	case OpFDIV:
		if src == 0 {
			c.Halted = true
			return
		}
		*dst /= src
	case OpFSQRT:
		*dst = math.Sqrt(src)
	case OpFABS:
		*dst = math.Abs(src)
	case OpFNEG:
		*dst = -src
	case OpFSIN:
		*dst = math.Sin(src)
	case OpFCOS:
		*dst = math.Cos(src)
	case OpFTAN:
		*dst = math.Tan(src)
	case OpFCMP:
		c.setFPFlags(*dst == src, *dst < src)
		c.SetFlag(SRV, false)
		c.SetFlag(SRC, false)
		return
	case OpFTST:
		c.setFPFlags(*dst == 0, *dst < 0)
		c.SetFlag(SRV, false)
		c.SetFlag(SRC, false)
		return
	}

	c.setFPFlags(*dst == 0, *dst < 0)
}
