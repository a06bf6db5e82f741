package cpu

// MMIORegion is an opaque pass-through window in the address space.
// Reads and writes inside [Start,End) go to the collaborator's
// functions instead of the plain buffer. The devices behind them are
// somebody else's problem.
type MMIORegion struct {
	Start uint32
	End   uint32
	Read  func(addr uint32, size Size) uint32
	Write func(addr uint32, value uint32, size Size)
}

// MapMMIO registers a pass-through region. Regions are checked in
// registration order; the first match wins.
func (c *CPU) MapMMIO(region MMIORegion) {
	c.mmio = append(c.mmio, region)
}

func (c *CPU) mmioRegion(addr uint32) *MMIORegion {
	for i := range c.mmio {
		if addr >= c.mmio[i].Start && addr < c.mmio[i].End {
			return &c.mmio[i]
		}
	}
	return nil
}

// recordBurst logs the 128-byte aligned burst window covering addr.
// Observability only.
func (c *CPU) recordBurst(mem []byte, addr uint32) {
	c.Bus.Address = addr &^ 0x7F
	c.Bus.Active = true
	c.Bus.Transfers++
	if int(c.Bus.Address) < len(mem) {
		copy(c.Bus.Data[:], mem[c.Bus.Address:])
	}
}

// FetchWord reads the 16-bit word at PC and advances PC by 2. An
// out-of-bounds fetch is fatal: the processor halts and 0 is returned.
// This is deliberately stricter than ordinary reads.
func (c *CPU) FetchWord(mem []byte) uint16 {
	if int(c.PC)+1 >= len(mem) {
		c.Halted = true
		return 0
	}

	c.recordBurst(mem, c.PC)
	word := uint16(mem[c.PC])<<8 | uint16(mem[c.PC+1])
	c.PC += 2
	c.Cycles++
	return word
}

// FetchLong reads two instruction-stream words, high word first.
func (c *CPU) FetchLong(mem []byte) uint32 {
	high := uint32(c.FetchWord(mem))
	low := uint32(c.FetchWord(mem))
	return high<<16 | low
}

// ReadMemory reads a sized value from memory in big-endian order.
// Addresses inside a mapped MMIO region forward to the collaborator.
// An out-of-bounds read is tolerated and returns zero; execution
// continues.
func (c *CPU) ReadMemory(mem []byte, addr uint32, size Size) uint32 {
	c.Cycles++
	c.LoadCount++

	if r := c.mmioRegion(addr); r != nil && r.Read != nil {
		return r.Read(addr, size)
	}
	if int(addr) >= len(mem) {
		return 0
	}

	c.recordBurst(mem, addr)

	var value uint32
	switch size {
	case SizeByte:
		value = uint32(mem[addr])
	case SizeWord:
		if int(addr)+1 < len(mem) {
			value = uint32(mem[addr])<<8 | uint32(mem[addr+1])
		}
	case SizeLong:
		if int(addr)+3 < len(mem) {
			value = uint32(mem[addr])<<24 | uint32(mem[addr+1])<<16 |
				uint32(mem[addr+2])<<8 | uint32(mem[addr+3])
		}
	}
	return value
}

// WriteMemory writes a sized value to memory in big-endian order.
// MMIO regions forward to the collaborator; an out-of-bounds write is
// a tolerated no-op.
func (c *CPU) WriteMemory(mem []byte, addr, value uint32, size Size) {
	c.Cycles++
	c.StoreCount++

	if r := c.mmioRegion(addr); r != nil && r.Write != nil {
		r.Write(addr, value, size)
		return
	}
	if int(addr) >= len(mem) {
		return
	}

	c.recordBurst(mem, addr)

	switch size {
	case SizeByte:
		mem[addr] = byte(value)
	case SizeWord:
		if int(addr)+1 < len(mem) {
			mem[addr] = byte(value >> 8)
			mem[addr+1] = byte(value)
		}
	case SizeLong:
		if int(addr)+3 < len(mem) {
			mem[addr] = byte(value >> 24)
			mem[addr+1] = byte(value >> 16)
			mem[addr+2] = byte(value >> 8)
			mem[addr+3] = byte(value)
		}
	}
}
