package cpu

// Breakpoint is a PC-match breakpoint. Hitting one halts the processor
// and bumps the hit counter; it is reported state, not an error.
type Breakpoint struct {
	Address  uint32
	Enabled  bool
	HitCount uint64
}

// AddBreakpoint registers a breakpoint at address. Adding the same
// address twice is allowed but pointless; the first entry wins.
func (c *CPU) AddBreakpoint(address uint32) {
	c.Breakpoints = append(c.Breakpoints, Breakpoint{
		Address: address,
		Enabled: true,
	})
}

// RemoveBreakpoint deletes the breakpoint at address, if present.
func (c *CPU) RemoveBreakpoint(address uint32) {
	for i := range c.Breakpoints {
		if c.Breakpoints[i].Address == address {
			c.Breakpoints = append(c.Breakpoints[:i], c.Breakpoints[i+1:]...)
			return
		}
	}
}

// ClearBreakpoints removes every breakpoint.
func (c *CPU) ClearBreakpoints() {
	c.Breakpoints = c.Breakpoints[:0]
}

// EnableBreakpoint enables or disables the breakpoint at address
// without forgetting its hit count.
func (c *CPU) EnableBreakpoint(address uint32, enabled bool) {
	for i := range c.Breakpoints {
		if c.Breakpoints[i].Address == address {
			c.Breakpoints[i].Enabled = enabled
			return
		}
	}
}

// Breakpoint returns the breakpoint at address, if one exists.
func (c *CPU) Breakpoint(address uint32) (Breakpoint, bool) {
	for i := range c.Breakpoints {
		if c.Breakpoints[i].Address == address {
			return c.Breakpoints[i], true
		}
	}
	return Breakpoint{}, false
}

// checkBreakpoint tests address against the enabled breakpoints,
// recording the hit on a match.
func (c *CPU) checkBreakpoint(address uint32) bool {
	for i := range c.Breakpoints {
		if c.Breakpoints[i].Enabled && c.Breakpoints[i].Address == address {
			c.Breakpoints[i].HitCount++
			c.BreakpointHit = true
			c.BreakpointAddr = address
			return true
		}
	}
	return false
}
