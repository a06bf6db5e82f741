package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"
	lua "github.com/yuin/gopher-lua"

	"github.com/Urethramancer/m68080/cpu"
	"github.com/Urethramancer/m68080/disassembler"
)

func scriptCommand() *cli.Command {
	return &cli.Command{
		Name:      "script",
		Usage:     "Drive the processor from a Lua script",
		ArgsUsage: "<script.lua>",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "mem", Usage: "memory size in bytes", Value: 0x20000},
		},
		Action: scriptAction,
	}
}

func scriptAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("script: need exactly one script file")
	}

	mem := make([]byte, ctx.Uint("mem"))
	c := cpu.New()

	L := lua.NewState()
	defer L.Close()
	registerAPI(L, c, mem)

	if err := L.DoFile(ctx.Args().First()); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// registerRef resolves a register name to its storage. SR is handled
// separately because it is 16 bits wide.
func registerRef(c *cpu.CPU, name string) *uint32 {
	name = strings.ToLower(name)
	switch {
	case len(name) == 2 && name[0] == 'd' && name[1] >= '0' && name[1] <= '7':
		return &c.D[name[1]-'0']
	case len(name) == 2 && name[0] == 'a' && name[1] >= '0' && name[1] <= '7':
		return &c.A[name[1]-'0']
	case name == "pc":
		return &c.PC
	case name == "usp":
		return &c.USP
	case name == "ssp":
		return &c.SSP
	case name == "vbr":
		return &c.VBR
	}
	return nil
}

// registerAPI exposes the processor to Lua. The functions are kept
// flat and small so scripts read like debugger sessions.
func registerAPI(L *lua.LState, c *cpu.CPU, mem []byte) {
	set := func(name string, fn lua.LGFunction) {
		L.SetGlobal(name, L.NewFunction(fn))
	}

	set("step", func(L *lua.LState) int {
		n := L.OptInt(1, 1)
		for i := 0; i < n && !c.Halted; i++ {
			c.Step(mem)
		}
		return 0
	})

	set("run", func(L *lua.LState) int {
		L.Push(lua.LNumber(c.Run(mem, L.OptInt(1, 1_000_000))))
		return 1
	})

	set("reg", func(L *lua.LState) int {
		name := L.CheckString(1)
		if strings.EqualFold(name, "sr") {
			L.Push(lua.LNumber(c.SR))
			return 1
		}
		r := registerRef(c, name)
		if r == nil {
			L.ArgError(1, "unknown register "+name)
			return 0
		}
		L.Push(lua.LNumber(*r))
		return 1
	})

	set("setreg", func(L *lua.LState) int {
		name := L.CheckString(1)
		value := uint32(L.CheckNumber(2))
		if strings.EqualFold(name, "sr") {
			c.SR = uint16(value)
			return 0
		}
		r := registerRef(c, name)
		if r == nil {
			L.ArgError(1, "unknown register "+name)
			return 0
		}
		*r = value
		return 0
	})

	set("peek", func(L *lua.LState) int {
		addr := uint32(L.CheckNumber(1))
		size := cpu.Size(L.OptInt(2, 1))
		L.Push(lua.LNumber(c.ReadMemory(mem, addr, size)))
		return 1
	})

	set("poke", func(L *lua.LState) int {
		addr := uint32(L.CheckNumber(1))
		value := uint32(L.CheckNumber(2))
		size := cpu.Size(L.OptInt(3, 1))
		c.WriteMemory(mem, addr, value, size)
		return 0
	})

	set("load", func(L *lua.LState) int {
		addr := uint32(L.CheckNumber(1))
		tbl := L.CheckTable(2)
		code := make([]byte, 0, tbl.Len())
		tbl.ForEach(func(_, v lua.LValue) {
			code = append(code, byte(lua.LVAsNumber(v)))
		})
		c.LoadCode(mem, addr, code)
		return 0
	})

	set("breakpoint", func(L *lua.LState) int {
		c.AddBreakpoint(uint32(L.CheckNumber(1)))
		return 0
	})

	set("hits", func(L *lua.LState) int {
		bp, ok := c.Breakpoint(uint32(L.CheckNumber(1)))
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LNumber(bp.HitCount))
		return 1
	})

	set("resume", func(L *lua.LState) int {
		c.Resume()
		return 0
	})

	set("halted", func(L *lua.LState) int {
		L.Push(lua.LBool(c.Halted))
		return 1
	})

	set("reset", func(L *lua.LState) int {
		c.Reset()
		return 0
	})

	set("disasm", func(L *lua.LState) int {
		addr := uint32(L.OptInt(1, int(c.PC)))
		L.Push(lua.LString(disassembler.Disassemble(mem, addr).String()))
		return 1
	})

	set("regs", func(L *lua.LState) int {
		printState(c)
		return 0
	})
}
