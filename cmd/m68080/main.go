package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/Urethramancer/m68080/cpu"
	"github.com/Urethramancer/m68080/disassembler"
)

func main() {
	app := &cli.App{
		Name:  "m68080",
		Usage: "Run, inspect and disassemble 68080 machine code",
		Commands: []*cli.Command{
			runCommand(),
			disasmCommand(),
			scriptCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		color.Red("%v", err)
		os.Exit(1)
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Execute a raw binary",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "load", Usage: "load address", Value: 0x1000},
			&cli.UintFlag{Name: "mem", Usage: "memory size in bytes", Value: 0x20000},
			&cli.IntFlag{Name: "steps", Usage: "maximum instructions to execute", Value: 1_000_000},
			&cli.Uint64SliceFlag{Name: "break", Usage: "breakpoint address (repeatable)"},
			&cli.BoolFlag{Name: "no-apollo", Usage: "disable the extension instruction set"},
			&cli.BoolFlag{Name: "trace", Usage: "disassemble each instruction as it runs"},
		},
		Action: runAction,
	}
}

func runAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("run: need exactly one input file")
	}
	code, err := os.ReadFile(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	mem := make([]byte, ctx.Uint("mem"))
	c := cpu.New()
	c.EnableApollo(!ctx.Bool("no-apollo"))
	c.LoadCode(mem, uint32(ctx.Uint("load")), code)
	for _, addr := range ctx.Uint64Slice("break") {
		c.AddBreakpoint(uint32(addr))
	}

	trace := ctx.Bool("trace")
	steps := ctx.Int("steps")
	for i := 0; i < steps && !c.Halted; i++ {
		if trace {
			fmt.Println(disassembler.Disassemble(mem, c.PC))
		}
		c.Step(mem)
	}

	printState(c)
	if c.BreakpointHit {
		color.Yellow("breakpoint at %08X", c.BreakpointAddr)
	}
	return nil
}

func disasmCommand() *cli.Command {
	return &cli.Command{
		Name:      "disasm",
		Usage:     "Disassemble a raw binary",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.UintFlag{Name: "load", Usage: "load address", Value: 0x1000},
			&cli.UintFlag{Name: "start", Usage: "start offset into the file"},
			&cli.UintFlag{Name: "end", Usage: "end offset into the file (0 = whole file)"},
		},
		Action: disasmAction,
	}
}

func disasmAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("disasm: need exactly one input file")
	}
	code, err := os.ReadFile(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("disasm: %w", err)
	}

	load := uint32(ctx.Uint("load"))
	mem := make([]byte, load+uint32(len(code)))
	copy(mem[load:], code)

	start := load + uint32(ctx.Uint("start"))
	end := load + uint32(len(code))
	if e := uint32(ctx.Uint("end")); e != 0 {
		end = load + e
	}

	for _, in := range disassembler.Range(mem, start, end) {
		fmt.Println(in)
	}
	return nil
}

var (
	regLabel = color.New(color.FgCyan)
	regValue = color.New(color.FgHiWhite)
	flagOn   = color.New(color.FgGreen)
	flagOff  = color.New(color.FgHiBlack)
)

func printState(c *cpu.CPU) {
	s := c.Snapshot()

	for i := 0; i < 8; i++ {
		regLabel.Printf("D%d ", i)
		regValue.Printf("%08X  ", s.D[i])
		if i == 3 || i == 7 {
			fmt.Println()
		}
	}
	for i := 0; i < 8; i++ {
		regLabel.Printf("A%d ", i)
		regValue.Printf("%08X  ", s.A[i])
		if i == 3 || i == 7 {
			fmt.Println()
		}
	}

	regLabel.Print("PC ")
	regValue.Printf("%08X  ", s.PC)
	regLabel.Print("SR ")
	regValue.Printf("%04X  ", s.SR)

	for _, f := range []struct {
		name string
		on   bool
	}{{"X", s.X}, {"N", s.N}, {"Z", s.Z}, {"V", s.V}, {"C", s.C}} {
		if f.on {
			flagOn.Print(f.name)
		} else {
			flagOff.Print(f.name)
		}
	}
	fmt.Println()

	regLabel.Print("cycles ")
	regValue.Printf("%d  ", s.Cycles)
	regLabel.Print("instructions ")
	regValue.Printf("%d", s.Instructions)
	if s.Halted {
		color.Red("  halted")
	}
	fmt.Println()
}
