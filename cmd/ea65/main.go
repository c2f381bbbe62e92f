package main

import (
	"fmt"
	"os"

	"github.com/Urethramancer/nes6502/cpu"
	"github.com/Urethramancer/nes6502/disassembler"
	"github.com/Urethramancer/nes6502/internal/config"
	"github.com/Urethramancer/nes6502/loader"
	"github.com/grimdork/climate/arg"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "0.1.0"
	commit  = ""
	date    = ""
)

// ea65 loads a program, sets the registers and prints the effective address
// an instruction's operand resolves to.
func main() {
	opt := arg.New("ea65")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "m", "mode", "Addressing mode, e.g. absx or (indirect),y.", "", true, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "p", "pc", "Address of the instruction.", "", true, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "b", "base", "Load address for raw binaries.", "$8000", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "x", "xreg", "Value of the X register.", "0", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "y", "yreg", "Value of the Y register.", "0", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "w", "wrap", "Keep indirect pointer reads inside their page.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "q", "quiet", "Only print the address.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "d", "debug", "Enable debug logging.", false, false, arg.VarBool, nil)
	opt.SetPositional("FILE", "Raw binary or .nes image.", "", true, arg.VarString)

	err := opt.Parse(os.Args[1:])
	if err != nil {
		if err == arg.ErrNoArgs {
			opt.PrintHelp()
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	quiet := opt.GetBool("quiet")
	if !quiet {
		fmt.Printf("ea65 %s\n\n", buildinfo.Version(version, commit, date))
	}

	ea, err := resolve(opt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("$%04X\n", ea)
}

func resolve(opt *arg.Options) (uint16, error) {
	logger := config.CreateLogger(opt.GetBool("debug"), opt.GetBool("quiet"))

	mode, ok := cpu.ParseMode(opt.GetString("mode"))
	if !ok {
		return 0, fmt.Errorf("unknown addressing mode %q", opt.GetString("mode"))
	}
	pc, err := disassembler.ParseAddress(opt.GetString("pc"))
	if err != nil {
		return 0, fmt.Errorf("invalid pc: %w", err)
	}
	if !mode.HasAddress() {
		return 0, &cpu.ModeError{Mode: mode, PC: pc}
	}
	base, err := disassembler.ParseAddress(opt.GetString("base"))
	if err != nil {
		return 0, fmt.Errorf("invalid base: %w", err)
	}

	c := cpu.New()
	c.IndirectPageWrap = opt.GetBool("wrap")
	if c.X, err = disassembler.ParseByte(opt.GetString("xreg")); err != nil {
		return 0, fmt.Errorf("invalid x: %w", err)
	}
	if c.Y, err = disassembler.ParseByte(opt.GetString("yreg")); err != nil {
		return 0, fmt.Errorf("invalid y: %w", err)
	}
	if err := loader.File(c, opt.GetPosString("FILE"), base); err != nil {
		return 0, err
	}
	c.PC = pc

	ea := c.Resolve(pc, mode)
	logger.Debug("resolved", log.Stringer("mode", mode), log.String("pc", fmt.Sprintf("$%04X", pc)),
		log.Uint8("x", c.X), log.Uint8("y", c.Y), log.String("ea", fmt.Sprintf("$%04X", ea)))
	if !opt.GetBool("quiet") {
		c.Dump(os.Stdout)
	}
	return ea, nil
}
