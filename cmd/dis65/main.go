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

func main() {
	opt := arg.New("dis65")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "o", "output", "Write the listing to this file.", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "b", "base", "Load address for raw binaries.", "$8000", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "s", "start", "First address to list. Defaults to the loaded PC.", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "n", "count", "Maximum number of lines, 0 for no limit.", 0, false, arg.VarInt, nil)
	opt.SetOption(arg.GroupDefault, "x", "xreg", "Value of the X register.", "0", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "y", "yreg", "Value of the Y register.", "0", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "w", "wrap", "Keep indirect pointer reads inside their page.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "q", "quiet", "Only print errors.", false, false, arg.VarBool, nil)
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
	logger := config.CreateLogger(opt.GetBool("debug"), quiet)
	if !quiet {
		fmt.Printf("dis65 %s\n\n", buildinfo.Version(version, commit, date))
	}

	if err := run(opt, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opt *arg.Options, logger *log.Logger) error {
	base, err := disassembler.ParseAddress(opt.GetString("base"))
	if err != nil {
		return fmt.Errorf("invalid base: %w", err)
	}

	c := cpu.New()
	c.IndirectPageWrap = opt.GetBool("wrap")
	if c.X, err = disassembler.ParseByte(opt.GetString("xreg")); err != nil {
		return fmt.Errorf("invalid x: %w", err)
	}
	if c.Y, err = disassembler.ParseByte(opt.GetString("yreg")); err != nil {
		return fmt.Errorf("invalid y: %w", err)
	}

	if err := loader.File(c, opt.GetPosString("FILE"), base); err != nil {
		return err
	}

	opts := disassembler.DefaultOptions()
	opts.Logger = logger
	opts.Start = c.PC
	opts.Count = opt.GetInt("count")
	if s := opt.GetString("start"); s != "" {
		if opts.Start, err = disassembler.ParseAddress(s); err != nil {
			return fmt.Errorf("invalid start: %w", err)
		}
	}

	text := disassembler.Format(disassembler.Disassemble(c, opts))
	output := opt.GetString("output")
	if output == "" {
		fmt.Print(text)
		return nil
	}

	if err := os.WriteFile(output, []byte(text), 0644); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}
	logger.Info("listing written", log.String("output", output))
	return nil
}
