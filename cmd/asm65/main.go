package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/Urethramancer/nes6502/assembler"
	"github.com/Urethramancer/nes6502/disassembler"
	"github.com/Urethramancer/nes6502/internal/config"
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
	opt := arg.New("asm65")
	opt.SetDefaultHelp(true)
	opt.SetOption(arg.GroupDefault, "o", "output", "Write the binary to this file.", "", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "b", "base", "Load address of the first byte.", "$8000", false, arg.VarString, nil)
	opt.SetOption(arg.GroupDefault, "q", "quiet", "Only print errors.", false, false, arg.VarBool, nil)
	opt.SetOption(arg.GroupDefault, "d", "debug", "Enable debug logging.", false, false, arg.VarBool, nil)
	opt.SetPositional("FILE", "Assembly source file.", "", true, arg.VarString)

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
		fmt.Printf("asm65 %s\n\n", buildinfo.Version(version, commit, date))
	}

	base, err := disassembler.ParseAddress(opt.GetString("base"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid base: %v\n", err)
		os.Exit(1)
	}

	input := opt.GetPosString("FILE")
	data, err := os.ReadFile(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input file: %v\n", err)
		os.Exit(1)
	}

	asm := assembler.New()
	code, err := asm.Assemble(string(data), base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Assembly error: %v\n", err)
		os.Exit(1)
	}

	labels := asm.Labels()
	names := make([]string, 0, len(labels))
	for name := range labels {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		logger.Debug("label", log.String("name", name), log.String("address", fmt.Sprintf("$%04X", labels[name])))
	}

	output := opt.GetString("output")
	if output == "" {
		printHex(base, code)
		return
	}

	if err := os.WriteFile(output, code, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	logger.Info("assembled", log.Int("bytes", len(code)), log.String("output", output))
}

// printHex prints code as 16 bytes per row, prefixed by the row address.
func printHex(base uint16, code []byte) {
	for i := 0; i < len(code); i += 16 {
		end := min(i+16, len(code))
		fmt.Printf("$%04X ", base+uint16(i))
		for _, b := range code[i:end] {
			fmt.Printf(" %02X", b)
		}
		fmt.Println()
	}
}
