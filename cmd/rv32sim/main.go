// Package main provides the rv32sim command line. It decodes RV32I words
// into datapath control signals or runs a program on the single-cycle
// datapath.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/rv32sim/config"
	"github.com/sarchlab/rv32sim/emu"
	"github.com/sarchlab/rv32sim/insts"
	"github.com/sarchlab/rv32sim/loader"
	"github.com/sarchlab/rv32sim/timing/cache"
)

// Exit statuses.
const (
	exitOK    = 0
	exitError = 1
	exitLimit = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rv32sim", flag.ContinueOnError)
	fs.SetOutput(stderr)

	decode := fs.Bool("decode", false, "Decode hex instruction words and print their control signals")
	raw := fs.Bool("raw", false, "Load the program as a flat binary at raw_base")
	configPath := fs.String("config", "", "Path to simulator configuration JSON file")
	verbose := fs.Bool("v", false, "Verbose output (debug trace)")

	if err := fs.Parse(args); err != nil {
		return exitError
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(stderr, "Usage: rv32sim [options] <program.elf>\n")
		fmt.Fprintf(stderr, "       rv32sim -decode <hex word>...\n")
		fmt.Fprintf(stderr, "\nOptions:\n")
		fs.PrintDefaults()
		return exitError
	}

	if *decode {
		return runDecode(fs.Args(), stdout, stderr)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading config: %v\n", err)
			return exitError
		}
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Invalid config: %v\n", err)
		return exitError
	}

	log, err := newLogger(cfg, *verbose, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Invalid config: %v\n", err)
		return exitError
	}

	programPath := fs.Arg(0)

	var prog *loader.Program
	if *raw {
		prog, err = loader.LoadRaw(programPath, cfg.RawBase)
	} else {
		prog, err = loader.Load(programPath)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error loading program: %v\n", err)
		return exitError
	}

	log.WithFields(logrus.Fields{
		"path":     programPath,
		"entry":    fmt.Sprintf("0x%08X", prog.EntryPoint),
		"segments": len(prog.Segments),
	}).Info("program loaded")

	return runEmulation(prog, cfg, log, stdout)
}

func newLogger(cfg *config.SimConfig, verbose bool, out io.Writer) (*logrus.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	if verbose {
		level = logrus.DebugLevel
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)
	return log, nil
}

// runEmulation runs the program on the datapath and prints a summary.
func runEmulation(prog *loader.Program, cfg *config.SimConfig, log *logrus.Logger, stdout io.Writer) int {
	memory := emu.NewMemory()
	prog.LoadInto(memory)

	opts := []emu.EmulatorOption{
		emu.WithMemory(memory),
		emu.WithStackPointer(prog.InitialSP),
		emu.WithMaxInstructions(cfg.MaxInstructions),
		emu.WithLogger(log),
	}

	var icache *cache.Cache
	if cfg.ICache.Enabled {
		icache = cache.New(cfg.ICache.Config, cache.NewMemoryBacking(memory))
		opts = append(opts, emu.WithICache(icache))
	}

	emulator := emu.NewEmulator(opts...)
	emulator.SetPC(prog.EntryPoint)

	result := emulator.Run()
	stats := emulator.Stats()

	fmt.Fprintf(stdout, "Instructions: %d\n", stats.Instructions)
	fmt.Fprintf(stdout, "Final PC:     0x%08X\n", result.PC)
	if result.Halted {
		fmt.Fprintf(stdout, "Halt reason:  %s\n", result.HaltReason)
	}
	fmt.Fprintf(stdout, "Branches:     %d (%d taken)\n", stats.Branches, stats.TakenBranch)
	fmt.Fprintf(stdout, "Jumps:        %d\n", stats.Jumps)

	if icache != nil {
		cs := icache.Stats()
		fmt.Fprintf(stdout, "\nI-cache:\n")
		fmt.Fprintf(stdout, "  Hits:         %d\n", cs.Hits)
		fmt.Fprintf(stdout, "  Misses:       %d\n", cs.Misses)
		fmt.Fprintf(stdout, "  Hit rate:     %.1f%%\n", 100*cs.HitRate())
		fmt.Fprintf(stdout, "  Fetch cycles: %d\n", stats.FetchCycles)
	}

	if errors.Is(result.Err, emu.ErrMaxInstructions) {
		log.WithField("max_instructions", cfg.MaxInstructions).Warn("instruction limit reached")
		return exitLimit
	}

	return exitOK
}

// runDecode prints one row of control signals per word.
func runDecode(words []string, stdout, stderr io.Writer) int {
	parsed := make([]uint32, 0, len(words))
	for _, w := range words {
		v, err := parseWord(w)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		parsed = append(parsed, v)
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WORD\tINST\tFMT\tREGCTRL\tALUCTRL\tRHSIMM\tPCREGMUX\tPCADDIMM\tLHSMUX\tPCBRANCH\tHALT")

	decoder := insts.NewDecoder()
	for _, w := range parsed {
		r := decoder.Decode(w)
		s := r.Signals

		rhs := "-"
		if s.RHSImm.Enabled {
			rhs = strconv.FormatInt(int64(s.RHSImm.Value), 10)
		}

		halt := "-"
		if r.Halt {
			halt = r.HaltReason.String()
		}

		fmt.Fprintf(tw, "%08X\t%s\t%s\t0x%05X\t0x%02X\t%s\t%d\t%d\t%d\t%d\t%s\n",
			w, r.Mnemonic(), r.Format, uint32(s.RegCtrl), uint32(s.ALUCtrl), rhs,
			s.PCRegMuxCtrl, s.PCAddImm, s.LHSMuxCtrl, s.PCBranchCtrl, halt)
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	return exitOK
}

func parseWord(s string) (uint32, error) {
	t := strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(t, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid instruction word %q: %w", s, err)
	}
	return uint32(v), nil
}
