// Package main provides a profiling wrapper for rv32sim to identify
// performance bottlenecks in the decode and execute loop.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/rv32sim/emu"
	"github.com/sarchlab/rv32sim/loader"
	"github.com/sarchlab/rv32sim/timing/cache"
)

var (
	raw         = flag.Bool("raw", false, "Load the program as a flat binary")
	rawBase     = flag.Uint("base", 0, "Load address for flat binaries")
	icache      = flag.Bool("icache", false, "Fetch through the default instruction cache")
	cpuProfile  = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile  = flag.String("memprofile", "", "write memory profile to file")
	duration    = flag.Duration("duration", 30*time.Second, "max duration to run (for profiling)")
	instruction = flag.Uint64("max-instr", 1000000, "max instructions to execute (0 = unlimited)")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: profile [options] <program>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	programPath := flag.Arg(0)

	var prog *loader.Program
	var err error
	if *raw {
		prog, err = loader.LoadRaw(programPath, uint32(*rawBase))
	} else {
		prog, err = loader.Load(programPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Loaded: %s\n", programPath)
	fmt.Printf("Entry point: 0x%08X\n", prog.EntryPoint)

	start := time.Now()

	go func() {
		time.Sleep(*duration)
		fmt.Printf("\nTimeout reached after %v - stopping execution\n", *duration)
		os.Exit(2)
	}()

	result, instrCount := runProfile(prog)

	elapsed := time.Since(start)

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating memory profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing memory profile: %v\n", err)
		}
	}

	fmt.Printf("\nProfiling Results:\n")
	if result.Halted {
		fmt.Printf("Halt reason: %s\n", result.HaltReason)
	} else if result.Err != nil {
		fmt.Printf("Stopped: %v\n", result.Err)
	}
	fmt.Printf("Instructions executed: %d\n", instrCount)
	fmt.Printf("Elapsed time: %v\n", elapsed)
	if instrCount > 0 {
		fmt.Printf("Instructions/second: %.0f\n", float64(instrCount)/elapsed.Seconds())
	}
}

// runProfile runs the program with the per-step trace disabled.
func runProfile(prog *loader.Program) (emu.StepResult, uint64) {
	memory := emu.NewMemory()
	prog.LoadInto(memory)

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	opts := []emu.EmulatorOption{
		emu.WithMemory(memory),
		emu.WithStackPointer(prog.InitialSP),
		emu.WithMaxInstructions(*instruction),
		emu.WithLogger(log),
	}
	if *icache {
		ic := cache.New(cache.DefaultICacheConfig(), cache.NewMemoryBacking(memory))
		opts = append(opts, emu.WithICache(ic))
	}

	emulator := emu.NewEmulator(opts...)
	emulator.SetPC(prog.EntryPoint)

	result := emulator.Run()
	return result, emulator.InstructionCount()
}
