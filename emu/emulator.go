package emu

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sarchlab/rv32sim/insts"
)

// ErrMaxInstructions is returned once the configured instruction limit is
// reached.
var ErrMaxInstructions = errors.New("max instructions reached")

// InstructionCache serves instruction fetches in front of memory.
type InstructionCache interface {
	// Fetch returns the word at addr and the access latency in cycles.
	Fetch(addr uint32) (word uint32, latency uint64)
}

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// PC is the address the instruction was fetched from.
	PC uint32

	// Inst is the decoded instruction.
	Inst insts.Result

	// Halted is true if the decoder raised the halt flag. The PC is left
	// on the halting instruction.
	Halted bool

	// HaltReason says why the decoder halted.
	HaltReason insts.HaltReason

	// Err is set if an error occurred during execution.
	Err error
}

// Statistics holds execution counters.
type Statistics struct {
	Instructions uint64
	Branches     uint64
	TakenBranch  uint64
	Jumps        uint64
	// FetchCycles accumulates instruction-cache latency.
	FetchCycles uint64
}

// Emulator executes RV32I instructions on a single-cycle datapath whose
// every mux and register port is driven by the decoder's control signals.
type Emulator struct {
	regFile *RegFile
	memory  *Memory
	decoder *insts.Decoder
	icache  InstructionCache
	log     logrus.FieldLogger

	// Execution units
	alu        *ALU
	branchUnit *BranchUnit

	stats           Statistics
	maxInstructions uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// WithLogger sets the logger used for the per-instruction trace.
func WithLogger(log logrus.FieldLogger) EmulatorOption {
	return func(e *Emulator) {
		e.log = log
	}
}

// WithICache routes instruction fetches through an instruction cache.
func WithICache(c InstructionCache) EmulatorOption {
	return func(e *Emulator) {
		e.icache = c
	}
}

// WithMemory makes the emulator execute out of an existing memory.
func WithMemory(m *Memory) EmulatorOption {
	return func(e *Emulator) {
		e.memory = m
	}
}

// WithStackPointer sets the initial value of sp (x2).
func WithStackPointer(sp uint32) EmulatorOption {
	return func(e *Emulator) {
		e.regFile.WriteReg(RegSP, sp)
	}
}

// NewEmulator creates a new RV32I emulator.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	regFile := &RegFile{}

	e := &Emulator{
		regFile: regFile,
		memory:  NewMemory(),
		decoder: insts.NewDecoder(),
		log:     logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.alu = NewALU()
	e.branchUnit = NewBranchUnit(regFile)

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// Stats returns the execution counters.
func (e *Emulator) Stats() Statistics {
	return e.stats
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.stats.Instructions
}

// LoadProgram copies program to entry and points the PC at it.
func (e *Emulator) LoadProgram(entry uint32, program []byte) {
	e.memory.LoadProgram(entry, program)
	e.regFile.PC = entry
}

// SetPC sets the program counter.
func (e *Emulator) SetPC(pc uint32) {
	e.regFile.PC = pc
}

// Reset clears the register file and counters. Memory is kept.
func (e *Emulator) Reset() {
	*e.regFile = RegFile{}
	e.stats = Statistics{}
}

// Step executes a single instruction.
func (e *Emulator) Step() StepResult {
	if e.maxInstructions > 0 && e.stats.Instructions >= e.maxInstructions {
		return StepResult{PC: e.regFile.PC, Err: ErrMaxInstructions}
	}

	pc := e.regFile.PC

	// 1. Fetch
	word := e.fetch(pc)

	// 2. Decode
	inst := e.decoder.Decode(word)

	e.log.WithFields(logrus.Fields{
		"pc":   fmt.Sprintf("0x%08X", pc),
		"word": fmt.Sprintf("0x%08X", word),
		"inst": inst.Mnemonic(),
	}).Debug("step")

	if inst.Halt {
		entry := e.log.WithFields(logrus.Fields{
			"pc":     fmt.Sprintf("0x%08X", pc),
			"reason": inst.HaltReason.String(),
		})
		if inst.HaltReason == insts.HaltSystem {
			entry.Info("halt")
		} else {
			entry.Warn("halt on illegal instruction")
		}

		return StepResult{
			PC:         pc,
			Inst:       inst,
			Halted:     true,
			HaltReason: inst.HaltReason,
		}
	}

	// 3. Execute and write back
	e.execute(inst.Signals)
	e.stats.Instructions++

	return StepResult{PC: pc, Inst: inst}
}

// Run executes instructions until the decoder halts or an error occurs.
// It returns the final step.
func (e *Emulator) Run() StepResult {
	for {
		result := e.Step()
		if result.Halted || result.Err != nil {
			return result
		}
	}
}

func (e *Emulator) fetch(pc uint32) uint32 {
	if e.icache == nil {
		return e.memory.Read32(pc)
	}

	word, latency := e.icache.Fetch(pc)
	e.stats.FetchCycles += latency
	return word
}

// execute drives the datapath with one control signal set.
func (e *Emulator) execute(s insts.Signals) {
	var lhs, rhs uint32

	if s.PCIsLHS() {
		lhs = e.regFile.PC
	} else {
		lhs = e.readPort(s.RegCtrl.OutA())
	}

	if s.RHSImm.Enabled {
		rhs = uint32(s.RHSImm.Value)
	} else {
		rhs = e.readPort(s.RegCtrl.OutB())
	}

	result, taken := e.alu.Execute(s.ALUCtrl, lhs, rhs)

	switch {
	case s.ALUCtrl.IsBranch():
		e.stats.Branches++
		if taken {
			e.stats.TakenBranch++
		}
	case s.PCRegMuxCtrl == 0:
		e.stats.Jumps++
	}

	e.branchUnit.Writeback(s, result, taken)
}

// readPort reads a register-file output port. A disabled port leaves the
// bus undriven, which reads as zero.
func (e *Emulator) readPort(p insts.RegPort) uint32 {
	if !p.Enable {
		return 0
	}
	return e.regFile.ReadReg(p.Index)
}
