// Package emu provides a functional single-cycle RV32I datapath driven by
// decoded control signals.
package emu

// RegFile represents the RV32I register file.
// It contains 32 general-purpose registers (x0-x31) and the program
// counter (PC).
type RegFile struct {
	// X holds general-purpose registers x0-x31.
	// X[0] is hard-wired to zero.
	X [32]uint32

	// PC is the program counter.
	PC uint32
}

// Conventional ABI register numbers.
const (
	RegRA uint8 = 1 // return address
	RegSP uint8 = 2 // stack pointer
)

// ReadReg reads a register value. x0 and out-of-range indices read as 0.
func (r *RegFile) ReadReg(reg uint8) uint32 {
	if reg == 0 || reg >= 32 {
		return 0
	}
	return r.X[reg]
}

// WriteReg writes a value to a register. Writes to x0 are ignored.
func (r *RegFile) WriteReg(reg uint8, value uint32) {
	if reg == 0 || reg >= 32 {
		return
	}
	r.X[reg] = value
}
