// Package insts provides RV32I instruction decoding for a single-cycle
// datapath.
//
// Decoding turns one 32-bit instruction word into the control signal set
// that steers the register file, the ALU, the PC unit and the load/store
// unit. It supports:
//   - OP and OP-IMM (including the shift-immediate encodings)
//   - LUI and AUIPC
//   - JAL and JALR
//   - BRANCH (BEQ, BNE, BLT, BGE, BLTU, BGEU)
//   - LOAD and STORE as a control-signal stub
//
// SYSTEM, the zero word and unknown opcodes raise the halt flag.
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	res := decoder.Decode(0x00508113) // addi x2, x1, 5
//	fmt.Printf("%s halt=%v rhs=%d\n", res.Mnemonic(), res.Halt, res.Signals.RHSImm.Value)
package insts
