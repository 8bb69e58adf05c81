package emu

import "github.com/sarchlab/rv32sim/insts"

// Compare evaluates the branch comparison selected by funct3.
// The reserved encodings (funct3 010 and 011) never take the branch.
func Compare(funct3 insts.Funct3, lhs, rhs uint32) bool {
	switch funct3 {
	case insts.Funct3BEQ:
		return lhs == rhs
	case insts.Funct3BNE:
		return lhs != rhs
	case insts.Funct3BLT:
		return int32(lhs) < int32(rhs)
	case insts.Funct3BGE:
		return int32(lhs) >= int32(rhs)
	case insts.Funct3BLTU:
		return lhs < rhs
	case insts.Funct3BGEU:
		return lhs >= rhs
	default:
		return false
	}
}

// BranchUnit performs the PC and link-register updates selected by the
// PC/register write mux.
type BranchUnit struct {
	regFile *RegFile
}

// NewBranchUnit creates a new BranchUnit connected to the given register file.
func NewBranchUnit(regFile *RegFile) *BranchUnit {
	return &BranchUnit{regFile: regFile}
}

// Writeback commits one instruction's results.
//
// With pcRegMuxCtrl=1 the ALU result goes to the destination register and
// the PC advances by 4, or by pcAddImm when a branch is taken. With
// pcRegMuxCtrl=0 the targets swap: the ALU result (with bit 0 cleared)
// becomes the PC and PC + 4 goes to the destination register.
func (b *BranchUnit) Writeback(s insts.Signals, aluOut uint32, taken bool) {
	pc := b.regFile.PC
	link := pc + 4
	dst := s.RegCtrl.InA()

	if s.PCRegMuxCtrl == 0 {
		b.regFile.PC = aluOut &^ 1
		b.writePort(dst, link)
		return
	}

	b.writePort(dst, aluOut)

	if s.ALUCtrl.IsBranch() && (taken || s.PCBranchCtrl == 1) {
		b.regFile.PC = pc + uint32(s.PCAddImm)
		return
	}
	b.regFile.PC = link
}

func (b *BranchUnit) writePort(p insts.RegPort, v uint32) {
	if p.Enable {
		b.regFile.WriteReg(p.Index, v)
	}
}
