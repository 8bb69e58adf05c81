package emu

import "github.com/sarchlab/rv32sim/insts"

// ALU implements the RV32I integer operations selected by an ALU control
// word.
type ALU struct{}

// NewALU creates a new ALU.
func NewALU() *ALU {
	return &ALU{}
}

// Execute evaluates ctrl on lhs and rhs.
//
// With isBranch set, the result is zero and taken reports the comparison
// selected by funct3. Otherwise funct3 selects the OP operation and
// isSpecial picks SUB over ADD and SRA over SRL. A disabled ALU adds; the
// jump instructions use it as the target adder.
func (a *ALU) Execute(ctrl insts.ALUCtrl, lhs, rhs uint32) (result uint32, taken bool) {
	if !ctrl.Enable() {
		return lhs + rhs, false
	}

	if ctrl.IsBranch() {
		return 0, Compare(ctrl.Funct3(), lhs, rhs)
	}

	shamt := rhs & 0x1F

	switch ctrl.Funct3() {
	case insts.Funct3ADD:
		if ctrl.IsSpecial() {
			return lhs - rhs, false
		}
		return lhs + rhs, false
	case insts.Funct3SLL:
		return lhs << shamt, false
	case insts.Funct3SLT:
		return boolToWord(int32(lhs) < int32(rhs)), false
	case insts.Funct3SLTU:
		return boolToWord(lhs < rhs), false
	case insts.Funct3XOR:
		return lhs ^ rhs, false
	case insts.Funct3SRL:
		if ctrl.IsSpecial() {
			return uint32(int32(lhs) >> shamt), false
		}
		return lhs >> shamt, false
	case insts.Funct3OR:
		return lhs | rhs, false
	default: // AND
		return lhs & rhs, false
	}
}

func boolToWord(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
