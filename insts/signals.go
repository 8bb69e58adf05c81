package insts

// Signal widths in bits.
const (
	LoadStoreCtrlWidth = 4
	RegCtrlWidth       = 3 * regSlotWidth
	ALUCtrlWidth       = 6
)

const (
	regSlotWidth = 6
	regSlotMask  = 0b111111
)

// RegSlot selects one of the three register-control slots.
type RegSlot uint8

// Register-control slots, in packing order.
const (
	SlotOutA RegSlot = iota // source register for the ALU LHS
	SlotOutB                // source register for the ALU RHS
	SlotInA                 // destination register
)

// RegPort is one unpacked register-control slot.
type RegPort struct {
	Enable bool
	Index  uint8
}

// bits packs the port as enable | index<<1.
func (p RegPort) bits() uint32 {
	v := uint32(p.Index&0x1F) << 1
	if p.Enable {
		v |= 1
	}
	return v
}

// RegCtrl is the 18-bit register-control word: three 6-bit slots
// [OutA | OutB | InA], low slot first, each enable:1 | index:5.
type RegCtrl uint32

// Slot unpacks one slot.
func (r RegCtrl) Slot(s RegSlot) RegPort {
	v := (uint32(r) >> (uint(s) * regSlotWidth)) & regSlotMask
	return RegPort{Enable: v&1 == 1, Index: uint8(v >> 1)}
}

// WithSlot returns r with slot s replaced by p. The other slots are kept.
func (r RegCtrl) WithSlot(s RegSlot, p RegPort) RegCtrl {
	shift := uint(s) * regSlotWidth
	v := uint32(r) &^ (regSlotMask << shift)
	return RegCtrl(v | p.bits()<<shift)
}

// OutA returns the ALU LHS source slot.
func (r RegCtrl) OutA() RegPort { return r.Slot(SlotOutA) }

// OutB returns the ALU RHS source slot.
func (r RegCtrl) OutB() RegPort { return r.Slot(SlotOutB) }

// InA returns the destination slot.
func (r RegCtrl) InA() RegPort { return r.Slot(SlotInA) }

// ALUCtrl is the ALU control word:
// enable<<5 | isBranch<<4 | funct3<<1 | isSpecial.
type ALUCtrl uint8

// NewALUCtrl packs an ALU control word.
func NewALUCtrl(enable, isBranch bool, funct3 Funct3, isSpecial bool) ALUCtrl {
	v := ALUCtrl(funct3&0x7) << 1
	if enable {
		v |= 1 << 5
	}
	if isBranch {
		v |= 1 << 4
	}
	if isSpecial {
		v |= 1
	}
	return v
}

// Enable reports whether the ALU is driven by this instruction.
func (a ALUCtrl) Enable() bool { return a>>5&1 == 1 }

// IsBranch reports whether the ALU evaluates a branch comparison.
func (a ALUCtrl) IsBranch() bool { return a>>4&1 == 1 }

// Funct3 returns the operation or comparison selector.
func (a ALUCtrl) Funct3() Funct3 { return Funct3(a>>1) & 0x7 }

// IsSpecial reports the SUB / SRA variant.
func (a ALUCtrl) IsSpecial() bool { return a&1 == 1 }

// Tristate is a bus value that only drives when Enabled.
type Tristate struct {
	Value   int32
	Enabled bool
}

// Signals is the full control signal set produced for one instruction.
type Signals struct {
	// LoadStoreCtrl selects the load/store unit operation. Unpopulated.
	LoadStoreCtrl uint8
	// AddrOffset is added to the load/store address. Always zero.
	AddrOffset int32
	// RHSImm drives the ALU RHS with the immediate when enabled.
	RHSImm Tristate

	RegCtrl RegCtrl
	ALUCtrl ALUCtrl

	// PCRegMuxCtrl 1: ALU out => reg, PC + 4 => PC.
	// PCRegMuxCtrl 0: ALU out => PC, PC + 4 => reg.
	PCRegMuxCtrl uint8
	// PCAddImm replaces the +4 PC increment for taken branches.
	PCAddImm int32
	// LHSMuxCtrl is inverted: 0 selects the PC as ALU LHS.
	LHSMuxCtrl uint8
	// PCBranchCtrl selects the branch-taken PC path.
	PCBranchCtrl uint8
}

// DefaultSignals returns the bus-safe reset state every decode starts from.
func DefaultSignals() Signals {
	return Signals{
		PCRegMuxCtrl: 1,
		LHSMuxCtrl:   1,
	}
}

// PCIsLHS reports whether the PC drives the ALU LHS.
func (s Signals) PCIsLHS() bool {
	return s.LHSMuxCtrl == 0
}

// setReg replaces one register-control slot.
func (s *Signals) setReg(slot RegSlot, enable bool, index uint8) {
	s.RegCtrl = s.RegCtrl.WithSlot(slot, RegPort{Enable: enable, Index: index})
}

// setALU overwrites the ALU control word.
func (s *Signals) setALU(enable, isBranch bool, funct3 Funct3, isSpecial bool) {
	s.ALUCtrl = NewALUCtrl(enable, isBranch, funct3, isSpecial)
}

// setImm drives the RHS immediate.
func (s *Signals) setImm(v int32) {
	s.RHSImm = Tristate{Value: v, Enabled: true}
}
