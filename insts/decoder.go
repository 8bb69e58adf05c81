package insts

// HaltReason says why a decode raised the halt flag.
type HaltReason uint8

// Halt reasons.
const (
	HaltNone HaltReason = iota
	HaltZeroWord
	HaltSystem
	HaltUnknownOpcode
)

// String returns a short description of the halt reason.
func (h HaltReason) String() string {
	switch h {
	case HaltNone:
		return "none"
	case HaltZeroWord:
		return "illegal instruction 0x0"
	case HaltSystem:
		return "system instruction"
	case HaltUnknownOpcode:
		return "unknown opcode"
	default:
		return "invalid"
	}
}

// Result is the outcome of decoding one instruction word.
type Result struct {
	Word    uint32
	Fields  Fields
	Format  Format
	Signals Signals

	// Halt tells the control unit to stop issuing instructions after this
	// cycle.
	Halt       bool
	HaltReason HaltReason
}

// Decoder decodes RV32I instruction words into control signals.
// A Decoder holds no state; one value may be shared between goroutines.
type Decoder struct{}

// NewDecoder creates a new RV32I instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes word with a zero-value Decoder.
func Decode(word uint32) Result {
	var d Decoder
	return d.Decode(word)
}

// Decode decodes a 32-bit instruction word. It never fails: illegal words
// produce the default signal set with Halt raised.
func (d *Decoder) Decode(word uint32) Result {
	f := ExtractFields(word)
	res := Result{
		Word:    word,
		Fields:  f,
		Format:  formatOf(f.Opcode),
		Signals: DefaultSignals(),
	}

	if word == 0 {
		res.halt(HaltZeroWord)
		return res
	}

	s := &res.Signals

	switch f.Opcode {
	case OpcodeOPIMM, OpcodeOP:
		d.decodeArith(word, f, s)
	case OpcodeLUI:
		s.setImm(immU(word))
		s.setReg(SlotOutA, true, 0) // 0 => LHS
		s.setALU(true, false, Funct3ADD, false)
		s.setReg(SlotInA, true, f.Rd)
	case OpcodeAUIPC:
		s.setImm(immU(word))
		s.LHSMuxCtrl = 0 // PC => LHS
		s.setALU(true, false, Funct3ADD, false)
		s.setReg(SlotInA, true, f.Rd)
	case OpcodeJAL:
		s.LHSMuxCtrl = 0 // PC => LHS
		s.setImm(immJ(word))
		s.PCRegMuxCtrl = 0 // ALU out => PC; PC + 4 => reg
		s.setReg(SlotInA, true, f.Rd)
	case OpcodeJALR:
		s.setReg(SlotOutA, true, f.Rs1)
		s.setImm(immI(word))
		s.PCRegMuxCtrl = 0 // ALU out => PC; PC + 4 => reg
		s.setReg(SlotInA, true, f.Rd)
	case OpcodeBRANCH:
		s.setReg(SlotOutA, true, f.Rs1)
		s.setReg(SlotOutB, true, f.Rs2)
		s.setALU(true, true, f.Funct3, false)
		s.PCAddImm = immB(word)
		s.LHSMuxCtrl = 1
		s.PCBranchCtrl = 0
	case OpcodeLOAD, OpcodeSTORE:
		// Memory access is not wired up; only the ALU shell is driven.
		s.setReg(SlotOutA, false, 0)
		s.setReg(SlotOutB, false, 0)
		s.setReg(SlotInA, false, 0)
		s.setALU(true, false, Funct3ADD, false)
	case OpcodeSYSTEM:
		res.halt(HaltSystem)
	default:
		res.halt(HaltUnknownOpcode)
	}

	// A register-sourced LHS always has outA enabled.
	if s.LHSMuxCtrl != 0 {
		s.RegCtrl |= 1
	}

	return res
}

// decodeArith handles OP and OP-IMM.
func (d *Decoder) decodeArith(word uint32, f Fields, s *Signals) {
	isSpecial := false

	switch {
	case f.Opcode == OpcodeOP:
		s.setReg(SlotOutB, true, f.Rs2) // reg[rs2] => RHS
		isSpecial = bit30(word)
	case isShiftImm(f.Funct3):
		// The shift amount is the raw rs2 field, never sign-extended.
		s.setImm(int32(f.Rs2))
		isSpecial = f.Funct3 == Funct3SRL && bit30(word)
	default:
		s.setImm(immI(word))
	}

	s.setReg(SlotOutA, true, f.Rs1) // reg[rs1] => LHS
	s.setALU(true, false, f.Funct3, isSpecial)
	s.setReg(SlotInA, true, f.Rd) // ALU out => reg[rd]
}

func (r *Result) halt(reason HaltReason) {
	r.Halt = true
	r.HaltReason = reason
}
