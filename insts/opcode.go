package insts

// Opcode is the 7-bit RV32I major opcode in bits [6:0].
type Opcode uint8

// RV32I major opcodes.
const (
	OpcodeLOAD   Opcode = 0b0000011
	OpcodeOPIMM  Opcode = 0b0010011
	OpcodeAUIPC  Opcode = 0b0010111
	OpcodeSTORE  Opcode = 0b0100011
	OpcodeOP     Opcode = 0b0110011
	OpcodeLUI    Opcode = 0b0110111
	OpcodeBRANCH Opcode = 0b1100011
	OpcodeJALR   Opcode = 0b1100111
	OpcodeJAL    Opcode = 0b1101111
	OpcodeSYSTEM Opcode = 0b1110011
)

// String returns the opcode class name, or "<invalid>" for encodings the
// decoder does not know.
func (o Opcode) String() string {
	switch o {
	case OpcodeLOAD:
		return "LOAD"
	case OpcodeOPIMM:
		return "OPIMM"
	case OpcodeAUIPC:
		return "AUIPC"
	case OpcodeSTORE:
		return "STORE"
	case OpcodeOP:
		return "OP"
	case OpcodeLUI:
		return "LUI"
	case OpcodeBRANCH:
		return "BRANCH"
	case OpcodeJALR:
		return "JALR"
	case OpcodeJAL:
		return "JAL"
	case OpcodeSYSTEM:
		return "SYSTEM"
	default:
		return "<invalid>"
	}
}

// Funct3 is the 3-bit sub-operation selector in bits [14:12].
type Funct3 uint8

// OP and OP-IMM sub-operations. SRA/SRAI share the SRL encoding and are
// told apart by instruction bit 30.
const (
	Funct3ADD  Funct3 = 0b000
	Funct3SLL  Funct3 = 0b001
	Funct3SLT  Funct3 = 0b010
	Funct3SLTU Funct3 = 0b011
	Funct3XOR  Funct3 = 0b100
	Funct3SRL  Funct3 = 0b101
	Funct3OR   Funct3 = 0b110
	Funct3AND  Funct3 = 0b111
)

// BRANCH comparisons.
const (
	Funct3BEQ  Funct3 = 0b000
	Funct3BNE  Funct3 = 0b001
	Funct3BLT  Funct3 = 0b100
	Funct3BGE  Funct3 = 0b101
	Funct3BLTU Funct3 = 0b110
	Funct3BGEU Funct3 = 0b111
)

// LOAD and STORE widths.
const (
	Funct3LB  Funct3 = 0b000
	Funct3LH  Funct3 = 0b001
	Funct3LW  Funct3 = 0b010
	Funct3LBU Funct3 = 0b100
	Funct3LHU Funct3 = 0b101

	Funct3SB Funct3 = 0b000
	Funct3SH Funct3 = 0b001
	Funct3SW Funct3 = 0b010
)

// isShiftImm reports whether an OP-IMM funct3 uses the 5-bit shift-amount
// immediate (SLLI, SRLI, SRAI).
func isShiftImm(f Funct3) bool {
	return f == Funct3SLL || f == Funct3SRL
}

// Format is the RV32I encoding format of an instruction.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatR
	FormatI
	FormatS
	FormatB
	FormatU
	FormatJ
)

// String returns the conventional single-letter format name.
func (f Format) String() string {
	switch f {
	case FormatR:
		return "R"
	case FormatI:
		return "I"
	case FormatS:
		return "S"
	case FormatB:
		return "B"
	case FormatU:
		return "U"
	case FormatJ:
		return "J"
	default:
		return "?"
	}
}

// formatOf maps an opcode to its encoding format.
func formatOf(op Opcode) Format {
	switch op {
	case OpcodeOP:
		return FormatR
	case OpcodeOPIMM, OpcodeJALR, OpcodeLOAD, OpcodeSYSTEM:
		return FormatI
	case OpcodeSTORE:
		return FormatS
	case OpcodeBRANCH:
		return FormatB
	case OpcodeLUI, OpcodeAUIPC:
		return FormatU
	case OpcodeJAL:
		return FormatJ
	default:
		return FormatUnknown
	}
}
