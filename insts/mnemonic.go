package insts

var opMnemonics = [8]string{"add", "sll", "slt", "sltu", "xor", "srl", "or", "and"}

var branchMnemonics = map[Funct3]string{
	Funct3BEQ:  "beq",
	Funct3BNE:  "bne",
	Funct3BLT:  "blt",
	Funct3BGE:  "bge",
	Funct3BLTU: "bltu",
	Funct3BGEU: "bgeu",
}

var loadMnemonics = map[Funct3]string{
	Funct3LB:  "lb",
	Funct3LH:  "lh",
	Funct3LW:  "lw",
	Funct3LBU: "lbu",
	Funct3LHU: "lhu",
}

var storeMnemonics = map[Funct3]string{
	Funct3SB: "sb",
	Funct3SH: "sh",
	Funct3SW: "sw",
}

// Mnemonic names the decoded instruction, e.g. "addi", "srai" or "bltu".
// Encodings the decoder does not recognize name as "unknown".
func (r Result) Mnemonic() string {
	f := r.Fields
	if r.Word == 0 {
		return "unknown"
	}

	switch f.Opcode {
	case OpcodeOP:
		name := opMnemonics[f.Funct3]
		if bit30(r.Word) {
			switch f.Funct3 {
			case Funct3ADD:
				name = "sub"
			case Funct3SRL:
				name = "sra"
			}
		}
		return name
	case OpcodeOPIMM:
		if f.Funct3 == Funct3SRL && bit30(r.Word) {
			return "srai"
		}
		if f.Funct3 == Funct3SLTU {
			return "sltiu"
		}
		if f.Funct3 == Funct3SLT {
			return "slti"
		}
		return opMnemonics[f.Funct3] + "i"
	case OpcodeLUI:
		return "lui"
	case OpcodeAUIPC:
		return "auipc"
	case OpcodeJAL:
		return "jal"
	case OpcodeJALR:
		return "jalr"
	case OpcodeBRANCH:
		return lookup(branchMnemonics, f.Funct3)
	case OpcodeLOAD:
		return lookup(loadMnemonics, f.Funct3)
	case OpcodeSTORE:
		return lookup(storeMnemonics, f.Funct3)
	case OpcodeSYSTEM:
		if f.Funct3 != 0 {
			return "csr"
		}
		switch r.Word >> 20 {
		case 0x000:
			return "ecall"
		case 0x001:
			return "ebreak"
		}
		return "system"
	default:
		return "unknown"
	}
}

func lookup(m map[Funct3]string, f Funct3) string {
	if name, ok := m[f]; ok {
		return name
	}
	return "unknown"
}
