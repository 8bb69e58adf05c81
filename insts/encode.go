package insts

// Instruction word builders, the inverse of the decoder's field and
// immediate extraction. Out-of-range fields are truncated to their width.

// EncodeR encodes an R-type instruction.
func EncodeR(op Opcode, rd uint8, funct3 Funct3, rs1, rs2 uint8, funct7 uint8) uint32 {
	return uint32(funct7&0x7F)<<25 |
		uint32(rs2&0x1F)<<20 |
		uint32(rs1&0x1F)<<15 |
		uint32(funct3&0x7)<<12 |
		uint32(rd&0x1F)<<7 |
		uint32(op&0x7F)
}

// EncodeI encodes an I-type instruction with a 12-bit immediate.
func EncodeI(op Opcode, rd uint8, funct3 Funct3, rs1 uint8, imm int32) uint32 {
	return uint32(imm&0xFFF)<<20 |
		uint32(rs1&0x1F)<<15 |
		uint32(funct3&0x7)<<12 |
		uint32(rd&0x1F)<<7 |
		uint32(op&0x7F)
}

// EncodeShiftI encodes SLLI/SRLI/SRAI. arith sets bit 30.
func EncodeShiftI(rd uint8, funct3 Funct3, rs1 uint8, shamt uint8, arith bool) uint32 {
	var funct7 uint8
	if arith {
		funct7 = 0b0100000
	}
	return EncodeR(OpcodeOPIMM, rd, funct3, rs1, shamt, funct7)
}

// EncodeS encodes an S-type instruction.
func EncodeS(op Opcode, funct3 Funct3, rs1, rs2 uint8, imm int32) uint32 {
	u := uint32(imm & 0xFFF)
	return (u>>5)<<25 |
		uint32(rs2&0x1F)<<20 |
		uint32(rs1&0x1F)<<15 |
		uint32(funct3&0x7)<<12 |
		(u&0x1F)<<7 |
		uint32(op&0x7F)
}

// EncodeB encodes a branch with a byte offset; bit 0 of offset is dropped.
func EncodeB(funct3 Funct3, rs1, rs2 uint8, offset int32) uint32 {
	u := uint32(offset)
	return ((u>>12)&0x1)<<31 |
		((u>>5)&0x3F)<<25 |
		uint32(rs2&0x1F)<<20 |
		uint32(rs1&0x1F)<<15 |
		uint32(funct3&0x7)<<12 |
		((u>>1)&0xF)<<8 |
		((u>>11)&0x1)<<7 |
		uint32(OpcodeBRANCH)
}

// EncodeU encodes LUI/AUIPC. imm20 is the value placed in bits [31:12].
func EncodeU(op Opcode, rd uint8, imm20 uint32) uint32 {
	return (imm20&0xFFFFF)<<12 |
		uint32(rd&0x1F)<<7 |
		uint32(op&0x7F)
}

// EncodeJ encodes JAL with a byte offset; bit 0 of offset is dropped.
func EncodeJ(rd uint8, offset int32) uint32 {
	u := uint32(offset)
	return ((u>>20)&0x1)<<31 |
		((u>>1)&0x3FF)<<21 |
		((u>>11)&0x1)<<20 |
		((u>>12)&0xFF)<<12 |
		uint32(rd&0x1F)<<7 |
		uint32(OpcodeJAL)
}
