package insts

// Fields holds the fixed-position fields of an RV32I instruction word.
// Every field is sliced unconditionally; formats that do not use a field
// still get a well-defined value for it.
type Fields struct {
	Opcode Opcode // bits [6:0]
	Rd     uint8  // bits [11:7]
	Funct3 Funct3 // bits [14:12]
	Rs1    uint8  // bits [19:15]
	Rs2    uint8  // bits [24:20]
}

// ExtractFields slices word into its opcode, funct3 and register fields.
func ExtractFields(word uint32) Fields {
	return Fields{
		Opcode: Opcode(word & 0x7F),
		Rd:     uint8((word >> 7) & 0x1F),
		Funct3: Funct3((word >> 12) & 0x7),
		Rs1:    uint8((word >> 15) & 0x1F),
		Rs2:    uint8((word >> 20) & 0x1F),
	}
}

// bit30 reports the arithmetic-shift / subtract selector bit.
func bit30(word uint32) bool {
	return (word>>30)&0x1 == 1
}

// immI returns the I-type immediate, bits [31:20].
func immI(word uint32) int32 {
	return SignExtend12(word >> 20)
}

// immU returns the U-type immediate, bits [31:12] placed in the high bits.
func immU(word uint32) int32 {
	return SignExtend20(word>>12) << 12
}

// immJ reassembles the JAL byte offset.
// imm[20|10:1|11|19:12] sits in bits [31|30:21|20|19:12].
func immJ(word uint32) int32 {
	raw := (((word >> 21) & 0x3FF) << 1) | // offset[10:1]
		(((word >> 20) & 0x1) << 11) | // offset[11]
		(((word >> 12) & 0xFF) << 12) | // offset[19:12]
		(((word >> 31) & 0x1) << 20) // offset[20]

	// The sign sits at offset[20] because the reassembly already shifted
	// the offset left by one.
	return SignExtend20(raw >> 1) << 1
}

// immB reassembles the branch byte offset.
// Bits [11:8|30:25|7|31] hold offset[4:1|10:5|11|12].
func immB(word uint32) int32 {
	raw := ((word >> 8) & 0xF) | // off[3:0]
		(((word >> 25) & 0x3F) << 4) | // off[9:4]
		(((word >> 7) & 0x1) << 10) | // off[10]
		(((word >> 31) & 0x1) << 11) // off[11]

	return SignExtend12(raw) << 1
}
