package insts

// SignExtend8 interprets the low 8 bits of x as a two's-complement value.
func SignExtend8(x uint32) int32 {
	x &= 0xFF
	if x&0x80 != 0 {
		return int32(x) - 0x100
	}
	return int32(x)
}

// SignExtend12 interprets the low 12 bits of x as a two's-complement value.
func SignExtend12(x uint32) int32 {
	x &= 0xFFF
	if x&0x800 != 0 {
		return int32(x) - 0x1000
	}
	return int32(x)
}

// SignExtend16 interprets the low 16 bits of x as a two's-complement value.
func SignExtend16(x uint32) int32 {
	x &= 0xFFFF
	if x&0x8000 != 0 {
		return int32(x) - 0x10000
	}
	return int32(x)
}

// SignExtend20 interprets the low 20 bits of x as a two's-complement value.
func SignExtend20(x uint32) int32 {
	x &= 0xFFFFF
	if x&0x80000 != 0 {
		return int32(x) - 0x100000
	}
	return int32(x)
}

// SignExtend32 reinterprets x as a signed 32-bit value.
func SignExtend32(x uint32) int32 {
	return int32(x)
}
