package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv32sim/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	port := func(enable bool, index uint8) insts.RegPort {
		return insts.RegPort{Enable: enable, Index: index}
	}

	Describe("Illegal and halting words", func() {
		It("should halt on the zero word with default signals", func() {
			res := decoder.Decode(0)

			Expect(res.Halt).To(BeTrue())
			Expect(res.HaltReason).To(Equal(insts.HaltZeroWord))
			Expect(res.Signals).To(Equal(insts.DefaultSignals()))
			Expect(res.Signals.RegCtrl).To(Equal(insts.RegCtrl(0)))
		})

		It("should halt on SYSTEM regardless of the other bits", func() {
			for _, word := range []uint32{
				0x00000073, // ecall
				0x00100073, // ebreak
				0x30200073, // mret
				0x34011173, // csrrw
				0xFFFFFFF3,
			} {
				res := decoder.Decode(word)
				Expect(res.Halt).To(BeTrue(), "word 0x%08X", word)
				Expect(res.HaltReason).To(Equal(insts.HaltSystem))
			}
		})

		It("should halt on unknown opcodes with bus-safe defaults", func() {
			res := decoder.Decode(0x0000007F)

			Expect(res.Halt).To(BeTrue())
			Expect(res.HaltReason).To(Equal(insts.HaltUnknownOpcode))
			Expect(res.Format).To(Equal(insts.FormatUnknown))
			Expect(res.Signals.RHSImm.Enabled).To(BeFalse())
			Expect(res.Signals.PCRegMuxCtrl).To(Equal(uint8(1)))
			Expect(res.Signals.LHSMuxCtrl).To(Equal(uint8(1)))
			Expect(res.Signals.PCAddImm).To(Equal(int32(0)))
			Expect(res.Signals.ALUCtrl).To(Equal(insts.ALUCtrl(0)))
			// LHS bus fixup: outA enabled on register 0
			Expect(res.Signals.RegCtrl.OutA()).To(Equal(port(true, 0)))
			Expect(res.Signals.RegCtrl.OutB()).To(Equal(port(false, 0)))
			Expect(res.Signals.RegCtrl.InA()).To(Equal(port(false, 0)))
		})

		It("should not halt on a known opcode", func() {
			res := decoder.Decode(0x00508113)
			Expect(res.Halt).To(BeFalse())
			Expect(res.HaltReason).To(Equal(insts.HaltNone))
		})
	})

	Describe("OP-IMM", func() {
		// addi x2, x1, 5 -> 0x00508113
		It("should decode ADDI x2, x1, 5", func() {
			res := decoder.Decode(0x00508113)
			s := res.Signals

			Expect(res.Format).To(Equal(insts.FormatI))
			Expect(res.Mnemonic()).To(Equal("addi"))
			Expect(s.RegCtrl.OutA()).To(Equal(port(true, 1)))
			Expect(s.RegCtrl.OutB()).To(Equal(port(false, 0)))
			Expect(s.RegCtrl.InA()).To(Equal(port(true, 2)))
			Expect(s.RHSImm).To(Equal(insts.Tristate{Value: 5, Enabled: true}))
			Expect(s.ALUCtrl.Enable()).To(BeTrue())
			Expect(s.ALUCtrl.IsBranch()).To(BeFalse())
			Expect(s.ALUCtrl.Funct3()).To(Equal(insts.Funct3ADD))
			Expect(s.ALUCtrl.IsSpecial()).To(BeFalse())
			Expect(s.LHSMuxCtrl).To(Equal(uint8(1)))
			Expect(s.PCRegMuxCtrl).To(Equal(uint8(1)))
			Expect(s.RegCtrl).To(Equal(insts.RegCtrl(0x5003)))
		})

		It("should sign-extend a negative immediate", func() {
			// addi x3, x0, -1 -> 0xFFF00193
			res := decoder.Decode(0xFFF00193)
			Expect(res.Signals.RHSImm.Value).To(Equal(int32(-1)))
			Expect(res.Signals.RegCtrl.OutA()).To(Equal(port(true, 0)))
			Expect(res.Signals.RegCtrl.InA()).To(Equal(port(true, 3)))
		})

		It("should not treat bit 30 of an ADDI immediate as SUB", func() {
			// addi x1, x1, 0x400 sets bit 30
			res := decoder.Decode(insts.EncodeI(insts.OpcodeOPIMM, 1, insts.Funct3ADD, 1, 0x400))
			Expect(res.Signals.RHSImm.Value).To(Equal(int32(0x400)))
			Expect(res.Signals.ALUCtrl.IsSpecial()).To(BeFalse())
		})

		It("should decode SLLI with the raw shift amount", func() {
			res := decoder.Decode(insts.EncodeShiftI(5, insts.Funct3SLL, 4, 3, false))
			s := res.Signals

			Expect(res.Mnemonic()).To(Equal("slli"))
			Expect(s.RHSImm).To(Equal(insts.Tristate{Value: 3, Enabled: true}))
			Expect(s.ALUCtrl.Funct3()).To(Equal(insts.Funct3SLL))
			Expect(s.RegCtrl.OutA()).To(Equal(port(true, 4)))
			Expect(s.RegCtrl.InA()).To(Equal(port(true, 5)))
		})

		It("should not sign-extend a shift amount of 31", func() {
			res := decoder.Decode(insts.EncodeShiftI(1, insts.Funct3SRL, 1, 31, false))
			Expect(res.Signals.RHSImm.Value).To(Equal(int32(31)))
			Expect(res.Signals.ALUCtrl.IsSpecial()).To(BeFalse())
			Expect(res.Mnemonic()).To(Equal("srli"))
		})

		It("should flag SRAI as the arithmetic variant", func() {
			res := decoder.Decode(insts.EncodeShiftI(6, insts.Funct3SRL, 7, 4, true))
			Expect(res.Signals.RHSImm.Value).To(Equal(int32(4)))
			Expect(res.Signals.ALUCtrl.Funct3()).To(Equal(insts.Funct3SRL))
			Expect(res.Signals.ALUCtrl.IsSpecial()).To(BeTrue())
			Expect(res.Mnemonic()).To(Equal("srai"))
		})
	})

	Describe("OP", func() {
		It("should decode ADD x3, x1, x2", func() {
			res := decoder.Decode(insts.EncodeR(insts.OpcodeOP, 3, insts.Funct3ADD, 1, 2, 0))
			s := res.Signals

			Expect(res.Format).To(Equal(insts.FormatR))
			Expect(s.RHSImm.Enabled).To(BeFalse())
			Expect(s.RegCtrl.OutA()).To(Equal(port(true, 1)))
			Expect(s.RegCtrl.OutB()).To(Equal(port(true, 2)))
			Expect(s.RegCtrl.InA()).To(Equal(port(true, 3)))
			Expect(s.ALUCtrl.IsSpecial()).To(BeFalse())
		})

		It("should flag SUB via bit 30", func() {
			// sub x3, x1, x2 -> 0x402081B3
			res := decoder.Decode(0x402081B3)
			Expect(res.Signals.ALUCtrl.Funct3()).To(Equal(insts.Funct3ADD))
			Expect(res.Signals.ALUCtrl.IsSpecial()).To(BeTrue())
			Expect(res.Mnemonic()).To(Equal("sub"))
		})

		It("should flag SRA via bit 30", func() {
			res := decoder.Decode(insts.EncodeR(insts.OpcodeOP, 3, insts.Funct3SRL, 1, 2, 0b0100000))
			Expect(res.Signals.ALUCtrl.Funct3()).To(Equal(insts.Funct3SRL))
			Expect(res.Signals.ALUCtrl.IsSpecial()).To(BeTrue())
			Expect(res.Mnemonic()).To(Equal("sra"))
		})
	})

	Describe("LUI and AUIPC", func() {
		It("should decode LUI x5, 0x12345", func() {
			res := decoder.Decode(insts.EncodeU(insts.OpcodeLUI, 5, 0x12345))
			s := res.Signals

			Expect(res.Format).To(Equal(insts.FormatU))
			Expect(s.RHSImm).To(Equal(insts.Tristate{Value: 0x12345000, Enabled: true}))
			Expect(s.RegCtrl.OutA()).To(Equal(port(true, 0)))
			Expect(s.RegCtrl.InA()).To(Equal(port(true, 5)))
			Expect(s.ALUCtrl).To(Equal(insts.NewALUCtrl(true, false, insts.Funct3ADD, false)))
			Expect(s.LHSMuxCtrl).To(Equal(uint8(1)))
		})

		It("should sign-extend the upper immediate", func() {
			res := decoder.Decode(insts.EncodeU(insts.OpcodeLUI, 1, 0x80000))
			Expect(res.Signals.RHSImm.Value).To(Equal(int32(-0x80000000)))

			res = decoder.Decode(insts.EncodeU(insts.OpcodeLUI, 1, 0xFFFFF))
			Expect(res.Signals.RHSImm.Value).To(Equal(int32(-0x1000)))
		})

		It("should select the PC as LHS for AUIPC", func() {
			res := decoder.Decode(insts.EncodeU(insts.OpcodeAUIPC, 7, 0x1))
			s := res.Signals

			Expect(s.RHSImm.Value).To(Equal(int32(0x1000)))
			Expect(s.LHSMuxCtrl).To(Equal(uint8(0)))
			Expect(s.PCIsLHS()).To(BeTrue())
			Expect(s.RegCtrl.OutA()).To(Equal(port(false, 0)))
			Expect(s.RegCtrl.InA()).To(Equal(port(true, 7)))
			Expect(s.ALUCtrl.Funct3()).To(Equal(insts.Funct3ADD))
		})
	})

	Describe("JAL and JALR", func() {
		// jal ra, 8 -> 0x008000EF
		It("should decode JAL x1, +8", func() {
			res := decoder.Decode(0x008000EF)
			s := res.Signals

			Expect(res.Format).To(Equal(insts.FormatJ))
			Expect(s.PCRegMuxCtrl).To(Equal(uint8(0)))
			Expect(s.LHSMuxCtrl).To(Equal(uint8(0)))
			Expect(s.RHSImm.Value).To(Equal(int32(8)))
			Expect(s.RegCtrl.InA()).To(Equal(port(true, 1)))
			Expect(s.RegCtrl.OutA()).To(Equal(port(false, 0)))
		})

		DescribeTable("JAL offset reassembly",
			func(offset int32) {
				res := decoder.Decode(insts.EncodeJ(1, offset))
				Expect(res.Signals.RHSImm.Value).To(Equal(offset))
			},
			Entry("small forward", int32(8)),
			Entry("small backward", int32(-8)),
			Entry("bit 11", int32(0x800)),
			Entry("bits 19:12", int32(0xFF000)),
			Entry("max forward", int32(0xFFFFE)),
			Entry("max backward", int32(-0x100000)),
			Entry("minus two", int32(-2)),
		)

		It("should decode JALR x1, 12(x6)", func() {
			res := decoder.Decode(insts.EncodeI(insts.OpcodeJALR, 1, 0, 6, 12))
			s := res.Signals

			Expect(res.Mnemonic()).To(Equal("jalr"))
			Expect(s.PCRegMuxCtrl).To(Equal(uint8(0)))
			Expect(s.LHSMuxCtrl).To(Equal(uint8(1)))
			Expect(s.RHSImm).To(Equal(insts.Tristate{Value: 12, Enabled: true}))
			Expect(s.RegCtrl.OutA()).To(Equal(port(true, 6)))
			Expect(s.RegCtrl.InA()).To(Equal(port(true, 1)))
		})

		It("should sign-extend a negative JALR offset", func() {
			res := decoder.Decode(insts.EncodeI(insts.OpcodeJALR, 0, 0, 1, -4))
			Expect(res.Signals.RHSImm.Value).To(Equal(int32(-4)))
		})
	})

	Describe("BRANCH", func() {
		// beq x3, x4, -4 -> 0xFE418EE3
		It("should decode BEQ x3, x4, -4", func() {
			res := decoder.Decode(0xFE418EE3)
			s := res.Signals

			Expect(res.Format).To(Equal(insts.FormatB))
			Expect(res.Mnemonic()).To(Equal("beq"))
			Expect(s.ALUCtrl.Enable()).To(BeTrue())
			Expect(s.ALUCtrl.IsBranch()).To(BeTrue())
			Expect(s.ALUCtrl.Funct3()).To(Equal(insts.Funct3BEQ))
			Expect(s.PCAddImm).To(Equal(int32(-4)))
			Expect(s.RegCtrl.OutA()).To(Equal(port(true, 3)))
			Expect(s.RegCtrl.OutB()).To(Equal(port(true, 4)))
			Expect(s.RegCtrl.InA().Enable).To(BeFalse())
			Expect(s.RHSImm.Enabled).To(BeFalse())
			Expect(s.PCBranchCtrl).To(Equal(uint8(0)))
		})

		DescribeTable("branch offset reassembly",
			func(offset int32) {
				res := decoder.Decode(insts.EncodeB(insts.Funct3BNE, 1, 2, offset))
				Expect(res.Signals.PCAddImm).To(Equal(offset))
			},
			Entry("forward", int32(16)),
			Entry("backward", int32(-16)),
			Entry("bit 11", int32(0x800)),
			Entry("bits 10:5", int32(0x7E0)),
			Entry("max forward", int32(0xFFE)),
			Entry("max backward", int32(-0x1000)),
		)

		DescribeTable("comparison selection",
			func(f insts.Funct3, name string) {
				res := decoder.Decode(insts.EncodeB(f, 1, 2, 8))
				Expect(res.Signals.ALUCtrl.Funct3()).To(Equal(f))
				Expect(res.Mnemonic()).To(Equal(name))
			},
			Entry("BEQ", insts.Funct3BEQ, "beq"),
			Entry("BNE", insts.Funct3BNE, "bne"),
			Entry("BLT", insts.Funct3BLT, "blt"),
			Entry("BGE", insts.Funct3BGE, "bge"),
			Entry("BLTU", insts.Funct3BLTU, "bltu"),
			Entry("BGEU", insts.Funct3BGEU, "bgeu"),
		)
	})

	Describe("LOAD and STORE stubs", func() {
		It("should drive only the ALU shell for LW", func() {
			res := decoder.Decode(insts.EncodeI(insts.OpcodeLOAD, 5, insts.Funct3LW, 2, 16))
			s := res.Signals

			Expect(res.Halt).To(BeFalse())
			Expect(res.Mnemonic()).To(Equal("lw"))
			Expect(s.RegCtrl.OutA()).To(Equal(port(true, 0)))
			Expect(s.RegCtrl.OutB()).To(Equal(port(false, 0)))
			Expect(s.RegCtrl.InA()).To(Equal(port(false, 0)))
			Expect(s.ALUCtrl).To(Equal(insts.ALUCtrl(0x20)))
			Expect(s.LoadStoreCtrl).To(Equal(uint8(0)))
			Expect(s.AddrOffset).To(Equal(int32(0)))
			Expect(s.RHSImm.Enabled).To(BeFalse())
		})

		It("should drive only the ALU shell for SW", func() {
			res := decoder.Decode(insts.EncodeS(insts.OpcodeSTORE, insts.Funct3SW, 2, 5, -8))
			Expect(res.Format).To(Equal(insts.FormatS))
			Expect(res.Mnemonic()).To(Equal("sw"))
			Expect(res.Signals.RegCtrl).To(Equal(insts.RegCtrl(1)))
			Expect(res.Signals.AddrOffset).To(Equal(int32(0)))
		})
	})

	Describe("Purity", func() {
		It("should produce identical output for repeated decodes", func() {
			words := []uint32{0, 0x00508113, 0x008000EF, 0xFE418EE3, 0x00000073, 0xDEADBEEF}
			for _, w := range words {
				Expect(decoder.Decode(w)).To(Equal(decoder.Decode(w)))
				Expect(insts.Decode(w)).To(Equal(decoder.Decode(w)))
			}
		})

		It("should not carry state between decodes", func() {
			first := decoder.Decode(0x0000007F)
			decoder.Decode(0x008000EF)
			Expect(decoder.Decode(0x0000007F)).To(Equal(first))
		})

		It("should always produce well-formed register ports", func() {
			word := uint32(0x9E3779B9)
			for i := 0; i < 4096; i++ {
				word = word*1664525 + 1013904223
				rc := decoder.Decode(word).Signals.RegCtrl

				Expect(uint32(rc) >> insts.RegCtrlWidth).To(BeZero())
				for _, slot := range []insts.RegSlot{insts.SlotOutA, insts.SlotOutB, insts.SlotInA} {
					p := rc.Slot(slot)
					Expect(p.Index).To(BeNumerically("<", 32))
					Expect(rc.WithSlot(slot, p)).To(Equal(rc))
				}
			}
		})
	})
})
