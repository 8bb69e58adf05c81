package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv32sim/insts"
)

var _ = Describe("Sign extension", func() {
	It("should keep every 12-bit value in range", func() {
		for x := uint32(0); x < 1<<12; x++ {
			v := insts.SignExtend12(x)
			Expect(v).To(BeNumerically(">=", -2048))
			Expect(v).To(BeNumerically("<=", 2047))
			if x < 1<<11 {
				Expect(v).To(Equal(int32(x)))
			} else {
				Expect(v).To(Equal(int32(x) - 4096))
			}
		}
	})

	DescribeTable("boundary values",
		func(fn func(uint32) int32, x uint32, want int32) {
			Expect(fn(x)).To(Equal(want))
		},
		Entry("8-bit max positive", insts.SignExtend8, uint32(0x7F), int32(127)),
		Entry("8-bit min negative", insts.SignExtend8, uint32(0x80), int32(-128)),
		Entry("8-bit minus one", insts.SignExtend8, uint32(0xFF), int32(-1)),
		Entry("12-bit min negative", insts.SignExtend12, uint32(0x800), int32(-2048)),
		Entry("12-bit ignores high bits", insts.SignExtend12, uint32(0xFFFFF001), int32(1)),
		Entry("16-bit max positive", insts.SignExtend16, uint32(0x7FFF), int32(32767)),
		Entry("16-bit min negative", insts.SignExtend16, uint32(0x8000), int32(-32768)),
		Entry("20-bit max positive", insts.SignExtend20, uint32(0x7FFFF), int32(0x7FFFF)),
		Entry("20-bit min negative", insts.SignExtend20, uint32(0x80000), int32(-0x80000)),
		Entry("20-bit minus one", insts.SignExtend20, uint32(0xFFFFF), int32(-1)),
		Entry("32-bit max positive", insts.SignExtend32, uint32(0x7FFFFFFF), int32(0x7FFFFFFF)),
		Entry("32-bit min negative", insts.SignExtend32, uint32(0x80000000), int32(-0x80000000)),
	)
})
