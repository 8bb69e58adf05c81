// Validate decoder allocations - the decoder should produce its signal set
// without touching the heap.
package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/sarchlab/rv32sim/insts"
)

func main() {
	decoder := insts.NewDecoder()

	words := []uint32{
		insts.EncodeI(insts.OpcodeOPIMM, 2, insts.Funct3ADD, 1, 5),         // addi x2, x1, 5
		insts.EncodeR(insts.OpcodeOP, 3, insts.Funct3ADD, 1, 2, 0b0100000), // sub x3, x1, x2
		insts.EncodeB(insts.Funct3BNE, 1, 2, -8),                           // bne x1, x2, -8
		insts.EncodeJ(1, 2048),                                             // jal ra, 2048
		insts.EncodeU(insts.OpcodeLUI, 5, 0x12345),                         // lui x5, 0x12345
	}

	// Warm up
	for i := 0; i < 1000; i++ {
		decoder.Decode(words[i%len(words)])
	}

	runtime.GC()
	var m1, m2 runtime.MemStats
	runtime.ReadMemStats(&m1)

	start := time.Now()
	iterations := 100000

	var sink insts.Result
	for i := 0; i < iterations; i++ {
		for _, w := range words {
			sink = decoder.Decode(w)
		}
	}

	elapsed := time.Since(start)
	runtime.ReadMemStats(&m2)
	_ = sink

	totalDecodes := iterations * len(words)
	allocations := m2.Mallocs - m1.Mallocs
	allocatedBytes := m2.TotalAlloc - m1.TotalAlloc

	fmt.Printf("Decoder Validation Results:\n")
	fmt.Printf("===========================\n")
	fmt.Printf("Total decode operations: %d\n", totalDecodes)
	fmt.Printf("Time elapsed: %v\n", elapsed)
	fmt.Printf("Decodes per second: %.0f\n", float64(totalDecodes)/elapsed.Seconds())
	fmt.Printf("Allocations: %d\n", allocations)
	fmt.Printf("Allocated bytes: %d\n", allocatedBytes)
	fmt.Printf("Allocations per decode: %.3f\n", float64(allocations)/float64(totalDecodes))

	if allocations == 0 {
		fmt.Printf("\nSUCCESS: zero allocations\n")
	} else if float64(allocations)/float64(totalDecodes) < 0.1 {
		fmt.Printf("\nGOOD: low allocation rate (< 0.1 per decode)\n")
	} else {
		fmt.Printf("\nWARNING: high allocation rate detected\n")
	}
}
