// Package main provides the entry point for rv32sim.
// rv32sim is an RV32I decoder and single-cycle datapath simulator.
//
// For the full CLI, use: go run ./cmd/rv32sim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("rv32sim - RV32I single-cycle datapath simulator")
	fmt.Println("")
	fmt.Println("Usage: rv32sim [options] <program.elf>")
	fmt.Println("       rv32sim -decode <hex word>...")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -decode    Print the control signals of each instruction word")
	fmt.Println("  -raw       Load the program as a flat binary")
	fmt.Println("  -config    Path to simulator configuration JSON file")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/rv32sim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/rv32sim' instead.")
	}
}
