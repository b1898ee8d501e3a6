package mbqcirq

import "fmt"

// FormatResult restricts a raw execution histogram to the pattern's output
// nodes.
//
// Raw keys are full register bitstrings of length numRegisters, with the bit
// of register r at string index numRegisters-1-r. The decoded key has one
// character per output node, in output-node order, extracted through the
// same inverted-index convention. Counts of colliding keys are summed, so
// total counts are conserved.
func FormatResult(raw map[string]int, registerMap map[int]int, outputNodes []int, numRegisters int) (map[string]int, error) {
	outputRegs := make([]int, len(outputNodes))
	for i, node := range outputNodes {
		reg, ok := registerMap[node]
		if !ok {
			return nil, fmt.Errorf("%w: output node %d has no register", ErrUnknownNode, node)
		}
		outputRegs[i] = reg
	}

	formatted := make(map[string]int, len(raw))
	for bitstring, count := range raw {
		if len(bitstring) != numRegisters {
			return nil, fmt.Errorf("raw bitstring %q: length %d, register size %d", bitstring, len(bitstring), numRegisters)
		}
		key := make([]byte, len(outputRegs))
		for i, reg := range outputRegs {
			key[i] = bitstring[numRegisters-1-reg]
		}
		formatted[string(key)] += count
	}
	return formatted, nil
}

// Decode formats a raw histogram for a compiled program.
func (cp *CompiledProgram) Decode(raw map[string]int) (map[string]int, error) {
	return FormatResult(raw, cp.RegisterMap, cp.Pattern.OutputNodes, cp.Program.NumRegisters)
}
