package mbqcirq

import "fmt"

// OpLayout places one program op on a display timeline. Ops on disjoint
// qubits with no classical dependency between them share a step.
type OpLayout struct {
	Op     Op
	Step   int
	Qubits []int
}

// LayoutProgram assigns a timeline step to every op of the program,
// respecting two dependency kinds: qubit order (ops touching a common qubit
// keep their program order) and classical order (a conditional op must
// follow the measurement writing the register it reads). It also validates
// the classical ordering, returning ErrUnorderedCondition when a conditional
// reads a register no earlier measurement has written.
//
// The returned slice parallels Program.Ops; the int result is the number of
// steps used.
func LayoutProgram(p *Program) ([]OpLayout, int, error) {
	frontier := make([]int, max(p.NumQubits, 1))
	regStep := make(map[int]int)

	layout := make([]OpLayout, len(p.Ops))
	maxStep := 0
	for i, op := range p.Ops {
		qubits := opQubits(op, p.NumQubits)

		step := 0
		for _, q := range qubits {
			if frontier[q] > step {
				step = frontier[q]
			}
		}
		for _, reg := range opReadRegisters(op) {
			ws, ok := regStep[reg]
			if !ok {
				return nil, 0, fmt.Errorf("%w: register %d", ErrUnorderedCondition, reg)
			}
			if ws+1 > step {
				step = ws + 1
			}
		}

		for _, q := range qubits {
			frontier[q] = step + 1
		}
		for _, reg := range opWriteRegisters(op) {
			regStep[reg] = step
		}

		layout[i] = OpLayout{Op: op, Step: step, Qubits: qubits}
		if step+1 > maxStep {
			maxStep = step + 1
		}
	}
	return layout, maxStep, nil
}

// opQubits returns the qubits an op touches. A state capture behaves like a
// barrier spanning the whole register.
func opQubits(op Op, numQubits int) []int {
	switch op := op.(type) {
	case GateOp:
		return []int{op.Qubit}
	case CZOp:
		return []int{op.A, op.B}
	case ResetOp:
		return []int{op.Qubit}
	case MeasureOp:
		return []int{op.Qubit}
	case ConditionalOp:
		seen := make(map[int]bool)
		var qubits []int
		for _, inner := range op.Body {
			for _, q := range opQubits(inner, numQubits) {
				if !seen[q] {
					seen[q] = true
					qubits = append(qubits, q)
				}
			}
		}
		return qubits
	case StateCaptureOp:
		all := make([]int, numQubits)
		for i := range all {
			all[i] = i
		}
		return all
	}
	return nil
}

func opReadRegisters(op Op) []int {
	cond, ok := op.(ConditionalOp)
	if !ok {
		return nil
	}
	regs := []int{cond.Cond.Register}
	for _, inner := range cond.Body {
		regs = append(regs, opReadRegisters(inner)...)
	}
	return regs
}

func opWriteRegisters(op Op) []int {
	switch op := op.(type) {
	case MeasureOp:
		return []int{op.Register}
	case ConditionalOp:
		var regs []int
		for _, inner := range op.Body {
			regs = append(regs, opWriteRegisters(inner)...)
		}
		return regs
	}
	return nil
}
