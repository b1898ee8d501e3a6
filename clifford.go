package mbqcirq

import "fmt"

// The single-qubit Clifford group modulo phase has 24 elements. Each entry
// below realizes one element as an ordered sequence of at most four
// elementary gates, applied left to right.
var cliffordSequences = [24][]GateKind{
	{GateI},
	{GateX},
	{GateY},
	{GateZ},
	{GateS},
	{GateSdg},
	{GateH},
	{GateSdg, GateH, GateSdg},
	{GateH, GateX},
	{GateSdg, GateY},
	{GateSdg, GateX},
	{GateH, GateY},
	{GateH, GateZ},
	{GateSdg, GateH, GateSdg, GateY},
	{GateSdg, GateH, GateS},
	{GateSdg, GateH, GateSdg, GateX},
	{GateSdg, GateH},
	{GateSdg, GateH, GateY},
	{GateSdg, GateH, GateZ},
	{GateSdg, GateH, GateX},
	{GateH, GateS},
	{GateH, GateSdg},
	{GateH, GateX, GateSdg},
	{GateH, GateX, GateS},
}

// cliffordConj[i] is the index realizing the conjugate (inverse up to global
// phase) of entry i: applying entry i then entry cliffordConj[i] is the
// identity on any single-qubit state.
var cliffordConj = [24]int{
	0, 1, 2, 3, 5, 4, 6, 15, 12, 9, 10, 11, 8, 13, 14, 7, 20, 22, 23, 21, 16, 19, 17, 18,
}

// CliffordSequence returns the elementary gate sequence for a Clifford index.
func CliffordSequence(index int) ([]GateKind, error) {
	if index < 0 || index >= len(cliffordSequences) {
		return nil, fmt.Errorf("%w: %d", ErrCliffordIndex, index)
	}
	return cliffordSequences[index], nil
}

// CliffordConj returns the index of the conjugate Clifford entry.
func CliffordConj(index int) (int, error) {
	if index < 0 || index >= len(cliffordConj) {
		return 0, fmt.Errorf("%w: %d", ErrCliffordIndex, index)
	}
	return cliffordConj[index], nil
}
