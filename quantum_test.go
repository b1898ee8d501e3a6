package mbqcirq

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateKernels(t *testing.T) {
	s := NewStateVector(1)
	s.ApplyGate(GateX, 0, 0)
	assert.InDelta(t, 1.0, s.probOne(0), 1e-12)

	s.ApplyGate(GateH, 0, 0)
	s.ApplyGate(GateH, 0, 0)
	assert.InDelta(t, 1.0, s.probOne(0), 1e-12, "H is self-inverse")

	s = NewStateVector(1)
	s.ApplyGate(GateH, 0, 0)
	s.ApplyGate(GateS, 0, 0)
	s.ApplyGate(GateSdg, 0, 0)
	s.ApplyGate(GateH, 0, 0)
	assert.InDelta(t, 0.0, s.probOne(0), 1e-12, "S and Sdg cancel")

	// A phase rotation never changes measurement probabilities in the
	// computational basis.
	s = NewStateVector(1)
	s.ApplyGate(GateH, 0, 0)
	s.ApplyGate(GatePhase, 0, 1.234)
	assert.InDelta(t, 0.5, s.probOne(0), 1e-12)
}

func TestRotationAngles(t *testing.T) {
	s := NewStateVector(1)
	s.ApplyGate(GateRX, 0, math.Pi)
	assert.InDelta(t, 1.0, s.probOne(0), 1e-12, "RX(pi) flips the qubit")

	s = NewStateVector(1)
	s.ApplyGate(GateRY, 0, math.Pi/2)
	assert.InDelta(t, 0.5, s.probOne(0), 1e-12, "RY(pi/2) balances the qubit")
}

func TestCollapse(t *testing.T) {
	s := NewStateVector(1)
	s.ApplyGate(GateH, 0, 0)
	s.collapse(0, 1)
	assert.InDelta(t, 1.0, s.probOne(0), 1e-12)

	s = NewStateVector(1)
	s.ApplyGate(GateH, 0, 0)
	s.collapse(0, 0)
	assert.InDelta(t, 0.0, s.probOne(0), 1e-12)
}

func TestResetFromOne(t *testing.T) {
	s := NewStateVector(1)
	s.ApplyGate(GateX, 0, 0)
	s.applyReset(0)
	assert.InDelta(t, 0.0, s.probOne(0), 1e-12)
}

func TestGetQubitProbabilities(t *testing.T) {
	s := NewStateVector(2)
	s.ApplyGate(GateH, 0, 0)
	s.ApplyGate(GateX, 1, 0)

	probs := s.GetQubitProbabilities()
	require.Len(t, probs, 2)
	assert.InDelta(t, 0.5, probs[0].Prob1, 1e-12)
	assert.InDelta(t, 1.0, probs[1].Prob1, 1e-12)
}

func TestExtractQubitsProductState(t *testing.T) {
	s := NewStateVector(2)
	s.ApplyGate(GateH, 0, 0)
	s.ApplyGate(GateX, 1, 0)

	sub, err := s.ExtractQubits([]int{0})
	require.NoError(t, err)
	require.Equal(t, 1, sub.NumQubits)
	assert.InDelta(t, 0.5, sub.probOne(0), 1e-12)

	sub, err = s.ExtractQubits([]int{1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sub.probOne(0), 1e-12)
}

func TestExtractQubitsEntangledFails(t *testing.T) {
	s := NewStateVector(2)
	s.ApplyGate(GateH, 0, 0)
	s.ApplyGate(GateH, 1, 0)
	s.applyCZ(0, 1)
	s.ApplyGate(GateH, 1, 0)

	_, err := s.ExtractQubits([]int{0})
	assert.Error(t, err)
}

func TestFidelityIgnoresGlobalPhase(t *testing.T) {
	a := NewStateVector(1)
	a.ApplyGate(GateH, 0, 0)

	b := a.Clone()
	for i := range b.Amplitudes {
		b.Amplitudes[i] *= 1i
	}
	assert.InDelta(t, 1.0, a.Fidelity(b), 1e-12)

	c := NewStateVector(1)
	c.ApplyGate(GateX, 0, 0)
	c.ApplyGate(GateH, 0, 0)
	assert.InDelta(t, 0.0, a.Fidelity(c), 1e-12, "plus and minus are orthogonal")
}

func TestRegisterKeyOrdering(t *testing.T) {
	assert.Equal(t, "001", registerKey([]uint8{1, 0, 0}))
	assert.Equal(t, "110", registerKey([]uint8{0, 1, 1}))
}

func TestRunDeterministicProgram(t *testing.T) {
	p := &Program{
		NumQubits:    1,
		NumRegisters: 1,
		Ops: []Op{
			GateOp{Kind: GateX, Qubit: 0},
			MeasureOp{Qubit: 0, Register: 0},
		},
	}
	res, err := NewSimulator(1).Run(p, 128)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"1": 128}, res.Counts)
}

func TestRunConditionalFeedforward(t *testing.T) {
	// Measure a |1> qubit, then flip a second qubit on that outcome.
	p := &Program{
		NumQubits:    2,
		NumRegisters: 2,
		Ops: []Op{
			GateOp{Kind: GateX, Qubit: 0},
			MeasureOp{Qubit: 0, Register: 0},
			ConditionalOp{
				Cond: Condition{Register: 0, Value: 1},
				Body: []Op{GateOp{Kind: GateX, Qubit: 1}},
			},
			MeasureOp{Qubit: 1, Register: 1},
		},
	}
	res, err := NewSimulator(1).Run(p, 64)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"11": 64}, res.Counts)
}

func TestRunStatevectorCapture(t *testing.T) {
	p := &Program{
		NumQubits:    1,
		NumRegisters: 1,
		Ops: []Op{
			GateOp{Kind: GateH, Qubit: 0},
			StateCaptureOp{},
			MeasureOp{Qubit: 0, Register: 0},
		},
	}
	state, regs, err := NewSimulator(1).RunStatevector(p)
	require.NoError(t, err)
	require.Len(t, regs, 1)

	// The capture precedes the collapse, so both branches carry weight.
	assert.InDelta(t, 0.5, state.probOne(0), 1e-12)
}
