package mbqcirq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutParallelGates(t *testing.T) {
	p := &Program{
		NumQubits:    2,
		NumRegisters: 2,
		Ops: []Op{
			GateOp{Kind: GateH, Qubit: 0},
			GateOp{Kind: GateH, Qubit: 1},
			CZOp{A: 0, B: 1},
		},
	}
	layout, steps, err := LayoutProgram(p)
	require.NoError(t, err)
	require.Len(t, layout, 3)

	assert.Equal(t, 0, layout[0].Step)
	assert.Equal(t, 0, layout[1].Step, "disjoint qubits share a step")
	assert.Equal(t, 1, layout[2].Step)
	assert.ElementsMatch(t, []int{0, 1}, layout[2].Qubits)
	assert.Equal(t, 2, steps)
}

func TestLayoutConditionalFollowsMeasurement(t *testing.T) {
	p := &Program{
		NumQubits:    2,
		NumRegisters: 1,
		Ops: []Op{
			MeasureOp{Qubit: 0, Register: 0},
			ConditionalOp{
				Cond: Condition{Register: 0, Value: 1},
				Body: []Op{GateOp{Kind: GateX, Qubit: 1}},
			},
		},
	}
	layout, _, err := LayoutProgram(p)
	require.NoError(t, err)

	// The conditional touches only qubit 1 but still has to wait for the
	// measurement writing its register.
	assert.Greater(t, layout[1].Step, layout[0].Step)
	assert.Equal(t, []int{1}, layout[1].Qubits)
}

func TestLayoutUnorderedCondition(t *testing.T) {
	p := &Program{
		NumQubits:    1,
		NumRegisters: 1,
		Ops: []Op{
			ConditionalOp{
				Cond: Condition{Register: 0, Value: 1},
				Body: []Op{GateOp{Kind: GateX, Qubit: 0}},
			},
			MeasureOp{Qubit: 0, Register: 0},
		},
	}
	_, _, err := LayoutProgram(p)
	assert.ErrorIs(t, err, ErrUnorderedCondition)
}

func TestLayoutCaptureSpansRegister(t *testing.T) {
	p := &Program{
		NumQubits:    3,
		NumRegisters: 1,
		Ops: []Op{
			GateOp{Kind: GateH, Qubit: 1},
			StateCaptureOp{},
			GateOp{Kind: GateX, Qubit: 2},
		},
	}
	layout, _, err := LayoutProgram(p)
	require.NoError(t, err)

	assert.ElementsMatch(t, []int{0, 1, 2}, layout[1].Qubits)
	assert.Greater(t, layout[1].Step, layout[0].Step)
	assert.Greater(t, layout[2].Step, layout[1].Step, "the capture acts as a barrier")
}

func TestLayoutCompiledProgram(t *testing.T) {
	cp, err := Compile(chainPattern(0.25, 0.5), DefaultOptions())
	require.NoError(t, err)

	layout, steps, err := LayoutProgram(cp.Program)
	require.NoError(t, err)
	assert.Len(t, layout, len(cp.Program.Ops))
	assert.Greater(t, steps, 0)
}
