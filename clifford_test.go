package mbqcirq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCliffordSequenceBounds(t *testing.T) {
	_, err := CliffordSequence(-1)
	assert.ErrorIs(t, err, ErrCliffordIndex)
	_, err = CliffordSequence(24)
	assert.ErrorIs(t, err, ErrCliffordIndex)
	_, err = CliffordConj(-1)
	assert.ErrorIs(t, err, ErrCliffordIndex)
	_, err = CliffordConj(24)
	assert.ErrorIs(t, err, ErrCliffordIndex)
}

func TestCliffordKnownEntries(t *testing.T) {
	seq, err := CliffordSequence(0)
	require.NoError(t, err)
	assert.Equal(t, []GateKind{GateI}, seq)

	seq, err = CliffordSequence(6)
	require.NoError(t, err)
	assert.Equal(t, []GateKind{GateH}, seq)

	// S and S-dagger are each other's conjugates.
	conj, err := CliffordConj(4)
	require.NoError(t, err)
	assert.Equal(t, 5, conj)
	conj, err = CliffordConj(5)
	require.NoError(t, err)
	assert.Equal(t, 4, conj)
}

func TestCliffordConjIsInvolution(t *testing.T) {
	for i := 0; i < 24; i++ {
		conj, err := CliffordConj(i)
		require.NoError(t, err)
		back, err := CliffordConj(conj)
		require.NoError(t, err)
		assert.Equal(t, i, back, "entry %d", i)
	}
}

// TestCliffordConjCancels verifies that each entry followed by its conjugate
// is the identity up to global phase. Applying the pair to one half of a
// maximally entangled state pins down the composite map completely.
func TestCliffordConjCancels(t *testing.T) {
	makeBell := func() *StateVector {
		s := NewStateVector(2)
		s.ApplyGate(GateH, 0, 0)
		s.ApplyGate(GateH, 1, 0)
		s.applyCZ(0, 1)
		s.ApplyGate(GateH, 1, 0)
		return s
	}
	ref := makeBell()

	for i := 0; i < 24; i++ {
		seq, err := CliffordSequence(i)
		require.NoError(t, err)
		conj, err := CliffordConj(i)
		require.NoError(t, err)
		conjSeq, err := CliffordSequence(conj)
		require.NoError(t, err)

		s := makeBell()
		for _, kind := range seq {
			s.ApplyGate(kind, 0, 0)
		}
		for _, kind := range conjSeq {
			s.ApplyGate(kind, 0, 0)
		}
		assert.InDelta(t, 1.0, ref.Fidelity(s), 1e-9, "entry %d, conjugate %d", i, conj)
	}
}
